package options

import (
	"fmt"
	"reflect"
	"testing"

	"leadpanel/pkg/model"
)

func TestFilter_EmptyQueryReturnsFullListInOrder(t *testing.T) {
	ix := NewIndex()
	ix.Refresh(model.DimCourse, []string{"Zootecnia", "Administração", "Medicina"})

	got := ix.Filter(model.DimCourse, "")
	want := []string{"Zootecnia", "Administração", "Medicina"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected original order %v, got %v", want, got)
	}
}

func TestFilter_SubstringNotFuzzy(t *testing.T) {
	ix := NewIndex()
	ix.Refresh(model.DimCourse, []string{"Engineering", "Medicine", "Law"})

	// "ed" is not a substring of any candidate; a fuzzy matcher would
	// wrongly surface Medicine here.
	if got := ix.Filter(model.DimCourse, "ed"); len(got) != 0 {
		t.Errorf("expected no matches for %q, got %v", "ed", got)
	}
	got := ix.Filter(model.DimCourse, "edi")
	if len(got) != 1 || got[0] != "Medicine" {
		t.Errorf("expected [Medicine] for %q, got %v", "edi", got)
	}
}

func TestFilter_CaseAndDiacriticInsensitive(t *testing.T) {
	ix := NewIndex()
	ix.Refresh(model.DimHub, []string{"São Paulo", "Brasília", "Maceió", "Natal"})

	cases := []struct {
		query string
		want  []string
	}{
		{"sao", []string{"São Paulo"}},
		{"SÃO", []string{"São Paulo"}},
		{"brasilia", []string{"Brasília"}},
		{"maceio", []string{"Maceió"}},
		{"a", []string{"São Paulo", "Brasília", "Maceió", "Natal"}},
	}
	for _, c := range cases {
		if got := ix.Filter(model.DimHub, c.query); !reflect.DeepEqual(got, c.want) {
			t.Errorf("Filter(%q): expected %v, got %v", c.query, c.want, got)
		}
	}
}

func TestFilter_Idempotent(t *testing.T) {
	ix := NewIndex()
	ix.Refresh(model.DimCourse, []string{"Direito", "Medicina", "Pedagogia", "Medicina Veterinária"})

	first := ix.Filter(model.DimCourse, "medi")

	second := NewIndex()
	second.Refresh(model.DimCourse, first)
	if got := second.Filter(model.DimCourse, "medi"); !reflect.DeepEqual(got, first) {
		t.Errorf("filtering an already-filtered result changed it: %v vs %v", first, got)
	}
}

func TestRefresh_ReplacesList(t *testing.T) {
	ix := NewIndex()
	ix.Refresh(model.DimStatus, []string{"NOVO", "CONTATO"})
	ix.Refresh(model.DimStatus, []string{"NOVO", "CONTATO", "MATRICULADO"})

	if ix.Len(model.DimStatus) != 3 {
		t.Errorf("expected 3 candidates after refresh, got %d", ix.Len(model.DimStatus))
	}
	if got := ix.Filter(model.DimStatus, "matric"); len(got) != 1 || got[0] != "MATRICULADO" {
		t.Errorf("new candidate not searchable after refresh: %v", got)
	}
}

func TestFilter_LargeCandidateList(t *testing.T) {
	values := make([]string, 20000)
	for i := range values {
		values[i] = fmt.Sprintf("Curso %05d", i)
	}
	values[12345] = "Engenharia Ambiental"

	ix := NewIndex()
	ix.Refresh(model.DimCourse, values)

	got := ix.Filter(model.DimCourse, "ambient")
	if len(got) != 1 || got[0] != "Engenharia Ambiental" {
		t.Errorf("expected single match in large list, got %v", got)
	}
}

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"São Paulo":  "sao paulo",
		"BRASÍLIA":   "brasilia",
		"Conceição":  "conceicao",
		"plain text": "plain text",
	}
	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCandidates_ReturnsCopy(t *testing.T) {
	ix := NewIndex()
	ix.Refresh(model.DimOrigin, []string{"FACEBOOK"})
	got := ix.Candidates(model.DimOrigin)
	got[0] = "mutated"
	if ix.Candidates(model.DimOrigin)[0] != "FACEBOOK" {
		t.Error("Candidates must return a defensive copy")
	}
}
