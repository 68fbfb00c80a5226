package filter

import (
	"strings"
	"testing"

	"leadpanel/pkg/model"
)

func TestCompile_RepeatedEncoding(t *testing.T) {
	s := State{
		Multi: map[model.Dimension][]string{
			model.DimCourse: {"Engineering", "Law"},
		},
	}
	params := Compile(s, EncodingRepeated)

	got := params["curso"]
	if len(got) != 2 || got[0] != "Engineering" || got[1] != "Law" {
		t.Errorf("expected repeated curso keys in order, got %v", got)
	}
	if params.Get("curso_multi") != "" {
		t.Error("repeated encoding must not emit the _multi parameter")
	}
}

func TestCompile_DelimitedEncoding(t *testing.T) {
	s := State{
		Multi: map[model.Dimension][]string{
			model.DimHub: {"Centro", "Norte", "Sul"},
		},
	}
	params := Compile(s, EncodingDelimited)

	if got := params.Get("polo_multi"); got != "Centro||Norte||Sul" {
		t.Errorf("expected delimited polo_multi, got %q", got)
	}
	if len(params["polo"]) != 0 {
		t.Error("delimited encoding must not emit repeated keys")
	}
}

func TestCompile_OmitsEmptyScalarsAndDates(t *testing.T) {
	s := State{
		Scalars: map[model.Dimension]string{
			model.DimStatus: "  ",
			model.DimOrigin: " FACEBOOK ",
		},
	}
	params := Compile(s, EncodingRepeated)

	if _, present := params["status"]; present {
		t.Error("blank scalar must be omitted, not sent empty")
	}
	if got := params.Get("origem"); got != "FACEBOOK" {
		t.Errorf("scalar must be trimmed; got %q", got)
	}
	if _, present := params["data_ini"]; present {
		t.Error("unset lower date bound must be omitted")
	}
	if _, present := params["data_fim"]; present {
		t.Error("unset upper date bound must be omitted")
	}
}

func TestCompile_DateBoundsIndependent(t *testing.T) {
	s := State{DateFrom: "2024-01-01"}
	params := Compile(s, EncodingRepeated)
	if params.Get("data_ini") != "2024-01-01" {
		t.Errorf("data_ini = %q", params.Get("data_ini"))
	}
	if _, present := params["data_fim"]; present {
		t.Error("open upper bound must stay omitted")
	}
}

func TestCompile_LimitClamping(t *testing.T) {
	cases := []struct {
		in   int
		want string
	}{
		{0, "500"},
		{10, "50"},
		{500, "500"},
		{999999, "5000"},
	}
	for _, c := range cases {
		params := Compile(State{Limit: c.in}, EncodingRepeated)
		if got := params.Get("limit"); got != c.want {
			t.Errorf("limit %d: expected %s, got %s", c.in, c.want, got)
		}
	}
}

func TestCompile_Deterministic(t *testing.T) {
	s := State{
		Scalars: map[model.Dimension]string{model.DimStatus: "NOVO"},
		Multi: map[model.Dimension][]string{
			model.DimCourse: {"Law", "Medicine"},
			model.DimOrigin: {"FACEBOOK"},
		},
		DateFrom: "2024-01-01",
		DateTo:   "2024-06-30",
		Limit:    750,
	}
	first := Compile(s, EncodingRepeated).Encode()
	second := Compile(s, EncodingRepeated).Encode()
	if first != second {
		t.Errorf("compiling twice differed:\n%s\n%s", first, second)
	}
}

func TestCompileExport_UsesExportCap(t *testing.T) {
	params := CompileExport(State{Limit: 500}, EncodingRepeated, 0)
	if _, present := params["limit"]; present {
		t.Error("export parameters must not carry the interactive limit")
	}
	if got := params.Get("export_limit"); got != "200000" {
		t.Errorf("export_limit = %q", got)
	}

	params = CompileExport(State{}, EncodingRepeated, 5)
	if got := params.Get("export_limit"); got != "1000" {
		t.Errorf("export_limit clamp low = %q", got)
	}
}

func TestParseEncoding(t *testing.T) {
	if e, ok := ParseEncoding("delimited"); !ok || e != EncodingDelimited {
		t.Error("delimited should parse")
	}
	if e, ok := ParseEncoding(""); !ok || e != EncodingRepeated {
		t.Error("empty should default to repeated")
	}
	if _, ok := ParseEncoding("guess"); ok {
		t.Error("unknown encoding must be rejected, never guessed")
	}
}

func TestState_Summary(t *testing.T) {
	s := State{
		Multi: map[model.Dimension][]string{
			model.DimCourse: {"Law", "Medicine"},
			model.DimStatus: {"NOVO"},
		},
		DateFrom: "2024-01-01",
	}
	sum := s.Summary()
	for _, frag := range []string{"Course(2)", "Status=NOVO", "2024-01-01.."} {
		if !strings.Contains(sum, frag) {
			t.Errorf("summary %q missing %q", sum, frag)
		}
	}
	if (State{}).Summary() != "no filters" {
		t.Error("zero state should read as no filters")
	}
}
