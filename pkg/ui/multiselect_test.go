package ui

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"leadpanel/pkg/filter"
	"leadpanel/pkg/model"
	"leadpanel/pkg/options"
)

func newTestMultiSelect(t *testing.T, values []string, batchSize, threshold int) (*MultiSelectModel, *filter.Selections) {
	t.Helper()
	index := options.NewIndex()
	index.Refresh(model.DimCourse, values)
	selections := filter.NewSelections()
	m := NewMultiSelectModel(index, selections, batchSize, threshold, DefaultTheme())
	m.SetSize(100, 40)
	return &m, selections
}

func manyCourses(n int) []string {
	values := make([]string, n)
	for i := range values {
		values[i] = fmt.Sprintf("COURSE %04d", i)
	}
	return values
}

func TestMultiSelectRendersFirstBatchOnly(t *testing.T) {
	m, _ := newTestMultiSelect(t, manyCourses(1000), 250, 60)
	m.Open(model.DimCourse)

	if m.FilteredCount() != 1000 {
		t.Fatalf("filtered = %d, want 1000", m.FilteredCount())
	}
	if m.RenderedCount() != 250 {
		t.Fatalf("rendered = %d, want one batch of 250", m.RenderedCount())
	}
}

func TestMultiSelectExtendsNearRenderedEnd(t *testing.T) {
	m, _ := newTestMultiSelect(t, manyCourses(1000), 250, 60)
	m.Open(model.DimCourse)

	// Cursor at 189 is still outside the threshold window.
	for i := 0; i < 189; i++ {
		m.Update("down")
	}
	if m.RenderedCount() != 250 {
		t.Fatalf("rendered = %d before threshold, want 250", m.RenderedCount())
	}

	// One more step crosses rendered-threshold and pulls the next batch.
	m.Update("down")
	if m.RenderedCount() != 500 {
		t.Fatalf("rendered = %d after threshold, want 500", m.RenderedCount())
	}
}

func TestMultiSelectExtensionClampsToSequence(t *testing.T) {
	m, _ := newTestMultiSelect(t, manyCourses(300), 250, 60)
	m.Open(model.DimCourse)

	for i := 0; i < 299; i++ {
		m.Update("down")
	}
	if m.RenderedCount() != 300 {
		t.Fatalf("rendered = %d, want clamp at 300", m.RenderedCount())
	}
	if m.Cursor() != 299 {
		t.Fatalf("cursor = %d, want 299", m.Cursor())
	}
}

func TestMultiSelectToggleKeepsPosition(t *testing.T) {
	m, sel := newTestMultiSelect(t, manyCourses(1000), 250, 60)
	m.Open(model.DimCourse)

	for i := 0; i < 50; i++ {
		m.Update("down")
	}
	rendered, cursor := m.RenderedCount(), m.Cursor()

	_, toggled := m.Update(" ")
	if toggled != "COURSE 0050" {
		t.Fatalf("toggled = %q, want COURSE 0050", toggled)
	}
	if !sel.Contains(model.DimCourse, "COURSE 0050") {
		t.Fatal("value not selected after toggle")
	}
	if m.RenderedCount() != rendered || m.Cursor() != cursor {
		t.Fatalf("toggle moved the window: rendered %d->%d cursor %d->%d",
			rendered, m.RenderedCount(), cursor, m.Cursor())
	}

	m.Update("tab")
	if sel.Contains(model.DimCourse, "COURSE 0050") {
		t.Fatal("second toggle should deselect")
	}
}

func TestMultiSelectSearchResetsWindow(t *testing.T) {
	values := append(manyCourses(500), "MEDICINA", "MEDICINA VETERINÁRIA")
	m, _ := newTestMultiSelect(t, values, 250, 60)
	m.Open(model.DimCourse)

	for i := 0; i < 200; i++ {
		m.Update("down")
	}

	for _, r := range "medi" {
		m.Update(string(r))
	}
	if m.FilteredCount() != 2 {
		t.Fatalf("filtered = %d after query, want 2", m.FilteredCount())
	}
	if m.Cursor() != 0 {
		t.Fatalf("cursor = %d after query, want reset to 0", m.Cursor())
	}

	for i := 0; i < 4; i++ {
		m.Update("backspace")
	}
	if m.FilteredCount() != 502 {
		t.Fatalf("filtered = %d after clearing query, want 502", m.FilteredCount())
	}
}

func TestMultiSelectNoMatchesPlaceholder(t *testing.T) {
	m, _ := newTestMultiSelect(t, []string{"DIREITO", "MEDICINA"}, 250, 60)
	m.Open(model.DimCourse)

	for _, r := range "zzz" {
		m.Update(string(r))
	}
	if m.FilteredCount() != 0 {
		t.Fatalf("filtered = %d, want 0", m.FilteredCount())
	}
	if !strings.Contains(m.View(), "No matching values") {
		t.Fatal("expected empty-state placeholder in view")
	}
}

func TestMultiSelectClearDimension(t *testing.T) {
	m, sel := newTestMultiSelect(t, []string{"DIREITO", "MEDICINA"}, 250, 60)
	m.Open(model.DimCourse)

	m.Update(" ")
	m.Update("down")
	m.Update(" ")
	if sel.Len(model.DimCourse) != 2 {
		t.Fatalf("selected = %d, want 2", sel.Len(model.DimCourse))
	}

	m.Update("ctrl+x")
	if sel.Len(model.DimCourse) != 0 {
		t.Fatal("ctrl+x should clear the dimension")
	}
	if !m.Close() {
		t.Fatal("Close should report the overlay touched selections")
	}
}

func TestMultiSelectTruncatesAccentedValuesSafely(t *testing.T) {
	values := []string{
		"ADMINISTRAÇÃO PÚBLICA E GESTÃO SOCIAL INTEGRADA",
		"CIÊNCIAS CONTÁBEIS COM ÊNFASE EM CONTROLADORIA",
	}
	m, _ := newTestMultiSelect(t, values, 250, 60)
	m.SetSize(40, 20) // forces row truncation
	m.Open(model.DimCourse)

	view := m.View()
	if !utf8.ValidString(view) {
		t.Fatal("truncation produced invalid UTF-8")
	}
	if !strings.Contains(view, "…") {
		t.Fatal("long values should be truncated with an ellipsis")
	}
}

func TestMultiSelectRefreshWhileOpen(t *testing.T) {
	index := options.NewIndex()
	index.Refresh(model.DimCourse, []string{"DIREITO"})
	sel := filter.NewSelections()
	m := NewMultiSelectModel(index, sel, 250, 60, DefaultTheme())
	m.SetSize(100, 40)
	m.Open(model.DimCourse)

	if m.FilteredCount() != 1 {
		t.Fatalf("filtered = %d, want 1", m.FilteredCount())
	}

	index.Refresh(model.DimCourse, []string{"DIREITO", "ENFERMAGEM"})
	m.CandidatesRefreshed()
	if m.FilteredCount() != 2 {
		t.Fatalf("filtered = %d after refresh, want 2", m.FilteredCount())
	}
}
