package ui

import (
	"strings"
	"testing"
	"unicode/utf8"

	"leadpanel/pkg/model"
)

func TestKPIPanelLoadingState(t *testing.T) {
	out := RenderKPIPanel(nil, 80, DefaultTheme())
	if !strings.Contains(out, "loading") {
		t.Fatalf("nil summary should render a loading line, got %q", out)
	}
}

func TestKPIPanelShowsTopStatus(t *testing.T) {
	kpis := &model.KPISummary{
		Total:     120,
		LastDate:  "2026-08-29",
		TopStatus: &model.StatusCount{Status: "MATRICULADO", Count: 40},
	}
	out := RenderKPIPanel(kpis, 80, DefaultTheme())
	for _, want := range []string{"120", "MATRICULADO", "40", "2026-08-29"} {
		if !strings.Contains(out, want) {
			t.Errorf("panel missing %q:\n%s", want, out)
		}
	}
}

func TestStatusBreakdownTruncatesAccentedStatusSafely(t *testing.T) {
	byStatus := []model.StatusCount{
		{Status: "NÃO ATENDEU TELEFONEMA", Count: 30},
		{Status: "INSCRITO", Count: 10},
	}
	out := RenderStatusBreakdown(byStatus, 80, DefaultTheme())
	if !utf8.ValidString(out) {
		t.Fatal("truncation produced invalid UTF-8")
	}
	if !strings.Contains(out, "…") {
		t.Fatal("over-wide status should be truncated with an ellipsis")
	}
	if !strings.Contains(out, "INSCRITO") {
		t.Fatal("short status should render untouched")
	}
}

func TestStatusBreakdownEmpty(t *testing.T) {
	if out := RenderStatusBreakdown(nil, 80, DefaultTheme()); out != "" {
		t.Fatalf("empty breakdown should render nothing, got %q", out)
	}
}
