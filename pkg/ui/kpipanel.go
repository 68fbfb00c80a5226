package ui

import (
	"fmt"
	"strings"

	runewidth "github.com/mattn/go-runewidth"
	reflowtrunc "github.com/muesli/reflow/truncate"

	"leadpanel/pkg/model"
)

// RenderKPIPanel renders the aggregate summary line: total, top status
// with its count, and the most recent enrollment date.
func RenderKPIPanel(kpis *model.KPISummary, width int, theme Theme) string {
	t := theme
	labelStyle := t.Renderer.NewStyle().Foreground(t.Subtext)
	valueStyle := t.Renderer.NewStyle().Foreground(t.Text).Bold(true)

	if kpis == nil {
		return labelStyle.Render("KPIs: loading...")
	}

	parts := []string{
		labelStyle.Render("Total ") + valueStyle.Render(fmt.Sprintf("%d", kpis.Total)),
	}

	if kpis.TopStatus != nil {
		statusStyle := t.Renderer.NewStyle().Foreground(t.StatusColor(kpis.TopStatus.Status)).Bold(true)
		parts = append(parts,
			labelStyle.Render("Top ")+
				statusStyle.Render(kpis.TopStatus.Status)+
				labelStyle.Render(fmt.Sprintf(" (%d)", kpis.TopStatus.Count)))
	}
	if kpis.LastDate != "" {
		parts = append(parts, labelStyle.Render("Last ")+valueStyle.Render(kpis.LastDate))
	}

	line := strings.Join(parts, labelStyle.Render("  │  "))
	return line
}

// RenderStatusBreakdown renders the per-status mini bars under the KPI
// line, proportional to the largest bucket.
func RenderStatusBreakdown(byStatus []model.StatusCount, width int, theme Theme) string {
	if len(byStatus) == 0 {
		return ""
	}
	t := theme

	maxCount := 0
	for _, sc := range byStatus {
		if sc.Count > maxCount {
			maxCount = sc.Count
		}
	}
	if maxCount == 0 {
		return ""
	}

	barWidth := 12
	var lines []string
	for _, sc := range byStatus {
		filled := sc.Count * barWidth / maxCount
		if filled < 1 {
			filled = 1
		}
		bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)

		label := runewidth.FillRight(reflowtrunc.StringWithTail(sc.Status, 14, "…"), 15)
		lines = append(lines,
			t.Renderer.NewStyle().Foreground(t.Subtext).Render(label)+
				t.Renderer.NewStyle().Foreground(t.StatusColor(sc.Status)).Render(bar)+
				t.Renderer.NewStyle().Foreground(t.Subtext).Render(fmt.Sprintf(" %d", sc.Count)))
	}
	return strings.Join(lines, "\n")
}
