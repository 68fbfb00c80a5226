package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"leadpanel/pkg/model"
)

// reservedRows is the screen height consumed by everything around the
// lead table: header, KPI line, breakdown block, and footer.
const reservedRows = 4 + breakdownRows

// breakdownRows caps the per-status bar block so the table height stays
// stable across responses.
const breakdownRows = 4

// View renders the dashboard, or the active overlay when one is open.
func (d *Dashboard) View() string {
	if d.width == 0 {
		return "Starting..."
	}

	switch {
	case d.help.IsVisible():
		return d.help.View()
	case d.multiSelect.IsVisible():
		return d.multiSelect.View()
	case d.scalarInput.IsVisible():
		return d.scalarInput.View()
	case d.dateRange.IsVisible():
		return d.dateRange.View()
	case d.ingestForm.IsVisible():
		return d.ingestForm.View()
	case d.picker.IsVisible():
		return d.picker.View()
	}

	var b strings.Builder
	b.WriteString(d.renderHeader())
	b.WriteString("\n")
	b.WriteString(RenderKPIPanel(d.kpis, d.width, d.theme))
	b.WriteString("\n")
	b.WriteString(d.renderBreakdown())
	b.WriteString("\n")
	b.WriteString(d.table.View())
	b.WriteString("\n")
	b.WriteString(d.renderFooter())
	return b.String()
}

func (d *Dashboard) renderHeader() string {
	t := d.theme
	title := t.Renderer.NewStyle().Foreground(t.Primary).Bold(true).Render("Lead Panel")
	host := t.Renderer.NewStyle().Foreground(t.Muted).Render(d.client.BaseURL())

	summary := d.filterSummary()
	summaryStyle := t.Renderer.NewStyle().Foreground(t.Subtext)
	if summary == "" {
		summary = summaryStyle.Render("no filters")
	} else {
		summary = t.Renderer.NewStyle().Foreground(t.Warning).Render(summary)
	}

	return title + "  " + host + "  " + summary
}

// filterSummary describes the live selections and date bounds, not the
// last-fetched snapshot, so edits show up before the debounce settles.
func (d *Dashboard) filterSummary() string {
	var parts []string
	for _, dim := range model.Dimensions {
		if v := d.scalars[dim]; v != "" {
			parts = append(parts, dim.Title()+"="+v)
		}
		if n := d.selections.Len(dim); n > 0 {
			parts = append(parts, dim.Title()+"("+strconv.Itoa(n)+")")
		}
	}
	if d.dateFrom != "" || d.dateTo != "" {
		from, to := d.dateFrom, d.dateTo
		if from == "" {
			from = "..."
		}
		if to == "" {
			to = "..."
		}
		parts = append(parts, from+"→"+to)
	}
	return strings.Join(parts, " ")
}

func (d *Dashboard) renderBreakdown() string {
	if d.kpis == nil || len(d.kpis.ByStatus) == 0 {
		return strings.Repeat("\n", breakdownRows-1)
	}
	byStatus := d.kpis.ByStatus
	if len(byStatus) > breakdownRows {
		byStatus = byStatus[:breakdownRows]
	}
	block := RenderStatusBreakdown(byStatus, d.width, d.theme)
	for i := len(byStatus); i < breakdownRows; i++ {
		block += "\n"
	}
	return block
}

func (d *Dashboard) renderFooter() string {
	t := d.theme

	toastStyle := t.Renderer.NewStyle().Foreground(t.Success)
	if d.toastIsErr {
		toastStyle = t.Renderer.NewStyle().Foreground(t.Danger)
	}
	toast := toastStyle.Render(d.toast)
	if d.loading {
		toast = t.Renderer.NewStyle().Foreground(t.Info).Render("Loading...")
	}

	cursor := t.Renderer.NewStyle().Foreground(t.Muted).Render(d.table.CursorInfo())
	hint := t.Renderer.NewStyle().Foreground(t.Muted).Render("? help  q quit")

	left := toast
	right := cursor + "  " + hint
	gap := d.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}
