package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"leadpanel/pkg/filter"
)

// DateRangeModel is the overlay for editing the inclusive date bounds.
// Either bound may stay empty for an open-ended range.
type DateRangeModel struct {
	from textinput.Model
	to   textinput.Model

	focusTo bool
	visible bool
	errText string

	width  int
	height int
	theme  Theme
}

// NewDateRangeModel creates the date range overlay.
func NewDateRangeModel(theme Theme) DateRangeModel {
	from := textinput.New()
	from.Placeholder = "YYYY-MM-DD"
	from.CharLimit = 10
	from.Width = 12

	to := textinput.New()
	to.Placeholder = "YYYY-MM-DD"
	to.CharLimit = 10
	to.Width = 12

	return DateRangeModel{from: from, to: to, theme: theme}
}

// Open shows the overlay with the current bounds.
func (m *DateRangeModel) Open(dateFrom, dateTo string) {
	m.visible = true
	m.errText = ""
	m.focusTo = false
	m.from.SetValue(dateFrom)
	m.to.SetValue(dateTo)
	m.from.Focus()
	m.to.Blur()
}

// IsVisible reports whether the overlay is showing.
func (m DateRangeModel) IsVisible() bool { return m.visible }

// Update handles one key. done is true when the user confirmed or
// cancelled; on confirm, ok is true and the bounds are validated.
func (m *DateRangeModel) Update(key string) (done, ok bool, dateFrom, dateTo string) {
	active := &m.from
	if m.focusTo {
		active = &m.to
	}

	switch key {
	case "esc":
		m.visible = false
		return true, false, "", ""
	case "tab", "shift+tab":
		m.focusTo = !m.focusTo
		if m.focusTo {
			m.from.Blur()
			m.to.Focus()
		} else {
			m.to.Blur()
			m.from.Focus()
		}
		return false, false, "", ""
	case "enter":
		f := strings.TrimSpace(m.from.Value())
		t := strings.TrimSpace(m.to.Value())
		if !filter.ValidDate(f) || !filter.ValidDate(t) {
			m.errText = "Dates must be YYYY-MM-DD (or empty)"
			return false, false, "", ""
		}
		m.visible = false
		return true, true, f, t
	case "backspace":
		v := active.Value()
		if len(v) > 0 {
			active.SetValue(v[:len(v)-1])
		}
		return false, false, "", ""
	default:
		if isPrintableKey(key) {
			active.SetValue(active.Value() + key)
		}
		return false, false, "", ""
	}
}

// View renders the overlay.
func (m DateRangeModel) View() string {
	t := m.theme

	fieldStyle := func(focused bool) lipgloss.Style {
		border := t.Secondary
		if focused {
			border = t.Primary
		}
		return t.Renderer.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1)
	}
	render := func(in textinput.Model, focused bool) string {
		v := in.Value()
		if v == "" {
			v = t.Renderer.NewStyle().Foreground(t.Subtext).Render(in.Placeholder)
		}
		return fieldStyle(focused).Render(v)
	}

	var lines []string
	lines = append(lines, t.Renderer.NewStyle().Foreground(t.Primary).Bold(true).Render("Date range"))
	lines = append(lines, "")
	lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Center,
		t.Renderer.NewStyle().Foreground(t.Subtext).Render("From "),
		render(m.from, !m.focusTo),
		t.Renderer.NewStyle().Foreground(t.Subtext).Render("  To "),
		render(m.to, m.focusTo),
	))
	if m.errText != "" {
		lines = append(lines, "", t.Renderer.NewStyle().Foreground(t.Danger).Render(m.errText))
	}
	lines = append(lines, "", t.Renderer.NewStyle().Foreground(t.Subtext).Italic(true).
		Render("tab switch • enter apply • esc cancel"))

	box := t.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(1, 2).
		Render(strings.Join(lines, "\n"))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// SetSize updates the overlay dimensions.
func (m *DateRangeModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}
