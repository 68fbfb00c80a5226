package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"leadpanel/pkg/model"
)

// ScalarInputModel edits the free-text single-value filter of one
// dimension. Legacy endpoints accept these alongside the multi-value
// selections; an empty value clears the filter.
type ScalarInputModel struct {
	dim     model.Dimension
	input   textinput.Model
	visible bool

	width  int
	height int
	theme  Theme
}

// NewScalarInputModel creates the scalar filter overlay.
func NewScalarInputModel(theme Theme) ScalarInputModel {
	in := textinput.New()
	in.Placeholder = "value (empty clears)"
	in.CharLimit = 64
	in.Width = 32
	return ScalarInputModel{input: in, theme: theme}
}

// Open shows the overlay for dim with its current value.
func (m *ScalarInputModel) Open(dim model.Dimension, current string) {
	m.dim = dim
	m.visible = true
	m.input.SetValue(current)
	m.input.Focus()
}

// IsVisible reports whether the overlay is showing.
func (m ScalarInputModel) IsVisible() bool { return m.visible }

// Dimension returns the axis being edited.
func (m ScalarInputModel) Dimension() model.Dimension { return m.dim }

// Update handles one key. done is true when the overlay closed; on
// apply, ok is true and value carries the trimmed filter text.
func (m *ScalarInputModel) Update(key string) (done, ok bool, value string) {
	switch key {
	case "esc":
		m.visible = false
		return true, false, ""
	case "enter":
		m.visible = false
		return true, true, strings.TrimSpace(m.input.Value())
	case "backspace":
		v := m.input.Value()
		if len(v) > 0 {
			m.input.SetValue(v[:len(v)-1])
		}
		return false, false, ""
	default:
		if isPrintableKey(key) {
			m.input.SetValue(m.input.Value() + key)
		}
		return false, false, ""
	}
}

// SetSize sets dimensions.
func (m *ScalarInputModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// View renders the overlay.
func (m ScalarInputModel) View() string {
	t := m.theme

	value := m.input.Value()
	if value == "" {
		value = t.Renderer.NewStyle().Foreground(t.Subtext).Render(m.input.Placeholder)
	}
	field := t.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(0, 1).
		Render(value)

	lines := []string{
		t.Renderer.NewStyle().Foreground(t.Primary).Bold(true).Render("Text filter: " + m.dim.Title()),
		"",
		field,
		"",
		t.Renderer.NewStyle().Foreground(t.Subtext).Italic(true).Render("enter apply • esc cancel"),
	}

	box := t.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(1, 2).
		Render(strings.Join(lines, "\n"))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
