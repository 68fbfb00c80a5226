package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

// PresetPickerModel is the fuzzy picker over saved filter presets.
type PresetPickerModel struct {
	names    []string
	filtered []string
	query    string
	cursor   int
	visible  bool

	width  int
	height int
	theme  Theme
}

// NewPresetPickerModel creates the preset picker.
func NewPresetPickerModel(theme Theme) PresetPickerModel {
	return PresetPickerModel{theme: theme}
}

// Open shows the picker over the given preset names.
func (m *PresetPickerModel) Open(names []string) {
	m.names = names
	m.query = ""
	m.cursor = 0
	m.visible = true
	m.refilter()
}

// IsVisible reports whether the picker is showing.
func (m PresetPickerModel) IsVisible() bool { return m.visible }

func (m *PresetPickerModel) refilter() {
	if m.query == "" {
		m.filtered = append([]string(nil), m.names...)
		m.cursor = 0
		return
	}
	matches := fuzzy.Find(m.query, m.names)
	m.filtered = make([]string, 0, len(matches))
	for _, match := range matches {
		m.filtered = append(m.filtered, m.names[match.Index])
	}
	m.cursor = 0
}

// Update handles one key. done is true when the picker closed; chosen
// is the selected preset name, "" on cancel. del is true when the user
// asked to delete the highlighted preset instead of loading it.
func (m *PresetPickerModel) Update(key string) (done bool, chosen string, del bool) {
	switch key {
	case "esc":
		m.visible = false
		return true, "", false
	case "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down":
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
		}
	case "enter":
		if m.cursor < len(m.filtered) {
			m.visible = false
			return true, m.filtered[m.cursor], false
		}
	case "ctrl+d":
		if m.cursor < len(m.filtered) {
			name := m.filtered[m.cursor]
			// Stay open so the user sees the list shrink.
			kept := m.names[:0]
			for _, n := range m.names {
				if n != name {
					kept = append(kept, n)
				}
			}
			m.names = kept
			m.refilter()
			return false, name, true
		}
	case "backspace":
		if len(m.query) > 0 {
			m.query = m.query[:len(m.query)-1]
			m.refilter()
		}
	default:
		if isPrintableKey(key) {
			m.query += key
			m.refilter()
		}
	}
	return false, "", false
}

// SetSize sets dimensions.
func (m *PresetPickerModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// View renders the picker.
func (m PresetPickerModel) View() string {
	t := m.theme
	var b strings.Builder

	b.WriteString(t.Renderer.NewStyle().Foreground(t.Primary).Bold(true).Render("Presets"))
	b.WriteString("\n\n")

	queryStyle := t.Renderer.NewStyle().Foreground(t.Text)
	prompt := "> " + m.query
	if m.query == "" {
		prompt = "> " + t.Renderer.NewStyle().Foreground(t.Subtext).Render("type to filter")
	}
	b.WriteString(queryStyle.Render(prompt))
	b.WriteString("\n\n")

	if len(m.filtered) == 0 {
		b.WriteString(t.Renderer.NewStyle().Foreground(t.Subtext).Italic(true).Render("No presets"))
	}

	selectedStyle := t.Renderer.NewStyle().Foreground(t.Primary).Bold(true)
	normalStyle := t.Renderer.NewStyle().Foreground(t.Text)
	for i, name := range m.filtered {
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("▸ " + name))
		} else {
			b.WriteString(normalStyle.Render("  " + name))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(t.Renderer.NewStyle().Foreground(t.Subtext).Italic(true).
		Render(fmt.Sprintf("%d of %d • enter load • ctrl+d delete • esc close",
			len(m.filtered), len(m.names))))

	box := t.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(1, 2).
		Render(b.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
