package ui

import (
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

const helpMarkdown = `# Lead Panel

## Filters

| Key | Action |
|-----|--------|
| s   | Status selector |
| c   | Course selector |
| h   | Hub selector |
| o   | Origin selector |
| S/C/H/O | Text filter for the same axis |
| d   | Date range |
| x   | Clear all filters |

## Data

| Key | Action |
|-----|--------|
| r   | Reload option lists |
| u   | Ingest a file |
| e   | Export visible rows to CSV |
| E   | Server-side full export |
| v   | Save status chart (SVG) |
| y   | Copy selected row |

## Presets

| Key | Action |
|-----|--------|
| p   | Open preset picker |
| P   | Save current filters as preset |

Inside a selector: type to narrow, space or tab to toggle,
ctrl+x clears the dimension, esc closes.
`

// HelpOverlayModel shows keyboard shortcuts help rendered from markdown.
type HelpOverlayModel struct {
	visible bool
	width   int
	height  int
	theme   Theme
}

// NewHelpOverlayModel creates a new help overlay
func NewHelpOverlayModel(theme Theme) HelpOverlayModel {
	return HelpOverlayModel{
		theme: theme,
	}
}

// Show makes the help overlay visible
func (m *HelpOverlayModel) Show() {
	m.visible = true
}

// Hide makes the help overlay invisible
func (m *HelpOverlayModel) Hide() {
	m.visible = false
}

// Toggle toggles visibility
func (m *HelpOverlayModel) Toggle() {
	m.visible = !m.visible
}

// IsVisible returns true if overlay is showing
func (m HelpOverlayModel) IsVisible() bool {
	return m.visible
}

// SetSize sets dimensions
func (m *HelpOverlayModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// View renders the help overlay
func (m HelpOverlayModel) View() string {
	if !m.visible {
		return ""
	}

	wrap := m.width - 10
	if wrap < 40 {
		wrap = 40
	}
	if wrap > 78 {
		wrap = 78
	}

	body := helpMarkdown
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dracula"),
		glamour.WithWordWrap(wrap),
	)
	if err == nil {
		if out, rerr := renderer.Render(helpMarkdown); rerr == nil {
			body = out
		}
	}

	hintStyle := m.theme.Renderer.NewStyle().Faint(true).Italic(true)
	body += "\n" + hintStyle.Render("[Press any key to close]")

	boxStyle := m.theme.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Primary).
		Padding(0, 1)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		boxStyle.Render(body))
}
