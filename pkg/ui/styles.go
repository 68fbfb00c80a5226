package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// ══════════════════════════════════════════════════════════════════════════════
// COLOR PALETTE - Dracula-inspired
// ══════════════════════════════════════════════════════════════════════════════

var (
	// Base colors
	ColorBg          = lipgloss.Color("#282A36")
	ColorBgHighlight = lipgloss.Color("#44475A")
	ColorText        = lipgloss.Color("#F8F8F2")
	ColorSubtext     = lipgloss.Color("#BFBFBF")
	ColorMuted       = lipgloss.Color("#6272A4")

	// Accent colors
	ColorPrimary   = lipgloss.Color("#BD93F9")
	ColorSecondary = lipgloss.Color("#6272A4")
	ColorInfo      = lipgloss.Color("#8BE9FD")
	ColorSuccess   = lipgloss.Color("#50FA7B")
	ColorWarning   = lipgloss.Color("#FFB86C")
	ColorDanger    = lipgloss.Color("#FF5555")
)

// Theme bundles the renderer and semantic colors so panels render
// consistently regardless of output profile.
type Theme struct {
	Renderer *lipgloss.Renderer

	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Text      lipgloss.Color
	Subtext   lipgloss.Color
	Muted     lipgloss.Color
	Info      lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Danger    lipgloss.Color
	Highlight lipgloss.Color
}

// DefaultTheme returns the standard panel theme.
func DefaultTheme() Theme {
	return Theme{
		Renderer:  lipgloss.DefaultRenderer(),
		Primary:   ColorPrimary,
		Secondary: ColorSecondary,
		Text:      ColorText,
		Subtext:   ColorSubtext,
		Muted:     ColorMuted,
		Info:      ColorInfo,
		Success:   ColorSuccess,
		Warning:   ColorWarning,
		Danger:    ColorDanger,
		Highlight: ColorBgHighlight,
	}
}

// StatusColor maps well-known lead statuses to accent colors; unknown
// statuses fall back to the default text color.
func (t Theme) StatusColor(status string) lipgloss.Color {
	switch status {
	case "NOVO":
		return t.Info
	case "CONTATO", "EM CONTATO":
		return t.Warning
	case "INSCRITO":
		return t.Primary
	case "MATRICULADO":
		return t.Success
	case "DESCARTADO", "PERDIDO":
		return t.Danger
	}
	return t.Text
}
