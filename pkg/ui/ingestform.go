package ui

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"leadpanel/pkg/watcher"
)

// IngestFormModel collects the file path and source label for an upload.
// The huh form is embedded and driven by the parent model's Update loop.
type IngestFormModel struct {
	form    *huh.Form
	path    string
	source  string
	visible bool

	width  int
	height int
	theme  Theme
}

// NewIngestFormModel creates the ingest overlay.
func NewIngestFormModel(theme Theme) IngestFormModel {
	return IngestFormModel{theme: theme}
}

// Open resets and shows the form.
func (m *IngestFormModel) Open() tea.Cmd {
	m.path = ""
	m.source = "UPLOAD_PAINEL"
	m.visible = true
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("File to ingest").
				Description("CSV or Excel export").
				Placeholder("/path/to/leads.csv").
				Value(&m.path).
				Validate(validateIngestPath),
			huh.NewInput().
				Title("Source label").
				Description("Recorded in the staging table").
				Value(&m.source),
		),
	).WithTheme(huh.ThemeDracula()).WithShowHelp(true)
	return m.form.Init()
}

// IsVisible reports whether the form is showing.
func (m IngestFormModel) IsVisible() bool { return m.visible }

// Update advances the form. done is true when it finished or was
// aborted; submit is true only for a completed form.
func (m *IngestFormModel) Update(msg tea.Msg) (cmd tea.Cmd, done, submit bool) {
	if m.form == nil {
		return nil, false, false
	}
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		m.visible = false
		return nil, true, false
	}

	f, cmd := m.form.Update(msg)
	if form, ok := f.(*huh.Form); ok {
		m.form = form
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.visible = false
		return cmd, true, true
	case huh.StateAborted:
		m.visible = false
		return cmd, true, false
	}
	return cmd, false, false
}

// Path returns the submitted file path.
func (m IngestFormModel) Path() string { return strings.TrimSpace(m.path) }

// Source returns the submitted source label.
func (m IngestFormModel) Source() string { return strings.TrimSpace(m.source) }

// SetSize sets dimensions.
func (m *IngestFormModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// View renders the form in a centered box.
func (m IngestFormModel) View() string {
	if m.form == nil {
		return ""
	}
	box := m.theme.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Primary).
		Padding(1, 2).
		Render(m.form.View())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func validateIngestPath(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return fmt.Errorf("path is required")
	}
	if !watcher.IsIngestable(path) {
		return fmt.Errorf("only .csv, .xlsx and .xls files are accepted")
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot read %s", path)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}
