package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	reflowtrunc "github.com/muesli/reflow/truncate"

	"leadpanel/pkg/filter"
	"leadpanel/pkg/model"
	"leadpanel/pkg/options"
)

// MultiSelectModel is the searchable multi-select overlay for one
// dimension. Candidate lists can run to tens of thousands of values, so
// rows are materialized in fixed-size batches as the cursor approaches
// the end of what has been rendered, instead of all at once.
type MultiSelectModel struct {
	dim        model.Dimension
	index      *options.Index
	selections *filter.Selections

	searchInput textinput.Model

	filtered []string // current filtered candidate sequence
	rendered int      // how many rows are materialized
	cursor   int      // highlighted row within filtered[:rendered]
	scroll   int      // first visible materialized row

	batchSize int
	threshold int

	width  int
	height int
	theme  Theme

	visible bool
	touched bool // any selection changed while open
}

// NewMultiSelectModel creates the overlay bound to the shared candidate
// index and selection store.
func NewMultiSelectModel(index *options.Index, selections *filter.Selections, batchSize, threshold int, theme Theme) MultiSelectModel {
	ti := textinput.New()
	ti.Placeholder = "Type to search..."
	ti.CharLimit = 64
	ti.Width = 40

	return MultiSelectModel{
		index:       index,
		selections:  selections,
		searchInput: ti,
		batchSize:   batchSize,
		threshold:   threshold,
		theme:       theme,
	}
}

// Open computes the filtered sequence for the dimension using the live
// search text and resets the render cursor.
func (m *MultiSelectModel) Open(dim model.Dimension) {
	m.dim = dim
	m.visible = true
	m.touched = false
	m.searchInput.SetValue("")
	m.searchInput.Focus()
	m.refilter()
}

// Close hides the overlay. Returns true if any selection changed while
// it was open, so the caller can arm the fetch debounce once.
func (m *MultiSelectModel) Close() bool {
	m.visible = false
	m.searchInput.Blur()
	return m.touched
}

// IsVisible reports whether the overlay is showing.
func (m MultiSelectModel) IsVisible() bool { return m.visible }

// Dimension returns the axis currently being edited.
func (m MultiSelectModel) Dimension() model.Dimension { return m.dim }

// refilter rebuilds the filtered sequence and rendered window from
// scratch. Called when the search text or the candidate list changes,
// never on selection toggles.
func (m *MultiSelectModel) refilter() {
	m.filtered = m.index.Filter(m.dim, m.searchInput.Value())
	m.rendered = 0
	m.cursor = 0
	m.scroll = 0
	m.renderNext()
}

// renderNext materializes the next batch of rows, clamped to the
// sequence length.
func (m *MultiSelectModel) renderNext() {
	m.rendered += m.batchSize
	if m.rendered > len(m.filtered) {
		m.rendered = len(m.filtered)
	}
}

// maybeExtend materializes another batch when the cursor has scrolled
// to within the threshold of the rendered end. This is the
// infinite-scroll trigger: the full sequence is never built eagerly.
func (m *MultiSelectModel) maybeExtend() {
	if m.rendered < len(m.filtered) && m.cursor >= m.rendered-m.threshold {
		m.renderNext()
	}
}

// RenderedCount exposes how many rows are materialized (for tests).
func (m MultiSelectModel) RenderedCount() int { return m.rendered }

// FilteredCount exposes the filtered sequence length.
func (m MultiSelectModel) FilteredCount() int { return len(m.filtered) }

// Cursor exposes the highlighted row index.
func (m MultiSelectModel) Cursor() int { return m.cursor }

// Update handles one key while the overlay is visible. toggled is
// non-empty when a row's membership changed, so the caller can record
// recency and arm the fetch debounce.
func (m *MultiSelectModel) Update(key string) (handled bool, toggled string) {
	switch key {
	case "up", "ctrl+k":
		if m.cursor > 0 {
			m.cursor--
			if m.cursor < m.scroll {
				m.scroll = m.cursor
			}
		}
		return true, ""
	case "down", "ctrl+j":
		if m.cursor < m.rendered-1 {
			m.cursor++
			m.maybeExtend()
			if m.cursor >= m.scroll+m.visibleRows() {
				m.scroll = m.cursor - m.visibleRows() + 1
			}
		}
		return true, ""
	case "pgdown":
		m.cursor += m.visibleRows()
		if m.cursor > m.rendered-1 {
			m.cursor = m.rendered - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		m.maybeExtend()
		if m.cursor >= m.scroll+m.visibleRows() {
			m.scroll = m.cursor - m.visibleRows() + 1
		}
		return true, ""
	case "pgup":
		m.cursor -= m.visibleRows()
		if m.cursor < 0 {
			m.cursor = 0
		}
		if m.cursor < m.scroll {
			m.scroll = m.cursor
		}
		return true, ""
	case " ", "tab":
		if m.cursor < len(m.filtered) {
			value := m.filtered[m.cursor]
			m.selections.Toggle(m.dim, value)
			m.touched = true
			return true, value
		}
		return true, ""
	case "ctrl+x":
		m.selections.Clear(m.dim)
		m.touched = true
		return true, ""
	case "backspace":
		v := m.searchInput.Value()
		if len(v) > 0 {
			m.searchInput.SetValue(v[:len(v)-1])
			m.refilter()
		}
		return true, ""
	default:
		if isPrintableKey(key) {
			m.searchInput.SetValue(m.searchInput.Value() + key)
			m.refilter()
			return true, ""
		}
	}
	return false, ""
}

// isPrintableKey reports whether the key is a printable ASCII rune.
func isPrintableKey(key string) bool {
	return len(key) == 1 && key[0] >= 32 && key[0] < 127
}

// CandidatesRefreshed recomputes the filtered sequence after the
// candidate index was refreshed underneath an open overlay.
func (m *MultiSelectModel) CandidatesRefreshed() {
	if m.visible {
		m.refilter()
	}
}

// SetSize updates the overlay dimensions.
func (m *MultiSelectModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	inputWidth := width - 24
	if inputWidth < 20 {
		inputWidth = 20
	}
	if inputWidth > 50 {
		inputWidth = 50
	}
	m.searchInput.Width = inputWidth
}

// visibleRows is how many candidate rows fit in the overlay box.
func (m MultiSelectModel) visibleRows() int {
	rows := m.height - 12
	if rows < 5 {
		rows = 5
	}
	if rows > 22 {
		rows = 22
	}
	return rows
}

// View renders the overlay box centered in the viewport.
func (m MultiSelectModel) View() string {
	t := m.theme

	boxWidth := 62
	if m.width > 0 && m.width < 72 {
		boxWidth = m.width - 8
	}
	if boxWidth < 38 {
		boxWidth = 38
	}
	contentWidth := boxWidth - 4

	var lines []string

	titleStyle := t.Renderer.NewStyle().Foreground(t.Primary).Bold(true)
	lines = append(lines, titleStyle.Render("Filter: "+m.dim.Title()))
	lines = append(lines, "")

	// Chips: current selections in insertion order.
	if chips := m.renderChips(contentWidth); chips != "" {
		lines = append(lines, chips, "")
	}

	inputStyle := t.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Secondary).
		Padding(0, 1).
		Width(contentWidth - 2)
	searchValue := m.searchInput.Value()
	if searchValue == "" {
		searchValue = t.Renderer.NewStyle().Foreground(t.Subtext).Render(m.searchInput.Placeholder)
	}
	lines = append(lines, inputStyle.Render(searchValue), "")

	if len(m.filtered) == 0 {
		emptyStyle := t.Renderer.NewStyle().Foreground(t.Subtext).Italic(true)
		lines = append(lines, emptyStyle.Render("  No matching values"))
	} else {
		lines = append(lines, m.renderRows(contentWidth)...)

		remaining := len(m.filtered) - m.rendered
		if remaining > 0 {
			moreStyle := t.Renderer.NewStyle().Foreground(t.Subtext).Italic(true)
			lines = append(lines, moreStyle.Render("  ... "+strconv.Itoa(remaining)+" more (scroll to load)"))
		}
	}

	lines = append(lines, "")
	footerStyle := t.Renderer.NewStyle().Foreground(t.Subtext).Italic(true)
	lines = append(lines, footerStyle.Render("↑/↓ move • space toggle • ctrl+x clear • esc done"))

	boxStyle := t.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(1, 2).
		Width(boxWidth)
	box := boxStyle.Render(strings.Join(lines, "\n"))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// renderRows paints the visible window of materialized rows, marking
// current Selection Store membership per row.
func (m MultiSelectModel) renderRows(contentWidth int) []string {
	t := m.theme

	end := m.scroll + m.visibleRows()
	if end > m.rendered {
		end = m.rendered
	}

	rows := make([]string, 0, end-m.scroll)
	for i := m.scroll; i < end; i++ {
		value := m.filtered[i]

		marker := "[ ] "
		if m.selections.Contains(m.dim, value) {
			marker = "[x] "
		}
		prefix := "  "
		if i == m.cursor {
			prefix = "▸ "
		}

		text := value
		if maxWidth := contentWidth - lipgloss.Width(prefix) - len(marker) - 1; maxWidth > 0 {
			text = reflowtrunc.StringWithTail(text, uint(maxWidth), "…")
		}

		style := t.Renderer.NewStyle().Foreground(t.Text)
		if i == m.cursor {
			style = style.Foreground(t.Primary).Bold(true)
		}
		if m.selections.Contains(m.dim, value) {
			style = style.Foreground(t.Success)
		}
		rows = append(rows, style.Render(prefix+marker+text))
	}
	return rows
}

// renderChips shows the selected values, individually listed, in
// insertion order.
func (m MultiSelectModel) renderChips(contentWidth int) string {
	selected := m.selections.Values(m.dim)
	if len(selected) == 0 {
		return ""
	}
	chipStyle := m.theme.Renderer.NewStyle().
		Foreground(ColorBg).
		Background(m.theme.Primary).
		Padding(0, 1)

	var chips []string
	width := 0
	for i, v := range selected {
		chip := chipStyle.Render(v)
		w := lipgloss.Width(chip) + 1
		if width+w > contentWidth && i > 0 {
			chips = append(chips, m.theme.Renderer.NewStyle().Foreground(m.theme.Subtext).
				Render("+"+strconv.Itoa(len(selected)-i)))
			break
		}
		chips = append(chips, chip)
		width += w
	}
	return strings.Join(chips, " ")
}
