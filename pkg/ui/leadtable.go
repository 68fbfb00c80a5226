package ui

import (
	"strconv"
	"strings"

	runewidth "github.com/mattn/go-runewidth"
	reflowtrunc "github.com/muesli/reflow/truncate"

	"leadpanel/pkg/model"
)

// leadColumn describes one table column: header, width, and the
// projection from a lead row.
type leadColumn struct {
	header string
	width  int
	get    func(model.Lead) string
}

var leadColumns = []leadColumn{
	{"DATE", 10, func(l model.Lead) string { return l.EnrollDate }},
	{"NAME", 24, func(l model.Lead) string { return l.Name }},
	{"COURSE", 20, func(l model.Lead) string { return l.Course }},
	{"HUB", 12, func(l model.Lead) string { return l.Hub }},
	{"ORIGIN", 12, func(l model.Lead) string { return l.Origin }},
	{"STATUS", 12, func(l model.Lead) string { return l.Status }},
	{"ADVISOR", 14, func(l model.Lead) string { return l.Advisor }},
}

// LeadTable renders the fetched records with a cursor and scrolling.
// Pure projection: it never mutates or refetches anything.
type LeadTable struct {
	rows   []model.Lead
	cursor int
	scroll int

	width  int
	height int
	theme  Theme
}

// NewLeadTable creates an empty table.
func NewLeadTable(theme Theme) LeadTable {
	return LeadTable{theme: theme}
}

// SetRows replaces the table content and clamps the cursor.
func (t *LeadTable) SetRows(rows []model.Lead) {
	t.rows = rows
	if t.cursor >= len(rows) {
		t.cursor = len(rows) - 1
	}
	if t.cursor < 0 {
		t.cursor = 0
	}
	if t.scroll > t.cursor {
		t.scroll = t.cursor
	}
}

// Rows returns the current content.
func (t *LeadTable) Rows() []model.Lead { return t.rows }

// Selected returns the lead under the cursor, if any.
func (t *LeadTable) Selected() (model.Lead, bool) {
	if t.cursor < 0 || t.cursor >= len(t.rows) {
		return model.Lead{}, false
	}
	return t.rows[t.cursor], true
}

// SetSize updates the drawing area.
func (t *LeadTable) SetSize(width, height int) {
	t.width = width
	t.height = height
}

// MoveUp moves the cursor one row up.
func (t *LeadTable) MoveUp() {
	if t.cursor > 0 {
		t.cursor--
		if t.cursor < t.scroll {
			t.scroll = t.cursor
		}
	}
}

// MoveDown moves the cursor one row down.
func (t *LeadTable) MoveDown() {
	if t.cursor < len(t.rows)-1 {
		t.cursor++
		if t.cursor >= t.scroll+t.bodyRows() {
			t.scroll = t.cursor - t.bodyRows() + 1
		}
	}
}

func (t *LeadTable) bodyRows() int {
	rows := t.height - 2 // header + spacer
	if rows < 3 {
		rows = 3
	}
	return rows
}

// View renders the table. An empty row set prints an explicit
// empty-state line, visually distinct from an error toast.
func (t *LeadTable) View() string {
	th := t.theme

	headerStyle := th.Renderer.NewStyle().Foreground(th.Secondary).Bold(true)
	var b strings.Builder
	b.WriteString(headerStyle.Render(t.renderLine(func(c leadColumn) string { return c.header })))
	b.WriteString("\n")

	if len(t.rows) == 0 {
		emptyStyle := th.Renderer.NewStyle().Foreground(th.Subtext).Italic(true)
		b.WriteString(emptyStyle.Render("  No leads match the current filters"))
		return b.String()
	}

	end := t.scroll + t.bodyRows()
	if end > len(t.rows) {
		end = len(t.rows)
	}
	for i := t.scroll; i < end; i++ {
		lead := t.rows[i]

		style := th.Renderer.NewStyle().Foreground(th.Text)
		if i == t.cursor {
			style = style.Background(th.Highlight).Bold(true)
		}
		line := t.renderLine(func(c leadColumn) string { return c.get(lead) })
		b.WriteString(style.Render(line))
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// renderLine lays the column cells out with fixed widths, truncating
// wide values on a rune boundary.
func (t *LeadTable) renderLine(cell func(leadColumn) string) string {
	var parts []string
	for _, col := range leadColumns {
		v := reflowtrunc.StringWithTail(cell(col), uint(col.width), "…")
		pad := col.width - runewidth.StringWidth(v)
		if pad < 0 {
			pad = 0
		}
		parts = append(parts, v+strings.Repeat(" ", pad))
	}
	line := strings.Join(parts, "  ")
	if t.width > 0 {
		line = reflowtrunc.String(line, uint(t.width))
	}
	return line
}

// CursorInfo renders "row x/y" for the footer.
func (t *LeadTable) CursorInfo() string {
	if len(t.rows) == 0 {
		return "0/0"
	}
	return strconv.Itoa(t.cursor+1) + "/" + strconv.Itoa(len(t.rows))
}
