package ui

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/textinput"

	"leadpanel/pkg/api"
	"leadpanel/pkg/config"
	"leadpanel/pkg/export"
	"leadpanel/pkg/fetch"
	"leadpanel/pkg/filter"
	"leadpanel/pkg/model"
	"leadpanel/pkg/options"
	"leadpanel/pkg/presets"
)

// Dashboard is the root model. It owns the selection store, the
// candidate index and the fetch orchestrator, and routes input to
// whichever overlay is open.
type Dashboard struct {
	cfg    config.Config
	client *api.Client
	store  *presets.Store
	logger *log.Logger

	selections *filter.Selections
	index      *options.Index
	orch       *fetch.Orchestrator[*api.LeadsResult, *model.KPISummary]

	scalars  map[model.Dimension]string
	dateFrom string
	dateTo   string
	limit    int

	// lastState is the snapshot behind the rows on screen. Exports and
	// preset saves use it, not a fresh snapshot, so they match what the
	// user is looking at.
	lastState filter.State

	kpis *model.KPISummary

	table       LeadTable
	multiSelect MultiSelectModel
	scalarInput ScalarInputModel
	dateRange   DateRangeModel
	ingestForm  IngestFormModel
	picker      PresetPickerModel
	help        HelpOverlayModel

	saveInput  textinput.Model
	savePrompt bool
	dirty      bool
	loading    bool
	dropFiles  <-chan string
	toast      string
	toastIsErr bool
	width      int
	height     int
	theme      Theme
}

// NewDashboard wires the dashboard together.
func NewDashboard(cfg config.Config, client *api.Client, store *presets.Store, dropFiles <-chan string, logger *log.Logger) *Dashboard {
	theme := DefaultTheme()
	index := options.NewIndex()
	selections := filter.NewSelections()

	saveInput := textinput.New()
	saveInput.Placeholder = "preset name"
	saveInput.CharLimit = 48
	saveInput.Width = 32

	d := &Dashboard{
		cfg:         cfg,
		client:      client,
		store:       store,
		logger:      logger,
		selections:  selections,
		index:       index,
		orch:        fetch.New[*api.LeadsResult, *model.KPISummary](logger),
		scalars:     make(map[model.Dimension]string),
		limit:       cfg.Limit,
		lastState:   emptyState(cfg.Limit),
		table:       NewLeadTable(theme),
		multiSelect: NewMultiSelectModel(index, selections, cfg.BatchSize, cfg.ScrollThreshold, theme),
		scalarInput: NewScalarInputModel(theme),
		dateRange:   NewDateRangeModel(theme),
		ingestForm:  NewIngestFormModel(theme),
		picker:      NewPresetPickerModel(theme),
		help:        NewHelpOverlayModel(theme),
		saveInput:   saveInput,
		loading:     true,
		dropFiles:   dropFiles,
		theme:       theme,
	}

	selections.OnChange = func(model.Dimension) {
		d.dirty = true
	}

	return d
}

// Init issues the startup batch and arms the drop watcher.
func (d *Dashboard) Init() tea.Cmd {
	st := emptyState(d.cfg.Limit)
	leads, kpis := compileParams(st, d.cfg.LeadsEncoding(), d.cfg.KPIsEncoding())
	cmds := []tea.Cmd{initialLoadCmd(d.client, leads, kpis)}
	if d.dropFiles != nil {
		cmds = append(cmds, waitDropCmd(d.dropFiles))
	}
	return tea.Batch(cmds...)
}

// Update routes messages.
func (d *Dashboard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		d.setSize(msg.Width, msg.Height)
		return d, nil

	case initialLoadMsg:
		d.loading = false
		if msg.err != nil {
			d.setToast(fmt.Sprintf("Startup load failed: %v", msg.err), true)
			return d, nil
		}
		d.applyOptions(msg.options)
		d.table.SetRows(msg.records.Rows)
		d.kpis = msg.kpis
		d.setToast(fmt.Sprintf("Loaded %d leads", msg.records.Count), false)
		return d, nil

	case debounceMsg:
		epoch, live := d.orch.TimerFired(msg.seq)
		if !live {
			return d, nil
		}
		st := d.snapshot()
		d.lastState = st
		leads, kpis := compileParams(st, d.cfg.LeadsEncoding(), d.cfg.KPIsEncoding())
		return d, fetchEpochCmds(d.client, epoch, leads, kpis)

	case recordsMsg:
		if msg.err != nil {
			if d.orch.Fail(msg.epoch, msg.err) {
				d.setToast(fmt.Sprintf("Leads request failed: %v", msg.err), true)
			}
			return d, nil
		}
		d.applyPair(d.orch.RecordsArrived(msg.epoch, msg.records))
		return d, nil

	case kpisMsg:
		if msg.err != nil {
			if d.orch.Fail(msg.epoch, msg.err) {
				d.setToast(fmt.Sprintf("KPI request failed: %v", msg.err), true)
			}
			return d, nil
		}
		d.applyPair(d.orch.KPIsArrived(msg.epoch, msg.kpis))
		return d, nil

	case optionsRefreshedMsg:
		if msg.err != nil {
			d.setToast(fmt.Sprintf("Option refresh failed: %v", msg.err), true)
			return d, nil
		}
		d.applyOptions(msg.options)
		return d, nil

	case ingestDoneMsg:
		if msg.err != nil {
			d.setToast(fmt.Sprintf("Ingest of %s failed: %v", msg.path, msg.err), true)
			return d, nil
		}
		d.setToast(fmt.Sprintf("Ingested %s: %d rows", msg.result.Filename, msg.result.RowsLoaded), false)
		// New rows can shift every panel, so refresh the candidate
		// lists and schedule a fetch cycle like any other mutation.
		d.dirty = true
		return d, tea.Batch(refreshOptionsCmd(d.client), d.armIfDirty())

	case exportDoneMsg:
		if msg.err != nil {
			d.setToast(fmt.Sprintf("Export failed: %v", msg.err), true)
		} else {
			d.setToast("Exported to "+msg.path, false)
		}
		return d, nil

	case dropFileMsg:
		if !msg.ok {
			return d, nil
		}
		d.setToast("Ingesting dropped file "+msg.path, false)
		return d, tea.Batch(
			ingestCmd(d.client, msg.path, "DROP_DIR"),
			waitDropCmd(d.dropFiles),
		)

	case tea.KeyMsg:
		return d.handleKey(msg)

	default:
		// huh drives field focus with its own internal messages.
		if d.ingestForm.IsVisible() {
			return d, d.routeToIngestForm(msg)
		}
	}

	return d, nil
}

func (d *Dashboard) routeToIngestForm(msg tea.Msg) tea.Cmd {
	cmd, done, submit := d.ingestForm.Update(msg)
	if done && submit {
		d.setToast("Uploading "+d.ingestForm.Path(), false)
		return tea.Batch(cmd, ingestCmd(d.client, d.ingestForm.Path(), d.ingestForm.Source()))
	}
	return cmd
}

func (d *Dashboard) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return d, tea.Quit
	}

	if d.help.IsVisible() {
		d.help.Hide()
		return d, nil
	}

	if d.ingestForm.IsVisible() {
		return d, d.routeToIngestForm(msg)
	}

	if d.savePrompt {
		return d, d.handleSavePromptKey(key)
	}

	if d.multiSelect.IsVisible() {
		if key == "esc" || key == "enter" {
			d.multiSelect.Close()
			return d, d.armIfDirty()
		}
		_, toggled := d.multiSelect.Update(key)
		if toggled != "" && d.store != nil && d.selections.Contains(d.multiSelect.Dimension(), toggled) {
			if err := d.store.TouchRecent(d.multiSelect.Dimension(), toggled); err != nil {
				d.logger.Printf("recent values: %v", err)
			}
		}
		// Each toggle arms its own debounce; the overlay stays open
		// while the table and KPIs behind it refresh.
		return d, d.armIfDirty()
	}

	if d.scalarInput.IsVisible() {
		done, ok, value := d.scalarInput.Update(key)
		if done && ok {
			d.setScalar(d.scalarInput.Dimension(), value)
			return d, d.armIfDirty()
		}
		return d, nil
	}

	if d.dateRange.IsVisible() {
		done, ok, from, to := d.dateRange.Update(key)
		if done && ok && (from != d.dateFrom || to != d.dateTo) {
			d.dateFrom, d.dateTo = from, to
			d.dirty = true
			return d, d.armIfDirty()
		}
		return d, nil
	}

	if d.picker.IsVisible() {
		done, chosen, del := d.picker.Update(key)
		switch {
		case del:
			if err := d.store.Delete(chosen); err != nil {
				d.setToast(fmt.Sprintf("Delete preset: %v", err), true)
			}
			return d, nil
		case done && chosen != "":
			return d, d.loadPreset(chosen)
		}
		return d, nil
	}

	switch key {
	case "q":
		return d, tea.Quit
	case "?":
		d.help.Show()
	case "up", "k":
		d.table.MoveUp()
	case "down", "j":
		d.table.MoveDown()
	case "s":
		d.multiSelect.Open(model.DimStatus)
	case "c":
		d.multiSelect.Open(model.DimCourse)
	case "h":
		d.multiSelect.Open(model.DimHub)
	case "o":
		d.multiSelect.Open(model.DimOrigin)
	case "S":
		d.scalarInput.Open(model.DimStatus, d.scalars[model.DimStatus])
	case "C":
		d.scalarInput.Open(model.DimCourse, d.scalars[model.DimCourse])
	case "H":
		d.scalarInput.Open(model.DimHub, d.scalars[model.DimHub])
	case "O":
		d.scalarInput.Open(model.DimOrigin, d.scalars[model.DimOrigin])
	case "d":
		d.dateRange.Open(d.dateFrom, d.dateTo)
	case "x":
		d.clearFilters()
		return d, d.armIfDirty()
	case "r":
		d.setToast("Refreshing option lists", false)
		return d, refreshOptionsCmd(d.client)
	case "u":
		return d, d.ingestForm.Open()
	case "e":
		return d, d.localCSVCmd()
	case "E":
		return d, d.serverExport()
	case "v":
		return d, d.statusChartCmd()
	case "y":
		d.copySelectedRow()
	case "p":
		return d, d.openPicker()
	case "P":
		d.savePrompt = true
		d.saveInput.SetValue("")
		d.saveInput.Focus()
	}

	return d, nil
}

func (d *Dashboard) handleSavePromptKey(key string) tea.Cmd {
	switch key {
	case "esc":
		d.savePrompt = false
		d.saveInput.Blur()
	case "enter":
		name := strings.TrimSpace(d.saveInput.Value())
		d.savePrompt = false
		d.saveInput.Blur()
		if name == "" {
			return nil
		}
		if err := d.store.Save(name, d.snapshot()); err != nil {
			d.setToast(fmt.Sprintf("Save preset: %v", err), true)
		} else {
			d.setToast("Saved preset "+name, false)
		}
	case "backspace":
		v := d.saveInput.Value()
		if len(v) > 0 {
			d.saveInput.SetValue(v[:len(v)-1])
		}
	default:
		if isPrintableKey(key) {
			d.saveInput.SetValue(d.saveInput.Value() + key)
		}
	}
	return nil
}

// armIfDirty converts accumulated mutations into one debounce timer.
// Every call invalidates earlier timers through the orchestrator's
// sequence counter, so rapid edits collapse into a single fetch.
func (d *Dashboard) armIfDirty() tea.Cmd {
	if !d.dirty {
		return nil
	}
	d.dirty = false
	seq := d.orch.NoteMutation()
	return debounceCmd(seq, d.cfg.Debounce)
}

func (d *Dashboard) snapshot() filter.State {
	return filter.Snapshot(d.selections, d.scalars, d.dateFrom, d.dateTo, d.limit)
}

// setScalar updates one dimension's free-text filter; a mutation only
// when the stored value actually changes.
func (d *Dashboard) setScalar(dim model.Dimension, value string) {
	if d.scalars[dim] == value {
		return
	}
	if value == "" {
		delete(d.scalars, dim)
	} else {
		d.scalars[dim] = value
	}
	d.dirty = true
}

// applyPair commits a settled epoch to the screen. A nil pair means the
// epoch is still waiting for its other half (or was stale).
func (d *Dashboard) applyPair(pair *fetch.Pair[*api.LeadsResult, *model.KPISummary]) {
	if pair == nil {
		return
	}
	d.table.SetRows(pair.Records.Rows)
	d.kpis = pair.KPIs
	d.setToast(fmt.Sprintf("%d leads match", pair.Records.Count), false)
}

func (d *Dashboard) applyOptions(res *api.OptionsResult) {
	for _, dim := range model.Dimensions {
		d.index.Refresh(dim, res.ForDimension(dim))
	}
	if d.multiSelect.IsVisible() {
		d.multiSelect.CandidatesRefreshed()
	}
}

func (d *Dashboard) clearFilters() {
	d.selections.ClearAll()
	if len(d.scalars) > 0 {
		d.scalars = make(map[model.Dimension]string)
		d.dirty = true
	}
	if d.dateFrom != "" || d.dateTo != "" {
		d.dateFrom, d.dateTo = "", ""
		d.dirty = true
	}
}

func (d *Dashboard) loadPreset(name string) tea.Cmd {
	p, err := d.store.Load(name)
	if err != nil {
		d.setToast(fmt.Sprintf("Load preset: %v", err), true)
		return nil
	}
	d.selections.ClearAll()
	for dim, values := range p.State.Multi {
		for _, v := range values {
			d.selections.Add(dim, v)
		}
	}
	d.scalars = make(map[model.Dimension]string)
	for dim, v := range p.State.Scalars {
		d.scalars[dim] = v
	}
	d.dateFrom = p.State.DateFrom
	d.dateTo = p.State.DateTo
	if p.State.Limit > 0 {
		d.limit = filter.ClampLimit(p.State.Limit)
	}
	d.dirty = true
	d.setToast("Applied preset "+name, false)
	return d.armIfDirty()
}

func (d *Dashboard) openPicker() tea.Cmd {
	list, err := d.store.List()
	if err != nil {
		d.setToast(fmt.Sprintf("List presets: %v", err), true)
		return nil
	}
	names := make([]string, len(list))
	for i, p := range list {
		names[i] = p.Name
	}
	d.picker.Open(names)
	return nil
}

func (d *Dashboard) localCSVCmd() tea.Cmd {
	rows := d.table.Rows()
	dir := d.cfg.ExportDir
	return func() tea.Msg {
		path, err := export.SaveCSV(dir, rows, time.Now())
		return exportDoneMsg{path: path, err: err}
	}
}

func (d *Dashboard) serverExport() tea.Cmd {
	params := filter.CompileExport(d.lastState, d.cfg.ExportEncoding(), filter.DefaultExportLimit)
	dest := filepath.Join(d.cfg.ExportDir, export.CSVFilename(time.Now()))
	d.setToast("Requesting server export", false)
	return serverExportCmd(d.client, params, dest)
}

func (d *Dashboard) statusChartCmd() tea.Cmd {
	if d.kpis == nil || len(d.kpis.ByStatus) == 0 {
		d.setToast("No status breakdown to chart yet", true)
		return nil
	}
	byStatus := d.kpis.ByStatus
	dir := d.cfg.ExportDir
	return func() tea.Msg {
		path, err := export.SaveStatusChart(dir, byStatus, time.Now())
		return exportDoneMsg{path: path, err: err}
	}
}

func (d *Dashboard) copySelectedRow() {
	lead, ok := d.table.Selected()
	if !ok {
		d.setToast("No row selected", true)
		return
	}
	line := strings.Join([]string{
		lead.EnrollDate, lead.Name, lead.Document, lead.Phone, lead.Email,
		lead.Origin, lead.Hub, lead.Course, lead.Status, lead.Advisor,
	}, "\t")
	if err := clipboard.WriteAll(line); err != nil {
		d.setToast(fmt.Sprintf("Clipboard: %v", err), true)
		return
	}
	d.setToast("Copied "+lead.Name, false)
}

func (d *Dashboard) setToast(text string, isErr bool) {
	d.toast = text
	d.toastIsErr = isErr
	if isErr {
		d.logger.Print(text)
	}
}

func (d *Dashboard) setSize(width, height int) {
	d.width = width
	d.height = height
	d.table.SetSize(width, height-reservedRows)
	d.multiSelect.SetSize(width, height)
	d.scalarInput.SetSize(width, height)
	d.dateRange.SetSize(width, height)
	d.ingestForm.SetSize(width, height)
	d.picker.SetSize(width, height)
	d.help.SetSize(width, height)
}
