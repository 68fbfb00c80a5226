package ui

import (
	"leadpanel/pkg/api"
	"leadpanel/pkg/fetch"
	"leadpanel/pkg/model"
)

// initialLoadMsg carries the startup batch: candidate lists plus the
// first unfiltered records/KPI pair.
type initialLoadMsg struct {
	options *api.OptionsResult
	records *api.LeadsResult
	kpis    *model.KPISummary
	err     error
}

// debounceMsg is a debounce timer expiry. seq identifies which armed
// timer fired; superseded timers are dead on arrival.
type debounceMsg struct {
	seq uint64
}

// recordsMsg is the records half of an epoch's request pair.
type recordsMsg struct {
	epoch   fetch.Epoch
	records *api.LeadsResult
	err     error
}

// kpisMsg is the KPI half of an epoch's request pair.
type kpisMsg struct {
	epoch fetch.Epoch
	kpis  *model.KPISummary
	err   error
}

// optionsRefreshedMsg carries re-fetched candidate lists (after a
// successful ingestion).
type optionsRefreshedMsg struct {
	options *api.OptionsResult
	err     error
}

// ingestDoneMsg reports a completed upload-and-promote run.
type ingestDoneMsg struct {
	result *api.IngestResult
	path   string
	err    error
}

// exportDoneMsg reports a finished export (local CSV, SVG chart, or a
// server-side download).
type exportDoneMsg struct {
	path string
	err  error
}

// dropFileMsg is a settled file detected in the watched drop directory.
type dropFileMsg struct {
	path string
	ok   bool
}
