package ui

import (
	"context"
	"net/url"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"leadpanel/pkg/api"
	"leadpanel/pkg/fetch"
	"leadpanel/pkg/filter"
)

// initialLoadCmd fetches the candidate lists and the unfiltered first
// page concurrently. Startup is the one place the three reads share a
// fate: without options the panel cannot filter anyway.
func initialLoadCmd(client *api.Client, leadsParams, kpiParams url.Values) tea.Cmd {
	return func() tea.Msg {
		var msg initialLoadMsg
		g, ctx := errgroup.WithContext(context.Background())
		g.Go(func() error {
			var err error
			msg.options, err = client.Options(ctx)
			return err
		})
		g.Go(func() error {
			var err error
			msg.records, err = client.Leads(ctx, leadsParams)
			return err
		})
		g.Go(func() error {
			var err error
			msg.kpis, err = client.KPIs(ctx, kpiParams)
			return err
		})
		msg.err = g.Wait()
		return msg
	}
}

// debounceCmd arms the debounce timer for one mutation sequence.
func debounceCmd(seq uint64, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return debounceMsg{seq: seq}
	})
}

// fetchEpochCmds issues the records and KPI requests of one epoch as
// two independent commands, so the halves arrive (and are paired by the
// orchestrator) in whatever order the network produces.
func fetchEpochCmds(client *api.Client, epoch fetch.Epoch, leadsParams, kpiParams url.Values) tea.Cmd {
	records := func() tea.Msg {
		res, err := client.Leads(context.Background(), leadsParams)
		return recordsMsg{epoch: epoch, records: res, err: err}
	}
	kpis := func() tea.Msg {
		res, err := client.KPIs(context.Background(), kpiParams)
		return kpisMsg{epoch: epoch, kpis: res, err: err}
	}
	return tea.Batch(records, kpis)
}

// refreshOptionsCmd re-fetches the candidate lists.
func refreshOptionsCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		res, err := client.Options(context.Background())
		return optionsRefreshedMsg{options: res, err: err}
	}
}

// ingestCmd uploads one file to the ingestion endpoint.
func ingestCmd(client *api.Client, path, source string) tea.Cmd {
	return func() tea.Msg {
		res, err := client.Ingest(context.Background(), path, source)
		return ingestDoneMsg{result: res, path: path, err: err}
	}
}

// serverExportCmd downloads the server-side CSV projection to destPath.
func serverExportCmd(client *api.Client, params url.Values, destPath string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Create(destPath)
		if err != nil {
			return exportDoneMsg{err: err}
		}
		defer f.Close()
		if _, err := client.Export(context.Background(), params, f); err != nil {
			os.Remove(destPath)
			return exportDoneMsg{err: err}
		}
		return exportDoneMsg{path: destPath}
	}
}

// waitDropCmd waits for the next settled file from the drop watcher.
func waitDropCmd(files <-chan string) tea.Cmd {
	return func() tea.Msg {
		path, ok := <-files
		return dropFileMsg{path: path, ok: ok}
	}
}

// compileParams builds both endpoints' parameter sets for one snapshot.
func compileParams(st filter.State, leadsEnc, kpiEnc filter.Encoding) (leads, kpis url.Values) {
	return filter.Compile(st, leadsEnc), filter.Compile(st, kpiEnc)
}

// emptyState returns the unfiltered snapshot used at startup.
func emptyState(limit int) filter.State {
	return filter.State{Limit: limit}
}
