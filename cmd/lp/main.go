package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"leadpanel/pkg/api"
	"leadpanel/pkg/config"
	"leadpanel/pkg/presets"
	"leadpanel/pkg/ui"
	"leadpanel/pkg/watcher"
)

const appVersion = "0.1.0"

func main() {
	configPath := flag.String("config", "", "Path to config file (default ~/.config/leadpanel/config.yaml)")
	baseURL := flag.String("url", "", "Override the panel API base URL")
	help := flag.Bool("help", false, "Show help")
	version := flag.Bool("version", false, "Show version")
	flag.Parse()

	if *help {
		fmt.Println("Usage: lp [options]")
		fmt.Println("\nA terminal dashboard for the leads panel API.")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *version {
		fmt.Println("lp version " + appVersion)
		os.Exit(0)
	}

	path := *configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *baseURL != "" {
		cfg.BaseURL = *baseURL
	}

	logger, logClose, err := openLogger(cfg.LogPath)
	if err != nil {
		fmt.Printf("Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer logClose()

	client := api.NewClient(cfg.BaseURL,
		api.WithReadTimeout(cfg.ReadTimeout),
		api.WithIngestTimeout(cfg.IngestTimeout),
		api.WithLogger(logger),
	)

	store, err := presets.Open(cfg.PresetsPath)
	if err != nil {
		fmt.Printf("Error opening presets store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var dropFiles <-chan string
	if cfg.DropDir != "" {
		dw := watcher.NewDropWatcher(cfg.DropDir, watcher.DefaultSettleDuration)
		dropFiles = dw.Files()
		go func() {
			if err := dw.Run(ctx); err != nil {
				logger.Printf("drop watcher stopped: %v", err)
			}
		}()
	}

	if err := os.MkdirAll(cfg.ExportDir, 0o755); err != nil {
		fmt.Printf("Error creating export directory: %v\n", err)
		os.Exit(1)
	}

	m := ui.NewDashboard(cfg, client, store, dropFiles, logger)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running lead panel: %v\n", err)
		os.Exit(1)
	}
}

// openLogger appends to the configured log file so diagnostics survive
// the alternate screen. An empty path discards log output.
func openLogger(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(os.Stderr, "", log.LstdFlags), func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return log.New(f, "", log.LstdFlags), func() { f.Close() }, nil
}
