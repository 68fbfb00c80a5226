// Package config loads the panel configuration from a YAML file with
// environment-variable overrides, clamping tunables to sane ranges.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"leadpanel/pkg/filter"
)

// Debounce and batch bounds for the interactive path.
const (
	MinDebounce     = 150 * time.Millisecond
	MaxDebounce     = 450 * time.Millisecond
	DefaultDebounce = 300 * time.Millisecond

	MinBatchSize     = 200
	MaxBatchSize     = 400
	DefaultBatchSize = 250

	DefaultScrollThreshold = 60
)

// Endpoints selects the multi-value wire encoding per endpoint. Legacy
// deployments of the records/KPI services predate repeated-key support,
// so each endpoint is configured explicitly instead of guessed at.
type Endpoints struct {
	Leads  string `yaml:"leads"`
	KPIs   string `yaml:"kpis"`
	Export string `yaml:"export"`
}

// Config is the full panel configuration.
type Config struct {
	BaseURL string `yaml:"base_url"`

	ReadTimeout   time.Duration `yaml:"read_timeout"`
	IngestTimeout time.Duration `yaml:"ingest_timeout"`

	Debounce        time.Duration `yaml:"debounce"`
	BatchSize       int           `yaml:"batch_size"`
	ScrollThreshold int           `yaml:"scroll_threshold"`
	Limit           int           `yaml:"limit"`

	Encodings Endpoints `yaml:"encodings"`

	DropDir     string `yaml:"drop_dir"`
	ExportDir   string `yaml:"export_dir"`
	PresetsPath string `yaml:"presets_path"`
	LogPath     string `yaml:"log_path"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	home, _ := os.UserHomeDir()
	stateDir := filepath.Join(home, ".local", "share", "leadpanel")
	return Config{
		BaseURL:         "http://localhost:8080",
		ReadTimeout:     10 * time.Second,
		IngestTimeout:   5 * time.Minute,
		Debounce:        DefaultDebounce,
		BatchSize:       DefaultBatchSize,
		ScrollThreshold: DefaultScrollThreshold,
		Limit:           filter.DefaultLimit,
		ExportDir:       ".",
		PresetsPath:     filepath.Join(stateDir, "presets.db"),
		LogPath:         filepath.Join(stateDir, "leadpanel.log"),
	}
}

// DefaultPath returns the standard config file location.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "leadpanel", "config.yaml")
}

// Load reads the config file at path, applies env overrides, and clamps
// every tunable. A missing file is not an error: defaults apply.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}

	applyEnv(&cfg)
	cfg.clamp()

	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("LEADPANEL_BASE_URL")); v != "" {
		cfg.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("LEADPANEL_DROP_DIR")); v != "" {
		cfg.DropDir = v
	}
	if v := strings.TrimSpace(os.Getenv("LEADPANEL_LIMIT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Limit = n
		}
	}
}

func (c *Config) clamp() {
	if c.Debounce < MinDebounce {
		c.Debounce = MinDebounce
	}
	if c.Debounce > MaxDebounce {
		c.Debounce = MaxDebounce
	}
	if c.BatchSize < MinBatchSize {
		c.BatchSize = MinBatchSize
	}
	if c.BatchSize > MaxBatchSize {
		c.BatchSize = MaxBatchSize
	}
	if c.ScrollThreshold <= 0 {
		c.ScrollThreshold = DefaultScrollThreshold
	}
	c.Limit = filter.ClampLimit(c.Limit)
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = 10 * time.Second
	}
	if c.IngestTimeout <= 0 {
		c.IngestTimeout = 5 * time.Minute
	}
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return fmt.Errorf("base_url cannot be empty")
	}
	for name, raw := range map[string]string{
		"encodings.leads":  c.Encodings.Leads,
		"encodings.kpis":   c.Encodings.KPIs,
		"encodings.export": c.Encodings.Export,
	} {
		if _, ok := filter.ParseEncoding(raw); !ok {
			return fmt.Errorf("%s: unknown encoding %q (want repeated or delimited)", name, raw)
		}
	}
	return nil
}

// LeadsEncoding returns the compiled encoding for the records endpoint.
func (c *Config) LeadsEncoding() filter.Encoding {
	enc, _ := filter.ParseEncoding(c.Encodings.Leads)
	return enc
}

// KPIsEncoding returns the compiled encoding for the KPI endpoint.
func (c *Config) KPIsEncoding() filter.Encoding {
	enc, _ := filter.ParseEncoding(c.Encodings.KPIs)
	return enc
}

// ExportEncoding returns the compiled encoding for the export endpoint.
func (c *Config) ExportEncoding() filter.Encoding {
	enc, _ := filter.ParseEncoding(c.Encodings.Export)
	return enc
}
