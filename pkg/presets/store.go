// Package presets persists named filter states and recently used
// selection values in a local sqlite database, so an operator's common
// filter combinations survive sessions.
package presets

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"leadpanel/pkg/filter"
	"leadpanel/pkg/model"
)

// Preset is one saved filter state.
type Preset struct {
	Name      string
	State     filter.State
	UpdatedAt time.Time
}

// Store handles preset persistence.
type Store struct {
	db *sql.DB
}

// Open opens or creates the preset database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS presets (
		name TEXT PRIMARY KEY,
		state TEXT NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS recent_values (
		dimension TEXT NOT NULL,
		value TEXT NOT NULL,
		uses INTEGER NOT NULL DEFAULT 1,
		last_used DATETIME NOT NULL,
		PRIMARY KEY (dimension, value)
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Save stores or replaces a preset under the given name.
func (s *Store) Save(name string, state filter.State) error {
	if name == "" {
		return fmt.Errorf("preset name cannot be empty")
	}
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO presets (name, state, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET state = excluded.state, updated_at = excluded.updated_at`,
		name, string(raw), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save preset: %w", err)
	}
	return nil
}

// Load returns the preset with the given name.
func (s *Store) Load(name string) (*Preset, error) {
	var raw string
	var updated time.Time
	err := s.db.QueryRow(
		`SELECT state, updated_at FROM presets WHERE name = ?`, name,
	).Scan(&raw, &updated)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("preset not found: %s", name)
	}
	if err != nil {
		return nil, fmt.Errorf("load preset: %w", err)
	}

	var state filter.State
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return nil, fmt.Errorf("decode preset state: %w", err)
	}
	return &Preset{Name: name, State: state, UpdatedAt: updated}, nil
}

// List returns every preset, most recently updated first.
func (s *Store) List() ([]Preset, error) {
	rows, err := s.db.Query(`SELECT name, state, updated_at FROM presets ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list presets: %w", err)
	}
	defer rows.Close()

	var out []Preset
	for rows.Next() {
		var p Preset
		var raw string
		if err := rows.Scan(&p.Name, &raw, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan preset: %w", err)
		}
		if err := json.Unmarshal([]byte(raw), &p.State); err != nil {
			return nil, fmt.Errorf("decode preset %s: %w", p.Name, err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Delete removes a preset by name.
func (s *Store) Delete(name string) error {
	_, err := s.db.Exec(`DELETE FROM presets WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete preset: %w", err)
	}
	return nil
}

// TouchRecent records that a value was just selected for a dimension.
func (s *Store) TouchRecent(dim model.Dimension, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO recent_values (dimension, value, uses, last_used) VALUES (?, ?, 1, ?)
		 ON CONFLICT(dimension, value) DO UPDATE SET uses = uses + 1, last_used = excluded.last_used`,
		string(dim), value, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("touch recent value: %w", err)
	}
	return nil
}

// Recent returns up to limit recently used values for a dimension,
// newest first.
func (s *Store) Recent(dim model.Dimension, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(
		`SELECT value FROM recent_values WHERE dimension = ? ORDER BY last_used DESC LIMIT ?`,
		string(dim), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query recent values: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan recent value: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
