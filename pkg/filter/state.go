package filter

import (
	"fmt"
	"strings"
	"time"

	"leadpanel/pkg/model"
)

// Row cap bounds enforced client-side before transmission. The server
// clamps too, but an accidental unbounded request should never leave
// the client.
const (
	MinLimit     = 50
	MaxLimit     = 5000
	DefaultLimit = 500

	MinExportLimit     = 1000
	MaxExportLimit     = 500000
	DefaultExportLimit = 200000
)

// State is one immutable snapshot of every filter consumed by a fetch
// cycle. The orchestrator captures a State when the debounce settles;
// later user input builds a new State instead of mutating one in flight.
type State struct {
	// Scalars carries single-value filters for dimensions driven as
	// plain text (legacy mode); empty strings are omitted on the wire.
	Scalars map[model.Dimension]string `json:"scalars,omitempty"`

	// Multi carries the selection snapshot per dimension, in insertion
	// order.
	Multi map[model.Dimension][]string `json:"multi,omitempty"`

	// DateFrom and DateTo are inclusive ISO dates (YYYY-MM-DD); empty
	// means that bound is open.
	DateFrom string `json:"date_from,omitempty"`
	DateTo   string `json:"date_to,omitempty"`

	// Limit is the result-size cap; zero means DefaultLimit.
	Limit int `json:"limit,omitempty"`
}

// Snapshot builds a State from the live selection store plus the scalar
// inputs, date bounds and row cap. The returned value shares no maps or
// slices with its inputs.
func Snapshot(sel *Selections, scalars map[model.Dimension]string, dateFrom, dateTo string, limit int) State {
	st := State{
		DateFrom: strings.TrimSpace(dateFrom),
		DateTo:   strings.TrimSpace(dateTo),
		Limit:    limit,
	}
	for dim, v := range scalars {
		if v = strings.TrimSpace(v); v != "" {
			if st.Scalars == nil {
				st.Scalars = make(map[model.Dimension]string)
			}
			st.Scalars[dim] = v
		}
	}
	for _, dim := range model.Dimensions {
		if vals := sel.Values(dim); len(vals) > 0 {
			if st.Multi == nil {
				st.Multi = make(map[model.Dimension][]string)
			}
			st.Multi[dim] = vals
		}
	}
	return st
}

// IsZero reports whether the state carries no filters at all.
func (s State) IsZero() bool {
	if s.DateFrom != "" || s.DateTo != "" {
		return false
	}
	for _, v := range s.Scalars {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	for _, vals := range s.Multi {
		if len(vals) > 0 {
			return false
		}
	}
	return true
}

// Summary renders a short human-readable description of the active
// filters for the dashboard header.
func (s State) Summary() string {
	var parts []string
	for _, dim := range model.Dimensions {
		if v := strings.TrimSpace(s.Scalars[dim]); v != "" {
			parts = append(parts, fmt.Sprintf("%s=%s", dim.Title(), v))
		}
		if n := len(s.Multi[dim]); n == 1 {
			parts = append(parts, fmt.Sprintf("%s=%s", dim.Title(), s.Multi[dim][0]))
		} else if n > 1 {
			parts = append(parts, fmt.Sprintf("%s(%d)", dim.Title(), n))
		}
	}
	if s.DateFrom != "" || s.DateTo != "" {
		parts = append(parts, fmt.Sprintf("%s..%s", s.DateFrom, s.DateTo))
	}
	if len(parts) == 0 {
		return "no filters"
	}
	return strings.Join(parts, "  ")
}

// ValidDate reports whether v is empty or a parseable ISO date.
func ValidDate(v string) bool {
	v = strings.TrimSpace(v)
	if v == "" {
		return true
	}
	_, err := time.Parse("2006-01-02", v)
	return err == nil
}

// ClampLimit bounds a requested row cap to the interactive range.
func ClampLimit(n int) int {
	if n <= 0 {
		n = DefaultLimit
	}
	if n < MinLimit {
		return MinLimit
	}
	if n > MaxLimit {
		return MaxLimit
	}
	return n
}

// ClampExportLimit bounds a requested export cap.
func ClampExportLimit(n int) int {
	if n <= 0 {
		n = DefaultExportLimit
	}
	if n < MinExportLimit {
		return MinExportLimit
	}
	if n > MaxExportLimit {
		return MaxExportLimit
	}
	return n
}
