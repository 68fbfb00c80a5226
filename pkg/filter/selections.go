// Package filter holds the selection state for the multi-valued filter
// dimensions and compiles filter snapshots into the wire query parameters
// the leads endpoints expect.
package filter

import (
	"strings"

	"leadpanel/pkg/model"
)

// Selections tracks the chosen values per multi-valued dimension.
// Values are unique under case-insensitive trimmed comparison and keep
// their insertion order for display. All operations are total: adding a
// duplicate or removing an absent value is a no-op.
type Selections struct {
	values map[model.Dimension][]string

	// OnChange, when set, is called synchronously before every mutating
	// call returns, so dependent surfaces (chips, rows, the fetch
	// debounce) never observe a half-applied mutation.
	OnChange func(model.Dimension)
}

// NewSelections creates an empty selection store.
func NewSelections() *Selections {
	return &Selections{values: make(map[model.Dimension][]string)}
}

// canonValue is the equality key: trimmed, upper-cased.
func canonValue(v string) string {
	return strings.ToUpper(strings.TrimSpace(v))
}

// Add inserts value for the dimension unless an equal entry already exists.
func (s *Selections) Add(dim model.Dimension, value string) {
	v := strings.TrimSpace(value)
	if v == "" {
		return
	}
	key := canonValue(v)
	for _, existing := range s.values[dim] {
		if canonValue(existing) == key {
			return
		}
	}
	s.values[dim] = append(s.values[dim], v)
	s.notify(dim)
}

// Remove deletes the entry equal to value, if present.
func (s *Selections) Remove(dim model.Dimension, value string) {
	key := canonValue(value)
	vals := s.values[dim]
	for i, existing := range vals {
		if canonValue(existing) == key {
			s.values[dim] = append(vals[:i:i], vals[i+1:]...)
			s.notify(dim)
			return
		}
	}
}

// Toggle adds the value if absent and removes it if present.
// Returns true if the value is selected after the call.
func (s *Selections) Toggle(dim model.Dimension, value string) bool {
	if s.Contains(dim, value) {
		s.Remove(dim, value)
		return false
	}
	s.Add(dim, value)
	return true
}

// Clear empties the selection for one dimension.
func (s *Selections) Clear(dim model.Dimension) {
	if len(s.values[dim]) == 0 {
		return
	}
	delete(s.values, dim)
	s.notify(dim)
}

// ClearAll empties every dimension.
func (s *Selections) ClearAll() {
	for _, dim := range model.Dimensions {
		s.Clear(dim)
	}
}

// Contains reports whether value is selected for the dimension.
func (s *Selections) Contains(dim model.Dimension, value string) bool {
	key := canonValue(value)
	for _, existing := range s.values[dim] {
		if canonValue(existing) == key {
			return true
		}
	}
	return false
}

// Values returns a copy of the current selection in insertion order.
func (s *Selections) Values(dim model.Dimension) []string {
	vals := s.values[dim]
	if len(vals) == 0 {
		return nil
	}
	out := make([]string, len(vals))
	copy(out, vals)
	return out
}

// Len returns the number of selected values for the dimension.
func (s *Selections) Len(dim model.Dimension) int {
	return len(s.values[dim])
}

// Total returns the number of selected values across all dimensions.
func (s *Selections) Total() int {
	n := 0
	for _, vals := range s.values {
		n += len(vals)
	}
	return n
}

func (s *Selections) notify(dim model.Dimension) {
	if s.OnChange != nil {
		s.OnChange(dim)
	}
}
