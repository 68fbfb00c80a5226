// Package watcher observes a drop directory for freshly written lead
// files and hands settled files to the ingestion path. File managers
// and downloaders emit bursts of write events per file, so each path is
// debounced until it stops changing.
package watcher

import (
	"sync"
	"time"
)

// DefaultSettleDuration is how long a file must stay quiet before it is
// considered fully written.
const DefaultSettleDuration = 2 * time.Second

// Debouncer coalesces rapid triggers into a single callback invocation.
// When Trigger is called multiple times within the window, only the
// last callback runs after the window elapses.
type Debouncer struct {
	duration time.Duration
	timer    *time.Timer
	mu       sync.Mutex
	seq      uint64
}

// NewDebouncer creates a Debouncer with the given window. A zero
// duration falls back to DefaultSettleDuration.
func NewDebouncer(duration time.Duration) *Debouncer {
	if duration == 0 {
		duration = DefaultSettleDuration
	}
	return &Debouncer{duration: duration}
}

// Trigger schedules callback after the window. Calling Trigger again
// before the window elapses cancels the previously scheduled callback.
func (d *Debouncer) Trigger(callback func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	seq := d.seq

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.duration, func() {
		d.mu.Lock()
		// Only the most recently scheduled callback may run; Stop can
		// return false when the timer already fired and the old
		// callback is racing us.
		live := seq == d.seq
		if live {
			d.timer = nil
		}
		d.mu.Unlock()
		if live {
			callback()
		}
	})
}

// Cancel drops any pending callback.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Duration returns the settle window.
func (d *Debouncer) Duration() time.Duration {
	return d.duration
}
