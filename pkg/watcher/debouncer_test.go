package watcher

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncer_CoalescesBurst(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)
	var calls atomic.Int32

	for i := 0; i < 10; i++ {
		d.Trigger(func() { calls.Add(1) })
		time.Sleep(2 * time.Millisecond)
	}

	time.Sleep(200 * time.Millisecond)
	if got := calls.Load(); got != 1 {
		t.Errorf("expected 1 callback for a burst, got %d", got)
	}
}

func TestDebouncer_Cancel(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	var calls atomic.Int32

	d.Trigger(func() { calls.Add(1) })
	d.Cancel()

	time.Sleep(100 * time.Millisecond)
	if got := calls.Load(); got != 0 {
		t.Errorf("cancelled callback still ran %d times", got)
	}
}

func TestDebouncer_SeparateBurstsFireSeparately(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var calls atomic.Int32

	d.Trigger(func() { calls.Add(1) })
	time.Sleep(80 * time.Millisecond)
	d.Trigger(func() { calls.Add(1) })
	time.Sleep(80 * time.Millisecond)

	if got := calls.Load(); got != 2 {
		t.Errorf("expected 2 callbacks for separate bursts, got %d", got)
	}
}

func TestIsIngestable(t *testing.T) {
	cases := map[string]bool{
		"leads.csv":       true,
		"Leads.XLSX":      true,
		"legacy.xls":      true,
		"notes.txt":       false,
		"leads.csv.part":  false,
		"partial.csv.tmp": false,
	}
	for path, want := range cases {
		if got := IsIngestable(path); got != want {
			t.Errorf("IsIngestable(%q) = %v, want %v", path, got, want)
		}
	}
}
