package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// IsIngestable reports whether a filename looks like a lead upload.
func IsIngestable(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".xlsx", ".xls":
		return true
	}
	return false
}

// DropWatcher watches a directory for new lead files. Each ingestable
// path gets its own settle debouncer; once a file stops changing it is
// sent on Files exactly once per write burst.
type DropWatcher struct {
	dir    string
	settle time.Duration

	mu        sync.Mutex
	perFile   map[string]*Debouncer
	filesChan chan string
}

// NewDropWatcher creates a watcher for dir. A zero settle duration
// falls back to DefaultSettleDuration.
func NewDropWatcher(dir string, settle time.Duration) *DropWatcher {
	if settle == 0 {
		settle = DefaultSettleDuration
	}
	return &DropWatcher{
		dir:       dir,
		settle:    settle,
		perFile:   make(map[string]*Debouncer),
		filesChan: make(chan string, 16),
	}
}

// Files delivers settled, ingestable file paths.
func (w *DropWatcher) Files() <-chan string {
	return w.filesChan
}

// Run watches the directory until ctx is cancelled. It blocks, so the
// caller runs it in a goroutine; settled paths arrive on Files.
func (w *DropWatcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fs watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !IsIngestable(event.Name) {
				continue
			}
			w.noteActivity(ctx, event.Name)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("fs watcher: %w", err)
		}
	}
}

func (w *DropWatcher) noteActivity(ctx context.Context, path string) {
	w.mu.Lock()
	deb, exists := w.perFile[path]
	if !exists {
		deb = NewDebouncer(w.settle)
		w.perFile[path] = deb
	}
	w.mu.Unlock()

	deb.Trigger(func() {
		w.mu.Lock()
		delete(w.perFile, path)
		w.mu.Unlock()
		select {
		case w.filesChan <- path:
		case <-ctx.Done():
		}
	})
}
