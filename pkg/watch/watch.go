// Package watch re-runs a callback when a catalog file changes on disk.
//
// The watcher observes the file's parent directory rather than the file
// itself, so editors that save by writing a temp file and renaming it over
// the original keep triggering reloads. Bursts of events are coalesced.
package watch

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/matzehuels/certpaths/pkg/observability"
)

// DefaultDebounce is the quiet period after the last event before a reload.
const DefaultDebounce = 150 * time.Millisecond

// Watcher reports changes to a single file.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	Debounce time.Duration
	Logger   *log.Logger
}

// New starts observing the directory that contains path.
func New(path string, logger *log.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Watcher{
		path:     abs,
		watcher:  fw,
		Debounce: DefaultDebounce,
		Logger:   logger,
	}, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string { return w.path }

// Run blocks until ctx is cancelled, calling reload once per burst of
// changes to the file. A failing reload is logged and watching continues.
// Run closes the watcher before returning.
func (w *Watcher) Run(ctx context.Context, reload func(context.Context) error) error {
	defer w.watcher.Close()

	hooks := observability.Watch()
	timer := time.NewTimer(w.Debounce)
	timer.Stop()

	w.Logger.Info("watching for changes", "path", w.path)
	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.Logger.Debug("file event", "op", event.Op.String(), "path", event.Name)
			timer.Reset(w.Debounce)

		case <-timer.C:
			hooks.OnChange(ctx, w.path)
			start := time.Now()
			err := reload(ctx)
			hooks.OnReload(ctx, w.path, time.Since(start), err)
			if err != nil {
				w.Logger.Error("reload failed", "path", w.path, "error", err)
				continue
			}
			w.Logger.Info("reloaded", "path", w.path, "duration", time.Since(start))

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.Logger.Warn("watcher error", "error", err)
		}
	}
}

func (w *Watcher) relevant(e fsnotify.Event) bool {
	if filepath.Clean(e.Name) != w.path {
		return false
	}
	return e.Has(fsnotify.Write) || e.Has(fsnotify.Create) || e.Has(fsnotify.Rename)
}

// Close stops watching without running.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
