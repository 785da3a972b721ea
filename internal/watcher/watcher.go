// Package watcher re-runs generation when the input sample changes.
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce groups the burst of events a single editor save produces.
const DefaultDebounce = 150 * time.Millisecond

// Watcher watches one file.
type Watcher struct {
	Path     string
	Debounce time.Duration
	Logger   *slog.Logger
}

// New creates a Watcher for path with the default debounce.
func New(path string) *Watcher {
	return &Watcher{Path: path, Debounce: DefaultDebounce, Logger: slog.Default()}
}

// Run calls fn once, then again after every change to the file, until ctx
// is cancelled. Errors from fn are logged and do not stop the loop.
//
// The parent directory is watched rather than the file so that editors that
// save by renaming a temporary file keep triggering events.
func (w *Watcher) Run(ctx context.Context, fn func() error) error {
	target, err := filepath.Abs(w.Path)
	if err != nil {
		return fmt.Errorf("resolve watch path: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer func() { _ = fsw.Close() }()

	if err := fsw.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}

	log := w.Logger
	if log == nil {
		log = slog.Default()
	}
	invoke := func() {
		if err := fn(); err != nil {
			log.Error("regeneration failed", "path", target, "error", err)
		}
	}

	invoke()
	log.Info("watching for changes", "path", target)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			log.Debug("input changed", "event", ev.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.Debounce)
			} else {
				timer.Reset(w.Debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			invoke()

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			log.Warn("file watcher error", "error", err)
		}
	}
}
