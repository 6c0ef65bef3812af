// Package watch re-runs a callback whenever a file changes on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/msalah0e/tourney/internal/log"
)

// File watches one file and calls onChange, debounced, after it is written,
// created or renamed into place. It blocks until ctx is done.
//
// The parent directory is watched rather than the file itself so that
// editors and tools that replace the file through a rename keep being seen.
func File(ctx context.Context, path string, debounce time.Duration, onChange func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer w.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	d := NewDebouncer(debounce)
	defer d.Cancel()

	for {
		select {
		case <-ctx.Done():
			return nil
		case evt, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !relevant(evt, abs) {
				continue
			}
			log.Debug(ctx).Str("name", evt.Name).Str("op", evt.Op.String()).Msg("watch: file event")
			d.Trigger(onChange)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Error(ctx).Err(err).Msg("watch: file notification error")
		}
	}
}

func relevant(evt fsnotify.Event, path string) bool {
	if filepath.Clean(evt.Name) != path {
		return false
	}
	return evt.Has(fsnotify.Write) || evt.Has(fsnotify.Create) || evt.Has(fsnotify.Rename)
}
