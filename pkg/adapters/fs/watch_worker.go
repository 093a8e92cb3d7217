package fs

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/notes/pkg/core"
)

// watchWorker turns fsnotify events on the note directory into core.Events.
type watchWorker struct {
	repo    *Repository
	pattern string
	events  chan core.Event
	watcher *fsnotify.Watcher
	known   map[string]bool
}

// Watch streams change events for notes whose id matches the doublestar
// pattern. The channel is closed once ctx is cancelled.
func (r *Repository) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	if pattern == "" {
		pattern = "*"
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, core.InvalidInput("invalid watch pattern %q", pattern)
	}

	ids, err := r.IDs(ctx)
	if err != nil {
		return nil, err
	}
	known := make(map[string]bool, len(ids))
	for _, id := range ids {
		known[id] = true
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, core.IOError("watch", r.Path, fmt.Errorf("failed to create watcher: %w", err))
	}
	if err := watcher.Add(r.Path); err != nil {
		_ = watcher.Close()
		return nil, core.IOError("watch", r.Path, err)
	}

	w := &watchWorker{
		repo:    r,
		pattern: pattern,
		events:  make(chan core.Event, 16),
		watcher: watcher,
		known:   known,
	}
	r.setWatcherActive(true)

	lifecycle.Go(ctx, w.run, lifecycle.WithErrorHandler(func(err error) {
		r.config.Logger.Error("watcher failed", "error", err)
	}))

	return w.events, nil
}

// run is the main event loop for the watcher.
func (w *watchWorker) run(ctx context.Context) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("watcher panic: %v", recovered)
			if w.repo.config.Logger.Enabled(ctx, slog.LevelDebug) {
				w.repo.config.Logger.Error("watcher panic", "error", err, "stack", string(debug.Stack()))
			}
		}
	}()
	defer close(w.events)
	defer w.repo.setWatcherActive(false)
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			e, ok := w.translate(event)
			if !ok {
				continue
			}
			select {
			case w.events <- e:
			case <-ctx.Done():
				return nil
			}

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			w.repo.config.Logger.Error("fsnotify error", "error", wErr)
		}
	}
}

// translate maps a raw fsnotify event to a note event. Temp files, foreign
// files and ids outside the pattern are ignored.
func (w *watchWorker) translate(event fsnotify.Event) (core.Event, bool) {
	w.repo.config.Logger.Debug("event received", "name", event.Name, "op", event.Op.String())

	name := filepath.Base(event.Name)
	if !isNoteFile(name) {
		return core.Event{}, false
	}
	id := strings.TrimSuffix(name, NoteExt)
	if ok, _ := doublestar.Match(w.pattern, id); !ok {
		return core.Event{}, false
	}

	var eType core.EventType
	switch {
	case event.Has(fsnotify.Create):
		// Atomic saves rename over an existing file, which shows up as Create.
		eType = core.EventCreate
		if w.known[id] {
			eType = core.EventModify
		}
		w.known[id] = true
	case event.Has(fsnotify.Write):
		eType = core.EventModify
		w.known[id] = true
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		eType = core.EventDelete
		delete(w.known, id)
	default:
		return core.Event{}, false
	}

	return core.Event{Type: eType, ID: id, Timestamp: time.Now().Unix()}, true
}
