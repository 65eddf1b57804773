package fs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	"github.com/aretw0/lifecycle/pkg/core/worker"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/inkpress/inkpress/pkg/core"
)

type watchWorker struct {
	*worker.BaseWorker
	source    *Source
	pattern   string
	events    chan<- core.Event
	watcher   *fsnotify.Watcher
	debouncer *debouncer
	cancel    context.CancelFunc
}

func newWatchWorker(source *Source, pattern string, events chan<- core.Event) *watchWorker {
	return &watchWorker{
		BaseWorker: worker.NewBaseWorker("fs-watcher"),
		source:     source,
		pattern:    pattern,
		events:     events,
	}
}

func (w *watchWorker) Start(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	status := w.State().Status
	if status != worker.StatusCreated && status != worker.StatusPending {
		return fmt.Errorf("watcher already started (status: %s)", status)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := w.source.recursiveAdd(watcher); err != nil {
		_ = watcher.Close()
		return err
	}

	w.watcher = watcher
	w.debouncer = newDebouncer(50 * time.Millisecond)
	w.source.setWatcherActive(true)

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.SetStatus(worker.StatusRunning)
	return w.StartFunc(runCtx, w.run)
}

func (w *watchWorker) Stop(ctx context.Context) error {
	if w.cancel != nil {
		w.StopRequested = true
		w.cancel()
	}

	return w.BaseWorker.Stop(ctx)
}

func (w *watchWorker) State() worker.State {
	return w.ExportState(func(s *worker.State) {
		s.Metadata = map[string]string{
			worker.MetadataType: string(worker.TypeGoroutine),
		}
	})
}

// processFilesystemEvent handles filtering, mapping, and debouncing of
// filesystem events. Returns true if the event was accepted.
func (w *watchWorker) processFilesystemEvent(ctx context.Context, event fsnotify.Event) (processed bool) {
	if w.source.config.Logger != nil {
		w.source.config.Logger.Debug("event received", "name", event.Name)
	}

	// New directories must be added to the recursive watch.
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			_ = w.watcher.Add(event.Name)
			return false
		}
	}

	if w.source.shouldIgnore(event.Name, w.pattern) {
		return false
	}

	eType := mapEventType(event)
	if eType == "" {
		return false
	}

	id, err := w.source.resolveID(event.Name)
	if err != nil {
		if w.source.config.ErrorHandler != nil {
			w.source.config.ErrorHandler(fmt.Errorf("failed to resolve ID for %s: %w", event.Name, err))
		} else if w.source.config.Logger != nil {
			w.source.config.Logger.Debug("resolveID failed", "path", event.Name, "err", err)
		}
		return false
	}

	w.sendEvent(ctx, core.Event{
		Type:      eType,
		ID:        id,
		Timestamp: time.Now().Unix(),
	})

	return true
}

// sendEvent enqueues an event via the debouncer, protecting against channel
// closure during shutdown.
func (w *watchWorker) sendEvent(ctx context.Context, event core.Event) {
	w.debouncer.add(event, func(e core.Event) {
		defer func() {
			// Recover from panic if channel was closed (worker stopping)
			_ = recover()
		}()
		select {
		case w.events <- e:
		case <-ctx.Done():
		}
	})
}

// handleWatcherError processes errors from the fsnotify watcher.
func (w *watchWorker) handleWatcherError(err error) (shouldContinue bool) {
	if w.source.config.Logger != nil {
		w.source.config.Logger.Error("fsnotify error", "error", err)
	}
	if w.source.config.ErrorHandler != nil {
		w.source.config.ErrorHandler(err)
	}
	return true
}

// run is the main event loop for the watcher worker.
func (w *watchWorker) run(ctx context.Context) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			panicErr := fmt.Errorf("watcher panic: %v", recovered)

			// Stack capture only when debug logging is enabled.
			var stack string
			if w.source.config.Logger != nil && w.source.config.Logger.Enabled(ctx, slog.LevelDebug) {
				stack = string(debug.Stack())
			}

			if w.source.config.Logger != nil {
				if stack != "" {
					w.source.config.Logger.Error("watcher panic", "error", panicErr, "stack", stack)
				} else {
					w.source.config.Logger.Error("watcher panic", "error", panicErr)
				}
			}
		}
	}()
	defer w.source.setWatcherActive(false)
	defer w.watcher.Close()

	err = w.mainEventLoop(ctx)

	// Stop accepting new events and wait for in-flight timers so cleanup
	// can close the events channel without racing a late emission.
	w.debouncer.stopAndWait(5 * time.Second)

	return err
}

// mainEventLoop is the core select loop processing filesystem and watcher
// error events.
func (w *watchWorker) mainEventLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			w.processFilesystemEvent(ctx, event)

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			w.handleWatcherError(wErr)
		}
	}
}

// mapEventType translates fsnotify operations to domain event types.
func mapEventType(event fsnotify.Event) core.EventType {
	switch {
	case event.Has(fsnotify.Create):
		return core.EventCreate
	case event.Has(fsnotify.Write):
		return core.EventModify
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return core.EventDelete
	default:
		return ""
	}
}

// --- Source watch plumbing ---

// Watch implements core.Watchable. Events signal that a fresh LoadAll would
// observe different content; the channel closes when ctx is cancelled.
func (s *Source) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	if pattern == "" {
		pattern = "**/*"
	}
	if _, err := os.Stat(s.Path); err != nil {
		return nil, fmt.Errorf("%w: %s", core.ErrSourceUnavailable, s.Path)
	}

	events := make(chan core.Event, s.config.EventBuffer)
	w := newWatchWorker(s, pattern, events)
	if err := w.Start(ctx); err != nil {
		return nil, err
	}

	go func() {
		<-ctx.Done()
		_ = w.Stop(context.Background())
		close(events)
	}()

	return events, nil
}

// recursiveAdd watches the source tree, skipping system directories.
func (s *Source) recursiveAdd(watcher *fsnotify.Watcher) error {
	return filepath.WalkDir(s.Path, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if d.Name() == ".git" || d.Name() == s.config.SystemDir {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

// shouldIgnore filters events for paths outside the watch pattern or inside
// system directories, plus our own temp files.
func (s *Source) shouldIgnore(path, pattern string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, TempFilePrefix) {
		return true
	}

	rel, err := filepath.Rel(s.Path, path)
	if err != nil {
		return true
	}
	rel = filepath.ToSlash(rel)

	for _, segment := range strings.Split(rel, "/") {
		if segment == ".git" || segment == s.config.SystemDir {
			return true
		}
	}

	if ok, err := doublestar.Match(pattern, rel); err != nil || !ok {
		return true
	}

	// Only units the loader would accept are worth reporting.
	return !s.matches(rel)
}

// resolveID maps an absolute event path back to a unit ID.
func (s *Source) resolveID(path string) (string, error) {
	rel, err := filepath.Rel(s.Path, path)
	if err != nil {
		return "", err
	}
	rel = filepath.ToSlash(rel)
	return unitID(rel, filepath.Ext(rel)), nil
}
