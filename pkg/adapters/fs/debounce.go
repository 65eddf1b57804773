package fs

import (
	"sync"
	"time"

	"github.com/inkpress/inkpress/pkg/core"
)

// debouncer coalesces bursts of filesystem events for the same unit.
// Editors routinely produce several writes per save; only the last event
// within the window is emitted.
type debouncer struct {
	window time.Duration

	mu      sync.Mutex
	timers  map[string]*time.Timer
	stopped bool
	wg      sync.WaitGroup
}

func newDebouncer(window time.Duration) *debouncer {
	return &debouncer{
		window: window,
		timers: make(map[string]*time.Timer),
	}
}

// add schedules emit(event) after the debounce window, replacing any
// pending emission for the same unit.
func (d *debouncer) add(event core.Event, emit func(core.Event)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	key := event.ID + "|" + string(event.Type)
	if t, ok := d.timers[key]; ok {
		if t.Stop() {
			d.wg.Done()
		}
	}

	d.wg.Add(1)
	d.timers[key] = time.AfterFunc(d.window, func() {
		defer d.wg.Done()
		d.mu.Lock()
		delete(d.timers, key)
		stopped := d.stopped
		d.mu.Unlock()
		if !stopped {
			emit(event)
		}
	})
}

// stopAndWait rejects new events and waits for in-flight timers to finish,
// up to the given timeout.
func (d *debouncer) stopAndWait(timeout time.Duration) {
	d.mu.Lock()
	d.stopped = true
	for key, t := range d.timers {
		if t.Stop() {
			d.wg.Done()
		}
		delete(d.timers, key)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
	}
}
