// Package watcher provides file watching for configuration live reload.
//
// The watcher monitors one configuration directory with fsnotify and emits
// events for created or modified files matching a configured extension.
// Rapid successive writes to the same file are debounced into one event.
package watcher

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Op is the kind of file operation observed.
type Op int

const (
	// OpCreate indicates a new file was created.
	OpCreate Op = iota

	// OpWrite indicates the file was modified.
	OpWrite

	// OpOther covers renames, removals, and permission changes.
	// The configuration engine ignores these.
	OpOther
)

// String returns the operation name.
func (op Op) String() string {
	switch op {
	case OpCreate:
		return "create"
	case OpWrite:
		return "write"
	case OpOther:
		return "other"
	default:
		return "unknown"
	}
}

// Event represents one observed file change.
type Event struct {
	// Path is the path of the changed file.
	Path string

	// Op is the operation that triggered the event.
	Op Op
}

// Handler is called for each observed event, one event at a time.
type Handler func(event Event)

// Watcher monitors a directory for configuration file changes.
type Watcher struct {
	dir      string
	ext      string
	debounce time.Duration
	handler  Handler

	fsw    *fsnotify.Watcher
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	pending map[string]Event
	running bool
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the debounce window for rapid changes.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// New creates a watcher for files with the given extension (including the
// leading dot) in dir. The directory is not watched recursively.
func New(dir, ext string, handler Handler, opts ...Option) *Watcher {
	w := &Watcher{
		dir:      dir,
		ext:      ext,
		debounce: 100 * time.Millisecond,
		handler:  handler,
		pending:  make(map[string]Event),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Start begins watching. Events are delivered sequentially on a single
// goroutine, preserving temporal order.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fsw.Add(w.dir); err != nil {
		fsw.Close()
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	w.fsw = fsw
	w.cancel = cancel
	w.running = true

	w.wg.Add(1)
	go w.loop(ctx)
	return nil
}

// Stop stops watching and waits for the event loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.cancel()
	w.mu.Unlock()

	w.fsw.Close()
	w.wg.Wait()
}

// IsRunning reports whether the watcher is active.
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// loop reads fsnotify events, filters and debounces them, then hands them
// to the handler in temporal order.
func (w *Watcher) loop(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.flush()
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				w.flush()
				return
			}
			w.queue(ev)

		case _, ok := <-w.fsw.Errors:
			if !ok {
				w.flush()
				return
			}

		case <-ticker.C:
			w.flush()
		}
	}
}

// queue records an event, coalescing repeated writes to the same path.
// A create followed by writes stays a create, and a chmod, rename, or
// removal never displaces a pending create or write; editors routinely
// chmod after saving, and the save must still be delivered.
func (w *Watcher) queue(ev fsnotify.Event) {
	if !strings.EqualFold(filepath.Ext(ev.Name), w.ext) {
		return
	}

	op := mapOp(ev.Op)

	w.mu.Lock()
	defer w.mu.Unlock()

	if existing, ok := w.pending[ev.Name]; ok {
		if existing.Op == OpCreate && op == OpWrite {
			return
		}
		if op == OpOther && existing.Op != OpOther {
			return
		}
	}
	w.pending[ev.Name] = Event{Path: ev.Name, Op: op}
}

// flush delivers all pending events.
func (w *Watcher) flush() {
	w.mu.Lock()
	if len(w.pending) == 0 {
		w.mu.Unlock()
		return
	}
	events := make([]Event, 0, len(w.pending))
	for _, ev := range w.pending {
		events = append(events, ev)
	}
	w.pending = make(map[string]Event)
	w.mu.Unlock()

	for _, ev := range events {
		w.handler(ev)
	}
}

// mapOp translates fsnotify operations to the engine's event kinds.
func mapOp(op fsnotify.Op) Op {
	switch {
	case op.Has(fsnotify.Create):
		return OpCreate
	case op.Has(fsnotify.Write):
		return OpWrite
	default:
		return OpOther
	}
}
