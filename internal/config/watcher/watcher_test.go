package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

// collect starts a watcher on dir and returns its event channel.
func collect(t *testing.T, dir string) chan Event {
	t.Helper()

	events := make(chan Event, 16)
	w := New(dir, ".quillconf", func(ev Event) { events <- ev },
		WithDebounce(10*time.Millisecond))

	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	t.Cleanup(w.Stop)
	return events
}

// next waits for one event or fails the test.
func next(t *testing.T, events chan Event) Event {
	t.Helper()
	select {
	case ev := <-events:
		return ev
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestWatcherReportsCreate(t *testing.T) {
	dir := t.TempDir()
	events := collect(t, dir)

	path := filepath.Join(dir, "preferences.quillconf")
	if err := os.WriteFile(path, []byte("tab_size = 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ev := next(t, events)
	if ev.Path != path {
		t.Errorf("Path = %q, want %q", ev.Path, path)
	}
	if ev.Op != OpCreate {
		t.Errorf("Op = %v, want create", ev.Op)
	}
}

func TestWatcherReportsWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "yaml.quillconf")
	if err := os.WriteFile(path, []byte("tab_size = 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	events := collect(t, dir)

	if err := os.WriteFile(path, []byte("tab_size = 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ev := next(t, events)
	if ev.Path != path {
		t.Errorf("Path = %q, want %q", ev.Path, path)
	}
	if ev.Op != OpCreate && ev.Op != OpWrite {
		t.Errorf("Op = %v, want create or write", ev.Op)
	}
}

func TestWatcherFiltersExtensions(t *testing.T) {
	dir := t.TempDir()
	events := collect(t, dir)

	ignored := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(ignored, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	matched := filepath.Join(dir, "rust.quillconf")
	if err := os.WriteFile(matched, []byte("tab_size = 31\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ev := next(t, events)
	if ev.Path != matched {
		t.Errorf("Path = %q, the .txt file must be filtered out", ev.Path)
	}
}

func TestQueueCoalescing(t *testing.T) {
	tests := []struct {
		name string
		ops  []fsnotify.Op
		want Op
	}{
		{"write then chmod keeps the write", []fsnotify.Op{fsnotify.Write, fsnotify.Chmod}, OpWrite},
		{"create then chmod keeps the create", []fsnotify.Op{fsnotify.Create, fsnotify.Chmod}, OpCreate},
		{"create then write stays a create", []fsnotify.Op{fsnotify.Create, fsnotify.Write}, OpCreate},
		{"chmod then write becomes the write", []fsnotify.Op{fsnotify.Chmod, fsnotify.Write}, OpWrite},
		{"chmod alone is still delivered", []fsnotify.Op{fsnotify.Chmod}, OpOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []Event
			w := New(t.TempDir(), ".quillconf", func(ev Event) { got = append(got, ev) })

			for _, op := range tt.ops {
				w.queue(fsnotify.Event{Name: "yaml.quillconf", Op: op})
			}
			w.flush()

			if len(got) != 1 {
				t.Fatalf("delivered %d events, want 1", len(got))
			}
			if got[0].Op != tt.want {
				t.Errorf("Op = %v, want %v", got[0].Op, tt.want)
			}
		})
	}
}

func TestWatcherStopIsIdempotent(t *testing.T) {
	w := New(t.TempDir(), ".quillconf", func(Event) {})
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if !w.IsRunning() {
		t.Error("watcher should be running after Start")
	}

	w.Stop()
	w.Stop()
	if w.IsRunning() {
		t.Error("watcher should not be running after Stop")
	}
}

func TestMapOp(t *testing.T) {
	if got := OpCreate.String(); got != "create" {
		t.Errorf("OpCreate = %q", got)
	}
	if got := OpWrite.String(); got != "write" {
		t.Errorf("OpWrite = %q", got)
	}
	if got := OpOther.String(); got != "other" {
		t.Errorf("OpOther = %q", got)
	}
}
