package config

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"testing/fstest"

	"github.com/quill-editor/quill/internal/config/notify"
	"github.com/quill-editor/quill/internal/config/registry"
	"github.com/quill-editor/quill/internal/logging"
)

func TestMain(m *testing.M) {
	logging.Init(logging.Config{Level: logging.ErrorLevel, Output: io.Discard})
	os.Exit(m.Run())
}

// writeConfig writes one config file into dir.
func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultsResolution(t *testing.T) {
	m := NewManager()
	m.SetConfigDir("BASE_PATH")

	snap, err := m.Resolve(registry.CategoryNone, 0)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if snap.TabSize != 4 {
		t.Errorf("TabSize = %d, want compiled-in default 4", snap.TabSize)
	}
	want := []string{filepath.Join("BASE_PATH", "plugins")}
	if len(snap.PluginSearchPath) != 1 || snap.PluginSearchPath[0] != want[0] {
		t.Errorf("PluginSearchPath = %v, want %v", snap.PluginSearchPath, want)
	}
	if runtime.GOOS != "windows" && snap.Newline != "\n" {
		t.Errorf("Newline = %q, want \\n", snap.Newline)
	}
}

func TestLayeringPrecedence(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "preferences.quillconf", "tab_size = 42\n")
	writeConfig(t, dir, "rust.quillconf", "tab_size = 31\n")

	m := NewManager()
	m.SetConfigDir(dir)

	resolveTabSize := func(cat registry.Category, session SessionID) uint {
		t.Helper()
		snap, err := m.Resolve(cat, session)
		if err != nil {
			t.Fatalf("Resolve(%v, %v) error = %v", cat, session, err)
		}
		return snap.TabSize
	}

	// Global user value wins with no category.
	if got := resolveTabSize(registry.CategoryNone, 0); got != 42 {
		t.Errorf("tab_size = %d, want 42", got)
	}

	// A category default outranks a user-set global value.
	if got := resolveTabSize(registry.CategoryYAML, 0); got != 2 {
		t.Errorf("yaml tab_size = %d, want 2", got)
	}

	// A category user file wins over the global user value.
	if got := resolveTabSize(registry.CategoryRust, 0); got != 31 {
		t.Errorf("rust tab_size = %d, want 31", got)
	}

	// A session override beats every category.
	const session SessionID = 1
	m.SetOverride("tab_size", 67, session, false)
	if got := resolveTabSize(registry.CategoryYAML, session); got != 67 {
		t.Errorf("yaml+session tab_size = %d, want 67", got)
	}
	if got := resolveTabSize(registry.CategoryRust, session); got != 67 {
		t.Errorf("rust+session tab_size = %d, want 67", got)
	}

	// A user-requested override beats the internally computed one.
	m.SetOverride("tab_size", 85, session, true)
	if got := resolveTabSize(registry.CategoryRust, session); got != 85 {
		t.Errorf("rust+session tab_size = %d, want 85", got)
	}
}

func TestOverrideRoundTrip(t *testing.T) {
	m := NewManager()
	m.SetConfigDir(t.TempDir())

	m.SetOverride("tab_size", 9, 7, true)
	snap, err := m.Resolve(registry.CategoryNone, 7)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if snap.TabSize != 9 {
		t.Errorf("TabSize = %d, want 9 immediately after SetOverride", snap.TabSize)
	}
}

func TestPluginSearchPathResolution(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "preferences.quillconf",
		"plugin_search_path = [\"rel\", \"/abs/plugins\"]\n")

	m := NewManager(WithExtrasDir("/bundle"))
	m.SetConfigDir(dir)

	snap, err := m.Resolve(registry.CategoryNone, 0)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	want := []string{filepath.Join(dir, "rel"), "/abs/plugins", "/bundle"}
	if len(snap.PluginSearchPath) != len(want) {
		t.Fatalf("PluginSearchPath = %v, want %v", snap.PluginSearchPath, want)
	}
	for i := range want {
		if snap.PluginSearchPath[i] != want[i] {
			t.Errorf("PluginSearchPath[%d] = %q, want %q", i, snap.PluginSearchPath[i], want[i])
		}
	}
}

func TestExtrasDirAppendedEvenWhenDuplicate(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "preferences.quillconf",
		"plugin_search_path = [\"/bundle\"]\n")

	m := NewManager()
	m.SetConfigDir(dir)
	m.SetExtrasDir("/bundle")

	snap, err := m.Resolve(registry.CategoryNone, 0)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	// The duplicate is observable behavior and must be preserved.
	if len(snap.PluginSearchPath) != 2 ||
		snap.PluginSearchPath[0] != "/bundle" || snap.PluginSearchPath[1] != "/bundle" {
		t.Errorf("PluginSearchPath = %v, want [/bundle /bundle]", snap.PluginSearchPath)
	}
}

func TestDecodeErrorIsRecoverable(t *testing.T) {
	m := NewManager()
	m.SetConfigDir(t.TempDir())

	// One session carries a badly typed override.
	m.SetOverride("tab_size", "not-a-number", 3, true)

	_, err := m.Resolve(registry.CategoryNone, 3)
	if err == nil {
		t.Fatal("Resolve with bad override should fail")
	}
	var resolveErr *ResolveError
	if !errors.As(err, &resolveErr) {
		t.Fatalf("error = %T, want *ResolveError", err)
	}
	if resolveErr.Field != "tab_size" || resolveErr.Found != "string" {
		t.Errorf("ResolveError = %+v", resolveErr)
	}
	if !errors.Is(err, ErrTypeMismatch) {
		t.Error("ResolveError should match ErrTypeMismatch")
	}

	// Other callers are unaffected.
	if _, err := m.Resolve(registry.CategoryNone, 0); err != nil {
		t.Errorf("session-free Resolve should still succeed, got %v", err)
	}
}

func TestSetConfigDirPartialSuccess(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "yaml.quillconf", "tab_size = 3\n")
	writeConfig(t, dir, "rust.quillconf", "tab_size = = broken\n")
	writeConfig(t, dir, "mystery.quillconf", "tab_size = 1\n")

	m := NewManager()
	m.SetConfigDir(dir)

	// The valid file loaded.
	snap, err := m.Resolve(registry.CategoryYAML, 0)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if snap.TabSize != 3 {
		t.Errorf("yaml tab_size = %d, want 3", snap.TabSize)
	}

	// The broken and unrecognized files were skipped; rust inherits globals.
	snap, err = m.Resolve(registry.CategoryRust, 0)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if snap.TabSize != 4 {
		t.Errorf("rust tab_size = %d, want default 4", snap.TabSize)
	}
}

func TestSetConfigDirNotifiesCategoryReloads(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "preferences.quillconf", "tab_size = 42\n")
	writeConfig(t, dir, "yaml.quillconf", "tab_size = 3\n")
	writeConfig(t, dir, "rust.quillconf", "tab_size = 31\n")

	notifier := notify.New()
	scopes := make(map[string]bool)
	notifier.Subscribe(func(change notify.Change) {
		if change.Kind == notify.KindReload {
			scopes[change.Scope] = true
		}
	})

	m := NewManager(WithNotifier(notifier))
	m.SetConfigDir(dir)

	for _, want := range []string{"global", "category:yaml", "category:rust"} {
		if !scopes[want] {
			t.Errorf("no reload notification for %q, got scopes %v", want, scopes)
		}
	}
	if scopes["category:makefile"] {
		t.Error("makefile has no user file and must not be reported as reloaded")
	}
}

func TestUnregisteredCategoryInheritsGlobal(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "preferences.quillconf", "tab_size = 42\n")

	m := NewManager()
	m.SetConfigDir(dir)

	// Go is a known category but has no layer pair: it inherits everything.
	snap, err := m.Resolve(registry.CategoryGo, 0)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if snap.TabSize != 42 {
		t.Errorf("go tab_size = %d, want 42", snap.TabSize)
	}
}

func TestManagerWithCustomFileSystem(t *testing.T) {
	fsys := fstest.MapFS{
		"conf/preferences.quillconf": &fstest.MapFile{Data: []byte("tab_size = 42\n")},
		"conf/yaml.quillconf":        &fstest.MapFile{Data: []byte("tab_size = 3\n")},
	}

	m := NewManager(WithFileSystem(fsys))
	m.SetConfigDir("conf")

	snap, err := m.Resolve(registry.CategoryNone, 0)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if snap.TabSize != 42 {
		t.Errorf("tab_size = %d, want 42", snap.TabSize)
	}

	snap, err = m.Resolve(registry.CategoryYAML, 0)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if snap.TabSize != 3 {
		t.Errorf("yaml tab_size = %d, want 3", snap.TabSize)
	}
}

func TestDropSession(t *testing.T) {
	m := NewManager()
	m.SetConfigDir(t.TempDir())

	m.SetOverride("tab_size", 9, 5, true)
	m.DropSession(5)

	snap, err := m.Resolve(registry.CategoryNone, 5)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if snap.TabSize != 4 {
		t.Errorf("TabSize = %d, want default after DropSession", snap.TabSize)
	}
}
