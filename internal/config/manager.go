package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/quill-editor/quill/internal/config/layer"
	"github.com/quill-editor/quill/internal/config/loader"
	"github.com/quill-editor/quill/internal/config/notify"
	"github.com/quill-editor/quill/internal/config/registry"
	"github.com/quill-editor/quill/internal/config/table"
	"github.com/quill-editor/quill/internal/logging"
)

// Extension is the configuration file extension, including the dot.
const Extension = ".quillconf"

// PreferencesFile is the reserved file name for the global user layer.
const PreferencesFile = "preferences" + Extension

// preferencesStem identifies the global layer in file-change events.
const preferencesStem = "preferences"

// scopeGlobal names the global layer in change notifications.
const scopeGlobal = "global"

// SessionID identifies one unit of work (an open document) that may carry
// transient, highest-precedence overrides. Zero means "no session".
type SessionID uint64

// Manager owns the configuration layers and resolves effective settings.
//
// All mutating and reading operations are serialized by an internal lock;
// callers may invoke them from any goroutine. Session entries persist until
// DropSession is called by the owning session's teardown.
type Manager struct {
	mu sync.RWMutex

	// The platform defaults, and any global user overrides.
	global *layer.Pair

	// Per-category pairs, created at startup from embedded defaults and
	// lazily when a previously-unseen category's user file loads.
	categories map[registry.Category]*layer.Pair

	// Per-session override pairs, created lazily on first write.
	sessions map[SessionID]*layer.Pair

	// If using file-based config, the active configuration directory.
	configDir string

	// An optional client-provided path for bundled plugins, appended to
	// every resolved plugin search path.
	extrasDir string

	loader   *loader.TOMLLoader
	fs       loader.FileSystem
	notifier *notify.Notifier
}

// Option configures a Manager.
type Option func(*Manager)

// WithExtrasDir sets the bundled-plugins directory at construction.
func WithExtrasDir(path string) Option {
	return func(m *Manager) {
		m.extrasDir = path
	}
}

// WithNotifier attaches a change notifier. Layer replacements and overrides
// emit changes through it.
func WithNotifier(n *notify.Notifier) Option {
	return func(m *Manager) {
		m.notifier = n
	}
}

// WithFileSystem substitutes the file system used for loading.
func WithFileSystem(fs loader.FileSystem) Option {
	return func(m *Manager) {
		m.fs = fs
	}
}

// NewManager creates a manager seeded with the embedded platform defaults
// and per-category defaults.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		global:     layer.NewPair(platformDefaults(), nil),
		categories: make(map[registry.Category]*layer.Pair),
		sessions:   make(map[SessionID]*layer.Pair),
		fs:         loader.DefaultFS(),
	}

	for cat, defaults := range categoryDefaults() {
		m.categories[cat] = layer.NewPair(defaults, nil)
	}

	for _, opt := range opts {
		opt(m)
	}

	m.loader = loader.NewTOMLLoaderWithFS(m.fs)
	return m
}

// SetConfigDir records the configuration directory and loads every
// recognized config file in it: the preferences file replaces the global
// user layer, each <category>.quillconf replaces that category's user
// layer. Missing or malformed files are logged and skipped; the remaining
// files still load.
func (m *Manager) SetConfigDir(path string) {
	prefs := m.loadPreferences(path)
	perCategory := m.loadCategoryConfigs(path)

	m.mu.Lock()
	m.configDir = path
	for cat, tbl := range perCategory {
		m.setCategoryUser(cat, tbl)
	}
	m.global.SetUser(prefs)
	m.mu.Unlock()

	if m.notifier != nil {
		m.notifier.NotifyReload(scopeGlobal)
		for cat := range perCategory {
			m.notifier.NotifyReload("category:" + cat.String())
		}
	}
}

// SetExtrasDir records a secondary path appended to every resolved plugin
// search path, independent of the config directory.
func (m *Manager) SetExtrasDir(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.extrasDir = path
}

// ConfigDir returns the active configuration directory, if set.
func (m *Manager) ConfigDir() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.configDir
}

// Resolve produces the effective configuration for an optional category and
// session. Precedence, lowest to highest: global combined view, category
// combined view, session overrides. Pass registry.CategoryNone and session
// zero for the plain global view.
func (m *Manager) Resolve(category registry.Category, session SessionID) (Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var working table.Table
	if category != registry.CategoryNone {
		if pair, ok := m.categories[category]; ok {
			working = m.global.MergedWith(pair)
		}
	}
	if working == nil {
		working = m.global.Cache()
	}

	if session != 0 {
		if pair, ok := m.sessions[session]; ok {
			working = table.Overlay(working, pair.Cache())
		}
	}

	snap, err := decodeSnapshot(working)
	if err != nil {
		return Snapshot{}, err
	}

	// Relative plugin search entries are relative to the config directory.
	if m.configDir != "" {
		for i, p := range snap.PluginSearchPath {
			if !filepath.IsAbs(p) {
				snap.PluginSearchPath[i] = filepath.Join(m.configDir, p)
			}
		}
	}
	// The extras directory is always appended, even when already present.
	if m.extrasDir != "" {
		snap.PluginSearchPath = append(snap.PluginSearchPath, m.extrasDir)
	}

	return snap, nil
}

// SetOverride writes one session-scoped key. fromUser selects the session
// pair's user layer (an override requested by an interactive caller) over
// its base layer (an override computed internally); user-layer writes win
// within the session.
func (m *Manager) SetOverride(key string, value any, session SessionID, fromUser bool) {
	m.mu.Lock()
	pair, ok := m.sessions[session]
	if !ok {
		pair = layer.NewPair(nil, nil)
		m.sessions[session] = pair
	}

	target := layer.TargetBase
	if fromUser {
		target = layer.TargetUser
	}
	pair.Set(key, value, target)
	m.mu.Unlock()

	if m.notifier != nil {
		m.notifier.NotifySet(fmt.Sprintf("session:%d", session), key, value)
	}
}

// DropSession removes a session's override pair. The owning session's
// teardown is responsible for calling this; the engine never evicts on
// its own.
func (m *Manager) DropSession(session SessionID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, session)
}

// loadPreferences loads the global preferences file from dir. A missing or
// unparsable file yields an empty table; parse failures are logged.
func (m *Manager) loadPreferences(dir string) table.Table {
	path := filepath.Join(dir, PreferencesFile)
	tbl, err := m.loader.LoadFrom(path)
	if err != nil {
		logging.Warn().Str("path", path).Err(err).Msg("failed to load preferences")
	}
	if tbl == nil {
		tbl = make(table.Table)
	}
	return tbl
}

// loadCategoryConfigs scans dir for category config files and parses each.
// Unrecognized names and parse failures are logged and skipped.
func (m *Manager) loadCategoryConfigs(dir string) map[registry.Category]table.Table {
	entries, err := m.fs.ReadDir(dir)
	if err != nil {
		logging.Debug().Str("dir", dir).Err(err).Msg("config directory not readable")
		return nil
	}

	result := make(map[registry.Category]table.Table)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, Extension) || name == PreferencesFile {
			continue
		}

		stem := strings.TrimSuffix(name, Extension)
		cat, ok := registry.Resolve(stem)
		if !ok {
			logging.Warn().Str("name", stem).Msg("unrecognized category name")
			continue
		}

		path := filepath.Join(dir, name)
		tbl, err := m.loader.LoadFrom(path)
		if err != nil {
			logging.Warn().Str("path", path).Err(err).Msg("failed to parse config")
			continue
		}
		if tbl == nil {
			continue
		}
		result[cat] = tbl
	}
	return result
}

// setCategoryUser replaces a category's user layer, creating the pair if
// the category has no embedded defaults. Callers hold the lock.
func (m *Manager) setCategoryUser(cat registry.Category, tbl table.Table) {
	if pair, ok := m.categories[cat]; ok {
		pair.SetUser(tbl)
		return
	}
	m.categories[cat] = layer.NewPair(nil, tbl)
}
