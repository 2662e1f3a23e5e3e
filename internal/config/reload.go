package config

import (
	"path/filepath"
	"strings"

	"github.com/quill-editor/quill/internal/config/registry"
	"github.com/quill-editor/quill/internal/config/table"
	"github.com/quill-editor/quill/internal/config/watcher"
	"github.com/quill-editor/quill/internal/logging"
)

// HandleFileEvent translates one filesystem change event into a layer
// replacement. Only create and write events for files with the config
// extension are acted on; everything else is a no-op. A parse failure
// leaves the previous configuration for that target untouched.
func (m *Manager) HandleFileEvent(event watcher.Event) {
	switch event.Op {
	case watcher.OpCreate, watcher.OpWrite:
	default:
		return
	}

	ext := filepath.Ext(event.Path)
	if !strings.EqualFold(ext, Extension) {
		return
	}

	tbl, err := m.loader.LoadFrom(event.Path)
	if err != nil {
		logging.Warn().Str("path", event.Path).Err(err).Msg("failed to parse changed config")
		return
	}
	if tbl == nil {
		// The file vanished between the event and the read.
		logging.Debug().Str("path", event.Path).Msg("changed config no longer present")
		return
	}

	stem := strings.TrimSuffix(filepath.Base(event.Path), ext)
	m.updateUserLayer(stem, tbl)
}

// updateUserLayer replaces the user layer the logical config name refers
// to: the preferences name selects the global layer, any other name must
// resolve to a known category. Unrecognized names are logged and the event
// is discarded.
func (m *Manager) updateUserLayer(name string, tbl table.Table) {
	if name == preferencesStem {
		m.mu.Lock()
		m.global.SetUser(tbl)
		m.mu.Unlock()

		if m.notifier != nil {
			m.notifier.NotifyReload(scopeGlobal)
		}
		return
	}

	cat, ok := registry.Resolve(name)
	if !ok {
		logging.Warn().Str("name", name).Msg("unknown config name")
		return
	}

	m.mu.Lock()
	m.setCategoryUser(cat, tbl)
	m.mu.Unlock()

	if m.notifier != nil {
		m.notifier.NotifyReload("category:" + cat.String())
	}
}
