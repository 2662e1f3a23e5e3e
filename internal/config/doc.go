// Package config provides the layered configuration engine for Quill.
//
// The engine answers, at any moment, "what is the effective value of
// setting X for document context C" while staying consistent as any layer
// changes. Configuration is resolved from cascading sources:
//
//	┌─────────────────────────────┐
//	│  4. Session overrides       │  ← Highest precedence
//	├─────────────────────────────┤
//	│  3. Category user files     │  ← <category>.quillconf
//	├─────────────────────────────┤
//	│  2. Category defaults       │  ← embedded per-category assets
//	├─────────────────────────────┤
//	│  1. Global preferences      │  ← preferences.quillconf
//	├─────────────────────────────┤
//	│  0. Built-in defaults       │  ← embedded, plus platform overrides
//	└─────────────────────────────┘
//
// Each level is a base/user Pair (see the layer package); a category's
// combined view takes precedence key-by-key over the global combined view,
// so even a category's default value overrides a user-set global value.
// Category specificity outranks global customization.
//
// # Sub-packages
//
//   - table: dynamically-typed value model and shallow overlay merge
//   - layer: base/user pair with an eagerly rebuilt merged cache
//   - loader: TOML file loading
//   - registry: category name and extension resolution
//   - watcher: fsnotify-based directory watching for live reload
//   - notify: change notification
//
// # Basic Usage
//
//	m := config.NewManager()
//	dir, err := config.DirFromEnv()
//	if err != nil {
//	    return err
//	}
//	m.SetConfigDir(dir)
//
//	snap, err := m.Resolve(registry.CategoryYAML, 0)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(snap.TabSize)
//
// All merged views are rebuilt eagerly when a layer changes, so Resolve is
// cheap and a call immediately after any mutation reflects the new state.
package config
