package config

import "github.com/quill-editor/quill/internal/config/table"

// Setting keys recognized by the resolved snapshot.
const (
	keyNewline               = "newline"
	keyTabSize               = "tab_size"
	keyTranslateTabsToSpaces = "translate_tabs_to_spaces"
	keyPluginSearchPath      = "plugin_search_path"
)

// Snapshot is the effective configuration for one (category, session)
// context at the moment of a Resolve call. It is recomputed on every
// request and never cached across layer mutations.
type Snapshot struct {
	Newline               string   `json:"newline"`
	TabSize               uint     `json:"tab_size"`
	TranslateTabsToSpaces bool     `json:"translate_tabs_to_spaces"`
	PluginSearchPath      []string `json:"plugin_search_path"`
}

// decodeSnapshot converts a fully merged table into a Snapshot.
// A wrong or missing type for any known field yields a *ResolveError.
func decodeSnapshot(merged table.Table) (Snapshot, error) {
	var snap Snapshot

	v, ok := merged[keyNewline]
	if !ok {
		return snap, &ResolveError{Field: keyNewline, Expected: "string", Found: "missing"}
	}
	newline, ok := table.AsString(v)
	if !ok {
		return snap, &ResolveError{Field: keyNewline, Expected: "string", Found: table.TypeName(v)}
	}
	snap.Newline = newline

	v, ok = merged[keyTabSize]
	if !ok {
		return snap, &ResolveError{Field: keyTabSize, Expected: "unsigned integer", Found: "missing"}
	}
	tabSize, ok := table.AsUint(v)
	if !ok {
		return snap, &ResolveError{Field: keyTabSize, Expected: "unsigned integer", Found: table.TypeName(v)}
	}
	snap.TabSize = uint(tabSize)

	v, ok = merged[keyTranslateTabsToSpaces]
	if !ok {
		return snap, &ResolveError{Field: keyTranslateTabsToSpaces, Expected: "boolean", Found: "missing"}
	}
	translate, ok := table.AsBool(v)
	if !ok {
		return snap, &ResolveError{Field: keyTranslateTabsToSpaces, Expected: "boolean", Found: table.TypeName(v)}
	}
	snap.TranslateTabsToSpaces = translate

	v, ok = merged[keyPluginSearchPath]
	if !ok {
		return snap, &ResolveError{Field: keyPluginSearchPath, Expected: "sequence of strings", Found: "missing"}
	}
	paths, ok := table.AsStringSlice(v)
	if !ok {
		return snap, &ResolveError{Field: keyPluginSearchPath, Expected: "sequence of strings", Found: table.TypeName(v)}
	}
	snap.PluginSearchPath = paths

	return snap, nil
}
