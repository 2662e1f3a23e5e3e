// Package table provides the dynamically-typed value model for the Quill
// configuration system.
//
// A Table maps string keys to values drawn from the TOML value set: string,
// int64, float64, bool, []any, and nested map[string]any. Tables are produced
// by parsing configuration files or built programmatically for single-key
// overrides. Merging is a shallow top-level overlay: a key present in the
// source replaces the destination's key entirely, even when both values are
// tables. Nested tables are never merged recursively.
package table

// Table is a mapping from string keys to dynamically-typed values.
// Key order is irrelevant to semantics.
type Table map[string]any

// Clone creates a deep copy of the table.
func Clone(src Table) Table {
	if src == nil {
		return nil
	}

	dst := make(Table, len(src))
	for key, val := range src {
		dst[key] = CloneValue(val)
	}
	return dst
}

// CloneValue creates a deep copy of a single value.
func CloneValue(val any) any {
	switch v := val.(type) {
	case map[string]any:
		return map[string]any(Clone(v))
	case Table:
		return Clone(v)
	case []any:
		return cloneSlice(v)
	default:
		return val
	}
}

// cloneSlice creates a deep copy of a slice value.
func cloneSlice(src []any) []any {
	if src == nil {
		return nil
	}

	dst := make([]any, len(src))
	for i, val := range src {
		dst[i] = CloneValue(val)
	}
	return dst
}

// Overlay copies every key of src into dst, replacing existing keys
// wholesale. A table-valued key in src shadows the entire table at that key
// in dst; nested keys are not merged. dst is created if nil.
func Overlay(dst, src Table) Table {
	if dst == nil {
		dst = make(Table, len(src))
	}
	for key, val := range src {
		dst[key] = CloneValue(val)
	}
	return dst
}

// Merged returns a new table with src overlaid onto a copy of base.
// Neither input is modified.
func Merged(base, src Table) Table {
	result := Clone(base)
	if result == nil {
		result = make(Table, len(src))
	}
	return Overlay(result, src)
}

// Equal reports whether two tables hold the same keys and values.
func Equal(a, b Table) bool {
	if len(a) != len(b) {
		return false
	}
	for k, va := range a {
		vb, ok := b[k]
		if !ok || !valueEqual(va, vb) {
			return false
		}
	}
	return true
}

// valueEqual compares two values for equality.
func valueEqual(a, b any) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}

	switch va := a.(type) {
	case map[string]any:
		vb, ok := asMap(b)
		if !ok {
			return false
		}
		return Equal(va, vb)
	case Table:
		vb, ok := asMap(b)
		if !ok {
			return false
		}
		return Equal(Table(va), vb)
	case []any:
		vb, ok := b.([]any)
		if !ok {
			return false
		}
		if len(va) != len(vb) {
			return false
		}
		for i := range va {
			if !valueEqual(va[i], vb[i]) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}

func asMap(v any) (Table, bool) {
	switch m := v.(type) {
	case map[string]any:
		return Table(m), true
	case Table:
		return m, true
	default:
		return nil, false
	}
}
