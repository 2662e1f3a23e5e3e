// Package layer provides the two-layer configuration unit for Quill.
//
// A Pair stacks a mutable user layer over an immutable base layer and keeps
// an eagerly rebuilt merged view, so reads never pay a merge cost and never
// observe a stale result. The same pair shape is used for the global
// configuration, for each category, and for each session's overrides.
package layer

import "github.com/quill-editor/quill/internal/config/table"

// Target selects which layer of a Pair receives a single-key write.
type Target uint8

const (
	// TargetBase writes into the base layer, below any user values.
	TargetBase Target = iota

	// TargetUser writes into the user layer, shadowing the base.
	TargetUser
)

// String returns a human-readable name for the target.
func (t Target) String() string {
	switch t {
	case TargetBase:
		return "base"
	case TargetUser:
		return "user"
	default:
		return "unknown"
	}
}

// Pair holds a base layer, a user layer, and their cached merged view.
// A nil layer is absent and contributes nothing. The cache is derived
// state: it is rebuilt on every mutation and never written directly.
type Pair struct {
	base  table.Table
	user  table.Table
	cache table.Table
}

// NewPair constructs a pair and immediately computes its merged view.
// Either input may be nil.
func NewPair(base, user table.Table) *Pair {
	p := &Pair{
		base: table.Clone(base),
		user: table.Clone(user),
	}
	p.rebuild()
	return p
}

// SetUser replaces the entire user layer and rebuilds the merged view.
// Any keys previously written to the user layer are discarded.
func (p *Pair) SetUser(user table.Table) {
	p.user = table.Clone(user)
	p.rebuild()
}

// Set writes one key into the target layer, creating that layer as empty
// if it is absent, and rebuilds the merged view.
func (p *Pair) Set(key string, value any, target Target) {
	var dst *table.Table
	if target == TargetUser {
		dst = &p.user
	} else {
		dst = &p.base
	}

	if *dst == nil {
		*dst = make(table.Table)
	}
	(*dst)[key] = value
	p.rebuild()
}

// rebuild recomputes the cache as a full shallow overlay of user onto base.
// Keys present in user shadow base wholesale; table-valued keys are
// replaced, not merged.
func (p *Pair) rebuild() {
	cache := table.Clone(p.base)
	if cache == nil {
		cache = make(table.Table)
	}
	if p.user != nil {
		cache = table.Overlay(cache, p.user)
	}
	p.cache = cache
}

// Cache returns a copy of the merged view.
func (p *Pair) Cache() table.Table {
	return table.Clone(p.cache)
}

// Value returns a copy of the merged value for a key. Mutating the result
// never affects the pair.
func (p *Pair) Value(key string) (any, bool) {
	v, ok := p.cache[key]
	if !ok {
		return nil, false
	}
	return table.CloneValue(v), true
}

// MergedWith returns a new table equal to this pair's merged view overlaid
// by the other pair's merged view; the argument wins on key conflicts.
// Neither pair is modified.
func (p *Pair) MergedWith(other *Pair) table.Table {
	return table.Merged(p.cache, other.cache)
}

// HasUser reports whether the user layer is present.
func (p *Pair) HasUser() bool {
	return p.user != nil
}

// HasBase reports whether the base layer is present.
func (p *Pair) HasBase() bool {
	return p.base != nil
}
