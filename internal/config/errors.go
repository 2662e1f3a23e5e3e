package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration operations.
var (
	// ErrTypeMismatch indicates a merged value doesn't match the type the
	// resolved snapshot expects.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrNoConfigDir indicates no usable source for the configuration
	// directory: no explicit path, no XDG base directory, no home directory.
	ErrNoConfigDir = errors.New("no usable configuration directory source")
)

// ResolveError is returned when a merged table cannot be decoded into a
// Snapshot. A single bad layer disables resolution only for callers whose
// merge includes it, never for the whole engine.
type ResolveError struct {
	// Field is the snapshot field that failed to decode.
	Field string
	// Expected is the expected type name.
	Expected string
	// Found is the type name of the value actually present,
	// or "missing" if no layer supplies the field.
	Found string
}

// Error implements the error interface.
func (e *ResolveError) Error() string {
	return fmt.Sprintf("resolving %s: expected %s, found %s", e.Field, e.Expected, e.Found)
}

// Is implements error matching against ErrTypeMismatch.
func (e *ResolveError) Is(target error) bool {
	return target == ErrTypeMismatch
}
