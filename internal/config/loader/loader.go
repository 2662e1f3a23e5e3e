// Package loader provides configuration file loading for Quill.
//
// The loader parses `.quillconf` files (TOML) into generic tables. A missing
// file is not an error; malformed content is reported as a *ParseError so
// callers can keep the previous configuration for the affected target.
package loader

import (
	"io/fs"
	"os"
)

// FileSystem is an abstraction for file system operations.
// It allows tests to run against in-memory file systems.
type FileSystem interface {
	fs.FS

	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)

	// ReadDir lists the entries of a directory.
	ReadDir(path string) ([]fs.DirEntry, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// Open implements fs.FS.
func (OSFS) Open(name string) (fs.File, error) {
	return os.Open(name)
}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// ReadDir lists the entries of a directory.
func (OSFS) ReadDir(path string) ([]fs.DirEntry, error) {
	return os.ReadDir(path)
}

// DefaultFS returns the default file system (OS).
func DefaultFS() FileSystem {
	return OSFS{}
}
