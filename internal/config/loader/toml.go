package loader

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/quill-editor/quill/internal/config/table"
)

// TOMLLoader loads configuration tables from TOML files.
type TOMLLoader struct {
	fs FileSystem
}

// NewTOMLLoader creates a new TOML loader backed by the OS file system.
func NewTOMLLoader() *TOMLLoader {
	return &TOMLLoader{fs: DefaultFS()}
}

// NewTOMLLoaderWithFS creates a TOML loader with a custom file system.
func NewTOMLLoaderWithFS(fs FileSystem) *TOMLLoader {
	return &TOMLLoader{fs: fs}
}

// LoadFrom reads a configuration table from a file.
// Returns nil, nil if the file does not exist.
func (l *TOMLLoader) LoadFrom(path string) (table.Table, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	return l.Parse(path, data)
}

// Parse parses raw TOML bytes into a table. The source name is used only
// in diagnostics.
func (l *TOMLLoader) Parse(source string, data []byte) (table.Table, error) {
	var config map[string]any
	if err := toml.Unmarshal(data, &config); err != nil {
		parseErr := &ParseError{
			Path:    source,
			Message: err.Error(),
			Err:     err,
		}
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			parseErr.Line, parseErr.Column = decodeErr.Position()
		}
		return nil, parseErr
	}

	return table.Table(config), nil
}

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
