package config

import (
	"embed"
	"fmt"
	"runtime"
	"sync"

	"github.com/quill-editor/quill/internal/config/loader"
	"github.com/quill-editor/quill/internal/config/registry"
	"github.com/quill-editor/quill/internal/config/table"
)

//go:embed assets/*.toml
var assets embed.FS

// Embedded asset names.
const (
	assetDefaults = "assets/defaults.toml"
	assetWindows  = "assets/windows.toml"
	assetYAML     = "assets/yaml.toml"
	assetMakefile = "assets/makefile.toml"
)

var defaultsOnce sync.Once
var platformTable table.Table
var categoryTables map[registry.Category]table.Table

// platformDefaults returns the embedded base defaults with any overrides
// for the current platform applied. Parsed once; immutable afterward.
func platformDefaults() table.Table {
	loadDefaults()
	return table.Clone(platformTable)
}

// categoryDefaults returns the embedded per-category default tables.
func categoryDefaults() map[registry.Category]table.Table {
	loadDefaults()
	result := make(map[registry.Category]table.Table, len(categoryTables))
	for cat, tbl := range categoryTables {
		result[cat] = table.Clone(tbl)
	}
	return result
}

func loadDefaults() {
	defaultsOnce.Do(func() {
		platformTable = platformDefaultsFor(runtime.GOOS)
		categoryTables = map[registry.Category]table.Table{
			registry.CategoryYAML:     mustLoadAsset(assetYAML),
			registry.CategoryMakefile: mustLoadAsset(assetMakefile),
		}
	})
}

// platformDefaultsFor builds the base defaults for a given GOOS.
func platformDefaultsFor(goos string) table.Table {
	base := mustLoadAsset(assetDefaults)
	if goos == "windows" {
		base = table.Overlay(base, mustLoadAsset(assetWindows))
	}
	return base
}

// mustLoadAsset parses one embedded asset. Embedded defaults are part of
// the build; failing to parse one is a programmer error.
func mustLoadAsset(name string) table.Table {
	data, err := assets.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("embedded config asset %s: %v", name, err))
	}

	tbl, err := loader.NewTOMLLoader().Parse(name, data)
	if err != nil {
		panic(fmt.Sprintf("embedded config asset %s must parse: %v", name, err))
	}
	return tbl
}
