// Package registry provides the category registry for Quill configuration.
//
// A category groups settings that apply to one kind of document (e.g., a
// file-type such as "yaml"). The registry maps config-file names and file
// extensions to known categories so the configuration engine can decide
// which layer a loaded file belongs to.
package registry

import (
	"path/filepath"
	"sort"
	"strings"
)

// Category identifies a configuration category.
type Category string

// Built-in categories.
const (
	CategoryNone      Category = ""
	CategoryPlaintext Category = "plaintext"
	CategoryYAML      Category = "yaml"
	CategoryTOML      Category = "toml"
	CategoryJSON      Category = "json"
	CategoryMarkdown  Category = "markdown"
	CategoryMakefile  Category = "makefile"
	CategoryRust      Category = "rust"
	CategoryGo        Category = "go"
	CategoryPython    Category = "python"
)

// String returns the category name.
func (c Category) String() string {
	if c == CategoryNone {
		return "none"
	}
	return string(c)
}

// categories is the set of recognized category names.
var categories = map[string]Category{
	"plaintext": CategoryPlaintext,
	"yaml":      CategoryYAML,
	"toml":      CategoryTOML,
	"json":      CategoryJSON,
	"markdown":  CategoryMarkdown,
	"makefile":  CategoryMakefile,
	"rust":      CategoryRust,
	"go":        CategoryGo,
	"python":    CategoryPython,
}

// extensions maps file extensions (without the dot) to categories.
var extensions = map[string]Category{
	"txt":  CategoryPlaintext,
	"yaml": CategoryYAML,
	"yml":  CategoryYAML,
	"toml": CategoryTOML,
	"json": CategoryJSON,
	"md":   CategoryMarkdown,
	"rs":   CategoryRust,
	"go":   CategoryGo,
	"py":   CategoryPython,
}

// Resolve maps a category name to its Category.
// Matching is case-insensitive.
func Resolve(name string) (Category, bool) {
	c, ok := categories[strings.ToLower(name)]
	return c, ok
}

// FromPath maps a file path to a category via its extension or well-known
// file name. Returns false for unrecognized paths.
func FromPath(path string) (Category, bool) {
	base := filepath.Base(path)
	if strings.EqualFold(base, "makefile") {
		return CategoryMakefile, true
	}

	ext := strings.TrimPrefix(filepath.Ext(base), ".")
	if ext == "" {
		return CategoryNone, false
	}
	c, ok := extensions[strings.ToLower(ext)]
	return c, ok
}

// Known returns all registered categories sorted by name.
func Known() []Category {
	result := make([]Category, 0, len(categories))
	for _, c := range categories {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}
