package config

import (
	"os"
	"path/filepath"
)

// Environment variables consulted at the process edge. Resolution logic
// itself takes these as explicit parameters so it stays a pure function.
const (
	// EnvConfigDir names an explicit configuration directory.
	EnvConfigDir = "QUILL_CONFIG_DIR"

	// EnvXDGConfigHome is the XDG base directory variable.
	EnvXDGConfigHome = "XDG_CONFIG_HOME"

	// EnvExtrasDir lets a client pass a path to bundled plugins.
	EnvExtrasDir = "QUILL_SYS_PLUGIN_PATH"
)

// appDirName is the application subdirectory under the XDG base.
const appDirName = "quill"

// Dir computes the active configuration directory from prioritized inputs:
// an explicit directory wins outright; otherwise the XDG base directory
// gains the application subdirectory; otherwise the home directory gains
// ".config/quill". All three empty is a startup precondition violation,
// reported as ErrNoConfigDir.
func Dir(explicit, xdgBase, home string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if xdgBase != "" {
		return filepath.Join(xdgBase, appDirName), nil
	}
	if home != "" {
		return filepath.Join(home, ".config", appDirName), nil
	}
	return "", ErrNoConfigDir
}

// DirFromEnv resolves the configuration directory from the process
// environment. Only the CLI edge should call this; everything below it
// works with explicit paths.
func DirFromEnv() (string, error) {
	home, _ := os.UserHomeDir()
	return Dir(os.Getenv(EnvConfigDir), os.Getenv(EnvXDGConfigHome), home)
}
