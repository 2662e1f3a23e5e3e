// Package cli implements the quillconf command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quill-editor/quill/internal/config"
	"github.com/quill-editor/quill/internal/logging"
)

var (
	logLevel  string
	configDir string
	extrasDir string
)

// rootCmd is the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "quillconf",
	Short: "Inspect and watch Quill's layered configuration",
	Long: `quillconf resolves Quill's effective configuration from its cascading
sources: built-in defaults, per-category defaults, user config files, and
session overrides. It can print the active config directory, show the
resolved settings for a category, and watch the directory for live reloads.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(logging.Config{
			Level:  logging.ParseLevel(logLevel),
			Output: os.Stderr,
			Pretty: true,
		})
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default: resolved from environment)")
	rootCmd.PersistentFlags().StringVar(&extrasDir, "extras-dir", "", "bundled plugins directory appended to the plugin search path")
}

// resolveConfigDir returns the directory from the flag, or resolves it from
// the environment.
func resolveConfigDir() (string, error) {
	if configDir != "" {
		return configDir, nil
	}
	return config.DirFromEnv()
}

// newManager builds a manager loaded from the active config directory.
func newManager(opts ...config.Option) (*config.Manager, error) {
	dir, err := resolveConfigDir()
	if err != nil {
		return nil, err
	}

	if extrasDir == "" {
		extrasDir = os.Getenv(config.EnvExtrasDir)
	}
	if extrasDir != "" {
		opts = append(opts, config.WithExtrasDir(extrasDir))
	}

	m := config.NewManager(opts...)
	m.SetConfigDir(dir)
	return m, nil
}
