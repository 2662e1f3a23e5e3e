package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// dirCmd prints the active configuration directory.
var dirCmd = &cobra.Command{
	Use:   "dir",
	Short: "Print the active configuration directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveConfigDir()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), dir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dirCmd)
}
