package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balanco-dev/balanco/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "balanco",
		Short:   "Reconstruct financial statements from general-ledger exports",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newImportCommand())
	rootCmd.AddCommand(newStatementsCommand())
	rootCmd.AddCommand(newChartCommand())

	return rootCmd
}
