package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "reconcilectl",
		Short: "Run budget reconciliation reports against the ledger database",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newGridCommand(),
		newFxCommand(),
		newBalancesCommand(),
		newYearCommand(),
		newRateCommand(),
		newTokenCommand(),
	)

	return rootCmd
}
