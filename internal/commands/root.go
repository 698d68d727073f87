// Package commands wires the ledger services into the finbook CLI.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/finbook-dev/finbook/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var dataDir string

	rootCmd := &cobra.Command{
		Use:     "finbook",
		Short:   "Personal and small-business finance tracking",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "dir", ".", "data directory")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newPeriodCommand(&dataDir))
	rootCmd.AddCommand(newSalaryCommand(&dataDir))
	rootCmd.AddCommand(newAccountCommand(&dataDir))
	rootCmd.AddCommand(newReportCommand(&dataDir))
	rootCmd.AddCommand(newStatementCommand(&dataDir))
	rootCmd.AddCommand(newVerifyCommand(&dataDir))

	return rootCmd
}
