package commands

import (
	"github.com/spf13/cobra"

	"github.com/finbook-dev/finbook/internal/oplog"
)

func newVerifyCommand(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check ledger consistency and unfinished operations",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(*dataDir)
			if err != nil {
				return err
			}

			if err := app.Account.CheckConsistency(); err != nil {
				return err
			}
			cmd.Println("Account balance is consistent")

			open, err := oplog.New(app.Dir).Unfinished()
			if err != nil {
				return err
			}
			if len(open) == 0 {
				cmd.Println("No unfinished operations")
				return nil
			}

			cmd.Printf("%d unfinished operation(s):\n", len(open))
			for _, e := range open {
				cmd.Printf("  %s  %s %s (%s) last state %s\n",
					e.Timestamp.Format("2006-01-02 15:04:05"), e.Op, e.Ref, e.Details, e.State)
			}
			return nil
		},
	}
}
