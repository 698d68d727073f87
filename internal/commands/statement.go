package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/finbook-dev/finbook/internal/model"
	"github.com/finbook-dev/finbook/internal/period"
	"github.com/finbook-dev/finbook/internal/statement"
)

func newStatementCommand(dataDir *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "statement",
		Short: "Export PDF statements",
	}
	cmd.AddCommand(newStatementAccountCommand(dataDir))
	cmd.AddCommand(newStatementSalaryCommand(dataDir))
	return cmd
}

func newStatementAccountCommand(dataDir *string) *cobra.Command {
	var out, from, to string

	cmd := &cobra.Command{
		Use:   "account",
		Short: "Export a personal account statement",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(*dataDir)
			if err != nil {
				return err
			}

			end := period.EndOfMonth(time.Now()).AddDate(0, 0, 1)
			start := period.StartOfMonth(end.AddDate(0, -12, 0))
			if from != "" {
				m, err := period.ParseKey(from)
				if err != nil {
					return err
				}
				start = m
			}
			if to != "" {
				m, err := period.ParseKey(to)
				if err != nil {
					return err
				}
				end = period.NextMonth(m)
			}

			txs := app.Account.TransactionsBetween(start, end)
			pdfBytes, err := statement.BuildAccountStatementPDF(app.Account.Account(), txs, start, end.AddDate(0, 0, -1))
			if err != nil {
				return err
			}

			if err := os.WriteFile(out, pdfBytes, 0o644); err != nil {
				return fmt.Errorf("writing statement: %w", err)
			}
			cmd.Printf("Wrote %s (%d transactions)\n", out, len(txs))
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "statement.pdf", "output file")
	cmd.Flags().StringVar(&from, "from", "", "first month key, e.g. 2025-01")
	cmd.Flags().StringVar(&to, "to", "", "last month key")

	return cmd
}

func newStatementSalaryCommand(dataDir *string) *cobra.Command {
	var employeeID, out string

	cmd := &cobra.Command{
		Use:   "salary",
		Short: "Export an employee's salary statement",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(*dataDir)
			if err != nil {
				return err
			}

			emp, ok := app.Directory.Employee(employeeID)
			if !ok {
				return fmt.Errorf("employee %s: %w", employeeID, model.ErrUnknownEntity)
			}

			periods := app.Salary.EmployeePeriods(employeeID)
			pdfBytes, err := statement.BuildSalaryStatementPDF(emp, periods)
			if err != nil {
				return err
			}

			if err := os.WriteFile(out, pdfBytes, 0o644); err != nil {
				return fmt.Errorf("writing statement: %w", err)
			}
			cmd.Printf("Wrote %s (%d periods)\n", out, len(periods))
			return nil
		},
	}

	cmd.Flags().StringVar(&employeeID, "employee", "", "employee ID (required)")
	_ = cmd.MarkFlagRequired("employee")
	cmd.Flags().StringVar(&out, "out", "salary-statement.pdf", "output file")

	return cmd
}
