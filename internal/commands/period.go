package commands

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/finbook-dev/finbook/internal/period"
)

func newPeriodCommand(dataDir *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "period",
		Short: "Manage monthly salary periods",
	}
	cmd.AddCommand(newPeriodAddCommand(dataDir))
	cmd.AddCommand(newPeriodGenerateCommand(dataDir))
	cmd.AddCommand(newPeriodListCommand(dataDir))
	return cmd
}

func newPeriodAddCommand(dataDir *string) *cobra.Command {
	var employeeID, month, amount, notes string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a salary period for an employee",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(*dataDir)
			if err != nil {
				return err
			}

			m, err := period.ParseKey(month)
			if err != nil {
				return err
			}
			due, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("parsing amount %q: %w", amount, err)
			}

			p, err := app.Salary.AddPeriod(employeeID, m, due, notes)
			if err != nil {
				return err
			}
			if err := app.saveLedgers(fmt.Sprintf("period: add %s for %s", period.FormatKey(p.Month), employeeID)); err != nil {
				return err
			}

			cmd.Printf("Added period %s for %s, due %s\n", period.FormatKey(p.Month), employeeID, p.TotalDue.StringFixed(2))
			return nil
		},
	}

	cmd.Flags().StringVar(&employeeID, "employee", "", "employee ID (required)")
	_ = cmd.MarkFlagRequired("employee")
	cmd.Flags().StringVar(&month, "month", "", "month key, e.g. 2025-01 (required)")
	_ = cmd.MarkFlagRequired("month")
	cmd.Flags().StringVar(&amount, "amount", "", "salary due for the month (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&notes, "notes", "", "optional notes")

	return cmd
}

func newPeriodGenerateCommand(dataDir *string) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Ensure every salaried employee has a period for the month",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(*dataDir)
			if err != nil {
				return err
			}

			ref := time.Now()
			if date != "" {
				ref, err = period.ParseKey(date)
				if err != nil {
					return err
				}
			}

			created, err := app.Salary.EnsureMonthlyPeriods(ref)
			if err != nil {
				return err
			}
			if err := app.saveLedgers(fmt.Sprintf("period: generate %s", period.FormatKey(ref))); err != nil {
				return err
			}

			cmd.Printf("Created %d period(s) for %s\n", len(created), period.FormatKey(ref))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "month", "", "month key, defaults to the current month")

	return cmd
}

func newPeriodListCommand(dataDir *string) *cobra.Command {
	var employeeID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List an employee's salary periods",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(*dataDir)
			if err != nil {
				return err
			}

			periods := app.Salary.EmployeePeriods(employeeID)
			if len(periods) == 0 {
				cmd.Println("No periods found")
				return nil
			}

			for _, p := range periods {
				cmd.Printf("%s  due %10s  paid %10s  unpaid %10s\n",
					period.FormatKey(p.Month),
					p.TotalDue.StringFixed(2),
					p.AmountPaid.StringFixed(2),
					p.Unpaid().StringFixed(2))
			}
			cmd.Printf("Total unpaid: %s\n", app.Salary.TotalUnpaid(employeeID).StringFixed(2))
			return nil
		},
	}

	cmd.Flags().StringVar(&employeeID, "employee", "", "employee ID (required)")
	_ = cmd.MarkFlagRequired("employee")

	return cmd
}
