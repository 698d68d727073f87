package commands

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/finbook-dev/finbook/internal/model"
	"github.com/finbook-dev/finbook/internal/period"
	"github.com/finbook-dev/finbook/internal/reconcile"
)

func newSalaryCommand(dataDir *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "salary",
		Short: "Pay salaries and inspect unpaid balances",
	}
	cmd.AddCommand(newSalaryPayCommand(dataDir))
	cmd.AddCommand(newSalaryUnpaidCommand(dataDir))
	return cmd
}

func newSalaryPayCommand(dataDir *string) *cobra.Command {
	var employeeID, amount, date, method, ref, notes string
	var personal bool

	cmd := &cobra.Command{
		Use:   "pay",
		Short: "Apply a salary payment with carry-forward allocation",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(*dataDir)
			if err != nil {
				return err
			}

			amt, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("parsing amount %q: %w", amount, err)
			}

			paymentDate := time.Now()
			if date != "" {
				paymentDate, err = time.Parse("2006-01-02", date)
				if err != nil {
					return fmt.Errorf("parsing date %q: %w", date, err)
				}
			}

			result, err := app.Engine.SalaryPayment(reconcile.SalaryPaymentParams{
				Amount:                amt,
				Date:                  paymentDate,
				EmployeeID:            employeeID,
				PaymentMethod:         model.PaymentMethod(method),
				PaidFromPersonalFunds: personal,
				ReferenceNumber:       ref,
				Notes:                 notes,
			})
			if err != nil {
				return err
			}
			if err := app.saveLedgers(fmt.Sprintf("salary: pay %s to %s", amt.StringFixed(2), employeeID)); err != nil {
				return err
			}

			for _, a := range result.Allocations {
				suffix := ""
				if a.Advance {
					suffix = " (advance)"
				}
				cmd.Printf("%s  %s%s\n", period.FormatKey(a.Month), a.Amount.StringFixed(2), suffix)
			}
			if result.Transaction != nil {
				cmd.Printf("Posted personal account transaction %s\n", result.Transaction.ID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&employeeID, "employee", "", "employee ID (required)")
	_ = cmd.MarkFlagRequired("employee")
	cmd.Flags().StringVar(&amount, "amount", "", "payment amount (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&date, "date", "", "payment date YYYY-MM-DD, defaults to today")
	cmd.Flags().StringVar(&method, "method", string(model.MethodBankTransfer), "payment method")
	cmd.Flags().BoolVar(&personal, "personal", false, "paid from personal funds")
	cmd.Flags().StringVar(&ref, "ref", "", "reference number")
	cmd.Flags().StringVar(&notes, "notes", "", "notes")

	return cmd
}

func newSalaryUnpaidCommand(dataDir *string) *cobra.Command {
	var employeeID string

	cmd := &cobra.Command{
		Use:   "unpaid",
		Short: "Show unpaid salary balances",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(*dataDir)
			if err != nil {
				return err
			}

			employees := app.Directory.Employees()
			if employeeID != "" {
				emp, ok := app.Directory.Employee(employeeID)
				if !ok {
					return fmt.Errorf("employee %s: %w", employeeID, model.ErrUnknownEntity)
				}
				employees = []model.Employee{emp}
			}

			for _, emp := range employees {
				cmd.Printf("%s (%s)\n", emp.Name, emp.ID)
				unpaid := app.Salary.UnpaidPeriods(emp.ID)
				if len(unpaid) == 0 {
					cmd.Println("  nothing unpaid")
					continue
				}
				for _, u := range unpaid {
					cmd.Printf("  %s  %s\n", period.FormatKey(u.Month), u.Amount.StringFixed(2))
				}
				cmd.Printf("  total %s\n", app.Salary.TotalUnpaid(emp.ID).StringFixed(2))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&employeeID, "employee", "", "restrict to one employee")

	return cmd
}
