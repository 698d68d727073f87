package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/finbook-dev/finbook/internal/account"
	"github.com/finbook-dev/finbook/internal/importer"
	"github.com/finbook-dev/finbook/internal/model"
	"github.com/finbook-dev/finbook/internal/reconcile"
)

func newAccountCommand(dataDir *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage the personal cash account",
	}
	cmd.AddCommand(newAccountShowCommand(dataDir))
	cmd.AddCommand(newAccountAddCommand(dataDir))
	cmd.AddCommand(newAccountStatusCommand(dataDir))
	cmd.AddCommand(newAccountReimburseCommand(dataDir))
	cmd.AddCommand(newAccountImportCommand(dataDir))
	return cmd
}

func newAccountShowCommand(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show balance and recent transactions",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(*dataDir)
			if err != nil {
				return err
			}

			cmd.Printf("Balance:    %s\n", app.Account.Balance().StringFixed(2))
			cmd.Printf("Pending:    %s\n", app.Account.PendingAmount().StringFixed(2))
			cmd.Printf("Reimbursed: %s\n", app.Account.ReimbursedAmount().StringFixed(2))

			txs := app.Account.Account().Transactions
			start := 0
			if len(txs) > 10 {
				start = len(txs) - 10
			}
			for _, tx := range txs[start:] {
				cmd.Printf("%s  %-22s %-10s %10s  %s\n",
					tx.Date.Format("2006-01-02"), tx.Type, tx.Status,
					tx.Amount.StringFixed(2), tx.Description)
			}
			return nil
		},
	}
}

func newAccountAddCommand(dataDir *string) *cobra.Command {
	var amount, date, txType, description, method, ref, notes, expenseID, employeeID string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a personal account transaction",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(*dataDir)
			if err != nil {
				return err
			}

			amt, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("parsing amount %q: %w", amount, err)
			}

			txDate := time.Now()
			if date != "" {
				txDate, err = time.Parse("2006-01-02", date)
				if err != nil {
					return fmt.Errorf("parsing date %q: %w", date, err)
				}
			}

			tx := app.Account.AddTransaction(account.AddParams{
				Date:              txDate,
				Amount:            amt,
				Description:       description,
				Type:              model.TransactionType(txType),
				RelatedExpenseID:  expenseID,
				RelatedEmployeeID: employeeID,
				PaymentMethod:     model.PaymentMethod(method),
				ReferenceNumber:   ref,
				Notes:             notes,
			})
			if err := app.saveLedgers("account: add transaction"); err != nil {
				return err
			}

			cmd.Printf("Recorded %s transaction %s (%s)\n", tx.Type, tx.ID, tx.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "signed amount, positive = paid out (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&txType, "type", string(model.TypeOther), "transaction type")
	cmd.Flags().StringVar(&description, "description", "", "description")
	cmd.Flags().StringVar(&date, "date", "", "date YYYY-MM-DD, defaults to today")
	cmd.Flags().StringVar(&method, "method", string(model.MethodBankTransfer), "payment method")
	cmd.Flags().StringVar(&ref, "ref", "", "reference number")
	cmd.Flags().StringVar(&notes, "notes", "", "notes")
	cmd.Flags().StringVar(&expenseID, "expense", "", "related expense ID")
	cmd.Flags().StringVar(&employeeID, "employee", "", "related employee ID")

	return cmd
}

func newAccountStatusCommand(dataDir *string) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "status <transaction-id> <status>",
		Short: "Update a transaction's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(*dataDir)
			if err != nil {
				return err
			}

			var reimbursedAt *time.Time
			if date != "" {
				t, err := time.Parse("2006-01-02", date)
				if err != nil {
					return fmt.Errorf("parsing date %q: %w", date, err)
				}
				reimbursedAt = &t
			}

			changed := app.Account.UpdateTransactionStatus(args[0], model.TransactionStatus(args[1]), reimbursedAt)
			if !changed {
				cmd.Println("No change (unknown transaction or disallowed transition)")
				return nil
			}
			if err := app.saveLedgers("account: update transaction status"); err != nil {
				return err
			}

			cmd.Printf("Transaction %s is now %s\n", args[0], args[1])
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "reimbursement date YYYY-MM-DD")

	return cmd
}

func newAccountReimburseCommand(dataDir *string) *cobra.Command {
	var expenseID, amount, date, method, ref string

	cmd := &cobra.Command{
		Use:   "reimburse",
		Short: "Record a company reimbursement for an expense",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(*dataDir)
			if err != nil {
				return err
			}

			amt, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("parsing amount %q: %w", amount, err)
			}

			txDate := time.Now()
			if date != "" {
				txDate, err = time.Parse("2006-01-02", date)
				if err != nil {
					return fmt.Errorf("parsing date %q: %w", date, err)
				}
			}

			tx, err := app.Engine.RecordExpenseReimbursement(reconcile.ReimbursementParams{
				ExpenseID:       expenseID,
				Amount:          amt,
				Date:            txDate,
				PaymentMethod:   model.PaymentMethod(method),
				ReferenceNumber: ref,
			})
			if err != nil {
				return err
			}
			if err := app.saveLedgers("account: record reimbursement"); err != nil {
				return err
			}

			cmd.Printf("Recorded reimbursement %s of %s\n", tx.ID, amt.StringFixed(2))
			return nil
		},
	}

	cmd.Flags().StringVar(&expenseID, "expense", "", "expense ID (required)")
	_ = cmd.MarkFlagRequired("expense")
	cmd.Flags().StringVar(&amount, "amount", "", "reimbursed amount (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&date, "date", "", "date YYYY-MM-DD, defaults to today")
	cmd.Flags().StringVar(&method, "method", string(model.MethodBankTransfer), "payment method")
	cmd.Flags().StringVar(&ref, "ref", "", "reference number")

	return cmd
}

func newAccountImportCommand(dataDir *string) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import bank CSVs from the import directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(*dataDir)
			if err != nil {
				return err
			}

			parser := importer.DefaultRegistry().Get(format)
			if parser == nil {
				return fmt.Errorf("unknown import format %q", format)
			}

			files, err := importer.Scan(app.Dir)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				cmd.Println("Nothing to import")
				return nil
			}

			imported := 0
			for _, file := range files {
				f, err := os.Open(file.Path)
				if err != nil {
					return fmt.Errorf("opening %s: %w", file.Name, err)
				}
				rows, err := parser.Parse(f)
				f.Close()
				if err != nil {
					return fmt.Errorf("parsing %s: %w", file.Name, err)
				}

				for _, params := range importer.ToAddParams(rows) {
					app.Account.AddTransaction(params)
					imported++
				}
				if err := importer.MarkProcessed(app.Dir, file.Name); err != nil {
					return err
				}
			}

			if err := app.saveLedgers(fmt.Sprintf("account: import %d transaction(s)", imported)); err != nil {
				return err
			}

			cmd.Printf("Imported %d transaction(s) from %d file(s)\n", imported, len(files))
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "generic", "bank CSV format")

	return cmd
}
