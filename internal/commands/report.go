package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/finbook-dev/finbook/internal/analytics"
	"github.com/finbook-dev/finbook/internal/period"
)

func newReportCommand(dataDir *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Read-only analytics over the ledgers",
	}
	cmd.AddCommand(newReportKPICommand(dataDir))
	cmd.AddCommand(newReportMonthlyCommand(dataDir))
	cmd.AddCommand(newReportExpensesCommand(dataDir))
	cmd.AddCommand(newReportClientsCommand(dataDir))
	return cmd
}

func (a *App) analyticsData() analytics.Data {
	return analytics.Data{
		Clients:  a.Clients,
		Expenses: a.Expenses,
		Periods:  a.Salary.Periods(),
		Account:  a.Account.Account(),
	}
}

func newReportKPICommand(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "kpi",
		Short: "Headline financial indicators",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(*dataDir)
			if err != nil {
				return err
			}

			for _, m := range analytics.CalculateKPIs(app.analyticsData()).Metrics() {
				cmd.Printf("%-20s %12s\n", m.Label, m.Value.StringFixed(2))
			}
			return nil
		},
	}
}

func newReportMonthlyCommand(dataDir *string) *cobra.Command {
	var months int

	cmd := &cobra.Command{
		Use:   "monthly",
		Short: "Monthly income/expense series",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(*dataDir)
			if err != nil {
				return err
			}

			series := analytics.MonthlyFinancialData(app.analyticsData(), time.Now(), months)
			for _, p := range series {
				cmd.Printf("%s  income %12s  expenses %12s  profit %12s\n",
					period.FormatKey(p.Month),
					p.Income.StringFixed(2),
					p.Expenses.StringFixed(2),
					p.Profit().StringFixed(2))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&months, "months", 12, "window size in months")

	return cmd
}

func newReportExpensesCommand(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "expenses",
		Short: "Expense totals by category",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(*dataDir)
			if err != nil {
				return err
			}

			for _, m := range analytics.ExpenseDistribution(app.analyticsData()) {
				cmd.Printf("%-20s %12s\n", m.Label, m.Value.StringFixed(2))
			}
			return nil
		},
	}
}

func newReportClientsCommand(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "clients",
		Short: "Revenue by client",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(*dataDir)
			if err != nil {
				return err
			}

			for _, m := range analytics.ClientRevenueDistribution(app.analyticsData()) {
				cmd.Printf("%-20s %12s\n", m.Label, m.Value.StringFixed(2))
			}
			return nil
		},
	}
}
