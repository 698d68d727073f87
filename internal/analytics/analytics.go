// Package analytics computes read-only rollups over the ledgers and the
// client/expense collections. Nothing here mutates; empty input degrades to
// zero values, never to an error.
package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbook-dev/finbook/internal/model"
	"github.com/finbook-dev/finbook/internal/period"
)

// Data is the read snapshot the aggregator works from.
type Data struct {
	Clients  []model.Client
	Expenses []model.Expense
	Periods  []model.SalaryPeriod
	Account  *model.PersonalAccount
}

// Metric is one labeled value in a report.
type Metric struct {
	Label string
	Value decimal.Decimal
}

// KPIs are the dashboard headline figures.
type KPIs struct {
	TotalRevenue       decimal.Decimal
	TotalExpenses      decimal.Decimal
	Profit             decimal.Decimal
	ProfitMargin       decimal.Decimal // percent; zero when revenue is zero
	PendingPayments    decimal.Decimal
	OutstandingBalance decimal.Decimal
	UnpaidSalaries     decimal.Decimal
}

// CalculateKPIs computes the headline figures from a snapshot.
func CalculateKPIs(d Data) KPIs {
	revenue := decimal.Zero
	outstanding := decimal.Zero
	for _, c := range d.Clients {
		revenue = revenue.Add(c.Revenue())
		outstanding = outstanding.Add(c.OutstandingBalance())
	}

	expenses := decimal.Zero
	pending := decimal.Zero
	for _, e := range d.Expenses {
		expenses = expenses.Add(e.Amount)
		if e.Status == model.ExpensePending {
			pending = pending.Add(e.Amount)
		}
	}

	unpaidSalaries := decimal.Zero
	for _, p := range d.Periods {
		unpaidSalaries = unpaidSalaries.Add(p.Unpaid())
	}

	profit := revenue.Sub(expenses)
	margin := decimal.Zero
	if revenue.IsPositive() {
		margin = profit.Div(revenue).Mul(decimal.NewFromInt(100))
	}

	return KPIs{
		TotalRevenue:       revenue,
		TotalExpenses:      expenses,
		Profit:             profit,
		ProfitMargin:       margin,
		PendingPayments:    pending,
		OutstandingBalance: outstanding,
		UnpaidSalaries:     unpaidSalaries,
	}
}

// Metrics flattens the KPIs for presentation.
func (k KPIs) Metrics() []Metric {
	return []Metric{
		{Label: "Total Revenue", Value: k.TotalRevenue},
		{Label: "Total Expenses", Value: k.TotalExpenses},
		{Label: "Profit", Value: k.Profit},
		{Label: "Profit Margin", Value: k.ProfitMargin},
		{Label: "Pending Payments", Value: k.PendingPayments},
		{Label: "Outstanding Balance", Value: k.OutstandingBalance},
		{Label: "Unpaid Salaries", Value: k.UnpaidSalaries},
	}
}

// MonthlyPoint is one month in a financial time series.
type MonthlyPoint struct {
	Month    time.Time
	Income   decimal.Decimal
	Expenses decimal.Decimal
}

// Profit is income minus expenses for the month.
func (m MonthlyPoint) Profit() decimal.Decimal {
	return m.Income.Sub(m.Expenses)
}

// MonthlyFinancialData produces exactly one point per calendar month for the
// window ending in end's month, months wide, ascending, with zero-filled
// months where nothing happened.
func MonthlyFinancialData(d Data, end time.Time, months int) []MonthlyPoint {
	if months <= 0 {
		return nil
	}
	last := period.StartOfMonth(end)
	first := last.AddDate(0, -(months - 1), 0)

	var series []MonthlyPoint
	for _, m := range period.MonthsBetween(first, last) {
		// Half-open [month start, next month start) so intra-day
		// timestamps on the last day still count.
		from, to := m, period.NextMonth(m)
		series = append(series, MonthlyPoint{
			Month:    m,
			Income:   incomeBetween(d, from, to),
			Expenses: expensesBetween(d, from, to),
		})
	}
	return series
}

// ExpenseDistribution totals expenses per category, descending, omitting
// zero categories.
func ExpenseDistribution(d Data) []Metric {
	totals := make(map[model.ExpenseCategory]decimal.Decimal)
	for _, e := range d.Expenses {
		totals[e.Category] = totals[e.Category].Add(e.Amount)
	}

	var out []Metric
	for cat, total := range totals {
		if total.IsPositive() {
			out = append(out, Metric{Label: string(cat), Value: total})
		}
	}
	sortDescending(out)
	return out
}

// ClientRevenueDistribution totals revenue per client, descending, omitting
// clients with no payments.
func ClientRevenueDistribution(d Data) []Metric {
	var out []Metric
	for _, c := range d.Clients {
		if rev := c.Revenue(); rev.IsPositive() {
			out = append(out, Metric{Label: c.Name, Value: rev})
		}
	}
	sortDescending(out)
	return out
}

func incomeBetween(d Data, from, to time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, c := range d.Clients {
		for _, p := range c.Projects {
			for _, pay := range p.Payments {
				if !pay.Date.Before(from) && pay.Date.Before(to) {
					total = total.Add(pay.Amount)
				}
			}
		}
	}
	return total
}

func expensesBetween(d Data, from, to time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, e := range d.Expenses {
		if !e.Date.Before(from) && e.Date.Before(to) {
			total = total.Add(e.Amount)
		}
	}
	return total
}

func sortDescending(metrics []Metric) {
	sort.SliceStable(metrics, func(i, j int) bool {
		return metrics[i].Value.GreaterThan(metrics[j].Value)
	})
}
