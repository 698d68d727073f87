package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalaryPeriod is one employee's salary obligation for one calendar month.
// Month is always normalized to the first of the month at midnight UTC.
// Periods are never deleted, only zeroed out.
type SalaryPeriod struct {
	EmployeeID string          `json:"employee_id"`
	Month      time.Time       `json:"month"`
	TotalDue   decimal.Decimal `json:"total_due"`
	AmountPaid decimal.Decimal `json:"amount_paid"`
	Notes      string          `json:"notes,omitempty"`
}

// Unpaid returns the outstanding balance for the period, floored at zero so
// an overpaid period never contributes a negative amount.
func (p SalaryPeriod) Unpaid() decimal.Decimal {
	unpaid := p.TotalDue.Sub(p.AmountPaid)
	if unpaid.IsNegative() {
		return decimal.Zero
	}
	return unpaid
}
