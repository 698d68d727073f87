package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClientPayment is one payment received against a project.
type ClientPayment struct {
	ID     string          `json:"id"`
	Date   time.Time       `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

// Project groups payments under a client engagement.
type Project struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Budget   decimal.Decimal `json:"budget"`
	Payments []ClientPayment `json:"payments,omitempty"`
}

// Received sums all payments on the project.
func (p Project) Received() decimal.Decimal {
	total := decimal.Zero
	for _, pay := range p.Payments {
		total = total.Add(pay.Amount)
	}
	return total
}

// Client owns a set of projects.
type Client struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Projects []Project `json:"projects,omitempty"`
}

// Revenue sums payments across all of the client's projects.
func (c Client) Revenue() decimal.Decimal {
	total := decimal.Zero
	for _, p := range c.Projects {
		total = total.Add(p.Received())
	}
	return total
}

// OutstandingBalance is the budgeted amount not yet paid, floored at zero
// per project.
func (c Client) OutstandingBalance() decimal.Decimal {
	total := decimal.Zero
	for _, p := range c.Projects {
		due := p.Budget.Sub(p.Received())
		if due.IsPositive() {
			total = total.Add(due)
		}
	}
	return total
}
