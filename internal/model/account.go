package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PersonalAccount is the owner's cash ledger. Transactions are kept in
// insertion order; chronological order is a derived view.
type PersonalAccount struct {
	OwnerName     string               `json:"owner_name"`
	AccountHolder string               `json:"account_holder"`
	BankName      string               `json:"bank_name"`
	AccountNumber string               `json:"account_number"`
	Transactions  []AccountTransaction `json:"transactions"`
	LastUpdated   time.Time            `json:"last_updated"`
}

// TotalBalance is the sum of all transaction amounts.
func (a *PersonalAccount) TotalBalance() decimal.Decimal {
	total := decimal.Zero
	for _, tx := range a.Transactions {
		total = total.Add(tx.Amount)
	}
	return total
}

// PendingAmount sums expense payments that are still awaiting reimbursement.
func (a *PersonalAccount) PendingAmount() decimal.Decimal {
	total := decimal.Zero
	for _, tx := range a.Transactions {
		if tx.Status == StatusPending && tx.Type == TypeExpensePayment {
			total = total.Add(tx.Amount)
		}
	}
	return total
}

// ReimbursedAmount sums the absolute amounts of company reimbursements.
func (a *PersonalAccount) ReimbursedAmount() decimal.Decimal {
	total := decimal.Zero
	for _, tx := range a.Transactions {
		if tx.Type == TypeCompanyReimbursement {
			total = total.Add(tx.Amount.Abs())
		}
	}
	return total
}
