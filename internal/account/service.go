// Package account manages the owner's personal cash ledger. All mutation
// goes through the Service so the running balance and LastUpdated stamp stay
// authoritative.
package account

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finbook-dev/finbook/internal/model"
)

// Service wraps a PersonalAccount and enforces the transaction state machine.
type Service struct {
	acct    *model.PersonalAccount
	balance decimal.Decimal // running total, checked against the recomputed sum
	now     func() time.Time
}

// NewService creates a ledger over an existing account, or a fresh one when
// acct is nil.
func NewService(acct *model.PersonalAccount) *Service {
	if acct == nil {
		acct = &model.PersonalAccount{}
	}
	return &Service{acct: acct, balance: acct.TotalBalance(), now: time.Now}
}

// Account returns the underlying aggregate, for persistence and read-only
// inspection. Callers must not edit the transaction slice directly.
func (s *Service) Account() *model.PersonalAccount {
	return s.acct
}

// AddParams holds the caller-supplied fields of a new transaction.
type AddParams struct {
	Date              time.Time
	Amount            decimal.Decimal // positive = paid out, negative = received
	Description       string
	Type              model.TransactionType
	RelatedExpenseID  string
	RelatedEmployeeID string
	Status            model.TransactionStatus // optional; defaulted by type
	PaymentMethod     model.PaymentMethod
	ReferenceNumber   string
	Notes             string
}

// AddTransaction appends a transaction with a fresh random ID and stamps
// LastUpdated. When no status is given, expense payments start pending and
// everything else starts completed.
func (s *Service) AddTransaction(p AddParams) model.AccountTransaction {
	status := p.Status
	if status == "" {
		if p.Type == model.TypeExpensePayment {
			status = model.StatusPending
		} else {
			status = model.StatusCompleted
		}
	}

	tx := model.AccountTransaction{
		ID:                uuid.NewString(),
		Date:              p.Date,
		Amount:            p.Amount,
		Description:       p.Description,
		Type:              p.Type,
		RelatedExpenseID:  p.RelatedExpenseID,
		RelatedEmployeeID: p.RelatedEmployeeID,
		Status:            status,
		PaymentMethod:     p.PaymentMethod,
		ReferenceNumber:   p.ReferenceNumber,
		Notes:             p.Notes,
	}

	s.acct.Transactions = append(s.acct.Transactions, tx)
	s.balance = s.balance.Add(tx.Amount)
	s.acct.LastUpdated = s.now()
	return tx
}

// UpdateTransactionStatus applies a status transition. Unknown IDs and
// disallowed transitions are silent no-ops; the return value reports whether
// anything changed. A move to reimbursed records reimbursementDate.
func (s *Service) UpdateTransactionStatus(id string, status model.TransactionStatus, reimbursementDate *time.Time) bool {
	for i := range s.acct.Transactions {
		tx := &s.acct.Transactions[i]
		if tx.ID != id {
			continue
		}
		if !tx.Status.CanTransitionTo(status) {
			return false
		}
		tx.Status = status
		if status == model.StatusReimbursed {
			tx.ReimbursementDate = reimbursementDate
		}
		s.acct.LastUpdated = s.now()
		return true
	}
	return false
}

// Transaction returns a transaction by ID.
func (s *Service) Transaction(id string) (model.AccountTransaction, bool) {
	for _, tx := range s.acct.Transactions {
		if tx.ID == id {
			return tx, true
		}
	}
	return model.AccountTransaction{}, false
}

// TransactionsBetween returns transactions dated within the half-open range
// [from, to), ascending by date.
func (s *Service) TransactionsBetween(from, to time.Time) []model.AccountTransaction {
	var out []model.AccountTransaction
	for _, tx := range s.acct.Transactions {
		if tx.Date.Before(from) || !tx.Date.Before(to) {
			continue
		}
		out = append(out, tx)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// Balance returns the running total of all transaction amounts.
func (s *Service) Balance() decimal.Decimal {
	return s.balance
}

// PendingAmount returns the sum of pending expense payments.
func (s *Service) PendingAmount() decimal.Decimal {
	return s.acct.PendingAmount()
}

// ReimbursedAmount returns the absolute sum of company reimbursements.
func (s *Service) ReimbursedAmount() decimal.Decimal {
	return s.acct.ReimbursedAmount()
}

// CheckConsistency recomputes the balance from the transaction list and
// compares it with the running total. A divergence means a mutation bypassed
// the service and is surfaced, never silently corrected.
func (s *Service) CheckConsistency() error {
	recomputed := s.acct.TotalBalance()
	if !recomputed.Equal(s.balance) {
		return fmt.Errorf("running balance %s != transaction sum %s: %w",
			s.balance, recomputed, model.ErrInconsistentState)
	}
	return nil
}
