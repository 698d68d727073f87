package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies personal account transactions.
type TransactionType string

const (
	TypeSalaryPayment        TransactionType = "salary_payment"
	TypeExpensePayment       TransactionType = "expense_payment"
	TypeCompanyReimbursement TransactionType = "company_reimbursement"
	TypePersonalDeposit      TransactionType = "personal_deposit"
	TypeOther                TransactionType = "other"
)

// TransactionStatus represents the lifecycle state of an account transaction.
type TransactionStatus string

const (
	StatusPending    TransactionStatus = "pending"
	StatusCompleted  TransactionStatus = "completed"
	StatusReimbursed TransactionStatus = "reimbursed"
	StatusCancelled  TransactionStatus = "cancelled"
	StatusFailed     TransactionStatus = "failed"
)

// CanTransitionTo reports whether a status change is allowed. Only pending
// transactions may move; every other status is terminal.
func (s TransactionStatus) CanTransitionTo(next TransactionStatus) bool {
	if s != StatusPending {
		return false
	}
	switch next {
	case StatusReimbursed, StatusCancelled, StatusFailed:
		return true
	}
	return false
}

// PaymentMethod describes how money changed hands.
type PaymentMethod string

const (
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodCash         PaymentMethod = "cash"
	MethodCheck        PaymentMethod = "check"
	MethodCreditCard   PaymentMethod = "credit_card"
	MethodOther        PaymentMethod = "other"
)

// AccountTransaction is one entry in the personal cash ledger.
// Amount is signed: positive = cash paid out by the owner, negative = cash
// received by the owner.
type AccountTransaction struct {
	ID                string            `json:"id"`
	Date              time.Time         `json:"date"`
	Amount            decimal.Decimal   `json:"amount"`
	Description       string            `json:"description"`
	Type              TransactionType   `json:"type"`
	RelatedExpenseID  string            `json:"related_expense_id,omitempty"`
	RelatedEmployeeID string            `json:"related_employee_id,omitempty"`
	Status            TransactionStatus `json:"status"`
	ReimbursementDate *time.Time        `json:"reimbursement_date,omitempty"`
	PaymentMethod     PaymentMethod     `json:"payment_method,omitempty"`
	ReferenceNumber   string            `json:"reference_number,omitempty"`
	Notes             string            `json:"notes,omitempty"`
}
