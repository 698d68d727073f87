// Package reconcile coordinates the salary ledger and the personal account
// when a single payment event touches both.
package reconcile

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbook-dev/finbook/internal/account"
	"github.com/finbook-dev/finbook/internal/model"
	"github.com/finbook-dev/finbook/internal/oplog"
	"github.com/finbook-dev/finbook/internal/period"
	"github.com/finbook-dev/finbook/internal/salary"
)

// Directory is the read-only entity lookup the engine needs.
type Directory interface {
	Employee(id string) (model.Employee, bool)
	Expense(id string) (model.Expense, bool)
}

// Engine applies payments to both ledgers in a fixed order, logging intent
// before and after so a crash mid-operation is detectable.
type Engine struct {
	salary  *salary.Service
	account *account.Service
	dir     Directory
	log     *oplog.Log
}

// NewEngine creates a reconciliation engine. log may be nil to disable the
// intent log.
func NewEngine(salarySvc *salary.Service, accountSvc *account.Service, dir Directory, log *oplog.Log) *Engine {
	return &Engine{salary: salarySvc, account: accountSvc, dir: dir, log: log}
}

// SalaryPaymentParams describes one salary payment event.
type SalaryPaymentParams struct {
	Amount                decimal.Decimal
	Date                  time.Time
	EmployeeID            string
	PaymentMethod         model.PaymentMethod
	PaidFromPersonalFunds bool
	ReferenceNumber       string
	Notes                 string
}

// SalaryPaymentResult reports what the payment did.
type SalaryPaymentResult struct {
	Allocations []salary.Allocation
	// Transaction is the personal-account posting, nil when the payment
	// came from company funds.
	Transaction *model.AccountTransaction
}

// SalaryPayment validates the payment, allocates it across the employee's
// unpaid periods oldest-first, and, when the money came out of personal
// funds, posts exactly one completed salary_payment transaction. Validation
// failures leave both ledgers untouched.
func (e *Engine) SalaryPayment(p SalaryPaymentParams) (*SalaryPaymentResult, error) {
	if !p.Amount.IsPositive() {
		return nil, fmt.Errorf("salary payment of %s: %w", p.Amount, model.ErrInvalidAmount)
	}
	if _, ok := e.dir.Employee(p.EmployeeID); !ok {
		// An employee that left the directory but still has periods can
		// still be paid; only a fully unknown ID is rejected.
		if len(e.salary.EmployeePeriods(p.EmployeeID)) == 0 {
			return nil, fmt.Errorf("employee %s: %w", p.EmployeeID, model.ErrUnknownEntity)
		}
	}

	e.logEntry("salary_payment", p.EmployeeID,
		fmt.Sprintf("amount=%s personal_funds=%t", p.Amount.StringFixed(2), p.PaidFromPersonalFunds),
		oplog.StateStarted)

	allocations, err := e.salary.ApplyPayment(p.EmployeeID, p.Amount, p.Date)
	if err != nil {
		return nil, err
	}

	e.logEntry("salary_payment", p.EmployeeID, summarizeAllocations(allocations), oplog.StateAllocated)

	result := &SalaryPaymentResult{Allocations: allocations}
	if p.PaidFromPersonalFunds {
		tx := e.account.AddTransaction(account.AddParams{
			Date:              p.Date,
			Amount:            p.Amount,
			Description:       "Salary payment covering " + coveredMonths(allocations),
			Type:              model.TypeSalaryPayment,
			RelatedEmployeeID: p.EmployeeID,
			Status:            model.StatusCompleted,
			PaymentMethod:     p.PaymentMethod,
			ReferenceNumber:   p.ReferenceNumber,
			Notes:             p.Notes,
		})
		result.Transaction = &tx
	}

	e.logEntry("salary_payment", p.EmployeeID, summarizeAllocations(allocations), oplog.StateDone)
	return result, nil
}

// ReimbursementParams describes a company paying the owner back for an
// expense covered from personal funds.
type ReimbursementParams struct {
	ExpenseID       string
	Amount          decimal.Decimal
	Date            time.Time
	PaymentMethod   model.PaymentMethod
	ReferenceNumber string
}

// RecordExpenseReimbursement posts a completed company_reimbursement (cash
// received, so the ledger amount is negative) and moves any pending
// transaction tied to the expense to reimbursed.
func (e *Engine) RecordExpenseReimbursement(p ReimbursementParams) (model.AccountTransaction, error) {
	if !p.Amount.IsPositive() {
		return model.AccountTransaction{}, fmt.Errorf("reimbursement of %s: %w", p.Amount, model.ErrInvalidAmount)
	}

	description := "Company reimbursement"
	if exp, ok := e.dir.Expense(p.ExpenseID); ok && exp.Description != "" {
		// Weak reference: a missing expense is an absent join, not an error.
		description = "Company reimbursement for " + exp.Description
	}

	e.logEntry("expense_reimbursement", p.ExpenseID, "amount="+p.Amount.StringFixed(2), oplog.StateStarted)

	tx := e.account.AddTransaction(account.AddParams{
		Date:             p.Date,
		Amount:           p.Amount.Neg(),
		Description:      description,
		Type:             model.TypeCompanyReimbursement,
		RelatedExpenseID: p.ExpenseID,
		Status:           model.StatusCompleted,
		PaymentMethod:    p.PaymentMethod,
		ReferenceNumber:  p.ReferenceNumber,
	})

	date := p.Date
	for _, prior := range e.account.Account().Transactions {
		if prior.RelatedExpenseID == p.ExpenseID && prior.Status == model.StatusPending {
			e.account.UpdateTransactionStatus(prior.ID, model.StatusReimbursed, &date)
		}
	}

	e.logEntry("expense_reimbursement", p.ExpenseID, "tx="+tx.ID, oplog.StateDone)
	return tx, nil
}

func (e *Engine) logEntry(op, ref, details string, state oplog.State) {
	// Intent logging is best-effort; a failed append never blocks the
	// payment itself.
	_ = e.log.Append(oplog.Entry{
		Timestamp: time.Now().UTC(),
		Op:        op,
		Ref:       ref,
		Details:   details,
		State:     state,
	})
}

func coveredMonths(allocations []salary.Allocation) string {
	if len(allocations) == 0 {
		return "no periods"
	}
	keys := make([]string, len(allocations))
	for i, a := range allocations {
		keys[i] = period.FormatKey(a.Month)
		if a.Advance {
			keys[i] += " (advance)"
		}
	}
	return strings.Join(keys, ", ")
}

func summarizeAllocations(allocations []salary.Allocation) string {
	parts := make([]string, len(allocations))
	for i, a := range allocations {
		parts[i] = period.FormatKey(a.Month) + "=" + a.Amount.StringFixed(2)
	}
	return strings.Join(parts, ";")
}
