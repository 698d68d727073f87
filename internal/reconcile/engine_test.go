package reconcile

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finbook-dev/finbook/internal/account"
	"github.com/finbook-dev/finbook/internal/model"
	"github.com/finbook-dev/finbook/internal/oplog"
	"github.com/finbook-dev/finbook/internal/salary"
	"github.com/finbook-dev/finbook/internal/store"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func month(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

type fixture struct {
	salary  *salary.Service
	account *account.Service
	engine  *Engine
	log     *oplog.Log
}

func newFixture(t *testing.T, employees []model.Employee, expenses []model.Expense) *fixture {
	t.Helper()
	dir := store.NewDirectory(employees, expenses)
	salarySvc := salary.NewService(nil, dir)
	accountSvc := account.NewService(nil)
	log := oplog.New(t.TempDir())
	return &fixture{
		salary:  salarySvc,
		account: accountSvc,
		engine:  NewEngine(salarySvc, accountSvc, dir, log),
		log:     log,
	}
}

func TestSalaryPayment_EndToEnd(t *testing.T) {
	fx := newFixture(t, []model.Employee{
		{ID: "e1", Name: "Ana", MonthlySalary: dec("1000")},
	}, nil)

	_, err := fx.salary.EnsureMonthlyPeriods(month(2025, 1))
	require.NoError(t, err)

	result, err := fx.engine.SalaryPayment(SalaryPaymentParams{
		Amount:                dec("1200"),
		Date:                  time.Date(2025, 1, 25, 0, 0, 0, 0, time.UTC),
		EmployeeID:            "e1",
		PaymentMethod:         model.MethodBankTransfer,
		PaidFromPersonalFunds: true,
		ReferenceNumber:       "TX-42",
	})
	require.NoError(t, err)

	// January fully covered, February created as a 200 advance.
	require.Len(t, result.Allocations, 2)
	assert.Equal(t, month(2025, 1), result.Allocations[0].Month)
	assert.True(t, result.Allocations[0].Amount.Equal(dec("1000")))
	assert.Equal(t, month(2025, 2), result.Allocations[1].Month)
	assert.True(t, result.Allocations[1].Amount.Equal(dec("200")))
	assert.True(t, result.Allocations[1].Advance)

	periods := fx.salary.EmployeePeriods("e1")
	require.Len(t, periods, 2)
	assert.True(t, periods[0].Unpaid().IsZero())
	assert.True(t, periods[1].TotalDue.Equal(dec("200")))
	assert.True(t, periods[1].AmountPaid.Equal(dec("200")))

	// Exactly one completed salary payment of +1200 on the personal ledger.
	txs := fx.account.Account().Transactions
	require.Len(t, txs, 1)
	require.NotNil(t, result.Transaction)
	assert.True(t, txs[0].Amount.Equal(dec("1200")))
	assert.Equal(t, model.TypeSalaryPayment, txs[0].Type)
	assert.Equal(t, model.StatusCompleted, txs[0].Status)
	assert.Equal(t, "e1", txs[0].RelatedEmployeeID)
	assert.Equal(t, "TX-42", txs[0].ReferenceNumber)
	assert.Contains(t, txs[0].Description, "2025-01")
	assert.Contains(t, txs[0].Description, "2025-02 (advance)")
}

func TestSalaryPayment_CompanyFundsPostNothing(t *testing.T) {
	fx := newFixture(t, []model.Employee{
		{ID: "e1", Name: "Ana", MonthlySalary: dec("1000")},
	}, nil)
	_, err := fx.salary.EnsureMonthlyPeriods(month(2025, 1))
	require.NoError(t, err)

	result, err := fx.engine.SalaryPayment(SalaryPaymentParams{
		Amount:     dec("1000"),
		Date:       month(2025, 1),
		EmployeeID: "e1",
	})
	require.NoError(t, err)

	assert.Nil(t, result.Transaction)
	assert.Empty(t, fx.account.Account().Transactions)
	assert.True(t, fx.salary.TotalUnpaid("e1").IsZero(), "allocation still applied")
}

func TestSalaryPayment_InvalidAmountLeavesLedgersUntouched(t *testing.T) {
	fx := newFixture(t, []model.Employee{
		{ID: "e1", Name: "Ana", MonthlySalary: dec("1000")},
	}, nil)
	_, err := fx.salary.EnsureMonthlyPeriods(month(2025, 1))
	require.NoError(t, err)

	_, err = fx.engine.SalaryPayment(SalaryPaymentParams{
		Amount:                dec("-10"),
		Date:                  month(2025, 1),
		EmployeeID:            "e1",
		PaidFromPersonalFunds: true,
	})
	require.ErrorIs(t, err, model.ErrInvalidAmount)

	assert.True(t, fx.salary.TotalUnpaid("e1").Equal(dec("1000")))
	assert.Empty(t, fx.account.Account().Transactions)

	entries, err := fx.log.Read()
	require.NoError(t, err)
	assert.Empty(t, entries, "nothing logged before validation passes")
}

func TestSalaryPayment_UnknownEmployee(t *testing.T) {
	fx := newFixture(t, nil, nil)

	_, err := fx.engine.SalaryPayment(SalaryPaymentParams{
		Amount:     dec("100"),
		Date:       month(2025, 1),
		EmployeeID: "ghost",
	})
	require.ErrorIs(t, err, model.ErrUnknownEntity)
}

func TestSalaryPayment_DepartedEmployeeWithPeriods(t *testing.T) {
	// The employee left the directory but still has an unpaid period.
	fx := newFixture(t, nil, nil)
	_, err := fx.salary.AddPeriod("gone", month(2025, 1), dec("500"), "")
	require.NoError(t, err)

	result, err := fx.engine.SalaryPayment(SalaryPaymentParams{
		Amount:     dec("500"),
		Date:       month(2025, 1),
		EmployeeID: "gone",
	})
	require.NoError(t, err)
	require.Len(t, result.Allocations, 1)
	assert.True(t, fx.salary.TotalUnpaid("gone").IsZero())
}

func TestSalaryPayment_WritesIntentLog(t *testing.T) {
	fx := newFixture(t, []model.Employee{
		{ID: "e1", Name: "Ana", MonthlySalary: dec("1000")},
	}, nil)
	_, err := fx.salary.EnsureMonthlyPeriods(month(2025, 1))
	require.NoError(t, err)

	_, err = fx.engine.SalaryPayment(SalaryPaymentParams{
		Amount:                dec("1000"),
		Date:                  month(2025, 1),
		EmployeeID:            "e1",
		PaidFromPersonalFunds: true,
	})
	require.NoError(t, err)

	entries, err := fx.log.Read()
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, oplog.StateStarted, entries[0].State)
	assert.Equal(t, oplog.StateAllocated, entries[1].State)
	assert.Equal(t, oplog.StateDone, entries[2].State)

	open, err := fx.log.Unfinished()
	require.NoError(t, err)
	assert.Empty(t, open)
}

func TestRecordExpenseReimbursement(t *testing.T) {
	expense := model.Expense{
		ID:          "x1",
		Date:        month(2025, 1),
		Amount:      dec("180"),
		Category:    model.CategoryTravel,
		Status:      model.ExpensePending,
		Description: "client site visit",
	}
	fx := newFixture(t, nil, []model.Expense{expense})

	// The owner covered the expense personally; it sits pending.
	paid := fx.account.AddTransaction(account.AddParams{
		Date:             month(2025, 1),
		Amount:           dec("180"),
		Type:             model.TypeExpensePayment,
		RelatedExpenseID: "x1",
	})
	require.Equal(t, model.StatusPending, paid.Status)
	require.True(t, fx.account.PendingAmount().Equal(dec("180")))

	date := time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC)
	tx, err := fx.engine.RecordExpenseReimbursement(ReimbursementParams{
		ExpenseID:     "x1",
		Amount:        dec("180"),
		Date:          date,
		PaymentMethod: model.MethodBankTransfer,
	})
	require.NoError(t, err)

	assert.True(t, tx.Amount.Equal(dec("-180")), "cash received is negative")
	assert.Equal(t, model.TypeCompanyReimbursement, tx.Type)
	assert.Equal(t, model.StatusCompleted, tx.Status)
	assert.Contains(t, tx.Description, "client site visit")

	got, ok := fx.account.Transaction(paid.ID)
	require.True(t, ok)
	assert.Equal(t, model.StatusReimbursed, got.Status)
	require.NotNil(t, got.ReimbursementDate)
	assert.Equal(t, date, *got.ReimbursementDate)

	assert.True(t, fx.account.PendingAmount().IsZero())
	assert.True(t, fx.account.Balance().IsZero(), "paid out then reimbursed nets to zero")
}

func TestRecordExpenseReimbursement_MissingExpenseIsAbsentJoin(t *testing.T) {
	fx := newFixture(t, nil, nil)

	tx, err := fx.engine.RecordExpenseReimbursement(ReimbursementParams{
		ExpenseID: "vanished",
		Amount:    dec("50"),
		Date:      month(2025, 1),
	})
	require.NoError(t, err, "weak reference never fails the posting")
	assert.Equal(t, "Company reimbursement", tx.Description)
}

func TestRecordExpenseReimbursement_InvalidAmount(t *testing.T) {
	fx := newFixture(t, nil, nil)

	_, err := fx.engine.RecordExpenseReimbursement(ReimbursementParams{
		ExpenseID: "x1",
		Amount:    dec("0"),
		Date:      month(2025, 1),
	})
	require.ErrorIs(t, err, model.ErrInvalidAmount)
	assert.Empty(t, fx.account.Account().Transactions)
}
