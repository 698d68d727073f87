package salary

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finbook-dev/finbook/internal/model"
	"github.com/finbook-dev/finbook/internal/store"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func month(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func newTestService(periods []model.SalaryPeriod, employees ...model.Employee) *Service {
	return NewService(periods, store.NewDirectory(employees, nil))
}

func TestAddPeriod_NormalizesMonth(t *testing.T) {
	svc := newTestService(nil)

	p, err := svc.AddPeriod("e1", time.Date(2025, 3, 17, 12, 0, 0, 0, time.UTC), dec("1000"), "march")
	require.NoError(t, err)
	assert.Equal(t, month(2025, 3), p.Month)
	assert.True(t, p.AmountPaid.IsZero())
	assert.Equal(t, "march", p.Notes)
}

func TestAddPeriod_Duplicate(t *testing.T) {
	svc := newTestService(nil)

	_, err := svc.AddPeriod("e1", month(2025, 3), dec("1000"), "")
	require.NoError(t, err)

	// Same month, different day of month.
	_, err = svc.AddPeriod("e1", time.Date(2025, 3, 28, 0, 0, 0, 0, time.UTC), dec("1000"), "")
	require.ErrorIs(t, err, model.ErrDuplicatePeriod)

	// Another employee is fine.
	_, err = svc.AddPeriod("e2", month(2025, 3), dec("1000"), "")
	require.NoError(t, err)
}

func TestAddPeriod_InvalidAmount(t *testing.T) {
	svc := newTestService(nil)

	_, err := svc.AddPeriod("e1", month(2025, 3), dec("0"), "")
	require.ErrorIs(t, err, model.ErrInvalidAmount)
	assert.Empty(t, svc.Periods())
}

func TestEnsureMonthlyPeriods_Idempotent(t *testing.T) {
	emps := []model.Employee{
		{ID: "e1", Name: "Ana", MonthlySalary: dec("1000")},
		{ID: "e2", Name: "Ben", MonthlySalary: dec("1500")},
		{ID: "e3", Name: "Cal"}, // no salary configured
	}
	svc := newTestService(nil, emps...)

	ref := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	created, err := svc.EnsureMonthlyPeriods(ref)
	require.NoError(t, err)
	require.Len(t, created, 2)

	// Pay something so a second run could be caught overwriting it.
	_, err = svc.ApplyPayment("e1", dec("400"), ref)
	require.NoError(t, err)

	created, err = svc.EnsureMonthlyPeriods(ref)
	require.NoError(t, err)
	assert.Empty(t, created, "second run creates nothing")

	periods := svc.EmployeePeriods("e1")
	require.Len(t, periods, 1)
	assert.True(t, periods[0].AmountPaid.Equal(dec("400")), "existing amountPaid untouched")
}

func TestApplyPayment_FIFO(t *testing.T) {
	svc := newTestService(nil)
	// Insert out of order on purpose; allocation must still be oldest-first.
	_, err := svc.AddPeriod("e1", month(2025, 3), dec("50"), "")
	require.NoError(t, err)
	_, err = svc.AddPeriod("e1", month(2025, 1), dec("100"), "")
	require.NoError(t, err)
	_, err = svc.AddPeriod("e1", month(2025, 2), dec("200"), "")
	require.NoError(t, err)

	allocations, err := svc.ApplyPayment("e1", dec("250"), time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	require.Len(t, allocations, 2)
	assert.Equal(t, month(2025, 1), allocations[0].Month)
	assert.True(t, allocations[0].Amount.Equal(dec("100")))
	assert.Equal(t, month(2025, 2), allocations[1].Month)
	assert.True(t, allocations[1].Amount.Equal(dec("150")))

	unpaid := svc.UnpaidPeriods("e1")
	require.Len(t, unpaid, 2)
	assert.Equal(t, month(2025, 2), unpaid[0].Month)
	assert.True(t, unpaid[0].Amount.Equal(dec("50")))
	assert.Equal(t, month(2025, 3), unpaid[1].Month)
	assert.True(t, unpaid[1].Amount.Equal(dec("50")), "later period untouched")
}

func TestApplyPayment_OverpaymentAdvance(t *testing.T) {
	svc := newTestService(nil)
	_, err := svc.AddPeriod("e1", month(2025, 1), dec("1000"), "")
	require.NoError(t, err)
	_, err = svc.ApplyPayment("e1", dec("1000"), month(2025, 1))
	require.NoError(t, err)
	require.True(t, svc.TotalUnpaid("e1").IsZero())

	allocations, err := svc.ApplyPayment("e1", dec("300"), time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	require.Len(t, allocations, 1)
	assert.True(t, allocations[0].Advance)
	assert.Equal(t, month(2025, 2), allocations[0].Month, "one month after the latest period")

	periods := svc.EmployeePeriods("e1")
	require.Len(t, periods, 2)
	advance := periods[1]
	assert.True(t, advance.TotalDue.Equal(dec("300")))
	assert.True(t, advance.AmountPaid.Equal(dec("300")))
	assert.True(t, svc.TotalUnpaid("e1").IsZero())
}

func TestApplyPayment_PartialThenAdvance(t *testing.T) {
	svc := newTestService(nil)
	_, err := svc.AddPeriod("e1", month(2025, 1), dec("1000"), "")
	require.NoError(t, err)

	allocations, err := svc.ApplyPayment("e1", dec("1200"), time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	require.Len(t, allocations, 2)
	assert.True(t, allocations[0].Amount.Equal(dec("1000")))
	assert.False(t, allocations[0].Advance)
	assert.True(t, allocations[1].Amount.Equal(dec("200")))
	assert.True(t, allocations[1].Advance)
	assert.Equal(t, month(2025, 2), allocations[1].Month)
}

func TestApplyPayment_NoPeriodsBecomesPureAdvance(t *testing.T) {
	svc := newTestService(nil)

	allocations, err := svc.ApplyPayment("e1", dec("500"), time.Date(2025, 4, 20, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	require.Len(t, allocations, 1)
	assert.True(t, allocations[0].Advance)
	assert.Equal(t, month(2025, 4), allocations[0].Month, "advance lands in the payment month")

	periods := svc.EmployeePeriods("e1")
	require.Len(t, periods, 1)
	assert.True(t, periods[0].TotalDue.Equal(dec("500")))
	assert.True(t, periods[0].AmountPaid.Equal(dec("500")))
}

func TestApplyPayment_InvalidAmount(t *testing.T) {
	svc := newTestService(nil)
	_, err := svc.AddPeriod("e1", month(2025, 1), dec("1000"), "")
	require.NoError(t, err)

	_, err = svc.ApplyPayment("e1", dec("0"), month(2025, 1))
	require.ErrorIs(t, err, model.ErrInvalidAmount)
	_, err = svc.ApplyPayment("e1", dec("-5"), month(2025, 1))
	require.ErrorIs(t, err, model.ErrInvalidAmount)

	assert.True(t, svc.TotalUnpaid("e1").Equal(dec("1000")), "ledger unchanged")
}

func TestTotalUnpaid_FloorsOverpaidPeriods(t *testing.T) {
	svc := newTestService([]model.SalaryPeriod{
		{EmployeeID: "e1", Month: month(2025, 1), TotalDue: dec("100"), AmountPaid: dec("150")},
		{EmployeeID: "e1", Month: month(2025, 2), TotalDue: dec("100"), AmountPaid: dec("40")},
	}, model.Employee{ID: "e1"})

	assert.True(t, svc.TotalUnpaid("e1").Equal(dec("60")), "overpaid period contributes zero, not -50")
}

func TestHasPeriod(t *testing.T) {
	svc := newTestService(nil)
	_, err := svc.AddPeriod("e1", month(2025, 1), dec("100"), "")
	require.NoError(t, err)

	assert.True(t, svc.HasPeriod("e1", time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)))
	assert.False(t, svc.HasPeriod("e1", month(2025, 2)))
	assert.False(t, svc.HasPeriod("e2", month(2025, 1)))
}
