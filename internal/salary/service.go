// Package salary tracks per-employee monthly salary obligations and
// allocates payments across them oldest-first.
package salary

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbook-dev/finbook/internal/model"
	"github.com/finbook-dev/finbook/internal/period"
)

// EmployeeDirectory is the read-only employee lookup the ledger needs.
type EmployeeDirectory interface {
	Employee(id string) (model.Employee, bool)
	Employees() []model.Employee
}

// Service owns the salary period collection. All mutation goes through it;
// callers persist via Periods().
type Service struct {
	periods   []model.SalaryPeriod
	employees EmployeeDirectory
}

// NewService creates a salary ledger over existing periods.
func NewService(periods []model.SalaryPeriod, employees EmployeeDirectory) *Service {
	return &Service{periods: periods, employees: employees}
}

// Periods returns all periods in storage order, for persistence.
func (s *Service) Periods() []model.SalaryPeriod {
	return s.periods
}

// HasPeriod reports whether a period exists for the employee and month.
func (s *Service) HasPeriod(employeeID string, month time.Time) bool {
	return s.indexOf(employeeID, period.StartOfMonth(month)) >= 0
}

// AddPeriod creates a salary period for the employee and month. The month is
// normalized to its start. Fails with model.ErrDuplicatePeriod if one already
// exists for that employee and month.
func (s *Service) AddPeriod(employeeID string, month time.Time, totalDue decimal.Decimal, notes string) (model.SalaryPeriod, error) {
	if !totalDue.IsPositive() {
		return model.SalaryPeriod{}, fmt.Errorf("period due %s: %w", totalDue, model.ErrInvalidAmount)
	}

	start := period.StartOfMonth(month)
	if s.HasPeriod(employeeID, start) {
		return model.SalaryPeriod{}, fmt.Errorf("employee %s month %s: %w", employeeID, period.FormatKey(start), model.ErrDuplicatePeriod)
	}

	p := model.SalaryPeriod{
		EmployeeID: employeeID,
		Month:      start,
		TotalDue:   totalDue,
		AmountPaid: decimal.Zero,
		Notes:      notes,
	}
	s.periods = append(s.periods, p)
	return p, nil
}

// EnsureMonthlyPeriods makes sure every employee with a configured monthly
// salary has a period for referenceDate's month. Existing periods are left
// untouched, so the call is idempotent.
func (s *Service) EnsureMonthlyPeriods(referenceDate time.Time) ([]model.SalaryPeriod, error) {
	month := period.StartOfMonth(referenceDate)

	var created []model.SalaryPeriod
	for _, emp := range s.employees.Employees() {
		if !emp.MonthlySalary.IsPositive() {
			continue
		}
		if s.HasPeriod(emp.ID, month) {
			continue
		}
		p, err := s.AddPeriod(emp.ID, month, emp.MonthlySalary, "")
		if err != nil {
			return created, fmt.Errorf("generating period for %s: %w", emp.ID, err)
		}
		created = append(created, p)
	}
	return created, nil
}

// UnpaidPeriod is one month's outstanding balance.
type UnpaidPeriod struct {
	Month  time.Time
	Amount decimal.Decimal
}

// UnpaidPeriods returns the employee's months with an outstanding balance,
// ascending by month.
func (s *Service) UnpaidPeriods(employeeID string) []UnpaidPeriod {
	var unpaid []UnpaidPeriod
	for _, p := range s.periods {
		if p.EmployeeID != employeeID {
			continue
		}
		if amt := p.Unpaid(); amt.IsPositive() {
			unpaid = append(unpaid, UnpaidPeriod{Month: p.Month, Amount: amt})
		}
	}
	sort.Slice(unpaid, func(i, j int) bool { return unpaid[i].Month.Before(unpaid[j].Month) })
	return unpaid
}

// TotalUnpaid sums the outstanding balance across all of the employee's
// periods. Overpaid periods contribute zero, never a negative amount.
func (s *Service) TotalUnpaid(employeeID string) decimal.Decimal {
	total := decimal.Zero
	for _, p := range s.periods {
		if p.EmployeeID == employeeID {
			total = total.Add(p.Unpaid())
		}
	}
	return total
}

// EmployeePeriods returns the employee's periods ascending by month.
func (s *Service) EmployeePeriods(employeeID string) []model.SalaryPeriod {
	var out []model.SalaryPeriod
	for _, p := range s.periods {
		if p.EmployeeID == employeeID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month.Before(out[j].Month) })
	return out
}

// Allocation records how much of a payment landed on one month.
type Allocation struct {
	Month   time.Time
	Amount  decimal.Decimal
	Advance bool // true when the month was created or credited as an advance
}

// ApplyPayment allocates a payment across the employee's unpaid periods in
// strict oldest-first order. Any remainder after all dues are satisfied
// becomes an advance: a new period dated one month after the employee's
// latest existing period (or the payment month when none exist), with
// TotalDue = AmountPaid = remainder. Returns the ordered allocations.
func (s *Service) ApplyPayment(employeeID string, amount decimal.Decimal, date time.Time) ([]Allocation, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("payment of %s: %w", amount, model.ErrInvalidAmount)
	}

	// Index unpaid periods ascending by month.
	type ref struct {
		idx   int
		month time.Time
	}
	var unpaid []ref
	for i, p := range s.periods {
		if p.EmployeeID == employeeID && p.Unpaid().IsPositive() {
			unpaid = append(unpaid, ref{idx: i, month: p.Month})
		}
	}
	sort.Slice(unpaid, func(i, j int) bool { return unpaid[i].month.Before(unpaid[j].month) })

	remaining := amount
	var allocations []Allocation
	for _, r := range unpaid {
		if !remaining.IsPositive() {
			break
		}
		p := &s.periods[r.idx]
		toApply := decimal.Min(remaining, p.Unpaid())
		p.AmountPaid = p.AmountPaid.Add(toApply)
		remaining = remaining.Sub(toApply)
		allocations = append(allocations, Allocation{Month: p.Month, Amount: toApply})
	}

	if remaining.IsPositive() {
		month := s.advanceMonth(employeeID, date)
		s.periods = append(s.periods, model.SalaryPeriod{
			EmployeeID: employeeID,
			Month:      month,
			TotalDue:   remaining,
			AmountPaid: remaining,
			Notes:      "salary paid in advance",
		})
		allocations = append(allocations, Allocation{Month: month, Amount: remaining, Advance: true})
	}

	return allocations, nil
}

// advanceMonth places an overpayment one month after the employee's latest
// period, or in the payment month when the employee has none.
func (s *Service) advanceMonth(employeeID string, date time.Time) time.Time {
	var latest time.Time
	found := false
	for _, p := range s.periods {
		if p.EmployeeID == employeeID && (!found || p.Month.After(latest)) {
			latest = p.Month
			found = true
		}
	}
	if !found {
		return period.StartOfMonth(date)
	}
	return period.NextMonth(latest)
}

func (s *Service) indexOf(employeeID string, monthStart time.Time) int {
	for i, p := range s.periods {
		if p.EmployeeID == employeeID && p.Month.Equal(monthStart) {
			return i
		}
	}
	return -1
}
