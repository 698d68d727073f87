package store

import "github.com/finbook-dev/finbook/internal/model"

// Directory provides in-memory read-only lookup over the employee and
// expense collections.
type Directory struct {
	employees   []model.Employee
	employeeIdx map[string]model.Employee
	expenseIdx  map[string]model.Expense
}

// NewDirectory builds lookup indexes over loaded collections.
func NewDirectory(employees []model.Employee, expenses []model.Expense) *Directory {
	empIdx := make(map[string]model.Employee, len(employees))
	for _, e := range employees {
		empIdx[e.ID] = e
	}
	expIdx := make(map[string]model.Expense, len(expenses))
	for _, e := range expenses {
		expIdx[e.ID] = e
	}
	return &Directory{employees: employees, employeeIdx: empIdx, expenseIdx: expIdx}
}

// Employee returns an employee by ID.
func (d *Directory) Employee(id string) (model.Employee, bool) {
	e, ok := d.employeeIdx[id]
	return e, ok
}

// Employees returns all employees in collection order.
func (d *Directory) Employees() []model.Employee {
	return d.employees
}

// Expense returns an expense by ID.
func (d *Directory) Expense(id string) (model.Expense, bool) {
	e, ok := d.expenseIdx[id]
	return e, ok
}
