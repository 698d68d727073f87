package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee is read-only directory data as far as the ledgers are concerned.
type Employee struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Role          string          `json:"role,omitempty"`
	MonthlySalary decimal.Decimal `json:"monthly_salary"`
}

// ExpenseCategory buckets expenses for distribution reports.
type ExpenseCategory string

const (
	CategoryTravel         ExpenseCategory = "travel"
	CategoryAccommodation  ExpenseCategory = "accommodation"
	CategoryMeals          ExpenseCategory = "meals"
	CategoryEquipment      ExpenseCategory = "equipment"
	CategorySupplies       ExpenseCategory = "supplies"
	CategoryTransportation ExpenseCategory = "transportation"
	CategoryClientMeeting  ExpenseCategory = "client_meeting"
	CategoryMarketing      ExpenseCategory = "marketing"
	CategorySoftware       ExpenseCategory = "software"
	CategoryTraining       ExpenseCategory = "training"
	CategoryOtherExpense   ExpenseCategory = "other"
)

// ExpenseStatus tracks whether an expense has been settled.
type ExpenseStatus string

const (
	ExpensePending  ExpenseStatus = "pending"
	ExpenseApproved ExpenseStatus = "approved"
	ExpensePaid     ExpenseStatus = "paid"
)

// Expense is a company expense. The ledgers reference it only through the
// weak RelatedExpenseID on account transactions.
type Expense struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Category    ExpenseCategory `json:"category"`
	Status      ExpenseStatus   `json:"status"`
	Description string          `json:"description,omitempty"`
}
