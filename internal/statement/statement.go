// Package statement renders PDF statements for the personal account and for
// per-employee salary ledgers.
package statement

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/finbook-dev/finbook/internal/model"
	"github.com/finbook-dev/finbook/internal/period"
)

const dateFormat = "2006-01-02"

// BuildAccountStatementPDF renders the personal account's transactions for
// [from, to] with a balance summary header.
func BuildAccountStatementPDF(acct *model.PersonalAccount, transactions []model.AccountTransaction, from, to time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "B", 14)
	pdf.AddPage()

	pdf.Cell(0, 8, "Personal Account Statement")
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 10)
	if acct.OwnerName != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Owner: %s", acct.OwnerName))
		pdf.Ln(5)
	}
	if acct.BankName != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Bank: %s (%s)", acct.BankName, acct.AccountNumber))
		pdf.Ln(5)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Period: %s to %s", from.Format(dateFormat), to.Format(dateFormat)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Balance: %s", acct.TotalBalance().StringFixed(2)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Pending reimbursement: %s", acct.PendingAmount().StringFixed(2)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Reimbursed: %s", acct.ReimbursedAmount().StringFixed(2)))
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(25, 6, "Date", "1", 0, "C", false, 0, "")
	pdf.CellFormat(70, 6, "Description", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 6, "Type", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 6, "Status", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 6, "Amount", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, tx := range transactions {
		pdf.CellFormat(25, 6, tx.Date.Format(dateFormat), "1", 0, "C", false, 0, "")
		pdf.CellFormat(70, 6, truncate(tx.Description, 45), "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 6, string(tx.Type), "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, string(tx.Status), "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 6, tx.Amount.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering account statement: %w", err)
	}
	return buf.Bytes(), nil
}

// BuildSalaryStatementPDF renders an employee's salary periods with due,
// paid and outstanding columns.
func BuildSalaryStatementPDF(emp model.Employee, periods []model.SalaryPeriod) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "B", 14)
	pdf.AddPage()

	pdf.Cell(0, 8, "Salary Statement")
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Employee: %s", emp.Name))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Monthly salary: %s", emp.MonthlySalary.StringFixed(2)))
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(40, 6, "Month", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 6, "Due", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 6, "Paid", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 6, "Unpaid", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, p := range periods {
		pdf.CellFormat(40, 6, period.FormatKey(p.Month), "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 6, p.TotalDue.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, p.AmountPaid.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, p.Unpaid().StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering salary statement: %w", err)
	}
	return buf.Bytes(), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "~"
}
