// Package store persists the entity collections as JSON documents under a
// data directory, one document per collection. The ledgers never touch the
// files directly; they load, mutate in memory, and save.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/finbook-dev/finbook/internal/model"
)

const (
	salaryPeriodsFile   = "salary-periods.json"
	personalAccountFile = "personal-account.json"
	employeesFile       = "employees.json"
	expensesFile        = "expenses.json"
	clientsFile         = "clients.json"
)

// Store reads and writes collection documents under a data directory.
type Store struct {
	dir string
}

// New creates a Store rooted at dir.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the data directory root.
func (s *Store) Dir() string {
	return s.dir
}

// LoadSalaryPeriods returns all salary periods, or nil when none were saved.
func (s *Store) LoadSalaryPeriods() ([]model.SalaryPeriod, error) {
	var periods []model.SalaryPeriod
	if err := s.loadDoc(salaryPeriodsFile, &periods); err != nil {
		return nil, err
	}
	return periods, nil
}

// SaveSalaryPeriods writes the full salary period collection.
func (s *Store) SaveSalaryPeriods(periods []model.SalaryPeriod) error {
	return s.saveDoc(salaryPeriodsFile, periods)
}

// LoadPersonalAccount returns the personal account, or nil when none exists.
func (s *Store) LoadPersonalAccount() (*model.PersonalAccount, error) {
	var acct model.PersonalAccount
	found, err := s.loadDocIfExists(personalAccountFile, &acct)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &acct, nil
}

// SavePersonalAccount writes the personal account document.
func (s *Store) SavePersonalAccount(acct *model.PersonalAccount) error {
	return s.saveDoc(personalAccountFile, acct)
}

// LoadEmployees returns the employee collection.
func (s *Store) LoadEmployees() ([]model.Employee, error) {
	var employees []model.Employee
	if err := s.loadDoc(employeesFile, &employees); err != nil {
		return nil, err
	}
	return employees, nil
}

// SaveEmployees writes the employee collection.
func (s *Store) SaveEmployees(employees []model.Employee) error {
	return s.saveDoc(employeesFile, employees)
}

// LoadExpenses returns the expense collection.
func (s *Store) LoadExpenses() ([]model.Expense, error) {
	var expenses []model.Expense
	if err := s.loadDoc(expensesFile, &expenses); err != nil {
		return nil, err
	}
	return expenses, nil
}

// SaveExpenses writes the expense collection.
func (s *Store) SaveExpenses(expenses []model.Expense) error {
	return s.saveDoc(expensesFile, expenses)
}

// LoadClients returns the client collection.
func (s *Store) LoadClients() ([]model.Client, error) {
	var clients []model.Client
	if err := s.loadDoc(clientsFile, &clients); err != nil {
		return nil, err
	}
	return clients, nil
}

// SaveClients writes the client collection.
func (s *Store) SaveClients(clients []model.Client) error {
	return s.saveDoc(clientsFile, clients)
}

// loadDoc unmarshals a document into v; a missing file leaves v untouched.
func (s *Store) loadDoc(name string, v any) error {
	_, err := s.loadDocIfExists(name, v)
	return err
}

func (s *Store) loadDocIfExists(name string, v any) (bool, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("parsing %s: %w", name, err)
	}
	return true, nil
}

func (s *Store) saveDoc(name string, v any) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", name, err)
	}

	// Write through a temp file so a crash never leaves a truncated doc.
	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing %s: %w", name, err)
	}
	return nil
}
