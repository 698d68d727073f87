package commands

import (
	"fmt"
	"path/filepath"

	"github.com/finbook-dev/finbook/internal/account"
	"github.com/finbook-dev/finbook/internal/config"
	"github.com/finbook-dev/finbook/internal/gitops"
	"github.com/finbook-dev/finbook/internal/model"
	"github.com/finbook-dev/finbook/internal/oplog"
	"github.com/finbook-dev/finbook/internal/reconcile"
	"github.com/finbook-dev/finbook/internal/salary"
	"github.com/finbook-dev/finbook/internal/store"
)

// App assembles the services over one data directory for the duration of a
// command. Lifecycle is owned here, not by the ledgers.
type App struct {
	Dir       string
	Config    *config.Config
	Store     *store.Store
	Directory *store.Directory
	Salary    *salary.Service
	Account   *account.Service
	Engine    *reconcile.Engine

	Clients  []model.Client
	Expenses []model.Expense
}

// openApp loads config and all collections from dir and builds the services.
func openApp(dir string) (*App, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving data dir: %w", err)
	}

	cfg, err := config.Load(filepath.Join(absDir, config.FileName))
	if err != nil {
		return nil, fmt.Errorf("%s is not a finbook directory (run finbook init): %w", absDir, err)
	}

	st := store.New(absDir)

	employees, err := st.LoadEmployees()
	if err != nil {
		return nil, err
	}
	expenses, err := st.LoadExpenses()
	if err != nil {
		return nil, err
	}
	clients, err := st.LoadClients()
	if err != nil {
		return nil, err
	}
	periods, err := st.LoadSalaryPeriods()
	if err != nil {
		return nil, err
	}
	acct, err := st.LoadPersonalAccount()
	if err != nil {
		return nil, err
	}
	if acct == nil {
		acct = &model.PersonalAccount{
			OwnerName:     cfg.Owner.Name,
			AccountHolder: cfg.Account.Holder,
			BankName:      cfg.Account.BankName,
			AccountNumber: cfg.Account.AccountNumber,
		}
	}

	directory := store.NewDirectory(employees, expenses)
	salarySvc := salary.NewService(periods, directory)
	accountSvc := account.NewService(acct)
	engine := reconcile.NewEngine(salarySvc, accountSvc, directory, oplog.New(absDir))

	return &App{
		Dir:       absDir,
		Config:    cfg,
		Store:     st,
		Directory: directory,
		Salary:    salarySvc,
		Account:   accountSvc,
		Engine:    engine,
		Clients:   clients,
		Expenses:  expenses,
	}, nil
}

// saveLedgers persists both ledgers and, when configured, snapshots the data
// directory into git.
func (a *App) saveLedgers(message string) error {
	if err := a.Store.SaveSalaryPeriods(a.Salary.Periods()); err != nil {
		return err
	}
	if err := a.Store.SavePersonalAccount(a.Account.Account()); err != nil {
		return err
	}

	if a.Config.Git.AutoCommit && gitops.IsRepo(a.Dir) {
		if _, err := gitops.Snapshot(a.Dir, message, a.Config.Git.AuthorName, a.Config.Git.AuthorEmail); err != nil {
			return fmt.Errorf("snapshotting data dir: %w", err)
		}
	}
	return nil
}
