package model

import "errors"

// Error kinds shared by the ledgers and the reconciliation engine. Call sites
// wrap these with context via fmt.Errorf("...: %w", err).
var (
	// ErrInvalidAmount means a non-positive amount was supplied to a
	// payment operation.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrDuplicatePeriod means a salary period already exists for the
	// employee and month on a non-idempotent add.
	ErrDuplicatePeriod = errors.New("duplicate salary period")

	// ErrUnknownEntity means an operation required an employee or expense
	// that the directory does not know.
	ErrUnknownEntity = errors.New("unknown entity")

	// ErrInconsistentState means an internal invariant was violated, e.g.
	// the running account balance diverged from the transaction sum. It is
	// a diagnostic signal, never corrected silently.
	ErrInconsistentState = errors.New("inconsistent ledger state")
)
