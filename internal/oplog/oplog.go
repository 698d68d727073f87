// Package oplog records reconciliation intents as an append-only CSV so a
// crash between the salary allocation and the account posting leaves a
// detectable half-applied record instead of silent inconsistency.
package oplog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// State marks how far a multi-step operation progressed.
type State string

const (
	StateStarted   State = "started"
	StateAllocated State = "allocated"
	StateDone      State = "done"
)

// Entry is one row in the operation log.
type Entry struct {
	Timestamp time.Time
	Op        string // e.g. "salary_payment", "expense_reimbursement"
	Ref       string // employee or expense ID the operation acted on
	Details   string
	State     State
}

// Header is the CSV header for oplog.csv.
const Header = "timestamp,op,ref,details,state"

const (
	numFields    = 5
	logDir       = "logs"
	logFile      = "logs/oplog.csv"
	colTimestamp = 0
	colOp        = 1
	colRef       = 2
	colDetails   = 3
	colState     = 4
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colOp] = e.Op
	row[colRef] = e.Ref
	row[colDetails] = e.Details
	row[colState] = string(e.State)
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	return Entry{
		Timestamp: ts,
		Op:        record[colOp],
		Ref:       record[colRef],
		Details:   record[colDetails],
		State:     State(record[colState]),
	}, nil
}

// Log appends entries under a data directory.
type Log struct {
	dataDir string
}

// New creates a Log rooted at dataDir. A nil *Log is a valid no-op logger.
func New(dataDir string) *Log {
	return &Log{dataDir: dataDir}
}

// Append writes entries to <dataDir>/logs/oplog.csv, creating the file and
// header if needed. A nil log discards entries.
func (l *Log) Append(entries ...Entry) error {
	if l == nil {
		return nil
	}

	dir := filepath.Join(l.dataDir, logDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(l.dataDir, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening oplog: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	return cw.Error()
}

// Read returns all entries from <dataDir>/logs/oplog.csv. Returns an empty
// slice if the file does not exist.
func (l *Log) Read() ([]Entry, error) {
	if l == nil {
		return nil, nil
	}

	path := filepath.Join(l.dataDir, logFile)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening oplog: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

// Unfinished returns operations whose last logged state is not done. These
// are the candidates for manual reconciliation after a crash.
func (l *Log) Unfinished() ([]Entry, error) {
	entries, err := l.Read()
	if err != nil {
		return nil, err
	}

	// Entries of one operation share op and ref; the final state wins.
	last := make(map[string]Entry)
	var order []string
	for _, e := range entries {
		key := e.Op + "|" + e.Ref
		if _, seen := last[key]; !seen {
			order = append(order, key)
		}
		last[key] = e
	}

	var open []Entry
	for _, key := range order {
		if e := last[key]; e.State != StateDone {
			open = append(open, e)
		}
	}
	return open, nil
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading oplog CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
