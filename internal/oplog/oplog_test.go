package oplog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(op, ref string, state State) Entry {
	return Entry{
		Timestamp: time.Date(2025, 1, 25, 10, 0, 0, 0, time.UTC),
		Op:        op,
		Ref:       ref,
		Details:   "amount=1200",
		State:     state,
	}
}

func TestAppendAndRead(t *testing.T) {
	dir := t.TempDir()
	log := New(dir)

	require.NoError(t, log.Append(
		entry("salary_payment", "e1", StateStarted),
		entry("salary_payment", "e1", StateAllocated),
	))
	require.NoError(t, log.Append(entry("salary_payment", "e1", StateDone)))

	entries, err := log.Read()
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "salary_payment", entries[0].Op)
	assert.Equal(t, "e1", entries[0].Ref)
	assert.Equal(t, "amount=1200", entries[0].Details)
	assert.Equal(t, StateDone, entries[2].State)

	// Header written exactly once.
	data, err := os.ReadFile(filepath.Join(dir, "logs", "oplog.csv"))
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), Header))
}

func TestRead_MissingFile(t *testing.T) {
	log := New(t.TempDir())

	entries, err := log.Read()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUnfinished(t *testing.T) {
	log := New(t.TempDir())

	require.NoError(t, log.Append(
		entry("salary_payment", "e1", StateStarted),
		entry("salary_payment", "e1", StateAllocated),
		entry("salary_payment", "e1", StateDone),
		entry("salary_payment", "e2", StateStarted),
		entry("salary_payment", "e2", StateAllocated),
		entry("expense_reimbursement", "x1", StateStarted),
	))

	open, err := log.Unfinished()
	require.NoError(t, err)
	require.Len(t, open, 2)
	assert.Equal(t, "e2", open[0].Ref)
	assert.Equal(t, StateAllocated, open[0].State)
	assert.Equal(t, "x1", open[1].Ref)
	assert.Equal(t, StateStarted, open[1].State)
}

func TestUnfinished_Empty(t *testing.T) {
	log := New(t.TempDir())

	open, err := log.Unfinished()
	require.NoError(t, err)
	assert.Empty(t, open)
}

func TestNilLogIsNoOp(t *testing.T) {
	var log *Log

	require.NoError(t, log.Append(entry("salary_payment", "e1", StateStarted)))
	entries, err := log.Read()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestEntryRoundTrip(t *testing.T) {
	in := entry("expense_reimbursement", "x9", StateAllocated)

	out, err := UnmarshalEntry(MarshalEntry(in))
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestUnmarshalEntry_BadRow(t *testing.T) {
	_, err := UnmarshalEntry([]string{"too", "short"})
	require.Error(t, err)

	_, err = UnmarshalEntry([]string{"not-a-time", "op", "ref", "", "started"})
	require.Error(t, err)
}
