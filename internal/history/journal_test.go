package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keiko/fman/internal/organizer"
)

func testJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := OpenAt(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func record(op, path string, ts time.Time) organizer.Record {
	return organizer.Record{
		ID:        ulid.Make().String(),
		Operation: op,
		Path:      path,
		Timestamp: ts,
		Result:    &organizer.Result{Success: true, OrganizedFiles: 2},
	}
}

func TestAppendAndRecent(t *testing.T) {
	j := testJournal(t)
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, j.Append(record(organizer.OpOrganize, "/tmp/a", base)))
	require.NoError(t, j.Append(record(organizer.OpRename, "/tmp/b", base.Add(time.Minute))))
	require.NoError(t, j.Append(record(organizer.OpCleanup, "/tmp/c", base.Add(2*time.Minute))))

	entries, err := j.Recent(2)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// newest first
	assert.Equal(t, organizer.OpCleanup, entries[0].Operation)
	assert.Equal(t, organizer.OpRename, entries[1].Operation)
	assert.Equal(t, j.Session(), entries[0].Session)

	require.NotNil(t, entries[0].Result)
	assert.True(t, entries[0].Result.Success)
	assert.Equal(t, 2, entries[0].Result.OrganizedFiles)
}

func TestRecentUnlimited(t *testing.T) {
	j := testJournal(t)
	base := time.Now().UTC()

	for i := 0; i < 5; i++ {
		require.NoError(t, j.Append(record(organizer.OpOrganize, "/tmp/x", base.Add(time.Duration(i)*time.Second))))
	}

	entries, err := j.Recent(0)
	require.NoError(t, err)
	assert.Len(t, entries, 5)
}

func TestRecentEmpty(t *testing.T) {
	j := testJournal(t)
	entries, err := j.Recent(10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestJournalSurvivesReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "journal.db")

	j, err := OpenAt(dbPath)
	require.NoError(t, err)
	require.NoError(t, j.Append(record(organizer.OpRename, "/tmp/persist", time.Now().UTC())))
	require.NoError(t, j.Close())

	reopened, err := OpenAt(dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	entries, err := reopened.Recent(0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "/tmp/persist", entries[0].Path)
}
