package organizer

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keiko/fman/internal/fsops"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func names(infos []RenameInfo) []string {
	out := make([]string, len(infos))
	for i, ri := range infos {
		out[i] = ri.New
	}
	return out
}

func TestOrganizeByType(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, filepath.Join(tmp, "report.txt"), "doc")
	writeFile(t, filepath.Join(tmp, "photo.jpg"), "img")
	writeFile(t, filepath.Join(tmp, "song.mp3"), "audio")
	writeFile(t, filepath.Join(tmp, "data.xyz"), "uncategorized")

	res := New().Organize(tmp, StrategyType)
	require.True(t, res.Success)
	assert.Empty(t, res.Errors)
	assert.Equal(t, 3, res.OrganizedFiles)

	assert.FileExists(t, filepath.Join(tmp, "documents", "report.txt"))
	assert.FileExists(t, filepath.Join(tmp, "images", "photo.jpg"))
	assert.FileExists(t, filepath.Join(tmp, "audio", "song.mp3"))

	// catch-all files stay put, no "other" directory appears
	assert.FileExists(t, filepath.Join(tmp, "data.xyz"))
	assert.NoDirExists(t, filepath.Join(tmp, "other"))

	// organized + skipped equals the original top-level count
	remaining, err := fsops.ListFiles(tmp)
	require.NoError(t, err)
	assert.Equal(t, 4, res.OrganizedFiles+len(remaining))
}

func TestOrganizeCollision(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, filepath.Join(tmp, "documents", "report.txt"), "old")
	writeFile(t, filepath.Join(tmp, "report.txt"), "new")

	res := New().Organize(tmp, StrategyType)
	require.True(t, res.Success)
	assert.Equal(t, 1, res.OrganizedFiles)
	assert.FileExists(t, filepath.Join(tmp, "documents", "report.txt"))
	assert.FileExists(t, filepath.Join(tmp, "documents", "report_1.txt"))
}

func TestOrganizeByExtension(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, filepath.Join(tmp, "a.txt"), "x")
	writeFile(t, filepath.Join(tmp, "b.TXT"), "y")
	writeFile(t, filepath.Join(tmp, "noext"), "z")

	res := New().Organize(tmp, StrategyExtension)
	require.True(t, res.Success)
	assert.Equal(t, 3, res.OrganizedFiles)
	assert.FileExists(t, filepath.Join(tmp, "TXT_files", "a.txt"))
	assert.FileExists(t, filepath.Join(tmp, "TXT_files", "b.TXT"))
	assert.FileExists(t, filepath.Join(tmp, "no_extension", "noext"))
}

func TestOrganizeByDate(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "old.txt")
	writeFile(t, path, "x")
	stamp := time.Date(2023, 7, 15, 12, 0, 0, 0, time.Local)
	require.NoError(t, os.Chtimes(path, stamp, stamp))

	res := New().Organize(tmp, StrategyDate)
	require.True(t, res.Success)
	assert.FileExists(t, filepath.Join(tmp, "2023-07", "old.txt"))
}

func TestOrganizeBySize(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, filepath.Join(tmp, "tiny.bin"), "small")

	res := New().Organize(tmp, StrategySize)
	require.True(t, res.Success)
	assert.FileExists(t, filepath.Join(tmp, bucketSmall, "tiny.bin"))
}

func TestOrganizeShortCircuits(t *testing.T) {
	res := New().Organize(filepath.Join(t.TempDir(), "missing"), StrategyType)
	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Error)

	res = New().Organize(t.TempDir(), Strategy("alphabetical"))
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "unsupported")
}

func TestRenamePlaceholders(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "holiday.jpg")
	writeFile(t, path, "img")
	stamp := time.Date(2024, 3, 9, 14, 30, 5, 0, time.Local)
	require.NoError(t, os.Chtimes(path, stamp, stamp))

	res := New().Rename(tmp, "{date}_{name}_{index:03d}{ext}", false)
	require.True(t, res.Success)
	require.Len(t, res.Renamed, 1)
	assert.Equal(t, "20240309_holiday_001.jpg", res.Renamed[0].New)
	assert.Equal(t, StatusRenamed, res.Renamed[0].Status)
	assert.FileExists(t, filepath.Join(tmp, "20240309_holiday_001.jpg"))
}

func TestRenameReappendsExtension(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, filepath.Join(tmp, "a.txt"), "x")

	res := New().Rename(tmp, "file_{index}", false)
	require.True(t, res.Success)
	require.Len(t, res.Renamed, 1)
	assert.Equal(t, "file_1.txt", res.Renamed[0].New)
}

func TestRenameCollision(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, filepath.Join(tmp, "a.txt"), "first")
	writeFile(t, filepath.Join(tmp, "b.txt"), "second")

	res := New().Rename(tmp, "report", false)
	require.True(t, res.Success)
	assert.Empty(t, res.Errors)

	got := names(res.Renamed)
	sort.Strings(got)
	assert.Equal(t, []string{"report.txt", "report_1.txt"}, got)
	assert.FileExists(t, filepath.Join(tmp, "report.txt"))
	assert.FileExists(t, filepath.Join(tmp, "report_1.txt"))
}

func TestRenamePreviewMatchesApply(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, filepath.Join(tmp, "a.txt"), "first")
	writeFile(t, filepath.Join(tmp, "b.txt"), "second")

	preview := New().Rename(tmp, "report", true)
	require.True(t, preview.Success)
	for _, ri := range preview.Renamed {
		assert.Equal(t, StatusPreview, ri.Status)
	}
	assert.FileExists(t, filepath.Join(tmp, "a.txt"), "preview must not touch files")

	applied := New().Rename(tmp, "report", false)
	require.True(t, applied.Success)
	assert.Equal(t, names(preview.Renamed), names(applied.Renamed))
}

func TestRenameUnchanged(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, filepath.Join(tmp, "keep.txt"), "x")

	res := New().Rename(tmp, "{name}{ext}", false)
	require.True(t, res.Success)
	require.Len(t, res.Renamed, 1)
	assert.Equal(t, StatusUnchanged, res.Renamed[0].Status)
}

func TestCleanupEmptyDirs(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tmp, "a", "b"), 0755))
	writeFile(t, filepath.Join(tmp, "kept", "file.txt"), "x")

	res := New().CleanupEmptyDirs(tmp)
	require.True(t, res.Success)

	// b removed first, which empties a
	assert.Len(t, res.RemovedDirs, 2)
	assert.NoDirExists(t, filepath.Join(tmp, "a"))
	assert.DirExists(t, filepath.Join(tmp, "kept"))
	assert.DirExists(t, tmp)
}

func TestCreateShortcuts(t *testing.T) {
	tmp := t.TempDir()
	source := filepath.Join(tmp, "target.txt")
	writeFile(t, source, "x")
	shortcuts := filepath.Join(tmp, "links")

	o := New()
	res := o.CreateShortcuts([]string{source}, shortcuts)
	require.True(t, res.Success)
	require.Len(t, res.Shortcuts, 1)
	assert.Equal(t, filepath.Join(shortcuts, "target.txt"), res.Shortcuts[0].Shortcut)

	// second shortcut to the same file gets the suffix scheme
	res = o.CreateShortcuts([]string{source}, shortcuts)
	require.Len(t, res.Shortcuts, 1)
	assert.Equal(t, filepath.Join(shortcuts, "target_shortcut_1.txt"), res.Shortcuts[0].Shortcut)

	res = o.CreateShortcuts([]string{filepath.Join(tmp, "missing.txt")}, shortcuts)
	assert.Empty(t, res.Shortcuts)
	assert.Len(t, res.Errors, 1)
}

func TestUndoRename(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, filepath.Join(tmp, "a.txt"), "first")
	writeFile(t, filepath.Join(tmp, "b.txt"), "second")

	o := New()
	res := o.Rename(tmp, "report", false)
	require.True(t, res.Success)
	require.Len(t, o.History(0), 1)

	undo := o.UndoLast()
	require.True(t, undo.Success)
	assert.Empty(t, undo.Errors)
	assert.Len(t, undo.Undone, 2)
	assert.FileExists(t, filepath.Join(tmp, "a.txt"))
	assert.FileExists(t, filepath.Join(tmp, "b.txt"))
	assert.Empty(t, o.History(0))

	again := o.UndoLast()
	assert.False(t, again.Success)
	assert.Equal(t, ErrNothingToUndo.Error(), again.Error)
}

func TestUndoUnsupportedOperations(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, filepath.Join(tmp, "photo.jpg"), "img")

	o := New()
	require.True(t, o.Organize(tmp, StrategyType).Success)

	undo := o.UndoLast()
	assert.False(t, undo.Success)
	assert.Contains(t, undo.Error, "cannot be undone")
	assert.Len(t, o.History(0), 1, "failed undo leaves history unchanged")

	require.True(t, o.CleanupEmptyDirs(tmp).Success)
	undo = o.UndoLast()
	assert.False(t, undo.Success)
	assert.Contains(t, undo.Error, "cannot be undone")
}

func TestHistoryLimit(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, filepath.Join(tmp, "a.txt"), "x")

	o := New()
	for i := 0; i < 3; i++ {
		o.CleanupEmptyDirs(tmp)
	}

	assert.Len(t, o.History(0), 3)
	recent := o.History(2)
	require.Len(t, recent, 2)
	assert.Equal(t, OpCleanup, recent[0].Operation)
	assert.NotEmpty(t, recent[0].ID)
}

type memJournal struct {
	records []Record
}

func (m *memJournal) Append(rec Record) error {
	m.records = append(m.records, rec)
	return nil
}

func TestJournalMirroring(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, filepath.Join(tmp, "photo.jpg"), "img")

	j := &memJournal{}
	o := New(WithJournal(j))
	o.Organize(tmp, StrategyType)

	require.Len(t, j.records, 1)
	assert.Equal(t, OpOrganize, j.records[0].Operation)
	assert.Equal(t, tmp, j.records[0].Path)
}
