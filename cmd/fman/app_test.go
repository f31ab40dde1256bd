package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keiko/fman/internal/config"
)

func testApp(t *testing.T) *app {
	t.Helper()
	t.Setenv("FMAN_HOME", t.TempDir())
	config.ResetEnv()
	config.ResetPaths()
	t.Cleanup(func() {
		config.ResetEnv()
		config.ResetPaths()
	})

	a := newApp()
	t.Cleanup(a.close)
	return a
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestExecuteSearch(t *testing.T) {
	a := testApp(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "notes.txt"), "text")
	writeFile(t, filepath.Join(dir, "photo.jpg"), "img")

	out := a.Execute("搜索 " + dir + " 里的 .txt 文件")
	assert.Contains(t, out, "notes.txt")
	assert.NotContains(t, out, "photo.jpg")
}

func TestExecuteOrganize(t *testing.T) {
	a := testApp(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "photo.jpg"), "img")
	writeFile(t, filepath.Join(dir, "report.pdf"), "doc")

	out := a.Execute("按类型整理 " + dir)
	assert.Contains(t, out, "organized 2 files")
	assert.FileExists(t, filepath.Join(dir, "images", "photo.jpg"))
	assert.FileExists(t, filepath.Join(dir, "documents", "report.pdf"))
}

func TestExecuteAnalyze(t *testing.T) {
	a := testApp(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "x")

	out := a.Execute("统计分析 " + dir)
	assert.Contains(t, out, "Directory Analysis")
	assert.Contains(t, out, "files: 1")
}

func TestExecuteUnknownFallsBackToValidation(t *testing.T) {
	a := testApp(t)
	out := a.Execute("qwerty asdf")
	assert.Contains(t, out, "unclear")
}

func TestExecuteDeleteWithoutTarget(t *testing.T) {
	a := testApp(t)
	out := a.Execute("删除")
	assert.Contains(t, out, "unclear")
}

func TestJournalRecordsOrganize(t *testing.T) {
	a := testApp(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "photo.jpg"), "img")

	a.Execute("按类型整理 " + dir)

	require.NotNil(t, a.journal)
	entries, err := a.journal.Recent(0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "organize", entries[0].Operation)
	assert.Equal(t, dir, entries[0].Path)
}
