package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryForExtension(t *testing.T) {
	tests := []struct {
		ext  string
		want Category
	}{
		{"jpg", CategoryImages},
		{"png", CategoryImages},
		{"mp4", CategoryVideos},
		{"pdf", CategoryDocuments},
		{"csv", CategorySpreadsheets},
		{"mp3", CategoryAudio},
		{"go", CategoryCode},
		{"zip", CategoryArchives},
		{"xyz", CategoryOther},
		{"", CategoryOther},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CategoryForExtension(tt.ext), "ext %q", tt.ext)
	}
}

func TestLabelForCategory(t *testing.T) {
	assert.Equal(t, "images", LabelForCategory(CategoryImages))
	assert.Equal(t, "other", LabelForCategory(CategoryOther))
}

func TestSizeUnitsByteAliases(t *testing.T) {
	// b, byte, bytes and 字节 all map to 1.
	for _, unit := range []string{"b", "byte", "bytes", "字节"} {
		assert.Equal(t, int64(1), SizeUnits[unit], "unit %q", unit)
	}
	assert.Equal(t, int64(1024*1024), SizeUnits["mb"])
}

func TestEnvDefaults(t *testing.T) {
	ResetEnv()
	t.Setenv("FMAN_LOG_LEVEL", "")
	t.Setenv("FMAN_NO_COLOR", "1")

	e := Env()
	assert.Equal(t, "info", e.LogLevel)
	assert.True(t, e.NoColor)

	ResetEnv()
}

func TestGetPathsHonorsHomeOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("FMAN_HOME", dir)
	ResetEnv()
	ResetPaths()

	p := GetPaths()
	assert.Equal(t, dir, p.Home)
	assert.Equal(t, filepath.Join(dir, "data"), p.Data)

	ResetEnv()
	ResetPaths()
}

func TestLoadFileMissing(t *testing.T) {
	fc, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Empty(t, fc.ExtraProtectedPaths)
}

func TestLoadFileAndApply(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
protected_paths:
  - /srv/critical
extra_types:
  images:
    - heic
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	fc, err := LoadFile(path)
	require.NoError(t, err)

	before := len(ProtectedPaths)
	fc.Apply()
	assert.Len(t, ProtectedPaths, before+1)
	assert.Equal(t, CategoryImages, CategoryForExtension("heic"))
}
