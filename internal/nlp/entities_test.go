package nlp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keiko/fman/internal/config"
)

func TestExtractFileTypeByCategory(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"搜索桌面上的图片", config.FileTypes[0].Extensions},
		{"find all videos from last week", config.FileTypes[1].Extensions},
		{"list my documents please", config.FileTypes[2].Extensions},
		{"整理音频文件", config.FileTypes[5].Extensions},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, extractFileType(tt.text), "text %q", tt.text)
	}
}

func TestExtractFileTypeByExtensionToken(t *testing.T) {
	got := extractFileType("find report.pdf and scan.jpg and another.jpg")
	assert.Equal(t, []string{"pdf", "jpg"}, got)

	assert.Nil(t, extractFileType("nothing relevant here"))
}

func TestExtractFileTypeCategoryWinsOverToken(t *testing.T) {
	// A category word beats literal extension tokens.
	got := extractFileType("图片 like .mp3")
	assert.Equal(t, config.FileTypes[0].Extensions, got)
}

func TestExtractTimeRangeRelative(t *testing.T) {
	now := time.Date(2024, 5, 20, 12, 0, 0, 0, time.Local)

	tr := extractTimeRange("搜索昨天的文件", now)
	require.NotNil(t, tr)
	require.NotNil(t, tr.From)
	require.NotNil(t, tr.To)
	assert.Equal(t, now.AddDate(0, 0, -1), *tr.From)
	assert.Equal(t, now.AddDate(0, 0, -1), *tr.To)

	// Open-ended phrase: no upper bound.
	tr = extractTimeRange("files from last month", now)
	require.NotNil(t, tr)
	assert.Equal(t, now.AddDate(0, 0, -30), *tr.From)
	assert.Nil(t, tr.To)

	assert.Nil(t, extractTimeRange("no time words here", now))
}

func TestExtractTimeRangeExplicitDatesOverride(t *testing.T) {
	now := time.Date(2024, 5, 20, 12, 0, 0, 0, time.Local)

	tr := extractTimeRange("今天 2024-01-01 到 2024-02-01 的文件", now)
	require.NotNil(t, tr)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local), *tr.From)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.Local), *tr.To)
}

func TestExtractSizeConstraint(t *testing.T) {
	mib := int64(1024 * 1024)

	sb := extractSizeConstraint("files larger than 10MB")
	require.NotNil(t, sb)
	require.NotNil(t, sb.Min)
	assert.Equal(t, 10*mib, *sb.Min)
	assert.Nil(t, sb.Max)

	sb = extractSizeConstraint("小于500KB的文件")
	require.NotNil(t, sb)
	require.NotNil(t, sb.Max)
	assert.Equal(t, int64(500*1024), *sb.Max)
	assert.Nil(t, sb.Min)

	// No comparator: ±10% band.
	sb = extractSizeConstraint("about 10MB")
	require.NotNil(t, sb)
	require.NotNil(t, sb.Min)
	require.NotNil(t, sb.Max)
	assert.Equal(t, int64(float64(10*mib)*0.9), *sb.Min)
	assert.Equal(t, int64(float64(10*mib)*1.1), *sb.Max)

	assert.Nil(t, extractSizeConstraint("no size here"))
}

func TestParseSizeString(t *testing.T) {
	tests := []struct {
		text string
		want int64
	}{
		{"10kb", 10 * 1024},
		{"1.5 GB", int64(1.5 * 1024 * 1024 * 1024)},
		{"300 字节", 300},
		{"25 bytes", 25},
	}

	for _, tt := range tests {
		got, ok := parseSizeString(tt.text)
		require.True(t, ok, "text %q", tt.text)
		assert.Equal(t, tt.want, got, "text %q", tt.text)
	}

	_, ok := parseSizeString("plenty")
	assert.False(t, ok)
}

func TestExtractPath(t *testing.T) {
	folders := config.DefaultFolders()

	assert.Equal(t, folders["desktop"], extractPath("整理桌面上的文件"))
	assert.Equal(t, folders["downloads"], extractPath("organize my Downloads folder"))
	assert.Equal(t, "/var/log/app", extractPath("check /var/log/app for errors"))
	assert.Equal(t, `C:\Users\test`, extractPath(`look in C:\Users\test now`))
	assert.Equal(t, "", extractPath("nothing here"))
}

func TestExtractKeywords(t *testing.T) {
	got := extractKeywords("please find the quarterly budget report")
	// Stop words and short tokens are gone; result is sorted.
	assert.Equal(t, []string{"budget", "quarterly", "report"}, got)

	// Duplicates collapse.
	got = extractKeywords("budget budget budget")
	assert.Equal(t, []string{"budget"}, got)

	assert.Nil(t, extractKeywords("the a an"))
}

func TestExtractNumber(t *testing.T) {
	n := extractNumber("keep the top 15 files")
	require.NotNil(t, n)
	assert.Equal(t, 15, *n)

	n = extractNumber("保留前三个文件")
	require.NotNil(t, n)
	assert.Equal(t, 3, *n)

	assert.Nil(t, extractNumber("no numbers"))
}

func TestExtractTarget(t *testing.T) {
	assert.Equal(t, "backup.zip", extractTarget(`压缩文件为 "backup.zip" 请`))
	assert.Equal(t, "年度报告", extractTarget("删除叫做 年度报告 的文件"))
	assert.Equal(t, "summary.txt", extractTarget("delete the file named summary.txt"))
	assert.Equal(t, "", extractTarget("delete something"))
}

func TestExtractTargetQuotedWinsOverMarker(t *testing.T) {
	assert.Equal(t, "a.txt", extractTarget(`rename the file named b.txt to 'a.txt'`))
}

func TestExtractOrgType(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"按类型整理", "type"},
		{"organize by date", "date"},
		{"按大小分类", "size"},
		{"group by extension", "extension"},
		{"按文件名整理", "name"},
		{"整理一下", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, extractOrgType(tt.text), "text %q", tt.text)
	}
}

func TestEntitiesHas(t *testing.T) {
	var e Entities
	assert.False(t, e.Has("keywords"))
	assert.False(t, e.Has("size_constraint"))

	e.Keywords = []string{"report"}
	e.Path = "/tmp"
	n := 3
	e.Number = &n

	assert.True(t, e.Has("keywords"))
	assert.True(t, e.Has("path"))
	assert.True(t, e.Has("number"))
	assert.False(t, e.Has("operation_target"))
}
