package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/keiko/fman/internal/analyzer"
	"github.com/keiko/fman/internal/config"
	"github.com/keiko/fman/internal/fsops"
	"github.com/keiko/fman/internal/metrics"
	"github.com/keiko/fman/internal/nlp"
	"github.com/keiko/fman/internal/organizer"
)

func TestIntentPlain(t *testing.T) {
	r := New(false)
	min := int64(1024 * 1024)
	out := r.Intent(nlp.Intent{
		Name:       nlp.IntentSearch,
		Confidence: 0.8,
		Entities: nlp.Entities{
			Keywords: []string{"report"},
			FileType: []string{"pdf"},
			Size:     &nlp.SizeBound{Min: &min},
		},
	})

	assert.Contains(t, out, "intent: search (confidence 0.80)")
	assert.Contains(t, out, "keywords: report")
	assert.Contains(t, out, "file types: pdf")
	assert.Contains(t, out, "size min: 1.0 MiB")
}

func TestValidation(t *testing.T) {
	out := New(false).Validation(nlp.Validation{
		Valid:       false,
		Confidence:  0.1,
		Warnings:    []string{"command intent is unclear"},
		Suggestions: []string{"查找所有图片"},
	})

	assert.Contains(t, out, "failed command unclear")
	assert.Contains(t, out, "warning: command intent is unclear")
	assert.Contains(t, out, "try: 查找所有图片")
}

func TestSearchResults(t *testing.T) {
	r := New(false)
	assert.Equal(t, "No files found\n", r.SearchResults(nil))

	out := r.SearchResults([]fsops.FileRecord{{
		Path:     "/tmp/a.txt",
		Name:     "a.txt",
		Size:     2048,
		Modified: time.Date(2025, 1, 2, 3, 4, 0, 0, time.UTC),
	}})
	assert.Contains(t, out, "Found 1 files")
	assert.Contains(t, out, "/tmp/a.txt")
	assert.Contains(t, out, "2.0 KiB")
}

func TestOpResult(t *testing.T) {
	out := New(false).OpResult("move", fsops.OpResult{
		Succeeded: []fsops.PathPair{{From: "/a", To: "/b/a"}},
		Failed:    []fsops.PathErr{{Path: "/c", Error: "path not found"}},
	})

	assert.Contains(t, out, "move: 1 succeeded, 1 failed")
	assert.Contains(t, out, "/a → /b/a")
	assert.Contains(t, out, "/c: path not found")
}

func TestResultVariants(t *testing.T) {
	r := New(false)

	out := r.Result(&organizer.Result{Success: false, Error: "invalid path"})
	assert.Contains(t, out, "invalid path")

	out = r.Result(&organizer.Result{
		Success: true, OrganizedFiles: 3, CreatedDirs: []string{"a", "b"},
	})
	assert.Contains(t, out, "organized 3 files into 2 directories")

	out = r.Result(&organizer.Result{
		Success: true,
		Preview: true,
		Renamed: []organizer.RenameInfo{{Original: "a.txt", New: "b.txt"}},
	})
	assert.Contains(t, out, "would rename 1 files")
	assert.Contains(t, out, "a.txt → b.txt")
}

func TestDuplicates(t *testing.T) {
	r := New(false)
	assert.Equal(t, "No duplicates found\n", r.Duplicates(nil))

	out := r.Duplicates([]analyzer.DuplicateGroup{{
		Hash:      "0123456789abcdef",
		SizeLabel: "1.0 KiB",
		Count:     2,
		Files: []analyzer.FileRef{
			{Name: "a.txt", Path: "/x/a.txt"},
			{Name: "b.txt", Path: "/y/b.txt"},
		},
	}})
	assert.Contains(t, out, "2 copies of 1.0 KiB")
	assert.Contains(t, out, "/x/a.txt")
}

func TestReport(t *testing.T) {
	out := New(false).Report(&analyzer.Report{
		Path:           "/tmp/docs",
		TotalFiles:     4,
		TotalDirs:      1,
		TotalSizeLabel: "12 KiB",
		FileTypes:      map[config.Category]int{config.CategoryDocuments: 3, config.CategoryImages: 1},
	})

	assert.Contains(t, out, "Directory Analysis: /tmp/docs")
	assert.Contains(t, out, "files: 4  directories: 1  total size: 12 KiB")
	assert.Contains(t, out, "documents")
}

func TestStats(t *testing.T) {
	r := New(false)
	assert.Equal(t, "No operations recorded\n", r.Stats(nil))

	out := r.Stats(map[string]metrics.OpStats{
		"organize": {
			Count:       2,
			Failures:    1,
			TotalFiles:  7,
			MinDuration: 10 * time.Millisecond,
			MaxDuration: 30 * time.Millisecond,
			AvgDuration: 20 * time.Millisecond,
		},
	})
	assert.Contains(t, out, "organize")
	assert.Contains(t, out, "runs: 2  failures: 1  files: 7")
	assert.Contains(t, out, "avg: 20ms  max: 30ms")
}

func TestHistory(t *testing.T) {
	r := New(false)
	assert.Equal(t, "No history\n", r.History(nil))

	out := r.History([]organizer.Record{{
		Operation: organizer.OpRename,
		Path:      "/tmp",
		Detail:    "{name}_{index}",
		Timestamp: time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC),
		Result:    &organizer.Result{Success: true},
	}})
	assert.Contains(t, out, "batch_rename ({name}_{index})")
	assert.Contains(t, out, "/tmp")
}
