package fsops

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/keiko/fman/internal/config"
	"github.com/keiko/fman/internal/nlp"
)

// Criteria filters a recursive file search. Zero fields match
// everything.
type Criteria struct {
	NamePattern string     `json:"name_pattern,omitempty"`
	Extensions  []string   `json:"extensions,omitempty"`
	SizeMin     *int64     `json:"size_min,omitempty"`
	SizeMax     *int64     `json:"size_max,omitempty"`
	DateFrom    *time.Time `json:"date_from,omitempty"`
	DateTo      *time.Time `json:"date_to,omitempty"`
	Path        string     `json:"path,omitempty"`
	MaxResults  int        `json:"max_results,omitempty"`
}

// CriteriaFromIntent builds search criteria from a parsed command:
// keywords become an alternation name pattern, and the file type, size
// and time entities map onto their bounds.
func CriteriaFromIntent(intent nlp.Intent) Criteria {
	c := Criteria{
		Extensions: intent.Entities.FileType,
		Path:       intent.Entities.Path,
		MaxResults: config.MaxSearchResults,
	}

	if len(intent.Entities.Keywords) > 0 {
		quoted := make([]string, len(intent.Entities.Keywords))
		for i, k := range intent.Entities.Keywords {
			quoted[i] = regexp.QuoteMeta(k)
		}
		c.NamePattern = "(?i)(" + strings.Join(quoted, "|") + ")"
	}

	if intent.Entities.Size != nil {
		c.SizeMin = intent.Entities.Size.Min
		c.SizeMax = intent.Entities.Size.Max
	}
	if intent.Entities.Time != nil {
		c.DateFrom = intent.Entities.Time.From
		c.DateTo = intent.Entities.Time.To
	}
	return c
}

// Search walks the criteria path (or the home directory) and returns
// every matching file, capped at MaxResults. Unreadable subtrees are
// skipped.
func Search(c Criteria) ([]FileRecord, error) {
	root := c.Path
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		root = home
	}

	limit := c.MaxResults
	if limit <= 0 {
		limit = config.MaxSearchResults
	}

	var nameRe *regexp.Regexp
	if c.NamePattern != "" {
		re, err := regexp.Compile(c.NamePattern)
		if err != nil {
			return nil, err
		}
		nameRe = re
	}

	var results []FileRecord
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if len(results) >= limit {
			return filepath.SkipAll
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		rec := NewFileRecord(path, info)
		if matches(rec, c, nameRe) {
			results = append(results, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

func matches(rec FileRecord, c Criteria, nameRe *regexp.Regexp) bool {
	if nameRe != nil && !nameRe.MatchString(rec.Name) {
		return false
	}
	if len(c.Extensions) > 0 {
		found := false
		for _, ext := range c.Extensions {
			if rec.Extension == ext {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if c.SizeMin != nil && rec.Size < *c.SizeMin {
		return false
	}
	if c.SizeMax != nil && rec.Size > *c.SizeMax {
		return false
	}
	if c.DateFrom != nil && rec.Modified.Before(*c.DateFrom) {
		return false
	}
	if c.DateTo != nil && rec.Modified.After(*c.DateTo) {
		return false
	}
	return true
}

// Glob returns files under base matching a doublestar pattern like
// "**/*.go".
func Glob(base, pattern string) ([]FileRecord, error) {
	fsys := os.DirFS(base)

	var results []FileRecord
	err := doublestar.GlobWalk(fsys, pattern, func(path string, d fs.DirEntry) error {
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		results = append(results, NewFileRecord(filepath.Join(base, path), info))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}
