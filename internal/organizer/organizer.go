// Package organizer reorganizes directories: grouping files into
// strategy-keyed subdirectories, batch renaming with placeholder
// patterns, empty-directory cleanup, shortcut creation, and a limited
// undo over the operation history.
package organizer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/keiko/fman/internal/config"
	"github.com/keiko/fman/internal/fsops"
	"github.com/keiko/fman/internal/logging"
)

// Strategy selects how Organize groups files.
type Strategy string

const (
	StrategyType      Strategy = "type"
	StrategyDate      Strategy = "date"
	StrategySize      Strategy = "size"
	StrategyExtension Strategy = "extension"
)

var (
	ErrUnsupportedStrategy = errors.New("unsupported organization strategy")
	ErrUndoUnsupported     = errors.New("operation cannot be undone")
	ErrNothingToUndo       = errors.New("nothing to undo")
)

// Rename statuses.
const (
	StatusPreview   = "preview"
	StatusRenamed   = "renamed"
	StatusUnchanged = "unchanged"
)

// RenameInfo maps one file's original name to its computed new name.
type RenameInfo struct {
	Original string `json:"original"`
	New      string `json:"new"`
	Path     string `json:"path"`
	Status   string `json:"status"`
}

// Shortcut records one created symlink.
type Shortcut struct {
	Source   string `json:"source"`
	Shortcut string `json:"shortcut"`
}

// Result reports one operation. Success false with Error set means the
// call short-circuited before touching anything; the Errors slice
// collects per-file failures of an otherwise completed pass.
type Result struct {
	Success        bool         `json:"success"`
	Error          string       `json:"error,omitempty"`
	Strategy       Strategy     `json:"organization_type,omitempty"`
	Pattern        string       `json:"pattern,omitempty"`
	Preview        bool         `json:"preview,omitempty"`
	OrganizedFiles int          `json:"organized_files,omitempty"`
	CreatedDirs    []string     `json:"created_directories,omitempty"`
	Renamed        []RenameInfo `json:"renamed_files,omitempty"`
	RemovedDirs    []string     `json:"removed_directories,omitempty"`
	Shortcuts      []Shortcut   `json:"created_shortcuts,omitempty"`
	Undone         []string     `json:"undone_files,omitempty"`
	Errors         []string     `json:"errors,omitempty"`
}

// Record is one history entry.
type Record struct {
	ID        string    `json:"id"`
	Operation string    `json:"operation"`
	Path      string    `json:"path"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Result    *Result   `json:"result,omitempty"`
}

// History operation names.
const (
	OpOrganize = "organize"
	OpRename   = "batch_rename"
	OpCleanup  = "cleanup_empty_directories"
)

// Journal persists records beyond the process. Append failures are
// logged, never surfaced to the caller.
type Journal interface {
	Append(rec Record) error
}

// Organizer runs reorganization operations and keeps their history.
type Organizer struct {
	log     *logging.Logger
	journal Journal
	now     func() time.Time

	mu      sync.Mutex
	history []Record
}

// Option configures an Organizer.
type Option func(*Organizer)

// WithJournal mirrors every history record into a persistent journal.
func WithJournal(j Journal) Option {
	return func(o *Organizer) { o.journal = j }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(o *Organizer) { o.now = now }
}

// WithSession stamps every log event with the journal session id.
func WithSession(session string) Option {
	return func(o *Organizer) { o.log = o.log.WithSession(session) }
}

// New returns an Organizer with an empty history.
func New(opts ...Option) *Organizer {
	o := &Organizer{
		log: logging.New("organizer"),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Organize moves the top-level files of dir into subdirectories keyed
// by the strategy. Files in the catch-all type category stay in place.
func (o *Organizer) Organize(dir string, strategy Strategy) *Result {
	start := o.now()
	res := &Result{Success: true, Strategy: strategy}

	switch strategy {
	case StrategyType, StrategyDate, StrategySize, StrategyExtension:
	default:
		return &Result{Success: false, Strategy: strategy,
			Error: fmt.Sprintf("%v: %s", ErrUnsupportedStrategy, strategy)}
	}

	if err := fsops.ValidateDir(dir); err != nil {
		return &Result{Success: false, Strategy: strategy, Error: err.Error()}
	}

	files, err := fsops.ListFiles(dir)
	if err != nil {
		return &Result{Success: false, Strategy: strategy, Error: err.Error()}
	}

	groups := make(map[string][]fsops.FileRecord)
	for _, rec := range files {
		key, ok := groupKey(rec, strategy)
		if !ok {
			continue
		}
		groups[key] = append(groups[key], rec)
	}

	for label, group := range groups {
		groupDir := filepath.Join(dir, label)
		if err := os.MkdirAll(groupDir, 0755); err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("create %s: %v", label, err))
			continue
		}
		res.CreatedDirs = append(res.CreatedDirs, groupDir)

		for _, rec := range group {
			target := nextFreePath(groupDir, rec.Name, "_%d")
			if err := fsops.MoveFile(rec.Path, target); err != nil {
				res.Errors = append(res.Errors, fmt.Sprintf("move %s: %v", rec.Name, err))
				continue
			}
			res.OrganizedFiles++
		}
	}

	o.record(OpOrganize, dir, string(strategy), res)
	o.log.TimedEvent("organize", start, map[string]any{
		"path": dir, "strategy": string(strategy), "files": res.OrganizedFiles,
	})
	return res
}

func groupKey(rec fsops.FileRecord, strategy Strategy) (string, bool) {
	switch strategy {
	case StrategyType:
		if rec.Category == config.CategoryOther {
			return "", false
		}
		return config.LabelForCategory(rec.Category), true
	case StrategyDate:
		return rec.Modified.Format("2006-01"), true
	case StrategySize:
		return sizeBucket(rec.Size), true
	case StrategyExtension:
		if rec.Extension == "" {
			return "no_extension", true
		}
		return fsops.CleanFilename(strings.ToUpper(rec.Extension) + "_files"), true
	}
	return "", false
}

const (
	mib = int64(1) << 20

	bucketSmall  = "small_under_1mb"
	bucketMedium = "medium_1mb_to_100mb"
	bucketLarge  = "large_over_100mb"
)

func sizeBucket(size int64) string {
	switch {
	case size < mib:
		return bucketSmall
	case size < 100*mib:
		return bucketMedium
	default:
		return bucketLarge
	}
}

// nextFreePath joins dir and name, appending the counter suffix before
// the extension until the candidate does not exist. suffixFormat is a
// one-verb format like "_%d".
func nextFreePath(dir, name, suffixFormat string) string {
	candidate := filepath.Join(dir, name)
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	for counter := 1; ; counter++ {
		if _, err := os.Lstat(candidate); os.IsNotExist(err) {
			return candidate
		}
		suffix := fmt.Sprintf(suffixFormat, counter)
		candidate = filepath.Join(dir, stem+suffix+ext)
	}
}

func (o *Organizer) record(op, path, detail string, res *Result) {
	rec := Record{
		ID:        ulid.Make().String(),
		Operation: op,
		Path:      path,
		Detail:    detail,
		Timestamp: o.now(),
		Result:    res,
	}

	o.mu.Lock()
	o.history = append(o.history, rec)
	o.mu.Unlock()

	if o.journal != nil {
		if err := o.journal.Append(rec); err != nil {
			o.log.Warn("journal_append_failed", map[string]any{"operation": op}, err)
		}
	}
}

// History returns the most recent limit records, oldest first. A
// non-positive limit returns everything.
func (o *Organizer) History(limit int) []Record {
	o.mu.Lock()
	defer o.mu.Unlock()

	if limit <= 0 || limit > len(o.history) {
		limit = len(o.history)
	}
	out := make([]Record, limit)
	copy(out, o.history[len(o.history)-limit:])
	return out
}
