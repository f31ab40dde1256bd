package organizer

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/keiko/fman/internal/fsops"
)

// CleanupEmptyDirs removes every empty directory under dir, deepest
// first so that directories emptied by the pass itself are caught. The
// root is never removed.
func (o *Organizer) CleanupEmptyDirs(dir string) *Result {
	res := &Result{Success: true}

	if err := fsops.ValidateDir(dir); err != nil {
		return &Result{Success: false, Error: err.Error()}
	}

	var subdirs []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() && path != dir {
			subdirs = append(subdirs, path)
		}
		return nil
	})
	if err != nil {
		return &Result{Success: false, Error: err.Error()}
	}

	sort.Slice(subdirs, func(i, j int) bool {
		return strings.Count(subdirs[i], string(os.PathSeparator)) >
			strings.Count(subdirs[j], string(os.PathSeparator))
	})

	for _, sub := range subdirs {
		entries, err := os.ReadDir(sub)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("read %s: %v", sub, err))
			continue
		}
		if len(entries) > 0 {
			continue
		}
		if err := os.Remove(sub); err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("remove %s: %v", sub, err))
			continue
		}
		res.RemovedDirs = append(res.RemovedDirs, sub)
	}

	o.record(OpCleanup, dir, "", res)
	return res
}

// CreateShortcuts symlinks each source into shortcutDir, suffixing
// colliding names with _shortcut_1, _shortcut_2, ...
func (o *Organizer) CreateShortcuts(sources []string, shortcutDir string) *Result {
	res := &Result{Success: true}

	if err := os.MkdirAll(shortcutDir, 0755); err != nil {
		return &Result{Success: false, Error: err.Error()}
	}

	for _, source := range sources {
		if _, err := os.Stat(source); err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("source not found: %s", source))
			continue
		}
		if !fsops.IsSafePath(source) {
			res.Errors = append(res.Errors, fmt.Sprintf("unsafe path: %s", source))
			continue
		}

		target := nextFreePath(shortcutDir, filepath.Base(source), "_shortcut_%d")
		if err := os.Symlink(source, target); err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("shortcut %s: %v", source, err))
			continue
		}
		res.Shortcuts = append(res.Shortcuts, Shortcut{Source: source, Shortcut: target})
	}
	return res
}
