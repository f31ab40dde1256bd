package organizer

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/keiko/fman/internal/fsops"
)

// Rename applies a placeholder pattern to every top-level file of dir.
// With preview true nothing is touched; the returned mapping is the
// exact mapping a subsequent apply produces, collisions included.
func (o *Organizer) Rename(dir, pattern string, preview bool) *Result {
	res := &Result{Success: true, Pattern: pattern, Preview: preview}

	if err := fsops.ValidateDir(dir); err != nil {
		return &Result{Success: false, Pattern: pattern, Preview: preview, Error: err.Error()}
	}

	files, err := fsops.ListFiles(dir)
	if err != nil {
		return &Result{Success: false, Pattern: pattern, Preview: preview, Error: err.Error()}
	}

	// Names already assigned in this pass. Consulting it alongside the
	// filesystem keeps the preview mapping identical to the apply
	// mapping when several files collide onto one name.
	claimed := make(map[string]bool)

	for i, rec := range files {
		newName := applyPattern(rec, pattern, i+1)
		newName = resolveCollision(dir, newName, rec.Path, claimed)
		claimed[newName] = true

		info := RenameInfo{
			Original: rec.Name,
			New:      newName,
			Path:     rec.Path,
		}

		switch {
		case preview:
			info.Status = StatusPreview
		case newName == rec.Name:
			info.Status = StatusUnchanged
		default:
			if err := os.Rename(rec.Path, filepath.Join(dir, newName)); err != nil {
				res.Errors = append(res.Errors, fmt.Sprintf("rename %s: %v", rec.Name, err))
				continue
			}
			info.Status = StatusRenamed
		}
		res.Renamed = append(res.Renamed, info)
	}

	if !preview {
		o.record(OpRename, dir, pattern, res)
	}
	return res
}

// resolveCollision appends _1, _2, ... before the extension until the
// name neither exists in dir (the file itself excepted) nor was
// assigned earlier in the same pass.
func resolveCollision(dir, name, selfPath string, claimed map[string]bool) string {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	candidate := name
	for counter := 1; ; counter++ {
		if !claimed[candidate] {
			full := filepath.Join(dir, candidate)
			if full == selfPath {
				return candidate
			}
			if _, err := os.Lstat(full); os.IsNotExist(err) {
				return candidate
			}
		}
		candidate = fmt.Sprintf("%s_%d%s", stem, counter, ext)
	}
}

func applyPattern(rec fsops.FileRecord, pattern string, index int) string {
	ext := filepath.Ext(rec.Name)
	stem := strings.TrimSuffix(rec.Name, ext)

	name := strings.NewReplacer(
		"{name}", stem,
		"{ext}", ext,
		"{index:02d}", fmt.Sprintf("%02d", index),
		"{index:03d}", fmt.Sprintf("%03d", index),
		"{index}", strconv.Itoa(index),
		"{date}", rec.Modified.Format("20060102"),
		"{time}", rec.Modified.Format("150405"),
		"{year}", rec.Modified.Format("2006"),
		"{month}", rec.Modified.Format("01"),
		"{day}", rec.Modified.Format("02"),
		"{size}", strconv.FormatInt(rec.Size, 10),
	).Replace(pattern)

	name = fsops.CleanFilename(name)

	if filepath.Ext(name) == "" && ext != "" {
		name += ext
	}
	return name
}
