// Package fsops provides the filesystem primitives behind search,
// organization and batch operations: metadata records, path safety,
// per-file move/copy/delete, and zip packing.
package fsops

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/keiko/fman/internal/config"
)

// FileRecord is a point-in-time snapshot of one file's metadata.
type FileRecord struct {
	Path      string          `json:"path"`
	Name      string          `json:"name"`
	Size      int64           `json:"size"`
	Modified  time.Time       `json:"modified"`
	Category  config.Category `json:"category"`
	Extension string          `json:"extension"`
	Hidden    bool            `json:"hidden"`
}

// NewFileRecord builds a record from stat metadata.
func NewFileRecord(path string, info fs.FileInfo) FileRecord {
	name := info.Name()
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	return FileRecord{
		Path:      path,
		Name:      name,
		Size:      info.Size(),
		Modified:  info.ModTime(),
		Category:  config.CategoryForExtension(ext),
		Extension: ext,
		Hidden:    strings.HasPrefix(name, "."),
	}
}

// ListFiles returns the top-level regular files of a directory,
// non-recursive. Entries that fail to stat are skipped.
func ListFiles(dir string) ([]FileRecord, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var records []FileRecord
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		records = append(records, NewFileRecord(filepath.Join(dir, e.Name()), info))
	}
	return records, nil
}

// WalkFiles returns every regular file under dir, recursive.
// Unreadable subtrees are skipped silently.
func WalkFiles(dir string) ([]FileRecord, error) {
	var records []FileRecord
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		records = append(records, NewFileRecord(path, info))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// DirectorySize sums the sizes of all files under dir, best-effort.
func DirectorySize(dir string) int64 {
	var total int64
	records, err := WalkFiles(dir)
	if err != nil {
		return 0
	}
	for _, r := range records {
		total += r.Size
	}
	return total
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Chtimes(dst, time.Now(), info.ModTime())
}
