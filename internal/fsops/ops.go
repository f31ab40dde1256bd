package fsops

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// OpResult reports a per-path best-effort batch operation.
type OpResult struct {
	Succeeded []PathPair `json:"succeeded"`
	Failed    []PathErr  `json:"failed"`
}

// PathPair records one source → destination transfer.
type PathPair struct {
	From string `json:"from"`
	To   string `json:"to,omitempty"`
}

// PathErr records one path that failed and why.
type PathErr struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// Move relocates each source into the destination directory. Failures
// are collected per path; the pass never aborts early.
func Move(sources []string, dest string) OpResult {
	var res OpResult
	if err := os.MkdirAll(dest, 0755); err != nil {
		for _, s := range sources {
			res.Failed = append(res.Failed, PathErr{Path: s, Error: err.Error()})
		}
		return res
	}

	for _, src := range sources {
		if !IsSafePath(src) {
			res.Failed = append(res.Failed, PathErr{Path: src, Error: ErrUnsafePath.Error()})
			continue
		}
		target := filepath.Join(dest, filepath.Base(src))
		if err := MoveFile(src, target); err != nil {
			res.Failed = append(res.Failed, PathErr{Path: src, Error: err.Error()})
			continue
		}
		res.Succeeded = append(res.Succeeded, PathPair{From: src, To: target})
	}
	return res
}

// MoveFile renames src to dst, copying across filesystems when a plain
// rename is refused.
func MoveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	if err := copyFile(src, dst); err != nil {
		return fmt.Errorf("move %s: %w", src, err)
	}
	return os.Remove(src)
}

// Copy duplicates each source (file or directory tree) into dest.
func Copy(sources []string, dest string) OpResult {
	var res OpResult
	if err := os.MkdirAll(dest, 0755); err != nil {
		for _, s := range sources {
			res.Failed = append(res.Failed, PathErr{Path: s, Error: err.Error()})
		}
		return res
	}

	for _, src := range sources {
		info, err := os.Stat(src)
		if err != nil {
			res.Failed = append(res.Failed, PathErr{Path: src, Error: "path not found"})
			continue
		}
		target := filepath.Join(dest, filepath.Base(src))

		if info.IsDir() {
			err = copyTree(src, target)
		} else {
			err = copyFile(src, target)
		}
		if err != nil {
			res.Failed = append(res.Failed, PathErr{Path: src, Error: err.Error()})
			continue
		}
		res.Succeeded = append(res.Succeeded, PathPair{From: src, To: target})
	}
	return res
}

func copyTree(src, dst string) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dst, 0755); err != nil {
		return err
	}
	for _, e := range entries {
		s := filepath.Join(src, e.Name())
		d := filepath.Join(dst, e.Name())
		if e.IsDir() {
			if err := copyTree(s, d); err != nil {
				return err
			}
			continue
		}
		if err := copyFile(s, d); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes each path (file or directory tree). Protected paths
// are refused per path.
func Delete(paths []string) OpResult {
	var res OpResult
	for _, p := range paths {
		if !IsSafePath(p) {
			res.Failed = append(res.Failed, PathErr{Path: p, Error: ErrUnsafePath.Error()})
			continue
		}
		info, err := os.Stat(p)
		if err != nil {
			res.Failed = append(res.Failed, PathErr{Path: p, Error: "path not found"})
			continue
		}
		if info.IsDir() {
			err = os.RemoveAll(p)
		} else {
			err = os.Remove(p)
		}
		if err != nil {
			res.Failed = append(res.Failed, PathErr{Path: p, Error: err.Error()})
			continue
		}
		res.Succeeded = append(res.Succeeded, PathPair{From: p})
	}
	return res
}

// Mkdir creates a directory and any missing parents.
func Mkdir(path string) error {
	if !IsSafePath(path) {
		return fmt.Errorf("%w: %s", ErrUnsafePath, path)
	}
	return os.MkdirAll(path, 0755)
}

var illegalNameChars = regexp.MustCompile(`[<>:"/\\|?*]`)

// CleanFilename replaces characters that are illegal in file names and
// strips leading/trailing dots and spaces. An empty result becomes
// "unnamed_file".
func CleanFilename(name string) string {
	cleaned := illegalNameChars.ReplaceAllString(name, "_")
	cleaned = strings.Trim(cleaned, ". ")
	if cleaned == "" {
		cleaned = "unnamed_file"
	}
	return cleaned
}
