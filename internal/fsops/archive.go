package fsops

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Zip packs the given files and directory trees into a zip archive at
// outputPath. Missing sources are skipped.
func Zip(paths []string, outputPath string) error {
	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}
	defer out.Close()

	w := zip.NewWriter(out)
	defer w.Close()

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			continue
		}
		if info.IsDir() {
			base := filepath.Dir(p)
			records, err := WalkFiles(p)
			if err != nil {
				continue
			}
			for _, rec := range records {
				rel, err := filepath.Rel(base, rec.Path)
				if err != nil {
					continue
				}
				if err := addToZip(w, rec.Path, filepath.ToSlash(rel)); err != nil {
					return err
				}
			}
			continue
		}
		if err := addToZip(w, p, filepath.Base(p)); err != nil {
			return err
		}
	}
	return nil
}

func addToZip(w *zip.Writer, path, name string) error {
	in, err := os.Open(path)
	if err != nil {
		return err
	}
	defer in.Close()

	entry, err := w.Create(name)
	if err != nil {
		return err
	}
	_, err = io.Copy(entry, in)
	return err
}

// Unzip extracts an archive into destDir, refusing entries that would
// escape it.
func Unzip(archivePath, destDir string) error {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer r.Close()

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return err
	}

	for _, f := range r.File {
		target := filepath.Join(destDir, filepath.FromSlash(f.Name))
		if !strings.HasPrefix(target, filepath.Clean(destDir)+string(os.PathSeparator)) {
			return fmt.Errorf("archive entry escapes destination: %s", f.Name)
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return err
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return err
		}
		if err := extractEntry(f, target); err != nil {
			return err
		}
	}
	return nil
}

func extractEntry(f *zip.File, target string) error {
	in, err := f.Open()
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, f.Mode())
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}
