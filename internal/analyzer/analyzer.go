// Package analyzer inspects directory trees: structural statistics,
// duplicate detection via size-bucketed content hashing, naming-pattern
// analysis, and storage recommendations.
package analyzer

import (
	"crypto/md5"
	"encoding/hex"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/keiko/fman/internal/config"
	"github.com/keiko/fman/internal/fsops"
	"github.com/keiko/fman/internal/logging"
)

const hashChunkSize = 8 * 1024

// FileRef identifies one file inside a duplicate group.
type FileRef struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// DuplicateGroup is a set of files with identical content.
type DuplicateGroup struct {
	Hash      string    `json:"hash"`
	Size      int64     `json:"size"`
	SizeLabel string    `json:"size_label"`
	Count     int       `json:"count"`
	Files     []FileRef `json:"files"`
}

// TopFile is one entry of a largest/newest/oldest listing.
type TopFile struct {
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	Size      int64     `json:"size"`
	SizeLabel string    `json:"size_label,omitempty"`
	Modified  time.Time `json:"modified"`
}

// Report is the full directory analysis.
type Report struct {
	Path             string                  `json:"path"`
	TotalFiles       int                     `json:"total_files"`
	TotalDirs        int                     `json:"total_directories"`
	TotalSize        int64                   `json:"total_size"`
	TotalSizeLabel   string                  `json:"total_size_label"`
	FileTypes        map[config.Category]int `json:"file_types"`
	SizeDistribution map[string]int          `json:"size_distribution"`
	LargestFiles     []TopFile               `json:"largest_files"`
	NewestFiles      []TopFile               `json:"newest_files"`
	OldestFiles      []TopFile               `json:"oldest_files"`
	Duplicates       []DuplicateGroup        `json:"duplicate_files"`
	EmptyFiles       []string                `json:"empty_files"`
	HiddenFiles      int                     `json:"hidden_files"`
}

// Size distribution labels.
const (
	distEmpty   = "empty"
	distTiny    = "< 1KB"
	distSmall   = "1KB - 1MB"
	distMedium  = "1MB - 1GB"
	distLarge   = "> 1GB"
	topListSize = 10
)

// Analyzer runs directory analyses. Content hashes are cached per path
// for the lifetime of the instance.
type Analyzer struct {
	log *logging.Logger
	now func() time.Time

	mu        sync.Mutex
	hashCache map[string]string
}

// New returns an Analyzer with an empty hash cache.
func New() *Analyzer {
	return &Analyzer{
		log:       logging.New("analyzer"),
		now:       time.Now,
		hashCache: make(map[string]string),
	}
}

// AnalyzeDirectory walks dir recursively and builds the full report.
func (a *Analyzer) AnalyzeDirectory(dir string) (*Report, error) {
	start := a.now()
	if err := fsops.ValidateDir(dir); err != nil {
		return nil, err
	}

	report := &Report{
		Path:             dir,
		FileTypes:        make(map[config.Category]int),
		SizeDistribution: make(map[string]int),
	}

	var records []fsops.FileRecord
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != dir {
				report.TotalDirs++
			}
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		rec := fsops.NewFileRecord(path, info)
		records = append(records, rec)

		report.TotalFiles++
		report.TotalSize += rec.Size
		report.FileTypes[rec.Category]++
		report.SizeDistribution[sizeDistLabel(rec.Size)]++
		if rec.Size == 0 {
			report.EmptyFiles = append(report.EmptyFiles, rec.Path)
		}
		if rec.Hidden {
			report.HiddenFiles++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	report.TotalSizeLabel = humanize.IBytes(uint64(report.TotalSize))
	report.LargestFiles = topBySize(records)
	report.NewestFiles = topByTime(records, true)
	report.OldestFiles = topByTime(records, false)
	report.Duplicates = a.duplicatesIn(records)

	a.log.TimedEvent("analyze_directory", start, map[string]any{
		"path": dir, "files": report.TotalFiles,
	})
	return report, nil
}

// FindDuplicates walks dir and returns groups of identically-sized,
// identically-hashed files. Empty files never group; unreadable files
// are skipped without error.
func (a *Analyzer) FindDuplicates(dir string) ([]DuplicateGroup, error) {
	if err := fsops.ValidateDir(dir); err != nil {
		return nil, err
	}
	records, err := fsops.WalkFiles(dir)
	if err != nil {
		return nil, err
	}
	return a.duplicatesIn(records), nil
}

func (a *Analyzer) duplicatesIn(records []fsops.FileRecord) []DuplicateGroup {
	buckets := make(map[int64][]fsops.FileRecord)
	for _, rec := range records {
		if rec.Size == 0 {
			continue
		}
		buckets[rec.Size] = append(buckets[rec.Size], rec)
	}

	var groups []DuplicateGroup
	for size, bucket := range buckets {
		if len(bucket) < 2 {
			continue
		}

		byHash := make(map[string][]fsops.FileRecord)
		for _, rec := range bucket {
			hash, err := a.fileHash(rec.Path)
			if err != nil {
				continue
			}
			byHash[hash] = append(byHash[hash], rec)
		}

		for hash, dupes := range byHash {
			if len(dupes) < 2 {
				continue
			}
			group := DuplicateGroup{
				Hash:      hash,
				Size:      size,
				SizeLabel: humanize.IBytes(uint64(size)),
				Count:     len(dupes),
			}
			for _, rec := range dupes {
				group.Files = append(group.Files, FileRef{Name: rec.Name, Path: rec.Path})
			}
			groups = append(groups, group)
		}
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Size != groups[j].Size {
			return groups[i].Size > groups[j].Size
		}
		return groups[i].Hash < groups[j].Hash
	})
	return groups
}

// fileHash streams the file through MD5 in fixed-size chunks and caches
// the digest per path.
func (a *Analyzer) fileHash(path string) (string, error) {
	a.mu.Lock()
	if cached, ok := a.hashCache[path]; ok {
		a.mu.Unlock()
		return cached, nil
	}
	a.mu.Unlock()

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := md5.New()
	buf := make([]byte, hashChunkSize)
	for {
		n, err := f.Read(buf)
		if n > 0 {
			h.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
	}

	digest := hex.EncodeToString(h.Sum(nil))
	a.mu.Lock()
	a.hashCache[path] = digest
	a.mu.Unlock()
	return digest, nil
}

func sizeDistLabel(size int64) string {
	switch {
	case size == 0:
		return distEmpty
	case size < 1024:
		return distTiny
	case size < 1024*1024:
		return distSmall
	case size < 1024*1024*1024:
		return distMedium
	default:
		return distLarge
	}
}

func topBySize(records []fsops.FileRecord) []TopFile {
	sorted := make([]fsops.FileRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Size > sorted[j].Size })

	return toTopFiles(sorted, true)
}

func topByTime(records []fsops.FileRecord, newest bool) []TopFile {
	sorted := make([]fsops.FileRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		if newest {
			return sorted[i].Modified.After(sorted[j].Modified)
		}
		return sorted[i].Modified.Before(sorted[j].Modified)
	})

	return toTopFiles(sorted, false)
}

func toTopFiles(sorted []fsops.FileRecord, withSizeLabel bool) []TopFile {
	n := len(sorted)
	if n > topListSize {
		n = topListSize
	}

	out := make([]TopFile, 0, n)
	for _, rec := range sorted[:n] {
		tf := TopFile{
			Name:     rec.Name,
			Path:     rec.Path,
			Size:     rec.Size,
			Modified: rec.Modified,
		}
		if withSizeLabel {
			tf.SizeLabel = humanize.IBytes(uint64(rec.Size))
		}
		out = append(out, tf)
	}
	return out
}
