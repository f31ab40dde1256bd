package analyzer

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/dustin/go-humanize"

	"github.com/keiko/fman/internal/fsops"
)

// Naming pattern labels.
const (
	patternDigits     = "contains_digits"
	patternUnderscore = "underscore_separated"
	patternHyphen     = "hyphen_separated"
	patternSpace      = "space_separated"
	patternUpper      = "all_uppercase"
	patternLower      = "all_lowercase"
)

// File age distribution labels.
const (
	ageWeek  = "last_week"
	ageMonth = "last_month"
	ageYear  = "last_year"
	ageOlder = "older"
)

// PatternReport summarizes how a tree's files are named and laid out.
type PatternReport struct {
	NamingPatterns  map[string]int `json:"naming_patterns"`
	ExtensionCounts map[string]int `json:"extension_counts"`
	DepthCounts     map[int]int    `json:"directory_depth"`
	AgeDistribution map[string]int `json:"file_age_distribution"`
	Suggestions     []string       `json:"suggestions"`
}

// AnalyzePatterns inspects naming conventions, extension spread,
// nesting depth and file age under dir, and derives organization
// suggestions from them.
func (a *Analyzer) AnalyzePatterns(dir string) (*PatternReport, error) {
	if err := fsops.ValidateDir(dir); err != nil {
		return nil, err
	}
	records, err := fsops.WalkFiles(dir)
	if err != nil {
		return nil, err
	}

	report := &PatternReport{
		NamingPatterns:  make(map[string]int),
		ExtensionCounts: make(map[string]int),
		DepthCounts:     make(map[int]int),
		AgeDistribution: make(map[string]int),
	}

	now := a.now()
	for _, rec := range records {
		stem := strings.ToLower(strings.TrimSuffix(rec.Name, filepath.Ext(rec.Name)))

		if strings.ContainsFunc(stem, unicode.IsDigit) {
			report.NamingPatterns[patternDigits]++
		}
		if strings.Contains(stem, "_") {
			report.NamingPatterns[patternUnderscore]++
		}
		if strings.Contains(stem, "-") {
			report.NamingPatterns[patternHyphen]++
		}
		if strings.Contains(stem, " ") {
			report.NamingPatterns[patternSpace]++
		}
		switch caseStyle(rec.Name) {
		case patternUpper:
			report.NamingPatterns[patternUpper]++
		case patternLower:
			report.NamingPatterns[patternLower]++
		}

		if rec.Extension != "" {
			report.ExtensionCounts[rec.Extension]++
		}

		rel, err := filepath.Rel(dir, rec.Path)
		if err == nil {
			report.DepthCounts[strings.Count(rel, string(filepath.Separator))]++
		}

		ageDays := int(now.Sub(rec.Modified).Hours() / 24)
		switch {
		case ageDays < 7:
			report.AgeDistribution[ageWeek]++
		case ageDays < 30:
			report.AgeDistribution[ageMonth]++
		case ageDays < 365:
			report.AgeDistribution[ageYear]++
		default:
			report.AgeDistribution[ageOlder]++
		}
	}

	report.Suggestions = organizationSuggestions(report)
	return report, nil
}

// caseStyle reports whether the stem is uniformly upper or lower case.
// Stems without letters have no case style.
func caseStyle(name string) string {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	hasLetter := false
	allUpper, allLower := true, true
	for _, r := range stem {
		if !unicode.IsLetter(r) {
			continue
		}
		hasLetter = true
		if !unicode.IsUpper(r) {
			allUpper = false
		}
		if !unicode.IsLower(r) {
			allLower = false
		}
	}
	switch {
	case !hasLetter:
		return ""
	case allUpper:
		return patternUpper
	case allLower:
		return patternLower
	}
	return ""
}

func organizationSuggestions(report *PatternReport) []string {
	var suggestions []string

	if len(report.ExtensionCounts) > 10 {
		suggestions = append(suggestions,
			"many distinct file types; consider organizing into per-type subdirectories")
	}
	if report.NamingPatterns[patternSpace] > report.NamingPatterns[patternUnderscore] {
		suggestions = append(suggestions,
			"file names favor spaces; replacing them with underscores improves portability")
	}

	deep := 0
	for depth, count := range report.DepthCounts {
		if depth > 3 {
			deep += count
		}
	}
	if deep > 50 {
		suggestions = append(suggestions,
			"directory nesting is deep; consider flattening the structure")
	}

	if report.AgeDistribution[ageOlder] > 100 {
		suggestions = append(suggestions,
			"many files older than a year; consider an archive directory")
	}
	return suggestions
}

// StorageAdvice lists cleanup, compression and archive opportunities.
type StorageAdvice struct {
	CleanupOpportunities  []string  `json:"cleanup_opportunities"`
	CompressionCandidates []TopFile `json:"compression_candidates"`
	ArchiveCandidates     []TopFile `json:"archive_candidates"`
	PotentialSavings      int64     `json:"potential_savings"`
}

// StorageRecommendations derives space-saving advice from a full
// directory analysis. PotentialSavings counts the bytes reclaimable by
// deleting all but one copy of every duplicate group.
func (a *Analyzer) StorageRecommendations(dir string) (*StorageAdvice, error) {
	report, err := a.AnalyzeDirectory(dir)
	if err != nil {
		return nil, err
	}

	advice := &StorageAdvice{}

	if n := len(report.EmptyFiles); n > 0 {
		advice.CleanupOpportunities = append(advice.CleanupOpportunities,
			fmt.Sprintf("%d empty files can be deleted safely", n))
	}

	if len(report.Duplicates) > 0 {
		for _, group := range report.Duplicates {
			advice.PotentialSavings += int64(group.Count-1) * group.Size
		}
		advice.CleanupOpportunities = append(advice.CleanupOpportunities,
			fmt.Sprintf("duplicate files found; removing copies frees %s",
				humanize.IBytes(uint64(advice.PotentialSavings))))
	}

	for _, tf := range report.LargestFiles {
		if tf.Size >= 1024*1024 {
			advice.CompressionCandidates = append(advice.CompressionCandidates, tf)
			if len(advice.CompressionCandidates) == 5 {
				break
			}
		}
	}

	advice.ArchiveCandidates = report.OldestFiles
	return advice, nil
}
