// Package render formats parser and file-operation output for the
// terminal, with a plain fallback for pipes and --no-color.
package render

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/keiko/fman/internal/analyzer"
	"github.com/keiko/fman/internal/config"
	"github.com/keiko/fman/internal/fsops"
	"github.com/keiko/fman/internal/metrics"
	"github.com/keiko/fman/internal/nlp"
	"github.com/keiko/fman/internal/organizer"
)

// Renderer handles output formatting.
type Renderer struct {
	pretty bool
}

// New creates a renderer. pretty false yields plain, pipe-friendly
// output.
func New(pretty bool) *Renderer {
	return &Renderer{pretty: pretty}
}

func (r *Renderer) header(sb *strings.Builder, title string) {
	if r.pretty {
		sb.WriteString(color.CyanString(title + "\n"))
		sb.WriteString(strings.Repeat("─", 60) + "\n")
	} else {
		sb.WriteString(title + "\n")
	}
}

func (r *Renderer) ok() string {
	if r.pretty {
		return color.GreenString("✓")
	}
	return "ok"
}

func (r *Renderer) fail() string {
	if r.pretty {
		return color.RedString("✗")
	}
	return "failed"
}

// Intent formats a parsed command.
func (r *Renderer) Intent(intent nlp.Intent) string {
	var sb strings.Builder
	r.header(&sb, "Parsed Command")

	name := intent.Name
	if r.pretty {
		name = color.YellowString(name)
	}
	fmt.Fprintf(&sb, "intent: %s (confidence %.2f)\n", name, intent.Confidence)

	e := intent.Entities
	if len(e.FileType) > 0 {
		fmt.Fprintf(&sb, "file types: %s\n", strings.Join(e.FileType, ", "))
	}
	if len(e.Keywords) > 0 {
		fmt.Fprintf(&sb, "keywords: %s\n", strings.Join(e.Keywords, ", "))
	}
	if e.Path != "" {
		fmt.Fprintf(&sb, "path: %s\n", e.Path)
	}
	if e.Target != "" {
		fmt.Fprintf(&sb, "target: %s\n", e.Target)
	}
	if e.OrgType != "" {
		fmt.Fprintf(&sb, "organize by: %s\n", e.OrgType)
	}
	if e.Size != nil {
		if e.Size.Min != nil {
			fmt.Fprintf(&sb, "size min: %s\n", humanize.IBytes(uint64(*e.Size.Min)))
		}
		if e.Size.Max != nil {
			fmt.Fprintf(&sb, "size max: %s\n", humanize.IBytes(uint64(*e.Size.Max)))
		}
	}
	if e.Time != nil {
		if e.Time.From != nil {
			fmt.Fprintf(&sb, "from: %s\n", e.Time.From.Format("2006-01-02"))
		}
		if e.Time.To != nil {
			fmt.Fprintf(&sb, "to: %s\n", e.Time.To.Format("2006-01-02"))
		}
	}
	return sb.String()
}

// Validation formats a validation verdict with its warnings and
// suggestions.
func (r *Renderer) Validation(v nlp.Validation) string {
	var sb strings.Builder

	if v.Valid {
		fmt.Fprintf(&sb, "%s command understood (confidence %.2f)\n", r.ok(), v.Confidence)
	} else {
		fmt.Fprintf(&sb, "%s command unclear (confidence %.2f)\n", r.fail(), v.Confidence)
	}
	for _, w := range v.Warnings {
		if r.pretty {
			fmt.Fprintf(&sb, "  %s %s\n", color.YellowString("!"), w)
		} else {
			fmt.Fprintf(&sb, "  warning: %s\n", w)
		}
	}
	for _, s := range v.Suggestions {
		fmt.Fprintf(&sb, "  try: %s\n", s)
	}
	return sb.String()
}

// Suggestions formats a suggestion list.
func (r *Renderer) Suggestions(suggestions []string) string {
	if len(suggestions) == 0 {
		return "No suggestions\n"
	}
	var sb strings.Builder
	r.header(&sb, "Suggestions")
	for _, s := range suggestions {
		fmt.Fprintf(&sb, "  • %s\n", s)
	}
	return sb.String()
}

// SearchResults formats matched files.
func (r *Renderer) SearchResults(records []fsops.FileRecord) string {
	if len(records) == 0 {
		return "No files found\n"
	}

	var sb strings.Builder
	r.header(&sb, fmt.Sprintf("Found %d files", len(records)))
	for _, rec := range records {
		size := humanize.IBytes(uint64(rec.Size))
		if r.pretty {
			fmt.Fprintf(&sb, "%s  %s  %s\n",
				color.HiBlackString(rec.Modified.Format("2006-01-02 15:04")),
				fmt.Sprintf("%9s", size), rec.Path)
		} else {
			fmt.Fprintf(&sb, "%s\t%s\t%s\n",
				rec.Modified.Format("2006-01-02 15:04"), size, rec.Path)
		}
	}
	return sb.String()
}

// OpResult formats a per-path move/copy/delete outcome.
func (r *Renderer) OpResult(verb string, res fsops.OpResult) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s %s: %d succeeded, %d failed\n",
		r.ok(), verb, len(res.Succeeded), len(res.Failed))
	for _, pair := range res.Succeeded {
		if pair.To != "" {
			fmt.Fprintf(&sb, "  %s → %s\n", pair.From, pair.To)
		} else {
			fmt.Fprintf(&sb, "  %s\n", pair.From)
		}
	}
	for _, fe := range res.Failed {
		fmt.Fprintf(&sb, "  %s %s: %s\n", r.fail(), fe.Path, fe.Error)
	}
	return sb.String()
}

// Result formats an organizer operation result.
func (r *Renderer) Result(res *organizer.Result) string {
	var sb strings.Builder

	if !res.Success {
		fmt.Fprintf(&sb, "%s %s\n", r.fail(), res.Error)
		return sb.String()
	}

	sb.WriteString(r.ok())
	switch {
	case res.OrganizedFiles > 0 || len(res.CreatedDirs) > 0:
		fmt.Fprintf(&sb, " organized %d files into %d directories\n",
			res.OrganizedFiles, len(res.CreatedDirs))
	case len(res.Renamed) > 0:
		verb := "renamed"
		if res.Preview {
			verb = "would rename"
		}
		fmt.Fprintf(&sb, " %s %d files\n", verb, len(res.Renamed))
		for _, ri := range res.Renamed {
			fmt.Fprintf(&sb, "  %s → %s\n", ri.Original, ri.New)
		}
	case len(res.RemovedDirs) > 0:
		fmt.Fprintf(&sb, " removed %d empty directories\n", len(res.RemovedDirs))
		for _, d := range res.RemovedDirs {
			fmt.Fprintf(&sb, "  %s\n", d)
		}
	case len(res.Shortcuts) > 0:
		fmt.Fprintf(&sb, " created %d shortcuts\n", len(res.Shortcuts))
	case len(res.Undone) > 0:
		fmt.Fprintf(&sb, " restored %d files\n", len(res.Undone))
	default:
		sb.WriteString(" done\n")
	}

	for _, e := range res.Errors {
		fmt.Fprintf(&sb, "  %s %s\n", r.fail(), e)
	}
	return sb.String()
}

// Duplicates formats duplicate groups.
func (r *Renderer) Duplicates(groups []analyzer.DuplicateGroup) string {
	if len(groups) == 0 {
		return "No duplicates found\n"
	}

	var sb strings.Builder
	r.header(&sb, fmt.Sprintf("%d duplicate groups", len(groups)))
	for _, g := range groups {
		fmt.Fprintf(&sb, "%d copies of %s (%s)\n", g.Count, g.SizeLabel, g.Hash[:12])
		for _, f := range g.Files {
			fmt.Fprintf(&sb, "  %s\n", f.Path)
		}
	}
	return sb.String()
}

// Report formats a directory analysis.
func (r *Renderer) Report(report *analyzer.Report) string {
	var sb strings.Builder
	r.header(&sb, "Directory Analysis: "+report.Path)

	fmt.Fprintf(&sb, "files: %d  directories: %d  total size: %s\n",
		report.TotalFiles, report.TotalDirs, report.TotalSizeLabel)
	fmt.Fprintf(&sb, "hidden: %d  empty: %d  duplicate groups: %d\n",
		report.HiddenFiles, len(report.EmptyFiles), len(report.Duplicates))

	if len(report.FileTypes) > 0 {
		sb.WriteString("\nby type:\n")
		types := make([]config.Category, 0, len(report.FileTypes))
		for cat := range report.FileTypes {
			types = append(types, cat)
		}
		sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
		for _, cat := range types {
			fmt.Fprintf(&sb, "  %-14s %d\n", cat, report.FileTypes[cat])
		}
	}

	if len(report.LargestFiles) > 0 {
		sb.WriteString("\nlargest files:\n")
		for _, tf := range report.LargestFiles {
			fmt.Fprintf(&sb, "  %9s  %s\n", tf.SizeLabel, tf.Path)
		}
	}
	return sb.String()
}

// Stats formats per-operation timing aggregates.
func (r *Renderer) Stats(stats map[string]metrics.OpStats) string {
	if len(stats) == 0 {
		return "No operations recorded\n"
	}

	ops := make([]string, 0, len(stats))
	for op := range stats {
		ops = append(ops, op)
	}
	sort.Strings(ops)

	var sb strings.Builder
	r.header(&sb, "Operation Timings")
	for _, op := range ops {
		st := stats[op]
		fmt.Fprintf(&sb, "%-12s runs: %d  failures: %d  files: %d  avg: %s  max: %s\n",
			op, st.Count, st.Failures, st.TotalFiles,
			st.AvgDuration.Round(time.Millisecond),
			st.MaxDuration.Round(time.Millisecond))
	}
	return sb.String()
}

// History formats in-memory history records, oldest first.
func (r *Renderer) History(records []organizer.Record) string {
	if len(records) == 0 {
		return "No history\n"
	}

	var sb strings.Builder
	r.header(&sb, "Operation History")
	for _, rec := range records {
		status := r.ok()
		if rec.Result != nil && !rec.Result.Success {
			status = r.fail()
		}
		detail := ""
		if rec.Detail != "" {
			detail = " (" + rec.Detail + ")"
		}
		fmt.Fprintf(&sb, "%s %s  %s%s  %s\n",
			status, rec.Timestamp.Format("2006-01-02 15:04:05"),
			rec.Operation, detail, rec.Path)
	}
	return sb.String()
}
