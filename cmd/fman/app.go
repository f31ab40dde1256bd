package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/keiko/fman/internal/analyzer"
	"github.com/keiko/fman/internal/fsops"
	"github.com/keiko/fman/internal/history"
	"github.com/keiko/fman/internal/logging"
	"github.com/keiko/fman/internal/metrics"
	"github.com/keiko/fman/internal/nlp"
	"github.com/keiko/fman/internal/organizer"
	"github.com/keiko/fman/internal/render"
)

// app wires the parser, the file operations and the renderer together
// for command execution. One app instance backs a CLI invocation or a
// whole shell session.
type app struct {
	processor *nlp.Processor
	organizer *organizer.Organizer
	analyzer  *analyzer.Analyzer
	renderer  *render.Renderer
	journal   *history.Journal
	log       *logging.Logger
}

func newApp() *app {
	a := &app{
		processor: nlp.NewProcessor(),
		analyzer:  analyzer.New(),
		renderer:  render.New(prettyOutput()),
		log:       logging.New("cli"),
	}

	journal, err := history.Open()
	if err != nil {
		a.log.Warn("journal_unavailable", nil, err)
		a.organizer = organizer.New()
	} else {
		a.journal = journal
		a.organizer = organizer.New(
			organizer.WithJournal(journal),
			organizer.WithSession(journal.Session()),
		)
	}
	return a
}

func (a *app) close() {
	if a.journal != nil {
		a.journal.Close()
	}
}

// asJSON marshals v for --json output.
func asJSON(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err.Error()
	}
	return string(data) + "\n"
}

// Execute parses one natural-language command and runs it. Compound
// commands split on batch separators run in sequence.
func (a *app) Execute(text string) string {
	intents := a.processor.SplitBatch(text)
	if len(intents) == 0 {
		intents = []nlp.Intent{a.processor.Parse(text)}
	}

	var out strings.Builder
	for _, intent := range intents {
		out.WriteString(a.run(intent))
	}
	return out.String()
}

func (a *app) run(intent nlp.Intent) string {
	timer := metrics.Global().Start(intent.Name)

	out, files, ok := a.dispatch(intent)
	timer.Stop(files, ok)
	return out
}

func (a *app) dispatch(intent nlp.Intent) (string, int, bool) {
	e := intent.Entities

	switch intent.Name {
	case nlp.IntentSearch:
		results, err := fsops.Search(fsops.CriteriaFromIntent(intent))
		if err != nil {
			return "search failed: " + err.Error() + "\n", 0, false
		}
		return a.renderer.SearchResults(results), len(results), true

	case nlp.IntentOrganize:
		dir := a.targetDir(e)
		strategy := organizer.StrategyType
		if e.OrgType != "" {
			strategy = organizer.Strategy(e.OrgType)
		}
		res := a.organizer.Organize(dir, strategy)
		return a.renderer.Result(res), res.OrganizedFiles, res.Success

	case nlp.IntentAnalyze:
		report, err := a.analyzer.AnalyzeDirectory(a.targetDir(e))
		if err != nil {
			return "analysis failed: " + err.Error() + "\n", 0, false
		}
		return a.renderer.Report(report), report.TotalFiles, true

	case nlp.IntentDelete:
		if e.Target == "" {
			v := a.processor.Validate(intent.OriginalText)
			return a.renderer.Validation(v), 0, false
		}
		res := fsops.Delete([]string{a.resolveTarget(e.Target, e.Path)})
		return a.renderer.OpResult("delete", res), len(res.Succeeded), len(res.Failed) == 0

	case nlp.IntentMove, nlp.IntentCopy:
		if e.Target == "" || e.Path == "" {
			v := a.processor.Validate(intent.OriginalText)
			return a.renderer.Validation(v), 0, false
		}
		source := a.resolveTarget(e.Target, "")
		var res fsops.OpResult
		verb := "move"
		if intent.Name == nlp.IntentCopy {
			verb = "copy"
			res = fsops.Copy([]string{source}, e.Path)
		} else {
			res = fsops.Move([]string{source}, e.Path)
		}
		return a.renderer.OpResult(verb, res), len(res.Succeeded), len(res.Failed) == 0

	case nlp.IntentCreate:
		if e.Target == "" {
			v := a.processor.Validate(intent.OriginalText)
			return a.renderer.Validation(v), 0, false
		}
		dir := a.resolveTarget(e.Target, e.Path)
		if err := fsops.Mkdir(dir); err != nil {
			return "create failed: " + err.Error() + "\n", 0, false
		}
		return "created " + dir + "\n", 1, true

	case nlp.IntentCompress:
		if e.Target == "" {
			v := a.processor.Validate(intent.OriginalText)
			return a.renderer.Validation(v), 0, false
		}
		source := a.resolveTarget(e.Target, e.Path)
		archive := source + ".zip"
		if err := fsops.Zip([]string{source}, archive); err != nil {
			return "compress failed: " + err.Error() + "\n", 0, false
		}
		return "created " + archive + "\n", 1, true

	case nlp.IntentExtract:
		if e.Target == "" {
			v := a.processor.Validate(intent.OriginalText)
			return a.renderer.Validation(v), 0, false
		}
		archive := a.resolveTarget(e.Target, e.Path)
		dest := strings.TrimSuffix(archive, filepath.Ext(archive))
		if err := fsops.Unzip(archive, dest); err != nil {
			return "extract failed: " + err.Error() + "\n", 0, false
		}
		return "extracted to " + dest + "\n", 1, true

	case nlp.IntentRename:
		// A rename needs an explicit placeholder pattern; point the
		// user at the dedicated command.
		return "use: fman rename <dir> --pattern '{name}_{index}{ext}'\n", 0, false

	case nlp.IntentUnknown:
		v := a.processor.Validate(intent.OriginalText)
		return a.renderer.Validation(v), 0, false

	default:
		if jsonOut {
			return asJSON(intent), 0, true
		}
		return a.renderer.Intent(intent), 0, true
	}
}

// targetDir picks the directory an intent operates on: the extracted
// path, else the working directory.
func (a *app) targetDir(e nlp.Entities) string {
	if e.Path != "" {
		return e.Path
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

// resolveTarget absolutizes a spoken target name against the extracted
// path or the working directory.
func (a *app) resolveTarget(target, base string) string {
	if filepath.IsAbs(target) {
		return target
	}
	if base == "" {
		base = a.targetDir(nlp.Entities{})
	}
	return filepath.Join(base, target)
}
