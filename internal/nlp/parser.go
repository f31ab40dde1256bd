package nlp

import (
	"strings"
	"time"

	"github.com/keiko/fman/internal/logging"
)

// Intent is the structured result of parsing one command.
type Intent struct {
	Name         string   `json:"intent"`
	Confidence   float64  `json:"confidence"`
	Entities     Entities `json:"entities"`
	OriginalText string   `json:"original_text"`
}

// Validation is the result of checking a command before execution.
type Validation struct {
	Valid       bool     `json:"valid"`
	Confidence  float64  `json:"confidence"`
	Warnings    []string `json:"warnings"`
	Suggestions []string `json:"suggestions"`
}

// Processor parses natural-language file commands.
type Processor struct {
	log      *logging.Logger
	recovery *logging.RecoveryHandler
	now      func() time.Time
}

// NewProcessor creates a command processor.
func NewProcessor() *Processor {
	return &Processor{
		log:      logging.New("nlp"),
		recovery: logging.NewRecoveryHandler("extractor"),
		now:      time.Now,
	}
}

// Parse classifies the text and runs every entity extractor over it.
// Extractors are independent: a failure in one is logged and the rest
// still run.
func (p *Processor) Parse(text string) Intent {
	text = strings.TrimSpace(text)

	name, confidence := Classify(text)

	var ents Entities
	now := p.now()

	extractors := []struct {
		name string
		run  func()
	}{
		{"file_type", func() { ents.FileType = extractFileType(text) }},
		{"time_range", func() { ents.Time = extractTimeRange(text, now) }},
		{"size_constraint", func() { ents.Size = extractSizeConstraint(text) }},
		{"path", func() { ents.Path = extractPath(text) }},
		{"keywords", func() { ents.Keywords = extractKeywords(text) }},
		{"number", func() { ents.Number = extractNumber(text) }},
		{"operation_target", func() { ents.Target = extractTarget(text) }},
		{"organization_type", func() { ents.OrgType = extractOrgType(text) }},
	}
	for _, ex := range extractors {
		p.recovery.Wrap(ex.run)
	}

	p.log.Debug("parsed", map[string]any{
		"intent":     name,
		"confidence": confidence,
	})

	return Intent{
		Name:         name,
		Confidence:   confidence,
		Entities:     ents,
		OriginalText: text,
	}
}

// Validate parses the text and flags anything that would make the
// command ambiguous or dangerous to execute.
func (p *Processor) Validate(text string) Validation {
	intent := p.Parse(text)

	v := Validation{
		Valid:       true,
		Confidence:  intent.Confidence,
		Warnings:    []string{},
		Suggestions: []string{},
	}

	if intent.Confidence < 0.3 {
		v.Warnings = append(v.Warnings, "command intent is unclear")
		v.Suggestions = append(v.Suggestions, p.Suggest(text)...)
	}

	if rule, ok := requiredEntities[intent.Name]; ok {
		var missing []string
		for _, name := range rule.names {
			if !intent.Entities.Has(name) {
				missing = append(missing, name)
			}
		}
		unmet := len(missing) > 0
		if rule.anyOf {
			unmet = len(missing) == len(rule.names)
		}
		if unmet {
			v.Warnings = append(v.Warnings, "missing required details: "+strings.Join(missing, ", "))
		}
	}

	// Destructive commands must name what they destroy.
	if intent.Name == IntentDelete && intent.Entities.Target == "" {
		v.Warnings = append(v.Warnings, "delete requires an explicit target")
	}

	v.Valid = len(v.Warnings) == 0
	return v
}

// Suggest returns up to five example commands matching the partial
// input, falling back to a generic list.
func (p *Processor) Suggest(partial string) []string {
	lower := strings.ToLower(partial)

	var suggestions []string
	for _, fam := range suggestionFamilies {
		for _, trig := range fam.triggers {
			if strings.Contains(lower, trig) {
				suggestions = append(suggestions, fam.templates...)
				break
			}
		}
	}

	if len(suggestions) == 0 {
		suggestions = append(suggestions, genericSuggestions...)
	}
	if len(suggestions) > 5 {
		suggestions = suggestions[:5]
	}
	return suggestions
}

// SplitBatch splits a compound command on connective words and parses
// each part, keeping only intents with some confidence.
func (p *Processor) SplitBatch(text string) []Intent {
	parts := []string{text}
	for _, sep := range batchSeparators {
		var next []string
		for _, part := range parts {
			next = append(next, strings.Split(part, sep)...)
		}
		parts = next
	}

	var intents []Intent
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		intent := p.Parse(part)
		if intent.Confidence > 0.2 {
			intents = append(intents, intent)
		}
	}
	return intents
}

// ContextSuggestions proposes commands based on where the user is and
// what they did last.
func (p *Processor) ContextSuggestions(currentDir string, recent []string) []string {
	var suggestions []string

	switch {
	case strings.Contains(currentDir, "Desktop") || strings.Contains(currentDir, "桌面"):
		suggestions = append(suggestions,
			"整理桌面文件按类型分类",
			"清理桌面上的临时文件",
			"搜索桌面上的重要文档",
		)
	case strings.Contains(currentDir, "Downloads") || strings.Contains(currentDir, "下载"):
		suggestions = append(suggestions,
			"整理下载文件夹",
			"删除下载的临时文件",
			"按日期归档下载文件",
		)
	}

	if len(recent) > 0 {
		last := strings.ToLower(recent[len(recent)-1])
		if strings.Contains(last, "搜索") || strings.Contains(last, "search") {
			suggestions = append(suggestions, "对搜索结果进行批量操作")
		} else if strings.Contains(last, "整理") || strings.Contains(last, "organize") {
			suggestions = append(suggestions, "清理整理过程中产生的空文件夹")
		}
	}

	if len(suggestions) > 3 {
		suggestions = suggestions[:3]
	}
	return suggestions
}
