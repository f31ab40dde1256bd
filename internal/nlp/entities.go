package nlp

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/keiko/fman/internal/config"
)

// TimeRange bounds a modification time query. A nil end means the
// range is open on that side.
type TimeRange struct {
	From *time.Time `json:"from,omitempty"`
	To   *time.Time `json:"to,omitempty"`
}

// SizeBound bounds a file size query in bytes.
type SizeBound struct {
	Min *int64 `json:"min,omitempty"`
	Max *int64 `json:"max,omitempty"`
}

// Entities holds everything extracted from a command. A zero field
// means "not specified", never zero-as-value.
type Entities struct {
	FileType []string   `json:"file_type,omitempty"`
	Time     *TimeRange `json:"time_range,omitempty"`
	Size     *SizeBound `json:"size_constraint,omitempty"`
	Path     string     `json:"path,omitempty"`
	Keywords []string   `json:"keywords,omitempty"`
	Number   *int       `json:"number,omitempty"`
	Target   string     `json:"operation_target,omitempty"`
	OrgType  string     `json:"organization_type,omitempty"`
}

// Has reports whether the named entity was extracted.
func (e Entities) Has(name string) bool {
	switch name {
	case "file_type":
		return len(e.FileType) > 0
	case "time_range":
		return e.Time != nil
	case "size_constraint":
		return e.Size != nil
	case "path":
		return e.Path != ""
	case "keywords":
		return len(e.Keywords) > 0
	case "number":
		return e.Number != nil
	case "operation_target":
		return e.Target != ""
	case "organization_type":
		return e.OrgType != ""
	}
	return false
}

var (
	extTokenRe   = regexp.MustCompile(`\.(jpg|jpeg|png|gif|pdf|doc|docx|txt|mp4|avi|mp3|wav|zip|rar)\b`)
	sizeRe       = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(bytes|byte|字节|kb|mb|gb|tb|b)`)
	dateRangeRe  = regexp.MustCompile(`(\d{4}-\d{1,2}-\d{1,2})\s*(?:到|to|~)\s*(\d{4}-\d{1,2}-\d{1,2})`)
	isoDateRe    = regexp.MustCompile(`(\d{4})-(\d{1,2})-(\d{1,2})`)
	usDateRe     = regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{4})`)
	cnDateRe     = regexp.MustCompile(`(\d{4})年(\d{1,2})月(\d{1,2})日`)
	winPathRe    = regexp.MustCompile(`[a-zA-Z]:\\[^\s]*`)
	posixPathRe  = regexp.MustCompile(`/[^\s]*`)
	digitsRe     = regexp.MustCompile(`\b\d+\b`)
	tokenRe      = regexp.MustCompile(`[\p{L}\p{N}_]+`)
	quotedRe     = regexp.MustCompile(`["']([^"']+)["']`)
	namedAfterRe = []*regexp.Regexp{
		regexp.MustCompile(`叫做\s*([^\s，。]+)`),
		regexp.MustCompile(`名为\s*([^\s，。]+)`),
		regexp.MustCompile(`(?i)called\s+([^\s，。]+)`),
		regexp.MustCompile(`(?i)named\s+([^\s，。]+)`),
	}
)

// extractFileType resolves a category word (first matching category in
// table order) to its extension list, falling back to literal
// extension tokens like ".jpg".
func extractFileType(text string) []string {
	lower := strings.ToLower(text)

	for _, tm := range config.FileTypes {
		for _, syn := range tm.Synonyms {
			if strings.Contains(lower, syn) {
				return append([]string(nil), tm.Extensions...)
			}
		}
	}

	matches := extTokenRe.FindAllStringSubmatch(lower, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]struct{})
	var exts []string
	for _, m := range matches {
		if _, ok := seen[m[1]]; ok {
			continue
		}
		seen[m[1]] = struct{}{}
		exts = append(exts, m[1])
	}
	return exts
}

// parseTimePhrase resolves the first relative-time phrase in the text.
func parseTimePhrase(text string, now time.Time) (config.TimeExpression, bool) {
	lower := strings.ToLower(text)
	for _, te := range config.TimeExpressions {
		if strings.Contains(lower, te.Phrase) {
			return te, true
		}
	}
	return config.TimeExpression{}, false
}

// parseLiteralDate parses the first literal date in the text.
func parseLiteralDate(text string) (time.Time, bool) {
	if m := isoDateRe.FindStringSubmatch(text); m != nil {
		if t, ok := makeDate(m[1], m[2], m[3]); ok {
			return t, true
		}
	}
	if m := usDateRe.FindStringSubmatch(text); m != nil {
		if t, ok := makeDate(m[3], m[1], m[2]); ok {
			return t, true
		}
	}
	if m := cnDateRe.FindStringSubmatch(text); m != nil {
		if t, ok := makeDate(m[1], m[2], m[3]); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

func makeDate(y, mo, d string) (time.Time, bool) {
	year, _ := strconv.Atoi(y)
	month, _ := strconv.Atoi(mo)
	day, _ := strconv.Atoi(d)
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local), true
}

// extractTimeRange builds a modification-time range from relative
// phrases or literal dates. An explicit "YYYY-MM-DD 到 YYYY-MM-DD"
// range overrides everything else.
func extractTimeRange(text string, now time.Time) *TimeRange {
	var tr TimeRange

	if te, ok := parseTimePhrase(text, now); ok {
		from := now.AddDate(0, 0, -te.DaysAgo)
		tr.From = &from
		if te.Bounded {
			to := now.AddDate(0, 0, -te.DaysAgo)
			tr.To = &to
		}
	} else if d, ok := parseLiteralDate(text); ok {
		tr.From = &d
	}

	// Explicit date ranges take precedence over relative phrases.
	if m := dateRangeRe.FindStringSubmatch(text); m != nil {
		from, okFrom := parseLiteralDate(m[1])
		to, okTo := parseLiteralDate(m[2])
		if okFrom && okTo {
			tr.From = &from
			tr.To = &to
		}
	}

	if tr.From == nil && tr.To == nil {
		return nil
	}
	return &tr
}

// parseSizeString parses "10mb", "1.5 GB", "300 字节" into bytes.
func parseSizeString(text string) (int64, bool) {
	m := sizeRe.FindStringSubmatch(strings.ToLower(text))
	if m == nil {
		return 0, false
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	mult, ok := config.SizeUnits[m[2]]
	if !ok {
		mult = 1
	}
	return int64(value * float64(mult)), true
}

// extractSizeConstraint turns a size figure plus comparison words into
// a byte bound. Without a comparison word the query is approximate and
// gets a ±10% band.
func extractSizeConstraint(text string) *SizeBound {
	size, ok := parseSizeString(text)
	if !ok {
		return nil
	}

	lower := strings.ToLower(text)
	for _, w := range sizeMinWords {
		if strings.Contains(lower, w) {
			return &SizeBound{Min: &size}
		}
	}
	for _, w := range sizeMaxWords {
		if strings.Contains(lower, w) {
			return &SizeBound{Max: &size}
		}
	}

	min := int64(float64(size) * 0.9)
	max := int64(float64(size) * 1.1)
	return &SizeBound{Min: &min, Max: &max}
}

// folderWords maps folder names in either language to the keys of
// config.DefaultFolders, in fixed lookup order.
var folderWords = []struct {
	word string
	key  string
}{
	{"桌面", "desktop"},
	{"下载", "downloads"},
	{"文档", "documents"},
	{"图片", "pictures"},
	{"视频", "videos"},
	{"音乐", "music"},
	{"desktop", "desktop"},
	{"downloads", "downloads"},
	{"documents", "documents"},
	{"pictures", "pictures"},
	{"videos", "videos"},
	{"music", "music"},
}

// extractPath resolves a well-known folder name or a literal absolute
// path. Folder names win over path literals.
func extractPath(text string) string {
	lower := strings.ToLower(text)
	folders := config.DefaultFolders()

	for _, fw := range folderWords {
		if strings.Contains(lower, fw.word) {
			return folders[fw.key]
		}
	}

	if m := winPathRe.FindString(text); m != "" {
		return m
	}
	if m := posixPathRe.FindString(text); m != "" {
		return m
	}
	return ""
}

// extractKeywords tokenizes the text, drops stop words and tokens of
// two characters or fewer, and returns the remaining sorted set.
func extractKeywords(text string) []string {
	tokens := tokenRe.FindAllString(strings.ToLower(text), -1)

	seen := make(map[string]struct{})
	for _, tok := range tokens {
		if _, stop := config.StopWords[tok]; stop {
			continue
		}
		if len([]rune(tok)) <= 2 {
			continue
		}
		seen[tok] = struct{}{}
	}
	if len(seen) == 0 {
		return nil
	}

	keywords := make([]string, 0, len(seen))
	for k := range seen {
		keywords = append(keywords, k)
	}
	sort.Strings(keywords)
	return keywords
}

// chineseDigits is ordered; the first digit word found wins.
var chineseDigits = []struct {
	word  string
	value int
}{
	{"一", 1}, {"二", 2}, {"三", 3}, {"四", 4}, {"五", 5},
	{"六", 6}, {"七", 7}, {"八", 8}, {"九", 9}, {"十", 10},
	{"零", 0},
}

// extractNumber returns the first digit sequence, or the first spelled
// out Chinese digit.
func extractNumber(text string) *int {
	if m := digitsRe.FindString(text); m != "" {
		if n, err := strconv.Atoi(m); err == nil {
			return &n
		}
	}
	for _, cd := range chineseDigits {
		if strings.Contains(text, cd.word) {
			v := cd.value
			return &v
		}
	}
	return nil
}

// extractTarget finds the object of the operation: a quoted substring,
// or the text after a called/named marker.
func extractTarget(text string) string {
	if m := quotedRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	for _, re := range namedAfterRe {
		if m := re.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}
	return ""
}

// extractOrgType resolves the grouping strategy named in the text. The
// first strategy in table order with any synonym present wins.
func extractOrgType(text string) string {
	lower := strings.ToLower(text)
	for _, ot := range orgTypeTable {
		for _, syn := range ot.synonyms {
			if strings.Contains(lower, syn) {
				return ot.name
			}
		}
	}
	return ""
}
