package config

// Category identifies a file type group.
type Category string

// File type categories. CategoryOther is the catch-all for extensions
// not present in any mapping; the organizer never creates a directory
// for it.
const (
	CategoryImages        Category = "images"
	CategoryVideos        Category = "videos"
	CategoryDocuments     Category = "documents"
	CategorySpreadsheets  Category = "spreadsheets"
	CategoryPresentations Category = "presentations"
	CategoryAudio         Category = "audio"
	CategoryCode          Category = "code"
	CategoryArchives      Category = "archives"
	CategoryOther         Category = "other"
)

// TypeMapping binds a category to its extensions and the words that may
// name it in a command (Chinese and English).
type TypeMapping struct {
	Category   Category
	Label      string
	Extensions []string
	Synonyms   []string
}

// FileTypes is the ordered category table. Order is significant: the
// file_type extractor returns the first category whose synonym appears
// in the text, and extension lookup returns the first category listing
// the extension.
var FileTypes = []TypeMapping{
	{
		Category:   CategoryImages,
		Label:      "images",
		Extensions: []string{"jpg", "jpeg", "png", "gif", "bmp", "svg", "webp", "tiff"},
		Synonyms:   []string{"图片", "图像", "照片", "picture", "pictures", "image", "images", "photo", "photos"},
	},
	{
		Category:   CategoryVideos,
		Label:      "videos",
		Extensions: []string{"mp4", "avi", "mkv", "mov", "wmv", "flv", "webm", "m4v"},
		Synonyms:   []string{"视频", "影片", "video", "videos", "movie", "movies"},
	},
	{
		Category:   CategoryDocuments,
		Label:      "documents",
		Extensions: []string{"doc", "docx", "pdf", "txt", "rtf", "odt", "pages"},
		Synonyms:   []string{"文档", "文件档", "document", "documents"},
	},
	{
		Category:   CategorySpreadsheets,
		Label:      "spreadsheets",
		Extensions: []string{"xls", "xlsx", "csv", "ods", "numbers"},
		Synonyms:   []string{"表格", "spreadsheet", "spreadsheets"},
	},
	{
		Category:   CategoryPresentations,
		Label:      "presentations",
		Extensions: []string{"ppt", "pptx", "odp", "key"},
		Synonyms:   []string{"演示", "幻灯片", "presentation", "presentations", "slides"},
	},
	{
		Category:   CategoryAudio,
		Label:      "audio",
		Extensions: []string{"mp3", "wav", "flac", "aac", "ogg", "wma", "m4a"},
		Synonyms:   []string{"音频", "音乐", "audio", "music", "song", "songs"},
	},
	{
		Category:   CategoryCode,
		Label:      "code",
		Extensions: []string{"py", "js", "html", "css", "java", "cpp", "c", "php", "rb", "go"},
		Synonyms:   []string{"代码", "源码", "code", "source"},
	},
	{
		Category:   CategoryArchives,
		Label:      "archives",
		Extensions: []string{"zip", "rar", "7z", "tar", "gz", "bz2"},
		Synonyms:   []string{"压缩", "压缩包", "archive", "archives"},
	},
}

// CategoryForExtension returns the category owning the extension
// (without the leading dot), or CategoryOther.
func CategoryForExtension(ext string) Category {
	for _, tm := range FileTypes {
		for _, e := range tm.Extensions {
			if e == ext {
				return tm.Category
			}
		}
	}
	return CategoryOther
}

// LabelForCategory returns the directory label for a category.
func LabelForCategory(cat Category) string {
	for _, tm := range FileTypes {
		if tm.Category == cat {
			return tm.Label
		}
	}
	return string(CategoryOther)
}

// TimeExpression maps a relative-time phrase to how many days ago it
// starts, and whether the phrase pins an explicit upper bound.
type TimeExpression struct {
	Phrase  string
	DaysAgo int
	Bounded bool
}

// TimeExpressions is the ordered relative-time vocabulary. Only
// exact-day phrases are bounded; open-ended phrases (last month, last
// year) leave the range open at the top.
var TimeExpressions = []TimeExpression{
	{Phrase: "今天", DaysAgo: 0, Bounded: true},
	{Phrase: "昨天", DaysAgo: 1, Bounded: true},
	{Phrase: "前天", DaysAgo: 2, Bounded: false},
	{Phrase: "上周", DaysAgo: 7, Bounded: true},
	{Phrase: "上个月", DaysAgo: 30, Bounded: false},
	{Phrase: "去年", DaysAgo: 365, Bounded: false},
	{Phrase: "today", DaysAgo: 0, Bounded: true},
	{Phrase: "yesterday", DaysAgo: 1, Bounded: true},
	{Phrase: "last week", DaysAgo: 7, Bounded: true},
	{Phrase: "last month", DaysAgo: 30, Bounded: false},
	{Phrase: "last year", DaysAgo: 365, Bounded: false},
}

// SizeUnits maps a unit token to its byte multiplier. The bare "b",
// "byte", "bytes" and the Chinese 字节 all share a multiplier of 1.
var SizeUnits = map[string]int64{
	"b":     1,
	"byte":  1,
	"bytes": 1,
	"字节":    1,
	"kb":    1024,
	"mb":    1024 * 1024,
	"gb":    1024 * 1024 * 1024,
	"tb":    1024 * 1024 * 1024 * 1024,
}

// StopWords are tokens dropped from keyword extraction.
var StopWords = map[string]struct{}{
	"帮我": {}, "请": {}, "把": {}, "将": {}, "所有": {}, "的": {},
	"文件": {}, "找到": {}, "查找": {}, "搜索": {},
	"help": {}, "me": {}, "please": {}, "all": {}, "the": {},
	"file": {}, "files": {}, "find": {}, "search": {},
	"a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "in": {},
	"on": {}, "at": {}, "to": {}, "for": {}, "of": {}, "with": {},
}

// ProtectedPaths are prefixes no mutating operation may touch.
var ProtectedPaths = []string{
	"/System",
	"/Windows",
	"/Program Files",
	"/Program Files (x86)",
	`C:\Windows`,
	`C:\Program Files`,
	`C:\Program Files (x86)`,
}

// MaxSearchResults caps the number of files a search returns. The
// config file may raise or lower it.
var MaxSearchResults = 1000
