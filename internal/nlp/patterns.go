// Package nlp maps loosely structured text commands (mixed
// Chinese/English) to a discrete intent plus extracted entities.
// Everything here is rule-based: ordered regex tables and vocabulary
// lookups, no statistical model.
package nlp

import "regexp"

// Intent names.
const (
	IntentSearch   = "search"
	IntentMove     = "move"
	IntentCopy     = "copy"
	IntentDelete   = "delete"
	IntentCreate   = "create"
	IntentOrganize = "organize"
	IntentCompress = "compress"
	IntentExtract  = "extract"
	IntentAnalyze  = "analyze"
	IntentRename   = "rename"
	IntentUnknown  = "unknown"
)

// intentPatterns binds an intent to its trigger patterns.
type intentPatterns struct {
	name     string
	patterns []*regexp.Regexp
}

// intentTable is the ordered intent table. Order is the tie-break: when
// two intents reach the same score, the one declared first wins.
var intentTable = []intentPatterns{
	{IntentSearch, compileAll(
		`(找|搜索|查找|寻找|locate|find|search)`,
		`(显示|列出|show|list|display)`,
		`(在哪|where)`,
		`(有没有|是否存在|exist)`,
	)},
	{IntentMove, compileAll(
		`(移动|剪切|move|cut)`,
		`(搬到|移到|move.*to)`,
		`(转移|transfer)`,
	)},
	{IntentCopy, compileAll(
		`(复制|拷贝|copy|duplicate)`,
		`(备份|backup)`,
		`(克隆|clone)`,
	)},
	{IntentDelete, compileAll(
		`(删除|移除|remove|delete|del)`,
		`(清理|清除|clean|clear)`,
		`(丢弃|discard)`,
	)},
	{IntentCreate, compileAll(
		`(创建|新建|建立|create|make|new)`,
		`(生成|generate)`,
		`(添加|add)`,
	)},
	{IntentOrganize, compileAll(
		`(整理|组织|organize|sort|arrange)`,
		`(分类|classify|categorize)`,
		`(归档|archive)`,
	)},
	{IntentCompress, compileAll(
		`(压缩|打包|zip|compress|pack)`,
		`(归档|archive.*zip)`,
	)},
	{IntentExtract, compileAll(
		`(解压|解压缩|unzip|extract|unpack)`,
		`(展开|expand)`,
	)},
	{IntentAnalyze, compileAll(
		`(分析|analyze|analysis)`,
		`(统计|statistics|stats)`,
		`(报告|report)`,
	)},
	{IntentRename, compileAll(
		`(重命名|改名|rename)`,
		`(更名|change.*name)`,
	)},
}

func compileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(`(?i)` + e)
	}
	return out
}

// Organization strategies recognized by the organization_type extractor.
type orgTypeVocab struct {
	name     string
	synonyms []string
}

// orgTypeTable is ordered: the first strategy with any synonym present
// in the text wins.
var orgTypeTable = []orgTypeVocab{
	{"type", []string{"类型", "种类", "type", "category"}},
	{"date", []string{"日期", "时间", "date", "time"}},
	{"size", []string{"大小", "尺寸", "size"}},
	{"extension", []string{"扩展名", "后缀", "extension", "suffix"}},
	{"name", []string{"名称", "文件名", "name", "filename"}},
}

// Comparison vocabularies for the size extractor.
var (
	sizeMinWords = []string{"大于", "超过", "大过", "more than", "larger than", ">"}
	sizeMaxWords = []string{"小于", "少于", "小过", "less than", "smaller than", "<"}
)

// entityRule names the entities an intent needs before it can be
// executed sensibly. With anyOf set, a single present entity is enough.
type entityRule struct {
	names []string
	anyOf bool
}

var requiredEntities = map[string]entityRule{
	IntentSearch:   {names: []string{"keywords", "file_type", "path"}, anyOf: true},
	IntentMove:     {names: []string{"operation_target", "path"}},
	IntentCopy:     {names: []string{"operation_target", "path"}},
	IntentDelete:   {names: []string{"operation_target"}},
	IntentOrganize: {names: []string{"path", "organization_type"}},
}

// suggestionFamily groups canned example commands behind trigger words.
type suggestionFamily struct {
	triggers  []string
	templates []string
}

var suggestionFamilies = []suggestionFamily{
	{
		triggers: []string{"搜索", "搜", "查找", "找", "search", "find"},
		templates: []string{
			"搜索桌面上的图片文件",
			"搜索大于10MB的视频文件",
			"搜索上周修改的文档",
			"搜索包含'报告'的PDF文件",
		},
	},
	{
		triggers: []string{"整理", "组织", "分类", "organize", "sort"},
		templates: []string{
			"按类型整理当前目录",
			"按日期整理下载文件夹",
			"按大小整理图片文件",
			"整理桌面文件",
		},
	},
	{
		triggers: []string{"删除", "清理", "delete", "remove", "clean"},
		templates: []string{
			"删除空文件夹",
			"删除大于100MB的临时文件",
			"删除重复文件",
			"删除过期文件",
		},
	},
	{
		triggers: []string{"压缩", "打包", "compress", "zip"},
		templates: []string{
			"压缩选中的文件为backup.zip",
			"压缩图片文件夹",
			"压缩文档文件为archive.zip",
		},
	},
}

var genericSuggestions = []string{
	"搜索文件：搜索桌面上的图片",
	"整理文件：按类型整理当前目录",
	"删除文件：删除空文件夹",
	"压缩文件：压缩选中文件为backup.zip",
	"重命名：批量重命名文件为新格式",
}

// batchSeparators split a compound command into independent parts.
var batchSeparators = []string{"然后", "接着", "再", "and then", "then", ";", "，"}

// AllSuggestions returns every canned example command, for interactive
// completion.
func AllSuggestions() []string {
	var out []string
	for _, fam := range suggestionFamilies {
		out = append(out, fam.templates...)
	}
	return append(out, genericSuggestions...)
}
