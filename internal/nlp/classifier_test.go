package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyCanonicalPhrases(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"帮我搜索桌面上的图片", IntentSearch},
		{"find my tax documents", IntentSearch},
		{"where is the invoice", IntentSearch},
		{"把这些文件移动到下载", IntentMove},
		{"transfer the videos", IntentMove},
		{"复制这个文件夹", IntentCopy},
		{"backup the project", IntentCopy},
		{"删除临时文件", IntentDelete},
		{"discard the drafts", IntentDelete},
		{"新建一个文件夹", IntentCreate},
		{"generate a report folder", IntentCreate},
		{"按类型整理当前目录", IntentOrganize},
		{"categorize my downloads", IntentOrganize},
		{"压缩这些图片", IntentCompress},
		{"extract the files", IntentExtract},
		{"展开这个目录", IntentExtract},
		{"分析这个目录", IntentAnalyze},
		{"show me the statistics", IntentAnalyze},
		{"重命名这些照片", IntentRename},
	}

	for _, tt := range tests {
		name, confidence := Classify(tt.text)
		assert.Equal(t, tt.want, name, "text %q", tt.text)
		assert.Greater(t, confidence, 0.0, "text %q", tt.text)
	}
}

func TestClassifyUnknown(t *testing.T) {
	for _, text := range []string{"", "the weather is nice today maybe", "qwerty asdf"} {
		name, confidence := Classify(text)
		assert.Equal(t, IntentUnknown, name, "text %q", text)
		assert.Equal(t, 0.0, confidence, "text %q", text)
	}
}

func TestClassifyPrefersProportionalMatch(t *testing.T) {
	// "整理" and "分类" hit two of organize's three patterns; score
	// 4/3 clamps to 1.0 and beats any single-pattern hit.
	name, confidence := Classify("整理并分类这些文件")
	assert.Equal(t, IntentOrganize, name)
	assert.Equal(t, 1.0, confidence)
}

func TestClassifyConfidenceClamped(t *testing.T) {
	// All three delete patterns matched: 9/3 = 3, clamped to 1.
	_, confidence := Classify("删除并清理然后丢弃这些文件")
	assert.LessOrEqual(t, confidence, 1.0)
}

func TestClassifyTieBreakIsTableOrder(t *testing.T) {
	// "压缩" and "重命名" each hit one of their intent's two
	// patterns, scoring 0.5 apiece; compress is declared first in the
	// table and wins the tie.
	name, confidence := Classify("压缩并重命名")
	assert.Equal(t, IntentCompress, name)
	assert.Equal(t, 0.5, confidence)
}
