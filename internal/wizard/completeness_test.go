package wizard

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckCompleteness_Complete(t *testing.T) {
	text := "1. 需求分析\n2. 系統設計"

	c := CheckCompleteness(text, text, TraditionalChineseVocabulary)

	assert.True(t, c.Complete)
	assert.Empty(t, c.Warning)
	assert.Equal(t, 2, c.OriginalPoints)
	assert.Equal(t, 2, c.OptimizedPoints)
	assert.Equal(t, 1.0, c.Ratio)
}

func TestCheckCompleteness_DroppedPoints(t *testing.T) {
	c := CheckCompleteness("1. a\n2. b\n3. c\n4. d", "just one line", TraditionalChineseVocabulary)

	assert.False(t, c.Complete)
	assert.Equal(t, 4, c.OriginalPoints)
	assert.Equal(t, 0, c.OptimizedPoints)
	assert.Equal(t, "原始內容有 4 個要點，優化後只有 0 個要點", c.Warning)
}

func TestCheckCompleteness_KeptEnoughPoints(t *testing.T) {
	original := "- a\n- b\n- c\n- d"
	optimized := "• a\n* b\n3. c\nplain"

	c := CheckCompleteness(original, optimized, TraditionalChineseVocabulary)

	assert.True(t, c.Complete)
	assert.Equal(t, 4, c.OriginalPoints)
	assert.Equal(t, 3, c.OptimizedPoints)
}

func TestCheckCompleteness_OrdinalPoints(t *testing.T) {
	c := CheckCompleteness("第一點：需求\n第二點：設計\n其他", "第一點：需求\n第二點：設計", TraditionalChineseVocabulary)

	assert.Equal(t, 2, c.OriginalPoints)
	assert.Equal(t, 2, c.OptimizedPoints)
}

func TestCheckCompleteness_Shortened(t *testing.T) {
	c := CheckCompleteness(strings.Repeat("字", 200), strings.Repeat("字", 50), TraditionalChineseVocabulary)

	assert.False(t, c.Complete)
	assert.Equal(t, 0.25, c.Ratio)
	assert.Equal(t, "優化後的內容明顯縮短，可能遺漏了部分要求", c.Warning)
}

func TestCheckCompleteness_ShortOriginalNotFlagged(t *testing.T) {
	c := CheckCompleteness(strings.Repeat("字", 80), "字", TraditionalChineseVocabulary)

	assert.True(t, c.Complete)
}

func TestCheckCompleteness_StructureLost(t *testing.T) {
	c := CheckCompleteness("首先做A，其次做B，最後做C，另外做D", "做A做B做C做D", TraditionalChineseVocabulary)

	assert.False(t, c.Complete)
	assert.Equal(t, "可能遺漏了原始內容的結構性要點", c.Warning)
}

func TestCheckCompleteness_AllReasons(t *testing.T) {
	original := "1. 首先確認需求\n2. 其次設計架構\n3. 最後撰寫測試\n" + strings.Repeat("補充內容", 30)

	c := CheckCompleteness(original, "簡短", TraditionalChineseVocabulary)

	assert.False(t, c.Complete)
	assert.Equal(t,
		"原始內容有 3 個要點，優化後只有 0 個要點；優化後的內容明顯縮短，可能遺漏了部分要求；可能遺漏了原始內容的結構性要點",
		c.Warning)
}

func TestCheckCompleteness_EmptyOriginal(t *testing.T) {
	c := CheckCompleteness("", "anything", TraditionalChineseVocabulary)

	assert.True(t, c.Complete)
	assert.Zero(t, c.Ratio)
}

func TestCheckCompleteness_English(t *testing.T) {
	original := "First, gather data. Second, clean it. Finally, report."

	c := CheckCompleteness(original, "Gather, clean and report the data.", EnglishVocabulary)

	assert.False(t, c.Complete)
	assert.Equal(t, "structural points of the original may be missing", c.Warning)
}

func TestTablesFor(t *testing.T) {
	m, v := TablesFor("en")
	assert.Equal(t, English.Fallback, m.Fallback)
	assert.Equal(t, EnglishVocabulary.WarningPrefix, v.WarningPrefix)

	m, v = TablesFor("zh-tw")
	assert.Equal(t, TraditionalChinese.Fallback, m.Fallback)
	assert.Equal(t, "⚠️ 建議檢查：", v.WarningPrefix)
}
