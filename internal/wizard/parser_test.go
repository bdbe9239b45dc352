package wizard

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseResponse_OptimizedHeader(t *testing.T) {
	reply := "優化後的提示詞：\n請撰寫一個 Go 函式\n並為它加上單元測試"

	result := ParseResponse(reply, TraditionalChinese)

	assert.Equal(t, "請撰寫一個 Go 函式\n並為它加上單元測試", result.Optimized)
	assert.Empty(t, result.Tips)
	assert.Equal(t, TraditionalChinese.Improvements, result.Improvements)
}

func TestParseResponse_BodySkipsLabelsAndBullets(t *testing.T) {
	reply := "**完整優化版本**\n角色：資深工程師\n請檢查以下程式碼\n- 列點內容\n* 另一點\n• 第三點\n並回報問題"

	result := ParseResponse(reply, TraditionalChinese)

	assert.Equal(t, "請檢查以下程式碼\n並回報問題", result.Optimized)
}

func TestParseResponse_LongestParagraphFallback(t *testing.T) {
	long := strings.Repeat("畫", 150)
	short := strings.Repeat("貓", 40)

	result := ParseResponse(short+"\n\n"+long, TraditionalChinese)

	assert.Equal(t, long, result.Optimized)
}

func TestParseResponse_LongestSkipsTipParagraphs(t *testing.T) {
	tipsLike := "建議" + strings.Repeat("多", 200)
	plain := strings.Repeat("好", 120)

	result := ParseResponse(tipsLike+"\n\n"+plain, TraditionalChinese)

	assert.Equal(t, plain, result.Optimized)
}

func TestParseResponse_TipsAnywhere(t *testing.T) {
	reply := strings.Join([]string{
		"改進說明：\n1. 加入明確的輸入輸出格式要求\n2. 太短\n- 指定使用的程式語言與版本資訊",
		"優化後的提示詞\n請撰寫排序函式",
		"結構化建議\n• 將需求拆成編號清單以利逐項檢查",
	}, "\n\n")

	result := ParseResponse(reply, TraditionalChinese)

	assert.Equal(t, "請撰寫排序函式", result.Optimized)
	assert.Equal(t, []string{
		"加入明確的輸入輸出格式要求",
		"指定使用的程式語言與版本資訊",
		"將需求拆成編號清單以利逐項檢查",
	}, result.Tips)
}

func TestParseResponse_TipsCapped(t *testing.T) {
	var b strings.Builder
	b.WriteString("建議事項")
	for i := 0; i < 8; i++ {
		b.WriteString("\n- 這是一條足夠長的改進建議內容")
	}

	result := ParseResponse(b.String(), TraditionalChinese)

	assert.Len(t, result.Tips, MaxTips)
}

func TestParseResponse_HeaderSeenSkipsLongestFallback(t *testing.T) {
	long := strings.Repeat("字", 60) + "。" + strings.Repeat("詞", 60) + "。"
	reply := "優化後的版本\n- 列點\n\n" + long

	result := ParseResponse(reply, TraditionalChinese)

	assert.Equal(t, "優化後的版本 - 列點 "+strings.Repeat("字", 60)+"。"+strings.Repeat("詞", 60)+"。", result.Optimized)
}

func TestParseResponse_SentenceFallback(t *testing.T) {
	reply := "This is the first sentence of reasonable length. Short!\n\n" +
		"Here comes the second long enough sentence? And the third sentence is also long.\n\n" +
		"The fourth sentence should never appear here."

	result := ParseResponse(reply, TraditionalChinese)

	assert.Equal(t,
		"This is the first sentence of reasonable length。 Here comes the second long enough sentence。 And the third sentence is also long。",
		result.Optimized)
}

func TestParseResponse_FallbackMessage(t *testing.T) {
	for _, reply := range []string{"", "   ", "好", "短句。短句。"} {
		result := ParseResponse(reply, TraditionalChinese)
		assert.Equal(t, "優化處理中遇到問題，請重試或調整提示詞內容。", result.Optimized, "reply %q", reply)
		assert.NotNil(t, result.Tips)
	}
}

func TestParseResponse_English(t *testing.T) {
	reply := "Optimized Prompt\nWrite a Go function that sorts integers.\n\nSuggestions:\n1. Specify the Go version explicitly\n2. Too short"

	result := ParseResponse(reply, English)

	assert.Equal(t, "Write a Go function that sorts integers.", result.Optimized)
	assert.Equal(t, []string{"Specify the Go version explicitly"}, result.Tips)
	assert.Equal(t, English.Improvements, result.Improvements)
}

func TestParseResponse_ImprovementsAreCopies(t *testing.T) {
	result := ParseResponse("好", TraditionalChinese)
	result.Improvements[0] = "changed"

	assert.Equal(t, "使用 Gemini 1.5 Flash AI 進行專業優化", TraditionalChinese.Improvements[0])
}
