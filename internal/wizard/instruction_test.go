package wizard

import (
	"strings"
	"testing"

	"github.com/HartBrook/promptwizard/internal/catalog"
	"github.com/HartBrook/promptwizard/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildInstruction(t *testing.T) {
	out, err := BuildInstruction(Request{
		Text:       "  寫一個排序函式\n1. 支援泛型\n2. 附上測試  ",
		Category:   "code",
		Complexity: "expert",
		Target:     "claude",
		Style:      "concise",
		Language:   "en",
	})
	require.NoError(t, err)

	code, err := catalog.LookupCategory("code")
	require.NoError(t, err)
	expert, _ := catalog.LookupComplexity("expert")
	claude, _ := catalog.LookupTarget("claude")
	concise, _ := catalog.LookupStyle("concise")
	en, _ := catalog.LookupLanguage("en")

	assert.True(t, strings.HasPrefix(out, "你是一位專業的AI提示詞優化專家，專精於"+code.Title+"。"))
	assert.Contains(t, out, code.Expertise)
	assert.Contains(t, out, claude.Description)
	assert.Contains(t, out, "- 複雜度等級："+expert.Description)
	assert.Contains(t, out, "- 表達風格："+concise.Description)
	assert.Contains(t, out, "- 語言偏好："+en.Description)
	assert.Contains(t, out, "不要遺漏任何部分")
	assert.Contains(t, out, "保持原有結構完整性")
	assert.Contains(t, out, "1. **完整優化後的提示詞**")
	assert.Contains(t, out, "\n\"\"\"\n寫一個排序函式\n1. 支援泛型\n2. 附上測試\n\"\"\"\n")
}

func TestBuildInstruction_Defaults(t *testing.T) {
	withDefaults, err := BuildInstruction(Request{Text: "畫一隻貓"})
	require.NoError(t, err)

	explicit, err := BuildInstruction(Request{
		Text:       "畫一隻貓",
		Category:   catalog.DefaultCategory,
		Complexity: catalog.DefaultComplexity,
		Target:     catalog.DefaultTarget,
		Style:      catalog.DefaultStyle,
		Language:   catalog.DefaultLanguage,
	})
	require.NoError(t, err)

	assert.Equal(t, explicit, withDefaults)
}

func TestBuildInstruction_Empty(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t\n"} {
		_, err := BuildInstruction(Request{Text: text})
		assert.True(t, errors.Is(err, errors.ErrPromptEmpty), "text %q", text)
	}
}

func TestBuildInstruction_UnknownOption(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		kind string
	}{
		{"category", Request{Text: "x", Category: "music"}, "category"},
		{"complexity", Request{Text: "x", Complexity: "easy"}, "complexity"},
		{"target", Request{Text: "x", Target: "llama"}, "target model"},
		{"style", Request{Text: "x", Style: "baroque"}, "style"},
		{"language", Request{Text: "x", Language: "fr"}, "language"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildInstruction(tt.req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrUnknownOption))
			assert.Contains(t, err.Error(), "unknown "+tt.kind)
		})
	}
}
