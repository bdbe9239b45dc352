// Package wizard turns a raw prompt into an optimized one: it builds the
// instruction sent to Gemini, extracts the optimized text and tips from the
// reply and flags content that may have been dropped.
package wizard

import (
	"strings"
	"text/template"

	"github.com/HartBrook/promptwizard/internal/catalog"
	"github.com/HartBrook/promptwizard/internal/errors"
)

// Request is one optimization request. Empty selectors take the catalog defaults.
type Request struct {
	Text       string
	Category   string
	Complexity string
	Target     string
	Style      string
	Language   string
}

// withDefaults returns r with the text trimmed and empty selectors filled.
func (r Request) withDefaults() Request {
	r.Text = strings.TrimSpace(r.Text)
	if r.Category == "" {
		r.Category = catalog.DefaultCategory
	}
	if r.Complexity == "" {
		r.Complexity = catalog.DefaultComplexity
	}
	if r.Target == "" {
		r.Target = catalog.DefaultTarget
	}
	if r.Style == "" {
		r.Style = catalog.DefaultStyle
	}
	if r.Language == "" {
		r.Language = catalog.DefaultLanguage
	}
	return r
}

// Sentinel delimits the original prompt inside the instruction.
const Sentinel = `"""`

var instructionTemplate = template.Must(template.New("instruction").Parse(`你是一位專業的AI提示詞優化專家，專精於{{.Title}}。

領域專業背景：
{{.Expertise}}

目標AI模型特性：
{{.Target}}

優化要求：
- 複雜度等級：{{.Complexity}}
- 表達風格：{{.Style}}
- 語言偏好：{{.Language}}

**重要指示：請完整處理用戶提供的所有內容，包括條列式的每一個要點。不要遺漏任何部分。**

請根據以下原則優化用戶的提示詞：
1. 增強專業性和技術精確度
2. 確保指令清晰具體
3. 加入領域專業術語和最佳實踐
4. 提升輸出品質的可預期性
5. 符合{{.Title}}的專業標準
6. **保持原有結構完整性**（如果是條列式，請保持條列式並優化每一點）
7. **確保所有要點都被處理和優化**

如果原始提示詞包含多個要點或條列項目，請：
- 逐一分析並優化每個要點
- 保持原有的結構層次
- 確保每個要點都得到專業強化
- 不要合併或省略任何要點

請提供：
1. **完整優化後的提示詞**（保持所有原有要點，逐一強化）
2. **具體改進說明**（針對每個優化點的解釋）
3. **結構化建議**（如何讓提示詞更有效）

原始提示詞：
{{.Sentinel}}
{{.Text}}
{{.Sentinel}}

請確保優化結果包含原始提示詞的所有內容要點，一個都不能遺漏。`))

type instructionData struct {
	Title      string
	Expertise  string
	Target     string
	Complexity string
	Style      string
	Language   string
	Sentinel   string
	Text       string
}

// BuildInstruction renders the composite instruction for req. It fails
// with PROMPT_EMPTY for blank text and UNKNOWN_OPTION for unknown selectors.
func BuildInstruction(req Request) (string, error) {
	req = req.withDefaults()
	if req.Text == "" {
		return "", errors.PromptEmpty()
	}

	category, err := catalog.LookupCategory(req.Category)
	if err != nil {
		return "", err
	}
	complexity, err := catalog.LookupComplexity(req.Complexity)
	if err != nil {
		return "", err
	}
	target, err := catalog.LookupTarget(req.Target)
	if err != nil {
		return "", err
	}
	style, err := catalog.LookupStyle(req.Style)
	if err != nil {
		return "", err
	}
	lang, err := catalog.LookupLanguage(req.Language)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	err = instructionTemplate.Execute(&b, instructionData{
		Title:      category.Title,
		Expertise:  category.Expertise,
		Target:     target.Description,
		Complexity: complexity.Description,
		Style:      style.Description,
		Language:   lang.Description,
		Sentinel:   Sentinel,
		Text:       req.Text,
	})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}
