// Package templates provides the static starter prompts offered per category.
package templates

import (
	"regexp"

	"github.com/HartBrook/promptwizard/internal/errors"
)

// Template is a read-only starter prompt with [placeholder] markers.
type Template struct {
	ID          string
	Category    string
	Title       string
	Description string
	Body        string
	Tags        []string
}

var builtin = []Template{
	{
		ID:          "code-debug",
		Category:    "code",
		Title:       "程式碼除錯",
		Description: "幫助診斷和修復程式碼問題",
		Body:        "請幫我分析以下程式碼的問題並提供修復方案：[程式碼]",
		Tags:        []string{"除錯", "問題診斷", "修復"},
	},
	{
		ID:          "code-review",
		Category:    "code",
		Title:       "程式碼審查",
		Description: "進行專業的程式碼品質評估",
		Body:        "請對以下程式碼進行全面的審查，包括效能、安全性、可讀性和最佳實踐：[程式碼]",
		Tags:        []string{"審查", "品質", "最佳實踐"},
	},
	{
		ID:          "code-optimize",
		Category:    "code",
		Title:       "效能優化",
		Description: "提升程式碼執行效率",
		Body:        "請分析以下程式碼的效能瓶頸並提供優化建議：[程式碼]",
		Tags:        []string{"效能", "優化", "瓶頸分析"},
	},
	{
		ID:          "art-portrait",
		Category:    "art",
		Title:       "人物肖像",
		Description: "創作專業人物肖像畫",
		Body:        "創作一幅[風格]風格的人物肖像，[詳細描述]，高解析度，專業品質",
		Tags:        []string{"肖像", "人物", "專業"},
	},
	{
		ID:          "art-landscape",
		Category:    "art",
		Title:       "風景畫作",
		Description: "繪製美麗的自然風景",
		Body:        "繪製一幅[季節/時間]的[地點]風景畫，[風格描述]，注重光線和色彩",
		Tags:        []string{"風景", "自然", "光線"},
	},
	{
		ID:          "art-concept",
		Category:    "art",
		Title:       "概念設計",
		Description: "創意概念藝術設計",
		Body:        "設計[主題]的概念藝術，[風格要求]，富有創意和想像力",
		Tags:        []string{"概念", "創意", "設計"},
	},
	{
		ID:          "ui-mobile",
		Category:    "ui",
		Title:       "移動端界面",
		Description: "設計現代移動應用界面",
		Body:        "設計一個[應用類型]的移動端界面，簡潔現代，注重使用者體驗",
		Tags:        []string{"移動端", "UX", "簡潔"},
	},
	{
		ID:          "ui-dashboard",
		Category:    "ui",
		Title:       "數據儀表板",
		Description: "創建數據視覺化儀表板",
		Body:        "設計一個[數據類型]的儀表板界面，清晰的數據呈現，專業外觀",
		Tags:        []string{"數據", "儀表板", "視覺化"},
	},
	{
		ID:          "ui-landing",
		Category:    "ui",
		Title:       "著陸頁設計",
		Description: "設計吸引人的網站著陸頁",
		Body:        "設計[產品/服務]的著陸頁，吸引人的視覺設計，高轉換率",
		Tags:        []string{"著陸頁", "轉換", "視覺"},
	},
}

// ForCategory returns the templates of a category in display order.
func ForCategory(category string) []Template {
	var out []Template
	for _, t := range builtin {
		if t.Category == category {
			out = append(out, t.clone())
		}
	}
	return out
}

// All returns every template in display order.
func All() []Template {
	out := make([]Template, 0, len(builtin))
	for _, t := range builtin {
		out = append(out, t.clone())
	}
	return out
}

// Find returns the template with the given id.
func Find(id string) (Template, error) {
	for _, t := range builtin {
		if t.ID == id {
			return t.clone(), nil
		}
	}
	return Template{}, errors.TemplateNotFound(id)
}

var placeholderPattern = regexp.MustCompile(`\[([^\[\]]+)\]`)

// Placeholders returns the names inside [..] markers in the body, in order.
func (t Template) Placeholders() []string {
	matches := placeholderPattern.FindAllStringSubmatch(t.Body, -1)
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m[1])
	}
	return names
}

func (t Template) clone() Template {
	t.Tags = append([]string(nil), t.Tags...)
	return t
}
