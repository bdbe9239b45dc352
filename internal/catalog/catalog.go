// Package catalog holds the selectable options for an optimization run and
// the descriptions that are rendered into the instruction sent to Gemini.
package catalog

import (
	"github.com/HartBrook/promptwizard/internal/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Defaults used when a flag or setting is left empty.
const (
	DefaultCategory   = "code"
	DefaultComplexity = "intermediate"
	DefaultTarget     = "gemini"
	DefaultStyle      = "professional"
	DefaultLanguage   = "zh-tw"
)

// Category is a prompt domain with its expertise framing.
type Category struct {
	ID               string
	Name             string // short name used in history listings
	PanelTitle       string
	PanelDescription string
	Title            string // expertise title used in the instruction
	Expertise        string
}

// Option is a selectable value with a short label and an instruction description.
type Option struct {
	ID          string
	Label       string
	Description string
}

var categories = []Category{
	{
		ID:               "code",
		Name:             "代碼開發",
		PanelTitle:       "代碼開發專業領域",
		PanelDescription: "運用深入的軟體工程專業知識，針對程式設計、系統架構、代碼優化、調試分析等核心技術領域，提供高水準的提示詞優化服務。適用於多種程式語言、開發框架及軟體工程最佳實踐。",
		Title:            "軟體開發與程式設計",
		Expertise: `專精於軟體工程、程式設計、系統架構設計、代碼優化、除錯分析、效能調校等核心技術領域。
熟悉多種程式語言（Python、JavaScript、Java、C++、Go等）、開發框架（React、Vue、Spring、Django等）、
資料庫設計、雲端架構、DevOps實踐、軟體測試、安全開發等專業技能。
遵循軟體工程最佳實踐、設計模式、代碼品質標準和業界規範。`,
	},
	{
		ID:               "art",
		Name:             "繪畫創作",
		PanelTitle:       "繪畫創作藝術領域",
		PanelDescription: "基於專業藝術理論與視覺設計原理，針對AI繪圖、數位藝術創作、風格設計、色彩搭配等創意表達領域，提供高品質的提示詞專業優化。涵蓋多種藝術風格與創作技法。",
		Title:            "數位藝術創作與視覺設計",
		Expertise: `專精於數位藝術創作、概念藝術設計、插畫繪製、色彩理論、構圖原理、光影技法等藝術專業領域。
熟悉各種藝術風格（寫實、插畫、概念藝術、抽象、印象派等）、繪畫技法、數位工具應用、
視覺傳達設計、品牌視覺、平面設計等創意表達方式。
具備深厚的美學素養、創意思維和專業的視覺表達能力。`,
	},
	{
		ID:               "ui",
		Name:             "UI設計",
		PanelTitle:       "UI介面設計專業領域",
		PanelDescription: "遵循人機互動設計原理與使用者體驗研究成果，專門針對UI/UX設計、介面佈局、互動設計、資訊架構等專業設計領域，提供符合業界標準的提示詞優化服務。",
		Title:            "UI/UX設計與人機互動",
		Expertise: `專精於使用者介面設計、使用者體驗設計、人機互動原理、資訊架構、互動設計、視覺設計等專業領域。
熟悉設計系統建構、原型設計、使用者研究、可用性測試、響應式設計、無障礙設計、
前端開發協作、設計規範制定等現代UI/UX設計實務。
遵循使用者中心設計原則、設計思維流程和國際可訪問性標準（WCAG）。`,
	},
}

var complexities = []Option{
	{ID: "basic", Label: "基礎", Description: "基礎入門級別 - 簡單易懂，適合初學者"},
	{ID: "intermediate", Label: "中級", Description: "中級專業級別 - 具備一定技術深度和專業性"},
	{ID: "advanced", Label: "高級", Description: "高級專家級別 - 深入的技術細節和專業洞察"},
	{ID: "expert", Label: "專家", Description: "頂尖專家級別 - 最高技術水準和創新思維"},
}

var targets = []Option{
	{ID: "gemini", Label: "Gemini", Description: "Google Gemini - 擅長理解複雜上下文，支援多模態輸入，對技術和創意內容都有很好的理解能力。優化時應注重邏輯結構和詳細說明。"},
	{ID: "chatgpt", Label: "ChatGPT", Description: "OpenAI ChatGPT - 在對話式交互和創意寫作方面表現卓越，理解能力強，偏好清晰的角色定義和步驟化指導。優化時應強調角色扮演和具體步驟。"},
	{ID: "claude", Label: "Claude", Description: "Anthropic Claude - 以安全性和有用性著稱，在分析和推理方面表現優異，喜歡結構化的提示。優化時應注重邏輯清晰度和安全性考量。"},
}

var styles = []Option{
	{ID: "professional", Label: "專業", Description: "專業正式 - 嚴謹的學術和商業表達方式"},
	{ID: "creative", Label: "創意", Description: "創意發想 - 鼓勵創新思維和獨特解決方案"},
	{ID: "detailed", Label: "詳細", Description: "詳細完整 - 全面深入的分析和step-by-step指導"},
	{ID: "concise", Label: "簡潔", Description: "簡潔精要 - 直接明確的要點表達"},
}

// LanguageMixed is the one language preference that is not a BCP 47 tag.
const LanguageMixed = "mixed"

var languages = []Option{
	{ID: "zh-tw", Label: "繁體中文", Description: "使用繁體中文，符合台灣地區的用語習慣"},
	{ID: "zh-cn", Label: "简体中文", Description: "使用简体中文，符合大陆地区的表达方式"},
	{ID: "en", Label: "English", Description: "Use English with professional terminology"},
	{ID: LanguageMixed, Label: "中英混合", Description: "中英文混用，在需要時使用專業英文術語確保準確性"},
}

// Categories returns all categories in display order.
func Categories() []Category {
	return append([]Category(nil), categories...)
}

// Complexities returns all complexity levels in display order.
func Complexities() []Option { return append([]Option(nil), complexities...) }

// Targets returns all target models in display order.
func Targets() []Option { return append([]Option(nil), targets...) }

// Styles returns all styles in display order.
func Styles() []Option { return append([]Option(nil), styles...) }

// Languages returns all language preferences in display order.
func Languages() []Option { return append([]Option(nil), languages...) }

// LookupCategory resolves a category id.
func LookupCategory(id string) (Category, error) {
	for _, c := range categories {
		if c.ID == id {
			return c, nil
		}
	}
	ids := make([]string, 0, len(categories))
	for _, c := range categories {
		ids = append(ids, c.ID)
	}
	return Category{}, errors.UnknownOption("category", id, ids)
}

// LookupComplexity resolves a complexity id.
func LookupComplexity(id string) (Option, error) { return lookup("complexity", complexities, id) }

// LookupTarget resolves a target model id.
func LookupTarget(id string) (Option, error) { return lookup("target model", targets, id) }

// LookupStyle resolves a style id.
func LookupStyle(id string) (Option, error) { return lookup("style", styles, id) }

// LookupLanguage resolves a language preference id.
func LookupLanguage(id string) (Option, error) { return lookup("language", languages, id) }

func lookup(kind string, opts []Option, id string) (Option, error) {
	for _, o := range opts {
		if o.ID == id {
			return o, nil
		}
	}
	return Option{}, errors.UnknownOption(kind, id, IDs(opts))
}

// IDs returns the ids of opts in order.
func IDs(opts []Option) []string {
	ids := make([]string, 0, len(opts))
	for _, o := range opts {
		ids = append(ids, o.ID)
	}
	return ids
}

// CategoryName returns the short name for a category, or the id itself.
func CategoryName(id string) string {
	if c, err := LookupCategory(id); err == nil {
		return c.Name
	}
	return id
}

// ComplexityLabel returns the label for a complexity, defaulting to intermediate.
func ComplexityLabel(id string) string {
	return labelOr(complexities, id, DefaultComplexity)
}

// StyleLabel returns the label for a style, defaulting to professional.
func StyleLabel(id string) string {
	return labelOr(styles, id, DefaultStyle)
}

// TargetName returns the display name for a target model, defaulting to Gemini.
func TargetName(id string) string {
	if id == "" {
		return labelOr(targets, DefaultTarget, DefaultTarget)
	}
	if o, err := LookupTarget(id); err == nil {
		return o.Label
	}
	return cases.Title(language.English).String(id)
}

func labelOr(opts []Option, id, def string) string {
	for _, o := range opts {
		if o.ID == id {
			return o.Label
		}
	}
	for _, o := range opts {
		if o.ID == def {
			return o.Label
		}
	}
	return id
}

// LanguageTag parses a language preference as a BCP 47 tag.
// It reports false for "mixed" and for unknown ids.
func LanguageTag(id string) (language.Tag, bool) {
	if id == LanguageMixed {
		return language.Und, false
	}
	if _, err := LookupLanguage(id); err != nil {
		return language.Und, false
	}
	tag, err := language.Parse(id)
	if err != nil {
		return language.Und, false
	}
	return tag, true
}

// LanguageDisplayName returns the language's name in its own language.
func LanguageDisplayName(id string) string {
	tag, ok := LanguageTag(id)
	if !ok {
		return labelOr(languages, id, id)
	}
	return display.Self.Name(tag)
}
