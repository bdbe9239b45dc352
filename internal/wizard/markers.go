package wizard

// Markers is the phrase table ResponseParser matches against.
type Markers struct {
	// Optimized are header phrases that introduce the optimized prompt.
	Optimized []string
	// Tips are header phrases that introduce improvement notes.
	Tips []string
	// Fallback is used when no optimized text can be extracted.
	Fallback string
	// Improvements are the static notes attached to every result.
	Improvements []string
}

// TraditionalChinese matches replies to the default instruction.
var TraditionalChinese = Markers{
	Optimized: []string{"優化後", "優化版本", "改進後", "完整優化"},
	Tips:      []string{"改進", "建議", "說明"},
	Fallback:  "優化處理中遇到問題，請重試或調整提示詞內容。",
	Improvements: []string{
		"使用 Gemini 1.5 Flash AI 進行專業優化",
		"基於領域專業知識改進指令精確度",
		"增強提示詞的結構化和完整性",
		"確保所有要點都得到處理和強化",
	},
}

// English matches replies written in English.
var English = Markers{
	Optimized: []string{"optimized prompt", "optimized version", "improved version", "revised prompt"},
	Tips:      []string{"improvement", "suggestion", "explanation"},
	Fallback:  "The optimization could not be parsed. Please retry or adjust the prompt.",
	Improvements: []string{
		"Optimized with Gemini 1.5 Flash",
		"Sharpened instructions with domain expertise",
		"Strengthened structure and completeness",
		"Kept and reinforced every original point",
	},
}

// Vocabulary is the phrase table CheckCompleteness and the optimizer use.
type Vocabulary struct {
	// OrdinalPrefix and PointSuffix together mark a "point" line, as in 第一點.
	// Either may be empty to disable that check.
	OrdinalPrefix string
	PointSuffix   string
	// StructuralWords are sequencing words whose loss suggests dropped content.
	StructuralWords []string

	// PointsDropped is a format with the original and optimized point counts.
	PointsDropped string
	Shortened     string
	StructureLost string
	// Separator joins multiple reasons.
	Separator string
	// WarningPrefix is prepended to the warning when it is added to the tips.
	WarningPrefix string
}

// TraditionalChineseVocabulary is the default completeness vocabulary.
var TraditionalChineseVocabulary = Vocabulary{
	OrdinalPrefix:   "第",
	PointSuffix:     "點",
	StructuralWords: []string{"第一", "第二", "第三", "首先", "其次", "最後", "另外", "此外"},
	PointsDropped:   "原始內容有 %d 個要點，優化後只有 %d 個要點",
	Shortened:       "優化後的內容明顯縮短，可能遺漏了部分要求",
	StructureLost:   "可能遺漏了原始內容的結構性要點",
	Separator:       "；",
	WarningPrefix:   "⚠️ 建議檢查：",
}

// EnglishVocabulary checks English prompts.
var EnglishVocabulary = Vocabulary{
	StructuralWords: []string{"first", "second", "third", "then", "next", "finally", "additionally", "moreover"},
	PointsDropped:   "the original has %d points but the optimized version only %d",
	Shortened:       "the optimized version is much shorter and may have dropped requirements",
	StructureLost:   "structural points of the original may be missing",
	Separator:       "; ",
	WarningPrefix:   "⚠️ Please review: ",
}

// TablesFor returns the marker and vocabulary tables for a settings
// vocabulary id. Unknown ids get the Traditional Chinese tables.
func TablesFor(vocabulary string) (Markers, Vocabulary) {
	if vocabulary == "en" {
		return English, EnglishVocabulary
	}
	return TraditionalChinese, TraditionalChineseVocabulary
}
