package genconfig

import (
	"encoding/json"
	"fmt"
	"time"
)

// Markers identifying a config export.
const (
	TypeMarker = "gemini_api_config"
	ExportedBy = "PromptWizard"
)

type generationDoc struct {
	Temperature     float64  `json:"temperature"`
	TopK            int      `json:"topK"`
	TopP            float64  `json:"topP"`
	MaxOutputTokens int      `json:"maxOutputTokens"`
	StopSequences   []string `json:"stopSequences"`
}

// document is the persisted and exported JSON layout.
type document struct {
	APIKey           string          `json:"api_key"`
	Model            string          `json:"model"`
	Type             string          `json:"type"`
	BaseURL          string          `json:"base_url"`
	GenerationConfig generationDoc   `json:"generationConfig"`
	SafetySettings   []SafetySetting `json:"safetySettings"`
	ExportedDate     string          `json:"exported_date,omitempty"`
	ExportedBy       string          `json:"exported_by,omitempty"`
}

func encode(c Config) document {
	stops := c.StopSequences
	if stops == nil {
		stops = []string{}
	}
	return document{
		APIKey:  c.APIKey,
		Model:   c.Model,
		Type:    TypeMarker,
		BaseURL: c.BaseURL,
		GenerationConfig: generationDoc{
			Temperature:     c.Temperature,
			TopK:            c.TopK,
			TopP:            c.TopP,
			MaxOutputTokens: c.MaxOutputTokens,
			StopSequences:   stops,
		},
		SafetySettings: c.SafetySettings(),
	}
}

func marshalRecord(c Config) (string, error) {
	data, err := json.Marshal(encode(c))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func marshalExport(c Config, now time.Time) ([]byte, error) {
	doc := encode(c)
	doc.APIKey = ""
	doc.ExportedDate = now.UTC().Format(time.RFC3339)
	doc.ExportedBy = ExportedBy
	return json.MarshalIndent(doc, "", "  ")
}

type partialGeneration struct {
	Temperature     *float64  `json:"temperature"`
	TopK            *int      `json:"topK"`
	TopP            *float64  `json:"topP"`
	MaxOutputTokens *int      `json:"maxOutputTokens"`
	StopSequences   *[]string `json:"stopSequences"`
}

// legacyGeneration is the snake_case layout used by older bootstrap files,
// which also carry their thresholds under safety_settings.
type legacyGeneration struct {
	Temperature     *float64  `json:"temperature"`
	TopK            *int      `json:"top_k"`
	TopP            *float64  `json:"top_p"`
	MaxOutputTokens *int      `json:"max_output_tokens"`
	StopSequences   *[]string `json:"stop_sequences"`
}

// partial decodes any subset of the document, so only present fields apply.
type partial struct {
	APIKey           *string            `json:"api_key"`
	Model            *string            `json:"model"`
	Type             string             `json:"type"`
	BaseURL          *string            `json:"base_url"`
	GenerationConfig *partialGeneration `json:"generationConfig"`
	LegacyGeneration *legacyGeneration  `json:"generation_config"`
	SafetySettings   []SafetySetting    `json:"safetySettings"`
	LegacySafety     []SafetySetting    `json:"safety_settings"`
	ExportedBy       string             `json:"exported_by"`
}

func decodePartial(data []byte) (*partial, error) {
	var p partial
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (p *partial) hasMarker() bool {
	return p.Type == TypeMarker || p.ExportedBy == ExportedBy
}

// changes converts the present fields. Legacy generation and safety fields
// apply first so the current layout wins when both appear.
func (p *partial) changes() (Changes, error) {
	ch := Changes{
		Model:   p.Model,
		BaseURL: p.BaseURL,
		APIKey:  p.APIKey,
	}
	if g := p.LegacyGeneration; g != nil {
		ch.Temperature = g.Temperature
		ch.TopK = g.TopK
		ch.TopP = g.TopP
		ch.MaxOutputTokens = g.MaxOutputTokens
		ch.StopSequences = g.StopSequences
	}
	if g := p.GenerationConfig; g != nil {
		if g.Temperature != nil {
			ch.Temperature = g.Temperature
		}
		if g.TopK != nil {
			ch.TopK = g.TopK
		}
		if g.TopP != nil {
			ch.TopP = g.TopP
		}
		if g.MaxOutputTokens != nil {
			ch.MaxOutputTokens = g.MaxOutputTokens
		}
		if g.StopSequences != nil {
			ch.StopSequences = g.StopSequences
		}
	}
	if len(p.LegacySafety) > 0 || len(p.SafetySettings) > 0 {
		ch.Safety = make(map[HarmCategory]Threshold, len(p.LegacySafety)+len(p.SafetySettings))
		for _, list := range [][]SafetySetting{p.LegacySafety, p.SafetySettings} {
			for _, s := range list {
				cat, err := ParseHarmCategory(string(s.Category))
				if err != nil {
					return Changes{}, err
				}
				t, err := ParseThreshold(string(s.Threshold))
				if err != nil {
					return Changes{}, fmt.Errorf("%s: %w", cat, err)
				}
				ch.Safety[cat] = t
			}
		}
	}
	return ch, nil
}
