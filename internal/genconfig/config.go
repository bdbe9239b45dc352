// Package genconfig holds the Gemini generation config and its local store.
package genconfig

import (
	"fmt"
	"math"
	"net/url"
	"sort"
	"strings"
)

// HarmCategory is a Gemini safety category.
type HarmCategory string

const (
	HarmHarassment       HarmCategory = "HARM_CATEGORY_HARASSMENT"
	HarmHateSpeech       HarmCategory = "HARM_CATEGORY_HATE_SPEECH"
	HarmSexuallyExplicit HarmCategory = "HARM_CATEGORY_SEXUALLY_EXPLICIT"
	HarmDangerousContent HarmCategory = "HARM_CATEGORY_DANGEROUS_CONTENT"
)

// Threshold is a Gemini safety blocking threshold.
type Threshold string

const (
	BlockNone           Threshold = "BLOCK_NONE"
	BlockOnlyHigh       Threshold = "BLOCK_ONLY_HIGH"
	BlockMediumAndAbove Threshold = "BLOCK_MEDIUM_AND_ABOVE"
	BlockLowAndAbove    Threshold = "BLOCK_LOW_AND_ABOVE"
)

var harmCategories = []HarmCategory{HarmHarassment, HarmHateSpeech, HarmSexuallyExplicit, HarmDangerousContent}

var thresholds = []Threshold{BlockNone, BlockOnlyHigh, BlockMediumAndAbove, BlockLowAndAbove}

// HarmCategories returns the known categories in serialization order.
func HarmCategories() []HarmCategory {
	return append([]HarmCategory(nil), harmCategories...)
}

const harmPrefix = "HARM_CATEGORY_"

// ParseHarmCategory accepts a category with or without the HARM_CATEGORY_ prefix.
func ParseHarmCategory(s string) (HarmCategory, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	if !strings.HasPrefix(name, harmPrefix) {
		name = harmPrefix + name
	}
	for _, c := range harmCategories {
		if string(c) == name {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown harm category %q", s)
}

// ParseThreshold accepts a threshold name in any case.
func ParseThreshold(s string) (Threshold, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for _, t := range thresholds {
		if string(t) == name {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown safety threshold %q", s)
}

// Built-in defaults.
const (
	DefaultModel           = "gemini-1.5-flash"
	DefaultBaseURL         = "https://generativelanguage.googleapis.com/v1beta/models"
	DefaultTemperature     = 0.7
	DefaultTopK            = 40
	DefaultTopP            = 0.95
	DefaultMaxOutputTokens = 2048
	DefaultThreshold       = BlockMediumAndAbove
)

// Config is an immutable snapshot of the generation config. Use With to
// derive a changed copy; the slice and map are never shared between snapshots.
type Config struct {
	Model           string
	BaseURL         string
	APIKey          string
	Temperature     float64
	TopK            int
	TopP            float64
	MaxOutputTokens int
	StopSequences   []string
	Safety          map[HarmCategory]Threshold
}

// Default returns the built-in config with an empty API key.
func Default() Config {
	safety := make(map[HarmCategory]Threshold, len(harmCategories))
	for _, c := range harmCategories {
		safety[c] = DefaultThreshold
	}
	return Config{
		Model:           DefaultModel,
		BaseURL:         DefaultBaseURL,
		Temperature:     DefaultTemperature,
		TopK:            DefaultTopK,
		TopP:            DefaultTopP,
		MaxOutputTokens: DefaultMaxOutputTokens,
		StopSequences:   []string{},
		Safety:          safety,
	}
}

// Changes lists the fields to replace. Nil fields are left unchanged;
// Safety entries are merged per category.
type Changes struct {
	Model           *string
	BaseURL         *string
	APIKey          *string
	Temperature     *float64
	TopK            *int
	TopP            *float64
	MaxOutputTokens *int
	StopSequences   *[]string
	Safety          map[HarmCategory]Threshold
}

// String returns a pointer to s, for building Changes.
func String(s string) *string { return &s }

// Float returns a pointer to f, for building Changes.
func Float(f float64) *float64 { return &f }

// Int returns a pointer to i, for building Changes.
func Int(i int) *int { return &i }

// Strings returns a pointer to a copy of ss, for building Changes.
func Strings(ss ...string) *[]string {
	out := append([]string{}, ss...)
	return &out
}

// With returns a new snapshot with ch applied.
func (c Config) With(ch Changes) Config {
	next := c.clone()
	if ch.Model != nil {
		next.Model = *ch.Model
	}
	if ch.BaseURL != nil {
		next.BaseURL = *ch.BaseURL
	}
	if ch.APIKey != nil {
		next.APIKey = *ch.APIKey
	}
	if ch.Temperature != nil {
		next.Temperature = *ch.Temperature
	}
	if ch.TopK != nil {
		next.TopK = *ch.TopK
	}
	if ch.TopP != nil {
		next.TopP = *ch.TopP
	}
	if ch.MaxOutputTokens != nil {
		next.MaxOutputTokens = *ch.MaxOutputTokens
	}
	if ch.StopSequences != nil {
		next.StopSequences = append([]string{}, (*ch.StopSequences)...)
	}
	for k, v := range ch.Safety {
		next.Safety[k] = v
	}
	return next
}

func (c Config) clone() Config {
	out := c
	out.StopSequences = append([]string{}, c.StopSequences...)
	out.Safety = make(map[HarmCategory]Threshold, len(c.Safety))
	for k, v := range c.Safety {
		out.Safety[k] = v
	}
	return out
}

// HasAPIKey reports whether a non-blank key is set.
func (c Config) HasAPIKey() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

// SafetySetting is one category/threshold pair as sent to Gemini.
type SafetySetting struct {
	Category  HarmCategory `json:"category"`
	Threshold Threshold    `json:"threshold"`
}

// SafetySettings returns the thresholds in a stable order: known
// categories first in their fixed order, then any others sorted.
func (c Config) SafetySettings() []SafetySetting {
	out := make([]SafetySetting, 0, len(c.Safety))
	seen := make(map[HarmCategory]bool, len(c.Safety))
	for _, cat := range harmCategories {
		if t, ok := c.Safety[cat]; ok {
			out = append(out, SafetySetting{Category: cat, Threshold: t})
			seen[cat] = true
		}
	}
	var rest []string
	for cat := range c.Safety {
		if !seen[cat] {
			rest = append(rest, string(cat))
		}
	}
	sort.Strings(rest)
	for _, cat := range rest {
		out = append(out, SafetySetting{Category: HarmCategory(cat), Threshold: c.Safety[HarmCategory(cat)]})
	}
	return out
}

// Validate checks ranges and required fields.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("model is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("base_url must be an absolute http(s) URL, got %q", c.BaseURL)
	}
	if math.IsNaN(c.Temperature) || c.Temperature < 0 || c.Temperature > 1 {
		return fmt.Errorf("temperature must be between 0 and 1, got %g", c.Temperature)
	}
	if c.TopK < 1 {
		return fmt.Errorf("topK must be at least 1, got %d", c.TopK)
	}
	if math.IsNaN(c.TopP) || c.TopP < 0 || c.TopP > 1 {
		return fmt.Errorf("topP must be between 0 and 1, got %g", c.TopP)
	}
	if c.MaxOutputTokens <= 0 {
		return fmt.Errorf("maxOutputTokens must be positive, got %d", c.MaxOutputTokens)
	}
	for cat, t := range c.Safety {
		if _, err := ParseHarmCategory(string(cat)); err != nil {
			return err
		}
		if _, err := ParseThreshold(string(t)); err != nil {
			return err
		}
	}
	return nil
}
