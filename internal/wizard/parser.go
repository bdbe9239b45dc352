package wizard

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// Result is the parsed outcome of one optimization.
type Result struct {
	Optimized    string   `json:"optimized"`
	Tips         []string `json:"tips"`
	Improvements []string `json:"improvements"`
}

// MaxTips caps the tips extracted from a reply.
const MaxTips = 5

const (
	minTipRunes       = 10
	minParagraphRunes = 100
	minTextRunes      = 50
	minSentenceRunes  = 20
	maxSentences      = 3
)

var (
	paragraphSplit  = regexp.MustCompile(`\n\s*\n`)
	tipNumbering    = regexp.MustCompile(`^\d+\.?\s*`)
	tipBullet       = regexp.MustCompile(`^[•\-*]\s*`)
	newlines        = regexp.MustCompile(`\n+`)
	sentenceBreaks  = regexp.MustCompile(`[。！？.!?]`)
	bodyListMarkers = []string{"*", "-", "•"}
)

type paragraph struct {
	text  string
	lines []string
}

func splitParagraphs(text string) []paragraph {
	var out []paragraph
	for _, raw := range paragraphSplit.Split(text, -1) {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		p := paragraph{text: raw}
		for _, line := range strings.Split(raw, "\n") {
			if strings.TrimSpace(line) != "" {
				p.lines = append(p.lines, line)
			}
		}
		out = append(out, p)
	}
	return out
}

func containsAny(s string, phrases []string) bool {
	for _, p := range phrases {
		if p != "" && strings.Contains(s, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

// ParseResponse extracts the optimized prompt and up to MaxTips tips from
// a free-form reply. It never fails; unusable input yields m.Fallback.
func ParseResponse(text string, m Markers) Result {
	paragraphs := splitParagraphs(text)

	var optimized string
	tips := []string{}
	headerSeen := false

	for _, p := range paragraphs {
		header := strings.ToLower(p.lines[0])

		if optimized == "" && containsAny(header, m.Optimized) {
			headerSeen = true
			if body := optimizedBody(p.lines[1:]); len(body) > 0 {
				optimized = strings.TrimSpace(strings.Join(body, "\n"))
				continue
			}
		}

		if containsAny(header, m.Tips) {
			for _, line := range p.lines[1:] {
				if len(tips) >= MaxTips {
					break
				}
				tip := cleanTip(line)
				if runeLen(tip) > minTipRunes {
					tips = append(tips, tip)
				}
			}
		}
	}

	if optimized == "" && !headerSeen {
		optimized = longestParagraph(paragraphs, m.Tips)
	}
	if optimized == "" {
		optimized = leadingSentences(text)
	}
	if optimized = strings.TrimSpace(optimized); optimized == "" {
		optimized = m.Fallback
	}

	return Result{
		Optimized:    optimized,
		Tips:         tips,
		Improvements: append([]string{}, m.Improvements...),
	}
}

func optimizedBody(lines []string) []string {
	var body []string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.ContainsAny(line, ":：") {
			continue
		}
		listed := false
		for _, marker := range bodyListMarkers {
			if strings.HasPrefix(trimmed, marker) {
				listed = true
				break
			}
		}
		if !listed {
			body = append(body, line)
		}
	}
	return body
}

func cleanTip(line string) string {
	line = tipNumbering.ReplaceAllString(line, "")
	line = tipBullet.ReplaceAllString(line, "")
	return strings.TrimSpace(line)
}

// longestParagraph returns the longest paragraph over minParagraphRunes
// that does not mention a tips marker, or "".
func longestParagraph(paragraphs []paragraph, tipMarkers []string) string {
	var candidates []string
	for _, p := range paragraphs {
		text := strings.TrimSpace(p.text)
		if runeLen(text) > minParagraphRunes && !containsAny(strings.ToLower(text), tipMarkers) {
			candidates = append(candidates, text)
		}
	}
	if len(candidates) == 0 {
		return ""
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return runeLen(candidates[i]) > runeLen(candidates[j])
	})
	return candidates[0]
}

// leadingSentences joins the first few substantial sentence fragments.
func leadingSentences(text string) string {
	all := strings.TrimSpace(newlines.ReplaceAllString(text, " "))
	if runeLen(all) <= minTextRunes {
		return ""
	}
	var picked []string
	for _, s := range sentenceBreaks.Split(all, -1) {
		if runeLen(strings.TrimSpace(s)) > minSentenceRunes {
			picked = append(picked, s)
			if len(picked) == maxSentences {
				break
			}
		}
	}
	if len(picked) == 0 {
		return ""
	}
	return strings.Join(picked, "。") + "。"
}
