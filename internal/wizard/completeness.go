package wizard

import (
	"fmt"
	"regexp"
	"strings"
)

// Completeness is the advisory outcome of CheckCompleteness.
type Completeness struct {
	Complete        bool    `json:"complete"`
	Warning         string  `json:"warning,omitempty"`
	OriginalPoints  int     `json:"originalPoints"`
	OptimizedPoints int     `json:"optimizedPoints"`
	Ratio           float64 `json:"ratio"`
}

const (
	keptPointsRatio    = 0.7
	shortenedRatio     = 0.5
	shortenedMinRunes  = 100
	minStructuralWords = 2
	keptStructureRatio = 0.5
)

var (
	numberedPoint = regexp.MustCompile(`^\d+\.`)
	bulletPoint   = regexp.MustCompile(`^[•\-*]`)
)

func countPoints(text string, v Vocabulary) int {
	n := 0
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if numberedPoint.MatchString(trimmed) || bulletPoint.MatchString(trimmed) ||
			(v.OrdinalPrefix != "" && v.PointSuffix != "" &&
				strings.Contains(line, v.OrdinalPrefix) && strings.Contains(line, v.PointSuffix)) {
			n++
		}
	}
	return n
}

func countStructural(text string, words []string) int {
	lower := strings.ToLower(text)
	n := 0
	for _, w := range words {
		if strings.Contains(lower, strings.ToLower(w)) {
			n++
		}
	}
	return n
}

// CheckCompleteness compares the optimized text against the original and
// reports reasons it may have dropped content.
func CheckCompleteness(original, optimized string, v Vocabulary) Completeness {
	c := Completeness{
		OriginalPoints:  countPoints(original, v),
		OptimizedPoints: countPoints(optimized, v),
	}

	originalRunes := runeLen(original)
	if originalRunes > 0 {
		c.Ratio = float64(runeLen(optimized)) / float64(originalRunes)
	}

	var reasons []string
	if c.OriginalPoints > 1 && float64(c.OptimizedPoints) < float64(c.OriginalPoints)*keptPointsRatio {
		reasons = append(reasons, fmt.Sprintf(v.PointsDropped, c.OriginalPoints, c.OptimizedPoints))
	}
	if c.Ratio < shortenedRatio && originalRunes > shortenedMinRunes {
		reasons = append(reasons, v.Shortened)
	}
	originalStructural := countStructural(original, v.StructuralWords)
	if originalStructural > minStructuralWords &&
		float64(countStructural(optimized, v.StructuralWords)) < float64(originalStructural)*keptStructureRatio {
		reasons = append(reasons, v.StructureLost)
	}

	c.Complete = len(reasons) == 0
	c.Warning = strings.Join(reasons, v.Separator)
	return c
}
