package reporter

import (
	"html/template"
	"strings"
	"time"
	"unicode"

	"github.com/aleister1102/lhbatch/internal/summary"
)

// Score bands used by the audit tool's own report
const (
	bandGood    = "good"
	bandAverage = "average"
	bandPoor    = "poor"
)

// titleCase converts string to title case (replaces deprecated strings.Title)
func titleCase(s string) string {
	if s == "" {
		return s
	}

	words := strings.Fields(s)
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		for j := 1; j < len(runes); j++ {
			runes[j] = unicode.ToLower(runes[j])
		}
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// ScoreBand classifies a [0,100] score: >=90 good, >=50 average, else poor.
func ScoreBand(score float64) string {
	switch {
	case score >= 90:
		return bandGood
	case score >= 50:
		return bandAverage
	default:
		return bandPoor
	}
}

// GetCommonTemplateFunctions returns common functions for templates
func GetCommonTemplateFunctions() template.FuncMap {
	return template.FuncMap{
		"title":       titleCase,
		"scoreBand":   ScoreBand,
		"formatScore": summary.FormatScore,
		"formatTime": func(t time.Time, layout string) string {
			if t.IsZero() {
				return "N/A"
			}
			return t.Format(layout)
		},
		"inc": func(i int) int {
			return i + 1
		},
	}
}
