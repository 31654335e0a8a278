package miner

import (
	"regexp"
	"strings"

	"github.com/cataloglens/backend/internal/dataset"
)

// Package-level compiled regex patterns for performance
var (
	digitRegex      = regexp.MustCompile(`\d`)
	colorSplitRegex = regexp.MustCompile(`[\s/\-,&]+`)
)

// colorCounts mines color phrases from the name attributes of each
// record's decoded variations structure.
func colorCounts(records []dataset.Record) Counts {
	counts := make(Counts)
	for _, rec := range records {
		parsed := dataset.DecodeNestedField(rec["variations"])
		list, ok := parsed.([]any)
		if !ok {
			continue
		}
		for _, entry := range list {
			variation, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			name, _ := variation["name"].(string)
			if phrase := colorPhrase(name); phrase != "" {
				counts.Add(phrase)
			}
		}
	}
	return counts
}

// colorPhrase reconstructs a compound color phrase from a variation name.
// Names containing digits are rejected outright (size/SKU strings); the
// rest is tokenized on whitespace and the / - , & delimiters, stop-word
// tokens are dropped, and only tokens in the reference color set survive.
// "Dark Blue" -> "dark blue", "Black and White" -> "black white",
// "Bluetooth Speaker - Large" -> "" (no color token, silently dropped).
func colorPhrase(name string) string {
	clean := strings.ToLower(strings.TrimSpace(name))
	if clean == "" || digitRegex.MatchString(clean) {
		return ""
	}

	var kept []string
	for _, token := range colorSplitRegex.Split(clean, -1) {
		if colorStopWords[token] {
			continue
		}
		if colorTokens[token] {
			kept = append(kept, token)
		}
	}
	return strings.Join(kept, " ")
}

// ExtractColors returns the topN most frequent color phrases, sorted ascending
func ExtractColors(records []dataset.Record, topN int) []string {
	return sortedCopy(colorCounts(records).TopN(topN))
}
