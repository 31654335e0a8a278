package usecase

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/cataloglens/backend/internal/domain"
)

// defaultMatchThreshold is the minimum similarity ratio (0-1 scale) a
// vocabulary entry must score before a fuzzy match is accepted.
const defaultMatchThreshold = 0.6

// NormalizerConfig holds configuration for the normalizer
type NormalizerConfig struct {
	MatchThreshold float64
}

// Normalizer canonicalizes extraction results against the schema's enum
// vocabularies using exact then fuzzy matching. It is stateless apart from
// the threshold and safe for concurrent use.
type Normalizer struct {
	threshold float64
}

// NewNormalizer creates a normalizer with the given configuration
func NewNormalizer(config NormalizerConfig) *Normalizer {
	threshold := config.MatchThreshold
	if threshold <= 0 || threshold > 1 {
		threshold = defaultMatchThreshold
	}
	return &Normalizer{threshold: threshold}
}

// Normalize canonicalizes every enum-typed field of the result against the
// schema vocabulary. Scalars are replaced by their match; sequences are
// matched element-wise, deduplicated, and become nil when nothing survives.
// Nil values, fields absent from the schema, and non-enum fields pass
// through untouched. The input map is never mutated.
//
// Normalize is idempotent: already-canonical values exact-match themselves.
func (n *Normalizer) Normalize(result domain.ExtractionResult, schema *domain.Schema) domain.ExtractionResult {
	if result == nil || schema == nil {
		return result
	}

	out := make(domain.ExtractionResult, len(result))
	for key, value := range result {
		def, ok := schema.Properties[key]
		if !ok || def.Type != domain.TypeEnum || value == nil {
			out[key] = value
			continue
		}

		switch v := value.(type) {
		case []any:
			out[key] = n.matchList(stringItems(v), def.Values)
		case []string:
			out[key] = n.matchList(v, def.Values)
		default:
			out[key] = n.matchValue(asString(value), def.Values)
		}
	}
	return out
}

// matchList canonicalizes a sequence element-wise. Elements that match no
// vocabulary entry are dropped, survivors are deduplicated in first-seen
// order, and an empty surviving set becomes nil: "nothing extracted" is
// distinct from an empty sequence.
func (n *Normalizer) matchList(items []string, values []string) any {
	var cleaned []string
	seen := make(map[string]bool)
	for _, item := range items {
		matched, ok := n.lookup(item, values)
		if !ok || seen[matched] {
			continue
		}
		seen[matched] = true
		cleaned = append(cleaned, matched)
	}
	if len(cleaned) == 0 {
		return nil
	}
	return cleaned
}

// matchValue canonicalizes one scalar. Below the threshold the lowered,
// trimmed original is returned unchanged: soft validation never discards
// an unmatched scalar.
func (n *Normalizer) matchValue(raw string, values []string) string {
	matched, _ := n.lookup(raw, values)
	return matched
}

// lookup resolves a candidate against the vocabulary. Exact match (after
// trim and lower-case) always wins. Otherwise the single best fuzzy
// candidate is accepted at or above the threshold, with exact score ties
// broken toward the lexicographically first entry. The boolean reports
// whether a vocabulary entry was matched; on a miss the lowered, trimmed
// candidate is returned.
func (n *Normalizer) lookup(raw string, values []string) (string, bool) {
	candidate := strings.ToLower(strings.TrimSpace(raw))
	if candidate == "" {
		return "", false
	}

	for _, v := range values {
		if v == candidate {
			return v, true
		}
	}

	best := ""
	bestScore := 0.0
	for _, v := range values {
		score := similarityRatio(candidate, v)
		if score > bestScore || (score == bestScore && best != "" && v < best) {
			best = v
			bestScore = score
		}
	}
	if best != "" && bestScore >= n.threshold {
		return best, true
	}
	return candidate, false
}

// similarityRatio scores string similarity on a 0-1 scale where 1.0 is
// identical, derived from edit distance over the longer rune length.
func similarityRatio(a, b string) float64 {
	if a == b {
		return 1
	}
	maxLen := utf8.RuneCountInString(a)
	if l := utf8.RuneCountInString(b); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1
	}
	return 1 - float64(levenshteinDistance(a, b))/float64(maxLen)
}

// levenshteinDistance calculates the edit distance between two strings
func levenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return utf8.RuneCountInString(s2)
	}
	if len(s2) == 0 {
		return utf8.RuneCountInString(s1)
	}

	r1 := []rune(s1)
	r2 := []rune(s2)
	m := len(r1)
	n := len(r2)

	// Two rows instead of the full matrix for space efficiency
	prev := make([]int, n+1)
	curr := make([]int, n+1)

	for j := 0; j <= n; j++ {
		prev[j] = j
	}

	for i := 1; i <= m; i++ {
		curr[0] = i
		for j := 1; j <= n; j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[n]
}

// stringItems coerces a decoded JSON array to strings, skipping nils
func stringItems(items []any) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		out = append(out, asString(item))
	}
	return out
}

// asString renders a scalar the way the model may have emitted it:
// strings pass through, anything else is formatted
func asString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
