package miner

import (
	"strings"

	"github.com/cataloglens/backend/internal/dataset"
)

// brandCounts counts every non-empty brand value. Brands are lower-cased
// here so the emitted vocabulary shares the normalizer's casing convention;
// merging of near-duplicate spellings is deferred to fuzzy matching at
// request time.
func brandCounts(records []dataset.Record) Counts {
	counts := make(Counts)
	for _, rec := range records {
		b := strings.ToLower(strings.TrimSpace(rec["brand"]))
		if b != "" {
			counts.Add(b)
		}
	}
	return counts
}

// ExtractBrands returns the topN most frequent brands, sorted ascending
func ExtractBrands(records []dataset.Record, topN int) []string {
	return sortedCopy(brandCounts(records).TopN(topN))
}
