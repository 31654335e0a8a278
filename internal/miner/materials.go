package miner

import (
	"strings"

	"github.com/cataloglens/backend/internal/dataset"
)

// materialCounts searches the free-text columns of each record for known
// material names. Membership is tested per record, so a material mentioned
// five times in one description still counts once for that record.
func materialCounts(records []dataset.Record) Counts {
	counts := make(Counts)
	for _, rec := range records {
		text := strings.ToLower(rec["description"] + " " + rec["features"] + " " + rec["product_details"])
		for _, material := range knownMaterials {
			if strings.Contains(text, material) {
				counts.Add(material)
			}
		}
	}
	return counts
}

// ExtractMaterials returns the topN most frequent materials, sorted ascending
func ExtractMaterials(records []dataset.Record, topN int) []string {
	return sortedCopy(materialCounts(records).TopN(topN))
}

// SizeValues is the static size vocabulary. Sizes are not mined; the fixed
// enumeration exists for interface symmetry with the other enum attributes.
func SizeValues() []string {
	return []string{"xs", "s", "m", "l", "xl", "xxl", "xxxl"}
}
