package miner

import (
	"strings"

	"github.com/cataloglens/backend/internal/dataset"
)

// categoryCounts walks the dataset once and counts both category and
// subcategory candidates. The first element of a record's decoded category
// list is the category candidate and the last element the subcategory
// candidate; records without a decodable list fall back to the flat
// root_bs_category column for the category only.
func categoryCounts(records []dataset.Record) (Counts, Counts) {
	categories := make(Counts)
	subcategories := make(Counts)

	for _, rec := range records {
		parsed := dataset.DecodeNestedField(rec["categories"])
		list, ok := parsed.([]any)
		if ok && len(list) > 0 {
			if first, ok := list[0].(string); ok {
				if c := strings.ToLower(strings.TrimSpace(first)); c != "" {
					categories.Add(c)
				}
			}
			if len(list) > 1 {
				if last, ok := list[len(list)-1].(string); ok {
					if s := strings.ToLower(strings.TrimSpace(last)); s != "" {
						subcategories.Add(s)
					}
				}
			}
		} else if fallback := strings.TrimSpace(rec["root_bs_category"]); fallback != "" {
			categories.Add(strings.ToLower(fallback))
		}
	}

	return categories, subcategories
}

// ExtractCategories returns the category vocabulary: candidates occurring
// at least minCount times across the dataset, sorted ascending. Categories
// anchor a closed classification, so low-support noise is filtered out.
func ExtractCategories(records []dataset.Record, minCount int) []string {
	categories, _ := categoryCounts(records)
	return categories.AtLeast(minCount)
}

// ExtractSubcategories returns the subcategory vocabulary: the maxValues
// most frequent leaf categories, sorted ascending. Subcategories are an
// open, higher-cardinality taxonomy, so frequency ranking alone is the
// filter; there is no minimum support.
func ExtractSubcategories(records []dataset.Record, maxValues int) []string {
	_, subcategories := categoryCounts(records)
	return sortedCopy(subcategories.TopN(maxValues))
}
