package miner

import (
	"github.com/cataloglens/backend/internal/dataset"
	"github.com/cataloglens/backend/internal/domain"
)

// Options controls the mining thresholds
type Options struct {
	MinCategoryCount int // minimum support for a category value
	MaxSubcategories int // frequency-ranked cutoff for subcategories
	TopBrands        int
	TopColors        int
	TopMaterials     int
}

// DefaultOptions returns the standard mining thresholds
func DefaultOptions() Options {
	return Options{
		MinCategoryCount: 5,
		MaxSubcategories: 999,
		TopBrands:        999,
		TopColors:        999,
		TopMaterials:     999,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.MinCategoryCount <= 0 {
		o.MinCategoryCount = d.MinCategoryCount
	}
	if o.MaxSubcategories <= 0 {
		o.MaxSubcategories = d.MaxSubcategories
	}
	if o.TopBrands <= 0 {
		o.TopBrands = d.TopBrands
	}
	if o.TopColors <= 0 {
		o.TopColors = d.TopColors
	}
	if o.TopMaterials <= 0 {
		o.TopMaterials = d.TopMaterials
	}
	return o
}

// Result bundles the assembled schema with the raw per-attribute frequency
// counts, which the schemagen CLI can persist for inspection.
type Result struct {
	Schema *domain.Schema
	Counts map[string]Counts
}

// inferenceRules are opaque guidance strings copied verbatim into the
// compiled prompt; nothing else in the system interprets them.
var inferenceRules = []string{
	"If a mapped property is not a perfect match, choose the closest valid option for enums.",
	"For 'dimensions' and 'weight', extract the exact text if found.",
	"For 'features', extract a list of 3-5 main features.",
	"Map 'big' or 'large' to 'l', 'small' to 's'.",
}

// Mine runs every field extractor over the dataset and assembles the
// taxonomy schema. Extraction is pure and single-pass per attribute;
// malformed records degrade to "no candidate", never to an error.
func Mine(records []dataset.Record, opts Options) *Result {
	opts = opts.withDefaults()

	categories, subcategories := categoryCounts(records)
	brands := brandCounts(records)
	colors := colorCounts(records)
	materials := materialCounts(records)

	schema := &domain.Schema{
		Properties: map[string]domain.PropertyDef{
			"category": {
				Type:        domain.TypeEnum,
				Description: "The main category of the product",
				Values:      categories.AtLeast(opts.MinCategoryCount),
			},
			"subcategory": {
				Type:        domain.TypeEnum,
				Description: "The specific subcategory",
				Values:      sortedCopy(subcategories.TopN(opts.MaxSubcategories)),
			},
			"brand": {
				Type:        domain.TypeEnum,
				Description: "The brand manufacturer",
				Values:      sortedCopy(brands.TopN(opts.TopBrands)),
			},
			"color": {
				Type:        domain.TypeEnum,
				Description: "Primary color(s)",
				Values:      sortedCopy(colors.TopN(opts.TopColors)),
			},
			"material": {
				Type:        domain.TypeEnum,
				Description: "Primary material(s)",
				Values:      sortedCopy(materials.TopN(opts.TopMaterials)),
			},
			"size": {
				Type:        domain.TypeEnum,
				Description: "Size if applicable",
				Values:      sortedCopy(SizeValues()),
			},
			"dimensions": {
				Type:        domain.TypeString,
				Description: "Product dimensions (e.g., '10x10x5 inches')",
			},
			"weight": {
				Type:        domain.TypeString,
				Description: "Product weight (e.g., '2 lbs')",
			},
			"features": {
				Type:        domain.TypeArray,
				Description: "List of key features or highlights",
				Items:       &domain.ItemsDef{Type: domain.TypeString},
			},
		},
		InferenceRules: inferenceRules,
	}

	return &Result{
		Schema: schema,
		Counts: map[string]Counts{
			"category":    categories,
			"subcategory": subcategories,
			"brand":       brands,
			"color":       colors,
			"material":    materials,
		},
	}
}

// BuildSchema mines the dataset and returns only the schema document
func BuildSchema(records []dataset.Record, opts Options) *domain.Schema {
	return Mine(records, opts).Schema
}
