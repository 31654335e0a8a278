package domain

import "sort"

// Property types used in the schema exchange document
const (
	TypeEnum   = "enum"
	TypeString = "string"
	TypeArray  = "array"
)

// ItemsDef describes the element type of an array property
type ItemsDef struct {
	Type string `json:"type"`
}

// PropertyDef defines a single attribute of the induced taxonomy.
// Enum-typed properties carry the controlled vocabulary in Values;
// Values must be lower-cased, trimmed, deduplicated, and sorted ascending.
type PropertyDef struct {
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Values      []string  `json:"values,omitempty"`
	Items       *ItemsDef `json:"items,omitempty"`
}

// Schema is the taxonomy document induced from the product dataset.
// It is built once at process start and never mutated afterwards, so it is
// safe to share across concurrent request handlers without locking.
type Schema struct {
	Properties     map[string]PropertyDef `json:"properties"`
	InferenceRules []string               `json:"inference_rules"`
}

// EnumValues returns the vocabulary for an enum-typed property
func (s *Schema) EnumValues(name string) ([]string, bool) {
	def, ok := s.Properties[name]
	if !ok || def.Type != TypeEnum {
		return nil, false
	}
	return def.Values, true
}

// propertyOrder fixes the rendering order of the well-known attributes.
// Go maps are unordered, but the compiled prompt must be deterministic.
var propertyOrder = []string{
	"category", "subcategory", "brand", "color", "material",
	"size", "dimensions", "weight", "features",
}

// OrderedNames returns property names in canonical rendering order:
// well-known attributes first, any extras sorted alphabetically after
func (s *Schema) OrderedNames() []string {
	names := make([]string, 0, len(s.Properties))
	seen := make(map[string]bool, len(s.Properties))
	for _, name := range propertyOrder {
		if _, ok := s.Properties[name]; ok {
			names = append(names, name)
			seen[name] = true
		}
	}
	var extras []string
	for name := range s.Properties {
		if !seen[name] {
			extras = append(extras, name)
		}
	}
	sort.Strings(extras)
	return append(names, extras...)
}
