package usecase

import (
	"fmt"
	"strings"

	"github.com/cataloglens/backend/internal/domain"
)

// CompilePrompt renders the schema into the system prompt for the
// extraction model. The output is a pure function of the schema: it is
// computed once at startup and reused for every request.
//
// The prompt uses hybrid field wording: `category` is a strict closed-list
// selection and is the only field whose values are enumerated verbatim;
// every other enum field is open extraction, canonicalized later by the
// normalizer.
func CompilePrompt(schema *domain.Schema) string {
	var fieldLines []string
	for _, key := range schema.OrderedNames() {
		def := schema.Properties[key]
		switch {
		case key == "category" && def.Type == domain.TypeEnum:
			fieldLines = append(fieldLines, fmt.Sprintf("- %s: String (Choose from list below) - %s", key, def.Description))
		case def.Type == domain.TypeEnum:
			fieldLines = append(fieldLines, fmt.Sprintf("- %s: String (Extract from text) - %s", key, def.Description))
		case def.Type == domain.TypeArray:
			fieldLines = append(fieldLines, fmt.Sprintf("- %s: List of strings - %s", key, def.Description))
		default:
			fieldLines = append(fieldLines, fmt.Sprintf("- %s: String - %s", key, def.Description))
		}
	}

	var categoryLines []string
	if values, ok := schema.EnumValues("category"); ok {
		for _, v := range values {
			categoryLines = append(categoryLines, "- "+v)
		}
	}

	var ruleLines []string
	for _, rule := range schema.InferenceRules {
		ruleLines = append(ruleLines, "- "+rule)
	}

	var b strings.Builder
	b.WriteString("You are a helpful assistant that parses product descriptions into a JSON structure.\n")
	b.WriteString("You MUST output ONLY valid JSON.\n")
	b.WriteString("You must extract the following properties from the input text.\n")
	b.WriteString("\nFields to Extract:\n")
	b.WriteString(strings.Join(fieldLines, "\n"))
	b.WriteString("\n\nValid Categories (Choose exactly one for 'category'):\n")
	b.WriteString(strings.Join(categoryLines, "\n"))
	b.WriteString("\n\nRules:\n")
	b.WriteString("1. Return JSON only.\n")
	b.WriteString("2. For 'category', you MUST infer and choose the best fit from the 'Valid Categories' list above.\n")
	b.WriteString("3. For ALL OTHER fields (brand, subcategory, etc.), extract the EXACT text found in the description. Do not guess.\n")
	b.WriteString("4. If a property is not found, return null (or empty list for arrays).\n")
	b.WriteString("5. 'features' should be a list of short strings highlighting key product features.\n")
	b.WriteString("\nInference Rules:\n")
	b.WriteString(strings.Join(ruleLines, "\n"))
	b.WriteString("\n\nExample Input: \"Bright, big orange and black fedora made with quality polyester. Brand: HatMaster. Dimensions: 10x10x5 inches. Weight: 0.5 lbs. Features: Waterproof, sun protection.\"\n")
	b.WriteString("Example Output:\n")
	b.WriteString(`{
  "category": "clothing, shoes & jewelry",
  "subcategory": "hats",
  "brand": "HatMaster",
  "color": "orange",
  "material": "polyester",
  "size": "xl",
  "dimensions": "10x10x5 inches",
  "weight": "0.5 lbs",
  "features": ["Waterproof", "sun protection"]
}`)
	b.WriteString("\n")
	return b.String()
}
