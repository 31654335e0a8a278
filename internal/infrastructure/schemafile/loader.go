package schemafile

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/cataloglens/backend/internal/domain"
)

// Load reads and decodes a schema document from disk. A missing or
// undecodable file is a hard error; the server treats it as fatal at
// startup rather than operating on a partial taxonomy.
func Load(path string) (*domain.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrSchemaNotFound, path)
		}
		return nil, fmt.Errorf("read schema: %w", err)
	}

	var schema domain.Schema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("decode schema %s: %w", path, err)
	}
	if len(schema.Properties) == 0 {
		return nil, fmt.Errorf("schema %s has no properties", path)
	}

	Canonicalize(&schema)
	return &schema, nil
}

// Canonicalize enforces the enum vocabulary invariant regardless of the
// file's provenance: every value lower-cased and trimmed, duplicates and
// empties removed, sorted ascending.
func Canonicalize(schema *domain.Schema) {
	for name, def := range schema.Properties {
		if def.Type != domain.TypeEnum {
			continue
		}

		seen := make(map[string]bool, len(def.Values))
		values := make([]string, 0, len(def.Values))
		for _, v := range def.Values {
			v = strings.ToLower(strings.TrimSpace(v))
			if v == "" || seen[v] {
				continue
			}
			seen[v] = true
			values = append(values, v)
		}
		sort.Strings(values)

		def.Values = values
		schema.Properties[name] = def
	}
}
