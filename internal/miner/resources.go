package miner

import (
	"bufio"
	"bytes"
	"embed"
	"fmt"
	"strings"
)

// The reference vocabularies live in versionable data files rather than
// compiled constants so they can be extended without touching code. They
// are loaded once at process init and are immutable afterwards.

//go:embed data/color_tokens.txt data/color_stopwords.txt data/materials.txt
var resourceFS embed.FS

var (
	colorTokens    map[string]bool
	colorStopWords map[string]bool
	knownMaterials []string
)

func init() {
	colorTokens = mustLoadTokenSet("data/color_tokens.txt")
	colorStopWords = mustLoadTokenSet("data/color_stopwords.txt")
	knownMaterials = mustLoadTokenList("data/materials.txt")
}

func mustLoadTokenSet(name string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range mustLoadTokenList(name) {
		set[tok] = true
	}
	return set
}

func mustLoadTokenList(name string) []string {
	data, err := resourceFS.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("miner: missing embedded resource %s: %v", name, err))
	}

	var tokens []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		tokens = append(tokens, strings.ToLower(line))
	}
	return tokens
}
