package dataset

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// DecodeNestedField decodes a raw text field that may encode a nested
// list/dict structure (categories, variations, features). The dataset mixes
// three encodings: valid JSON, JSON written with single quotes, and
// Python-literal list/dict text. Anything else decodes to nil; a record
// that cannot be decoded simply contributes no candidates, it is never an
// error. Decoding the same text twice yields structurally equal results.
func DecodeNestedField(raw string) any {
	text := strings.TrimSpace(raw)
	if text == "" || text == "null" {
		return nil
	}

	// The naive quote swap handles exports that serialize with single
	// quotes; strings containing apostrophes fail here and fall through
	// to the literal parser, which handles them correctly.
	var v any
	if err := json.Unmarshal([]byte(strings.ReplaceAll(text, "'", `"`)), &v); err == nil {
		return v
	}

	if v, err := parseLiteral(text); err == nil {
		return v
	}
	return nil
}

// parseLiteral reads a Python-style literal: strings in single or double
// quotes, lists, dicts with string keys, numbers, True/False/None.
func parseLiteral(text string) (any, error) {
	p := &literalParser{input: text}
	p.skipSpace()
	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.input) {
		return nil, fmt.Errorf("trailing content at offset %d", p.pos)
	}
	return v, nil
}

type literalParser struct {
	input string
	pos   int
}

func (p *literalParser) skipSpace() {
	for p.pos < len(p.input) && unicode.IsSpace(rune(p.input[p.pos])) {
		p.pos++
	}
}

func (p *literalParser) parseValue() (any, error) {
	if p.pos >= len(p.input) {
		return nil, fmt.Errorf("unexpected end of input")
	}
	switch c := p.input[p.pos]; {
	case c == '[':
		return p.parseList()
	case c == '{':
		return p.parseDict()
	case c == '\'' || c == '"':
		return p.parseString()
	case c == '-' || c == '+' || (c >= '0' && c <= '9'):
		return p.parseNumber()
	default:
		return p.parseKeyword()
	}
}

func (p *literalParser) parseList() (any, error) {
	p.pos++ // consume '['
	list := []any{}
	for {
		p.skipSpace()
		if p.pos >= len(p.input) {
			return nil, fmt.Errorf("unterminated list")
		}
		if p.input[p.pos] == ']' {
			p.pos++
			return list, nil
		}
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		list = append(list, v)
		p.skipSpace()
		if p.pos < len(p.input) && p.input[p.pos] == ',' {
			p.pos++
		}
	}
}

func (p *literalParser) parseDict() (any, error) {
	p.pos++ // consume '{'
	dict := map[string]any{}
	for {
		p.skipSpace()
		if p.pos >= len(p.input) {
			return nil, fmt.Errorf("unterminated dict")
		}
		if p.input[p.pos] == '}' {
			p.pos++
			return dict, nil
		}
		key, err := p.parseString()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if p.pos >= len(p.input) || p.input[p.pos] != ':' {
			return nil, fmt.Errorf("expected ':' at offset %d", p.pos)
		}
		p.pos++
		p.skipSpace()
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		dict[key] = v
		p.skipSpace()
		if p.pos < len(p.input) && p.input[p.pos] == ',' {
			p.pos++
		}
	}
}

func (p *literalParser) parseString() (string, error) {
	if p.pos >= len(p.input) {
		return "", fmt.Errorf("unexpected end of input")
	}
	quote := p.input[p.pos]
	if quote != '\'' && quote != '"' {
		return "", fmt.Errorf("expected string at offset %d", p.pos)
	}
	p.pos++
	var b strings.Builder
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		switch {
		case c == quote:
			p.pos++
			return b.String(), nil
		case c == '\\' && p.pos+1 < len(p.input):
			p.pos++
			switch esc := p.input[p.pos]; esc {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			default:
				b.WriteByte(esc)
			}
			p.pos++
		default:
			b.WriteByte(c)
			p.pos++
		}
	}
	return "", fmt.Errorf("unterminated string")
}

func (p *literalParser) parseNumber() (any, error) {
	start := p.pos
	if p.input[p.pos] == '-' || p.input[p.pos] == '+' {
		p.pos++
	}
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if (c >= '0' && c <= '9') || c == '.' || c == 'e' || c == 'E' {
			p.pos++
			continue
		}
		break
	}
	n, err := strconv.ParseFloat(p.input[start:p.pos], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number at offset %d", start)
	}
	return n, nil
}

func (p *literalParser) parseKeyword() (any, error) {
	switch {
	case strings.HasPrefix(p.input[p.pos:], "True"):
		p.pos += len("True")
		return true, nil
	case strings.HasPrefix(p.input[p.pos:], "False"):
		p.pos += len("False")
		return false, nil
	case strings.HasPrefix(p.input[p.pos:], "None"):
		p.pos += len("None")
		return nil, nil
	}
	return nil, fmt.Errorf("unexpected token at offset %d", p.pos)
}
