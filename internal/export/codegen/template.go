// Package codegen implements the placeholder templating used by the export
// pipeline. A template is parsed once into an ordered list of literal and
// placeholder tokens; rendering substitutes values by name and rejects any
// value containing the delimiter sequence, so user input can never inject
// text into generated source.
//
// The delimiter pair is "@@name@@". It was chosen because it survives the
// formatting and linting of the generated host language without collision.
package codegen

import (
	"fmt"
	"sort"
	"strings"
)

// Delimiter is the placeholder delimiter sequence.
const Delimiter = "@@"

// token is one parsed template segment: either a literal or a placeholder.
type token struct {
	literal     string
	placeholder string
}

// Template is a parsed template ready for rendering.
type Template struct {
	name   string
	tokens []token
}

// Parse tokenizes a template. An unterminated delimiter or an empty or
// malformed placeholder name is a parse error. Placeholder names are
// lowercase alphanumeric with hyphens.
func Parse(name, text string) (*Template, error) {
	t := &Template{name: name}
	rest := text
	for {
		open := strings.Index(rest, Delimiter)
		if open < 0 {
			if rest != "" {
				t.tokens = append(t.tokens, token{literal: rest})
			}
			return t, nil
		}
		if open > 0 {
			t.tokens = append(t.tokens, token{literal: rest[:open]})
		}
		rest = rest[open+len(Delimiter):]

		closing := strings.Index(rest, Delimiter)
		if closing < 0 {
			return nil, fmt.Errorf("template %s: unterminated placeholder delimiter", name)
		}
		ph := rest[:closing]
		if err := validateName(ph); err != nil {
			return nil, fmt.Errorf("template %s: %w", name, err)
		}
		t.tokens = append(t.tokens, token{placeholder: ph})
		rest = rest[closing+len(Delimiter):]
	}
}

func validateName(ph string) error {
	if ph == "" {
		return fmt.Errorf("empty placeholder name")
	}
	for _, r := range ph {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' {
			return fmt.Errorf("invalid placeholder name %q", ph)
		}
	}
	return nil
}

// Placeholders returns the distinct placeholder names in the template,
// sorted.
func (t *Template) Placeholders() []string {
	seen := make(map[string]bool)
	for _, tok := range t.tokens {
		if tok.placeholder != "" {
			seen[tok.placeholder] = true
		}
	}
	out := make([]string, 0, len(seen))
	for ph := range seen {
		out = append(out, ph)
	}
	sort.Strings(out)
	return out
}

// Render substitutes placeholder values. Every placeholder in the template
// must have a value, and no value may contain the delimiter sequence.
func (t *Template) Render(values map[string]string) (string, error) {
	var sb strings.Builder
	for _, tok := range t.tokens {
		if tok.placeholder == "" {
			sb.WriteString(tok.literal)
			continue
		}
		v, ok := values[tok.placeholder]
		if !ok {
			return "", fmt.Errorf("template %s: no value for placeholder %q", t.name, tok.placeholder)
		}
		if strings.Contains(v, Delimiter) {
			return "", fmt.Errorf("template %s: value for %q contains the delimiter sequence", t.name, tok.placeholder)
		}
		sb.WriteString(v)
	}
	return sb.String(), nil
}
