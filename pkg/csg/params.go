package csg

import (
	"strings"

	"github.com/chazu/sapwood/pkg/value"
)

// parseParams splits a signature of the form tag(name1=value1,...) into a
// parameter map. Values may be scalars or bracketed, arbitrarily nested
// vectors; a comma separates parameters only at bracket depth zero. A
// parameter without '=' is positional and gets a generated ParamName.
// Unparseable values are dropped silently, matching upstream behavior for
// undef and exotic literals. Zero parameters yields an empty map.
func parseParams(signature string) map[string]value.Value {
	params := make(map[string]value.Value)

	open := strings.IndexByte(signature, '(')
	end := strings.LastIndexByte(signature, ')')
	if open < 0 || end <= open {
		return params
	}

	for i, raw := range splitTopLevel(signature[open+1 : end]) {
		name, rawValue := splitNameValue(raw)
		if name == "" {
			name = ParamName(i)
		}
		if v := value.Parse(rawValue); v != nil {
			params[name] = v
		}
	}
	return params
}

// splitTopLevel splits on commas at bracket depth zero.
func splitTopLevel(s string) []string {
	if s == "" {
		return nil
	}
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

// splitNameValue splits one raw parameter at the first depth-zero '='.
// Positional parameters (no '=') return an empty name.
func splitNameValue(raw string) (name, rawValue string) {
	depth := 0
	for i := 0; i < len(raw); i++ {
		switch raw[i] {
		case '[':
			depth++
		case ']':
			depth--
		case '=':
			if depth == 0 {
				return strings.TrimSpace(raw[:i]), raw[i+1:]
			}
		}
	}
	return "", raw
}
