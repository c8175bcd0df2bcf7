// Package scad lexes an OpenSCAD .csg dump into the flat sequence of
// (signature, level, line) records consumed by the tree builder. The dump
// grammar is one call per line — identifier "(" [param_list] ")" — ending
// in ';' for leaves or '{' to open a child block, with '}' closing it.
package scad

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/chazu/sapwood/pkg/csg"
)

// maxLineBytes bounds a single .csg source line. Polyhedron point lists
// can get long, so this is generous.
const maxLineBytes = 4 * 1024 * 1024

// Lex reads a .csg document and returns its leveled records in document
// order. Blank lines and // comments are skipped; whitespace outside string
// literals is stripped from signatures so downstream parameter lookup sees
// canonical names.
func Lex(r io.Reader) ([]csg.Record, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var records []csg.Record
	depth := 0
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "//") {
			continue
		}

		for text != "" {
			if text[0] == '}' {
				depth--
				if depth < 0 {
					return nil, fmt.Errorf("csg line %d: unbalanced '}'", lineNo)
				}
				text = strings.TrimSpace(text[1:])
				continue
			}

			sig, terminator, rest, err := scanCall(text, lineNo)
			if err != nil {
				return nil, err
			}
			records = append(records, csg.Record{
				Signature: sig,
				Level:     depth,
				Line:      lineNo,
			})
			if terminator == '{' {
				depth++
			}
			text = strings.TrimSpace(rest)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading csg source: %w", err)
	}
	if depth != 0 {
		return nil, fmt.Errorf("csg line %d: %d unclosed block(s) at end of input", lineNo, depth)
	}
	return records, nil
}

// scanCall consumes one call up to its ';' or '{' terminator, respecting
// string literals, and returns the whitespace-stripped signature.
func scanCall(text string, lineNo int) (sig string, terminator byte, rest string, err error) {
	var b strings.Builder
	inQuote := false
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case inQuote:
			b.WriteByte(c)
			if c == '\\' && i+1 < len(text) {
				i++
				b.WriteByte(text[i])
			} else if c == '"' {
				inQuote = false
			}
		case c == '"':
			inQuote = true
			b.WriteByte(c)
		case c == ';' || c == '{':
			return stripModifiers(b.String()), c, text[i+1:], nil
		case c == ' ' || c == '\t':
			// canonical signatures carry no whitespace
		default:
			b.WriteByte(c)
		}
	}
	return "", 0, "", fmt.Errorf("csg line %d: call is missing a ';' or '{' terminator: %s", lineNo, text)
}

// stripModifiers drops OpenSCAD debug modifier prefixes (%, #, !, *) that
// can precede a call in a dump.
func stripModifiers(sig string) string {
	return strings.TrimLeft(sig, "%#!*")
}
