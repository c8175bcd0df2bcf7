// Package value implements the literal value objects consumed by the CSG
// parameter parser. A Value is either a Scalar (number, boolean or string
// literal) or a Vector (ordered sequence of Values, arbitrarily nested).
// Values are immutable after Parse.
package value

import (
	"strconv"
	"strings"
)

// Value is a parsed literal. Scalars report Size() == 1 and return
// themselves from Get(0); vectors report their element count.
type Value interface {
	Size() int
	Get(i int) Value
	IsVector() bool
	Float() float64
	Int() int
	Bool() bool
	String() string
}

// Scalar is a single numeric, boolean or string literal. The raw text is
// kept and converted on demand.
type Scalar struct {
	raw string
}

// NewScalar wraps a raw literal token as a Scalar.
func NewScalar(raw string) Scalar {
	return Scalar{raw: raw}
}

func (s Scalar) Size() int      { return 1 }
func (s Scalar) IsVector() bool { return false }

// Get returns the scalar itself for index 0 and nil otherwise.
func (s Scalar) Get(i int) Value {
	if i == 0 {
		return s
	}
	return nil
}

// Float converts the literal to a float64. Booleans convert to 0/1;
// anything unparseable converts to 0.
func (s Scalar) Float() float64 {
	if f, err := strconv.ParseFloat(s.raw, 64); err == nil {
		return f
	}
	if s.raw == "true" {
		return 1
	}
	return 0
}

// Int converts the literal to an int, truncating fractional values.
func (s Scalar) Int() int {
	if n, err := strconv.Atoi(s.raw); err == nil {
		return n
	}
	return int(s.Float())
}

// Bool reports whether the literal is the token "true".
func (s Scalar) Bool() bool { return s.raw == "true" }

// String returns the raw literal text (without quotes for string literals).
func (s Scalar) String() string { return s.raw }

// Vector is an ordered sequence of Values.
type Vector struct {
	elems []Value
}

// NewVector builds a Vector from already-parsed elements.
func NewVector(elems ...Value) Vector {
	return Vector{elems: elems}
}

func (v Vector) Size() int      { return len(v.elems) }
func (v Vector) IsVector() bool { return true }

// Get returns the i-th element, or nil when out of range.
func (v Vector) Get(i int) Value {
	if i < 0 || i >= len(v.elems) {
		return nil
	}
	return v.elems[i]
}

// Float delegates to the sole element of a one-element vector and returns
// 0 otherwise. Callers are expected to check IsVector first.
func (v Vector) Float() float64 {
	if len(v.elems) == 1 {
		return v.elems[0].Float()
	}
	return 0
}

// Int delegates like Float.
func (v Vector) Int() int {
	if len(v.elems) == 1 {
		return v.elems[0].Int()
	}
	return 0
}

// Bool delegates like Float.
func (v Vector) Bool() bool {
	if len(v.elems) == 1 {
		return v.elems[0].Bool()
	}
	return false
}

// String renders the vector in bracketed literal form, for diagnostics.
func (v Vector) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, e := range v.elems {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(e.String())
	}
	b.WriteByte(']')
	return b.String()
}

// Parse converts a raw literal substring into a Value. It returns nil for
// empty, undef or otherwise unparseable input; callers drop nil results
// from the parameter map rather than treating them as errors.
func Parse(raw string) Value {
	raw = strings.TrimSpace(raw)
	switch {
	case raw == "" || raw == "undef":
		return nil
	case raw[0] == '[':
		return parseVector(raw)
	case raw[0] == '"':
		return parseString(raw)
	case raw == "true" || raw == "false":
		return Scalar{raw: raw}
	default:
		if _, err := strconv.ParseFloat(raw, 64); err != nil {
			return nil
		}
		return Scalar{raw: raw}
	}
}

// parseVector parses a bracketed, possibly nested vector literal.
// Elements that fail to parse are dropped.
func parseVector(raw string) Value {
	end := strings.LastIndexByte(raw, ']')
	if end < 0 {
		return nil
	}
	inner := raw[1:end]

	var elems []Value
	depth := 0
	start := 0
	for i := 0; i < len(inner); i++ {
		switch inner[i] {
		case '[':
			depth++
		case ']':
			depth--
		case ',':
			if depth == 0 {
				if e := Parse(inner[start:i]); e != nil {
					elems = append(elems, e)
				}
				start = i + 1
			}
		}
	}
	if e := Parse(inner[start:]); e != nil {
		elems = append(elems, e)
	}
	return Vector{elems: elems}
}

// parseString strips the surrounding quotes from a string literal.
func parseString(raw string) Value {
	if len(raw) < 2 || raw[len(raw)-1] != '"' {
		return nil
	}
	return Scalar{raw: raw[1 : len(raw)-1]}
}
