package docfmt

import (
	"math"
	"strconv"
)

// Value is the decoded form of a source document: a closed set of tree
// shapes that every serializer consumes. Implementations are [Null], [Bool],
// [Number], [Text], [Sequence], and [Mapping]. A Value is built once by a
// decoder and never mutated afterwards.
type Value interface {
	value()
}

// Null is the absent value.
type Null struct{}

// Bool is a boolean scalar.
type Bool bool

// Number is a numeric scalar. All source numbers decode to float64.
type Number float64

// Text is a string scalar.
type Text string

// Sequence is an ordered list of values.
type Sequence []Value

// Pair is a single key/value entry of a [Mapping].
type Pair struct {
	Key   string
	Value Value
}

// Mapping is an ordered list of key/value pairs. Keys are unique within a
// mapping and insertion order is preserved. Decoders keep the first position
// of a duplicated key and overwrite its value.
type Mapping []Pair

func (Null) value()     {}
func (Bool) value()     {}
func (Number) value()   {}
func (Text) value()     {}
func (Sequence) value() {}
func (Mapping) value()  {}

// Get returns the value stored under key and whether it is present.
func (m Mapping) Get(key string) (Value, bool) {
	for _, p := range m {
		if p.Key == key {
			return p.Value, true
		}
	}
	return nil, false
}

// Keys returns the mapping's keys in insertion order.
func (m Mapping) Keys() []string {
	keys := make([]string, len(m))
	for i, p := range m {
		keys[i] = p.Key
	}
	return keys
}

// set overwrites the value at an existing key, keeping its position, or
// appends a new pair.
func (m Mapping) set(key string, v Value) Mapping {
	for i, p := range m {
		if p.Key == key {
			m[i].Value = v
			return m
		}
	}
	return append(m, Pair{Key: key, Value: v})
}

// displayText renders a value as a single cell: scalars in plain form,
// null as the empty string, sequences and mappings as compact JSON.
func displayText(v Value) string {
	switch t := v.(type) {
	case nil, Null:
		return ""
	case Bool:
		return strconv.FormatBool(bool(t))
	case Number:
		return formatNumber(float64(t))
	case Text:
		return string(t)
	default:
		return compactJSON(v)
	}
}

// typeName names the shape of a value for self-describing outputs.
func typeName(v Value) string {
	switch v.(type) {
	case Bool:
		return "boolean"
	case Number:
		return "number"
	case Text:
		return "string"
	case Sequence:
		return "array"
	case Mapping:
		return "object"
	default:
		return "null"
	}
}

func isScalar(v Value) bool {
	switch v.(type) {
	case Sequence, Mapping:
		return false
	default:
		return true
	}
}

// formatNumber renders a float in its minimal decimal form, switching to
// exponent notation only for extreme magnitudes.
func formatNumber(f float64) string {
	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		return cleanExponent(s)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// cleanExponent rewrites e-09 style exponents as e-9.
func cleanExponent(s string) string {
	n := len(s)
	if n >= 4 && s[n-4] == 'e' && s[n-2] == '0' {
		return s[:n-2] + s[n-1:]
	}
	return s
}
