package docfmt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// ParseJSON decodes raw JSON into a [Value]. Mapping keys keep their
// document order, which the standard map-based decoding would scramble.
// It fails with [ErrEmptyInput] on blank input and [ErrParse] on malformed
// syntax; it never returns a partial value.
func ParseJSON(raw []byte) (Value, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, fmt.Errorf("%w: no json content", ErrEmptyInput)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	v, err := parseValue(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after top-level value", ErrParse)
	}
	return v, nil
}

func parseValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return parseToken(dec, tok)
}

func parseToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case nil:
		return Null{}, nil
	case bool:
		return Bool(t), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return nil, err
		}
		return Number(f), nil
	case string:
		return Text(t), nil
	case json.Delim:
		switch t {
		case '{':
			return parseMapping(dec)
		case '[':
			return parseSequence(dec)
		}
		return nil, fmt.Errorf("unexpected delimiter %q", t.String())
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

func parseMapping(dec *json.Decoder) (Value, error) {
	m := Mapping{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is %v, not a string", tok)
		}
		v, err := parseValue(dec)
		if err != nil {
			return nil, err
		}
		m = m.set(key, v)
	}
	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return m, nil
}

func parseSequence(dec *json.Decoder) (Value, error) {
	s := Sequence{}
	for dec.More() {
		v, err := parseValue(dec)
		if err != nil {
			return nil, err
		}
		s = append(s, v)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return s, nil
}
