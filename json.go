package docfmt

import (
	"fmt"
	"io"
	"strings"
)

func writeJSON(w io.Writer, v Value) error {
	var sb strings.Builder
	appendJSON(&sb, v, "", "  ")
	sb.WriteByte('\n')
	_, err := io.WriteString(w, sb.String())
	return err
}

// compactJSON renders a value as minimal JSON, preserving mapping key
// order. Flattening uses it for the single-cell form of sequences.
func compactJSON(v Value) string {
	var sb strings.Builder
	appendJSON(&sb, v, "", "")
	return sb.String()
}

// appendJSON writes v as JSON. An empty step produces the compact form;
// otherwise elements are placed one per line at increasing indent. The
// standard encoder is unsuitable here because Go maps lose key order.
func appendJSON(sb *strings.Builder, v Value, indent, step string) {
	switch t := v.(type) {
	case nil, Null:
		sb.WriteString("null")
	case Bool:
		if t {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	case Number:
		sb.WriteString(formatNumber(float64(t)))
	case Text:
		sb.WriteString(quoteJSON(string(t)))
	case Sequence:
		if len(t) == 0 {
			sb.WriteString("[]")
			return
		}
		sb.WriteByte('[')
		inner := indent + step
		for i, el := range t {
			if i > 0 {
				sb.WriteByte(',')
			}
			if step != "" {
				sb.WriteByte('\n')
				sb.WriteString(inner)
			}
			appendJSON(sb, el, inner, step)
		}
		if step != "" {
			sb.WriteByte('\n')
			sb.WriteString(indent)
		}
		sb.WriteByte(']')
	case Mapping:
		if len(t) == 0 {
			sb.WriteString("{}")
			return
		}
		sb.WriteByte('{')
		inner := indent + step
		for i, p := range t {
			if i > 0 {
				sb.WriteByte(',')
			}
			if step != "" {
				sb.WriteByte('\n')
				sb.WriteString(inner)
			}
			sb.WriteString(quoteJSON(p.Key))
			sb.WriteByte(':')
			if step != "" {
				sb.WriteByte(' ')
			}
			appendJSON(sb, p.Value, inner, step)
		}
		if step != "" {
			sb.WriteByte('\n')
			sb.WriteString(indent)
		}
		sb.WriteByte('}')
	}
}

func quoteJSON(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&sb, `\u%04x`, r)
			} else {
				sb.WriteRune(r)
			}
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
