package docfmt

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"
)

// writeXML wraps the value in a synthetic <data> root carrying a generation
// timestamp and the value's shape, then emits elements preserving sequence
// order and mapping key order. Sequence elements share the fixed name
// "item" because an element name cannot repeat a collection key per item.
func writeXML(w io.Writer, v Value) error {
	var sb strings.Builder
	sb.WriteString(xml.Header)
	fmt.Fprintf(&sb, "<data generated=\"%s\" type=\"%s\">",
		time.Now().UTC().Format(time.RFC3339), typeName(v))
	if isScalar(v) {
		sb.WriteString(xmlEscape(displayText(v)))
		sb.WriteString("</data>\n")
	} else {
		sb.WriteByte('\n')
		appendXMLChildren(&sb, v, 1)
		sb.WriteString("</data>\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func appendXMLChildren(sb *strings.Builder, v Value, depth int) {
	switch t := v.(type) {
	case Mapping:
		for _, p := range t {
			writeXMLElement(sb, xmlName(p.Key), p.Value, depth)
		}
	case Sequence:
		for _, el := range t {
			writeXMLElement(sb, "item", el, depth)
		}
	}
}

func writeXMLElement(sb *strings.Builder, name string, v Value, depth int) {
	indent := strings.Repeat("  ", depth)
	if isScalar(v) {
		switch v.(type) {
		case nil, Null:
			fmt.Fprintf(sb, "%s<%s/>\n", indent, name)
		default:
			fmt.Fprintf(sb, "%s<%s>%s</%s>\n", indent, name, xmlEscape(displayText(v)), name)
		}
		return
	}
	if emptyContainer(v) {
		fmt.Fprintf(sb, "%s<%s/>\n", indent, name)
		return
	}
	fmt.Fprintf(sb, "%s<%s>\n", indent, name)
	appendXMLChildren(sb, v, depth+1)
	fmt.Fprintf(sb, "%s</%s>\n", indent, name)
}

func emptyContainer(v Value) bool {
	switch t := v.(type) {
	case Mapping:
		return len(t) == 0
	case Sequence:
		return len(t) == 0
	}
	return false
}

// xmlName coerces a mapping key into a legal element name: illegal runes
// become underscores, an empty key falls back to "field", and a name that
// cannot start the way it does gets an underscore prefix.
func xmlName(key string) string {
	var sb strings.Builder
	for _, r := range key {
		if r == '_' || r == '-' || r == '.' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
		} else {
			sb.WriteByte('_')
		}
	}
	name := sb.String()
	if name == "" {
		return "field"
	}
	if r := rune(name[0]); unicode.IsDigit(r) || r == '-' || r == '.' {
		return "_" + name
	}
	return name
}

func xmlEscape(s string) string {
	var buf bytes.Buffer
	// EscapeText fails only when the writer does; a bytes.Buffer cannot.
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
