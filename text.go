package docfmt

import (
	"fmt"
	"io"
	"strings"
)

func writeText(w io.Writer, v Value) error {
	c := Classify(v)
	if c.Mode == ModeDocument {
		return writeTextDocument(w, c)
	}
	var sb strings.Builder
	appendTextTree(&sb, v, 0)
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeTextDocument(w io.Writer, c Classification) error {
	if title := documentTitle(c); title != "" {
		if _, err := fmt.Fprintf(w, "%s\n\n", title); err != nil {
			return err
		}
	}
	for i, page := range c.Pages {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "--- Page %d ---\n\n", page.Number); err != nil {
			return err
		}
		for _, para := range page.Paragraphs {
			if _, err := fmt.Fprintf(w, "%s\n\n", para); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "Words: %d\n", pageWords(page)); err != nil {
			return err
		}
	}
	return nil
}

// appendTextTree renders a value as an indented outline: scalar pairs on one
// line, nested containers on following lines two spaces deeper, sequence
// elements behind a dash.
func appendTextTree(sb *strings.Builder, v Value, depth int) {
	indent := strings.Repeat("  ", depth)
	switch t := v.(type) {
	case Mapping:
		if len(t) == 0 {
			sb.WriteString(indent + "{}\n")
			return
		}
		for _, p := range t {
			if isScalar(p.Value) {
				fmt.Fprintf(sb, "%s%s: %s\n", indent, p.Key, scalarLine(p.Value))
				continue
			}
			fmt.Fprintf(sb, "%s%s:\n", indent, p.Key)
			appendTextTree(sb, p.Value, depth+1)
		}
	case Sequence:
		if len(t) == 0 {
			sb.WriteString(indent + "[]\n")
			return
		}
		for _, el := range t {
			if isScalar(el) {
				fmt.Fprintf(sb, "%s- %s\n", indent, scalarLine(el))
				continue
			}
			sb.WriteString(indent + "-\n")
			appendTextTree(sb, el, depth+1)
		}
	default:
		sb.WriteString(indent + scalarLine(v) + "\n")
	}
}

// scalarLine is displayText except that null prints as the word null; an
// outline line with nothing after the colon would read as a container.
func scalarLine(v Value) string {
	switch v.(type) {
	case nil, Null:
		return "null"
	}
	return displayText(v)
}
