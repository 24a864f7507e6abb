package docfmt

import (
	"fmt"
	"io"
	"strings"
)

func writeMarkdown(w io.Writer, v Value) error {
	c := Classify(v)
	if c.Mode == ModeDocument {
		return writeMarkdownDocument(w, c)
	}
	return writeMarkdownData(w, v)
}

func writeMarkdownDocument(w io.Writer, c Classification) error {
	if title := documentTitle(c); title != "" {
		if _, err := fmt.Fprintf(w, "# %s\n\n", title); err != nil {
			return err
		}
	}
	for _, page := range c.Pages {
		if _, err := fmt.Fprintf(w, "## Page %d\n\n", page.Number); err != nil {
			return err
		}
		for _, para := range page.Paragraphs {
			if _, err := fmt.Fprintf(w, "%s\n\n", para); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "_%d words_\n\n", pageWords(page)); err != nil {
			return err
		}
	}
	return nil
}

func writeMarkdownData(w io.Writer, v Value) error {
	if isScalar(v) {
		_, err := fmt.Fprintf(w, "%s\n", mdCell(displayText(v)))
		return err
	}
	if m, ok := v.(Mapping); ok {
		return writeMarkdownProperties(w, m)
	}
	recs, headers := tabularRecords(v)
	if len(recs) == 0 || len(headers) == 0 {
		return nil
	}
	rows := make([][]string, len(recs))
	for i, rec := range recs {
		row := make([]string, len(headers))
		for j, h := range headers {
			cell, _ := rec.Get(h)
			row[j] = mdCell(cell)
		}
		rows[i] = row
	}
	escaped := make([]string, len(headers))
	for i, h := range headers {
		escaped[i] = mdCell(h)
	}
	return writeMarkdownTable(w, escaped, rows)
}

// writeMarkdownProperties renders a lone mapping as a two-column
// Property/Value table over its flattened leaves.
func writeMarkdownProperties(w io.Writer, m Mapping) error {
	rec := Flatten(m)
	rows := make([][]string, 0, rec.Len())
	for _, path := range rec.Paths() {
		val, _ := rec.Get(path)
		rows = append(rows, []string{mdCell(path), mdCell(val)})
	}
	return writeMarkdownTable(w, []string{"Property", "Value"}, rows)
}

func writeMarkdownTable(w io.Writer, headers []string, rows [][]string) error {
	widths := columnWidths(headers, rows, 3)
	if err := writeMarkdownRow(w, headers, widths); err != nil {
		return err
	}
	seps := make([]string, len(headers))
	for i, width := range widths {
		seps[i] = strings.Repeat("-", width)
	}
	if err := writeMarkdownRow(w, seps, widths); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writeMarkdownRow(w, row, widths); err != nil {
			return err
		}
	}
	return nil
}

func writeMarkdownRow(w io.Writer, cells []string, widths []int) error {
	padded := make([]string, len(cells))
	for i, c := range cells {
		padded[i] = padCell(c, widths[i])
	}
	_, err := fmt.Fprintf(w, "| %s |\n", strings.Join(padded, " | "))
	return err
}

// mdCell escapes a table cell: pipes would split the cell, newlines the row.
func mdCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, "\r\n", "<br>")
	s = strings.ReplaceAll(s, "\n", "<br>")
	return s
}
