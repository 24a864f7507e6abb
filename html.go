package docfmt

import (
	"fmt"
	"html"
	"io"
	"strings"
	"time"
)

// htmlStyle is embedded into every HTML document so the output stands alone
// with no external resources.
const htmlStyle = `body { font-family: "Helvetica Neue", Arial, sans-serif; max-width: 60rem; margin: 2rem auto; padding: 0 1rem; color: #222; }
h1 { border-bottom: 2px solid #ccc; padding-bottom: 0.3rem; }
h2 { color: #444; margin-top: 2rem; }
table { border-collapse: collapse; width: 100%; margin: 1rem 0; }
th, td { border: 1px solid #ccc; padding: 0.4rem 0.6rem; text-align: left; }
th { background: #f2f2f2; }
tr:nth-child(even) td { background: #fafafa; }
section.page { border-bottom: 1px dashed #ccc; padding-bottom: 1rem; }
div.words { color: #777; font-size: 0.85rem; text-align: right; }
p.empty { color: #777; font-style: italic; }
ul.listing { list-style: none; padding-left: 0; }
ul.listing span.key { color: #555; font-weight: 600; }`

func writeHTML(w io.Writer, v Value, opts Options) error {
	c := Classify(v)
	title := "Converted Document"
	if t := documentTitle(c); t != "" {
		title = t
	}
	if err := writeHTMLHead(w, title, opts); err != nil {
		return err
	}
	var err error
	if c.Mode == ModeDocument {
		err = writeHTMLDocument(w, c, opts)
	} else {
		err = writeHTMLData(w, v)
	}
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "</body>"); err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, "</html>")
	return err
}

func writeHTMLHead(w io.Writer, title string, opts Options) error {
	if _, err := fmt.Fprintln(w, "<!DOCTYPE html>"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, `<html lang="en">`); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "<head>"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, `<meta charset="utf-8">`); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "<title>%s</title>\n", html.EscapeString(title)); err != nil {
		return err
	}
	if opts.IncludeMetadata {
		if _, err := fmt.Fprintln(w, `<meta name="generator" content="docfmt">`); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "<meta name=\"date\" content=\"%s\">\n", time.Now().UTC().Format(time.RFC3339)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "<style>\n%s\n</style>\n", htmlStyle); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "</head>"); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "<body>")
	return err
}

func writeHTMLDocument(w io.Writer, c Classification, opts Options) error {
	if title := documentTitle(c); title != "" {
		if _, err := fmt.Fprintf(w, "<h1>%s</h1>\n", html.EscapeString(title)); err != nil {
			return err
		}
	}
	for _, page := range c.Pages {
		if _, err := fmt.Fprintf(w, "<section class=\"page\">\n<h2>Page %d</h2>\n", page.Number); err != nil {
			return err
		}
		for _, para := range page.Paragraphs {
			if _, err := fmt.Fprintf(w, "<p>%s</p>\n", htmlParagraph(para, opts.PreserveFormatting)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "<div class=\"words\">%d words</div>\n", pageWords(page)); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, "</section>"); err != nil {
			return err
		}
	}
	return nil
}

// htmlParagraph escapes prose for element content. With formatting
// preserved, source line breaks survive as <br>.
func htmlParagraph(s string, preserve bool) string {
	out := html.EscapeString(s)
	if preserve {
		out = strings.ReplaceAll(out, "\n", "<br>\n")
	}
	return out
}

// writeHTMLData picks one of three renderings: a records table for a
// sequence with structured elements, a Property/Value table for a lone
// mapping, and an index:value listing for scalar sequences and bare
// scalars.
func writeHTMLData(w io.Writer, v Value) error {
	switch t := v.(type) {
	case Sequence:
		if len(t) == 0 {
			_, err := fmt.Fprintln(w, `<p class="empty">No records</p>`)
			return err
		}
		if allScalars(t) {
			return writeHTMLListing(w, t)
		}
		recs, headers := tabularRecords(t)
		return writeHTMLTable(w, headers, recs)
	case Mapping:
		return writeHTMLProperties(w, t)
	default:
		_, err := fmt.Fprintf(w, "<p class=\"scalar\">%s</p>\n", html.EscapeString(displayText(v)))
		return err
	}
}

func writeHTMLTable(w io.Writer, headers []string, recs []FlatRecord) error {
	if _, err := fmt.Fprintln(w, "<table>"); err != nil {
		return err
	}
	if _, err := fmt.Fprint(w, "<thead><tr>"); err != nil {
		return err
	}
	for _, h := range headers {
		if _, err := fmt.Fprintf(w, "<th>%s</th>", html.EscapeString(h)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, "</tr></thead>"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "<tbody>"); err != nil {
		return err
	}
	for _, rec := range recs {
		if _, err := fmt.Fprint(w, "<tr>"); err != nil {
			return err
		}
		for _, h := range headers {
			cell, _ := rec.Get(h)
			if _, err := fmt.Fprintf(w, "<td>%s</td>", html.EscapeString(cell)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, "</tr>"); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, "</tbody>"); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "</table>")
	return err
}

func writeHTMLProperties(w io.Writer, m Mapping) error {
	rec := Flatten(m)
	if _, err := fmt.Fprintln(w, "<table>"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "<thead><tr><th>Property</th><th>Value</th></tr></thead>"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "<tbody>"); err != nil {
		return err
	}
	for _, path := range rec.Paths() {
		val, _ := rec.Get(path)
		if _, err := fmt.Fprintf(w, "<tr><td>%s</td><td>%s</td></tr>\n", html.EscapeString(path), html.EscapeString(val)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, "</tbody>"); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "</table>")
	return err
}

func writeHTMLListing(w io.Writer, seq Sequence) error {
	if _, err := fmt.Fprintln(w, `<ul class="listing">`); err != nil {
		return err
	}
	for i, el := range seq {
		if _, err := fmt.Fprintf(w, "<li><span class=\"key\">%d</span>: %s</li>\n", i, html.EscapeString(displayText(el))); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "</ul>")
	return err
}

func allScalars(seq Sequence) bool {
	for _, el := range seq {
		if !isScalar(el) {
			return false
		}
	}
	return true
}
