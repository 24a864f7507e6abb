package docfmt

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// decode routes raw content to the decoder for its source format. Every
// decoder rejects blank input with [ErrEmptyInput] and malformed input
// with [ErrParse].
func decode(content []byte, from Format) (Value, error) {
	switch from {
	case JSON:
		return ParseJSON(content)
	case CSV:
		return DecodeCSV(content)
	case TXT:
		return DecodeText(content)
	case Markdown:
		return DecodeMarkdown(content)
	case HTML:
		return DecodeHTML(content)
	}
	return nil, fmt.Errorf("%w: no decoder for %s", ErrUnsupportedConversion, from)
}

// DecodeCSV decodes comma-separated text into a sequence of mappings, one
// per data row, keyed by the header row. Cells that read as numbers or
// booleans decode to those scalar types, everything else stays text. Rows
// shorter than the header omit the trailing keys; longer rows drop the
// surplus cells.
func DecodeCSV(raw []byte) (Value, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, fmt.Errorf("%w: no csv content", ErrEmptyInput)
	}
	r := csv.NewReader(bytes.NewReader(raw))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no csv content", ErrEmptyInput)
	}
	headers := rows[0]
	out := make(Sequence, 0, len(rows)-1)
	for _, row := range rows[1:] {
		m := Mapping{}
		for i, h := range headers {
			if i >= len(row) {
				break
			}
			m = m.set(h, cellValue(row[i]))
		}
		out = append(out, m)
	}
	return out, nil
}

// cellValue applies the dynamic typing a spreadsheet user expects.
func cellValue(s string) Value {
	switch s {
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return Number(f)
	}
	return Text(s)
}

// DecodeText decodes plain text into a single-page document value:
// paragraphs split on blank lines, carriage returns normalized away.
// Line breaks inside a paragraph survive, so a block of aligned numbers
// still reads as rows downstream.
func DecodeText(raw []byte) (Value, error) {
	text := strings.ReplaceAll(string(raw), "\r\n", "\n")
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: no text content", ErrEmptyInput)
	}
	var paras Sequence
	for _, block := range strings.Split(text, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		paras = append(paras, Text(block))
	}
	return documentValue("", paras), nil
}

// DecodeMarkdown decodes markdown into a single-page document value. ATX
// headings become their own paragraphs, and the first one doubles as the
// document title. Lines between blank lines join into one paragraph with
// single spaces, the way markdown treats soft wraps.
func DecodeMarkdown(raw []byte) (Value, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, fmt.Errorf("%w: no markdown content", ErrEmptyInput)
	}
	lines := strings.Split(strings.ReplaceAll(string(raw), "\r\n", "\n"), "\n")

	var (
		title string
		paras Sequence
		cur   strings.Builder
	)
	flush := func() {
		text := strings.TrimSpace(cur.String())
		if text != "" {
			paras = append(paras, Text(text))
		}
		cur.Reset()
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			flush()
			heading := strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
			heading = strings.TrimSpace(strings.TrimRight(heading, "#"))
			if heading == "" {
				continue
			}
			if title == "" {
				title = heading
			}
			paras = append(paras, Text(heading))
			continue
		}
		if trimmed == "" {
			flush()
			continue
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(trimmed)
	}
	flush()

	if len(paras) == 0 {
		return nil, fmt.Errorf("%w: no markdown content", ErrEmptyInput)
	}
	return documentValue(title, paras), nil
}

// DecodeHTML decodes an HTML page into a single-page document value. The
// title is read from the original markup, since sanitizing strips the
// head; the body is sanitized before walking so script payloads and event
// handlers never reach the extraction. Tables flatten to one text line
// per row, which lets an all-numeric table render as a grid downstream.
func DecodeHTML(raw []byte) (Value, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, fmt.Errorf("%w: no html content", ErrEmptyInput)
	}
	orig, err := html.Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	title := findHTMLTitle(orig)

	clean, err := html.Parse(bytes.NewReader(bluemonday.UGCPolicy().SanitizeBytes(raw)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	var paras Sequence
	collectHTMLBlocks(clean, &paras)
	if len(paras) == 0 {
		// Fallback: take whatever text the page has.
		if text := collectHTMLText(clean); text != "" {
			paras = append(paras, Text(text))
		}
	}
	if len(paras) == 0 {
		return nil, fmt.Errorf("%w: no html content", ErrEmptyInput)
	}
	return documentValue(title, paras), nil
}

// documentValue wraps paragraphs in the page-shaped mapping the engine
// classifies as a document.
func documentValue(title string, paras Sequence) Value {
	metadata := Mapping{}
	if title != "" {
		metadata = metadata.set("title", Text(title))
	}
	return Mapping{}.
		set("metadata", metadata).
		set("pages", Sequence{
			Mapping{}.
				set("pageNumber", Number(1)).
				set("paragraphs", paras),
		})
}

// findHTMLTitle extracts the <title> text, falling back to the first h1.
func findHTMLTitle(n *html.Node) string {
	if t := findElementText(n, atom.Title); t != "" {
		return t
	}
	return findElementText(n, atom.H1)
}

func findElementText(n *html.Node, a atom.Atom) string {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return collectHTMLText(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findElementText(c, a); t != "" {
			return t
		}
	}
	return ""
}

// collectHTMLBlocks walks the DOM and turns content blocks into
// paragraphs: headings, paragraphs, list items, preformatted blocks,
// quotes, and tables. Boilerplate containers are skipped whole.
func collectHTMLBlocks(n *html.Node, paras *Sequence) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Script, atom.Style, atom.Noscript, atom.Nav, atom.Footer, atom.Header:
			return
		case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6,
			atom.P, atom.Li, atom.Pre, atom.Blockquote:
			if text := collectHTMLText(n); text != "" {
				*paras = append(*paras, Text(text))
			}
			return
		case atom.Table:
			if text := htmlTableText(n); text != "" {
				*paras = append(*paras, Text(text))
			}
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectHTMLBlocks(c, paras)
	}
}

// collectHTMLText extracts all visible text from a node subtree,
// trimmed and space-joined.
func collectHTMLText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				if sb.Len() > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(text)
			}
		}
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Noscript:
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// htmlTableText flattens a table into one line per row, cells joined by
// spaces.
func htmlTableText(n *html.Node) string {
	var rows []string
	var findRows func(*html.Node)
	findRows = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Tr {
			var cells []string
			var findCells func(*html.Node)
			findCells = func(n *html.Node) {
				if n.Type == html.ElementNode && (n.DataAtom == atom.Td || n.DataAtom == atom.Th) {
					if text := collectHTMLText(n); text != "" {
						cells = append(cells, text)
					}
					return
				}
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					findCells(c)
				}
			}
			findCells(n)
			if len(cells) > 0 {
				rows = append(rows, strings.Join(cells, " "))
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			findRows(c)
		}
	}
	findRows(n)
	return strings.Join(rows, "\n")
}
