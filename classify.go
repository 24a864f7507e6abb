package docfmt

import "strings"

// Mode is the structural judgment over a decoded value.
type Mode int

const (
	// ModeData treats the value as record/table-shaped data.
	ModeData Mode = iota
	// ModeDocument treats the value as paged prose.
	ModeDocument
)

func (m Mode) String() string {
	if m == ModeDocument {
		return "document"
	}
	return "data"
}

// Page is one logical page of a document-classified value.
type Page struct {
	Number     int
	Paragraphs []string
	// WordCount is the page's declared word count, or -1 when the source
	// carries none.
	WordCount int
}

// Classification is the result of [Classify]: the chosen mode, the
// materialized pages in document mode, and the original value.
type Classification struct {
	Mode  Mode
	Pages []Page
	// FullText marks a document built from a bare fullText field rather
	// than an explicit page list. Such documents skip numeric grid
	// detection when rendered.
	FullText bool
	Value    Value
}

// Classify decides between document and data treatment of a value. A value
// is a document when it is a mapping whose "pages" key holds a non-empty
// sequence with at least one page carrying a "paragraphs" sequence, or when
// the mapping pairs a "fullText" string with a "metadata" mapping. Anything
// else is data. This is a structural sniff, not a validation: missing or
// odd fields fall through to data, never an error.
func Classify(v Value) Classification {
	m, ok := v.(Mapping)
	if !ok {
		return Classification{Mode: ModeData, Value: v}
	}
	if pages, ok := pageList(m); ok {
		return Classification{Mode: ModeDocument, Pages: pages, Value: v}
	}
	if pages, ok := fullTextPages(m); ok {
		return Classification{Mode: ModeDocument, Pages: pages, FullText: true, Value: v}
	}
	return Classification{Mode: ModeData, Value: v}
}

func pageList(m Mapping) ([]Page, bool) {
	pv, ok := m.Get("pages")
	if !ok {
		return nil, false
	}
	seq, ok := pv.(Sequence)
	if !ok || len(seq) == 0 {
		return nil, false
	}
	found := false
	pages := make([]Page, 0, len(seq))
	for i, el := range seq {
		page := Page{Number: i + 1, WordCount: -1}
		if pm, ok := el.(Mapping); ok {
			if n, ok := pm.Get("pageNumber"); ok {
				if num, ok := n.(Number); ok {
					page.Number = int(num)
				}
			}
			if wc, ok := pm.Get("wordCount"); ok {
				if num, ok := wc.(Number); ok {
					page.WordCount = int(num)
				}
			}
			if ps, ok := pm.Get("paragraphs"); ok {
				if pseq, ok := ps.(Sequence); ok {
					found = true
					for _, pe := range pseq {
						page.Paragraphs = append(page.Paragraphs, paragraphText(pe))
					}
				}
			}
		}
		pages = append(pages, page)
	}
	if !found {
		return nil, false
	}
	return pages, true
}

func fullTextPages(m Mapping) ([]Page, bool) {
	ft, ok := m.Get("fullText")
	if !ok {
		return nil, false
	}
	text, ok := ft.(Text)
	if !ok {
		return nil, false
	}
	md, ok := m.Get("metadata")
	if !ok {
		return nil, false
	}
	if _, ok := md.(Mapping); !ok {
		return nil, false
	}
	return []Page{{
		Number:     1,
		Paragraphs: splitPseudoParagraphs(string(text)),
		WordCount:  -1,
	}}, true
}

// splitPseudoParagraphs splits full text on the literal two-character
// sequence backslash-n, doubled. Upstream document sources carry their
// newlines pre-escaped, so a real control newline does not end a
// pseudo-paragraph here.
func splitPseudoParagraphs(text string) []string {
	parts := strings.Split(text, `\n\n`)
	paras := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			continue
		}
		paras = append(paras, p)
	}
	return paras
}

// paragraphText renders a paragraph element as prose. Non-text elements
// are tolerated and stringified rather than rejected.
func paragraphText(v Value) string {
	if t, ok := v.(Text); ok {
		return string(t)
	}
	return displayText(v)
}

// documentTitle extracts a display title for a document-classified value:
// metadata.title when present, then a top-level title field.
func documentTitle(c Classification) string {
	m, ok := c.Value.(Mapping)
	if !ok {
		return ""
	}
	if md, ok := m.Get("metadata"); ok {
		if mm, ok := md.(Mapping); ok {
			if t, ok := mm.Get("title"); ok {
				if s, ok := t.(Text); ok {
					return string(s)
				}
			}
		}
	}
	if t, ok := m.Get("title"); ok {
		if s, ok := t.(Text); ok {
			return string(s)
		}
	}
	return ""
}

// documentType names the document kind for footers: a top-level type field
// when present, then metadata.type, then "Document".
func documentType(c Classification) string {
	m, ok := c.Value.(Mapping)
	if ok {
		if t, ok := m.Get("type"); ok {
			if s, ok := t.(Text); ok && s != "" {
				return string(s)
			}
		}
		if md, ok := m.Get("metadata"); ok {
			if mm, ok := md.(Mapping); ok {
				if t, ok := mm.Get("type"); ok {
					if s, ok := t.(Text); ok && s != "" {
						return string(s)
					}
				}
			}
		}
	}
	return "Document"
}

// pageWords reports the word count to display for a page: the declared
// count when the source carried one, otherwise a fresh count over the
// page's paragraphs.
func pageWords(p Page) int {
	if p.WordCount >= 0 {
		return p.WordCount
	}
	total := 0
	for _, para := range p.Paragraphs {
		total += len(strings.Fields(para))
	}
	return total
}

// totalCharacters sums the rune count of every paragraph across pages.
func totalCharacters(c Classification) int {
	total := 0
	for _, pg := range c.Pages {
		for _, para := range pg.Paragraphs {
			total += len([]rune(para))
		}
	}
	return total
}

// totalWords counts whitespace-separated words across pages.
func totalWords(c Classification) int {
	total := 0
	for _, pg := range c.Pages {
		for _, para := range pg.Paragraphs {
			total += len(strings.Fields(para))
		}
	}
	return total
}
