// Package pdfwrite assembles minimal PDF 1.4 files from text and vector
// drawing operations. Pages stay open until the document is finalized, so
// a caller can lay out every page first and then come back to stamp
// footers that depend on the final page count.
package pdfwrite

import (
	"bytes"
	"compress/zlib"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Font selects one of the two embedded base-14 fonts.
type Font int

const (
	// Helvetica is the proportional text font, resource /F1.
	Helvetica Font = iota
	// Courier is the fixed-width font, resource /F2.
	Courier
)

func (f Font) resource() string {
	if f == Courier {
		return "/F2"
	}
	return "/F1"
}

// Info is the optional document information dictionary.
type Info struct {
	Title    string
	Producer string
	Created  time.Time
}

// Document is an in-progress PDF with a single page size.
type Document struct {
	width    float64
	height   float64
	compress bool
	info     *Info
	pages    []*Page
}

// Page accumulates content stream operations for one page. Coordinates
// follow the PDF convention: origin at the bottom-left corner, units in
// points.
type Page struct {
	ops bytes.Buffer
}

// New creates an empty document with the given page size in points.
func New(width, height float64, compress bool) *Document {
	return &Document{width: width, height: height, compress: compress}
}

// SetInfo attaches an information dictionary to the document.
func (d *Document) SetInfo(info Info) { d.info = &info }

// AddPage appends a fresh page and returns it for drawing.
func (d *Document) AddPage() *Page {
	p := &Page{}
	d.pages = append(d.pages, p)
	return p
}

// Page returns the i-th page, zero-based. It remains writable until
// [Document.Bytes] is called.
func (d *Document) Page(i int) *Page { return d.pages[i] }

// PageCount reports the number of pages added so far.
func (d *Document) PageCount() int { return len(d.pages) }

// Text draws s at (x, y) in the given font and size.
func (p *Page) Text(font Font, size, x, y float64, s string) {
	fmt.Fprintf(&p.ops, "BT\n%s %s Tf\n%s %s Td\n(%s) Tj\nET\n",
		font.resource(), num(size), num(x), num(y), escapeText(s))
}

// Rect strokes a rectangle outline.
func (p *Page) Rect(x, y, w, h float64) {
	fmt.Fprintf(&p.ops, "%s %s %s %s re S\n", num(x), num(y), num(w), num(h))
}

// FillRect fills a rectangle with a gray level, 0 black to 1 white.
func (p *Page) FillRect(x, y, w, h, gray float64) {
	fmt.Fprintf(&p.ops, "%s g\n%s %s %s %s re f\n0 g\n",
		num(gray), num(x), num(y), num(w), num(h))
}

// Line strokes a straight segment.
func (p *Page) Line(x1, y1, x2, y2 float64) {
	fmt.Fprintf(&p.ops, "%s %s m\n%s %s l\nS\n",
		num(x1), num(y1), num(x2), num(y2))
}

// SetLineWidth changes the stroke width for subsequent operations.
func (p *Page) SetLineWidth(w float64) {
	fmt.Fprintf(&p.ops, "%s w\n", num(w))
}

var errNoPages = errors.New("pdfwrite: document has no pages")

// Bytes assembles the final PDF file. Object numbering is fixed: 1 is the
// catalog, 2 the page tree, 3 and 4 the fonts, then one content/page
// object pair per page, with the info dictionary last when present.
func (d *Document) Bytes() ([]byte, error) {
	if len(d.pages) == 0 {
		return nil, errNoPages
	}

	objCount := 4 + 2*len(d.pages)
	infoNum := 0
	if d.info != nil {
		objCount++
		infoNum = objCount
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	buf.WriteString("%\xE2\xE3\xCF\xD3\n")

	offsets := make([]int, objCount+1)
	writeObj := func(n int, body string) {
		offsets[n] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", n, body)
	}

	writeObj(1, "<< /Type /Catalog /Pages 2 0 R >>")

	var kids strings.Builder
	for i := range d.pages {
		if i > 0 {
			kids.WriteByte(' ')
		}
		fmt.Fprintf(&kids, "%d 0 R", 6+2*i)
	}
	writeObj(2, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>",
		kids.String(), len(d.pages)))

	writeObj(3, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")
	writeObj(4, "<< /Type /Font /Subtype /Type1 /BaseFont /Courier /Encoding /WinAnsiEncoding >>")

	for i, page := range d.pages {
		stream := page.ops.Bytes()
		filter := ""
		if d.compress {
			var zbuf bytes.Buffer
			zw := zlib.NewWriter(&zbuf)
			if _, err := zw.Write(stream); err != nil {
				return nil, err
			}
			if err := zw.Close(); err != nil {
				return nil, err
			}
			stream = zbuf.Bytes()
			filter = " /Filter /FlateDecode"
		}

		contentNum := 5 + 2*i
		offsets[contentNum] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n<< /Length %d%s >>\nstream\n", contentNum, len(stream), filter)
		buf.Write(stream)
		buf.WriteString("\nendstream\nendobj\n")

		writeObj(6+2*i, fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %s %s] /Contents %d 0 R /Resources << /Font << /F1 3 0 R /F2 4 0 R >> >> >>",
			num(d.width), num(d.height), contentNum))
	}

	if d.info != nil {
		writeObj(infoNum, d.infoDict())
	}

	xrefPos := buf.Len()
	buf.WriteString("xref\n")
	fmt.Fprintf(&buf, "0 %d\n", objCount+1)
	buf.WriteString("0000000000 65535 f \n")
	for i := 1; i <= objCount; i++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[i])
	}

	buf.WriteString("trailer\n")
	fmt.Fprintf(&buf, "<< /Size %d /Root 1 0 R", objCount+1)
	if infoNum > 0 {
		fmt.Fprintf(&buf, " /Info %d 0 R", infoNum)
	}
	buf.WriteString(" >>\n")
	fmt.Fprintf(&buf, "startxref\n%d\n", xrefPos)
	buf.WriteString("%%EOF\n")

	return buf.Bytes(), nil
}

func (d *Document) infoDict() string {
	var sb strings.Builder
	sb.WriteString("<<")
	if d.info.Title != "" {
		fmt.Fprintf(&sb, " /Title (%s)", escapeText(d.info.Title))
	}
	if d.info.Producer != "" {
		fmt.Fprintf(&sb, " /Producer (%s)", escapeText(d.info.Producer))
	}
	created := d.info.Created
	if created.IsZero() {
		created = time.Now()
	}
	fmt.Fprintf(&sb, " /CreationDate (%s)", created.UTC().Format("D:20060102150405Z"))
	sb.WriteString(" >>")
	return sb.String()
}

// num formats a coordinate with two decimals, the precision used
// throughout the content streams.
func num(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

// escapeText prepares s for a literal PDF string under WinAnsiEncoding:
// delimiters are backslash-escaped, bytes above ASCII become octal
// escapes, and runes the encoding cannot carry degrade to a question mark.
func escapeText(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch {
		case r == '(':
			sb.WriteString(`\(`)
		case r == ')':
			sb.WriteString(`\)`)
		case r == '\\':
			sb.WriteString(`\\`)
		case r < 32:
			sb.WriteByte(' ')
		case r < 128:
			sb.WriteRune(r)
		case r < 256:
			fmt.Fprintf(&sb, `\%03o`, r)
		default:
			sb.WriteByte('?')
		}
	}
	return sb.String()
}
