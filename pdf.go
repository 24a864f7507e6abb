package docfmt

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/bjaus/docfmt/internal/pdfwrite"
)

const (
	footerFontSize = 9
	gridPadding    = 8.0
)

type geometry struct {
	width      float64
	height     float64
	margin     float64
	fontSize   float64
	lineHeight float64
}

func (g geometry) usableWidth() float64  { return g.width - 2*g.margin }
func (g geometry) usableHeight() float64 { return g.height - 2*g.margin }

func pageGeometry(opts Options) (geometry, error) {
	g := geometry{width: 612, height: 792}
	switch opts.PageSize {
	case PageA4:
		g.width, g.height = 595.28, 841.89
	case PageLegal:
		g.width, g.height = 612, 1008
	}
	g.margin = float64(opts.Margin)
	g.fontSize = float64(opts.FontSize)
	g.lineHeight = g.fontSize * 1.4
	if g.fontSize <= 0 || g.margin < 0 || g.usableWidth() <= 0 || g.usableHeight() < g.lineHeight {
		return geometry{}, fmt.Errorf("%w: page %.0fx%.0f leaves no room for %.0fpt text inside margin %.0f",
			ErrRender, g.width, g.height, g.fontSize, g.margin)
	}
	return g, nil
}

// renderPage pairs a physical page with the prose lines placed on it and
// the word count to stamp in its footer, -1 when the page carries none.
type renderPage struct {
	page  *pdfwrite.Page
	lines []string
	words int
}

// docRender is the layout cursor: the page being written and the baseline
// position on it. Pages accumulate here so the footer pass can revisit
// them once the total count is known.
type docRender struct {
	doc   *pdfwrite.Document
	geo   geometry
	pages []*renderPage
	cur   *renderPage
	y     float64
}

func newDocRender(doc *pdfwrite.Document, geo geometry) *docRender {
	r := &docRender{doc: doc, geo: geo}
	r.newPage()
	return r
}

func (r *docRender) newPage() {
	r.cur = &renderPage{page: r.doc.AddPage(), words: -1}
	r.pages = append(r.pages, r.cur)
	r.y = r.geo.height - r.geo.margin
}

// emitLine places one prose line, breaking to a new page first when the
// line would cross into the bottom margin.
func (r *docRender) emitLine(line string) {
	if r.y-r.geo.lineHeight < r.geo.margin {
		r.newPage()
	}
	r.y -= r.geo.lineHeight
	r.cur.page.Text(pdfwrite.Helvetica, r.geo.fontSize, r.geo.margin, r.y, line)
	r.cur.lines = append(r.cur.lines, line)
}

// renderDocument lays out a document-classified value: every logical page
// starts a physical page, paragraphs flow with mid-paragraph breaks as
// needed, and a declared word count is recorded against the physical page
// where the logical page's text ended.
func renderDocument(r *docRender, c Classification) {
	for i, pg := range c.Pages {
		if i > 0 {
			r.newPage()
		}
		for _, para := range pg.Paragraphs {
			r.paragraph(para, !c.FullText)
		}
		if pg.WordCount >= 0 {
			r.cur.words = pg.WordCount
		}
	}
}

func (r *docRender) paragraph(text string, allowGrid bool) {
	if allowGrid {
		if lines, ok := numericGrid(text); ok {
			r.gridBox(lines)
			return
		}
	}
	for _, line := range wrapText(text, r.geo.fontSize, r.geo.usableWidth()) {
		r.emitLine(line)
	}
}

var numericLine = regexp.MustCompile(`^[\d\s]+$`)

// numericGrid reports whether a paragraph is mostly numeric rows: at least
// 80% of its non-empty lines contain nothing but digits and whitespace.
// The comparison is integer arithmetic so the boundary is exact. All lines
// are returned, empties included, to keep the original row spacing in the
// box.
func numericGrid(text string) ([]string, bool) {
	lines := strings.Split(text, "\n")
	nonEmpty, matching := 0, 0
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		nonEmpty++
		if numericLine.MatchString(line) {
			matching++
		}
	}
	if nonEmpty == 0 {
		return nil, false
	}
	if matching*100 >= nonEmpty*80 {
		return lines, true
	}
	return nil, false
}

// gridBox renders a numeric paragraph as a bordered monospace block,
// centered horizontally. The box height is fixed by its line count, so
// the whole box moves to the next page when it does not fit below the
// cursor. A box taller than a full page draws from the top anyway.
func (r *docRender) gridBox(lines []string) {
	boxH := float64(len(lines))*r.geo.lineHeight + 2*gridPadding
	if r.y-boxH < r.geo.margin && r.y < r.geo.height-r.geo.margin {
		r.newPage()
	}
	boxW := float64(gridWidth(lines))*r.geo.fontSize*0.6 + 2*gridPadding
	if lim := r.geo.usableWidth(); boxW > lim {
		boxW = lim
	}
	x := r.geo.margin + (r.geo.usableWidth()-boxW)/2
	top := r.y
	r.cur.page.Rect(x, top-boxH, boxW, boxH)
	y := top - gridPadding
	for _, line := range lines {
		y -= r.geo.lineHeight
		r.cur.page.Text(pdfwrite.Courier, r.geo.fontSize, x+gridPadding, y, line)
	}
	r.y = top - boxH
}

// wrapText greedily packs words into display lines no wider than limit
// points. A single word wider than the limit stays whole on its own line
// rather than being split.
func wrapText(text string, fontSize, limit float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	cur := words[0]
	for _, word := range words[1:] {
		candidate := cur + " " + word
		if pdfwrite.StringWidth(pdfwrite.Helvetica, fontSize, candidate) > limit {
			lines = append(lines, cur)
			cur = word
			continue
		}
		cur = candidate
	}
	return append(lines, cur)
}

// stampDocumentFooters is the second pass over a finished document layout:
// the global totals line and centered page marker go on every page, and
// the recorded word counts on theirs. It runs only after layout because
// the totals are unknowable until then.
func stampDocumentFooters(r *docRender, docType string, totalChars int) {
	total := len(r.pages)
	global := fmt.Sprintf("%s | %d pages | %d chars", docType, total, totalChars)
	for i, pg := range r.pages {
		if pg.words >= 0 {
			pg.page.Text(pdfwrite.Helvetica, footerFontSize,
				r.geo.margin, r.geo.margin-r.geo.lineHeight,
				fmt.Sprintf("%d words", pg.words))
		}
		pg.page.Text(pdfwrite.Helvetica, footerFontSize, r.geo.margin, 30, global)
		marker := fmt.Sprintf("%d / %d", i+1, total)
		mx := (r.geo.width - pdfwrite.StringWidth(pdfwrite.Helvetica, footerFontSize, marker)) / 2
		pg.page.Text(pdfwrite.Helvetica, footerFontSize, mx, 18, marker)
	}
}

// renderData lays out a data-classified value: a sequence becomes a
// paginated records table, a lone mapping a Property/Value table, and a
// bare scalar a single printed line.
func renderData(r *docRender, v Value) {
	switch t := v.(type) {
	case Sequence:
		if len(t) == 0 {
			r.emitLine("[]")
			return
		}
		recs, headers := tabularRecords(t)
		rows := make([][]string, len(recs))
		for i, rec := range recs {
			row := make([]string, len(headers))
			for j, h := range headers {
				row[j], _ = rec.Get(h)
			}
			rows[i] = row
		}
		r.dataTable(headers, rows)
	case Mapping:
		rec := Flatten(t)
		rows := make([][]string, 0, rec.Len())
		for _, path := range rec.Paths() {
			val, _ := rec.Get(path)
			rows = append(rows, []string{path, val})
		}
		r.dataTable([]string{"Property", "Value"}, rows)
	default:
		r.emitLine(displayText(v))
	}
}

// dataTable draws a header row plus one row per record, starting a new
// page, header repeated, whenever the next row would not fit.
func (r *docRender) dataTable(headers []string, rows [][]string) {
	r.tableHeader(headers)
	for _, row := range rows {
		if r.y-r.geo.lineHeight < r.geo.margin {
			r.newPage()
			r.tableHeader(headers)
		}
		r.tableRow(row)
	}
}

func (r *docRender) tableHeader(headers []string) {
	if r.y-r.geo.lineHeight < r.geo.margin {
		r.newPage()
	}
	r.cur.page.FillRect(r.geo.margin, r.y-r.geo.lineHeight, r.geo.usableWidth(), r.geo.lineHeight, 0.9)
	r.tableRow(headers)
	r.cur.page.Line(r.geo.margin, r.y-2, r.geo.margin+r.geo.usableWidth(), r.y-2)
}

func (r *docRender) tableRow(cells []string) {
	colW := r.geo.usableWidth() / float64(len(cells))
	r.y -= r.geo.lineHeight
	x := r.geo.margin
	for _, cell := range cells {
		r.cur.page.Text(pdfwrite.Helvetica, r.geo.fontSize, x+2, r.y,
			truncateCell(cell, r.geo.fontSize, colW-4))
		x += colW
	}
}

// truncateCell shortens a cell until it fits the column, marking the cut
// with a trailing ellipsis.
func truncateCell(s string, fontSize, limit float64) string {
	if pdfwrite.StringWidth(pdfwrite.Helvetica, fontSize, s) <= limit {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		if pdfwrite.StringWidth(pdfwrite.Helvetica, fontSize, string(runes)+"...") <= limit {
			return string(runes) + "..."
		}
	}
	return "..."
}

func stampDataFooters(r *docRender) {
	total := len(r.pages)
	for i, pg := range r.pages {
		marker := fmt.Sprintf("Page %d of %d", i+1, total)
		mx := (r.geo.width - pdfwrite.StringWidth(pdfwrite.Helvetica, footerFontSize, marker)) / 2
		pg.page.Text(pdfwrite.Helvetica, footerFontSize, mx, 30, marker)
	}
}

func writePDF(w io.Writer, v Value, opts Options) error {
	geo, err := pageGeometry(opts)
	if err != nil {
		return err
	}
	doc := pdfwrite.New(geo.width, geo.height, opts.Compression)
	c := Classify(v)
	if opts.IncludeMetadata {
		title := documentTitle(c)
		if title == "" {
			title = "Converted Document"
		}
		doc.SetInfo(pdfwrite.Info{Title: title, Producer: "docfmt", Created: time.Now()})
	}
	r := newDocRender(doc, geo)
	if c.Mode == ModeDocument {
		renderDocument(r, c)
		stampDocumentFooters(r, documentType(c), totalCharacters(c))
	} else {
		renderData(r, v)
		stampDataFooters(r)
	}
	b, err := doc.Bytes()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	if err := verifyPDF(b, doc.PageCount()); err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// verifyPDF cross-checks assembled bytes with pdfcpu before they leave the
// engine: the file must validate, and its page count must agree with what
// layout produced.
func verifyPDF(b []byte, pages int) error {
	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(b), conf)
	if err != nil {
		return fmt.Errorf("%w: generated pdf failed validation: %v", ErrRender, err)
	}
	if ctx.PageCount != pages {
		return fmt.Errorf("%w: generated pdf reports %d pages, layout produced %d",
			ErrRender, ctx.PageCount, pages)
	}
	return nil
}
