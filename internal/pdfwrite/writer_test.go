package pdfwrite

import (
	"compress/zlib"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentBytes(t *testing.T) {
	t.Parallel()

	doc := New(612, 792, false)
	doc.AddPage().Text(Helvetica, 12, 72, 700, "Hi")

	b, err := doc.Bytes()
	require.NoError(t, err)
	s := string(b)

	assert.True(t, strings.HasPrefix(s, "%PDF-1.4\n"))
	assert.True(t, strings.HasSuffix(s, "%%EOF\n"))
	assert.Contains(t, s, "/Type /Catalog")
	assert.Contains(t, s, "/Kids [6 0 R] /Count 1")
	assert.Contains(t, s, "/BaseFont /Helvetica")
	assert.Contains(t, s, "/BaseFont /Courier")
	assert.Contains(t, s, "/MediaBox [0 0 612.00 792.00]")
	assert.Contains(t, s, "(Hi) Tj")
}

func TestDocumentBytesTwoPages(t *testing.T) {
	t.Parallel()

	doc := New(612, 792, false)
	doc.AddPage().Text(Helvetica, 12, 72, 700, "one")
	doc.AddPage().Text(Helvetica, 12, 72, 700, "two")

	b, err := doc.Bytes()
	require.NoError(t, err)
	s := string(b)

	assert.Contains(t, s, "/Kids [6 0 R 8 0 R] /Count 2")
	assert.Contains(t, s, "5 0 obj")
	assert.Contains(t, s, "7 0 obj")
	assert.Contains(t, s, "(one) Tj")
	assert.Contains(t, s, "(two) Tj")
}

func TestDocumentBytesNoPages(t *testing.T) {
	t.Parallel()

	_, err := New(612, 792, false).Bytes()
	require.ErrorIs(t, err, errNoPages)
}

// TestXrefOffsets walks the cross reference table and checks that every
// recorded offset lands exactly on its object header. A drifting offset
// is the classic way a hand-assembled PDF goes subtly wrong.
func TestXrefOffsets(t *testing.T) {
	t.Parallel()

	doc := New(612, 792, false)
	doc.AddPage().Text(Helvetica, 12, 72, 700, "Hi")
	doc.SetInfo(Info{Title: "T", Producer: "P"})

	b, err := doc.Bytes()
	require.NoError(t, err)
	s := string(b)

	i := strings.LastIndex(s, "startxref\n")
	require.NotEqual(t, -1, i)
	rest := s[i+len("startxref\n"):]
	nl := strings.IndexByte(rest, '\n')
	require.Greater(t, nl, 0)
	pos, err := strconv.Atoi(rest[:nl])
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(s[pos:], "xref\n"))

	body := s[pos+len("xref\n"):]
	nl = strings.IndexByte(body, '\n')
	require.Greater(t, nl, 0)
	var first, count int
	_, err = fmt.Sscanf(body[:nl], "%d %d", &first, &count)
	require.NoError(t, err)
	assert.Equal(t, 0, first)
	assert.Equal(t, 8, count)

	entries := body[nl+1:]
	require.GreaterOrEqual(t, len(entries), count*20)
	for n := 1; n < count; n++ {
		entry := entries[n*20 : n*20+20]
		off, err := strconv.Atoi(entry[:10])
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(s[off:], fmt.Sprintf("%d 0 obj", n)),
			"object %d offset %d", n, off)
	}
}

func TestTextOperator(t *testing.T) {
	t.Parallel()

	p := &Page{}
	p.Text(Helvetica, 12, 72, 700.5, "Hi")
	assert.Equal(t, "BT\n/F1 12.00 Tf\n72.00 700.50 Td\n(Hi) Tj\nET\n", p.ops.String())

	p = &Page{}
	p.Text(Courier, 9, 100, 30, "grid")
	assert.Equal(t, "BT\n/F2 9.00 Tf\n100.00 30.00 Td\n(grid) Tj\nET\n", p.ops.String())
}

func TestDrawingOperators(t *testing.T) {
	t.Parallel()

	p := &Page{}
	p.Rect(10, 20, 100, 50)
	assert.Equal(t, "10.00 20.00 100.00 50.00 re S\n", p.ops.String())

	p = &Page{}
	p.FillRect(1, 2, 3, 4, 0.9)
	assert.Equal(t, "0.90 g\n1.00 2.00 3.00 4.00 re f\n0 g\n", p.ops.String())

	p = &Page{}
	p.Line(1, 2, 3, 4)
	assert.Equal(t, "1.00 2.00 m\n3.00 4.00 l\nS\n", p.ops.String())

	p = &Page{}
	p.SetLineWidth(0.5)
	assert.Equal(t, "0.50 w\n", p.ops.String())
}

func TestCompressedStream(t *testing.T) {
	t.Parallel()

	doc := New(612, 792, true)
	doc.AddPage().Text(Helvetica, 12, 72, 700, "Hi")

	b, err := doc.Bytes()
	require.NoError(t, err)
	s := string(b)

	assert.Contains(t, s, "/Filter /FlateDecode")
	assert.NotContains(t, s, "(Hi) Tj")

	m := regexp.MustCompile(`/Length (\d+) /Filter /FlateDecode >>\nstream\n`).FindStringSubmatchIndex(s)
	require.NotNil(t, m)
	length, err := strconv.Atoi(s[m[2]:m[3]])
	require.NoError(t, err)
	zr, err := zlib.NewReader(strings.NewReader(s[m[1] : m[1]+length]))
	require.NoError(t, err)
	inflated, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Contains(t, string(inflated), "(Hi) Tj")
}

func TestSetInfo(t *testing.T) {
	t.Parallel()

	doc := New(612, 792, false)
	doc.AddPage().Text(Helvetica, 12, 72, 700, "x")
	doc.SetInfo(Info{
		Title:    "My (Doc)",
		Producer: "pdfwrite",
		Created:  time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC),
	})

	b, err := doc.Bytes()
	require.NoError(t, err)
	s := string(b)

	assert.Contains(t, s, `/Title (My \(Doc\))`)
	assert.Contains(t, s, "/Producer (pdfwrite)")
	assert.Contains(t, s, "/CreationDate (D:20240102150405Z)")
	assert.Contains(t, s, "/Info 7 0 R")
}

func TestNoInfoByDefault(t *testing.T) {
	t.Parallel()

	doc := New(612, 792, false)
	doc.AddPage().Text(Helvetica, 12, 72, 700, "x")

	b, err := doc.Bytes()
	require.NoError(t, err)
	assert.NotContains(t, string(b), "/Info")
}

func TestPageReopen(t *testing.T) {
	t.Parallel()

	doc := New(612, 792, false)
	first := doc.AddPage()
	doc.AddPage().Text(Helvetica, 12, 72, 700, "second")
	require.Equal(t, 2, doc.PageCount())
	assert.Same(t, first, doc.Page(0))

	doc.Page(0).Text(Helvetica, 9, 72, 30, "late stamp")

	b, err := doc.Bytes()
	require.NoError(t, err)
	assert.Contains(t, string(b), "(late stamp) Tj")
	assert.Contains(t, string(b), "(second) Tj")
}

func TestStringWidth(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 18.0, StringWidth(Courier, 10, "abc"), 1e-9)
	assert.InDelta(t, 2.22, StringWidth(Helvetica, 10, "i"), 1e-9)
	assert.InDelta(t, 11.328, StringWidth(Helvetica, 12, "Hi"), 1e-9)
	// Runes outside the measured range use the fallback width.
	assert.InDelta(t, 5.56, StringWidth(Helvetica, 10, "é"), 1e-9)
	assert.Zero(t, StringWidth(Helvetica, 12, ""))
}

func TestEscapeText(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		in   string
		want string
	}{
		"plain":      {in: "plain", want: "plain"},
		"parens":     {in: "(x)", want: `\(x\)`},
		"backslash":  {in: `a\b`, want: `a\\b`},
		"newline":    {in: "new\nline", want: "new line"},
		"tab":        {in: "a\tb", want: "a b"},
		"latin one":  {in: "é", want: `\351`},
		"outside cp": {in: "日", want: "?"},
		"mixed":      {in: "café (hot)", want: `caf\351 \(hot\)`},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, escapeText(tt.in))
		})
	}
}

func TestNum(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "612.00", num(612))
	assert.Equal(t, "16.80", num(16.8))
	assert.Equal(t, "0.00", num(0))
	assert.Equal(t, "-3.46", num(-3.456))
}

func TestFontResource(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/F1", Helvetica.resource())
	assert.Equal(t, "/F2", Courier.resource())
}
