package docfmt

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
var (
	ErrUnknownFormat         = errors.New("unknown format")
	ErrUnsupportedConversion = errors.New("unsupported conversion")
	ErrEmptyInput            = errors.New("empty input")
	ErrParse                 = errors.New("malformed input")
	ErrRender                = errors.New("render failure")
)

// Format identifies a source or target format.
type Format string

const (
	PDF      Format = "pdf"
	DOCX     Format = "docx"
	RTF      Format = "rtf"
	ODT      Format = "odt"
	EPUB     Format = "epub"
	TXT      Format = "txt"
	Markdown Format = "md"
	HTML     Format = "html"
	LaTeX    Format = "latex"
	CSV      Format = "csv"
	JSON     Format = "json"
	XML      Format = "xml"
	PNG      Format = "png"
	JPG      Format = "jpg"
	TSV      Format = "tsv"
	YAML     Format = "yaml"
	JSONL    Format = "jsonl"
)

var formats = []Format{
	PDF, DOCX, RTF, ODT, EPUB, TXT, Markdown, HTML, LaTeX, CSV, JSON, XML,
	PNG, JPG, TSV, YAML, JSONL,
}

// sourceFormats are the formats the engine can decode; targetFormats the
// ones it can serialize. Every (source, target) pair is supported, so the
// matrix is their product.
var (
	sourceFormats = []Format{JSON, CSV, TXT, Markdown, HTML}
	targetFormats = []Format{PDF, CSV, TSV, HTML, XML, TXT, Markdown, JSON, YAML, JSONL}
)

var supportMatrix = buildMatrix()

func buildMatrix() map[Format]map[Format]bool {
	m := make(map[Format]map[Format]bool, len(sourceFormats))
	for _, src := range sourceFormats {
		row := make(map[Format]bool, len(targetFormats))
		for _, tgt := range targetFormats {
			row[tgt] = true
		}
		m[src] = row
	}
	return m
}

var mimeTypes = map[Format]string{
	PDF:      "application/pdf",
	DOCX:     "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	RTF:      "application/rtf",
	ODT:      "application/vnd.oasis.opendocument.text",
	EPUB:     "application/epub+zip",
	TXT:      "text/plain",
	Markdown: "text/markdown",
	HTML:     "text/html",
	LaTeX:    "application/x-latex",
	CSV:      "text/csv",
	JSON:     "application/json",
	XML:      "application/xml",
	PNG:      "image/png",
	JPG:      "image/jpeg",
	TSV:      "text/tab-separated-values",
	YAML:     "application/x-yaml",
	JSONL:    "application/x-ndjson",
}

// String returns the format name.
func (f Format) String() string { return string(f) }

// MimeType returns the MIME type for the format, or application/octet-stream
// for unknown names.
func (f Format) MimeType() string {
	if mt, ok := mimeTypes[f]; ok {
		return mt
	}
	return "application/octet-stream"
}

// Formats returns every recognized format name.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// Sources returns the formats the engine can decode.
func Sources() []Format {
	out := make([]Format, len(sourceFormats))
	copy(out, sourceFormats)
	return out
}

// Targets returns the formats the engine can serialize.
func Targets() []Format {
	out := make([]Format, len(targetFormats))
	copy(out, targetFormats)
	return out
}

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// CanConvert reports whether the (from, to) pair is implemented.
func CanConvert(from, to Format) bool {
	return supportMatrix[from][to]
}

// Conversion is one supported (source, target) pair.
type Conversion struct {
	From Format `json:"from"`
	To   Format `json:"to"`
}

// Conversions lists every supported pair in stable order.
func Conversions() []Conversion {
	out := make([]Conversion, 0, len(sourceFormats)*len(targetFormats))
	for _, src := range sourceFormats {
		for _, tgt := range targetFormats {
			out = append(out, Conversion{From: src, To: tgt})
		}
	}
	return out
}
