package docfmt

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
)

// Quality selects rendering quality for image-bearing targets. The text
// targets do not consume it; it is recognized so option structs pass
// through untouched.
type Quality string

const (
	QualityLow    Quality = "low"
	QualityMedium Quality = "medium"
	QualityHigh   Quality = "high"
)

// PageSize names a print page geometry.
type PageSize string

const (
	PageA4     PageSize = "a4"
	PageLetter PageSize = "letter"
	PageLegal  PageSize = "legal"
)

// Options tune a single conversion. Fields irrelevant to the chosen
// target are ignored, never an error.
type Options struct {
	Quality            Quality
	FontSize           int
	PageSize           PageSize
	Margin             int
	PreserveFormatting bool
	IncludeMetadata    bool
	Compression        bool
}

func (o Options) withDefaults() Options {
	if o.Quality == "" {
		o.Quality = QualityMedium
	}
	if o.FontSize == 0 {
		o.FontSize = 12
	}
	if o.PageSize == "" {
		o.PageSize = PageLetter
	}
	if o.Margin == 0 {
		o.Margin = 72
	}
	return o
}

// Meta describes a finished conversion.
type Meta struct {
	OriginalSize     int   `json:"originalSize"`
	ConvertedSize    int   `json:"convertedSize"`
	ProcessingTimeMs int64 `json:"processingTimeMs"`
	IsZip            bool  `json:"isZip"`
	ImageCount       int   `json:"imageCount,omitempty"`
}

// Result is the output of one conversion. The engine keeps no reference
// to it after returning.
type Result struct {
	Bytes    []byte
	MimeType string
	Meta     Meta
}

// Config configures a [Converter].
type Config struct {
	// Logger receives conversion debug logs. Defaults to [slog.Default].
	Logger *slog.Logger
}

func (c *Config) defaults() {
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Converter runs conversions. It holds no per-call state and is safe for
// concurrent use.
type Converter struct {
	logger      *slog.Logger
	mdConverter *converter.Converter
}

// New creates a Converter.
func New(cfg Config) *Converter {
	cfg.defaults()
	return &Converter{
		logger: cfg.Logger,
		mdConverter: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
}

var defaultConverter = New(Config{Logger: slog.New(slog.DiscardHandler)})

// Convert runs a single conversion with a silent default converter.
func Convert(content []byte, from, to Format, opts Options) (Result, error) {
	return defaultConverter.Convert(content, from, to, opts)
}

// Convert decodes content tagged with its source format and serializes it
// into the target format. The support matrix is checked before any other
// work, and the processing time reported in the result covers the
// serializer call only.
func (c *Converter) Convert(content []byte, from, to Format, opts Options) (Result, error) {
	if !CanConvert(from, to) {
		return Result{}, fmt.Errorf("%w: %s to %s", ErrUnsupportedConversion, from, to)
	}
	opts = opts.withDefaults()

	// HTML to Markdown short-circuits the value pipeline: the dedicated
	// converter keeps links and emphasis that generic decoding flattens.
	if from == HTML && to == Markdown {
		return c.convertHTMLMarkdown(content)
	}

	v, err := decode(content, from)
	if err != nil {
		return Result{}, fmt.Errorf("convert %s to %s: %w", from, to, err)
	}

	var buf bytes.Buffer
	start := time.Now()
	err = serialize(&buf, v, to, opts)
	elapsed := time.Since(start)
	if err != nil {
		if !tagged(err) {
			err = fmt.Errorf("%w: %v", ErrRender, err)
		}
		return Result{}, fmt.Errorf("convert %s to %s: %w", from, to, err)
	}

	c.logger.Debug("converted",
		"from", from.String(),
		"to", to.String(),
		"originalSize", len(content),
		"convertedSize", buf.Len(),
		"ms", elapsed.Milliseconds(),
	)

	return Result{
		Bytes:    buf.Bytes(),
		MimeType: to.MimeType(),
		Meta: Meta{
			OriginalSize:     len(content),
			ConvertedSize:    buf.Len(),
			ProcessingTimeMs: elapsed.Milliseconds(),
		},
	}, nil
}

func (c *Converter) convertHTMLMarkdown(content []byte) (Result, error) {
	if len(bytes.TrimSpace(content)) == 0 {
		return Result{}, fmt.Errorf("convert %s to %s: %w: no html content", HTML, Markdown, ErrEmptyInput)
	}
	start := time.Now()
	md, err := c.mdConverter.ConvertString(string(content))
	elapsed := time.Since(start)
	if err != nil {
		return Result{}, fmt.Errorf("convert %s to %s: %w: %v", HTML, Markdown, ErrRender, err)
	}
	out := []byte(md)
	c.logger.Debug("converted",
		"from", HTML.String(),
		"to", Markdown.String(),
		"originalSize", len(content),
		"convertedSize", len(out),
		"ms", elapsed.Milliseconds(),
	)
	return Result{
		Bytes:    out,
		MimeType: Markdown.MimeType(),
		Meta: Meta{
			OriginalSize:     len(content),
			ConvertedSize:    len(out),
			ProcessingTimeMs: elapsed.Milliseconds(),
		},
	}, nil
}

func serialize(w io.Writer, v Value, to Format, opts Options) error {
	switch to {
	case PDF:
		return writePDF(w, v, opts)
	case CSV:
		return writeCSV(w, v)
	case TSV:
		return writeTSV(w, v)
	case HTML:
		return writeHTML(w, v, opts)
	case XML:
		return writeXML(w, v)
	case TXT:
		return writeText(w, v)
	case Markdown:
		return writeMarkdown(w, v)
	case JSON:
		return writeJSON(w, v)
	case YAML:
		return writeYAML(w, v)
	case JSONL:
		return writeJSONL(w, v)
	}
	return fmt.Errorf("%w: no serializer for %s", ErrUnsupportedConversion, to)
}

// tagged reports whether err already wraps one of the package sentinels.
// Anything untagged coming out of a serializer is an internal failure and
// gets reported as a render error.
func tagged(err error) bool {
	for _, sentinel := range []error{ErrEmptyInput, ErrParse, ErrRender, ErrUnsupportedConversion, ErrUnknownFormat} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
