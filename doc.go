// Package docfmt converts tree-shaped documents and data between formats.
//
// Content enters as raw bytes tagged with a source [Format] (JSON, CSV,
// plain text, Markdown, or HTML), decodes into a [Value] tree, and
// serializes into one of the target formats (PDF, CSV, TSV, HTML, XML,
// plain text, Markdown, JSON, YAML, or JSONL). The central entry point is
// [Converter.Convert]; the package-level [Convert] uses a silent default
// converter.
//
// # Values
//
// Every decoder produces a [Value], a closed set of tree shapes:
//
//   - [Null], [Bool], [Number], [Text] — scalars
//   - [Sequence] — ordered list
//   - [Mapping] — ordered key/value pairs, insertion order preserved
//
// Serializers consume Values, never raw source bytes, so every source
// format reaches every target through the same pipeline. The one
// exception is HTML to Markdown, which uses a dedicated converter to keep
// links and emphasis.
//
// # Documents and Data
//
// [Classify] decides how a value renders. A mapping carrying a "pages"
// sequence of paragraph lists, or a "fullText" string next to a
// "metadata" mapping, is a document: paged prose with word counts and
// footers. Everything else is data: records, properties, or a bare
// scalar. Classification never fails; unrecognized shapes are data.
//
// # Tabular Output
//
// CSV, TSV, and the table renderings flatten nested mappings into
// dot-joined leaf paths via [Flatten], and derive the column set with
// [UnionHeaders]: the union of every record's paths in first-seen order.
// Sequences inside a record are not expanded into columns; they serialize
// compactly into a single cell.
//
// # PDF
//
// The PDF serializer lays out documents with word wrap and page breaks,
// boxes paragraphs that look like numeric grids, paginates data tables,
// and stamps per-page and whole-document footers in a second pass once
// the page count is known. Output is validated with pdfcpu before it is
// returned.
//
// # Options
//
// [Options] tunes a conversion: quality, font size, page size, margin,
// formatting preservation, metadata embedding, and compression. Fields
// irrelevant to the chosen target are ignored, never an error.
//
// # Errors
//
// The package exports sentinel errors for programmatic handling:
//
//   - [ErrUnknownFormat] — format name not recognized
//   - [ErrUnsupportedConversion] — (source, target) pair not implemented
//   - [ErrEmptyInput] — blank source, or no records for a tabular target
//   - [ErrParse] — malformed source
//   - [ErrRender] — failure inside a serializer
package docfmt
