package docfmt

import (
	"fmt"
	"io"
	"strings"
)

func writeTSV(w io.Writer, v Value) error {
	recs, headers := tabularRecords(v)
	if len(recs) == 0 {
		return fmt.Errorf("%w: no records for %s output", ErrEmptyInput, TSV)
	}
	if len(headers) == 0 {
		return fmt.Errorf("%w: no fields for %s output", ErrEmptyInput, TSV)
	}
	cells := make([]string, len(headers))
	for i, h := range headers {
		cells[i] = tsvCell(h)
	}
	if _, err := fmt.Fprintln(w, strings.Join(cells, "\t")); err != nil {
		return err
	}
	for _, rec := range recs {
		for i, h := range headers {
			val, _ := rec.Get(h)
			cells[i] = tsvCell(val)
		}
		if _, err := fmt.Fprintln(w, strings.Join(cells, "\t")); err != nil {
			return err
		}
	}
	return nil
}

// tsvCell flattens separators out of a cell; tabs and newlines would break
// the row structure.
func tsvCell(s string) string {
	s = strings.ReplaceAll(s, "\t", " ")
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
