package docfmt

import (
	"fmt"
	"io"
	"strings"
)

func writeCSV(w io.Writer, v Value) error {
	recs, headers := tabularRecords(v)
	if len(recs) == 0 {
		return fmt.Errorf("%w: no records for %s output", ErrEmptyInput, CSV)
	}
	if len(headers) == 0 {
		return fmt.Errorf("%w: no fields for %s output", ErrEmptyInput, CSV)
	}
	if err := writeCSVRow(w, headers); err != nil {
		return err
	}
	for _, rec := range recs {
		row := make([]string, len(headers))
		for i, h := range headers {
			row[i], _ = rec.Get(h)
		}
		if err := writeCSVRow(w, row); err != nil {
			return err
		}
	}
	return nil
}

// writeCSVRow quotes every field unconditionally and doubles embedded
// quotes. Unconditional quoting keeps the output format stable no matter
// what the cells contain, which is why [encoding/csv]'s writer, which only
// quotes when forced, is not used here.
func writeCSVRow(w io.Writer, cells []string) error {
	quoted := make([]string, len(cells))
	for i, c := range cells {
		quoted[i] = `"` + strings.ReplaceAll(c, `"`, `""`) + `"`
	}
	_, err := fmt.Fprintln(w, strings.Join(quoted, ","))
	return err
}
