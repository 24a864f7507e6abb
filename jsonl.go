package docfmt

import "io"

// writeJSONL emits one compact JSON value per line: sequence elements each
// on their own line, anything else as a single line.
func writeJSONL(w io.Writer, v Value) error {
	seq, ok := v.(Sequence)
	if !ok {
		seq = Sequence{v}
	}
	for _, el := range seq {
		if _, err := io.WriteString(w, compactJSON(el)); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}
