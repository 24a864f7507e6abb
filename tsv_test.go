package docfmt_test

import (
	"testing"

	"github.com/bjaus/docfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertJSONToTSV(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input string
		want  string
	}{
		"records": {
			input: `[{"a":1,"b":"x"},{"a":2,"b":"y"}]`,
			want:  "a\tb\n1\tx\n2\ty\n",
		},
		"nested paths": {
			input: `[{"a":1,"b":{"c":2}}]`,
			want:  "a\tb.c\n1\t2\n",
		},
		"bare scalar": {
			input: `"hi"`,
			want:  "Value\nhi\n",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, convertString(t, tt.input, docfmt.JSON, docfmt.TSV))
		})
	}
}

func TestConvertTSVSanitizesCells(t *testing.T) {
	t.Parallel()
	// Tabs and newlines inside a cell would shift every column after it.
	got := convertString(t, `[{"a":"x\ty","b":"l1\nl2"}]`, docfmt.JSON, docfmt.TSV)
	assert.Equal(t, "a\tb\nx y\tl1 l2\n", got)
}

func TestConvertTSVEmptySequence(t *testing.T) {
	t.Parallel()
	_, err := docfmt.Convert([]byte(`[]`), docfmt.JSON, docfmt.TSV, docfmt.Options{})
	require.ErrorIs(t, err, docfmt.ErrEmptyInput)
}
