package docfmt_test

import (
	"testing"

	"github.com/bjaus/docfmt"
	"github.com/stretchr/testify/assert"
)

func TestConvertJSONToTextDocument(t *testing.T) {
	t.Parallel()
	input := `{
		"metadata": {"title": "Field Notes"},
		"pages": [
			{"pageNumber": 1, "paragraphs": ["First paragraph."]},
			{"pageNumber": 2, "paragraphs": ["Closing."], "wordCount": 12}
		]
	}`
	want := "Field Notes\n\n" +
		"--- Page 1 ---\n\n" +
		"First paragraph.\n\n" +
		"Words: 2\n" +
		"\n" +
		"--- Page 2 ---\n\n" +
		"Closing.\n\n" +
		"Words: 12\n"
	assert.Equal(t, want, convertString(t, input, docfmt.JSON, docfmt.TXT))
}

func TestConvertJSONToTextTree(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input string
		want  string
	}{
		"nested outline": {
			input: `{"a":1,"b":{"c":[1,2]}}`,
			want:  "a: 1\nb:\n  c:\n    - 1\n    - 2\n",
		},
		"sequence of mappings": {
			input: `[{"a":1},{"a":2}]`,
			want:  "-\n  a: 1\n-\n  a: 2\n",
		},
		"null spelled out": {
			input: `{"a":null}`,
			want:  "a: null\n",
		},
		"empty containers": {
			input: `{"a":{},"b":[]}`,
			want:  "a:\n  {}\nb:\n  []\n",
		},
		"bare scalar": {
			input: `42`,
			want:  "42\n",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, convertString(t, tt.input, docfmt.JSON, docfmt.TXT))
		})
	}
}

func TestConvertTextRoundTrip(t *testing.T) {
	t.Parallel()
	// Plain text in, document treatment out.
	got := convertString(t, "First paragraph.\n\nSecond paragraph.", docfmt.TXT, docfmt.TXT)
	want := "--- Page 1 ---\n\n" +
		"First paragraph.\n\n" +
		"Second paragraph.\n\n" +
		"Words: 4\n"
	assert.Equal(t, want, got)
}
