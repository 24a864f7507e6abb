package docfmt_test

import (
	"testing"

	"github.com/bjaus/docfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSONScalars(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input string
		want  docfmt.Value
	}{
		"null":   {input: `null`, want: docfmt.Null{}},
		"true":   {input: `true`, want: docfmt.Bool(true)},
		"false":  {input: `false`, want: docfmt.Bool(false)},
		"int":    {input: `42`, want: docfmt.Number(42)},
		"float":  {input: `3.14`, want: docfmt.Number(3.14)},
		"string": {input: `"hi"`, want: docfmt.Text("hi")},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := docfmt.ParseJSON([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseJSONKeyOrder(t *testing.T) {
	t.Parallel()
	v, err := docfmt.ParseJSON([]byte(`{"zebra":1,"apple":2,"mango":3}`))
	require.NoError(t, err)
	m, ok := v.(docfmt.Mapping)
	require.True(t, ok)
	assert.Equal(t, []string{"zebra", "apple", "mango"}, m.Keys())
}

func TestParseJSONDuplicateKeys(t *testing.T) {
	t.Parallel()
	// The later value wins but the key keeps its first position.
	v, err := docfmt.ParseJSON([]byte(`{"a":1,"b":2,"a":3}`))
	require.NoError(t, err)
	m, ok := v.(docfmt.Mapping)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, m.Keys())
	got, ok := m.Get("a")
	require.True(t, ok)
	assert.Equal(t, docfmt.Number(3), got)
}

func TestParseJSONNested(t *testing.T) {
	t.Parallel()
	v, err := docfmt.ParseJSON([]byte(`{"list":[1,"two",null],"inner":{"flag":true}}`))
	require.NoError(t, err)
	m, ok := v.(docfmt.Mapping)
	require.True(t, ok)

	lv, ok := m.Get("list")
	require.True(t, ok)
	seq, ok := lv.(docfmt.Sequence)
	require.True(t, ok)
	require.Len(t, seq, 3)
	assert.Equal(t, docfmt.Number(1), seq[0])
	assert.Equal(t, docfmt.Text("two"), seq[1])
	assert.Equal(t, docfmt.Null{}, seq[2])

	iv, ok := m.Get("inner")
	require.True(t, ok)
	inner, ok := iv.(docfmt.Mapping)
	require.True(t, ok)
	fv, ok := inner.Get("flag")
	require.True(t, ok)
	assert.Equal(t, docfmt.Bool(true), fv)
}

func TestParseJSONEmptyContainers(t *testing.T) {
	t.Parallel()
	v, err := docfmt.ParseJSON([]byte(`[]`))
	require.NoError(t, err)
	assert.Equal(t, docfmt.Sequence{}, v)

	v, err = docfmt.ParseJSON([]byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, docfmt.Mapping{}, v)
}

func TestParseJSONErrors(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input  string
		target error
	}{
		"empty":          {input: ``, target: docfmt.ErrEmptyInput},
		"whitespace":     {input: " \n\t ", target: docfmt.ErrEmptyInput},
		"unclosed":       {input: `{"a":`, target: docfmt.ErrParse},
		"bare word":      {input: `nope`, target: docfmt.ErrParse},
		"trailing comma": {input: `[1,]`, target: docfmt.ErrParse},
		"trailing data":  {input: `{} extra`, target: docfmt.ErrParse},
		"two values":     {input: `1 2`, target: docfmt.ErrParse},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := docfmt.ParseJSON([]byte(tt.input))
			require.ErrorIs(t, err, tt.target)
		})
	}
}

func TestMappingGet(t *testing.T) {
	t.Parallel()
	m := docfmt.Mapping{
		{Key: "a", Value: docfmt.Number(1)},
		{Key: "b", Value: docfmt.Text("x")},
	}
	v, ok := m.Get("b")
	require.True(t, ok)
	assert.Equal(t, docfmt.Text("x"), v)

	_, ok = m.Get("missing")
	assert.False(t, ok)
}
