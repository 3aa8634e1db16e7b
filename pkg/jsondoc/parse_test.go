package jsondoc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseObject(t *testing.T) {
	doc, err := Parse([]byte(`{"a":1,"b":"x","c":1.5,"d":true,"e":null,"f":[1,2],"g":{"h":1}}`), 1024)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f", "g"}, doc.Keys())
	a, _ := doc.Get("a")
	assert.Equal(t, int64(1), a)
	c, _ := doc.Get("c")
	assert.Equal(t, 1.5, c)
	e, ok := doc.Get("e")
	assert.True(t, ok)
	assert.Nil(t, e)
	assert.True(t, doc.ContainsKey("e"))
}

func TestParseNumbers(t *testing.T) {
	testCases := []struct {
		input    string
		expected any
	}{
		{input: `0`, expected: int64(0)},
		{input: `-42`, expected: int64(-42)},
		{input: `9223372036854775807`, expected: int64(9223372036854775807)},
		{input: `9223372036854775808`, expected: 9223372036854775808.0},
		{input: `1.0`, expected: 1.0},
		{input: `1e3`, expected: 1000.0},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			doc, err := Parse([]byte(tc.input), 0)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, doc.Root())
		})
	}
}

func TestParseLastDuplicateWins(t *testing.T) {
	doc, err := Parse([]byte(`{"a":1,"b":2,"a":3}`), 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, doc.Keys())
	a, _ := doc.Get("a")
	assert.Equal(t, int64(3), a)
}

func TestParseIgnoresTrailingContent(t *testing.T) {
	doc, err := Parse([]byte(`{"a":1} trailing`), 0)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, doc.String())
}

func TestParseErrors(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		capacity int
		expected error
	}{
		{name: "empty", input: ``, expected: ErrEmptyInput},
		{name: "whitespace", input: "  \n\t", expected: ErrEmptyInput},
		{name: "unterminated object", input: `{"a":1`, expected: ErrIncompleteInput},
		{name: "missing value", input: `{"a":`, expected: ErrIncompleteInput},
		{name: "unterminated string", input: `"abc`, expected: ErrIncompleteInput},
		{name: "bare key", input: `{a:1}`, expected: ErrInvalidInput},
		{name: "stray comma", input: `{"a":1,}`, expected: ErrInvalidInput},
		{name: "garbage", input: `@`, expected: ErrInvalidInput},
		{name: "too deep", input: strings.Repeat("[", MaxNesting+1) + strings.Repeat("]", MaxNesting+1), expected: ErrTooDeep},
		{name: "too big", input: `{"key":"a value that does not fit"}`, capacity: 10, expected: ErrNoMemory},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := Parse([]byte(tc.input), tc.capacity)
			require.Error(t, err)
			assert.Nil(t, doc)
			assert.ErrorIs(t, err, tc.expected)
			assert.True(t, IsParseError(err))
		})
	}
}

func TestParseMaxNestingAccepted(t *testing.T) {
	input := strings.Repeat("[", MaxNesting) + strings.Repeat("]", MaxNesting)
	_, err := Parse([]byte(input), 0)
	assert.NoError(t, err)
}

func TestDecodeFromReader(t *testing.T) {
	doc, err := Decode(strings.NewReader(`{"name":"device-1"}`), 64)
	require.NoError(t, err)

	name, _ := doc.Get("name")
	assert.Equal(t, "device-1", name)
	assert.Equal(t, 64, doc.Capacity())
}

func TestIsParseErrorIgnoresOtherErrors(t *testing.T) {
	assert.False(t, IsParseError(ErrNotObject))
	assert.False(t, IsParseError(nil))
}
