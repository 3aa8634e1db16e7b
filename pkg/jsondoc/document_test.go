package jsondoc

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestNewDocumentIsNull(t *testing.T) {
	doc := New(1024)

	assert.True(t, doc.IsNull())
	assert.True(t, doc.IsEmpty())
	assert.Equal(t, 1024, doc.Capacity())
	assert.Equal(t, "{}", doc.String())
	assert.False(t, doc.ContainsKey("anything"))
	assert.Equal(t, 0, doc.Len())
}

func TestSetKeepsInsertionOrder(t *testing.T) {
	doc := New(0)
	require.NoError(t, doc.Set("b", 1))
	require.NoError(t, doc.Set("a", "x"))
	require.NoError(t, doc.Set("c", true))
	require.NoError(t, doc.Set("b", 2.5))

	assert.Equal(t, []string{"b", "a", "c"}, doc.Keys())
	assert.Equal(t, `{"b":2.5,"a":"x","c":true}`, doc.String())
}

func TestSetNormalizesGoValues(t *testing.T) {
	doc := New(0)
	require.NoError(t, doc.Set("i", int32(7)))
	require.NoError(t, doc.Set("u", uint8(3)))
	require.NoError(t, doc.Set("f", float32(0.5)))
	require.NoError(t, doc.Set("m", map[string]any{"z": 1, "a": []any{"x", nil}}))

	i, _ := doc.Get("i")
	assert.Equal(t, int64(7), i)
	u, _ := doc.Get("u")
	assert.Equal(t, int64(3), u)
	f, _ := doc.Get("f")
	assert.Equal(t, 0.5, f)
	assert.Equal(t, `{"i":7,"u":3,"f":0.5,"m":{"a":["x",null],"z":1}}`, doc.String())
}

func TestSetRejectsUnsupportedTypes(t *testing.T) {
	doc := New(0)
	err := doc.Set("ch", make(chan int))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedType)
	assert.True(t, doc.IsNull())
}

func TestSetOnNonObjectRoot(t *testing.T) {
	doc, err := Parse([]byte(`[1,2,3]`), 0)
	require.NoError(t, err)

	assert.ErrorIs(t, doc.Set("a", 1), ErrNotObject)
	assert.False(t, doc.ContainsKey("a"))
	assert.False(t, doc.Remove("a"))
}

func TestSetRespectsCapacity(t *testing.T) {
	doc := New(16)
	require.NoError(t, doc.Set("a", 1))
	before := doc.String()

	err := doc.Set("long", strings.Repeat("x", 32))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoMemory)
	assert.Equal(t, before, doc.String())

	// growing an existing key past the limit restores the old value in place
	err = doc.Set("a", strings.Repeat("y", 32))
	assert.ErrorIs(t, err, ErrNoMemory)
	assert.Equal(t, before, doc.String())
}

func TestSetOnFullNullDocumentStaysNull(t *testing.T) {
	doc := New(4)
	err := doc.Set("key", "value")

	assert.ErrorIs(t, err, ErrNoMemory)
	assert.True(t, doc.IsNull())
}

func TestRemoveAndClear(t *testing.T) {
	doc := New(0)
	require.NoError(t, doc.Set("a", 1))
	require.NoError(t, doc.Set("b", 2))

	assert.True(t, doc.Remove("a"))
	assert.False(t, doc.Remove("a"))
	assert.Equal(t, []string{"b"}, doc.Keys())

	doc.Clear()
	assert.True(t, doc.IsNull())
}

func TestIsEmptyForEmptyObject(t *testing.T) {
	doc, err := Parse([]byte(`{}`), 0)
	require.NoError(t, err)

	assert.False(t, doc.IsNull())
	assert.True(t, doc.IsEmpty())
}

func TestReplaceKeepsCapacity(t *testing.T) {
	dst := New(64)
	src, err := Parse([]byte(`{"a":1}`), 0)
	require.NoError(t, err)

	dst.Replace(src)
	assert.Equal(t, 64, dst.Capacity())
	assert.True(t, dst.ContainsKey("a"))
}

func TestCloneIsDeep(t *testing.T) {
	doc, err := Parse([]byte(`{"net":{"ssid":"home"}}`), 0)
	require.NoError(t, err)

	clone := doc.Clone()
	v, _ := doc.Get("net")
	v.(*Object).Set("ssid", "office")

	assert.Equal(t, `{"net":{"ssid":"home"}}`, clone.String())
	assert.Equal(t, `{"net":{"ssid":"office"}}`, doc.String())
}

func TestEncodeFloatsAndStrings(t *testing.T) {
	testCases := []struct {
		name     string
		value    any
		expected string
	}{
		{name: "plain float", value: 1.25, expected: `1.25`},
		{name: "whole float", value: 2.0, expected: `2`},
		{name: "tiny float", value: 1e-9, expected: `1e-09`},
		{name: "huge float", value: 1e22, expected: `1e+22`},
		{name: "nan", value: math.NaN(), expected: `null`},
		{name: "infinity", value: math.Inf(1), expected: `null`},
		{name: "escapes", value: "a\"b\\c\n\t\x01", expected: `"a\"b\\c\n\t\u0001"`},
		{name: "unicode", value: "héllo", expected: `"héllo"`},
		{name: "html stays literal", value: "<a&b>", expected: `"<a&b>"`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, string(appendValue(nil, tc.value)))
		})
	}
}

func TestMarshalIndentIsReadable(t *testing.T) {
	doc, err := Parse([]byte(`{"a":1,"b":{"c":"d"}}`), 0)
	require.NoError(t, err)

	out := string(doc.MarshalIndent())
	assert.Contains(t, out, "\n")
	assert.Contains(t, out, `"c": "d"`)

	again, err := Parse([]byte(out), 0)
	require.NoError(t, err)
	assert.Equal(t, doc.String(), again.String())
}

func TestToInterface(t *testing.T) {
	doc, err := Parse([]byte(`{"a":[1,{"b":true}],"c":null}`), 0)
	require.NoError(t, err)

	plain := ToInterface(doc.Root())
	assert.Equal(t, map[string]any{
		"a": []any{int64(1), map[string]any{"b": true}},
		"c": nil,
	}, plain)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNull, KindOf(nil))
	assert.Equal(t, KindBool, KindOf(true))
	assert.Equal(t, KindInt, KindOf(int64(1)))
	assert.Equal(t, KindFloat, KindOf(1.5))
	assert.Equal(t, KindString, KindOf("s"))
	assert.Equal(t, KindArray, KindOf([]any{}))
	assert.Equal(t, KindObject, KindOf(NewObject()))
	assert.Equal(t, "object", KindObject.String())
}

// TestRandomRoundTrip writes random scalars, reparses the output and
// expects every value back unchanged.
func TestRandomRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	doc := New(0)
	want := make(map[string]any)

	for i := 0; i < 200; i++ {
		key := fmt.Sprintf("k%d", rng.Intn(50))
		var v any
		switch rng.Intn(4) {
		case 0:
			v = rng.Int63() - rng.Int63()
		case 1:
			v = rng.Float64() * 1000
		case 2:
			v = rng.Intn(2) == 1
		default:
			v = fmt.Sprintf("s-%d", rng.Uint32())
		}
		require.NoError(t, doc.Set(key, v))
		want[key] = v
	}

	parsed, err := Parse(doc.Marshal(), 0)
	require.NoError(t, err)
	assert.Equal(t, doc.Keys(), parsed.Keys())
	for key, v := range want {
		got, ok := parsed.Get(key)
		require.True(t, ok, key)
		if f, isFloat := v.(float64); isFloat && f == math.Trunc(f) {
			assert.Equal(t, f, AsFloat(got), key)
			continue
		}
		assert.Equal(t, v, got, key)
	}
}
