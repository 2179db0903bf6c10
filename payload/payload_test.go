package payload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNormalizesEmptyForms(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty input", input: ""},
		{name: "whitespace only", input: "  \n\t"},
		{name: "literal empty string", input: `""`},
		{name: "literal null", input: "null"},
		{name: "null with whitespace", input: "  null\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Parse([]byte(tt.input))
			require.NoError(t, err)
			assert.True(t, v.IsEmpty())
		})
	}
}

func TestParseUnparsableIsEmptyWithError(t *testing.T) {
	v, err := Parse([]byte(`{"unterminated": `))
	assert.Error(t, err)
	assert.True(t, v.IsEmpty(), "unparsable content must normalize to Empty")
}

func TestParseKinds(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Kind
	}{
		{name: "object", input: `{"a":1}`, want: KindObject},
		{name: "array", input: `[1,2]`, want: KindArray},
		{name: "string", input: `"hello"`, want: KindString},
		{name: "number", input: `3.14`, want: KindNumber},
		{name: "bool", input: `true`, want: KindBool},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Parse([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.Kind())
		})
	}
}

func TestParseNestedNullIsNotEmpty(t *testing.T) {
	v, err := Parse([]byte(`{"a":null}`))
	require.NoError(t, err)

	field, ok := v.Field("a")
	require.True(t, ok)
	assert.Equal(t, KindNull, field.Kind())
	assert.False(t, field.IsEmpty())
}

func TestKeysSorted(t *testing.T) {
	v, err := Parse([]byte(`{"z":1,"a":2,"m":3}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "m", "z"}, v.Keys())
}

func TestFieldAndIndex(t *testing.T) {
	v, err := Parse([]byte(`{"items":[10,20]}`))
	require.NoError(t, err)

	items, ok := v.Field("items")
	require.True(t, ok)
	assert.Equal(t, 2, items.Len())
	assert.Equal(t, 10.0, items.Index(0).Float())
	assert.True(t, items.Index(5).IsEmpty())

	_, ok = v.Field("missing")
	assert.False(t, ok)
}

func TestEqualScalars(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{name: "equal numbers", a: Number(1), b: Number(1), want: true},
		{name: "unequal numbers", a: Number(1), b: Number(2), want: false},
		{name: "equal strings", a: String("x"), b: String("x"), want: true},
		{name: "number vs string", a: Number(1), b: String("1"), want: false},
		{name: "nulls", a: Null(), b: Null(), want: true},
		{name: "bools", a: Bool(true), b: Bool(true), want: true},
		{name: "containers never equal", a: Object(nil), b: Object(nil), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Equal(tt.b))
		})
	}
}

func TestInterfaceRoundTrip(t *testing.T) {
	v, err := Parse([]byte(`{"a":1,"b":[true,"x"],"c":null}`))
	require.NoError(t, err)

	got := v.Interface()
	want := map[string]any{
		"a": 1.0,
		"b": []any{true, "x"},
		"c": nil,
	}
	assert.Equal(t, want, got)
}

func TestIsWholeNumber(t *testing.T) {
	assert.True(t, Number(42).IsWholeNumber())
	assert.True(t, Number(0).IsWholeNumber())
	assert.True(t, Number(-3).IsWholeNumber())
	assert.False(t, Number(3.5).IsWholeNumber())
	assert.False(t, String("42").IsWholeNumber())
}

func TestStringRendering(t *testing.T) {
	assert.Equal(t, "<empty>", Empty.String())
	assert.Equal(t, "null", Null().String())
	assert.Equal(t, `"x"`, String("x").String())
	assert.Equal(t, "1.5", Number(1.5).String())
	assert.Equal(t, "2", Number(2).String())
	assert.Equal(t, "true", Bool(true).String())
}

func TestTypeName(t *testing.T) {
	v, err := Parse([]byte(`{"a":1}`))
	require.NoError(t, err)
	assert.Equal(t, "object", v.TypeName())

	f, _ := v.Field("a")
	assert.Equal(t, "number", f.TypeName())
}
