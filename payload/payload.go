// Package payload provides a tagged JSON value representation for snapshot
// comparison.
//
// A Value carries its JSON kind explicitly so that the differ and schema
// packages can switch exhaustively over the possible shapes instead of
// type-asserting on untyped any values. Parsing normalizes the degenerate
// on-disk forms (empty file, the literal string "", the literal null, or
// unparsable content) to the Empty sentinel so that empty-payload handling
// happens in exactly one place.
package payload

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Kind identifies the JSON shape of a Value.
type Kind int

const (
	// KindEmpty is the sentinel for missing, blank, or unparsable payloads.
	KindEmpty Kind = iota
	// KindNull is an explicit JSON null inside an otherwise valid payload.
	KindNull
	// KindObject is a JSON object.
	KindObject
	// KindArray is a JSON array.
	KindArray
	// KindString is a JSON string.
	KindString
	// KindNumber is a JSON number.
	KindNumber
	// KindBool is a JSON boolean.
	KindBool
)

// String returns the JSON type name for the kind.
func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindNull:
		return "null"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	default:
		return "unknown"
	}
}

// Value is a parsed JSON value tagged with its kind.
// The zero value is the Empty sentinel.
type Value struct {
	kind Kind
	obj  map[string]Value
	arr  []Value
	str  string
	num  float64
	b    bool
}

// Empty is the sentinel value for missing or unusable payloads.
var Empty = Value{kind: KindEmpty}

// Parse decodes raw payload bytes into a Value.
//
// An empty input, the literal string "", and the literal null all normalize
// to Empty with a nil error. Any other unparsable content also normalizes to
// Empty but returns the parse error so callers can log a warning; it is never
// fatal.
func Parse(data []byte) (Value, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == `""` || trimmed == "null" {
		return Empty, nil
	}

	var raw any
	dec := json.NewDecoder(strings.NewReader(trimmed))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return Empty, fmt.Errorf("unparsable payload: %w", err)
	}

	return FromInterface(raw), nil
}

// FromInterface converts a decoded JSON value (as produced by encoding/json
// into any) to a tagged Value. Unsupported Go types map to Empty.
func FromInterface(raw any) Value {
	switch v := raw.(type) {
	case nil:
		return Value{kind: KindNull}
	case map[string]any:
		obj := make(map[string]Value, len(v))
		for k, elem := range v {
			obj[k] = FromInterface(elem)
		}
		return Value{kind: KindObject, obj: obj}
	case []any:
		arr := make([]Value, len(v))
		for i, elem := range v {
			arr[i] = FromInterface(elem)
		}
		return Value{kind: KindArray, arr: arr}
	case string:
		return Value{kind: KindString, str: v}
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return Value{kind: KindString, str: v.String()}
		}
		return Value{kind: KindNumber, num: f}
	case float64:
		return Value{kind: KindNumber, num: v}
	case int:
		return Value{kind: KindNumber, num: float64(v)}
	case bool:
		return Value{kind: KindBool, b: v}
	default:
		return Empty
	}
}

// Object builds an object Value from a map of already-tagged values.
func Object(fields map[string]Value) Value {
	return Value{kind: KindObject, obj: fields}
}

// Array builds an array Value from already-tagged elements.
func Array(elems ...Value) Value {
	return Value{kind: KindArray, arr: elems}
}

// String builds a string Value.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Number builds a number Value.
func Number(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// Bool builds a boolean Value.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Null builds an explicit JSON null Value.
func Null() Value {
	return Value{kind: KindNull}
}

// Kind returns the JSON kind of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// IsEmpty reports whether the value is the Empty sentinel.
func (v Value) IsEmpty() bool {
	return v.kind == KindEmpty
}

// IsContainer reports whether the value is an object or an array.
func (v Value) IsContainer() bool {
	return v.kind == KindObject || v.kind == KindArray
}

// TypeName returns the JSON type name used in difference messages
// and schema inference.
func (v Value) TypeName() string {
	return v.kind.String()
}

// Keys returns the object's keys in sorted order. Non-objects return nil.
// Sorting makes difference output deterministic; key order never affects
// comparison semantics, which are key-set driven.
func (v Value) Keys() []string {
	if v.kind != KindObject {
		return nil
	}
	keys := make([]string, 0, len(v.obj))
	for k := range v.obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Field returns the named object field and whether it exists.
func (v Value) Field(key string) (Value, bool) {
	if v.kind != KindObject {
		return Empty, false
	}
	f, ok := v.obj[key]
	return f, ok
}

// Len returns the element count for arrays and the field count for objects.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return len(v.obj)
	default:
		return 0
	}
}

// Index returns the i-th array element. Out-of-range or non-array returns Empty.
func (v Value) Index(i int) Value {
	if v.kind != KindArray || i < 0 || i >= len(v.arr) {
		return Empty
	}
	return v.arr[i]
}

// Float returns the numeric value for number kinds, else 0.
func (v Value) Float() float64 {
	if v.kind != KindNumber {
		return 0
	}
	return v.num
}

// IsWholeNumber reports whether the value is a number without a fractional part.
func (v Value) IsWholeNumber() bool {
	return v.kind == KindNumber && v.num == float64(int64(v.num))
}

// Interface converts the value back to the plain encoding/json representation
// (map[string]any, []any, string, float64, bool, nil). Empty converts to nil.
func (v Value) Interface() any {
	switch v.kind {
	case KindObject:
		obj := make(map[string]any, len(v.obj))
		for k, elem := range v.obj {
			obj[k] = elem.Interface()
		}
		return obj
	case KindArray:
		arr := make([]any, len(v.arr))
		for i, elem := range v.arr {
			arr[i] = elem.Interface()
		}
		return arr
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindBool:
		return v.b
	default:
		return nil
	}
}

// Equal reports strict equality of two scalar values. Containers are never
// equal under this method; the differ recurses into them instead.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindString:
		return v.str == other.str
	case KindNumber:
		return v.num == other.num
	case KindBool:
		return v.b == other.b
	default:
		return false
	}
}

// String returns a compact JSON rendering of the value for use in
// difference messages. Empty renders as <empty>.
func (v Value) String() string {
	switch v.kind {
	case KindEmpty:
		return "<empty>"
	case KindNull:
		return "null"
	case KindString:
		return strconv.Quote(v.str)
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		data, err := json.Marshal(v.Interface())
		if err != nil {
			return v.kind.String()
		}
		return string(data)
	}
}

// MarshalJSON renders the value as its underlying JSON. Empty marshals as null.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// MarshalYAML renders the value as its plain Go form so YAML output mirrors
// the JSON shape.
func (v Value) MarshalYAML() (any, error) {
	return v.Interface(), nil
}
