package schema

import (
	"reflect"

	"github.com/mariogalea/qualitymatters-apiveritas/payload"
)

// draft07 is the meta-schema identifier stamped on inferred schemas.
const draft07 = "http://json-schema.org/draft-07/schema#"

// Infer derives a draft-07 JSON Schema describing the shape of the sample
// payload. The result is deterministic for a given shape: object properties
// are emitted for every key present in the sample, array item schemas are
// unified across elements, and whole numbers infer as "integer".
//
// Inferred schemas carry no "required" keyword: missing keys are the
// structural differ's responsibility, the schema pipeline only polices shape
// and unexpected additions.
func Infer(sample payload.Value) map[string]any {
	s := inferNode(sample)
	s["$schema"] = draft07
	return s
}

func inferNode(v payload.Value) map[string]any {
	switch v.Kind() {
	case payload.KindObject:
		props := make(map[string]any, v.Len())
		for _, key := range v.Keys() {
			field, _ := v.Field(key)
			props[key] = inferNode(field)
		}
		return map[string]any{
			"type":       "object",
			"properties": props,
		}
	case payload.KindArray:
		items := inferItems(v)
		if items == nil {
			return map[string]any{"type": "array"}
		}
		return map[string]any{
			"type":  "array",
			"items": items,
		}
	case payload.KindString:
		return map[string]any{"type": "string"}
	case payload.KindNumber:
		if v.IsWholeNumber() {
			return map[string]any{"type": "integer"}
		}
		return map[string]any{"type": "number"}
	case payload.KindBool:
		return map[string]any{"type": "boolean"}
	case payload.KindNull:
		return map[string]any{"type": "null"}
	default:
		// Empty sentinel: unconstrained schema. The comparer never feeds
		// Empty into inference, this is a safety net for direct callers.
		return map[string]any{}
	}
}

// inferItems unifies the element schemas of an array sample. A homogeneous
// array yields the single element schema; mixed shapes yield an anyOf of the
// distinct schemas in first-seen element order. Empty arrays yield nil.
func inferItems(arr payload.Value) any {
	if arr.Len() == 0 {
		return nil
	}

	var distinct []map[string]any
	for i := 0; i < arr.Len(); i++ {
		elem := inferNode(arr.Index(i))
		seen := false
		for _, d := range distinct {
			if reflect.DeepEqual(d, elem) {
				seen = true
				break
			}
		}
		if !seen {
			distinct = append(distinct, elem)
		}
	}

	if len(distinct) == 1 {
		return distinct[0]
	}

	alternatives := make([]any, len(distinct))
	for i, d := range distinct {
		alternatives[i] = d
	}
	return map[string]any{"anyOf": alternatives}
}
