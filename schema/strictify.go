package schema

// EnforceNoAdditionalProperties recursively sets additionalProperties to
// false on every object-typed subschema, in place. Applying it twice is a
// no-op.
//
// After strictification, any key present in a candidate payload but absent
// from the baseline's inferred shape becomes a validation violation instead
// of being silently ignored.
func EnforceNoAdditionalProperties(s map[string]any) {
	if s == nil {
		return
	}

	if t, ok := s["type"].(string); ok && t == "object" {
		s["additionalProperties"] = false
	}

	if props, ok := s["properties"].(map[string]any); ok {
		for _, sub := range props {
			if m, ok := sub.(map[string]any); ok {
				EnforceNoAdditionalProperties(m)
			}
		}
	}

	switch items := s["items"].(type) {
	case map[string]any:
		EnforceNoAdditionalProperties(items)
	case []any:
		// Tuple-form items: one schema per position.
		for _, sub := range items {
			if m, ok := sub.(map[string]any); ok {
				EnforceNoAdditionalProperties(m)
			}
		}
	}

	for _, keyword := range []string{"anyOf", "allOf", "oneOf"} {
		if subs, ok := s[keyword].([]any); ok {
			for _, sub := range subs {
				if m, ok := sub.(map[string]any); ok {
					EnforceNoAdditionalProperties(m)
				}
			}
		}
	}
}
