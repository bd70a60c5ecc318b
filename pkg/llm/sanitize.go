package llm

// SanitizeSchema returns a deep copy of schema with every banned keyword
// removed at every nesting level, including inside arrays of sub-schemas
// (anyOf, oneOf, prefixItems, and the like). The input is never mutated,
// and sanitizing an already-sanitized document is a no-op.
//
// Each adapter owns its banned-keyword list; backends differ in which
// JSON-Schema keywords their structured-output validators accept.
func SanitizeSchema(schema map[string]any, banned []string) map[string]any {
	if schema == nil {
		return nil
	}
	drop := make(map[string]struct{}, len(banned))
	for _, k := range banned {
		drop[k] = struct{}{}
	}
	out, _ := sanitizeValue(schema, drop).(map[string]any)
	return out
}

func sanitizeValue(v any, drop map[string]struct{}) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			if _, banned := drop[k]; banned {
				continue
			}
			out[k] = sanitizeValue(val, drop)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = sanitizeValue(e, drop)
		}
		return out
	default:
		// Scalars pass through unchanged.
		return t
	}
}
