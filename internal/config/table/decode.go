package table

// AsString extracts a string value.
func AsString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// AsInt extracts an integer value. TOML integers decode as int64; plain
// int is accepted for values set programmatically.
func AsInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	default:
		return 0, false
	}
}

// AsUint extracts an unsigned integer value. Negative values are rejected.
func AsUint(v any) (uint64, bool) {
	n, ok := AsInt(v)
	if !ok || n < 0 {
		return 0, false
	}
	return uint64(n), true
}

// AsFloat extracts a float value. Integers widen to float64.
func AsFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

// AsBool extracts a boolean value.
func AsBool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

// AsStringSlice extracts an ordered list of strings. Every element must be
// a string; a single non-string element rejects the whole value.
func AsStringSlice(v any) ([]string, bool) {
	switch list := v.(type) {
	case []string:
		result := make([]string, len(list))
		copy(result, list)
		return result, true
	case []any:
		result := make([]string, len(list))
		for i, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			result[i] = s
		}
		return result, true
	default:
		return nil, false
	}
}

// TypeName returns a human-readable name for a value's dynamic type,
// used in type-mismatch diagnostics.
func TypeName(v any) string {
	switch v.(type) {
	case nil:
		return "nil"
	case string:
		return "string"
	case int, int64:
		return "integer"
	case float64:
		return "float"
	case bool:
		return "boolean"
	case []any, []string:
		return "sequence"
	case map[string]any, Table:
		return "table"
	default:
		return "unknown"
	}
}
