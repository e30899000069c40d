package models

import "encoding/json"

// NormalizeJSONValue converts json.Number values produced by a decoder with
// UseNumber into int64 when integral and float64 otherwise, recursing into
// objects and arrays. Integers are stored as integers rather than doubles.
func NormalizeJSONValue(v any) any {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	case map[string]any:
		for k, item := range val {
			val[k] = NormalizeJSONValue(item)
		}
		return val
	case []any:
		for i, item := range val {
			val[i] = NormalizeJSONValue(item)
		}
		return val
	default:
		return v
	}
}
