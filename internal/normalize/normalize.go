// Package normalize resolves field-name aliases in untyped SP-API payloads.
//
// The Selling Partner API emits PascalCase or camelCase member names depending
// on endpoint version, so documents are never walked through direct key access.
// Every lookup goes through Pick with an ordered candidate list.
package normalize

import (
	"encoding/json"
	"math"
	"strconv"
)

// Pick returns the value of the first candidate key present in obj, or nil.
// A nil or non-object obj yields nil; Pick never panics.
func Pick(obj map[string]any, keys ...string) any {
	if obj == nil {
		return nil
	}
	for _, k := range keys {
		if v, ok := obj[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

// PickMap returns the first candidate value that is a JSON object.
func PickMap(obj map[string]any, keys ...string) map[string]any {
	if m, ok := Pick(obj, keys...).(map[string]any); ok {
		return m
	}
	return nil
}

// PickSlice returns the first candidate value that is a JSON array.
func PickSlice(obj map[string]any, keys ...string) []any {
	if s, ok := Pick(obj, keys...).([]any); ok {
		return s
	}
	return nil
}

// PickString returns the first candidate value that is a string, else "".
func PickString(obj map[string]any, keys ...string) string {
	if s, ok := Pick(obj, keys...).(string); ok {
		return s
	}
	return ""
}

// PickFloat resolves the first candidate to a finite float64. SP-API money
// amounts arrive either as JSON numbers or as numeric strings; both are
// accepted. The second return is false for absent, non-numeric or non-finite
// values.
func PickFloat(obj map[string]any, keys ...string) (float64, bool) {
	switch v := Pick(obj, keys...).(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return v, true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	case json.Number:
		f, err := v.Float64()
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// AsObject converts an array element to a JSON object, or nil.
func AsObject(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return nil
}
