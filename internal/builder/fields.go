package builder

import (
	"math"
	"strconv"
	"strings"
)

func asMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

func asSlice(v any) ([]any, bool) {
	s, ok := v.([]any)
	return s, ok
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func asInt(v any) (int, bool) {
	f, ok := asFloat(v)
	if !ok {
		return 0, false
	}
	return int(f), true
}

func asString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), true
	}
	return "", false
}

func asBool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

func stringField(m map[string]any, key string) string {
	s, _ := asString(m[key])
	return s
}

func intField(m map[string]any, key string) int {
	n, _ := asInt(m[key])
	return n
}

func floatField(m map[string]any, key string) float64 {
	f, _ := asFloat(m[key])
	return f
}

func boolField(m map[string]any, key string) bool {
	b, _ := asBool(m[key])
	return b
}

func optFloat(m map[string]any, key string) *float64 {
	f, ok := asFloat(m[key])
	if !ok {
		return nil
	}
	return &f
}

func optInt(m map[string]any, key string) *int {
	n, ok := asInt(m[key])
	if !ok {
		return nil
	}
	return &n
}

func optBool(m map[string]any, key string) *bool {
	b, ok := asBool(m[key])
	if !ok {
		return nil
	}
	return &b
}

func intList(v any) []int {
	items, _ := asSlice(v)
	out := make([]int, 0, len(items))
	for _, item := range items {
		if n, ok := asInt(item); ok {
			out = append(out, n)
		}
	}
	return out
}
