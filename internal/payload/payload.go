// Package payload reads fields out of loosely typed JSON documents whose field
// names vary between upstream API versions.
package payload

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Extractor pulls one candidate value out of a document.
type Extractor func(doc map[string]any) (string, bool)

// Field extracts a scalar at a dot-separated path, e.g. "data.id".
func Field(path string) Extractor {
	return func(doc map[string]any) (string, bool) {
		v, ok := Lookup(doc, path)
		if !ok {
			return "", false
		}
		return String(v)
	}
}

// First returns the first non-empty value produced by extractors, in order.
func First(doc map[string]any, extractors ...Extractor) string {
	for _, extract := range extractors {
		if v, ok := extract(doc); ok && v != "" {
			return v
		}
	}
	return ""
}

func Lookup(doc map[string]any, path string) (any, bool) {
	var cur any = doc
	for _, key := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		if cur, ok = obj[key]; !ok {
			return nil, false
		}
	}
	return cur, cur != nil
}

func Array(doc map[string]any, path string) ([]any, bool) {
	v, ok := Lookup(doc, path)
	if !ok {
		return nil, false
	}
	arr, ok := v.([]any)
	return arr, ok
}

// String renders scalars. Whole floats print without a fraction so numeric
// ids survive a round trip through JSON.
func String(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t), true
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10), true
		}
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case json.Number:
		return t.String(), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return "", false
	}
}
