// Package coerce turns loosely shaped backend JSON into predictable Go values.
//
// Backend payloads are decoded into `any` first (objects as map[string]any,
// numbers as json.Number or float64) and then read through the helpers here.
// Coalescing rules are plain ordered key lists so callers keep them as data.
package coerce

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Object is a decoded JSON object.
type Object = map[string]any

// ArrayKeys lists the legacy envelope fields a collection may hide under.
var ArrayKeys = []string{"records", "list", "items", "data"}

// Number parses v as a finite float. Absent, null, empty or unparsable
// values yield fallback.
func Number(v any, fallback float64) float64 {
	var f float64
	switch x := v.(type) {
	case nil:
		return fallback
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int32:
		f = float64(x)
	case int64:
		f = float64(x)
	case uint:
		f = float64(x)
	case uint32:
		f = float64(x)
	case uint64:
		f = float64(x)
	case json.Number:
		parsed, err := strconv.ParseFloat(string(x), 64)
		if err != nil {
			return fallback
		}
		f = parsed
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return fallback
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fallback
		}
		f = parsed
	case bool:
		if x {
			return 1
		}
		return 0
	default:
		return fallback
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fallback
	}
	return f
}

// Int is Number truncated toward zero.
func Int(v any, fallback int) int {
	return int(Number(v, float64(fallback)))
}

// NumberAt reads m[key] the way a loose numeric cast does: a missing key or an
// unparsable value yields fallback, while an explicit null or blank string
// counts as 0.
func NumberAt(m Object, key string, fallback float64) float64 {
	v, ok := m[key]
	if !ok {
		return fallback
	}
	if v == nil {
		return 0
	}
	if s, isString := v.(string); isString && strings.TrimSpace(s) == "" {
		return 0
	}
	return Number(v, fallback)
}

// IntAt is NumberAt truncated toward zero.
func IntAt(m Object, key string, fallback int) int {
	return int(NumberAt(m, key, float64(fallback)))
}

// Truthy mirrors loose boolean semantics: null, false, "", 0 and NaN are
// false; every object and array is true.
func Truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case json.Number:
		f, err := strconv.ParseFloat(string(x), 64)
		return err == nil && f != 0
	case float64:
		return x != 0 && !math.IsNaN(x)
	case float32:
		return x != 0
	case int:
		return x != 0
	case int64:
		return x != 0
	default:
		return true
	}
}

// Bool is Truthy under the name callers expect for boolean fields.
func Bool(v any) bool {
	return Truthy(v)
}

// First returns the first value among keys that is present and not null.
func First(m Object, keys ...string) any {
	for _, key := range keys {
		if v, ok := m[key]; ok && v != nil {
			return v
		}
	}
	return nil
}

// FirstTruthy returns the first truthy value among keys.
func FirstTruthy(m Object, keys ...string) any {
	for _, key := range keys {
		if v := m[key]; Truthy(v) {
			return v
		}
	}
	return nil
}

// String returns the first truthy scalar among keys rendered as text, or "".
func String(m Object, keys ...string) string {
	return StringOr(m, "", keys...)
}

// StringOr is String with an explicit default.
func StringOr(m Object, fallback string, keys ...string) string {
	for _, key := range keys {
		v := m[key]
		if !Truthy(v) {
			continue
		}
		if s, ok := Text(v); ok {
			return s
		}
	}
	return fallback
}

// Text renders a JSON scalar as a string. Objects and arrays report false.
func Text(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case json.Number:
		return x.String(), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32), true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case bool:
		return strconv.FormatBool(x), true
	default:
		return "", false
	}
}

// AsObject returns v when it is a JSON object and an empty object otherwise.
func AsObject(v any) Object {
	if m, ok := v.(Object); ok && m != nil {
		return m
	}
	return Object{}
}

// ObjectOrNil returns v when it is a JSON object and nil otherwise.
func ObjectOrNil(v any) Object {
	if m, ok := v.(Object); ok {
		return m
	}
	return nil
}

// Array accepts a bare array or an object carrying one under ArrayKeys.
// The result is never nil.
func Array(v any) []any {
	switch x := v.(type) {
	case []any:
		if x == nil {
			return []any{}
		}
		return x
	case Object:
		for _, key := range ArrayKeys {
			if arr, ok := x[key].([]any); ok && arr != nil {
				return arr
			}
		}
	}
	return []any{}
}

// ArrayField returns m[key] when it is an array, else an empty slice.
func ArrayField(m Object, keys ...string) []any {
	for _, key := range keys {
		if arr, ok := m[key].([]any); ok && arr != nil {
			return arr
		}
	}
	return []any{}
}

// Objects maps each element to an object; non-object elements become empty objects.
func Objects(items []any) []Object {
	out := make([]Object, 0, len(items))
	for _, item := range items {
		out = append(out, AsObject(item))
	}
	return out
}

// Merge encodes canonical and then adds every extra field canonical does not
// already define. Canonical fields always win.
func Merge(canonical any, extra Object) ([]byte, error) {
	payload, err := json.Marshal(canonical)
	if err != nil {
		return nil, err
	}
	if len(extra) == 0 {
		return payload, nil
	}
	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(payload, &fields); err != nil {
		return nil, err
	}
	for key, value := range extra {
		if _, exists := fields[key]; exists {
			continue
		}
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		fields[key] = raw
	}
	return json.Marshal(fields)
}

// Without returns a shallow copy of m minus the given keys.
func Without(m Object, keys ...string) Object {
	if len(m) == 0 {
		return nil
	}
	drop := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		drop[key] = struct{}{}
	}
	out := make(Object, len(m))
	for key, value := range m {
		if _, skip := drop[key]; skip {
			continue
		}
		out[key] = value
	}
	return out
}

// Decode parses a JSON document keeping numbers as json.Number.
func Decode(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}
