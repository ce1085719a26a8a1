// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package planvalidate normalizes and bounds-checks plan documents produced
// by the language model. Validation is advisory: callers always receive a
// best-effort sanitized document alongside the list of problems, and may
// persist it anyway.
package planvalidate

import (
	"strconv"
	"strings"
)

// The model returns JSON decoded into map[string]any, so every field access
// has to tolerate missing keys and wrong types. These helpers coerce what
// they can and report the rest.

// AsMap returns v as a string-keyed map.
func AsMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

// AsSlice returns v as a slice of values.
func AsSlice(v any) ([]any, bool) {
	s, ok := v.([]any)
	return s, ok
}

// Str returns the string at key.
func Str(m map[string]any, key string) (string, bool) {
	s, ok := m[key].(string)
	return s, ok
}

// Int returns the integer at key, coercing JSON numbers and numeric
// strings.
func Int(m map[string]any, key string) (int, bool) {
	switch v := m[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case int64:
		return int(v), true
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n, true
		}
	}
	return 0, false
}

// Float returns the float at key, coercing JSON numbers and numeric
// strings.
func Float(m map[string]any, key string) (float64, bool) {
	switch v := m[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

// Bool returns the boolean at key.
func Bool(m map[string]any, key string) (bool, bool) {
	b, ok := m[key].(bool)
	return b, ok
}

// StringList returns the list of strings at key, dropping non-string
// elements.
func StringList(m map[string]any, key string) []string {
	vals, ok := AsSlice(m[key])
	if !ok {
		return nil
	}
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// ClampInt bounds v to [lo, hi].
func ClampInt(v int, lo int, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
