/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package gts

import (
	"fmt"
	"sort"
	"strings"
)

// getAs extracts m[key] as T, returning the zero value when the key is absent
// or holds a value of a different type. Every typed accessor below is a thin
// wrapper over this one type switch.
func getAs[T any](m map[string]any, key string) (T, bool) {
	var zero T
	val, ok := m[key]
	if !ok {
		return zero, false
	}
	typed, ok := val.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}

// getPropertiesMap safely extracts properties as map[string]any
func getPropertiesMap(schema map[string]any) map[string]any {
	if props, ok := getAs[map[string]any](schema, "properties"); ok {
		return props
	}
	return make(map[string]any)
}

// getRequiredSet safely extracts required fields as a set
func getRequiredSet(schema map[string]any) map[string]bool {
	items, _ := getAs[[]any](schema, "required")
	set := make(map[string]bool, len(items))
	for _, item := range items {
		if str, ok := item.(string); ok {
			set[str] = true
		}
	}
	return set
}

// getString safely extracts a string value from map
func getString(m map[string]any, key string) string {
	s, _ := getAs[string](m, key)
	return s
}

// getMap safely extracts a map value
func getMap(m map[string]any, key string) map[string]any {
	v, _ := getAs[map[string]any](m, key)
	return v
}

// numericKinds are tried in order since Go's json decoder yields float64 but
// values assembled programmatically may carry int/int64 instead.
func getNumber(m map[string]any, key string) *float64 {
	val, ok := m[key]
	if !ok {
		return nil
	}
	switch v := val.(type) {
	case float64:
		return &v
	case int:
		f := float64(v)
		return &f
	case int64:
		f := float64(v)
		return &f
	default:
		return nil
	}
}

// getStringSlice safely extracts a string slice from enum
func getStringSlice(m map[string]any, key string) []string {
	items, _ := getAs[[]any](m, key)
	result := make([]string, 0, len(items))
	for _, item := range items {
		if str, ok := item.(string); ok {
			result = append(result, str)
		}
	}
	return result
}

// getKeys returns all keys from a map as a set
func getKeys(m map[string]any) map[string]bool {
	keys := make(map[string]bool, len(m))
	for k := range m {
		keys[k] = true
	}
	return keys
}

// filterSet returns the sorted keys of a for which keep(present-in-b) holds,
// the shared machinery behind setDifference and setIntersection.
func filterSet(a, b map[string]bool, keep func(inB bool) bool) []string {
	out := []string{}
	for k := range a {
		if keep(b[k]) {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// setDifference returns elements in a that are not in b
func setDifference(a, b map[string]bool) []string {
	return filterSet(a, b, func(inB bool) bool { return !inB })
}

// setIntersection returns elements that exist in both a and b
func setIntersection(a, b map[string]bool) []string {
	return filterSet(a, b, func(inB bool) bool { return inB })
}

// joinStrings joins string slice with comma separator
func joinStrings(strs []string) string {
	return strings.Join(strs, ", ")
}

// stringSliceToSet converts string slice to set
func stringSliceToSet(slice []string) map[string]bool {
	set := make(map[string]bool, len(slice))
	for _, s := range slice {
		set[s] = true
	}
	return set
}

// setToString converts a set to a sorted comma-separated string
func setToString(set map[string]bool) string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ", ")
}

// floatToString renders f without trailing zeros or a dangling decimal point.
func floatToString(f float64) string {
	s := fmt.Sprintf("%.10f", f)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
