// Package strings provides string manipulation utilities.
package strings

import (
	"strings"
)

// DedupeBy removes elements whose key was already seen, keeping the first
// occurrence. Elements with an empty key are dropped. Order is preserved.
//
// Example:
//
//	DedupeBy([]string{"@Ana", "@ana", "Bo"}, strings.ToLower)
//	// Returns: []string{"@Ana", "Bo"}
func DedupeBy[T any](values []T, key func(T) string) []T {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]T, 0, len(values))

	for _, v := range values {
		k := key(v)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		result = append(result, v)
	}

	return result
}

// DedupeAndTrimLower trims and lowercases each element, then removes
// duplicates and empty strings. Useful for case-insensitive lookups.
//
// Example:
//
//	DedupeAndTrimLower([]string{"  @FOO ", "bar", "@Foo"})
//	// Returns: []string{"@foo", "bar"}
func DedupeAndTrimLower(values []string) []string {
	if len(values) == 0 {
		return values
	}
	lowered := make([]string, len(values))
	for i, v := range values {
		lowered[i] = strings.ToLower(strings.TrimSpace(v))
	}
	return DedupeBy(lowered, func(s string) string { return s })
}
