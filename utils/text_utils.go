package utils

import (
	"path"
	"strings"
)

// DeduplicateSlice trims, drops empties and removes duplicates while keeping
// the first occurrence order.
func DeduplicateSlice(input []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0)

	for _, val := range input {
		val = strings.TrimSpace(val)
		if val != "" && !seen[val] {
			result = append(result, val)
			seen[val] = true
		}
	}

	return result
}

// StripFileExt removes the extension from a media filename so it can serve
// as a weak keyword source.
func StripFileExt(name string) string {
	return strings.TrimSuffix(name, path.Ext(name))
}

// Min returns the smaller of two ints.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// IndexOf returns the index of element in slice, or -1.
func IndexOf(slice []string, element string) int {
	for i, e := range slice {
		if e == element {
			return i
		}
	}
	return -1
}
