// Package utils holds small generic slice/map helpers shared across the
// design package: ordering, dedup and filter/map over ids and attribute
// names. Id deduplication goes through EntityTable/OrderedSet instead of a
// helper here, and value copying goes through github.com/tiendc/go-deepcopy.
package utils

import "sort"

// SortedStringKeys returns the string keys of a map sorted in ascending
// order.
func SortedStringKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// UniqueStrings removes duplicate strings from a slice, preserving first
// occurrence.
func UniqueStrings(slice []string) []string {
	if len(slice) == 0 {
		return slice
	}
	seen := make(map[string]bool, len(slice))
	result := make([]string, 0, len(slice))
	for _, v := range slice {
		if !seen[v] {
			seen[v] = true
			result = append(result, v)
		}
	}
	return result
}

// ContainsSlice reports whether slice contains item.
func ContainsSlice[T comparable](slice []T, item T) bool {
	for _, v := range slice {
		if v == item {
			return true
		}
	}
	return false
}

// MapKeys returns all keys of a map as a slice.
func MapKeys[K comparable, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

// FilterSlice returns the elements of slice for which predicate is true.
func FilterSlice[T any](slice []T, predicate func(T) bool) []T {
	result := make([]T, 0, len(slice))
	for _, v := range slice {
		if predicate(v) {
			result = append(result, v)
		}
	}
	return result
}

// MapSlice transforms each element of a slice using transform.
func MapSlice[T, U any](slice []T, transform func(T) U) []U {
	result := make([]U, len(slice))
	for i, v := range slice {
		result[i] = transform(v)
	}
	return result
}
