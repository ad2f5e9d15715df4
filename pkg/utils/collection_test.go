package utils

import (
	"reflect"
	"sort"
	"testing"
)

func TestSortedStringKeys(t *testing.T) {
	m := map[string]int{
		"c": 3,
		"a": 1,
		"b": 2,
	}

	keys := SortedStringKeys(m)
	expected := []string{"a", "b", "c"}

	if !reflect.DeepEqual(keys, expected) {
		t.Errorf("SortedStringKeys() = %v, want %v", keys, expected)
	}
}

func TestUniqueStrings(t *testing.T) {
	tests := []struct {
		input    []string
		expected []string
	}{
		{[]string{"a", "b", "a", "c", "b"}, []string{"a", "b", "c"}},
		{[]string{"a", "a", "a"}, []string{"a"}},
		{[]string{}, []string{}},
		{[]string{"x"}, []string{"x"}},
	}

	for _, tt := range tests {
		result := UniqueStrings(tt.input)
		if !reflect.DeepEqual(result, tt.expected) {
			t.Errorf("UniqueStrings(%v) = %v, want %v", tt.input, result, tt.expected)
		}
	}
}

func TestContainsSlice(t *testing.T) {
	tests := []struct {
		slice    []int
		item     int
		expected bool
	}{
		{[]int{1, 2, 3}, 2, true},
		{[]int{1, 2, 3}, 4, false},
		{[]int{}, 1, false},
		{[]int{5}, 5, true},
	}

	for _, tt := range tests {
		result := ContainsSlice(tt.slice, tt.item)
		if result != tt.expected {
			t.Errorf("ContainsSlice(%v, %d) = %v, want %v", tt.slice, tt.item, result, tt.expected)
		}
	}
}

func TestMapKeys(t *testing.T) {
	m := map[string]int{"a": 1, "b": 2, "c": 3}
	keys := MapKeys(m)

	if len(keys) != 3 {
		t.Errorf("MapKeys() returned %d keys, want 3", len(keys))
	}

	sort.Strings(keys)
	expected := []string{"a", "b", "c"}
	if !reflect.DeepEqual(keys, expected) {
		t.Errorf("MapKeys() = %v, want %v", keys, expected)
	}
}

func TestFilterSlice(t *testing.T) {
	input := []int{1, 2, 3, 4, 5}
	result := FilterSlice(input, func(v int) bool {
		return v%2 == 0
	})
	expected := []int{2, 4}

	if !reflect.DeepEqual(result, expected) {
		t.Errorf("FilterSlice() = %v, want %v", result, expected)
	}
}

func TestMapSlice(t *testing.T) {
	input := []int{1, 2, 3}
	result := MapSlice(input, func(v int) int {
		return v * 2
	})
	expected := []int{2, 4, 6}

	if !reflect.DeepEqual(result, expected) {
		t.Errorf("MapSlice() = %v, want %v", result, expected)
	}
}
