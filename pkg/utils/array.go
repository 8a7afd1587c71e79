package utils

import (
	"math/rand/v2"
	"slices"
)

// Chunk splits s into consecutive slices of at most size elements.
// A size of zero or less yields an empty result.
func Chunk[T any](s []T, size int) [][]T {
	if size <= 0 || len(s) == 0 {
		return [][]T{}
	}
	out := make([][]T, 0, (len(s)+size-1)/size)
	for c := range slices.Chunk(s, size) {
		out = append(out, c)
	}
	return out
}

// RandomValue returns a random element of s. The boolean is false for an
// empty slice.
func RandomValue[T any](s []T) (T, bool) {
	if len(s) == 0 {
		var zero T
		return zero, false
	}
	return s[rand.IntN(len(s))], true
}

// StableSort returns a sorted copy of s. Elements that compare equal keep
// their original order.
func StableSort[T any](s []T, cmp func(a, b T) int) []T {
	out := slices.Clone(s)
	slices.SortStableFunc(out, cmp)
	return out
}
