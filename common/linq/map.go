package linq

import (
	"cmp"
	"slices"
)

func ToList[K comparable, V any, T any](data map[K]V, selector func(K, V) T) []T {
	r := make([]T, len(data))
	c := 0
	for k, v := range data {
		r[c] = selector(k, v)
		c++
	}
	return r
}

func CopyMap[T comparable, V any](originalMap map[T]V) map[T]V {
	newMap := make(map[T]V, len(originalMap))
	for k, v := range originalMap {
		newMap[k] = v
	}
	return newMap
}

func SortedKeys[K cmp.Ordered, V any](data map[K]V) []K {
	keys := make([]K, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// SameKeys reports whether both maps have exactly the same key set
func SameKeys[K comparable, A any, B any](a map[K]A, b map[K]B) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ex := b[k]; !ex {
			return false
		}
	}
	return true
}

func Count[T any](data []T, pred func(T) bool) int {
	c := 0
	for _, v := range data {
		if pred(v) {
			c++
		}
	}
	return c
}
