package linq

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortedKeysAndSameKeys(t *testing.T) {
	a := map[string]int{"b": 1, "a": 2, "c": 3}
	b := map[string][]int{"a": nil, "b": nil, "c": nil}

	assert.Equal(t, []string{"a", "b", "c"}, SortedKeys(a))
	assert.True(t, SameKeys(a, b))

	delete(b, "c")
	assert.False(t, SameKeys(a, b))
	b["d"] = nil
	assert.False(t, SameKeys(a, b))
}

func TestCopyMapIsIndependent(t *testing.T) {
	a := map[string]float64{"x": 1}
	c := CopyMap(a)
	c["x"] = 2
	assert.Equal(t, 1.0, a["x"])
}

func TestCount(t *testing.T) {
	assert.Equal(t, 2, Count([]int{1, 2, 3, 4}, func(v int) bool { return v%2 == 0 }))
	assert.Equal(t, 0, Count(nil, func(v int) bool { return true }))
}
