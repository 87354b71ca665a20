package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSliceUnique(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, SliceUnique([]string{"a", "b", "a", "c", "b"}))
	assert.Equal(t, []string{}, SliceUnique[string](nil))
}

func TestSliceDifference(t *testing.T) {
	assert.Equal(t, []string{"a"}, SliceDifference([]string{"a", "b"}, []string{"b", "c"}))
	assert.Empty(t, SliceDifference([]string{"a"}, []string{"a"}))
}

func TestSliceFilterAndMap(t *testing.T) {
	assert.Equal(t, []int{2, 4}, SliceFilter([]int{1, 2, 3, 4}, func(_ int, v int) bool { return v%2 == 0 }))
	assert.Equal(t, []int{2, 4}, SliceMap([]int{1, 2}, func(_ int, v int) int { return v * 2 }))
}
