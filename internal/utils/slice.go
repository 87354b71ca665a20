package utils

import (
	"github.com/duke-git/lancet/v2/slice"
)

// SliceUnique 切片去重，保留首次出现的顺序
func SliceUnique[T comparable](s []T) []T {
	if len(s) == 0 {
		return []T{}
	}
	return slice.Unique(s)
}

// SliceDifference 返回在 s1 中但不在 s2 中的元素
func SliceDifference[T comparable](s1, s2 []T) []T {
	return slice.Difference(s1, s2)
}

// SliceMap 映射切片
func SliceMap[T any, U any](s []T, fn func(index int, item T) U) []U {
	return slice.Map(s, fn)
}

// SliceFilter 过滤切片
func SliceFilter[T any](s []T, fn func(index int, item T) bool) []T {
	return slice.Filter(s, fn)
}
