package utils

import (
	"github.com/duke-git/lancet/v2/random"
)

// RandInt 返回 [min, max] 区间内的随机整数，max 小于 min 时返回 min
func RandInt(min, max int) int {
	if max <= min {
		return min
	}
	return random.RandInt(min, max+1)
}

// RandPick 随机选取一个元素，空切片返回零值
func RandPick[T any](items []T) T {
	var zero T
	if len(items) == 0 {
		return zero
	}
	return items[random.RandInt(0, len(items))]
}
