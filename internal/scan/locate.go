package scan

import "sort"

// LeftNearest returns the index of the greatest element of sorted that is
// less than or equal to x, or -1 when every element is greater than x.
// sorted must be in ascending order.
func LeftNearest(x int, sorted []int) int {
	return sort.Search(len(sorted), func(i int) bool {
		return sorted[i] > x
	}) - 1
}
