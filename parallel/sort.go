package parallel

import (
	"cmp"
	"slices"
)

// seqSortThreshold is the sub-range size at or below which sorting is
// always sequential. Below this size goroutine spawn cost dominates the
// work of the sort itself.
const seqSortThreshold = 1000

// Sort sorts items in place according to less. Ranges of at most 1000
// elements, or a thread budget of 1, sort sequentially. Larger ranges use
// a parallel quicksort: the middle element is picked as pivot, the range
// is partitioned in place, the left part recurses on a spawned goroutine
// while the right part recurses on the calling goroutine, and the thread
// budget halves at each level. The standard library offers no parallel
// execution-policy sort to try first, so the quicksort is the one parallel
// path.
func Sort[T any](items []T, less func(a, b T) bool, threads int) {
	threads = resolveThreads(threads)
	if len(items) <= seqSortThreshold || threads == 1 {
		slices.SortFunc(items, cmpFunc(less))
		return
	}
	quickSort(items, less, threads)
}

// SortOrdered sorts items of an ordered type in ascending order.
func SortOrdered[T cmp.Ordered](items []T, threads int) {
	Sort(items, func(a, b T) bool { return a < b }, threads)
}

func cmpFunc[T any](less func(a, b T) bool) func(a, b T) int {
	return func(a, b T) int {
		switch {
		case less(a, b):
			return -1
		case less(b, a):
			return 1
		default:
			return 0
		}
	}
}

func quickSort[T any](items []T, less func(a, b T) bool, budget int) {
	if len(items) <= 1 {
		return
	}
	if len(items) <= seqSortThreshold || budget <= 1 {
		slices.SortFunc(items, cmpFunc(less))
		return
	}

	pivot := items[len(items)/2]

	// Three-way split: [< pivot | == pivot | > pivot]. Separating the
	// equal block guarantees both recursions strictly shrink even when
	// the range is dominated by one key.
	lt := partition(items, func(v T) bool { return less(v, pivot) })
	eq := partition(items[lt:], func(v T) bool { return !less(pivot, v) })

	left := items[:lt]
	right := items[lt+eq:]

	var pv panicValue
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer pv.capture()
		quickSort(left, less, budget/2)
	}()

	func() {
		defer pv.capture()
		quickSort(right, less, budget/2)
	}()

	<-done
	pv.repanic()
}

// partition moves every element satisfying pred to the front of items and
// returns the count of such elements.
func partition[T any](items []T, pred func(T) bool) int {
	i := 0
	for j := range items {
		if pred(items[j]) {
			items[i], items[j] = items[j], items[i]
			i++
		}
	}
	return i
}
