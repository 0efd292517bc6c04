// Package parallel provides chunked parallel algorithms over slices:
// ForEach, Map, Reduce, Filter and Sort, plus Try variants that carry
// user errors back as values.
//
// Every function accepts a thread-count hint; 0 resolves to
// runtime.NumCPU() at call time. Inputs no larger than the thread count
// run sequentially on the calling goroutine to avoid scheduling overhead.
// Each call spawns threads-1 worker goroutines, runs the final chunk on
// the calling goroutine and joins all workers before returning; there is
// no persistent pool and no cancellation of in-flight work.
//
// A panic inside a user function on a worker goroutine is recovered into
// a *PanicError and re-raised on the calling goroutine at the join point,
// so a worker panic cannot leak a wedged WaitGroup.
package parallel

import (
	"runtime"
	"sync"
)

// resolveThreads maps the 0 hint to the machine's logical CPU count.
func resolveThreads(threads int) int {
	if threads <= 0 {
		return runtime.NumCPU()
	}
	return threads
}

// chunkBounds returns the [start, end) bounds of chunk i when n items are
// split into threads contiguous chunks. The final chunk absorbs the
// remainder.
func chunkBounds(n, threads, i int) (start, end int) {
	size := n / threads
	start = i * size
	end = start + size
	if i == threads-1 {
		end = n
	}
	return start, end
}

// ForEach applies fn to every element of items. Chunks execute
// concurrently with no ordering guarantee between them; within a chunk fn
// runs in index order.
func ForEach[T any](items []T, fn func(T), threads int) {
	threads = resolveThreads(threads)
	if len(items) == 0 {
		return
	}
	if len(items) <= threads || threads == 1 {
		for _, v := range items {
			fn(v)
		}
		return
	}

	var wg sync.WaitGroup
	var pv panicValue
	for i := 0; i < threads-1; i++ {
		start, end := chunkBounds(len(items), threads, i)
		wg.Add(1)
		go func(chunk []T) {
			defer wg.Done()
			defer pv.capture()
			for _, v := range chunk {
				fn(v)
			}
		}(items[start:end])
	}

	start, _ := chunkBounds(len(items), threads, threads-1)
	func() {
		defer pv.capture()
		for _, v := range items[start:] {
			fn(v)
		}
	}()

	wg.Wait()
	pv.repanic()
}

// Map applies fn to every element of items and returns the results in
// input order. Each result is written at the position of its input index,
// so the output order is independent of execution interleaving.
func Map[T any, R any](items []T, fn func(T) R, threads int) []R {
	threads = resolveThreads(threads)
	if len(items) == 0 {
		return []R{}
	}

	res := make([]R, len(items))
	if len(items) <= threads || threads == 1 {
		for i, v := range items {
			res[i] = fn(v)
		}
		return res
	}

	var wg sync.WaitGroup
	var pv panicValue
	for i := 0; i < threads-1; i++ {
		start, end := chunkBounds(len(items), threads, i)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			defer pv.capture()
			for k := s; k < e; k++ {
				res[k] = fn(items[k])
			}
		}(start, end)
	}

	start, _ := chunkBounds(len(items), threads, threads-1)
	func() {
		defer pv.capture()
		for k := start; k < len(items); k++ {
			res[k] = fn(items[k])
		}
	}()

	wg.Wait()
	pv.repanic()
	return res
}

// Reduce folds items with op. Every chunk folds from the zero value of T,
// the partial results are combined with op in chunk order, and the caller's
// init is combined in once at the end. op must be associative for the
// result to be deterministic across thread counts.
func Reduce[T any](items []T, init T, op func(T, T) T, threads int) T {
	threads = resolveThreads(threads)
	if len(items) == 0 {
		return init
	}
	if len(items) <= threads || threads == 1 {
		acc := init
		for _, v := range items {
			acc = op(acc, v)
		}
		return acc
	}

	partials := make([]T, threads)

	var wg sync.WaitGroup
	var pv panicValue
	for i := 0; i < threads-1; i++ {
		start, end := chunkBounds(len(items), threads, i)
		wg.Add(1)
		go func(idx, s, e int) {
			defer wg.Done()
			defer pv.capture()
			var acc T
			for k := s; k < e; k++ {
				acc = op(acc, items[k])
			}
			partials[idx] = acc
		}(i, start, end)
	}

	start, _ := chunkBounds(len(items), threads, threads-1)
	func() {
		defer pv.capture()
		var acc T
		for k := start; k < len(items); k++ {
			acc = op(acc, items[k])
		}
		partials[threads-1] = acc
	}()

	wg.Wait()
	pv.repanic()

	combined := partials[0]
	for _, p := range partials[1:] {
		combined = op(combined, p)
	}
	return op(init, combined)
}

// Filter returns the elements of items satisfying pred. Each worker
// filters its chunk into a private buffer and the buffers are concatenated
// in chunk order, so the relative order of surviving elements is preserved
// even though pred evaluation across chunks is unordered.
func Filter[T any](items []T, pred func(T) bool, threads int) []T {
	threads = resolveThreads(threads)
	if len(items) == 0 {
		return []T{}
	}
	if len(items) <= threads*4 || threads == 1 {
		res := make([]T, 0, len(items))
		for _, v := range items {
			if pred(v) {
				res = append(res, v)
			}
		}
		return res
	}

	locals := make([][]T, threads)

	var wg sync.WaitGroup
	var pv panicValue
	for i := 0; i < threads-1; i++ {
		start, end := chunkBounds(len(items), threads, i)
		wg.Add(1)
		go func(idx, s, e int) {
			defer wg.Done()
			defer pv.capture()
			// assume a 50% pass rate to reduce allocations
			local := make([]T, 0, (e-s)/2)
			for k := s; k < e; k++ {
				if pred(items[k]) {
					local = append(local, items[k])
				}
			}
			locals[idx] = local
		}(i, start, end)
	}

	start, _ := chunkBounds(len(items), threads, threads-1)
	func() {
		defer pv.capture()
		local := make([]T, 0, (len(items)-start)/2)
		for k := start; k < len(items); k++ {
			if pred(items[k]) {
				local = append(local, items[k])
			}
		}
		locals[threads-1] = local
	}()

	wg.Wait()
	pv.repanic()

	total := 0
	for _, l := range locals {
		total += len(l)
	}
	res := make([]T, 0, total)
	for _, l := range locals {
		res = append(res, l...)
	}
	return res
}
