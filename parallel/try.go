package parallel

import (
	"sync"
	"sync/atomic"
)

// firstError records the first error among a batch of workers. Only the
// winner of the CAS writes err; callers read it after WaitGroup.Wait.
type firstError struct {
	failed atomic.Bool
	err    error
}

func (f *firstError) set(err error) {
	if f.failed.CompareAndSwap(false, true) {
		f.err = err
	}
}

func (f *firstError) tripped() bool { return f.failed.Load() }

// TryForEach is ForEach with an error-returning fn. The first error
// observed wins; remaining workers stop at their next element and the
// error is returned after all workers have joined.
func TryForEach[T any](items []T, fn func(T) error, threads int) error {
	threads = resolveThreads(threads)
	if len(items) == 0 {
		return nil
	}
	if len(items) <= threads || threads == 1 {
		for _, v := range items {
			if err := fn(v); err != nil {
				return err
			}
		}
		return nil
	}

	var wg sync.WaitGroup
	var pv panicValue
	var fe firstError
	for i := 0; i < threads; i++ {
		start, end := chunkBounds(len(items), threads, i)
		run := func(s, e int) {
			defer pv.capture()
			for k := s; k < e; k++ {
				if fe.tripped() {
					return
				}
				if err := fn(items[k]); err != nil {
					fe.set(err)
					return
				}
			}
		}
		if i == threads-1 {
			run(start, end)
			break
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			run(s, e)
		}(start, end)
	}

	wg.Wait()
	pv.repanic()
	return fe.err
}

// TryMap is Map with an error-returning fn. On error the partial output is
// discarded and the first error is returned.
func TryMap[T any, R any](items []T, fn func(T) (R, error), threads int) ([]R, error) {
	threads = resolveThreads(threads)
	if len(items) == 0 {
		return []R{}, nil
	}

	res := make([]R, len(items))
	if len(items) <= threads || threads == 1 {
		for i, v := range items {
			var err error
			if res[i], err = fn(v); err != nil {
				return nil, err
			}
		}
		return res, nil
	}

	var wg sync.WaitGroup
	var pv panicValue
	var fe firstError
	for i := 0; i < threads; i++ {
		start, end := chunkBounds(len(items), threads, i)
		run := func(s, e int) {
			defer pv.capture()
			for k := s; k < e; k++ {
				if fe.tripped() {
					return
				}
				v, err := fn(items[k])
				if err != nil {
					fe.set(err)
					return
				}
				res[k] = v
			}
		}
		if i == threads-1 {
			run(start, end)
			break
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			run(s, e)
		}(start, end)
	}

	wg.Wait()
	pv.repanic()
	if fe.err != nil {
		return nil, fe.err
	}
	return res, nil
}

// TryFilter is Filter with an error-returning pred. Relative order of
// surviving elements is preserved.
func TryFilter[T any](items []T, pred func(T) (bool, error), threads int) ([]T, error) {
	threads = resolveThreads(threads)
	if len(items) == 0 {
		return []T{}, nil
	}
	if len(items) <= threads*4 || threads == 1 {
		res := make([]T, 0, len(items))
		for _, v := range items {
			keep, err := pred(v)
			if err != nil {
				return nil, err
			}
			if keep {
				res = append(res, v)
			}
		}
		return res, nil
	}

	locals := make([][]T, threads)

	var wg sync.WaitGroup
	var pv panicValue
	var fe firstError
	for i := 0; i < threads; i++ {
		start, end := chunkBounds(len(items), threads, i)
		run := func(idx, s, e int) {
			defer pv.capture()
			local := make([]T, 0, (e-s)/2)
			for k := s; k < e; k++ {
				if fe.tripped() {
					return
				}
				keep, err := pred(items[k])
				if err != nil {
					fe.set(err)
					return
				}
				if keep {
					local = append(local, items[k])
				}
			}
			locals[idx] = local
		}
		if i == threads-1 {
			run(i, start, end)
			break
		}
		wg.Add(1)
		go func(idx, s, e int) {
			defer wg.Done()
			run(idx, s, e)
		}(i, start, end)
	}

	wg.Wait()
	pv.repanic()
	if fe.err != nil {
		return nil, fe.err
	}

	total := 0
	for _, l := range locals {
		total += len(l)
	}
	res := make([]T, 0, total)
	for _, l := range locals {
		res = append(res, l...)
	}
	return res, nil
}

// TryTransform replaces every element of items with fn's result, in place.
// On error items may already be partially rewritten; callers that need
// all-or-nothing semantics should operate on a copy.
func TryTransform[T any](items []T, fn func(T) (T, error), threads int) error {
	threads = resolveThreads(threads)
	if len(items) == 0 {
		return nil
	}
	if len(items) <= threads || threads == 1 {
		for i, v := range items {
			nv, err := fn(v)
			if err != nil {
				return err
			}
			items[i] = nv
		}
		return nil
	}

	var wg sync.WaitGroup
	var pv panicValue
	var fe firstError
	for i := 0; i < threads; i++ {
		start, end := chunkBounds(len(items), threads, i)
		run := func(s, e int) {
			defer pv.capture()
			for k := s; k < e; k++ {
				if fe.tripped() {
					return
				}
				nv, err := fn(items[k])
				if err != nil {
					fe.set(err)
					return
				}
				items[k] = nv
			}
		}
		if i == threads-1 {
			run(start, end)
			break
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			run(s, e)
		}(start, end)
	}

	wg.Wait()
	pv.repanic()
	return fe.err
}
