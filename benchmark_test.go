package evstack_test

import (
	"testing"

	"evstack/eventstack"
	"evstack/parallel"
)

// heavyCalc simulates a CPU intensive operation
func heavyCalc(x int) int {
	for i := 0; i < 1000; i++ {
		x = (x + i*i) % 10000
	}
	return x
}

// BenchmarkEngine_Map compares the sequential and parallel map paths under
// light and heavy per-element work.
func BenchmarkEngine_Map(b *testing.B) {
	size := 1_000_000
	input := make([]int, size)
	for i := 0; i < size; i++ {
		input[i] = i
	}

	workloads := []struct {
		name      string
		transform func(int) int
	}{
		{name: "Light", transform: func(x int) int { return x * 2 }},
		{name: "Heavy", transform: heavyCalc},
	}

	for _, wl := range workloads {
		b.Run(wl.name, func(b *testing.B) {
			b.Run("Sequential", func(b *testing.B) {
				for i := 0; i < b.N; i++ {
					_ = parallel.Map(input, wl.transform, 1)
				}
			})
			b.Run("Parallel", func(b *testing.B) {
				for i := 0; i < b.N; i++ {
					_ = parallel.Map(input, wl.transform, 0)
				}
			})
		})
	}
}

func BenchmarkEngine_Sort(b *testing.B) {
	size := 1_000_000
	base := make([]int, size)
	for i := 0; i < size; i++ {
		base[i] = (i * 2654435761) % size
	}
	scratch := make([]int, size)

	b.Run("Sequential", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			copy(scratch, base)
			parallel.SortOrdered(scratch, 1)
		}
	})
	b.Run("Parallel", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			copy(scratch, base)
			parallel.SortOrdered(scratch, 0)
		}
	})
}

// BenchmarkStack_PushPop compares the two backing strategies under
// single-goroutine and contended access.
func BenchmarkStack_PushPop(b *testing.B) {
	b.Run("Mutex_Serial", func(b *testing.B) {
		s := eventstack.New[int]()
		for i := 0; i < b.N; i++ {
			_ = s.Push(1)
			_, _ = s.Pop()
		}
	})
	b.Run("LockFree_Serial", func(b *testing.B) {
		s := eventstack.New(eventstack.WithLockFree[int]())
		for i := 0; i < b.N; i++ {
			_ = s.Push(1)
			_, _ = s.Pop()
		}
	})
	b.Run("Mutex_Contended", func(b *testing.B) {
		s := eventstack.New[int]()
		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				_ = s.Push(1)
				_, _ = s.Pop()
			}
		})
	})
	b.Run("LockFree_Contended", func(b *testing.B) {
		s := eventstack.New(eventstack.WithLockFree[int]())
		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				_ = s.Push(1)
				_, _ = s.Pop()
			}
		})
	})
}

func BenchmarkStack_Filter(b *testing.B) {
	s := eventstack.New[int]()
	for i := 0; i < 100_000; i++ {
		_ = s.Push(i)
	}

	b.Run("KeepAll", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = s.Filter(func(int) bool { return true })
		}
	})
}
