package eventstack_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evstack/eventstack"
)

// backends runs a subtest against both backing strategies.
func backends(t *testing.T, fn func(t *testing.T, opts ...eventstack.Option[int])) {
	t.Run("mutex", func(t *testing.T) { fn(t) })
	t.Run("lockfree", func(t *testing.T) { fn(t, eventstack.WithLockFree[int]()) })
}

func TestPushPop_LIFO(t *testing.T) {
	backends(t, func(t *testing.T, opts ...eventstack.Option[int]) {
		s := eventstack.New(opts...)
		for i := 0; i < 100; i++ {
			require.NoError(t, s.Push(i))
		}
		for i := 99; i >= 0; i-- {
			v, ok := s.Pop()
			require.True(t, ok)
			require.Equal(t, i, v, "popped order must be the reverse of pushed order")
		}
		_, ok := s.Pop()
		assert.False(t, ok, "pop on empty stack reports absence")
	})
}

func TestSize_AfterPushesAndPops(t *testing.T) {
	backends(t, func(t *testing.T, opts ...eventstack.Option[int]) {
		s := eventstack.New(opts...)
		assert.True(t, s.IsEmpty())

		const pushes, pops = 50, 20
		for i := 0; i < pushes; i++ {
			require.NoError(t, s.Push(i))
		}
		for i := 0; i < pops; i++ {
			_, ok := s.Pop()
			require.True(t, ok)
		}
		assert.Equal(t, pushes-pops, s.Size())
		assert.False(t, s.IsEmpty())

		s.Clear()
		assert.Equal(t, 0, s.Size())
		assert.True(t, s.IsEmpty())
	})
}

func TestPeek_DoesNotRemove(t *testing.T) {
	backends(t, func(t *testing.T, opts ...eventstack.Option[int]) {
		s := eventstack.New(opts...)
		_, ok := s.Peek()
		require.False(t, ok)

		require.NoError(t, s.Push(7))
		v, ok := s.Peek()
		require.True(t, ok)
		assert.Equal(t, 7, v)
		assert.Equal(t, 1, s.Size())
	})
}

func TestEventScenario(t *testing.T) {
	s := eventstack.New[eventstack.Event]()
	require.NoError(t, s.Push(eventstack.NewEvent(1, "A")))
	require.NoError(t, s.Push(eventstack.NewEvent(2, "B")))
	require.NoError(t, s.Push(eventstack.NewEvent(3, "C")))

	top, ok := s.Peek()
	require.True(t, ok)
	assert.Equal(t, 3, top.Seq)
	assert.Equal(t, "C", top.Name)

	popped, ok := s.Pop()
	require.True(t, ok)
	assert.Equal(t, 3, popped.Seq)
	assert.Equal(t, "C", popped.Name)

	assert.Equal(t, 2, s.Size())
}

func TestFilter(t *testing.T) {
	backends(t, func(t *testing.T, opts ...eventstack.Option[int]) {
		s := eventstack.New(opts...)
		for i := 0; i < 10_000; i++ {
			require.NoError(t, s.Push(i))
		}

		even := func(v int) bool { return v%2 == 0 }
		before := s.Count(even)

		require.NoError(t, s.Filter(even))

		assert.Equal(t, before, s.Size(), "count before filtering equals post-filter size")
		assert.True(t, s.All(even), "every survivor satisfies the predicate")

		// Relative order preserved: popping walks survivors descending.
		prev, ok := s.Pop()
		require.True(t, ok)
		for {
			v, ok := s.Pop()
			if !ok {
				break
			}
			require.Less(t, v, prev)
			prev = v
		}
	})
}

func TestQueries(t *testing.T) {
	backends(t, func(t *testing.T, opts ...eventstack.Option[int]) {
		s := eventstack.New(opts...)
		for i := 1; i <= 1000; i++ {
			require.NoError(t, s.Push(i))
		}

		assert.Equal(t, 500, s.Count(func(v int) bool { return v%2 == 0 }))

		v, ok := s.Find(func(v int) bool { return v > 990 })
		require.True(t, ok)
		assert.Equal(t, 991, v, "find returns the first match in backing order")

		_, ok = s.Find(func(v int) bool { return v > 1000 })
		assert.False(t, ok)

		assert.True(t, s.Any(func(v int) bool { return v == 1000 }))
		assert.False(t, s.Any(func(v int) bool { return v == 0 }))
		assert.True(t, s.All(func(v int) bool { return v >= 1 }))
		assert.False(t, s.All(func(v int) bool { return v > 1 }))
	})
}

func TestAll_VacuouslyTrueOnEmpty(t *testing.T) {
	s := eventstack.New[int]()
	assert.True(t, s.All(func(int) bool { return false }))
	assert.False(t, s.Any(func(int) bool { return true }))
}

func TestReverse(t *testing.T) {
	backends(t, func(t *testing.T, opts ...eventstack.Option[int]) {
		s := eventstack.New(opts...)
		for i := 1; i <= 5; i++ {
			require.NoError(t, s.Push(i))
		}
		s.Reverse()

		for i := 1; i <= 5; i++ {
			v, ok := s.Pop()
			require.True(t, ok)
			assert.Equal(t, i, v)
		}
	})
}

func TestTransform(t *testing.T) {
	backends(t, func(t *testing.T, opts ...eventstack.Option[int]) {
		s := eventstack.New(opts...)
		for i := 0; i < 5_000; i++ {
			require.NoError(t, s.Push(i))
		}
		require.NoError(t, s.Transform(func(v int) int { return v * 2 }))

		for i := 4_999; i >= 0; i-- {
			v, ok := s.Pop()
			require.True(t, ok)
			require.Equal(t, i*2, v)
		}
	})
}

func TestForEach_VisitsEverything(t *testing.T) {
	s := eventstack.New[int]()
	for i := 0; i < 2_000; i++ {
		require.NoError(t, s.Push(1))
	}
	// Count through the engine by predicate; ForEach side effects are
	// exercised via Count/Any/All which are built on it.
	assert.Equal(t, 2_000, s.Count(func(int) bool { return true }))
}

func TestCopy_Independent(t *testing.T) {
	backends(t, func(t *testing.T, opts ...eventstack.Option[int]) {
		s := eventstack.New(opts...)
		for i := 0; i < 10; i++ {
			require.NoError(t, s.Push(i))
		}

		dup := s.Copy()
		require.Equal(t, s.Size(), dup.Size())

		_, _ = s.Pop()
		require.NoError(t, dup.Push(99))

		assert.Equal(t, 9, s.Size())
		assert.Equal(t, 11, dup.Size())

		top, ok := dup.Pop()
		require.True(t, ok)
		assert.Equal(t, 99, top)
	})
}

func TestPush_CapacityExceeded(t *testing.T) {
	s := eventstack.New(eventstack.WithCapacity[int](2))
	require.NoError(t, s.Push(1))
	require.NoError(t, s.Push(2))

	err := s.Push(3)
	require.Error(t, err)
	assert.ErrorIs(t, err, eventstack.ErrCapacity)

	var se *eventstack.StackError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "push", se.Op)
}

func TestBulkOp_UserPanicBecomesStackError(t *testing.T) {
	s := eventstack.New[int]()
	for i := 0; i < 10_000; i++ {
		require.NoError(t, s.Push(i))
	}

	err := s.Filter(func(v int) bool {
		if v == 5_000 {
			panic("predicate blew up")
		}
		return true
	})

	require.Error(t, err)
	var se *eventstack.StackError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "filter", se.Op)
	assert.True(t, strings.Contains(err.Error(), "predicate blew up"),
		"underlying message preserved: %v", err)
}

func TestSortFunc(t *testing.T) {
	backends(t, func(t *testing.T, opts ...eventstack.Option[int]) {
		s := eventstack.New(opts...)
		for _, v := range []int{3, 1, 4, 1, 5, 9, 2, 6} {
			require.NoError(t, s.Push(v))
		}
		require.NoError(t, s.SortFunc(func(a, b int) bool { return a < b }))

		// Ascending backing order pops greatest-first.
		want := []int{9, 6, 5, 4, 3, 2, 1, 1}
		for _, w := range want {
			v, ok := s.Pop()
			require.True(t, ok)
			assert.Equal(t, w, v)
		}
	})
}
