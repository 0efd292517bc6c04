package eventstack_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evstack/eventstack"
)

func TestSort_Ordered(t *testing.T) {
	backends(t, func(t *testing.T, opts ...eventstack.Option[int]) {
		s := eventstack.New(opts...)
		for _, v := range []int{5, 1, 4, 2, 3} {
			require.NoError(t, s.Push(v))
		}
		require.NoError(t, eventstack.Sort(s))

		for want := 5; want >= 1; want-- {
			v, ok := s.Pop()
			require.True(t, ok)
			assert.Equal(t, want, v)
		}
	})
}

func TestRemoveDuplicates(t *testing.T) {
	backends(t, func(t *testing.T, opts ...eventstack.Option[int]) {
		s := eventstack.New(opts...)
		for _, v := range []int{3, 1, 3, 2, 1, 1, 2} {
			require.NoError(t, s.Push(v))
		}
		require.NoError(t, eventstack.RemoveDuplicates(s))

		// Deduplication sorts as a side effect, so the pop order is
		// descending and unique.
		assert.Equal(t, 3, s.Size())
		for want := 3; want >= 1; want-- {
			v, ok := s.Pop()
			require.True(t, ok)
			assert.Equal(t, want, v)
		}
	})
}

func TestRemoveDuplicates_LargeInput(t *testing.T) {
	s := eventstack.New[int]()
	for i := 0; i < 30_000; i++ {
		require.NoError(t, s.Push(i%100))
	}
	require.NoError(t, eventstack.RemoveDuplicates(s))
	assert.Equal(t, 100, s.Size())
}
