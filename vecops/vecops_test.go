package vecops_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evstack/vecops"
)

func TestAdd(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{"empty", 0},
		{"tail only", 3},
		{"unrolled plus tail", 1_001},
		{"parallel path", 20_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := make([]int, tt.size)
			b := make([]int, tt.size)
			dst := make([]int, tt.size)
			for i := range a {
				a[i] = i
				b[i] = 2 * i
			}

			require.NoError(t, vecops.Add(a, b, dst))
			for i := range dst {
				require.Equal(t, 3*i, dst[i], "index %d", i)
			}
		})
	}
}

func TestMul(t *testing.T) {
	a := make([]float64, 10_000)
	b := make([]float64, 10_000)
	dst := make([]float64, 10_000)
	for i := range a {
		a[i] = float64(i)
		b[i] = 0.5
	}

	require.NoError(t, vecops.Mul(a, b, dst))
	for i := range dst {
		require.Equal(t, float64(i)/2, dst[i])
	}
}

func TestDot(t *testing.T) {
	t.Run("small", func(t *testing.T) {
		got, err := vecops.Dot([]int{1, 2, 3}, []int{4, 5, 6})
		require.NoError(t, err)
		assert.Equal(t, 32, got)
	})

	t.Run("large chunked", func(t *testing.T) {
		n := 50_000
		a := make([]int64, n)
		b := make([]int64, n)
		var want int64
		for i := range a {
			a[i] = int64(i)
			b[i] = 2
			want += int64(i) * 2
		}

		got, err := vecops.Dot(a, b)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
}

func TestValidation(t *testing.T) {
	a := []int{1, 2, 3}
	short := []int{1}

	assert.ErrorIs(t, vecops.Add(nil, a, a), vecops.ErrNilBuffer)
	assert.ErrorIs(t, vecops.Add(a, nil, a), vecops.ErrNilBuffer)
	assert.ErrorIs(t, vecops.Add(a, a, nil), vecops.ErrNilBuffer)
	assert.ErrorIs(t, vecops.Add(a, short, a), vecops.ErrShapeMismatch)
	assert.ErrorIs(t, vecops.Mul(a, a, short), vecops.ErrShapeMismatch)

	_, err := vecops.Dot(a, short)
	assert.ErrorIs(t, err, vecops.ErrShapeMismatch)
	_, err = vecops.Dot(nil, a)
	assert.ErrorIs(t, err, vecops.ErrNilBuffer)
}
