// Package vecops provides element-wise add/multiply and dot product over
// flat numeric buffers. Small inputs run an unrolled scalar kernel; large
// inputs split into chunks processed through the parallel engine.
package vecops

import (
	"errors"

	"evstack/parallel"
)

// Number covers the built-in numeric types the kernels accept.
type Number interface {
	int | int8 | int16 | int32 | int64 |
		uint | uint8 | uint16 | uint32 | uint64 |
		float32 | float64
}

var (
	// ErrNilBuffer reports a nil input or destination buffer.
	ErrNilBuffer = errors.New("vecops: nil buffer")
	// ErrShapeMismatch reports buffers of unequal length.
	ErrShapeMismatch = errors.New("vecops: buffer lengths differ")
)

// parallelThreshold is the element count from which chunking the work
// through the parallel engine pays off.
const parallelThreshold = 4096

// Add writes a[i]+b[i] into dst for every index.
func Add[T Number](a, b, dst []T) error {
	if err := validate(a, b, dst); err != nil {
		return err
	}
	apply(a, b, dst, addKernel[T])
	return nil
}

// Mul writes a[i]*b[i] into dst for every index.
func Mul[T Number](a, b, dst []T) error {
	if err := validate(a, b, dst); err != nil {
		return err
	}
	apply(a, b, dst, mulKernel[T])
	return nil
}

// Dot returns the sum of a[i]*b[i] over every index.
func Dot[T Number](a, b []T) (T, error) {
	var zero T
	if a == nil || b == nil {
		return zero, ErrNilBuffer
	}
	if len(a) != len(b) {
		return zero, ErrShapeMismatch
	}
	if len(a) < parallelThreshold {
		return dotKernel(a, b), nil
	}

	partials := parallel.Map(spans(len(a)), func(s span) T {
		return dotKernel(a[s.lo:s.hi], b[s.lo:s.hi])
	}, 0)
	return parallel.Reduce(partials, zero, func(x, y T) T { return x + y }, 1), nil
}

func validate[T Number](a, b, dst []T) error {
	if a == nil || b == nil || dst == nil {
		return ErrNilBuffer
	}
	if len(a) != len(b) || len(a) != len(dst) {
		return ErrShapeMismatch
	}
	return nil
}

// span is one worker's slice of the index space.
type span struct{ lo, hi int }

func spans(n int) []span {
	chunks := (n + parallelThreshold - 1) / parallelThreshold
	out := make([]span, 0, chunks)
	for lo := 0; lo < n; lo += parallelThreshold {
		hi := min(lo+parallelThreshold, n)
		out = append(out, span{lo, hi})
	}
	return out
}

func apply[T Number](a, b, dst []T, kernel func(a, b, dst []T)) {
	if len(a) < parallelThreshold {
		kernel(a, b, dst)
		return
	}
	parallel.ForEach(spans(len(a)), func(s span) {
		kernel(a[s.lo:s.hi], b[s.lo:s.hi], dst[s.lo:s.hi])
	}, 0)
}

// The kernels are unrolled by four; the tail runs a plain loop.

func addKernel[T Number](a, b, dst []T) {
	n := len(a) &^ 3
	for i := 0; i < n; i += 4 {
		dst[i] = a[i] + b[i]
		dst[i+1] = a[i+1] + b[i+1]
		dst[i+2] = a[i+2] + b[i+2]
		dst[i+3] = a[i+3] + b[i+3]
	}
	for i := n; i < len(a); i++ {
		dst[i] = a[i] + b[i]
	}
}

func mulKernel[T Number](a, b, dst []T) {
	n := len(a) &^ 3
	for i := 0; i < n; i += 4 {
		dst[i] = a[i] * b[i]
		dst[i+1] = a[i+1] * b[i+1]
		dst[i+2] = a[i+2] * b[i+2]
		dst[i+3] = a[i+3] * b[i+3]
	}
	for i := n; i < len(a); i++ {
		dst[i] = a[i] * b[i]
	}
}

func dotKernel[T Number](a, b []T) T {
	var s0, s1, s2, s3 T
	n := len(a) &^ 3
	for i := 0; i < n; i += 4 {
		s0 += a[i] * b[i]
		s1 += a[i+1] * b[i+1]
		s2 += a[i+2] * b[i+2]
		s3 += a[i+3] * b[i+3]
	}
	total := s0 + s1 + s2 + s3
	for i := n; i < len(a); i++ {
		total += a[i] * b[i]
	}
	return total
}
