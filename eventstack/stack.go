package eventstack

import (
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"evstack/parallel"
)

// EventStack is a concurrency-safe LIFO container. Single-element
// operations (Push, Pop, Peek, Size, Clear) touch only the backing store;
// bulk operations extract a flat view of the contents, hand it to the
// parallel engine and write the result back.
//
// The default backing is a slice behind a reader/writer lock, where bulk
// operations hold exclusive access for their full duration. WithLockFree
// switches to a Treiber stack whose push/pop never block; in that mode a
// mutating bulk operation is a drain/refill pair, and pushes or pops that
// land inside that window are lost. WithCompoundLock closes the window at
// the cost of blocking single-element operations while a bulk operation
// runs.
type EventStack[T any] struct {
	b   backend[T]
	cfg settings[T]

	// gate is non-nil only for lock-free + WithCompoundLock: push/pop/peek
	// share it, bulk operations hold it exclusively.
	gate *sync.RWMutex
}

// New creates an empty stack.
func New[T any](opts ...Option[T]) *EventStack[T] {
	var cfg settings[T]
	for _, o := range opts {
		o(&cfg)
	}
	return newFromSettings(cfg)
}

func newFromSettings[T any](cfg settings[T]) *EventStack[T] {
	s := &EventStack[T]{cfg: cfg}
	if cfg.lockFree {
		s.b = newLockfreeBackend[T](cfg.capacity)
		if cfg.compoundLock {
			s.gate = &sync.RWMutex{}
		}
	} else {
		s.b = newMutexBackend[T](cfg.capacity)
	}
	return s
}

func (s *EventStack[T]) shared() func() {
	if s.gate == nil {
		return func() {}
	}
	s.gate.RLock()
	return s.gate.RUnlock
}

func (s *EventStack[T]) exclusive() func() {
	if s.gate == nil {
		return func() {}
	}
	s.gate.Lock()
	return s.gate.Unlock
}

// bulk runs fn and converts both returned errors and engine panics
// (a user function failing inside a worker) into a *StackError carrying
// the operation name.
func (s *EventStack[T]) bulk(op string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = opError(op, e)
				return
			}
			err = opError(op, fmt.Errorf("panic: %v", r))
		}
	}()
	if e := fn(); e != nil {
		return opError(op, e)
	}
	return nil
}

// Push places v on top of the stack. It fails only when a capacity bound
// rejects the element.
func (s *EventStack[T]) Push(v T) error {
	defer s.shared()()
	if err := s.b.push(v); err != nil {
		return opError("push", err)
	}
	return nil
}

// Pop removes and returns the top element. The second return is false when
// the stack is empty.
func (s *EventStack[T]) Pop() (T, bool) {
	defer s.shared()()
	return s.b.pop()
}

// Peek returns a copy of the top element without removing it.
func (s *EventStack[T]) Peek() (T, bool) {
	defer s.shared()()
	return s.b.peek()
}

// IsEmpty reports whether the stack holds no elements.
func (s *EventStack[T]) IsEmpty() bool {
	return s.b.len() == 0
}

// Size returns the element count in O(1) from an atomic counter kept
// outside the backing store. For the lock-free backing the value is
// eventually consistent.
func (s *EventStack[T]) Size() int {
	return s.b.len()
}

// Clear empties the stack.
func (s *EventStack[T]) Clear() {
	defer s.exclusive()()
	s.b.clear()
}

// Copy returns an independent deep copy with the same configuration.
func (s *EventStack[T]) Copy() *EventStack[T] {
	defer s.shared()()
	dup := newFromSettings(s.cfg)
	s.b.view(func(items []T) {
		cloned := slices.Clone(items)
		_ = dup.b.update(func([]T) ([]T, error) { return cloned, nil })
	})
	return dup
}

// Filter retains only the elements satisfying pred, preserving their
// relative order. The predicate evaluation is parallelized.
func (s *EventStack[T]) Filter(pred func(T) bool) error {
	defer s.exclusive()()
	return s.bulk("filter", func() error {
		return s.b.update(func(items []T) ([]T, error) {
			return parallel.Filter(items, pred, s.cfg.threads), nil
		})
	})
}

// SortFunc sorts the stack with less; afterwards the greatest element (per
// less) is at the top.
func (s *EventStack[T]) SortFunc(less func(a, b T) bool) error {
	defer s.exclusive()()
	return s.bulk("sort", func() error {
		return s.b.update(func(items []T) ([]T, error) {
			parallel.Sort(items, less, s.cfg.threads)
			return items, nil
		})
	})
}

// Reverse reverses the order of the elements in place.
func (s *EventStack[T]) Reverse() {
	defer s.exclusive()()
	_ = s.b.update(func(items []T) ([]T, error) {
		slices.Reverse(items)
		return items, nil
	})
}

// Count returns the number of elements satisfying pred.
func (s *EventStack[T]) Count(pred func(T) bool) int {
	defer s.shared()()
	var n atomic.Int64
	s.b.view(func(items []T) {
		parallel.ForEach(items, func(v T) {
			if pred(v) {
				n.Add(1)
			}
		}, s.cfg.threads)
	})
	return int(n.Load())
}

// Find returns the first element, in backing order from the oldest, that
// satisfies pred.
func (s *EventStack[T]) Find(pred func(T) bool) (T, bool) {
	defer s.shared()()
	var found T
	ok := false
	s.b.view(func(items []T) {
		for _, v := range items {
			if pred(v) {
				found, ok = v, true
				return
			}
		}
	})
	return found, ok
}

// Any reports whether at least one element satisfies pred.
func (s *EventStack[T]) Any(pred func(T) bool) bool {
	defer s.shared()()
	var hit atomic.Bool
	s.b.view(func(items []T) {
		parallel.ForEach(items, func(v T) {
			if pred(v) {
				hit.Store(true)
			}
		}, s.cfg.threads)
	})
	return hit.Load()
}

// All reports whether every element satisfies pred. It is vacuously true
// for an empty stack.
func (s *EventStack[T]) All(pred func(T) bool) bool {
	defer s.shared()()
	var miss atomic.Bool
	s.b.view(func(items []T) {
		parallel.ForEach(items, func(v T) {
			if !pred(v) {
				miss.Store(true)
			}
		}, s.cfg.threads)
	})
	return !miss.Load()
}

// ForEach applies fn to every element. Chunks of the stack are visited
// concurrently with no cross-chunk ordering guarantee. A panic inside fn
// propagates to the caller as a *parallel.PanicError.
func (s *EventStack[T]) ForEach(fn func(T)) {
	defer s.shared()()
	s.b.view(func(items []T) {
		parallel.ForEach(items, fn, s.cfg.threads)
	})
}

// Transform replaces every element with fn's result. In lock-free mode
// without WithCompoundLock, pushes and pops concurrent with the transform
// window are lost.
func (s *EventStack[T]) Transform(fn func(T) T) error {
	defer s.exclusive()()
	return s.bulk("transform", func() error {
		return s.b.update(func(items []T) ([]T, error) {
			err := parallel.TryTransform(items, func(v T) (T, error) {
				return fn(v), nil
			}, s.cfg.threads)
			return items, err
		})
	})
}

// Serialize renders the stack, oldest element first, as delimiter-joined
// text with a trailing delimiter: "a;b;c;". It fails when no codec is
// configured or when the codec rejects an element.
func (s *EventStack[T]) Serialize() (string, error) {
	defer s.shared()()
	if s.cfg.codec == nil {
		return "", opError("serialize", ErrNoCodec)
	}
	var out string
	var encErr error
	s.b.view(func(items []T) {
		out, encErr = encodeAll(items, s.cfg.codec)
	})
	if encErr != nil {
		return "", opError("serialize", encErr)
	}
	return out, nil
}

// Deserialize replaces the stack contents with the elements parsed from
// data. Empty segments are skipped; a malformed token fails the whole
// operation and leaves the previous contents in place.
func (s *EventStack[T]) Deserialize(data string) error {
	defer s.exclusive()()
	if s.cfg.codec == nil {
		return opError("deserialize", ErrNoCodec)
	}
	return s.bulk("deserialize", func() error {
		return s.b.update(func([]T) ([]T, error) {
			return decodeAll(data, s.cfg.codec)
		})
	})
}
