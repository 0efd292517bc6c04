package eventstack

import (
	"sync"
	"sync/atomic"
)

// mutexBackend stores elements in a growable slice guarded by a
// reader/writer lock: many concurrent readers or exactly one writer, and
// the lock is held for the full duration of a bulk operation. The element
// counter is kept in a separate atomic so len never takes the lock.
type mutexBackend[T any] struct {
	mu       sync.RWMutex
	items    []T
	count    atomic.Int64
	capacity int // 0 = unbounded
}

func newMutexBackend[T any](capacity int) *mutexBackend[T] {
	return &mutexBackend[T]{capacity: capacity}
}

func (m *mutexBackend[T]) push(v T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.capacity > 0 && len(m.items) >= m.capacity {
		return ErrCapacity
	}
	m.items = append(m.items, v)
	m.count.Add(1)
	return nil
}

func (m *mutexBackend[T]) pop() (T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var zero T
	if len(m.items) == 0 {
		return zero, false
	}
	last := len(m.items) - 1
	v := m.items[last]
	m.items[last] = zero // release the reference
	m.items = m.items[:last]
	m.count.Add(-1)
	return v, true
}

func (m *mutexBackend[T]) peek() (T, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.items) == 0 {
		var zero T
		return zero, false
	}
	return m.items[len(m.items)-1], true
}

func (m *mutexBackend[T]) len() int {
	return int(m.count.Load())
}

func (m *mutexBackend[T]) view(fn func(items []T)) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	fn(m.items)
}

func (m *mutexBackend[T]) update(fn func(items []T) ([]T, error)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	out, err := fn(m.items)
	if err != nil {
		return err
	}
	m.items = out
	m.count.Store(int64(len(out)))
	return nil
}

func (m *mutexBackend[T]) clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.items)
	m.items = m.items[:0]
	m.count.Store(0)
}
