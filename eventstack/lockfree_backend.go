package eventstack

import "sync/atomic"

// lockfreeBackend is a Treiber stack. push and pop are individually atomic
// CAS retry loops and never block. The element counter is a separate
// atomic updated after each successful CAS, so len is eventually
// consistent rather than instantaneously exact.
//
// A node's next pointer is fixed before the node is published and never
// rewritten, so walking the chain from a loaded head observes an immutable
// snapshot of the stack as of that load; view is therefore safe without
// locking. update, in contrast, swaps the whole chain: pushes and pops
// that land between its snapshot and its store are lost. EventStack
// documents this window and offers WithCompoundLock to close it.
type lockfreeBackend[T any] struct {
	head     atomic.Pointer[node[T]]
	count    atomic.Int64
	capacity int64 // 0 = unbounded
}

type node[T any] struct {
	value T
	next  *node[T]
}

func newLockfreeBackend[T any](capacity int) *lockfreeBackend[T] {
	return &lockfreeBackend[T]{capacity: int64(capacity)}
}

func (l *lockfreeBackend[T]) push(v T) error {
	// Best-effort bound: the counter trails the structure, so the check
	// is approximate in the same way len is.
	if l.capacity > 0 && l.count.Load() >= l.capacity {
		return ErrCapacity
	}
	n := &node[T]{value: v}
	for {
		old := l.head.Load()
		n.next = old
		if l.head.CompareAndSwap(old, n) {
			break
		}
	}
	l.count.Add(1)
	return nil
}

func (l *lockfreeBackend[T]) pop() (T, bool) {
	for {
		old := l.head.Load()
		if old == nil {
			var zero T
			return zero, false
		}
		if l.head.CompareAndSwap(old, old.next) {
			l.count.Add(-1)
			return old.value, true
		}
	}
}

func (l *lockfreeBackend[T]) peek() (T, bool) {
	// Nodes are immutable once published, so reading through the head
	// pointer is a safe non-destructive peek.
	old := l.head.Load()
	if old == nil {
		var zero T
		return zero, false
	}
	return old.value, true
}

func (l *lockfreeBackend[T]) len() int {
	return int(l.count.Load())
}

// drain copies the chain reachable from the current head into a slice in
// oldest-to-top order. The chain itself is left in place.
func (l *lockfreeBackend[T]) drain() []T {
	head := l.head.Load()
	n := 0
	for cur := head; cur != nil; cur = cur.next {
		n++
	}
	// Walk top-to-bottom, fill back-to-front.
	items := make([]T, n)
	i := n - 1
	for cur := head; cur != nil; cur = cur.next {
		items[i] = cur.value
		i--
	}
	return items
}

// refill rebuilds the chain from items (oldest first) and installs it,
// discarding whatever the head points at by then.
func (l *lockfreeBackend[T]) refill(items []T) {
	var head *node[T]
	for _, v := range items {
		head = &node[T]{value: v, next: head}
	}
	l.head.Store(head)
	l.count.Store(int64(len(items)))
}

func (l *lockfreeBackend[T]) view(fn func(items []T)) {
	fn(l.drain())
}

func (l *lockfreeBackend[T]) update(fn func(items []T) ([]T, error)) error {
	items := l.drain()
	out, err := fn(items)
	if err != nil {
		return err
	}
	l.refill(out)
	return nil
}

func (l *lockfreeBackend[T]) clear() {
	l.head.Store(nil)
	l.count.Store(0)
}
