package eventstack

// backend is the storage strategy behind an EventStack. Two implementors
// exist: mutexBackend (growable slice behind a reader/writer lock) and
// lockfreeBackend (Treiber stack with CAS push/pop).
//
// Bulk operations go through view and update, which exchange contents as
// plain slices in oldest-to-top order so the parallel engine can work on
// a flat sequence.
type backend[T any] interface {
	// push appends v at the top. It fails only when a capacity bound
	// rejects the element.
	push(v T) error

	// pop removes and returns the top element.
	pop() (T, bool)

	// peek returns a copy of the top element without removing it.
	peek() (T, bool)

	// len returns the element count. For the lock-free backing the count
	// is eventually consistent: it is maintained by a separate atomic
	// updated after each structural change, so a reader may briefly
	// observe a stale value.
	len() int

	// view runs fn over the current contents under shared (read) access.
	// fn must not mutate or retain the slice. Concurrent views may run in
	// parallel with each other but not with an update in mutex mode.
	view(fn func(items []T))

	// update runs fn over the current contents under exclusive access and
	// installs the returned slice as the new contents. fn may mutate the
	// slice it is given. In mutex mode nothing changes when fn errors; in
	// lock-free mode update is a snapshot/replace pair and is not atomic
	// with respect to concurrent push/pop (see lockfreeBackend).
	update(fn func(items []T) ([]T, error)) error

	// clear removes all elements.
	clear()
}
