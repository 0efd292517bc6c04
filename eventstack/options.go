package eventstack

type settings[T any] struct {
	lockFree     bool
	threads      int
	capacity     int
	compoundLock bool
	codec        Codec[T]
}

// Option configures an EventStack at construction time.
type Option[T any] func(*settings[T])

// WithLockFree selects the Treiber-stack backing instead of the default
// mutex-guarded slice. Push and pop become non-blocking CAS loops; Size
// becomes eventually consistent; bulk operations lose atomicity with
// respect to concurrent push/pop unless WithCompoundLock is also set.
func WithLockFree[T any]() Option[T] {
	return func(s *settings[T]) {
		s.lockFree = true
	}
}

// WithThreads sets the thread-count hint handed to the parallel engine by
// every bulk operation. 0 (the default) resolves to the hardware
// concurrency at call time.
func WithThreads[T any](n int) Option[T] {
	return func(s *settings[T]) {
		if n < 0 {
			n = 0
		}
		s.threads = n
	}
}

// WithCapacity bounds the stack at n elements; Push fails with ErrCapacity
// once full. For the lock-free backing the bound is best-effort because
// the element counter is eventually consistent. 0 means unbounded.
func WithCapacity[T any](n int) Option[T] {
	return func(s *settings[T]) {
		if n < 0 {
			n = 0
		}
		s.capacity = n
	}
}

// WithCompoundLock adds a reader/writer gate around the lock-free backing:
// push, pop and peek share it while bulk operations hold it exclusively,
// making bulk operations atomic with respect to concurrent single-element
// operations at the cost of blocking them for the duration. The option has
// no effect on the mutex backing, whose bulk operations are already
// exclusive.
func WithCompoundLock[T any]() Option[T] {
	return func(s *settings[T]) {
		s.compoundLock = true
	}
}

// WithCodec attaches the codec used by Serialize and Deserialize.
func WithCodec[T any](c Codec[T]) Option[T] {
	return func(s *settings[T]) {
		s.codec = c
	}
}
