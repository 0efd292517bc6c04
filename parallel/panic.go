package parallel

import (
	"fmt"
	"runtime"
	"sync/atomic"
)

// PanicError wraps a panic recovered on a worker goroutine together with
// the goroutine stack trace captured at the point of the panic. It is
// re-raised via panic on the calling goroutine once all workers have
// joined.
type PanicError struct {
	// Value is the original value passed to panic().
	Value any

	// Stack is the worker goroutine stack trace at the point of panic.
	Stack string
}

// Error returns the panic value and the full stack trace.
func (e *PanicError) Error() string {
	return fmt.Sprintf("parallel: worker panic: %v\n\n%s", e.Value, e.Stack)
}

func newPanicError(v any) *PanicError {
	// 8 KiB covers most stack traces; runtime.Stack truncates if not.
	buf := make([]byte, 8192)
	n := runtime.Stack(buf, false)
	return &PanicError{
		Value: v,
		Stack: string(buf[:n]),
	}
}

// panicValue records the first panic among a batch of workers. The winner
// of the CAS stores the value; the caller reads it after WaitGroup.Wait,
// which orders the store before the read.
type panicValue struct {
	seen atomic.Bool
	err  *PanicError
}

// capture is used as a deferred call inside every worker.
func (p *panicValue) capture() {
	if r := recover(); r != nil {
		if p.seen.CompareAndSwap(false, true) {
			p.err = newPanicError(r)
		}
	}
}

// repanic re-raises the captured panic, if any, on the calling goroutine.
func (p *panicValue) repanic() {
	if p.seen.Load() && p.err != nil {
		panic(p.err)
	}
}
