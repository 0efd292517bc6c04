package eventstack

import (
	"errors"
	"fmt"
)

var (
	// ErrCapacity is returned (wrapped in a *StackError) by Push when a
	// bounded stack is full.
	ErrCapacity = errors.New("capacity exceeded")

	// ErrNoCodec is returned (wrapped in a *StackError) by Serialize and
	// Deserialize when the stack was built without WithCodec.
	ErrNoCodec = errors.New("no codec configured")
)

// StackError wraps any failure from a stack operation, including failures
// surfaced from the parallel engine during a bulk operation. Op names the
// operation that failed; the underlying cause is available via Unwrap.
type StackError struct {
	Op  string
	Err error
}

func (e *StackError) Error() string {
	return fmt.Sprintf("eventstack: %s: %v", e.Op, e.Err)
}

func (e *StackError) Unwrap() error { return e.Err }

// SerializationError reports a malformed token during Deserialize or a
// failure while rendering an element during Serialize.
type SerializationError struct {
	Token string
	Err   error
}

func (e *SerializationError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("serialization: token %q: %v", e.Token, e.Err)
	}
	return fmt.Sprintf("serialization: %v", e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }

// IsSerializationError reports whether err is, or wraps, a
// *SerializationError.
func IsSerializationError(err error) bool {
	var se *SerializationError
	return errors.As(err, &se)
}

func opError(op string, err error) *StackError {
	return &StackError{Op: op, Err: err}
}
