package corefoundation

import (
	"errors"
	"fmt"
)

// Sentinel errors for the error kinds of the failure taxonomy: allocator
// exhaustion, capacity overflow, out-of-order or unknown-pointer
// deallocation, task misuse, and submission after shutdown. Use
// [errors.Is] to match against these regardless of the wrapping value
// returned by a particular call.
var (
	// ErrOutOfMemory is returned when an allocator cannot satisfy a
	// request because its backing buffer could not be obtained.
	ErrOutOfMemory = errors.New("corefoundation: out of memory")

	// ErrCapacityExceeded is returned when a fixed-capacity structure
	// (stack allocator entries, deque) cannot accept another element.
	ErrCapacityExceeded = errors.New("corefoundation: capacity exceeded")

	// ErrInvalidDeallocation is returned when a pointer passed to
	// Deallocate does not satisfy the allocator's ownership or ordering
	// contract.
	ErrInvalidDeallocation = errors.New("corefoundation: invalid deallocation")

	// ErrTaskMisuse is returned when a task is invoked or reset outside
	// of its single-shot completion contract.
	ErrTaskMisuse = errors.New("corefoundation: task misuse")

	// ErrShutdown is returned when a task is submitted to a thread pool
	// that has begun shutting down.
	ErrShutdown = errors.New("corefoundation: pool is shutting down")
)

// CapacityExceededError wraps [ErrCapacityExceeded] with the requested
// and remaining byte counts, so a caller can log or recover with context
// without string-parsing the message.
type CapacityExceededError struct {
	// Requested is the number of bytes (or elements) the caller asked
	// for.
	Requested int
	// Remaining is the number of bytes (or elements) actually available
	// at the time of the request.
	Remaining int
}

// Error implements the error interface.
func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("corefoundation: capacity exceeded: requested %d, %d remaining", e.Requested, e.Remaining)
}

// Unwrap enables errors.Is(err, ErrCapacityExceeded).
func (e *CapacityExceededError) Unwrap() error {
	return ErrCapacityExceeded
}

// InvalidDeallocationError wraps [ErrInvalidDeallocation] with a reason
// describing which of the allocator's ownership or ordering checks
// failed.
type InvalidDeallocationError struct {
	// Reason is a short, human-readable description of which invariant
	// was violated (e.g. "out of LIFO order", "pointer does not belong
	// to this allocator").
	Reason string
}

// Error implements the error interface.
func (e *InvalidDeallocationError) Error() string {
	if e.Reason == "" {
		return "corefoundation: invalid deallocation"
	}
	return "corefoundation: invalid deallocation: " + e.Reason
}

// Unwrap enables errors.Is(err, ErrInvalidDeallocation).
func (e *InvalidDeallocationError) Unwrap() error {
	return ErrInvalidDeallocation
}

// WrapError wraps an error with a message and preserves the cause chain,
// so the result satisfies errors.Is(result, cause).
func WrapError(message string, cause error) error {
	return fmt.Errorf("%s: %w", message, cause)
}
