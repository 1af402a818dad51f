package corefoundation

import "sync/atomic"

// Deque is a fixed-capacity, single-producer/multiple-consumer
// work-stealing double-ended queue: the Go port of original_source's
// ChaseLevDeque. Its owner (the producer) is the only goroutine allowed
// to call [Deque.PushBack] or [Deque.PopBack]; any number of other
// goroutines (thieves) may call [Deque.PopFront] concurrently with the
// owner and each other.
//
// front and back are cache-line padded the same way eventloop's
// FastState pads its state word, so a stealing goroutine hammering
// front does not bounce the owner's back cache line back and forth
// between cores.
type Deque[T any] struct { // betteralign:ignore
	_     [64]byte
	front atomic.Uint64
	_     [56]byte
	back  atomic.Uint64
	_     [56]byte
	mask  uint64
	data  []T
}

// NewDeque constructs a Deque with room for capacity elements, which
// must be a power of two (the ring-index mask trick requires it, the
// same constraint original_source enforces with a static_assert).
func NewDeque[T any](capacity int) (*Deque[T], error) {
	if capacity <= 0 || !isPowerOfTwo(uintptr(capacity)) {
		return nil, WrapError("deque capacity must be a power of two", ErrCapacityExceeded)
	}
	return &Deque[T]{
		mask: uint64(capacity - 1),
		data: make([]T, capacity),
	}, nil
}

// Cap returns the deque's fixed capacity.
func (d *Deque[T]) Cap() int { return len(d.data) }

// PushBack appends value to the back of the queue. Only the owning
// goroutine may call this; concurrent calls from multiple goroutines, or
// calls overlapping [Deque.PopBack], are undefined behavior by contract
// (not detected at runtime), matching the reference implementation.
func (d *Deque[T]) PushBack(value T) error {
	back := d.back.Load()
	front := d.front.Load()
	if back-front >= uint64(len(d.data)) {
		return &CapacityExceededError{Requested: 1, Remaining: 0}
	}
	d.data[back&d.mask] = value
	d.back.Store(back + 1)
	return nil
}

// PopBack removes and returns the element at the back of the queue. Only
// the owning goroutine may call this. ok is false if the queue was empty
// or the owner lost a race against a concurrent [Deque.PopFront] for the
// single remaining element.
func (d *Deque[T]) PopBack() (value T, ok bool) {
	newBack := d.back.Add(^uint64(0)) // back - 1
	front := d.front.Load()

	// Compare as signed: on an empty deque back-1 wraps below zero.
	if int64(newBack) < int64(front) {
		d.back.Store(front)
		return value, false
	}

	if int64(newBack) > int64(front) {
		return d.data[newBack&d.mask], true
	}

	// Exactly one element remains; race a concurrent stealer for it.
	if !d.front.CompareAndSwap(front, front+1) {
		d.back.Store(front + 1)
		return value, false
	}
	value = d.data[newBack&d.mask]
	d.back.Store(front + 1)
	return value, true
}

// PopFront removes and returns the element at the front of the queue.
// Safe to call from any number of goroutines concurrently, including the
// owner. ok is false if the queue appeared empty or this goroutine lost
// a race against another thief (or the owner's [Deque.PopBack]).
func (d *Deque[T]) PopFront() (value T, ok bool) {
	front := d.front.Load()
	back := d.back.Load()
	if int64(back) <= int64(front) {
		return value, false
	}

	value = d.data[front&d.mask]
	if !d.front.CompareAndSwap(front, front+1) {
		var zero T
		return zero, false
	}
	return value, true
}
