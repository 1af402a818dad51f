package corefoundation

import "unsafe"

// StackAllocator is a single-threaded, LIFO bump allocator over a
// contiguous buffer. Allocations bump a cursor forward; deallocation is
// only valid for the most recent still-live allocation, enforced in
// [Debug] mode by checking against an internal entry stack. It trades
// BlockAllocator's arbitrary-order free/alloc for O(1) allocation of any
// size (not just one fixed chunk size), matching original_source's
// StackAllocator.
//
// Not safe for concurrent use; a StackAllocator is meant to back a
// single worker's transient, strictly-nested allocations (e.g. a single
// frame or task's scratch memory), not to be shared across goroutines.
type StackAllocator struct {
	raw       []byte
	alignBuf  *alignedBuffer
	base      uintptr
	capacity  int
	offset    int
	alignment uintptr

	maxEntries int
	entries    []stackEntry
}

type stackEntry struct {
	offset          int // offset of the allocation within raw, after alignment padding
	size            int
	alignmentOffset int // padding bytes consumed between the prior cursor and offset
}

// NewStackAllocator constructs a StackAllocator over a newly allocated,
// owned buffer of capacity bytes.
func NewStackAllocator(capacity int, opts ...StackAllocatorOption) (*StackAllocator, error) {
	cfg := resolveStackAllocatorOptions(opts)
	if capacity <= 0 {
		return nil, &CapacityExceededError{Requested: capacity, Remaining: 0}
	}
	ptr, buf := AllocateAligned(capacity, cfg.alignment)
	if ptr == nil {
		return nil, ErrOutOfMemory
	}
	raw := unsafe.Slice((*byte)(ptr), capacity)
	return &StackAllocator{
		raw:        raw,
		alignBuf:   buf,
		base:       uintptr(ptr),
		capacity:   capacity,
		alignment:  cfg.alignment,
		maxEntries: cfg.maxEntries,
		entries:    make([]stackEntry, 0, cfg.maxEntries),
	}, nil
}

// Allocate reserves size bytes aligned to alignment, and returns a
// pointer to them, or nil if the remaining space cannot satisfy the
// request or the entry list has reached [WithMaxEntries]'s bound. A zero
// alignment falls back to the allocator's construction-time default (see
// [WithAlignment]); passing an explicit alignment per call lets a single
// allocator instance service mixed-alignment requests, matching
// original_source's `StackAllocator::Allocate(usize, usize)`.
func (s *StackAllocator) Allocate(size int, alignment uintptr) unsafe.Pointer {
	if size <= 0 {
		return nil
	}
	if alignment == 0 {
		alignment = s.alignment
	}
	if len(s.entries) >= s.maxEntries {
		return nil
	}
	start := alignUp(s.base+uintptr(s.offset), alignment) - s.base
	alignmentOffset := int(start) - s.offset
	end := int(start) + size
	if end > s.capacity {
		return nil
	}
	s.entries = append(s.entries, stackEntry{offset: int(start), size: size, alignmentOffset: alignmentOffset})
	s.offset = end
	return unsafe.Pointer(&s.raw[start])
}

// Deallocate releases ptr, which must be the most recently allocated,
// still-live block and exactly size bytes. Deallocating out of LIFO
// order is a caller bug: in [Debug] mode it is reported through the
// package logger and returns an [InvalidDeallocationError]; outside
// Debug mode the call is ignored and the allocator's cursor and tracked
// entries silently desynchronize from the buffer's true contents,
// mirroring the reference implementation's undefined behavior for the
// same misuse.
func (s *StackAllocator) Deallocate(ptr unsafe.Pointer, size int) error {
	if ptr == nil || len(s.entries) == 0 {
		return nil
	}
	top := s.entries[len(s.entries)-1]
	offset := uintptr(ptr) - s.base
	if int(offset) != top.offset || size != top.size {
		if Debug() {
			assertf("stack allocator: Deallocate called out of LIFO order")
			return &InvalidDeallocationError{Reason: "out of LIFO order"}
		}
		return nil
	}
	s.entries = s.entries[:len(s.entries)-1]
	// Restore the cursor to where it stood before this allocation's
	// alignment padding was consumed, not just before the allocation
	// itself, or repeated aligned pops would leak padding bytes as
	// unusable space.
	s.offset = top.offset - top.alignmentOffset
	return nil
}

// IsEmpty reports whether no allocations are outstanding.
func (s *StackAllocator) IsEmpty() bool { return len(s.entries) == 0 }

// IsFull reports whether no further allocation of any size could
// succeed (the cursor has reached capacity).
func (s *StackAllocator) IsFull() bool { return s.offset >= s.capacity }

// GetCapacity returns the buffer's total size in bytes.
func (s *StackAllocator) GetCapacity() int { return s.capacity }

// GetAllocatedBytes returns the number of bytes currently in use,
// including alignment padding consumed between allocations.
func (s *StackAllocator) GetAllocatedBytes() int { return s.offset }

// GetRemainingBytes returns the number of bytes available for further
// allocation.
func (s *StackAllocator) GetRemainingBytes() int { return s.capacity - s.offset }

// Belongs reports whether ptr falls within this allocator's buffer.
func (s *StackAllocator) Belongs(ptr unsafe.Pointer) bool {
	if ptr == nil || len(s.raw) == 0 {
		return false
	}
	p := uintptr(ptr)
	return p >= s.base && p < s.base+uintptr(s.capacity)
}

// CreateStackValue allocates space for, and copies in, value, aligned to
// alignment (0 selects the allocator's construction-time default), and
// returns nil if the allocator cannot satisfy the request. The generic
// stand-in for the reference implementation's `stack.Create<T>(args...)`
// — see [CreateBlockValue] for why Go expresses this as copy-in rather
// than variadic construction.
func CreateStackValue[T any](s *StackAllocator, value T, alignment uintptr) *T {
	var zero T
	ptr := s.Allocate(int(unsafe.Sizeof(zero)), alignment)
	if ptr == nil {
		return nil
	}
	typed := (*T)(ptr)
	*typed = value
	return typed
}

// DestroyStackValue runs ptr's [Destructor] (if any), then deallocates
// it. ptr must be the most recently created, still-live value from s.
func DestroyStackValue[T any](s *StackAllocator, ptr *T) {
	if ptr == nil {
		return
	}
	var zero T
	size := int(unsafe.Sizeof(zero))
	DestructAt(ptr)
	s.Deallocate(unsafe.Pointer(ptr), size)
}

// CreateStackArray allocates space for count contiguous values of T,
// aligned to alignment (0 selects the allocator's construction-time
// default), copies fn(i) into each slot in order, and returns a slice
// viewing allocator-owned memory, or nil if the allocator cannot satisfy
// the request. The generic equivalent of the reference implementation's
// `stack.NCreate<T>(count, args...)`.
func CreateStackArray[T any](s *StackAllocator, count int, alignment uintptr, fn func(i int) T) []T {
	if count <= 0 {
		return nil
	}
	var zero T
	elemSize := int(unsafe.Sizeof(zero))
	ptr := s.Allocate(elemSize*count, alignment)
	if ptr == nil {
		return nil
	}
	arr := unsafe.Slice((*T)(ptr), count)
	for i := range arr {
		arr[i] = fn(i)
	}
	return arr
}

// DestroyStackArray runs [DestructAt] over arr in reverse order, then
// deallocates its backing block. arr must be the most recently created,
// still-live array from s.
func DestroyStackArray[T any](s *StackAllocator, arr []T) {
	if len(arr) == 0 {
		return
	}
	for i := len(arr) - 1; i >= 0; i-- {
		DestructAt(&arr[i])
	}
	var zero T
	elemSize := int(unsafe.Sizeof(zero))
	s.Deallocate(unsafe.Pointer(&arr[0]), elemSize*len(arr))
}
