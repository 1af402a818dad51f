package corefoundation

import "unsafe"

// Allocate returns size bytes of default-alignment, zeroed memory, or nil
// if size is zero or the allocation fails. The backing storage is a
// Go-owned byte slice kept alive by the returned pointer's identity
// bookkeeping in callers that need it (e.g. [BlockAllocator],
// [StackAllocator]); there is no separate "free" step required for GC
// reclamation, but [Deallocate] is still provided so allocator code that
// mirrors a manual-memory original need not special-case Go.
func Allocate(size int) unsafe.Pointer {
	if size <= 0 {
		return nil
	}
	buf := make([]byte, size)
	return unsafe.Pointer(&buf[0])
}

// Deallocate is a no-op placeholder for default-alignment memory
// obtained from [Allocate]; release of the underlying Go allocation is
// the garbage collector's responsibility once the last pointer derived
// from it is dropped. Deallocating nil is a no-op.
func Deallocate(unsafe.Pointer) {}

// alignUp rounds v up to the next multiple of alignment, which must be a
// power of two.
func alignUp(v, alignment uintptr) uintptr {
	return (v + alignment - 1) &^ (alignment - 1)
}

// isPowerOfTwo reports whether v is a power of two.
func isPowerOfTwo(v uintptr) bool {
	return v != 0 && v&(v-1) == 0
}

// alignedBuffer is the backing allocation for an aligned pointer: a
// slightly oversized Go byte slice, within which the returned pointer
// sits at the caller's alignment. Keeping the
// slice header alongside the pointer is what keeps the allocation
// reachable (and thus not collected) for as long as the aligned pointer
// derived from it is in use, the same role a `dalloc` bookkeeping entry
// plays in arrow's checked_allocator.
type alignedBuffer struct {
	raw []byte
}

// AllocateAligned returns size bytes aligned to alignment, which is
// raised to at least pointer size and must be a power of two. Returns
// nil on invalid alignment or allocation failure.
//
// The technique — over-allocate by alignment-1 bytes and slide the
// returned pointer up to the boundary — is the portable equivalent of
// posix_memalign/_aligned_malloc used by the reference implementation;
// see also cznic/memory's roundup-based page allocator and arrow's
// allocator family for the same idiom applied to Go byte slices.
func AllocateAligned(size int, alignment uintptr) (unsafe.Pointer, *alignedBuffer) {
	if alignment < pointerSize {
		alignment = pointerSize
	}
	if !isPowerOfTwo(alignment) || size < 0 {
		return nil, nil
	}
	if size == 0 {
		return nil, nil
	}
	raw := make([]byte, size+int(alignment)-1)
	base := uintptr(unsafe.Pointer(&raw[0]))
	aligned := alignUp(base, alignment)
	offset := aligned - base
	return unsafe.Pointer(&raw[offset]), &alignedBuffer{raw: raw}
}

// DeallocateAligned releases the backing allocation of a pointer obtained
// from [AllocateAligned]. Deallocating a nil buf is a no-op.
func DeallocateAligned(buf *alignedBuffer) {
	if buf == nil {
		return
	}
	buf.raw = nil
}

// ForwardCopy copies n bytes from src to dst starting at the lowest
// address, safe when dst does not start after src within an overlapping
// range (dst <= src or the ranges don't overlap).
func ForwardCopy(dst, src unsafe.Pointer, n uintptr) {
	d := unsafe.Slice((*byte)(dst), n)
	s := unsafe.Slice((*byte)(src), n)
	for i := uintptr(0); i < n; i++ {
		d[i] = s[i]
	}
}

// BackwardCopy copies n bytes from src to dst starting at the highest
// address, safe when dst starts after src within an overlapping range.
func BackwardCopy(dst, src unsafe.Pointer, n uintptr) {
	d := unsafe.Slice((*byte)(dst), n)
	s := unsafe.Slice((*byte)(src), n)
	for i := n; i > 0; i-- {
		d[i-1] = s[i-1]
	}
}

// Destructor is implemented by types that own resources a typed range
// operation must release before the memory backing them is reused or
// freed. A nil Destructor is valid for POD-shaped T and is treated as a
// no-op by [DestructRange].
type Destructor interface {
	// Release runs the type's cleanup logic. It must be safe to call
	// exactly once per constructed value.
	Release()
}

// ConstructAt writes value (typically a composite literal or a factory's
// result) into the zero-valued slot at ptr, the generic equivalent of
// C++ placement-new.
func ConstructAt[T any](ptr *T, value T) {
	*ptr = value
}

// DestructAt calls Release on ptr if T implements [Destructor], then
// zeroes the slot. Safe to call on a zero-valued (never-constructed) ptr.
func DestructAt[T any](ptr *T) {
	if d, ok := any(ptr).(Destructor); ok {
		d.Release()
	}
	var zero T
	*ptr = zero
}

// CopyConstructRange copies each element of src into the corresponding,
// previously uninitialized slot of dst. len(dst) must be >= len(src).
func CopyConstructRange[T any](dst, src []T) {
	copy(dst, src)
}

// MoveConstructRange moves each element of src into the corresponding
// slot of dst, zeroing src as it goes (the Go analogue of a C++
// move-constructed range, where the moved-from slots are left in a
// valid-but-unspecified — here, zero — state).
func MoveConstructRange[T any](dst, src []T) {
	var zero T
	n := copy(dst, src)
	for i := 0; i < n; i++ {
		src[i] = zero
	}
}

// DestructRange calls [DestructAt] on every element of s.
func DestructRange[T any](s []T) {
	for i := range s {
		DestructAt(&s[i])
	}
}
