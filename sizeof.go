package corefoundation

import "unsafe"

// These constants are verified via TestSizeOf / TestCacheLineSize.
const (
	// cacheLineSize is the largest cache-line size across the target
	// platforms. 128 covers both common x86-64 (64) and Apple Silicon
	// (128) prefetch strides. It is checked against the build platform
	// by TestCacheLineSize; [Deque]'s padding fields are sized for
	// 64-byte lines and do not use it.
	cacheLineSize = 128

	// pointerSize is the size, in bytes, of a pointer-width value on the
	// build platform. It is the minimum alignment for an aligned
	// allocation and the minimum chunk size of a [BlockAllocator], per
	// the free list's next-pointer threading.
	pointerSize = unsafe.Sizeof(uintptr(0))
)
