package corefoundation

import "sync/atomic"

// debugEnabled backs [Debug]. The reference implementation's TKIT_ASSERT
// macros compile out entirely in release builds; Go has no equivalent
// preprocessor step, so the same invariant checks are instead gated at
// runtime behind this flag, defaulting to off to keep the hot allocation
// and deque paths free of the extra branch and [Logger] call in
// production use.
var debugEnabled atomic.Bool

// Debug reports whether debug-mode invariant checking is enabled. When
// enabled, allocators and the concurrency core perform extra checks —
// foreign-pointer deallocation in the block allocator, LIFO-order
// violations, early task resets, leaked-refcount finalizer reporting —
// that are skipped or silent otherwise. See [SetDebug].
func Debug() bool {
	return debugEnabled.Load()
}

// SetDebug toggles debug-mode invariant checking process-wide. Intended
// for use in tests and development builds, mirroring the reference
// implementation's debug/release build split.
func SetDebug(enabled bool) {
	debugEnabled.Store(enabled)
}

// assertf reports a debug-mode invariant violation through the
// package-level logger at [LevelWarn], rate-limited per message so a
// tight loop tripping the same assertion does not flood a caller's log
// sink.
func assertf(msg string) {
	warnRateLimited(nil, msg, msg, nil)
}
