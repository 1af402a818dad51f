// Package corefoundation is a systems foundation library: custom
// allocators, intrusive reference counting, and a small concurrency core
// (a Chase-Lev work-stealing deque, a single-shot task handle, and a
// fixed-size thread pool), the pieces a native, latency-sensitive
// application otherwise reimplements by hand.
//
// # Architecture
//
// Three subsystems are tightly coupled:
//
//   - [BlockAllocator] / [StackAllocator] / [AllocateAligned] — fixed
//     capacity allocators over a caller- or self-owned byte buffer.
//   - [RefCounted] / [Owned] / [Unique] — an intrusive atomic reference
//     counter and the owning/unique handles built on top of it, decoupled
//     from any particular allocator.
//   - [Task] / [ValueTask] / [Deque] / [ThreadPool] — a single-shot task
//     abstraction, a bounded SPMC work-stealing deque, and a fixed
//     worker-set thread pool that schedules ref-counted task handles.
//
// The thread pool dispatches tasks that are themselves reference counted
// and are frequently allocated from a [BlockAllocator]; the deque stores
// owning task handles. None of the three subsystems requires the others:
// a caller may use the allocators standalone, or the refcounted handles
// over the Go heap, or the pool with heap-allocated tasks.
//
// # Thread safety
//
// [BlockAllocator] has a thread-safe and a non-atomic variant, chosen at
// construction via [WithThreadSafe]. [StackAllocator] is always exclusive
// to a single goroutine. [RefCounted]'s counter, [Deque], and [ThreadPool]
// are safe for concurrent use per the contracts documented on each type.
//
// # Non-goals
//
// This package does not implement general-purpose garbage collection, a
// fully lock-free task queue (submission uses a mutex; stealing via
// [Deque] is lock-free), dynamic resizing of pools or allocators,
// cross-process shared memory, task dependency graphs, cancellation
// tokens, priorities, or cooperative scheduling.
package corefoundation
