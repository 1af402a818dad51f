package corefoundation

import (
	"runtime"
	"sync/atomic"
)

// RefCounted is embedded in any type that wants atomic, intrusive
// reference counting: the counter lives inside the object itself rather
// than in a separate shared_ptr-style control block, the same tradeoff
// original_source's RefCounted<T> mixin makes to avoid a second
// allocation per owned object.
//
// A zero RefCounted has a refcount of zero and must only be reached
// through [Create] or [CreateUnique], never used directly.
type RefCounted struct {
	refs atomic.Int32
}

// refCounted implements [RefCountable] by returning itself, letting any
// type that embeds RefCounted (addressed through a pointer receiver)
// satisfy the constraint without writing its own boilerplate.
func (r *RefCounted) refCounted() *RefCounted { return r }

// RefCount returns the current reference count. Primarily useful for
// tests and diagnostics; the count can change concurrently unless the
// caller holds the only remaining reference.
func (r *RefCounted) RefCount() int32 { return r.refs.Load() }

func (r *RefCounted) incRef() { r.refs.Add(1) }

// decRef decrements the count and reports whether it reached zero.
func (r *RefCounted) decRef() bool { return r.refs.Add(-1) == 0 }

// RefCountable is implemented by any type embedding [RefCounted],
// typically a pointer to a struct with a RefCounted field. It is the
// constraint [Owned] and [Unique] are built on and is not meant to be
// implemented directly.
type RefCountable interface {
	comparable
	refCounted() *RefCounted
}

// watchZeroRefcount installs a GC finalizer that, in [Debug] mode,
// reports through the package logger if obj becomes unreachable while
// its refcount is still non-zero — a leaked strong reference. This is
// the closest a garbage-collected runtime gets to the reference
// implementation's destructor-time assertion that refcount is zero: Go
// has no deterministic destructor to assert in, so the check instead
// happens whenever the GC gets around to collecting obj, which may be
// much later (or never, under a test's short lifetime) — a best-effort
// diagnostic, not a guarantee.
func watchZeroRefcount[T RefCountable](obj T) {
	if !Debug() {
		return
	}
	// SetFinalizer requires a pointer to the start of an allocation, so
	// it is registered against obj itself rather than the (possibly
	// interior) RefCounted field. The finalizer reads the count through
	// its argument: capturing obj or its field would keep obj reachable
	// and the finalizer would never run.
	runtime.SetFinalizer(obj, func(o T) {
		if o.refCounted().RefCount() != 0 {
			assertf("corefoundation: ref-counted object finalized with non-zero refcount")
		}
	})
}
