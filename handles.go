package corefoundation

// Owned is a shared, reference-counted handle to a [RefCountable] value
// — the Go analogue of original_source's Ref<T>. Cloning an Owned
// increments the underlying refcount; [Owned.Release] decrements it and,
// on the last reference, runs the value's [Destructor] (if implemented).
//
// Owned must only be constructed via [Create] or [Owned.Clone] — never
// by wrapping a struct literal directly — which is what closes off the
// "stack-constructed, then handed to a counted handle" hazard the
// reference implementation's TKIT_ASSERT(refcount==0) destructor check
// exists to catch. The zero Owned is a valid, empty handle: [Owned.IsValid]
// reports false and every other method is then a no-op.
type Owned[T RefCountable] struct {
	ptr T
}

// Create constructs a new Owned handle wrapping value, initializing its
// refcount to one. value's embedded [RefCounted] field must be its zero
// value — a freshly built object never previously wrapped by a handle;
// wrapping an already-shared value double-counts it.
func Create[T RefCountable](value T) Owned[T] {
	value.refCounted().incRef()
	watchZeroRefcount(value)
	return Owned[T]{ptr: value}
}

// IsValid reports whether o holds a value, as opposed to being the zero
// Owned.
func (o Owned[T]) IsValid() bool {
	var zero T
	return o.ptr != zero
}

// Get returns the held value, or the zero value of T if o is empty.
func (o Owned[T]) Get() T { return o.ptr }

// Clone returns a new Owned handle to the same value, incrementing its
// refcount — the equivalent of the reference implementation's Ref copy
// constructor.
func (o Owned[T]) Clone() Owned[T] {
	if o.IsValid() {
		o.ptr.refCounted().incRef()
	}
	return o
}

// Release decrements the underlying refcount and, if it reaches zero,
// runs the value's [Destructor] (if T implements it). After Release, o
// must not be used again: Go cannot enforce single ownership at scope
// exit the way a C++ destructor does, so treat the call as consuming o.
func (o Owned[T]) Release() {
	if !o.IsValid() {
		return
	}
	if o.ptr.refCounted().decRef() {
		if d, ok := any(o.ptr).(Destructor); ok {
			d.Release()
		}
	}
}

// RefCount returns the current refcount of the held value, or zero for
// an empty handle.
func (o Owned[T]) RefCount() int32 {
	if !o.IsValid() {
		return 0
	}
	return o.ptr.refCounted().RefCount()
}

// Unique is a move-only handle to a [RefCountable] value — the Go
// analogue of original_source's Scope<T>. Unlike [Owned], a Unique's
// refcount never exceeds one while it holds sole ownership;
// [Unique.AsOwned] converts it to a shared handle by handing that single
// reference over, without incrementing.
//
// Go has no compiler-enforced move semantics: copying a Unique struct by
// value produces two handles to the same object, a caller bug exactly as
// copying a Scope would be in the reference implementation. Use
// [Unique.Take] or [Unique.AsOwned] to transfer ownership explicitly,
// which leaves the source empty.
type Unique[T RefCountable] struct {
	ptr T
}

// CreateUnique constructs a new Unique handle wrapping value,
// initializing its refcount to one. As with [Create], value must not
// already be shared by another handle.
func CreateUnique[T RefCountable](value T) Unique[T] {
	value.refCounted().incRef()
	watchZeroRefcount(value)
	return Unique[T]{ptr: value}
}

// IsValid reports whether u holds a value.
func (u *Unique[T]) IsValid() bool {
	var zero T
	return u.ptr != zero
}

// Get returns the held value without transferring ownership.
func (u *Unique[T]) Get() T { return u.ptr }

// Take transfers ownership out of u, leaving u empty — the Go analogue
// of original_source's Scope::Release. The name favors Go's
// hand-off-then-empty idiom over reusing "Release", which here still
// means "run the destructor".
func (u *Unique[T]) Take() T {
	ptr := u.ptr
	var zero T
	u.ptr = zero
	return ptr
}

// AsOwned converts u into a shared [Owned] handle, handing off the
// reference u already held rather than creating a new one, then leaves u
// empty.
func (u *Unique[T]) AsOwned() Owned[T] {
	ptr := u.Take()
	var zero T
	if ptr == zero {
		return Owned[T]{}
	}
	return Owned[T]{ptr: ptr}
}

// Release runs the held value's [Destructor] (if any) and leaves u
// empty. A no-op on an already-empty Unique.
func (u *Unique[T]) Release() {
	ptr := u.Take()
	var zero T
	if ptr == zero {
		return
	}
	if ptr.refCounted().decRef() {
		if d, ok := any(ptr).(Destructor); ok {
			d.Release()
		}
	}
}
