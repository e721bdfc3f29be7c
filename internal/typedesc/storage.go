package typedesc

import "unsafe"

// Storage is the erased value holder: one descriptor reference plus one word
// of payload, split into two arms because Go's precise GC must not find
// pointer bits in an untyped word. Exactly one arm is live at a time and
// only the installed descriptor knows which.
//
// The zero value is a valid empty Storage: a nil descriptor reads as the
// empty descriptor, so containers need no constructor.
type Storage[A, R any] struct {
	desc   *Descriptor[A, R]
	scalar uintptr
	ptr    unsafe.Pointer
}

// Descriptor returns the active behavior table, never nil.
func (s *Storage[A, R]) Descriptor() *Descriptor[A, R] {
	if s.desc == nil {
		return Empty[A, R]()
	}
	return s.desc
}

// IsEmpty reports whether s holds no callable.
func (s *Storage[A, R]) IsEmpty() bool {
	return s.Descriptor().IsEmpty()
}

// Init places fn into s and installs T's descriptor. The descriptor is
// installed last so s never claims a type whose payload is not in place yet.
func Init[A, R any, T Invoker[A, R]](s *Storage[A, R], fn T) {
	if !s.IsEmpty() {
		panic("typedesc: init over non-empty storage")
	}
	desc := For[A, R, T]()
	store[A, R, T](s, fn, desc.place)
	s.desc = desc
}

// As returns typed access to the payload iff s holds exactly the concrete
// type T, by descriptor identity, not by any weaker compatibility notion.
func As[A, R any, T Invoker[A, R]](s *Storage[A, R]) *T {
	desc := s.Descriptor()
	if desc != For[A, R, T]() {
		return nil
	}
	return payload[A, R, T](s, desc.place)
}

// Invoke forwards to the held callable, or fails with ErrEmptyInvocation.
func (s *Storage[A, R]) Invoke(arg A) (R, error) {
	return s.Descriptor().invokeFn(s, arg)
}

// CopyInto deep-copies s's payload into dst, which must be empty. The source
// is never mutated; dst adopts s's descriptor on success.
func (s *Storage[A, R]) CopyInto(dst *Storage[A, R]) error {
	if dst == s {
		return nil
	}
	if !dst.IsEmpty() {
		panic("typedesc: copy into non-empty storage")
	}
	return s.Descriptor().copyFn(dst, s)
}

// MoveInto transfers s's payload into dst, which must be empty. Afterwards s
// is indistinguishable from a zero-value Storage holder. Never fails.
func (s *Storage[A, R]) MoveInto(dst *Storage[A, R]) {
	if dst == s {
		return
	}
	if !dst.IsEmpty() {
		panic("typedesc: move into non-empty storage")
	}
	s.Descriptor().moveFn(dst, s)
}

// Reset destroys the payload, if any, and reverts s to the empty state.
func (s *Storage[A, R]) Reset() {
	desc := s.Descriptor()
	desc.destroyFn(s)
	s.desc = Empty[A, R]()
}

// Swap exchanges the payloads of s and other without assuming either side is
// empty: three moves through a transient empty intermediate reuse the move
// operation's empty-destination contract. Never fails.
func (s *Storage[A, R]) Swap(other *Storage[A, R]) {
	if s == other {
		return
	}
	var tmp Storage[A, R]
	s.Descriptor().moveFn(&tmp, s)
	other.Descriptor().moveFn(s, other)
	tmp.Descriptor().moveFn(other, &tmp)
}
