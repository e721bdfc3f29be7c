package typedesc

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"unsafe"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrEmptyInvocation is returned when an empty container is invoked.
// It is the only user-facing error the container itself produces.
var ErrEmptyInvocation = errors.New("invocation of empty function container")

// Invoker is what a Storage holds: any concrete type with the fixed call
// signature.
type Invoker[A, R any] interface {
	Invoke(A) R
}

// Cloner is an optional deep-copy hook. A held callable implementing it is
// copied through CloneCallable instead of plain value assignment; the
// returned value must have the same concrete type. Errors propagate
// unmodified out of the container's copy operations.
type Cloner interface {
	CloneCallable() (any, error)
}

// Descriptor is the per-concrete-type behavior table: four operations over
// Storage plus the placement they all agree on. Descriptors are immutable
// once materialized and live for the rest of the process.
type Descriptor[A, R any] struct {
	id       string
	concrete reflect.Type // nil for the empty descriptor
	place    Placement

	copyFn    func(dst, src *Storage[A, R]) error
	moveFn    func(dst, src *Storage[A, R])
	invokeFn  func(s *Storage[A, R], arg A) (R, error)
	destroyFn func(s *Storage[A, R])
}

// ID is a diagnostic identifier, unique per materialized descriptor.
func (d *Descriptor[A, R]) ID() string { return d.id }

// Concrete is the held callable's type; nil for the empty descriptor.
func (d *Descriptor[A, R]) Concrete() reflect.Type { return d.concrete }

// Placement is the storage strategy every operation of this descriptor uses.
func (d *Descriptor[A, R]) Placement() Placement { return d.place }

// IsEmpty reports whether d is the empty descriptor of its signature.
func (d *Descriptor[A, R]) IsEmpty() bool { return d.concrete == nil }

// --- registry ---

type registryKey struct {
	signature reflect.Type
	concrete  reflect.Type // nil keys the per-signature empty descriptor
}

// registry maps (signature, concrete type) to its one *Descriptor[A, R].
// LoadOrStore keeps first-use materialization race-free: losers drop their
// candidate and adopt the winner, so pointer identity is stable process-wide.
var registry sync.Map

// For returns the process-wide descriptor of concrete type T under the
// signature A -> R. Every call with the same instantiation returns the same
// pointer; typed access relies on that identity.
func For[A, R any, T Invoker[A, R]]() *Descriptor[A, R] {
	key := registryKey{
		signature: reflect.TypeOf((*func(A) R)(nil)).Elem(),
		concrete:  reflect.TypeOf((*T)(nil)).Elem(),
	}
	if d, ok := registry.Load(key); ok {
		return d.(*Descriptor[A, R])
	}
	stored, loaded := registry.LoadOrStore(key, newDescriptor[A, R, T]())
	desc := stored.(*Descriptor[A, R])
	if !loaded {
		logger, _ := zap.NewProduction()
		logger.Sugar().Debugf(
			"materialized type descriptor: id: %v, type: %v, placement: %v",
			desc.id, desc.concrete, desc.place,
		)
	}
	return desc
}

// Empty returns the shared empty descriptor of the signature A -> R.
func Empty[A, R any]() *Descriptor[A, R] {
	key := registryKey{signature: reflect.TypeOf((*func(A) R)(nil)).Elem()}
	if d, ok := registry.Load(key); ok {
		return d.(*Descriptor[A, R])
	}
	stored, _ := registry.LoadOrStore(key, newEmptyDescriptor[A, R]())
	return stored.(*Descriptor[A, R])
}

func newDescriptor[A, R any, T Invoker[A, R]]() *Descriptor[A, R] {
	concrete := reflect.TypeOf((*T)(nil)).Elem()
	place := PlacementOf(concrete)

	return &Descriptor[A, R]{
		id:       uuid.New().String(),
		concrete: concrete,
		place:    place,

		copyFn: func(dst, src *Storage[A, R]) error {
			// Pre: dst is empty; checked by CopyInto.
			v := *payload[A, R, T](src, place)
			if cloner, ok := any(v).(Cloner); ok {
				cloned, err := cloner.CloneCallable()
				if err != nil {
					return fmt.Errorf("failed to clone %v: %w", concrete, err)
				}
				typed, ok := cloned.(T)
				if !ok {
					return fmt.Errorf("clone of %v has unexpected type: %T", concrete, cloned)
				}
				v = typed
			}
			store[A, R, T](dst, v, place)
			dst.desc = src.desc
			return nil
		},

		moveFn: func(dst, src *Storage[A, R]) {
			// Pre: dst is empty. Post: src is empty.
			// Relocation is a bit transfer for every placement: either the
			// bits are self-contained, or they are a pointer word whose new
			// home the GC also scans.
			dst.scalar, src.scalar = src.scalar, 0
			dst.ptr, src.ptr = src.ptr, nil
			dst.desc = src.desc
			src.desc = Empty[A, R]()
		},

		invokeFn: func(s *Storage[A, R], arg A) (R, error) {
			return (*payload[A, R, T](s, place)).Invoke(arg), nil
		},

		destroyFn: func(s *Storage[A, R]) {
			// Dropping the references is all a destroy amounts to in Go; the
			// GC reclaims a boxed payload once nothing points at it.
			s.scalar = 0
			s.ptr = nil
		},
	}
}

func newEmptyDescriptor[A, R any]() *Descriptor[A, R] {
	return &Descriptor[A, R]{
		id: uuid.New().String(),

		copyFn: func(dst, src *Storage[A, R]) error {
			// Invariant: src & dst both hold the empty descriptor.
			if !dst.IsEmpty() || !src.IsEmpty() {
				panic("typedesc: empty descriptor copy over non-empty storage")
			}
			return nil
		},
		moveFn: func(dst, src *Storage[A, R]) {
			if !dst.IsEmpty() || !src.IsEmpty() {
				panic("typedesc: empty descriptor move over non-empty storage")
			}
		},
		invokeFn: func(_ *Storage[A, R], _ A) (R, error) {
			var zero R
			return zero, ErrEmptyInvocation
		},
		destroyFn: func(_ *Storage[A, R]) {},
	}
}

// payload locates the concrete value inside s according to the placement the
// descriptor recorded for T. All unsafe reinterpretation of the storage word
// is confined to this function and store.
func payload[A, R any, T Invoker[A, R]](s *Storage[A, R], place Placement) *T {
	switch place {
	case PlacementScalar:
		return (*T)(unsafe.Pointer(&s.scalar))
	case PlacementPointer:
		return (*T)(unsafe.Pointer(&s.ptr))
	default:
		return (*T)(s.ptr)
	}
}

func store[A, R any, T Invoker[A, R]](s *Storage[A, R], v T, place Placement) {
	switch place {
	case PlacementScalar:
		s.scalar = 0
		*(*T)(unsafe.Pointer(&s.scalar)) = v
	case PlacementPointer:
		*(*T)(unsafe.Pointer(&s.ptr)) = v
	default:
		boxed := new(T)
		*boxed = v
		s.ptr = unsafe.Pointer(boxed)
	}
}
