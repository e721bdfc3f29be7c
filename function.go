package function

import (
	"reflect"

	"github.com/iahmad1337/function/internal/typedesc"
)

// Func is a container for one callable of the fixed signature A -> R,
// erased behind a per-concrete-type behavior table. Small callables (one
// pointer word or less) are stored inline; larger ones are boxed on the
// heap. The zero value is a valid empty container.
//
// Func has explicit value semantics: Clone, CopyFrom and MoveFrom are the
// copy/move surface. Duplicating a Func by plain struct assignment aliases
// the payload and must be avoided, for the same reason a sync.Mutex is not
// copied. A single Func is not safe for concurrent mutation; wrap it (see
// shared/callpool) or guard it with a caller-owned mutex.
type Func[A, R any] struct {
	storage typedesc.Storage[A, R]
}

// New constructs a container holding fn. This is the one site where a
// concrete type meets its descriptor: everything after construction runs
// through the four erased operations.
//
//	f := function.New[int, int](adder{k: 5})
func New[A, R any, T Callable[A, R]](fn T) Func[A, R] {
	var f Func[A, R]
	typedesc.Init(&f.storage, fn)
	return f
}

// Of constructs a container from a plain function, wrapped in Fn.
func Of[A, R any](fn func(A) R) Func[A, R] {
	return New[A, R](Fn[A, R](fn))
}

// Invoke forwards arg to the held callable and returns its result.
// An empty container returns ErrEmptyInvocation.
func (f *Func[A, R]) Invoke(arg A) (R, error) {
	return f.storage.Invoke(arg)
}

// MustInvoke is the panic-on-empty variant of Invoke. Use when the container
// is guaranteed non-empty.
func (f *Func[A, R]) MustInvoke(arg A) R {
	res, err := f.Invoke(arg)
	if err != nil {
		panic(err)
	}
	return res
}

// IsEmpty reports whether f holds no callable.
func (f *Func[A, R]) IsEmpty() bool {
	return f.storage.IsEmpty()
}

// ConcreteType returns the held callable's type, or nil when empty.
func (f *Func[A, R]) ConcreteType() reflect.Type {
	return f.storage.Descriptor().Concrete()
}

// Clone returns an independent copy of f: same concrete type, independently
// owned payload. A held Cloner is copied through its hook and may fail; f is
// never mutated either way. Cloning an empty container yields an empty one.
func (f *Func[A, R]) Clone() (Func[A, R], error) {
	var dst Func[A, R]
	if err := f.storage.CopyInto(&dst.storage); err != nil {
		return Func[A, R]{}, err
	}
	return dst, nil
}

// CopyFrom replaces f's payload with an independent copy of src's.
// It clones into a temporary and swaps, so a clone failure leaves f
// unchanged. Self-assignment is a no-op.
func (f *Func[A, R]) CopyFrom(src *Func[A, R]) error {
	if f == src {
		return nil
	}
	tmp, err := src.Clone()
	if err != nil {
		return err
	}
	f.Swap(&tmp)
	tmp.Reset()
	return nil
}

// MoveFrom transfers src's payload into f, destroying f's previous payload.
// Afterwards src is empty. Self-move is a no-op. Never fails.
func (f *Func[A, R]) MoveFrom(src *Func[A, R]) {
	if f == src {
		return
	}
	var tmp Func[A, R]
	src.storage.MoveInto(&tmp.storage)
	f.Swap(&tmp)
	tmp.Reset()
}

// Swap exchanges the payloads of f and other. Never fails.
func (f *Func[A, R]) Swap(other *Func[A, R]) {
	f.storage.Swap(&other.storage)
}

// Reset reverts f to the empty state, dropping the held callable.
func (f *Func[A, R]) Reset() {
	f.storage.Reset()
}

// Target returns a pointer to the held callable iff its concrete type is
// exactly T, by descriptor identity. It returns nil for every other type,
// for empty containers, and after f was moved from. Mutations through the
// pointer act on f's own payload.
//
//	if add := function.Target[adder](&f); add != nil {
//		add.k = 7
//	}
func Target[T Callable[A, R], A, R any](f *Func[A, R]) *T {
	return typedesc.As[A, R, T](&f.storage)
}
