package function

import "github.com/iahmad1337/function/internal/typedesc"

// Callable is anything a Func can hold: a concrete type with an Invoke
// method matching the container's fixed signature.
type Callable[A, R any] interface {
	Invoke(A) R
}

// Fn adapts a plain function to Callable, so free functions and closures can
// be held without declaring a wrapper type. A func value is a single pointer
// word, so Fn always takes the inline path.
type Fn[A, R any] func(A) R

func (fn Fn[A, R]) Invoke(arg A) R {
	return fn(arg)
}

// Cloner is an optional deep-copy hook for held callables whose state must
// not be shared between a container and its copies. See typedesc.Cloner.
type Cloner = typedesc.Cloner

var _ Callable[int, int] = Fn[int, int](nil)
