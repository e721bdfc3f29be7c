package function

import "github.com/iahmad1337/function/internal/typedesc"

// ErrEmptyInvocation is returned by Invoke (and panicked by MustInvoke) when
// the container holds no callable. It is the one error this package raises
// on its own behalf; copy operations only ever propagate Cloner failures.
var ErrEmptyInvocation = typedesc.ErrEmptyInvocation
