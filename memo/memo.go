// Package memo provides bounded memoization for containers holding pure
// callables.
//
// Tableize assumes purity — not just determinism, but referential
// transparency. Memoizing an impure callable (one that reads time, I/O, or
// mutable captured state) silently serves stale results; that is on the
// caller, exactly as with any other memo table.
package memo

import (
	"github.com/iahmad1337/function"
)

// Tableize returns a new container whose callable consults a bounded memo
// table before delegating to an independent clone of src's callable. The
// table holds at most 2*maxTableSize entries across two generations: when
// the active generation fills up, it is demoted to fallback and a fresh one
// starts, so memoization stays bounded without ever evicting mid-lookup.
//
// Tableizing an empty container yields an empty container. The returned
// container is safe only in a single goroutine, like any other Func.
func Tableize[A comparable, R any](src *function.Func[A, R], maxTableSize uint32) (function.Func[A, R], error) {
	if maxTableSize == 0 {
		panic("maxTableSize should be greater than 0")
	}
	if src.IsEmpty() {
		return function.Func[A, R]{}, nil
	}

	inner, err := src.Clone()
	if err != nil {
		return function.Func[A, R]{}, err
	}

	table := newDualTable[A, R](maxTableSize)
	return function.Of(func(arg A) R {
		if res, ok := table.load(arg); ok {
			return res
		}
		res := inner.MustInvoke(arg)
		table.store(arg, res)
		return res
	}), nil
}

// dualTable is a two-generation bounded map: lookups consult the active
// generation first and fall back to the previous one; stores go to the
// active generation and rotate it out once it reaches maxSize.
type dualTable[A comparable, R any] struct {
	active   map[A]R
	fallback map[A]R
	maxSize  uint32
}

func newDualTable[A comparable, R any](maxSize uint32) *dualTable[A, R] {
	return &dualTable[A, R]{
		active:   make(map[A]R),
		fallback: make(map[A]R),
		maxSize:  maxSize,
	}
}

func (t *dualTable[A, R]) load(key A) (R, bool) {
	if res, ok := t.active[key]; ok {
		return res, true
	}
	res, ok := t.fallback[key]
	return res, ok
}

func (t *dualTable[A, R]) store(key A, val R) {
	if uint32(len(t.active)) >= t.maxSize {
		t.fallback = t.active
		t.active = make(map[A]R)
	}
	t.active[key] = val
}
