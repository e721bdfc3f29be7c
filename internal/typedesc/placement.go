package typedesc

import (
	"reflect"
	"unsafe"
)

const (
	wordSize  = unsafe.Sizeof(uintptr(0))
	wordAlign = unsafe.Alignof(uintptr(0))
)

// Placement records where a concrete callable's bytes live inside a Storage.
type Placement uint8

const (
	// PlacementScalar: the value is at most one word, pointer-free, and is
	// stored bit-for-bit in the scalar arm.
	PlacementScalar Placement = iota
	// PlacementPointer: the value is exactly one pointer word (pointer, map,
	// channel, func, or a transparent wrapper of one) and is stored in the
	// pointer arm so the GC keeps seeing it.
	PlacementPointer
	// PlacementBoxed: anything else; a heap-allocated copy is made and the
	// pointer arm holds its address.
	PlacementBoxed
)

func (p Placement) String() string {
	switch p {
	case PlacementScalar:
		return "scalar"
	case PlacementPointer:
		return "pointer"
	case PlacementBoxed:
		return "boxed"
	default:
		return "unknown"
	}
}

// Inline returns whether the placement avoids a heap allocation of its own.
func (p Placement) Inline() bool {
	return p != PlacementBoxed
}

// PlacementOf classifies a concrete callable type. The inline arms require
// that relocating the value is a plain bit copy: either the bits carry no
// pointers at all, or they are a single pointer word the GC can track in the
// pointer arm. Everything else is boxed.
func PlacementOf(t reflect.Type) Placement {
	switch {
	case pointerShaped(t):
		return PlacementPointer
	case t.Size() <= wordSize && wordAlign%uintptr(t.Align()) == 0 && pointerFree(t):
		return PlacementScalar
	default:
		return PlacementBoxed
	}
}

// pointerFree reports whether t's representation contains no pointers, so its
// bits may live in an untyped word without hiding anything from the GC.
func pointerFree(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return true
	case reflect.Array:
		return t.Len() == 0 || pointerFree(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if !pointerFree(t.Field(i).Type) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// pointerShaped reports whether t's representation is exactly one pointer
// word. Such a value may be stored directly in the pointer arm: the stored
// bits are a valid pointer, so the GC scan stays precise.
func pointerShaped(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Map, reflect.Chan, reflect.Func:
		return true
	case reflect.Struct:
		if t.Size() != wordSize {
			return false
		}
		shaped := false
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if f.Type.Size() == 0 {
				continue
			}
			if shaped || !pointerShaped(f.Type) {
				return false
			}
			shaped = true
		}
		return shaped
	case reflect.Array:
		return t.Len() == 1 && pointerShaped(t.Elem())
	default:
		return false
	}
}
