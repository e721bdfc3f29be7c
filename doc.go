// Package function provides a type-erased callable container with a
// small-object optimization.
//
// A Func[A, R] holds any value whose Invoke method matches the fixed
// signature A -> R — a named struct, a pointer, or a plain func wrapped in
// Fn — and invokes it uniformly without knowing the concrete type at the
// call site. Callables that fit in one pointer word are stored inline in
// the container; larger ones are boxed on the heap once. Behavior is
// recovered through a per-concrete-type descriptor: an immutable,
// process-wide table of copy/move/invoke/destroy operations materialized
// lazily at the single construction site.
//
// # What an empty container does
//
// A zero-value Func is empty: IsEmpty reports true, Invoke returns
// ErrEmptyInvocation, and Target returns nil for every type. Emptiness is
// also the post-state of the source of a move. Invocation on empty is the
// only error the container raises on its own behalf.
//
// # Value semantics
//
// Go has no copy constructors, so the value-semantics surface is explicit:
// Clone produces an independent container, CopyFrom copy-assigns through a
// temporary and a swap (strong safety: a failed clone leaves the target
// untouched), MoveFrom transfers ownership and empties the source. A held
// callable that implements Cloner controls how its state is duplicated;
// anything else is copied by plain value assignment.
//
// # Concurrency
//
// Descriptors are materialized race-free and are safe to share. A Func
// instance itself makes no concurrent-mutation promises; callers own the
// synchronization, or use shared/callpool for partitioned, lock-guarded
// invocation.
//
// Example:
//
//	f := function.Of(func(x int) int { return x + 5 })
//	res, err := f.Invoke(10) // 15, nil
package function
