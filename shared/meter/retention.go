package meter

import "sort"

// CompareFunc orders retained samples; negative means a sorts before b.
type CompareFunc[T any] func(a, b T) int

// boundedRetention keeps the largest maxLen samples seen so far, sorted
// ascending. Inserts use binary search; overflow evicts the smallest.
type boundedRetention[T any] struct {
	data    []T
	maxLen  int
	compare CompareFunc[T]
}

func newBoundedRetention[T any](maxLen int, cmp CompareFunc[T]) *boundedRetention[T] {
	return &boundedRetention[T]{
		data:    make([]T, 0, maxLen),
		maxLen:  maxLen,
		compare: cmp,
	}
}

func (b *boundedRetention[T]) Insert(val T) {
	idx := sort.Search(len(b.data), func(i int) bool {
		return b.compare(val, b.data[i]) < 0
	})

	b.data = append(b.data, val)
	copy(b.data[idx+1:], b.data[idx:])
	b.data[idx] = val

	if len(b.data) > b.maxLen {
		b.data = b.data[1:]
	}
}

func (b *boundedRetention[T]) Items() []T {
	out := make([]T, len(b.data))
	copy(out, b.data)
	return out
}
