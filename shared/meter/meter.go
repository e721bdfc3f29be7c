// Package meter wraps a callable container with invocation accounting:
// how many calls, over which wall-clock window, and which were slowest.
package meter

import (
	"sync"
	"time"

	"github.com/rickb777/date/v2/timespan"

	"github.com/iahmad1337/function"
)

// Meter counts successful invocations of a wrapped container, tracks the
// window between the first and last of them, and retains the slowest
// durations up to a bound. Empty-invocation errors pass through unrecorded.
//
// Meter is safe for concurrent use as long as nothing else mutates the
// wrapped Func while invocations run.
type Meter[A, R any] struct {
	fn *function.Func[A, R]

	mu      sync.Mutex
	count   int
	first   time.Time
	last    time.Time
	slowest *boundedRetention[time.Duration]
}

// New wraps fn, retaining at most retain slowest-invocation samples.
func New[A, R any](fn *function.Func[A, R], retain int) *Meter[A, R] {
	if retain < 1 {
		panic("retain should be greater than 0")
	}
	return &Meter[A, R]{
		fn: fn,
		slowest: newBoundedRetention(retain, func(a, b time.Duration) int {
			switch {
			case a < b:
				return -1
			case a > b:
				return 1
			default:
				return 0
			}
		}),
	}
}

// Invoke forwards to the wrapped container and records the call on success.
func (m *Meter[A, R]) Invoke(arg A) (R, error) {
	start := time.Now()
	res, err := m.fn.Invoke(arg)
	if err != nil {
		return res, err
	}
	elapsed := time.Since(start)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.count == 0 {
		m.first = start
	}
	m.last = start
	m.count++
	m.slowest.Insert(elapsed)

	return res, nil
}

// Count returns the number of successful invocations so far.
func (m *Meter[A, R]) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.count
}

// Window returns the time span covering the first through last successful
// invocation. The zero span is returned before the first one.
func (m *Meter[A, R]) Window() timespan.TimeSpan {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.count == 0 {
		return timespan.TimeSpan{}
	}
	return timespan.BetweenTimes(m.first, m.last)
}

// Slowest returns the retained slowest durations, ascending.
func (m *Meter[A, R]) Slowest() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slowest.Items()
}
