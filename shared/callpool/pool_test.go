package callpool_test

import (
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iahmad1337/function"
	"github.com/iahmad1337/function/shared/callpool"
)

type sequence struct{ n int }

func (s *sequence) Invoke(struct{}) int {
	s.n++
	return s.n
}

func (s *sequence) CloneCallable() (any, error) {
	cp := *s
	return &cp, nil
}

func newSequenceProto() function.Func[struct{}, int] {
	return function.New[struct{}, int](&sequence{})
}

func TestNew_Validation(t *testing.T) {
	proto := newSequenceProto()

	_, err := callpool.New(&proto, 0)
	assert.Error(t, err)

	var empty function.Func[struct{}, int]
	_, err = callpool.New(&empty, 4)
	assert.ErrorIs(t, err, callpool.ErrEmptyPrototype)
}

func TestPool_SameKeySameShard(t *testing.T) {
	proto := newSequenceProto()
	pool, err := callpool.New(&proto, 8)
	require.NoError(t, err)
	require.Equal(t, 8, pool.Size())

	// One key always lands on one clone, so its state advances in order.
	for want := 1; want <= 5; want++ {
		got, err := pool.Invoke("the-key", struct{}{})
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestPool_SingleShardSharesState(t *testing.T) {
	proto := newSequenceProto()
	pool, err := callpool.New(&proto, 1)
	require.NoError(t, err)

	first, err := pool.Invoke("a", struct{}{})
	require.NoError(t, err)
	second, err := pool.Invoke("b", struct{}{})
	require.NoError(t, err)

	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
}

func TestPool_PrototypeIndependence(t *testing.T) {
	proto := newSequenceProto()
	pool, err := callpool.New(&proto, 2)
	require.NoError(t, err)

	// Advancing the prototype afterwards must not leak into the shards.
	proto.MustInvoke(struct{}{})
	proto.MustInvoke(struct{}{})

	got, err := pool.Invoke("k", struct{}{})
	require.NoError(t, err)
	assert.Equal(t, 1, got)
}

func TestPool_ConcurrentInvocationsSerialized(t *testing.T) {
	proto := newSequenceProto()
	pool, err := callpool.New(&proto, 1)
	require.NoError(t, err)

	const calls = 64
	results := make([]int, calls)

	var wg sync.WaitGroup
	for i := 0; i < calls; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := pool.Invoke("shared", struct{}{})
			assert.NoError(t, err)
			results[i] = res
		}(i)
	}
	wg.Wait()

	// The shard mutex serializes the stateful clone: every call sees a
	// distinct successor value.
	sort.Ints(results)
	for i, res := range results {
		require.Equal(t, i+1, res)
	}
}
