// Package callpool provides partitioned, lock-guarded invocation of a
// callable container from many goroutines.
//
// A Func makes no concurrent-mutation promises of its own, so the pool owns
// the synchronization: it keeps N independent clones of a prototype
// container, one per shard, each behind its own mutex. Invocations are
// routed by key hash, so equal keys always reach the same clone and observe
// its state in order.
package callpool

import (
	"errors"
	"fmt"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iahmad1337/function"
)

var ErrEmptyPrototype = errors.New("pool prototype holds no callable")

// Pool routes keyed invocations across independent clones of one prototype.
type Pool[A, R any] struct {
	poolId string
	shards []*shard[A, R]
}

type shard[A, R any] struct {
	mu sync.Mutex
	fn function.Func[A, R]
}

// New builds a pool of numShards clones of proto. The prototype must be
// non-empty; it is not retained and may be mutated or reset afterwards
// without affecting the pool.
func New[A, R any](proto *function.Func[A, R], numShards int) (*Pool[A, R], error) {
	if numShards < 1 {
		return nil, fmt.Errorf("pool needs at least one shard, got %d", numShards)
	}
	if proto.IsEmpty() {
		return nil, ErrEmptyPrototype
	}

	shards := make([]*shard[A, R], numShards)
	for i := range shards {
		cloned, err := proto.Clone()
		if err != nil {
			return nil, fmt.Errorf("failed to clone prototype for shard %d: %w", i, err)
		}
		sh := &shard[A, R]{}
		sh.fn.MoveFrom(&cloned)
		shards[i] = sh
	}

	pool := &Pool[A, R]{
		poolId: uuid.New().String(),
		shards: shards,
	}

	logger, _ := zap.NewProduction()
	logger.Sugar().Debugf("created call pool: poolId: %v, shards: %v", pool.poolId, numShards)

	return pool, nil
}

// Invoke routes arg to the shard owned by key and invokes its clone under
// the shard lock. Equal keys always hit the same shard.
func (p *Pool[A, R]) Invoke(key string, arg A) (R, error) {
	sh := p.shards[indexOfKey(key, len(p.shards))]
	sh.mu.Lock()
	defer sh.mu.Unlock()
	return sh.fn.Invoke(arg)
}

// Size returns the number of shards.
func (p *Pool[A, R]) Size() int {
	return len(p.shards)
}

func indexOfKey(key string, numShards int) int {
	switch numShards {
	case 0:
		panic("number of shards cannot be 0")
	case 1:
		return 0
	default:
		return int(xxhash.Sum64String(key) % uint64(numShards))
	}
}
