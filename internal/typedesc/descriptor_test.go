package typedesc_test

import (
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iahmad1337/function/internal/typedesc"
)

type intShift struct{ k int }

func (s intShift) Invoke(x int) int { return x + s.k }

type shout struct{}

func (shout) Invoke(s string) string { return s + "!" }

func TestFor_StableIdentity(t *testing.T) {
	first := typedesc.For[int, int, intShift]()
	second := typedesc.For[int, int, intShift]()

	assert.Same(t, first, second)
	assert.Equal(t, reflect.TypeOf((*intShift)(nil)).Elem(), first.Concrete())
	assert.Equal(t, typedesc.PlacementScalar, first.Placement())
	assert.NotEmpty(t, first.ID())
	assert.False(t, first.IsEmpty())
}

func TestEmpty_SingletonPerSignature(t *testing.T) {
	assert.Same(t, typedesc.Empty[int, int](), typedesc.Empty[int, int]())

	intEmpty := typedesc.Empty[int, int]()
	stringEmpty := typedesc.Empty[string, string]()
	assert.NotEqual(t, intEmpty.ID(), stringEmpty.ID())

	assert.True(t, intEmpty.IsEmpty())
	assert.Nil(t, intEmpty.Concrete())
}

func TestFor_DistinctFromEmpty(t *testing.T) {
	desc := typedesc.For[string, string, shout]()
	assert.NotSame(t, typedesc.Empty[string, string](), desc)
}

func TestFor_ConcurrentFirstUse(t *testing.T) {
	// localShift is materialized nowhere else, so the goroutines below race
	// on genuine first use.
	const goroutines = 16
	descs := make([]*typedesc.Descriptor[int, int], goroutines)

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			descs[i] = typedesc.For[int, int, localShift]()
		}(i)
	}
	wg.Wait()

	for i := 1; i < goroutines; i++ {
		require.Same(t, descs[0], descs[i])
	}
}

type localShift struct{ k int }

func (s localShift) Invoke(x int) int { return x - s.k }
