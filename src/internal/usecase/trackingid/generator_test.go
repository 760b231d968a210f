package trackingid

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextIsStrictlyIncreasingUnderFrozenClock(t *testing.T) {
	frozen := time.UnixMilli(1_700_000_000_123)
	g := NewWithClock(func() time.Time { return frozen })

	first := g.Next()
	assert.Equal(t, frozen.UnixMilli()%Limit, first)

	prev := first
	for i := 0; i < 1000; i++ {
		id := g.Next()
		require.Greater(t, id, prev)
		prev = id
	}
	assert.Equal(t, first+1000, prev)
}

func TestNextFollowsClockWhenItAdvances(t *testing.T) {
	now := time.UnixMilli(5_000)
	g := NewWithClock(func() time.Time { return now })

	assert.Equal(t, int64(5_000), g.Next())
	assert.Equal(t, int64(5_001), g.Next())

	now = time.UnixMilli(9_000)
	assert.Equal(t, int64(9_000), g.Next())
}

func TestNextStaysWithinTenDigits(t *testing.T) {
	now := time.UnixMilli(Limit*3 + 42)
	g := NewWithClock(func() time.Time { return now })

	id := g.Next()
	assert.Equal(t, int64(42), id)
	assert.Less(t, id, Limit)
}

func TestNextWrapsAtLimit(t *testing.T) {
	now := time.UnixMilli(Limit - 1)
	g := NewWithClock(func() time.Time { return now })

	assert.Equal(t, Limit-1, g.Next())
	assert.Equal(t, int64(0), g.Next())
}

func TestNextIsUniqueAcrossGoroutines(t *testing.T) {
	g := New()

	const workers, perWorker = 8, 500
	ids := make(chan int64, workers*perWorker)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				ids <- g.Next()
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]struct{}, workers*perWorker)
	for id := range ids {
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %d", id)
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, workers*perWorker)
}
