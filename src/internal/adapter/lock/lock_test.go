package lock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSortsAndDedupes(t *testing.T) {
	got := normalize([]string{AccountKey(9), AccountKey(2), AccountKey(9), LoanKey(1)})
	assert.Equal(t, []string{"account:2", "account:9", "loan:1"}, got)
}

func TestLocalSerializesSameKey(t *testing.T) {
	l := NewLocal()
	ctx := context.Background()

	var (
		mu      sync.Mutex
		inside  int
		maxSeen int
		wg      sync.WaitGroup
	)

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := l.Lock(ctx, AccountKey(1))
			if !assert.NoError(t, err) {
				return
			}
			defer unlock()

			mu.Lock()
			inside++
			if inside > maxSeen {
				maxSeen = inside
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			inside--
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
	assert.Empty(t, l.slots)
}

func TestLocalHonoursContext(t *testing.T) {
	l := NewLocal()

	unlock, err := l.Lock(context.Background(), AccountKey(1), AccountKey(2))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = l.Lock(ctx, AccountKey(2))
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	unlock()
	unlock()

	again, err := l.Lock(context.Background(), AccountKey(2))
	require.NoError(t, err)
	again()
	assert.Empty(t, l.slots)
}

func TestLocalDifferentKeysDoNotBlock(t *testing.T) {
	l := NewLocal()

	first, err := l.Lock(context.Background(), AccountKey(1))
	require.NoError(t, err)
	defer first()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	second, err := l.Lock(ctx, AccountKey(2))
	require.NoError(t, err)
	second()
}

func TestRedisLock(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skip("redis not available")
	}
	defer client.Close()

	l := NewRedis(client, 5*time.Second, 100*time.Millisecond)
	key := LoanKey(time.Now().UnixNano())

	unlock, err := l.Lock(context.Background(), key)
	require.NoError(t, err)

	_, err = l.Lock(context.Background(), key)
	assert.ErrorIs(t, err, ErrLockTimeout)

	unlock()

	again, err := l.Lock(context.Background(), key)
	require.NoError(t, err)
	again()
}
