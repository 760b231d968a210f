package lock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/api-sage/core-banking/src/internal/logger"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrLockTimeout = errors.New("lock wait timed out")

const retryInterval = 25 * time.Millisecond

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

// Redis is a keyed lock shared by every instance using the same Redis.
// Keys expire after ttl so a crashed holder can not block forever.
type Redis struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
	wait   time.Duration
}

func NewRedis(client redis.UniversalClient, ttl, wait time.Duration) *Redis {
	return &Redis{
		client: client,
		prefix: "core-banking:lock:",
		ttl:    ttl,
		wait:   wait,
	}
}

func (r *Redis) Lock(ctx context.Context, keys ...string) (func(), error) {
	keys = normalize(keys)
	token := uuid.NewString()

	waitCtx, cancel := context.WithTimeout(ctx, r.wait)
	defer cancel()

	acquired := make([]string, 0, len(keys))
	for _, key := range keys {
		if err := r.acquire(waitCtx, r.prefix+key, token); err != nil {
			r.release(acquired, token)
			return nil, fmt.Errorf("lock %s: %w", key, err)
		}
		acquired = append(acquired, r.prefix+key)
	}

	var once sync.Once
	return func() { once.Do(func() { r.release(acquired, token) }) }, nil
}

func (r *Redis) acquire(ctx context.Context, key, token string) error {
	ticker := time.NewTicker(retryInterval)
	defer ticker.Stop()

	for {
		ok, err := r.client.SetNX(ctx, key, token, r.ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return ErrLockTimeout
			}
			return err
		}
		if ok {
			return nil
		}

		select {
		case <-ctx.Done():
			return ErrLockTimeout
		case <-ticker.C:
		}
	}
}

// release runs on a fresh context so a cancelled request still frees its keys.
func (r *Redis) release(keys []string, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	for i := len(keys) - 1; i >= 0; i-- {
		if err := releaseScript.Run(ctx, r.client, []string{keys[i]}, token).Err(); err != nil {
			logger.Error("redis lock release failed", err, logger.Fields{
				"key": keys[i],
			})
		}
	}
}
