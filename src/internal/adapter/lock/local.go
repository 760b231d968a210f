package lock

import (
	"context"
	"sync"
)

// Local is an in-process keyed lock. Each key is a one-slot channel so a
// waiter can give up when its context ends.
type Local struct {
	mu    sync.Mutex
	slots map[string]*slot
}

type slot struct {
	ch      chan struct{}
	waiters int
}

func NewLocal() *Local {
	return &Local{slots: make(map[string]*slot)}
}

func (l *Local) Lock(ctx context.Context, keys ...string) (func(), error) {
	keys = normalize(keys)
	acquired := make([]string, 0, len(keys))

	for _, key := range keys {
		if err := l.acquire(ctx, key); err != nil {
			l.release(acquired)
			return nil, err
		}
		acquired = append(acquired, key)
	}

	var once sync.Once
	return func() { once.Do(func() { l.release(acquired) }) }, nil
}

func (l *Local) acquire(ctx context.Context, key string) error {
	l.mu.Lock()
	s, ok := l.slots[key]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		l.slots[key] = s
	}
	s.waiters++
	l.mu.Unlock()

	select {
	case s.ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		l.mu.Lock()
		s.waiters--
		if s.waiters == 0 {
			delete(l.slots, key)
		}
		l.mu.Unlock()
		return ctx.Err()
	}
}

func (l *Local) release(keys []string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := len(keys) - 1; i >= 0; i-- {
		s := l.slots[keys[i]]
		<-s.ch
		s.waiters--
		if s.waiters == 0 {
			delete(l.slots, keys[i])
		}
	}
}
