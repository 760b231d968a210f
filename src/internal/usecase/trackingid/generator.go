// Package trackingid issues ten digit ledger identifiers.
//
// Ids are seeded from wall-clock milliseconds and bumped past the last
// issued id when the clock has not advanced. The sequence is strictly
// increasing within one process until it wraps at Limit. Two processes
// writing into the same id space can collide.
package trackingid

import (
	"sync"
	"time"
)

const Limit int64 = 10_000_000_000

type Generator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func New() *Generator {
	return &Generator{now: time.Now}
}

// NewWithClock is used by tests to drive the clock.
func NewWithClock(now func() time.Time) *Generator {
	return &Generator{now: now}
}

func (g *Generator) Next() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.now().UnixMilli() % Limit
	if id <= g.last {
		id = (g.last + 1) % Limit
	}
	g.last = id
	return id
}
