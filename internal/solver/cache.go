package solver

import (
	"sync"

	"github.com/annolangen/solitaire/internal/peg"
)

type deadKey struct {
	depth uint8
	pos   peg.Position
}

// DeadEndCache records (depth, position) pairs from which no sequence of
// depth moves reaches a single peg. Only failures are stored, so consulting
// it never changes which solution a search finds first. Once limit entries
// are held, further dead ends are dropped.
type DeadEndCache struct {
	mu    sync.RWMutex
	dead  map[deadKey]struct{}
	limit int
}

// NewDeadEndCache creates an empty cache holding at most limit entries.
// A limit of zero or less means unbounded.
func NewDeadEndCache(limit int) *DeadEndCache {
	return &DeadEndCache{
		dead:  make(map[deadKey]struct{}),
		limit: limit,
	}
}

// Dead reports whether p is a known dead end at the given depth.
func (c *DeadEndCache) Dead(depth int, p peg.Position) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.dead[deadKey{depth: uint8(depth), pos: p}]
	return ok
}

// MarkDead records p as a dead end at the given depth. It reports false if
// the cache is full.
func (c *DeadEndCache) MarkDead(depth int, p peg.Position) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.limit > 0 && len(c.dead) >= c.limit {
		return false
	}
	c.dead[deadKey{depth: uint8(depth), pos: p}] = struct{}{}
	return true
}

// Len returns the number of recorded dead ends.
func (c *DeadEndCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.dead)
}
