package cache

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// table is one node's key -> cost store.
type table interface {
	get(key string) (int, bool)
	// add stores cost unless key is present. It returns the stored value,
	// whether it already existed, and whether another entry was evicted.
	add(key string, cost int) (stored int, existed, evicted bool)
	len() int
	// purge drops every entry and returns how many were removed.
	purge() int
}

func newTable(capacity int) table {
	if capacity > 0 {
		c, err := lru.New[string, int](capacity)
		if err == nil {
			return &lruTable{c: c}
		}
	}

	return &mapTable{m: make(map[string]int)}
}

// mapTable is the unbounded table guarded by a read-write mutex.
type mapTable struct {
	mu sync.RWMutex
	m  map[string]int
}

func (t *mapTable) get(key string) (int, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.m[key]

	return v, ok
}

func (t *mapTable) add(key string, cost int) (int, bool, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if v, ok := t.m[key]; ok {
		return v, true, false
	}
	t.m[key] = cost

	return cost, false, false
}

func (t *mapTable) len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.m)
}

func (t *mapTable) purge() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := len(t.m)
	t.m = make(map[string]int)

	return n
}

// lruTable is a bounded table; golang-lru does its own locking.
type lruTable struct {
	c *lru.Cache[string, int]
}

func (t *lruTable) get(key string) (int, bool) { return t.c.Get(key) }

func (t *lruTable) add(key string, cost int) (int, bool, bool) {
	prev, ok, evicted := t.c.PeekOrAdd(key, cost)
	if ok {
		return prev, true, false
	}

	return cost, false, evicted
}

func (t *lruTable) len() int { return t.c.Len() }

func (t *lruTable) purge() int {
	n := t.c.Len()
	t.c.Purge()

	return n
}
