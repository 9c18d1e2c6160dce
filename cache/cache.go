package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// Cache holds one table per process tree node, mapping an encoded
// subsequence to its alignment cost.
//
// Entries are added monotonically: once a cost is stored for (node, key) it
// is never replaced by a different value. With WithCapacity, entries may be
// evicted and are then recomputed on demand; costs are deterministic, so
// this only affects speed.
//
// All methods are safe for concurrent use except Reset, which must not run
// concurrently with Do or Insert.
type Cache struct {
	tables  []table
	flight  singleflight.Group
	metrics *Metrics

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

// New returns an empty cache for a tree of the given number of nodes.
func New(nodes int, opts ...Option) *Cache {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if nodes < 0 {
		nodes = 0
	}

	c := &Cache{tables: make([]table, nodes), metrics: o.Metrics}
	for i := range c.tables {
		c.tables[i] = newTable(o.Capacity)
	}

	return c
}

// Nodes returns the number of per-node tables.
func (c *Cache) Nodes() int { return len(c.tables) }

// Lookup returns the cached cost for (id, key).
func (c *Cache) Lookup(id int, key string) (int, bool) {
	if id < 0 || id >= len(c.tables) {
		return 0, false
	}
	v, ok := c.tables[id].get(key)
	c.count(ok)

	return v, ok
}

// Insert stores cost for (id, key). Inserting the same cost twice is a
// no-op; a different cost leaves the entry untouched and returns
// ErrConflictingCost.
func (c *Cache) Insert(id int, key string, cost int) error {
	if id < 0 || id >= len(c.tables) {
		return fmt.Errorf("%w: %d", ErrUnknownNode, id)
	}
	_, err := c.store(id, key, cost)

	return err
}

// Do returns the cost for (id, key), calling compute at most once per key
// across concurrent callers when it is missing.
//
// The result is inserted only after compute succeeds; on error nothing is
// stored. Callers that joined another goroutine's computation receive its
// result; if that computation failed because its own context was cancelled
// while ctx is still live, the caller computes the value itself.
//
// Implementation:
//   - Stage 1: table lookup (hit path, no locking beyond the table's).
//   - Stage 2: singleflight on (id, key); the leader re-checks the table,
//     runs compute and stores the result.
//   - Stage 3: retry as leader when a shared computation was cancelled elsewhere.
func (c *Cache) Do(ctx context.Context, id int, key string, compute func() (int, error)) (int, error) {
	if id < 0 || id >= len(c.tables) {
		return 0, fmt.Errorf("%w: %d", ErrUnknownNode, id)
	}

	// Stage 1: hit path.
	t := c.tables[id]
	if v, ok := t.get(key); ok {
		c.count(true)

		return v, nil
	}
	c.count(false)

	// Stage 2: compute once.
	fk := strconv.Itoa(id) + "\x00" + key
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		v, err, _ := c.flight.Do(fk, func() (any, error) {
			if v, ok := t.get(key); ok {
				return v, nil
			}
			cost, err := compute()
			if err != nil {
				return 0, err
			}

			return c.store(id, key, cost)
		})
		if err == nil {
			return v.(int), nil
		}

		// Stage 3: someone else's cancellation is not ours.
		if isContextErr(err) && ctx.Err() == nil {
			continue
		}

		return 0, err
	}
}

// Len returns the total number of stored entries.
func (c *Cache) Len() int {
	n := 0
	for _, t := range c.tables {
		n += t.len()
	}

	return n
}

// Stats returns a snapshot of counters and table sizes.
func (c *Cache) Stats() Stats {
	s := Stats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
		PerNode:   make([]int, len(c.tables)),
	}
	for i, t := range c.tables {
		s.PerNode[i] = t.len()
		s.Entries += s.PerNode[i]
	}

	return s
}

// Reset drops every entry and zeroes the counters.
func (c *Cache) Reset() {
	for _, t := range c.tables {
		c.metrics.purged(t.purge())
	}
	c.hits.Store(0)
	c.misses.Store(0)
	c.evictions.Store(0)
}

func (c *Cache) store(id int, key string, cost int) (int, error) {
	stored, existed, evicted := c.tables[id].add(key, cost)
	if existed {
		if stored != cost {
			return stored, fmt.Errorf("%w: node %d has %d, got %d", ErrConflictingCost, id, stored, cost)
		}

		return stored, nil
	}
	if evicted {
		c.evictions.Add(1)
	}
	c.metrics.stored(evicted)

	return cost, nil
}

func (c *Cache) count(hit bool) {
	if hit {
		c.hits.Add(1)
		c.metrics.hit()

		return
	}
	c.misses.Add(1)
	c.metrics.miss()
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
