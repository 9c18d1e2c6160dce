// Package cache stores alignment costs per process tree node, keyed by the
// exact encoded subsequence that was aligned against that node.
//
// Errors:
//
//	ErrConflictingCost - a second insert for the same (node, key) carried a different cost.
//	ErrUnknownNode     - a node id outside the table range.
package cache

import (
	"errors"
	"fmt"
)

// Sentinel errors for cache operations.
var (
	// ErrConflictingCost indicates that two computations of the same
	// (node, subsequence) produced different costs. Costs are deterministic,
	// so this is a programming error; the stored value is never replaced.
	ErrConflictingCost = errors.New("cache: conflicting cost for existing entry")

	// ErrUnknownNode indicates a node id outside [0, nodes).
	ErrUnknownNode = errors.New("cache: unknown node id")
)

// Option configures a Cache.
type Option func(*Options)

// Options holds the construction parameters of a Cache.
type Options struct {
	// Capacity bounds every per-node table to this many entries with LRU
	// eviction. 0 means unbounded.
	Capacity int

	// Metrics receives hit, miss and size updates; nil disables them.
	Metrics *Metrics
}

// DefaultOptions returns unbounded tables without metrics.
func DefaultOptions() Options {
	return Options{Capacity: 0, Metrics: nil}
}

// WithCapacity bounds every per-node table to n entries (LRU eviction).
// n == 0 restores the unbounded default. Panics if n < 0.
func WithCapacity(n int) Option {
	if n < 0 {
		panic(fmt.Sprintf("cache: WithCapacity(%d): capacity must be >= 0", n))
	}

	return func(o *Options) { o.Capacity = n }
}

// WithMetrics attaches Prometheus collectors created by NewMetrics.
func WithMetrics(m *Metrics) Option {
	return func(o *Options) { o.Metrics = m }
}

// Stats is a point-in-time snapshot of cache usage.
type Stats struct {
	Hits      int64 // lookups answered from a table
	Misses    int64 // lookups that found nothing
	Evictions int64 // entries dropped by bounded tables
	Entries   int   // entries currently stored
	PerNode   []int // entries per node id
}

// HitRate returns Hits / (Hits + Misses), or 0 when nothing was looked up.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}

	return float64(s.Hits) / float64(total)
}
