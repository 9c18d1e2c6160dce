// Package cache memoises alignment costs per process tree node.
//
// Overview:
//
//   - One table per node id maps the exact encoded subsequence (letters.Key)
//     to its cost. The empty subsequence is the key "".
//   - Entries are added monotonically: a second insert with a different cost
//     is rejected with ErrConflictingCost, never overwritten.
//   - Do computes a missing entry at most once across concurrent callers
//     (golang.org/x/sync/singleflight) and stores it only on success.
//
// Options:
//
//   - WithCapacity(n): bounded LRU tables (github.com/hashicorp/golang-lru/v2);
//     evicted entries are recomputed on demand.
//   - WithMetrics(m): Prometheus counters from NewMetrics.
//
// Reset must not run concurrently with Do or Insert.
package cache
