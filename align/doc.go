// Package align computes optimal alignment costs between traces and process
// trees.
//
// Overview:
//
//   - The cost of aligning a trace against a node is the minimum number of log
//     moves (events the model cannot explain) plus model moves (activities the
//     model requires but the trace lacks) over all words of the node's language.
//   - Costs are memoised per (node, subsequence) in a cache.Cache shared by all
//     alignments of one Engine, so variants that share segments reuse work.
//
// Cost rules:
//
//   - tau leaf:      the trace length.
//   - activity leaf: 1 for the empty trace; n-1 when the label occurs; n+1 otherwise.
//   - xor:           the cheapest child; stops at the first zero.
//   - parallel:      every child aligns the events of its own letter set;
//     events in no child's set cost one each. When child alphabets overlap,
//     an event is offered to every child owning it.
//   - sequence:      the cheapest split of the trace into one segment per child;
//     binary sequences try only the cuts from segment.Binary, longer ones
//     run Dijkstra over a layered split graph (or every composition with
//     WithSequenceStrategy(Exhaustive)).
//   - loop r(q r)*:  a table of redo-then-body block costs closed under
//     concatenation, prefixed by one body segment.
//
// Labels absent from the tree are never interned: they are encoded as
// letters.Foreign, so a long-lived Engine does not grow with noisy logs.
//
// Costs are exact when activity labels are pairwise distinct.
//
// Concurrency:
//
//   - An Engine is safe for concurrent Align calls; AlignAll runs them on an
//     errgroup bounded by WithWorkers.
//   - Cancellation returns ctx.Err() unwrapped from Align, so errors.Is works
//     directly; AlignAll wraps it with the trace index.
//
// Performance and complexity:
//
//   - Binary sequences: O(n) cuts per call.
//   - Loops: O(n²) blocks, each examining O(n) cuts, plus O(n³) closure work.
//   - Long sequences: Dijkstra over O(k·n) vertices and O(k·n²) edges.
//
// Error handling (sentinel errors):
//
//   - ErrNilTree:     New was called with a nil tree.
//   - ErrTreeTooDeep: the tree is deeper than WithMaxDepth.
//   - ptree.ErrUnsupportedOperator, ptree.ErrMalformedLoop: wrapped with the node id.
//
// Observability: WithLogger takes a *slog.Logger (Debug per alignment, Warn on
// failure); WithRegisterer exports ptalign_alignments_total{result},
// ptalign_alignment_duration_seconds and the cache collectors.
package align
