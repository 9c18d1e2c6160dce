// Package ptalign computes optimal alignment costs between event-log traces
// and process trees, the conformance-checking measure of how far observed
// behaviour is from a block-structured process model.
//
// A process tree is built from activity leaves, silent steps (tau) and four
// operators: sequence (->), exclusive choice (X), parallel (+) and redo loop
// (*). The alignment cost of a trace is the minimum number of log moves
// (events the model cannot explain) plus model moves (activities the model
// requires but the trace lacks) over every word of the tree's language.
//
// What is in the box?
//
//	ptree/        process tree model, textual parser and printer, walks
//	letters/      label interning, bitset letter sets, per-node letter-set index
//	segment/      cut enumeration for binary splits, compositions for n-ary ones
//	cache/        per-node memo tables, compute-once under concurrency, LRU bound
//	align/        the recursive cost engine, batch alignment, metrics
//	eventlog/     traces, variants with BLAKE3 fingerprints, line and CSV readers
//	builder/      seeded random trees and traces for tests and benchmarks
//	cmd/ptalign/  CLI with align, inspect and sample commands
//
// Quick example:
//
//	t := ptree.MustParse("->( 'a', X( 'b', 'c' ), *( 'd', tau ) )")
//	e, _ := align.New(t)
//	cost, _ := e.Align(ctx, []string{"a", "c", "d", "d"}) // 0
//
// Costs are exact when activity labels are pairwise distinct. The engine
// shares one cache across all traces it aligns, so large logs with common
// prefixes and segments get cheaper per trace as they go.
//
//	go install github.com/katalvlaran/ptalign/cmd/ptalign@latest
package ptalign
