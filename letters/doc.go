// Package letters interns activity labels and indexes, for every node of a
// process tree, the set of labels its subtree can emit.
//
// Overview:
//
//   - Alphabet maps labels to dense Symbols. Intern assigns new symbols;
//     EncodeKnown maps labels it has never seen to Foreign without growing.
//   - Set is a bitset of symbols; Foreign and other negative symbols are
//     never members.
//   - Index holds one Set per node id, built by one post-order walk.
//   - Key encodes a symbol sequence as a map key, four bytes per symbol.
//
// All types are safe for concurrent readers; Alphabet also for writers.
package letters
