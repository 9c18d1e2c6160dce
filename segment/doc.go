// Package segment enumerates the ways a trace can be cut into consecutive
// parts handed to the children of a sequence or loop.
//
//   - Binary returns the candidate cut positions worth trying when a trace
//     is split between two parts: 0, n, and every start of a run of events
//     from the right part's letter set.
//   - Compositions enumerates every split of n events into k parts and
//     serves as the exhaustive reference.
package segment
