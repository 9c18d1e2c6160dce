// SPDX-License-Identifier: MIT

// Package builder generates deterministic random fixtures for the alignment
// engine: process trees with pairwise-disjoint activity labels and traces
// sampled from their languages.
//
// Components:
//
//   - RandomTree(opts...)        seeded random tree (depth, fan-out, operator mix).
//   - RandomTrace(t, opts...)    one word of t's language, optionally with noise.
//   - RandomLog(t, n, opts...)   n such words from one RNG stream.
//   - ColumnLabel                default label scheme "a".."z","aa",...
//
// Options (panic on meaningless values; generators never panic):
//
//   - WithSeed / WithRand        RNG; required by every generator.
//   - WithMaxDepth, WithFanOut, WithLeafProbability, WithTauProbability,
//     WithOperators, WithLabelScheme  tree shape.
//   - WithLoopRepeat, WithNoise  trace sampling.
//
// Guarantees: the same options and seed always yield the same tree and
// traces. Without noise a sampled word lies in the tree's language, so its
// optimal alignment cost is 0.
package builder
