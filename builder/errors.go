// SPDX-License-Identifier: MIT
// Package: ptalign/builder
//
// errors.go: sentinel errors for the builder package.
//
// Error policy:
//   • Only package-level sentinels are exposed; branch with errors.Is.
//   • Context is attached with %w at the call site, never baked into sentinels.
//   • Generators never panic; validation panics live in option constructors.

package builder

import "errors"

// ErrNeedRandSource indicates that a stochastic generator was called without
// an RNG (WithSeed or WithRand must be supplied).
var ErrNeedRandSource = errors.New("builder: rng is required")

// ErrInvalidProbability indicates a probability outside [0, 1]. Option
// constructors panic with it; it is exported so tests can match the message.
var ErrInvalidProbability = errors.New("builder: probability out of range")

// ErrNilTree indicates that RandomTrace was called with a nil tree.
var ErrNilTree = errors.New("builder: tree is nil")
