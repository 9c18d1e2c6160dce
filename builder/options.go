// SPDX-License-Identifier: MIT
// Package: ptalign/builder
//
// options.go: functional options for the builder package.
//
// Contract:
//   • Option constructors VALIDATE and PANIC on meaningless inputs.
//     Generators themselves never panic.
//   • Determinism is explicit: seeding is done via WithSeed or WithRand.

package builder

import (
	"fmt"
	"math"
	"math/rand"
)

// BuilderOption customizes a generator by mutating builderConfig.
type BuilderOption func(*builderConfig)

// WithSeed creates a new *rand.Rand with the given seed (deterministic).
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand provides an explicit RNG. Panics on nil.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}

	return func(c *builderConfig) { c.rng = r }
}

// WithMaxDepth bounds the number of edges below the root. 0 yields a single
// leaf. Panics if d < 0.
func WithMaxDepth(d int) BuilderOption {
	if d < 0 {
		panic(fmt.Sprintf("builder: WithMaxDepth(%d): depth must be >= 0", d))
	}

	return func(c *builderConfig) { c.maxDepth = d }
}

// WithFanOut sets the inclusive range of children for sequence, xor and
// parallel nodes. Loops always have two. Panics unless 1 <= lo <= hi.
func WithFanOut(lo, hi int) BuilderOption {
	if lo < 1 || hi < lo {
		panic(fmt.Sprintf("builder: WithFanOut(%d, %d): need 1 <= lo <= hi", lo, hi))
	}

	return func(c *builderConfig) { c.minFanOut, c.maxFanOut = lo, hi }
}

// WithLeafProbability sets the chance that a node above the depth limit
// becomes a leaf. Panics outside [0, 1].
func WithLeafProbability(p float64) BuilderOption {
	mustProbability("WithLeafProbability", p)

	return func(c *builderConfig) { c.leafProb = p }
}

// WithTauProbability sets the chance that a leaf is silent. Panics outside [0, 1].
func WithTauProbability(p float64) BuilderOption {
	mustProbability("WithTauProbability", p)

	return func(c *builderConfig) { c.tauProb = p }
}

// WithOperators restricts the operator mix to the given kinds
// ("sequence", "xor", "parallel", "loop"). Panics on an empty or unknown list.
func WithOperators(kinds ...string) BuilderOption {
	if len(kinds) == 0 {
		panic("builder: WithOperators(): need at least one operator")
	}
	ops := make([]opKind, 0, len(kinds))
	for _, k := range kinds {
		switch k {
		case "sequence":
			ops = append(ops, opSequence)
		case "xor":
			ops = append(ops, opXor)
		case "parallel":
			ops = append(ops, opParallel)
		case "loop":
			ops = append(ops, opLoop)
		default:
			panic(fmt.Sprintf("builder: WithOperators: unknown operator %q", k))
		}
	}

	return func(c *builderConfig) { c.operators = ops }
}

// WithLabelScheme sets the activity label generator: index -> label.
// Labels must be distinct for distinct indices. Panics on nil.
func WithLabelScheme(fn func(int) string) BuilderOption {
	if fn == nil {
		panic("builder: WithLabelScheme(nil)")
	}

	return func(c *builderConfig) { c.labelFn = fn }
}

// WithLoopRepeat sets the chance of one more redo round while sampling a
// loop, and the cap on rounds. Panics if p is outside [0, 1] or rounds < 0.
func WithLoopRepeat(p float64, rounds int) BuilderOption {
	mustProbability("WithLoopRepeat", p)
	if rounds < 0 {
		panic(fmt.Sprintf("builder: WithLoopRepeat: rounds %d < 0", rounds))
	}

	return func(c *builderConfig) { c.loopRepeat, c.maxRounds = p, rounds }
}

// WithNoise sets the per-event probability that RandomTrace corrupts the
// sampled word (delete, insert or swap). Panics outside [0, 1].
func WithNoise(p float64) BuilderOption {
	mustProbability("WithNoise", p)

	return func(c *builderConfig) { c.noise = p }
}

func mustProbability(method string, p float64) {
	if math.IsNaN(p) || p < 0 || p > 1 {
		panic(fmt.Sprintf("%v: %s(%v)", ErrInvalidProbability, method, p))
	}
}
