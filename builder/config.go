// SPDX-License-Identifier: MIT
// Package: ptalign/builder
//
// config.go: internal configuration and deterministic defaults.
//
// Deterministic defaults:
//   • rng          = nil          (generators return ErrNeedRandSource)
//   • maxDepth     = 3            (edges below the root)
//   • fanOut       = [2, 3]       (children of sequence/xor/parallel)
//   • leafProb     = 0.25         (early leaf above max depth)
//   • tauProb      = 0.1          (leaf is silent)
//   • loopRepeat   = 0.4          (another q r round while sampling)
//   • maxRounds    = 3            (loop rounds cap while sampling)
//   • noise        = 0            (per-event corruption probability)
//   • labelFn      = ColumnLabel  ("a", "b", ..., "z", "aa", ...)

package builder

import "math/rand"

// builderConfig aggregates all knobs used by the generators.
type builderConfig struct {
	rng *rand.Rand

	// Tree shape.
	maxDepth   int
	minFanOut  int
	maxFanOut  int
	leafProb   float64
	tauProb    float64
	labelFn    func(int) string
	operators  []opKind
	loopRepeat float64
	maxRounds  int

	// Trace corruption.
	noise float64
}

// opKind indexes the operator mix.
type opKind int

const (
	opSequence opKind = iota
	opXor
	opParallel
	opLoop
)

const (
	defaultMaxDepth   = 3
	defaultMinFanOut  = 2
	defaultMaxFanOut  = 3
	defaultLeafProb   = 0.25
	defaultTauProb    = 0.1
	defaultLoopRepeat = 0.4
	defaultMaxRounds  = 3
)

// newBuilderConfig applies opts over the defaults; later options win.
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		maxDepth:   defaultMaxDepth,
		minFanOut:  defaultMinFanOut,
		maxFanOut:  defaultMaxFanOut,
		leafProb:   defaultLeafProb,
		tauProb:    defaultTauProb,
		labelFn:    ColumnLabel,
		operators:  []opKind{opSequence, opXor, opParallel, opLoop},
		loopRepeat: defaultLoopRepeat,
		maxRounds:  defaultMaxRounds,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// ColumnLabel returns the lower-case spreadsheet column name of idx:
// 0→"a", 25→"z", 26→"aa". Negative indices yield "".
func ColumnLabel(idx int) string {
	if idx < 0 {
		return ""
	}
	var buf []byte
	for i := idx; i >= 0; i = i/26 - 1 {
		buf = append(buf, byte('a'+i%26))
	}
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}

	return string(buf)
}
