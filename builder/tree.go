// SPDX-License-Identifier: MIT
// Package: ptalign/builder
//
// tree.go: RandomTree: seeded random process trees with disjoint labels.

package builder

import (
	"fmt"

	"github.com/katalvlaran/ptalign/ptree"
)

// RandomTree generates a process tree whose activity labels are pairwise
// distinct (labelFn(0), labelFn(1), ... in preorder).
//
// Shape: the root is an operator unless maxDepth is 0; every node above the
// depth limit becomes a leaf with probability leafProb; leaves are silent
// with probability tauProb; operators are drawn uniformly from the operator
// mix; loops get exactly two children, other operators between minFanOut
// and maxFanOut.
//
// Errors: ErrNeedRandSource when no RNG was configured.
// Complexity: O(N) for N generated nodes.
func RandomTree(opts ...BuilderOption) (*ptree.Tree, error) {
	cfg := newBuilderConfig(opts...)
	if cfg.rng == nil {
		return nil, fmt.Errorf("RandomTree: %w", ErrNeedRandSource)
	}

	g := treeGen{cfg: cfg}
	t, err := ptree.Compile(g.node(0))
	if err != nil {
		return nil, fmt.Errorf("RandomTree: %w", err)
	}

	return t, nil
}

type treeGen struct {
	cfg    builderConfig
	labels int
}

func (g *treeGen) node(depth int) *ptree.Expr {
	rng := g.cfg.rng

	// 1) Leaves: at the depth limit, or early with leafProb (never the root).
	if depth >= g.cfg.maxDepth || (depth > 0 && rng.Float64() < g.cfg.leafProb) {
		if rng.Float64() < g.cfg.tauProb {
			return ptree.Tau()
		}
		label := g.cfg.labelFn(g.labels)
		g.labels++

		return ptree.Activity(label)
	}

	// 2) Operator.
	op := g.cfg.operators[rng.Intn(len(g.cfg.operators))]
	if op == opLoop {
		body := g.node(depth + 1)
		redo := g.node(depth + 1)

		return ptree.Loop(body, redo)
	}

	k := g.cfg.minFanOut + rng.Intn(g.cfg.maxFanOut-g.cfg.minFanOut+1)
	children := make([]*ptree.Expr, k)
	for i := range children {
		children[i] = g.node(depth + 1)
	}
	switch op {
	case opXor:
		return ptree.Xor(children...)
	case opParallel:
		return ptree.Par(children...)
	default:
		return ptree.Seq(children...)
	}
}
