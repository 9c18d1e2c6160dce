// SPDX-License-Identifier: MIT

package builder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ptalign/builder"
	"github.com/katalvlaran/ptalign/eventlog"
	"github.com/katalvlaran/ptalign/ptree"
)

func TestRandomTree_Deterministic(t *testing.T) {
	a, err := builder.RandomTree(builder.WithSeed(42), builder.WithMaxDepth(4))
	require.NoError(t, err)
	b, err := builder.RandomTree(builder.WithSeed(42), builder.WithMaxDepth(4))
	require.NoError(t, err)
	assert.Equal(t, a.String(), b.String())
}

func TestRandomTree_ShapeInvariants(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		tr, err := builder.RandomTree(builder.WithSeed(seed), builder.WithMaxDepth(3), builder.WithFanOut(2, 4))
		require.NoError(t, err)
		assert.LessOrEqual(t, tr.Depth(), 3)

		activities := 0
		for id := 0; id < tr.Len(); id++ {
			n := tr.Node(id)
			switch n.Kind {
			case ptree.KindActivity:
				activities++
			case ptree.KindLoop:
				assert.Len(t, n.Children, 2)
			case ptree.KindSequence, ptree.KindXor, ptree.KindParallel:
				assert.GreaterOrEqual(t, len(n.Children), 2)
				assert.LessOrEqual(t, len(n.Children), 4)
			}
		}
		assert.Equal(t, activities, len(tr.Labels()), "labels must be pairwise distinct (seed %d)", seed)
	}
}

func TestRandomTree_SingleLeaf(t *testing.T) {
	tr, err := builder.RandomTree(builder.WithSeed(1), builder.WithMaxDepth(0), builder.WithTauProbability(0))
	require.NoError(t, err)
	assert.Equal(t, 1, tr.Len())
	assert.Equal(t, "'a'", tr.String())
}

func TestRandomTree_NeedsRNG(t *testing.T) {
	_, err := builder.RandomTree()
	assert.ErrorIs(t, err, builder.ErrNeedRandSource)
}

func TestRandomTrace_Operators(t *testing.T) {
	seq := ptree.MustParse("->( 'a', tau, 'b', 'c' )")
	w, err := builder.RandomTrace(seq, builder.WithSeed(3))
	require.NoError(t, err)
	assert.Equal(t, eventlog.Trace{"a", "b", "c"}, w)

	xor := ptree.MustParse("X( 'a', 'b' )")
	for seed := int64(0); seed < 10; seed++ {
		w, err = builder.RandomTrace(xor, builder.WithSeed(seed))
		require.NoError(t, err)
		require.Len(t, w, 1)
		assert.Contains(t, []string{"a", "b"}, w[0])
	}

	par := ptree.MustParse("+( ->( 'a', 'b' ), 'c' )")
	for seed := int64(0); seed < 10; seed++ {
		w, err = builder.RandomTrace(par, builder.WithSeed(seed))
		require.NoError(t, err)
		require.Len(t, w, 3)
		ia, ib := index(w, "a"), index(w, "b")
		assert.True(t, ia >= 0 && ib > ia, "sequence order kept inside parallel: %v", w)
		assert.GreaterOrEqual(t, index(w, "c"), 0)
	}

	loop := ptree.MustParse("*( 'a', 'b' )")
	w, err = builder.RandomTrace(loop, builder.WithSeed(1), builder.WithLoopRepeat(1, 2))
	require.NoError(t, err)
	assert.Equal(t, eventlog.Trace{"a", "b", "a", "b", "a"}, w)

	w, err = builder.RandomTrace(loop, builder.WithSeed(1), builder.WithLoopRepeat(0, 5))
	require.NoError(t, err)
	assert.Equal(t, eventlog.Trace{"a"}, w)
}

func TestRandomTrace_NoiseDeterministic(t *testing.T) {
	tr := ptree.MustParse("->( 'a', 'b', 'c', 'd', 'e', 'f' )")
	a, err := builder.RandomTrace(tr, builder.WithSeed(9), builder.WithNoise(0.5))
	require.NoError(t, err)
	b, err := builder.RandomTrace(tr, builder.WithSeed(9), builder.WithNoise(0.5))
	require.NoError(t, err)
	assert.Equal(t, a, b)

	labels := map[string]bool{"a": true, "b": true, "c": true, "d": true, "e": true, "f": true}
	for _, l := range a {
		assert.True(t, labels[l], "noise only uses tree labels, got %q", l)
	}
}

func TestRandomTrace_Errors(t *testing.T) {
	_, err := builder.RandomTrace(nil, builder.WithSeed(1))
	assert.ErrorIs(t, err, builder.ErrNilTree)

	_, err = builder.RandomTrace(ptree.MustParse("'a'"))
	assert.ErrorIs(t, err, builder.ErrNeedRandSource)

	_, err = builder.RandomLog(ptree.MustParse("'a'"), 3)
	assert.ErrorIs(t, err, builder.ErrNeedRandSource)
}

func TestRandomLog(t *testing.T) {
	tr := ptree.MustParse("X( 'a', 'b', 'c' )")
	a, err := builder.RandomLog(tr, 20, builder.WithSeed(5))
	require.NoError(t, err)
	b, err := builder.RandomLog(tr, 20, builder.WithSeed(5))
	require.NoError(t, err)
	assert.Len(t, a, 20)
	assert.Equal(t, a, b)
}

func TestOptionPanics(t *testing.T) {
	assert.Panics(t, func() { builder.WithNoise(1.5) })
	assert.Panics(t, func() { builder.WithNoise(-0.1) })
	assert.Panics(t, func() { builder.WithLeafProbability(2) })
	assert.Panics(t, func() { builder.WithLoopRepeat(0.5, -1) })
	assert.Panics(t, func() { builder.WithFanOut(3, 2) })
	assert.Panics(t, func() { builder.WithFanOut(0, 2) })
	assert.Panics(t, func() { builder.WithMaxDepth(-1) })
	assert.Panics(t, func() { builder.WithRand(nil) })
	assert.Panics(t, func() { builder.WithLabelScheme(nil) })
	assert.Panics(t, func() { builder.WithOperators() })
	assert.Panics(t, func() { builder.WithOperators("or") })
}

func index(w eventlog.Trace, label string) int {
	for i, l := range w {
		if l == label {
			return i
		}
	}
	return -1
}
