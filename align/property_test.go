package align_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ptalign/align"
	"github.com/katalvlaran/ptalign/builder"
	"github.com/katalvlaran/ptalign/ptree"
)

// randomTree returns a seeded tree with pairwise-disjoint labels.
func randomTree(t *testing.T, seed int64, opts ...builder.BuilderOption) *ptree.Tree {
	t.Helper()
	tr, err := builder.RandomTree(append([]builder.BuilderOption{builder.WithSeed(seed)}, opts...)...)
	require.NoError(t, err)
	return tr
}

func TestProperty_LanguageWordsCostZero(t *testing.T) {
	for seed := int64(0); seed < 40; seed++ {
		tr := randomTree(t, seed, builder.WithMaxDepth(3), builder.WithFanOut(2, 2))
		e, err := align.New(tr)
		require.NoError(t, err)

		log, err := builder.RandomLog(tr, 5, builder.WithSeed(seed+1000), builder.WithLoopRepeat(0.5, 2))
		require.NoError(t, err)
		for _, w := range log {
			assert.Equal(t, 0, mustCost(t, e, w...), "seed %d tree %s word %v", seed, tr, w)
		}
	}
}

func TestProperty_StrategiesAgree(t *testing.T) {
	for seed := int64(0); seed < 30; seed++ {
		tr := randomTree(t, seed, builder.WithMaxDepth(2), builder.WithFanOut(3, 3))
		fast, err := align.New(tr)
		require.NoError(t, err)
		slow, err := align.New(tr, align.WithSequenceStrategy(align.Exhaustive))
		require.NoError(t, err)

		log, err := builder.RandomLog(tr, 3,
			builder.WithSeed(seed+2000),
			builder.WithNoise(0.3),
			builder.WithLoopRepeat(0.5, 1),
		)
		require.NoError(t, err)
		for _, w := range log {
			assert.Equal(t, mustCost(t, slow, w...), mustCost(t, fast, w...), "seed %d tree %s trace %v", seed, tr, w)
		}
	}
}

func TestProperty_Bounds(t *testing.T) {
	for seed := int64(0); seed < 30; seed++ {
		tr := randomTree(t, seed, builder.WithMaxDepth(3), builder.WithFanOut(2, 2), builder.WithTauProbability(0))
		e, err := align.New(tr)
		require.NoError(t, err)
		empty := mustCost(t, e)
		label := tr.Labels()[0]

		log, err := builder.RandomLog(tr, 4,
			builder.WithSeed(seed+3000),
			builder.WithNoise(0.4),
			builder.WithLoopRepeat(0.4, 1),
		)
		require.NoError(t, err)
		for _, w := range log {
			c := mustCost(t, e, w...)
			assert.GreaterOrEqual(t, c, 0)
			assert.LessOrEqual(t, c, len(w)+empty, "every event as a log move is an upper bound")

			// A label the tree cannot emit is exactly one more log move.
			assert.Equal(t, c+1, mustCost(t, e, append(w[:len(w):len(w)], "foreign")...))

			// One more event moves the optimum by at most one.
			d := mustCost(t, e, append(w[:len(w):len(w)], label)...)
			assert.LessOrEqual(t, d, c+1)
			assert.GreaterOrEqual(t, d, c-1)
		}
	}
}

func TestProperty_ZeroIterationsBoundLoop(t *testing.T) {
	tr := ptree.MustParse("*( ->( 'a', 'b' ), X( 'c', 'd' ) )")
	loop, err := align.New(tr)
	require.NoError(t, err)
	body := mustEngine(t, "->( 'a', 'b' )")

	log, err := builder.RandomLog(tr, 50, builder.WithSeed(11), builder.WithNoise(0.3), builder.WithLoopRepeat(0.6, 3))
	require.NoError(t, err)
	for _, w := range log {
		assert.LessOrEqual(t, mustCost(t, loop, w...), mustCost(t, body, w...), "trace %v", w)
	}
}

func TestProperty_ConcurrentEqualsSequential(t *testing.T) {
	tr := randomTree(t, 5, builder.WithMaxDepth(2), builder.WithFanOut(2, 4))
	log, err := builder.RandomLog(tr, 200, builder.WithSeed(6), builder.WithNoise(0.2), builder.WithLoopRepeat(0.4, 1))
	require.NoError(t, err)

	seq, err := align.New(tr)
	require.NoError(t, err)
	want := make([]int, len(log))
	for i, w := range log {
		want[i] = mustCost(t, seq, w...)
	}

	par, err := align.New(tr, align.WithWorkers(8))
	require.NoError(t, err)
	results, err := par.AlignAll(context.Background(), log)
	require.NoError(t, err)
	require.Len(t, results, len(log))
	for i, r := range results {
		assert.Equal(t, i, r.Index)
		assert.Equal(t, want[i], r.Cost, "trace %d", i)
	}
}
