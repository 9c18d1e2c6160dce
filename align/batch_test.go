package align_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ptalign/align"
	"github.com/katalvlaran/ptalign/eventlog"
)

func TestAlignAll(t *testing.T) {
	e := mustEngine(t, "->( 'a', X( 'b', 'c' ), 'd' )", align.WithWorkers(3))
	traces := []eventlog.Trace{
		{"a", "b", "d"},
		{"a", "c", "d"},
		{"a", "d"},
		{},
		{"d", "a"},
		{"a", "b", "d"},
	}

	results, err := e.AlignAll(context.Background(), traces)
	require.NoError(t, err)
	require.Len(t, results, len(traces))

	want := []int{0, 0, 1, 3, 3, 0}
	for i, r := range results {
		assert.Equal(t, i, r.Index)
		assert.Equal(t, want[i], r.Cost, "trace %v", traces[i])
	}
}

func TestAlignAll_Empty(t *testing.T) {
	e := mustEngine(t, "'a'")
	results, err := e.AlignAll(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestAlignAll_Cancelled(t *testing.T) {
	e := mustEngine(t, "*( 'a', 'b' )")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := e.AlignAll(ctx, []eventlog.Trace{{"a", "b", "a"}, {"b"}})
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorContains(t, err, "trace ")
	assert.Nil(t, results)
}
