package segment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/ptalign/letters"
	"github.com/katalvlaran/ptalign/segment"
)

func syms(v ...int) []letters.Symbol {
	out := make([]letters.Symbol, len(v))
	for i, x := range v {
		out[i] = letters.Symbol(x)
	}
	return out
}

func TestBinary(t *testing.T) {
	const a, b, c = 0, 1, 2

	cases := []struct {
		name  string
		seq   []letters.Symbol
		right letters.Set
		want  []int
	}{
		{"empty", nil, letters.NewSet(a), []int{0}},
		{"single in right", syms(a), letters.NewSet(a), []int{0, 1}},
		{"single not in right", syms(b), letters.NewSet(a), []int{0, 1}},
		{"runs of b", syms(a, b, a, b, c), letters.NewSet(b), []int{0, 5, 1, 3}},
		{"run of a", syms(a, b, a, b, c), letters.NewSet(a), []int{0, 5, 2}},
		{"long run counted once", syms(c, b, b, b), letters.NewSet(b), []int{0, 4, 1}},
		{"empty right set", syms(a, b, c), letters.Set{}, []int{0, 3}},
		{"everything in right", syms(a, b, c), letters.NewSet(a, b, c), []int{0, 3}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, segment.Binary(tc.seq, tc.right))
		})
	}
}

func TestCompositions(t *testing.T) {
	assert.Nil(t, segment.Compositions(3, 0))
	assert.Nil(t, segment.Compositions(-1, 2))
	assert.Equal(t, [][]int{{4}}, segment.Compositions(4, 1))
	assert.Equal(t, [][]int{{0, 0, 0}}, segment.Compositions(0, 3))
	assert.Equal(t, [][]int{
		{0, 0, 2}, {0, 1, 1}, {0, 2, 0},
		{1, 0, 1}, {1, 1, 0},
		{2, 0, 0},
	}, segment.Compositions(2, 3))
}

func TestCompositions_CountAndSum(t *testing.T) {
	// C(n+k-1, k-1) for n=5, k=4 is C(8,3) = 56.
	comps := segment.Compositions(5, 4)
	assert.Len(t, comps, 56)
	for _, c := range comps {
		sum := 0
		for _, v := range c {
			assert.GreaterOrEqual(t, v, 0)
			sum += v
		}
		assert.Equal(t, 5, sum)
	}
}
