package align_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/ptalign/align"
	"github.com/katalvlaran/ptalign/builder"
	"github.com/katalvlaran/ptalign/eventlog"
	"github.com/katalvlaran/ptalign/ptree"
)

func benchFixture(b *testing.B, fan int) (*ptree.Tree, []eventlog.Trace) {
	b.Helper()
	tr, err := builder.RandomTree(builder.WithSeed(1), builder.WithMaxDepth(3), builder.WithFanOut(fan, fan))
	if err != nil {
		b.Fatal(err)
	}
	log, err := builder.RandomLog(tr, 100, builder.WithSeed(2), builder.WithNoise(0.2), builder.WithLoopRepeat(0.3, 1))
	if err != nil {
		b.Fatal(err)
	}

	return tr, log
}

// BenchmarkAlign_Cold measures alignments against a fresh cache.
func BenchmarkAlign_Cold(b *testing.B) {
	tr, log := benchFixture(b, 3)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e, _ := align.New(tr)
		for _, w := range log {
			if _, err := e.Align(context.Background(), w); err != nil {
				b.Fatal(err)
			}
		}
	}
}

// BenchmarkAlign_Warm measures repeated alignments served from the cache.
func BenchmarkAlign_Warm(b *testing.B) {
	tr, log := benchFixture(b, 3)
	e, _ := align.New(tr)
	for _, w := range log {
		_, _ = e.Align(context.Background(), w)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = e.Align(context.Background(), log[i%len(log)])
	}
}

// BenchmarkAlignAll measures batch alignment with the default worker count.
func BenchmarkAlignAll(b *testing.B) {
	tr, log := benchFixture(b, 2)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e, _ := align.New(tr)
		if _, err := e.AlignAll(context.Background(), log); err != nil {
			b.Fatal(err)
		}
	}
}
