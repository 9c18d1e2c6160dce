package align

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/ptalign/eventlog"
)

// AlignAll aligns every trace concurrently against the tree, sharing the
// cache, with at most Options.Workers alignments in flight.
//
// Results are returned in input order. The first failure cancels the
// remaining work and is returned wrapped with the index of its trace; no
// partial results are returned in that case.
func (e *Engine) AlignAll(ctx context.Context, traces []eventlog.Trace) ([]Result, error) {
	results := make([]Result, len(traces))
	if len(traces) == 0 {
		return results, nil
	}

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.Workers)
	for i := range traces {
		g.Go(func() error {
			t0 := time.Now()
			cost, err := e.Align(gctx, traces[i])
			if err != nil {
				return fmt.Errorf("trace %d: %w", i, err)
			}
			results[i] = Result{Index: i, Cost: cost, Duration: time.Since(t0)}

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	e.log.Info("batch aligned",
		slog.Int("traces", len(traces)),
		slog.Int("workers", e.opts.Workers),
		slog.Duration("duration", time.Since(start)),
		slog.Int("cache_entries", e.cache.Len()),
	)

	return results, nil
}
