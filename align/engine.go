package align

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/katalvlaran/ptalign/cache"
	"github.com/katalvlaran/ptalign/letters"
	"github.com/katalvlaran/ptalign/ptree"
)

// Engine aligns traces against one process tree.
//
// The tree, alphabet and letter-set index are read-only after New; the
// cache is the only shared mutable state. An Engine is safe for concurrent
// use.
type Engine struct {
	tree     *ptree.Tree
	alphabet *letters.Alphabet
	index    *letters.Index
	cache    *cache.Cache
	opts     Options
	log      *slog.Logger
	metrics  *engineMetrics
}

// New prepares an engine for t: it interns the tree's labels, builds the
// letter-set index and an empty cache.
//
// Errors: ErrNilTree, ErrTreeTooDeep, or a metrics registration failure.
func New(t *ptree.Tree, opts ...Option) (*Engine, error) {
	// 1. Validate input tree
	if t == nil {
		return nil, ErrNilTree
	}

	// 2. Apply options
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	// 3. Depth guard
	if t.Depth() > o.MaxDepth {
		return nil, fmt.Errorf("%w: depth %d > %d", ErrTreeTooDeep, t.Depth(), o.MaxDepth)
	}

	// 4. Metrics (optional)
	em, cm, err := newMetrics(o.Registerer)
	if err != nil {
		return nil, err
	}

	// 5. Letter sets and cache
	a := letters.NewAlphabet()
	e := &Engine{
		tree:     t,
		alphabet: a,
		index:    letters.Build(t, a),
		cache:    cache.New(t.Len(), cache.WithCapacity(o.CacheCapacity), cache.WithMetrics(cm)),
		opts:     o,
		log:      o.Logger,
		metrics:  em,
	}
	e.log.Debug("alignment engine ready",
		slog.Int("nodes", t.Len()),
		slog.Int("depth", t.Depth()),
		slog.Int("labels", a.Len()),
		slog.String("strategy", o.Strategy.String()),
	)

	return e, nil
}

// Align returns the optimal alignment cost of trace against the tree.
//
// Labels absent from the tree are legal: they can only be log moves. They
// are encoded as letters.Foreign and never added to the alphabet, so they
// share cache entries and do not grow the engine.
// Repeated calls with equal traces are answered from the cache.
//
// Errors: ctx.Err() when cancelled, or a structural error naming the node.
// No partial result is ever cached.
func (e *Engine) Align(ctx context.Context, trace []string) (int, error) {
	start := time.Now()
	seq := e.alphabet.EncodeKnown(trace)

	cost, err := e.align(ctx, e.tree.Root(), seq)
	elapsed := time.Since(start)
	e.metrics.observe(elapsed, err)
	if err != nil {
		e.log.Warn("alignment failed",
			slog.Int("trace_len", len(trace)),
			slog.Any("error", err),
		)

		return 0, err
	}

	e.log.Debug("alignment done",
		slog.Int("trace_len", len(trace)),
		slog.Int("cost", cost),
		slog.Duration("duration", elapsed),
	)

	return cost, nil
}

// Tree returns the aligned tree.
func (e *Engine) Tree() *ptree.Tree { return e.tree }

// Alphabet returns the engine's label interning table.
func (e *Engine) Alphabet() *letters.Alphabet { return e.alphabet }

// Index returns the letter-set index of the tree.
func (e *Engine) Index() *letters.Index { return e.index }

// Stats returns a snapshot of the cache counters.
func (e *Engine) Stats() cache.Stats { return e.cache.Stats() }

// Reset discards every cached cost. It must not run concurrently with Align.
func (e *Engine) Reset() { e.cache.Reset() }

// align is the memoised recursive cost function.
func (e *Engine) align(ctx context.Context, id int, seq []letters.Symbol) (int, error) {
	return e.cache.Do(ctx, id, letters.Key(seq), func() (int, error) {
		return e.compute(ctx, id, seq)
	})
}

// compute dispatches on the node kind.
func (e *Engine) compute(ctx context.Context, id int, seq []letters.Symbol) (int, error) {
	n := e.tree.Node(id)
	switch n.Kind {
	case ptree.KindSilent:
		return len(seq), nil
	case ptree.KindActivity:
		return e.alignActivity(id, seq), nil
	case ptree.KindXor:
		return e.alignXor(ctx, n.Children, seq)
	case ptree.KindParallel:
		return e.alignParallel(ctx, id, n.Children, seq)
	case ptree.KindSequence:
		return e.alignSequence(ctx, n.Children, seq)
	case ptree.KindLoop:
		if len(n.Children) != 2 {
			return 0, fmt.Errorf("node %d: %w", id, ptree.ErrMalformedLoop)
		}
		return e.alignLoop(ctx, n.Children[0], n.Children[1], seq)
	default:
		return 0, fmt.Errorf("node %d: %w: %s", id, ptree.ErrUnsupportedOperator, n.Kind)
	}
}

// alignActivity: one model move for the empty trace; otherwise every event
// but one matching event is a log move, or all events plus one model move.
func (e *Engine) alignActivity(id int, seq []letters.Symbol) int {
	if len(seq) == 0 {
		return 1
	}
	sym, _ := e.index.Symbol(id)
	for _, s := range seq {
		if s == sym {
			return len(seq) - 1
		}
	}

	return len(seq) + 1
}

func (e *Engine) alignXor(ctx context.Context, children []int, seq []letters.Symbol) (int, error) {
	best := -1
	for _, c := range children {
		cost, err := e.align(ctx, c, seq)
		if err != nil {
			return 0, err
		}
		if best < 0 || cost < best {
			best = cost
		}
		if best == 0 {
			break
		}
	}

	return best, nil
}

// alignParallel hands every child the projection of seq onto its letter
// set. Events no child can emit are log moves. With overlapping child
// alphabets an event goes to every child owning it and is never counted as
// unmatched, so the cost stays non-negative.
func (e *Engine) alignParallel(ctx context.Context, id int, children []int, seq []letters.Symbol) (int, error) {
	total := len(seq) - len(e.index.Project(id, seq))
	for _, c := range children {
		cost, err := e.align(ctx, c, e.index.Project(c, seq))
		if err != nil {
			return 0, err
		}
		total += cost
	}

	return total, nil
}
