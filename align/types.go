// Package align defines the alignment engine's options, result types and
// sentinel errors.
//
// Errors (sentinel):
//
//	ErrNilTree     - New was called with a nil tree.
//	ErrTreeTooDeep - the tree is deeper than Options.MaxDepth.
//
// Structural errors from the tree (ptree.ErrUnsupportedOperator,
// ptree.ErrMalformedLoop) are wrapped with the offending node id.
package align

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Sentinel errors returned by the engine.
var (
	// ErrNilTree indicates that a nil *ptree.Tree was passed to New.
	ErrNilTree = errors.New("align: tree is nil")

	// ErrTreeTooDeep indicates that the tree exceeds the configured recursion depth.
	ErrTreeTooDeep = errors.New("align: tree exceeds maximum depth")
)

// DefaultMaxDepth bounds the recursion depth of an alignment.
const DefaultMaxDepth = 10000

// Strategy selects how sequences of more than two children are split.
type Strategy int

const (
	// ShortestPath searches the layered split graph with Dijkstra's algorithm.
	ShortestPath Strategy = iota

	// Exhaustive tries every composition of the trace length into one part
	// per child. Exponential; useful to cross-check ShortestPath.
	Exhaustive
)

// String returns "shortest-path" or "exhaustive".
func (s Strategy) String() string {
	switch s {
	case ShortestPath:
		return "shortest-path"
	case Exhaustive:
		return "exhaustive"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// ParseStrategy maps the names returned by Strategy.String back to values.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "", "shortest-path":
		return ShortestPath, nil
	case "exhaustive":
		return Exhaustive, nil
	default:
		return 0, fmt.Errorf("align: unknown sequence strategy %q", name)
	}
}

// Options configures an Engine.
//
// Workers        – goroutines used by AlignAll. Default runtime.GOMAXPROCS(0).
// MaxDepth       – trees deeper than this are rejected by New. Default DefaultMaxDepth.
// CacheCapacity  – per-node cache bound (LRU); 0 is unbounded. Default 0.
// Strategy       – split search for sequences with more than two children.
// Logger         – structured logger; default discards.
// Registerer     – Prometheus registerer for engine and cache metrics; nil disables them.
type Options struct {
	Workers       int
	MaxDepth      int
	CacheCapacity int
	Strategy      Strategy
	Logger        *slog.Logger
	Registerer    prometheus.Registerer
}

// Option represents a functional option for configuring an Engine.
type Option func(*Options)

// DefaultOptions returns the defaults documented on Options.
func DefaultOptions() Options {
	return Options{
		Workers:       runtime.GOMAXPROCS(0),
		MaxDepth:      DefaultMaxDepth,
		CacheCapacity: 0,
		Strategy:      ShortestPath,
		Logger:        slog.New(slog.DiscardHandler),
		Registerer:    nil,
	}
}

// WithWorkers sets the AlignAll concurrency. Panics if n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic(fmt.Sprintf("align: WithWorkers(%d): need at least one worker", n))
	}

	return func(o *Options) { o.Workers = n }
}

// WithMaxDepth sets the maximum accepted tree depth. Panics if d < 1.
func WithMaxDepth(d int) Option {
	if d < 1 {
		panic(fmt.Sprintf("align: WithMaxDepth(%d): depth must be positive", d))
	}

	return func(o *Options) { o.MaxDepth = d }
}

// WithCacheCapacity bounds every per-node cache table. 0 means unbounded.
// Panics if n < 0.
func WithCacheCapacity(n int) Option {
	if n < 0 {
		panic(fmt.Sprintf("align: WithCacheCapacity(%d): capacity must be >= 0", n))
	}

	return func(o *Options) { o.CacheCapacity = n }
}

// WithSequenceStrategy selects the split search for long sequences.
// Panics on unknown values.
func WithSequenceStrategy(s Strategy) Option {
	if s != ShortestPath && s != Exhaustive {
		panic(fmt.Sprintf("align: WithSequenceStrategy: unknown %s", s))
	}

	return func(o *Options) { o.Strategy = s }
}

// WithLogger sets the engine logger. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithRegisterer enables Prometheus metrics on reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *Options) { o.Registerer = reg }
}

// Result is the outcome of aligning one trace in a batch.
type Result struct {
	Index    int           // position of the trace in the input
	Cost     int           // optimal alignment cost
	Duration time.Duration // wall time of this alignment
}
