package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/ptalign/align"
	"github.com/katalvlaran/ptalign/cache"
	"github.com/katalvlaran/ptalign/eventlog"
)

type alignFlags struct {
	tree treeFlags
	log  logFlags

	workers       int
	cacheCapacity int
	strategy      string
	output        string
	metricsAddr   string
}

// variantReport is one row of the alignment report.
type variantReport struct {
	ID       string   `json:"id"`
	Trace    []string `json:"trace"`
	Count    int      `json:"count"`
	Cost     int      `json:"cost"`
	Duration string   `json:"duration"`
}

type statsReport struct {
	Hits      int64   `json:"cache_hits"`
	Misses    int64   `json:"cache_misses"`
	Evictions int64   `json:"cache_evictions"`
	Entries   int     `json:"cache_entries"`
	HitRate   float64 `json:"hit_rate"`
	Elapsed   string  `json:"elapsed"`
}

// report is the JSON document written by "ptalign align --output json".
type report struct {
	RunID     string          `json:"run_id"`
	Tree      string          `json:"tree"`
	Traces    int             `json:"traces"`
	Variants  []variantReport `json:"variants"`
	TotalCost int             `json:"total_cost"`
	Stats     statsReport     `json:"stats"`
}

func newAlignCmd(g *globalFlags) *cobra.Command {
	f := &alignFlags{}

	cmd := &cobra.Command{
		Use:   "align",
		Short: "Compute the alignment cost of every trace variant in a log",
		Long: `align reads an event log, groups identical traces into variants and
computes the optimal alignment cost of each variant against the tree.

Costs of variants are computed concurrently and share one cache, so
common segments are aligned once.`,
		Example: `  ptalign align --tree "->( 'a', X( 'b', 'c' ) )" --log traces.txt
  ptalign align --tree-file model.pt --log events.csv --format csv --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAlign(cmd.Context(), cmd, g.logger, f)
		},
	}

	f.tree.register(cmd)
	f.log.register(cmd)
	fs := cmd.Flags()
	fs.IntVar(&f.workers, "workers", align.DefaultOptions().Workers, "concurrent alignments")
	fs.IntVar(&f.cacheCapacity, "cache-capacity", 0, "per-node cache bound (LRU); 0 is unbounded")
	fs.StringVar(&f.strategy, "strategy", align.ShortestPath.String(), "split search for long sequences: shortest-path or exhaustive")
	fs.StringVar(&f.output, "output", "text", "output format: text or json")
	fs.StringVar(&f.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while aligning, e.g. :9090")

	return cmd
}

func runAlign(ctx context.Context, cmd *cobra.Command, logger *slog.Logger, f *alignFlags) error {
	// 1. Validate flags
	if f.workers < 1 {
		return fmt.Errorf("invalid --workers %d: need at least 1", f.workers)
	}
	if f.cacheCapacity < 0 {
		return fmt.Errorf("invalid --cache-capacity %d", f.cacheCapacity)
	}
	strategy, err := align.ParseStrategy(f.strategy)
	if err != nil {
		return err
	}
	if f.output != "text" && f.output != "json" {
		return fmt.Errorf("invalid --output %q: want text or json", f.output)
	}
	if f.tree.file == "-" && f.log.path == "-" {
		return errors.New("--tree-file and --log cannot both read stdin")
	}

	// 2. Inputs
	tree, err := f.tree.load(cmd.InOrStdin())
	if err != nil {
		return err
	}
	traces, err := f.log.load(cmd.InOrStdin())
	if err != nil {
		return err
	}
	variants := eventlog.Variants(traces)

	runID := uuid.NewString()
	logger = logger.With(slog.String("run_id", runID))
	logger.Info("alignment run started",
		slog.Int("nodes", tree.Len()),
		slog.Int("traces", len(traces)),
		slog.Int("variants", len(variants)),
	)

	// 3. Engine, with metrics when requested
	opts := []align.Option{
		align.WithWorkers(f.workers),
		align.WithCacheCapacity(f.cacheCapacity),
		align.WithSequenceStrategy(strategy),
		align.WithLogger(logger),
	}
	if f.metricsAddr != "" {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector())
		stop, err := serveMetrics(f.metricsAddr, reg, logger)
		if err != nil {
			return err
		}
		defer stop()
		opts = append(opts, align.WithRegisterer(reg))
	}
	engine, err := align.New(tree, opts...)
	if err != nil {
		return err
	}

	// 4. Align
	start := time.Now()
	results, err := engine.AlignAll(ctx, eventlog.Traces(variants))
	if err != nil {
		return err
	}

	rep := buildReport(runID, tree.String(), len(traces), variants, results, engine.Stats(), time.Since(start))
	logger.Info("alignment run finished",
		slog.Int("total_cost", rep.TotalCost),
		slog.String("elapsed", rep.Stats.Elapsed),
	)

	// 5. Output
	if f.output == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")

		return enc.Encode(rep)
	}

	return writeText(cmd.OutOrStdout(), rep)
}

func buildReport(runID, tree string, traces int, variants []eventlog.Variant, results []align.Result, stats cache.Stats, elapsed time.Duration) report {
	rep := report{
		RunID:    runID,
		Tree:     tree,
		Traces:   traces,
		Variants: make([]variantReport, len(variants)),
	}
	for i, v := range variants {
		r := results[i]
		rep.Variants[i] = variantReport{
			ID:       v.ID,
			Trace:    append([]string{}, v.Trace...),
			Count:    v.Count,
			Cost:     r.Cost,
			Duration: r.Duration.String(),
		}
		rep.TotalCost += r.Cost * v.Count
	}
	rep.Stats = statsReport{
		Hits:      stats.Hits,
		Misses:    stats.Misses,
		Evictions: stats.Evictions,
		Entries:   stats.Entries,
		HitRate:   stats.HitRate(),
		Elapsed:   elapsed.String(),
	}

	return rep
}

func writeText(w io.Writer, rep report) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCOUNT\tCOST\tDURATION\tTRACE")
	for _, v := range rep.Variants {
		trace := strings.Join(v.Trace, " ")
		if trace == "" {
			trace = eventlog.EmptyTraceMarker
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s\n", shortID(v.ID), v.Count, v.Cost, v.Duration, trace)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "total cost %d over %d traces (%d variants), cache hit rate %.2f\n",
		rep.TotalCost, rep.Traces, len(rep.Variants), rep.Stats.HitRate)

	return err
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}

	return id
}

// serveMetrics exposes reg on addr until the returned stop function is called.
func serveMetrics(addr string, reg *prometheus.Registry, logger *slog.Logger) (func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("metrics listener: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped", slog.Any("error", err))
		}
	}()
	logger.Info("serving metrics", slog.String("addr", ln.Addr().String()))

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, nil
}
