package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/ptalign/builder"
	"github.com/katalvlaran/ptalign/eventlog"
)

func newSampleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Generate random process trees and event logs",
	}
	cmd.AddCommand(newSampleTreeCmd(), newSampleLogCmd())

	return cmd
}

func newSampleTreeCmd() *cobra.Command {
	var (
		seed      int64
		depth     int
		minFanOut int
		maxFanOut int
		operators []string
	)

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print a random process tree with distinct labels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if depth < 0 || minFanOut < 1 || maxFanOut < minFanOut {
				return fmt.Errorf("invalid shape: depth %d, fan-out %d..%d", depth, minFanOut, maxFanOut)
			}
			if len(operators) == 0 {
				return fmt.Errorf("--operators needs at least one operator")
			}
			for _, op := range operators {
				switch op {
				case "sequence", "xor", "parallel", "loop":
				default:
					return fmt.Errorf("invalid --operators value %q", op)
				}
			}

			t, err := builder.RandomTree(
				builder.WithSeed(seed),
				builder.WithMaxDepth(depth),
				builder.WithFanOut(minFanOut, maxFanOut),
				builder.WithOperators(operators...),
			)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.String())

			return nil
		},
	}

	fs := cmd.Flags()
	fs.Int64Var(&seed, "seed", 1, "random seed")
	fs.IntVar(&depth, "depth", 3, "maximum depth")
	fs.IntVar(&minFanOut, "min-fan-out", 2, "minimum children of sequence, xor and parallel nodes")
	fs.IntVar(&maxFanOut, "max-fan-out", 3, "maximum children of sequence, xor and parallel nodes")
	fs.StringSliceVar(&operators, "operators", []string{"sequence", "xor", "parallel", "loop"}, "operators to draw from")

	return cmd
}

func newSampleLogCmd() *cobra.Command {
	var (
		tree   treeFlags
		seed   int64
		n      int
		noise  float64
		repeat float64
		rounds int
	)

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Print traces sampled from a tree, one per line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if n < 0 {
				return fmt.Errorf("invalid -n %d", n)
			}
			if noise < 0 || noise > 1 || repeat < 0 || repeat > 1 || rounds < 0 {
				return fmt.Errorf("invalid sampling parameters: noise %v, loop-repeat %v, loop-rounds %d", noise, repeat, rounds)
			}
			t, err := tree.load(cmd.InOrStdin())
			if err != nil {
				return err
			}

			log, err := builder.RandomLog(t, n,
				builder.WithSeed(seed),
				builder.WithNoise(noise),
				builder.WithLoopRepeat(repeat, rounds),
			)
			if err != nil {
				return err
			}

			w := bufio.NewWriter(cmd.OutOrStdout())
			for _, trace := range log {
				line := strings.Join(trace, " ")
				if len(trace) == 0 {
					line = eventlog.EmptyTraceMarker
				}
				fmt.Fprintln(w, line)
			}

			return w.Flush()
		},
	}

	tree.register(cmd)
	fs := cmd.Flags()
	fs.Int64Var(&seed, "seed", 1, "random seed")
	fs.IntVarP(&n, "traces", "n", 10, "number of traces")
	fs.Float64Var(&noise, "noise", 0, "per-event corruption probability")
	fs.Float64Var(&repeat, "loop-repeat", 0.4, "probability of another loop round")
	fs.IntVar(&rounds, "loop-rounds", 3, "maximum loop rounds")

	return cmd
}
