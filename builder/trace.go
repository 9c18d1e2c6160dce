// SPDX-License-Identifier: MIT
// Package: ptalign/builder
//
// trace.go: RandomTrace / RandomLog: words sampled from a tree's language,
// optionally corrupted by per-event noise.

package builder

import (
	"fmt"

	"github.com/katalvlaran/ptalign/eventlog"
	"github.com/katalvlaran/ptalign/ptree"
)

// RandomTrace samples one word of t's language:
//
//   - activity: its label; tau: nothing.
//   - sequence: children in order.
//   - xor:      one child, uniformly.
//   - parallel: a uniformly random interleaving of the children's words.
//   - loop:     body, then (redo, body) repeated while a loopRepeat coin
//     succeeds, at most maxRounds times.
//
// With WithNoise(p), each event is then, with probability p, deleted,
// duplicated as a random tree label inserted before it, or swapped with its
// successor.
//
// Errors: ErrNilTree, ErrNeedRandSource.
func RandomTrace(t *ptree.Tree, opts ...BuilderOption) (eventlog.Trace, error) {
	if t == nil {
		return nil, fmt.Errorf("RandomTrace: %w", ErrNilTree)
	}
	cfg := newBuilderConfig(opts...)
	if cfg.rng == nil {
		return nil, fmt.Errorf("RandomTrace: %w", ErrNeedRandSource)
	}

	s := sampler{cfg: cfg, tree: t}

	return s.noisy(s.word(t.Root())), nil
}

// RandomLog samples n traces with one shared RNG, so the whole log is
// reproducible from a single seed.
func RandomLog(t *ptree.Tree, n int, opts ...BuilderOption) ([]eventlog.Trace, error) {
	if t == nil {
		return nil, fmt.Errorf("RandomLog: %w", ErrNilTree)
	}
	cfg := newBuilderConfig(opts...)
	if cfg.rng == nil {
		return nil, fmt.Errorf("RandomLog: %w", ErrNeedRandSource)
	}

	s := sampler{cfg: cfg, tree: t}
	out := make([]eventlog.Trace, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, s.noisy(s.word(t.Root())))
	}

	return out, nil
}

type sampler struct {
	cfg    builderConfig
	tree   *ptree.Tree
	labels []string // lazily filled for noise insertions
}

func (s *sampler) word(id int) eventlog.Trace {
	n := s.tree.Node(id)
	rng := s.cfg.rng

	switch n.Kind {
	case ptree.KindActivity:
		return eventlog.Trace{n.Label}
	case ptree.KindSilent:
		return nil
	case ptree.KindXor:
		return s.word(n.Children[rng.Intn(len(n.Children))])
	case ptree.KindParallel:
		parts := make([]eventlog.Trace, len(n.Children))
		for i, c := range n.Children {
			parts[i] = s.word(c)
		}
		return s.interleave(parts)
	case ptree.KindLoop:
		out := s.word(n.Children[0])
		for round := 0; round < s.cfg.maxRounds && rng.Float64() < s.cfg.loopRepeat; round++ {
			out = append(out, s.word(n.Children[1])...)
			out = append(out, s.word(n.Children[0])...)
		}
		return out
	default:
		var out eventlog.Trace
		for _, c := range n.Children {
			out = append(out, s.word(c)...)
		}
		return out
	}
}

// interleave merges parts by repeatedly drawing the next event from a part
// chosen with probability proportional to its remaining length, which makes
// every interleaving equally likely.
func (s *sampler) interleave(parts []eventlog.Trace) eventlog.Trace {
	remaining := 0
	for _, p := range parts {
		remaining += len(p)
	}
	out := make(eventlog.Trace, 0, remaining)
	pos := make([]int, len(parts))
	for remaining > 0 {
		r := s.cfg.rng.Intn(remaining)
		for i, p := range parts {
			left := len(p) - pos[i]
			if r < left {
				out = append(out, p[pos[i]])
				pos[i]++
				break
			}
			r -= left
		}
		remaining--
	}

	return out
}

func (s *sampler) noisy(w eventlog.Trace) eventlog.Trace {
	if s.cfg.noise == 0 {
		return w
	}
	rng := s.cfg.rng
	out := make(eventlog.Trace, 0, len(w)+len(w)/2)
	for i := 0; i < len(w); i++ {
		if rng.Float64() >= s.cfg.noise {
			out = append(out, w[i])
			continue
		}
		switch rng.Intn(3) {
		case 0: // delete
		case 1: // insert a random label before the event
			if l := s.randomLabel(); l != "" {
				out = append(out, l)
			}
			out = append(out, w[i])
		default: // swap with the successor
			if i+1 < len(w) {
				out = append(out, w[i+1], w[i])
				i++
			} else {
				out = append(out, w[i])
			}
		}
	}

	return out
}

func (s *sampler) randomLabel() string {
	if s.labels == nil {
		s.labels = s.tree.Labels()
	}
	if len(s.labels) == 0 {
		return ""
	}

	return s.labels[s.cfg.rng.Intn(len(s.labels))]
}
