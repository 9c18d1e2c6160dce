package align

import (
	"context"
	"math"

	"github.com/katalvlaran/ptalign/letters"
	"github.com/katalvlaran/ptalign/segment"
)

// alignLoop aligns seq against r (q r)*.
//
// Implementation:
//   - Stage 1: block[i][j], i < j, is the cheapest alignment of seq[i:j]
//     against one redo-then-body round q r, over the cuts of segment.Binary
//     with r's letters on the right. block[i][i] = 0.
//   - Stage 2: close block under concatenation,
//     block[i][j] = min_k block[i][k] + block[k][j]. Rows are processed
//     bottom-up and columns left to right, so the first pass reaches the
//     closure and the second confirms it; at most n passes run.
//   - Stage 3: cost = min_i align(r, seq[:i]) + block[i][n].
//
// Complexity: O(n³) table work plus O(n²) block alignments.
func (e *Engine) alignLoop(ctx context.Context, body, redo int, seq []letters.Symbol) (int, error) {
	n := len(seq)
	if n == 0 {
		return e.align(ctx, body, nil)
	}

	t := newBlockTable(n)
	bodyLetters := e.index.Of(body)

	// Stage 1: single rounds.
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		for j := i + 1; j <= n; j++ {
			cost, err := e.alignRound(ctx, body, redo, bodyLetters, seq[i:j])
			if err != nil {
				return 0, err
			}
			t.set(i, j, cost)
		}
	}

	// Stage 2: closure.
	for pass := 0; pass < n; pass++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		if !t.relax() {
			break
		}
	}

	// Stage 3: leading body segment.
	best := math.MaxInt
	for i := 0; i <= n; i++ {
		rest := t.get(i, n)
		if rest >= best {
			continue
		}
		head, err := e.align(ctx, body, seq[:i])
		if err != nil {
			return 0, err
		}
		if head+rest < best {
			best = head + rest
		}
		if best == 0 {
			break
		}
	}

	return best, nil
}

// alignRound aligns sub against one round q r.
func (e *Engine) alignRound(ctx context.Context, body, redo int, bodyLetters letters.Set, sub []letters.Symbol) (int, error) {
	best := math.MaxInt
	for _, s := range segment.Binary(sub, bodyLetters) {
		qc, err := e.align(ctx, redo, sub[:s])
		if err != nil {
			return 0, err
		}
		if qc >= best {
			continue
		}
		rc, err := e.align(ctx, body, sub[s:])
		if err != nil {
			return 0, err
		}
		if qc+rc < best {
			best = qc + rc
		}
		if best == 0 {
			break
		}
	}

	return best, nil
}

// blockTable is the (n+1) x (n+1) upper-triangular table of round costs,
// stored row-major in one slice.
type blockTable struct {
	n     int
	cells []int
}

func newBlockTable(n int) *blockTable {
	return &blockTable{n: n, cells: make([]int, (n+1)*(n+1))}
}

func (t *blockTable) get(i, j int) int { return t.cells[i*(t.n+1)+j] }

func (t *blockTable) set(i, j, v int) { t.cells[i*(t.n+1)+j] = v }

// relax runs one concatenation pass and reports whether any cell improved.
func (t *blockTable) relax() bool {
	changed := false
	for i := t.n - 1; i >= 0; i-- {
		for j := i + 2; j <= t.n; j++ {
			cur := t.get(i, j)
			if cur == 0 {
				continue
			}
			for k := i + 1; k < j; k++ {
				if v := t.get(i, k) + t.get(k, j); v < cur {
					cur = v
					changed = true
				}
			}
			t.set(i, j, cur)
		}
	}

	return changed
}
