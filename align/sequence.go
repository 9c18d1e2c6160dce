package align

import (
	"container/heap"
	"context"
	"math"

	"github.com/katalvlaran/ptalign/letters"
	"github.com/katalvlaran/ptalign/segment"
)

// alignSequence splits seq into one consecutive segment per child.
//
//   - empty trace: every child aligns the empty trace.
//   - one child:   delegate.
//   - two children: try the cuts of segment.Binary.
//   - more:        shortest path (or exhaustive compositions).
func (e *Engine) alignSequence(ctx context.Context, children []int, seq []letters.Symbol) (int, error) {
	if len(seq) == 0 {
		total := 0
		for _, c := range children {
			cost, err := e.align(ctx, c, nil)
			if err != nil {
				return 0, err
			}
			total += cost
		}

		return total, nil
	}

	switch len(children) {
	case 1:
		return e.align(ctx, children[0], seq)
	case 2:
		return e.alignBinarySequence(ctx, children[0], children[1], seq)
	}

	if e.opts.Strategy == Exhaustive {
		return e.alignCompositions(ctx, children, seq)
	}
	r := partitionRunner{
		engine:   e,
		ctx:      ctx,
		children: children,
		seq:      seq,
	}

	return r.run()
}

// alignBinarySequence returns min over cuts s of left(seq[:s]) + right(seq[s:]).
func (e *Engine) alignBinarySequence(ctx context.Context, left, right int, seq []letters.Symbol) (int, error) {
	best := math.MaxInt
	for _, s := range segment.Binary(seq, e.index.Of(right)) {
		lc, err := e.align(ctx, left, seq[:s])
		if err != nil {
			return 0, err
		}
		if lc >= best {
			continue
		}
		rc, err := e.align(ctx, right, seq[s:])
		if err != nil {
			return 0, err
		}
		if lc+rc < best {
			best = lc + rc
		}
		if best == 0 {
			break
		}
	}

	return best, nil
}

// alignCompositions tries every split of seq into len(children) segments.
func (e *Engine) alignCompositions(ctx context.Context, children []int, seq []letters.Symbol) (int, error) {
	best := math.MaxInt
	for _, parts := range segment.Compositions(len(seq), len(children)) {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		total, pos := 0, 0
		for i, size := range parts {
			cost, err := e.align(ctx, children[i], seq[pos:pos+size])
			if err != nil {
				return 0, err
			}
			total += cost
			pos += size
			if total >= best {
				break
			}
		}
		if total < best {
			best = total
		}
		if best == 0 {
			break
		}
	}

	return best, nil
}

// partitionRunner holds the state of one shortest-path split search.
//
// Vertex (i, j) means "the first i children consumed seq[:j]". Only (0, 0),
// the inner layers 0 < i < k, and (k, n) exist. The edge (i, j) -> (i+1, m)
// for m >= j costs align(child i, seq[j:m]); the last layer only reaches
// m = n. An edge is skipped when m < n-1 and seq[m] belongs to child i's
// letter set: extending the segment by that event is never worse.
type partitionRunner struct {
	engine   *Engine
	ctx      context.Context
	children []int
	seq      []letters.Symbol

	width   int    // n+1 columns per layer
	dist    []int  // flattened (k+1) x (n+1) distances
	visited []bool // finalized vertices
	pq      vertexPQ
}

func (r *partitionRunner) run() (int, error) {
	k, n := len(r.children), len(r.seq)
	r.width = n + 1
	r.dist = make([]int, (k+1)*r.width)
	r.visited = make([]bool, len(r.dist))
	for i := range r.dist {
		r.dist[i] = math.MaxInt
	}
	target := k*r.width + n

	// 1) Source (0, 0) at distance 0.
	r.dist[0] = 0
	heap.Push(&r.pq, vertexItem{v: 0, dist: 0})

	for r.pq.Len() > 0 {
		if err := r.ctx.Err(); err != nil {
			return 0, err
		}

		// 2) Pop; skip stale entries.
		item := heap.Pop(&r.pq).(vertexItem)
		if r.visited[item.v] {
			continue
		}
		r.visited[item.v] = true

		// 3) The target's distance is final once popped.
		if item.v == target {
			return item.dist, nil
		}

		// 4) Relax outgoing edges.
		if err := r.relax(item.v/r.width, item.v%r.width, item.dist); err != nil {
			return 0, err
		}
	}

	// Unreachable: the edge (i, j) -> (i+1, n) is never pruned.
	return r.dist[target], nil
}

func (r *partitionRunner) relax(i, j, d int) error {
	k, n := len(r.children), len(r.seq)
	child := r.children[i]
	own := r.engine.index.Of(child)

	for m := j; m <= n; m++ {
		if i == k-1 && m < n {
			continue
		}
		if m < n-1 && own.Has(r.seq[m]) {
			continue
		}
		v := (i+1)*r.width + m
		if r.visited[v] {
			continue
		}
		w, err := r.engine.align(r.ctx, child, r.seq[j:m])
		if err != nil {
			return err
		}
		if nd := d + w; nd < r.dist[v] {
			r.dist[v] = nd
			heap.Push(&r.pq, vertexItem{v: v, dist: nd})
		}
	}

	return nil
}

// vertexItem is a heap entry: flattened vertex index and tentative distance.
type vertexItem struct {
	v    int
	dist int
}

// vertexPQ is a min-heap of vertexItem ordered by dist, used with lazy
// decrease-key: improved distances are pushed again and stale entries are
// skipped on pop.
type vertexPQ []vertexItem

func (pq vertexPQ) Len() int           { return len(pq) }
func (pq vertexPQ) Less(i, j int) bool { return pq[i].dist < pq[j].dist }
func (pq vertexPQ) Swap(i, j int)      { pq[i], pq[j] = pq[j], pq[i] }

func (pq *vertexPQ) Push(x any) { *pq = append(*pq, x.(vertexItem)) }

func (pq *vertexPQ) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
