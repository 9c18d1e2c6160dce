package ptree

import (
	"context"
	"fmt"
)

// WalkOption configures Tree.Walk.
type WalkOption func(*WalkOptions)

// WalkOptions holds the hooks and limits of a depth-first walk.
type WalkOptions struct {
	// Ctx allows cancellation; defaults to context.Background().
	Ctx context.Context

	// OnVisit, if non-nil, is called when a node is entered (preorder).
	// Returning an error aborts the walk with that error.
	OnVisit func(n Node, depth int) error

	// OnExit, if non-nil, is called after all children of a node were
	// walked (post-order). Returning an error aborts the walk.
	OnExit func(n Node, depth int) error

	// MaxDepth, if non-negative, skips nodes deeper than the limit.
	// 0 visits only the root. Default -1 (no limit).
	MaxDepth int
}

// DefaultWalkOptions returns a background context, no hooks and no depth limit.
func DefaultWalkOptions() WalkOptions {
	return WalkOptions{Ctx: context.Background(), MaxDepth: -1}
}

// WithContext sets the walk context. A nil context is ignored.
func WithContext(ctx context.Context) WalkOption {
	return func(o *WalkOptions) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnVisit installs a preorder hook.
func WithOnVisit(fn func(n Node, depth int) error) WalkOption {
	return func(o *WalkOptions) { o.OnVisit = fn }
}

// WithOnExit installs a post-order hook.
func WithOnExit(fn func(n Node, depth int) error) WalkOption {
	return func(o *WalkOptions) { o.OnExit = fn }
}

// WithMaxDepth limits the walk to nodes at most limit edges below the root.
func WithMaxDepth(limit int) WalkOption {
	return func(o *WalkOptions) { o.MaxDepth = limit }
}

// Walk performs a depth-first traversal from the root, children left to right.
//
// Errors:
//   - ctx.Err() if the context is done before a node is entered.
//   - any error returned by OnVisit or OnExit, wrapped with the node id.
//
// Complexity: O(N) plus hook cost.
func (t *Tree) Walk(opts ...WalkOption) error {
	o := DefaultWalkOptions()
	for _, fn := range opts {
		fn(&o)
	}

	w := walker{tree: t, opts: o}

	return w.visit(t.root, 0)
}

// walker carries per-call walk state.
type walker struct {
	tree *Tree
	opts WalkOptions
}

func (w *walker) visit(id, depth int) error {
	// 1. Cancellation
	select {
	case <-w.opts.Ctx.Done():
		return w.opts.Ctx.Err()
	default:
	}

	// 2. Depth limit
	if w.opts.MaxDepth >= 0 && depth > w.opts.MaxDepth {
		return nil
	}

	n := w.tree.nodes[id]

	// 3. Preorder hook
	if w.opts.OnVisit != nil {
		if err := w.opts.OnVisit(n, depth); err != nil {
			return fmt.Errorf("ptree: OnVisit hook for node %d: %w", id, err)
		}
	}

	// 4. Children
	for _, c := range n.Children {
		if err := w.visit(c, depth+1); err != nil {
			return err
		}
	}

	// 5. Post-order hook
	if w.opts.OnExit != nil {
		if err := w.opts.OnExit(n, depth); err != nil {
			return fmt.Errorf("ptree: OnExit hook for node %d: %w", id, err)
		}
	}

	return nil
}
