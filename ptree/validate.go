package ptree

import "fmt"

// FromNodes builds a Tree from caller-assigned nodes.
//
// Ids must be dense: every id lies in [0, len(nodes)) and appears exactly
// once, so that id-indexed side tables (letter sets, cache tables) can be
// plain slices. The order of nodes in the input is irrelevant; ids need not
// follow preorder.
//
// Implementation:
//   - Stage 1: place every node into the arena by id (range and duplicate checks).
//   - Stage 2: check node shapes and record one parent per child.
//   - Stage 3: require every node to be reachable from root.
//
// Errors: ErrIDOutOfRange, ErrDuplicateID, ErrUnsupportedOperator,
// ErrLeafChildren, ErrEmptyOperator, ErrMalformedLoop, ErrSharedNode,
// ErrUnreachableNode. Each is wrapped with the offending id.
//
// Complexity: O(N) time and memory.
func FromNodes(nodes []Node, root int) (*Tree, error) {
	n := len(nodes)
	if root < 0 || root >= n {
		return nil, fmt.Errorf("root %d: %w", root, ErrIDOutOfRange)
	}

	// Stage 1: arena placement. Children slices are copied so the caller
	// cannot mutate the tree afterwards.
	arena := make([]Node, n)
	placed := make([]bool, n)
	for _, nd := range nodes {
		if nd.ID < 0 || nd.ID >= n {
			return nil, fmt.Errorf("node %d: %w", nd.ID, ErrIDOutOfRange)
		}
		if placed[nd.ID] {
			return nil, fmt.Errorf("node %d: %w", nd.ID, ErrDuplicateID)
		}
		placed[nd.ID] = true
		if len(nd.Children) > 0 {
			nd.Children = append([]int(nil), nd.Children...)
		} else {
			nd.Children = nil
		}
		arena[nd.ID] = nd
	}

	// Stage 2: shapes and parent links.
	parent := make([]int, n)
	for i := range parent {
		parent[i] = -1
	}
	for id := range arena {
		nd := &arena[id]
		if err := checkShape(nd.Kind, len(nd.Children)); err != nil {
			return nil, fmt.Errorf("node %d: %w", id, err)
		}
		for _, c := range nd.Children {
			if c < 0 || c >= n {
				return nil, fmt.Errorf("node %d: child %d: %w", id, c, ErrIDOutOfRange)
			}
			if c == root || parent[c] != -1 {
				return nil, fmt.Errorf("node %d: %w", c, ErrSharedNode)
			}
			parent[c] = id
		}
	}

	t := seal(arena, root)

	// Stage 3: reachability. With one parent per node, the post-order from
	// root covers every node exactly when the structure is a single tree.
	if len(t.postOrder) != n {
		reached := make([]bool, n)
		for _, id := range t.postOrder {
			reached[id] = true
		}
		for id, ok := range reached {
			if !ok {
				return nil, fmt.Errorf("node %d: %w", id, ErrUnreachableNode)
			}
		}
	}

	return t, nil
}

// seal computes the post-order and depth of a structurally valid arena.
// It walks iteratively so deep trees do not grow the goroutine stack.
func seal(nodes []Node, root int) *Tree {
	type frame struct {
		id, next, depth int
	}

	t := &Tree{nodes: nodes, root: root, postOrder: make([]int, 0, len(nodes))}
	stack := []frame{{id: root}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.depth > t.depth {
			t.depth = top.depth
		}
		children := nodes[top.id].Children
		if top.next < len(children) {
			c := children[top.next]
			top.next++
			stack = append(stack, frame{id: c, depth: top.depth + 1})

			continue
		}
		t.postOrder = append(t.postOrder, top.id)
		stack = stack[:len(stack)-1]
	}

	return t
}
