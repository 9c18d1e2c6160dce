package ptree

import "fmt"

// Expr is a builder expression for a process tree node.
//
// Expressions are plain values assembled with Activity, Tau, Seq, Xor, Par,
// Loop and Op, then frozen into a Tree by Compile. An *Expr must appear at
// most once in a tree; reusing a pointer under two parents is rejected with
// ErrSharedNode.
type Expr struct {
	Kind     Kind
	Label    string
	Children []*Expr
}

// Activity returns a leaf emitting the given label.
func Activity(label string) *Expr { return &Expr{Kind: KindActivity, Label: label} }

// Tau returns a silent leaf.
func Tau() *Expr { return &Expr{Kind: KindSilent} }

// Seq returns a sequence of children.
func Seq(children ...*Expr) *Expr { return Op(KindSequence, children...) }

// Xor returns an exclusive choice between children.
func Xor(children ...*Expr) *Expr { return Op(KindXor, children...) }

// Par returns a parallel composition of children.
func Par(children ...*Expr) *Expr { return Op(KindParallel, children...) }

// Loop returns a redo loop with the given body and redo parts.
func Loop(body, redo *Expr) *Expr { return Op(KindLoop, body, redo) }

// Op returns an operator node of arbitrary kind. Validation is deferred to Compile.
func Op(kind Kind, children ...*Expr) *Expr {
	return &Expr{Kind: kind, Children: children}
}

// Compile freezes expr into a validated Tree, assigning node ids by one
// preorder traversal: the root is 0 and children are numbered depth-first,
// left to right.
//
// Errors: ErrNilExpr, ErrUnsupportedOperator, ErrLeafChildren,
// ErrEmptyOperator, ErrMalformedLoop, ErrSharedNode. Each is wrapped with
// the preorder id of the offending node.
//
// Complexity: O(N) time and memory for N nodes.
func Compile(expr *Expr) (*Tree, error) {
	if expr == nil {
		return nil, ErrNilExpr
	}

	c := compiler{seen: make(map[*Expr]struct{})}
	if _, err := c.emit(expr); err != nil {
		return nil, err
	}

	return seal(c.nodes, 0), nil
}

// compiler holds the per-call state of Compile.
type compiler struct {
	nodes []Node
	seen  map[*Expr]struct{}
}

// emit appends e and its subtree in preorder and returns the id given to e.
func (c *compiler) emit(e *Expr) (int, error) {
	id := len(c.nodes)
	if e == nil {
		return 0, fmt.Errorf("node %d: %w", id, ErrNilExpr)
	}
	if _, dup := c.seen[e]; dup {
		return 0, fmt.Errorf("node %d: %w", id, ErrSharedNode)
	}
	c.seen[e] = struct{}{}

	if err := checkShape(e.Kind, len(e.Children)); err != nil {
		return 0, fmt.Errorf("node %d: %w", id, err)
	}

	// Reserve the slot before descending so that the parent precedes its children.
	c.nodes = append(c.nodes, Node{ID: id, Kind: e.Kind, Label: e.Label})
	if len(e.Children) == 0 {
		return id, nil
	}

	children := make([]int, 0, len(e.Children))
	for _, ch := range e.Children {
		cid, err := c.emit(ch)
		if err != nil {
			return 0, err
		}
		children = append(children, cid)
	}
	c.nodes[id].Children = children

	return id, nil
}

// checkShape verifies the arity rules of a node kind.
func checkShape(kind Kind, children int) error {
	switch {
	case !kind.Valid():
		return fmt.Errorf("%w: %s", ErrUnsupportedOperator, kind)
	case kind.IsLeaf() && children > 0:
		return ErrLeafChildren
	case kind == KindLoop && children != 2:
		return fmt.Errorf("%w: got %d", ErrMalformedLoop, children)
	case !kind.IsLeaf() && children == 0:
		return ErrEmptyOperator
	}

	return nil
}
