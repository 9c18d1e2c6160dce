// Package ptree defines the process tree model consumed by the alignment
// engine: a closed set of node kinds, an arena of nodes addressed by id,
// sentinel errors for structural defects, and the builder expressions used
// to assemble trees in code.
//
// Errors:
//
//	ErrNilExpr              - a nil expression was passed to Compile.
//	ErrUnsupportedOperator  - a node kind outside the supported set.
//	ErrMalformedLoop        - a loop node without exactly two children.
//	ErrEmptyOperator        - an operator node without children.
//	ErrLeafChildren         - a leaf node that declares children.
//	ErrDuplicateID          - two nodes share an id (cache keys would collide).
//	ErrIDOutOfRange         - an id outside [0, len(nodes)).
//	ErrSharedNode           - a node reachable from more than one parent.
//	ErrUnreachableNode      - a node not reachable from the root.
//	ErrSyntax               - malformed textual tree.
package ptree

import (
	"errors"
	"fmt"
)

// Sentinel errors for process tree construction and validation.
var (
	// ErrNilExpr indicates that a nil *Expr was passed where a node was expected.
	ErrNilExpr = errors.New("ptree: expression is nil")

	// ErrUnsupportedOperator indicates a node kind outside
	// {activity, silent, sequence, xor, parallel, loop}.
	ErrUnsupportedOperator = errors.New("ptree: unsupported operator")

	// ErrMalformedLoop indicates a loop node that does not have exactly two children.
	ErrMalformedLoop = errors.New("ptree: loop node must have exactly two children")

	// ErrEmptyOperator indicates an operator node with no children.
	ErrEmptyOperator = errors.New("ptree: operator node has no children")

	// ErrLeafChildren indicates a leaf node that declares children.
	ErrLeafChildren = errors.New("ptree: leaf node cannot have children")

	// ErrDuplicateID indicates two nodes carrying the same id.
	ErrDuplicateID = errors.New("ptree: duplicate node id")

	// ErrIDOutOfRange indicates a node or child id outside the arena.
	ErrIDOutOfRange = errors.New("ptree: node id out of range")

	// ErrSharedNode indicates a node owned by more than one parent (a DAG, not a tree).
	ErrSharedNode = errors.New("ptree: node has more than one parent")

	// ErrUnreachableNode indicates a node that cannot be reached from the root.
	ErrUnreachableNode = errors.New("ptree: node unreachable from root")

	// ErrSyntax indicates a malformed textual process tree.
	ErrSyntax = errors.New("ptree: syntax error")
)

// Kind enumerates the node kinds of a process tree.
//
//   - KindActivity: leaf emitting one observable activity (Label).
//   - KindSilent  : leaf emitting nothing (tau).
//   - KindSequence: children in order.
//   - KindXor     : exactly one child.
//   - KindParallel: arbitrary interleaving of all children.
//   - KindLoop    : children (r, q) with language r (q r)*.
type Kind uint8

const (
	KindActivity Kind = iota
	KindSilent
	KindSequence
	KindXor
	KindParallel
	KindLoop
)

var kindNames = [...]string{
	KindActivity: "activity",
	KindSilent:   "tau",
	KindSequence: "sequence",
	KindXor:      "xor",
	KindParallel: "parallel",
	KindLoop:     "loop",
}

// String returns the lower-case kind name, or "kind(N)" for unsupported values.
func (k Kind) String() string {
	if k.Valid() {
		return kindNames[k]
	}

	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool { return k <= KindLoop }

// IsLeaf reports whether k is a leaf kind (activity or silent).
func (k Kind) IsLeaf() bool { return k == KindActivity || k == KindSilent }

// Node is one record of the tree arena.
//
// ID equals the node's index in the arena. Children lists child ids in
// model order; it is empty for leaves and has exactly two entries for loops
// (body first, redo second).
type Node struct {
	// ID is the unique, stable identifier of the node.
	ID int

	// Kind is the operator or leaf kind.
	Kind Kind

	// Label is the activity label; meaningful only for KindActivity.
	Label string

	// Children holds child ids in order.
	Children []int
}

// Tree is an immutable, validated process tree stored as an arena of nodes.
//
// A Tree is safe for concurrent reads. It is produced only by Compile,
// FromNodes or Parse, all of which validate the structure, so every Tree
// value satisfies the invariants documented on the sentinel errors.
type Tree struct {
	nodes     []Node // nodes[id].ID == id
	root      int    // id of the root node
	depth     int    // edges on the longest root-to-leaf path
	postOrder []int  // ids in post-order (children before parents)
}

// Root returns the id of the root node.
func (t *Tree) Root() int { return t.root }

// Len returns the number of nodes.
func (t *Tree) Len() int { return len(t.nodes) }

// Depth returns the number of edges on the longest root-to-leaf path.
func (t *Tree) Depth() int { return t.depth }

// Node returns the node with the given id. It panics if id is out of range,
// like a slice index; callers iterate ids obtained from the tree itself.
func (t *Tree) Node(id int) Node { return t.nodes[id] }

// Children returns the child ids of node id. The slice must not be modified.
func (t *Tree) Children(id int) []int { return t.nodes[id].Children }

// PostOrder returns node ids with every child listed before its parent.
// The slice must not be modified.
func (t *Tree) PostOrder() []int { return t.postOrder }

// Labels returns the distinct activity labels of the tree in first-seen preorder.
func (t *Tree) Labels() []string {
	seen := make(map[string]struct{})
	var out []string
	for i := range t.nodes {
		n := &t.nodes[i]
		if n.Kind != KindActivity {
			continue
		}
		if _, ok := seen[n.Label]; ok {
			continue
		}
		seen[n.Label] = struct{}{}
		out = append(out, n.Label)
	}

	return out
}
