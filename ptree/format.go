package ptree

import "strings"

var kindSymbols = [...]string{
	KindSequence: symSequence,
	KindXor:      symXor,
	KindParallel: symParallel,
	KindLoop:     symLoop,
}

// String renders the tree in the textual form accepted by Parse, e.g.
// "->( 'a', X( 'b', tau ) )". Parse(t.String()) yields a tree with the same
// shape, labels and preorder ids.
func (t *Tree) String() string {
	var sb strings.Builder
	t.format(&sb, t.root)

	return sb.String()
}

// Format renders the subtree rooted at id in the same textual form as String.
func (t *Tree) Format(id int) string {
	var sb strings.Builder
	t.format(&sb, id)

	return sb.String()
}

func (t *Tree) format(sb *strings.Builder, id int) {
	n := &t.nodes[id]
	switch n.Kind {
	case KindActivity:
		sb.WriteByte('\'')
		sb.WriteString(n.Label)
		sb.WriteByte('\'')
	case KindSilent:
		sb.WriteString(symTau)
	default:
		sb.WriteString(kindSymbols[n.Kind])
		sb.WriteString("( ")
		for i, c := range n.Children {
			if i > 0 {
				sb.WriteString(", ")
			}
			t.format(sb, c)
		}
		sb.WriteString(" )")
	}
}
