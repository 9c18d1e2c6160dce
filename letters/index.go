package letters

import "github.com/katalvlaran/ptalign/ptree"

// Index maps every node id of a tree to the set of activity symbols its
// subtree can emit. An activity leaf maps to its own label, a silent leaf
// to the empty set, and an operator to the union of its children.
//
// An Index is immutable after Build and safe for concurrent readers.
type Index struct {
	sets []Set
	leaf []Symbol // symbol of activity leaves, -1 elsewhere
}

// Build computes the index of t with one post-order walk, interning every
// activity label into a.
//
// Complexity: O(N · Σ/64) time for N nodes over an alphabet of Σ labels.
func Build(t *ptree.Tree, a *Alphabet) *Index {
	idx := &Index{
		sets: make([]Set, t.Len()),
		leaf: make([]Symbol, t.Len()),
	}

	// The hook never fails and no context is attached, so Walk cannot return an error.
	_ = t.Walk(ptree.WithOnExit(func(n ptree.Node, _ int) error {
		idx.leaf[n.ID] = -1
		switch n.Kind {
		case ptree.KindActivity:
			sym := a.Intern(n.Label)
			idx.leaf[n.ID] = sym
			idx.sets[n.ID] = NewSet(sym)
		case ptree.KindSilent:
			// empty set
		default:
			var u Set
			for _, c := range n.Children {
				u = u.Union(idx.sets[c])
			}
			idx.sets[n.ID] = u
		}

		return nil
	}))

	return idx
}

// Len returns the number of indexed nodes.
func (x *Index) Len() int { return len(x.sets) }

// Of returns the letter set of node id.
func (x *Index) Of(id int) Set { return x.sets[id] }

// Symbol returns the activity symbol of node id when it is an activity leaf.
func (x *Index) Symbol(id int) (Symbol, bool) {
	s := x.leaf[id]

	return s, s >= 0
}

// Project returns the subsequence of seq whose symbols belong to node id's
// letter set, preserving order.
func (x *Index) Project(id int, seq []Symbol) []Symbol {
	set := x.sets[id]
	out := make([]Symbol, 0, len(seq))
	for _, s := range seq {
		if set.Has(s) {
			out = append(out, s)
		}
	}

	return out
}
