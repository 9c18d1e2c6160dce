// Package ptree models block-structured process trees.
//
// A process tree is a rooted, ordered tree whose leaves are activities
// (observable labels) or silent steps (tau) and whose inner nodes are one of
// four operators:
//
//   - Sequence  ->( c1, ..., ck )  children one after another.
//   - Xor       X( c1, ..., ck )   exactly one child.
//   - Parallel  +( c1, ..., ck )   any interleaving of all children.
//   - Loop      *( r, q )          the body r, then zero or more rounds of q followed by r.
//
// Trees are stored as an arena: every node carries a dense integer id equal
// to its index, and side tables elsewhere (letter sets, alignment caches) are
// plain slices indexed by that id. A Tree is immutable once built and safe
// for concurrent readers.
//
// Construction:
//
//   - Compile(expr)       from builder expressions (Seq, Xor, Par, Loop, Activity, Tau);
//     ids are assigned in preorder, root = 0.
//   - FromNodes(nodes, r) from caller-assigned ids; ids must be dense and unique.
//   - Parse(s)            from the textual form shown above.
//
// All three validate the structure: supported kinds only, leaves without
// children, operators with at least one child, loops with exactly two,
// exactly one parent per non-root node, and every node reachable.
//
// Traversal:
//
//	t.Walk(ptree.WithOnVisit(pre), ptree.WithOnExit(post), ptree.WithContext(ctx))
//
// Complexity: construction, validation, Walk and String are all O(N).
package ptree
