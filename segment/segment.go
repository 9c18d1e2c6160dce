package segment

import "github.com/katalvlaran/ptalign/letters"

// Binary returns the cut positions for splitting seq into a left part
// seq[:i] and a right part seq[i:], where right is the letter set of the
// right-hand part.
//
// The result is 0, then len(seq), then, in ascending order, every i in
// [1, len(seq)-1] where seq[i] belongs to right and seq[i-1] does not: the
// positions at which a run of right-hand symbols begins. For an empty seq
// the two extremes coincide and the result is [0].
//
// Cutting anywhere else is never better: moving a cut left across a symbol
// the right part cannot use, or right across one the left part cannot use,
// never increases the cost.
//
// Complexity: O(n) time, at most n+1 positions.
func Binary(seq []letters.Symbol, right letters.Set) []int {
	n := len(seq)
	if n == 0 {
		return []int{0}
	}

	out := make([]int, 2, n+1)
	out[0], out[1] = 0, n
	prevIn := right.Has(seq[0])
	for i := 1; i < n; i++ {
		in := right.Has(seq[i])
		if in && !prevIn {
			out = append(out, i)
		}
		prevIn = in
	}

	return out
}

// Compositions returns every way of writing n as an ordered sum of parts
// non-negative integers, in lexicographic order of the part sizes.
//
// Special cases: parts <= 0 or n < 0 yields nil; parts == 1 yields [[n]];
// n == 0 yields the single all-zero composition.
//
// The count is C(n+parts-1, parts-1), which grows quickly; this is meant
// for cross-checking on short traces.
func Compositions(n, parts int) [][]int {
	if parts <= 0 || n < 0 {
		return nil
	}

	var out [][]int
	cur := make([]int, parts)
	var rec func(i, left int)
	rec = func(i, left int) {
		if i == parts-1 {
			cur[i] = left
			out = append(out, append([]int(nil), cur...))

			return
		}
		for v := 0; v <= left; v++ {
			cur[i] = v
			rec(i+1, left-v)
		}
	}
	rec(0, n)

	return out
}
