package letters

import (
	"math/bits"
	"sort"
)

// Set is an immutable set of symbols stored as a bitset.
//
// The zero value is the empty set. Symbols outside the bitset's range are
// simply absent, so Has is safe for symbols interned after the set was built.
type Set struct {
	words []uint64
	n     int
}

// NewSet returns the set of the given symbols. Negative symbols are ignored.
func NewSet(syms ...Symbol) Set {
	var s Set
	for _, sym := range syms {
		s.add(sym)
	}

	return s
}

// Has reports whether sym is in the set.
func (s Set) Has(sym Symbol) bool {
	w := int(sym) >> 6
	if sym < 0 || w >= len(s.words) {
		return false
	}

	return s.words[w]&(1<<(uint(sym)&63)) != 0
}

// Len returns the number of symbols in the set.
func (s Set) Len() int { return s.n }

// Union returns a new set holding the symbols of s and o.
func (s Set) Union(o Set) Set {
	if len(o.words) > len(s.words) {
		s, o = o, s
	}
	out := Set{words: append([]uint64(nil), s.words...)}
	for i, w := range o.words {
		out.words[i] |= w
	}
	for _, w := range out.words {
		out.n += bits.OnesCount64(w)
	}

	return out
}

// Symbols returns the members in ascending order.
func (s Set) Symbols() []Symbol {
	out := make([]Symbol, 0, s.n)
	for i, w := range s.words {
		for w != 0 {
			b := bits.TrailingZeros64(w)
			out = append(out, Symbol(i<<6+b))
			w &= w - 1
		}
	}

	return out
}

// Labels returns the members' labels sorted lexically.
func (s Set) Labels(a *Alphabet) []string {
	out := make([]string, 0, s.n)
	for _, sym := range s.Symbols() {
		out = append(out, a.Label(sym))
	}
	sort.Strings(out)

	return out
}

func (s *Set) add(sym Symbol) {
	if sym < 0 {
		return
	}
	w := int(sym) >> 6
	for len(s.words) <= w {
		s.words = append(s.words, 0)
	}
	mask := uint64(1) << (uint(sym) & 63)
	if s.words[w]&mask == 0 {
		s.words[w] |= mask
		s.n++
	}
}
