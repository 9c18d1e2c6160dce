package letters

import (
	"encoding/binary"
	"sync"
)

// Symbol is the interned form of an activity label. Symbols are dense,
// starting at 0, in interning order.
type Symbol int32

// Foreign stands for every label an Alphabet does not know. No Set ever
// contains it and no activity leaf carries it, so alignment costs do not
// depend on which foreign label an event had.
const Foreign Symbol = -1

// Alphabet maps activity labels to symbols and back.
//
// Intern and Encode add labels on first sight; EncodeKnown never grows the
// alphabet. All methods are safe for concurrent use; the read path takes
// only a read lock.
type Alphabet struct {
	mu      sync.RWMutex
	symbols map[string]Symbol
	labels  []string
}

// NewAlphabet returns an alphabet pre-populated with labels in order.
func NewAlphabet(labels ...string) *Alphabet {
	a := &Alphabet{symbols: make(map[string]Symbol, len(labels))}
	for _, l := range labels {
		a.Intern(l)
	}

	return a
}

// Intern returns the symbol of label, assigning the next free one if needed.
func (a *Alphabet) Intern(label string) Symbol {
	// Fast path: already interned.
	a.mu.RLock()
	s, ok := a.symbols[label]
	a.mu.RUnlock()
	if ok {
		return s
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if s, ok = a.symbols[label]; ok {
		return s
	}
	if a.symbols == nil {
		a.symbols = make(map[string]Symbol)
	}
	s = Symbol(len(a.labels))
	a.symbols[label] = s
	a.labels = append(a.labels, label)

	return s
}

// Lookup returns the symbol of label without interning it.
func (a *Alphabet) Lookup(label string) (Symbol, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	s, ok := a.symbols[label]

	return s, ok
}

// Label returns the label of s, or "" if s was never issued.
func (a *Alphabet) Label(s Symbol) string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if s < 0 || int(s) >= len(a.labels) {
		return ""
	}

	return a.labels[s]
}

// Len returns the number of interned labels.
func (a *Alphabet) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return len(a.labels)
}

// Encode interns every label of trace and returns the symbol sequence.
func (a *Alphabet) Encode(trace []string) []Symbol {
	out := make([]Symbol, len(trace))
	for i, l := range trace {
		out[i] = a.Intern(l)
	}

	return out
}

// EncodeKnown returns the symbol sequence of trace without interning:
// labels the alphabet does not hold become Foreign.
func (a *Alphabet) EncodeKnown(trace []string) []Symbol {
	out := make([]Symbol, len(trace))
	a.mu.RLock()
	defer a.mu.RUnlock()
	for i, l := range trace {
		s, ok := a.symbols[l]
		if !ok {
			s = Foreign
		}
		out[i] = s
	}

	return out
}

// Decode maps symbols back to labels. Foreign decodes to "".
func (a *Alphabet) Decode(seq []Symbol) []string {
	out := make([]string, len(seq))
	for i, s := range seq {
		out[i] = a.Label(s)
	}

	return out
}

// Key encodes seq as a compact string usable as a map key: four
// little-endian bytes per symbol. Distinct sequences always yield distinct
// keys and the empty sequence yields "".
func Key(seq []Symbol) string {
	if len(seq) == 0 {
		return ""
	}
	buf := make([]byte, 0, 4*len(seq))
	for _, s := range seq {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(s))
	}

	return string(buf)
}
