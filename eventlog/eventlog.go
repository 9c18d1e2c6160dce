// Package eventlog provides the trace type consumed by the alignment engine
// together with helpers to read traces from text and CSV event logs and to
// group them into variants.
package eventlog

import (
	"encoding/binary"
	"encoding/hex"
	"errors"

	"lukechampine.com/blake3"
)

// ErrMissingColumn indicates that a CSV header lacks a required column.
var ErrMissingColumn = errors.New("eventlog: missing column")

// EmptyTraceMarker is the line ReadLines interprets as a trace without events.
const EmptyTraceMarker = "<empty>"

// Trace is an ordered sequence of activity labels. Treat it as immutable.
type Trace []string

// Variant is a distinct trace together with how often it occurred.
type Variant struct {
	Trace Trace
	Count int
	ID    string // Fingerprint(Trace)
}

// Fingerprint returns a stable hex BLAKE3-256 digest of t. Labels are
// length-prefixed, so ["ab"] and ["a", "b"] differ.
func Fingerprint(t Trace) string {
	h := blake3.New(32, nil)
	_, _ = h.Write(encode(t))

	return hex.EncodeToString(h.Sum(nil))
}

// Variants groups traces by content in first-seen order.
func Variants(traces []Trace) []Variant {
	pos := make(map[string]int, len(traces))
	var out []Variant
	for _, t := range traces {
		k := string(encode(t))
		if i, ok := pos[k]; ok {
			out[i].Count++
			continue
		}
		pos[k] = len(out)
		out = append(out, Variant{Trace: t, Count: 1, ID: Fingerprint(t)})
	}

	return out
}

// Traces returns the trace of every variant, in order.
func Traces(vs []Variant) []Trace {
	out := make([]Trace, len(vs))
	for i, v := range vs {
		out[i] = v.Trace
	}

	return out
}

// encode writes the uvarint length of t, then each label as uvarint length
// plus bytes.
func encode(t Trace) []byte {
	size := binary.MaxVarintLen64
	for _, l := range t {
		size += binary.MaxVarintLen64 + len(l)
	}
	buf := make([]byte, 0, size)
	buf = binary.AppendUvarint(buf, uint64(len(t)))
	for _, l := range t {
		buf = binary.AppendUvarint(buf, uint64(len(l)))
		buf = append(buf, l...)
	}

	return buf
}
