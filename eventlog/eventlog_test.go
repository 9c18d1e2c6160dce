package eventlog_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ptalign/eventlog"
)

func TestFingerprint(t *testing.T) {
	a := eventlog.Fingerprint(eventlog.Trace{"a", "b"})
	assert.Len(t, a, 64)
	assert.Equal(t, a, eventlog.Fingerprint(eventlog.Trace{"a", "b"}))
	assert.NotEqual(t, a, eventlog.Fingerprint(eventlog.Trace{"ab"}))
	assert.NotEqual(t, a, eventlog.Fingerprint(eventlog.Trace{"b", "a"}))
	assert.NotEqual(t, eventlog.Fingerprint(nil), eventlog.Fingerprint(eventlog.Trace{""}))
}

func TestVariants(t *testing.T) {
	traces := []eventlog.Trace{
		{"a", "b"},
		{"c"},
		{"a", "b"},
		{},
		{"c"},
		{"a", "b"},
		nil,
	}

	vs := eventlog.Variants(traces)
	require.Len(t, vs, 3)
	assert.Equal(t, eventlog.Trace{"a", "b"}, vs[0].Trace)
	assert.Equal(t, 3, vs[0].Count)
	assert.Equal(t, eventlog.Trace{"c"}, vs[1].Trace)
	assert.Equal(t, 2, vs[1].Count)
	assert.Empty(t, vs[2].Trace)
	assert.Equal(t, 2, vs[2].Count, "nil and empty traces are the same variant")
	assert.Equal(t, eventlog.Fingerprint(eventlog.Trace{"c"}), vs[1].ID)

	assert.Equal(t, []eventlog.Trace{{"a", "b"}, {"c"}, {}}, eventlog.Traces(vs))
}

func TestReadLines(t *testing.T) {
	in := "a,b , c\n\n  <empty>  \nd\n,e,,\n"
	traces, err := eventlog.ReadLines(strings.NewReader(in), ",")
	require.NoError(t, err)
	assert.Equal(t, []eventlog.Trace{
		{"a", "b", "c"},
		{},
		{"d"},
		{"e"},
	}, traces)
}

func TestReadLines_Whitespace(t *testing.T) {
	traces, err := eventlog.ReadLines(strings.NewReader("a  b\tc\n"), "")
	require.NoError(t, err)
	assert.Equal(t, []eventlog.Trace{{"a", "b", "c"}}, traces)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestReadLines_ReaderError(t *testing.T) {
	_, err := eventlog.ReadLines(failingReader{}, ",")
	assert.ErrorContains(t, err, "disk on fire")
}

func TestReadCSV(t *testing.T) {
	in := "case,activity,timestamp\n" +
		"1,register,t0\n" +
		"2,register,t1\n" +
		"1,ship,t2\n" +
		"2,cancel,t3\n" +
		"1,invoice,t4\n"

	traces, err := eventlog.ReadCSV(strings.NewReader(in), "case", "activity")
	require.NoError(t, err)
	assert.Equal(t, []eventlog.Trace{
		{"register", "ship", "invoice"},
		{"register", "cancel"},
	}, traces)
}

func TestReadCSV_ByteOrderMark(t *testing.T) {
	traces, err := eventlog.ReadCSV(strings.NewReader("\ufeffcase,activity\n1,a\n"), "case", "activity")
	require.NoError(t, err)
	assert.Equal(t, []eventlog.Trace{{"a"}}, traces)
}

func TestReadCSV_Errors(t *testing.T) {
	_, err := eventlog.ReadCSV(strings.NewReader("case,task\n1,a\n"), "case", "activity")
	assert.ErrorIs(t, err, eventlog.ErrMissingColumn)

	_, err = eventlog.ReadCSV(strings.NewReader(""), "case", "activity")
	assert.ErrorIs(t, err, eventlog.ErrMissingColumn)

	_, err = eventlog.ReadCSV(strings.NewReader("case,activity\n1\n"), "case", "activity")
	assert.ErrorContains(t, err, "row 2")
}
