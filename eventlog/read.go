package eventlog

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// maxLine bounds a single line of a text log.
const maxLine = 16 << 20

// ReadLines reads one trace per line. Labels are separated by sep; an empty
// sep splits on runs of white space. Labels are trimmed and empty labels are
// dropped. Blank lines are skipped; a line holding only EmptyTraceMarker
// yields an empty trace.
func ReadLines(r io.Reader, sep string) ([]Trace, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)

	var out []Trace
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		switch text {
		case "":
			continue
		case EmptyTraceMarker:
			out = append(out, Trace{})
			continue
		}

		var fields []string
		if sep == "" {
			fields = strings.Fields(text)
		} else {
			fields = strings.Split(text, sep)
		}
		t := make(Trace, 0, len(fields))
		for _, f := range fields {
			if f = strings.TrimSpace(f); f != "" {
				t = append(t, f)
			}
		}
		out = append(out, t)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("eventlog: line %d: %w", line+1, err)
	}

	return out, nil
}

// ReadCSV reads a flat event table with a header row. Events are grouped
// into traces by the case column, in file order; cases appear in the order
// of their first event.
func ReadCSV(r io.Reader, caseCol, activityCol string) ([]Trace, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty input, want %q and %q", ErrMissingColumn, caseCol, activityCol)
	}
	if err != nil {
		return nil, fmt.Errorf("eventlog: reading header: %w", err)
	}
	ci, ai := -1, -1
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		switch strings.TrimSpace(h) {
		case caseCol:
			ci = i
		case activityCol:
			ai = i
		}
	}
	if ci < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, caseCol)
	}
	if ai < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, activityCol)
	}

	pos := make(map[string]int)
	var out []Trace
	for row := 2; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("eventlog: row %d: %w", row, err)
		}
		if ci >= len(rec) || ai >= len(rec) {
			return nil, fmt.Errorf("eventlog: row %d: %d fields, need %d", row, len(rec), max(ci, ai)+1)
		}
		id := rec[ci]
		i, ok := pos[id]
		if !ok {
			i = len(out)
			pos[id] = i
			out = append(out, Trace{})
		}
		out[i] = append(out[i], rec[ai])
	}

	return out, nil
}
