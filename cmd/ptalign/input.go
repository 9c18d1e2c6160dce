package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/ptalign/eventlog"
	"github.com/katalvlaran/ptalign/ptree"
)

// treeFlags selects a process tree either inline or from a file.
type treeFlags struct {
	expr string
	file string
}

func (f *treeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.expr, "tree", "", "process tree expression, e.g. \"->( 'a', X( 'b', tau ) )\"")
	cmd.Flags().StringVar(&f.file, "tree-file", "", "file holding the process tree expression (- for stdin)")
}

// load parses the selected tree. Exactly one of --tree and --tree-file must be set.
func (f *treeFlags) load(stdin io.Reader) (*ptree.Tree, error) {
	switch {
	case f.expr != "" && f.file != "":
		return nil, errors.New("--tree and --tree-file are mutually exclusive")
	case f.expr != "":
		return ptree.Parse(f.expr)
	case f.file != "":
		data, err := readInput(f.file, stdin)
		if err != nil {
			return nil, fmt.Errorf("read tree: %w", err)
		}

		return ptree.Parse(string(data))
	default:
		return nil, errors.New("one of --tree or --tree-file is required")
	}
}

// logFlags selects an event log file and its layout.
type logFlags struct {
	path        string
	format      string
	sep         string
	caseCol     string
	activityCol string
}

func (f *logFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.path, "log", "-", "event log file (- for stdin)")
	fs.StringVar(&f.format, "format", "lines", "log format: lines (one trace per line) or csv (one event per row)")
	fs.StringVar(&f.sep, "sep", "", "label separator for --format lines; empty splits on white space")
	fs.StringVar(&f.caseCol, "case-col", "case", "case id column for --format csv")
	fs.StringVar(&f.activityCol, "activity-col", "activity", "activity column for --format csv")
}

// load reads every trace of the selected log.
func (f *logFlags) load(stdin io.Reader) ([]eventlog.Trace, error) {
	var r io.Reader = stdin
	if f.path != "-" {
		file, err := os.Open(f.path)
		if err != nil {
			return nil, fmt.Errorf("open log: %w", err)
		}
		defer file.Close()
		r = file
	}

	switch f.format {
	case "lines":
		return eventlog.ReadLines(r, f.sep)
	case "csv":
		return eventlog.ReadCSV(r, f.caseCol, f.activityCol)
	default:
		return nil, fmt.Errorf("invalid --format %q: want lines or csv", f.format)
	}
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}

	return os.ReadFile(path)
}
