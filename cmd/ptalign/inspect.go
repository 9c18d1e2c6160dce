package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/ptalign/letters"
	"github.com/katalvlaran/ptalign/ptree"
)

func newInspectCmd() *cobra.Command {
	f := &treeFlags{}

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print a process tree with node ids, kinds and letter sets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := f.load(cmd.InOrStdin())
			if err != nil {
				return err
			}

			return writeTree(cmd.OutOrStdout(), t)
		},
	}
	f.register(cmd)

	return cmd
}

// writeTree prints one node per line, indented by depth:
//
//	0 sequence {a b}
//	  1 activity 'a' {a}
func writeTree(w io.Writer, t *ptree.Tree) error {
	a := letters.NewAlphabet()
	idx := letters.Build(t, a)

	fmt.Fprintf(w, "nodes %d, depth %d, labels %d\n", t.Len(), t.Depth(), a.Len())

	return t.Walk(ptree.WithOnVisit(func(n ptree.Node, depth int) error {
		label := ""
		if n.Kind == ptree.KindActivity {
			label = " '" + n.Label + "'"
		}
		_, err := fmt.Fprintf(w, "%s%d %s%s {%s}\n",
			strings.Repeat("  ", depth), n.ID, n.Kind, label,
			strings.Join(idx.Of(n.ID).Labels(a), " "))

		return err
	}))
}
