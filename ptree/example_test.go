package ptree_test

import (
	"fmt"

	"github.com/katalvlaran/ptalign/ptree"
)

// ExampleCompile builds a small order-handling model in code and prints its
// preorder ids.
func ExampleCompile() {
	tr, err := ptree.Compile(ptree.Seq(
		ptree.Activity("register"),
		ptree.Par(ptree.Activity("check stock"), ptree.Activity("check credit")),
		ptree.Xor(ptree.Activity("ship"), ptree.Activity("cancel")),
	))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	_ = tr.Walk(ptree.WithOnVisit(func(n ptree.Node, depth int) error {
		fmt.Printf("%*s%d %s", 2*depth, "", n.ID, n.Kind)
		if n.Kind == ptree.KindActivity {
			fmt.Printf(" %s", n.Label)
		}
		fmt.Println()
		return nil
	}))

	// Output:
	// 0 sequence
	//   1 activity register
	//   2 parallel
	//     3 activity check stock
	//     4 activity check credit
	//   5 xor
	//     6 activity ship
	//     7 activity cancel
}

// ExampleParse reads the textual form and prints it back normalised.
func ExampleParse() {
	tr, err := ptree.Parse("->('a',*('b',tau))")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(tr)
	fmt.Println(tr.Len(), tr.Depth())

	// Output:
	// ->( 'a', *( 'b', tau ) )
	// 4 2
}
