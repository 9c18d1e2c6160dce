package segment_test

import (
	"fmt"

	"github.com/katalvlaran/ptalign/letters"
	"github.com/katalvlaran/ptalign/segment"
)

// ExampleBinary lists the cut positions for splitting "x y y x y" between a
// left part and a right part that can only emit "y".
func ExampleBinary() {
	a := letters.NewAlphabet()
	seq := a.Encode([]string{"x", "y", "y", "x", "y"})
	right := letters.NewSet(a.Intern("y"))

	fmt.Println(segment.Binary(seq, right))

	// Output:
	// [0 5 1 4]
}
