// Command ptalign computes optimal alignment costs between event logs and
// process trees.
//
//	ptalign align --tree "->( 'a', X( 'b', 'c' ) )" --log traces.txt
//	ptalign inspect --tree-file model.pt
//	ptalign sample tree --seed 7 | ptalign sample log --tree-file - -n 100
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
