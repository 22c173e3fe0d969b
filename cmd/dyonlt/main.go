// Command dyonlt is a thin front end over the check package: it loads
// one or more s-expression program files (internal/sexpr), runs the
// lifetime and type-check pass, and reports the first violation or the
// refined return types on success. It is the "command-line wrapper"
// spec.md §1 names as out of scope for the pass itself.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/exprtools/borrowcheck/cmd/dyonlt/cli"
)

func main() {
	// Ignored: a missing .env is the common case, not a fault (mirrors
	// the teacher's own use of godotenv in its CLI tests).
	_ = godotenv.Load()

	if err := cli.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
