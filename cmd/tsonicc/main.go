// Command tsonicc drives the tsonic core end to end: parse, lower,
// numeric-prove, soundness-gate, name-check, and emit one source file at a
// time into C#.
package main

import (
	"os"

	"github.com/tsonic-lang/tsonic-core/cmd/tsonicc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
