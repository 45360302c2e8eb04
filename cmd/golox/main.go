// Command golox is the entry point for the Lox interpreter: run a script
// file, evaluate inline source, or start an interactive REPL.
package main

import (
	"fmt"
	"os"

	"github.com/gomix-lang/golox/cmd/golox/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
