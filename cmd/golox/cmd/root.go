package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags).
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "golox [file]",
	Short: "A tree-walking interpreter for Lox",
	Long: `golox is a Go implementation of the Lox scripting language
described in Crafting Interpreters: dynamically typed, lexically scoped,
with first-class functions and single-inheritance classes.

Running with no arguments starts an interactive REPL; passing a file path
executes it directly, equivalent to "golox run <file>".`,
	Args:    cobra.MaximumNArgs(1),
	Version: Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return runScript(cmd, args)
		}
		return replCmd.RunE(cmd, args)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))
}
