package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gomix-lang/golox/run"
)

var evalExpr string

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a Lox script",
	Long: `Execute a Lox program from a file or inline expression.

Examples:
  golox run script.lox
  golox run -e "print 1 + 2;"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline source instead of reading from a file")
}

// runScript's exit codes are 65 for a scan/parse/resolve failure and 70 for
// an uncaught runtime error.
func runScript(_ *cobra.Command, args []string) error {
	var src string
	switch {
	case evalExpr != "":
		src = evalExpr
	case len(args) == 1:
		content, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		src = string(content)
	default:
		return fmt.Errorf("either provide a file path or use -e for inline source")
	}

	session := run.NewSession(os.Stdout)
	result := session.Source(src)
	if !result.HasErrors() {
		return nil
	}

	result.Print(os.Stderr)
	switch result.Stage {
	case run.StageSyntax, run.StageResolve:
		os.Exit(65)
	case run.StageRuntime:
		os.Exit(70)
	}
	return nil
}
