package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/gomix-lang/golox/repl"
)

const (
	prompt = "lox >>> "
	line   = "----------------------------------------------------------------"
	banner = `   __
  / /___  _  __
 / / __ \| |/_/
/ / /_/ />  <
/_/\____/_/|_|
`
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive Lox session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r := repl.NewRepl(banner, Version, "golox", line, "MIT", prompt)
		r.Start(os.Stdin, os.Stdout)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}
