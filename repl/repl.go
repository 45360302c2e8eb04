/*
Package repl implements the Read-Eval-Print Loop for the interpreter. The
REPL provides an interactive environment where users can:
- Enter source line by line
- See immediate feedback for parse/runtime errors
- Navigate command history using arrow keys
- Receive colored feedback for different types of output

The REPL uses the readline library for enhanced line editing capabilities
and drives a single run.Session across the whole interactive lifetime, so
state (variables, functions, classes) persists across lines the way it did
in go-mix's repl.Repl.Start, which threaded one eval.Evaluator through
every line.
*/
package repl

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/gomix-lang/golox/run"
)

// Color definitions for REPL output.
var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl encapsulates the presentation details of an interactive session:
// its banner, version/author/license strings, and prompt.
type Repl struct {
	Banner  string
	Version string
	Author  string
	Line    string
	License string
	Prompt  string
}

// NewRepl builds a Repl with the given presentation strings.
func NewRepl(banner, version, author, line, license, prompt string) *Repl {
	return &Repl{Banner: banner, Version: version, Author: author, Line: line, License: license, Prompt: prompt}
}

// PrintBannerInfo writes the startup banner, version line, and usage hints.
func (r *Repl) PrintBannerInfo(writer io.Writer) {
	blueColor.Fprintf(writer, "%s\n", r.Line)
	greenColor.Fprintf(writer, "%s\n", r.Banner)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	yellowColor.Fprintln(writer, "Version: "+r.Version+" | Author: "+r.Author+" | License: "+r.License)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	cyanColor.Fprintf(writer, "%s\n", "Type a line of source and press enter")
	cyanColor.Fprintf(writer, "%s\n", "Type '.exit' to quit")
	cyanColor.Fprintf(writer, "%s\n", "Use up/down arrows to navigate command history")
	blueColor.Fprintf(writer, "%s\n", r.Line)
}

// Start runs the interactive loop until the user exits or readline returns
// an error (typically Ctrl+D). One run.Session is kept alive for the whole
// loop, so a function or variable declared on one line remains callable on
// the next.
func (r *Repl) Start(reader io.Reader, writer io.Writer) {
	r.PrintBannerInfo(writer)

	rl, err := readline.New(r.Prompt)
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	session := run.NewSession(writer)

	for {
		line, err := rl.Readline()
		if err != nil {
			writer.Write([]byte("Good Bye!\n"))
			break
		}

		line = strings.Trim(line, " \n\t\r")
		if line == "" {
			continue
		}
		if line == ".exit" {
			writer.Write([]byte("Good Bye!\n"))
			break
		}

		rl.SaveHistory(line)
		r.evaluate(writer, session, line)
	}
}

// evaluate runs one line through session and reports any diagnostics in
// red. Unlike file execution, a runtime error here does not end the
// session - the user can keep typing.
func (r *Repl) evaluate(writer io.Writer, session *run.Session, line string) {
	result := session.Source(line)
	if result.HasErrors() {
		for _, e := range result.SyntaxErrors {
			redColor.Fprintf(writer, "%s\n", e.Error())
		}
		if result.RuntimeErr != nil {
			redColor.Fprintf(writer, "%s\n", result.RuntimeErr.Error())
		}
	}
}
