/*
Package run wires the four-stage pipeline - scan, parse, resolve,
interpret - into the single entry point both the file runner and the REPL
call. Keeping one Interpreter alive across repeated Source calls is what
lets the REPL accumulate global state between lines, mirroring go-mix's
interpreter's single long-lived eval.Evaluator threaded through every
executeWithRecovery call in repl.Repl.Start.
*/
package run

import (
	"fmt"
	"io"

	"github.com/gomix-lang/golox/ast"
	"github.com/gomix-lang/golox/interpreter"
	"github.com/gomix-lang/golox/loxerror"
	"github.com/gomix-lang/golox/parser"
	"github.com/gomix-lang/golox/resolver"
	"github.com/gomix-lang/golox/scanner"
)

// Session holds one interpreter instance across any number of Source calls,
// so variables and functions declared by an earlier call remain visible to
// later ones (the REPL's use case). A one-shot script run is just a Session
// used once.
//
// The resolver treats top-level as an unscoped global environment (see
// resolver.Resolver.resolveLocal falling back to a fixed name set once its
// scope stack is empty), so each call's Resolver must be told about every
// name a *previous* call bound at top level, or it reports a REPL-declared
// variable as undeclared the next time a line references it. knownGlobals
// accumulates those names across calls.
type Session struct {
	interp       *interpreter.Interpreter
	knownGlobals []string
}

// NewSession builds a Session with output directed to w.
func NewSession(w io.Writer) *Session {
	interp := interpreter.New()
	interp.Out = w
	return &Session{interp: interp, knownGlobals: interpreter.GlobalNames()}
}

// topLevelNames returns the names a program's top-level var/function/class
// declarations would bind, so a later Session.Source call can treat them as
// already-known globals.
func topLevelNames(statements []ast.Stmt) []string {
	var names []string
	for _, s := range statements {
		switch n := s.(type) {
		case *ast.VarStmt:
			names = append(names, n.Name.Lexeme)
		case *ast.FunctionDef:
			names = append(names, n.Name.Lexeme)
		case *ast.ClassStmt:
			names = append(names, n.Name.Lexeme)
		}
	}
	return names
}

// Stage names which pass of the pipeline a Result's diagnostics came from,
// for callers (golox run) that map each stage to a distinct process exit
// code: 65 for a scan/parse/resolve failure, 70 for an uncaught runtime
// error.
type Stage int

const (
	StageNone Stage = iota
	StageSyntax
	StageResolve
	StageRuntime
)

// Result reports which stage (if any) produced diagnostics. At most one of
// SyntaxErrors or RuntimeErr is populated.
type Result struct {
	Stage        Stage
	SyntaxErrors []*loxerror.SyntaxError
	RuntimeErr   *loxerror.RuntimeError
}

// HasErrors reports whether execution stopped short of completing.
func (r Result) HasErrors() bool {
	return r.Stage != StageNone
}

// Source scans, parses, resolves, and interprets one chunk of source text
// against the session's live environment. Scan/parse/resolve errors are
// collected without running anything; interpretation is only even
// attempted once the source is free of scan, parse, and resolve errors.
func (s *Session) Source(src string) Result {
	toks, scanErrs := scanner.New(src).Scan()
	if len(scanErrs) > 0 {
		syntaxErrs := make([]*loxerror.SyntaxError, len(scanErrs))
		for i, e := range scanErrs {
			syntaxErrs[i] = loxerror.NewScanError(e.Line, e.Message)
		}
		return Result{Stage: StageSyntax, SyntaxErrors: syntaxErrs}
	}

	program, parseErrs := parser.New(toks).Parse()
	if len(parseErrs) > 0 {
		return Result{Stage: StageSyntax, SyntaxErrors: parseErrs}
	}

	// Names this call's own top-level declarations bind must be known to
	// the resolver before it walks this same call's statements, or a
	// later statement referencing an earlier one's top-level var/function/
	// class (the ordinary case) is reported as undeclared.
	callGlobals := append(append([]string{}, s.knownGlobals...), topLevelNames(program.Statements)...)

	locals, resolveErrs := resolver.New(callGlobals).Resolve(program.Statements)
	if len(resolveErrs) > 0 {
		return Result{Stage: StageResolve, SyntaxErrors: resolveErrs}
	}
	s.knownGlobals = callGlobals

	s.interp.Resolved(locals)
	if err := s.interp.Interpret(program); err != nil {
		return Result{Stage: StageRuntime, RuntimeErr: err.(*loxerror.RuntimeError)}
	}
	return Result{}
}

// Print writes every diagnostic in r to w, one per line, matching the
// format jlox's run_file/run_prompt print to stderr.
func (r Result) Print(w io.Writer) {
	for _, e := range r.SyntaxErrors {
		fmt.Fprintln(w, e.Error())
	}
	if r.RuntimeErr != nil {
		fmt.Fprintln(w, r.RuntimeErr.Error())
	}
}
