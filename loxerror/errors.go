/*
Package loxerror defines the two error shapes Lox program failures take:
a SyntaxError (scan/parse/resolve time, reports a location) and a
RuntimeError (evaluation time, carries the offending token for its line).

Message formats are taken verbatim from original_source/bootstrap/jlox.py's
error reporting (`report`/`runtime_error`), the source this interpreter's
diagnostics are grounded on; go-mix's eval.CreateError
supplied the pattern of attaching a source token to an error value rather
than formatting a string immediately.
*/
package loxerror

import (
	"fmt"

	"github.com/gomix-lang/golox/token"
)

// SyntaxError is a scan-time or parse-time or resolve-time failure reported
// against a line and, optionally, a specific lexeme.
type SyntaxError struct {
	Line  int
	Where string // e.g. " at 'foo'", " at end" for end-of-file, or "" for scan errors
	Msg   string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("[line %d] Error%s: %s", e.Line, e.Where, e.Msg)
}

// NewSyntaxError builds a SyntaxError from the offending token: EOF tokens
// report "at end", all others report "at '<lexeme>'".
func NewSyntaxError(tok token.Token, msg string) *SyntaxError {
	where := " at '" + tok.Lexeme + "'"
	if tok.Type == token.EOF {
		where = " at end"
	}
	return &SyntaxError{Line: tok.Line, Where: where, Msg: msg}
}

// NewScanError builds a SyntaxError directly from a line, for failures the
// scanner detects before any token exists (unterminated string, bad char).
func NewScanError(line int, msg string) *SyntaxError {
	return &SyntaxError{Line: line, Msg: msg}
}

// RuntimeError is a failure raised while executing a resolved program: a
// type mismatch, an undefined property, a division by zero, and so on. It
// carries the token whose evaluation triggered it so the line can be
// reported without threading a line number through every interpreter call.
type RuntimeError struct {
	Token token.Token
	Msg   string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d]", e.Msg, e.Token.Line)
}

// NewRuntimeError constructs a RuntimeError anchored at tok.
func NewRuntimeError(tok token.Token, format string, args ...any) *RuntimeError {
	return &RuntimeError{Token: tok, Msg: fmt.Sprintf(format, args...)}
}
