/*
Package interpreter evaluates a resolved Lox program: a tree-walking
visitor over ast.Expr/ast.Stmt that consults the resolver's side table for
variable lookups and manipulates a chain of environment.Environment scopes
to produce values and side effects.

The overall shape - a struct holding the active scope, an output writer,
and a collected (non-panicking) error slice, with CreateError-style helpers
for attaching a source token to a message - is grounded on go-mix's
eval.Evaluator (eval/evaluator.go: Scp, Writer, CreateError).
The exact expression/statement semantics come from
original_source/python/Interpreter.py.
*/
package interpreter

import (
	"fmt"
	"io"
	"os"

	"github.com/gomix-lang/golox/ast"
	"github.com/gomix-lang/golox/environment"
	"github.com/gomix-lang/golox/loxerror"
	"github.com/gomix-lang/golox/natives"
	"github.com/gomix-lang/golox/runtime"
	"github.com/gomix-lang/golox/value"
)

// Interpreter walks a resolved AST and executes it against a live
// environment chain.
type Interpreter struct {
	globals *environment.Environment
	current *environment.Environment

	// locals is the resolver's side table: it maps a variable-reference
	// (or this/super) expression to how many enclosing scopes to skip
	// when resolving it. Absence means "look it up as a global".
	locals map[ast.Expr]int

	Out io.Writer

	// metaClass is the singleton every class's own static-storage Meta
	// instance is an instance of: a class is itself an instance of a
	// singleton metaclass. It is never reachable from Lox source -
	// nothing in the grammar names it - so instantiate never actually
	// receives it in practice; the RuntimeError instantiate returns for it
	// exists purely for parity with original_source/python/Interpreter.py's
	// MetaClass, whose
	// call/arity both raise NotImplementedError.
	metaClass  *runtime.Class
	objectRoot *runtime.Class

	// Errors accumulates every runtime error an Interpret call has
	// returned over this Interpreter's lifetime; each such error also
	// aborted the call that raised it.
	Errors []*loxerror.RuntimeError
}

// New builds an Interpreter with its global scope pre-populated with the
// native functions and the implicit Object root class.
func New() *Interpreter {
	interp := &Interpreter{
		globals: environment.New(nil),
		locals:  map[ast.Expr]int{},
		Out:     os.Stdout,
	}
	interp.current = interp.globals

	interp.metaClass = &runtime.Class{Name: "lang.Class", Methods: map[string]*runtime.Function{}}
	interp.metaClass.Meta = runtime.NewInstance(interp.metaClass)

	interp.objectRoot = runtime.NewObjectRoot()
	interp.objectRoot.Meta.Class = interp.metaClass
	interp.globals.RawDefine("Object", interp.objectRoot)

	fns, _ := natives.Register()
	for name, fn := range fns {
		interp.globals.RawDefine(name, fn)
	}

	return interp
}

// GlobalNames lists every identifier Interpreter.New binds ahead of any
// user code, for the resolver's "is this a genuine global?" fallback check.
func GlobalNames() []string {
	_, names := natives.Register()
	return append(names, "Object")
}

// CurrentEnvironment implements runtime.NativeRuntime, giving the
// `environment()` native access to the scope active at its call site.
func (interp *Interpreter) CurrentEnvironment() *environment.Environment {
	return interp.current
}

// Resolved installs the resolver's side table. Must be called once, after
// resolving and before executing, a program.
func (interp *Interpreter) Resolved(locals map[ast.Expr]int) {
	interp.locals = locals
}

// Interpret runs a program's top-level statements directly against the
// current environment (interp.globals, for a fresh Interpreter) rather than
// a child scope: the resolver treats top-level declarations as unscoped
// globals with no side-table entry, so Define must land them in the same
// environment lookUpVariable falls back to, or a later top-level statement
// referencing an earlier one's var/fun/class resolves to nothing. A runtime
// error aborts execution immediately and is both recorded and returned
// (distinct from parse errors, which are collected without aborting).
func (interp *Interpreter) Interpret(program *ast.BlockStmt) error {
	_, err := interp.executeBlock(program.Statements, interp.current)
	if err != nil {
		if rerr, ok := err.(*loxerror.RuntimeError); ok {
			interp.Errors = append(interp.Errors, rerr)
		}
		return err
	}
	return nil
}

func (interp *Interpreter) print(v value.Value) {
	fmt.Fprintln(interp.Out, value.Stringify(v))
}

func (interp *Interpreter) evaluate(e ast.Expr) (value.Value, error) {
	return e.Accept(interp)
}

func (interp *Interpreter) execute(s ast.Stmt) (ast.Signal, error) {
	return s.Accept(interp)
}

// executeBlock runs statements against env, restoring the previous current
// environment on the way out (including on error/signal), mirroring
// go-mix's scoped-acquisition discipline around scope swaps.
func (interp *Interpreter) executeBlock(statements []ast.Stmt, env *environment.Environment) (ast.Signal, error) {
	previous := interp.current
	interp.current = env
	defer func() { interp.current = previous }()

	for _, s := range statements {
		signal, err := interp.execute(s)
		if err != nil {
			return ast.None, err
		}
		if signal.Kind != ast.SignalNone {
			return signal, nil
		}
	}
	return ast.None, nil
}

// lookUpVariable resolves name against either the scope chain (at the
// distance the resolver recorded for e) or, absent an entry, the true
// global environment.
func (interp *Interpreter) lookUpVariable(name string, e ast.Expr) (value.Value, error) {
	if distance, ok := interp.locals[e]; ok {
		return interp.current.GetAt(distance, name)
	}
	return interp.globals.Get(name)
}
