/*
Package resolver implements the static analysis pass that runs between
parsing and evaluation: it walks the full AST once, assigns every local
variable reference a lexical scope distance (consulted later by the
interpreter through environment.GetAt/AssignAt instead of a runtime walk),
and flags a fixed set of semantic errors the grammar alone cannot catch.

The scope-stack/FunctionKind/ClassKind shape and its rules (redeclaration,
self-read-in-initializer, return/this/super placement, unreachable code,
unused locals) are grounded on original_source/bootstrap/Resolver.py. That
source's resolver predates `super`/subclass support and leaves static-member
checking as a dynamic TODO; this one adds the SUBCLASS kind and the
super-placement checks subclassing requires, and resolves static member
initializers in their own nested scope, following how
python/Interpreter.py's declareClass evaluates them at runtime.
*/
package resolver

import (
	"github.com/gomix-lang/golox/ast"
	"github.com/gomix-lang/golox/loxerror"
	"github.com/gomix-lang/golox/token"
	"github.com/gomix-lang/golox/value"
)

type functionKind int

const (
	funcNone functionKind = iota
	funcFunction
	funcMethod
	funcInitializer
)

type classKind int

const (
	classNone classKind = iota
	classClass
	classSubclass
)

type scope struct {
	defined  map[string]bool
	declared map[string]token.Token
	used     map[string]bool
}

func newScope() *scope {
	return &scope{defined: map[string]bool{}, declared: map[string]token.Token{}, used: map[string]bool{}}
}

// Resolver performs the single static pass over a parsed program.
type Resolver struct {
	scopes []*scope

	// globals names the interpreter already knows about before resolution
	// starts (native functions, the implicit Object class): a reference
	// with no matching local scope is only an error if it is absent here.
	globals map[string]bool

	sideTable map[ast.Expr]int

	currentFunction functionKind
	currentClass    classKind
	loopDepth       int
	// unreachable holds the token of the most recent return/break/continue
	// seen in straight-line flow; the next statement resolved while it is
	// non-nil is unreachable code, and it is consumed (and errored on) the
	// moment that happens. Mirrors activeJumpStatement.
	unreachable *token.Token

	Errors []*loxerror.SyntaxError
}

// New creates a Resolver. globalNames lists every identifier already bound
// in the true global environment at interpretation start (natives, Object).
func New(globalNames []string) *Resolver {
	globals := make(map[string]bool, len(globalNames))
	for _, n := range globalNames {
		globals[n] = true
	}
	return &Resolver{globals: globals, sideTable: map[ast.Expr]int{}}
}

// Resolve walks the program's statements and returns the populated side
// table (keyed by Expr identity) alongside any errors found.
func (r *Resolver) Resolve(statements []ast.Stmt) (map[ast.Expr]int, []*loxerror.SyntaxError) {
	r.resolveStmts(statements)
	return r.sideTable, r.Errors
}

func (r *Resolver) resolveStmts(statements []ast.Stmt) {
	for _, s := range statements {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(s ast.Stmt) {
	if r.unreachable != nil {
		r.error(*r.unreachable, "Unreachable code.")
		r.unreachable = nil
	}
	// error is never returned by a StmtVisitor here: resolving collects
	// errors on the side rather than aborting the walk.
	_, _ = s.Accept(r)
}

func (r *Resolver) resolveExpr(e ast.Expr) {
	if e == nil {
		return
	}
	_, _ = e.Accept(r)
}

func (r *Resolver) error(tok token.Token, message string) {
	r.Errors = append(r.Errors, loxerror.NewSyntaxError(tok, message))
}

func (r *Resolver) beginScope() { r.scopes = append(r.scopes, newScope()) }

func (r *Resolver) endScope() {
	top := r.scopes[len(r.scopes)-1]
	r.scopes = r.scopes[:len(r.scopes)-1]
	for name, tok := range top.declared {
		if !top.used[name] {
			r.error(tok, "Unused local variable.")
		}
	}
}

func (r *Resolver) peek() *scope { return r.scopes[len(r.scopes)-1] }

func (r *Resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	top := r.peek()
	if _, exists := top.defined[name.Lexeme]; exists {
		r.error(name, "Already a variable with this name in this scope.")
	}
	top.defined[name.Lexeme] = false
	top.declared[name.Lexeme] = name
}

func (r *Resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.peek().defined[name.Lexeme] = true
}

// defineRaw marks name as defined (and used, so it never triggers an
// unused-local warning) without going through declare; for synthesized
// bindings like `this` and `super`.
func (r *Resolver) defineRaw(name string) {
	top := r.peek()
	top.defined[name] = true
	top.used[name] = true
}

func (r *Resolver) resolveLocal(e ast.Expr, name token.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i].defined[name.Lexeme]; ok {
			r.scopes[i].used[name.Lexeme] = true
			r.sideTable[e] = len(r.scopes) - 1 - i
			return
		}
	}
	if !r.globals[name.Lexeme] {
		r.error(name, "Cannot access undeclared variable.")
	}
}

func (r *Resolver) resolveFunction(fn *ast.FunctionExpr, kind functionKind) {
	enclosing := r.currentFunction
	r.currentFunction = kind

	r.beginScope()
	for _, p := range fn.Params {
		r.declare(p)
		r.define(p)
	}
	r.resolveStmts(fn.Body)
	r.endScope()
	r.unreachable = nil

	r.currentFunction = enclosing
}

// --- StmtVisitor ---

func (r *Resolver) VisitBlockStmt(n *ast.BlockStmt) (ast.Signal, error) {
	r.beginScope()
	r.resolveStmts(n.Statements)
	r.endScope()
	return ast.None, nil
}

func (r *Resolver) VisitVarStmt(n *ast.VarStmt) (ast.Signal, error) {
	r.declare(n.Name)
	r.resolveExpr(n.Initializer)
	r.define(n.Name)
	return ast.None, nil
}

func (r *Resolver) VisitFunctionDefStmt(n *ast.FunctionDef) (ast.Signal, error) {
	r.declare(n.Name)
	r.define(n.Name)
	r.resolveFunction(n.Function, funcFunction)
	return ast.None, nil
}

func (r *Resolver) VisitExpressionStmt(n *ast.ExpressionStmt) (ast.Signal, error) {
	r.resolveExpr(n.Expression)
	return ast.None, nil
}

func (r *Resolver) VisitPrintStmt(n *ast.PrintStmt) (ast.Signal, error) {
	r.resolveExpr(n.Expression)
	return ast.None, nil
}

func (r *Resolver) VisitIfStmt(n *ast.IfStmt) (ast.Signal, error) {
	r.resolveExpr(n.Condition)

	r.resolveStmt(n.ThenBranch)
	thenJump := r.unreachable
	r.unreachable = nil

	if n.ElseBranch != nil {
		r.resolveStmt(n.ElseBranch)
	}
	elseJump := r.unreachable

	if thenJump == nil || elseJump == nil {
		r.unreachable = nil
	}
	return ast.None, nil
}

func (r *Resolver) VisitWhileStmt(n *ast.WhileStmt) (ast.Signal, error) {
	r.resolveExpr(n.Condition)
	r.loopDepth++
	r.resolveStmt(n.Body)
	r.unreachable = nil
	r.loopDepth--
	return ast.None, nil
}

func (r *Resolver) VisitJumpStmt(n *ast.JumpStmt) (ast.Signal, error) {
	if r.loopDepth <= 0 {
		r.error(n.Keyword, "Can't jump from outside a loop.")
	} else {
		tok := n.Keyword
		r.unreachable = &tok
	}
	return ast.None, nil
}

func (r *Resolver) VisitReturnStmt(n *ast.ReturnStmt) (ast.Signal, error) {
	isBareReturn := n.Value == nil
	r.resolveExpr(n.Value)

	switch {
	case r.currentFunction == funcNone:
		r.error(n.Keyword, "Can't return from top-level code.")
	case r.currentFunction == funcInitializer && !isBareReturn:
		r.error(n.Keyword, "Can't return a value from an initializer.")
	default:
		tok := n.Keyword
		r.unreachable = &tok
	}
	return ast.None, nil
}

func (r *Resolver) VisitClassStmt(n *ast.ClassStmt) (ast.Signal, error) {
	r.declare(n.Name)
	r.define(n.Name)
	_, err := r.VisitClassExpr(n.Class)
	return ast.None, err
}

// --- ExprVisitor ---

func (r *Resolver) VisitVariableExpr(n *ast.Variable) (value.Value, error) {
	if len(r.scopes) > 0 {
		if defined, ok := r.peek().defined[n.Name.Lexeme]; ok && !defined {
			r.error(n.Name, "Can't read local variable in its own initializer.")
		}
	}
	r.resolveLocal(n, n.Name)
	return nil, nil
}

func (r *Resolver) VisitAssignExpr(n *ast.Assign) (value.Value, error) {
	r.resolveExpr(n.Value)
	r.resolveLocal(n, n.Name)
	return nil, nil
}

func (r *Resolver) VisitBinaryExpr(n *ast.Binary) (value.Value, error) {
	r.resolveExpr(n.Left)
	r.resolveExpr(n.Right)
	return nil, nil
}

func (r *Resolver) VisitLogicalExpr(n *ast.Logical) (value.Value, error) {
	r.resolveExpr(n.Left)
	r.resolveExpr(n.Right)
	return nil, nil
}

func (r *Resolver) VisitCallExpr(n *ast.Call) (value.Value, error) {
	r.resolveExpr(n.Callee)
	for _, a := range n.Arguments {
		r.resolveExpr(a)
	}
	return nil, nil
}

func (r *Resolver) VisitGroupingExpr(n *ast.Grouping) (value.Value, error) {
	r.resolveExpr(n.Expression)
	return nil, nil
}

func (r *Resolver) VisitUnaryExpr(n *ast.Unary) (value.Value, error) {
	r.resolveExpr(n.Right)
	return nil, nil
}

func (r *Resolver) VisitLiteralExpr(n *ast.Literal) (value.Value, error) {
	return nil, nil
}

func (r *Resolver) VisitFunctionExpr(n *ast.FunctionExpr) (value.Value, error) {
	r.resolveFunction(n, funcFunction)
	return nil, nil
}

func (r *Resolver) VisitGetExpr(n *ast.Get) (value.Value, error) {
	// Field vs. method existence is checked dynamically, as in the source
	// material: the resolver has no static type information to validate
	// property names against.
	r.resolveExpr(n.Object)
	return nil, nil
}

func (r *Resolver) VisitSetExpr(n *ast.Set) (value.Value, error) {
	r.resolveExpr(n.Value)
	r.resolveExpr(n.Object)
	return nil, nil
}

func (r *Resolver) VisitThisExpr(n *ast.This) (value.Value, error) {
	if r.currentClass == classNone {
		r.error(n.Keyword, "Can't use 'this' outside of a class.")
		return nil, nil
	}
	r.resolveLocal(n, n.Keyword)
	return nil, nil
}

func (r *Resolver) VisitSuperExpr(n *ast.Super) (value.Value, error) {
	switch r.currentClass {
	case classNone:
		r.error(n.Keyword, "Can't use 'super' outside of a class.")
	case classClass:
		r.error(n.Keyword, "Can't use 'super' in a class with no superclass.")
	default:
		r.resolveLocal(n, n.Keyword)
	}
	return nil, nil
}

// VisitClassExpr resolves a class body: its explicit superclass reference,
// a `super` scope (opened for every class, mirroring the methods scope
// declareClass always creates; `super` expressions are still rejected in a
// class with no declared superclass), a `this` scope, each method, and
// finally the static
// member initializers in their own nested scope so earlier statics are
// only visible by qualifying with the class name, matching how
// python/Interpreter.py's declareClass evaluates klassLiteral.staticFields
// in a fresh child scope after the class value itself is bound.
func (r *Resolver) VisitClassExpr(n *ast.ClassExpr) (value.Value, error) {
	enclosingClass := r.currentClass
	r.currentClass = classClass
	if n.HasSuperclass {
		r.currentClass = classSubclass
		r.resolveExpr(n.Superclass)
	}

	r.beginScope()
	r.defineRaw("super")

	r.beginScope()
	r.defineRaw("this")

	for _, m := range n.Methods {
		kind := funcMethod
		if m.Name.Lexeme == "init" {
			kind = funcInitializer
		}
		r.resolveFunction(m.Function, kind)
	}

	r.endScope() // this
	r.endScope() // super

	// A static initializer referencing the class by its own name resolves
	// through this scope out to wherever declare/define put the class name:
	// the enclosing function/block scope for a nested class declaration, or
	// (since declare/define are no-ops at top level) the resolver's globals
	// fallback for a top-level one - interp_classes.go's declareClass keeps
	// the runtime environment chain in the same shape, so the two stay in
	// sync.
	r.beginScope()
	for _, f := range n.StaticFields {
		r.resolveExpr(f.Initializer)
	}
	r.endScope()

	r.currentClass = enclosingClass
	return nil, nil
}
