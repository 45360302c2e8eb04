package ast

import (
	"github.com/gomix-lang/golox/token"
	"github.com/gomix-lang/golox/value"
)

// SignalKind tags the non-local control transfer, if any, that executing a
// statement produced.
type SignalKind int

const (
	// SignalNone means the statement ran to completion with no transfer.
	SignalNone SignalKind = iota
	// SignalReturn unwinds to the nearest enclosing function call.
	SignalReturn
	// SignalBreak unwinds to the nearest enclosing loop and exits it.
	SignalBreak
	// SignalContinue unwinds to the nearest enclosing loop and re-tests
	// its condition.
	SignalContinue
)

// Signal is the tagged unwind value statement execution produces:
// return/break/continue are modeled as a value threaded explicitly through
// every visit rather than implemented with host exceptions.
type Signal struct {
	Kind  SignalKind
	Value value.Value // only meaningful when Kind == SignalReturn
}

// None is the zero Signal: no control transfer in progress.
var None = Signal{Kind: SignalNone}

// Stmt is any statement node. Accept dispatches to the matching
// StmtVisitor method and returns whatever control-transfer Signal executing
// it produced.
type Stmt interface {
	Accept(v StmtVisitor) (Signal, error)
}

// StmtVisitor is implemented by anything that walks statement nodes: the
// resolver and the interpreter.
type StmtVisitor interface {
	VisitExpressionStmt(n *ExpressionStmt) (Signal, error)
	VisitPrintStmt(n *PrintStmt) (Signal, error)
	VisitVarStmt(n *VarStmt) (Signal, error)
	VisitBlockStmt(n *BlockStmt) (Signal, error)
	VisitIfStmt(n *IfStmt) (Signal, error)
	VisitWhileStmt(n *WhileStmt) (Signal, error)
	VisitJumpStmt(n *JumpStmt) (Signal, error)
	VisitFunctionDefStmt(n *FunctionDef) (Signal, error)
	VisitReturnStmt(n *ReturnStmt) (Signal, error)
	VisitClassStmt(n *ClassStmt) (Signal, error)
}

// ExpressionStmt evaluates an expression purely for its side effects.
type ExpressionStmt struct {
	Expression Expr
}

func (n *ExpressionStmt) Accept(v StmtVisitor) (Signal, error) { return v.VisitExpressionStmt(n) }

// PrintStmt evaluates an expression and writes its stringified form.
type PrintStmt struct {
	Expression Expr
}

func (n *PrintStmt) Accept(v StmtVisitor) (Signal, error) { return v.VisitPrintStmt(n) }

// VarStmt declares a variable, optionally with an initializer.
type VarStmt struct {
	Name        token.Token
	Initializer Expr
}

func (n *VarStmt) Accept(v StmtVisitor) (Signal, error) { return v.VisitVarStmt(n) }

// BlockStmt is a `{ ... }` sequence run in its own child scope.
type BlockStmt struct {
	Statements []Stmt
}

func (n *BlockStmt) Accept(v StmtVisitor) (Signal, error) { return v.VisitBlockStmt(n) }

// IfStmt is a conditional; ElseBranch is nil when there is no `else`.
type IfStmt struct {
	Condition  Expr
	ThenBranch Stmt
	ElseBranch Stmt
}

func (n *IfStmt) Accept(v StmtVisitor) (Signal, error) { return v.VisitIfStmt(n) }

// WhileStmt is a condition-guarded loop. `for` loops are desugared into
// this plus an Init VarStmt/ExpressionStmt wrapped in a BlockStmt by the
// parser.
type WhileStmt struct {
	Condition Expr
	Body      Stmt
}

func (n *WhileStmt) Accept(v StmtVisitor) (Signal, error) { return v.VisitWhileStmt(n) }

// JumpStmt is a `break` or `continue`, distinguished by Keyword.Type.
type JumpStmt struct {
	Keyword token.Token
}

func (n *JumpStmt) Accept(v StmtVisitor) (Signal, error) { return v.VisitJumpStmt(n) }

// FunctionDef is a named function (or method) declaration.
type FunctionDef struct {
	Name     token.Token
	Function *FunctionExpr
}

func (n *FunctionDef) Accept(v StmtVisitor) (Signal, error) { return v.VisitFunctionDefStmt(n) }

// ReturnStmt returns a value (or nil, for a bare `return;`) from the
// enclosing function.
type ReturnStmt struct {
	Keyword token.Token
	Value   Expr
}

func (n *ReturnStmt) Accept(v StmtVisitor) (Signal, error) { return v.VisitReturnStmt(n) }

// ClassStmt is a named class declaration.
type ClassStmt struct {
	Name  token.Token
	Class *ClassExpr
}

func (n *ClassStmt) Accept(v StmtVisitor) (Signal, error) { return v.VisitClassStmt(n) }
