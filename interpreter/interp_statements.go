package interpreter

import (
	"github.com/gomix-lang/golox/ast"
	"github.com/gomix-lang/golox/environment"
	"github.com/gomix-lang/golox/loxerror"
	"github.com/gomix-lang/golox/runtime"
	"github.com/gomix-lang/golox/value"
)

func (interp *Interpreter) VisitExpressionStmt(n *ast.ExpressionStmt) (ast.Signal, error) {
	_, err := interp.evaluate(n.Expression)
	return ast.None, err
}

func (interp *Interpreter) VisitPrintStmt(n *ast.PrintStmt) (ast.Signal, error) {
	v, err := interp.evaluate(n.Expression)
	if err != nil {
		return ast.None, err
	}
	interp.print(v)
	return ast.None, nil
}

func (interp *Interpreter) VisitVarStmt(n *ast.VarStmt) (ast.Signal, error) {
	v := value.Value(value.NilValue)
	if n.Initializer != nil {
		var err error
		v, err = interp.evaluate(n.Initializer)
		if err != nil {
			return ast.None, err
		}
	}
	if err := interp.current.Define(n.Name.Lexeme, v); err != nil {
		return ast.None, loxerror.NewRuntimeError(n.Name, "%s", err.Error())
	}
	return ast.None, nil
}

func (interp *Interpreter) VisitBlockStmt(n *ast.BlockStmt) (ast.Signal, error) {
	return interp.executeBlock(n.Statements, environment.New(interp.current))
}

func (interp *Interpreter) VisitIfStmt(n *ast.IfStmt) (ast.Signal, error) {
	cond, err := interp.evaluate(n.Condition)
	if err != nil {
		return ast.None, err
	}
	if value.Truthy(cond) {
		return interp.execute(n.ThenBranch)
	}
	if n.ElseBranch != nil {
		return interp.execute(n.ElseBranch)
	}
	return ast.None, nil
}

func (interp *Interpreter) VisitWhileStmt(n *ast.WhileStmt) (ast.Signal, error) {
	for {
		cond, err := interp.evaluate(n.Condition)
		if err != nil {
			return ast.None, err
		}
		if !value.Truthy(cond) {
			return ast.None, nil
		}

		signal, err := interp.execute(n.Body)
		if err != nil {
			return ast.None, err
		}
		switch signal.Kind {
		case ast.SignalBreak:
			return ast.None, nil
		case ast.SignalReturn:
			return signal, nil
		case ast.SignalContinue:
			// fall through to re-test the condition
		}
	}
}

func (interp *Interpreter) VisitJumpStmt(n *ast.JumpStmt) (ast.Signal, error) {
	if n.Keyword.Lexeme == "break" {
		return ast.Signal{Kind: ast.SignalBreak}, nil
	}
	return ast.Signal{Kind: ast.SignalContinue}, nil
}

func (interp *Interpreter) VisitReturnStmt(n *ast.ReturnStmt) (ast.Signal, error) {
	v := value.Value(value.NilValue)
	if n.Value != nil {
		var err error
		v, err = interp.evaluate(n.Value)
		if err != nil {
			return ast.None, err
		}
	}
	return ast.Signal{Kind: ast.SignalReturn, Value: v}, nil
}

func (interp *Interpreter) VisitFunctionDefStmt(n *ast.FunctionDef) (ast.Signal, error) {
	fn := &runtime.Function{Name: n.Name.Lexeme, Decl: n.Function, Closure: interp.current}
	if err := interp.current.Define(n.Name.Lexeme, fn); err != nil {
		return ast.None, loxerror.NewRuntimeError(n.Name, "%s", err.Error())
	}
	return ast.None, nil
}
