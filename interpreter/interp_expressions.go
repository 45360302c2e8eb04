package interpreter

import (
	"math"

	"github.com/gomix-lang/golox/ast"
	"github.com/gomix-lang/golox/environment"
	"github.com/gomix-lang/golox/loxerror"
	"github.com/gomix-lang/golox/runtime"
	"github.com/gomix-lang/golox/token"
	"github.com/gomix-lang/golox/value"
)

func (interp *Interpreter) VisitLiteralExpr(n *ast.Literal) (value.Value, error) {
	return n.Value, nil
}

func (interp *Interpreter) VisitGroupingExpr(n *ast.Grouping) (value.Value, error) {
	return interp.evaluate(n.Expression)
}

func (interp *Interpreter) VisitUnaryExpr(n *ast.Unary) (value.Value, error) {
	right, err := interp.evaluate(n.Right)
	if err != nil {
		return nil, err
	}

	switch n.Operator.Type {
	case token.Minus:
		num, ok := right.(value.Number)
		if !ok {
			return nil, loxerror.NewRuntimeError(n.Operator, "Operand must be a number.")
		}
		return -num, nil
	case token.Bang:
		return value.Boolean(!value.Truthy(right)), nil
	}
	return nil, loxerror.NewRuntimeError(n.Operator, "Unknown unary operator.")
}

func (interp *Interpreter) VisitBinaryExpr(n *ast.Binary) (value.Value, error) {
	left, err := interp.evaluate(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := interp.evaluate(n.Right)
	if err != nil {
		return nil, err
	}

	switch n.Operator.Type {
	case token.EqualEqual:
		return value.Boolean(value.Equal(left, right)), nil
	case token.BangEqual:
		return value.Boolean(!value.Equal(left, right)), nil
	case token.Plus:
		return interp.evalPlus(n.Operator, left, right)
	}

	lnum, lok := left.(value.Number)
	rnum, rok := right.(value.Number)
	if !lok || !rok {
		return nil, loxerror.NewRuntimeError(n.Operator, "Operands must be numbers.")
	}

	switch n.Operator.Type {
	case token.Minus:
		return lnum - rnum, nil
	case token.Star:
		return lnum * rnum, nil
	case token.Slash:
		if rnum == 0 {
			return nil, loxerror.NewRuntimeError(n.Operator, "Right operand must not be zero.")
		}
		return lnum / rnum, nil
	case token.StarStar:
		return value.Number(math.Pow(float64(lnum), float64(rnum))), nil
	case token.Greater:
		return value.Boolean(lnum > rnum), nil
	case token.GreaterEqual:
		return value.Boolean(lnum >= rnum), nil
	case token.Less:
		return value.Boolean(lnum < rnum), nil
	case token.LessEqual:
		return value.Boolean(lnum <= rnum), nil
	}
	return nil, loxerror.NewRuntimeError(n.Operator, "Unknown binary operator.")
}

// evalPlus implements `+`'s overload: numeric addition, string
// concatenation, and nothing else.
func (interp *Interpreter) evalPlus(op token.Token, left, right value.Value) (value.Value, error) {
	if lnum, ok := left.(value.Number); ok {
		if rnum, ok := right.(value.Number); ok {
			return lnum + rnum, nil
		}
	}
	if lstr, ok := left.(value.String); ok {
		if rstr, ok := right.(value.String); ok {
			return lstr + rstr, nil
		}
	}
	return nil, loxerror.NewRuntimeError(op, "Operands must be two numbers or two strings.")
}

func (interp *Interpreter) VisitLogicalExpr(n *ast.Logical) (value.Value, error) {
	left, err := interp.evaluate(n.Left)
	if err != nil {
		return nil, err
	}

	if n.Operator.Type == token.Or {
		if value.Truthy(left) {
			return left, nil
		}
	} else {
		if !value.Truthy(left) {
			return left, nil
		}
	}
	return interp.evaluate(n.Right)
}

func (interp *Interpreter) VisitVariableExpr(n *ast.Variable) (value.Value, error) {
	v, err := interp.lookUpVariable(n.Name.Lexeme, n)
	if err != nil {
		return nil, loxerror.NewRuntimeError(n.Name, "Undefined variable '%s'.", n.Name.Lexeme)
	}
	return v, nil
}

func (interp *Interpreter) VisitAssignExpr(n *ast.Assign) (value.Value, error) {
	v, err := interp.evaluate(n.Value)
	if err != nil {
		return nil, err
	}

	if distance, ok := interp.locals[n]; ok {
		interp.current.AssignAt(distance, n.Name.Lexeme, v)
		return v, nil
	}
	if err := interp.globals.Assign(n.Name.Lexeme, v); err != nil {
		return nil, loxerror.NewRuntimeError(n.Name, "Undefined variable '%s'.", n.Name.Lexeme)
	}
	return v, nil
}

func (interp *Interpreter) VisitCallExpr(n *ast.Call) (value.Value, error) {
	callee, err := interp.evaluate(n.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]value.Value, 0, len(n.Arguments))
	for _, a := range n.Arguments {
		v, err := interp.evaluate(a)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	callable, ok := callee.(value.Callable)
	if !ok {
		return nil, loxerror.NewRuntimeError(n.Paren, "Can only call functions and classes.")
	}
	if len(args) != callable.Arity() {
		return nil, loxerror.NewRuntimeError(n.Paren, "Expected %d arguments but got %d.", callable.Arity(), len(args))
	}

	return interp.call(n.Paren, callable, args)
}

// call dispatches by the callee's concrete type rather than through a
// shared Call method (see package value's Callable doc and package
// runtime's doc comment for why).
func (interp *Interpreter) call(paren token.Token, callable value.Callable, args []value.Value) (value.Value, error) {
	switch fn := callable.(type) {
	case *runtime.NativeFunction:
		return fn.Fn(interp, args)
	case *runtime.Function:
		return interp.callFunction(fn, args)
	case *runtime.Class:
		return interp.instantiate(paren, fn, args)
	default:
		return nil, loxerror.NewRuntimeError(paren, "Can only call functions and classes.")
	}
}

func (interp *Interpreter) callFunction(fn *runtime.Function, args []value.Value) (value.Value, error) {
	env := environment.New(fn.Closure)
	for i, param := range fn.Decl.Params {
		env.RawDefine(param.Lexeme, args[i])
	}

	signal, err := interp.executeBlock(fn.Decl.Body, env)
	if err != nil {
		return nil, err
	}

	if fn.IsInitializer {
		this, _ := fn.Closure.GetAt(0, "this")
		return this, nil
	}
	if signal.Kind == ast.SignalReturn {
		return signal.Value, nil
	}
	return value.NilValue, nil
}

// instantiate implements `ClassName(args...)`: a fresh Instance, its
// `init` bound and invoked if present.
func (interp *Interpreter) instantiate(paren token.Token, class *runtime.Class, args []value.Value) (value.Value, error) {
	if class == interp.metaClass {
		return nil, loxerror.NewRuntimeError(paren, "The metaclass cannot be instantiated.")
	}

	instance := runtime.NewInstance(class)
	if init, ok := class.FindMethod("init"); ok {
		if _, err := interp.callFunction(init.Bind(instance), args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

func (interp *Interpreter) VisitGetExpr(n *ast.Get) (value.Value, error) {
	obj, err := interp.evaluate(n.Object)
	if err != nil {
		return nil, err
	}

	switch target := obj.(type) {
	case *runtime.Instance:
		if v, ok := target.Get(n.Name.Lexeme); ok {
			return v, nil
		}
		return nil, loxerror.NewRuntimeError(n.Name, "Undefined property '%s'.", n.Name.Lexeme)
	case *runtime.Class:
		if v, ok := target.GetStatic(n.Name.Lexeme); ok {
			return v, nil
		}
		return nil, loxerror.NewRuntimeError(n.Name, "Undefined property '%s'.", n.Name.Lexeme)
	}
	return nil, loxerror.NewRuntimeError(n.Name, "Only instances have properties.")
}

func (interp *Interpreter) VisitSetExpr(n *ast.Set) (value.Value, error) {
	obj, err := interp.evaluate(n.Object)
	if err != nil {
		return nil, err
	}

	v, err := interp.evaluate(n.Value)
	if err != nil {
		return nil, err
	}

	switch target := obj.(type) {
	case *runtime.Instance:
		target.Set(n.Name.Lexeme, v)
		return v, nil
	case *runtime.Class:
		target.SetStatic(n.Name.Lexeme, v)
		return v, nil
	}
	return nil, loxerror.NewRuntimeError(n.Name, "Only instances have fields.")
}

func (interp *Interpreter) VisitThisExpr(n *ast.This) (value.Value, error) {
	v, err := interp.lookUpVariable("this", n)
	if err != nil {
		return nil, loxerror.NewRuntimeError(n.Keyword, "Undefined variable 'this'.")
	}
	return v, nil
}

// VisitSuperExpr implements `super.method`: `super` is bound one scope
// further out than `this` (see runtime.Function.Bind and the
// class-declaration wiring in interp_classes.go for why the distance is
// off by exactly one).
func (interp *Interpreter) VisitSuperExpr(n *ast.Super) (value.Value, error) {
	distance, ok := interp.locals[n]
	if !ok {
		return nil, loxerror.NewRuntimeError(n.Keyword, "Used 'super' outside a method.")
	}

	superVal, err := interp.current.GetAt(distance, "super")
	if err != nil {
		return nil, loxerror.NewRuntimeError(n.Keyword, "Used 'super' outside a method.")
	}
	superclass, ok := superVal.(*runtime.Class)
	if !ok {
		return nil, loxerror.NewRuntimeError(n.Keyword, "Used 'super' outside a method.")
	}

	thisVal, err := interp.current.GetAt(distance-1, "this")
	if err != nil {
		return nil, loxerror.NewRuntimeError(n.Keyword, "Used 'super' outside a method.")
	}
	instance := thisVal.(*runtime.Instance)

	method, ok := superclass.FindMethod(n.Method.Lexeme)
	if !ok {
		return nil, loxerror.NewRuntimeError(n.Method, "Undefined property '%s'.", n.Method.Lexeme)
	}
	return method.Bind(instance), nil
}

func (interp *Interpreter) VisitFunctionExpr(n *ast.FunctionExpr) (value.Value, error) {
	return &runtime.Function{Decl: n, Closure: interp.current}, nil
}

func (interp *Interpreter) VisitClassExpr(n *ast.ClassExpr) (value.Value, error) {
	return interp.declareClass(n, "")
}
