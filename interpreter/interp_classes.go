package interpreter

import (
	"github.com/gomix-lang/golox/ast"
	"github.com/gomix-lang/golox/environment"
	"github.com/gomix-lang/golox/loxerror"
	"github.com/gomix-lang/golox/runtime"
	"github.com/gomix-lang/golox/token"
	"github.com/gomix-lang/golox/value"
)

func (interp *Interpreter) VisitClassStmt(n *ast.ClassStmt) (ast.Signal, error) {
	_, err := interp.declareClass(n.Class, n.Name.Lexeme)
	return ast.None, err
}

// declareClass builds a runtime.Class from a ClassExpr. className is empty
// for anonymous `class { ... }` literals (classExpr used as an expression),
// non-empty for named declarations.
//
// Grounded on original_source/python/Interpreter.py's declareClass:
//   - the superclass expression is evaluated and must be a Class;
//   - for a named class, the name is pre-declared (bound to nil) in the
//     current scope after the superclass is evaluated and before the methods
//     are built, so methods can refer to their own class recursively;
//   - every method closes over a shared "methods scope" that rawDefines
//     `super`, one level further out than the `this` scope Function.Bind
//     later introduces - the reason VisitSuperExpr reads `this` at
//     distance-1 from wherever `super` resolved;
//   - static field initializers run in a fresh child scope, installed onto
//     the class's own static storage rather than into that scope.
func (interp *Interpreter) declareClass(classExpr *ast.ClassExpr, className string) (*runtime.Class, error) {
	superVal, err := interp.evaluate(classExpr.Superclass)
	if err != nil {
		return nil, err
	}
	superclass, ok := superVal.(*runtime.Class)
	if !ok {
		return nil, loxerror.NewRuntimeError(superclassToken(classExpr.Superclass), "Superclass must be a class.")
	}

	name := className
	if name == "" {
		name = "anon"
	}
	if className != "" {
		interp.current.RawDefine(className, value.NilValue)
	}

	methodsScope := environment.New(interp.current)
	methodsScope.RawDefine("super", superclass)

	methods := make(map[string]*runtime.Function, len(classExpr.Methods))
	for _, m := range classExpr.Methods {
		methods[m.Name.Lexeme] = &runtime.Function{
			Name:          name + "::" + m.Name.Lexeme,
			Decl:          m.Function,
			Closure:       methodsScope,
			IsInitializer: m.Name.Lexeme == "init",
		}
	}

	class := &runtime.Class{Name: name, Superclass: superclass, Methods: methods}
	class.Meta = runtime.NewInstance(interp.metaClass)

	if className != "" {
		interp.current.RawDefine(className, class)
	}

	staticsScope := environment.New(interp.current)
	previous := interp.current
	interp.current = staticsScope
	for _, field := range classExpr.StaticFields {
		v, err := interp.evaluate(field.Initializer)
		if err != nil {
			interp.current = previous
			return nil, err
		}
		if fn, ok := v.(*runtime.Function); ok {
			v = &runtime.Function{Name: "static " + name + "::" + field.Name.Lexeme, Decl: fn.Decl, Closure: staticsScope}
		}
		class.SetStatic(field.Name.Lexeme, v)
	}
	interp.current = previous

	return class, nil
}

// superclassToken recovers the token naming the superclass for error
// reporting. The parser only ever produces a Variable here (either an
// explicit `< Name` or the synthesized `Object` reference), so the
// assertion is safe.
func superclassToken(e ast.Expr) token.Token {
	return e.(*ast.Variable).Name
}
