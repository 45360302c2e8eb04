package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gomix-lang/golox/ast"
	"github.com/gomix-lang/golox/parser"
	"github.com/gomix-lang/golox/scanner"
)

func resolve(t *testing.T, src string, globals ...string) (map[ast.Expr]int, []string) {
	t.Helper()
	toks, scanErrs := scanner.New(src).Scan()
	require.Empty(t, scanErrs)
	program, parseErrs := parser.New(toks).Parse()
	require.Empty(t, parseErrs)

	locals, errs := New(globals).Resolve(program.Statements)
	messages := make([]string, len(errs))
	for i, e := range errs {
		messages[i] = e.Msg
	}
	return locals, messages
}

func TestResolve_LocalVariableGetsDistanceZero(t *testing.T) {
	toks, _ := scanner.New("{ var a = 1; print a; }").Scan()
	program, _ := parser.New(toks).Parse()
	locals, errs := New(nil).Resolve(program.Statements)
	require.Empty(t, errs)

	block := program.Statements[0].(*ast.BlockStmt)
	printStmt := block.Statements[1].(*ast.PrintStmt)
	variable := printStmt.Expression.(*ast.Variable)

	dist, ok := locals[variable]
	require.True(t, ok)
	assert.Equal(t, 0, dist)
}

func TestResolve_OuterVariableGetsPositiveDistance(t *testing.T) {
	toks, _ := scanner.New("{ var a = 1; { print a; } }").Scan()
	program, _ := parser.New(toks).Parse()
	locals, errs := New(nil).Resolve(program.Statements)
	require.Empty(t, errs)

	outer := program.Statements[0].(*ast.BlockStmt)
	inner := outer.Statements[1].(*ast.BlockStmt)
	printStmt := inner.Statements[0].(*ast.PrintStmt)
	variable := printStmt.Expression.(*ast.Variable)

	assert.Equal(t, 1, locals[variable])
}

func TestResolve_GlobalReferenceHasNoDistanceAndNoError(t *testing.T) {
	locals, errs := resolve(t, "print clock;", "clock")
	assert.Empty(t, errs)
	assert.Empty(t, locals)
}

func TestResolve_UndeclaredGlobalIsError(t *testing.T) {
	_, errs := resolve(t, "print mystery;")
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "Cannot access undeclared variable")
}

func TestResolve_SelfReferenceInInitializerIsError(t *testing.T) {
	_, errs := resolve(t, "{ var a = a; }")
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0], "Can't read local variable in its own initializer")
}

func TestResolve_RedeclarationInSameScopeIsError(t *testing.T) {
	_, errs := resolve(t, "{ var a = 1; var a = 2; }")
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0], "Already a variable with this name in this scope")
}

func TestResolve_UnusedLocalIsError(t *testing.T) {
	_, errs := resolve(t, "{ var a = 1; }")
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0], "Unused local variable")
}

func TestResolve_ReturnOutsideFunctionIsError(t *testing.T) {
	_, errs := resolve(t, "return 1;")
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0], "Can't return from top-level code")
}

func TestResolve_ReturnValueFromInitializerIsError(t *testing.T) {
	_, errs := resolve(t, "class A { init() { return 1; } }")
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0], "Can't return a value from an initializer")
}

func TestResolve_BareReturnFromInitializerIsFine(t *testing.T) {
	_, errs := resolve(t, "class A { init() { return; } }")
	assert.Empty(t, errs)
}

func TestResolve_ThisOutsideClassIsError(t *testing.T) {
	_, errs := resolve(t, "print this;")
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0], "Can't use 'this' outside of a class")
}

func TestResolve_SuperOutsideClassIsError(t *testing.T) {
	_, errs := resolve(t, "print super.foo;")
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0], "Can't use 'super' outside of a class")
}

func TestResolve_SuperInClassWithNoExplicitSuperclassIsError(t *testing.T) {
	_, errs := resolve(t, "class A { m() { super.m(); } }")
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0], "Can't use 'super' in a class with no superclass")
}

func TestResolve_SuperInSubclassResolvesWithoutError(t *testing.T) {
	_, errs := resolve(t, "class A {} class B < A { m() { super.m(); } }", "A")
	assert.Empty(t, errs)
}

func TestResolve_JumpOutsideLoopIsError(t *testing.T) {
	_, errs := resolve(t, "break;")
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0], "Can't jump from outside a loop")
}

func TestResolve_UnreachableCodeAfterReturnIsError(t *testing.T) {
	_, errs := resolve(t, "fun f() { return 1; print 2; }")
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0], "Unreachable code")
}

func TestResolve_IfBothBranchesReturnIsUnreachableAfter(t *testing.T) {
	_, errs := resolve(t, "fun f() { if (true) { return 1; } else { return 2; } print 3; }")
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0], "Unreachable code")
}

func TestResolve_IfOnlyOneBranchReturnsIsNotUnreachableAfter(t *testing.T) {
	_, errs := resolve(t, "fun f() { if (true) { return 1; } print 2; }")
	assert.Empty(t, errs)
}
