/*
Package parser implements a recursive-descent parser for Lox.

It converts the flat token list produced by package scanner into the
program's single top-level ast.BlockStmt. Unlike go-mix's
Pratt parser (parser.Parser, table-driven via UnaryFuncs/BinaryFuncs maps),
this parser is hand-written recursive descent with one method per
precedence level, following original_source/bootstrap/jlox/Parser.py. The
go-mix's influence shows in the shape kept here regardless: a struct
holding token-stream state, a collected (non-panicking) error slice, and
small match/check/advance cursor helpers.
*/
package parser

import (
	"github.com/gomix-lang/golox/ast"
	"github.com/gomix-lang/golox/loxerror"
	"github.com/gomix-lang/golox/token"
	"github.com/gomix-lang/golox/value"
)

const maxArgs = 255

// parseError signals that a production could not continue; it is always
// also appended to Parser.Errors before being returned, so callers that
// catch it at a statement boundary need only decide whether to
// synchronize, never to format or log it themselves.
type parseError struct{ err *loxerror.SyntaxError }

func (e *parseError) Error() string { return e.err.Error() }

// Parser turns a token list into an AST, collecting every syntax error it
// encounters rather than stopping at the first one.
type Parser struct {
	tokens  []token.Token
	current int
	Errors  []*loxerror.SyntaxError
}

// New creates a Parser over a complete token list (normally the output of
// scanner.Scan, EOF-terminated).
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse consumes the entire token stream and returns the program as a
// single Block statement plus any syntax errors collected along the way.
func (p *Parser) Parse() (*ast.BlockStmt, []*loxerror.SyntaxError) {
	var statements []ast.Stmt
	for !p.isAtEnd() {
		if s := p.declaration(); s != nil {
			statements = append(statements, s)
		}
	}
	return &ast.BlockStmt{Statements: statements}, p.Errors
}

// declaration parses one top-level-or-block statement, synchronizing to
// the next statement boundary if it fails.
func (p *Parser) declaration() ast.Stmt {
	s, err := p.statement()
	if err != nil {
		p.synchronize()
		return nil
	}
	return s
}

func (p *Parser) statement() (ast.Stmt, error) {
	if p.check(token.Fun) && p.checkNext(token.Identifier) {
		p.advance()
		return p.functionDefinition("function")
	}

	switch {
	case p.match(token.Var):
		return p.varDeclaration()
	case p.match(token.LeftBrace):
		return p.blockStatement()
	case p.match(token.If):
		return p.ifStatement()
	case p.match(token.While):
		return p.whileStatement()
	case p.match(token.For):
		return p.forStatement()
	case p.match(token.Print):
		return p.printStatement()
	case p.match(token.Return):
		return p.returnStatement()
	case p.match(token.Class):
		return p.classDeclaration()
	case p.match(token.Break, token.Continue):
		return p.jumpStatement()
	}

	return p.expressionStatement()
}

func (p *Parser) printStatement() (ast.Stmt, error) {
	v, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.Semicolon, "Expect ';' after value."); err != nil {
		return nil, err
	}
	return &ast.PrintStmt{Expression: v}, nil
}

func (p *Parser) expressionStatement() (ast.Stmt, error) {
	v, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.Semicolon, "Expect ';' after expression."); err != nil {
		return nil, err
	}
	return &ast.ExpressionStmt{Expression: v}, nil
}

func (p *Parser) jumpStatement() (ast.Stmt, error) {
	keyword := p.previous()
	if _, err := p.consume(token.Semicolon, "Expect ';' after keyword statement."); err != nil {
		return nil, err
	}
	return &ast.JumpStmt{Keyword: keyword}, nil
}

func (p *Parser) returnStatement() (ast.Stmt, error) {
	keyword := p.previous()

	var v ast.Expr
	if !p.check(token.Semicolon) {
		var err error
		v, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.Semicolon, "Expect ';' after return value."); err != nil {
		return nil, err
	}
	return &ast.ReturnStmt{Keyword: keyword, Value: v}, nil
}

func (p *Parser) varDeclaration() (*ast.VarStmt, error) {
	name, err := p.consume(token.Identifier, "Expect variable name.")
	if err != nil {
		return nil, err
	}

	var init ast.Expr
	if p.match(token.Equal) {
		init, err = p.expression()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.consume(token.Semicolon, "Expect ';' after variable declaration."); err != nil {
		return nil, err
	}
	return &ast.VarStmt{Name: name, Initializer: init}, nil
}

func (p *Parser) blockStatement() (*ast.BlockStmt, error) {
	var statements []ast.Stmt
	for !p.check(token.RightBrace) && !p.isAtEnd() {
		if s := p.declaration(); s != nil {
			statements = append(statements, s)
		}
	}
	if _, err := p.consume(token.RightBrace, "Expect '}' after block."); err != nil {
		return nil, err
	}
	return &ast.BlockStmt{Statements: statements}, nil
}

func (p *Parser) ifStatement() (ast.Stmt, error) {
	if _, err := p.consume(token.LeftParen, "Expect '(' after 'if'."); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RightParen, "Expect ')' after 'if' condition."); err != nil {
		return nil, err
	}

	thenBranch, err := p.statement()
	if err != nil {
		return nil, err
	}

	var elseBranch ast.Stmt
	if p.match(token.Else) {
		elseBranch, err = p.statement()
		if err != nil {
			return nil, err
		}
	}

	return &ast.IfStmt{Condition: cond, ThenBranch: thenBranch, ElseBranch: elseBranch}, nil
}

func (p *Parser) whileStatement() (ast.Stmt, error) {
	if _, err := p.consume(token.LeftParen, "Expect '(' after 'while'."); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RightParen, "Expect ')' after 'while' condition."); err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{Condition: cond, Body: body}, nil
}

// forStatement desugars `for (init; cond; incr) body` into
// `{ init; while (cond) { body; incr; } }`.
func (p *Parser) forStatement() (ast.Stmt, error) {
	if _, err := p.consume(token.LeftParen, "Expect '(' after 'for'."); err != nil {
		return nil, err
	}

	var initializer ast.Stmt
	var err error
	switch {
	case p.match(token.Semicolon):
		initializer = nil
	case p.match(token.Var):
		initializer, err = p.varDeclaration()
	default:
		initializer, err = p.expressionStatement()
	}
	if err != nil {
		return nil, err
	}

	var condition ast.Expr
	if !p.check(token.Semicolon) {
		condition, err = p.expression()
		if err != nil {
			return nil, err
		}
	} else {
		condition = &ast.Literal{Value: value.Boolean(true)}
	}
	if _, err := p.consume(token.Semicolon, "Expect ';' after 'for' condition."); err != nil {
		return nil, err
	}

	var increment ast.Expr
	if !p.check(token.RightParen) {
		increment, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.RightParen, "Expect ')' after 'for' clauses."); err != nil {
		return nil, err
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}

	if increment != nil {
		body = &ast.BlockStmt{Statements: []ast.Stmt{body, &ast.ExpressionStmt{Expression: increment}}}
	}
	body = &ast.WhileStmt{Condition: condition, Body: body}
	if initializer != nil {
		body = &ast.BlockStmt{Statements: []ast.Stmt{initializer, body}}
	}
	return body, nil
}

func (p *Parser) functionDefinition(kind string) (*ast.FunctionDef, error) {
	name, err := p.consume(token.Identifier, "Expect "+kind+" name.")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.LeftParen, "Expect '(' after "+kind+" name."); err != nil {
		return nil, err
	}

	params, err := p.parameterList()
	if err != nil {
		return nil, err
	}

	if _, err := p.consume(token.LeftBrace, "Expect '{' before "+kind+" body."); err != nil {
		return nil, err
	}
	block, err := p.blockStatement()
	if err != nil {
		return nil, err
	}

	return &ast.FunctionDef{Name: name, Function: &ast.FunctionExpr{Params: params, Body: block.Statements}}, nil
}

func (p *Parser) parameterList() ([]token.Token, error) {
	var params []token.Token
	if !p.check(token.RightParen) {
		for {
			if len(params) >= maxArgs {
				p.recordError(p.peek(), "Can't have more than 255 parameters.")
			}
			name, err := p.consume(token.Identifier, "Expect parameter name.")
			if err != nil {
				return nil, err
			}
			params = append(params, name)
			if !p.match(token.Comma) {
				break
			}
		}
	}
	if _, err := p.consume(token.RightParen, "Expect ')' after parameters."); err != nil {
		return nil, err
	}
	return params, nil
}

// --- cursor helpers ---

func (p *Parser) match(types ...token.Type) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) check(t token.Type) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == t
}

func (p *Parser) checkNext(t token.Type) bool {
	if p.current+1 >= len(p.tokens) {
		return false
	}
	return p.tokens[p.current+1].Type == t
}

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == token.EOF
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() token.Token {
	return p.tokens[p.current-1]
}

func (p *Parser) consume(t token.Type, message string) (token.Token, error) {
	if p.check(t) {
		return p.advance(), nil
	}
	return token.Token{}, p.fail(p.peek(), message)
}

// fail records a syntax error and returns it wrapped for the caller to
// propagate up to the nearest declaration() boundary.
func (p *Parser) fail(tok token.Token, message string) error {
	return &parseError{err: p.recordError(tok, message)}
}

// recordError appends to Errors without unwinding the current production;
// used for non-fatal diagnostics (argument-limit overrun, invalid
// assignment target) that should be reported but do not stop parsing.
func (p *Parser) recordError(tok token.Token, message string) *loxerror.SyntaxError {
	e := loxerror.NewSyntaxError(tok, message)
	p.Errors = append(p.Errors, e)
	return e
}

// synchronize discards tokens until it reaches a likely statement
// boundary, so one malformed statement does not cascade into spurious
// errors for the rest of the file.
func (p *Parser) synchronize() {
	p.advance()

	for !p.isAtEnd() {
		if p.previous().Type == token.Semicolon {
			return
		}

		switch p.peek().Type {
		case token.Class, token.Fun, token.Var, token.For, token.If, token.While, token.Print, token.Return:
			return
		}

		p.advance()
	}
}
