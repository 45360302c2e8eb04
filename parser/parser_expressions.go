package parser

import (
	"github.com/gomix-lang/golox/ast"
	"github.com/gomix-lang/golox/token"
	"github.com/gomix-lang/golox/value"
)

func (p *Parser) expression() (ast.Expr, error) {
	return p.assignment()
}

// assignment is the lowest-precedence production. Its left side is parsed
// as a full `or` expression and only reinterpreted as an assignment target
// after the fact: a Variable becomes an Assign, a Get becomes a Set, and
// anything else is an invalid target recorded as a non-fatal error (the
// parser keeps the already-parsed expression rather than aborting).
func (p *Parser) assignment() (ast.Expr, error) {
	left, err := p.or()
	if err != nil {
		return nil, err
	}

	if p.match(token.Equal) {
		equals := p.previous()
		rhs, err := p.assignment()
		if err != nil {
			return nil, err
		}

		switch target := left.(type) {
		case *ast.Variable:
			return &ast.Assign{Name: target.Name, Value: rhs}, nil
		case *ast.Get:
			return &ast.Set{Object: target.Object, Name: target.Name, Value: rhs}, nil
		default:
			p.recordError(equals, "Invalid assignment target.")
		}
	}

	return left, nil
}

func (p *Parser) or() (ast.Expr, error) {
	left, err := p.and()
	if err != nil {
		return nil, err
	}
	for p.match(token.Or) {
		op := p.previous()
		right, err := p.and()
		if err != nil {
			return nil, err
		}
		left = &ast.Logical{Left: left, Operator: op, Right: right}
	}
	return left, nil
}

func (p *Parser) and() (ast.Expr, error) {
	left, err := p.equality()
	if err != nil {
		return nil, err
	}
	for p.match(token.And) {
		op := p.previous()
		right, err := p.equality()
		if err != nil {
			return nil, err
		}
		left = &ast.Logical{Left: left, Operator: op, Right: right}
	}
	return left, nil
}

func (p *Parser) equality() (ast.Expr, error) {
	return p.binaryLevel(p.comparison, token.BangEqual, token.EqualEqual)
}

func (p *Parser) comparison() (ast.Expr, error) {
	return p.binaryLevel(p.term, token.Greater, token.GreaterEqual, token.Less, token.LessEqual)
}

func (p *Parser) term() (ast.Expr, error) {
	return p.binaryLevel(p.factor, token.Minus, token.Plus)
}

func (p *Parser) factor() (ast.Expr, error) {
	return p.binaryLevel(p.exponent, token.Slash, token.Star)
}

// exponent parses `**`, which is right-associative: 2 ** 3 ** 2 is
// 2 ** (3 ** 2).
func (p *Parser) exponent() (ast.Expr, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	if p.match(token.StarStar) {
		op := p.previous()
		right, err := p.exponent()
		if err != nil {
			return nil, err
		}
		return &ast.Binary{Left: left, Operator: op, Right: right}, nil
	}
	return left, nil
}

// binaryLevel parses one left-associative binary precedence level: nextDown
// once, then zero or more (operator nextDown) pairs, each folding into a
// left-nested Binary node.
func (p *Parser) binaryLevel(nextDown func() (ast.Expr, error), types ...token.Type) (ast.Expr, error) {
	left, err := nextDown()
	if err != nil {
		return nil, err
	}
	for p.match(types...) {
		op := p.previous()
		right, err := nextDown()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Left: left, Operator: op, Right: right}
	}
	return left, nil
}

func (p *Parser) unary() (ast.Expr, error) {
	if p.match(token.Bang, token.Minus) {
		op := p.previous()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Operator: op, Right: right}, nil
	}
	return p.call()
}

func (p *Parser) call() (ast.Expr, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}

	for {
		switch {
		case p.match(token.LeftParen):
			expr, err = p.finishCall(expr)
			if err != nil {
				return nil, err
			}
		case p.match(token.Dot):
			name, err := p.consume(token.Identifier, "Expect property name after '.'.")
			if err != nil {
				return nil, err
			}
			expr = &ast.Get{Object: expr, Name: name}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) finishCall(callee ast.Expr) (ast.Expr, error) {
	var args []ast.Expr
	if !p.check(token.RightParen) {
		for {
			if len(args) >= maxArgs {
				p.recordError(p.peek(), "Can't have more than 255 arguments.")
			}
			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.match(token.Comma) {
				break
			}
		}
	}
	paren, err := p.consume(token.RightParen, "Expect ')' after arguments.")
	if err != nil {
		return nil, err
	}
	return &ast.Call{Callee: callee, Paren: paren, Arguments: args}, nil
}

func (p *Parser) primary() (ast.Expr, error) {
	switch {
	case p.match(token.False):
		return &ast.Literal{Value: value.Boolean(false)}, nil
	case p.match(token.True):
		return &ast.Literal{Value: value.Boolean(true)}, nil
	case p.match(token.Nil):
		return &ast.Literal{Value: value.NilValue}, nil
	case p.match(token.Number):
		return &ast.Literal{Value: value.Number(p.previous().Literal.(float64))}, nil
	case p.match(token.String):
		return &ast.Literal{Value: value.String(p.previous().Literal.(string))}, nil
	case p.match(token.Identifier):
		return &ast.Variable{Name: p.previous()}, nil
	case p.match(token.This):
		return &ast.This{Keyword: p.previous()}, nil
	case p.match(token.Super):
		keyword := p.previous()
		if _, err := p.consume(token.Dot, "Expect '.' after 'super'."); err != nil {
			return nil, err
		}
		method, err := p.consume(token.Identifier, "Expect superclass method name.")
		if err != nil {
			return nil, err
		}
		return &ast.Super{Keyword: keyword, Method: method}, nil
	case p.match(token.LeftParen):
		inner, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.RightParen, "Expect ')' after expression."); err != nil {
			return nil, err
		}
		return &ast.Grouping{Expression: inner}, nil
	}

	// Anonymous function literal: `fun(params) { body }`.
	if p.check(token.Fun) && p.checkNext(token.LeftParen) {
		p.advance()
		p.advance()
		params, err := p.parameterList()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.LeftBrace, "Expect '{' before anonymous function body."); err != nil {
			return nil, err
		}
		block, err := p.blockStatement()
		if err != nil {
			return nil, err
		}
		return &ast.FunctionExpr{Params: params, Body: block.Statements}, nil
	}

	// Anonymous class literal: `class { ... }` (no name following `class`).
	if p.check(token.Class) && !p.checkNext(token.Identifier) {
		p.advance()
		return p.classBody()
	}

	return nil, p.fail(p.peek(), "Expect expression.")
}
