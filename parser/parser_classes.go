package parser

import (
	"github.com/gomix-lang/golox/ast"
	"github.com/gomix-lang/golox/token"
)

func (p *Parser) classDeclaration() (*ast.ClassStmt, error) {
	name, err := p.consume(token.Identifier, "Expect class name.")
	if err != nil {
		return nil, err
	}
	body, err := p.classBody()
	if err != nil {
		return nil, err
	}
	return &ast.ClassStmt{Name: name, Class: body}, nil
}

// classBody parses the `(< Superclass)? { members }` tail shared by named
// class declarations and anonymous `class { ... }` literals. A class with
// no explicit superclass extends the implicit root Object class, modeled
// here as a Variable reference to "Object"
// at the class keyword's line, exactly as
// original_source/bootstrap/jlox/Parser.py's classBody synthesizes it.
func (p *Parser) classBody() (*ast.ClassExpr, error) {
	var superclass ast.Expr
	hasSuperclass := false
	if p.match(token.Less) {
		superName, err := p.consume(token.Identifier, "Expect superclass name.")
		if err != nil {
			return nil, err
		}
		superclass = &ast.Variable{Name: superName}
		hasSuperclass = true
	} else {
		superclass = &ast.Variable{Name: token.New(token.Identifier, "Object", p.previous().Line)}
	}

	if _, err := p.consume(token.LeftBrace, "Expect '{' before class body."); err != nil {
		return nil, err
	}

	var methods []*ast.FunctionDef
	var staticFields []*ast.VarStmt

	for !p.check(token.RightBrace) && !p.isAtEnd() {
		if p.match(token.Static) {
			switch {
			case p.match(token.Var):
				field, err := p.varDeclaration()
				if err != nil {
					return nil, err
				}
				staticFields = append(staticFields, field)
			case p.match(token.Class):
				nested, err := p.classDeclaration()
				if err != nil {
					return nil, err
				}
				staticFields = append(staticFields, &ast.VarStmt{Name: nested.Name, Initializer: nested.Class})
			case p.match(token.Fun):
				method, err := p.functionDefinition("method")
				if err != nil {
					return nil, err
				}
				staticFields = append(staticFields, &ast.VarStmt{Name: method.Name, Initializer: method.Function})
			default:
				return nil, p.fail(p.peek(), "Static class members must begin with 'fun', 'var' or 'class'.")
			}
			continue
		}

		p.match(token.Fun) // `fun` before a method name is optional, matching the book's examples
		method, err := p.functionDefinition("method")
		if err != nil {
			return nil, err
		}
		methods = append(methods, method)
	}

	if _, err := p.consume(token.RightBrace, "Expect '}' after class body."); err != nil {
		return nil, err
	}

	return &ast.ClassExpr{Methods: methods, StaticFields: staticFields, Superclass: superclass, HasSuperclass: hasSuperclass}, nil
}
