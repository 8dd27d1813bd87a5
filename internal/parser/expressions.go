package parser

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/funvibe/procheck/internal/ast"
	"github.com/funvibe/procheck/internal/diagnostics"
	"github.com/funvibe/procheck/internal/token"
)

func (p *Parser) parseExpression(precedence int) ast.Expression {
	p.depth++
	defer func() { p.depth-- }()

	if p.depth > MaxRecursionDepth {
		p.addError(diagnostics.ErrP002, p.curToken,
			"expression too complex: recursion depth limit exceeded")
		p.skipToStatementBoundary()
		return nil
	}

	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.addError(diagnostics.ErrP002, p.curToken,
			fmt.Sprintf("unexpected token %s in expression", p.curToken.Type))
		return nil
	}
	leftExp := prefix()

	for leftExp != nil && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return leftExp
		}
		p.nextToken()
		leftExp = infix(leftExp)
	}
	return leftExp
}

func (p *Parser) parseIdentifierExpression() ast.Expression {
	ident := &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}

	// Uppercase identifier followed by '{' is record construction.
	if p.peekTokenIs(token.LBRACE) && startsUpper(ident.Value) {
		p.nextToken()
		return p.parseRecordLiteral(ident)
	}
	return ident
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Literal.(string)}
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	return &ast.IntegerLiteral{Token: p.curToken, Value: p.curToken.Literal.(int64)}
}

// parseTemplateLiteral splits the raw TEMPLATE contents into literal
// parts and ${name} identifier holes. Holes are restricted to bare
// identifiers; arbitrary expressions inside holes are not supported.
func (p *Parser) parseTemplateLiteral() ast.Expression {
	tok := p.curToken
	raw := tok.Literal.(string)
	lit := &ast.TemplateLiteral{Token: tok}

	rest := raw
	for {
		idx := strings.Index(rest, "${")
		if idx < 0 {
			lit.Parts = append(lit.Parts, rest)
			break
		}
		end := strings.Index(rest[idx:], "}")
		if end < 0 {
			p.addError(diagnostics.ErrP001, tok, "unterminated ${ in template string")
			return nil
		}
		name := strings.TrimSpace(rest[idx+2 : idx+end])
		if !isIdentName(name) {
			p.addError(diagnostics.ErrP001, tok,
				fmt.Sprintf("template hole %q must be a bare identifier", name))
			return nil
		}
		lit.Parts = append(lit.Parts, rest[:idx])
		lit.Holes = append(lit.Holes, &ast.Identifier{
			Token: token.Token{Type: token.IDENT, Lexeme: name, Literal: name, Line: tok.Line, Column: tok.Column},
			Value: name,
		})
		rest = rest[idx+end+1:]
	}
	return lit
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	expression := &ast.InfixExpression{
		Token:    p.curToken,
		Operator: p.curToken.Literal.(string),
		Left:     left,
	}

	precedence := p.curPrecedence()
	p.nextToken()
	expression.Right = p.parseExpression(precedence)
	if expression.Right == nil {
		return nil
	}
	return expression
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken()
	exp := p.parseExpression(LOWEST)
	if exp == nil || !p.expectPeek(token.RPAREN) {
		return nil
	}
	return exp
}

func (p *Parser) parseCallExpression(left ast.Expression) ast.Expression {
	fn, ok := left.(*ast.Identifier)
	if !ok {
		p.addError(diagnostics.ErrP001, p.curToken, "only named functions can be called")
		return nil
	}
	call := &ast.CallExpression{Token: p.curToken, Function: fn}

	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return call
	}

	p.nextToken()
	arg := p.parseExpression(LOWEST)
	if arg == nil {
		return nil
	}
	call.Arguments = append(call.Arguments, arg)

	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		arg := p.parseExpression(LOWEST)
		if arg == nil {
			return nil
		}
		call.Arguments = append(call.Arguments, arg)
	}

	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return call
}

func (p *Parser) parseIndexExpression(left ast.Expression) ast.Expression {
	exp := &ast.IndexExpression{Token: p.curToken, Left: left}

	p.nextToken()
	exp.Index = p.parseExpression(LOWEST)
	if exp.Index == nil || !p.expectPeek(token.RBRACKET) {
		return nil
	}
	return exp
}

func (p *Parser) parseMemberExpression(left ast.Expression) ast.Expression {
	exp := &ast.MemberExpression{Token: p.curToken, Left: left}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	exp.Member = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
	return exp
}

func (p *Parser) parseListLiteral() ast.Expression {
	lit := &ast.ListLiteral{Token: p.curToken}

	if p.peekTokenIs(token.RBRACKET) {
		p.nextToken()
		return lit
	}

	p.nextToken()
	elem := p.parseExpression(LOWEST)
	if elem == nil {
		return nil
	}
	lit.Elements = append(lit.Elements, elem)

	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		elem := p.parseExpression(LOWEST)
		if elem == nil {
			return nil
		}
		lit.Elements = append(lit.Elements, elem)
	}

	if !p.expectPeek(token.RBRACKET) {
		return nil
	}
	return lit
}

// parseRecordLiteral parses "Name{field: expr, ...}" with curToken on '{'.
func (p *Parser) parseRecordLiteral(typeName *ast.Identifier) ast.Expression {
	lit := &ast.RecordLiteral{Token: typeName.Token, TypeName: typeName}

	p.nextToken()
	p.skipNewlines()
	for !p.curTokenIs(token.RBRACE) {
		if !p.curTokenIs(token.IDENT) {
			p.addError(diagnostics.ErrP001, p.curToken, "expected field name in record literal")
			return nil
		}
		field := &ast.FieldInit{
			Token: p.curToken,
			Name:  &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme},
		}
		if !p.expectPeek(token.COLON) {
			return nil
		}
		p.nextToken()
		field.Value = p.parseExpression(LOWEST)
		if field.Value == nil {
			return nil
		}
		lit.Fields = append(lit.Fields, field)

		p.nextToken()
		p.skipNewlines()
		if p.curTokenIs(token.COMMA) {
			p.nextToken()
			p.skipNewlines()
		}
	}
	return lit
}

func startsUpper(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r)
	}
	return false
}

func isIdentName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if unicode.IsLetter(r) || r == '_' {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}
