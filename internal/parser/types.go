package parser

import (
	"fmt"

	"github.com/funvibe/procheck/internal/ast"
	"github.com/funvibe/procheck/internal/config"
	"github.com/funvibe/procheck/internal/diagnostics"
	"github.com/funvibe/procheck/internal/token"
)

// parseTypeExpression parses a type with an optional leading tag, with
// curToken on the first token of the type. On return curToken sits on
// the last token of the type.
//
//	inproc String
//	List<inproc String>
//	Map<String, inproc String>
func (p *Parser) parseTypeExpression() ast.Type {
	switch p.curToken.Type {
	case token.INPROC, token.XPROC:
		tagTok := p.curToken
		p.nextToken()
		base := p.parseTypeExpression()
		if base == nil {
			return nil
		}
		return &ast.TaggedType{Token: tagTok, Tag: tagTok.Lexeme, Base: base}
	case token.IDENT:
		return p.parseNamedOrGenericType()
	default:
		p.addError(diagnostics.ErrP003, p.curToken,
			fmt.Sprintf("expected type, got %s", p.curToken.Type))
		return nil
	}
}

func (p *Parser) parseNamedOrGenericType() ast.Type {
	nameTok := p.curToken
	name := p.curToken.Lexeme

	if !p.peekTokenIs(token.LT) {
		return &ast.NamedType{Token: nameTok, Name: name}
	}

	p.nextToken() // '<'
	p.nextToken() // first arg type
	args := []ast.Type{}
	first := p.parseTypeExpression()
	if first == nil {
		return nil
	}
	args = append(args, first)
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		arg := p.parseTypeExpression()
		if arg == nil {
			return nil
		}
		args = append(args, arg)
	}
	if !p.expectPeek(token.GT) {
		return nil
	}

	switch name {
	case config.ListTypeName:
		if len(args) != 1 {
			p.addError(diagnostics.ErrP003, nameTok,
				fmt.Sprintf("%s takes exactly one type argument", config.ListTypeName))
			return nil
		}
		return &ast.ListType{Token: nameTok, Elem: args[0]}
	case config.MapTypeName:
		if len(args) != 2 {
			p.addError(diagnostics.ErrP003, nameTok,
				fmt.Sprintf("%s takes exactly two type arguments", config.MapTypeName))
			return nil
		}
		return &ast.MapType{Token: nameTok, Key: args[0], Value: args[1]}
	default:
		p.addError(diagnostics.ErrP003, nameTok,
			fmt.Sprintf("type %s does not take type arguments", name))
		return nil
	}
}
