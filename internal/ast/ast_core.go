package ast

import (
	"github.com/funvibe/procheck/internal/token"
)

// TokenProvider is an interface for any AST node that can provide its
// primary token. This is useful for error reporting.
type TokenProvider interface {
	GetToken() token.Token
}

// Node is the base interface for all AST nodes.
type Node interface {
	TokenLiteral() string
	GetToken() token.Token
}

// Statement is a Node that represents a statement.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node that represents an expression.
type Expression interface {
	Node
	expressionNode()
}

// Program is the root node of every AST our parser produces.
type Program struct {
	File       string // Source file path
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) GetToken() token.Token {
	if p == nil || len(p.Statements) == 0 {
		return token.Token{}
	}
	return p.Statements[0].GetToken()
}

// LetStatement represents a binding declaration.
// let x: inproc String = "secret"
// The declared tag is fixed for the binding's lifetime; changing it
// requires a new declaration.
type LetStatement struct {
	Token          token.Token // The 'let' token
	Name           *Identifier
	TypeAnnotation Type // Optional
	Value          Expression
}

func (ls *LetStatement) statementNode()       {}
func (ls *LetStatement) TokenLiteral() string { return ls.Token.Lexeme }
func (ls *LetStatement) GetToken() token.Token {
	if ls == nil {
		return token.Token{}
	}
	return ls.Token
}

// Parameter is a single function parameter binding.
type Parameter struct {
	Token token.Token
	Name  *Identifier
	Type  Type
}

func (p *Parameter) GetToken() token.Token {
	if p == nil {
		return token.Token{}
	}
	return p.Token
}

// FunctionStatement represents a function definition.
// fun send(msg: xproc String) -> Unit { ... }
type FunctionStatement struct {
	Token      token.Token // The 'fun' token
	Name       *Identifier
	Parameters []*Parameter
	ReturnType Type // nil means Unit
	Body       *BlockStatement
}

func (fs *FunctionStatement) statementNode()       {}
func (fs *FunctionStatement) TokenLiteral() string { return fs.Token.Lexeme }
func (fs *FunctionStatement) GetToken() token.Token {
	if fs == nil {
		return token.Token{}
	}
	return fs.Token
}

// FieldDecl is a single field in a record type declaration.
type FieldDecl struct {
	Token token.Token
	Name  *Identifier
	Type  Type
}

// TypeStatement declares a named record type.
// type Creds = { name: xproc String, token: inproc String }
type TypeStatement struct {
	Token  token.Token // The 'type' token
	Name   *Identifier
	Fields []*FieldDecl
}

func (ts *TypeStatement) statementNode()       {}
func (ts *TypeStatement) TokenLiteral() string { return ts.Token.Lexeme }
func (ts *TypeStatement) GetToken() token.Token {
	if ts == nil {
		return token.Token{}
	}
	return ts.Token
}

// ReturnStatement represents `return expr` inside a function body.
type ReturnStatement struct {
	Token token.Token
	Value Expression // nil for bare return
}

func (rs *ReturnStatement) statementNode()       {}
func (rs *ReturnStatement) TokenLiteral() string { return rs.Token.Lexeme }
func (rs *ReturnStatement) GetToken() token.Token {
	if rs == nil {
		return token.Token{}
	}
	return rs.Token
}

// ExpressionStatement is a statement that consists of a single expression.
type ExpressionStatement struct {
	Token      token.Token // the first token of the expression
	Expression Expression
}

func (es *ExpressionStatement) statementNode()        {}
func (es *ExpressionStatement) TokenLiteral() string  { return es.Token.Lexeme }
func (es *ExpressionStatement) GetToken() token.Token { return es.Token }

// BlockStatement represents a list of statements within curly braces.
type BlockStatement struct {
	Token      token.Token // {
	Statements []Statement
}

func (bs *BlockStatement) statementNode()        {}
func (bs *BlockStatement) TokenLiteral() string  { return bs.Token.Lexeme }
func (bs *BlockStatement) GetToken() token.Token { return bs.Token }
