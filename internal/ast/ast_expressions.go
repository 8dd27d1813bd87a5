package ast

import (
	"github.com/funvibe/procheck/internal/token"
)

// Identifier represents a bare binding reference.
type Identifier struct {
	Token token.Token
	Value string
}

func (i *Identifier) expressionNode()       {}
func (i *Identifier) TokenLiteral() string  { return i.Token.Lexeme }
func (i *Identifier) GetToken() token.Token { return i.Token }

// StringLiteral represents a plain string literal.
type StringLiteral struct {
	Token token.Token
	Value string
}

func (sl *StringLiteral) expressionNode()       {}
func (sl *StringLiteral) TokenLiteral() string  { return sl.Token.Lexeme }
func (sl *StringLiteral) GetToken() token.Token { return sl.Token }

// IntegerLiteral represents an integer literal.
type IntegerLiteral struct {
	Token token.Token
	Value int64
}

func (il *IntegerLiteral) expressionNode()       {}
func (il *IntegerLiteral) TokenLiteral() string  { return il.Token.Lexeme }
func (il *IntegerLiteral) GetToken() token.Token { return il.Token }

// TemplateLiteral represents a string with ${name} interpolation holes.
// Parts has len(Holes)+1 entries; the rendered string is
// Parts[0] + Holes[0] + Parts[1] + ... Holes are identifier references.
type TemplateLiteral struct {
	Token token.Token
	Parts []string
	Holes []*Identifier
}

func (tl *TemplateLiteral) expressionNode()       {}
func (tl *TemplateLiteral) TokenLiteral() string  { return tl.Token.Lexeme }
func (tl *TemplateLiteral) GetToken() token.Token { return tl.Token }

// InfixExpression represents a binary operation, e.g. a ++ b.
type InfixExpression struct {
	Token    token.Token // The operator token
	Operator string
	Left     Expression
	Right    Expression
}

func (ie *InfixExpression) expressionNode()       {}
func (ie *InfixExpression) TokenLiteral() string  { return ie.Token.Lexeme }
func (ie *InfixExpression) GetToken() token.Token { return ie.Token }

// CallExpression represents a function call, e.g. send(x) or reveal(x).
type CallExpression struct {
	Token     token.Token // The '(' token
	Function  *Identifier
	Arguments []Expression
}

func (ce *CallExpression) expressionNode()       {}
func (ce *CallExpression) TokenLiteral() string  { return ce.Token.Lexeme }
func (ce *CallExpression) GetToken() token.Token { return ce.Token }

// FieldInit is a single field initializer inside a record literal.
type FieldInit struct {
	Token token.Token
	Name  *Identifier
	Value Expression
}

// RecordLiteral represents record construction, e.g. Creds{name: h, token: s}.
type RecordLiteral struct {
	Token    token.Token // The type name token
	TypeName *Identifier
	Fields   []*FieldInit
}

func (rl *RecordLiteral) expressionNode()       {}
func (rl *RecordLiteral) TokenLiteral() string  { return rl.Token.Lexeme }
func (rl *RecordLiteral) GetToken() token.Token { return rl.Token }

// ListLiteral represents a list literal, e.g. ["a", "b"].
type ListLiteral struct {
	Token    token.Token // The '[' token
	Elements []Expression
}

func (ll *ListLiteral) expressionNode()       {}
func (ll *ListLiteral) TokenLiteral() string  { return ll.Token.Lexeme }
func (ll *ListLiteral) GetToken() token.Token { return ll.Token }

// IndexExpression represents indexing, e.g. xs[i].
type IndexExpression struct {
	Token token.Token // The '[' token
	Left  Expression
	Index Expression
}

func (ie *IndexExpression) expressionNode()       {}
func (ie *IndexExpression) TokenLiteral() string  { return ie.Token.Lexeme }
func (ie *IndexExpression) GetToken() token.Token { return ie.Token }

// MemberExpression represents dot access, e.g. creds.token.
type MemberExpression struct {
	Token  token.Token // The '.' token
	Left   Expression
	Member *Identifier
}

func (me *MemberExpression) expressionNode()       {}
func (me *MemberExpression) TokenLiteral() string  { return me.Token.Lexeme }
func (me *MemberExpression) GetToken() token.Token { return me.Token }
