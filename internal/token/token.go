package token

type TokenType string

const (
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"
	NEWLINE TokenType = "NEWLINE"

	// Identifiers and literals
	IDENT    TokenType = "IDENT"
	INT      TokenType = "INT"
	STRING   TokenType = "STRING"
	TEMPLATE TokenType = "TEMPLATE" // string literal containing ${...} holes

	// Operators
	ASSIGN TokenType = "="
	PLUS   TokenType = "+"
	CONCAT TokenType = "++"
	ARROW  TokenType = "->"
	DOT    TokenType = "."

	// Delimiters
	COMMA    TokenType = ","
	COLON    TokenType = ":"
	LPAREN   TokenType = "("
	RPAREN   TokenType = ")"
	LBRACE   TokenType = "{"
	RBRACE   TokenType = "}"
	LBRACKET TokenType = "["
	RBRACKET TokenType = "]"
	LT       TokenType = "<"
	GT       TokenType = ">"

	// Keywords
	LET    TokenType = "LET"
	FUN    TokenType = "FUN"
	TYPE   TokenType = "TYPE"
	RETURN TokenType = "RETURN"
	INPROC TokenType = "INPROC"
	XPROC  TokenType = "XPROC"
)

// Token is a single lexical unit with its source position.
// Literal holds the decoded value (e.g. the unquoted string contents),
// Lexeme holds the raw source text.
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal interface{}
	Line    int
	Column  int
}

var keywords = map[string]TokenType{
	"let":    LET,
	"fun":    FUN,
	"type":   TYPE,
	"return": RETURN,
	"inproc": INPROC,
	"xproc":  XPROC,
}

// LookupIdent returns the keyword token type for ident, or IDENT.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
