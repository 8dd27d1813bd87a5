package lexer

import (
	"testing"

	"github.com/funvibe/procheck/internal/token"
)

func TestNextToken(t *testing.T) {
	input := `let x: inproc String = "secret"
fun send(msg: xproc String) -> Unit { }
xs[0]
a ++ b
`

	expected := []struct {
		typ    token.TokenType
		lexeme string
	}{
		{token.LET, "let"},
		{token.IDENT, "x"},
		{token.COLON, ":"},
		{token.INPROC, "inproc"},
		{token.IDENT, "String"},
		{token.ASSIGN, "="},
		{token.STRING, "secret"},
		{token.NEWLINE, "\\n"},
		{token.FUN, "fun"},
		{token.IDENT, "send"},
		{token.LPAREN, "("},
		{token.IDENT, "msg"},
		{token.COLON, ":"},
		{token.XPROC, "xproc"},
		{token.IDENT, "String"},
		{token.RPAREN, ")"},
		{token.ARROW, "->"},
		{token.IDENT, "Unit"},
		{token.LBRACE, "{"},
		{token.RBRACE, "}"},
		{token.NEWLINE, "\\n"},
		{token.IDENT, "xs"},
		{token.LBRACKET, "["},
		{token.INT, "0"},
		{token.RBRACKET, "]"},
		{token.NEWLINE, "\\n"},
		{token.IDENT, "a"},
		{token.CONCAT, "++"},
		{token.IDENT, "b"},
		{token.NEWLINE, "\\n"},
		{token.EOF, ""},
	}

	l := New(input)
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want.typ {
			t.Fatalf("token %d: type = %s, want %s (lexeme %q)", i, tok.Type, want.typ, tok.Lexeme)
		}
		if tok.Lexeme != want.lexeme {
			t.Fatalf("token %d: lexeme = %q, want %q", i, tok.Lexeme, want.lexeme)
		}
	}
}

func TestTemplateStringToken(t *testing.T) {
	l := New(`"token is ${secret}"`)
	tok := l.NextToken()
	if tok.Type != token.TEMPLATE {
		t.Fatalf("type = %s, want TEMPLATE", tok.Type)
	}
	if tok.Literal.(string) != "token is ${secret}" {
		t.Errorf("literal = %q", tok.Literal)
	}

	// An escaped dollar stays a plain string.
	l = New(`"costs \$5"`)
	tok = l.NextToken()
	if tok.Type != token.STRING {
		t.Fatalf("type = %s, want STRING", tok.Type)
	}
	if tok.Literal.(string) != "costs $5" {
		t.Errorf("literal = %q", tok.Literal)
	}
}

func TestUnterminatedString(t *testing.T) {
	l := New(`"oops`)
	tok := l.NextToken()
	if tok.Type != token.ILLEGAL {
		t.Fatalf("type = %s, want ILLEGAL", tok.Type)
	}
}

func TestCommentsAreSkipped(t *testing.T) {
	l := New("# a comment\nlet x = 1")
	tok := l.NextToken()
	if tok.Type != token.NEWLINE {
		t.Fatalf("type = %s, want NEWLINE", tok.Type)
	}
	tok = l.NextToken()
	if tok.Type != token.LET {
		t.Fatalf("type = %s, want LET", tok.Type)
	}
}

func TestPositions(t *testing.T) {
	l := New("let x = 1\nlet y = 2")
	var tok token.Token
	for tok = l.NextToken(); tok.Type != token.EOF; tok = l.NextToken() {
		if tok.Lexeme == "y" {
			if tok.Line != 2 {
				t.Errorf("y line = %d, want 2", tok.Line)
			}
			if tok.Column != 5 {
				t.Errorf("y column = %d, want 5", tok.Column)
			}
		}
	}
}
