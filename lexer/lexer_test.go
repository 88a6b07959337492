package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextToken(t *testing.T) {
	input := `let five = 5;
let add = fn(x, y) {
  x + y;
};
let result = add(five, ten);
!-/*5;
5 < 10 > 5;

if (5 < 10) {
	return true;
} else {
	return false;
}

10 == 10;
10 != 9;
"foobar"
"foo bar"
[1, 2];
{"foo": "bar"}
macro(x, y) { x + y; };
`

	tests := []Token{
		New(LET, "let"),
		New(IDENT, "five"),
		New(ASSIGN, "="),
		New(INT, "5"),
		New(SEMICOLON, ";"),
		New(LET, "let"),
		New(IDENT, "add"),
		New(ASSIGN, "="),
		New(FUNCTION, "fn"),
		New(LPAREN, "("),
		New(IDENT, "x"),
		New(COMMA, ","),
		New(IDENT, "y"),
		New(RPAREN, ")"),
		New(LBRACE, "{"),
		New(IDENT, "x"),
		New(PLUS, "+"),
		New(IDENT, "y"),
		New(SEMICOLON, ";"),
		New(RBRACE, "}"),
		New(SEMICOLON, ";"),
		New(LET, "let"),
		New(IDENT, "result"),
		New(ASSIGN, "="),
		New(IDENT, "add"),
		New(LPAREN, "("),
		New(IDENT, "five"),
		New(COMMA, ","),
		New(IDENT, "ten"),
		New(RPAREN, ")"),
		New(SEMICOLON, ";"),
		New(BANG, "!"),
		New(MINUS, "-"),
		New(SLASH, "/"),
		New(ASTERISK, "*"),
		New(INT, "5"),
		New(SEMICOLON, ";"),
		New(INT, "5"),
		New(LT, "<"),
		New(INT, "10"),
		New(GT, ">"),
		New(INT, "5"),
		New(SEMICOLON, ";"),
		New(IF, "if"),
		New(LPAREN, "("),
		New(INT, "5"),
		New(LT, "<"),
		New(INT, "10"),
		New(RPAREN, ")"),
		New(LBRACE, "{"),
		New(RETURN, "return"),
		New(TRUE, "true"),
		New(SEMICOLON, ";"),
		New(RBRACE, "}"),
		New(ELSE, "else"),
		New(LBRACE, "{"),
		New(RETURN, "return"),
		New(FALSE, "false"),
		New(SEMICOLON, ";"),
		New(RBRACE, "}"),
		New(INT, "10"),
		New(EQ, "=="),
		New(INT, "10"),
		New(SEMICOLON, ";"),
		New(INT, "10"),
		New(NOTEQ, "!="),
		New(INT, "9"),
		New(SEMICOLON, ";"),
		New(STRING, "foobar"),
		New(STRING, "foo bar"),
		New(LBRACKET, "["),
		New(INT, "1"),
		New(COMMA, ","),
		New(INT, "2"),
		New(RBRACKET, "]"),
		New(SEMICOLON, ";"),
		New(LBRACE, "{"),
		New(STRING, "foo"),
		New(COLON, ":"),
		New(STRING, "bar"),
		New(RBRACE, "}"),
		New(MACRO, "macro"),
		New(LPAREN, "("),
		New(IDENT, "x"),
		New(COMMA, ","),
		New(IDENT, "y"),
		New(RPAREN, ")"),
		New(LBRACE, "{"),
		New(IDENT, "x"),
		New(PLUS, "+"),
		New(IDENT, "y"),
		New(SEMICOLON, ";"),
		New(RBRACE, "}"),
		New(SEMICOLON, ";"),
		New(EOF, ""),
	}

	l := NewLexer(input)
	for i, want := range tests {
		got := l.NextToken()
		assert.Equalf(t, want.Type, got.Type, "token %d type", i)
		assert.Equalf(t, want.Literal, got.Literal, "token %d literal", i)
	}
}

func TestScanBuildsTokenStream(t *testing.T) {
	ts := Scan("1 + 2")
	assert.Equal(t, 4, ts.Count())
	assert.Equal(t, INT, ts.Tag(0))
	assert.Equal(t, "1", ts.Repr(0))
	assert.Equal(t, PLUS, ts.Tag(1))
	assert.Equal(t, EOF, ts.Tag(3))
}
