/*
File    : monkey-go/parser/parser.go

Package parser implements a Pratt (top-down operator precedence) parser
for Monkey, turning a lexer.TokenStream into an ast.Program plus a list
of accumulated error strings. Parsing is total: a malformed construct
records an error and the parser advances past it rather than aborting.
*/
package parser

import (
	"fmt"
	"strconv"

	"github.com/monkeylang/monkey-go/ast"
	"github.com/monkeylang/monkey-go/lexer"
)

// Precedence ladder, lowest to highest. Ternary has no rule parsing it
// yet — it is reserved for a future `?:` operator — but parseExpression
// still starts at Ternary when called from a statement, as spec'd.
const (
	LOWEST int = iota
	TERNARY
	EQUALS
	LESSGREATER
	SUM
	PRODUCT
	UNARY
	CALL
	INDEX
)

var precedences = map[lexer.TokenType]int{
	lexer.EQ:       EQUALS,
	lexer.NOTEQ:    EQUALS,
	lexer.LT:       LESSGREATER,
	lexer.GT:       LESSGREATER,
	lexer.PLUS:     SUM,
	lexer.MINUS:    SUM,
	lexer.SLASH:    PRODUCT,
	lexer.ASTERISK: PRODUCT,
	lexer.LPAREN:   CALL,
	lexer.LBRACKET: INDEX,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// Parser holds all state needed to drive the Pratt algorithm over a
// single TokenStream.
type Parser struct {
	ts  *lexer.TokenStream
	cur int // index of the current token
	peek int // index of the lookahead token

	errors []string

	prefixFns map[lexer.TokenType]prefixParseFn
	infixFns  map[lexer.TokenType]infixParseFn
}

// New builds a Parser over src, lexing it fully up front so every AST
// node can anchor to a stable token index.
func New(src string) *Parser {
	p := &Parser{
		ts:     lexer.Scan(src),
		errors: []string{},
	}

	p.prefixFns = map[lexer.TokenType]prefixParseFn{
		lexer.IDENT:    p.parseIdentifier,
		lexer.INT:      p.parseIntegerLiteral,
		lexer.STRING:   p.parseStringLiteral,
		lexer.TRUE:     p.parseBoolean,
		lexer.FALSE:    p.parseBoolean,
		lexer.BANG:     p.parsePrefixExpression,
		lexer.MINUS:    p.parsePrefixExpression,
		lexer.LPAREN:   p.parseGroupedExpression,
		lexer.IF:       p.parseIfExpression,
		lexer.FUNCTION: p.parseFunctionLiteral,
		lexer.MACRO:    p.parseMacroLiteral,
		lexer.LBRACKET: p.parseArrayLiteral,
		lexer.LBRACE:   p.parseHashLiteral,
	}

	p.infixFns = map[lexer.TokenType]infixParseFn{
		lexer.PLUS:     p.parseInfixExpression,
		lexer.MINUS:    p.parseInfixExpression,
		lexer.SLASH:    p.parseInfixExpression,
		lexer.ASTERISK: p.parseInfixExpression,
		lexer.EQ:       p.parseInfixExpression,
		lexer.NOTEQ:    p.parseInfixExpression,
		lexer.LT:       p.parseInfixExpression,
		lexer.GT:       p.parseInfixExpression,
		lexer.LPAREN:   p.parseCallExpression,
		lexer.LBRACKET: p.parseIndexExpression,
	}

	p.cur = 0
	if p.ts.Count() > 1 {
		p.peek = 1
	} else {
		p.peek = 0
	}
	return p
}

// TokenStream exposes the underlying token view, for callers (the macro
// pass, the evaluator's final-result printer) that need to call Show on
// nodes this parser produced.
func (p *Parser) TokenStream() *lexer.TokenStream { return p.ts }

// Errors returns every parse error accumulated so far.
func (p *Parser) Errors() []string { return p.errors }

func (p *Parser) addError(format string, args ...interface{}) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *Parser) curType() lexer.TokenType  { return p.ts.Tag(p.cur) }
func (p *Parser) peekType() lexer.TokenType { return p.ts.Tag(p.peek) }
func (p *Parser) curRepr() string           { return p.ts.Repr(p.cur) }

func (p *Parser) curTokenIs(t lexer.TokenType) bool  { return p.curType() == t }
func (p *Parser) peekTokenIs(t lexer.TokenType) bool { return p.peekType() == t }

// nextToken advances the cursor one token, clamping at EOF.
func (p *Parser) nextToken() {
	p.cur = p.peek
	if p.peek < p.ts.Count()-1 {
		p.peek++
	}
}

// expectPeek advances past the peek token if it matches t, otherwise
// records an error and leaves the cursor where it is.
func (p *Parser) expectPeek(t lexer.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.addError("Expected next token to be '%s'; got %s instead", t, p.peekType())
	return false
}

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peekType()]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.curType()]; ok {
		return pr
	}
	return LOWEST
}

// skipToSemicolon advances past tokens until a Semicolon or Eof is
// reached, the recovery strategy for a malformed Let statement.
func (p *Parser) skipToSemicolon() {
	for !p.curTokenIs(lexer.SEMICOLON) && !p.curTokenIs(lexer.EOF) {
		p.nextToken()
	}
}

// ParseProgram consumes the whole token stream and returns the
// resulting Program. Parsing never aborts: a statement that fails to
// parse contributes no node but parsing continues with the next one.
func (p *Parser) ParseProgram() *ast.Program {
	program := ast.NewProgram(p.ts.Count()/2 + 1)

	for !p.curTokenIs(lexer.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
		p.nextToken()
	}

	return program
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.curType() {
	case lexer.SEMICOLON, lexer.EOF:
		return nil
	case lexer.LET:
		return p.parseLetStatement()
	case lexer.RETURN:
		return p.parseReturnStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseLetStatement() ast.Statement {
	startIdx := p.cur // the `let` token; not read by any error message

	if !p.expectPeek(lexer.IDENT) {
		p.skipToSemicolon()
		return nil
	}
	stmt := &ast.LetStatement{Idx: p.cur}

	if !p.expectPeek(lexer.ASSIGN) {
		_ = startIdx
		p.skipToSemicolon()
		return nil
	}

	p.nextToken()
	stmt.Value = p.parseExpression(TERNARY)

	if p.peekTokenIs(lexer.SEMICOLON) {
		p.nextToken()
	}

	return stmt
}

func (p *Parser) parseReturnStatement() ast.Statement {
	stmt := &ast.ReturnStatement{Idx: p.cur}

	if p.peekTokenIs(lexer.SEMICOLON) {
		p.nextToken()
		return stmt
	}

	p.nextToken()
	stmt.ReturnValue = p.parseExpression(TERNARY)

	if p.peekTokenIs(lexer.SEMICOLON) {
		p.nextToken()
	}

	return stmt
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	stmt := &ast.ExpressionStatement{Idx: p.cur}
	stmt.Expression = p.parseExpression(TERNARY)

	if p.peekTokenIs(lexer.SEMICOLON) {
		p.nextToken()
	}

	return stmt
}

func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	block := &ast.BlockStatement{Idx: p.cur}
	p.nextToken()

	for !p.curTokenIs(lexer.RBRACE) && !p.curTokenIs(lexer.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		p.nextToken()
	}

	return block
}

// parseExpression is the Pratt driver: find a prefix rule for the
// current token, then keep folding in infix rules while the next
// operator binds more tightly than precedence (so equal-precedence
// operators associate to the left).
func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix, ok := p.prefixFns[p.curType()]
	if !ok {
		p.addError("Expected expression, but got %s instead", p.curType())
		return nil
	}
	left := prefix()

	for !p.peekTokenIs(lexer.SEMICOLON) && precedence < p.peekPrecedence() {
		infix, ok := p.infixFns[p.peekType()]
		if !ok {
			return left
		}
		p.nextToken()
		left = infix(left)
	}

	return left
}

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.Identifier{Idx: p.cur}
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	lit := &ast.IntegerLiteral{Idx: p.cur}
	value, err := strconv.ParseInt(p.curRepr(), 10, 64)
	if err != nil {
		p.addError("could not parse %q as integer", p.curRepr())
		return nil
	}
	lit.Value = value
	return lit
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return &ast.StringLiteral{Idx: p.cur, Value: p.curRepr()}
}

func (p *Parser) parseBoolean() ast.Expression {
	return &ast.Boolean{Idx: p.cur, Value: p.curTokenIs(lexer.TRUE)}
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	expr := &ast.PrefixExpression{Idx: p.cur, Operator: p.curType()}
	p.nextToken()
	expr.Right = p.parseExpression(UNARY)
	return expr
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	expr := &ast.InfixExpression{
		Idx:      p.cur,
		Left:     left,
		Operator: p.curType(),
	}
	precedence := p.curPrecedence()
	p.nextToken()
	expr.Right = p.parseExpression(precedence)
	return expr
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken()
	expr := p.parseExpression(LOWEST)
	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	return expr
}

func (p *Parser) parseIfExpression() ast.Expression {
	expr := &ast.IfExpression{Idx: p.cur}

	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	p.nextToken()
	expr.Condition = p.parseExpression(LOWEST)

	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	if !p.expectPeek(lexer.LBRACE) {
		return nil
	}
	expr.Consequence = p.parseBlockStatement()

	if p.peekTokenIs(lexer.ELSE) {
		p.nextToken()
		if !p.expectPeek(lexer.LBRACE) {
			return nil
		}
		expr.Alternative = p.parseBlockStatement()
	}

	return expr
}

func (p *Parser) parseFunctionLiteral() ast.Expression {
	lit := &ast.FunctionLiteral{Idx: p.cur}

	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	lit.Parameters = p.parseFunctionParameters()

	if !p.expectPeek(lexer.LBRACE) {
		return nil
	}
	lit.Body = p.parseBlockStatement()

	return lit
}

func (p *Parser) parseMacroLiteral() ast.Expression {
	lit := &ast.MacroLiteral{Idx: p.cur}

	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	lit.Parameters = p.parseFunctionParameters()

	if !p.expectPeek(lexer.LBRACE) {
		return nil
	}
	lit.Body = p.parseBlockStatement()

	return lit
}

func (p *Parser) parseFunctionParameters() []*ast.Identifier {
	identifiers := []*ast.Identifier{}

	if p.peekTokenIs(lexer.RPAREN) {
		p.nextToken()
		return identifiers
	}

	p.nextToken()
	identifiers = append(identifiers, &ast.Identifier{Idx: p.cur})

	for p.peekTokenIs(lexer.COMMA) {
		p.nextToken()
		p.nextToken()
		identifiers = append(identifiers, &ast.Identifier{Idx: p.cur})
	}

	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}

	return identifiers
}

func (p *Parser) parseCallExpression(function ast.Expression) ast.Expression {
	expr := &ast.CallExpression{Idx: p.cur, Function: function}
	args, ok := p.parseExpressionList(lexer.RPAREN)
	if !ok {
		p.addError("Incomplete argument list for function call")
		return nil
	}
	expr.Arguments = args
	return expr
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	lit := &ast.ArrayLiteral{Idx: p.cur}
	elems, ok := p.parseExpressionList(lexer.RBRACKET)
	if !ok {
		return nil
	}
	lit.Elements = elems
	return lit
}

// parseExpressionList parses a comma-separated list of expressions at
// Lowest precedence, terminated by end, shared by call arguments and
// array literals.
func (p *Parser) parseExpressionList(end lexer.TokenType) ([]ast.Expression, bool) {
	list := []ast.Expression{}

	if p.peekTokenIs(end) {
		p.nextToken()
		return list, true
	}

	p.nextToken()
	list = append(list, p.parseExpression(LOWEST))

	for p.peekTokenIs(lexer.COMMA) {
		p.nextToken()
		p.nextToken()
		list = append(list, p.parseExpression(LOWEST))
	}

	if !p.expectPeek(end) {
		return list, false
	}

	return list, true
}

func (p *Parser) parseHashLiteral() ast.Expression {
	hash := &ast.HashLiteral{Idx: p.cur}

	for !p.peekTokenIs(lexer.RBRACE) {
		p.nextToken()
		key := p.parseExpression(LOWEST)

		if !p.expectPeek(lexer.COLON) {
			return nil
		}

		p.nextToken()
		value := p.parseExpression(LOWEST)

		hash.Pairs = append(hash.Pairs, ast.HashPair{Key: key, Value: value})

		if !p.peekTokenIs(lexer.RBRACE) && !p.expectPeek(lexer.COMMA) {
			return nil
		}
	}

	if !p.expectPeek(lexer.RBRACE) {
		return nil
	}

	return hash
}

func (p *Parser) parseIndexExpression(left ast.Expression) ast.Expression {
	expr := &ast.IndexExpression{Idx: p.cur, Left: left}

	p.nextToken()
	expr.Index = p.parseExpression(LOWEST)

	if !p.expectPeek(lexer.RBRACKET) {
		return nil
	}

	return expr
}
