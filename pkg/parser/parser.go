// Package parser implements the precedence-climbing recursive-descent
// parser that turns a token.Token stream into a lang.Expression tree.
//
// Precedence climbing, right-associative "=", and the block
// semicolon-elision rule all need a parser that carries explicit position
// state and recurses with a precedence argument, rather than a grammar
// expressed as a static combinator graph. The Parser type below is staged
// as a struct wrapping the input, with a Parse entry point and one method
// per grammar production.
package parser

import (
	"fmt"

	"github.com/Le36/ezcompiler/pkg/lang"
	"github.com/Le36/ezcompiler/pkg/token"
)

// Error is a ParseError: the parser cannot continue from the given
// location. No recovery is attempted; Parse returns the first one it
// hits.
type Error struct {
	Location token.SourceLocation
	Message  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Location, e.Message)
}

// operatorsByPrecedence lists each binary-operator precedence level, lowest
// first. Level 0 is "=" (right-assoc and lowest), the last level is
// "* / %" (highest, left-assoc).
var operatorsByPrecedence = [][]string{
	{"="},
	{"or"},
	{"and"},
	{"==", "!="},
	{"<", "<=", ">", ">="},
	{"+", "-"},
	{"*", "/", "%"},
}

var unaryOperators = map[string]bool{"not": true, "-": true}

// Parser holds the token stream and the parser's single piece of mutable
// state: its read position. A Parser is single-use; construct one per
// Parse call.
type Parser struct {
	tokens []token.Token
	pos    int
}

// New returns a Parser ready to parse tokens.
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse consumes the entire token stream and returns the root expression,
// or the first ParseError encountered. Trailing tokens after a complete
// parse are themselves an error.
func Parse(tokens []token.Token) (lang.Expression, error) {
	p := New(tokens)
	if len(tokens) == 0 {
		return nil, &Error{Location: token.Any, Message: "empty input provided"}
	}

	result, err := p.parseProgram()
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.tokens) {
		return nil, &Error{Location: p.peek(0).Location, Message: fmt.Sprintf("unexpected tokens at end of input: %q", p.peek(0).Text)}
	}
	return result, nil
}

// ----------------------------------------------------------------------------
// Token stream helpers

// peek returns the token at pos+offset without consuming it, or a
// synthetic End token (at the last real token's location) past the end of
// the stream.
func (p *Parser) peek(offset int) token.Token {
	i := p.pos + offset
	if i < 0 || i >= len(p.tokens) {
		loc := token.Any
		if len(p.tokens) > 0 {
			loc = p.tokens[len(p.tokens)-1].Location
		}
		return token.Token{Kind: token.End, Text: "", Location: loc}
	}
	return p.tokens[i]
}

// consume advances past the current token. If expected is non-empty, the
// current token's text must match one of the given strings or consume
// raises a ParseError.
func (p *Parser) consume(expected ...string) (token.Token, error) {
	if p.pos >= len(p.tokens) {
		return token.Token{}, &Error{Location: token.Any, Message: fmt.Sprintf("unexpected end of input, expected %v", expected)}
	}
	t := p.tokens[p.pos]
	if len(expected) > 0 && !contains(expected, t.Text) {
		return token.Token{}, &Error{Location: t.Location, Message: fmt.Sprintf("expected one of %v, found %q", expected, t.Text)}
	}
	p.pos++
	return t, nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// ----------------------------------------------------------------------------
// Grammar productions

func (p *Parser) parseProgram() (lang.Expression, error) {
	var expressions []lang.Expression

	for p.pos < len(p.tokens) {
		expr, err := p.parseExpression(0)
		if err != nil {
			return nil, err
		}
		expressions = append(expressions, expr)

		if p.peek(0).Kind == token.End || p.peek(0).Text != ";" {
			break
		}
		if _, err := p.consume(";"); err != nil {
			return nil, err
		}
	}

	if len(expressions) == 0 {
		return nil, &Error{Location: token.Any, Message: "empty program"}
	}

	// A trailing ";" means the program ends with an implicit Unit result.
	trailingSemicolon := p.pos > 0 && p.tokens[p.pos-1].Text == ";"

	if len(expressions) == 1 && !trailingSemicolon {
		return expressions[0], nil
	}

	loc := expressions[0].Loc()
	var result lang.Expression
	if trailingSemicolon {
		result = lang.NewLiteral(loc, nil)
	} else {
		result = expressions[len(expressions)-1]
		expressions = expressions[:len(expressions)-1]
	}
	return lang.NewBlock(loc, expressions, result), nil
}

// parseExpression implements precedence climbing: level walks
// operatorsByPrecedence from low (0) to high (len(...)), falling through to
// parseUnary at the bottom. Every operator is left-associative except "="
// (level 0), which recurses into itself rather than level+1 on the right,
// making it right-associative.
func (p *Parser) parseExpression(level int) (lang.Expression, error) {
	if level == len(operatorsByPrecedence) {
		return p.parseUnary()
	}

	left, err := p.parseExpression(level + 1)
	if err != nil {
		return nil, err
	}

	for contains(operatorsByPrecedence[level], p.peek(0).Text) && p.peek(0).Kind == token.Operator {
		opToken, err := p.consume()
		if err != nil {
			return nil, err
		}

		nextLevel := level + 1
		if opToken.Text == "=" {
			nextLevel = level
		}
		right, err := p.parseExpression(nextLevel)
		if err != nil {
			return nil, err
		}
		left = lang.NewBinaryOp(opToken.Location, left, lang.BinOp(opToken.Text), right)
	}

	return left, nil
}

func (p *Parser) parseUnary() (lang.Expression, error) {
	if unaryOperators[p.peek(0).Text] && p.peek(0).Kind == token.Operator {
		opToken, _ := p.consume()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return lang.NewUnaryOp(opToken.Location, lang.UnOp(opToken.Text), operand), nil
	}
	return p.parseFactor()
}

func (p *Parser) parseFactor() (lang.Expression, error) {
	t := p.peek(0)

	switch t.Kind {
	case token.Punctuation:
		switch t.Text {
		case "(":
			return p.parseParenthesized()
		case "{":
			return p.parseBlock()
		}
	case token.Integer:
		return p.parseIntLiteral()
	case token.Boolean:
		return p.parseBoolLiteral()
	case token.Identifier:
		return p.parseIdentifierOrCall()
	case token.Keyword:
		switch t.Text {
		case "if":
			return p.parseIf()
		case "while":
			return p.parseWhile()
		case "var":
			return nil, &Error{Location: t.Location, Message: "var declarations are only allowed inside blocks"}
		}
	}

	return nil, &Error{Location: t.Location, Message: fmt.Sprintf("unexpected token %q, expected an expression", t.Text)}
}

func (p *Parser) parseIntLiteral() (lang.Expression, error) {
	t, err := p.consume()
	if err != nil {
		return nil, err
	}
	var value int64
	for _, r := range t.Text {
		value = value*10 + int64(r-'0')
	}
	return lang.NewLiteral(t.Location, value), nil
}

func (p *Parser) parseBoolLiteral() (lang.Expression, error) {
	t, err := p.consume()
	if err != nil {
		return nil, err
	}
	return lang.NewLiteral(t.Location, t.Text == "true"), nil
}

func (p *Parser) parseIdentifierOrCall() (lang.Expression, error) {
	t, err := p.consume()
	if err != nil {
		return nil, err
	}
	if p.peek(0).Text == "(" {
		return p.parseFunctionCall(t)
	}
	return lang.NewIdentifier(t.Location, t.Text), nil
}

func (p *Parser) parseFunctionCall(name token.Token) (lang.Expression, error) {
	if _, err := p.consume("("); err != nil {
		return nil, err
	}

	var args []lang.Expression
	if p.peek(0).Text != ")" {
		for {
			arg, err := p.parseExpression(0)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)

			if p.peek(0).Text == ")" {
				break
			}
			if _, err := p.consume(","); err != nil {
				return nil, &Error{Location: p.peek(0).Location,
					Message: fmt.Sprintf("expected ',' between arguments or ')' to close the call, found %q", p.peek(0).Text)}
			}
		}
	}
	if _, err := p.consume(")"); err != nil {
		return nil, err
	}
	return lang.NewFunctionCall(name.Location, name.Text, args), nil
}

func (p *Parser) parseParenthesized() (lang.Expression, error) {
	if _, err := p.consume("("); err != nil {
		return nil, err
	}
	expr, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(")"); err != nil {
		return nil, err
	}
	return expr, nil
}

func (p *Parser) parseIf() (lang.Expression, error) {
	ifToken, err := p.consume("if")
	if err != nil {
		return nil, err
	}
	cond, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}
	if _, err := p.consume("then"); err != nil {
		return nil, err
	}
	then, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}

	var els lang.Expression
	if p.peek(0).Text == "else" {
		if _, err := p.consume("else"); err != nil {
			return nil, err
		}
		els, err = p.parseExpression(0)
		if err != nil {
			return nil, err
		}
	}
	return lang.NewIfExpression(ifToken.Location, cond, then, els), nil
}

func (p *Parser) parseWhile() (lang.Expression, error) {
	whileToken, err := p.consume("while")
	if err != nil {
		return nil, err
	}
	cond, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}
	if _, err := p.consume("do"); err != nil {
		return nil, err
	}
	body, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}
	return lang.NewWhile(whileToken.Location, cond, body), nil
}

func (p *Parser) parseVarDeclaration() (lang.Expression, error) {
	varToken, err := p.consume("var")
	if err != nil {
		return nil, err
	}
	if p.peek(0).Kind != token.Identifier {
		return nil, &Error{Location: p.peek(0).Location, Message: fmt.Sprintf("expected variable name after 'var', found %q", p.peek(0).Text)}
	}
	nameToken, _ := p.consume()
	if _, err := p.consume("="); err != nil {
		return nil, err
	}
	value, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}
	return lang.NewVarDeclaration(varToken.Location, nameToken.Text, value), nil
}

// parseBlock implements the block grammar including the semicolon-elision
// rule: after an item whose *last consumed token* was "}", a following
// token that is neither ";" nor "}" does not error: the item is simply
// appended and parsing continues with the next one.
func (p *Parser) parseBlock() (lang.Expression, error) {
	openBrace, err := p.consume("{")
	if err != nil {
		return nil, err
	}

	var expressions []lang.Expression
	var result lang.Expression

	for p.peek(0).Text != "}" {
		var item lang.Expression
		if p.peek(0).Kind == token.Keyword && p.peek(0).Text == "var" {
			item, err = p.parseVarDeclaration()
		} else {
			item, err = p.parseExpression(0)
		}
		if err != nil {
			return nil, err
		}

		precedingTokenWasRBrace := p.pos > 0 && p.tokens[p.pos-1].Text == "}"

		switch {
		case p.peek(0).Text == ";":
			if _, err := p.consume(";"); err != nil {
				return nil, err
			}
			expressions = append(expressions, item)
		case p.peek(0).Text == "}":
			result = item
		case precedingTokenWasRBrace:
			// Semicolon elision: no separator required between two
			// adjacent brace-delimited items.
			expressions = append(expressions, item)
		default:
			return nil, &Error{Location: p.peek(0).Location, Message: fmt.Sprintf("expected ';' or '}}', found %q", p.peek(0).Text)}
		}
	}

	if _, err := p.consume("}"); err != nil {
		return nil, err
	}

	if result == nil && len(expressions) > 0 {
		result = lang.NewLiteral(openBrace.Location, nil)
	}

	return lang.NewBlock(openBrace.Location, expressions, result), nil
}
