// Package token defines the lexical tokens produced by pkg/lexer and
// consumed by pkg/parser.
package token

import "fmt"

// ----------------------------------------------------------------------------
// Source locations

// SourceLocation pinpoints a token inside a source file. Line and column
// are 1-based, counted by scanning characters since the last newline.
type SourceLocation struct {
	File   string
	Line   int
	Column int
}

// Any is a wildcard location that compares equal to any other location. It
// exists purely so golden tests can assert on token/AST shape without
// pinning down exact source positions; production code should never rely
// on this quirk (see EqualLoc below, which is the explicit helper tests
// should call instead of relying on SourceLocation's own equality rules).
var Any = SourceLocation{File: "<any>", Line: -1, Column: -1}

func (l SourceLocation) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// EqualLoc reports whether a and b should be considered equal for test
// purposes: identical fields, or either side being the Any sentinel.
func EqualLoc(a, b SourceLocation) bool {
	if a == Any || b == Any {
		return true
	}
	return a == b
}

// ----------------------------------------------------------------------------
// Tokens

// Kind enumerates the lexical classes recognized by the tokenizer.
type Kind string

const (
	Integer     Kind = "INTEGER"
	Boolean     Kind = "BOOLEAN"
	Identifier  Kind = "IDENTIFIER"
	Keyword     Kind = "KEYWORD"
	Operator    Kind = "OPERATOR"
	Punctuation Kind = "PUNCTUATION"
	End         Kind = "END"
)

// Token is a single lexeme together with its class and source position.
type Token struct {
	Text     string
	Kind     Kind
	Location SourceLocation
}

// Equal compares two tokens by kind and text; locations are compared with
// EqualLoc's wildcard-tolerant rule.
func (t Token) Equal(other Token) bool {
	return t.Kind == other.Kind && t.Text == other.Text && EqualLoc(t.Location, other.Location)
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%s", t.Kind, t.Text, t.Location)
}

// Keywords is the set of whole-word keyword spellings.
var Keywords = map[string]bool{
	"var": true, "if": true, "then": true, "else": true,
	"while": true, "do": true, "Int": true, "Boolean": true,
}

// WordOperators is the set of keyword-shaped operator spellings.
var WordOperators = map[string]bool{"and": true, "or": true, "not": true}
