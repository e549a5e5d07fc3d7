package lexer_test

import (
	"testing"

	"github.com/Le36/ezcompiler/pkg/lexer"
	"github.com/Le36/ezcompiler/pkg/token"
)

func kinds(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func texts(tokens []token.Token) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Text
	}
	return out
}

func equalSlices[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestTokenizeValidData(t *testing.T) {
	test := func(source string, expectedTexts []string, expectedKinds []token.Kind) {
		tokens := lexer.Tokenize("test.ez", source)
		if !equalSlices(texts(tokens), expectedTexts) {
			t.Fail()
		}
		if !equalSlices(kinds(tokens), expectedKinds) {
			t.Fail()
		}
	}

	t.Run("arithmetic expression", func(t *testing.T) {
		test("1 + 2 * 3", []string{"1", "+", "2", "*", "3"},
			[]token.Kind{token.Integer, token.Operator, token.Integer, token.Operator, token.Integer})
	})

	t.Run("var declaration with type annotation", func(t *testing.T) {
		test("var x: Int = 1;",
			[]string{"var", "x", ":", "Int", "=", "1", ";"},
			[]token.Kind{token.Keyword, token.Identifier, token.Punctuation, token.Keyword, token.Operator, token.Integer, token.Punctuation})
	})

	t.Run("boolean literals and word operators", func(t *testing.T) {
		test("true and not false",
			[]string{"true", "and", "not", "false"},
			[]token.Kind{token.Boolean, token.Operator, token.Operator, token.Boolean})
	})

	t.Run("two-character operators are not split", func(t *testing.T) {
		test("a <= b", []string{"a", "<=", "b"},
			[]token.Kind{token.Identifier, token.Operator, token.Identifier})
	})

	t.Run("comments are discarded", func(t *testing.T) {
		test("1 // trailing comment\n+ 2", []string{"1", "+", "2"},
			[]token.Kind{token.Integer, token.Operator, token.Integer})
		test("1 /* block\ncomment */ + 2", []string{"1", "+", "2"},
			[]token.Kind{token.Integer, token.Operator, token.Integer})
	})
}

func TestTokenizeLocations(t *testing.T) {
	tokens := lexer.Tokenize("test.ez", "1 +\n  2")
	if len(tokens) != 3 {
		t.Fatal("expected three tokens")
	}
	if tokens[0].Location.Line != 1 || tokens[0].Location.Column != 1 {
		t.Fail()
	}
	if tokens[2].Location.Line != 2 {
		t.Fail()
	}
}
