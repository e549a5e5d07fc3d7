package token_test

import (
	"testing"

	"github.com/Le36/ezcompiler/pkg/token"
)

func TestEqualLoc(t *testing.T) {
	test := func(a, b token.SourceLocation, expected bool) {
		if token.EqualLoc(a, b) != expected {
			t.Fail()
		}
	}

	real := token.SourceLocation{File: "main.ez", Line: 3, Column: 7}
	other := token.SourceLocation{File: "main.ez", Line: 4, Column: 1}

	t.Run("identical locations", func(t *testing.T) {
		test(real, real, true)
	})

	t.Run("wildcard tolerates any location", func(t *testing.T) {
		test(token.Any, real, true)
		test(real, token.Any, true)
		test(token.Any, token.Any, true)
	})

	t.Run("distinct real locations", func(t *testing.T) {
		test(real, other, false)
	})
}

func TestTokenEqual(t *testing.T) {
	test := func(a, b token.Token, expected bool) {
		if a.Equal(b) != expected {
			t.Fail()
		}
	}

	loc := token.SourceLocation{File: "main.ez", Line: 1, Column: 1}

	t.Run("same kind and text, any location", func(t *testing.T) {
		test(
			token.Token{Text: "42", Kind: token.Integer, Location: loc},
			token.Token{Text: "42", Kind: token.Integer, Location: token.Any},
			true,
		)
	})

	t.Run("different text", func(t *testing.T) {
		test(
			token.Token{Text: "42", Kind: token.Integer, Location: loc},
			token.Token{Text: "43", Kind: token.Integer, Location: loc},
			false,
		)
	})

	t.Run("different kind", func(t *testing.T) {
		test(
			token.Token{Text: "true", Kind: token.Boolean, Location: loc},
			token.Token{Text: "true", Kind: token.Identifier, Location: loc},
			false,
		)
	})
}
