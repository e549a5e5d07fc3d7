package typecheck_test

import (
	"testing"

	"github.com/Le36/ezcompiler/pkg/lang"
	"github.com/Le36/ezcompiler/pkg/lexer"
	"github.com/Le36/ezcompiler/pkg/parser"
	"github.com/Le36/ezcompiler/pkg/typecheck"
)

func checkSource(t *testing.T, source string) (lang.Type, error) {
	t.Helper()
	tokens := lexer.Tokenize("test.ez", source)
	root, err := parser.Parse(tokens)
	if err != nil {
		t.Fatalf("unexpected parse error: %s", err)
	}
	return typecheck.Check(root)
}

func TestCheckValidData(t *testing.T) {
	test := func(source string, expected lang.Type) {
		got, err := checkSource(t, source)
		if err != nil || !lang.SameKind(got, expected) {
			t.Fail()
		}
	}

	t.Run("arithmetic yields Int", func(t *testing.T) {
		test("1 + 2 * 3", lang.Int)
	})

	t.Run("comparison yields Bool", func(t *testing.T) {
		test("1 < 2", lang.Bool)
	})

	t.Run("if-else with matching branch types", func(t *testing.T) {
		test("if true then 1 else 2", lang.Int)
	})

	t.Run("if without else is Unit", func(t *testing.T) {
		test("if true then 1", lang.Unit)
	})

	t.Run("while is always Unit", func(t *testing.T) {
		test("while false do 1", lang.Unit)
	})

	t.Run("var declaration introduces a binding usable afterwards", func(t *testing.T) {
		test("{ var x = 1; x + 1 }", lang.Int)
	})

	t.Run("reassignment to an existing binding of the same kind", func(t *testing.T) {
		test("{ var x = 1; x = 2; x }", lang.Int)
	})

	t.Run("builtin call with matching argument type", func(t *testing.T) {
		test("print_int(1)", lang.Unit)
	})
}

func TestCheckInvalidData(t *testing.T) {
	test := func(source string) {
		_, err := checkSource(t, source)
		if err == nil {
			t.Fail()
		}
	}

	t.Run("Invalid data", func(t *testing.T) {
		test("1 + true")                       // operand kind mismatch
		test("if 1 then 1 else 2")              // non-Bool condition
		test("if true then 1 else false")       // mismatched branch kinds
		test("x")                               // undefined identifier
		test("{ var x = 1; x = true; x }")      // reassignment changes kind
		test("print_int(true)")                 // wrong argument kind
		test("print_int(1, 2)")                 // wrong argument count
		test("unknown_function(1)")             // unknown builtin
	})
}
