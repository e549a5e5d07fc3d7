package compiler_test

import (
	"strings"
	"testing"

	"github.com/Le36/ezcompiler/pkg/compiler"
)

func TestCompileValidData(t *testing.T) {
	test := func(source string, mustContainAsm string) {
		result, err := compiler.Compile(source)
		if err != nil {
			t.Fail()
			return
		}
		if len(result.Tokens) == 0 || result.AST == nil || len(result.IR) == 0 {
			t.Fail()
		}
		if !strings.Contains(result.Assembly, mustContainAsm) {
			t.Fail()
		}
		if result.FileGenerated {
			// Compile never assembles/links on its own.
			t.Fail()
		}
	}

	t.Run("arithmetic expression compiles to a call to print_int", func(t *testing.T) {
		test("1 + 2 * 3", "call print_int")
	})

	t.Run("boolean expression compiles to a call to print_bool", func(t *testing.T) {
		test("1 < 2", "call print_bool")
	})

	t.Run("a block with a var declaration and a loop", func(t *testing.T) {
		test("{ var x = 0; while x < 10 do x = x + 1; x }", "call print_int")
	})
}

func TestCompileInvalidData(t *testing.T) {
	test := func(source string, expectedKind compiler.Kind) {
		_, err := compiler.Compile(source)
		if err == nil {
			t.Fail()
			return
		}
		kind, ok := compiler.StageKind(err)
		if !ok || kind != expectedKind {
			t.Fail()
		}
	}

	t.Run("a dangling operator is a ParseError", func(t *testing.T) {
		test("1 +", compiler.KindParse)
	})

	t.Run("an operand kind mismatch is a TypeError", func(t *testing.T) {
		test("1 + true", compiler.KindType)
	})
}

func TestStageKindOnNonStageError(t *testing.T) {
	if _, ok := compiler.StageKind(nil); ok {
		t.Fail()
	}
}
