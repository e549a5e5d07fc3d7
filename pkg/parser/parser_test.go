package parser_test

import (
	"testing"

	"github.com/Le36/ezcompiler/pkg/lang"
	"github.com/Le36/ezcompiler/pkg/lexer"
	"github.com/Le36/ezcompiler/pkg/parser"
)

func parse(t *testing.T, source string) lang.Expression {
	t.Helper()
	tokens := lexer.Tokenize("test.ez", source)
	expr, err := parser.Parse(tokens)
	if err != nil {
		t.Fatalf("unexpected parse error: %s", err)
	}
	return expr
}

func TestParseValidData(t *testing.T) {
	test := func(source string, check func(lang.Expression) bool) {
		expr := parse(t, source)
		if !check(expr) {
			t.Fail()
		}
	}

	t.Run("arithmetic precedence", func(t *testing.T) {
		// 1 + 2 * 3 must parse as 1 + (2 * 3), i.e. the outer node is "+".
		test("1 + 2 * 3", func(e lang.Expression) bool {
			bin, ok := e.(*lang.BinaryOp)
			return ok && bin.Op == lang.OpAdd
		})
	})

	t.Run("assignment is right-associative", func(t *testing.T) {
		// a = b = 1 must parse as a = (b = 1).
		test("a = b = 1", func(e lang.Expression) bool {
			outer, ok := e.(*lang.BinaryOp)
			if !ok || outer.Op != lang.OpAssign {
				return false
			}
			inner, ok := outer.Right.(*lang.BinaryOp)
			return ok && inner.Op == lang.OpAssign
		})
	})

	t.Run("unary operators nest right to left", func(t *testing.T) {
		test("- - 1", func(e lang.Expression) bool {
			outer, ok := e.(*lang.UnaryOp)
			if !ok || outer.Op != lang.OpNegate {
				return false
			}
			_, ok = outer.Operand.(*lang.UnaryOp)
			return ok
		})
	})

	t.Run("function call with arguments", func(t *testing.T) {
		test("print_int(1 + 2)", func(e lang.Expression) bool {
			call, ok := e.(*lang.FunctionCall)
			return ok && call.Name == "print_int" && len(call.Arguments) == 1
		})
	})

	t.Run("if without else", func(t *testing.T) {
		test("if true then 1", func(e lang.Expression) bool {
			ifExpr, ok := e.(*lang.IfExpression)
			return ok && ifExpr.ElseBranch == nil
		})
	})

	t.Run("if with else", func(t *testing.T) {
		test("if true then 1 else 2", func(e lang.Expression) bool {
			ifExpr, ok := e.(*lang.IfExpression)
			return ok && ifExpr.ElseBranch != nil
		})
	})

	t.Run("block with semicolon-elided adjacent braces", func(t *testing.T) {
		test("{ { 1 } { 2 } }", func(e lang.Expression) bool {
			block, ok := e.(*lang.Block)
			return ok && len(block.Expressions) == 1 && block.ResultExpression != nil
		})
	})

	t.Run("block with trailing semicolon yields Unit result", func(t *testing.T) {
		test("{ 1; }", func(e lang.Expression) bool {
			block, ok := e.(*lang.Block)
			if !ok || block.ResultExpression == nil {
				return false
			}
			lit, ok := block.ResultExpression.(*lang.Literal)
			return ok && lit.Value == nil
		})
	})

	t.Run("var declaration inside a block", func(t *testing.T) {
		test("{ var x = 1; x }", func(e lang.Expression) bool {
			block, ok := e.(*lang.Block)
			if !ok || len(block.Expressions) != 1 {
				return false
			}
			_, ok = block.Expressions[0].(*lang.VarDeclaration)
			return ok
		})
	})
}

func TestParseInvalidData(t *testing.T) {
	test := func(source string) {
		tokens := lexer.Tokenize("test.ez", source)
		_, err := parser.Parse(tokens)
		if err == nil {
			t.Fail()
		}
	}

	t.Run("Invalid data", func(t *testing.T) {
		test("1 +")            // dangling operator
		test("var x = 1")      // var declaration outside a block
		test("{ 1 2 }")        // missing separator between non-brace items
		test("if true 1")      // missing "then"
		test("(1 + 2")         // unterminated parenthesized expression
		test("print_int(1, )") // trailing comma with no argument
	})
}
