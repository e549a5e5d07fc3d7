package asm_test

import (
	"strings"
	"testing"

	"github.com/Le36/ezcompiler/pkg/asm"
	"github.com/Le36/ezcompiler/pkg/ir"
	"github.com/Le36/ezcompiler/pkg/token"
)

var loc0 = token.SourceLocation{File: "test.ez", Line: 1, Column: 1}

func TestLocalsAllocatesOneSlotPerUniqueVariable(t *testing.T) {
	instructions := []ir.Instruction{
		ir.NewLoadIntConst(loc0, 1, "x1"),
		ir.NewLoadIntConst(loc0, 2, "x2"),
		ir.NewCall(loc0, "+", []ir.Var{"x1", "x2"}, "x3"),
	}
	locals := asm.NewLocals(instructions)

	if locals.StackUsed() != 32 {
		// x1, x2, "+" and x3 each take a slot: Fun is walked too.
		t.Fail()
	}
	if locals.Ref("x1") == locals.Ref("x2") {
		t.Fail()
	}
}

func TestLocalsRefPanicsOnUnknownVariable(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fail()
		}
	}()
	asm.NewLocals(nil).Ref("never_seen")
}

func TestCodeGeneratorValidData(t *testing.T) {
	test := func(program []ir.Instruction, mustContain []string) {
		cg := asm.NewCodeGenerator(program)
		out, err := cg.Generate()
		if err != nil {
			t.Fail()
			return
		}
		for _, want := range mustContain {
			if !strings.Contains(out, want) {
				t.Fail()
			}
		}
	}

	t.Run("prologue and epilogue frame every program", func(t *testing.T) {
		test([]ir.Instruction{ir.NewLoadIntConst(loc0, 1, "x1")},
			[]string{"main:", "pushq %rbp", "movq %rbp, %rsp", "popq %rbp", "ret"})
	})

	t.Run("an intrinsic call lowers inline without a call instruction", func(t *testing.T) {
		program := []ir.Instruction{
			ir.NewLoadIntConst(loc0, 1, "x1"),
			ir.NewLoadIntConst(loc0, 2, "x2"),
			ir.NewCall(loc0, "+", []ir.Var{"x1", "x2"}, "x3"),
		}
		test(program, []string{"addq"})
	})

	t.Run("a non-intrinsic call passes arguments in registers", func(t *testing.T) {
		program := []ir.Instruction{
			ir.NewLoadIntConst(loc0, 1, "x1"),
			ir.NewCall(loc0, "print_int", []ir.Var{"x1"}, ""),
		}
		test(program, []string{"movq -8(%rbp), %rdi", "call print_int"})
	})

	t.Run("a large constant loads through movabsq", func(t *testing.T) {
		test([]ir.Instruction{ir.NewLoadIntConst(loc0, 1 << 40, "x1")}, []string{"movabsq"})
	})
}

func TestCodeGeneratorInvalidData(t *testing.T) {
	t.Run("Invalid data", func(t *testing.T) {
		args := make([]ir.Var, 7)
		for i := range args {
			args[i] = ir.Var("a")
		}
		program := []ir.Instruction{ir.NewCall(loc0, "too_many_args", args, "")}
		if _, err := asm.NewCodeGenerator(program).Generate(); err == nil {
			t.Fail()
		}
	})
}
