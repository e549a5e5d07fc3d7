package asm

import (
	"fmt"
	"strings"

	"github.com/Le36/ezcompiler/pkg/ir"
)

// argRegisters is the System V AMD64 integer argument-passing order, used
// for any Call whose Fun name is not in Intrinsics.
var argRegisters = []string{"%rdi", "%rsi", "%rdx", "%rcx", "%r8", "%r9"}

// CodeGenerator walks one compilation's IR and produces its assembly text:
// a struct wrapping the program, a Generate entry point, and one
// Generate-prefixed method per instruction kind.
type CodeGenerator struct {
	program []ir.Instruction
	locals  *Locals
	lines   []string
}

// NewCodeGenerator returns a CodeGenerator ready to lower program.
func NewCodeGenerator(program []ir.Instruction) *CodeGenerator {
	return &CodeGenerator{program: program, locals: NewLocals(program)}
}

// Generate produces the full assembly text: fixed prologue, one lowered
// block per instruction (each preceded by a comment of the instruction
// it came from), fixed epilogue.
func (cg *CodeGenerator) Generate() (string, error) {
	cg.emitPrologue()

	for _, instr := range cg.program {
		cg.emit(fmt.Sprintf("# %s", describe(instr)))

		var err error
		switch i := instr.(type) {
		case ir.Label:
			cg.generateLabel(i)
		case ir.LoadIntConst:
			cg.generateLoadIntConst(i)
		case ir.LoadBoolConst:
			cg.generateLoadBoolConst(i)
		case ir.Copy:
			cg.generateCopy(i)
		case ir.CondJump:
			cg.generateCondJump(i)
		case ir.Jump:
			cg.generateJump(i)
		case ir.Call:
			err = cg.generateCall(i)
		default:
			err = fmt.Errorf("asm: unrecognized instruction %T", instr)
		}
		if err != nil {
			return "", err
		}
	}

	cg.emitEpilogue()
	return strings.Join(cg.lines, "\n") + "\n", nil
}

func (cg *CodeGenerator) emit(line string) { cg.lines = append(cg.lines, line) }

func (cg *CodeGenerator) emitPrologue() {
	cg.emit(".extern print_int")
	cg.emit(".extern print_bool")
	cg.emit(".extern read_int")
	cg.emit(".global main")
	cg.emit(".type main, @function")
	cg.emit(".section .text")
	cg.emit("main:")
	cg.emit("pushq %rbp")
	cg.emit("movq %rsp, %rbp")
	cg.emit(fmt.Sprintf("subq $%d, %%rsp", cg.locals.StackUsed()))
}

func (cg *CodeGenerator) emitEpilogue() {
	cg.emit("movq %rbp, %rsp")
	cg.emit("popq %rbp")
	cg.emit("ret")
}

func (cg *CodeGenerator) generateLabel(i ir.Label) {
	cg.emit(fmt.Sprintf(".L%s:", i.Name))
}

// intMin32, intMax32 bound the range a plain movq immediate can hold
// (signed 32-bit, sign-extended by the instruction); anything outside
// needs a movabsq through %rax first.
const (
	intMin32 = -(1 << 31)
	intMax32 = 1<<31 - 1
)

func (cg *CodeGenerator) generateLoadIntConst(i ir.LoadIntConst) {
	dest := cg.locals.Ref(i.Dest)
	if i.Value >= intMin32 && i.Value <= intMax32 {
		cg.emit(fmt.Sprintf("movq $%d, %s", i.Value, dest))
		return
	}
	cg.emit(fmt.Sprintf("movabsq $%d, %%rax", i.Value))
	cg.emit(fmt.Sprintf("movq %%rax, %s", dest))
}

func (cg *CodeGenerator) generateLoadBoolConst(i ir.LoadBoolConst) {
	value := 0
	if i.Value {
		value = 1
	}
	cg.emit(fmt.Sprintf("movq $%d, %s", value, cg.locals.Ref(i.Dest)))
}

func (cg *CodeGenerator) generateCopy(i ir.Copy) {
	cg.emit(fmt.Sprintf("movq %s, %%rax", cg.locals.Ref(i.Source)))
	cg.emit(fmt.Sprintf("movq %%rax, %s", cg.locals.Ref(i.Dest)))
}

func (cg *CodeGenerator) generateCondJump(i ir.CondJump) {
	cg.emit(fmt.Sprintf("cmpq $0, %s", cg.locals.Ref(i.Cond)))
	cg.emit(fmt.Sprintf("jne .L%s", i.Then))
	cg.emit(fmt.Sprintf("jmp .L%s", i.Else))
}

func (cg *CodeGenerator) generateJump(i ir.Jump) {
	cg.emit(fmt.Sprintf("jmp .L%s", i.Label))
}

func (cg *CodeGenerator) generateCall(i ir.Call) error {
	if intrinsic, ok := Intrinsics[string(i.Fun)]; ok {
		argRefs := make([]string, len(i.Args))
		for idx, arg := range i.Args {
			argRefs[idx] = cg.locals.Ref(arg)
		}
		intrinsic(IntrinsicArgs{ArgRefs: argRefs, Emit: cg.emit})
		if i.Dest != "" {
			cg.emit(fmt.Sprintf("movq %%rax, %s", cg.locals.Ref(i.Dest)))
		}
		return nil
	}

	if len(i.Args) > len(argRegisters) {
		return fmt.Errorf("asm: call to %q passes %d arguments, only %d fit in registers", i.Fun, len(i.Args), len(argRegisters))
	}
	for idx, arg := range i.Args {
		cg.emit(fmt.Sprintf("movq %s, %s", cg.locals.Ref(arg), argRegisters[idx]))
	}
	cg.emit(fmt.Sprintf("call %s", i.Fun))
	if i.Dest != "" {
		cg.emit(fmt.Sprintf("movq %%rax, %s", cg.locals.Ref(i.Dest)))
	}
	return nil
}

// describe renders an instruction the same way its textual `#` comment
// should read: close to its Go representation without the struct-literal
// decoration.
func describe(instr ir.Instruction) string {
	switch i := instr.(type) {
	case ir.Label:
		return fmt.Sprintf("Label(%s)", i.Name)
	case ir.LoadIntConst:
		return fmt.Sprintf("LoadIntConst(%d, %s)", i.Value, i.Dest)
	case ir.LoadBoolConst:
		return fmt.Sprintf("LoadBoolConst(%t, %s)", i.Value, i.Dest)
	case ir.Copy:
		return fmt.Sprintf("Copy(%s, %s)", i.Source, i.Dest)
	case ir.CondJump:
		return fmt.Sprintf("CondJump(%s, %s, %s)", i.Cond, i.Then, i.Else)
	case ir.Jump:
		return fmt.Sprintf("Jump(%s)", i.Label)
	case ir.Call:
		return fmt.Sprintf("Call(%s, %v, %s)", i.Fun, i.Args, i.Dest)
	default:
		return fmt.Sprintf("%T", instr)
	}
}
