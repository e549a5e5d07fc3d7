// Package asm lowers a flat ir.Instruction list into AT&T-syntax x86-64
// assembly text targeting the System V AMD64 ABI.
//
// The stack-slot allocator below walks every instruction's IRVar-typed
// fields (and IRVar-typed list fields) in program order, assigning each
// newly seen one an 8-byte slot starting at -8(%rbp) and growing downward.
package asm

import (
	"fmt"

	"github.com/Le36/ezcompiler/pkg/ir"
)

// Locals maps every ir.Var referenced by a compilation to its stack-slot
// operand text. Offsets are stable for the life of one compilation and are
// never reused.
type Locals struct {
	refs      map[ir.Var]string
	stackUsed int
}

// NewLocals collects the ordered set of unique variables referenced by
// instructions and assigns each an 8-byte slot.
func NewLocals(instructions []ir.Instruction) *Locals {
	l := &Locals{refs: map[ir.Var]string{}}
	offset := 8

	for _, instr := range instructions {
		for _, v := range ir.Vars(instr) {
			if _, seen := l.refs[v]; seen {
				continue
			}
			l.refs[v] = fmt.Sprintf("-%d(%%rbp)", offset)
			offset += 8
			l.stackUsed += 8
		}
	}

	return l
}

// Ref returns the stack-slot operand text for v (e.g. "-16(%rbp)"). Panics
// if v was never collected by NewLocals, which can only happen if a
// generator bug emits an instruction referencing a variable it never
// visited.
func (l *Locals) Ref(v ir.Var) string {
	ref, ok := l.refs[v]
	if !ok {
		panic("asm: no stack slot allocated for variable " + string(v))
	}
	return ref
}

// StackUsed returns the total bytes the prologue must reserve.
func (l *Locals) StackUsed() int { return l.stackUsed }
