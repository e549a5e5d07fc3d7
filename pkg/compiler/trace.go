package compiler

import (
	"fmt"
	"os"

	"github.com/Le36/ezcompiler/pkg/ir"
	"github.com/Le36/ezcompiler/pkg/token"
)

// traceTokens, traceIR and traceAsm print a stage's intermediate output to
// stderr, gated on the EZC_TRACE_* environment variables. They exist purely
// for local debugging; Compile never reads their output.
func traceTokens(tokens []token.Token) {
	fmt.Fprintln(os.Stderr, "-- tokens --")
	for _, t := range tokens {
		fmt.Fprintln(os.Stderr, t.String())
	}
}

func traceIR(instructions []ir.Instruction) {
	fmt.Fprintln(os.Stderr, "-- ir --")
	for _, instr := range instructions {
		fmt.Fprintf(os.Stderr, "%#v\n", instr)
	}
}

func traceAsm(assembly string) {
	fmt.Fprintln(os.Stderr, "-- asm --")
	fmt.Fprint(os.Stderr, assembly)
}
