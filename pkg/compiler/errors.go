// Package compiler wires the tokenizer, parser, type checker, IR
// generator and assembly generator into the single pure entry point
// Compile(source) → (*Result, error), and defines the four fatal error
// kinds the stages raise.
package compiler

import (
	"github.com/pkg/errors"
)

// Kind identifies which pipeline stage produced an error.
type Kind string

const (
	KindParse Kind = "ParseError"
	KindType  Kind = "TypeError"
	KindIr    Kind = "IrError"
	KindAsm   Kind = "AsmError"
)

// StageError wraps an underlying stage error with the Kind that produced
// it, plus a stack trace from the point it crossed into Compile. Compile
// returns a StageError instead of a Result for every kind, including
// AsmError (raised when assembly generation fails). Failures of the
// external assembler/linker in pkg/driver are not StageErrors; callers
// report them through Result.FileGenerated.
type StageError struct {
	Kind  Kind
	cause error
}

func (e *StageError) Error() string { return string(e.Kind) + ": " + e.cause.Error() }
func (e *StageError) Unwrap() error { return e.cause }

// wrapStage promotes a stage-local error (already fully formatted by its
// own Error type, e.g. parser.Error) into a StageError carrying a stack
// trace, the way a cross-stage boundary is expected to record one.
func wrapStage(kind Kind, cause error) error {
	if cause == nil {
		return nil
	}
	return &StageError{Kind: kind, cause: errors.WithStack(cause)}
}
