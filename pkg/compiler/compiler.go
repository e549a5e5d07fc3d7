package compiler

import (
	"errors"
	"os"

	"github.com/Le36/ezcompiler/pkg/asm"
	"github.com/Le36/ezcompiler/pkg/ir"
	"github.com/Le36/ezcompiler/pkg/lang"
	"github.com/Le36/ezcompiler/pkg/lexer"
	"github.com/Le36/ezcompiler/pkg/parser"
	"github.com/Le36/ezcompiler/pkg/token"
	"github.com/Le36/ezcompiler/pkg/typecheck"
)

// Result is the structured envelope every successful compilation
// produces, populated stage by stage. FileGenerated records whether the
// optional assemble/link step (run separately by pkg/driver, not by
// Compile itself) succeeded; Compile never sets it to true on its own,
// since Compile's own scope ends at producing assembly text.
type Result struct {
	Tokens        []token.Token     `json:"tokens"`
	AST           lang.Expression   `json:"ast"`
	IR            []ir.Instruction  `json:"ir"`
	Assembly      string            `json:"asm"`
	FileGenerated bool              `json:"file_generated"`
}

// Compile runs the full pipeline over source: tokenize, parse, type-check,
// lower to IR, generate assembly. It is pure: no file I/O, no subprocess,
// no global state survives one call (see pkg/ir.Generator, which a fresh
// call always constructs anew).
//
// If debug tracing is requested via EZC_TRACE_TOKENS / EZC_TRACE_IR /
// EZC_TRACE_ASM, the corresponding stage's output is printed to stderr as
// it is produced.
func Compile(source string) (*Result, error) {
	tokens := lexer.Tokenize("<input>", source)
	if os.Getenv("EZC_TRACE_TOKENS") != "" {
		traceTokens(tokens)
	}

	root, err := parser.Parse(tokens)
	if err != nil {
		return nil, wrapStage(KindParse, err)
	}

	if _, err := typecheck.Check(root); err != nil {
		return nil, wrapStage(KindType, err)
	}

	instructions, err := ir.Generate(root)
	if err != nil {
		return nil, wrapStage(KindIr, err)
	}
	if os.Getenv("EZC_TRACE_IR") != "" {
		traceIR(instructions)
	}

	assembly, err := asm.NewCodeGenerator(instructions).Generate()
	if err != nil {
		return nil, wrapStage(KindAsm, err)
	}
	if os.Getenv("EZC_TRACE_ASM") != "" {
		traceAsm(assembly)
	}

	return &Result{
		Tokens:   tokens,
		AST:      root,
		IR:       instructions,
		Assembly: assembly,
	}, nil
}

// StageKind reports the Kind of a StageError wrapped in err, or ("", false)
// if err didn't originate from a pipeline stage (e.g. it's nil, or came
// from somewhere outside Compile).
func StageKind(err error) (Kind, bool) {
	var stageErr *StageError
	if errors.As(err, &stageErr) {
		return stageErr.Kind, true
	}
	return "", false
}
