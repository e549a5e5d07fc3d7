// Package ir also houses the generator that lowers a type-checked
// lang.Expression tree into the flat Instruction list pkg/asm consumes.
//
// Structurally this is a per-node-kind walk: one method per AST node kind,
// dispatched from a single visit entry point, threading a scope
// (symtable.Table[ir.Var]) through the recursion. Its variable and label
// counters live on the Generator value itself rather than as module
// globals, so two compilations never share state.
package ir

import (
	"fmt"

	"github.com/Le36/ezcompiler/pkg/lang"
	"github.com/Le36/ezcompiler/pkg/symtable"
	"github.com/Le36/ezcompiler/pkg/token"
)

// Error is an IrError: the generator cannot lower a construct.
type Error struct {
	Location token.SourceLocation
	Message  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Location, e.Message)
}

const unitVar Var = "unit"

// Generator lowers one type-checked tree. It is single-use: construct a
// fresh Generator per compilation so its counters start at zero.
type Generator struct {
	instructions []Instruction
	varCounter   int
	labelCounter map[string]int
}

// NewGenerator returns a Generator with its counters reset.
func NewGenerator() *Generator {
	return &Generator{labelCounter: map[string]int{}}
}

// Generate lowers root (already type-checked: every node's GetType must
// be non-nil) into a flat instruction list. The root scope is seeded from
// Signatures so every operator and builtin name resolves to its IRVar.
func Generate(root lang.Expression) ([]Instruction, error) {
	g := NewGenerator()

	scope := symtable.New[Var]()
	for name := range Signatures {
		scope.Define(string(name), name)
	}

	result, err := g.visit(scope, root)
	if err != nil {
		return nil, err
	}

	switch root.GetType().(type) {
	case lang.IntType:
		g.emit(NewCall(root.Loc(), "print_int", []Var{result}, g.newVar()))
	case lang.BoolType:
		g.emit(NewCall(root.Loc(), "print_bool", []Var{result}, g.newVar()))
	}

	return g.instructions, nil
}

func (g *Generator) emit(instr Instruction) { g.instructions = append(g.instructions, instr) }

func (g *Generator) newVar() Var {
	g.varCounter++
	return Var(fmt.Sprintf("x%d", g.varCounter))
}

func (g *Generator) newLabel(prefix string) string {
	g.labelCounter[prefix]++
	return fmt.Sprintf("%s%d", prefix, g.labelCounter[prefix])
}

func (g *Generator) visit(scope *symtable.Table[Var], expr lang.Expression) (Var, error) {
	switch e := expr.(type) {
	case *lang.Literal:
		return g.visitLiteral(e)
	case *lang.Identifier:
		return g.visitIdentifier(scope, e)
	case *lang.BinaryOp:
		return g.visitBinaryOp(scope, e)
	case *lang.UnaryOp:
		return g.visitUnaryOp(scope, e)
	case *lang.IfExpression:
		return g.visitIf(scope, e)
	case *lang.Block:
		return g.visitBlock(scope, e)
	case *lang.While:
		return g.visitWhile(scope, e)
	case *lang.VarDeclaration:
		return g.visitVarDeclaration(scope, e)
	case *lang.FunctionCall:
		return g.visitFunctionCall(scope, e)
	default:
		return "", &Error{Location: expr.Loc(), Message: fmt.Sprintf("cannot lower expression node %T", expr)}
	}
}

func (g *Generator) visitLiteral(e *lang.Literal) (Var, error) {
	switch v := e.Value.(type) {
	case bool:
		dest := g.newVar()
		g.emit(NewLoadBoolConst(e.Loc(), v, dest))
		return dest, nil
	case int64:
		dest := g.newVar()
		g.emit(NewLoadIntConst(e.Loc(), v, dest))
		return dest, nil
	case nil:
		return unitVar, nil
	default:
		return "", &Error{Location: e.Loc(), Message: fmt.Sprintf("unsupported literal value %v", e.Value)}
	}
}

func (g *Generator) visitIdentifier(scope *symtable.Table[Var], e *lang.Identifier) (Var, error) {
	v, err := scope.Lookup(e.Name)
	if err != nil {
		return "", &Error{Location: e.Loc(), Message: fmt.Sprintf("unresolved name %q", e.Name)}
	}
	return v, nil
}

func (g *Generator) visitBinaryOp(scope *symtable.Table[Var], e *lang.BinaryOp) (Var, error) {
	switch e.Op {
	case lang.OpAnd, lang.OpOr:
		return g.visitShortCircuit(scope, e)
	case lang.OpAssign:
		return g.visitAssign(scope, e)
	}

	var opVar Var
	if e.Op == lang.OpEq || e.Op == lang.OpNeq {
		// Synthesized rather than looked up: these are never pre-registered
		// in Signatures.
		opVar = Var(e.Op)
	} else {
		v, err := scope.Lookup(string(e.Op))
		if err != nil {
			return "", &Error{Location: e.Loc(), Message: fmt.Sprintf("unresolved operator %q", e.Op)}
		}
		opVar = v
	}

	leftVar, err := g.visit(scope, e.Left)
	if err != nil {
		return "", err
	}
	rightVar, err := g.visit(scope, e.Right)
	if err != nil {
		return "", err
	}

	// The result variable itself carries no type (unlike the reference
	// implementation's var_types map, a stack slot is the same size for
	// every value kind), so there is nothing here that can go stale by
	// reading the wrong side's type; the operator's FunType.ReturnType
	// (Signatures[opVar]) is what a caller would consult if it needed one.
	result := g.newVar()
	g.emit(NewCall(e.Loc(), opVar, []Var{leftVar, rightVar}, result))
	return result, nil
}

func (g *Generator) visitShortCircuit(scope *symtable.Table[Var], e *lang.BinaryOp) (Var, error) {
	loc := e.Loc()
	prefix := string(e.Op)
	lRight := g.newLabel(prefix + "_right")
	lSkip := g.newLabel(prefix + "_skip")
	lEnd := g.newLabel(prefix + "_end")

	leftVar, err := g.visit(scope, e.Left)
	if err != nil {
		return "", err
	}

	if e.Op == lang.OpAnd {
		g.emit(NewCondJump(loc, leftVar, lRight, lSkip))
	} else {
		g.emit(NewCondJump(loc, leftVar, lSkip, lRight))
	}
	g.emit(NewLabel(loc, lRight))

	rightVar, err := g.visit(scope, e.Right)
	if err != nil {
		return "", err
	}
	result := g.newVar()

	g.emit(NewCopy(loc, rightVar, result))
	g.emit(NewJump(loc, lEnd))
	g.emit(NewLabel(loc, lSkip))

	g.emit(NewLoadBoolConst(loc, e.Op == lang.OpOr, result))
	g.emit(NewJump(loc, lEnd))
	g.emit(NewLabel(loc, lEnd))

	return result, nil
}

func (g *Generator) visitAssign(scope *symtable.Table[Var], e *lang.BinaryOp) (Var, error) {
	ident, ok := e.Left.(*lang.Identifier)
	if !ok {
		return "", &Error{Location: e.Loc(), Message: "left-hand side of '=' must be an identifier"}
	}

	lhsVar, err := scope.Lookup(ident.Name)
	if err != nil {
		return "", &Error{Location: e.Loc(), Message: fmt.Sprintf("unresolved name %q", ident.Name)}
	}
	rhsVar, err := g.visit(scope, e.Right)
	if err != nil {
		return "", err
	}
	g.emit(NewCopy(e.Loc(), rhsVar, lhsVar))
	return lhsVar, nil
}

func (g *Generator) visitUnaryOp(scope *symtable.Table[Var], e *lang.UnaryOp) (Var, error) {
	opName := "unary_" + string(e.Op)
	opVar, err := scope.Lookup(opName)
	if err != nil {
		return "", &Error{Location: e.Loc(), Message: fmt.Sprintf("unresolved unary operator %q", e.Op)}
	}

	operandVar, err := g.visit(scope, e.Operand)
	if err != nil {
		return "", err
	}

	var result Var
	switch e.Op {
	case lang.OpNot, lang.OpNegate:
		result = g.newVar()
	default:
		return "", &Error{Location: e.Loc(), Message: fmt.Sprintf("unsupported unary operator %q", e.Op)}
	}

	g.emit(NewCall(e.Loc(), opVar, []Var{operandVar}, result))
	return result, nil
}

func (g *Generator) visitIf(scope *symtable.Table[Var], e *lang.IfExpression) (Var, error) {
	loc := e.Loc()

	if e.ElseBranch == nil {
		lThen := g.newLabel("then")
		lEnd := g.newLabel("if_end")

		condVar, err := g.visit(scope, e.Condition)
		if err != nil {
			return "", err
		}
		g.emit(NewCondJump(loc, condVar, lThen, lEnd))
		g.emit(NewLabel(loc, lThen))

		if _, err := g.visit(scope, e.ThenBranch); err != nil {
			return "", err
		}
		g.emit(NewLabel(loc, lEnd))
		return unitVar, nil
	}

	lThen := g.newLabel("then")
	lElse := g.newLabel("else")
	lEnd := g.newLabel("if_end")

	condVar, err := g.visit(scope, e.Condition)
	if err != nil {
		return "", err
	}
	g.emit(NewCondJump(loc, condVar, lThen, lElse))
	g.emit(NewLabel(loc, lThen))

	// Both branches are lowered into isolated instruction buffers first,
	// so the result variable can be allocated only once both are known,
	// never from the then-branch alone, which is what made the reference
	// implementation's allocation order stale under the no-else variant.
	thenVar, thenBody, err := g.captureInstructions(func() (Var, error) { return g.visit(scope, e.ThenBranch) })
	if err != nil {
		return "", err
	}
	elseVar, elseBody, err := g.captureInstructions(func() (Var, error) { return g.visit(scope, e.ElseBranch) })
	if err != nil {
		return "", err
	}

	result := g.newVar()

	g.instructions = append(g.instructions, thenBody...)
	g.emit(NewCopy(loc, thenVar, result))
	g.emit(NewJump(loc, lEnd))
	g.emit(NewLabel(loc, lElse))
	g.instructions = append(g.instructions, elseBody...)
	g.emit(NewCopy(loc, elseVar, result))
	g.emit(NewLabel(loc, lEnd))

	return result, nil
}

// captureInstructions runs fn with the generator's emission buffer
// swapped out for a fresh one, returning whatever fn emitted separately
// from the generator's real instruction list (which is left exactly as it
// was before the call). Variable and label counters are shared as normal,
// so names allocated inside fn never collide with names allocated before
// or after it.
func (g *Generator) captureInstructions(fn func() (Var, error)) (Var, []Instruction, error) {
	saved := g.instructions
	g.instructions = nil

	result, err := fn()

	captured := g.instructions
	g.instructions = saved
	if err != nil {
		return "", nil, err
	}
	return result, captured, nil
}

func (g *Generator) visitBlock(scope *symtable.Table[Var], e *lang.Block) (Var, error) {
	inner := scope.NewChild()
	last := unitVar

	for _, item := range e.Expressions {
		v, err := g.visit(inner, item)
		if err != nil {
			return "", err
		}
		last = v
	}

	if e.ResultExpression != nil {
		v, err := g.visit(inner, e.ResultExpression)
		if err != nil {
			return "", err
		}
		last = v
	}

	return last, nil
}

func (g *Generator) visitWhile(scope *symtable.Table[Var], e *lang.While) (Var, error) {
	loc := e.Loc()
	lStart := g.newLabel("while_start")
	lBody := g.newLabel("while_body")
	lEnd := g.newLabel("while_end")

	g.emit(NewLabel(loc, lStart))
	condVar, err := g.visit(scope, e.Condition)
	if err != nil {
		return "", err
	}
	g.emit(NewCondJump(loc, condVar, lBody, lEnd))
	g.emit(NewLabel(loc, lBody))

	if _, err := g.visit(scope, e.Body); err != nil {
		return "", err
	}
	g.emit(NewJump(loc, lStart))
	g.emit(NewLabel(loc, lEnd))

	return unitVar, nil
}

func (g *Generator) visitVarDeclaration(scope *symtable.Table[Var], e *lang.VarDeclaration) (Var, error) {
	initVar, err := g.visit(scope, e.Value)
	if err != nil {
		return "", err
	}
	dest := g.newVar()
	scope.Define(e.Name, dest)
	g.emit(NewCopy(e.Loc(), initVar, dest))
	return dest, nil
}

func (g *Generator) visitFunctionCall(scope *symtable.Table[Var], e *lang.FunctionCall) (Var, error) {
	funVar, err := scope.Lookup(e.Name)
	if err != nil {
		return "", &Error{Location: e.Loc(), Message: fmt.Sprintf("unsupported function call: %s", e.Name)}
	}

	// Arguments are always passed as a list, even for single-argument
	// builtins; normalized here rather than special-cased per arity.
	args := make([]Var, len(e.Arguments))
	for i, arg := range e.Arguments {
		v, err := g.visit(scope, arg)
		if err != nil {
			return "", err
		}
		args[i] = v
	}

	result := g.newVar()
	g.emit(NewCall(e.Loc(), funVar, args, result))
	return result, nil
}
