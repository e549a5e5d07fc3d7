// Package typecheck implements the single type-checking pass that walks a
// parsed lang.Expression tree, annotates every node's type in place, and
// rejects any construct whose operand types don't match.
//
// The walker is one method per node kind, dispatched from a single entry
// point by a type switch, threading a single Block-scoped chain
// (pkg/symtable.Table[lang.Type]).
package typecheck

import (
	"fmt"

	"github.com/Le36/ezcompiler/pkg/lang"
	"github.com/Le36/ezcompiler/pkg/symtable"
	"github.com/Le36/ezcompiler/pkg/token"
)

// Error is a TypeError: a construct was rejected. Message cites the rule
// that failed.
type Error struct {
	Location token.SourceLocation
	Message  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Location, e.Message)
}

// Check type-checks root against a fresh scope and returns its type, or the
// first TypeError encountered. root is annotated in place as a side
// effect: every node visited has its SetType called before Check returns.
func Check(root lang.Expression) (lang.Type, error) {
	scope := symtable.New[lang.Type]()
	return checkExpr(root, scope)
}

func checkExpr(expr lang.Expression, scope *symtable.Table[lang.Type]) (lang.Type, error) {
	var t lang.Type
	var err error

	switch e := expr.(type) {
	case *lang.Literal:
		t, err = checkLiteral(e)
	case *lang.Identifier:
		t, err = checkIdentifier(e, scope)
	case *lang.BinaryOp:
		t, err = checkBinaryOp(e, scope)
	case *lang.UnaryOp:
		t, err = checkUnaryOp(e, scope)
	case *lang.IfExpression:
		t, err = checkIf(e, scope)
	case *lang.Block:
		t, err = checkBlock(e, scope)
	case *lang.While:
		t, err = checkWhile(e, scope)
	case *lang.VarDeclaration:
		t, err = checkVarDeclaration(e, scope)
	case *lang.FunctionCall:
		t, err = checkFunctionCall(e, scope)
	default:
		return nil, &Error{Location: expr.Loc(), Message: fmt.Sprintf("unrecognized expression node %T", expr)}
	}

	if err != nil {
		return nil, err
	}
	expr.SetType(t)
	return t, nil
}

func checkLiteral(e *lang.Literal) (lang.Type, error) {
	switch e.Value.(type) {
	case bool:
		return lang.Bool, nil
	case int64:
		return lang.Int, nil
	case nil:
		return lang.Unit, nil
	default:
		return nil, &Error{Location: e.Loc(), Message: fmt.Sprintf("unsupported literal value %v", e.Value)}
	}
}

func checkIdentifier(e *lang.Identifier, scope *symtable.Table[lang.Type]) (lang.Type, error) {
	t, err := scope.Lookup(e.Name)
	if err != nil {
		return nil, &Error{Location: e.Loc(), Message: fmt.Sprintf("undefined variable %q", e.Name)}
	}
	return t, nil
}

func checkBinaryOp(e *lang.BinaryOp, scope *symtable.Table[lang.Type]) (lang.Type, error) {
	if e.Op == lang.OpAssign {
		return checkAssignment(e, scope)
	}

	leftType, err := checkExpr(e.Left, scope)
	if err != nil {
		return nil, err
	}
	rightType, err := checkExpr(e.Right, scope)
	if err != nil {
		return nil, err
	}

	switch e.Op {
	case lang.OpAdd, lang.OpSub, lang.OpMul, lang.OpDiv, lang.OpMod:
		if !lang.SameKind(leftType, lang.Int) || !lang.SameKind(rightType, lang.Int) {
			return nil, &Error{Location: e.Loc(), Message: fmt.Sprintf("operator %q requires both operands to be Int", e.Op)}
		}
		return lang.Int, nil

	case lang.OpAnd, lang.OpOr:
		if !lang.SameKind(leftType, lang.Bool) || !lang.SameKind(rightType, lang.Bool) {
			return nil, &Error{Location: e.Loc(), Message: fmt.Sprintf("operator %q requires both operands to be Bool", e.Op)}
		}
		return lang.Bool, nil

	case lang.OpEq, lang.OpNeq, lang.OpLt, lang.OpLte, lang.OpGt, lang.OpGte:
		if !lang.SameKind(leftType, lang.Int) || !lang.SameKind(rightType, lang.Int) {
			return nil, &Error{Location: e.Loc(), Message: fmt.Sprintf("operator %q requires both operands to be Int", e.Op)}
		}
		return lang.Bool, nil

	default:
		return nil, &Error{Location: e.Loc(), Message: fmt.Sprintf("unrecognized binary operator %q", e.Op)}
	}
}

func checkAssignment(e *lang.BinaryOp, scope *symtable.Table[lang.Type]) (lang.Type, error) {
	ident, ok := e.Left.(*lang.Identifier)
	if !ok {
		return nil, &Error{Location: e.Loc(), Message: "left-hand side of '=' must be an identifier"}
	}

	rhsType, err := checkExpr(e.Right, scope)
	if err != nil {
		return nil, err
	}

	if scope.Has(ident.Name) {
		existing, _ := scope.Lookup(ident.Name)
		if !lang.SameKind(existing, rhsType) {
			return nil, &Error{Location: e.Loc(), Message: fmt.Sprintf("cannot assign to %q: existing type does not match assigned value's type", ident.Name)}
		}
	}
	scope.UpdateOrDefine(ident.Name, rhsType)
	ident.SetType(rhsType)
	return rhsType, nil
}

func checkUnaryOp(e *lang.UnaryOp, scope *symtable.Table[lang.Type]) (lang.Type, error) {
	operandType, err := checkExpr(e.Operand, scope)
	if err != nil {
		return nil, err
	}

	switch e.Op {
	case lang.OpNot:
		if !lang.SameKind(operandType, lang.Bool) {
			return nil, &Error{Location: e.Loc(), Message: "operator 'not' requires a Bool operand"}
		}
		return lang.Bool, nil
	case lang.OpNegate:
		if !lang.SameKind(operandType, lang.Int) {
			return nil, &Error{Location: e.Loc(), Message: "unary '-' requires an Int operand"}
		}
		return lang.Int, nil
	default:
		return nil, &Error{Location: e.Loc(), Message: fmt.Sprintf("unrecognized unary operator %q", e.Op)}
	}
}

func checkIf(e *lang.IfExpression, scope *symtable.Table[lang.Type]) (lang.Type, error) {
	condType, err := checkExpr(e.Condition, scope)
	if err != nil {
		return nil, err
	}
	if !lang.SameKind(condType, lang.Bool) {
		return nil, &Error{Location: e.Condition.Loc(), Message: "if condition must be Bool"}
	}

	thenType, err := checkExpr(e.ThenBranch, scope)
	if err != nil {
		return nil, err
	}

	if e.ElseBranch == nil {
		return lang.Unit, nil
	}

	elseType, err := checkExpr(e.ElseBranch, scope)
	if err != nil {
		return nil, err
	}
	if !lang.SameKind(thenType, elseType) {
		return nil, &Error{Location: e.Loc(), Message: "if-then and if-else branches must have the same type"}
	}
	return thenType, nil
}

func checkBlock(e *lang.Block, scope *symtable.Table[lang.Type]) (lang.Type, error) {
	inner := scope.NewChild()

	for _, item := range e.Expressions {
		if _, err := checkExpr(item, inner); err != nil {
			return nil, err
		}
	}

	if e.ResultExpression == nil {
		return lang.Unit, nil
	}
	return checkExpr(e.ResultExpression, inner)
}

func checkWhile(e *lang.While, scope *symtable.Table[lang.Type]) (lang.Type, error) {
	condType, err := checkExpr(e.Condition, scope)
	if err != nil {
		return nil, err
	}
	if !lang.SameKind(condType, lang.Bool) {
		return nil, &Error{Location: e.Condition.Loc(), Message: "while condition must be Bool"}
	}
	if _, err := checkExpr(e.Body, scope); err != nil {
		return nil, err
	}
	return lang.Unit, nil
}

func checkVarDeclaration(e *lang.VarDeclaration, scope *symtable.Table[lang.Type]) (lang.Type, error) {
	valueType, err := checkExpr(e.Value, scope)
	if err != nil {
		return nil, err
	}
	scope.Define(e.Name, valueType)
	return lang.Unit, nil
}

// builtinSignatures mirrors lang.Builtins; kept local since the type
// checker is the only stage that needs the full FunType, not just the
// name set.
var builtinSignatures = map[string]lang.FunType{
	"print_int":  {ArgTypes: []lang.Type{lang.Int}, ReturnType: lang.Unit},
	"print_bool": {ArgTypes: []lang.Type{lang.Bool}, ReturnType: lang.Unit},
	"read_int":   {ArgTypes: nil, ReturnType: lang.Int},
}

func checkFunctionCall(e *lang.FunctionCall, scope *symtable.Table[lang.Type]) (lang.Type, error) {
	sig, ok := builtinSignatures[e.Name]
	if !ok {
		return nil, &Error{Location: e.Loc(), Message: fmt.Sprintf("unknown function %q", e.Name)}
	}
	if len(e.Arguments) != len(sig.ArgTypes) {
		return nil, &Error{Location: e.Loc(), Message: fmt.Sprintf("%q expects %d argument(s), got %d", e.Name, len(sig.ArgTypes), len(e.Arguments))}
	}
	for i, arg := range e.Arguments {
		argType, err := checkExpr(arg, scope)
		if err != nil {
			return nil, err
		}
		if !lang.SameKind(argType, sig.ArgTypes[i]) {
			return nil, &Error{Location: arg.Loc(), Message: fmt.Sprintf("%q argument %d must be %v", e.Name, i+1, sig.ArgTypes[i])}
		}
	}
	return sig.ReturnType, nil
}
