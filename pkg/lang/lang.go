// Package lang holds the in-memory representation of the source language:
// its three value types and the tagged-variant expression tree the parser
// produces and the type checker annotates in place.
package lang

import "github.com/Le36/ezcompiler/pkg/token"

// ----------------------------------------------------------------------------
// General information

// A program in this language is a single expression (often a Block). There
// is no notion of module, function declaration, or top-level statement list
// distinct from a Block: the parser always hands back one root Expression.
//
// The four other building blocks are:
// - Literals and identifiers: the atoms a value can be read from
// - Binary/unary operators: build a new value from one or two operands
// - Control flow (if/while): fork or repeat evaluation
// - Blocks and var declarations: introduce nested scopes and sequencing

// ----------------------------------------------------------------------------
// Types

// Type is the tagged variant for the three value types plus the function
// types used internally to describe operators and builtins. Int, Bool and
// Unit are singletons; compare by value (Go struct equality), never by
// pointer.
type Type interface{ isType() }

type IntType struct{}

func (IntType) isType() {}

type BoolType struct{}

func (BoolType) isType() {}

type UnitType struct{}

func (UnitType) isType() {}

// FunType describes an operator or builtin's signature: the types of its
// arguments (in order) and its return type. It never appears as the type
// of an AST node, only as an entry in the predefined operator/builtin
// signature tables (ir.Signatures and the type checker's builtin table).
type FunType struct {
	ArgTypes   []Type
	ReturnType Type
}

func (FunType) isType() {}

// Singleton values for the three value types; compare with ==.
var (
	Int  Type = IntType{}
	Bool Type = BoolType{}
	Unit Type = UnitType{}
)

// SameKind reports whether a and b are the same value type (Int/Bool/Unit),
// ignoring FunType. Type checking rules only ever need to ask "is this the
// same kind as that", never structural equality of FunType.
func SameKind(a, b Type) bool {
	switch a.(type) {
	case IntType:
		_, ok := b.(IntType)
		return ok
	case BoolType:
		_, ok := b.(BoolType)
		return ok
	case UnitType:
		_, ok := b.(UnitType)
		return ok
	default:
		return false
	}
}

// ----------------------------------------------------------------------------
// Expressions

// Expression is the shared interface for every node in the AST. Every node
// carries a SourceLocation (set once, by the parser) and, once the type
// checker has run, a Type (set in place on the node itself).
type Expression interface {
	Loc() token.SourceLocation
	SetType(Type)
	GetType() Type
}

// base is embedded by every concrete node to provide the Loc/Type plumbing
// without repeating it on each struct.
type base struct {
	Location token.SourceLocation
	Type     Type
}

func (b *base) Loc() token.SourceLocation { return b.Location }
func (b *base) SetType(t Type)            { b.Type = t }
func (b *base) GetType() Type             { return b.Type }

// Literal holds a constant Int, Bool, or Unit value. A Unit literal (Value
// == nil) is the implicit result of a block with no trailing expression.
type Literal struct {
	base
	Value any // bool, int64, or nil for Unit
}

func NewLiteral(loc token.SourceLocation, value any) *Literal {
	return &Literal{base: base{Location: loc}, Value: value}
}

// Identifier reads the current value bound to Name in the active scope.
type Identifier struct {
	base
	Name string
}

func NewIdentifier(loc token.SourceLocation, name string) *Identifier {
	return &Identifier{base: base{Location: loc}, Name: name}
}

// BinOp is one of: = or and == != < <= > >= + - * / %
type BinOp string

const (
	OpAssign BinOp = "="
	OpOr     BinOp = "or"
	OpAnd    BinOp = "and"
	OpEq     BinOp = "=="
	OpNeq    BinOp = "!="
	OpLt     BinOp = "<"
	OpLte    BinOp = "<="
	OpGt     BinOp = ">"
	OpGte    BinOp = ">="
	OpAdd    BinOp = "+"
	OpSub    BinOp = "-"
	OpMul    BinOp = "*"
	OpDiv    BinOp = "/"
	OpMod    BinOp = "%"
)

// BinaryOp combines Left and Right via Op. For Op == OpAssign, Left must be
// an *Identifier; the parser accepts any left operand, and the type checker
// and IR generator reject a non-identifier one.
type BinaryOp struct {
	base
	Left  Expression
	Op    BinOp
	Right Expression
}

func NewBinaryOp(loc token.SourceLocation, left Expression, op BinOp, right Expression) *BinaryOp {
	return &BinaryOp{base: base{Location: loc}, Left: left, Op: op, Right: right}
}

// UnOp is one of: not -
type UnOp string

const (
	OpNot    UnOp = "not"
	OpNegate UnOp = "-"
)

// UnaryOp applies Op to Operand.
type UnaryOp struct {
	base
	Op      UnOp
	Operand Expression
}

func NewUnaryOp(loc token.SourceLocation, op UnOp, operand Expression) *UnaryOp {
	return &UnaryOp{base: base{Location: loc}, Op: op, Operand: operand}
}

// IfExpression forks on Condition. ElseBranch is nil for the no-else form,
// in which case the whole expression's type is Unit regardless of
// ThenBranch's type.
type IfExpression struct {
	base
	Condition  Expression
	ThenBranch Expression
	ElseBranch Expression // nil if no else
}

func NewIfExpression(loc token.SourceLocation, cond, then, els Expression) *IfExpression {
	return &IfExpression{base: base{Location: loc}, Condition: cond, ThenBranch: then, ElseBranch: els}
}

// Block sequences Expressions, each evaluated for effect, then evaluates
// ResultExpression (if present) for the block's value. A nil
// ResultExpression means the block's value is Unit.
type Block struct {
	base
	Expressions      []Expression
	ResultExpression Expression // nil => Unit
}

func NewBlock(loc token.SourceLocation, exprs []Expression, result Expression) *Block {
	return &Block{base: base{Location: loc}, Expressions: exprs, ResultExpression: result}
}

// While repeatedly evaluates Body while Condition holds. Always typed Unit.
type While struct {
	base
	Condition Expression
	Body      Expression
}

func NewWhile(loc token.SourceLocation, cond, body Expression) *While {
	return &While{base: base{Location: loc}, Condition: cond, Body: body}
}

// VarDeclaration introduces Name, bound to Value's type, in the current
// scope. Legal only directly inside a Block (enforced by the parser).
type VarDeclaration struct {
	base
	Name  string
	Value Expression
}

func NewVarDeclaration(loc token.SourceLocation, name string, value Expression) *VarDeclaration {
	return &VarDeclaration{base: base{Location: loc}, Name: name, Value: value}
}

// FunctionCall invokes one of the fixed builtins (print_int, print_bool,
// read_int) with Arguments.
type FunctionCall struct {
	base
	Name      string
	Arguments []Expression
}

func NewFunctionCall(loc token.SourceLocation, name string, args []Expression) *FunctionCall {
	return &FunctionCall{base: base{Location: loc}, Name: name, Arguments: args}
}

// Builtins is the fixed set of callable names the language exposes; no
// user-defined functions exist (see spec Non-goals).
var Builtins = map[string]bool{"print_int": true, "print_bool": true, "read_int": true}
