// Package ir defines the three-address intermediate representation the
// generator lowers typed ASTs into, and pkg/asm consumes.
//
// The instruction set is a closed tagged variant: one struct per kind, an
// unexported marker method, dispatched by a type switch rather than by an
// open interface with many methods.
package ir

import "github.com/Le36/ezcompiler/pkg/token"

// Var is a symbolic variable name. Equality is by name string; the
// generator guarantees uniqueness within one compilation via its counter.
type Var string

// Instruction is the tagged variant for every IR opcode.
type Instruction interface {
	Loc() token.SourceLocation
	isInstruction()
}

type base struct {
	Location token.SourceLocation
}

func (b base) Loc() token.SourceLocation { return b.Location }

// Label marks a jump target. Pseudo-instruction: it occupies no runtime
// cost but participates in the flat instruction list so Jump/CondJump can
// reference it positionally.
type Label struct {
	base
	Name string
}

func (Label) isInstruction() {}

func NewLabel(loc token.SourceLocation, name string) Label { return Label{base{loc}, name} }

// LoadIntConst loads a constant Int value into Dest.
type LoadIntConst struct {
	base
	Value int64
	Dest  Var
}

func (LoadIntConst) isInstruction() {}

func NewLoadIntConst(loc token.SourceLocation, value int64, dest Var) LoadIntConst {
	return LoadIntConst{base{loc}, value, dest}
}

// LoadBoolConst loads a constant Bool value into Dest.
type LoadBoolConst struct {
	base
	Value bool
	Dest  Var
}

func (LoadBoolConst) isInstruction() {}

func NewLoadBoolConst(loc token.SourceLocation, value bool, dest Var) LoadBoolConst {
	return LoadBoolConst{base{loc}, value, dest}
}

// Copy moves Source's value into Dest.
type Copy struct {
	base
	Source Var
	Dest   Var
}

func (Copy) isInstruction() {}

func NewCopy(loc token.SourceLocation, source, dest Var) Copy {
	return Copy{base{loc}, source, dest}
}

// Call invokes Fun (an operator or builtin IRVar) with Args, writing its
// result to Dest. Dest may be the zero Var ("") for a call whose result is
// not stored; the generator itself always allocates a Dest.
type Call struct {
	base
	Fun  Var
	Args []Var
	Dest Var
}

func (Call) isInstruction() {}

func NewCall(loc token.SourceLocation, fun Var, args []Var, dest Var) Call {
	return Call{base{loc}, fun, args, dest}
}

// Jump transfers control unconditionally to Label.
type Jump struct {
	base
	Label string
}

func (Jump) isInstruction() {}

func NewJump(loc token.SourceLocation, label string) Jump { return Jump{base{loc}, label} }

// CondJump transfers control to Then if Cond is nonzero, else to Else.
type CondJump struct {
	base
	Cond Var
	Then string
	Else string
}

func (CondJump) isInstruction() {}

func NewCondJump(loc token.SourceLocation, cond Var, then, els string) CondJump {
	return CondJump{base{loc}, cond, then, els}
}

// Vars returns every Var referenced by instr, in field order, including
// args lists. Used by pkg/asm to collect the unique set of variables that
// need a stack slot. The zero Var ("") is never emitted as a field value
// by the generator, but is filtered out here defensively since Call.Dest
// can be empty for discarded results.
func Vars(instr Instruction) []Var {
	var vars []Var
	add := func(v Var) {
		if v != "" {
			vars = append(vars, v)
		}
	}

	switch i := instr.(type) {
	case LoadIntConst:
		add(i.Dest)
	case LoadBoolConst:
		add(i.Dest)
	case Copy:
		add(i.Source)
		add(i.Dest)
	case Call:
		// Fun is walked too, matching the field-introspection the reference
		// implementation's get_all_ir_variables performs: it never filters
		// by field name, only by value type. The slot this allocates for
		// an operator/builtin name is otherwise unused (Call's lowering
		// dispatches on Fun's name, never its stack slot).
		add(i.Fun)
		for _, a := range i.Args {
			add(a)
		}
		add(i.Dest)
	case CondJump:
		add(i.Cond)
	}
	return vars
}
