package ir

import "github.com/Le36/ezcompiler/pkg/lang"

// Signatures is the predefined IRVar → FunType table: every arithmetic,
// comparison and boolean operator plus the three builtins, seeded into the
// generator's root scope so Identifier-style lookups resolve operator
// names to their IRVar and FunType uniformly.
//
// "==" and "!=" are deliberately absent: their IRVar is synthesized at the
// call site instead of being pre-registered (see the BinaryOp case in
// irgen.go).
var Signatures = map[Var]lang.FunType{
	"unary_-":    {ArgTypes: []lang.Type{lang.Int}, ReturnType: lang.Int},
	"unary_not":  {ArgTypes: []lang.Type{lang.Bool}, ReturnType: lang.Bool},
	"+":          {ArgTypes: []lang.Type{lang.Int, lang.Int}, ReturnType: lang.Int},
	"-":          {ArgTypes: []lang.Type{lang.Int, lang.Int}, ReturnType: lang.Int},
	"*":          {ArgTypes: []lang.Type{lang.Int, lang.Int}, ReturnType: lang.Int},
	"/":          {ArgTypes: []lang.Type{lang.Int, lang.Int}, ReturnType: lang.Int},
	"%":          {ArgTypes: []lang.Type{lang.Int, lang.Int}, ReturnType: lang.Int},
	"<":          {ArgTypes: []lang.Type{lang.Int, lang.Int}, ReturnType: lang.Bool},
	">":          {ArgTypes: []lang.Type{lang.Int, lang.Int}, ReturnType: lang.Bool},
	"<=":         {ArgTypes: []lang.Type{lang.Int, lang.Int}, ReturnType: lang.Bool},
	">=":         {ArgTypes: []lang.Type{lang.Int, lang.Int}, ReturnType: lang.Bool},
	"and":        {ArgTypes: []lang.Type{lang.Bool, lang.Bool}, ReturnType: lang.Bool},
	"or":         {ArgTypes: []lang.Type{lang.Bool, lang.Bool}, ReturnType: lang.Bool},
	"print_int":  {ArgTypes: []lang.Type{lang.Int}, ReturnType: lang.Unit},
	"print_bool": {ArgTypes: []lang.Type{lang.Bool}, ReturnType: lang.Unit},
	"read_int":   {ArgTypes: nil, ReturnType: lang.Int},
}
