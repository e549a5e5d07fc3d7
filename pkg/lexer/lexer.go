// Package lexer turns source text into the ordered token.Token stream the
// parser consumes.
//
// Token classes are recognized with github.com/prataprc/goparsec: a
// priority-ordered ast.OrdChoice of pc.Token matchers, one per token
// class, tried greedily at each scanner position. pc.Token calls
// Scanner.SkipWS() before attempting a match, so runs of whitespace
// between tokens are consumed internally by the scanner and never surface
// as spans in the resulting tree; line/column bookkeeping therefore walks
// the source by byte offset (the position each matched span actually
// started at, reported by the scanner) rather than by concatenating the
// spans goparsec hands back, so that the whitespace a span skipped over is
// still accounted for.
package lexer

import (
	"os"

	pc "github.com/prataprc/goparsec"

	"github.com/Le36/ezcompiler/pkg/token"
)

var ast = pc.NewAST("tokens", 0)

// Each of these mirrors one row of the token-class priority table: comments
// first, then literals, operators (longest alternatives first so "**"
// doesn't lose to a stray "*"), punctuation, keywords, identifiers, and
// finally an unknown-byte catch-all so every byte of input is accounted for.
var (
	pLineComment  = pc.Token(`(?://|#)[^\n]*`, "COMMENT")
	pBlockComment = pc.Token(`(?s)/\*.*?\*/`, "COMMENT")
	pComment      = ast.OrdChoice("comment", nil, pBlockComment, pLineComment)

	pInteger = pc.Token(`[0-9]+`, "INTEGER")
	pBoolean = pc.Token(`\b(?:true|false)\b`, "BOOLEAN")

	pOperator = pc.Token(`\*\*|<=|>=|==|!=|[-+*/%<>=]|\b(?:and|or|not)\b`, "OPERATOR")

	pPunctuation = pc.Token(`[(),;{}:]`, "PUNCTUATION")

	pKeyword = pc.Token(`\b(?:var|if|then|else|while|do|Int|Boolean)\b`, "KEYWORD")

	pIdentifier = pc.Token(`[A-Za-z_][A-Za-z_0-9]*`, "IDENTIFIER")

	pUnknown = pc.Token(`(?s).`, "UNKNOWN")

	pSpan = ast.OrdChoice("span", nil,
		pComment, pInteger, pBoolean, pOperator, pPunctuation, pKeyword, pIdentifier, pUnknown,
	)

	pProgram = ast.ManyUntil("program", nil, pSpan, pc.End())
)

// Tokenizer scans one source file into a token stream. It owns no mutable
// state beyond a single call to Tokenize: a fresh Tokenizer (or a reused
// one; Tokenize resets everything it touches) is safe to call repeatedly
// and concurrently from independent goroutines.
type Tokenizer struct{ file string }

// New returns a Tokenizer that attributes locations to the given file name
// (purely cosmetic, used only in SourceLocation.String()).
func New(file string) *Tokenizer {
	return &Tokenizer{file: file}
}

// Tokenize scans source and returns its token stream. The tokenizer never
// fails: unrecognized characters are silently dropped (the "Unknown"
// class), and any resulting malformed stream is instead caught by the
// parser on its first unexpected token.
func (z *Tokenizer) Tokenize(source string) []token.Token {
	if os.Getenv("PARSEC_DEBUG") != "" {
		ast.SetDebug()
	}

	root, _ := ast.Parsewith(pProgram, pc.NewScanner([]byte(source)))

	tokens := make([]token.Token, 0, len(root.GetChildren()))
	line, col := 1, 1
	cursor := 0

	for _, span := range root.GetChildren() {
		text := span.GetValue()
		kind, ok := classify(span.GetName())

		// pos is where this span's match actually began, after the scanner
		// silently skipped any preceding whitespace; walking from cursor to
		// pos accounts for that skipped gap before the span's own text is
		// walked below.
		pos := cursor
		if t, isTerminal := span.(*pc.Terminal); isTerminal {
			pos = t.Position
		}
		line, col = advance(source, cursor, pos, line, col)

		if ok {
			tokens = append(tokens, token.Token{
				Text:     text,
				Kind:     kind,
				Location: token.SourceLocation{File: z.file, Line: line, Column: col},
			})
		}

		line, col = advance(source, pos, pos+len(text), line, col)
		cursor = pos + len(text)
	}

	return tokens
}

// advance walks source[from:to] and returns the line/column reached,
// starting from (line, col). Columns reset to 1 on every newline crossed.
func advance(source string, from, to, line, col int) (int, int) {
	for i := from; i < to && i < len(source); i++ {
		if source[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

// classify maps a matched span's combinator name to the token.Kind it
// should produce, or reports ok == false for spans that are discarded
// (comments, unknown bytes).
func classify(name string) (token.Kind, bool) {
	switch name {
	case "INTEGER":
		return token.Integer, true
	case "BOOLEAN":
		return token.Boolean, true
	case "OPERATOR":
		return token.Operator, true
	case "PUNCTUATION":
		return token.Punctuation, true
	case "KEYWORD":
		return token.Keyword, true
	case "IDENTIFIER":
		return token.Identifier, true
	default: // COMMENT, UNKNOWN
		return "", false
	}
}

// Tokenize is the package-level convenience entry point used by
// pkg/compiler; it allocates a throwaway Tokenizer for one-shot use.
func Tokenize(file, source string) []token.Token {
	return New(file).Tokenize(source)
}
