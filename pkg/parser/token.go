// Package parser turns raw LC-3 assembly text into a generic
// concrete-syntax tree and adapts that tree into the typed abstract
// program of pkg/asm. Parse failures are reported as structured syntax
// errors carrying a byte span and an expected-token description.
package parser

import "github.com/yaklabco/lc3kit/pkg/asm"

// TokenKind classifies a lexical token.
type TokenKind uint8

const (
	// TokWord is an identifier-shaped word: mnemonics, labels, registers
	// and hex literals are all words lexically; the parser classifies
	// them by context.
	TokWord TokenKind = iota

	// TokNumber is a numeric literal, optionally prefixed with '#' and a
	// minus sign (e.g. "5", "#16", "#-3").
	TokNumber

	// TokString is a double-quoted string literal including the quotes.
	TokString

	// TokComment is a line comment from ';' to end of line.
	TokComment

	// TokComma separates instruction operands.
	TokComma

	// TokColon terminates a label definition.
	TokColon

	// TokDot introduces a directive name (consumed as one word token
	// including the marker, e.g. ".ORIG").
	TokDirective

	// TokEOF marks end of input.
	TokEOF
)

// String returns a human-readable name for error messages.
func (k TokenKind) String() string {
	switch k {
	case TokWord:
		return "identifier"
	case TokNumber:
		return "number"
	case TokString:
		return "string literal"
	case TokComment:
		return "comment"
	case TokComma:
		return "','"
	case TokColon:
		return "':'"
	case TokDirective:
		return "directive"
	case TokEOF:
		return "end of input"
	default:
		return "token"
	}
}

// Token is a single lexical token with its source span.
type Token struct {
	Kind TokenKind
	Span asm.Span
}

// Text returns the raw token text from content.
func (t Token) Text(content []byte) string {
	return string(t.Span.Text(content))
}
