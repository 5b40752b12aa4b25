package parser

import (
	"fmt"
	"strings"

	"github.com/yaklabco/lc3kit/pkg/asm"
)

// SyntaxError is a structured parse failure: the byte span of the
// offending input, the text found there, and the set of token
// descriptions that would have been accepted.
type SyntaxError struct {
	Span     asm.Span
	Found    string
	Expected []string
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	found := e.Found
	if found == "" {
		found = "end of input"
	}
	return fmt.Sprintf("syntax error: expected %s, found %q", e.ExpectedList(), found)
}

// ExpectedList renders the expected token set as "a, b or c".
func (e *SyntaxError) ExpectedList() string {
	switch len(e.Expected) {
	case 0:
		return "nothing"
	case 1:
		return e.Expected[0]
	default:
		head := strings.Join(e.Expected[:len(e.Expected)-1], ", ")
		return head + " or " + e.Expected[len(e.Expected)-1]
	}
}

// MalformedTreeError reports a concrete-syntax tree whose shape violates
// the adapter's assumptions. It indicates grammar/adapter skew, a
// programming error rather than a user error, and is reported as an
// internal diagnostic instead of crashing.
type MalformedTreeError struct {
	Kind   NodeKind
	Reason string
}

// Error implements the error interface.
func (e *MalformedTreeError) Error() string {
	return fmt.Sprintf("malformed syntax tree at node kind %d: %s", e.Kind, e.Reason)
}

// malformed builds a MalformedTreeError.
func malformed(kind NodeKind, format string, args ...any) *MalformedTreeError {
	return &MalformedTreeError{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}
