// Package asm defines the source model for LC-3 assembly programs:
// byte spans, resolved source locations, the abstract program produced by
// the parser adapter, and the processed program produced by the attachment
// transform.
package asm

// Span is a half-open byte range [Start, End) into the original file text.
// Spans are copied by value and only meaningful alongside the text they
// index.
type Span struct {
	// Start is the byte index where the span begins (inclusive).
	Start int

	// End is the byte index where the span ends (exclusive).
	End int
}

// Len returns the length of the span in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

// IsEmpty returns true if the span has zero length.
func (s Span) IsEmpty() bool {
	return s.Start == s.End
}

// Contains returns true if the given offset falls within this span.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// Text returns the bytes this span covers in content.
// Returns nil if the span does not fit within content.
func (s Span) Text(content []byte) []byte {
	if s.Start < 0 || s.End > len(content) || s.Start > s.End {
		return nil
	}
	return content[s.Start:s.End]
}

// SourceLocation is a resolved 1-based line and column.
type SourceLocation struct {
	Line   int
	Column int
}

// IsValid returns true if this location has positive line and column.
func (l SourceLocation) IsValid() bool {
	return l.Line > 0 && l.Column > 0
}

// SameLine reports whether two locations fall on the same source line.
// This predicate drives trailing-comment attachment.
func (l SourceLocation) SameLine(other SourceLocation) bool {
	return l.Line == other.Line
}
