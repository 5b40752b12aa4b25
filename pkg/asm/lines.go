package asm

import (
	"fmt"
	"sort"
)

// LineIndex maps byte offsets to 1-based line/column pairs.
// It is built once per file with a single linear scan and answers lookups
// by binary search over the sorted line-start offsets. The index is
// immutable after construction.
type LineIndex struct {
	// starts holds the byte offset of the first byte of each line.
	// starts[0] is always 0 for non-empty content.
	starts []int

	// length is the total content length in bytes.
	length int
}

// NewLineIndex builds a line index for the given file content.
// It handles empty content, empty lines, and a final line without a
// trailing newline.
func NewLineIndex(content []byte) *LineIndex {
	idx := &LineIndex{length: len(content)}
	if len(content) == 0 {
		return idx
	}

	idx.starts = append(idx.starts, 0)
	for i, b := range content {
		if b == '\n' && i+1 < len(content) {
			idx.starts = append(idx.starts, i+1)
		}
	}
	return idx
}

// LineCount returns the number of lines in the indexed content.
func (idx *LineIndex) LineCount() int {
	return len(idx.starts)
}

// Locate resolves a byte offset to its 1-based line and column.
// An offset exactly at a line start maps to column 1 of that line.
// Offsets at or past end of content are an invalid-argument condition:
// the caller only resolves spans that came from the same text.
func (idx *LineIndex) Locate(offset int) (SourceLocation, error) {
	if offset < 0 || offset >= idx.length {
		return SourceLocation{}, fmt.Errorf("offset %d out of range [0, %d)", offset, idx.length)
	}

	// First line whose start is strictly greater than offset; the line
	// containing offset is the one before it.
	line := sort.Search(len(idx.starts), func(i int) bool {
		return idx.starts[i] > offset
	})

	start := idx.starts[line-1]
	return SourceLocation{
		Line:   line,
		Column: offset - start + 1,
	}, nil
}

// LocateSpan resolves the start offset of a span.
func (idx *LineIndex) LocateSpan(span Span) (SourceLocation, error) {
	return idx.Locate(span.Start)
}

// LineText returns the text of the given 1-based line in content, without
// its trailing newline. Content must be the same text the index was built
// from. An out-of-range line yields the empty string.
func (idx *LineIndex) LineText(content []byte, line int) string {
	if line < 1 || line > len(idx.starts) {
		return ""
	}
	start := idx.starts[line-1]
	end := idx.length
	if line < len(idx.starts) {
		end = idx.starts[line]
	}
	text := content[start:end]
	for len(text) > 0 && (text[len(text)-1] == '\n' || text[len(text)-1] == '\r') {
		text = text[:len(text)-1]
	}
	return string(text)
}
