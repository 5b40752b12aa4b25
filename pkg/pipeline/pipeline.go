// Package pipeline composes the per-file processing stages: read, parse,
// build the line index, attach labels and comments, then format or lint.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/yaklabco/lc3kit/pkg/asm"
	"github.com/yaklabco/lc3kit/pkg/config"
	"github.com/yaklabco/lc3kit/pkg/diff"
	"github.com/yaklabco/lc3kit/pkg/format"
	"github.com/yaklabco/lc3kit/pkg/fsutil"
	"github.com/yaklabco/lc3kit/pkg/lint"
	"github.com/yaklabco/lc3kit/pkg/parser"
)

// FileResult is the outcome of processing one file.
type FileResult struct {
	// Path is the absolute path of the processed file.
	Path string

	// Content is the original file content.
	Content []byte

	// Mode is the original file's permission bits, preserved on rewrite.
	Mode os.FileMode

	// Index maps byte offsets in Content to line and column.
	Index *asm.LineIndex

	// Formatted is the rendered output. Set by the format processor.
	Formatted []byte

	// Diff describes what formatting would change. Set in check mode
	// when the file is not canonically formatted.
	Diff *diff.Diff

	// Written reports whether the file was rewritten on disk.
	Written bool

	// Violations holds the style findings. Set by the lint processor.
	Violations []lint.Violation
}

// HasIssues reports whether the result carries findings that should fail
// the run: a pending diff in check mode or any lint violation.
func (r *FileResult) HasIssues() bool {
	if r == nil {
		return false
	}
	return r.Diff.HasChanges() || len(r.Violations) > 0
}

// ParseError wraps a syntax error with the file path and the resolved
// source location, ready for diagnostic rendering.
type ParseError struct {
	Path string
	Loc  asm.SourceLocation
	Err  *parser.SyntaxError

	// SourceLine is the text of the offending line, for caret rendering.
	SourceLine string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %v", e.Path, e.Loc.Line, e.Loc.Column, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// load reads and parses a file, producing the processed program alongside
// the content and line index.
func load(path string) (*FileResult, *asm.ProcessedProgram, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, fmt.Errorf("stat %s: %w", path, err)
	}

	index := asm.NewLineIndex(content)
	result := &FileResult{Path: path, Content: content, Mode: info.Mode(), Index: index}

	program, err := parser.BuildProgram(content)
	if err != nil {
		var syntaxErr *parser.SyntaxError
		if errors.As(err, &syntaxErr) {
			loc, locErr := index.Locate(syntaxErr.Span.Start)
			if locErr != nil {
				loc = asm.SourceLocation{Line: 1, Column: 1}
			}
			return nil, nil, &ParseError{
				Path:       path,
				Loc:        loc,
				Err:        syntaxErr,
				SourceLine: index.LineText(content, loc.Line),
			}
		}
		return nil, nil, fmt.Errorf("parse %s: %w", path, err)
	}

	processed, err := asm.Transform(program, index, asm.TransformOptions{
		AttachInlineComments: true,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("transform %s: %w", path, err)
	}
	return result, processed, nil
}

// Formatter processes files through the layout formatter.
type Formatter struct {
	// Style is the layout configuration to apply.
	Style config.FormatStyle

	// Check makes the formatter report a diff instead of writing.
	Check bool
}

// ProcessFile formats one file. Outside check mode the file is rewritten
// in place atomically when the canonical form differs.
func (f *Formatter) ProcessFile(ctx context.Context, path string) (*FileResult, error) {
	result, processed, err := load(path)
	if err != nil {
		return nil, err
	}

	result.Formatted = format.Render(processed, f.Style)

	if f.Check {
		result.Diff = diff.Compute(path, result.Content, result.Formatted)
		return result, nil
	}

	written, err := fsutil.WriteAtomicIfChanged(ctx, path, result.Formatted, result.Mode)
	if err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	result.Written = written
	return result, nil
}

// Linter processes files through the style checker.
type Linter struct {
	// Style is the naming convention to enforce.
	Style config.LintStyle
}

// ProcessFile lints one file and collects its violations in source order.
func (l *Linter) ProcessFile(_ context.Context, path string) (*FileResult, error) {
	result, processed, err := load(path)
	if err != nil {
		return nil, err
	}
	result.Violations = lint.Check(processed, l.Style)
	return result, nil
}
