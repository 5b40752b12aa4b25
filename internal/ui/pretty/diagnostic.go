package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/lc3kit/pkg/asm"
	"github.com/yaklabco/lc3kit/pkg/diff"
	"github.com/yaklabco/lc3kit/pkg/lint"
	"github.com/yaklabco/lc3kit/pkg/parser"
)

// FormatViolation formats one style violation for terminal output, with
// optional source context under it.
func (s *Styles) FormatViolation(path string, loc asm.SourceLocation, v lint.Violation, sourceLine string) string {
	var b strings.Builder

	location := fmt.Sprintf("%s:%d:%d", s.FilePath.Render(path), loc.Line, loc.Column)
	b.WriteString(fmt.Sprintf("  %s  %s  %s\n",
		location,
		s.Warning.Render("style"),
		s.Message.Render(v.Message()),
	))

	if sourceLine != "" {
		b.WriteString(s.FormatSourceContext(sourceLine, loc.Column))
	}
	return b.String()
}

// FormatSyntaxError formats a parse failure with its expected-token list
// and a caret under the offending position.
func (s *Styles) FormatSyntaxError(path string, loc asm.SourceLocation, err *parser.SyntaxError, sourceLine string) string {
	var b strings.Builder

	location := fmt.Sprintf("%s:%d:%d", s.FilePath.Render(path), loc.Line, loc.Column)
	b.WriteString(fmt.Sprintf("  %s  %s  %s\n",
		location,
		s.Error.Render("error"),
		s.Message.Render(fmt.Sprintf("expected %s, found %q", err.ExpectedList(), err.Found)),
	))

	if sourceLine != "" {
		b.WriteString(s.FormatSourceContext(sourceLine, loc.Column))
	}
	return b.String()
}

// FormatSourceContext renders the source line with a caret marker.
func (s *Styles) FormatSourceContext(line string, column int) string {
	const indent = "        "

	var b strings.Builder
	b.WriteString(indent + s.SourceLine.Render(line) + "\n")
	if column > 0 {
		b.WriteString(indent + strings.Repeat(" ", column-1) + s.Caret.Render("^") + "\n")
	}
	return b.String()
}

// FormatFileHeader renders a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	if issueCount > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d issues)", issueCount))
	}
	return header
}

// FormatDiff renders a unified diff with per-line coloring.
func (s *Styles) FormatDiff(d *diff.Diff) string {
	if !d.HasChanges() {
		return ""
	}

	var b strings.Builder
	path := strings.TrimPrefix(d.Path, "/")
	b.WriteString(s.DiffHeader.Render(d.GitHeader()) + "\n")
	b.WriteString(s.DiffRemove.Render("--- a/"+path) + "\n")
	b.WriteString(s.DiffAdd.Render("+++ b/"+path) + "\n")

	for _, hunk := range d.Hunks {
		header := fmt.Sprintf("@@ -%d,%d +%d,%d @@",
			hunk.BeforeStart, hunk.BeforeCount, hunk.AfterStart, hunk.AfterCount)
		b.WriteString(s.DiffHunk.Render(header) + "\n")

		for _, line := range hunk.Lines {
			switch line.Kind {
			case diff.Context:
				b.WriteString(s.DiffContext.Render(" "+line.Text) + "\n")
			case diff.Added:
				b.WriteString(s.DiffAdd.Render("+"+line.Text) + "\n")
			case diff.Removed:
				b.WriteString(s.DiffRemove.Render("-"+line.Text) + "\n")
			}
		}
	}
	return b.String()
}
