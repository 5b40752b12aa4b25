// Package lint checks a processed program against a naming style: label,
// mnemonic and directive case conventions plus label colon usage.
package lint

import (
	"fmt"
	"strings"

	"github.com/yaklabco/lc3kit/pkg/asm"
	"github.com/yaklabco/lc3kit/pkg/config"
)

// ViolationKind discriminates the style violations the linter reports.
type ViolationKind uint8

const (
	// WrongCase flags an identifier written in a recognized style other
	// than the configured one.
	WrongCase ViolationKind = iota
	// UnknownCase flags an identifier matching none of the known styles.
	UnknownCase
	// MissingColon flags a label defined without the required colon.
	MissingColon
	// UnexpectedColon flags a label defined with a forbidden colon.
	UnexpectedColon
)

// Violation is one style finding with the source span it points at.
type Violation struct {
	Kind     ViolationKind
	Span     asm.Span
	Word     string
	Expected config.CaseStyle
	Found    config.CaseStyle
}

// Message renders the human-readable description of the violation.
func (v Violation) Message() string {
	switch v.Kind {
	case WrongCase:
		return fmt.Sprintf("%q is %s, expected %s", v.Word, v.Found, v.Expected)
	case UnknownCase:
		return fmt.Sprintf("%q matches no known case style, expected %s", v.Word, v.Expected)
	case MissingColon:
		return fmt.Sprintf("label %q is missing the trailing colon", v.Word)
	case UnexpectedColon:
		return fmt.Sprintf("label %q must not end with a colon", v.Word)
	default:
		return "unknown violation"
	}
}

// Visitor receives every item of a processed program in source order.
type Visitor interface {
	VisitComment(item *asm.CommentItem)
	VisitInstruction(item *asm.InstructionItem)
	VisitDirective(item *asm.DirectiveItem)
	VisitTrailingLabels(item *asm.TrailingLabels)
}

// Walk drives v over every item of the program, never stopping early.
func Walk(program *asm.ProcessedProgram, v Visitor) {
	for _, item := range program.Items {
		switch it := item.(type) {
		case *asm.CommentItem:
			v.VisitComment(it)
		case *asm.InstructionItem:
			v.VisitInstruction(it)
		case *asm.DirectiveItem:
			v.VisitDirective(it)
		case *asm.TrailingLabels:
			v.VisitTrailingLabels(it)
		}
	}
}

// Check lints the program against style and returns every violation in
// source order.
func Check(program *asm.ProcessedProgram, style config.LintStyle) []Violation {
	c := &checker{style: style}
	Walk(program, c)
	return c.violations
}

type checker struct {
	style      config.LintStyle
	violations []Violation
}

func (c *checker) VisitComment(*asm.CommentItem) {}

func (c *checker) VisitInstruction(item *asm.InstructionItem) {
	c.checkLabels(item.Labels)
	c.checkWord(item.Instr.Mnemonic, item.Instr.Span, c.style.InstructionStyle)
}

func (c *checker) VisitDirective(item *asm.DirectiveItem) {
	c.checkLabels(item.Labels)
	name := strings.TrimPrefix(item.Dir.Text, ".")
	c.checkWord(name, item.Dir.Span, c.style.DirectiveStyle)
}

func (c *checker) VisitTrailingLabels(item *asm.TrailingLabels) {
	c.checkLabels(item.Labels)
}

// checkLabels checks each label's case style and, independently, its
// colon usage. One label can produce both findings.
func (c *checker) checkLabels(labels []asm.Label) {
	for i := range labels {
		label := &labels[i]
		c.checkWord(label.Name(), label.Span, c.style.LabelStyle)

		if c.style.ColonAfterLabel && !label.HasColon() {
			c.violations = append(c.violations, Violation{
				Kind: MissingColon,
				Span: label.Span,
				Word: label.Name(),
			})
		}
		if !c.style.ColonAfterLabel && label.HasColon() {
			c.violations = append(c.violations, Violation{
				Kind: UnexpectedColon,
				Span: label.Span,
				Word: label.Name(),
			})
		}
	}
}

func (c *checker) checkWord(word string, span asm.Span, want config.CaseStyle) {
	if Satisfies(word, want) {
		return
	}
	kind := WrongCase
	found := Classify(word)
	if found == "" {
		kind = UnknownCase
	}
	c.violations = append(c.violations, Violation{
		Kind:     kind,
		Span:     span,
		Word:     word,
		Expected: want,
		Found:    found,
	})
}
