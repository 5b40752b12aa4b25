// Package format renders a processed program into its canonical layout.
// Rendering is a pure function of the program and the style: re-parsing
// and re-rendering the output is byte-identical.
package format

import (
	"bytes"
	"strings"

	"github.com/yaklabco/lc3kit/pkg/asm"
	"github.com/yaklabco/lc3kit/pkg/config"
)

// renderedItem is one item rendered independently: label lines, the body
// line, an optional trailing comment, and the newline count after it.
type renderedItem struct {
	labels   []string
	body     string
	comment  string
	newlines int
}

// Render formats the program according to style. An empty program renders
// to an empty byte sequence.
func Render(program *asm.ProcessedProgram, style config.FormatStyle) []byte {
	if len(program.Items) == 0 {
		return nil
	}

	items := make([]renderedItem, 0, len(program.Items))
	for i, item := range program.Items {
		var next asm.ProcessedItem
		if i+1 < len(program.Items) {
			next = program.Items[i+1]
		}
		r := renderItem(item, style)
		r.newlines = blankLines(item, next, style) + 1
		items = append(items, r)
	}

	// One global comment column: widest body plus the configured gap.
	commentColumn := 0
	for _, r := range items {
		if len(r.body) > commentColumn {
			commentColumn = len(r.body)
		}
	}
	commentColumn += style.IndentMinCommentFromBlock

	var buf bytes.Buffer
	for _, r := range items {
		for _, label := range r.labels {
			buf.WriteString(label)
			buf.WriteByte('\n')
		}
		buf.WriteString(r.body)
		if r.comment != "" {
			pad(&buf, commentColumn-len(r.body))
			buf.WriteString(r.comment)
		}
		for range r.newlines {
			buf.WriteByte('\n')
		}
	}
	return buf.Bytes()
}

// renderItem renders one item into label lines, body and trailing comment,
// applying the style's indentation.
func renderItem(item asm.ProcessedItem, style config.FormatStyle) renderedItem {
	switch it := item.(type) {
	case *asm.CommentItem:
		return renderedItem{body: renderComment(&it.Comment)}

	case *asm.InstructionItem:
		return renderedItem{
			labels:  renderLabels(it.Labels, style),
			body:    indent(style.IndentInstruction) + renderInstruction(&it.Instr),
			comment: renderTrailing(it.Trailing),
		}

	case *asm.DirectiveItem:
		n := style.IndentDirective
		if it.Dir.Kind == asm.DirOrig || it.Dir.Kind == asm.DirEnd {
			n = 0 // origin and end render flush
		}
		return renderedItem{
			labels:  renderLabels(it.Labels, style),
			body:    indent(n) + renderDirective(&it.Dir),
			comment: renderTrailing(it.Trailing),
		}

	case *asm.TrailingLabels:
		return renderedItem{labels: renderLabels(it.Labels, style)}

	default:
		return renderedItem{}
	}
}

// renderLabels renders each label on its own line, colon-normalized.
func renderLabels(labels []asm.Label, style config.FormatStyle) []string {
	if len(labels) == 0 {
		return nil
	}
	prefix := indent(style.IndentLabel)
	out := make([]string, 0, len(labels))
	for i := range labels {
		name := labels[i].Name()
		if style.ColonAfterLabel {
			name += ":"
		}
		out = append(out, prefix+name)
	}
	return out
}

// renderComment normalizes a comment to the marker plus trimmed text.
func renderComment(c *asm.Comment) string {
	return ";" + c.Body()
}

func renderTrailing(c *asm.Comment) string {
	if c == nil {
		return ""
	}
	return renderComment(c)
}

// renderInstruction renders the mnemonic and its operand list, handling
// every instruction shape.
func renderInstruction(inst *asm.Instruction) string {
	var operands string
	switch inst.Op {
	case asm.OpAdd, asm.OpAnd:
		operands = join(inst.DR.Text, inst.SR1.Text, inst.Src.Text())
	case asm.OpNot:
		operands = join(inst.DR.Text, inst.SR1.Text)
	case asm.OpLdr, asm.OpStr:
		operands = join(inst.DR.Text, inst.SR1.Text, inst.Offset.Text)
	case asm.OpLd, asm.OpLdi, asm.OpLea, asm.OpSt, asm.OpSti:
		operands = join(inst.DR.Text, inst.Target.Text)
	case asm.OpBr, asm.OpJsr:
		operands = inst.Target.Text
	case asm.OpJmp, asm.OpJsrr:
		operands = inst.DR.Text
	case asm.OpTrap:
		operands = inst.Vector.Text
	case asm.OpNop, asm.OpRet, asm.OpHalt, asm.OpPuts, asm.OpGetc, asm.OpOut, asm.OpIn:
		operands = ""
	}

	if operands == "" {
		return inst.Mnemonic
	}
	return inst.Mnemonic + " " + operands
}

// renderDirective renders the directive name and its operand, if any.
func renderDirective(dir *asm.Directive) string {
	var operand string
	switch dir.Kind {
	case asm.DirOrig:
		operand = dir.Addr.Text
	case asm.DirBlkw, asm.DirFill:
		operand = dir.Operand.Text
	case asm.DirStringz:
		operand = dir.Str.Text
	case asm.DirEnd:
		operand = ""
	}

	if operand == "" {
		return dir.Text
	}
	return dir.Text + " " + operand
}

// blankLines computes the number of blank lines between current and next
// as the sum of the independently triggered spacing rules.
func blankLines(current, next asm.ProcessedItem, style config.FormatStyle) int {
	total := 0

	// A standalone comment sticking to the code below it.
	if isComment(current) && isCode(next) {
		total += style.SpaceCommentStickToBody
	}

	// Code followed by a standalone comment, except after the origin
	// directive whose spacing the start/end rule owns.
	if isCode(current) && !isOrig(current) && isComment(next) {
		total += style.SpaceBlockToComment
	}

	// An unlabelled statement followed by a labelled one starts a block.
	if isUnlabelledCode(current) && isLabelledCode(next) {
		total += style.SpaceFromLabelBlock
	}

	// Space after the origin directive and before the end directive.
	if isOrig(current) || isEnd(next) {
		total += style.SpaceFromStartEndBlock
	}

	return total
}

func isComment(item asm.ProcessedItem) bool {
	_, ok := item.(*asm.CommentItem)
	return ok
}

func isCode(item asm.ProcessedItem) bool {
	switch item.(type) {
	case *asm.InstructionItem, *asm.DirectiveItem:
		return true
	default:
		return false
	}
}

func isOrig(item asm.ProcessedItem) bool {
	d, ok := item.(*asm.DirectiveItem)
	return ok && d.Dir.Kind == asm.DirOrig
}

func isEnd(item asm.ProcessedItem) bool {
	d, ok := item.(*asm.DirectiveItem)
	return ok && d.Dir.Kind == asm.DirEnd
}

func isUnlabelledCode(item asm.ProcessedItem) bool {
	switch it := item.(type) {
	case *asm.InstructionItem:
		return len(it.Labels) == 0
	case *asm.DirectiveItem:
		return len(it.Labels) == 0
	default:
		return false
	}
}

func isLabelledCode(item asm.ProcessedItem) bool {
	switch it := item.(type) {
	case *asm.InstructionItem:
		return len(it.Labels) > 0
	case *asm.DirectiveItem:
		return len(it.Labels) > 0
	default:
		return false
	}
}

func join(parts ...string) string {
	return strings.Join(parts, ", ")
}

func indent(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}

func pad(buf *bytes.Buffer, n int) {
	for range n {
		buf.WriteByte(' ')
	}
}
