package asm_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/yaklabco/lc3kit/pkg/asm"
)

// spanOf locates the nth occurrence (0-based) of substr in content.
func spanOf(t *testing.T, content, substr string, occurrence int) asm.Span {
	t.Helper()
	start := -1
	from := 0
	for i := 0; i <= occurrence; i++ {
		idx := strings.Index(content[from:], substr)
		if idx < 0 {
			t.Fatalf("occurrence %d of %q not found in content", occurrence, substr)
		}
		start = from + idx
		from = start + len(substr)
	}
	return asm.Span{Start: start, End: start + len(substr)}
}

func TestTransformAttachesLabelsInSourceOrder(t *testing.T) {
	t.Parallel()

	content := "first\nsecond\nHALT\n"
	program := &asm.Program{Items: []asm.Item{
		&asm.Label{Text: "first", Span: spanOf(t, content, "first", 0)},
		&asm.Label{Text: "second", Span: spanOf(t, content, "second", 0)},
		&asm.Instruction{Op: asm.OpHalt, Mnemonic: "HALT", Span: spanOf(t, content, "HALT", 0)},
	}}

	processed, err := asm.Transform(program, asm.NewLineIndex([]byte(content)), asm.TransformOptions{})
	if err != nil {
		t.Fatalf("Transform returned error: %v", err)
	}

	if len(processed.Items) != 1 {
		t.Fatalf("got %d items, want 1", len(processed.Items))
	}
	inst, ok := processed.Items[0].(*asm.InstructionItem)
	if !ok {
		t.Fatalf("item is %T, want *asm.InstructionItem", processed.Items[0])
	}
	if len(inst.Labels) != 2 {
		t.Fatalf("got %d labels, want 2", len(inst.Labels))
	}
	if inst.Labels[0].Text != "first" || inst.Labels[1].Text != "second" {
		t.Errorf("labels out of source order: got [%s %s], want [first second]",
			inst.Labels[0].Text, inst.Labels[1].Text)
	}
	if inst.Loc.Line != 3 {
		t.Errorf("instruction line = %d, want 3", inst.Loc.Line)
	}
}

func TestTransformLabelRunsKeepSourceOrder(t *testing.T) {
	t.Parallel()

	// Build runs of generated labels of increasing length, each run
	// followed by one statement, and check every run arrives intact.
	runLengths := []int{1, 2, 3, 5, 8}

	var lines []string
	for i, n := range runLengths {
		for j := 0; j < n; j++ {
			lines = append(lines, fmt.Sprintf("l%d_%d", i, j))
		}
		lines = append(lines, "RET")
	}
	content := strings.Join(lines, "\n") + "\n"

	var items []asm.Item
	for i, n := range runLengths {
		for j := 0; j < n; j++ {
			name := fmt.Sprintf("l%d_%d", i, j)
			items = append(items, &asm.Label{Text: name, Span: spanOf(t, content, name, 0)})
		}
		items = append(items, &asm.Instruction{
			Op: asm.OpRet, Mnemonic: "RET", Span: spanOf(t, content, "RET", i),
		})
	}

	processed, err := asm.Transform(&asm.Program{Items: items},
		asm.NewLineIndex([]byte(content)), asm.TransformOptions{})
	if err != nil {
		t.Fatalf("Transform returned error: %v", err)
	}

	if len(processed.Items) != len(runLengths) {
		t.Fatalf("got %d items, want %d", len(processed.Items), len(runLengths))
	}
	for i, n := range runLengths {
		inst, ok := processed.Items[i].(*asm.InstructionItem)
		if !ok {
			t.Fatalf("item %d is %T, want *asm.InstructionItem", i, processed.Items[i])
		}
		if len(inst.Labels) != n {
			t.Fatalf("statement %d carries %d labels, want %d", i, len(inst.Labels), n)
		}
		for j, label := range inst.Labels {
			if want := fmt.Sprintf("l%d_%d", i, j); label.Text != want {
				t.Errorf("statement %d label %d = %q, want %q", i, j, label.Text, want)
			}
		}
	}
}

func TestTransformTrailingLabels(t *testing.T) {
	t.Parallel()

	content := "HALT\ndangling\nmore\n"
	program := &asm.Program{Items: []asm.Item{
		&asm.Instruction{Op: asm.OpHalt, Mnemonic: "HALT", Span: spanOf(t, content, "HALT", 0)},
		&asm.Label{Text: "dangling", Span: spanOf(t, content, "dangling", 0)},
		&asm.Label{Text: "more", Span: spanOf(t, content, "more", 0)},
	}}

	processed, err := asm.Transform(program, asm.NewLineIndex([]byte(content)), asm.TransformOptions{})
	if err != nil {
		t.Fatalf("Transform returned error: %v", err)
	}

	if len(processed.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(processed.Items))
	}
	trailing, ok := processed.Items[1].(*asm.TrailingLabels)
	if !ok {
		t.Fatalf("last item is %T, want *asm.TrailingLabels", processed.Items[1])
	}
	if len(trailing.Labels) != 2 {
		t.Fatalf("got %d trailing labels, want 2", len(trailing.Labels))
	}
	if trailing.Labels[0].Text != "dangling" || trailing.Labels[1].Text != "more" {
		t.Errorf("trailing labels out of order: got [%s %s]",
			trailing.Labels[0].Text, trailing.Labels[1].Text)
	}
}

func TestTransformAdoptsSameLineComment(t *testing.T) {
	t.Parallel()

	content := "HALT ; stop here\n; standalone\nRET\n"
	program := &asm.Program{Items: []asm.Item{
		&asm.Instruction{Op: asm.OpHalt, Mnemonic: "HALT", Span: spanOf(t, content, "HALT", 0)},
		&asm.Comment{Text: "; stop here", Span: spanOf(t, content, "; stop here", 0)},
		&asm.Comment{Text: "; standalone", Span: spanOf(t, content, "; standalone", 0)},
		&asm.Instruction{Op: asm.OpRet, Mnemonic: "RET", Span: spanOf(t, content, "RET", 0)},
	}}

	processed, err := asm.Transform(program, asm.NewLineIndex([]byte(content)), asm.TransformOptions{
		AttachInlineComments: true,
	})
	if err != nil {
		t.Fatalf("Transform returned error: %v", err)
	}

	if len(processed.Items) != 3 {
		t.Fatalf("got %d items, want 3", len(processed.Items))
	}

	halt, ok := processed.Items[0].(*asm.InstructionItem)
	if !ok {
		t.Fatalf("first item is %T, want *asm.InstructionItem", processed.Items[0])
	}
	if halt.Trailing == nil || halt.Trailing.Text != "; stop here" {
		t.Errorf("same-line comment not adopted: %+v", halt.Trailing)
	}

	if _, ok := processed.Items[1].(*asm.CommentItem); !ok {
		t.Errorf("standalone comment is %T, want *asm.CommentItem", processed.Items[1])
	}

	ret, ok := processed.Items[2].(*asm.InstructionItem)
	if !ok {
		t.Fatalf("last item is %T, want *asm.InstructionItem", processed.Items[2])
	}
	if ret.Trailing != nil {
		t.Errorf("own-line comment wrongly adopted by RET: %+v", ret.Trailing)
	}
}

func TestTransformInlineCommentsDisabled(t *testing.T) {
	t.Parallel()

	content := "HALT ; stop here\n"
	program := &asm.Program{Items: []asm.Item{
		&asm.Instruction{Op: asm.OpHalt, Mnemonic: "HALT", Span: spanOf(t, content, "HALT", 0)},
		&asm.Comment{Text: "; stop here", Span: spanOf(t, content, "; stop here", 0)},
	}}

	processed, err := asm.Transform(program, asm.NewLineIndex([]byte(content)), asm.TransformOptions{})
	if err != nil {
		t.Fatalf("Transform returned error: %v", err)
	}

	if len(processed.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(processed.Items))
	}
	inst := processed.Items[0].(*asm.InstructionItem)
	if inst.Trailing != nil {
		t.Error("comment adopted with inline attachment disabled")
	}
}

func TestTransformEmptyProgram(t *testing.T) {
	t.Parallel()

	processed, err := asm.Transform(&asm.Program{}, asm.NewLineIndex(nil), asm.TransformOptions{
		AttachInlineComments: true,
	})
	if err != nil {
		t.Fatalf("Transform returned error: %v", err)
	}
	if len(processed.Items) != 0 {
		t.Errorf("got %d items, want 0", len(processed.Items))
	}
}

func TestCommentBody(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"marker and space", "; hello", "hello"},
		{"marker only", ";", ""},
		{"extra padding", ";   padded   ", "padded"},
		{"no space after marker", ";tight", "tight"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			c := asm.Comment{Text: testCase.text}
			if got := c.Body(); got != testCase.want {
				t.Errorf("Body() = %q, want %q", got, testCase.want)
			}
		})
	}
}

func TestLabelNameAndColon(t *testing.T) {
	t.Parallel()

	withColon := asm.Label{Text: "loop:"}
	if withColon.Name() != "loop" || !withColon.HasColon() {
		t.Errorf("label %q: Name()=%q HasColon()=%v", withColon.Text, withColon.Name(), withColon.HasColon())
	}

	bare := asm.Label{Text: "loop"}
	if bare.Name() != "loop" || bare.HasColon() {
		t.Errorf("label %q: Name()=%q HasColon()=%v", bare.Text, bare.Name(), bare.HasColon())
	}
}
