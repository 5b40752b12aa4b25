package format_test

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/yaklabco/lc3kit/pkg/asm"
	"github.com/yaklabco/lc3kit/pkg/config"
	"github.com/yaklabco/lc3kit/pkg/format"
	"github.com/yaklabco/lc3kit/pkg/parser"
)

// render runs the full parse/transform/render pipeline over content.
func render(t *testing.T, content string, style config.FormatStyle) []byte {
	t.Helper()

	program, err := parser.BuildProgram([]byte(content))
	if err != nil {
		t.Fatalf("BuildProgram(%q) returned error: %v", content, err)
	}
	index := asm.NewLineIndex([]byte(content))
	processed, err := asm.Transform(program, index, asm.TransformOptions{AttachInlineComments: true})
	if err != nil {
		t.Fatalf("Transform returned error: %v", err)
	}
	return format.Render(processed, style)
}

func defaultStyle() config.FormatStyle {
	return config.NewConfig().Format
}

// structure reduces a program to a flat summary of its statements: label
// names, comment bodies, and raw mnemonics with their operand texts.
// Rendering may move text between lines and columns but must never change
// this summary.
func structure(program *asm.Program) []string {
	var out []string
	for _, item := range program.Items {
		switch it := item.(type) {
		case *asm.Comment:
			out = append(out, "comment "+it.Body())
		case *asm.Label:
			out = append(out, "label "+it.Name())
		case *asm.Instruction:
			out = append(out, "inst "+it.Mnemonic+" "+strings.Join(instructionOperands(it), ","))
		case *asm.Directive:
			out = append(out, "dir "+it.Text+" "+directiveOperand(it))
		}
	}
	return out
}

func instructionOperands(inst *asm.Instruction) []string {
	var ops []string
	for _, reg := range []*asm.RegisterOperand{inst.DR, inst.SR1} {
		if reg != nil {
			ops = append(ops, reg.Text)
		}
	}
	if inst.Src != nil {
		ops = append(ops, inst.Src.Text())
	}
	if inst.Offset != nil {
		ops = append(ops, inst.Offset.Text)
	}
	if inst.Target != nil {
		ops = append(ops, inst.Target.Text)
	}
	if inst.Vector != nil {
		ops = append(ops, inst.Vector.Text)
	}
	return ops
}

func directiveOperand(dir *asm.Directive) string {
	switch {
	case dir.Addr != nil:
		return dir.Addr.Text
	case dir.Operand != nil:
		return dir.Operand.Text
	case dir.Str != nil:
		return dir.Str.Text
	default:
		return ""
	}
}

func TestRenderPreservesProgramStructure(t *testing.T) {
	t.Parallel()

	withColons := defaultStyle()
	withColons.ColonAfterLabel = true
	withColons.IndentInstruction = 2

	tests := []struct {
		name   string
		source string
	}{
		{
			"full program",
			".ORIG x3000\n; entry\nSTART AND R0, R0, #0 ; clear\nADD R0, R0, #1\n.END\n",
		},
		{
			"messy spacing and case",
			"start:   add R1, R2, #-1    ; tick\n   brnp start\n",
		},
		{
			"labelled directives",
			".ORIG x3000\ndata .FILL x1F\nbuf .BLKW 3\nmsg .STRINGZ \"hi\"\n.END\n",
		},
		{
			"memory and control shapes",
			"LD R1, data\nLDR R2, R3, #4\nNOT R4, R5\nJSR sub\nTRAP x25\n",
		},
		{
			"trailing labels",
			"RET\norphan\n",
		},
		{
			"comments only",
			"; one\n;two\n",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			before, err := parser.BuildProgram([]byte(testCase.source))
			if err != nil {
				t.Fatalf("BuildProgram(%q) returned error: %v", testCase.source, err)
			}
			want := structure(before)

			for _, style := range []config.FormatStyle{defaultStyle(), withColons} {
				out := render(t, testCase.source, style)

				after, err := parser.BuildProgram(out)
				if err != nil {
					t.Fatalf("rendered output %q does not parse: %v", out, err)
				}
				if got := structure(after); !reflect.DeepEqual(got, want) {
					t.Errorf("structure changed by rendering:\ngot  %q\nwant %q\noutput:\n%s",
						got, want, out)
				}
			}
		})
	}
}

func TestRenderCanonicalLayout(t *testing.T) {
	t.Parallel()

	content := ".ORIG x3000\n; entry\nSTART AND R0, R0, #0 ; clear\nADD R0, R0, #1\n.END\n"
	want := ".ORIG x3000\n" +
		"\n" +
		";entry\n" +
		"START\n" +
		"    AND R0, R0, #0 ;clear\n" +
		"    ADD R0, R0, #1\n" +
		"\n" +
		".END\n"

	got := render(t, content, defaultStyle())
	if string(got) != want {
		t.Errorf("rendered output:\n%q\nwant:\n%q", got, want)
	}
}

func TestRenderGlobalCommentColumn(t *testing.T) {
	t.Parallel()

	// Short and long statements both carry trailing comments; both comments
	// must start at the same column, one past the widest body.
	content := "RET ; back\nADD R1, R2, R3 ; sum\n"
	style := defaultStyle()

	got := string(render(t, content, style))
	want := "    RET            ;back\n" +
		"    ADD R1, R2, R3 ;sum\n"
	if got != want {
		t.Errorf("rendered output:\n%q\nwant:\n%q", got, want)
	}

	lines := bytes.Split(bytes.TrimSuffix([]byte(got), []byte("\n")), []byte("\n"))
	col := -1
	for _, line := range lines {
		at := bytes.IndexByte(line, ';')
		if col == -1 {
			col = at
			continue
		}
		if at != col {
			t.Errorf("comment columns differ: %d vs %d", col, at)
		}
	}
}

func TestRenderNoPaddingWithoutComment(t *testing.T) {
	t.Parallel()

	content := "RET\nADD R1, R2, R3 ; sum\n"
	got := render(t, content, defaultStyle())
	for _, line := range bytes.Split(got, []byte("\n")) {
		if len(line) != len(bytes.TrimRight(line, " ")) {
			t.Errorf("line %q has trailing whitespace", line)
		}
	}
}

func TestRenderBlankLineRules(t *testing.T) {
	t.Parallel()

	style := defaultStyle()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "comment sticks to code below",
			content: "; setup\nRET\n",
			want:    ";setup\n    RET\n",
		},
		{
			name:    "code to standalone comment",
			content: "RET\n; after\n",
			want:    "    RET\n\n;after\n",
		},
		{
			name:    "unlabelled code to labelled code",
			content: "RET\nloop ADD R1, R1, #1\n",
			want:    "    RET\n\nloop\n    ADD R1, R1, #1\n",
		},
		{
			name:    "labelled code to unlabelled code",
			content: "loop ADD R1, R1, #1\nRET\n",
			want:    "loop\n    ADD R1, R1, #1\n    RET\n",
		},
		{
			name:    "origin spacing",
			content: ".ORIG x3000\nRET\n.END\n",
			want:    ".ORIG x3000\n\n    RET\n\n.END\n",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got := render(t, testCase.content, style)
			if string(got) != testCase.want {
				t.Errorf("rendered output:\n%q\nwant:\n%q", got, testCase.want)
			}
		})
	}
}

func TestRenderBlankLineRulesSum(t *testing.T) {
	t.Parallel()

	// The origin rule and the label-block rule both fire on the same pair;
	// the blank lines add up instead of taking the maximum.
	content := ".ORIG x3000\nloop ADD R1, R1, #1\n.END\n"
	want := ".ORIG x3000\n" +
		"\n\n" +
		"loop\n" +
		"    ADD R1, R1, #1\n" +
		"\n" +
		".END\n"

	got := render(t, content, defaultStyle())
	if string(got) != want {
		t.Errorf("rendered output:\n%q\nwant:\n%q", got, want)
	}
}

func TestRenderDirectiveIndentation(t *testing.T) {
	t.Parallel()

	// Data directives take the directive indent while .ORIG and .END stay
	// flush regardless of it.
	content := ".ORIG x3000\ndata .FILL x1F\n.END\n"
	style := defaultStyle()
	style.SpaceFromStartEndBlock = 0
	style.SpaceFromLabelBlock = 0

	want := ".ORIG x3000\ndata\n   .FILL x1F\n.END\n"
	got := render(t, content, style)
	if string(got) != want {
		t.Errorf("rendered output:\n%q\nwant:\n%q", got, want)
	}
}

func TestRenderColonNormalization(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		colon   bool
		want    string
	}{
		{"adds missing colon", "loop RET\n", true, "loop:\n    RET\n"},
		{"keeps written colon", "loop: RET\n", true, "loop:\n    RET\n"},
		{"strips written colon", "loop: RET\n", false, "loop\n    RET\n"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			style := defaultStyle()
			style.ColonAfterLabel = testCase.colon
			got := render(t, testCase.content, style)
			if string(got) != testCase.want {
				t.Errorf("rendered output:\n%q\nwant:\n%q", got, testCase.want)
			}
		})
	}
}

func TestRenderTrailingLabels(t *testing.T) {
	t.Parallel()

	content := "RET\norphan\n"
	want := "    RET\norphan\n\n"

	got := render(t, content, defaultStyle())
	if string(got) != want {
		t.Errorf("rendered output:\n%q\nwant:\n%q", got, want)
	}
}

func TestRenderEmptyProgram(t *testing.T) {
	t.Parallel()

	got := render(t, "", defaultStyle())
	if len(got) != 0 {
		t.Errorf("empty program rendered %q, want no bytes", got)
	}
}

func TestRenderIdempotent(t *testing.T) {
	t.Parallel()

	contents := []string{
		".ORIG x3000\n; entry\nSTART AND R0, R0, #0 ; clear\nloop: add R1, R1, #-1\nBRnp loop\ngreeting .STRINGZ \"hi\"\nTRAP x25\n.END\n",
		"RET ; short\nADD R1, R2, R3 ; long\norphan\n",
		"; only a comment\n",
	}

	style := defaultStyle()
	style.ColonAfterLabel = true

	for _, content := range contents {
		first := render(t, content, style)
		second := render(t, string(first), style)
		if !bytes.Equal(first, second) {
			t.Errorf("formatting is not idempotent for %q:\nfirst:\n%q\nsecond:\n%q", content, first, second)
		}
	}
}
