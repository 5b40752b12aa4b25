package parser

import (
	"strings"

	"github.com/yaklabco/lc3kit/pkg/asm"
)

// BuildProgram parses content and adapts the resulting concrete-syntax
// tree into the typed abstract program. The error is a *SyntaxError for
// user input problems or a *MalformedTreeError for grammar/adapter skew.
func BuildProgram(content []byte) (*asm.Program, error) {
	root, err := Parse(content)
	if err != nil {
		return nil, err
	}
	return Adapt(root, content)
}

// Adapt converts a concrete-syntax tree rooted at NodeProgram into an
// abstract program. The item sequence matches the tree's top-level child
// order exactly; the end-of-input marker is dropped. Tree shapes the
// grammar cannot produce yield a *MalformedTreeError rather than a panic.
func Adapt(root *Node, content []byte) (*asm.Program, error) {
	if root == nil || root.Kind != NodeProgram {
		return nil, malformed(NodeProgram, "root is not a program node")
	}

	program := &asm.Program{Items: make([]asm.Item, 0, len(root.Children))}

	for _, child := range root.Children {
		switch child.Kind {
		case NodeEndOfInput:
			// End of sequence, not represented as an item.
			continue

		case NodeComment:
			program.Items = append(program.Items, &asm.Comment{
				Text: child.Text(content),
				Span: child.Span,
			})

		case NodeLabel:
			program.Items = append(program.Items, &asm.Label{
				Text: child.Text(content),
				Span: child.Span,
			})

		case NodeInstruction:
			inst, err := adaptInstruction(child, content)
			if err != nil {
				return nil, err
			}
			program.Items = append(program.Items, inst)

		case NodeDirective:
			dir, err := adaptDirective(child, content)
			if err != nil {
				return nil, err
			}
			program.Items = append(program.Items, dir)

		default:
			return nil, malformed(child.Kind, "unexpected top-level node")
		}
	}

	return program, nil
}

// instructionOpcodes maps mnemonic tag kinds to opcodes.
var instructionOpcodes = map[NodeKind]asm.Opcode{
	NodeAdd:  asm.OpAdd,
	NodeAnd:  asm.OpAnd,
	NodeNot:  asm.OpNot,
	NodeLd:   asm.OpLd,
	NodeLdi:  asm.OpLdi,
	NodeLdr:  asm.OpLdr,
	NodeLea:  asm.OpLea,
	NodeSt:   asm.OpSt,
	NodeSti:  asm.OpSti,
	NodeStr:  asm.OpStr,
	NodeBr:   asm.OpBr,
	NodeJmp:  asm.OpJmp,
	NodeJsr:  asm.OpJsr,
	NodeJsrr: asm.OpJsrr,
	NodeNop:  asm.OpNop,
	NodeRet:  asm.OpRet,
	NodeHalt: asm.OpHalt,
	NodePuts: asm.OpPuts,
	NodeGetc: asm.OpGetc,
	NodeOut:  asm.OpOut,
	NodeIn:   asm.OpIn,
	NodeTrap: asm.OpTrap,
}

// adaptInstruction decodes one instruction node by dispatching on its
// first child's tag and consuming operand children positionally with the
// fixed arity of that shape. The instruction's span and mnemonic text come
// from the tag node, matching what diagnostics should point at.
func adaptInstruction(node *Node, content []byte) (*asm.Instruction, error) {
	if len(node.Children) == 0 {
		return nil, malformed(NodeInstruction, "instruction node has no mnemonic tag")
	}
	tag := node.Children[0]
	operands := node.Children[1:]

	op, ok := instructionOpcodes[tag.Kind]
	if !ok {
		return nil, malformed(tag.Kind, "unknown mnemonic tag")
	}

	inst := &asm.Instruction{
		Op:       op,
		Mnemonic: tag.Text(content),
		Span:     tag.Span,
	}

	take := operandReader(tag.Kind, operands, content)

	switch op {
	case asm.OpAdd, asm.OpAnd:
		if err := take.arity(3); err != nil {
			return nil, err
		}
		var err error
		if inst.DR, err = take.register(); err != nil {
			return nil, err
		}
		if inst.SR1, err = take.register(); err != nil {
			return nil, err
		}
		if inst.Src, err = take.registerOrImmediate(); err != nil {
			return nil, err
		}

	case asm.OpNot:
		if err := take.arity(2); err != nil {
			return nil, err
		}
		var err error
		if inst.DR, err = take.register(); err != nil {
			return nil, err
		}
		if inst.SR1, err = take.register(); err != nil {
			return nil, err
		}

	case asm.OpLd, asm.OpLdi, asm.OpLea, asm.OpSt, asm.OpSti:
		if err := take.arity(2); err != nil {
			return nil, err
		}
		var err error
		if inst.DR, err = take.register(); err != nil {
			return nil, err
		}
		if inst.Target, err = take.labelRef(); err != nil {
			return nil, err
		}

	case asm.OpLdr, asm.OpStr:
		if err := take.arity(3); err != nil {
			return nil, err
		}
		var err error
		if inst.DR, err = take.register(); err != nil {
			return nil, err
		}
		if inst.SR1, err = take.register(); err != nil {
			return nil, err
		}
		if inst.Offset, err = take.immediate(); err != nil {
			return nil, err
		}

	case asm.OpBr:
		if err := take.arity(1); err != nil {
			return nil, err
		}
		cond, err := condFromMnemonic(inst.Mnemonic)
		if err != nil {
			return nil, err
		}
		inst.Cond = cond
		if inst.Target, err = take.labelRef(); err != nil {
			return nil, err
		}

	case asm.OpJmp, asm.OpJsrr:
		if err := take.arity(1); err != nil {
			return nil, err
		}
		var err error
		if inst.DR, err = take.register(); err != nil {
			return nil, err
		}

	case asm.OpJsr:
		if err := take.arity(1); err != nil {
			return nil, err
		}
		var err error
		if inst.Target, err = take.labelRef(); err != nil {
			return nil, err
		}

	case asm.OpTrap:
		if err := take.arity(1); err != nil {
			return nil, err
		}
		var err error
		if inst.Vector, err = take.hexAddress(); err != nil {
			return nil, err
		}

	case asm.OpNop, asm.OpRet, asm.OpHalt, asm.OpPuts, asm.OpGetc, asm.OpOut, asm.OpIn:
		if err := take.arity(0); err != nil {
			return nil, err
		}
	}

	return inst, nil
}

// directiveKindsByTag maps directive tag kinds to directive kinds.
var directiveKindsByTag = map[NodeKind]asm.DirectiveKind{
	NodeOrig:    asm.DirOrig,
	NodeEnd:     asm.DirEnd,
	NodeBlkw:    asm.DirBlkw,
	NodeFill:    asm.DirFill,
	NodeStringz: asm.DirStringz,
}

// adaptDirective decodes one directive node.
func adaptDirective(node *Node, content []byte) (*asm.Directive, error) {
	if len(node.Children) == 0 {
		return nil, malformed(NodeDirective, "directive node has no tag")
	}
	tag := node.Children[0]
	operands := node.Children[1:]

	kind, ok := directiveKindsByTag[tag.Kind]
	if !ok {
		return nil, malformed(tag.Kind, "unknown directive tag")
	}

	dir := &asm.Directive{
		Kind: kind,
		Text: tag.Text(content),
		Span: tag.Span,
	}

	take := operandReader(tag.Kind, operands, content)

	switch kind {
	case asm.DirOrig:
		if err := take.arity(1); err != nil {
			return nil, err
		}
		var err error
		if dir.Addr, err = take.hexAddress(); err != nil {
			return nil, err
		}

	case asm.DirBlkw, asm.DirFill:
		if err := take.arity(1); err != nil {
			return nil, err
		}
		var err error
		if dir.Operand, err = take.immediate(); err != nil {
			return nil, err
		}

	case asm.DirStringz:
		if err := take.arity(1); err != nil {
			return nil, err
		}
		var err error
		if dir.Str, err = take.stringLiteral(); err != nil {
			return nil, err
		}

	case asm.DirEnd:
		if err := take.arity(0); err != nil {
			return nil, err
		}
	}

	return dir, nil
}

// condFromMnemonic classifies the branch mnemonic suffix into a condition
// code. The suffix after the fixed "BR" prefix must be a subset of the
// letters N, Z and P in any order and case; anything else is adapter skew.
func condFromMnemonic(mnemonic string) (asm.CondCode, error) {
	upper := strings.ToUpper(mnemonic)
	suffix, ok := strings.CutPrefix(upper, "BR")
	if !ok {
		return 0, malformed(NodeBr, "branch mnemonic %q lacks BR prefix", mnemonic)
	}

	var cond asm.CondCode
	for _, r := range suffix {
		switch r {
		case 'N':
			cond |= asm.CondN
		case 'Z':
			cond |= asm.CondZ
		case 'P':
			cond |= asm.CondP
		default:
			return 0, malformed(NodeBr, "branch mnemonic %q has invalid suffix", mnemonic)
		}
	}
	return cond, nil
}

// operands is a positional reader over a node's operand children.
type operands struct {
	tag     NodeKind
	nodes   []*Node
	content []byte
	idx     int
}

func operandReader(tag NodeKind, nodes []*Node, content []byte) *operands {
	return &operands{tag: tag, nodes: nodes, content: content}
}

// arity checks the operand count for the shape being decoded.
func (o *operands) arity(want int) error {
	if len(o.nodes) != want {
		return malformed(o.tag, "expected %d operands, tree has %d", want, len(o.nodes))
	}
	return nil
}

func (o *operands) nextNode(want NodeKind) (*Node, error) {
	if o.idx >= len(o.nodes) {
		return nil, malformed(o.tag, "missing operand %d", o.idx)
	}
	node := o.nodes[o.idx]
	o.idx++
	if node.Kind != want {
		return nil, malformed(o.tag, "operand %d has kind %d, want %d", o.idx-1, node.Kind, want)
	}
	return node, nil
}

func (o *operands) register() (*asm.RegisterOperand, error) {
	node, err := o.nextNode(NodeRegister)
	if err != nil {
		return nil, err
	}
	text := node.Text(o.content)
	reg, ok := asm.RegisterFromName(text)
	if !ok {
		return nil, malformed(NodeRegister, "invalid register name %q", text)
	}
	return &asm.RegisterOperand{Text: text, Span: node.Span, Reg: reg}, nil
}

func (o *operands) registerOrImmediate() (*asm.RegOrImm, error) {
	if o.idx < len(o.nodes) && o.nodes[o.idx].Kind == NodeRegister {
		reg, err := o.register()
		if err != nil {
			return nil, err
		}
		return &asm.RegOrImm{Reg: reg}, nil
	}
	imm, err := o.immediate()
	if err != nil {
		return nil, err
	}
	return &asm.RegOrImm{Imm: imm}, nil
}

func (o *operands) immediate() (*asm.Immediate, error) {
	node, err := o.nextNode(NodeImmediate)
	if err != nil {
		return nil, err
	}
	return &asm.Immediate{Text: node.Text(o.content), Span: node.Span}, nil
}

func (o *operands) hexAddress() (*asm.HexAddress, error) {
	node, err := o.nextNode(NodeHexAddress)
	if err != nil {
		return nil, err
	}
	return &asm.HexAddress{Text: node.Text(o.content), Span: node.Span}, nil
}

func (o *operands) labelRef() (*asm.LabelRef, error) {
	node, err := o.nextNode(NodeLabelRef)
	if err != nil {
		return nil, err
	}
	return &asm.LabelRef{Text: node.Text(o.content), Span: node.Span}, nil
}

func (o *operands) stringLiteral() (*asm.StringLiteral, error) {
	node, err := o.nextNode(NodeStringLiteral)
	if err != nil {
		return nil, err
	}
	return &asm.StringLiteral{Text: node.Text(o.content), Span: node.Span}, nil
}
