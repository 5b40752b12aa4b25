package parser

import (
	"strings"

	"github.com/yaklabco/lc3kit/pkg/asm"
)

// mnemonicKinds maps uppercase mnemonics to their tag kind. BR and its
// condition-code variants are matched by prefix in classifyMnemonic.
var mnemonicKinds = map[string]NodeKind{
	"ADD":  NodeAdd,
	"AND":  NodeAnd,
	"NOT":  NodeNot,
	"LD":   NodeLd,
	"LDI":  NodeLdi,
	"LDR":  NodeLdr,
	"LEA":  NodeLea,
	"ST":   NodeSt,
	"STI":  NodeSti,
	"STR":  NodeStr,
	"JMP":  NodeJmp,
	"JSR":  NodeJsr,
	"JSRR": NodeJsrr,
	"NOP":  NodeNop,
	"RET":  NodeRet,
	"HALT": NodeHalt,
	"PUTS": NodePuts,
	"GETC": NodeGetc,
	"OUT":  NodeOut,
	"IN":   NodeIn,
	"TRAP": NodeTrap,
}

// directiveKinds maps uppercase directive names (marker included) to tags.
var directiveKinds = map[string]NodeKind{
	".ORIG":    NodeOrig,
	".END":     NodeEnd,
	".BLKW":    NodeBlkw,
	".FILL":    NodeFill,
	".STRINGZ": NodeStringz,
}

// classifyMnemonic resolves a word to a mnemonic tag, case-insensitively.
// Any "BR" prefix with a suffix drawn from the letters N, Z, P (possibly
// empty) is a branch.
func classifyMnemonic(word string) (NodeKind, bool) {
	upper := strings.ToUpper(word)
	if kind, ok := mnemonicKinds[upper]; ok {
		return kind, true
	}
	if suffix, ok := strings.CutPrefix(upper, "BR"); ok && isCondSuffix(suffix) {
		return NodeBr, true
	}
	return 0, false
}

// isCondSuffix reports whether s contains only condition-code letters.
func isCondSuffix(s string) bool {
	for _, r := range s {
		if r != 'N' && r != 'Z' && r != 'P' {
			return false
		}
	}
	return true
}

// parser is a recursive-descent parser over the token stream.
type parser struct {
	content []byte
	tokens  []Token
	pos     int
}

// Parse parses assembly content into a concrete-syntax tree rooted at a
// NodeProgram. On failure it returns a *SyntaxError.
func Parse(content []byte) (*Node, error) {
	p := &parser{content: content, tokens: tokenize(content)}
	return p.parseProgram()
}

func (p *parser) peek() Token {
	return p.tokens[p.pos]
}

func (p *parser) next() Token {
	tok := p.tokens[p.pos]
	if tok.Kind != TokEOF {
		p.pos++
	}
	return tok
}

// fail builds a syntax error at the current token.
func (p *parser) fail(expected ...string) error {
	tok := p.peek()
	found := tok.Text(p.content)
	if tok.Kind == TokEOF {
		found = ""
	}
	return &SyntaxError{Span: tok.Span, Found: found, Expected: expected}
}

func (p *parser) parseProgram() (*Node, error) {
	root := &Node{Kind: NodeProgram, Span: asm.Span{Start: 0, End: len(p.content)}}

	for {
		tok := p.peek()
		switch tok.Kind {
		case TokEOF:
			root.Children = append(root.Children, &Node{Kind: NodeEndOfInput, Span: tok.Span})
			return root, nil

		case TokComment:
			p.next()
			root.Children = append(root.Children, &Node{Kind: NodeComment, Span: tok.Span})

		case TokDirective:
			dir, err := p.parseDirective()
			if err != nil {
				return nil, err
			}
			root.Children = append(root.Children, dir)

		case TokWord:
			if _, ok := classifyMnemonic(tok.Text(p.content)); ok {
				inst, err := p.parseInstruction()
				if err != nil {
					return nil, err
				}
				root.Children = append(root.Children, inst)
				break
			}
			root.Children = append(root.Children, p.parseLabel())

		default:
			return nil, p.fail("label", "instruction", "directive", "comment")
		}
	}
}

// parseLabel consumes a word and an optional trailing colon as one label.
// The colon belongs to the label only when it immediately follows the
// identifier; a detached colon is left in the stream and rejected by the
// caller.
func (p *parser) parseLabel() *Node {
	word := p.next()
	span := word.Span
	if colon := p.peek(); colon.Kind == TokColon && colon.Span.Start == span.End {
		p.next()
		span.End = colon.Span.End
	}
	return &Node{Kind: NodeLabel, Span: span}
}

// parseInstruction consumes a mnemonic and its fixed-arity operand list.
// The first child of the returned node is the mnemonic tag node.
func (p *parser) parseInstruction() (*Node, error) {
	word := p.next()
	kind, _ := classifyMnemonic(word.Text(p.content))
	tag := &Node{Kind: kind, Span: word.Span}
	inst := &Node{Kind: NodeInstruction, Span: word.Span, Children: []*Node{tag}}

	var operands []*Node
	var err error

	switch kind {
	case NodeAdd, NodeAnd:
		operands, err = p.parseOperands(p.register, p.register, p.registerOrImmediate)
	case NodeNot:
		operands, err = p.parseOperands(p.register, p.register)
	case NodeLd, NodeLdi, NodeLea, NodeSt, NodeSti:
		operands, err = p.parseOperands(p.register, p.labelRef)
	case NodeLdr, NodeStr:
		operands, err = p.parseOperands(p.register, p.register, p.immediate)
	case NodeBr, NodeJsr:
		operands, err = p.parseOperands(p.labelRef)
	case NodeJmp, NodeJsrr:
		operands, err = p.parseOperands(p.register)
	case NodeTrap:
		operands, err = p.parseOperands(p.hexAddress)
	case NodeNop, NodeRet, NodeHalt, NodePuts, NodeGetc, NodeOut, NodeIn:
		// No operands.
	}
	if err != nil {
		return nil, err
	}

	inst.Children = append(inst.Children, operands...)
	if len(operands) > 0 {
		inst.Span.End = operands[len(operands)-1].Span.End
	}
	return inst, nil
}

// parseDirective consumes a directive token and its operand, if any.
func (p *parser) parseDirective() (*Node, error) {
	word := p.next()
	kind, ok := directiveKinds[strings.ToUpper(word.Text(p.content))]
	if !ok {
		p.pos-- // report at the directive token itself
		return nil, p.fail(".ORIG", ".END", ".BLKW", ".FILL", ".STRINGZ")
	}

	tag := &Node{Kind: kind, Span: word.Span}
	dir := &Node{Kind: NodeDirective, Span: word.Span, Children: []*Node{tag}}

	var operand *Node
	var err error

	switch kind {
	case NodeOrig:
		operand, err = p.hexAddress()
	case NodeBlkw, NodeFill:
		operand, err = p.immediate()
	case NodeStringz:
		operand, err = p.stringLiteral()
	case NodeEnd:
		// No operand.
	}
	if err != nil {
		return nil, err
	}

	if operand != nil {
		dir.Children = append(dir.Children, operand)
		dir.Span.End = operand.Span.End
	}
	return dir, nil
}

// parseOperands parses a comma-separated operand list, one parse function
// per expected operand.
func (p *parser) parseOperands(parse ...func() (*Node, error)) ([]*Node, error) {
	operands := make([]*Node, 0, len(parse))
	for i, fn := range parse {
		if i > 0 {
			if p.peek().Kind != TokComma {
				return nil, p.fail("','")
			}
			p.next()
		}
		node, err := fn()
		if err != nil {
			return nil, err
		}
		operands = append(operands, node)
	}
	return operands, nil
}

func (p *parser) register() (*Node, error) {
	tok := p.peek()
	if tok.Kind != TokWord {
		return nil, p.fail("register")
	}
	if _, ok := asm.RegisterFromName(tok.Text(p.content)); !ok {
		return nil, p.fail("register")
	}
	p.next()
	return &Node{Kind: NodeRegister, Span: tok.Span}, nil
}

func (p *parser) registerOrImmediate() (*Node, error) {
	tok := p.peek()
	if tok.Kind == TokWord {
		if _, ok := asm.RegisterFromName(tok.Text(p.content)); ok {
			p.next()
			return &Node{Kind: NodeRegister, Span: tok.Span}, nil
		}
	}
	if tok.Kind == TokNumber {
		p.next()
		return &Node{Kind: NodeImmediate, Span: tok.Span}, nil
	}
	return nil, p.fail("register", "immediate")
}

func (p *parser) immediate() (*Node, error) {
	tok := p.peek()
	switch {
	case tok.Kind == TokNumber && tok.Span.Len() > 0 && hasDigits(tok.Text(p.content)):
		p.next()
		return &Node{Kind: NodeImmediate, Span: tok.Span}, nil
	case tok.Kind == TokWord && isHexLiteral(tok.Text(p.content)):
		// Hex-shaped words are legal immediates (e.g. ".FILL x1F").
		p.next()
		return &Node{Kind: NodeImmediate, Span: tok.Span}, nil
	default:
		return nil, p.fail("immediate")
	}
}

func (p *parser) hexAddress() (*Node, error) {
	tok := p.peek()
	if tok.Kind != TokWord || !isHexLiteral(tok.Text(p.content)) {
		return nil, p.fail("hex address")
	}
	p.next()
	return &Node{Kind: NodeHexAddress, Span: tok.Span}, nil
}

func (p *parser) labelRef() (*Node, error) {
	tok := p.peek()
	if tok.Kind != TokWord {
		return nil, p.fail("label")
	}
	if _, ok := asm.RegisterFromName(tok.Text(p.content)); ok {
		return nil, p.fail("label")
	}
	p.next()
	return &Node{Kind: NodeLabelRef, Span: tok.Span}, nil
}

func (p *parser) stringLiteral() (*Node, error) {
	tok := p.peek()
	if tok.Kind != TokString {
		return nil, p.fail("string literal")
	}
	text := tok.Text(p.content)
	if len(text) < 2 || !strings.HasSuffix(text, `"`) {
		return nil, p.fail("terminated string literal")
	}
	p.next()
	return &Node{Kind: NodeStringLiteral, Span: tok.Span}, nil
}

// isHexLiteral reports whether word is 'x' or 'X' followed by hex digits.
func isHexLiteral(word string) bool {
	if len(word) < 2 || (word[0] != 'x' && word[0] != 'X') {
		return false
	}
	for i := 1; i < len(word); i++ {
		b := word[i]
		ok := isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
		if !ok {
			return false
		}
	}
	return true
}

// hasDigits reports whether s contains at least one decimal digit.
func hasDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if isDigit(s[i]) {
			return true
		}
	}
	return false
}
