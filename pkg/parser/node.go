package parser

import "github.com/yaklabco/lc3kit/pkg/asm"

// NodeKind tags a concrete-syntax tree node. The per-mnemonic kinds play
// the role of grammar rules: an instruction node's first child carries the
// mnemonic kind the adapter dispatches on.
type NodeKind uint8

const (
	NodeProgram NodeKind = iota
	NodeComment
	NodeLabel
	NodeInstruction
	NodeDirective
	NodeEndOfInput

	// Mnemonic tags, first child of NodeInstruction.
	NodeAdd
	NodeAnd
	NodeNot
	NodeLd
	NodeLdi
	NodeLdr
	NodeLea
	NodeSt
	NodeSti
	NodeStr
	NodeBr
	NodeJmp
	NodeJsr
	NodeJsrr
	NodeNop
	NodeRet
	NodeHalt
	NodePuts
	NodeGetc
	NodeOut
	NodeIn
	NodeTrap

	// Directive tags, first child of NodeDirective.
	NodeOrig
	NodeEnd
	NodeBlkw
	NodeFill
	NodeStringz

	// Operand nodes.
	NodeRegister
	NodeImmediate
	NodeHexAddress
	NodeStringLiteral
	NodeLabelRef
)

// Node is one node of the generic concrete-syntax tree. The tree shape is
// uniform: a Program root whose children are comment, label, instruction
// and directive nodes plus a trailing end-of-input marker; statement nodes
// hold a tag child followed by positional operand children.
type Node struct {
	Kind     NodeKind
	Span     asm.Span
	Children []*Node
}

// Text returns the source text this node covers.
func (n *Node) Text(content []byte) string {
	return string(n.Span.Text(content))
}
