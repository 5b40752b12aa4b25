package asm

import "strings"

// Program is the abstract program: the ordered item sequence of one source
// file as produced by the parser adapter. Labels are still free-standing
// items at this stage.
type Program struct {
	Items []Item
}

// Item is one top-level item of the abstract program.
// The concrete types are *Comment, *Label, *Instruction and *Directive.
type Item interface {
	ItemSpan() Span
	isItem()
}

// Comment is a verbatim line comment, including the leading ';' marker.
type Comment struct {
	Text string
	Span Span
}

func (c *Comment) ItemSpan() Span { return c.Span }
func (c *Comment) isItem()        {}

// Body returns the comment text with the ';' marker and surrounding
// whitespace stripped.
func (c *Comment) Body() string {
	return strings.TrimSpace(strings.TrimPrefix(c.Text, ";"))
}

// Label is a label definition, possibly carrying a trailing colon exactly
// as written in the source.
type Label struct {
	Text string
	Span Span
}

func (l *Label) ItemSpan() Span { return l.Span }
func (l *Label) isItem()        {}

// Name returns the label identifier with any trailing colon stripped.
func (l *Label) Name() string {
	return strings.TrimSuffix(l.Text, ":")
}

// HasColon reports whether the label was written with a trailing colon.
func (l *Label) HasColon() bool {
	return strings.HasSuffix(l.Text, ":")
}

// Register is one of the eight machine registers.
type Register uint8

const (
	R0 Register = iota
	R1
	R2
	R3
	R4
	R5
	R6
	R7
)

// RegisterFromName maps a register name (case-insensitive "R0".."R7") to
// its Register value.
func RegisterFromName(name string) (Register, bool) {
	if len(name) != 2 {
		return 0, false
	}
	if name[0] != 'R' && name[0] != 'r' {
		return 0, false
	}
	if name[1] < '0' || name[1] > '7' {
		return 0, false
	}
	return Register(name[1] - '0'), true
}

// RegisterOperand is a register operand with its raw text and span.
type RegisterOperand struct {
	Text string
	Span Span
	Reg  Register
}

// Immediate is a textual immediate operand. The value is carried as raw
// text so formatting is lossless; the core never parses it numerically.
type Immediate struct {
	Text string
	Span Span
}

// HexAddress is a textual hex operand (e.g. "x3000").
type HexAddress struct {
	Text string
	Span Span
}

// StringLiteral is a quoted string operand, raw text including quotes.
type StringLiteral struct {
	Text string
	Span Span
}

// LabelRef is a reference to a label used as an operand.
type LabelRef struct {
	Text string
	Span Span
}

// RegOrImm is the register-or-immediate third operand of ADD and AND.
// Exactly one of Reg and Imm is non-nil.
type RegOrImm struct {
	Reg *RegisterOperand
	Imm *Immediate
}

// Text returns the raw operand text.
func (ri RegOrImm) Text() string {
	if ri.Reg != nil {
		return ri.Reg.Text
	}
	return ri.Imm.Text
}

// CondCode is the branch condition-code selector: a subset of the N, Z and
// P flags. The zero value is the unconditional bare "BR".
type CondCode uint8

const (
	CondN CondCode = 1 << iota
	CondZ
	CondP

	CondNone CondCode = 0
	CondNZP  CondCode = CondN | CondZ | CondP
)

// Has reports whether all flags in mask are set.
func (c CondCode) Has(mask CondCode) bool {
	return c&mask == mask
}

// String returns the lowercase mnemonic suffix for the condition code.
func (c CondCode) String() string {
	var b strings.Builder
	if c.Has(CondN) {
		b.WriteByte('n')
	}
	if c.Has(CondZ) {
		b.WriteByte('z')
	}
	if c.Has(CondP) {
		b.WriteByte('p')
	}
	return b.String()
}

// Opcode identifies one of the closed set of instruction shapes.
type Opcode uint8

const (
	OpAdd Opcode = iota
	OpAnd
	OpNot
	OpLd
	OpLdi
	OpLdr
	OpLea
	OpSt
	OpSti
	OpStr
	OpBr
	OpJmp
	OpJsr
	OpJsrr
	OpNop
	OpRet
	OpHalt
	OpPuts
	OpGetc
	OpOut
	OpIn
	OpTrap
)

// opcodeNames is the canonical uppercase mnemonic per opcode.
var opcodeNames = [...]string{
	OpAdd:  "ADD",
	OpAnd:  "AND",
	OpNot:  "NOT",
	OpLd:   "LD",
	OpLdi:  "LDI",
	OpLdr:  "LDR",
	OpLea:  "LEA",
	OpSt:   "ST",
	OpSti:  "STI",
	OpStr:  "STR",
	OpBr:   "BR",
	OpJmp:  "JMP",
	OpJsr:  "JSR",
	OpJsrr: "JSRR",
	OpNop:  "NOP",
	OpRet:  "RET",
	OpHalt: "HALT",
	OpPuts: "PUTS",
	OpGetc: "GETC",
	OpOut:  "OUT",
	OpIn:   "IN",
	OpTrap: "TRAP",
}

// String returns the canonical uppercase mnemonic.
func (op Opcode) String() string {
	if int(op) < len(opcodeNames) {
		return opcodeNames[op]
	}
	return "UNKNOWN"
}

// Instruction is one decoded instruction. Op selects the shape; the
// operand fields valid for that shape are non-nil, every other operand
// field is nil. Mnemonic preserves the raw source spelling.
type Instruction struct {
	Op       Opcode
	Mnemonic string
	Span     Span

	// Cond is the condition-code selector, valid only for OpBr.
	Cond CondCode

	// DR, SR1 are register operands for arithmetic and memory shapes.
	DR  *RegisterOperand
	SR1 *RegisterOperand

	// Src is the register-or-immediate third operand of ADD and AND.
	Src *RegOrImm

	// Offset is the immediate offset of LDR and STR.
	Offset *Immediate

	// Target is the label operand of loads, stores, BR and JSR.
	Target *LabelRef

	// Vector is the hex trap vector of TRAP.
	Vector *HexAddress
}

func (i *Instruction) ItemSpan() Span { return i.Span }
func (i *Instruction) isItem()        {}

// DirectiveKind identifies one of the closed set of directive shapes.
type DirectiveKind uint8

const (
	DirOrig DirectiveKind = iota
	DirEnd
	DirBlkw
	DirFill
	DirStringz
)

// directiveNames is the canonical uppercase name per kind, without marker.
var directiveNames = [...]string{
	DirOrig:    "ORIG",
	DirEnd:     "END",
	DirBlkw:    "BLKW",
	DirFill:    "FILL",
	DirStringz: "STRINGZ",
}

// String returns the canonical directive name including the '.' marker.
func (k DirectiveKind) String() string {
	if int(k) < len(directiveNames) {
		return "." + directiveNames[k]
	}
	return ".UNKNOWN"
}

// Directive is one decoded assembler directive. Kind selects the shape;
// exactly the operand field valid for that shape is non-nil. Text
// preserves the raw source spelling including the '.' marker.
type Directive struct {
	Kind DirectiveKind
	Text string
	Span Span

	// Addr is the origin address of .ORIG.
	Addr *HexAddress

	// Operand is the block count of .BLKW or the fill value of .FILL.
	Operand *Immediate

	// Str is the string operand of .STRINGZ.
	Str *StringLiteral
}

func (d *Directive) ItemSpan() Span { return d.Span }
func (d *Directive) isItem()        {}
