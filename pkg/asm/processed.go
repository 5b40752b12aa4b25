package asm

// ProcessedProgram is the output of the attachment transform: labels have
// been attached to the statement they precede, same-line trailing comments
// have been merged into their owning statement, and every item carries its
// resolved source location.
type ProcessedProgram struct {
	Items []ProcessedItem
}

// ProcessedItem is one item of the processed program. The concrete types
// are *CommentItem, *InstructionItem, *DirectiveItem and *TrailingLabels.
type ProcessedItem interface {
	isProcessedItem()
}

// CommentItem is a standalone comment that was not adopted by a statement.
type CommentItem struct {
	Comment Comment
	Loc     SourceLocation
}

func (*CommentItem) isProcessedItem() {}

// InstructionItem is an instruction together with the labels that
// immediately preceded it in source order and an optional same-line
// trailing comment.
type InstructionItem struct {
	Labels   []Label
	Instr    Instruction
	Trailing *Comment
	Loc      SourceLocation
}

func (*InstructionItem) isProcessedItem() {}

// DirectiveItem is a directive together with its preceding labels and an
// optional same-line trailing comment.
type DirectiveItem struct {
	Labels   []Label
	Dir      Directive
	Trailing *Comment
	Loc      SourceLocation
}

func (*DirectiveItem) isProcessedItem() {}

// TrailingLabels carries labels at end of file with no statement to attach
// to. At most one such item exists, always last.
type TrailingLabels struct {
	Labels []Label
}

func (*TrailingLabels) isProcessedItem() {}
