package asm

import "fmt"

// TransformOptions controls the attachment transform.
type TransformOptions struct {
	// AttachInlineComments merges a comment that shares its line with the
	// preceding statement into that statement's trailing-comment slot.
	// When false every comment stays a standalone item; label attachment
	// is unaffected.
	AttachInlineComments bool
}

// Transform runs the attachment transform: a single left-to-right pass
// over the abstract program that attaches labels to the statement they
// precede, annotates every item with its resolved location, and optionally
// adopts same-line trailing comments.
//
// Labels accumulated before a statement are exposed on the statement in
// source order, first-seen label first. A label run at end of file yields
// exactly one TrailingLabels item.
func Transform(program *Program, index *LineIndex, opts TransformOptions) (*ProcessedProgram, error) {
	items, err := attachLabels(program, index)
	if err != nil {
		return nil, err
	}

	if opts.AttachInlineComments {
		items = attachInlineComments(items)
	}

	return &ProcessedProgram{Items: items}, nil
}

// attachLabels flushes pending labels onto each statement and resolves
// every item's source location. The accumulator is an order-preserving
// append-only slice drained whole on flush.
func attachLabels(program *Program, index *LineIndex) ([]ProcessedItem, error) {
	var out []ProcessedItem
	var pending []Label

	flush := func() []Label {
		if len(pending) == 0 {
			return nil
		}
		labels := pending
		pending = nil
		return labels
	}

	for _, item := range program.Items {
		switch it := item.(type) {
		case *Label:
			pending = append(pending, *it)

		case *Comment:
			loc, err := index.LocateSpan(it.Span)
			if err != nil {
				return nil, fmt.Errorf("resolve comment location: %w", err)
			}
			out = append(out, &CommentItem{Comment: *it, Loc: loc})

		case *Instruction:
			loc, err := index.LocateSpan(it.Span)
			if err != nil {
				return nil, fmt.Errorf("resolve instruction location: %w", err)
			}
			out = append(out, &InstructionItem{Labels: flush(), Instr: *it, Loc: loc})

		case *Directive:
			loc, err := index.LocateSpan(it.Span)
			if err != nil {
				return nil, fmt.Errorf("resolve directive location: %w", err)
			}
			out = append(out, &DirectiveItem{Labels: flush(), Dir: *it, Loc: loc})

		default:
			return nil, fmt.Errorf("unexpected abstract program item %T", item)
		}
	}

	if labels := flush(); labels != nil {
		out = append(out, &TrailingLabels{Labels: labels})
	}

	return out, nil
}

// attachInlineComments rewrites the sequence with a two-item sliding
// window: when a statement is immediately followed by a comment on the
// same line, the comment moves into the statement's trailing slot and the
// standalone item is dropped.
func attachInlineComments(items []ProcessedItem) []ProcessedItem {
	out := make([]ProcessedItem, 0, len(items))

	for i := 0; i < len(items); i++ {
		next, _ := peekComment(items, i+1)

		switch it := items[i].(type) {
		case *InstructionItem:
			if next != nil && next.Loc.SameLine(it.Loc) {
				it.Trailing = &next.Comment
				i++ // the comment was adopted, skip its standalone item
			}
			out = append(out, it)

		case *DirectiveItem:
			if next != nil && next.Loc.SameLine(it.Loc) {
				it.Trailing = &next.Comment
				i++
			}
			out = append(out, it)

		default:
			out = append(out, items[i])
		}
	}

	return out
}

// peekComment returns items[i] as a *CommentItem if it is one.
func peekComment(items []ProcessedItem, i int) (*CommentItem, bool) {
	if i >= len(items) {
		return nil, false
	}
	c, ok := items[i].(*CommentItem)
	return c, ok
}
