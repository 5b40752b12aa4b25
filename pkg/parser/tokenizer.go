package parser

import "github.com/yaklabco/lc3kit/pkg/asm"

// tokenizer performs a single-pass tokenization of assembly content.
// Whitespace, including newlines, is not represented in the stream;
// statement boundaries fall out of the fixed operand arity per shape.
type tokenizer struct {
	content []byte
	tokens  []Token
	pos     int
}

// tokenize scans the whole input, appending a final TokEOF token.
// It never fails: any byte that does not begin a known token is reported
// later by the parser as an unexpected-token syntax error, so the scanner
// emits it as a one-byte word.
func tokenize(content []byte) []Token {
	t := &tokenizer{
		content: content,
		tokens:  make([]Token, 0, len(content)/4),
	}
	t.scan()
	t.emit(TokEOF, len(content), len(content))
	return t.tokens
}

func (t *tokenizer) scan() {
	for t.pos < len(t.content) {
		b := t.content[t.pos]
		switch {
		case b == ' ' || b == '\t' || b == '\r' || b == '\n':
			t.pos++
		case b == ';':
			t.scanComment()
		case b == ',':
			t.emit(TokComma, t.pos, t.pos+1)
			t.pos++
		case b == ':':
			t.emit(TokColon, t.pos, t.pos+1)
			t.pos++
		case b == '"':
			t.scanString()
		case b == '.':
			t.scanDirective()
		case b == '#' || b == '-' || isDigit(b):
			t.scanNumber()
		case isWordStart(b):
			t.scanWord()
		default:
			// Unknown byte: surface it to the parser as a degenerate word.
			t.emit(TokWord, t.pos, t.pos+1)
			t.pos++
		}
	}
}

// scanComment consumes from ';' to end of line, newline excluded.
func (t *tokenizer) scanComment() {
	start := t.pos
	for t.pos < len(t.content) && t.content[t.pos] != '\n' {
		t.pos++
	}
	t.emit(TokComment, start, t.pos)
}

// scanString consumes a double-quoted literal with backslash escapes.
// An unterminated string runs to end of line; the span still covers what
// was consumed so diagnostics point at the opening quote.
func (t *tokenizer) scanString() {
	start := t.pos
	t.pos++ // opening quote
	for t.pos < len(t.content) && t.content[t.pos] != '\n' {
		if t.content[t.pos] == '\\' && t.pos+1 < len(t.content) {
			t.pos += 2
			continue
		}
		if t.content[t.pos] == '"' {
			t.pos++
			break
		}
		t.pos++
	}
	t.emit(TokString, start, t.pos)
}

// scanDirective consumes '.' plus the following word as one token.
func (t *tokenizer) scanDirective() {
	start := t.pos
	t.pos++ // marker
	for t.pos < len(t.content) && isWordByte(t.content[t.pos]) {
		t.pos++
	}
	t.emit(TokDirective, start, t.pos)
}

// scanNumber consumes '#'?-prefixed, optionally negative decimal digits.
func (t *tokenizer) scanNumber() {
	start := t.pos
	if t.content[t.pos] == '#' {
		t.pos++
	}
	if t.pos < len(t.content) && t.content[t.pos] == '-' {
		t.pos++
	}
	for t.pos < len(t.content) && isDigit(t.content[t.pos]) {
		t.pos++
	}
	t.emit(TokNumber, start, t.pos)
}

// scanWord consumes an identifier-shaped word.
func (t *tokenizer) scanWord() {
	start := t.pos
	for t.pos < len(t.content) && isWordByte(t.content[t.pos]) {
		t.pos++
	}
	t.emit(TokWord, start, t.pos)
}

func (t *tokenizer) emit(kind TokenKind, start, end int) {
	t.tokens = append(t.tokens, Token{
		Kind: kind,
		Span: asm.Span{Start: start, End: end},
	})
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isWordStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isWordByte(b byte) bool {
	return isWordStart(b) || isDigit(b)
}
