// Package tokenizer splits CSS source into a lossless token stream.
//
// Every byte of the input belongs to exactly one token and tokens are
// produced in source order, so concatenating their contents reproduces
// the input. The tokenizer is deliberately coarse: it does not validate
// CSS, it only finds the boundaries the parser needs.
package tokenizer

import (
	"io"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/lcss/css/input"
)

var log = commonlog.GetLogger("lcss.tokenizer")

type Tokenizer struct {
	in           *input.Input
	css          string
	ignoreErrors bool
	pos          int

	// lastWord is the most recent Word since the previous "(", used to
	// recognise unquoted url(...) arguments.
	lastWord string
	returned []Token
}

// New creates a tokenizer over in. With ignoreErrors set, unterminated
// strings, comments and url brackets are recovered instead of reported.
func New(in *input.Input, ignoreErrors bool) *Tokenizer {
	return &Tokenizer{
		in:           in,
		css:          in.CSS(),
		ignoreErrors: ignoreErrors,
	}
}

// Position returns the offset just past the last token consumed from the
// input. Pushed-back tokens do not move it.
func (t *Tokenizer) Position() int {
	return t.pos
}

// EndOfFile reports whether no pushed-back tokens remain and the input is
// exhausted.
func (t *Tokenizer) EndOfFile() bool {
	return len(t.returned) == 0 && t.pos >= len(t.css)
}

// Back pushes tok so the next call to NextToken returns it again.
// Pushed tokens come back in last-in, first-out order.
func (t *Tokenizer) Back(tok Token) {
	t.returned = append(t.returned, tok)
}

// NextToken returns the next token. ignoreUnclosed enables recovery for
// this call only, on top of the tokenizer-wide setting. It returns io.EOF
// once EndOfFile is true.
func (t *Tokenizer) NextToken(ignoreUnclosed bool) (Token, error) {
	if n := len(t.returned); n > 0 {
		tok := t.returned[n-1]
		t.returned = t.returned[:n-1]
		return tok, nil
	}
	if t.pos >= len(t.css) {
		return Token{}, io.EOF
	}

	ignore := t.ignoreErrors || ignoreUnclosed
	ch := t.css[t.pos]

	switch {
	case isSpace(ch):
		return t.scanSpace(), nil
	case controlKind(ch) != ControlNone:
		tok := Token{Kind: KindControl, Control: controlKind(ch), Content: t.css[t.pos : t.pos+1], Pos: t.pos, Next: t.pos}
		t.pos++
		return tok, nil
	case ch == '(':
		return t.scanBrackets(ignore)
	case ch == '\'' || ch == '"':
		return t.scanString(ignore)
	case ch == '@':
		return t.scanAtWord(), nil
	case ch == '\\':
		return t.scanBackslash(), nil
	case ch == '/' && t.peekAt(t.pos+1) == '*':
		return t.scanComment(ignore)
	default:
		return t.scanWord(), nil
	}
}

// Tokenize drains the tokenizer and returns every token.
func (t *Tokenizer) Tokenize() ([]Token, error) {
	var tokens []Token
	for !t.EndOfFile() {
		tok, err := t.NextToken(false)
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

// Tokenize is a convenience wrapper that tokenizes css in one call.
func Tokenize(css string, ignoreErrors bool) ([]Token, error) {
	return New(input.New(css, ""), ignoreErrors).Tokenize()
}

func (t *Tokenizer) peekAt(i int) byte {
	if i < 0 || i >= len(t.css) {
		return 0
	}
	return t.css[i]
}

func (t *Tokenizer) emit(kind Kind, start, next int) Token {
	tok := Token{Kind: kind, Content: t.css[start : next+1], Pos: start, Next: next}
	t.pos = next + 1
	return tok
}

func (t *Tokenizer) fail(kind ErrorKind, offset int) error {
	err := &Error{Kind: kind, Offset: offset, Position: t.in.Position(offset)}
	log.Debugf("%s: %s", err.Position, err)
	return err
}

func (t *Tokenizer) scanSpace() Token {
	next := t.pos
	for next+1 < len(t.css) && isSpace(t.css[next+1]) {
		next++
	}
	return t.emit(KindSpace, t.pos, next)
}

func (t *Tokenizer) scanBrackets(ignore bool) (Token, error) {
	start := t.pos
	prev := t.lastWord
	t.lastWord = ""

	n := t.peekAt(start + 1)
	if prev == "url" && n != '\'' && n != '"' && !isURLSpace(n) {
		next := start
		for {
			idx := strings.IndexByte(t.css[next+1:], ')')
			if idx == -1 {
				if !ignore {
					return Token{}, t.fail(UnclosedBracket, start)
				}
				next = start
				break
			}
			next += 1 + idx
			if !t.escaped(next) {
				break
			}
		}
		return t.emit(KindBrackets, start, next), nil
	}

	idx := strings.IndexByte(t.css[start+1:], ')')
	if idx == -1 || strings.ContainsAny(t.css[start+1:start+1+idx+1], "\r\n\"'(/\\") {
		return t.emit(KindBadBracket, start, start), nil
	}
	return t.emit(KindBrackets, start, start+1+idx), nil
}

func (t *Tokenizer) scanString(ignore bool) (Token, error) {
	start := t.pos
	quote := t.css[start]
	next := start
	for {
		idx := strings.IndexByte(t.css[next+1:], quote)
		if idx == -1 {
			if !ignore {
				return Token{}, t.fail(UnclosedString, start)
			}
			next = start + 1
			break
		}
		next += 1 + idx
		if !t.escaped(next) {
			break
		}
	}
	next = min(next, len(t.css)-1)
	return t.emit(KindString, start, next), nil
}

func (t *Tokenizer) scanComment(ignore bool) (Token, error) {
	start := t.pos
	idx := strings.Index(t.css[start+2:], "*/")
	if idx == -1 {
		if !ignore {
			return Token{}, t.fail(UnclosedComment, start)
		}
		return t.emit(KindComment, start, len(t.css)-1), nil
	}
	return t.emit(KindComment, start, start+2+idx+1), nil
}

func (t *Tokenizer) scanAtWord() Token {
	start := t.pos
	next := start + 1
	for next < len(t.css) {
		ch := t.css[next]
		if ch == '\\' && next+1 < len(t.css) {
			next += 2
			continue
		}
		if isAtEnd(ch) {
			break
		}
		next++
	}
	return t.emit(KindAtWord, start, next-1)
}

func (t *Tokenizer) scanBackslash() Token {
	start := t.pos
	next := start
	escape := true
	for t.peekAt(next+1) == '\\' {
		next++
		escape = !escape
	}
	if escape && next+1 < len(t.css) {
		ch := t.css[next+1]
		if ch != '/' && ch != ' ' && ch != '\n' && ch != '\t' && ch != '\r' && ch != '\f' {
			next++
			if isHex(ch) {
				for isHex(t.peekAt(next + 1)) {
					next++
				}
				if t.peekAt(next+1) == ' ' {
					next++
				}
			}
		}
	}
	return t.emit(KindWord, start, next)
}

func (t *Tokenizer) scanWord() Token {
	start := t.pos
	next := start + 1
	for next < len(t.css) {
		ch := t.css[next]
		if isWordEnd(ch) || (ch == '/' && t.peekAt(next+1) == '*') {
			break
		}
		next++
	}
	tok := t.emit(KindWord, start, next-1)
	t.lastWord = tok.Content
	return tok
}

// escaped reports whether the byte at i is preceded by an odd number of
// backslashes.
func (t *Tokenizer) escaped(i int) bool {
	escaped := false
	for p := i; p > 0 && t.css[p-1] == '\\'; p-- {
		escaped = !escaped
	}
	return escaped
}

func isSpace(ch byte) bool {
	switch ch {
	case ' ', '\t', '\n', '\r', '\f', '\x12':
		return true
	}
	return false
}

func isURLSpace(ch byte) bool {
	switch ch {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

func isAtEnd(ch byte) bool {
	switch ch {
	case ' ', '\t', '\n', '\r', '\f', '\x12',
		'"', '#', '\'', '(', ')', '/', ';', '[', '\\', ']', '{', '}':
		return true
	}
	return false
}

func isWordEnd(ch byte) bool {
	switch ch {
	case ' ', '\t', '\n', '\r', '\f', '\x12',
		'!', '"', '#', '\'', '(', ')', ':', ';', '@', '[', '\\', ']', '{', '}':
		return true
	}
	return false
}

func isHex(ch byte) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}
