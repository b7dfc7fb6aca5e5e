package tokenizer

import "fmt"

type Kind int

const (
	KindWord Kind = iota
	KindSpace
	KindString
	KindComment
	KindAtWord
	KindBrackets
	KindControl
	KindBadBracket
)

var kindNames = map[Kind]string{
	KindWord:       "Word",
	KindSpace:      "Space",
	KindString:     "String",
	KindComment:    "Comment",
	KindAtWord:     "AtWord",
	KindBrackets:   "Brackets",
	KindControl:    "Control",
	KindBadBracket: "BadBracket",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// ControlKind identifies the punctuation of a KindControl token.
type ControlKind int

const (
	ControlNone ControlKind = iota
	ControlOpenCurly
	ControlCloseCurly
	ControlColon
	ControlSemicolon
	ControlOpenSquare
	ControlCloseSquare
	ControlCloseParentheses
)

var controlChars = map[ControlKind]string{
	ControlOpenCurly:        "{",
	ControlCloseCurly:       "}",
	ControlColon:            ":",
	ControlSemicolon:        ";",
	ControlOpenSquare:       "[",
	ControlCloseSquare:      "]",
	ControlCloseParentheses: ")",
}

func (c ControlKind) String() string {
	if ch, ok := controlChars[c]; ok {
		return ch
	}
	return ""
}

func controlKind(ch byte) ControlKind {
	switch ch {
	case '{':
		return ControlOpenCurly
	case '}':
		return ControlCloseCurly
	case ':':
		return ControlColon
	case ';':
		return ControlSemicolon
	case '[':
		return ControlOpenSquare
	case ']':
		return ControlCloseSquare
	case ')':
		return ControlCloseParentheses
	}
	return ControlNone
}

// Token is one lexical unit. Content is always the exact source slice
// css[Pos:Next+1]; Next is the offset of the last consumed byte.
//
// A BadBracket token is an opening parenthesis that could not be matched
// into a Brackets token; its Content is "(" and Next equals Pos.
type Token struct {
	Kind    Kind
	Control ControlKind
	Content string
	Pos     int
	Next    int
}

// Is reports whether tok is the control token c.
func (tok Token) Is(c ControlKind) bool {
	return tok.Kind == KindControl && tok.Control == c
}

// IsTrivia reports whether tok is whitespace or a comment.
func (tok Token) IsTrivia() bool {
	return tok.Kind == KindSpace || tok.Kind == KindComment
}

// End returns the offset one past the last byte of the token.
func (tok Token) End() int {
	return tok.Next + 1
}

func (tok Token) String() string {
	if tok.Kind == KindControl {
		return fmt.Sprintf("%s(%s)@%d", tok.Kind, tok.Control, tok.Pos)
	}
	return fmt.Sprintf("%s@%d..%d: %q", tok.Kind, tok.Pos, tok.Next, tok.Content)
}
