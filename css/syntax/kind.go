package syntax

import "github.com/dhamidi/lcss/css/tokenizer"

type Kind uint16

const (
	// Tokens
	KindSpace Kind = iota
	KindWord
	KindString
	KindCommentText
	KindAtWord
	KindBrackets
	KindBadBracket
	KindOpenCurly
	KindCloseCurly
	KindColon
	KindSemicolon
	KindOpenSquare
	KindCloseSquare
	KindCloseParen

	// Nodes
	KindRoot
	KindRule
	KindSelector
	KindAtRule
	KindParams
	KindDecl
	KindProp
	KindValue
	KindImportant
	KindComment
	KindUnknown
)

var kindNames = map[Kind]string{
	KindSpace:       "Space",
	KindWord:        "Word",
	KindString:      "String",
	KindCommentText: "CommentText",
	KindAtWord:      "AtWord",
	KindBrackets:    "Brackets",
	KindBadBracket:  "BadBracket",
	KindOpenCurly:   "OpenCurly",
	KindCloseCurly:  "CloseCurly",
	KindColon:       "Colon",
	KindSemicolon:   "Semicolon",
	KindOpenSquare:  "OpenSquare",
	KindCloseSquare: "CloseSquare",
	KindCloseParen:  "CloseParen",
	KindRoot:        "Root",
	KindRule:        "Rule",
	KindSelector:    "Selector",
	KindAtRule:      "AtRule",
	KindParams:      "Params",
	KindDecl:        "Decl",
	KindProp:        "Prop",
	KindValue:       "Value",
	KindImportant:   "Important",
	KindComment:     "Comment",
	KindUnknown:     "Unknown",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Invalid"
}

// KindFromString is the inverse of Kind.String.
func KindFromString(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

// IsToken reports whether k is a leaf kind.
func (k Kind) IsToken() bool {
	return k < KindRoot
}

// IsTrivia reports whether k is whitespace or a comment.
func (k Kind) IsTrivia() bool {
	return k == KindSpace || k == KindCommentText || k == KindComment
}

// TokenKind maps a tokenizer token onto its CST kind.
func TokenKind(tok tokenizer.Token) Kind {
	switch tok.Kind {
	case tokenizer.KindSpace:
		return KindSpace
	case tokenizer.KindString:
		return KindString
	case tokenizer.KindComment:
		return KindCommentText
	case tokenizer.KindAtWord:
		return KindAtWord
	case tokenizer.KindBrackets:
		return KindBrackets
	case tokenizer.KindBadBracket:
		return KindBadBracket
	case tokenizer.KindControl:
		switch tok.Control {
		case tokenizer.ControlOpenCurly:
			return KindOpenCurly
		case tokenizer.ControlCloseCurly:
			return KindCloseCurly
		case tokenizer.ControlColon:
			return KindColon
		case tokenizer.ControlSemicolon:
			return KindSemicolon
		case tokenizer.ControlOpenSquare:
			return KindOpenSquare
		case tokenizer.ControlCloseSquare:
			return KindCloseSquare
		case tokenizer.ControlCloseParentheses:
			return KindCloseParen
		}
	}
	return KindWord
}
