package tokenizer

import (
	"errors"
	"fmt"

	"github.com/dhamidi/lcss/css/input"
)

// ErrLexical is the root of every error the tokenizer reports.
var ErrLexical = errors.New("lexical error")

var (
	ErrUnclosedString  = fmt.Errorf("%w: unclosed string", ErrLexical)
	ErrUnclosedComment = fmt.Errorf("%w: unclosed comment", ErrLexical)
	ErrUnclosedBracket = fmt.Errorf("%w: unclosed bracket", ErrLexical)
)

type ErrorKind int

const (
	UnclosedString ErrorKind = iota
	UnclosedComment
	UnclosedBracket
)

func (k ErrorKind) String() string {
	switch k {
	case UnclosedString:
		return "string"
	case UnclosedComment:
		return "comment"
	case UnclosedBracket:
		return "bracket"
	}
	return "token"
}

// Error is returned in strict mode when a string, comment or url(...)
// bracket runs off the end of the input.
type Error struct {
	Kind     ErrorKind
	Offset   int
	Position input.Position
}

func (e *Error) Error() string {
	return fmt.Sprintf("Unclosed %s at %d", e.Kind, e.Offset)
}

func (e *Error) Unwrap() error {
	switch e.Kind {
	case UnclosedString:
		return ErrUnclosedString
	case UnclosedComment:
		return ErrUnclosedComment
	case UnclosedBracket:
		return ErrUnclosedBracket
	}
	return ErrLexical
}
