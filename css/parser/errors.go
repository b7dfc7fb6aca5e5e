package parser

import (
	"errors"
	"fmt"

	"github.com/dhamidi/lcss/css/input"
)

// ErrStructural is the root of every nesting fault reported by the parser.
var ErrStructural = errors.New("structural error")

type ErrorKind int

const (
	// UnexpectedClose is a "}" with no open block.
	UnexpectedClose ErrorKind = iota
	// UnclosedBlock is a rule or at-rule body still open at end of input.
	UnclosedBlock
	// UnclosedBracket is a "(" or "[" still open at end of a declaration.
	UnclosedBracket
)

var errorMessages = map[ErrorKind]string{
	UnexpectedClose: "Unexpected }",
	UnclosedBlock:   "Unclosed block",
	UnclosedBracket: "Unclosed bracket",
}

func (k ErrorKind) String() string {
	return errorMessages[k]
}

type Error struct {
	Kind     ErrorKind
	Offset   int
	Position input.Position
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %d", e.Kind, e.Offset)
}

func (e *Error) Unwrap() error {
	return ErrStructural
}
