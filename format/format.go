// Package format renders syntax trees and token streams.
package format

import (
	"io"

	"github.com/dhamidi/lcss/css/input"
	"github.com/dhamidi/lcss/css/syntax"
)

// Encoder writes a syntax tree in some output format.
type Encoder interface {
	Encode(root *syntax.Node) error
}

// New returns the encoder registered under name, or nil.
func New(name string, w io.Writer, in *input.Input) Encoder {
	switch name {
	case "json":
		return NewJSONEncoder(w, in)
	case "ast":
		return NewASTJSONEncoder(w)
	case "tree":
		return NewTreeEncoder(w)
	case "css":
		return NewCSSEncoder(w)
	}
	return nil
}

// Names lists the encoders New knows about.
func Names() []string {
	return []string{"css", "tree", "json", "ast"}
}
