package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/lcss/css/input"
	"github.com/dhamidi/lcss/css/syntax"
	"github.com/dhamidi/lcss/css/tokenizer"
)

// LineEncoder writes one tab-separated line per token:
//
//	kind	pos	next	line:col	"content"
type LineEncoder struct {
	w  io.Writer
	in *input.Input
}

func NewLineEncoder(w io.Writer, in *input.Input) *LineEncoder {
	return &LineEncoder{w: w, in: in}
}

func (e *LineEncoder) Encode(tokens []tokenizer.Token) error {
	text, err := e.MarshalText(tokens)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText(tokens []tokenizer.Token) ([]byte, error) {
	var sb strings.Builder
	for _, tok := range tokens {
		kind := tok.Kind.String()
		if tok.Kind == tokenizer.KindControl {
			kind = tok.Control.String()
		}
		var pos input.Position
		if e.in != nil {
			pos = e.in.Position(tok.Pos)
		}
		fmt.Fprintf(&sb, "%s\t%d\t%d\t%d:%d\t%q\n", kind, tok.Pos, tok.Next, pos.Line, pos.Column, tok.Content)
	}
	return []byte(sb.String()), nil
}

// TreeEncoder writes an indented dump of the tree, one element per line:
//
//	Rule@0..10
//	  Selector@0..1
//	    Word@0..1 "a"
type TreeEncoder struct {
	w io.Writer
}

func NewTreeEncoder(w io.Writer) *TreeEncoder {
	return &TreeEncoder{w: w}
}

func (e *TreeEncoder) Encode(root *syntax.Node) error {
	text, err := e.MarshalText(root)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TreeEncoder) MarshalText(root *syntax.Node) ([]byte, error) {
	var sb strings.Builder
	writeTree(&sb, root, 0)
	return []byte(sb.String()), nil
}

func writeTree(sb *strings.Builder, el syntax.Element, depth int) {
	r := el.TextRange()
	sb.WriteString(strings.Repeat("  ", depth))
	fmt.Fprintf(sb, "%s@%d..%d", el.Kind(), r.Start, r.End)
	switch el := el.(type) {
	case *syntax.Token:
		fmt.Fprintf(sb, " %q\n", el.Text())
	case *syntax.Node:
		sb.WriteString("\n")
		for child := range el.ChildrenWithTokens() {
			writeTree(sb, child, depth+1)
		}
	}
}

// CSSEncoder writes the tree back as source text.
type CSSEncoder struct {
	w io.Writer
}

func NewCSSEncoder(w io.Writer) *CSSEncoder {
	return &CSSEncoder{w: w}
}

func (e *CSSEncoder) Encode(root *syntax.Node) error {
	_, err := io.WriteString(e.w, root.String())
	return err
}
