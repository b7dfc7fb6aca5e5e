// Package syntax implements the lossless concrete syntax tree.
//
// Trees are stored as green elements (kind, text or children, width) that
// carry no positions and can be shared freely. Node and Token are cheap
// handles over green elements that add a parent and an absolute offset;
// they are created on the fly while iterating and compare by content, not
// identity. Every byte of the source belongs to exactly one token, so
// Text of any node is the exact source slice it spans.
//
// Immutable trees are safe for concurrent reads. CloneForUpdate produces a
// MutableTree for structural edits.
package syntax

import (
	"iter"
	"strings"

	"github.com/dhamidi/lcss/css/input"
)

// Element is either a *Node or a *Token.
type Element interface {
	Kind() Kind
	TextRange() input.Range
	Text() string
	Parent() *Node
	Green() GreenElement
	isElement()
}

type Node struct {
	green  *GreenNode
	parent *Node
	offset int
	index  int
}

// NewRoot returns a handle on green positioned at offset 0.
func NewRoot(green *GreenNode) *Node {
	return &Node{green: green}
}

func (n *Node) isElement() {}

func (n *Node) Kind() Kind { return n.green.kind }
func (n *Node) Green() GreenElement { return n.green }
func (n *Node) GreenNode() *GreenNode { return n.green }
func (n *Node) Parent() *Node { return n.parent }

// Index is the position of n among its parent's children.
func (n *Node) Index() int { return n.index }

func (n *Node) TextRange() input.Range {
	return input.Range{Start: n.offset, End: n.offset + n.green.width}
}

// Text reconstructs the exact source text spanned by n.
func (n *Node) Text() string {
	return n.green.Text()
}

func (n *Node) String() string {
	return n.Text()
}

func (n *Node) child(i, offset int) Element {
	switch g := n.green.children[i].(type) {
	case *GreenNode:
		return &Node{green: g, parent: n, offset: offset, index: i}
	case *GreenToken:
		return &Token{green: g, parent: n, offset: offset, index: i}
	}
	return nil
}

// ChildrenWithTokens yields the direct children of n in source order.
func (n *Node) ChildrenWithTokens() iter.Seq[Element] {
	return func(yield func(Element) bool) {
		offset := n.offset
		for i, c := range n.green.children {
			if !yield(n.child(i, offset)) {
				return
			}
			offset += c.Width()
		}
	}
}

// Children yields the direct child nodes of n, skipping tokens.
func (n *Node) Children() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for el := range n.ChildrenWithTokens() {
			if child, ok := el.(*Node); ok {
				if !yield(child) {
					return
				}
			}
		}
	}
}

// Descendants yields n and every node below it in preorder.
func (n *Node) Descendants() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		n.descend(yield)
	}
}

func (n *Node) descend(yield func(*Node) bool) bool {
	if !yield(n) {
		return false
	}
	for child := range n.Children() {
		if !child.descend(yield) {
			return false
		}
	}
	return true
}

// Tokens yields every token below n in source order.
func (n *Node) Tokens() iter.Seq[*Token] {
	return func(yield func(*Token) bool) {
		n.tokens(yield)
	}
}

func (n *Node) tokens(yield func(*Token) bool) bool {
	for el := range n.ChildrenWithTokens() {
		switch el := el.(type) {
		case *Token:
			if !yield(el) {
				return false
			}
		case *Node:
			if !el.tokens(yield) {
				return false
			}
		}
	}
	return true
}

func (n *Node) FirstChildOfKind(kind Kind) *Node {
	for child := range n.Children() {
		if child.Kind() == kind {
			return child
		}
	}
	return nil
}

func (n *Node) ChildrenOfKind(kind Kind) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for child := range n.Children() {
			if child.Kind() == kind && !yield(child) {
				return
			}
		}
	}
}

func (n *Node) FirstTokenOfKind(kind Kind) *Token {
	for el := range n.ChildrenWithTokens() {
		if tok, ok := el.(*Token); ok && tok.Kind() == kind {
			return tok
		}
	}
	return nil
}

// LastTokenOfKind returns the last direct token child of the given kind.
func (n *Node) LastTokenOfKind(kind Kind) *Token {
	var last *Token
	for el := range n.ChildrenWithTokens() {
		if tok, ok := el.(*Token); ok && tok.Kind() == kind {
			last = tok
		}
	}
	return last
}

// TrimmedText returns Text with leading and trailing trivia tokens removed.
func (n *Node) TrimmedText() string {
	var sb strings.Builder
	var pending strings.Builder
	for tok := range n.Tokens() {
		if tok.Kind().IsTrivia() {
			if sb.Len() > 0 {
				pending.WriteString(tok.Text())
			}
			continue
		}
		sb.WriteString(pending.String())
		pending.Reset()
		sb.WriteString(tok.Text())
	}
	return sb.String()
}

// CoveringElement returns the deepest element whose range contains offset.
func (n *Node) CoveringElement(offset int) Element {
	if !n.TextRange().Contains(offset) {
		return nil
	}
	for el := range n.ChildrenWithTokens() {
		if !el.TextRange().Contains(offset) {
			continue
		}
		if child, ok := el.(*Node); ok {
			return child.CoveringElement(offset)
		}
		return el
	}
	return n
}

// Ancestors yields the parents of n from the innermost outwards.
func (n *Node) Ancestors() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for p := n.parent; p != nil; p = p.parent {
			if !yield(p) {
				return
			}
		}
	}
}

type Token struct {
	green  *GreenToken
	parent *Node
	offset int
	index  int
}

func (t *Token) isElement() {}

func (t *Token) Kind() Kind { return t.green.kind }
func (t *Token) Green() GreenElement { return t.green }
func (t *Token) Parent() *Node { return t.parent }
func (t *Token) Index() int { return t.index }
func (t *Token) Text() string { return t.green.text }
func (t *Token) String() string { return t.green.text }

func (t *Token) TextRange() input.Range {
	return input.Range{Start: t.offset, End: t.offset + len(t.green.text)}
}
