package syntax

import "strings"

// GreenElement is an immutable, position-independent tree element.
// Green elements know their width but not their offset, so identical
// subtrees may be shared between trees and between parents.
type GreenElement interface {
	Kind() Kind
	Width() int
	writeTo(sb *strings.Builder)
}

type GreenToken struct {
	kind Kind
	text string
}

func NewGreenToken(kind Kind, text string) *GreenToken {
	return &GreenToken{kind: kind, text: text}
}

func (t *GreenToken) Kind() Kind { return t.kind }
func (t *GreenToken) Width() int { return len(t.text) }
func (t *GreenToken) Text() string { return t.text }

func (t *GreenToken) writeTo(sb *strings.Builder) {
	sb.WriteString(t.text)
}

type GreenNode struct {
	kind     Kind
	width    int
	children []GreenElement
}

// NewGreenNode builds a node over children. The slice is retained.
func NewGreenNode(kind Kind, children ...GreenElement) *GreenNode {
	width := 0
	for _, c := range children {
		width += c.Width()
	}
	return &GreenNode{kind: kind, width: width, children: children}
}

func (n *GreenNode) Kind() Kind { return n.kind }
func (n *GreenNode) Width() int { return n.width }

// Children returns the node's children. The slice must not be modified.
func (n *GreenNode) Children() []GreenElement {
	return n.children
}

func (n *GreenNode) Text() string {
	var sb strings.Builder
	sb.Grow(n.width)
	n.writeTo(&sb)
	return sb.String()
}

func (n *GreenNode) writeTo(sb *strings.Builder) {
	for _, c := range n.children {
		c.writeTo(sb)
	}
}
