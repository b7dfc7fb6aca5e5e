// Package ast provides typed accessors over syntax tree nodes.
//
// Only comments that stand between statements become Comment nodes.
// Comments inside a statement (in a selector, around a colon, inside a
// value or after at-rule params) stay CommentText tokens of that
// statement, so they never show up in Walk. Comments yields both kinds.
//
// The wrappers hold no state of their own; every accessor reads the
// underlying *syntax.Node, so they are as cheap to create as the node
// handles themselves.
package ast

import (
	"iter"
	"strings"

	"github.com/dhamidi/lcss/css/syntax"
)

// Node is implemented by every structured wrapper.
type Node interface {
	Syntax() *syntax.Node
}

type Root struct{ node *syntax.Node }
type Rule struct{ node *syntax.Node }
type AtRule struct{ node *syntax.Node }
type Decl struct{ node *syntax.Node }
type Comment struct{ node *syntax.Node }
type Unknown struct{ node *syntax.Node }

func (r Root) Syntax() *syntax.Node { return r.node }
func (r Rule) Syntax() *syntax.Node { return r.node }
func (a AtRule) Syntax() *syntax.Node { return a.node }
func (d Decl) Syntax() *syntax.Node { return d.node }
func (c Comment) Syntax() *syntax.Node { return c.node }
func (u Unknown) Syntax() *syntax.Node { return u.node }

// Cast wraps n in its structured type, or returns nil when n is not one
// of Root, Rule, AtRule, Decl, Comment or Unknown.
func Cast(n *syntax.Node) Node {
	if n == nil {
		return nil
	}
	switch n.Kind() {
	case syntax.KindRoot:
		return Root{n}
	case syntax.KindRule:
		return Rule{n}
	case syntax.KindAtRule:
		return AtRule{n}
	case syntax.KindDecl:
		return Decl{n}
	case syntax.KindComment:
		return Comment{n}
	case syntax.KindUnknown:
		return Unknown{n}
	}
	return nil
}

// nodes yields the structured children of a container node.
func nodes(n *syntax.Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for child := range n.Children() {
			if node := Cast(child); node != nil && !yield(node) {
				return
			}
		}
	}
}

// Walk visits n and every structured node below it depth-first. Returning
// false from fn skips the children of that node.
func Walk(n Node, fn func(Node) bool) {
	if !fn(n) {
		return
	}
	for child := range nodes(n.Syntax()) {
		Walk(child, fn)
	}
}

func (r Root) Nodes() iter.Seq[Node] {
	return nodes(r.node)
}

// Selector returns the raw selector text.
func (r Rule) Selector() string {
	if sel := r.node.FirstChildOfKind(syntax.KindSelector); sel != nil {
		return sel.Text()
	}
	return ""
}

func (r Rule) Nodes() iter.Seq[Node] {
	return nodes(r.node)
}

// Closed reports whether the block ends with "}".
func (r Rule) Closed() bool {
	return r.node.FirstTokenOfKind(syntax.KindCloseCurly) != nil
}

// OwnSemicolon reports whether a free ";" after the block was folded into
// the rule.
func (r Rule) OwnSemicolon() bool {
	return r.Semicolon() != ""
}

// Semicolon returns the trivia and ";" that follow the closing brace, or
// the empty string when the rule owns no semicolon.
func (r Rule) Semicolon() string {
	var sb strings.Builder
	closed := false
	for el := range r.node.ChildrenWithTokens() {
		switch {
		case el.Kind() == syntax.KindCloseCurly:
			closed = true
		case closed:
			sb.WriteString(el.Text())
		}
	}
	if !strings.HasSuffix(sb.String(), ";") {
		return ""
	}
	return sb.String()
}

// Name returns the at-rule name without the leading "@".
func (a AtRule) Name() string {
	if tok := a.node.FirstTokenOfKind(syntax.KindAtWord); tok != nil {
		return strings.TrimPrefix(tok.Text(), "@")
	}
	return ""
}

func (a AtRule) Params() string {
	if params := a.node.FirstChildOfKind(syntax.KindParams); params != nil {
		return params.Text()
	}
	return ""
}

func (a AtRule) HasBody() bool {
	return a.node.FirstTokenOfKind(syntax.KindOpenCurly) != nil
}

func (a AtRule) Nodes() iter.Seq[Node] {
	return nodes(a.node)
}

func (d Decl) Prop() string {
	if prop := d.node.FirstChildOfKind(syntax.KindProp); prop != nil {
		return prop.Text()
	}
	return ""
}

// Value returns the value text without a trailing !important.
func (d Decl) Value() string {
	value := d.ValueNode()
	if value == nil {
		return ""
	}
	var sb strings.Builder
	for el := range value.ChildrenWithTokens() {
		if el.Kind() != syntax.KindImportant {
			sb.WriteString(el.Text())
		}
	}
	return strings.TrimRight(sb.String(), " \t\r\n\f")
}

func (d Decl) ValueNode() *syntax.Node {
	return d.node.FirstChildOfKind(syntax.KindValue)
}

func (d Decl) Important() bool {
	value := d.ValueNode()
	return value != nil && value.FirstChildOfKind(syntax.KindImportant) != nil
}

// IsCustomProperty reports whether the property starts with "--".
func (d Decl) IsCustomProperty() bool {
	return strings.HasPrefix(d.Prop(), "--")
}

// Text returns the comment body between "/*" and "*/".
func (c Comment) Text() string {
	text := c.node.Text()
	text = strings.TrimPrefix(text, "/*")
	return strings.TrimSuffix(text, "*/")
}

// Comments yields the token of every comment below n in source order,
// both statement-level Comment nodes and comments inside statements.
func Comments(n Node) iter.Seq[*syntax.Token] {
	return func(yield func(*syntax.Token) bool) {
		for tok := range n.Syntax().Tokens() {
			if tok.Kind() == syntax.KindCommentText && !yield(tok) {
				return
			}
		}
	}
}

func (u Unknown) Text() string {
	return u.node.Text()
}
