// Package plugin holds small tree transformations written purely against
// the traversal and mutation API of package syntax.
package plugin

import (
	"strings"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/lcss/css/syntax"
)

var log = commonlog.GetLogger("lcss.plugin")

// Reverse serializes root with the text of every property name reversed
// character by character. Everything else is copied unchanged.
func Reverse(root *syntax.Node) string {
	var sb strings.Builder
	sb.Grow(root.TextRange().Len())
	reverse(root, &sb)
	return sb.String()
}

func reverse(n *syntax.Node, sb *strings.Builder) {
	for el := range n.ChildrenWithTokens() {
		switch el := el.(type) {
		case *syntax.Node:
			if el.Kind() == syntax.KindProp {
				sb.WriteString(reverseRunes(el.Text()))
				continue
			}
			reverse(el, sb)
		case *syntax.Token:
			sb.WriteString(el.Text())
		}
	}
}

func reverseRunes(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

// RemoveSpace serializes root without its whitespace tokens. The tree is
// not modified.
func RemoveSpace(root *syntax.Node) string {
	var sb strings.Builder
	for tok := range root.Tokens() {
		if tok.Kind() != syntax.KindSpace {
			sb.WriteString(tok.Text())
		}
	}
	return sb.String()
}

// RemoveSpaceMut detaches every whitespace token below el.
func RemoveSpaceMut(el syntax.MutElement) int {
	removed := 0
	for child := range el.ChildrenWithTokens() {
		if child.Kind() == syntax.KindSpace {
			child.Detach()
			removed++
			continue
		}
		if !child.IsToken() {
			removed += RemoveSpaceMut(child)
		}
	}
	return removed
}
