//go:build cgo

package parser

import (
	"testing"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_css "github.com/tree-sitter/tree-sitter-css/bindings/go"

	"github.com/dhamidi/lcss/css/syntax"
)

const crossCheckCSS = `/* header */
@import url("base.css");
body { margin: 0; padding: 0 }
a:hover, a:focus { color: #ff0000 !important; }
@media screen and (min-width: 480px) {
  .card { border: 1px solid black; background: url(img.png) }
}
#main > ul li { padding: 5px }
`

func countTreeSitter(node *sitter.Node, counts map[string]int) {
	if node == nil {
		return
	}
	counts[node.Kind()]++
	for i := uint(0); i < node.ChildCount(); i++ {
		countTreeSitter(node.Child(i), counts)
	}
}

// TestTreeSitterAgreement compares rule and declaration counts against
// the tree-sitter CSS grammar for well-formed input.
func TestTreeSitterAgreement(t *testing.T) {
	ts := sitter.NewParser()
	defer ts.Close()
	if err := ts.SetLanguage(sitter.NewLanguage(tree_sitter_css.Language())); err != nil {
		t.Fatalf("SetLanguage: %v", err)
	}
	tree := ts.Parse([]byte(crossCheckCSS), nil)
	if tree == nil {
		t.Fatal("tree-sitter returned no tree")
	}
	defer tree.Close()

	want := map[string]int{}
	countTreeSitter(tree.RootNode(), want)

	root, err := Parse(crossCheckCSS)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got := map[syntax.Kind]int{}
	for n := range root.Descendants() {
		got[n.Kind()]++
	}

	if got[syntax.KindRule] != want["rule_set"] {
		t.Errorf("rules = %d, tree-sitter rule_set = %d", got[syntax.KindRule], want["rule_set"])
	}
	if got[syntax.KindDecl] != want["declaration"] {
		t.Errorf("declarations = %d, tree-sitter declaration = %d", got[syntax.KindDecl], want["declaration"])
	}
	if got[syntax.KindComment] != want["comment"] {
		t.Errorf("comments = %d, tree-sitter comment = %d", got[syntax.KindComment], want["comment"])
	}
	if got[syntax.KindImportant] != want["important"] {
		t.Errorf("important = %d, tree-sitter important = %d", got[syntax.KindImportant], want["important"])
	}
}
