package format

import (
	"encoding/json"
	"io"
	"iter"

	"github.com/dhamidi/lcss/css/ast"
	"github.com/dhamidi/lcss/css/syntax"
)

// ASTJSONEncoder writes the structured view of a stylesheet: rules,
// at-rules, declarations and comments without trivia.
type ASTJSONEncoder struct {
	w io.Writer
}

func NewASTJSONEncoder(w io.Writer) *ASTJSONEncoder {
	return &ASTJSONEncoder{w: w}
}

func (e *ASTJSONEncoder) Encode(root *syntax.Node) error {
	text, err := e.MarshalText(root)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *ASTJSONEncoder) MarshalText(root *syntax.Node) ([]byte, error) {
	return json.MarshalIndent(nodeToJSON(ast.Cast(root)), "", "  ")
}

type astJSONNode struct {
	Type      string         `json:"type"`
	Start     int            `json:"start"`
	End       int            `json:"end"`
	Selector  string         `json:"selector,omitempty"`
	Name      string         `json:"name,omitempty"`
	Params    string         `json:"params,omitempty"`
	Prop      string         `json:"prop,omitempty"`
	Value     string         `json:"value,omitempty"`
	Important bool           `json:"important,omitempty"`
	Text      string         `json:"text,omitempty"`
	Nodes     []*astJSONNode `json:"nodes,omitempty"`
}

func nodeToJSON(n ast.Node) *astJSONNode {
	if n == nil {
		return nil
	}
	r := n.Syntax().TextRange()
	jn := &astJSONNode{Start: r.Start, End: r.End}

	switch n := n.(type) {
	case ast.Root:
		jn.Type = "root"
		jn.Nodes = nodesToJSON(n.Nodes())
	case ast.Rule:
		jn.Type = "rule"
		jn.Selector = n.Selector()
		jn.Nodes = nodesToJSON(n.Nodes())
	case ast.AtRule:
		jn.Type = "atrule"
		jn.Name = n.Name()
		jn.Params = n.Params()
		jn.Nodes = nodesToJSON(n.Nodes())
	case ast.Decl:
		jn.Type = "decl"
		jn.Prop = n.Prop()
		jn.Value = n.Value()
		jn.Important = n.Important()
	case ast.Comment:
		jn.Type = "comment"
		jn.Text = n.Text()
	case ast.Unknown:
		jn.Type = "unknown"
		jn.Text = n.Text()
	}
	return jn
}

func nodesToJSON(seq iter.Seq[ast.Node]) []*astJSONNode {
	var nodes []*astJSONNode
	for n := range seq {
		nodes = append(nodes, nodeToJSON(n))
	}
	return nodes
}
