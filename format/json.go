package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/lcss/css/input"
	"github.com/dhamidi/lcss/css/syntax"
)

// JSONEncoder writes the full concrete syntax tree, tokens included.
type JSONEncoder struct {
	w  io.Writer
	in *input.Input
}

// NewJSONEncoder returns an encoder writing to w. When in is not nil every
// element also carries its line and column span.
func NewJSONEncoder(w io.Writer, in *input.Input) *JSONEncoder {
	return &JSONEncoder{w: w, in: in}
}

func (e *JSONEncoder) Encode(root *syntax.Node) error {
	text, err := e.MarshalText(root)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *JSONEncoder) MarshalText(root *syntax.Node) ([]byte, error) {
	return json.MarshalIndent(e.element(root), "", "  ")
}

type jsonElement struct {
	Kind     string         `json:"kind"`
	Range    [2]int         `json:"range"`
	Span     *jsonSpan      `json:"span,omitempty"`
	Text     *string        `json:"text,omitempty"`
	Children []*jsonElement `json:"children,omitempty"`
}

type jsonSpan struct {
	Start jsonPosition `json:"start"`
	End   jsonPosition `json:"end"`
}

type jsonPosition struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (e *JSONEncoder) element(el syntax.Element) *jsonElement {
	r := el.TextRange()
	je := &jsonElement{
		Kind:  el.Kind().String(),
		Range: [2]int{r.Start, r.End},
	}
	if e.in != nil {
		start, end := e.in.Position(r.Start), e.in.Position(r.End)
		je.Span = &jsonSpan{
			Start: jsonPosition{Line: start.Line, Column: start.Column},
			End:   jsonPosition{Line: end.Line, Column: end.Column},
		}
	}

	switch el := el.(type) {
	case *syntax.Token:
		text := el.Text()
		je.Text = &text
	case *syntax.Node:
		for child := range el.ChildrenWithTokens() {
			je.Children = append(je.Children, e.element(child))
		}
	}
	return je
}
