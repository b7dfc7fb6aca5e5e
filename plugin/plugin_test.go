package plugin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/lcss/css/input"
	"github.com/dhamidi/lcss/css/parser"
	"github.com/dhamidi/lcss/css/syntax"
)

const sample = `@media screen and (min-width: 480px) {
    body, .result {
        background-color: lightgreen;
    }
}

#main {
    border: 1px solid black;
}
`

func mustParse(t *testing.T, css string) *syntax.Node {
	t.Helper()
	root, err := parser.Parse(css)
	require.NoError(t, err)
	return root
}

func TestReverse(t *testing.T) {
	tests := []struct {
		css  string
		want string
	}{
		{"a{color:red}", "a{roloc:red}"},
		{"a { --x: y; b : c }", "a { x--: y; b : c }"},
		{"a{héllo:x}", "a{olléh:x}"},
		{"@media x { a { ab: c } }", "@media x { a { ba: c } }"},
		{"/* color: red */", "/* color: red */"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Reverse(mustParse(t, tt.css)), tt.css)
	}

	root := mustParse(t, sample)
	reversed := Reverse(root)
	assert.Contains(t, reversed, "roloc-dnuorgkcab: lightgreen;")
	assert.Contains(t, reversed, "redrob: 1px solid black;")
	assert.Equal(t, sample, root.String())
}

func TestRemoveSpace(t *testing.T) {
	root := mustParse(t, sample)
	want := "@mediascreenand(min-width: 480px){body,.result{background-color:lightgreen;}}#main{border:1pxsolidblack;}"
	assert.Equal(t, want, RemoveSpace(root))
	assert.Equal(t, sample, root.String())
}

func TestRemoveSpaceMut(t *testing.T) {
	root := mustParse(t, sample)
	tree := root.CloneForUpdate()

	removed := RemoveSpaceMut(tree.Root())
	assert.Positive(t, removed)
	assert.Equal(t, RemoveSpace(root), tree.String())
	assert.Equal(t, RemoveSpace(root), tree.Freeze().String())
	assert.Zero(t, RemoveSpaceMut(tree.Root()))

	assert.Equal(t, sample, root.String(), "original tree must not change")
}

func TestColors(t *testing.T) {
	css := `a {
  color: #ff0000;
  background: url(x.png) lightgreen;
  border: 1px solid rgba(0, 0, 255, 0.5);
  outline-color: hsl(120deg 100% 50% / 0.5) !important;
  --brand: rgb(1,2,3);
  margin: 0 auto;
  content: "red";
  font-family: bad, face;
}`
	root := mustParse(t, css)
	colors := Colors(root)

	var texts, props []string
	for _, c := range colors {
		texts = append(texts, c.Text)
		props = append(props, c.Prop)
		assert.Equal(t, c.Text, css[c.Range.Start:c.Range.End])
	}
	assert.Equal(t, []string{"#ff0000", "lightgreen", "rgba(0, 0, 255, 0.5)", "hsl(120deg 100% 50% / 0.5)", "rgb(1,2,3)"}, texts)
	assert.Equal(t, []string{"color", "background", "border", "outline-color", "--brand"}, props)

	red := colors[0].Value
	assert.Equal(t, "#ff0000", red.HexString())
	assert.InDelta(t, 0.5, colors[2].Value.A, 0.001)

	pos := input.New(css, "").Position(colors[0].Range.Start)
	assert.Equal(t, 2, pos.Line)
	assert.Equal(t, 10, pos.Column)
}
