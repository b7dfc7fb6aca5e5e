package format

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/lcss/css/input"
	"github.com/dhamidi/lcss/css/parser"
	"github.com/dhamidi/lcss/css/tokenizer"
)

func TestTreeEncoder(t *testing.T) {
	root, err := parser.Parse("a{b:c}")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewTreeEncoder(&buf).Encode(root))

	want := `Root@0..6
  Rule@0..6
    Selector@0..1
      Word@0..1 "a"
    OpenCurly@1..2 "{"
    Decl@2..5
      Prop@2..3
        Word@2..3 "b"
      Colon@3..4 ":"
      Value@4..5
        Word@4..5 "c"
    CloseCurly@5..6 "}"
`
	assert.Equal(t, want, buf.String())
}

func TestJSONEncoder(t *testing.T) {
	css := "a {\n}"
	root, err := parser.Parse(css)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewJSONEncoder(&buf, input.New(css, "")).Encode(root))

	var got jsonElement
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "Root", got.Kind)
	assert.Equal(t, [2]int{0, 5}, got.Range)
	require.Len(t, got.Children, 1)

	rule := got.Children[0]
	assert.Equal(t, "Rule", rule.Kind)
	require.Len(t, rule.Children, 5)
	closing := rule.Children[4]
	assert.Equal(t, "CloseCurly", closing.Kind)
	require.NotNil(t, closing.Text)
	assert.Equal(t, "}", *closing.Text)
	require.NotNil(t, closing.Span)
	assert.Equal(t, jsonPosition{Line: 2, Column: 1}, closing.Span.Start)
}

func TestASTJSONEncoder(t *testing.T) {
	root, err := parser.Parse("/* c */ @media x { a { b: c !important } }")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewASTJSONEncoder(&buf).Encode(root))

	var got astJSONNode
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "root", got.Type)
	require.Len(t, got.Nodes, 2)
	assert.Equal(t, "comment", got.Nodes[0].Type)
	assert.Equal(t, " c ", got.Nodes[0].Text)

	media := got.Nodes[1]
	assert.Equal(t, "atrule", media.Type)
	assert.Equal(t, "media", media.Name)
	assert.Equal(t, "x", media.Params)
	require.Len(t, media.Nodes, 1)

	rule := media.Nodes[0]
	assert.Equal(t, "a", rule.Selector)
	require.Len(t, rule.Nodes, 1)
	assert.Equal(t, &astJSONNode{Type: "decl", Start: 23, End: 38, Prop: "b", Value: "c", Important: true}, rule.Nodes[0])
}

func TestLineEncoder(t *testing.T) {
	css := "a{\n b}"
	tokens, err := tokenizer.Tokenize(css, false)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewLineEncoder(&buf, input.New(css, "")).Encode(tokens))
	want := "Word\t0\t0\t1:1\t\"a\"\n" +
		"{\t1\t1\t1:2\t\"{\"\n" +
		"Space\t2\t3\t1:3\t\"\\n \"\n" +
		"Word\t4\t4\t2:2\t\"b\"\n" +
		"}\t5\t5\t2:3\t\"}\"\n"
	assert.Equal(t, want, buf.String())
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	for _, name := range Names() {
		assert.NotNil(t, New(name, &buf, nil), name)
	}
	assert.Nil(t, New("yaml", &buf, nil))
}

func TestDiff(t *testing.T) {
	tests := []struct {
		before, after string
	}{
		{"a { b: c }", "a{b:c}"},
		{"a{b:c}", "a { b: c }"},
		{"color: red", "color: blue"},
		{"", "x"},
		{"x", ""},
	}
	for _, tt := range tests {
		edits := Diff(tt.before, tt.after)
		assert.NotEmpty(t, edits, "%q -> %q", tt.before, tt.after)
		assert.Equal(t, tt.after, Apply(tt.before, edits), "%q -> %q", tt.before, tt.after)
		assert.NotEmpty(t, Patch(tt.before, tt.after))
	}

	assert.Nil(t, Diff("same", "same"))
	assert.Empty(t, Patch("same", "same"))
}
