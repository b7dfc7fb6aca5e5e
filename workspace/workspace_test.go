package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/lcss/config"
	"github.com/dhamidi/lcss/css/parser"
)

func newWorkspace(t *testing.T) *Workspace {
	t.Helper()
	cfg := config.Default()
	cfg.RootDir = t.TempDir()
	ws, err := New(cfg)
	require.NoError(t, err)
	return ws
}

func TestUpdateFile(t *testing.T) {
	ws := newWorkspace(t)
	f := ws.UpdateFile("a.css", "a { color: red }")
	assert.Equal(t, "a { color: red }", f.Root.String())
	assert.Empty(t, f.Errors)
	assert.Same(t, f, ws.GetFile("a.css"))

	ws.UpdateFile("a.css", "b {}")
	assert.Equal(t, "b {}", ws.GetFile("a.css").Root.String())

	ws.RemoveFile("a.css")
	assert.Nil(t, ws.GetFile("a.css"))
}

func TestUpdateFileSharesTrees(t *testing.T) {
	ws := newWorkspace(t)
	a := ws.UpdateFile("a.css", "\n}")
	b := ws.UpdateFile("b.css", "\n}")

	assert.Same(t, a.Root, b.Root)
	require.Len(t, a.Errors, 1)
	require.Len(t, b.Errors, 1)
	assert.Equal(t, parser.UnexpectedClose, b.Errors[0].Kind)
	assert.Equal(t, "b.css", b.Errors[0].Position.File)
	assert.Equal(t, 2, b.Errors[0].Position.Line)
	assert.Equal(t, "a.css", a.Errors[0].Position.File)
}

func TestStrictWorkspace(t *testing.T) {
	cfg := config.Default()
	cfg.Strict = true
	ws, err := New(cfg)
	require.NoError(t, err)

	f := ws.UpdateFile("a.css", "a { b: c")
	require.Len(t, f.Errors, 1)
	assert.Equal(t, parser.UnclosedBlock, f.Errors[0].Kind)
}

func TestScanAll(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{
		"a.css":                "a {}",
		"sub/b.css":            "b {}",
		"node_modules/x/c.css": "c {}",
		"notes.txt":            "not css",
	} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	cfg, err := config.LoadFrom(dir)
	require.NoError(t, err)
	ws, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, ws.ScanAll())

	var paths []string
	for _, f := range ws.Files() {
		paths = append(paths, cfg.Rel(f.Path))
	}
	assert.Equal(t, []string{"a.css", filepath.Join("sub", "b.css")}, paths)
}

func TestPointAndOffset(t *testing.T) {
	ws := newWorkspace(t)
	f := ws.UpdateFile("a.css", "a{}\r\n/* 😀 */ b{}")

	tests := []struct {
		offset int
		point  Point
	}{
		{0, Point{0, 0}},
		{3, Point{0, 3}},
		{5, Point{1, 0}},
		{8, Point{1, 3}},
		{12, Point{1, 5}},
		{17, Point{1, 10}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.point, f.Point(tt.offset), "offset %d", tt.offset)
		assert.Equal(t, tt.offset, f.Offset(tt.point), "point %v", tt.point)
	}

	assert.Equal(t, 3, f.Offset(Point{0, 40}), "clamped to the line")
	assert.Equal(t, 5, f.Offset(Point{1, 0}))
}

func TestSymbols(t *testing.T) {
	ws := newWorkspace(t)
	f := ws.UpdateFile("a.css", "@media screen {\n  a, b {\n    color: red !important;\n  }\n}\n{ x: y }")

	symbols := f.Symbols()
	require.Len(t, symbols, 2)

	media := symbols[0]
	assert.Equal(t, "@media", media.Name)
	assert.Equal(t, "screen", media.Detail)
	assert.Equal(t, SymbolAtRule, media.Kind)
	assert.Equal(t, Span{Point{0, 0}, Point{0, 6}}, media.Selection)
	require.Len(t, media.Children, 1)

	rule := media.Children[0]
	assert.Equal(t, "a, b", rule.Name)
	assert.Equal(t, SymbolRule, rule.Kind)
	assert.Equal(t, Point{1, 2}, rule.Span.Start)
	require.Len(t, rule.Children, 1)

	decl := rule.Children[0]
	assert.Equal(t, "color", decl.Name)
	assert.Equal(t, "red !important", decl.Detail)
	assert.Equal(t, SymbolDecl, decl.Kind)
	assert.Equal(t, Span{Point{2, 4}, Point{2, 9}}, decl.Selection)

	assert.Equal(t, "{}", symbols[1].Name)
}

func TestFolds(t *testing.T) {
	ws := newWorkspace(t)
	f := ws.UpdateFile("a.css", "/*\n note\n*/\na {\n  b: c;\n}\nd { e: f }\n")

	assert.Equal(t, []Fold{
		{StartLine: 0, EndLine: 2, Comment: true},
		{StartLine: 3, EndLine: 5},
	}, f.Folds())
}

func TestFoldsInlineComments(t *testing.T) {
	ws := newWorkspace(t)
	f := ws.UpdateFile("a.css", "a {\n  b: c /*\n   note\n  */;\n}\n@import url(x.css) /*\n*/;")

	assert.Equal(t, []Fold{
		{StartLine: 0, EndLine: 4},
		{StartLine: 1, EndLine: 3, Comment: true},
		{StartLine: 5, EndLine: 6, Comment: true},
	}, f.Folds())
}

func TestColors(t *testing.T) {
	ws := newWorkspace(t)
	f := ws.UpdateFile("a.css", "a {\n  color: #00ff00;\n}")

	colors := f.Colors()
	require.Len(t, colors, 1)
	assert.Equal(t, "#00ff00", colors[0].Text)
	assert.Equal(t, Span{Point{1, 9}, Point{1, 16}}, colors[0].Span)
	assert.InDelta(t, 1.0, colors[0].Color.G, 0.001)
}

func TestDiagnostics(t *testing.T) {
	ws := newWorkspace(t)
	f := ws.UpdateFile("a.css", "a {}\n}")

	diags := f.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, "Unexpected }", diags[0].Message)
	assert.Equal(t, Span{Point{1, 0}, Point{1, 1}}, diags[0].Span)
}

func TestUriToPath(t *testing.T) {
	path, err := uriToPath("file:///tmp/styles/a%20b.css")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/styles/a b.css", path)

	path, err = uriToPath("/plain/path.css")
	require.NoError(t, err)
	assert.Equal(t, "/plain/path.css", path)
}

func TestLSPHandlers(t *testing.T) {
	dir := t.TempDir()
	ls := NewLSPServer("test", config.Default())
	root := dir
	_, err := ls.initialize(nil, &protocol.InitializeParams{RootPath: &root})
	require.NoError(t, err)
	assert.Equal(t, dir, ls.workspace.RootDir())

	uri := "file://" + filepath.Join(dir, "a.css")
	require.NoError(t, ls.textDocumentDidOpen(nil, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, Text: "a {\n  color: red;\n}"},
	}))

	result, err := ls.textDocumentDocumentSymbol(nil, &protocol.DocumentSymbolParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)
	symbols := result.([]protocol.DocumentSymbol)
	require.Len(t, symbols, 1)
	assert.Equal(t, "a", symbols[0].Name)
	assert.Equal(t, protocol.SymbolKindClass, symbols[0].Kind)
	require.Len(t, symbols[0].Children, 1)
	assert.Equal(t, protocol.SymbolKindProperty, symbols[0].Children[0].Kind)

	folds, err := ls.textDocumentFoldingRange(nil, &protocol.FoldingRangeParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)
	require.Len(t, folds, 1)
	assert.Equal(t, protocol.UInteger(0), folds[0].StartLine)
	assert.Equal(t, protocol.UInteger(2), folds[0].EndLine)

	colors, err := ls.textDocumentColor(nil, &protocol.DocumentColorParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)
	require.Len(t, colors, 1)
	assert.InDelta(t, 1.0, float64(colors[0].Color.Red), 0.001)

	presentations, err := ls.textDocumentColorPresentation(nil, &protocol.ColorPresentationParams{
		Color: protocol.Color{Red: 1, Alpha: 1},
	})
	require.NoError(t, err)
	require.NotEmpty(t, presentations)
	assert.Equal(t, "#ff0000", presentations[0].Label)
}
