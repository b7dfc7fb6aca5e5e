package workspace

import (
	"cmp"
	"iter"
	"slices"
	"unicode/utf8"

	"github.com/mazznoer/csscolorparser"

	"github.com/dhamidi/lcss/css/ast"
	"github.com/dhamidi/lcss/css/input"
	"github.com/dhamidi/lcss/css/syntax"
	"github.com/dhamidi/lcss/plugin"
)

// Point is a zero-based line and UTF-16 character offset, the way editors
// address text.
type Point struct {
	Line      uint32
	Character uint32
}

type Span struct {
	Start Point
	End   Point
}

// Point converts a byte offset into f to a Point.
func (f *File) Point(offset int) Point {
	pos := f.Input.Position(offset)
	lineStart := pos.Offset - (pos.Column - 1)
	var units uint32
	for _, r := range f.Input.CSS()[lineStart:pos.Offset] {
		units++
		if r >= 0x10000 {
			units++
		}
	}
	return Point{Line: uint32(pos.Line - 1), Character: units}
}

func (f *File) Span(r input.Range) Span {
	return Span{Start: f.Point(r.Start), End: f.Point(r.End)}
}

// Offset converts a Point back to a byte offset, clamped to the line.
func (f *File) Offset(p Point) int {
	css := f.Input.CSS()
	offset := 0
	for line := uint32(0); line < p.Line; line++ {
		next := nextLine(css, offset)
		if next == offset {
			break
		}
		offset = next
	}
	for units := uint32(0); units < p.Character && offset < len(css); {
		r, size := utf8.DecodeRuneInString(css[offset:])
		if r == '\n' || r == '\r' {
			break
		}
		offset += size
		units++
		if r >= 0x10000 {
			units++
		}
	}
	return offset
}

func nextLine(css string, offset int) int {
	for i := offset; i < len(css); i++ {
		switch css[i] {
		case '\n':
			return i + 1
		case '\r':
			if i+1 < len(css) && css[i+1] == '\n' {
				return i + 2
			}
			return i + 1
		}
	}
	return offset
}

type SymbolKind int

const (
	SymbolRule SymbolKind = iota
	SymbolAtRule
	SymbolDecl
)

// Symbol is an outline entry: a rule, at-rule or declaration.
type Symbol struct {
	Name      string
	Detail    string
	Kind      SymbolKind
	Span      Span
	Selection Span
	Children  []Symbol
}

// Symbols returns the outline of f.
func (f *File) Symbols() []Symbol {
	return f.symbols(ast.Cast(f.Root).(ast.Root).Nodes())
}

func (f *File) symbols(nodes iter.Seq[ast.Node]) []Symbol {
	var symbols []Symbol
	for n := range nodes {
		sym := Symbol{Span: f.Span(n.Syntax().TextRange())}
		switch n := n.(type) {
		case ast.Rule:
			sym.Kind = SymbolRule
			sym.Name = n.Selector()
			if sym.Name == "" {
				sym.Name = "{}"
			}
			sym.Selection = sym.Span
			if sel := n.Syntax().FirstChildOfKind(syntax.KindSelector); sel != nil {
				sym.Selection = f.Span(sel.TextRange())
			}
			sym.Children = f.symbols(n.Nodes())
		case ast.AtRule:
			sym.Kind = SymbolAtRule
			sym.Name = "@" + n.Name()
			sym.Detail = n.Params()
			sym.Selection = sym.Span
			if at := n.Syntax().FirstTokenOfKind(syntax.KindAtWord); at != nil {
				sym.Selection = f.Span(at.TextRange())
			}
			sym.Children = f.symbols(n.Nodes())
		case ast.Decl:
			sym.Kind = SymbolDecl
			sym.Name = n.Prop()
			sym.Detail = n.Value()
			if n.Important() {
				sym.Detail += " !important"
			}
			sym.Selection = sym.Span
			if prop := n.Syntax().FirstChildOfKind(syntax.KindProp); prop != nil {
				sym.Selection = f.Span(prop.TextRange())
			}
		default:
			continue
		}
		symbols = append(symbols, sym)
	}
	return symbols
}

// Fold is a foldable line region: a block or a multi-line comment.
type Fold struct {
	StartLine uint32
	EndLine   uint32
	Comment   bool
}

// Folds returns the foldable regions of f ordered by start line. Comments
// fold wherever they are, including inside selectors and values.
func (f *File) Folds() []Fold {
	var folds []Fold
	for n := range f.Root.Descendants() {
		if n.Kind() != syntax.KindRule && n.Kind() != syntax.KindAtRule {
			continue
		}
		open := n.FirstTokenOfKind(syntax.KindOpenCurly)
		if open == nil {
			continue
		}
		end := n.TextRange().End
		if closing := n.LastTokenOfKind(syntax.KindCloseCurly); closing != nil {
			end = closing.TextRange().Start
		}
		fold := Fold{StartLine: f.Point(open.TextRange().Start).Line, EndLine: f.Point(end).Line}
		if fold.EndLine > fold.StartLine {
			folds = append(folds, fold)
		}
	}
	for tok := range ast.Comments(ast.Cast(f.Root)) {
		r := tok.TextRange()
		fold := Fold{StartLine: f.Point(r.Start).Line, EndLine: f.Point(r.End).Line, Comment: true}
		if fold.EndLine > fold.StartLine {
			folds = append(folds, fold)
		}
	}
	slices.SortStableFunc(folds, func(a, b Fold) int {
		return cmp.Compare(a.StartLine, b.StartLine)
	})
	return folds
}

// ColorInfo is a color literal and where it is.
type ColorInfo struct {
	Span  Span
	Text  string
	Color csscolorparser.Color
}

func (f *File) Colors() []ColorInfo {
	var colors []ColorInfo
	for _, c := range plugin.Colors(f.Root) {
		colors = append(colors, ColorInfo{Span: f.Span(c.Range), Text: c.Text, Color: c.Value})
	}
	return colors
}

// Diagnostic is a structural fault of f.
type Diagnostic struct {
	Span    Span
	Message string
}

func (f *File) Diagnostics() []Diagnostic {
	var diags []Diagnostic
	for _, e := range f.Errors {
		end := min(e.Offset+1, f.Input.Len())
		diags = append(diags, Diagnostic{
			Span:    f.Span(input.Range{Start: e.Offset, End: end}),
			Message: e.Kind.String(),
		})
	}
	return diags
}
