package plugin

import (
	"strings"

	"github.com/mazznoer/csscolorparser"

	"github.com/dhamidi/lcss/css/ast"
	"github.com/dhamidi/lcss/css/input"
	"github.com/dhamidi/lcss/css/syntax"
)

// Color is a color literal found in a declaration value.
type Color struct {
	Prop  string
	Text  string
	Range input.Range
	Value csscolorparser.Color
}

var colorFunctions = map[string]bool{
	"rgb": true, "rgba": true,
	"hsl": true, "hsla": true,
	"hwb": true, "hwba": true,
	"hsv": true, "hsva": true,
	"lab": true, "lch": true,
	"oklab": true, "oklch": true,
}

// Colors returns the color literals of every declaration below root in
// source order: hex colors, named colors and color functions.
func Colors(root *syntax.Node) []Color {
	var colors []Color
	for n := range root.Descendants() {
		decl, ok := ast.Cast(n).(ast.Decl)
		if !ok {
			continue
		}
		value := decl.ValueNode()
		if value == nil {
			continue
		}
		var tokens []*syntax.Token
		for el := range value.ChildrenWithTokens() {
			if tok, ok := el.(*syntax.Token); ok {
				tokens = append(tokens, tok)
			}
		}
		colors = append(colors, valueColors(decl.Prop(), tokens)...)
	}
	return colors
}

func valueColors(prop string, tokens []*syntax.Token) []Color {
	var colors []Color
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if tok.Kind() != syntax.KindWord {
			continue
		}
		text := tok.Text()
		last := i

		switch {
		case colorFunctions[strings.ToLower(text)] && i+1 < len(tokens):
			next := tokens[i+1]
			switch next.Kind() {
			case syntax.KindBrackets:
				last = i + 1
			case syntax.KindBadBracket:
				// Arguments with a "/" are split into separate tokens.
				for j := i + 2; j < len(tokens); j++ {
					if tokens[j].Kind() == syntax.KindCloseParen {
						last = j
						break
					}
				}
			}
			if last == i {
				continue
			}
			var sb strings.Builder
			for _, t := range tokens[i : last+1] {
				sb.WriteString(t.Text())
			}
			text = sb.String()
		case strings.HasPrefix(text, "#"):
		case isColorName(text):
		default:
			continue
		}

		parsed, err := csscolorparser.Parse(text)
		if err != nil {
			log.Debugf("not a color: %q: %s", text, err)
			continue
		}
		colors = append(colors, Color{
			Prop:  prop,
			Text:  text,
			Range: input.Range{Start: tok.TextRange().Start, End: tokens[last].TextRange().End},
			Value: parsed,
		})
		i = last
	}
	return colors
}

// isColorName reports whether s could be a named color. Words made only of
// hex digits are rejected since the color parser reads them as hex colors.
func isColorName(s string) bool {
	hexOnly := true
	for _, ch := range s {
		switch {
		case ch >= 'a' && ch <= 'f', ch >= 'A' && ch <= 'F':
		case ch >= 'g' && ch <= 'z', ch >= 'G' && ch <= 'Z':
			hexOnly = false
		default:
			return false
		}
	}
	return s != "" && !hexOnly
}
