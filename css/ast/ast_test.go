package ast

import (
	"slices"
	"testing"

	"github.com/dhamidi/lcss/css/parser"
	"github.com/dhamidi/lcss/css/syntax"
)

func mustParse(t *testing.T, css string) Root {
	t.Helper()
	root, err := parser.Parse(css)
	if err != nil {
		t.Fatalf("Parse(%q): %v", css, err)
	}
	return Cast(root).(Root)
}

func TestCast(t *testing.T) {
	root := mustParse(t, "a{b:c}")

	tests := []struct {
		kind syntax.Kind
		want string
	}{
		{syntax.KindRoot, "ast.Root"},
		{syntax.KindRule, "ast.Rule"},
		{syntax.KindDecl, "ast.Decl"},
		{syntax.KindSelector, "<nil>"},
	}
	for _, tt := range tests {
		var node *syntax.Node
		for n := range root.Syntax().Descendants() {
			if n.Kind() == tt.kind {
				node = n
				break
			}
		}
		got := "<nil>"
		switch Cast(node).(type) {
		case Root:
			got = "ast.Root"
		case Rule:
			got = "ast.Rule"
		case Decl:
			got = "ast.Decl"
		}
		if got != tt.want {
			t.Errorf("Cast(%s) = %s, want %s", tt.kind, got, tt.want)
		}
	}
	if Cast(nil) != nil {
		t.Error("Cast(nil) should be nil")
	}
}

func TestRuleAndDecl(t *testing.T) {
	root := mustParse(t, "a > b , c { color : red !important ; --x: { y } ; margin: 0 }")

	rules := slices.Collect(root.Nodes())
	if len(rules) != 1 {
		t.Fatalf("got %d top-level nodes, want 1", len(rules))
	}
	rule := rules[0].(Rule)
	if got := rule.Selector(); got != "a > b , c" {
		t.Errorf("Selector() = %q", got)
	}
	if !rule.Closed() {
		t.Error("rule should be closed")
	}
	if rule.OwnSemicolon() {
		t.Error("rule should not own a semicolon")
	}

	var decls []Decl
	for n := range rule.Nodes() {
		decls = append(decls, n.(Decl))
	}
	if len(decls) != 3 {
		t.Fatalf("got %d declarations, want 3", len(decls))
	}

	tests := []struct {
		prop      string
		value     string
		important bool
		custom    bool
	}{
		{"color", "red", true, false},
		{"--x", "{ y }", false, true},
		{"margin", "0", false, false},
	}
	for i, tt := range tests {
		d := decls[i]
		if d.Prop() != tt.prop {
			t.Errorf("decl %d Prop() = %q, want %q", i, d.Prop(), tt.prop)
		}
		if d.Value() != tt.value {
			t.Errorf("decl %d Value() = %q, want %q", i, d.Value(), tt.value)
		}
		if d.Important() != tt.important {
			t.Errorf("decl %d Important() = %v, want %v", i, d.Important(), tt.important)
		}
		if d.IsCustomProperty() != tt.custom {
			t.Errorf("decl %d IsCustomProperty() = %v, want %v", i, d.IsCustomProperty(), tt.custom)
		}
	}
}

func TestRuleSemicolon(t *testing.T) {
	root := mustParse(t, "a{} ;b{}")
	rules := slices.Collect(root.Nodes())
	if len(rules) != 2 {
		t.Fatalf("got %d nodes, want 2", len(rules))
	}

	first := rules[0].(Rule)
	if !first.OwnSemicolon() || first.Semicolon() != " ;" {
		t.Errorf("first rule Semicolon() = %q, want %q", first.Semicolon(), " ;")
	}
	if rules[1].(Rule).OwnSemicolon() {
		t.Error("second rule should not own a semicolon")
	}
}

func TestAtRule(t *testing.T) {
	root := mustParse(t, "@import url(a.css) print;\n@media screen and (color) { a {} }\n@font-face{}")

	var got []AtRule
	for n := range root.Nodes() {
		got = append(got, n.(AtRule))
	}
	if len(got) != 3 {
		t.Fatalf("got %d at-rules, want 3", len(got))
	}

	tests := []struct {
		name    string
		params  string
		hasBody bool
		nodes   int
	}{
		{"import", "url(a.css) print", false, 0},
		{"media", "screen and (color)", true, 1},
		{"font-face", "", true, 0},
	}
	for i, tt := range tests {
		a := got[i]
		if a.Name() != tt.name {
			t.Errorf("at-rule %d Name() = %q, want %q", i, a.Name(), tt.name)
		}
		if a.Params() != tt.params {
			t.Errorf("at-rule %d Params() = %q, want %q", i, a.Params(), tt.params)
		}
		if a.HasBody() != tt.hasBody {
			t.Errorf("at-rule %d HasBody() = %v, want %v", i, a.HasBody(), tt.hasBody)
		}
		if n := len(slices.Collect(a.Nodes())); n != tt.nodes {
			t.Errorf("at-rule %d has %d nodes, want %d", i, n, tt.nodes)
		}
	}
}

func TestCommentAndUnknown(t *testing.T) {
	root := mustParse(t, "/* hello */ foo;")
	nodes := slices.Collect(root.Nodes())
	if len(nodes) != 2 {
		t.Fatalf("got %d nodes, want 2", len(nodes))
	}
	if c := nodes[0].(Comment); c.Text() != " hello " {
		t.Errorf("Comment.Text() = %q", c.Text())
	}
	if u := nodes[1].(Unknown); u.Text() != "foo;" {
		t.Errorf("Unknown.Text() = %q", u.Text())
	}
}

func TestComments(t *testing.T) {
	root := mustParse(t, "@import url(x.css) /* a */;\nb /* b */ { c /* c */: d /* d */; }\n/* e */")

	var got []string
	for tok := range Comments(root) {
		got = append(got, tok.Text())
	}
	want := []string{"/* a */", "/* b */", "/* c */", "/* d */", "/* e */"}
	if !slices.Equal(got, want) {
		t.Errorf("Comments = %v, want %v", got, want)
	}

	var nodes int
	Walk(root, func(n Node) bool {
		if _, ok := n.(Comment); ok {
			nodes++
		}
		return true
	})
	if nodes != 1 {
		t.Errorf("Walk found %d Comment nodes, want 1", nodes)
	}
}

func TestWalk(t *testing.T) {
	root := mustParse(t, "@media x { a { b: c } d { e: f } }\ng { h: i }")

	var visited []string
	Walk(root, func(n Node) bool {
		visited = append(visited, n.Syntax().Kind().String())
		return true
	})
	want := []string{"Root", "AtRule", "Rule", "Decl", "Rule", "Decl", "Rule", "Decl"}
	if !slices.Equal(visited, want) {
		t.Errorf("Walk visited %v, want %v", visited, want)
	}

	visited = nil
	Walk(root, func(n Node) bool {
		visited = append(visited, n.Syntax().Kind().String())
		_, isAtRule := n.(AtRule)
		return !isAtRule
	})
	want = []string{"Root", "AtRule", "Rule", "Decl"}
	if !slices.Equal(visited, want) {
		t.Errorf("Walk with pruning visited %v, want %v", visited, want)
	}
}
