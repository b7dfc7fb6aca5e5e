// Package grammar holds the EBNF description of the tokenizer's lexical
// syntax and a longest-match interpreter for it.
//
// The grammar is documentation that can be checked: tests run every token
// the tokenizer produces through the production named after its kind.
package grammar

import (
	_ "embed"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/exp/ebnf"

	"github.com/dhamidi/lcss/css/tokenizer"
)

// Start is the production every other production must be reachable from.
const Start = "Stylesheet"

//go:embed css.ebnf
var source string

// Source returns the grammar text.
func Source() string {
	return source
}

// Load parses the embedded grammar.
func Load() (ebnf.Grammar, error) {
	grammar, err := ebnf.Parse("css.ebnf", strings.NewReader(source))
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	return grammar, nil
}

// Verify checks that every production is defined, reachable from Start and
// that lexical productions only reference lexical productions.
func Verify(grammar ebnf.Grammar) error {
	return ebnf.Verify(grammar, Start)
}

// Production returns the name of the production describing tokens of kind.
func Production(kind tokenizer.Kind) string {
	switch kind {
	case tokenizer.KindSpace:
		return "Space"
	case tokenizer.KindWord:
		return "Word"
	case tokenizer.KindString:
		return "String"
	case tokenizer.KindComment:
		return "Comment"
	case tokenizer.KindAtWord:
		return "AtWord"
	case tokenizer.KindBrackets:
		return "Brackets"
	case tokenizer.KindBadBracket:
		return "BadBracket"
	case tokenizer.KindControl:
		return "Control"
	}
	return ""
}

type memoKey struct {
	name   string
	offset int
}

// Matcher matches text against productions of a grammar. Alternatives take
// the longest match and repetitions are greedy; there is no backtracking
// into a repetition once it has consumed input.
type Matcher struct {
	grammar  ebnf.Grammar
	input    string
	memo     map[memoKey]int  // match length, -1 = no match
	visiting map[memoKey]bool // left recursion guard
}

func NewMatcher(grammar ebnf.Grammar) *Matcher {
	return &Matcher{grammar: grammar}
}

// Match returns the length of the longest prefix of text matched by the
// named production, or -1 when it does not match at all.
func (m *Matcher) Match(production, text string) int {
	m.input = text
	m.memo = make(map[memoKey]int)
	m.visiting = make(map[memoKey]bool)
	return m.matchName(production, 0)
}

// Matches reports whether the production matches all of text.
func (m *Matcher) Matches(production, text string) bool {
	return m.Match(production, text) == len(text)
}

// Mismatch is a token whose content is not described by the production of
// its kind.
type Mismatch struct {
	Token      tokenizer.Token
	Production string
	Matched    int
}

func (mm Mismatch) String() string {
	return fmt.Sprintf("%s does not match %s (matched %d of %d bytes)",
		mm.Token, mm.Production, mm.Matched, len(mm.Token.Content))
}

// Check returns the tokens whose content the grammar does not describe.
func (m *Matcher) Check(tokens []tokenizer.Token) []Mismatch {
	var mismatches []Mismatch
	for _, tok := range tokens {
		name := Production(tok.Kind)
		if n := m.Match(name, tok.Content); n != len(tok.Content) {
			mismatches = append(mismatches, Mismatch{Token: tok, Production: name, Matched: n})
		}
	}
	return mismatches
}

// Lexeme is one token found by Scan.
type Lexeme struct {
	Kind   string
	Text   string
	Offset int
}

// Scan splits text into lexemes by trying every token production at each
// offset and taking the longest match. Bytes no production matches become
// single-byte lexemes of kind "ERROR".
func (m *Matcher) Scan(text string) []Lexeme {
	var lexemes []Lexeme
	for offset := 0; offset < len(text); {
		kind, n := m.longest(text[offset:])
		if n <= 0 {
			kind, n = "ERROR", 1
		}
		lexemes = append(lexemes, Lexeme{Kind: kind, Text: text[offset : offset+n], Offset: offset})
		offset += n
	}
	return lexemes
}

func (m *Matcher) longest(text string) (string, int) {
	var bestKind string
	bestLen := 0
	for name, prod := range m.grammar {
		if prod.Expr == nil || name == Start || !isToken(name) {
			continue
		}
		n := m.Match(name, text)
		// Ties go to the alphabetically first name so Scan is deterministic.
		if n > bestLen || (n == bestLen && n > 0 && name < bestKind) {
			bestKind, bestLen = name, n
		}
	}
	return bestKind, bestLen
}

func isToken(name string) bool {
	return name != "" && name[0] >= 'A' && name[0] <= 'Z'
}

func (m *Matcher) match(expr ebnf.Expression, offset int) int {
	switch e := expr.(type) {
	case *ebnf.Token:
		if strings.HasPrefix(m.input[offset:], e.String) {
			return len(e.String)
		}
		return -1

	case *ebnf.Range:
		return m.matchRange(e.Begin.String, e.End.String, offset)

	case ebnf.Sequence:
		total := 0
		for _, item := range e {
			n := m.match(item, offset+total)
			if n < 0 {
				return -1
			}
			total += n
		}
		return total

	case ebnf.Alternative:
		best := -1
		for _, alt := range e {
			if n := m.match(alt, offset); n > best {
				best = n
			}
		}
		return best

	case *ebnf.Repetition:
		total := 0
		for {
			n := m.match(e.Body, offset+total)
			if n <= 0 {
				break
			}
			total += n
		}
		return total

	case *ebnf.Option:
		return max(m.match(e.Body, offset), 0)

	case *ebnf.Group:
		return m.match(e.Body, offset)

	case *ebnf.Name:
		return m.matchName(e.String, offset)
	}
	return -1
}

func (m *Matcher) matchName(name string, offset int) int {
	key := memoKey{name: name, offset: offset}
	if n, ok := m.memo[key]; ok {
		return n
	}
	if m.visiting[key] {
		return -1
	}
	prod, ok := m.grammar[name]
	if !ok || prod.Expr == nil {
		m.memo[key] = -1
		return -1
	}

	m.visiting[key] = true
	n := m.match(prod.Expr, offset)
	delete(m.visiting, key)

	m.memo[key] = n
	return n
}

func (m *Matcher) matchRange(begin, end string, offset int) int {
	if offset >= len(m.input) {
		return -1
	}
	lo, _ := utf8.DecodeRuneInString(begin)
	hi, _ := utf8.DecodeRuneInString(end)
	r, size := utf8.DecodeRuneInString(m.input[offset:])
	if r == utf8.RuneError && size <= 1 {
		// Invalid UTF-8 is matched byte by byte, as the non-ASCII range.
		if hi >= utf8.RuneSelf && lo <= utf8.RuneSelf {
			return 1
		}
		return -1
	}
	if r >= lo && r <= hi {
		return size
	}
	return -1
}
