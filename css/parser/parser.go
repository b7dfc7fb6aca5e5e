// Package parser builds a lossless syntax tree from CSS source.
//
// The parser is a single pass over the token stream driven by a stack of
// construction frames (root, rule body, at-rule). Every token ends up in
// the tree, so the root always serializes back to the input. Nesting
// faults are collected as *Error values; with WithStrict a block or
// bracket still open at end of input is reported too, otherwise it is
// closed implicitly.
package parser

import (
	"slices"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/lcss/css/input"
	"github.com/dhamidi/lcss/css/syntax"
	"github.com/dhamidi/lcss/css/tokenizer"
)

type Option func(*Parser)

// WithFile names the source in positions when the input has no name.
func WithFile(path string) Option {
	return func(p *Parser) {
		p.file = path
	}
}

// WithStrict reports blocks and brackets left open at end of input.
func WithStrict() Option {
	return func(p *Parser) {
		p.strict = true
	}
}

func WithLogger(log commonlog.Logger) Option {
	return func(p *Parser) {
		p.log = log
	}
}

type greenKey struct {
	kind syntax.Kind
	text string
}

type Parser struct {
	file   string
	strict bool
	log    commonlog.Logger

	input *input.Input
	tz    *tokenizer.Tokenizer

	stack  []*frame
	trivia []tokenizer.Token
	buffer []tokenizer.Token

	// closers is the stack of expected closing punctuation for open
	// brackets; bracketAt is the offset of the outermost one.
	closers   []tokenizer.ControlKind
	bracketAt int

	colon          bool
	customProperty bool

	interned map[greenKey]*syntax.GreenToken
	root     *syntax.Node
	errors   []*Error
}

func New(in *input.Input, opts ...Option) *Parser {
	p := &Parser{
		log:      commonlog.GetLogger("lcss.parser"),
		interned: make(map[greenKey]*syntax.GreenToken),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.file != "" && in.File() == "" {
		in = input.New(in.CSS(), p.file)
	}
	p.input = in
	p.tz = tokenizer.New(in, true)
	return p
}

// Parse is shorthand for New(input.New(css, ""), opts...).Parse().
// The returned root is complete even when err is non-nil.
func Parse(css string, opts ...Option) (*syntax.Node, error) {
	p := New(input.New(css, ""), opts...)
	err := p.Parse()
	return p.Root(), err
}

func (p *Parser) Input() *input.Input {
	return p.input
}

// Root returns the tree built by Parse, or nil before Parse has run.
func (p *Parser) Root() *syntax.Node {
	return p.root
}

// Errors returns every structural fault found, in source order.
func (p *Parser) Errors() []*Error {
	return p.errors
}

// Parse consumes the whole input. It returns the first structural fault;
// the tree is built regardless.
func (p *Parser) Parse() error {
	if p.root == nil {
		p.stack = []*frame{{ctx: rootContext{}}}
		for !p.tz.EndOfFile() {
			tok, err := p.tz.NextToken(true)
			if err != nil {
				return err
			}
			p.step(tok)
		}
		p.endFile()
	}
	if len(p.errors) > 0 {
		return p.errors[0]
	}
	return nil
}

func (p *Parser) step(tok tokenizer.Token) {
	if at, ok := p.top().ctx.(*atRuleContext); ok && at.phase == phaseParams {
		p.atRuleParam(at, tok)
		return
	}
	if len(p.buffer) > 0 {
		p.other(tok)
		return
	}

	switch {
	case tok.IsTrivia():
		p.trivia = append(p.trivia, tok)
	case tok.Is(tokenizer.ControlSemicolon):
		p.freeSemicolon(tok)
	case tok.Is(tokenizer.ControlCloseCurly):
		p.end(tok)
	case tok.Is(tokenizer.ControlOpenCurly):
		p.emptyRule(tok)
	case tok.Kind == tokenizer.KindAtWord:
		p.atRule(tok)
	default:
		p.flushTrivia()
		p.colon = false
		p.customProperty = strings.HasPrefix(tok.Content, "--")
		p.other(tok)
	}
}

func (p *Parser) top() *frame {
	return p.stack[len(p.stack)-1]
}

func (p *Parser) push(ctx context) {
	p.stack = append(p.stack, &frame{ctx: ctx})
}

// pop removes the top frame and returns the new top.
func (p *Parser) pop() *frame {
	p.stack = p.stack[:len(p.stack)-1]
	return p.top()
}

func (p *Parser) fail(kind ErrorKind, offset int) {
	err := &Error{Kind: kind, Offset: offset, Position: p.input.Position(offset)}
	p.log.Debugf("%s: %s", err.Position, err)
	p.errors = append(p.errors, err)
}

// green converts tok into a green token. Punctuation and whitespace are
// shared between all occurrences.
func (p *Parser) green(tok tokenizer.Token) *syntax.GreenToken {
	kind := syntax.TokenKind(tok)
	if kind != syntax.KindSpace && tok.Kind != tokenizer.KindControl {
		return syntax.NewGreenToken(kind, tok.Content)
	}
	key := greenKey{kind: kind, text: tok.Content}
	if g, ok := p.interned[key]; ok {
		return g
	}
	g := syntax.NewGreenToken(kind, tok.Content)
	p.interned[key] = g
	return g
}

func (p *Parser) greens(tokens []tokenizer.Token) []syntax.GreenElement {
	out := make([]syntax.GreenElement, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, p.green(tok))
	}
	return out
}

// flushTrivia moves the pending trivia into the current frame. Comments
// become Comment nodes.
func (p *Parser) flushTrivia() {
	if len(p.trivia) == 0 {
		return
	}
	f := p.top()
	for _, tok := range p.trivia {
		if tok.Kind == tokenizer.KindComment {
			f.add(syntax.NewGreenNode(syntax.KindComment, p.green(tok)))
			continue
		}
		f.add(p.green(tok))
	}
	p.trivia = p.trivia[:0]
}

func (p *Parser) freeSemicolon(tok tokenizer.Token) {
	f := p.top()
	if rule, ok := f.last.(*ruleContext); ok && !rule.ownSemicolon && !hasComment(p.trivia) {
		i := len(f.children) - 1
		prev := f.children[i].(*syntax.GreenNode)
		children := slices.Concat(prev.Children(), p.greens(p.trivia), []syntax.GreenElement{p.green(tok)})
		f.children[i] = syntax.NewGreenNode(syntax.KindRule, children...)
		rule.ownSemicolon = true
		p.trivia = p.trivia[:0]
		return
	}
	p.flushTrivia()
	f.add(p.green(tok))
}

func (p *Parser) emptyRule(tok tokenizer.Token) {
	p.flushTrivia()
	p.push(&ruleContext{
		head:  []syntax.GreenElement{syntax.NewGreenNode(syntax.KindSelector), p.green(tok)},
		start: tok.Pos,
	})
}

// end closes the innermost block with the "}" tok.
func (p *Parser) end(tok tokenizer.Token) {
	p.flushTrivia()
	f := p.top()
	switch ctx := f.ctx.(type) {
	case rootContext:
		p.fail(UnexpectedClose, tok.Pos)
		f.add(p.green(tok))
	case *ruleContext:
		node := syntax.NewGreenNode(syntax.KindRule, slices.Concat(ctx.head, f.children, []syntax.GreenElement{p.green(tok)})...)
		parent := p.pop()
		parent.add(node)
		parent.last = ctx
	case *atRuleContext:
		node := syntax.NewGreenNode(syntax.KindAtRule, slices.Concat(ctx.head, f.children, []syntax.GreenElement{p.green(tok)})...)
		p.pop().add(node)
	}
}

func (p *Parser) atRule(tok tokenizer.Token) {
	p.flushTrivia()
	p.closers = p.closers[:0]
	p.push(&atRuleContext{
		head:  []syntax.GreenElement{p.green(tok)},
		phase: phaseParams,
		start: tok.Pos,
	})
}

func (p *Parser) openBracket(tok tokenizer.Token, closer tokenizer.ControlKind) {
	if len(p.closers) == 0 {
		p.bracketAt = tok.Pos
	}
	p.closers = append(p.closers, closer)
}

// closeBracket pops the bracket stack when tok is the expected closer.
func (p *Parser) closeBracket(tok tokenizer.Token) {
	if n := len(p.closers); n > 0 && tok.Is(p.closers[n-1]) {
		p.closers = p.closers[:n-1]
	}
}

func (p *Parser) atRuleParam(at *atRuleContext, tok tokenizer.Token) {
	switch {
	case tok.Kind == tokenizer.KindBadBracket:
		p.openBracket(tok, tokenizer.ControlCloseParentheses)
	case tok.Is(tokenizer.ControlOpenSquare):
		p.openBracket(tok, tokenizer.ControlCloseSquare)
	case tok.Is(tokenizer.ControlOpenCurly) && len(p.closers) > 0:
		p.openBracket(tok, tokenizer.ControlCloseCurly)
	default:
		p.closeBracket(tok)
	}

	if len(p.closers) == 0 {
		switch {
		case tok.Is(tokenizer.ControlSemicolon):
			node := syntax.NewGreenNode(syntax.KindAtRule, append(p.atRuleHead(at, true), p.green(tok))...)
			p.pop().add(node)
			return
		case tok.Is(tokenizer.ControlOpenCurly):
			at.head = append(p.atRuleHead(at, true), p.green(tok))
			at.params = nil
			at.phase = phaseBody
			return
		case tok.Is(tokenizer.ControlCloseCurly):
			p.closeBodiless(at)
			p.end(tok)
			return
		}
	}
	at.params = append(at.params, tok)
}

// atRuleHead returns the AtWord followed by the params. Trivia around the
// params stay at the AtRule level; trailing trivia is only included when
// withTrailing is set.
func (p *Parser) atRuleHead(at *atRuleContext, withTrailing bool) []syntax.GreenElement {
	lead, params, trail := splitTrivia(at.params)
	head := slices.Concat(at.head, p.greens(lead))
	if len(params) > 0 {
		head = append(head, syntax.NewGreenNode(syntax.KindParams, p.greens(params)...))
	}
	if withTrailing {
		head = append(head, p.greens(trail)...)
	} else {
		p.trivia = append(p.trivia, trail...)
	}
	return head
}

// closeBodiless finishes an at-rule that ended without "{" or ";". Its
// trailing trivia is handed back to the enclosing frame.
func (p *Parser) closeBodiless(at *atRuleContext) {
	if len(p.closers) > 0 {
		p.unclosedBracket()
	}
	node := syntax.NewGreenNode(syntax.KindAtRule, p.atRuleHead(at, false)...)
	p.pop().add(node)
}

func (p *Parser) unclosedBracket() {
	if p.strict {
		p.fail(UnclosedBracket, p.bracketAt)
	} else {
		p.log.Debugf("%s: closing bracket implicitly", p.input.Position(p.bracketAt))
	}
	p.closers = p.closers[:0]
}

// other feeds tok to the selector or declaration being buffered.
func (p *Parser) other(tok tokenizer.Token) {
	switch {
	case tok.Kind == tokenizer.KindBadBracket:
		p.openBracket(tok, tokenizer.ControlCloseParentheses)
	case tok.Is(tokenizer.ControlOpenSquare):
		p.openBracket(tok, tokenizer.ControlCloseSquare)
	case p.customProperty && p.colon && tok.Is(tokenizer.ControlOpenCurly):
		p.openBracket(tok, tokenizer.ControlCloseCurly)
	case len(p.closers) == 0:
		switch {
		case tok.Is(tokenizer.ControlSemicolon):
			p.buffer = append(p.buffer, tok)
			if p.colon {
				p.decl()
			} else {
				p.unknown()
			}
			return
		case tok.Is(tokenizer.ControlOpenCurly):
			p.rule(tok)
			return
		case tok.Is(tokenizer.ControlCloseCurly):
			p.finishBuffer()
			p.end(tok)
			return
		case tok.Is(tokenizer.ControlColon):
			p.colon = true
		}
	default:
		p.closeBracket(tok)
	}
	p.buffer = append(p.buffer, tok)
}

// finishBuffer turns a buffer interrupted by "}" or end of input into a
// declaration or an unknown node.
func (p *Parser) finishBuffer() {
	if len(p.buffer) == 0 {
		return
	}
	if len(p.closers) > 0 {
		p.unclosedBracket()
	}
	if !p.colon || !p.customProperty {
		body, trail := trimTrailingTrivia(p.buffer)
		trail = slices.Clone(trail)
		p.buffer = body
		defer func() { p.trivia = append(p.trivia, trail...) }()
	}
	if p.colon {
		p.decl()
	} else {
		p.unknown()
	}
}

func (p *Parser) resetBuffer() {
	p.buffer = p.buffer[:0]
	p.closers = p.closers[:0]
	p.colon = false
	p.customProperty = false
}

func (p *Parser) rule(tok tokenizer.Token) {
	selector, trail := trimTrailingTrivia(p.buffer)
	head := []syntax.GreenElement{syntax.NewGreenNode(syntax.KindSelector, p.greens(selector)...)}
	head = append(head, p.greens(trail)...)
	head = append(head, p.green(tok))
	start := p.buffer[0].Pos
	p.resetBuffer()
	p.push(&ruleContext{head: head, start: start})
}

// decl builds a declaration from the buffer, which holds at least one
// colon and may end with ";".
func (p *Parser) decl() {
	tokens := p.buffer
	var semicolon []tokenizer.Token
	if n := len(tokens); n > 0 && tokens[n-1].Is(tokenizer.ControlSemicolon) {
		tokens, semicolon = tokens[:n-1], tokens[n-1:]
	}

	colon := slices.IndexFunc(tokens, func(tok tokenizer.Token) bool {
		return tok.Is(tokenizer.ControlColon)
	})
	prop, between := trimTrailingTrivia(tokens[:colon])
	afterColon, value, trail := splitTrivia(tokens[colon+1:])

	children := []syntax.GreenElement{syntax.NewGreenNode(syntax.KindProp, p.greens(prop)...)}
	children = append(children, p.greens(between)...)
	children = append(children, p.green(tokens[colon]))
	children = append(children, p.greens(afterColon)...)
	children = append(children, p.value(value))
	children = append(children, p.greens(trail)...)
	children = append(children, p.greens(semicolon)...)

	p.top().add(syntax.NewGreenNode(syntax.KindDecl, children...))
	p.resetBuffer()
}

func (p *Parser) value(tokens []tokenizer.Token) *syntax.GreenNode {
	rest, important := splitImportant(tokens)
	children := p.greens(rest)
	if len(important) > 0 {
		children = append(children, syntax.NewGreenNode(syntax.KindImportant, p.greens(important)...))
	}
	return syntax.NewGreenNode(syntax.KindValue, children...)
}

func (p *Parser) unknown() {
	p.log.Debugf("%s: unknown word %q", p.input.Position(p.buffer[0].Pos), p.buffer[0].Content)
	p.top().add(syntax.NewGreenNode(syntax.KindUnknown, p.greens(p.buffer)...))
	p.resetBuffer()
}

func (p *Parser) endFile() {
	if at, ok := p.top().ctx.(*atRuleContext); ok && at.phase == phaseParams {
		p.closeBodiless(at)
	}
	p.finishBuffer()

	for len(p.stack) > 1 {
		f := p.top()
		var node *syntax.GreenNode
		switch ctx := f.ctx.(type) {
		case *ruleContext:
			p.unclosedBlock(ctx.start)
			node = syntax.NewGreenNode(syntax.KindRule, slices.Concat(ctx.head, f.children)...)
		case *atRuleContext:
			p.unclosedBlock(ctx.start)
			node = syntax.NewGreenNode(syntax.KindAtRule, slices.Concat(ctx.head, f.children)...)
		}
		p.pop().add(node)
	}

	p.flushTrivia()
	p.root = syntax.NewRoot(syntax.NewGreenNode(syntax.KindRoot, p.top().children...))
}

func (p *Parser) unclosedBlock(offset int) {
	if p.strict {
		p.fail(UnclosedBlock, offset)
		return
	}
	p.log.Debugf("%s: closing block implicitly", p.input.Position(offset))
}

func hasComment(tokens []tokenizer.Token) bool {
	return slices.ContainsFunc(tokens, func(tok tokenizer.Token) bool {
		return tok.Kind == tokenizer.KindComment
	})
}

func trimTrailingTrivia(tokens []tokenizer.Token) (body, trail []tokenizer.Token) {
	end := len(tokens)
	for end > 0 && tokens[end-1].IsTrivia() {
		end--
	}
	return tokens[:end], tokens[end:]
}

func splitTrivia(tokens []tokenizer.Token) (lead, body, trail []tokenizer.Token) {
	start := 0
	for start < len(tokens) && tokens[start].IsTrivia() {
		start++
	}
	body, trail = trimTrailingTrivia(tokens[start:])
	return tokens[:start], body, trail
}

// splitImportant separates a trailing "!important" (or "!", trivia,
// "important") from a declaration value.
func splitImportant(tokens []tokenizer.Token) (rest, important []tokenizer.Token) {
	n := len(tokens)
	if n == 0 {
		return tokens, nil
	}
	last := tokens[n-1]
	if last.Kind != tokenizer.KindWord {
		return tokens, nil
	}
	if strings.EqualFold(last.Content, "!important") {
		return tokens[:n-1], tokens[n-1:]
	}
	if strings.EqualFold(last.Content, "important") {
		i := n - 2
		for i >= 0 && tokens[i].IsTrivia() {
			i--
		}
		if i >= 0 && tokens[i].Content == "!" {
			return tokens[:i], tokens[i:]
		}
	}
	return tokens, nil
}
