package parser

import (
	"github.com/dhamidi/lcss/css/syntax"
	"github.com/dhamidi/lcss/css/tokenizer"
)

// context is the construct a frame is building.
type context interface {
	isContext()
}

type rootContext struct{}

type ruleContext struct {
	// head holds the Selector, the trivia after it and the "{".
	head  []syntax.GreenElement
	start int

	// ownSemicolon is set once a free ";" after the closed rule has been
	// folded into it.
	ownSemicolon bool
}

type atRulePhase int

const (
	phaseParams atRulePhase = iota
	phaseBody
)

type atRuleContext struct {
	// head holds the AtWord and, once the body is open, the params and "{".
	head   []syntax.GreenElement
	params []tokenizer.Token
	phase  atRulePhase
	start  int
}

func (rootContext) isContext()    {}
func (*ruleContext) isContext()   {}
func (*atRuleContext) isContext() {}

// frame collects the children of one open construct.
type frame struct {
	ctx      context
	children []syntax.GreenElement

	// last is the context of the most recently closed rule while that rule
	// is still the last child of this frame.
	last context
}

func (f *frame) add(el ...syntax.GreenElement) {
	if len(el) == 0 {
		return
	}
	f.children = append(f.children, el...)
	f.last = nil
}
