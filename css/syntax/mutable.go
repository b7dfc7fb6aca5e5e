package syntax

import (
	"iter"
	"strings"

	"github.com/dhamidi/lcss/css/input"
)

// ID addresses a slot in a MutableTree.
type ID int32

// NoID is the parent of the root and of detached elements.
const NoID ID = -1

type slot struct {
	green    GreenElement
	parent   ID
	children []ID
	start    int
	detached bool

	// rng caches the recomputed range; valid while rngVersion matches the
	// tree version.
	rng        input.Range
	rngVersion int
}

// MutableTree is an editable copy of a syntax tree stored as an arena of
// slots. Elements keep the source ranges they had when cloned; detaching
// an element unlinks it from its parent without touching any other slot.
//
// A MutableTree must not be edited from several goroutines at once.
type MutableTree struct {
	slots   []slot
	version int
}

// CloneForUpdate copies the subtree rooted at n into a new MutableTree.
// Green tokens are shared with the immutable tree.
func (n *Node) CloneForUpdate() *MutableTree {
	t := &MutableTree{version: 1}
	t.clone(n.green, NoID, n.offset)
	return t
}

func (t *MutableTree) clone(g GreenElement, parent ID, offset int) ID {
	id := ID(len(t.slots))
	t.slots = append(t.slots, slot{green: g, parent: parent, start: offset})
	if node, ok := g.(*GreenNode); ok {
		children := make([]ID, 0, len(node.children))
		for _, c := range node.children {
			children = append(children, t.clone(c, id, offset))
			offset += c.Width()
		}
		t.slots[id].children = children
	}
	return id
}

func (t *MutableTree) Root() MutElement {
	return MutElement{tree: t, id: 0}
}

// Len returns the number of slots, detached ones included.
func (t *MutableTree) Len() int {
	return len(t.slots)
}

func (t *MutableTree) Element(id ID) MutElement {
	return MutElement{tree: t, id: id}
}

// String serializes the tree, skipping detached elements.
func (t *MutableTree) String() string {
	return t.Root().String()
}

// Freeze builds an immutable tree from the current state. Subtrees that
// were not edited reuse their original green nodes.
func (t *MutableTree) Freeze() *Node {
	if len(t.slots) == 0 || t.slots[0].detached {
		return NewRoot(NewGreenNode(KindRoot))
	}
	g, _ := t.freeze(0)
	node, ok := g.(*GreenNode)
	if !ok {
		node = NewGreenNode(KindRoot, g)
	}
	return NewRoot(node)
}

func (t *MutableTree) freeze(id ID) (GreenElement, bool) {
	s := &t.slots[id]
	node, ok := s.green.(*GreenNode)
	if !ok {
		return s.green, false
	}
	changed := false
	children := make([]GreenElement, 0, len(s.children))
	for _, child := range s.children {
		if t.slots[child].detached {
			changed = true
			continue
		}
		g, edited := t.freeze(child)
		changed = changed || edited
		children = append(children, g)
	}
	if !changed {
		return node, false
	}
	return NewGreenNode(node.kind, children...), true
}

// MutElement is a handle on a node or token inside a MutableTree.
type MutElement struct {
	tree *MutableTree
	id   ID
}

func (e MutElement) slot() *slot {
	return &e.tree.slots[e.id]
}

func (e MutElement) ID() ID { return e.id }

func (e MutElement) Kind() Kind {
	return e.slot().green.Kind()
}

func (e MutElement) IsToken() bool {
	_, ok := e.slot().green.(*GreenToken)
	return ok
}

func (e MutElement) Green() GreenElement {
	return e.slot().green
}

// Parent returns the element's parent, or false for the root and for
// detached elements.
func (e MutElement) Parent() (MutElement, bool) {
	p := e.slot().parent
	if p == NoID {
		return MutElement{}, false
	}
	return MutElement{tree: e.tree, id: p}, true
}

// ChildrenWithTokens yields the attached children in source order.
func (e MutElement) ChildrenWithTokens() iter.Seq[MutElement] {
	return func(yield func(MutElement) bool) {
		for _, child := range e.slot().children {
			if e.tree.slots[child].detached {
				continue
			}
			if !yield(MutElement{tree: e.tree, id: child}) {
				return
			}
		}
	}
}

// Descendants yields e and every attached element below it in preorder.
func (e MutElement) Descendants() iter.Seq[MutElement] {
	return func(yield func(MutElement) bool) {
		e.descend(yield)
	}
}

func (e MutElement) descend(yield func(MutElement) bool) bool {
	if !yield(e) {
		return false
	}
	for child := range e.ChildrenWithTokens() {
		if !child.descend(yield) {
			return false
		}
	}
	return true
}

// Detach removes e and its subtree from its parent. It runs in constant
// time; ranges of ancestors are recomputed the next time they are asked
// for. Detaching an already detached element is a no-op.
func (e MutElement) Detach() {
	s := e.slot()
	if s.detached {
		return
	}
	s.detached = true
	s.parent = NoID
	e.tree.version++
}

// Detached reports whether e itself was detached. Elements inside a
// detached subtree are not themselves marked.
func (e MutElement) Detached() bool {
	return e.slot().detached
}

// TextRange returns the range of e in the source it was cloned from,
// covering only the children that are still attached. A node whose
// children were all detached has an empty range at its original start.
func (e MutElement) TextRange() input.Range {
	s := e.slot()
	if tok, ok := s.green.(*GreenToken); ok {
		return input.Range{Start: s.start, End: s.start + len(tok.text)}
	}
	if s.rngVersion == e.tree.version {
		return s.rng
	}
	rng := input.Range{Start: s.start, End: s.start}
	first := true
	for child := range e.ChildrenWithTokens() {
		r := child.TextRange()
		if r.IsEmpty() {
			continue
		}
		if first {
			rng = r
			first = false
			continue
		}
		rng.End = r.End
	}
	s = e.slot()
	s.rng = rng
	s.rngVersion = e.tree.version
	return rng
}

// Text returns the text of a token, or the serialization of a node.
func (e MutElement) Text() string {
	return e.String()
}

// String serializes e, skipping detached descendants.
func (e MutElement) String() string {
	var sb strings.Builder
	e.writeTo(&sb)
	return sb.String()
}

func (e MutElement) writeTo(sb *strings.Builder) {
	s := e.slot()
	if tok, ok := s.green.(*GreenToken); ok {
		sb.WriteString(tok.text)
		return
	}
	for child := range e.ChildrenWithTokens() {
		child.writeTo(sb)
	}
}
