// Package surface implements the live display surface that widgets
// render into.
//
// A Surface owns a tree of Elements rooted at a "screen" element. Each
// change made to an element that is attached to the screen counts as
// one mutation; changes to detached elements (for example, a subtree
// being built before insertion) are free. The surface is not safe for
// concurrent use; it lives on the UI loop.
package surface

import (
	"errors"
	"fmt"
	"strings"

	"github.com/elizafairlady/libui-clock/ui/proto"
)

// ErrDetached is returned when an operation needs an element that is
// attached to the surface but the element has been removed.
var ErrDetached = errors.New("surface: element is detached")

// Surface is a display surface.
type Surface struct {
	root      *Element
	mutations uint64
	rev       uint64
}

// Element is a node on the surface.
type Element struct {
	ID       string
	Type     string
	props    map[string]string
	children []*Element
	parent   *Element
	owner    *Surface
}

// New creates a surface with an empty screen element.
func New() *Surface {
	s := &Surface{}
	s.root = s.NewElement("screen", "vbox")
	return s
}

// Root returns the screen element.
func (s *Surface) Root() *Element {
	return s.root
}

// Mutations returns the number of changes made to attached elements.
func (s *Surface) Mutations() uint64 {
	return s.mutations
}

// Rev returns the revision of the last snapshot taken with Tree.
func (s *Surface) Rev() uint64 {
	return s.rev
}

// NewElement creates a detached element owned by s.
func (s *Surface) NewElement(id, typ string) *Element {
	return &Element{
		ID:    id,
		Type:  typ,
		props: make(map[string]string),
		owner: s,
	}
}

// Find returns the attached element with the given id, or nil.
func (s *Surface) Find(id string) *Element {
	var found *Element
	s.root.Walk(func(e *Element) bool {
		if e.ID == id {
			found = e
			return false
		}
		return true
	})
	return found
}

// Tree returns a snapshot of the attached elements.
func (s *Surface) Tree() *proto.Tree {
	s.rev++
	t := &proto.Tree{
		Rev:   s.rev,
		Root:  s.root.ID,
		Nodes: make(map[string]*proto.Node),
	}
	s.root.Walk(func(e *Element) bool {
		pn := &proto.Node{
			ID:    e.ID,
			Type:  e.Type,
			Props: e.Props(),
		}
		for _, c := range e.children {
			pn.Children = append(pn.Children, c.ID)
		}
		t.Nodes[e.ID] = pn
		t.Order = append(t.Order, e.ID)
		return true
	})
	return t
}

// Dump returns the surface in the proto tree text format.
func (s *Surface) Dump() string {
	return proto.SerializeTree(s.Tree())
}

// mutated records one change to e if e is attached.
func (s *Surface) mutated(e *Element) {
	if e.Attached() {
		s.mutations++
	}
}

// --- Element ---

// Surface returns the surface that owns e.
func (e *Element) Surface() *Surface {
	return e.owner
}

// Parent returns the parent element, or nil.
func (e *Element) Parent() *Element {
	return e.parent
}

// Attached reports whether e is reachable from the screen element.
func (e *Element) Attached() bool {
	for n := e; n != nil; n = n.parent {
		if n == e.owner.root {
			return true
		}
	}
	return false
}

// Prop returns a property value.
func (e *Element) Prop(k string) (string, bool) {
	v, ok := e.props[k]
	return v, ok
}

// Props returns a copy of the element's properties.
func (e *Element) Props() map[string]string {
	m := make(map[string]string, len(e.props))
	for k, v := range e.props {
		m[k] = v
	}
	return m
}

// SetProp sets a property. Setting a property to its current value
// is not a mutation.
func (e *Element) SetProp(k, v string) {
	if old, ok := e.props[k]; ok && old == v {
		return
	}
	e.props[k] = v
	e.owner.mutated(e)
}

// DelProp removes a property.
func (e *Element) DelProp(k string) {
	if _, ok := e.props[k]; !ok {
		return
	}
	delete(e.props, k)
	e.owner.mutated(e)
}

// Children returns the element's children. The slice must not be
// modified.
func (e *Element) Children() []*Element {
	return e.children
}

// Child returns the i'th child, or nil if out of range.
func (e *Element) Child(i int) *Element {
	if i < 0 || i >= len(e.children) {
		return nil
	}
	return e.children[i]
}

// Append adds children at the end and returns e for chaining. It
// panics if a child belongs to another surface.
func (e *Element) Append(children ...*Element) *Element {
	for _, c := range children {
		if err := e.InsertChild(len(e.children), c); err != nil {
			panic(err)
		}
	}
	return e
}

// InsertChild inserts c at index i, detaching it from any previous
// parent first.
func (e *Element) InsertChild(i int, c *Element) error {
	if c.owner != e.owner {
		return fmt.Errorf("surface: element %s belongs to another surface", c.ID)
	}
	if i < 0 || i > len(e.children) {
		return fmt.Errorf("surface: insert index %d out of range [0,%d]", i, len(e.children))
	}
	if c.parent != nil {
		c.parent.detach(c)
	}
	e.children = append(e.children, nil)
	copy(e.children[i+1:], e.children[i:])
	e.children[i] = c
	c.parent = e
	e.owner.mutated(e)
	return nil
}

// RemoveChild removes and returns the i'th child.
func (e *Element) RemoveChild(i int) (*Element, error) {
	if i < 0 || i >= len(e.children) {
		return nil, fmt.Errorf("surface: remove index %d out of range [0,%d)", i, len(e.children))
	}
	c := e.children[i]
	// Count before detaching: the removal is visible on the surface
	// only while e is attached.
	e.owner.mutated(e)
	e.detach(c)
	return c, nil
}

// ReplaceWith puts n in e's place in the tree. e must have a parent.
func (e *Element) ReplaceWith(n *Element) error {
	p := e.parent
	if p == nil {
		return fmt.Errorf("replace %s: %w", e.ID, ErrDetached)
	}
	if n.parent != nil {
		n.parent.detach(n)
	}
	for i, c := range p.children {
		if c == e {
			p.children[i] = n
			n.parent = p
			e.parent = nil
			p.owner.mutated(p)
			return nil
		}
	}
	return fmt.Errorf("replace %s: %w", e.ID, ErrDetached)
}

// Remove detaches e from its parent.
func (e *Element) Remove() {
	if e.parent == nil {
		return
	}
	e.owner.mutated(e.parent)
	e.parent.detach(e)
}

func (e *Element) detach(c *Element) {
	for i, x := range e.children {
		if x == c {
			e.children = append(e.children[:i], e.children[i+1:]...)
			break
		}
	}
	c.parent = nil
}

// Walk visits e and its descendants depth first. Returning false from
// fn stops the walk.
func (e *Element) Walk(fn func(*Element) bool) bool {
	if !fn(e) {
		return false
	}
	for _, c := range e.children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// Content concatenates the text props of e's subtree.
func (e *Element) Content() string {
	var b strings.Builder
	e.Walk(func(n *Element) bool {
		b.WriteString(n.props["text"])
		return true
	})
	return b.String()
}
