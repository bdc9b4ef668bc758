// Package view provides the declarative visual tree that widgets build
// on every render.
//
// A widget describes what the display surface should look like as a
// tree of Nodes; the patch package compares successive trees and
// applies the difference to the live surface.
package view

import "strings"

// Node is a visual tree node with an ID, type, props, and children.
// Two nodes describe the same surface element when both ID and Type
// match.
type Node struct {
	ID       string
	Type     string
	Props    map[string]string
	Children []*Node
}

// --- Node builder helpers ---

// N creates a new node with the given id and type.
func N(id, typ string) *Node {
	return &Node{
		ID:    id,
		Type:  typ,
		Props: make(map[string]string),
	}
}

// Prop sets a property on the node and returns it for chaining.
func (n *Node) Prop(k, v string) *Node {
	n.Props[k] = v
	return n
}

// Text sets the "text" property.
func (n *Node) Text(s string) *Node {
	return n.Prop("text", s)
}

// Child appends child nodes and returns the parent for chaining.
func (n *Node) Child(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// Same reports whether n and o describe the same surface element.
func (n *Node) Same(o *Node) bool {
	return n != nil && o != nil && n.ID == o.ID && n.Type == o.Type
}

// Clone returns a deep copy of the subtree rooted at n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := &Node{
		ID:    n.ID,
		Type:  n.Type,
		Props: make(map[string]string, len(n.Props)),
	}
	for k, v := range n.Props {
		c.Props[k] = v
	}
	for _, child := range n.Children {
		c.Children = append(c.Children, child.Clone())
	}
	return c
}

// Content concatenates the text props of the subtree in depth-first
// order, which is what a reader of the surface sees.
func (n *Node) Content() string {
	var b strings.Builder
	var walk func(n *Node)
	walk = func(n *Node) {
		b.WriteString(n.Props["text"])
		for _, c := range n.Children {
			walk(c)
		}
	}
	if n != nil {
		walk(n)
	}
	return b.String()
}

// --- Node types (convenience constructors) ---

// HBox creates a horizontal box layout node.
func HBox(id string, children ...*Node) *Node {
	return N(id, "hbox").Child(children...)
}

// TextNode creates a text display node.
func TextNode(id, text string) *Node {
	return N(id, "text").Text(text)
}
