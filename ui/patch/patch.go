// Package patch turns successive visual trees into surface mutations.
//
// A Snapshot pairs the last tree applied to the surface with the live
// element it was applied to. Patch diffs a new tree against the
// snapshot, applies the minimal set of operations to the surface and
// returns the next snapshot. ToNode bootstraps the first snapshot from
// whatever the surface already shows.
package patch

import (
	"errors"
	"fmt"
	"strings"

	"github.com/elizafairlady/libui-clock/ui/surface"
	"github.com/elizafairlady/libui-clock/ui/view"
)

// ErrBadPath is returned when an operation addresses an element the
// surface does not have, meaning the surface was changed behind the
// snapshot's back.
var ErrBadPath = errors.New("patch: path does not match surface")

// Snapshot is the visual tree last applied to a surface element.
type Snapshot struct {
	Node *view.Node
	Elem *surface.Element
}

// ToNode converts the current content of el into a snapshot.
func ToNode(el *surface.Element) *Snapshot {
	return &Snapshot{Node: nodeOf(el), Elem: el}
}

func nodeOf(el *surface.Element) *view.Node {
	n := &view.Node{ID: el.ID, Type: el.Type, Props: el.Props()}
	for _, c := range el.Children() {
		n.Children = append(n.Children, nodeOf(c))
	}
	return n
}

// Build creates a detached element subtree on s from n.
func Build(s *surface.Surface, n *view.Node) *surface.Element {
	el := s.NewElement(n.ID, n.Type)
	for k, v := range n.Props {
		el.SetProp(k, v)
	}
	for _, c := range n.Children {
		el.Append(Build(s, c))
	}
	return el
}

// Patch applies next to the surface element held by prev. It returns
// the new snapshot and the operations applied. On error the surface
// may be partially patched, the returned ops are those that succeeded,
// and prev must not be reused.
func Patch(prev *Snapshot, next *view.Node) (*Snapshot, []Op, error) {
	if prev == nil || prev.Elem == nil || prev.Node == nil {
		return nil, nil, fmt.Errorf("patch: empty snapshot")
	}
	if next == nil {
		return nil, nil, fmt.Errorf("patch: empty tree")
	}
	root := prev.Elem
	if !root.Attached() {
		return nil, nil, fmt.Errorf("patch %s: %w", root.ID, surface.ErrDetached)
	}

	ops := Diff(prev.Node, next)
	for i := range ops {
		nr, err := apply(root, &ops[i])
		if err != nil {
			return nil, ops[:i], fmt.Errorf("patch: %s: %w", ops[i].String(), err)
		}
		root = nr
	}
	return &Snapshot{Node: next.Clone(), Elem: root}, ops, nil
}

// apply performs op below root and returns the (possibly replaced) root.
func apply(root *surface.Element, op *Op) (*surface.Element, error) {
	el := root
	for _, i := range op.Path {
		el = el.Child(i)
		if el == nil {
			return nil, ErrBadPath
		}
	}
	s := root.Surface()
	switch op.Kind {
	case OpReplace:
		n := Build(s, op.Node)
		if err := el.ReplaceWith(n); err != nil {
			return nil, err
		}
		if el == root {
			return n, nil
		}
	case OpSet:
		el.SetProp(op.Key, op.Value)
	case OpDel:
		el.DelProp(op.Key)
	case OpInsert:
		if err := el.InsertChild(op.Index, Build(s, op.Node)); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadPath, err)
		}
	case OpRemove:
		if _, err := el.RemoveChild(op.Index); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadPath, err)
		}
	default:
		return nil, fmt.Errorf("unknown op kind %q", op.Kind)
	}
	return root, nil
}

// Trace renders ops in the proto op line format, one per line.
func Trace(ops []Op) string {
	var b strings.Builder
	for i := range ops {
		b.WriteString(ops[i].String())
		b.WriteByte('\n')
	}
	return b.String()
}
