// Package layout implements the box layout engine used to place a
// surface tree on a character grid.
//
// The engine performs two passes:
//  1. Measure: computes minimum sizes bottom-up.
//  2. Layout: assigns rectangles top-down with flex distribution.
//
// Units are terminal cells. Supported container types: vbox, hbox,
// row, stack. Leaf types: text, rect, spacer. Unknown types are laid
// out like vbox.
package layout

import (
	"image"
	"strconv"
	"unicode/utf8"

	"github.com/elizafairlady/libui-clock/ui/proto"
)

// RNode is a resolved node used for layout and painting.
type RNode struct {
	ID       string
	Type     string
	Props    map[string]string
	Parent   *RNode
	Children []*RNode
	// Layout results
	Rect image.Rectangle // assigned rectangle
	MinW int             // minimum width
	MinH int             // minimum height
	Flex int             // flex weight (0=fixed, >0=flex)
}

// TextMeasure returns the size of text in cells.
type TextMeasure func(text string) (w, h int)

// Config holds layout configuration.
type Config struct {
	Measure    TextMeasure
	DefaultPad int
	DefaultGap int
}

// Cells measures text as one cell per rune on a single line.
func Cells(text string) (int, int) {
	return utf8.RuneCountInString(text), 1
}

// Build creates an RNode tree from a proto.Tree and measures it.
func Build(t *proto.Tree, conf *Config) *RNode {
	if t.Root == "" || t.Nodes[t.Root] == nil {
		return nil
	}
	root := buildNode(t, t.Root, nil, make(map[string]*RNode))
	Measure(root, conf)
	return root
}

func buildNode(t *proto.Tree, id string, parent *RNode, cache map[string]*RNode) *RNode {
	if rn, ok := cache[id]; ok {
		return rn
	}
	pn := t.Nodes[id]
	if pn == nil {
		return nil
	}
	rn := &RNode{
		ID:     pn.ID,
		Type:   pn.Type,
		Props:  pn.Props,
		Parent: parent,
		Flex:   propInt(pn.Props, "flex", 0),
	}
	cache[id] = rn
	for _, childID := range pn.Children {
		if child := buildNode(t, childID, rn, cache); child != nil {
			rn.Children = append(rn.Children, child)
		}
	}
	return rn
}

// --- Measure pass ---

// Measure computes minimum sizes bottom-up.
func Measure(n *RNode, conf *Config) {
	if n == nil {
		return
	}
	for _, child := range n.Children {
		Measure(child, conf)
	}

	pad := propInt(n.Props, "pad", conf.DefaultPad)
	gap := propInt(n.Props, "gap", conf.DefaultGap)
	minw := propInt(n.Props, "minw", 0)
	minh := propInt(n.Props, "minh", 0)

	var w, h int
	switch n.Type {
	case "hbox", "row":
		for i, c := range n.Children {
			w += c.MinW
			h = max(h, c.MinH)
			if i > 0 {
				w += gap
			}
		}

	case "stack":
		for _, c := range n.Children {
			w = max(w, c.MinW)
			h = max(h, c.MinH)
		}

	case "text":
		w, h = measureText(conf, n.Props["text"])

	case "rect":
		w, h = 1, 1

	case "spacer":
		pad = 0
		if n.Flex == 0 {
			n.Flex = 1
		}

	default: // vbox and unknown
		for i, c := range n.Children {
			w = max(w, c.MinW)
			h += c.MinH
			if i > 0 {
				h += gap
			}
		}
	}
	n.MinW = max(w+pad*2, minw)
	n.MinH = max(h+pad*2, minh)
}

func measureText(conf *Config, text string) (int, int) {
	if text == "" {
		return 0, 1
	}
	if conf.Measure != nil {
		return conf.Measure(text)
	}
	return Cells(text)
}

// --- Layout pass ---

// Layout assigns rectangles to the tree, starting from the given bounds.
func Layout(n *RNode, bounds image.Rectangle, conf *Config) {
	if n == nil {
		return
	}
	n.Rect = bounds

	pad := propInt(n.Props, "pad", conf.DefaultPad)
	if n.Type == "spacer" {
		pad = 0
	}
	gap := propInt(n.Props, "gap", conf.DefaultGap)
	inner := image.Rect(
		bounds.Min.X+pad, bounds.Min.Y+pad,
		bounds.Max.X-pad, bounds.Max.Y-pad,
	)

	switch n.Type {
	case "hbox", "row":
		layoutBox(n.Children, inner, gap, false, conf)
	case "stack", "text", "rect", "spacer":
		for _, c := range n.Children {
			Layout(c, inner, conf)
		}
	default:
		layoutBox(n.Children, inner, gap, true, conf)
	}
}

// layoutBox distributes space among children along an axis.
// If vertical=true, distributes along Y; otherwise along X.
func layoutBox(children []*RNode, bounds image.Rectangle, gap int, vertical bool, conf *Config) {
	if len(children) == 0 {
		return
	}

	totalAvail := bounds.Dx()
	if vertical {
		totalAvail = bounds.Dy()
	}

	fixedSize := gap * (len(children) - 1)
	totalFlex := 0
	for _, c := range children {
		switch {
		case c.Flex > 0:
			totalFlex += c.Flex
		case vertical:
			fixedSize += c.MinH
		default:
			fixedSize += c.MinW
		}
	}
	flexSpace := max(totalAvail-fixedSize, 0)

	pos := bounds.Min.X
	if vertical {
		pos = bounds.Min.Y
	}
	for _, c := range children {
		size := c.MinW
		if vertical {
			size = c.MinH
		}
		if c.Flex > 0 && totalFlex > 0 {
			size = flexSpace * c.Flex / totalFlex
		}

		var r image.Rectangle
		if vertical {
			r = image.Rect(bounds.Min.X, pos, bounds.Max.X, pos+size)
		} else {
			r = image.Rect(pos, bounds.Min.Y, pos+size, bounds.Max.Y)
		}
		if maxw := propInt(c.Props, "maxw", 0); maxw > 0 && r.Dx() > maxw {
			r.Max.X = r.Min.X + maxw
		}
		if maxh := propInt(c.Props, "maxh", 0); maxh > 0 && r.Dy() > maxh {
			r.Max.Y = r.Min.Y + maxh
		}

		Layout(c, r, conf)
		pos += size + gap
	}
}

// --- Helpers ---

func propInt(props map[string]string, key string, def int) int {
	v, ok := props[key]
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
