// Package render implements the terminal backend for display surfaces.
// It lays out the surface tree in character cells, paints it into a
// cell grid and redraws the grid in place on the terminal.
package render

import (
	"fmt"
	"image"
	"io"
	"strings"

	"github.com/elizafairlady/libui-clock/ui/layout"
	"github.com/elizafairlady/libui-clock/ui/surface"
	"github.com/elizafairlady/libui-clock/ui/theme"
)

// Renderer paints a surface to a terminal.
type Renderer struct {
	Out   io.Writer
	Theme *theme.Theme
	// Plain disables escape sequences: every paint is appended as
	// plain text lines, for logs and pipes.
	Plain bool

	conf  *layout.Config
	lines int // rows written by the previous paint
}

type cell struct {
	ch     rune
	fg, bg uint32
}

type grid struct {
	w, h  int
	cells []cell
}

func newGrid(w, h int, fg, bg uint32) *grid {
	g := &grid{w: w, h: h, cells: make([]cell, w*h)}
	for i := range g.cells {
		g.cells[i] = cell{ch: ' ', fg: fg, bg: bg}
	}
	return g
}

func (g *grid) at(x, y int) *cell {
	if x < 0 || y < 0 || x >= g.w || y >= g.h {
		return nil
	}
	return &g.cells[y*g.w+x]
}

// New creates a renderer writing to out.
func New(out io.Writer, th *theme.Theme) *Renderer {
	if th == nil {
		th = theme.Default()
	}
	return &Renderer{
		Out:   out,
		Theme: th,
		conf: &layout.Config{
			Measure: layout.Cells,
		},
	}
}

// LayoutConfig returns the layout configuration used for painting.
func (r *Renderer) LayoutConfig() *layout.Config {
	return r.conf
}

// Paint draws the whole surface.
func (r *Renderer) Paint(s *surface.Surface) error {
	root := layout.Build(s.Tree(), r.conf)
	if root == nil || root.MinW == 0 || root.MinH == 0 {
		return nil
	}
	layout.Layout(root, image.Rect(0, 0, root.MinW, root.MinH), r.conf)

	g := newGrid(root.MinW, root.MinH, r.Theme.Foreground, r.Theme.Background)
	r.paintNode(g, root, r.Theme.Foreground, r.Theme.Background)
	if err := r.flush(g); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

func (r *Renderer) paintNode(g *grid, n *layout.RNode, fg, bg uint32) {
	rect := n.Rect
	if rect.Dx() <= 0 || rect.Dy() <= 0 {
		return
	}
	if n.Props["role"] == "separator" {
		fg = r.Theme.Separator
	}
	fg = theme.Resolve(n.Props["fg"], fg)
	if c := theme.Resolve(n.Props["bg"], 0); c != 0 {
		bg = c
		fill(g, rect, bg)
	}

	switch n.Type {
	case "text":
		r.paintText(g, n, fg, bg)
	default:
		for _, c := range n.Children {
			r.paintNode(g, c, fg, bg)
		}
	}
}

func fill(g *grid, rect image.Rectangle, bg uint32) {
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if c := g.at(x, y); c != nil {
				c.bg = bg
			}
		}
	}
}

func (r *Renderer) paintText(g *grid, n *layout.RNode, fg, bg uint32) {
	x, y := n.Rect.Min.X, n.Rect.Min.Y
	for _, ch := range n.Props["text"] {
		if x >= n.Rect.Max.X {
			break
		}
		if c := g.at(x, y); c != nil {
			*c = cell{ch: ch, fg: fg, bg: bg}
		}
		x++
	}
}

// flush writes g over the previous paint.
func (r *Renderer) flush(g *grid) error {
	var b strings.Builder
	if !r.Plain && r.lines > 0 {
		fmt.Fprintf(&b, "\x1b[%dA", r.lines)
	}
	for y := 0; y < g.h; y++ {
		if !r.Plain {
			b.WriteString("\r\x1b[2K")
		}
		var cur *cell
		for x := 0; x < g.w; x++ {
			c := g.at(x, y)
			if !r.Plain && (cur == nil || c.fg != cur.fg || c.bg != cur.bg) {
				b.WriteString(theme.SGR(c.fg, false))
				b.WriteString(theme.SGR(c.bg, true))
			}
			b.WriteRune(c.ch)
			cur = c
		}
		if !r.Plain {
			b.WriteString(theme.Reset)
		}
		b.WriteByte('\n')
	}
	r.lines = g.h
	_, err := io.WriteString(r.Out, b.String())
	return err
}
