package main

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"github.com/ha1tch/smith-toolkit/pkg/smith"
	"github.com/ha1tch/smith-toolkit/pkg/smithfile"
)

// Each terminal cell holds a 2×4 braille dot matrix. With cells about
// twice as tall as wide the dots come out square.
const (
	dotsX = 2
	dotsY = 4
)

// brailleBits maps a dot position to its bit in the braille block.
var brailleBits = [dotsY][dotsX]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

type cellLayer int

const (
	layerGrid cellLayer = iota
	layerData
	layerText
)

type cell struct {
	dots  rune   // braille bits
	text  rune   // overrides dots when set
	color colorful.Color
	layer cellLayer
}

// cellCanvas rasterizes chart primitives into terminal cells.
type cellCanvas struct {
	w, h   int
	cells  []cell
	scale  float64 // dots per display unit
	cx, cy float64 // display origin in dots
	fg     colorful.Color
}

// gridBlend lifts dark grid colours so they stay visible on a dark
// terminal background.
const gridBlend = 0.45

func newCellCanvas(w, h int, radius float64) *cellCanvas {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	size := math.Min(float64(w*dotsX), float64(h*dotsY))
	return &cellCanvas{
		w:     w,
		h:     h,
		cells: make([]cell, w*h),
		scale: size * radius,
		cx:    float64(w*dotsX) / 2,
		cy:    float64(h*dotsY) / 2,
		fg:    colorful.Color{R: 1, G: 1, B: 1},
	}
}

// toDots maps a display point to dot coordinates.
func (c *cellCanvas) toDots(p smith.Point) (float64, float64) {
	return c.cx + p.X*c.scale, c.cy - p.Y*c.scale
}

// toDisplay maps the centre of cell (x, y) back to display space.
func (c *cellCanvas) toDisplay(x, y int) smith.Point {
	dx := (float64(x)+0.5)*dotsX - c.cx
	dy := c.cy - (float64(y)+0.5)*dotsY
	return smith.Point{X: dx / c.scale, Y: dy / c.scale}
}

func (c *cellCanvas) at(x, y int) *cell {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return nil
	}
	return &c.cells[y*c.w+x]
}

func (c *cellCanvas) dot(px, py float64, col colorful.Color, layer cellLayer) {
	ix, iy := int(math.Floor(px)), int(math.Floor(py))
	if ix < 0 || iy < 0 {
		return
	}
	cl := c.at(ix/dotsX, iy/dotsY)
	if cl == nil || cl.layer > layer {
		return
	}
	cl.dots |= brailleBits[iy%dotsY][ix%dotsX]
	cl.color = col
	cl.layer = layer
}

func (c *cellCanvas) polyline(pts []smith.Point, col colorful.Color, layer cellLayer) {
	for i := 1; i < len(pts); i++ {
		x0, y0 := c.toDots(pts[i-1])
		x1, y1 := c.toDots(pts[i])
		steps := int(math.Ceil(math.Max(math.Abs(x1-x0), math.Abs(y1-y0))))
		if steps < 1 {
			steps = 1
		}
		for s := 0; s <= steps; s++ {
			t := float64(s) / float64(steps)
			c.dot(x0+(x1-x0)*t, y0+(y1-y0)*t, col, layer)
		}
	}
}

func (c *cellCanvas) gridColor(col color.Color) colorful.Color {
	cf, ok := colorful.MakeColor(orBlack(col))
	if !ok {
		cf = colorful.Color{}
	}
	return cf.BlendLab(c.fg, gridBlend).Clamped()
}

func orBlack(col color.Color) color.Color {
	if col == nil {
		return color.Black
	}
	return col
}

// DrawArc implements smith.Renderer.
func (c *cellCanvas) DrawArc(a smith.ArcDescriptor, s smith.LineStyle) {
	c.DrawPath(smith.ArcPath(a), s)
}

// DrawPath implements smith.Renderer.
func (c *cellCanvas) DrawPath(p smith.Path, s smith.LineStyle) {
	col := c.gridColor(s.Color)
	for _, poly := range smithfile.Flatten(p, 16) {
		c.polyline(poly, col, layerGrid)
	}
}

// DrawLabel implements smith.Renderer. Rotated real-axis labels are
// written top to bottom.
func (c *cellCanvas) DrawLabel(l smith.Label) {
	px, py := c.toDots(l.At)
	x, y := int(px)/dotsX, int(py)/dotsY

	switch l.Kind {
	case smith.LabelReal:
		if l.Rotation != 0 {
			runes := []rune(l.Text)
			y -= len(runes) / 2
			for i, r := range runes {
				c.text(x, y+i, r)
			}
			return
		}
		x -= runewidth.StringWidth(l.Text) / 2
	case smith.LabelImag:
		// One cell outside the boundary, away from the centre.
		if l.At.X > 0.1 {
			x++
		} else if l.At.X < -0.1 {
			x--
		}
		if l.At.Y > 0.1 {
			y--
		} else if l.At.Y < -0.1 {
			y++
		}
		switch l.Align {
		case smith.AlignRight:
			x -= runewidth.StringWidth(l.Text) - 1
		case smith.AlignCenter:
			x -= runewidth.StringWidth(l.Text) / 2
		}
	case smith.LabelNormalization:
		y++
	}
	c.write(x, y, l.Text)
}

func (c *cellCanvas) text(x, y int, r rune) {
	if cl := c.at(x, y); cl != nil {
		cl.text = r
		cl.color = c.fg
		cl.layer = layerText
	}
}

// write puts s at (x, y), skipping the trailing cell of wide runes.
func (c *cellCanvas) write(x, y int, s string) {
	for _, r := range s {
		if r == ' ' {
			x++
			continue
		}
		c.text(x, y, r)
		x += runewidth.RuneWidth(r)
	}
}

// DrawLine implements smith.LineRenderer.
func (c *cellCanvas) DrawLine(line smith.Line, path smith.Path) {
	col, ok := colorful.MakeColor(orBlack(line.Style.Color))
	if !ok {
		col = c.fg
	}
	c.polyline(path.Vertices, col, layerData)

	if line.Label != "" && len(path.Vertices) > 0 {
		px, py := c.toDots(path.Vertices[len(path.Vertices)-1])
		x, y := int(px)/dotsX+1, int(py)/dotsY
		for _, r := range line.Label {
			if cl := c.at(x, y); cl != nil {
				cl.text = r
				cl.color = col
				cl.layer = layerText
			}
			x += runewidth.RuneWidth(r)
		}
	}
}

// glyph returns what cell (x, y) shows.
func (c *cellCanvas) glyph(x, y int) rune {
	cl := c.at(x, y)
	switch {
	case cl == nil:
		return ' '
	case cl.text != 0:
		return cl.text
	case cl.dots != 0:
		return 0x2800 + cl.dots
	}
	return ' '
}
