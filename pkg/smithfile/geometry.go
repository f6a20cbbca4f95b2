// Geometry helpers shared by the native renderers: the mapping from the
// unit-disk display space to device pixels and collision-aware label
// placement.

package smithfile

import (
	"math"

	"github.com/ha1tch/smith-toolkit/pkg/smith"
)

// Viewport maps display space (the unit disk, y up) onto a square device
// canvas (y down).
type Viewport struct {
	Size   float64 // canvas edge in device units
	Radius float64 // chart radius as a fraction of Size
}

// Scale returns the device length of one display unit.
func (v Viewport) Scale() float64 {
	return v.Radius * v.Size
}

// Center returns the device position of the display origin.
func (v Viewport) Center() smith.Point {
	return smith.Point{X: v.Size / 2, Y: v.Size / 2}
}

// ToDevice maps a display point to device coordinates.
func (v Viewport) ToDevice(p smith.Point) smith.Point {
	s := v.Scale()
	return smith.Point{X: v.Size/2 + p.X*s, Y: v.Size/2 - p.Y*s}
}

// ToDisplay is the inverse of ToDevice.
func (v Viewport) ToDisplay(p smith.Point) smith.Point {
	s := v.Scale()
	return smith.Point{X: (p.X - v.Size/2) / s, Y: (v.Size/2 - p.Y) / s}
}

// LabelAnchor returns the device position of a tick label's anchor. Labels
// on the boundary circle are pushed outward with the polar translate;
// fontSize is the effective label size; corr carries the x and y shift
// and the extra radial pad.
func (v Viewport) LabelAnchor(l smith.Label, pad, fontSize float64, corr [3]float64) smith.Point {
	at := v.ToDevice(l.At)
	if l.Kind != smith.LabelImag {
		return at
	}
	pt := smith.NewPolarTranslate(v.Center(), pad+corr[2], fontSize)
	at = pt.TransformPoint(at)
	return smith.Point{X: at.X + corr[0], Y: at.Y - corr[1]}
}

// Rect represents an axis-aligned rectangle.
type Rect struct {
	X, Y float64 // Center
	W, H float64 // Full width and height
}

// RectOverlap returns the overlap area between two rectangles.
// Returns 0 if they don't overlap.
func RectOverlap(a, b Rect) float64 {
	overlapX := (a.W/2 + b.W/2) - math.Abs(a.X-b.X)
	overlapY := (a.H/2 + b.H/2) - math.Abs(a.Y-b.Y)
	if overlapX <= 0 || overlapY <= 0 {
		return 0
	}
	return overlapX * overlapY
}

// LabelPlacer manages label placement with collision avoidance.
type LabelPlacer struct {
	obstacles []Rect
}

// NewLabelPlacer creates a LabelPlacer with initial obstacles (tick labels).
func NewLabelPlacer(obstacles []Rect) *LabelPlacer {
	return &LabelPlacer{obstacles: append([]Rect(nil), obstacles...)}
}

// Add registers another obstacle.
func (lp *LabelPlacer) Add(r Rect) {
	lp.obstacles = append(lp.obstacles, r)
}

func (lp *LabelPlacer) overlap(r Rect) float64 {
	total := 0.0
	for _, obs := range lp.obstacles {
		total += RectOverlap(r, obs)
	}
	return total
}

// PlaceLabel finds the best position for a label near an anchor point.
// Returns the center position for the label.
func (lp *LabelPlacer) PlaceLabel(anchor smith.Point, labelW, labelH, gap float64) smith.Point {
	dx, dy := labelW/2+gap, labelH/2+gap
	candidates := []smith.Point{
		{X: anchor.X, Y: anchor.Y - dy},
		{X: anchor.X, Y: anchor.Y + dy},
		{X: anchor.X + dx, Y: anchor.Y},
		{X: anchor.X - dx, Y: anchor.Y},
		{X: anchor.X + dx, Y: anchor.Y - dy},
		{X: anchor.X - dx, Y: anchor.Y - dy},
		{X: anchor.X + dx, Y: anchor.Y + dy},
		{X: anchor.X - dx, Y: anchor.Y + dy},
	}

	best := candidates[0]
	bestOverlap := math.MaxFloat64
	for _, pos := range candidates {
		o := lp.overlap(Rect{pos.X, pos.Y, labelW, labelH})
		if o == 0 {
			lp.Add(Rect{pos.X, pos.Y, labelW, labelH})
			return pos
		}
		if o < bestOverlap {
			bestOverlap = o
			best = pos
		}
	}

	// Use best available position (may have overlap)
	lp.Add(Rect{best.X, best.Y, labelW, labelH})
	return best
}

// PlaceLabelOnCurve places a label at a point on a curve, offset
// perpendicular to the curve tangent, falling back to PlaceLabel.
func (lp *LabelPlacer) PlaceLabelOnCurve(curvePoint, tangent smith.Point, labelW, labelH, offset float64) smith.Point {
	dist := math.Hypot(tangent.X, tangent.Y)
	if dist < 0.001 {
		return lp.PlaceLabel(curvePoint, labelW, labelH, offset)
	}
	perpX, perpY := -tangent.Y/dist, tangent.X/dist

	for _, sign := range []float64{1, -1} {
		pos := smith.Point{
			X: curvePoint.X + perpX*(offset+labelW/2)*sign,
			Y: curvePoint.Y + perpY*(offset+labelH/2)*sign,
		}
		r := Rect{pos.X, pos.Y, labelW, labelH}
		if lp.overlap(r) == 0 {
			lp.Add(r)
			return pos
		}
	}
	return lp.PlaceLabel(curvePoint, labelW, labelH, offset)
}

// textWidth estimates the rendered width of s at the given font size.
func textWidth(s string, fontSize float64) float64 {
	return float64(len([]rune(s))) * fontSize * 0.6
}
