package smithfile

import (
	"math"

	"github.com/ha1tch/smith-toolkit/pkg/smith"
)

// Marker is one decorated vertex of a data line in device space.
type Marker struct {
	At    smith.Point
	Shape string
	Angle float64 // rotation applied to the shape, radians
}

// Decorate picks the marked vertices of a device-space line: every
// every-th vertex plus the last one. The first vertex gets the start
// marker and the last the end marker, which is turned along the line's
// final direction when rotation is enabled. A single vertex keeps the
// default marker.
func Decorate(pts []smith.Point, every int, m smith.MarkerParams, override string) []Marker {
	if !m.Enable || len(pts) == 0 {
		return nil
	}
	if every < 1 {
		every = 1
	}
	def := m.Default
	if override != "" {
		def = override
	}

	last := len(pts) - 1
	var idx []int
	for i := 0; i < last; i += every {
		idx = append(idx, i)
	}
	idx = append(idx, last)

	out := make([]Marker, 0, len(idx))
	for _, i := range idx {
		mk := Marker{At: pts[i], Shape: def}
		switch {
		case i == 0 && last > 0 && m.Start != "":
			mk.Shape = m.Start
		case i == last && last > 0 && m.End != "":
			mk.Shape = m.End
			if m.Rotate {
				prev := pts[last-1]
				dir := math.Atan2(pts[last].Y-prev.Y, pts[last].X-prev.X)
				// Shapes point up (negative y) unrotated.
				mk.Angle = dir + math.Pi/2
			}
		}
		out = append(out, mk)
	}
	return out
}

// MarkerPolygon returns the outline of a marker shape of the given size
// centred on the marker position. Unknown shapes give nil.
func MarkerPolygon(mk Marker, size float64) []smith.Point {
	r := size / 2
	var pts []smith.Point
	switch mk.Shape {
	case "s":
		pts = []smith.Point{{X: -r, Y: -r}, {X: r, Y: -r}, {X: r, Y: r}, {X: -r, Y: r}}
	case "o":
		for i := 0; i < 16; i++ {
			a := float64(i) * math.Pi / 8
			pts = append(pts, smith.Point{X: r * math.Cos(a), Y: r * math.Sin(a)})
		}
	case "^":
		pts = []smith.Point{{X: 0, Y: -r}, {X: r * 0.866, Y: r / 2}, {X: -r * 0.866, Y: r / 2}}
	case "v":
		pts = []smith.Point{{X: 0, Y: r}, {X: -r * 0.866, Y: -r / 2}, {X: r * 0.866, Y: -r / 2}}
	case "d", "D":
		pts = []smith.Point{{X: 0, Y: -r}, {X: r * 0.7, Y: 0}, {X: 0, Y: r}, {X: -r * 0.7, Y: 0}}
	default:
		return nil
	}

	sin, cos := math.Sincos(mk.Angle)
	for i, p := range pts {
		pts[i] = smith.Point{
			X: mk.At.X + p.X*cos - p.Y*sin,
			Y: mk.At.Y + p.X*sin + p.Y*cos,
		}
	}
	return pts
}
