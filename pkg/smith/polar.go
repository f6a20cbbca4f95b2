package smith

import "math"

// PolarTranslate pushes points radially away from (or, inverted, toward)
// a center in display coordinates. The vertical offset gets an extra half
// font size so text baselines clear the circle.
type PolarTranslate struct {
	Center   Point
	Pad      float64
	FontSize float64
	inward   bool
}

// NewPolarTranslate returns an outward translate.
func NewPolarTranslate(center Point, pad, fontSize float64) PolarTranslate {
	return PolarTranslate{Center: center, Pad: pad, FontSize: fontSize}
}

// TransformPoint translates p. A point at the center is returned unchanged.
func (t PolarTranslate) TransformPoint(p Point) Point {
	dx, dy := p.X-t.Center.X, p.Y-t.Center.Y
	if dx == 0 && dy == 0 {
		return p
	}
	ang := math.Atan2(dy, dx)
	sign := 1.0
	if t.inward {
		sign = -1
	}
	return Point{
		X: p.X + sign*math.Cos(ang)*t.Pad,
		Y: p.Y + sign*math.Sin(ang)*(t.Pad+0.5*t.FontSize),
	}
}

// TransformPoints translates each point.
func (t PolarTranslate) TransformPoints(ps []Point) []Point {
	out := make([]Point, len(ps))
	for i, p := range ps {
		out[i] = t.TransformPoint(p)
	}
	return out
}

// Inverted returns the translate in the opposite direction.
func (t PolarTranslate) Inverted() Transformer {
	t.inward = !t.inward
	return t
}
