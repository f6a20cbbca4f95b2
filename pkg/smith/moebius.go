package smith

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Moebius maps a (normalized) impedance z onto the unit disk:
// w = 1 - 2k/(z+k).
func Moebius(z complex128, k float64) complex128 {
	kc := complex(k, 0)
	return 1 - 2*kc/(z+kc)
}

// InverseMoebius maps a display point w back to impedance space:
// z = k(1+w)/(1-w). The pole at w = 1 is moved inside the disk by Epsilon.
func InverseMoebius(w complex128, k float64) complex128 {
	if w == 1 {
		w = 1 - Epsilon
	}
	kc := complex(k, 0)
	return kc * (1 + w) / (1 - w)
}

// Transformer maps points between two coordinate spaces.
type Transformer interface {
	TransformPoint(p Point) Point
	TransformPoints(ps []Point) []Point
	Inverted() Transformer
}

// MoebiusTransform maps data space into the chart's display space.
// It reads the normalization context on every call.
type MoebiusTransform struct {
	norm *Normalization
}

// NewMoebiusTransform binds a transform to a normalization context.
func NewMoebiusTransform(norm *Normalization) *MoebiusTransform {
	return &MoebiusTransform{norm: norm}
}

func (t *MoebiusTransform) k() float64 { return t.norm.K() }

// TransformPoint maps a single point.
func (t *MoebiusTransform) TransformPoint(p Point) Point {
	return PointOf(Moebius(p.Complex(), t.k()))
}

// TransformPoints maps each point independently.
func (t *MoebiusTransform) TransformPoints(ps []Point) []Point {
	k := t.k()
	out := make([]Point, len(ps))
	for i, p := range ps {
		out[i] = PointOf(Moebius(p.Complex(), k))
	}
	return out
}

// Inverted returns the display-to-data transform sharing the same context.
func (t *MoebiusTransform) Inverted() Transformer {
	return &InverseMoebiusTransform{norm: t.norm}
}

// TransformPath maps a path into display space. Gridline paths become
// circular arcs; linear paths are mapped vertex by vertex.
func (t *MoebiusTransform) TransformPath(p Path) (Path, error) {
	switch p.Kind {
	case KindLinear:
		return Path{
			Vertices: t.TransformPoints(p.Vertices),
			Codes:    p.Codes,
			Kind:     KindLinear,
		}, nil
	case KindXGridline, KindYGridline:
		arc, err := t.Arc(p)
		if err != nil {
			return Path{}, err
		}
		out := ArcPath(arc)
		out.Arc = &arc
		return out, nil
	}
	return Path{}, fmt.Errorf("%w: %v", ErrUnsupportedPathKind, p.Kind)
}

// Arc reconstructs the circular arc a two-vertex gridline path stands for.
func (t *MoebiusTransform) Arc(p Path) (ArcDescriptor, error) {
	if len(p.Vertices) != 2 {
		return ArcDescriptor{}, fmt.Errorf("%w: gridline needs 2 vertices, got %d", ErrPrecondition, len(p.Vertices))
	}
	k := t.k()
	v0, v1 := p.Vertices[0], p.Vertices[1]
	z0 := Moebius(v0.Complex(), k)
	z1 := Moebius(v1.Complex(), k)

	var zm complex128
	switch p.Kind {
	case KindXGridline:
		if v0.X != v1.X {
			return ArcDescriptor{}, fmt.Errorf("%w: constant-resistance gridline has x %g and %g", ErrPrecondition, v0.X, v1.X)
		}
		zm = 0.5 * (1 + Moebius(complex(v0.X, 0), k))
	case KindYGridline:
		if v0.Y != v1.Y {
			return ArcDescriptor{}, fmt.Errorf("%w: constant-reactance gridline has y %g and %g", ErrPrecondition, v0.Y, v1.Y)
		}
		zm = 1 + t.norm.reactanceScale()/complex(v0.Y, 0)
	default:
		return ArcDescriptor{}, fmt.Errorf("%w: %v", ErrUnsupportedPathKind, p.Kind)
	}

	arc := ArcDescriptor{
		Center:   PointOf(zm),
		Diameter: 2 * cmplx.Abs(zm-1),
		Start:    degrees360(cmplx.Phase(z0 - zm)),
		End:      degrees360(cmplx.Phase(z1 - zm)),
	}
	if arc.Start > arc.End {
		arc.Start, arc.End = arc.End, arc.Start
		arc.Reversed = true
	}
	return arc, nil
}

// InverseMoebiusTransform maps display space back into data space.
type InverseMoebiusTransform struct {
	norm *Normalization
}

// TransformPoint maps a single point.
func (t *InverseMoebiusTransform) TransformPoint(p Point) Point {
	return PointOf(InverseMoebius(p.Complex(), t.norm.K()))
}

// TransformPoints maps each point independently.
func (t *InverseMoebiusTransform) TransformPoints(ps []Point) []Point {
	k := t.norm.K()
	out := make([]Point, len(ps))
	for i, p := range ps {
		out[i] = PointOf(InverseMoebius(p.Complex(), k))
	}
	return out
}

// Inverted returns the forward transform.
func (t *InverseMoebiusTransform) Inverted() Transformer {
	return &MoebiusTransform{norm: t.norm}
}

func degrees360(rad float64) float64 {
	d := math.Mod(rad*180/math.Pi, 360)
	if d < 0 {
		d += 360
	}
	if d >= 360 {
		d = 0
	}
	return d
}
