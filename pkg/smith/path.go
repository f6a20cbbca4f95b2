package smith

import "math"

// PathKind tags how a path's vertices are interpolated.
type PathKind int

const (
	KindLinear    PathKind = iota // ordinary path, vertices mapped one by one
	KindXGridline                 // constant-resistance gridline
	KindYGridline                 // constant-reactance gridline
)

func (k PathKind) String() string {
	switch k {
	case KindLinear:
		return "linear"
	case KindXGridline:
		return "x_gridline"
	case KindYGridline:
		return "y_gridline"
	}
	return "unknown"
}

// PathCode is a path segment instruction.
type PathCode uint8

const (
	MoveTo    PathCode = 1
	LineTo    PathCode = 2
	Curve4    PathCode = 4 // two control points and an end point
	ClosePath PathCode = 79
)

// Path is a sequence of vertices with optional segment codes. A nil Codes
// slice means MoveTo followed by LineTo for every other vertex.
type Path struct {
	Vertices []Point
	Codes    []PathCode
	Kind     PathKind
	Arc      *ArcDescriptor // set when the path was produced from a gridline
}

// Reversed returns the path with its vertex order reversed. Codes are kept
// in place, which keeps MoveTo/Curve4 sequences valid.
func (p Path) Reversed() Path {
	v := make([]Point, len(p.Vertices))
	for i, pt := range p.Vertices {
		v[len(v)-1-i] = pt
	}
	return Path{Vertices: v, Codes: p.Codes, Kind: p.Kind, Arc: p.Arc}
}

// ArcDescriptor is a circular arc in display space. Angles are in degrees
// with Start <= End; Reversed means the source path ran from End to Start.
type ArcDescriptor struct {
	Center   Point
	Diameter float64
	Start    float64
	End      float64
	Reversed bool
}

// Radius returns half the diameter.
func (a ArcDescriptor) Radius() float64 {
	return a.Diameter / 2
}

// PointAt returns the point of the arc's circle at angle deg.
func (a ArcDescriptor) PointAt(deg float64) Point {
	rad := deg * math.Pi / 180
	r := a.Radius()
	return Point{a.Center.X + r*math.Cos(rad), a.Center.Y + r*math.Sin(rad)}
}

// ArcPath approximates the arc with cubic Bézier segments, at most a
// quarter turn each. The vertex order follows the arc's direction.
func ArcPath(a ArcDescriptor) Path {
	unit := unitArc(a.Start, a.End)
	r := a.Radius()
	for i, v := range unit.Vertices {
		unit.Vertices[i] = Point{a.Center.X + r*v.X, a.Center.Y + r*v.Y}
	}
	if a.Reversed {
		return unit.Reversed()
	}
	return unit
}

// unitArc builds a unit-circle arc from theta1 to theta2 degrees,
// counterclockwise.
func unitArc(theta1, theta2 float64) Path {
	eta1 := theta1
	eta2 := theta2 - 360*math.Floor((theta2-theta1)/360)
	if theta2 != theta1 && eta2 <= eta1 {
		eta2 += 360
	}
	eta1 *= math.Pi / 180
	eta2 *= math.Pi / 180

	n := int(math.Pow(2, math.Ceil((eta2-eta1)/(math.Pi/2))))
	if n < 1 {
		n = 1
	}
	deta := (eta2 - eta1) / float64(n)
	t := math.Tan(0.5 * deta)
	alpha := math.Sin(deta) * (math.Sqrt(4+3*t*t) - 1) / 3

	vertices := make([]Point, 0, 3*n+1)
	codes := make([]PathCode, 0, 3*n+1)
	vertices = append(vertices, Point{math.Cos(eta1), math.Sin(eta1)})
	codes = append(codes, MoveTo)
	for i := 0; i < n; i++ {
		a := eta1 + float64(i)*deta
		b := eta1 + float64(i+1)*deta
		if i == n-1 {
			b = eta2
		}
		xa, ya := math.Cos(a), math.Sin(a)
		xb, yb := math.Cos(b), math.Sin(b)
		vertices = append(vertices,
			Point{xa - alpha*ya, ya + alpha*xa},
			Point{xb + alpha*yb, yb - alpha*xb},
			Point{xb, yb},
		)
		codes = append(codes, Curve4, Curve4, Curve4)
	}
	return Path{Vertices: vertices, Codes: codes}
}
