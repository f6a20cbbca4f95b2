package smith

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"testing"
)

func closeTo(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func cclose(a, b complex128, tol float64) bool {
	return cmplx.Abs(a-b) <= tol
}

func TestMoebiusKnownValues(t *testing.T) {
	tests := []struct {
		name string
		z    complex128
		k    float64
		want complex128
	}{
		{"short", 0, 1, -1},
		{"matched", 1, 1, 0},
		{"matched unnormalized", 50, 50, 0},
		{"inductive", 1 + 1i, 1, 0.2 + 0.4i},
		{"50+50j at 50", 50 + 50i, 50, 0.2 + 0.4i},
		{"pure reactance", 1i, 1, 1i},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Moebius(tt.z, tt.k)
			if !cclose(got, tt.want, 1e-12) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestMoebiusRoundTrip(t *testing.T) {
	for _, k := range []float64{1, 50, 75} {
		for _, z := range []complex128{0, 1, 1i, -1i, 0.3 + 2i, 100 - 40i, 1e4 + 1e3i} {
			w := Moebius(z, k)
			back := InverseMoebius(w, k)
			tol := 1e-9 * (cmplx.Abs(z) + k)
			if !cclose(back, z, tol) {
				t.Errorf("k=%g: expected %v after round trip, got %v", k, z, back)
			}
		}
	}
}

func TestInverseMoebiusPole(t *testing.T) {
	tests := []struct {
		k float64
	}{
		{1},
		{50},
		{0.5},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("k=%g", tt.k), func(t *testing.T) {
			z := InverseMoebius(1, tt.k)
			if cmplx.IsInf(z) || cmplx.IsNaN(z) {
				t.Fatalf("Expected finite value at the pole, got %v", z)
			}
			want := tt.k * (2 - Epsilon) / Epsilon
			if !closeTo(real(z), want, 1e-6*want) || imag(z) != 0 {
				t.Errorf("Expected %g at the pole, got %v", want, z)
			}
			if tt.k == 1 && real(z) >= Infinity {
				t.Errorf("Expected the pole below the Infinity sentinel, got %v", z)
			}
		})
	}
}

func TestTransformFollowsNormalization(t *testing.T) {
	norm := Normalization{Impedance: 50, Normalize: false}
	tr := NewMoebiusTransform(&norm)

	got := tr.TransformPoint(Point{50, 50})
	if !closeTo(got.X, 0.2, 1e-12) || !closeTo(got.Y, 0.4, 1e-12) {
		t.Errorf("Expected (0.2, 0.4), got (%g, %g)", got.X, got.Y)
	}

	norm.Normalize = true
	got = tr.TransformPoint(Point{1, 1})
	if !closeTo(got.X, 0.2, 1e-12) || !closeTo(got.Y, 0.4, 1e-12) {
		t.Errorf("Expected (0.2, 0.4) after normalizing, got (%g, %g)", got.X, got.Y)
	}

	back := tr.Inverted().TransformPoint(got)
	if !closeTo(back.X, 1, 1e-9) || !closeTo(back.Y, 1, 1e-9) {
		t.Errorf("Expected (1, 1) from inverse, got (%g, %g)", back.X, back.Y)
	}
	if _, ok := tr.Inverted().Inverted().(*MoebiusTransform); !ok {
		t.Errorf("Expected double inversion to give a forward transform")
	}
}

func TestArcResistanceGridline(t *testing.T) {
	norm := Normalization{Impedance: 50, Normalize: true}
	tr := NewMoebiusTransform(&norm)

	arc, err := tr.Arc(Gridline{Axis: AxisReal, Position: 1, Start: -1, End: 1}.Path())
	if err != nil {
		t.Fatalf("Arc failed: %v", err)
	}
	if !closeTo(arc.Center.X, 0.5, 1e-12) || !closeTo(arc.Center.Y, 0, 1e-12) {
		t.Errorf("Expected center (0.5, 0), got (%g, %g)", arc.Center.X, arc.Center.Y)
	}
	if !closeTo(arc.Diameter, 1, 1e-12) {
		t.Errorf("Expected diameter 1, got %g", arc.Diameter)
	}
	// The path runs from -1j (233.13°) to +1j (126.87°), so it is stored swapped.
	if !arc.Reversed {
		t.Errorf("Expected reversed arc")
	}
	wantStart := math.Atan2(0.4, -0.3) * 180 / math.Pi
	if !closeTo(arc.Start, wantStart, 1e-9) || !closeTo(arc.End, 360-wantStart, 1e-9) {
		t.Errorf("Expected angles (%g, %g), got (%g, %g)", wantStart, 360-wantStart, arc.Start, arc.End)
	}
	if arc.Start > arc.End {
		t.Errorf("Expected start <= end, got %g > %g", arc.Start, arc.End)
	}
}

func TestArcReactanceGridline(t *testing.T) {
	norm := Normalization{Impedance: 50, Normalize: true}
	tr := NewMoebiusTransform(&norm)

	arc, err := tr.Arc(Gridline{Axis: AxisImag, Position: 1, Start: 0, End: Infinity}.Path())
	if err != nil {
		t.Fatalf("Arc failed: %v", err)
	}
	if !closeTo(arc.Center.X, 1, 1e-12) || !closeTo(arc.Center.Y, 1, 1e-12) {
		t.Errorf("Expected center (1, 1), got (%g, %g)", arc.Center.X, arc.Center.Y)
	}
	if !closeTo(arc.Diameter, 2, 1e-12) {
		t.Errorf("Expected diameter 2, got %g", arc.Diameter)
	}
	if arc.Reversed {
		t.Errorf("Expected arc in natural order")
	}
	if !closeTo(arc.Start, 180, 1e-6) || !closeTo(arc.End, 270, 1e-6) {
		t.Errorf("Expected angles (180, 270), got (%g, %g)", arc.Start, arc.End)
	}
}

func TestArcPreconditions(t *testing.T) {
	norm := Normalization{Impedance: 50, Normalize: true}
	tr := NewMoebiusTransform(&norm)

	tests := []struct {
		name string
		path Path
	}{
		{"three vertices", Path{Vertices: []Point{{1, 0}, {1, 1}, {1, 2}}, Kind: KindXGridline}},
		{"one vertex", Path{Vertices: []Point{{1, 0}}, Kind: KindYGridline}},
		{"x mismatch", Path{Vertices: []Point{{1, 0}, {2, 1}}, Kind: KindXGridline}},
		{"y mismatch", Path{Vertices: []Point{{0, 1}, {5, 2}}, Kind: KindYGridline}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tr.TransformPath(tt.path)
			if !errors.Is(err, ErrPrecondition) {
				t.Errorf("Expected ErrPrecondition, got %v", err)
			}
		})
	}
}

func TestTransformPathUnsupportedKind(t *testing.T) {
	norm := Normalization{Impedance: 50, Normalize: true}
	tr := NewMoebiusTransform(&norm)

	_, err := tr.TransformPath(Path{Vertices: []Point{{0, 0}, {1, 1}}, Kind: PathKind(9)})
	if !errors.Is(err, ErrUnsupportedPathKind) {
		t.Errorf("Expected ErrUnsupportedPathKind, got %v", err)
	}
}

func TestTransformPathLinear(t *testing.T) {
	norm := Normalization{Impedance: 50, Normalize: true}
	tr := NewMoebiusTransform(&norm)

	in := Path{Vertices: []Point{{0, 0}, {1, 0}, {1, 1}}, Kind: KindLinear}
	out, err := tr.TransformPath(in)
	if err != nil {
		t.Fatalf("TransformPath failed: %v", err)
	}
	if out.Arc != nil {
		t.Errorf("Expected no arc for a linear path")
	}
	want := []Point{{-1, 0}, {0, 0}, {0.2, 0.4}}
	for i, w := range want {
		if !closeTo(out.Vertices[i].X, w.X, 1e-12) || !closeTo(out.Vertices[i].Y, w.Y, 1e-12) {
			t.Errorf("Vertex %d: expected %v, got %v", i, w, out.Vertices[i])
		}
	}
}

func TestTransformPathGridlineArcEndpoints(t *testing.T) {
	norm := Normalization{Impedance: 50, Normalize: true}
	tr := NewMoebiusTransform(&norm)

	g := Gridline{Axis: AxisReal, Position: 1, Start: -1, End: 1}
	out, err := tr.TransformPath(g.Path())
	if err != nil {
		t.Fatalf("TransformPath failed: %v", err)
	}
	if out.Arc == nil {
		t.Fatalf("Expected arc descriptor on gridline path")
	}
	first, last := out.Vertices[0], out.Vertices[len(out.Vertices)-1]
	// Reversed arcs keep the source direction: -1j first, +1j last.
	if !closeTo(first.X, 0.2, 1e-9) || !closeTo(first.Y, -0.4, 1e-9) {
		t.Errorf("Expected path to start at (0.2, -0.4), got %v", first)
	}
	if !closeTo(last.X, 0.2, 1e-9) || !closeTo(last.Y, 0.4, 1e-9) {
		t.Errorf("Expected path to end at (0.2, 0.4), got %v", last)
	}
}

func TestArcPathStaysOnCircle(t *testing.T) {
	arc := ArcDescriptor{Center: Point{1, 1}, Diameter: 2, Start: 180, End: 270}
	p := ArcPath(arc)
	if p.Codes[0] != MoveTo {
		t.Errorf("Expected MoveTo first, got %d", p.Codes[0])
	}
	if (len(p.Vertices)-1)%3 != 0 {
		t.Errorf("Expected 3n+1 vertices, got %d", len(p.Vertices))
	}
	// Segment end points lie exactly on the circle.
	for i := 0; i < len(p.Vertices); i += 3 {
		v := p.Vertices[i]
		r := math.Hypot(v.X-1, v.Y-1)
		if !closeTo(r, 1, 1e-12) {
			t.Errorf("Vertex %d off circle: radius %g", i, r)
		}
	}
	start := arc.PointAt(180)
	if !closeTo(p.Vertices[0].X, start.X, 1e-12) || !closeTo(p.Vertices[0].Y, start.Y, 1e-12) {
		t.Errorf("Expected start %v, got %v", start, p.Vertices[0])
	}
}
