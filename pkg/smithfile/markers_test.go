package smithfile

import (
	"math"
	"testing"

	"github.com/ha1tch/smith-toolkit/pkg/smith"
)

func linePoints(n int) []smith.Point {
	pts := make([]smith.Point, n)
	for i := range pts {
		pts[i] = smith.Point{X: float64(i) * 10, Y: 0}
	}
	return pts
}

func TestDecorate(t *testing.T) {
	params := smith.DefaultParams().Marker

	tests := []struct {
		name   string
		n      int
		every  int
		shapes []string
	}{
		{"single vertex", 1, 1, []string{"o"}},
		{"two vertices", 2, 1, []string{"s", "^"}},
		{"every vertex", 4, 1, []string{"s", "o", "o", "^"}},
		{"every third", 7, 3, []string{"s", "o", "^"}},
		{"last off grid", 6, 4, []string{"s", "o", "^"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decorate(linePoints(tt.n), tt.every, params, "")
			if len(got) != len(tt.shapes) {
				t.Fatalf("Expected %d markers, got %d", len(tt.shapes), len(got))
			}
			for i, mk := range got {
				if mk.Shape != tt.shapes[i] {
					t.Errorf("Marker %d: expected %q, got %q", i, tt.shapes[i], mk.Shape)
				}
			}
		})
	}
}

func TestDecorateRotation(t *testing.T) {
	params := smith.DefaultParams().Marker

	// Heading right in device space turns the up-pointing shape by 90°.
	got := Decorate(linePoints(3), 1, params, "")
	end := got[len(got)-1]
	if math.Abs(end.Angle-math.Pi/2) > 1e-9 {
		t.Errorf("Expected end angle π/2, got %.4f", end.Angle)
	}

	params.Rotate = false
	got = Decorate(linePoints(3), 1, params, "")
	if got[len(got)-1].Angle != 0 {
		t.Errorf("Expected no rotation, got %.4f", got[len(got)-1].Angle)
	}
}

func TestDecorateOverrideAndDisable(t *testing.T) {
	params := smith.DefaultParams().Marker

	got := Decorate(linePoints(3), 1, params, "d")
	if got[1].Shape != "d" {
		t.Errorf("Expected override marker d, got %q", got[1].Shape)
	}

	params.Enable = false
	if got := Decorate(linePoints(3), 1, params, ""); got != nil {
		t.Errorf("Expected no markers when disabled, got %d", len(got))
	}
}

func TestMarkerPolygon(t *testing.T) {
	at := smith.Point{X: 10, Y: 20}
	tests := []struct {
		shape string
		n     int
	}{
		{"s", 4},
		{"o", 16},
		{"^", 3},
		{"v", 3},
		{"D", 4},
		{"x", 0},
	}
	for _, tt := range tests {
		t.Run(tt.shape, func(t *testing.T) {
			poly := MarkerPolygon(Marker{At: at, Shape: tt.shape}, 8)
			if len(poly) != tt.n {
				t.Fatalf("Expected %d vertices, got %d", tt.n, len(poly))
			}
			for _, p := range poly {
				if math.Hypot(p.X-at.X, p.Y-at.Y) > 4*math.Sqrt2+1e-9 {
					t.Errorf("Vertex %v outside marker size", p)
				}
			}
		})
	}

	// A half turn flips the triangle tip downward.
	up := MarkerPolygon(Marker{At: at, Shape: "^"}, 8)
	down := MarkerPolygon(Marker{At: at, Shape: "^", Angle: math.Pi}, 8)
	if up[0].Y >= at.Y || down[0].Y <= at.Y {
		t.Errorf("Expected tip above then below, got %v and %v", up[0], down[0])
	}
}
