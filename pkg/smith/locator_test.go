package smith

import (
	"fmt"
	"math"
	"testing"
)

func TestNiceRound(t *testing.T) {
	tests := []struct {
		num       float64
		precision int
		down      bool
		want      float64
	}{
		{0.5, 2, true, 0.5},
		{0.37, 2, false, 0.4},
		{0.37, 2, true, 0.3},
		{12.3, 2, false, 13},
		{12.3, 2, true, 12},
		{1, 2, true, 1},
		{50, 2, true, 50},
	}
	for _, tt := range tests {
		got := NiceRound(tt.num, tt.precision, tt.down)
		if !closeTo(got, tt.want, 1e-12) {
			t.Errorf("NiceRound(%g, %d, %v): expected %g, got %g", tt.num, tt.precision, tt.down, tt.want, got)
		}
	}
}

func contains(ticks []float64, v, tol float64) bool {
	for _, t := range ticks {
		if math.Abs(t-v) <= tol {
			return true
		}
	}
	return false
}

func TestRealLocatorTicks(t *testing.T) {
	norm := Normalization{Impedance: 50, Normalize: true}
	loc := NewRealLocator(&norm, 10, 2)
	ticks := loc.Ticks()

	if len(ticks) < 5 {
		t.Fatalf("Expected at least 5 ticks, got %v", ticks)
	}
	for i := 1; i < len(ticks); i++ {
		if ticks[i] <= ticks[i-1] {
			t.Errorf("Ticks not strictly increasing at %d: %v", i, ticks)
		}
	}
	if ticks[0] != 0 {
		t.Errorf("Expected first tick 0, got %g", ticks[0])
	}
	if ticks[len(ticks)-1] < NearInfinity {
		t.Errorf("Expected last tick near infinity, got %g", ticks[len(ticks)-1])
	}
	if !contains(ticks, 1, 1e-9) {
		t.Errorf("Expected tick at 1, got %v", ticks)
	}
	if len(ticks) > 10+2 {
		t.Errorf("Expected at most 12 ticks, got %d", len(ticks))
	}
}

// Both range ends are kept next to the rounded midpoint, so a locator
// can exceed Steps+1 ticks by one.
func TestRealLocatorTickCountBound(t *testing.T) {
	norm := Normalization{Impedance: 50, Normalize: true}
	for n := 1; n <= 10; n++ {
		t.Run(fmt.Sprintf("steps=%d", n), func(t *testing.T) {
			ticks := NewRealLocator(&norm, n, 2).Ticks()
			if len(ticks) > n+2 {
				t.Errorf("Expected at most %d ticks, got %d: %v", n+2, len(ticks), ticks)
			}
			if len(ticks) < 3 {
				t.Errorf("Expected 0, the midpoint and infinity, got %v", ticks)
			}
		})
	}

	ticks := NewRealLocator(&norm, 1, 2).Ticks()
	if len(ticks) != 3 || ticks[0] != 0 || !closeTo(ticks[1], 1, 1e-9) || ticks[2] < NearInfinity {
		t.Errorf("Expected [0 1 inf] for one step, got %v", ticks)
	}
}

func TestRealLocatorClampsNegative(t *testing.T) {
	norm := Normalization{Impedance: 50, Normalize: true}
	loc := NewRealLocator(&norm, 6, 2)
	for _, v := range loc.TickValues(-5, 10) {
		if v < 0 {
			t.Errorf("Expected no negative ticks, got %g", v)
		}
	}
}

func TestRealLocatorFollowsNormalization(t *testing.T) {
	norm := Normalization{Impedance: 50, Normalize: false}
	loc := NewRealLocator(&norm, 10, 2)
	before := loc.Ticks()
	if !contains(before, 50, 1e-6) {
		t.Errorf("Expected tick at 50 unnormalized, got %v", before)
	}

	norm.Normalize = true
	after := loc.Ticks()
	if !contains(after, 1, 1e-9) {
		t.Errorf("Expected tick at 1 normalized, got %v", after)
	}
	same := len(before) == len(after)
	for i := 0; same && i < len(before); i++ {
		same = before[i] == after[i]
	}
	if same {
		t.Errorf("Expected ticks recomputed after normalization change, got %v twice", after)
	}
}

func TestRealLocatorSetSteps(t *testing.T) {
	norm := Normalization{Impedance: 50, Normalize: true}
	loc := NewRealLocator(&norm, 4, 2)
	few := loc.Ticks()
	loc.SetSteps(20)
	many := loc.Ticks()
	if len(many) <= len(few) {
		t.Errorf("Expected more ticks after SetSteps(20): %d vs %d", len(many), len(few))
	}
}

func TestImagLocatorSymmetric(t *testing.T) {
	norm := Normalization{Impedance: 50, Normalize: true}
	for _, steps := range []int{4, 8, 16, 24} {
		loc := NewImagLocator(&norm, steps, 2)
		ticks := loc.Ticks()
		n := len(ticks)
		if n%2 != 1 {
			t.Fatalf("steps=%d: expected odd tick count, got %d", steps, n)
		}
		if ticks[n/2] != 0 {
			t.Errorf("steps=%d: expected exact zero in the middle, got %g", steps, ticks[n/2])
		}
		for i := 0; i < n; i++ {
			if ticks[i] != -ticks[n-1-i] {
				t.Errorf("steps=%d: ticks not mirrored at %d: %g vs %g", steps, i, ticks[i], ticks[n-1-i])
			}
		}
		if !contains(ticks, 1, 1e-9) || !contains(ticks, -1, 1e-9) {
			t.Errorf("steps=%d: expected ±1 ticks, got %v", steps, ticks)
		}
	}
}

func TestImagLocatorTickValuesFilters(t *testing.T) {
	norm := Normalization{Impedance: 50, Normalize: true}
	loc := NewImagLocator(&norm, 16, 2)
	for _, v := range loc.TickValues(0, 5) {
		if v < 0 || v > 5 {
			t.Errorf("Expected ticks inside [0, 5], got %g", v)
		}
	}
}

func TestTicksReturnCopies(t *testing.T) {
	norm := Normalization{Impedance: 50, Normalize: true}
	loc := NewImagLocator(&norm, 16, 2)
	a := loc.Ticks()
	a[0] = 42
	if b := loc.Ticks(); b[0] == 42 {
		t.Errorf("Expected cached ticks to be unaffected by caller writes")
	}
}

func TestAutoMinorLocator(t *testing.T) {
	loc := NewAutoMinorLocator(4)
	got := loc.TickValues([]float64{0, 1, 2}, 0, 10)
	want := []float64{0.25, 0.5, 0.75, 1.25, 1.5, 1.75}
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if !closeTo(got[i], want[i], 1e-12) {
			t.Errorf("Tick %d: expected %g, got %g", i, want[i], got[i])
		}
	}

	clipped := loc.TickValues([]float64{0, 1, 2}, 0, 1)
	if len(clipped) != 3 {
		t.Errorf("Expected 3 ticks inside [0, 1], got %v", clipped)
	}

	loc.N = 1
	if got := loc.TickValues([]float64{0, 1, 2}, 0, 10); len(got) != 0 {
		t.Errorf("Expected no minor ticks for N=1, got %v", got)
	}
}
