package smith

import (
	"math"
	"math/cmplx"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

// NiceRound rounds num to a value with precision significant digits per
// decade. down selects floor over ceil when the value sits between
// representable steps.
func NiceRound(num float64, precision int, down bool) float64 {
	exp := math.Ceil(math.Log10(math.Abs(num) + Epsilon))
	if exp < 1 {
		exp++
	}
	norm := math.Pow(10, -(exp - float64(precision)))
	normed := num * norm
	if normed < 3.3 {
		norm *= 2
	} else if normed > 50 {
		norm /= 10
	}

	rem := pyMod(normed, 10)
	var round func(float64) float64
	switch {
	case !(1 < rem && rem < 9):
		// A remainder of exactly 1 would round onto a neighbouring tick.
		if math.Abs(rem-1) < Epsilon {
			num -= 0.5 / norm
		}
		round = math.RoundToEven
	case down:
		round = math.Floor
	default:
		round = math.Ceil
	}
	return round(scalar.RoundEven(num*norm, 1)) / norm
}

func pyMod(a, b float64) float64 {
	m := math.Mod(a, b)
	if m < 0 {
		m += b
	}
	return m
}

// tickSpace maps an axis into the space ticks are spaced evenly in.
type tickSpace struct {
	forward    func(float64) float64
	inverse    func(float64) float64
	outOfRange func(float64) bool
}

// walkTicks places ticks outward from the rounded midpoint of the
// transformed range, rounding every candidate back in native space.
func walkTicks(s tickSpace, vmin, vmax float64, steps, precision int) []float64 {
	tmin, tmax := s.forward(vmin), s.forward(vmax)
	mean := s.forward(NiceRound(s.inverse(0.5*(tmin+tmax)), precision, true))
	result := []float64{tmin, tmax, mean}

	step := math.Abs(tmin-tmax) / float64(steps+1)
	dirs := []struct {
		sgn  float64
		down bool
		end  float64
	}{
		{1, false, tmax},
		{-1, true, tmin},
	}
	for _, dir := range dirs {
		d := step
		first := 0.0
		last := mean
		for {
			next := last + d*dir.sgn
			if s.outOfRange(next) || math.Abs(dir.end-next) < d/2 {
				break
			}
			next = s.forward(NiceRound(s.inverse(next), precision, dir.down))
			if (next-last)*dir.sgn <= 0 {
				break
			}
			d = math.Abs(next - last)
			if first == 0 {
				first = d
			}
			last = next
			result = append(result, last)
		}
		// The opposite side starts with the first step actually taken.
		if first > 0 {
			step = first
		}
	}

	ticks := make([]float64, len(result))
	for i, t := range result {
		ticks[i] = s.inverse(t)
	}
	sort.Float64s(ticks)
	return dedupe(ticks)
}

// dedupe drops neighbours that are equal within tolerance from a sorted slice.
func dedupe(sorted []float64) []float64 {
	if len(sorted) == 0 {
		return sorted
	}
	out := sorted[:1]
	for _, v := range sorted[1:] {
		prev := out[len(out)-1]
		if math.Abs(v-prev) <= Epsilon*math.Max(1, math.Abs(prev)) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// tickCache remembers the last computed tick set and what it depends on.
type tickCache struct {
	valid            bool
	vmin, vmax, k    float64
	steps, precision int
	ticks            []float64
}

func (c *tickCache) lookup(vmin, vmax, k float64, steps, precision int) ([]float64, bool) {
	if !c.valid || c.vmin != vmin || c.vmax != vmax || c.k != k ||
		c.steps != steps || c.precision != precision {
		return nil, false
	}
	return append([]float64(nil), c.ticks...), true
}

func (c *tickCache) store(vmin, vmax, k float64, steps, precision int, ticks []float64) {
	*c = tickCache{
		valid: true, vmin: vmin, vmax: vmax, k: k,
		steps: steps, precision: precision,
		ticks: append([]float64(nil), ticks...),
	}
}

// RealLocator places at most Steps+1 resistance ticks on [0, ∞).
type RealLocator struct {
	Steps     int
	Precision int
	norm      *Normalization
	cache     tickCache
}

// NewRealLocator creates a real-axis locator reading norm on every call.
func NewRealLocator(norm *Normalization, steps, precision int) *RealLocator {
	return &RealLocator{Steps: steps, Precision: precision, norm: norm}
}

// SetSteps changes the division count and drops cached ticks.
func (l *RealLocator) SetSteps(n int) {
	l.Steps = n
	l.Invalidate()
}

// Invalidate drops cached ticks.
func (l *RealLocator) Invalidate() {
	l.cache = tickCache{}
}

// Ticks returns the ticks covering the whole real axis.
func (l *RealLocator) Ticks() []float64 {
	return l.TickValues(0, Infinity)
}

// TickValues returns sorted ticks for [vmin, vmax]. Negative bounds are
// clamped to zero.
func (l *RealLocator) TickValues(vmin, vmax float64) []float64 {
	vmin = math.Max(vmin, 0)
	k := l.norm.K()
	if ticks, ok := l.cache.lookup(vmin, vmax, k, l.Steps, l.Precision); ok {
		return ticks
	}
	space := tickSpace{
		forward: func(x float64) float64 {
			return real(Moebius(complex(x, 0), k))
		},
		inverse: func(t float64) float64 {
			return real(InverseMoebius(complex(t, 0), k))
		},
		outOfRange: func(t float64) bool {
			return math.Abs(t) > 1
		},
	}
	ticks := walkTicks(space, vmin, vmax, l.Steps, l.Precision)
	l.cache.store(vmin, vmax, k, l.Steps, l.Precision, ticks)
	return ticks
}

// ImagLocator places reactance ticks symmetric about zero. Half of Steps
// is used for each sign.
type ImagLocator struct {
	Steps     int
	Precision int
	norm      *Normalization
	cache     tickCache
}

// NewImagLocator creates an imaginary-axis locator reading norm on every call.
func NewImagLocator(norm *Normalization, steps, precision int) *ImagLocator {
	return &ImagLocator{Steps: steps, Precision: precision, norm: norm}
}

// SetSteps changes the division count and drops cached ticks.
func (l *ImagLocator) SetSteps(n int) {
	l.Steps = n
	l.Invalidate()
}

// Invalidate drops cached ticks.
func (l *ImagLocator) Invalidate() {
	l.cache = tickCache{}
}

// Ticks returns an odd-length tick set, exactly symmetric about zero.
func (l *ImagLocator) Ticks() []float64 {
	k := l.norm.K()
	if ticks, ok := l.cache.lookup(0, Infinity, k, l.Steps, l.Precision); ok {
		return ticks
	}
	space := tickSpace{
		forward: func(y float64) float64 {
			return math.Pi - cmplx.Phase(Moebius(complex(0, y), k))
		},
		inverse: func(t float64) float64 {
			return imag(-InverseMoebius(cmplx.Exp(complex(0, math.Pi+t)), k))
		},
		outOfRange: func(t float64) bool {
			return !(0 <= t && t <= math.Pi)
		},
	}
	half := walkTicks(space, 0, Infinity, l.Steps/2, l.Precision)

	positive := make([]float64, 0, len(half))
	for _, v := range half {
		if v > Epsilon {
			positive = append(positive, v)
		}
	}
	ticks := make([]float64, 0, 2*len(positive)+1)
	for i := len(positive) - 1; i >= 0; i-- {
		ticks = append(ticks, -positive[i])
	}
	ticks = append(ticks, 0)
	ticks = append(ticks, positive...)

	l.cache.store(0, Infinity, k, l.Steps, l.Precision, ticks)
	return append([]float64(nil), ticks...)
}

// TickValues returns the symmetric ticks that fall inside [vmin, vmax].
func (l *ImagLocator) TickValues(vmin, vmax float64) []float64 {
	var out []float64
	for _, t := range l.Ticks() {
		if vmin <= t && t <= vmax {
			out = append(out, t)
		}
	}
	return out
}

// AutoMinorLocator subdivides each major interval into N parts.
type AutoMinorLocator struct {
	N      int
	majors []float64
	vmin   float64
	vmax   float64
	n      int
	ticks  []float64
	valid  bool
}

// NewAutoMinorLocator creates a minor locator with n subdivisions.
func NewAutoMinorLocator(n int) *AutoMinorLocator {
	return &AutoMinorLocator{N: n}
}

// Invalidate drops cached ticks.
func (l *AutoMinorLocator) Invalidate() {
	l.valid = false
}

// TickValues returns the N-1 interior points of every interval between
// adjacent majors that lie inside [vmin, vmax].
func (l *AutoMinorLocator) TickValues(majors []float64, vmin, vmax float64) []float64 {
	if l.valid && l.n == l.N && l.vmin == vmin && l.vmax == vmax && floats.Equal(l.majors, majors) {
		return append([]float64(nil), l.ticks...)
	}

	var ticks []float64
	if l.N > 1 {
		span := make([]float64, l.N+1)
		for i := 1; i < len(majors); i++ {
			floats.Span(span, majors[i-1], majors[i])
			for _, t := range span[1:l.N] {
				if vmin <= t && t <= vmax {
					ticks = append(ticks, t)
				}
			}
		}
	}

	l.majors = append([]float64(nil), majors...)
	l.vmin, l.vmax, l.n = vmin, vmax, l.N
	l.ticks = ticks
	l.valid = true
	return append([]float64(nil), ticks...)
}
