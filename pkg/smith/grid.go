package smith

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

// Axis selects the family of a gridline.
type Axis int

const (
	AxisReal Axis = iota // constant resistance
	AxisImag             // constant reactance
)

func (a Axis) String() string {
	if a == AxisReal {
		return "real"
	}
	return "imag"
}

// Tier is the grid density level.
type Tier int

const (
	TierMajor Tier = iota
	TierMinor
)

func (t Tier) String() string {
	if t == TierMajor {
		return "major"
	}
	return "minor"
}

// Gridline is a constant-resistance or constant-reactance line in data
// space, running from Start to End along the other coordinate.
type Gridline struct {
	Axis     Axis
	Position float64
	Start    float64
	End      float64
	Tier     Tier
}

// Path returns the two-vertex data-space path of the gridline. The
// zero-reactance line is straight and tagged linear.
func (g Gridline) Path() Path {
	if g.Axis == AxisReal {
		return Path{
			Vertices: []Point{{g.Position, g.Start}, {g.Position, g.End}},
			Kind:     KindXGridline,
		}
	}
	kind := KindYGridline
	if math.Abs(g.Position) < Epsilon {
		kind = KindLinear
	}
	return Path{
		Vertices: []Point{{g.Start, g.Position}, {g.End, g.Position}},
		Kind:     kind,
	}
}

// GridBuilder turns tick sets into gridlines.
type GridBuilder struct {
	Norm Normalization
}

func (b GridBuilder) m(x, y float64) complex128 {
	return Moebius(complex(x, y), b.Norm.K())
}

// Major builds the major tier from the major tick sets.
func (b GridBuilder) Major(p GridParams, xticks, yticks []float64) ([]Gridline, error) {
	if !p.Fancy {
		return plainGrid(TierMajor, xticks, yticks)
	}
	if err := p.Threshold.validate(); err != nil {
		return nil, err
	}
	ys, err := symmetricHalf(yticks)
	if err != nil {
		return nil, err
	}
	xs := sortedCopy(xticks)
	thrX, thrY := p.Threshold.Absolute()

	c := collector{tier: TierMajor}
	c.add(AxisImag, ys[0], 0, Infinity)

	// Merge reactance segments that crowd together at this resistance.
	tmp := append([]float64(nil), ys...)
	for _, x := range xs {
		for k := 1; k < len(tmp); {
			y0, y1 := tmp[k-1], tmp[k]
			if cmplx.Abs(b.m(x, y0)-b.m(x, y1)) < thrX {
				c.add(AxisImag, y1, 0, x)
				c.add(AxisImag, -y1, 0, x)
				tmp = append(tmp[:k], tmp[k+1:]...)
			} else {
				k++
			}
		}
	}

	// Resistance ticks removed here stay removed for the outer bands.
	for i := 1; i < len(ys); i++ {
		y0, y1 := ys[i-1], ys[i]
		for k := 1; k < len(xs); {
			x0, x1 := xs[k-1], xs[k]
			if cmplx.Abs(b.m(x0, y1)-b.m(x1, y1)) < thrY {
				c.add(AxisReal, x1, -y0, y0)
				xs = append(xs[:k], xs[k+1:]...)
			} else {
				k++
			}
		}
	}
	return c.result()
}

// Minor builds the minor tier. Plain mode uses the minor tick sets; fancy
// mode subdivides the cells of the major tick grid and skips anything
// already covered by a major gridline.
func (b GridBuilder) Minor(p GridParams, xMajor, yMajor, xMinor, yMinor []float64, major []Gridline) ([]Gridline, error) {
	if !p.Fancy {
		return plainGrid(TierMinor, xMinor, yMinor)
	}
	if err := p.Threshold.validate(); err != nil {
		return nil, err
	}
	if err := validateDividers(p.Dividers); err != nil {
		return nil, err
	}
	ys, err := symmetricHalf(yMajor)
	if err != nil {
		return nil, err
	}
	xs := sortedCopy(xMajor)
	dividers := append([]int(nil), p.Dividers...)
	sort.Ints(dividers)

	lenX, lenY := len(xs)-1, len(ys)-1
	if lenX < 1 || lenY < 1 {
		return nil, nil
	}
	div := b.divisorGrid(xs, ys, dividers, p.Threshold)

	var realLines, imagLines []Gridline
	for i := 0; i < lenX; i++ {
		x0, x1 := xs[i], xs[i+1]
		for k := 0; k < lenY; k++ {
			y0, y1 := ys[k], ys[k+1]
			xd, yd := div[i][k][0], div[i][k][1]
			for _, x := range linspace(x0, x1, xd+1)[1:] {
				x = round7(x)
				realLines = append(realLines,
					Gridline{AxisReal, x, round7(y0), round7(y1), TierMinor},
					Gridline{AxisReal, x, round7(-y1), round7(-y0), TierMinor})
			}
			for _, y := range linspace(y0, y1, yd+1)[1:] {
				y = round7(y)
				imagLines = append(imagLines,
					Gridline{AxisImag, y, round7(x0), round7(x1), TierMinor},
					Gridline{AxisImag, -y, round7(x0), round7(x1), TierMinor})
			}
		}
	}

	c := collector{tier: TierMinor}
	for _, lines := range [][]Gridline{realLines, imagLines} {
		for _, g := range coalesce(dropCovered(lines, major)) {
			c.add(g.Axis, g.Position, g.Start, g.End)
		}
	}
	return c.result()
}

// CellDivisors picks how often a cell between adjacent major ticks is
// subdivided: the largest divider, walking the ascending list, whose
// sub-gap at the cell's far edge still exceeds the threshold.
func (b GridBuilder) CellDivisors(x0, x1, y0, y1 float64, dividers []int, thr Threshold) (xdiv, ydiv int) {
	thrX, thrY := thr.Absolute()
	k := b.Norm.K()
	xm := RealInterp([]float64{x0, x1}, 2, k)[1]
	ym := ImagInterp([]float64{y0, y1}, 2, k)[1]

	xdiv, ydiv = dividers[0], dividers[0]
	for _, d := range dividers[1:] {
		if cmplx.Abs(b.m(x1-(x1-x0)/float64(d), ym)-b.m(x1, ym)) > thrX {
			xdiv = d
		} else {
			break
		}
	}
	for _, d := range dividers[1:] {
		if cmplx.Abs(b.m(xm, y1)-b.m(xm, y1-(y1-y0)/float64(d))) > thrY {
			ydiv = d
		} else {
			break
		}
	}
	return xdiv, ydiv
}

// divisorGrid returns the smoothed (x, y) divisors of every cell between
// adjacent ticks. xs and ys must hold at least two values each.
func (b GridBuilder) divisorGrid(xs, ys []float64, dividers []int, thr Threshold) [][][2]int {
	div := make([][][2]int, len(xs)-1)
	for i := range div {
		div[i] = make([][2]int, len(ys)-1)
		for k := range div[i] {
			xd, yd := b.CellDivisors(xs[i], xs[i+1], ys[k], ys[k+1], dividers, thr)
			div[i][k] = [2]int{xd, yd}
		}
	}
	b.smoothDivisors(div, xs, ys)
	return div
}

// smoothDivisors post-processes the per-cell divisors. Along the real
// axis the density never grows toward infinity, and the cells around the
// unit circle (r = 1, x = ±1) take over the density of their edge cell.
func (b GridBuilder) smoothDivisors(div [][][2]int, xs, ys []float64) {
	lenX, lenY := len(div), len(div[0])
	for i := lenX - 2; i >= 0; i-- {
		if div[i+1][0][0] > div[i][0][0] {
			div[i][0][0] = div[i+1][0][0]
		}
	}

	k := b.Norm.K()
	idx := sort.SearchFloat64s(xs, real(InverseMoebius(0, k))) + 1
	idy := sort.SearchFloat64s(ys, imag(InverseMoebius(1i, k)))
	if idx > idy {
		for d := 0; d < idy; d++ {
			delta := idx - idy + d
			if delta >= lenX || d >= lenY {
				break
			}
			v := div[delta][0]
			for j := 0; j <= d; j++ {
				div[delta][j] = v
			}
			for i := 0; i < delta; i++ {
				div[i][d] = v
			}
		}
		return
	}
	for d := 0; d < idx; d++ {
		delta := idy - idx + d
		if d >= lenX || delta >= lenY {
			break
		}
		v := div[d][0]
		for i := 0; i <= d; i++ {
			div[i][delta] = v
		}
		for j := 0; j < delta; j++ {
			div[d][j] = v
		}
	}
}

// dropCovered removes candidates that overlap a major gridline of the same
// axis and position.
func dropCovered(lines, major []Gridline) []Gridline {
	var out []Gridline
	for _, l := range lines {
		if l.Start > l.End {
			l.Start, l.End = l.End, l.Start
		}
		covered := false
		for _, q := range major {
			if q.Axis == l.Axis && math.Abs(l.Position-q.Position) < Epsilon &&
				l.End > q.Start && l.Start < q.End {
				covered = true
				break
			}
		}
		if !covered {
			out = append(out, l)
		}
	}
	return out
}

// coalesce joins lines of one axis and position whose extents touch.
func coalesce(lines []Gridline) []Gridline {
	if len(lines) == 0 {
		return nil
	}
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].Axis != lines[j].Axis {
			return lines[i].Axis < lines[j].Axis
		}
		if lines[i].Position != lines[j].Position {
			return lines[i].Position < lines[j].Position
		}
		return lines[i].Start < lines[j].Start
	})
	out := []Gridline{lines[0]}
	for _, l := range lines[1:] {
		last := &out[len(out)-1]
		if l.Axis == last.Axis && l.Position == last.Position && l.Start <= last.End+Epsilon+1e-5*math.Abs(last.End) {
			last.End = math.Max(last.End, l.End)
			continue
		}
		out = append(out, l)
	}
	return out
}

// plainGrid draws one full-length gridline per tick.
func plainGrid(tier Tier, xticks, yticks []float64) ([]Gridline, error) {
	c := collector{tier: tier}
	for _, x := range xticks {
		if x = round7(x); x < NearInfinity {
			c.add(AxisReal, x, -NearInfinity, Infinity)
		}
	}
	for _, y := range yticks {
		if y = round7(y); math.Abs(y) < NearInfinity {
			c.add(AxisImag, y, 0, Infinity)
		}
	}
	return c.result()
}

// symmetricHalf checks that ticks mirror around zero and returns the
// non-negative half, starting at zero.
func symmetricHalf(ticks []float64) ([]float64, error) {
	t := sortedCopy(ticks)
	if len(t)%2 == 0 {
		return nil, fmt.Errorf("%w: fancy grid needs an odd number of imaginary ticks, got %d", ErrPrecondition, len(t))
	}
	m := len(t) / 2
	for i := 0; i <= m; i++ {
		if math.Abs(t[m+i]+t[m-i]) >= Epsilon {
			return nil, fmt.Errorf("%w: imaginary ticks are not symmetric about zero (%g vs %g)", ErrPrecondition, t[m-i], t[m+i])
		}
	}
	half := t[m:]
	half[0] = 0
	return half, nil
}

// collector accumulates gridlines and remembers the first invalid one.
type collector struct {
	tier  Tier
	lines []Gridline
	err   error
}

func (c *collector) add(axis Axis, pos, p0, p1 float64) {
	if c.err != nil || p0 == p1 {
		return
	}
	switch axis {
	case AxisReal:
		if pos < 0 {
			c.err = fmt.Errorf("%w: negative resistance gridline %g", ErrPrecondition, pos)
			return
		}
	case AxisImag:
		if !(0 <= p0 && p0 < p1) {
			c.err = fmt.Errorf("%w: reactance gridline %g has extent [%g, %g]", ErrPrecondition, pos, p0, p1)
			return
		}
	}
	c.lines = append(c.lines, Gridline{Axis: axis, Position: pos, Start: p0, End: p1, Tier: c.tier})
}

func (c *collector) result() ([]Gridline, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.lines, nil
}

func sortedCopy(v []float64) []float64 {
	out := append([]float64(nil), v...)
	sort.Float64s(out)
	return out
}

func linspace(a, b float64, n int) []float64 {
	if n < 2 {
		return []float64{b}
	}
	return floats.Span(make([]float64, n), a, b)
}

func round7(v float64) float64 {
	return scalar.RoundEven(v, RoundDigits)
}
