// Spline interpolation for plotted lines.
// Data lines are smoothed in display space with Catmull-Rom curves
// converted to cubic Bézier segments.

package smith

import "math"

// FitSpline returns the Bézier control polygon of a smooth curve through
// the given points: [P0, C1, C2, P1, C3, C4, P2, ...].
func FitSpline(points []Point) []Point {
	if len(points) <= 2 {
		return append([]Point(nil), points...)
	}

	result := []Point{points[0]}
	for i := 0; i < len(points)-1; i++ {
		p0 := points[maxInt(0, i-1)]
		p1 := points[i]
		p2 := points[minInt(len(points)-1, i+1)]
		p3 := points[minInt(len(points)-1, i+2)]

		// Catmull-Rom tangents scaled by 1/6 give the Bézier handles
		ctrl1 := Point{
			X: p1.X + (p2.X-p0.X)/6,
			Y: p1.Y + (p2.Y-p0.Y)/6,
		}
		ctrl2 := Point{
			X: p2.X - (p3.X-p1.X)/6,
			Y: p2.Y - (p3.Y-p1.Y)/6,
		}
		result = append(result, ctrl1, ctrl2, p2)
	}
	return result
}

// EvaluateSpline computes the point on a spline at parameter t ∈ [0,1].
// Each Bézier segment covers an equal share of t.
func EvaluateSpline(spline []Point, t float64) Point {
	if len(spline) == 0 {
		return Point{0, 0}
	}
	if len(spline) == 1 {
		return spline[0]
	}
	if len(spline) < 4 {
		// Linear interpolation for simple paths
		idx := int(t * float64(len(spline)-1))
		if idx >= len(spline)-1 {
			return spline[len(spline)-1]
		}
		localT := t*float64(len(spline)-1) - float64(idx)
		return Point{
			X: spline[idx].X*(1-localT) + spline[idx+1].X*localT,
			Y: spline[idx].Y*(1-localT) + spline[idx+1].Y*localT,
		}
	}

	p0, p1, p2, p3, localT := segmentAt(spline, t)
	mt := 1 - localT
	mt2 := mt * mt
	mt3 := mt2 * mt
	t2 := localT * localT
	t3 := t2 * localT

	return Point{
		X: mt3*p0.X + 3*mt2*localT*p1.X + 3*mt*t2*p2.X + t3*p3.X,
		Y: mt3*p0.Y + 3*mt2*localT*p1.Y + 3*mt*t2*p2.Y + t3*p3.Y,
	}
}

// segmentAt returns the Bézier segment containing t and the local parameter.
func segmentAt(spline []Point, t float64) (p0, p1, p2, p3 Point, localT float64) {
	numSegments := (len(spline) - 1) / 3
	if numSegments < 1 {
		numSegments = 1
	}
	segment := int(t * float64(numSegments))
	if segment >= numSegments {
		segment = numSegments - 1
	}
	if segment < 0 {
		segment = 0
	}
	localT = math.Max(0, math.Min(1, t*float64(numSegments)-float64(segment)))

	i := segment * 3
	return spline[i], spline[i+1], spline[i+2], spline[i+3], localT
}

// InterpolateSteps inserts n spline points between each pair of points.
func InterpolateSteps(points []Point, n int) []Point {
	if len(points) < 2 || n < 1 {
		return append([]Point(nil), points...)
	}
	spline := FitSpline(points)
	segments := float64(len(points) - 1)
	out := make([]Point, 0, (len(points)-1)*(n+1)+1)
	for i := 0; i < len(points)-1; i++ {
		out = append(out, points[i])
		for j := 1; j <= n; j++ {
			t := (float64(i) + float64(j)/float64(n+1)) / segments
			out = append(out, EvaluateSpline(spline, t))
		}
	}
	return append(out, points[len(points)-1])
}

// Equidistant resamples the spline through points into n points spaced
// evenly along its length.
func Equidistant(points []Point, n int) []Point {
	if len(points) < 2 || n < 2 {
		return append([]Point(nil), points...)
	}
	spline := FitSpline(points)

	const samples = 1000
	ts := make([]float64, samples+1)
	cum := make([]float64, samples+1)
	prev := EvaluateSpline(spline, 0)
	for i := 1; i <= samples; i++ {
		ts[i] = float64(i) / samples
		curr := EvaluateSpline(spline, ts[i])
		cum[i] = cum[i-1] + math.Hypot(curr.X-prev.X, curr.Y-prev.Y)
		prev = curr
	}

	total := cum[samples]
	out := make([]Point, n)
	j := 0
	for i := 0; i < n; i++ {
		target := total * float64(i) / float64(n-1)
		for j < samples-1 && cum[j+1] < target {
			j++
		}
		t := ts[j]
		if seg := cum[j+1] - cum[j]; seg > 0 {
			t += (target - cum[j]) / seg * (ts[j+1] - ts[j])
		}
		out[i] = EvaluateSpline(spline, t)
	}
	out[0], out[n-1] = points[0], points[len(points)-1]
	return out
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
