package smithfile

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ha1tch/smith-toolkit/pkg/smith"
)

// hexColor renders c as #rrggbb. Transparent or nil colours become black.
func hexColor(c color.Color) string {
	if c == nil {
		return "#000000"
	}
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return "#000000"
	}
	return cf.Clamped().Hex()
}

// dashPattern scales a dash sequence by the line width the way stroke
// dashes are specified in the chart parameters.
func dashPattern(s smith.LineStyle) []float64 {
	if len(s.Dashes) == 0 {
		return nil
	}
	w := s.Width
	if w <= 0 {
		w = 1
	}
	out := make([]float64, len(s.Dashes))
	for i, d := range s.Dashes {
		out[i] = d * w
	}
	return out
}

func dashArray(s smith.LineStyle) string {
	d := dashPattern(s)
	if d == nil {
		return ""
	}
	parts := make([]string, len(d))
	for i, v := range d {
		parts[i] = fmt.Sprintf("%.2f", v)
	}
	return strings.Join(parts, ",")
}

// Flatten turns a path into polylines, one per MoveTo, sampling cubic
// segments with the given number of steps.
func Flatten(p smith.Path, steps int) [][]smith.Point {
	if len(p.Vertices) == 0 {
		return nil
	}
	if p.Codes == nil {
		return [][]smith.Point{append([]smith.Point(nil), p.Vertices...)}
	}
	if steps < 1 {
		steps = 1
	}

	var out [][]smith.Point
	var cur []smith.Point
	for i := 0; i < len(p.Vertices); i++ {
		switch p.Codes[i] {
		case smith.MoveTo:
			if len(cur) > 1 {
				out = append(out, cur)
			}
			cur = []smith.Point{p.Vertices[i]}
		case smith.LineTo:
			cur = append(cur, p.Vertices[i])
		case smith.Curve4:
			if i+2 >= len(p.Vertices) || len(cur) == 0 {
				continue
			}
			seg := []smith.Point{cur[len(cur)-1], p.Vertices[i], p.Vertices[i+1], p.Vertices[i+2]}
			for s := 1; s <= steps; s++ {
				cur = append(cur, smith.EvaluateSpline(seg, float64(s)/float64(steps)))
			}
			i += 2
		case smith.ClosePath:
			if len(cur) > 0 {
				cur = append(cur, cur[0])
			}
		}
	}
	if len(cur) > 1 {
		out = append(out, cur)
	}
	return out
}
