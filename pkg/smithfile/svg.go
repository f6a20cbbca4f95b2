package smithfile

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/ha1tch/smith-toolkit/pkg/smith"
)

// SVGOptions controls native SVG rendering.
type SVGOptions struct {
	Size       int     // canvas edge in pixels
	Title      string  // chart title
	FontSize   float64 // tick label size (0 = chart font size)
	Background string  // canvas fill (empty = white)
}

// DefaultSVGOptions returns sensible defaults.
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{Size: 600}
}

// SVGRenderer collects chart primitives into an SVG document.
type SVGRenderer struct {
	opts   SVGOptions
	params smith.Params
	vp     Viewport
	body   strings.Builder
	placer *LabelPlacer
}

// NewSVGRenderer creates a renderer for a chart configured with p.
func NewSVGRenderer(p smith.Params, opts SVGOptions) *SVGRenderer {
	if opts.Size == 0 {
		opts.Size = 600
	}
	if opts.FontSize == 0 {
		opts.FontSize = p.FontSize
	}
	if opts.Background == "" {
		opts.Background = "white"
	}
	return &SVGRenderer{
		opts:   opts,
		params: p,
		vp:     Viewport{Size: float64(opts.Size), Radius: p.Radius},
		placer: NewLabelPlacer(nil),
	}
}

// RenderSVG draws a chart as an SVG document.
func RenderSVG(c *smith.Chart, w io.Writer, opts SVGOptions) error {
	r := NewSVGRenderer(c.Params(), opts)
	if err := c.Draw(r); err != nil {
		return err
	}
	_, err := io.WriteString(w, r.String())
	return err
}

func strokeAttrs(s smith.LineStyle) string {
	attrs := fmt.Sprintf(`stroke="%s" stroke-width="%.2f"`, hexColor(s.Color), s.Width)
	if d := dashArray(s); d != "" {
		attrs += fmt.Sprintf(` stroke-dasharray="%s"`, d)
	}
	return attrs
}

// DrawArc draws a circular arc, or a full circle when it spans 360°.
func (r *SVGRenderer) DrawArc(a smith.ArcDescriptor, s smith.LineStyle) {
	c := r.vp.ToDevice(a.Center)
	rad := a.Radius() * r.vp.Scale()
	if a.End-a.Start >= 360 {
		fmt.Fprintf(&r.body, `<circle cx="%.2f" cy="%.2f" r="%.2f" class="grid" %s/>
`, c.X, c.Y, rad, strokeAttrs(s))
		return
	}

	start := r.vp.ToDevice(a.PointAt(a.Start))
	end := r.vp.ToDevice(a.PointAt(a.End))
	large := 0
	if a.End-a.Start > 180 {
		large = 1
	}
	// Counterclockwise in display space is sweep 0 on the y-down canvas.
	sweep := 0
	if a.Reversed {
		start, end = end, start
		sweep = 1
	}
	fmt.Fprintf(&r.body, `<path d="M%.2f,%.2f A%.2f,%.2f 0 %d %d %.2f,%.2f" class="grid" %s/>
`, start.X, start.Y, rad, rad, large, sweep, end.X, end.Y, strokeAttrs(s))
}

// svgPathData renders a display-space path as SVG path data.
func (r *SVGRenderer) svgPathData(p smith.Path) string {
	var sb strings.Builder
	pt := func(v smith.Point) string {
		d := r.vp.ToDevice(v)
		return fmt.Sprintf("%.2f,%.2f", d.X, d.Y)
	}
	for i := 0; i < len(p.Vertices); i++ {
		code := smith.LineTo
		if p.Codes != nil {
			code = p.Codes[i]
		}
		if i == 0 {
			code = smith.MoveTo
		}
		switch code {
		case smith.MoveTo:
			sb.WriteString("M" + pt(p.Vertices[i]) + " ")
		case smith.LineTo:
			sb.WriteString("L" + pt(p.Vertices[i]) + " ")
		case smith.Curve4:
			if i+2 < len(p.Vertices) {
				fmt.Fprintf(&sb, "C%s %s %s ", pt(p.Vertices[i]), pt(p.Vertices[i+1]), pt(p.Vertices[i+2]))
				i += 2
			}
		case smith.ClosePath:
			sb.WriteString("Z ")
		}
	}
	return strings.TrimSpace(sb.String())
}

// DrawPath draws a display-space path.
func (r *SVGRenderer) DrawPath(p smith.Path, s smith.LineStyle) {
	if len(p.Vertices) < 2 {
		return
	}
	fmt.Fprintf(&r.body, `<path d="%s" class="grid" %s/>
`, r.svgPathData(p), strokeAttrs(s))
}

// DrawLabel draws a tick or normalization label.
func (r *SVGRenderer) DrawLabel(l smith.Label) {
	fs := r.opts.FontSize + l.SizeDelta
	at := r.vp.LabelAnchor(l, r.params.TickPad, fs, r.params.YLabelCorrection)
	text := html.EscapeString(l.Text)
	w, h := textWidth(l.Text, fs), fs*1.2

	switch l.Kind {
	case smith.LabelReal:
		// Rotated label on a white box so it stays readable over the grid.
		fmt.Fprintf(&r.body, `<g transform="rotate(%.1f %.2f %.2f)">
<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="2" class="xlabel-box"/>
<text x="%.2f" y="%.2f" class="xlabel" style="font-size:%.1fpx">%s</text>
</g>
`, -l.Rotation, at.X, at.Y, at.X-w/2-2, at.Y-h/2, w+4, h, at.X, at.Y, fs, text)
		r.placer.Add(rotatedRect(at, w, h, l.Rotation))

	case smith.LabelImag:
		fmt.Fprintf(&r.body, `<text x="%.2f" y="%.2f" class="ylabel" text-anchor="%s" style="font-size:%.1fpx">%s</text>
`, at.X, at.Y, svgAnchor(l.Align), fs, text)
		r.placer.Add(alignedRect(at, w, h, l.Align))

	case smith.LabelNormalization:
		pad := r.params.TickPad
		x := at.X - pad + r.params.YLabelCorrection[0]
		y := at.Y + pad + 0.5*fs - r.params.YLabelCorrection[1]
		fmt.Fprintf(&r.body, `<text x="%.2f" y="%.2f" class="norm-label" style="font-size:%.1fpx">%s</text>
`, x, y, fs, text)
		r.placer.Add(Rect{X: x + w/2, Y: y - h/2, W: w, H: h})
	}
}

// DrawLine draws a data line with its markers and label.
func (r *SVGRenderer) DrawLine(line smith.Line, path smith.Path) {
	pts := make([]smith.Point, len(path.Vertices))
	for i, v := range path.Vertices {
		pts[i] = r.vp.ToDevice(v)
	}
	col := hexColor(line.Style.Color)

	if len(pts) > 1 {
		coords := make([]string, len(pts))
		for i, p := range pts {
			coords[i] = fmt.Sprintf("%.2f,%.2f", p.X, p.Y)
		}
		fmt.Fprintf(&r.body, `<polyline points="%s" class="data" %s/>
`, strings.Join(coords, " "), strokeAttrs(line.Style))
	}

	size := 3 * line.Style.Width
	if size < 6 {
		size = 6
	}
	for _, mk := range Decorate(pts, line.MarkEvery, r.params.Marker, line.Marker) {
		poly := MarkerPolygon(mk, size)
		if poly == nil {
			continue
		}
		coords := make([]string, len(poly))
		for i, p := range poly {
			coords[i] = fmt.Sprintf("%.2f,%.2f", p.X, p.Y)
		}
		fmt.Fprintf(&r.body, `<polygon points="%s" fill="%s" class="marker"/>
`, strings.Join(coords, " "), col)
	}

	if line.Label != "" && len(pts) > 0 {
		last := pts[len(pts)-1]
		tangent := smith.Point{X: 1}
		if len(pts) > 1 {
			prev := pts[len(pts)-2]
			tangent = smith.Point{X: last.X - prev.X, Y: last.Y - prev.Y}
		}
		fs := r.opts.FontSize
		pos := r.placer.PlaceLabelOnCurve(last, tangent, textWidth(line.Label, fs), fs*1.2, size)
		fmt.Fprintf(&r.body, `<text x="%.2f" y="%.2f" class="line-label" fill="%s" style="font-size:%.1fpx">%s</text>
`, pos.X, pos.Y, col, fs, html.EscapeString(line.Label))
	}
}

// String returns the complete SVG document.
func (r *SVGRenderer) String() string {
	size := r.opts.Size
	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<style>
  .grid { fill: none; stroke-linecap: round; }
  .data { fill: none; stroke-linejoin: round; }
  .xlabel { font-family: sans-serif; text-anchor: middle; dominant-baseline: middle; fill: #333; }
  .xlabel-box { fill: white; stroke: white; }
  .ylabel { font-family: sans-serif; dominant-baseline: middle; fill: #333; }
  .norm-label { font-family: sans-serif; fill: #333; }
  .line-label { font-family: sans-serif; text-anchor: middle; dominant-baseline: middle; }
  .title { font-family: sans-serif; font-size: %.0fpx; font-weight: bold; text-anchor: middle; }
</style>
<rect width="%d" height="%d" fill="%s"/>
`, size, size, size, size, r.opts.FontSize+4, size, size, html.EscapeString(r.opts.Background))

	if r.opts.Title != "" {
		fmt.Fprintf(&sb, `<text x="%d" y="25" class="title">%s</text>
`, size/2, html.EscapeString(r.opts.Title))
	}
	sb.WriteString(r.body.String())
	sb.WriteString("</svg>\n")
	return sb.String()
}

func svgAnchor(a smith.Align) string {
	switch a {
	case smith.AlignLeft:
		return "start"
	case smith.AlignRight:
		return "end"
	}
	return "middle"
}

// alignedRect is the box of a horizontally aligned label anchored at at.
func alignedRect(at smith.Point, w, h float64, a smith.Align) Rect {
	switch a {
	case smith.AlignLeft:
		return Rect{X: at.X + w/2, Y: at.Y, W: w, H: h}
	case smith.AlignRight:
		return Rect{X: at.X - w/2, Y: at.Y, W: w, H: h}
	}
	return Rect{X: at.X, Y: at.Y, W: w, H: h}
}

// rotatedRect is the axis-aligned box of a label centred on at and
// rotated by a multiple of 90 degrees; other angles use the larger extent.
func rotatedRect(at smith.Point, w, h, deg float64) Rect {
	switch int(deg) % 180 {
	case 0:
		return Rect{X: at.X, Y: at.Y, W: w, H: h}
	case 90, -90:
		return Rect{X: at.X, Y: at.Y, W: h, H: w}
	}
	m := w
	if h > m {
		m = h
	}
	return Rect{X: at.X, Y: at.Y, W: m, H: m}
}
