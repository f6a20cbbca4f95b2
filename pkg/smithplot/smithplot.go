// Package smithplot draws Smith charts with gonum/plot. The plot's data
// coordinates are the chart's display space: the unit disk of reflection
// coefficients.
package smithplot

import (
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/ha1tch/smith-toolkit/pkg/smith"
	"github.com/ha1tch/smith-toolkit/pkg/smithfile"
)

// boundaryMargin leaves room outside the unit circle for tick labels.
const boundaryMargin = 1.25

// Drawer is the chart a Plotter draws. *smith.Chart implements it.
type Drawer interface {
	Params() smith.Params
	Draw(r smith.Renderer) error
}

// Plotter implements plot.Plotter for a Smith chart.
type Plotter struct {
	Chart Drawer
	// TextStyle is the base style of all labels. Its zero value is
	// replaced by the plot's tick label style.
	TextStyle draw.TextStyle

	err error
}

// New returns a plotter for c.
func New(c Drawer) *Plotter {
	return &Plotter{Chart: c}
}

// Plot implements the plot.Plotter interface.
func (p *Plotter) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	sty := p.TextStyle
	if sty.Font.Size == 0 {
		sty = plt.X.Tick.Label
	}
	r := &canvasRenderer{
		c:      c,
		trX:    trX,
		trY:    trY,
		params: p.Chart.Params(),
		text:   sty,
	}
	p.err = p.Chart.Draw(r)
}

// Err returns the error of the last Plot call.
func (p *Plotter) Err() error {
	return p.err
}

// DataRange implements the plot.DataRanger interface.
func (p *Plotter) DataRange() (xmin, xmax, ymin, ymax float64) {
	return -boundaryMargin, boundaryMargin, -boundaryMargin, boundaryMargin
}

// Options controls how a chart is placed in a gonum plot.
type Options struct {
	Title string
	// Axes keeps the display-space axes visible, ticked at the chart's
	// resistance and reactance values.
	Axes bool
}

// NewPlot returns a plot holding only the chart. Axes are hidden unless
// opts.Axes is set.
func NewPlot(c *smith.Chart, opts Options) *plot.Plot {
	plt, _ := newPlot(c, opts)
	return plt
}

func newPlot(c *smith.Chart, opts Options) (*plot.Plot, *Plotter) {
	plt := plot.New()
	plt.Title.Text = opts.Title
	if opts.Axes {
		plt.X.Tick.Marker = RealTicker{Chart: c, Minor: c.Params().Minor.Enable}
		plt.Y.Tick.Marker = ImagTicker{Chart: c}
		plt.X.Label.Text = "Re"
		plt.Y.Label.Text = "Im"
	} else {
		plt.HideAxes()
	}
	p := New(c)
	plt.Add(p)
	plt.X.Min, plt.X.Max = -boundaryMargin, boundaryMargin
	plt.Y.Min, plt.Y.Max = -boundaryMargin, boundaryMargin
	return plt, p
}

// Save writes the chart to file; the format follows the extension
// (png, svg, pdf, ...). size is the edge of the square image.
func Save(c *smith.Chart, opts Options, size vg.Length, file string) error {
	plt, p := newPlot(c, opts)
	if err := plt.Save(size, size, file); err != nil {
		return err
	}
	return p.Err()
}

// Write encodes the chart in the given format to w.
func Write(c *smith.Chart, opts Options, size vg.Length, format string, w io.Writer) error {
	plt, p := newPlot(c, opts)
	return writePlot(plt, p, size, format, w)
}

// writePlot draws plt and reports the chart's drawing error after the
// encoder's.
func writePlot(plt *plot.Plot, p *Plotter, size vg.Length, format string, w io.Writer) error {
	wt, err := plt.WriterTo(size, size, format)
	if err != nil {
		return err
	}
	if _, err := wt.WriteTo(w); err != nil {
		return err
	}
	return p.Err()
}

// canvasRenderer maps display-space primitives onto a gonum canvas.
type canvasRenderer struct {
	c      draw.Canvas
	trX    func(float64) vg.Length
	trY    func(float64) vg.Length
	params smith.Params
	text   draw.TextStyle
}

func (r *canvasRenderer) pt(p smith.Point) vg.Point {
	return vg.Point{X: r.trX(p.X), Y: r.trY(p.Y)}
}

func lineStyle(s smith.LineStyle) draw.LineStyle {
	ls := draw.LineStyle{Color: s.Color, Width: vg.Points(s.Width)}
	if ls.Color == nil {
		ls.Color = color.Black
	}
	for _, d := range s.Dashes {
		w := s.Width
		if w <= 0 {
			w = 1
		}
		ls.Dashes = append(ls.Dashes, vg.Points(d*w))
	}
	return ls
}

func (r *canvasRenderer) stroke(p smith.Path, s smith.LineStyle) {
	if len(p.Vertices) < 2 {
		return
	}
	var vp vg.Path
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
			vp.Move(r.pt(p.Vertices[i]))
		case smith.LineTo:
			vp.Line(r.pt(p.Vertices[i]))
		case smith.Curve4:
			if i+2 < len(p.Vertices) {
				vp.CubeTo(r.pt(p.Vertices[i]), r.pt(p.Vertices[i+1]), r.pt(p.Vertices[i+2]))
				i += 2
			}
		case smith.ClosePath:
			vp.Close()
		}
	}
	r.c.SetLineStyle(lineStyle(s))
	r.c.Stroke(vp)
}

// DrawArc draws an arc through its Bézier approximation.
func (r *canvasRenderer) DrawArc(a smith.ArcDescriptor, s smith.LineStyle) {
	r.stroke(smith.ArcPath(a), s)
}

// DrawPath draws a display-space path.
func (r *canvasRenderer) DrawPath(p smith.Path, s smith.LineStyle) {
	r.stroke(p, s)
}

// DrawLabel draws a tick or normalization label.
func (r *canvasRenderer) DrawLabel(l smith.Label) {
	sty := r.text
	sty.Font.Size += vg.Points(l.SizeDelta)
	at := r.pt(l.At)
	pad := float64(vg.Points(r.params.TickPad))
	corr := r.params.YLabelCorrection

	switch l.Kind {
	case smith.LabelReal:
		sty.XAlign = draw.XCenter
		sty.YAlign = draw.YCenter
		sty.Rotation = l.Rotation * math.Pi / 180
		r.fillBox(sty, at, l.Text)
	case smith.LabelImag:
		center := r.pt(smith.Point{})
		fs := float64(sty.Font.Size)
		pt := smith.NewPolarTranslate(smith.Point{X: float64(center.X), Y: float64(center.Y)}, pad+float64(vg.Points(corr[2])), fs)
		moved := pt.TransformPoint(smith.Point{X: float64(at.X), Y: float64(at.Y)})
		at = vg.Point{X: vg.Length(moved.X) + vg.Points(corr[0]), Y: vg.Length(moved.Y) + vg.Points(corr[1])}
		sty.XAlign = xAlign(l.Align)
		sty.YAlign = draw.YCenter
	case smith.LabelNormalization:
		sty.XAlign = draw.XLeft
		sty.YAlign = draw.YBottom
		at.X += vg.Length(-pad) + vg.Points(corr[0])
		at.Y += vg.Length(-(pad + 0.5*float64(sty.Font.Size))) + vg.Points(corr[1])
	}
	r.c.FillText(sty, at, l.Text)
}

// fillBox paints the white background of a rotated label.
func (r *canvasRenderer) fillBox(sty draw.TextStyle, at vg.Point, txt string) {
	if txt == "" {
		return
	}
	w := float64(sty.Width(txt))/2 + 1
	h := float64(sty.Height(txt)) / 2
	sin, cos := math.Sincos(sty.Rotation)
	corners := [][2]float64{{-w, -h}, {w, -h}, {w, h}, {-w, h}}
	poly := make([]vg.Point, len(corners))
	for i, p := range corners {
		poly[i] = vg.Point{
			X: at.X + vg.Length(p[0]*cos-p[1]*sin),
			Y: at.Y + vg.Length(p[0]*sin+p[1]*cos),
		}
	}
	r.c.FillPolygon(color.White, poly)
}

func xAlign(a smith.Align) draw.XAlignment {
	switch a {
	case smith.AlignLeft:
		return draw.XLeft
	case smith.AlignRight:
		return draw.XRight
	}
	return draw.XCenter
}

// DrawLine draws a data line with markers and its label.
func (r *canvasRenderer) DrawLine(line smith.Line, path smith.Path) {
	r.stroke(path, line.Style)

	// Markers are laid out in y-down device space.
	pts := make([]smith.Point, len(path.Vertices))
	for i, v := range path.Vertices {
		p := r.pt(v)
		pts[i] = smith.Point{X: float64(p.X), Y: -float64(p.Y)}
	}
	size := math.Max(4, 2*line.Style.Width)
	col := line.Style.Color
	if col == nil {
		col = color.Black
	}
	for _, mk := range smithfile.Decorate(pts, line.MarkEvery, r.params.Marker, line.Marker) {
		poly := smithfile.MarkerPolygon(mk, float64(vg.Points(size)))
		if poly == nil {
			continue
		}
		vp := make([]vg.Point, len(poly))
		for i, p := range poly {
			vp[i] = vg.Point{X: vg.Length(p.X), Y: vg.Length(-p.Y)}
		}
		r.c.FillPolygon(col, vp)
	}

	if line.Label != "" && len(path.Vertices) > 0 {
		sty := r.text
		sty.Color = col
		sty.XAlign = draw.XLeft
		sty.YAlign = draw.YBottom
		end := r.pt(path.Vertices[len(path.Vertices)-1])
		end.X += vg.Points(size)
		end.Y += vg.Points(size)
		r.c.FillText(sty, end, line.Label)
	}
}
