package smith

import (
	"fmt"
	"image/color"
	"log/slog"
	"math"

	"github.com/dustin/go-humanize"
)

// Align is the horizontal anchoring of a label.
type Align int

const (
	AlignCenter Align = iota
	AlignLeft
	AlignRight
)

// LabelKind identifies what a label annotates.
type LabelKind int

const (
	LabelReal LabelKind = iota
	LabelImag
	LabelNormalization
)

// Label is a piece of text anchored in display space.
type Label struct {
	Kind      LabelKind
	Text      string
	At        Point
	Value     float64 // tick value, for tick labels
	Align     Align
	Rotation  float64 // degrees, counterclockwise
	SizeDelta float64 // added to the base font size
}

// Line is a plotted data series in data space. MarkEvery is the vertex
// stride of the original samples once interpolation has inserted points.
type Line struct {
	Label     string
	Z         []complex128
	Style     LineStyle
	Marker    string // default marker override, empty for the configured one
	MarkEvery int
}

// Points returns the line's vertices in data space.
func (l Line) Points() []Point {
	pts := make([]Point, len(l.Z))
	for i, z := range l.Z {
		pts[i] = PointOf(z)
	}
	return pts
}

// Renderer draws display-space primitives. Arc and path coordinates lie
// in the unit-disk display space; mapping to device space is up to the
// renderer.
type Renderer interface {
	DrawArc(arc ArcDescriptor, style LineStyle)
	DrawPath(path Path, style LineStyle)
	DrawLabel(label Label)
}

// LineRenderer is implemented by renderers that decorate data lines
// (markers, labels). path is the line already mapped to display space.
type LineRenderer interface {
	DrawLine(line Line, path Path)
}

// PlotOptions controls how data is added to a chart.
type PlotOptions struct {
	Type        ParameterType // empty means the configured default
	Interpolate int           // spline points inserted between samples
	Equipoints  int           // resample into this many evenly spaced points
	// Smooth interpolates with Params.Interpolation points when
	// Interpolate is zero.
	Smooth bool
	Label       string
	Style       LineStyle
	Marker      string
}

// Chart is one Smith chart: its configuration, tick locators, current
// gridlines and plotted lines. A Chart is not safe for concurrent use.
type Chart struct {
	params    Params
	norm      Normalization
	transform *MoebiusTransform

	xMajor *RealLocator
	yMajor *ImagLocator
	xMinor *AutoMinorLocator
	yMinor *AutoMinorLocator

	major []Gridline
	minor []Gridline
	lines []Line

	logger *slog.Logger
}

// Option configures a Chart.
type Option func(*Chart)

// WithLogger attaches a logger for grid rebuild diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Chart) { c.logger = l }
}

// New creates a chart and builds its grid.
func New(p Params, opts ...Option) (*Chart, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	c := &Chart{}
	c.transform = NewMoebiusTransform(&c.norm)
	c.xMajor = NewRealLocator(&c.norm, 0, 0)
	c.yMajor = NewImagLocator(&c.norm, 0, 0)
	c.xMinor = NewAutoMinorLocator(0)
	c.yMinor = NewAutoMinorLocator(0)
	for _, opt := range opts {
		opt(c)
	}
	c.apply(p)
	if err := c.Redraw(); err != nil {
		return nil, err
	}
	return c, nil
}

// apply installs p and drops every cached tick set.
func (c *Chart) apply(p Params) {
	c.params = p
	c.norm = Normalization{Impedance: p.Impedance, Normalize: p.Normalize}

	c.xMajor.Steps, c.xMajor.Precision = p.Major.XDivisions, p.Precision
	c.yMajor.Steps, c.yMajor.Precision = p.Major.YDivisions, p.Precision
	c.xMinor.N, c.yMinor.N = p.Minor.XDivisions, p.Minor.YDivisions
	c.xMajor.Invalidate()
	c.yMajor.Invalidate()
	c.xMinor.Invalidate()
	c.yMinor.Invalidate()
}

// Params returns a copy of the current configuration.
func (c *Chart) Params() Params {
	p := c.params
	p.Major.Dividers = append([]int(nil), p.Major.Dividers...)
	p.Minor.Dividers = append([]int(nil), p.Minor.Dividers...)
	p.Major.Dashes = append([]float64(nil), p.Major.Dashes...)
	p.Minor.Dashes = append([]float64(nil), p.Minor.Dashes...)
	return p
}

// Update edits the configuration and rebuilds the grid. If the new
// configuration is invalid the chart keeps its previous state.
func (c *Chart) Update(edit func(*Params)) error {
	old := c.Params()
	next := c.Params()
	edit(&next)
	if err := next.Validate(); err != nil {
		return err
	}
	c.apply(next)
	if err := c.Redraw(); err != nil {
		c.apply(old)
		return err
	}
	return nil
}

// Normalization returns the chart's reference impedance context.
func (c *Chart) Normalization() Normalization {
	return c.norm
}

// K returns the Möbius normalization constant.
func (c *Chart) K() float64 {
	return c.norm.K()
}

// Transform returns the data-to-display transform. It follows later
// configuration changes.
func (c *Chart) Transform() *MoebiusTransform {
	return c.transform
}

// Moebius maps a data-space value to display space.
func (c *Chart) Moebius(z complex128) complex128 {
	return Moebius(z, c.K())
}

// InverseMoebius maps a display-space value to data space.
func (c *Chart) InverseMoebius(w complex128) complex128 {
	return InverseMoebius(w, c.K())
}

// XTicks returns the major resistance ticks.
func (c *Chart) XTicks() []float64 { return c.xMajor.Ticks() }

// YTicks returns the major reactance ticks.
func (c *Chart) YTicks() []float64 { return c.yMajor.Ticks() }

// XMinorTicks returns the minor resistance ticks.
func (c *Chart) XMinorTicks() []float64 {
	return c.xMinor.TickValues(c.XTicks(), 0, AxisLimit)
}

// YMinorTicks returns the minor reactance ticks.
func (c *Chart) YMinorTicks() []float64 {
	return c.yMinor.TickValues(c.YTicks(), -AxisLimit, AxisLimit)
}

// Redraw rebuilds both grid tiers. On error the previous gridlines stay.
func (c *Chart) Redraw() error {
	b := GridBuilder{Norm: c.norm}
	p := c.params
	xt, yt := c.XTicks(), c.YTicks()

	var major, minor []Gridline
	var err error
	if p.Major.Enable {
		if major, err = b.Major(p.Major, xt, yt); err != nil {
			return fmt.Errorf("major grid: %w", err)
		}
	}
	if p.Minor.Enable {
		minor, err = b.Minor(p.Minor, xt, yt, c.XMinorTicks(), c.YMinorTicks(), major)
		if err != nil {
			return fmt.Errorf("minor grid: %w", err)
		}
	}

	c.major, c.minor = major, minor
	if c.logger != nil {
		c.logger.Debug("grid rebuilt",
			"major", len(major), "major_fancy", p.Major.Fancy,
			"minor", len(minor), "minor_fancy", p.Minor.Fancy)
	}
	return nil
}

// Gridlines returns the current gridlines of a tier.
func (c *Chart) Gridlines(t Tier) []Gridline {
	if t == TierMajor {
		return append([]Gridline(nil), c.major...)
	}
	return append([]Gridline(nil), c.minor...)
}

// ConvertData maps raw network parameters into the chart's data space.
func (c *Chart) ConvertData(z []complex128, t ParameterType) ([]complex128, error) {
	k := c.K()
	out := make([]complex128, len(z))
	for i, v := range z {
		switch t {
		case TypeS:
			out[i] = InverseMoebius(v, k)
		case TypeY:
			out[i] = 1 / v
		case TypeZ:
			out[i] = v
		default:
			return nil, fmt.Errorf("%w: unknown parameter type %q", ErrArgument, t)
		}
		if c.norm.Normalize && t != TypeS {
			out[i] /= complex(c.norm.Impedance, 0)
		}
	}
	return out, nil
}

// Plot converts z and adds it as a line.
func (c *Chart) Plot(z []complex128, opts PlotOptions) (Line, error) {
	if opts.Interpolate < 0 || opts.Equipoints < 0 {
		return Line{}, fmt.Errorf("%w: interpolation counts must not be negative", ErrArgument)
	}
	if (opts.Interpolate > 0 || opts.Smooth) && opts.Equipoints > 0 {
		return Line{}, fmt.Errorf("%w: interpolate and equipoints are exclusive", ErrArgument)
	}
	if opts.Smooth && opts.Interpolate == 0 {
		opts.Interpolate = c.params.Interpolation
	}
	t := opts.Type
	if t == "" {
		t = c.params.DefaultType
	}
	data, err := c.ConvertData(z, t)
	if err != nil {
		return Line{}, err
	}

	// A single sample has nothing to interpolate.
	if (opts.Interpolate > 0 || opts.Equipoints > 0) && len(data) > 1 {
		w := make([]Point, len(data))
		for i, v := range data {
			w[i] = PointOf(c.Moebius(v))
		}
		if opts.Interpolate > 0 {
			w = InterpolateSteps(w, opts.Interpolate)
		} else {
			w = Equidistant(w, opts.Equipoints)
		}
		data = make([]complex128, len(w))
		for i, p := range w {
			data[i] = c.InverseMoebius(p.Complex())
		}
	}

	style := opts.Style
	if style.Color == nil {
		style.Color = lineColor(len(c.lines))
	}
	if style.Width == 0 {
		style.Width = c.params.LineWidth
	}
	every := 1
	if opts.Interpolate > 0 {
		every = opts.Interpolate + 1
	}
	line := Line{Label: opts.Label, Z: data, Style: style, Marker: opts.Marker, MarkEvery: every}
	c.lines = append(c.lines, line)
	return line, nil
}

// Lines returns the plotted lines in drawing order.
func (c *Chart) Lines() []Line {
	return append([]Line(nil), c.lines...)
}

// Clear removes all plotted lines.
func (c *Chart) Clear() {
	c.lines = nil
}

// Draw renders the chart: boundary, minor and major grid, tick labels,
// the normalization label and the data lines.
func (c *Chart) Draw(r Renderer) error {
	p := c.params
	boundary, _ := p.Major.Styles()
	if boundary.Width == 0 {
		boundary.Width = 1
	}
	boundary.Dashes = nil
	// The outline sits slightly outside the unit circle.
	d := 2 * (p.Radius + boundaryPad) / p.Radius
	r.DrawArc(ArcDescriptor{Diameter: d, Start: 0, End: 360}, boundary)

	for _, tier := range []struct {
		lines  []Gridline
		params GridParams
	}{
		{c.minor, p.Minor},
		{c.major, p.Major},
	} {
		sx, sy := tier.params.Styles()
		for _, g := range tier.lines {
			style := sx
			if g.Axis == AxisImag {
				style = sy
			}
			path, err := c.transform.TransformPath(g.Path())
			if err != nil {
				return err
			}
			if path.Arc != nil {
				r.DrawArc(*path.Arc, style)
			} else {
				r.DrawPath(path, style)
			}
		}
	}

	for _, l := range c.TickLabels() {
		r.DrawLabel(l)
	}

	for _, line := range c.lines {
		path, err := c.transform.TransformPath(Path{Vertices: line.Points(), Kind: KindLinear})
		if err != nil {
			return err
		}
		if lr, ok := r.(LineRenderer); ok {
			lr.DrawLine(line, path)
		} else {
			r.DrawPath(path, line.Style)
		}
	}
	return nil
}

// TickLabels returns the labels of the major ticks and, when enabled,
// the reference impedance label.
func (c *Chart) TickLabels() []Label {
	p := c.params
	var labels []Label

	var rf RealFormatter
	for _, x := range c.XTicks() {
		text := rf.Format(x)
		if text == "" {
			continue
		}
		labels = append(labels, Label{
			Kind:     LabelReal,
			Text:     text,
			At:       PointOf(c.Moebius(complex(x, 0))),
			Value:    x,
			Align:    AlignCenter,
			Rotation: p.XLabelRotation,
		})
	}

	imf := ImagFormatter{Infinity: p.InfinitySymbol}
	for _, y := range c.YTicks() {
		text := imf.Format(y)
		if text == "" {
			continue
		}
		at := PointOf(c.Moebius(complex(0, y)))
		l := Label{Kind: LabelImag, Text: text, At: at, Value: y, Align: AlignCenter}
		switch {
		case at.X < -0.1:
			l.Align = AlignRight
		case at.X > 0.1:
			l.Align = AlignLeft
		}
		if math.Abs(y) > NearInfinity {
			l.SizeDelta = p.InfinityCorrection
		}
		labels = append(labels, l)
	}

	if p.Normalize && p.NormalizeLabel {
		labels = append(labels, Label{
			Kind:  LabelNormalization,
			Text:  "Z₀ = " + humanize.SIWithDigits(p.Impedance, 2, p.OhmSymbol),
			At:    PointOf(p.NormalizeLabelPosition),
			Align: AlignLeft,
		})
	}
	return labels
}

// boundaryPad is the gap between the unit circle and the chart outline,
// as a fraction of the figure.
const boundaryPad = 0.015

// lineCycle is the default colour sequence for plotted lines.
var lineCycle = []string{"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd", "#8c564b"}

func lineColor(i int) color.Color {
	return colorOrBlack(lineCycle[i%len(lineCycle)])
}
