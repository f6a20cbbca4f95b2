// Native PNG rendering for Smith charts.
// Mirrors the SVG renderer output using Go's image packages.

package smithfile

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"sort"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"

	"github.com/ha1tch/smith-toolkit/pkg/smith"
)

// PNGOptions configures PNG rendering.
type PNGOptions struct {
	Size     int
	Title    string
	FontSize float64 // tick label size (0 = chart font size)
}

// DefaultPNGOptions returns sensible defaults for PNG rendering.
func DefaultPNGOptions() PNGOptions {
	return PNGOptions{Size: 600}
}

// supersample is the render scale before downsampling.
const supersample = 4

// curveSteps is the number of chords per cubic segment.
const curveSteps = 32

var (
	colorWhite = color.RGBA{255, 255, 255, 255}
	colorText  = color.RGBA{51, 51, 51, 255} // #333
)

// renderContext holds rendering parameters including scale
type renderContext struct {
	img   *image.RGBA
	scale float64 // multiplier for line thickness, font size, etc.
	font  *opentype.Font
	faces map[float64]font.Face
}

func newRenderContext(img *image.RGBA, scale int) (*renderContext, error) {
	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return &renderContext{
		img:   img,
		scale: float64(scale),
		font:  fnt,
		faces: make(map[float64]font.Face),
	}, nil
}

// face returns a face for size points at render scale.
func (ctx *renderContext) face(size float64) font.Face {
	size = math.Max(1, size*ctx.scale)
	if f, ok := ctx.faces[size]; ok {
		return f
	}
	// No hinting - we supersample instead
	f, err := opentype.NewFace(ctx.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		f = basicfont.Face7x13
	}
	ctx.faces[size] = f
	return f
}

// PNGRenderer rasterizes chart primitives with supersampling.
type PNGRenderer struct {
	ctx    *renderContext
	params smith.Params
	opts   PNGOptions
	vp     Viewport
	placer *LabelPlacer
}

// NewPNGRenderer creates a renderer for a chart configured with p.
func NewPNGRenderer(p smith.Params, opts PNGOptions) (*PNGRenderer, error) {
	if opts.Size <= 0 {
		opts.Size = 600
	}
	if opts.FontSize == 0 {
		opts.FontSize = p.FontSize
	}
	size := opts.Size * supersample
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(colorWhite), image.Point{}, draw.Src)

	ctx, err := newRenderContext(img, supersample)
	if err != nil {
		return nil, err
	}
	return &PNGRenderer{
		ctx:    ctx,
		params: p,
		opts:   opts,
		vp:     Viewport{Size: float64(size), Radius: p.Radius},
		placer: NewLabelPlacer(nil),
	}, nil
}

// RenderPNG draws a chart and encodes it as PNG.
// Uses 4x supersampling for smoother output.
func RenderPNG(c *smith.Chart, w io.Writer, opts PNGOptions) error {
	r, err := NewPNGRenderer(c.Params(), opts)
	if err != nil {
		return err
	}
	if err := c.Draw(r); err != nil {
		return err
	}
	return r.Encode(w)
}

// Image returns the downsampled result.
func (r *PNGRenderer) Image() *image.RGBA {
	if r.opts.Title != "" {
		r.ctx.drawText(float64(r.ctx.img.Bounds().Dx())/2, 20*r.ctx.scale, r.opts.Title,
			r.opts.FontSize+4, colorText, smith.AlignCenter, 0, nil)
	}
	final := image.NewRGBA(image.Rect(0, 0, r.opts.Size, r.opts.Size))
	draw.CatmullRom.Scale(final, final.Bounds(), r.ctx.img, r.ctx.img.Bounds(), draw.Over, nil)
	return final
}

// Encode writes the image as PNG.
func (r *PNGRenderer) Encode(w io.Writer) error {
	return png.Encode(w, r.Image())
}

func (r *PNGRenderer) device(pts []smith.Point) []smith.Point {
	out := make([]smith.Point, len(pts))
	for i, p := range pts {
		out[i] = r.vp.ToDevice(p)
	}
	return out
}

func (r *PNGRenderer) stroke(pts []smith.Point, s smith.LineStyle) {
	width := math.Max(1, s.Width*r.ctx.scale)
	dashes := dashPattern(s)
	for i := range dashes {
		dashes[i] *= r.ctx.scale
	}
	r.ctx.drawPolyline(pts, width, dashes, s.Color)
}

// DrawArc draws a circular arc.
func (r *PNGRenderer) DrawArc(a smith.ArcDescriptor, s smith.LineStyle) {
	for _, poly := range Flatten(smith.ArcPath(a), curveSteps) {
		r.stroke(r.device(poly), s)
	}
}

// DrawPath draws a display-space path.
func (r *PNGRenderer) DrawPath(p smith.Path, s smith.LineStyle) {
	for _, poly := range Flatten(p, curveSteps) {
		r.stroke(r.device(poly), s)
	}
}

// DrawLabel draws a tick or normalization label.
func (r *PNGRenderer) DrawLabel(l smith.Label) {
	fs := r.opts.FontSize + l.SizeDelta
	sc := r.ctx.scale
	at := r.vp.LabelAnchor(l, r.params.TickPad*sc, fs*sc, scaleCorrection(r.params.YLabelCorrection, sc))
	w, h := textWidth(l.Text, fs)*sc, fs*1.2*sc

	switch l.Kind {
	case smith.LabelReal:
		r.ctx.drawText(at.X, at.Y, l.Text, fs, colorText, smith.AlignCenter, l.Rotation, colorWhite)
		r.placer.Add(rotatedRect(at, w, h, l.Rotation))
	case smith.LabelImag:
		r.ctx.drawText(at.X, at.Y, l.Text, fs, colorText, l.Align, 0, nil)
		r.placer.Add(alignedRect(at, w, h, l.Align))
	case smith.LabelNormalization:
		pad := r.params.TickPad * sc
		x := at.X - pad + r.params.YLabelCorrection[0]*sc
		y := at.Y + pad + 0.5*fs*sc - r.params.YLabelCorrection[1]*sc - h/2
		r.ctx.drawText(x, y, l.Text, fs, colorText, smith.AlignLeft, 0, nil)
		r.placer.Add(Rect{X: x + w/2, Y: y, W: w, H: h})
	}
}

// DrawLine draws a data line with its markers and label.
func (r *PNGRenderer) DrawLine(line smith.Line, path smith.Path) {
	pts := r.device(path.Vertices)
	if len(pts) > 1 {
		r.stroke(pts, line.Style)
	}

	sc := r.ctx.scale
	size := math.Max(6, 3*line.Style.Width) * sc
	for _, mk := range Decorate(pts, line.MarkEvery, r.params.Marker, line.Marker) {
		if poly := MarkerPolygon(mk, size); poly != nil {
			r.ctx.fillPolygon(poly, line.Style.Color)
		}
	}

	if line.Label != "" && len(pts) > 0 {
		last := pts[len(pts)-1]
		tangent := smith.Point{X: 1}
		if len(pts) > 1 {
			prev := pts[len(pts)-2]
			tangent = smith.Point{X: last.X - prev.X, Y: last.Y - prev.Y}
		}
		fs := r.opts.FontSize
		pos := r.placer.PlaceLabelOnCurve(last, tangent, textWidth(line.Label, fs)*sc, fs*1.2*sc, size)
		r.ctx.drawText(pos.X, pos.Y, line.Label, fs, line.Style.Color, smith.AlignCenter, 0, nil)
	}
}

func scaleCorrection(c [3]float64, s float64) [3]float64 {
	return [3]float64{c[0] * s, c[1] * s, c[2] * s}
}

// drawPolyline strokes a polyline with the given device width and dash
// pattern (nil for solid).
func (ctx *renderContext) drawPolyline(pts []smith.Point, width float64, dashes []float64, c color.Color) {
	if c == nil {
		c = color.Black
	}
	if len(dashes) == 0 {
		for i := 1; i < len(pts); i++ {
			ctx.drawLine(pts[i-1].X, pts[i-1].Y, pts[i].X, pts[i].Y, width, c)
		}
		return
	}

	di, left, on := 0, dashes[0], true
	for i := 1; i < len(pts); i++ {
		x0, y0 := pts[i-1].X, pts[i-1].Y
		x1, y1 := pts[i].X, pts[i].Y
		seg := math.Hypot(x1-x0, y1-y0)
		pos := 0.0
		for pos < seg {
			step := math.Min(left, seg-pos)
			if on {
				t0, t1 := pos/seg, (pos+step)/seg
				ctx.drawLine(x0+(x1-x0)*t0, y0+(y1-y0)*t0, x0+(x1-x0)*t1, y0+(y1-y0)*t1, width, c)
			}
			pos += step
			left -= step
			if left <= 1e-9 {
				di = (di + 1) % len(dashes)
				left = math.Max(dashes[di], 0.5)
				on = !on
			}
		}
	}
}

// drawLine draws a line between two points with the given thickness.
func (ctx *renderContext) drawLine(x1, y1, x2, y2, thickness float64, c color.Color) {
	img := ctx.img
	dx := x2 - x1
	dy := y2 - y1
	steps := math.Max(math.Abs(dx), math.Abs(dy))
	if steps < 1 {
		steps = 1
	}
	halfThick := thickness / 2

	dist := math.Hypot(dx, dy)
	if dist < 1 {
		for ty := -halfThick; ty <= halfThick; ty++ {
			for tx := -halfThick; tx <= halfThick; tx++ {
				img.Set(int(x1+tx), int(y1+ty), c)
			}
		}
		return
	}

	perpX := -dy / dist
	perpY := dx / dist
	for i := 0.0; i <= steps; i++ {
		t := i / steps
		cx := x1 + dx*t
		cy := y1 + dy*t
		for offset := -halfThick; offset <= halfThick; offset += 0.5 {
			img.Set(int(cx+perpX*offset), int(cy+perpY*offset), c)
		}
	}
}

// fillPolygon fills a polygon with the even-odd rule.
func (ctx *renderContext) fillPolygon(pts []smith.Point, c color.Color) {
	if len(pts) < 3 {
		return
	}
	if c == nil {
		c = color.Black
	}
	minY, maxY := pts[0].Y, pts[0].Y
	for _, p := range pts {
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	for y := math.Floor(minY); y <= maxY; y++ {
		sy := y + 0.5
		var xs []float64
		for i := range pts {
			a, b := pts[i], pts[(i+1)%len(pts)]
			if (a.Y <= sy) == (b.Y <= sy) {
				continue
			}
			xs = append(xs, a.X+(sy-a.Y)/(b.Y-a.Y)*(b.X-a.X))
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for x := math.Ceil(xs[i] - 0.5); x < xs[i+1]-0.5; x++ {
				ctx.img.Set(int(x), int(y), c)
			}
		}
	}
}

// drawText draws text anchored at (x, y): vertically centred, horizontally
// by align, rotated counterclockwise by deg about the anchor. A non-nil
// box fills the text's background.
func (ctx *renderContext) drawText(x, y float64, text string, size float64, c color.Color, align smith.Align, deg float64, box color.Color) {
	face := ctx.face(size)
	width := font.MeasureString(face, text).Ceil()
	metrics := face.Metrics()
	ascent, descent := metrics.Ascent.Ceil(), metrics.Descent.Ceil()
	pad := int(2 * ctx.scale)
	w, h := width+2*pad, ascent+descent+2*pad
	if w <= 2*pad {
		return
	}

	tmp := image.NewRGBA(image.Rect(0, 0, w, h))
	if box != nil {
		draw.Draw(tmp, tmp.Bounds(), image.NewUniform(box), image.Point{}, draw.Src)
	}
	d := &font.Drawer{
		Dst:  tmp,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(pad), Y: fixed.I(pad + ascent)},
	}
	d.DrawString(text)

	// Anchor inside tmp.
	ax := float64(w) / 2
	switch align {
	case smith.AlignLeft:
		ax = float64(pad)
	case smith.AlignRight:
		ax = float64(w - pad)
	}
	ay := float64(h) / 2

	if deg == 0 {
		dst := image.Pt(int(math.Round(x-ax)), int(math.Round(y-ay)))
		draw.Draw(ctx.img, tmp.Bounds().Add(dst), tmp, image.Point{}, draw.Over)
		return
	}

	// Counterclockwise on screen with y pointing down.
	sin, cos := math.Sincos(deg * math.Pi / 180)
	aff := f64.Aff3{
		cos, sin, x - (cos*ax + sin*ay),
		-sin, cos, y - (-sin*ax + cos*ay),
	}
	draw.BiLinear.Transform(ctx.img, aff, tmp, tmp.Bounds(), draw.Over, nil)
}
