package smith

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Threshold is a minimum gridline distance in per-mille of the 2×2 plot
// extent, separately for real and imaginary gridlines.
type Threshold struct {
	Real float64
	Imag float64
}

// UniformThreshold uses v for both axes.
func UniformThreshold(v float64) Threshold {
	return Threshold{Real: v, Imag: v}
}

// Absolute converts the per-mille values to display distances.
func (t Threshold) Absolute() (x, y float64) {
	return t.Real / 1000, t.Imag / 1000
}

func (t Threshold) validate() error {
	if !(t.Real > 0) || !(t.Imag > 0) {
		return fmt.Errorf("%w: thresholds must be positive, got (%g, %g)", ErrPrecondition, t.Real, t.Imag)
	}
	return nil
}

// GridParams configures one grid tier.
type GridParams struct {
	Enable     bool
	Fancy      bool
	XDivisions int // major: max real steps; minor: subdivisions per major interval
	YDivisions int
	Threshold  Threshold
	Dividers   []int // candidate cell divisors, minor tier only
	ColorX     string
	ColorY     string
	Width      float64
	Dashes     []float64
}

// MarkerParams configures the start/end marker decorator of data lines.
type MarkerParams struct {
	Enable  bool
	Rotate  bool
	Start   string
	Default string
	End     string
}

// Params is the complete chart configuration.
type Params struct {
	Impedance              float64
	Normalize              bool
	NormalizeLabel         bool
	NormalizeLabelPosition complex128
	Radius                 float64 // chart radius as a fraction of the figure
	FontSize               float64
	TickPad                float64
	XLabelRotation         float64
	YLabelCorrection       [3]float64 // x shift, y shift, extra radial pad
	Precision              int

	Major GridParams
	Minor GridParams

	DefaultType   ParameterType
	Interpolation int
	LineWidth     float64
	Marker        MarkerParams

	InfinitySymbol     string
	InfinityCorrection float64
	OhmSymbol          string
}

// DefaultParams returns the standard chart configuration.
func DefaultParams() Params {
	return Params{
		Impedance:              50,
		Normalize:              true,
		NormalizeLabel:         true,
		NormalizeLabelPosition: -1 - 1i,
		Radius:                 0.43,
		FontSize:               12,
		TickPad:                4,
		XLabelRotation:         90,
		YLabelCorrection:       [3]float64{-2, 0, 0},
		Precision:              2,
		Major: GridParams{
			Enable:     true,
			Fancy:      true,
			XDivisions: 10,
			YDivisions: 16,
			Threshold:  Threshold{Real: 100, Imag: 50},
			ColorX:     "0.2",
			ColorY:     "0.2",
			Width:      1,
		},
		Minor: GridParams{
			Enable:     false,
			Fancy:      true,
			XDivisions: 4,
			YDivisions: 4,
			Threshold:  UniformThreshold(35),
			Dividers:   []int{1, 2, 3, 5, 10, 20},
			ColorX:     "0.4",
			ColorY:     "0.4",
			Width:      0.75,
			Dashes:     []float64{0.2, 2},
		},
		DefaultType:   TypeS,
		Interpolation: 5,
		LineWidth:     2,
		Marker: MarkerParams{
			Enable:  true,
			Rotate:  true,
			Start:   "s",
			Default: "o",
			End:     "^",
		},
		InfinitySymbol:     DefaultInfinitySymbol,
		InfinityCorrection: 8,
		OhmSymbol:          "Ω",
	}
}

// Validate checks every field the chart depends on.
func (p Params) Validate() error {
	if !(p.Impedance > 0) || math.IsInf(p.Impedance, 0) {
		return fmt.Errorf("%w: impedance must be positive and finite, got %g", ErrPrecondition, p.Impedance)
	}
	if !(p.Radius > 0 && p.Radius <= 0.5) {
		return fmt.Errorf("%w: radius must be in (0, 0.5], got %g", ErrPrecondition, p.Radius)
	}
	if !(p.FontSize > 0) {
		return fmt.Errorf("%w: font size must be positive, got %g", ErrPrecondition, p.FontSize)
	}
	if p.Precision < 1 {
		return fmt.Errorf("%w: precision must be positive, got %d", ErrPrecondition, p.Precision)
	}
	if p.Interpolation < 0 {
		return fmt.Errorf("%w: interpolation must not be negative, got %d", ErrPrecondition, p.Interpolation)
	}
	switch p.DefaultType {
	case TypeS, TypeZ, TypeY:
	default:
		return fmt.Errorf("%w: unknown default parameter type %q", ErrPrecondition, p.DefaultType)
	}
	if err := p.Major.validate("major", false); err != nil {
		return err
	}
	return p.Minor.validate("minor", true)
}

func (g GridParams) validate(tier string, dividers bool) error {
	if g.XDivisions < 1 || g.YDivisions < 1 {
		return fmt.Errorf("%w: %s divisions must be positive, got (%d, %d)", ErrPrecondition, tier, g.XDivisions, g.YDivisions)
	}
	if err := g.Threshold.validate(); err != nil {
		return fmt.Errorf("%s grid: %w", tier, err)
	}
	if dividers {
		if err := validateDividers(g.Dividers); err != nil {
			return fmt.Errorf("%s grid: %w", tier, err)
		}
	}
	if g.Width < 0 {
		return fmt.Errorf("%w: %s line width must not be negative", ErrPrecondition, tier)
	}
	for _, c := range []string{g.ColorX, g.ColorY} {
		if _, err := ParseColor(c); err != nil {
			return fmt.Errorf("%s grid: %w", tier, err)
		}
	}
	return nil
}

func validateDividers(d []int) error {
	if len(d) == 0 {
		return fmt.Errorf("%w: no minor dividers", ErrPrecondition)
	}
	for _, v := range d {
		if v < 1 {
			return fmt.Errorf("%w: dividers must be positive, got %d", ErrPrecondition, v)
		}
	}
	return nil
}

// LineStyle describes how a path is stroked.
type LineStyle struct {
	Color  color.Color
	Width  float64
	Dashes []float64
}

// Styles returns the stroke styles for real and imaginary gridlines.
// Colours are assumed valid; Validate rejects anything ParseColor cannot read.
func (g GridParams) Styles() (x, y LineStyle) {
	return LineStyle{Color: colorOrBlack(g.ColorX), Width: g.Width, Dashes: g.Dashes},
		LineStyle{Color: colorOrBlack(g.ColorY), Width: g.Width, Dashes: g.Dashes}
}

func colorOrBlack(s string) color.Color {
	c, err := ParseColor(s)
	if err != nil {
		return color.Black
	}
	return c
}

var namedColors = map[string]colorful.Color{
	"b": {R: 0, G: 0, B: 1}, "blue": {R: 0, G: 0, B: 1},
	"g": {R: 0, G: 0.5, B: 0}, "green": {R: 0, G: 0.5, B: 0},
	"r": {R: 1, G: 0, B: 0}, "red": {R: 1, G: 0, B: 0},
	"c": {R: 0, G: 0.75, B: 0.75}, "cyan": {R: 0, G: 0.75, B: 0.75},
	"m": {R: 0.75, G: 0, B: 0.75}, "magenta": {R: 0.75, G: 0, B: 0.75},
	"y": {R: 0.75, G: 0.75, B: 0}, "yellow": {R: 0.75, G: 0.75, B: 0},
	"k": {R: 0, G: 0, B: 0}, "black": {R: 0, G: 0, B: 0},
	"w": {R: 1, G: 1, B: 1}, "white": {R: 1, G: 1, B: 1},
	"gray": {R: 0.5, G: 0.5, B: 0.5}, "grey": {R: 0.5, G: 0.5, B: 0.5},
}

// ParseColor reads a colour written as a grey level ("0.2"), a hex
// triplet ("#1f77b4") or a basic colour name ("r", "black").
func ParseColor(s string) (colorful.Color, error) {
	s = strings.TrimSpace(s)
	if c, ok := namedColors[strings.ToLower(s)]; ok {
		return c, nil
	}
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return colorful.Color{}, fmt.Errorf("%w: bad colour %q: %v", ErrArgument, s, err)
		}
		return c, nil
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil && v >= 0 && v <= 1 {
		return colorful.Color{R: v, G: v, B: v}, nil
	}
	return colorful.Color{}, fmt.Errorf("%w: bad colour %q", ErrArgument, s)
}
