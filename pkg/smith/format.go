package smith

import (
	"fmt"
	"math"
	"strings"
)

// DefaultInfinitySymbol labels the reactance tick at infinity. The trailing
// space keeps the glyph from being clipped by text renderers.
const DefaultInfinitySymbol = "∞ "

// trimFloat formats v with %f and strips trailing zeros and the dot.
func trimFloat(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%f", v), "0"), ".")
}

// RealFormatter labels resistance ticks. Zero and infinity stay blank;
// the boundary circle and the right end of the axis are self-explanatory.
type RealFormatter struct{}

// Format returns the label for x.
func (RealFormatter) Format(x float64) string {
	if x < Epsilon || x > NearInfinity {
		return ""
	}
	return trimFloat(x)
}

// ImagFormatter labels reactance ticks with a j suffix.
type ImagFormatter struct {
	Infinity string
}

// Format returns the label for y.
func (f ImagFormatter) Format(y float64) string {
	switch {
	case y < -NearInfinity:
		return ""
	case y > NearInfinity:
		if f.Infinity == "" {
			return DefaultInfinitySymbol
		}
		return f.Infinity
	case math.Abs(y) < Epsilon:
		return "0"
	}
	return trimFloat(y) + "j"
}

// FormatCoord renders a data-space value as "r ± xj". Points left of the
// imaginary axis lie outside the chart and give an empty string.
func FormatCoord(z complex128) string {
	x, y := real(z), imag(z)
	if !(x > 0) {
		return ""
	}
	sgn := "-"
	if y > 0 {
		sgn = "+"
	}
	return fmt.Sprintf("%.5f %s %.5fj", x, sgn, math.Abs(y))
}
