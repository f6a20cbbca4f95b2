// Package smith provides the Smith chart core: the Möbius transform between
// impedance space and the unit disk, tick locators, and the adaptive grid
// builder that decides which gridline arcs to draw.
package smith

import "fmt"

const (
	// Infinity is the large finite sentinel used in place of real infinity.
	Infinity = 1e9
	// NearInfinity is the cutoff above which values are treated as infinite.
	NearInfinity = 0.9 * Infinity
	// AxisLimit is the extent of both data axes.
	AxisLimit = 2 * Infinity
	// Epsilon is the numerical tolerance and the pole nudge of the inverse transform.
	Epsilon = 1e-7
	// RoundDigits is the decimal precision gridline positions are rounded to.
	RoundDigits = 7
)

// ParameterType identifies what kind of network parameter a data set holds.
type ParameterType string

const (
	TypeS ParameterType = "S" // scattering (reflection coefficient)
	TypeZ ParameterType = "Z" // impedance
	TypeY ParameterType = "Y" // admittance
)

// ParseParameterType accepts S, Z or Y in either case.
func ParseParameterType(s string) (ParameterType, error) {
	switch s {
	case "S", "s":
		return TypeS, nil
	case "Z", "z":
		return TypeZ, nil
	case "Y", "y":
		return TypeY, nil
	}
	return "", fmt.Errorf("%w: unknown parameter type %q", ErrArgument, s)
}

// Point is a position in data or display space.
type Point struct {
	X, Y float64
}

// Complex returns the point as x + y·i.
func (p Point) Complex() complex128 {
	return complex(p.X, p.Y)
}

// PointOf splits a complex value into a point.
func PointOf(z complex128) Point {
	return Point{real(z), imag(z)}
}

// Normalization is the chart's reference impedance context.
type Normalization struct {
	Impedance float64
	Normalize bool
}

// K returns the Möbius normalization constant.
func (n Normalization) K() float64 {
	if n.Normalize {
		return 1
	}
	return n.Impedance
}

// reactanceScale is i when normalized, i·impedance otherwise.
func (n Normalization) reactanceScale() complex128 {
	return complex(0, n.K())
}
