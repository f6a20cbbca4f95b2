package smith

import (
	"fmt"
	"math"
	"math/cmplx"
)

// AngleToComplex returns the unit phasor e^(i·ang).
func AngleToComplex(ang float64) complex128 {
	return cmplx.Exp(complex(0, ang))
}

// LambdaToRad converts a line length in wavelengths to the rotation angle
// of the reflection coefficient (two trips along the line).
func LambdaToRad(lambda float64) float64 {
	return lambda * 4 * math.Pi
}

// RadToLambda is the inverse of LambdaToRad.
func RadToLambda(rad float64) float64 {
	return rad * 0.25 / math.Pi
}

// DestinationKind selects what stops a VSWR rotation.
type DestinationKind int

const (
	FullTurn   DestinationKind = iota // one complete revolution
	Resistance                        // a constant-resistance circle
	Reactance                         // a constant-reactance circle
	Length                            // a fixed electrical length in wavelengths
)

// Destination is where a VSWR rotation ends.
type Destination struct {
	Kind  DestinationKind
	Value float64
}

// Rotation is the result of moving along a constant-|Γ| circle.
type Rotation struct {
	Start       complex128
	End         complex128
	Wavelengths float64 // signed, negative when turning clockwise
}

// VSWRRotation moves z along its constant-VSWR circle until dest is hit.
// Circle intersections have two solutions; alternate picks the other one.
func VSWRRotation(z complex128, dest Destination, k float64, clockwise, alternate bool) (Rotation, error) {
	z0 := Moebius(z, k)
	a := cmplx.Abs(z0)

	var ang float64
	switch dest.Kind {
	case FullTurn:
		ang = 2 * math.Pi
		if clockwise {
			ang = -ang
		}

	case Length:
		ang = LambdaToRad(dest.Value)
		if clockwise {
			ang = -ang
		}

	case Resistance, Reactance:
		gamma, err := intersectAngle(a, dest, k, alternate)
		if err != nil {
			return Rotation{}, err
		}
		angZ := pyMod(cmplx.Phase(z0), 2*math.Pi)
		ang = pyMod(gamma-angZ, 2*math.Pi)
		if clockwise {
			ang -= 2 * math.Pi
		}

	default:
		return Rotation{}, fmt.Errorf("%w: unknown destination kind %d", ErrArgument, dest.Kind)
	}

	return Rotation{
		Start:       z,
		End:         InverseMoebius(z0*AngleToComplex(ang), k),
		Wavelengths: RadToLambda(ang),
	}, nil
}

// intersectAngle returns the polar angle at which the |Γ| = a circle meets
// the destination circle.
func intersectAngle(a float64, dest Destination, k float64, alternate bool) (float64, error) {
	if a < Epsilon {
		return 0, fmt.Errorf("%w: matched point has no VSWR circle", ErrUnreachable)
	}
	var ang0, g float64
	invert := alternate

	switch dest.Kind {
	case Resistance:
		if dest.Value < 0 {
			return 0, fmt.Errorf("%w: negative resistance %g", ErrUnreachable, dest.Value)
		}
		mr := real(Moebius(complex(dest.Value, 0), k))
		if math.Abs(mr) > a+Epsilon {
			return 0, fmt.Errorf("%w: resistance %g is off the VSWR circle", ErrUnreachable, dest.Value)
		}
		b := 0.5 * (1 - mr)
		c := 1 - b
		g = lawOfCosines(a, c, b)

	case Reactance:
		invert = alternate != (dest.Value < 0)
		if dest.Value == 0 {
			// The reactance circle degenerates into the real axis.
			ang0, g = math.Pi/2, math.Pi/2
			break
		}
		b := k / dest.Value
		c := math.Hypot(1, b)
		if c > a+math.Abs(b)+Epsilon || c-math.Abs(b) > a+Epsilon {
			return 0, fmt.Errorf("%w: reactance %g is off the VSWR circle", ErrUnreachable, dest.Value)
		}
		ang0 = math.Atan(b)
		g = lawOfCosines(a, c, b)
	}

	if invert {
		g = -g
	}
	return pyMod(ang0+g, 2*math.Pi), nil
}

// lawOfCosines returns the angle between sides a and c of a triangle with
// opposite side b.
func lawOfCosines(a, c, b float64) float64 {
	cos := (a*a + c*c - b*b) / (2 * a * c)
	return math.Acos(math.Max(-1, math.Min(1, cos)))
}
