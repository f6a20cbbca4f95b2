package smith

import (
	"math"
	"math/cmplx"
)

// linearInterp inserts steps-1 evenly spaced values between each pair.
func linearInterp(a []float64, steps int) []float64 {
	if len(a) < 2 || steps < 1 {
		return append([]float64(nil), a...)
	}
	out := make([]float64, 0, (len(a)-1)*steps+1)
	for i := 0; i < len(a)-1; i++ {
		for s := 0; s < steps; s++ {
			f := float64(s) / float64(steps)
			out = append(out, a[i]*(1-f)+a[i+1]*f)
		}
	}
	return append(out, a[len(a)-1])
}

// RealInterp interpolates resistance values evenly in display space.
func RealInterp(x []float64, steps int, k float64) []float64 {
	w := make([]float64, len(x))
	for i, v := range x {
		w[i] = real(Moebius(complex(v, 0), k))
	}
	w = linearInterp(w, steps)
	for i, v := range w {
		w[i] = real(InverseMoebius(complex(v, 0), k))
	}
	return w
}

// ImagInterp interpolates reactance values evenly along the boundary circle.
func ImagInterp(y []float64, steps int, k float64) []float64 {
	angs := make([]float64, len(y))
	for i, v := range y {
		angs[i] = pyMod(cmplx.Phase(Moebius(complex(0, v), k)), 2*math.Pi)
	}
	angs = linearInterp(angs, steps)
	for i, a := range angs {
		angs[i] = imag(InverseMoebius(AngleToComplex(a), k))
	}
	return angs
}
