package smith

import (
	"fmt"
	"reflect"
)

// Values is the result of a complex conversion. Scalar distinguishes a
// single value from a one-element array.
type Values struct {
	Z      []complex128
	Scalar bool
}

// Value returns the first element, or 0 for an empty set.
func (v Values) Value() complex128 {
	if len(v.Z) == 0 {
		return 0
	}
	return v.Z[0]
}

// ToComplex converts its arguments into complex values. Accepted forms:
//
//	ToComplex(z)        scalar or array of complex or real values
//	ToComplex(rows)     2×N array of stacked real and imaginary rows
//	ToComplex(x, y)     real and imaginary parts, scalars or arrays
//
// Empty strings inside arrays are read as 0.
func ToComplex(args ...any) (Values, error) {
	switch len(args) {
	case 1:
		arr, err := toArray(reflect.ValueOf(args[0]))
		if err != nil {
			return Values{}, err
		}
		switch len(arr.shape) {
		case 0:
			return Values{Z: arr.data, Scalar: true}, nil
		case 1:
			return Values{Z: arr.data}, nil
		case 2:
			if arr.shape[0] != 2 {
				return Values{}, fmt.Errorf("%w: first dimension must be 2, got %d", ErrShape, arr.shape[0])
			}
			n := arr.shape[1]
			z := make([]complex128, n)
			for i := 0; i < n; i++ {
				z[i] = arr.data[i] + 1i*arr.data[n+i]
			}
			return Values{Z: z}, nil
		default:
			return Values{}, fmt.Errorf("%w: %d dimensions", ErrShape, len(arr.shape))
		}

	case 2:
		x, err := toArray(reflect.ValueOf(args[0]))
		if err != nil {
			return Values{}, err
		}
		y, err := toArray(reflect.ValueOf(args[1]))
		if err != nil {
			return Values{}, err
		}
		if len(x.shape) > 1 || len(y.shape) > 1 {
			return Values{}, fmt.Errorf("%w: real and imaginary parts must be scalars or 1-D arrays", ErrShape)
		}
		xs, ys := len(x.shape) == 0, len(y.shape) == 0
		if !xs && !ys && len(x.data) != len(y.data) {
			return Values{}, fmt.Errorf("%w: %d real vs %d imaginary values", ErrSizeMismatch, len(x.data), len(y.data))
		}
		n := len(x.data)
		if xs {
			n = len(y.data)
		}
		z := make([]complex128, n)
		for i := range z {
			re, im := x.data[0], y.data[0]
			if !xs {
				re = x.data[i]
			}
			if !ys {
				im = y.data[i]
			}
			z[i] = re + 1i*im
		}
		return Values{Z: z, Scalar: xs && ys}, nil
	}
	return Values{}, fmt.Errorf("%w: expected 1 or 2 arguments, got %d", ErrArgument, len(args))
}

// PairToComplex combines equal-length real and imaginary slices.
func PairToComplex(x, y []float64) ([]complex128, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("%w: %d real vs %d imaginary values", ErrSizeMismatch, len(x), len(y))
	}
	z := make([]complex128, len(x))
	for i := range x {
		z[i] = complex(x[i], y[i])
	}
	return z, nil
}

// Split returns the real and imaginary parts of z.
func Split(z []complex128) (x, y []float64) {
	x = make([]float64, len(z))
	y = make([]float64, len(z))
	for i, v := range z {
		x[i], y[i] = real(v), imag(v)
	}
	return x, y
}

// ndarray is a dense row-major array of complex values.
type ndarray struct {
	shape []int
	data  []complex128
}

func toArray(v reflect.Value) (ndarray, error) {
	for v.IsValid() && v.Kind() == reflect.Interface {
		v = v.Elem()
	}
	if !v.IsValid() {
		return ndarray{}, fmt.Errorf("%w: nil value", ErrArgument)
	}

	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		n := v.Len()
		if n == 0 {
			return ndarray{shape: []int{0}}, nil
		}
		var out ndarray
		for i := 0; i < n; i++ {
			child, err := toArray(v.Index(i))
			if err != nil {
				return ndarray{}, err
			}
			if i == 0 {
				out.shape = append([]int{n}, child.shape...)
			} else if !sameShape(out.shape[1:], child.shape) {
				return ndarray{}, fmt.Errorf("%w: ragged array", ErrShape)
			}
			out.data = append(out.data, child.data...)
		}
		return out, nil
	}

	z, err := scalarValue(v)
	if err != nil {
		return ndarray{}, err
	}
	return ndarray{data: []complex128{z}}, nil
}

func scalarValue(v reflect.Value) (complex128, error) {
	switch v.Kind() {
	case reflect.Complex64, reflect.Complex128:
		return v.Complex(), nil
	case reflect.Float32, reflect.Float64:
		return complex(v.Float(), 0), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return complex(float64(v.Int()), 0), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return complex(float64(v.Uint()), 0), nil
	case reflect.String:
		// Placeholder left behind by text-based data stores.
		if v.String() == "" {
			return 0, nil
		}
	}
	return 0, fmt.Errorf("%w: unsupported value %v (%s)", ErrArgument, v, v.Kind())
}

func sameShape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
