package smith

import (
	"errors"
	"testing"
)

func TestToComplex(t *testing.T) {
	tests := []struct {
		name   string
		args   []any
		want   []complex128
		scalar bool
	}{
		{"complex scalar", []any{1 + 2i}, []complex128{1 + 2i}, true},
		{"float scalar", []any{3.5}, []complex128{3.5}, true},
		{"int scalar", []any{4}, []complex128{4}, true},
		{"real array", []any{[]float64{1, 2}}, []complex128{1, 2}, false},
		{"complex array", []any{[]complex128{1i, 2}}, []complex128{1i, 2}, false},
		{"stacked rows", []any{[][]float64{{1, 2}, {3, 4}}}, []complex128{1 + 3i, 2 + 4i}, false},
		{"pair of arrays", []any{[]float64{1, 2}, []float64{5, 6}}, []complex128{1 + 5i, 2 + 6i}, false},
		{"scalar and array", []any{1.0, []float64{1, 2}}, []complex128{1 + 1i, 1 + 2i}, false},
		{"pair of scalars", []any{1.0, 2.0}, []complex128{1 + 2i}, true},
		{"empty array", []any{[]float64{}}, nil, false},
		{"blank placeholder", []any{[]any{[]any{0.0}, []any{""}}}, []complex128{0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToComplex(tt.args...)
			if err != nil {
				t.Fatalf("ToComplex failed: %v", err)
			}
			if got.Scalar != tt.scalar {
				t.Errorf("Expected scalar=%v, got %v", tt.scalar, got.Scalar)
			}
			if len(got.Z) != len(tt.want) {
				t.Fatalf("Expected %d values, got %d", len(tt.want), len(got.Z))
			}
			for i := range tt.want {
				if got.Z[i] != tt.want[i] {
					t.Errorf("Value %d: expected %v, got %v", i, tt.want[i], got.Z[i])
				}
			}
		})
	}
}

func TestToComplexErrors(t *testing.T) {
	tests := []struct {
		name string
		args []any
		want error
	}{
		{"no arguments", nil, ErrArgument},
		{"three arguments", []any{1, 2, 3}, ErrArgument},
		{"text", []any{"abc"}, ErrArgument},
		{"nil", []any{nil}, ErrArgument},
		{"three rows", []any{[][]float64{{1}, {2}, {3}}}, ErrShape},
		{"three dimensions", []any{[][][]float64{{{1}}, {{2}}}}, ErrShape},
		{"ragged", []any{[][]float64{{1}, {1, 2}}}, ErrShape},
		{"matrix pair", []any{[][]float64{{1}}, []float64{1}}, ErrShape},
		{"length mismatch", []any{[]float64{1, 2}, []float64{1}}, ErrSizeMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ToComplex(tt.args...)
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestPairToComplexAndSplit(t *testing.T) {
	z, err := PairToComplex([]float64{1, 2}, []float64{-1, 3})
	if err != nil {
		t.Fatalf("PairToComplex failed: %v", err)
	}
	x, y := Split(z)
	if x[0] != 1 || x[1] != 2 || y[0] != -1 || y[1] != 3 {
		t.Errorf("Expected parts back, got %v %v", x, y)
	}

	if _, err := PairToComplex([]float64{1}, nil); !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("Expected ErrSizeMismatch, got %v", err)
	}
}

func TestValuesValue(t *testing.T) {
	if v := (Values{}).Value(); v != 0 {
		t.Errorf("Expected 0 for empty values, got %v", v)
	}
	if v := (Values{Z: []complex128{2i, 3}}).Value(); v != 2i {
		t.Errorf("Expected first element, got %v", v)
	}
}
