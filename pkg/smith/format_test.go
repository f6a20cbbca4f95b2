package smith

import "testing"

func TestRealFormatter(t *testing.T) {
	tests := []struct {
		x    float64
		want string
	}{
		{0, ""},
		{0.2, "0.2"},
		{1, "1"},
		{2.5, "2.5"},
		{50, "50"},
		{Infinity, ""},
	}
	var f RealFormatter
	for _, tt := range tests {
		if got := f.Format(tt.x); got != tt.want {
			t.Errorf("Format(%g): expected %q, got %q", tt.x, tt.want, got)
		}
	}
}

func TestImagFormatter(t *testing.T) {
	tests := []struct {
		name string
		inf  string
		y    float64
		want string
	}{
		{"zero", "", 0, "0"},
		{"tiny", "", 1e-9, "0"},
		{"positive", "", 0.5, "0.5j"},
		{"negative", "", -2, "-2j"},
		{"infinity default", "", Infinity, DefaultInfinitySymbol},
		{"infinity custom", "inf", Infinity, "inf"},
		{"negative infinity", "", -Infinity, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := ImagFormatter{Infinity: tt.inf}
			if got := f.Format(tt.y); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestFormatCoord(t *testing.T) {
	tests := []struct {
		z    complex128
		want string
	}{
		{1 + 0.5i, "1.00000 + 0.50000j"},
		{2 - 1i, "2.00000 - 1.00000j"},
		{0.5, "0.50000 - 0.00000j"},
		{-1 + 1i, ""},
		{0, ""},
	}
	for _, tt := range tests {
		if got := FormatCoord(tt.z); got != tt.want {
			t.Errorf("FormatCoord(%v): expected %q, got %q", tt.z, tt.want, got)
		}
	}
}
