package smith

import (
	"errors"
	"testing"
)

func TestDefaultParamsValid(t *testing.T) {
	if err := DefaultParams().Validate(); err != nil {
		t.Errorf("Expected defaults to validate, got %v", err)
	}
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name string
		edit func(*Params)
	}{
		{"zero impedance", func(p *Params) { p.Impedance = 0 }},
		{"radius too large", func(p *Params) { p.Radius = 0.8 }},
		{"font size", func(p *Params) { p.FontSize = 0 }},
		{"precision", func(p *Params) { p.Precision = 0 }},
		{"interpolation", func(p *Params) { p.Interpolation = -1 }},
		{"default type", func(p *Params) { p.DefaultType = "X" }},
		{"major divisions", func(p *Params) { p.Major.XDivisions = 0 }},
		{"minor threshold", func(p *Params) { p.Minor.Threshold.Imag = -1 }},
		{"minor dividers empty", func(p *Params) { p.Minor.Dividers = nil }},
		{"minor dividers zero", func(p *Params) { p.Minor.Dividers = []int{0, 2} }},
		{"bad colour", func(p *Params) { p.Major.ColorX = "chartreuse-ish" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.edit(&p)
			if err := p.Validate(); err == nil {
				t.Errorf("Expected validation error")
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		r, g, b float64
	}{
		{"0.2", 0.2, 0.2, 0.2},
		{"k", 0, 0, 0},
		{"White", 1, 1, 1},
		{"#ff0000", 1, 0, 0},
		{" 1 ", 1, 1, 1},
	}
	for _, tt := range tests {
		c, err := ParseColor(tt.in)
		if err != nil {
			t.Errorf("ParseColor(%q) failed: %v", tt.in, err)
			continue
		}
		if !closeTo(c.R, tt.r, 1e-9) || !closeTo(c.G, tt.g, 1e-9) || !closeTo(c.B, tt.b, 1e-9) {
			t.Errorf("ParseColor(%q): expected (%g, %g, %g), got %v", tt.in, tt.r, tt.g, tt.b, c)
		}
	}

	for _, bad := range []string{"", "1.5", "#zz0000", "purple-ish"} {
		if _, err := ParseColor(bad); !errors.Is(err, ErrArgument) {
			t.Errorf("ParseColor(%q): expected ErrArgument, got %v", bad, err)
		}
	}
}

func TestThresholdAbsolute(t *testing.T) {
	x, y := Threshold{Real: 100, Imag: 50}.Absolute()
	if x != 0.1 || y != 0.05 {
		t.Errorf("Expected (0.1, 0.05), got (%g, %g)", x, y)
	}
}

func TestGridStyles(t *testing.T) {
	x, y := DefaultParams().Minor.Styles()
	if x.Width != 0.75 || len(y.Dashes) != 2 {
		t.Errorf("Expected minor style from params, got %+v %+v", x, y)
	}
	r, g, b, _ := x.Color.RGBA()
	if r != g || g != b {
		t.Errorf("Expected grey, got %d %d %d", r, g, b)
	}
}

func TestParseParameterType(t *testing.T) {
	for in, want := range map[string]ParameterType{"s": TypeS, "Z": TypeZ, "y": TypeY} {
		got, err := ParseParameterType(in)
		if err != nil || got != want {
			t.Errorf("ParseParameterType(%q): expected %v, got %v (%v)", in, want, got, err)
		}
	}
	if _, err := ParseParameterType("h"); !errors.Is(err, ErrArgument) {
		t.Errorf("Expected ErrArgument, got %v", err)
	}
}
