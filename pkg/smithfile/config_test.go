package smithfile

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/ha1tch/smith-toolkit/pkg/smith"
)

func TestParseConfigDefaults(t *testing.T) {
	p, err := ParseConfig(strings.NewReader(""))
	if err != nil {
		t.Fatalf("ParseConfig failed: %v", err)
	}
	if !reflect.DeepEqual(p, smith.DefaultParams()) {
		t.Errorf("Expected defaults for an empty file, got %+v", p)
	}
}

func TestParseConfig(t *testing.T) {
	input := `
impedance: 75
normalize: false
normalize_label_position: [-0.9, -1.1]
major:
  fancy: false
  threshold: 80
minor:
  enable: true
  threshold: [20, 40]
  dividers: [1, 2, 5]
  color_x: "#808080"
plot:
  default_type: z
  marker:
    end: v
`
	p, err := ParseConfig(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseConfig failed: %v", err)
	}

	if p.Impedance != 75 || p.Normalize {
		t.Errorf("Expected 75 Ω unnormalized, got %g %v", p.Impedance, p.Normalize)
	}
	if p.NormalizeLabelPosition != -0.9-1.1i {
		t.Errorf("Expected label position -0.9-1.1i, got %v", p.NormalizeLabelPosition)
	}
	if p.Major.Fancy {
		t.Error("Expected plain major grid")
	}
	if p.Major.Threshold != smith.UniformThreshold(80) {
		t.Errorf("Expected scalar threshold for both axes, got %+v", p.Major.Threshold)
	}
	if p.Minor.Threshold != (smith.Threshold{Real: 20, Imag: 40}) {
		t.Errorf("Expected threshold pair, got %+v", p.Minor.Threshold)
	}
	if !reflect.DeepEqual(p.Minor.Dividers, []int{1, 2, 5}) {
		t.Errorf("Expected dividers [1 2 5], got %v", p.Minor.Dividers)
	}
	if p.DefaultType != smith.TypeZ {
		t.Errorf("Expected default type Z, got %q", p.DefaultType)
	}

	// Untouched keys keep their defaults.
	def := smith.DefaultParams()
	if p.Minor.ColorY != def.Minor.ColorY || p.Major.XDivisions != def.Major.XDivisions {
		t.Error("Expected unspecified keys to keep defaults")
	}
	if p.Marker.End != "v" || p.Marker.Start != def.Marker.Start {
		t.Errorf("Unexpected markers: %+v", p.Marker)
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		err   error
	}{
		{"unknown key", "impedence: 50\n", nil},
		{"bad threshold pair", "major:\n  threshold: [1, 2, 3]\n", nil},
		{"threshold map", "major:\n  threshold: {a: 1}\n", nil},
		{"radius out of range", "radius: 0.9\n", smith.ErrPrecondition},
		{"bad colour", "major:\n  color_x: mauve\n", smith.ErrArgument},
		{"bad type", "plot:\n  default_type: h\n", smith.ErrArgument},
		{"no dividers", "minor:\n  dividers: []\n", smith.ErrPrecondition},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("Expected error")
			}
			if tt.err != nil && !errors.Is(err, tt.err) {
				t.Errorf("Expected %v, got %v", tt.err, err)
			}
		})
	}
}

func TestMarshalConfig(t *testing.T) {
	p := smith.DefaultParams()
	p.Impedance = 100
	p.Major.Threshold = smith.Threshold{Real: 90, Imag: 45}

	data, err := MarshalConfig(p)
	if err != nil {
		t.Fatalf("MarshalConfig failed: %v", err)
	}
	if !strings.Contains(string(data), "threshold: [90, 45]") {
		t.Errorf("Expected threshold pair in output:\n%s", data)
	}

	path := filepath.Join(t.TempDir(), "chart.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	back, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if !reflect.DeepEqual(back, p) {
		t.Errorf("Expected %+v, got %+v", p, back)
	}
}
