package smithfile

import (
	"errors"
	"testing"

	"github.com/ha1tch/smith-toolkit/pkg/smith"
)

func TestParseJSON(t *testing.T) {
	input := `{
		"name": "antenna",
		"type": "z",
		"impedance": 75,
		"lines": [
			{"label": "pairs", "points": [[50, 0], [75, 25], ["", 10]], "interpolate": 3, "color": "#ff0000"},
			{"label": "columns", "points": {"re": [1, 2], "im": [0, ""]}, "marker": "d"}
		]
	}`

	d, err := ParseJSON([]byte(input))
	if err != nil {
		t.Fatalf("ParseJSON failed: %v", err)
	}
	if d.Name != "antenna" || d.Type != smith.TypeZ || d.Impedance != 75 {
		t.Errorf("Unexpected header: %+v", d)
	}
	if len(d.Lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(d.Lines))
	}

	pairs := d.Lines[0]
	want := []complex128{50, 75 + 25i, 10i}
	if len(pairs.Z) != len(want) {
		t.Fatalf("Expected %d points, got %d", len(want), len(pairs.Z))
	}
	for i := range want {
		if pairs.Z[i] != want[i] {
			t.Errorf("Point %d: expected %v, got %v", i, want[i], pairs.Z[i])
		}
	}
	if pairs.Interpolate != 3 || pairs.Color != "#ff0000" {
		t.Errorf("Unexpected options: %+v", pairs)
	}

	cols := d.Lines[1]
	if len(cols.Z) != 2 || cols.Z[0] != 1 || cols.Z[1] != 2 {
		t.Errorf("Expected [1 2], got %v", cols.Z)
	}
	if cols.Marker != "d" {
		t.Errorf("Expected marker d, got %q", cols.Marker)
	}
}

func TestParseJSONErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		err   error
	}{
		{"bad type", `{"type": "H", "lines": []}`, smith.ErrArgument},
		{"triple", `{"lines": [{"points": [[1, 2, 3]]}]}`, smith.ErrShape},
		{"missing im", `{"lines": [{"points": {"re": [1]}}]}`, smith.ErrArgument},
		{"length mismatch", `{"lines": [{"points": {"re": [1, 2], "im": [1]}}]}`, smith.ErrSizeMismatch},
		{"text value", `{"lines": [{"points": [["a", 1]]}]}`, smith.ErrArgument},
		{"scalar points", `{"lines": [{"points": 4}]}`, smith.ErrArgument},
		{"negative impedance", `{"impedance": -1, "lines": []}`, smith.ErrArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseJSON([]byte(tt.input))
			if !errors.Is(err, tt.err) {
				t.Errorf("Expected %v, got %v", tt.err, err)
			}
		})
	}

	if _, err := ParseJSON([]byte(`{`)); err == nil {
		t.Error("Expected syntax error")
	}
}

func TestToJSON(t *testing.T) {
	d := &Dataset{
		Name: "sweep",
		Type: smith.TypeS,
		Lines: []DataLine{
			{Label: "S11", Z: []complex128{0.5, 0.1 - 0.2i}, Equipoints: 10},
		},
	}
	data, err := ToJSON(d, false)
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}
	want := `{"name":"sweep","type":"S","lines":[{"label":"S11","points":[[0.5,0],[0.1,-0.2]],"equipoints":10}]}`
	if string(data) != want {
		t.Errorf("Expected %s, got %s", want, data)
	}

	back, err := ParseJSON(data)
	if err != nil {
		t.Fatalf("ParseJSON failed: %v", err)
	}
	if back.Lines[0].Z[1] != 0.1-0.2i {
		t.Errorf("Expected 0.1-0.2i, got %v", back.Lines[0].Z[1])
	}
}

func TestInterpolateField(t *testing.T) {
	tests := []struct {
		name       string
		value      string
		wantCount  int
		wantSmooth bool
		wantErr    bool
	}{
		{"count", `4`, 4, false, false},
		{"true", `true`, 0, true, false},
		{"false", `false`, 0, false, false},
		{"absent", ``, 0, false, false},
		{"string", `"yes"`, 0, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field := ""
			if tt.value != "" {
				field = `, "interpolate": ` + tt.value
			}
			d, err := ParseJSON([]byte(`{"lines": [{"points": [[1, 0], [2, 1]]` + field + `}]}`))
			if tt.wantErr {
				if !errors.Is(err, smith.ErrArgument) {
					t.Errorf("Expected ErrArgument, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseJSON failed: %v", err)
			}
			l := d.Lines[0]
			if l.Interpolate != tt.wantCount || l.Smooth != tt.wantSmooth {
				t.Errorf("Expected count %d smooth %v, got %d %v", tt.wantCount, tt.wantSmooth, l.Interpolate, l.Smooth)
			}
		})
	}

	data, err := ToJSON(&Dataset{Lines: []DataLine{{Z: []complex128{1}, Smooth: true}}}, false)
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}
	want := `{"lines":[{"points":[[1,0]],"interpolate":true}]}`
	if string(data) != want {
		t.Errorf("Expected %s, got %s", want, data)
	}
}

func TestDatasetApplySmooth(t *testing.T) {
	p := smith.DefaultParams()
	p.Interpolation = 3
	c, err := smith.New(p)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	d, err := ParseJSON([]byte(`{"type": "z", "lines": [{"points": [[50, 0], [50, 50], [100, 50]], "interpolate": true}]}`))
	if err != nil {
		t.Fatalf("ParseJSON failed: %v", err)
	}
	if err := d.Apply(c); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	line := c.Lines()[0]
	if len(line.Z) != 2*4+1 || line.MarkEvery != 4 {
		t.Errorf("Expected 9 points marked every 4, got %d every %d", len(line.Z), line.MarkEvery)
	}
}

func TestDatasetApply(t *testing.T) {
	c, err := smith.New(smith.DefaultParams())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	d := &Dataset{
		Type:      smith.TypeZ,
		Impedance: 75,
		Lines: []DataLine{
			{Label: "a", Z: []complex128{75, 150}},
			{Label: "b", Z: []complex128{75i}, Color: "r"},
		},
	}
	if err := d.Apply(c); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if c.Normalization().Impedance != 75 {
		t.Errorf("Expected impedance 75, got %g", c.Normalization().Impedance)
	}
	lines := c.Lines()
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(lines))
	}
	if lines[0].Z[0] != 1 || lines[0].Z[1] != 2 {
		t.Errorf("Expected normalized [1 2], got %v", lines[0].Z)
	}

	bad := &Dataset{Lines: []DataLine{{Z: []complex128{1}, Color: "nope"}}}
	if err := bad.Apply(c); !errors.Is(err, smith.ErrArgument) {
		t.Errorf("Expected ErrArgument for bad colour, got %v", err)
	}
}
