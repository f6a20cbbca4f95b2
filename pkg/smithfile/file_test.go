package smithfile

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/ha1tch/smith-toolkit/pkg/smith"
)

func TestBundleRoundTrip(t *testing.T) {
	p := smith.DefaultParams()
	p.Impedance = 75
	p.Minor.Enable = true
	b := &Bundle{
		Params: &p,
		Data: &Dataset{
			Name:  "match",
			Type:  smith.TypeZ,
			Lines: []DataLine{{Label: "load", Z: []complex128{75, 150 + 75i}, Interpolate: 4}},
		},
	}

	var buf bytes.Buffer
	if err := WriteBundle(&buf, b); err != nil {
		t.Fatalf("WriteBundle failed: %v", err)
	}
	got, err := ReadBundleBytes(buf.Bytes())
	if err != nil {
		t.Fatalf("ReadBundleBytes failed: %v", err)
	}
	if got.Params == nil || got.Params.Impedance != 75 || !got.Params.Minor.Enable {
		t.Errorf("Expected chart parameters to survive, got %+v", got.Params)
	}
	if got.Data.Name != "match" || len(got.Data.Lines) != 1 || got.Data.Lines[0].Interpolate != 4 {
		t.Errorf("Unexpected dataset: %+v", got.Data)
	}

	c, err := got.Chart()
	if err != nil {
		t.Fatalf("Chart failed: %v", err)
	}
	lines := c.Lines()
	if len(lines) != 1 || len(lines[0].Z) != 6 {
		t.Errorf("Expected one interpolated line of 6 points, got %d lines", len(lines))
	}
}

func TestBundleWithoutParams(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteBundle(&buf, &Bundle{}); err != nil {
		t.Fatalf("WriteBundle failed: %v", err)
	}
	got, err := ReadBundleBytes(buf.Bytes())
	if err != nil {
		t.Fatalf("ReadBundleBytes failed: %v", err)
	}
	if got.Params != nil {
		t.Error("Expected no parameters")
	}
	if _, err := got.Chart(); err != nil {
		t.Errorf("Expected default chart, got %v", err)
	}
}

func TestReadBundleErrors(t *testing.T) {
	if _, err := ReadBundleBytes([]byte("not a zip")); err == nil {
		t.Error("Expected error for non-zip data")
	}
}

func TestReadDataFile(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	t.Run("json", func(t *testing.T) {
		b, err := ReadDataFile(write("sweep.json", `{"lines": [{"points": [[0.1, 0.2]]}]}`))
		if err != nil {
			t.Fatalf("ReadDataFile failed: %v", err)
		}
		if b.Data.Name != "sweep" {
			t.Errorf("Expected name from file, got %q", b.Data.Name)
		}
	})

	t.Run("touchstone", func(t *testing.T) {
		b, err := ReadDataFile(write("amp.s2p", "# GHz S RI R 50\n1 0 0 1 0 0 0 0 0\n"))
		if err != nil {
			t.Fatalf("ReadDataFile failed: %v", err)
		}
		if len(b.Data.Lines) != 4 || b.Data.Lines[1].Label != "S12" {
			t.Errorf("Expected S11..S22 lines, got %d", len(b.Data.Lines))
		}
		s21 := b.Data.Lines[2]
		if s21.Label != "S21" || s21.Z[0] != 1 {
			t.Errorf("Expected S21 = 1, got %v", s21.Z)
		}
	})

	t.Run("bundle", func(t *testing.T) {
		path := filepath.Join(dir, "chart.smith")
		if err := WriteBundleFile(path, &Bundle{Data: &Dataset{Name: "x"}}); err != nil {
			t.Fatalf("WriteBundleFile failed: %v", err)
		}
		b, err := ReadDataFile(path)
		if err != nil {
			t.Fatalf("ReadDataFile failed: %v", err)
		}
		if b.Data.Name != "x" {
			t.Errorf("Expected name x, got %q", b.Data.Name)
		}
	})

	t.Run("unsupported", func(t *testing.T) {
		if _, err := ReadDataFile(write("data.csv", "1,2")); err == nil {
			t.Error("Expected error for unsupported extension")
		}
	})

	t.Run("missing", func(t *testing.T) {
		if _, err := ReadDataFile(filepath.Join(dir, "none.json")); err == nil {
			t.Error("Expected error for missing file")
		}
	})
}
