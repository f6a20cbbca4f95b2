package smithfile

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ha1tch/smith-toolkit/pkg/smith"
)

// Bundle is the content of a .smith file: a dataset and, optionally, the
// chart parameters it was drawn with.
type Bundle struct {
	Params *smith.Params // nil when the archive carries no chart.yaml
	Data   *Dataset
}

// Chart builds a chart from the bundle's parameters (or the defaults) and
// plots its data.
func (b *Bundle) Chart(opts ...smith.Option) (*smith.Chart, error) {
	p := smith.DefaultParams()
	if b.Params != nil {
		p = *b.Params
	}
	c, err := smith.New(p, opts...)
	if err != nil {
		return nil, err
	}
	if b.Data != nil {
		if err := b.Data.Apply(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// WriteBundleFile writes a bundle to a .smith file.
func WriteBundleFile(path string, b *Bundle) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteBundle(file, b)
}

// WriteBundle writes a bundle to a writer in .smith format.
func WriteBundle(w io.Writer, b *Bundle) error {
	zw := zip.NewWriter(w)

	data := b.Data
	if data == nil {
		data = &Dataset{}
	}
	js, err := ToJSON(data, true)
	if err != nil {
		return err
	}
	if err := writeEntry(zw, "data.json", append(js, '\n')); err != nil {
		return err
	}

	if b.Params != nil {
		cfg, err := MarshalConfig(*b.Params)
		if err != nil {
			return err
		}
		if err := writeEntry(zw, "chart.yaml", cfg); err != nil {
			return err
		}
	}

	return zw.Close()
}

func writeEntry(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// ReadBundleFile reads a bundle from a .smith file.
func ReadBundleFile(path string) (*Bundle, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}

	return ReadBundle(file, info.Size())
}

// ReadBundle reads a bundle from a reader containing .smith format.
func ReadBundle(r io.ReaderAt, size int64) (*Bundle, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, err
	}

	var dataContent, configContent []byte
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}

		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, err
		}

		switch f.Name {
		case "data.json":
			dataContent = data
		case "chart.yaml":
			configContent = data
		}
	}

	if dataContent == nil {
		return nil, fmt.Errorf("data.json not found in archive")
	}

	b := &Bundle{}
	if b.Data, err = ParseJSON(dataContent); err != nil {
		return nil, err
	}
	if configContent != nil {
		p, err := ParseConfig(bytes.NewReader(configContent))
		if err != nil {
			return nil, err
		}
		b.Params = &p
	}
	return b, nil
}

// ReadBundleBytes reads a bundle from bytes in .smith format.
func ReadBundleBytes(data []byte) (*Bundle, error) {
	return ReadBundle(bytes.NewReader(data), int64(len(data)))
}

// ReadDataFile loads plot data by extension: .json datasets, .sNp
// Touchstone files or .smith bundles.
func ReadDataFile(path string) (*Bundle, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".smith" {
		return ReadBundleFile(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	if ext == ".json" {
		d, err := ParseJSON(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if d.Name == "" {
			d.Name = name
		}
		return &Bundle{Data: d}, nil
	}

	ports, err := PortsFromExt(path)
	if err != nil {
		return nil, fmt.Errorf("unsupported data file %s", path)
	}
	n, err := ParseTouchstone(bytes.NewReader(data), ports)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &Bundle{Data: n.Dataset(name)}, nil
}
