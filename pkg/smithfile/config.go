package smithfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/ha1tch/smith-toolkit/pkg/smith"
)

// yamlConfig is the YAML representation of smith.Params. Keys left out of
// a file keep their default values.
type yamlConfig struct {
	Impedance              float64     `yaml:"impedance"`
	Normalize              bool        `yaml:"normalize"`
	NormalizeLabel         bool        `yaml:"normalize_label"`
	NormalizeLabelPosition [2]float64  `yaml:"normalize_label_position,flow"`
	Radius                 float64     `yaml:"radius"`
	FontSize               float64     `yaml:"font_size"`
	TickPad                float64     `yaml:"tick_pad"`
	XLabelRotation         float64     `yaml:"xlabel_rotation"`
	YLabelCorrection       [3]float64  `yaml:"ylabel_correction,flow"`
	Precision              int         `yaml:"precision"`
	Major                  yamlGrid    `yaml:"major"`
	Minor                  yamlGrid    `yaml:"minor"`
	Plot                   yamlPlot    `yaml:"plot"`
	Symbols                yamlSymbols `yaml:"symbols"`
}

type yamlGrid struct {
	Enable     bool          `yaml:"enable"`
	Fancy      bool          `yaml:"fancy"`
	XDivisions int           `yaml:"x_divisions"`
	YDivisions int           `yaml:"y_divisions"`
	Threshold  yamlThreshold `yaml:"threshold"`
	Dividers   []int         `yaml:"dividers,omitempty,flow"`
	ColorX     string        `yaml:"color_x"`
	ColorY     string        `yaml:"color_y"`
	Width      float64       `yaml:"width"`
	Dashes     []float64     `yaml:"dashes,omitempty,flow"`
}

type yamlPlot struct {
	DefaultType   string      `yaml:"default_type"`
	Interpolation int         `yaml:"interpolation"`
	LineWidth     float64     `yaml:"line_width"`
	Marker        yamlMarkers `yaml:"marker"`
}

type yamlMarkers struct {
	Enable  bool   `yaml:"enable"`
	Rotate  bool   `yaml:"rotate"`
	Start   string `yaml:"start"`
	Default string `yaml:"default"`
	End     string `yaml:"end"`
}

type yamlSymbols struct {
	Infinity           string  `yaml:"infinity"`
	InfinityCorrection float64 `yaml:"infinity_correction"`
	Ohm                string  `yaml:"ohm"`
}

// yamlThreshold reads either a single value for both axes or a
// [real, imag] pair.
type yamlThreshold smith.Threshold

func (t *yamlThreshold) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		var v float64
		if err := n.Decode(&v); err != nil {
			return err
		}
		*t = yamlThreshold(smith.UniformThreshold(v))
		return nil
	case yaml.SequenceNode:
		var v []float64
		if err := n.Decode(&v); err != nil {
			return err
		}
		if len(v) != 2 {
			return fmt.Errorf("line %d: threshold needs 2 values, got %d", n.Line, len(v))
		}
		*t = yamlThreshold{Real: v[0], Imag: v[1]}
		return nil
	}
	return fmt.Errorf("line %d: threshold must be a number or a pair", n.Line)
}

func (t yamlThreshold) MarshalYAML() (interface{}, error) {
	if t.Real == t.Imag {
		return t.Real, nil
	}
	n := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, v := range []float64{t.Real, t.Imag} {
		n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: strconv.FormatFloat(v, 'g', -1, 64)})
	}
	return n, nil
}

func gridToYAML(g smith.GridParams) yamlGrid {
	return yamlGrid{
		Enable:     g.Enable,
		Fancy:      g.Fancy,
		XDivisions: g.XDivisions,
		YDivisions: g.YDivisions,
		Threshold:  yamlThreshold(g.Threshold),
		Dividers:   append([]int(nil), g.Dividers...),
		ColorX:     g.ColorX,
		ColorY:     g.ColorY,
		Width:      g.Width,
		Dashes:     append([]float64(nil), g.Dashes...),
	}
}

func (g yamlGrid) params() smith.GridParams {
	return smith.GridParams{
		Enable:     g.Enable,
		Fancy:      g.Fancy,
		XDivisions: g.XDivisions,
		YDivisions: g.YDivisions,
		Threshold:  smith.Threshold(g.Threshold),
		Dividers:   g.Dividers,
		ColorX:     g.ColorX,
		ColorY:     g.ColorY,
		Width:      g.Width,
		Dashes:     g.Dashes,
	}
}

func configToYAML(p smith.Params) yamlConfig {
	return yamlConfig{
		Impedance:              p.Impedance,
		Normalize:              p.Normalize,
		NormalizeLabel:         p.NormalizeLabel,
		NormalizeLabelPosition: [2]float64{real(p.NormalizeLabelPosition), imag(p.NormalizeLabelPosition)},
		Radius:                 p.Radius,
		FontSize:               p.FontSize,
		TickPad:                p.TickPad,
		XLabelRotation:         p.XLabelRotation,
		YLabelCorrection:       p.YLabelCorrection,
		Precision:              p.Precision,
		Major:                  gridToYAML(p.Major),
		Minor:                  gridToYAML(p.Minor),
		Plot: yamlPlot{
			DefaultType:   string(p.DefaultType),
			Interpolation: p.Interpolation,
			LineWidth:     p.LineWidth,
			Marker:        yamlMarkers(p.Marker),
		},
		Symbols: yamlSymbols{
			Infinity:           p.InfinitySymbol,
			InfinityCorrection: p.InfinityCorrection,
			Ohm:                p.OhmSymbol,
		},
	}
}

func (c yamlConfig) params() (smith.Params, error) {
	t, err := smith.ParseParameterType(c.Plot.DefaultType)
	if err != nil {
		return smith.Params{}, err
	}
	return smith.Params{
		Impedance:              c.Impedance,
		Normalize:              c.Normalize,
		NormalizeLabel:         c.NormalizeLabel,
		NormalizeLabelPosition: complex(c.NormalizeLabelPosition[0], c.NormalizeLabelPosition[1]),
		Radius:                 c.Radius,
		FontSize:               c.FontSize,
		TickPad:                c.TickPad,
		XLabelRotation:         c.XLabelRotation,
		YLabelCorrection:       c.YLabelCorrection,
		Precision:              c.Precision,
		Major:                  c.Major.params(),
		Minor:                  c.Minor.params(),
		DefaultType:            t,
		Interpolation:          c.Plot.Interpolation,
		LineWidth:              c.Plot.LineWidth,
		Marker:                 smith.MarkerParams(c.Plot.Marker),
		InfinitySymbol:         c.Symbols.Infinity,
		InfinityCorrection:     c.Symbols.InfinityCorrection,
		OhmSymbol:              c.Symbols.Ohm,
	}, nil
}

// ParseConfig reads YAML chart parameters on top of smith.DefaultParams.
// Unknown keys are an error, as is any value Params.Validate rejects.
func ParseConfig(r io.Reader) (smith.Params, error) {
	cfg := configToYAML(smith.DefaultParams())
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return smith.Params{}, fmt.Errorf("config: %w", err)
	}
	p, err := cfg.params()
	if err != nil {
		return smith.Params{}, fmt.Errorf("config: %w", err)
	}
	if err := p.Validate(); err != nil {
		return smith.Params{}, fmt.Errorf("config: %w", err)
	}
	return p, nil
}

// LoadConfig reads chart parameters from a YAML file.
func LoadConfig(path string) (smith.Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return smith.Params{}, err
	}
	return ParseConfig(bytes.NewReader(data))
}

// MarshalConfig writes p as YAML.
func MarshalConfig(p smith.Params) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(configToYAML(p)); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
