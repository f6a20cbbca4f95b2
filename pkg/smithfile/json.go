package smithfile

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/ha1tch/smith-toolkit/pkg/smith"
)

// Dataset is a named set of lines to plot on one chart.
type Dataset struct {
	Name      string
	Type      smith.ParameterType // empty uses the chart default
	Impedance float64             // reference impedance, 0 keeps the chart's
	Lines     []DataLine
}

// DataLine is one series of samples with its plot options.
type DataLine struct {
	Label       string
	Z           []complex128
	Interpolate int
	Equipoints  int
	Smooth      bool // interpolate with the chart's default count
	Color       string
	Marker      string
}

// jsonDataset is the JSON representation of a Dataset.
type jsonDataset struct {
	Name      string     `json:"name,omitempty"`
	Type      string     `json:"type,omitempty"`
	Impedance float64    `json:"impedance,omitempty"`
	Lines     []jsonLine `json:"lines"`
}

type jsonLine struct {
	Label       string      `json:"label,omitempty"`
	Points      interface{}     `json:"points"` // [[re, im], ...] or {"re": [...], "im": [...]}
	Interpolate json.RawMessage `json:"interpolate,omitempty"` // count or true
	Equipoints  int             `json:"equipoints,omitempty"`
	Color       string          `json:"color,omitempty"`
	Marker      string          `json:"marker,omitempty"`
}

// decodeInterpolate reads an "interpolate" value: a point count, or a
// boolean asking for the chart's default count.
func decodeInterpolate(raw json.RawMessage) (count int, smooth bool, err error) {
	if len(raw) == 0 {
		return 0, false, nil
	}
	if err := json.Unmarshal(raw, &smooth); err == nil {
		return 0, smooth, nil
	}
	if err := json.Unmarshal(raw, &count); err != nil {
		return 0, false, fmt.Errorf("%w: interpolate must be a count or a boolean, got %s", smith.ErrArgument, raw)
	}
	return count, false, nil
}

func encodeInterpolate(l DataLine) json.RawMessage {
	switch {
	case l.Interpolate > 0:
		return json.RawMessage(strconv.Itoa(l.Interpolate))
	case l.Smooth:
		return json.RawMessage("true")
	}
	return nil
}

// ParseJSON parses a dataset from JSON.
func ParseJSON(data []byte) (*Dataset, error) {
	var j jsonDataset
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, err
	}

	d := &Dataset{Name: j.Name, Impedance: j.Impedance}
	if j.Type != "" {
		t, err := smith.ParseParameterType(j.Type)
		if err != nil {
			return nil, err
		}
		d.Type = t
	}
	if j.Impedance < 0 {
		return nil, fmt.Errorf("%w: negative impedance %g", smith.ErrArgument, j.Impedance)
	}

	for i, jl := range j.Lines {
		z, err := decodePoints(jl.Points)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i, err)
		}
		n, smooth, err := decodeInterpolate(jl.Interpolate)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i, err)
		}
		d.Lines = append(d.Lines, DataLine{
			Label:       jl.Label,
			Z:           z,
			Interpolate: n,
			Equipoints:  jl.Equipoints,
			Smooth:      smooth,
			Color:       jl.Color,
			Marker:      jl.Marker,
		})
	}
	return d, nil
}

// decodePoints accepts a list of [re, im] pairs or an object of parallel
// re and im lists. Empty strings count as zero.
func decodePoints(v interface{}) ([]complex128, error) {
	switch p := v.(type) {
	case nil:
		return nil, nil
	case map[string]interface{}:
		re, ok1 := p["re"]
		im, ok2 := p["im"]
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("%w: points object needs re and im", smith.ErrArgument)
		}
		vals, err := smith.ToComplex(re, im)
		if err != nil {
			return nil, err
		}
		return vals.Z, nil
	case []interface{}:
		re := make([]interface{}, len(p))
		im := make([]interface{}, len(p))
		for i, row := range p {
			pair, ok := row.([]interface{})
			if !ok || len(pair) != 2 {
				return nil, fmt.Errorf("%w: point %d is not an [re, im] pair", smith.ErrShape, i)
			}
			re[i], im[i] = pair[0], pair[1]
		}
		if len(p) == 0 {
			return nil, nil
		}
		vals, err := smith.ToComplex(re, im)
		if err != nil {
			return nil, err
		}
		return vals.Z, nil
	}
	return nil, fmt.Errorf("%w: unsupported points value", smith.ErrArgument)
}

// ToJSON converts a dataset to JSON. Points are written as pairs.
func ToJSON(d *Dataset, pretty bool) ([]byte, error) {
	j := jsonDataset{
		Name:      d.Name,
		Type:      string(d.Type),
		Impedance: d.Impedance,
		Lines:     make([]jsonLine, 0, len(d.Lines)),
	}
	for _, l := range d.Lines {
		pts := make([][2]float64, len(l.Z))
		for i, z := range l.Z {
			pts[i] = [2]float64{real(z), imag(z)}
		}
		j.Lines = append(j.Lines, jsonLine{
			Label:       l.Label,
			Points:      pts,
			Interpolate: encodeInterpolate(l),
			Equipoints:  l.Equipoints,
			Color:       l.Color,
			Marker:      l.Marker,
		})
	}

	if pretty {
		return json.MarshalIndent(j, "", "  ")
	}
	return json.Marshal(j)
}

// Apply plots every line of d on c. A dataset impedance replaces the
// chart's reference impedance first.
func (d *Dataset) Apply(c *smith.Chart) error {
	if d.Impedance > 0 && d.Impedance != c.Normalization().Impedance {
		if err := c.Update(func(p *smith.Params) { p.Impedance = d.Impedance }); err != nil {
			return err
		}
	}
	for i, l := range d.Lines {
		var style smith.LineStyle
		if l.Color != "" {
			col, err := smith.ParseColor(l.Color)
			if err != nil {
				return fmt.Errorf("line %d: %w", i, err)
			}
			style.Color = col
		}
		_, err := c.Plot(l.Z, smith.PlotOptions{
			Type:        d.Type,
			Interpolate: l.Interpolate,
			Equipoints:  l.Equipoints,
			Smooth:      l.Smooth,
			Label:       l.Label,
			Style:       style,
			Marker:      l.Marker,
		})
		if err != nil {
			return fmt.Errorf("line %d: %w", i, err)
		}
	}
	return nil
}
