package smithfile

import (
	"fmt"
	"io"
	"math"
	"math/cmplx"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/ha1tch/smith-toolkit/pkg/smith"
)

// TouchstoneLexer tokenizes Touchstone v1 network files. Line structure
// carries no meaning; data is grouped by count.
var TouchstoneLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `![^\n]*`},
	{Name: "Option", Pattern: `#[^\n]*`},
	{Name: "Number", Pattern: `[-+]?(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?`},
	{Name: "Whitespace", Pattern: `\s+`},
})

type touchstoneFile struct {
	Items []*touchstoneItem `parser:"@@*"`
}

type touchstoneItem struct {
	Option *string  `parser:"  @Option"`
	Number *float64 `parser:"| @Number"`
}

var touchstoneParser = participle.MustBuild[touchstoneFile](
	participle.Lexer(TouchstoneLexer),
	participle.Elide("Comment", "Whitespace"),
)

// Network is the content of a Touchstone file.
type Network struct {
	Ports     int
	Type      smith.ParameterType
	Format    string  // MA, DB or RI
	Reference float64 // reference resistance, ohms
	Freq      []float64
	// Data holds one Ports×Ports row-major matrix per frequency.
	Data [][]complex128
}

var freqUnits = map[string]float64{
	"HZ":  1,
	"KHZ": 1e3,
	"MHZ": 1e6,
	"GHZ": 1e9,
}

// PortsFromExt reads the port count from a .sNp file name.
func PortsFromExt(name string) (int, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if len(ext) < 4 || ext[1] != 's' || ext[len(ext)-1] != 'p' {
		return 0, fmt.Errorf("%w: %q is not a touchstone file name", smith.ErrArgument, name)
	}
	n, err := strconv.Atoi(ext[2 : len(ext)-1])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: bad port count in %q", smith.ErrArgument, name)
	}
	return n, nil
}

// ParseTouchstone reads an N-port Touchstone v1 file. Frequencies are
// returned in Hz.
func ParseTouchstone(r io.Reader, ports int) (*Network, error) {
	if ports < 1 {
		return nil, fmt.Errorf("%w: port count must be positive", smith.ErrArgument)
	}
	ast, err := touchstoneParser.Parse("", r)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	n := &Network{Ports: ports, Type: smith.TypeS, Format: "MA", Reference: 50}
	unit := 1e9
	seenOption := false
	var nums []float64
	for _, it := range ast.Items {
		switch {
		case it.Option != nil:
			// Only the first option line counts.
			if seenOption {
				continue
			}
			seenOption = true
			if unit, err = n.parseOption(*it.Option); err != nil {
				return nil, err
			}
		case it.Number != nil:
			nums = append(nums, *it.Number)
		}
	}

	row := 1 + 2*ports*ports
	i := 0
	for ; i < len(nums); i += row {
		f := nums[i] * unit
		// Two-port noise data follows the network data, restarting the
		// frequency sweep.
		if ports == 2 && len(n.Freq) > 0 && f <= n.Freq[len(n.Freq)-1] {
			return n, nil
		}
		if i+row > len(nums) {
			return nil, fmt.Errorf("%w: %d values do not fill rows of %d", smith.ErrShape, len(nums), row)
		}
		n.Freq = append(n.Freq, f)
		n.Data = append(n.Data, n.matrix(nums[i+1:i+row]))
	}
	return n, nil
}

// parseOption applies "# <unit> <param> <format> R <ref>" in any order and
// returns the frequency multiplier.
func (n *Network) parseOption(line string) (float64, error) {
	unit := 1e9
	fields := strings.Fields(strings.ToUpper(strings.TrimPrefix(line, "#")))
	for i := 0; i < len(fields); i++ {
		f := fields[i]
		if m, ok := freqUnits[f]; ok {
			unit = m
			continue
		}
		switch f {
		case "S", "Y", "Z":
			n.Type = smith.ParameterType(f)
		case "G", "H":
			return 0, fmt.Errorf("%w: %s parameters cannot be plotted", smith.ErrArgument, f)
		case "MA", "DB", "RI":
			n.Format = f
		case "R":
			if i+1 >= len(fields) {
				return 0, fmt.Errorf("%w: option line has R without a value", smith.ErrArgument)
			}
			ref, err := strconv.ParseFloat(fields[i+1], 64)
			if err != nil || !(ref > 0) {
				return 0, fmt.Errorf("%w: bad reference resistance %q", smith.ErrArgument, fields[i+1])
			}
			n.Reference = ref
			i++
		default:
			return 0, fmt.Errorf("%w: unknown option %q", smith.ErrArgument, f)
		}
	}
	return unit, nil
}

// matrix decodes one frequency point's value pairs into a row-major
// matrix. Two-port files list S11 S21 S12 S22.
func (n *Network) matrix(vals []float64) []complex128 {
	np := n.Ports
	m := make([]complex128, np*np)
	for k := 0; k < np*np; k++ {
		i, j := k/np, k%np
		if np == 2 {
			i, j = j, i
		}
		m[i*np+j] = n.value(vals[2*k], vals[2*k+1])
	}
	return m
}

func (n *Network) value(a, b float64) complex128 {
	switch n.Format {
	case "RI":
		return complex(a, b)
	case "DB":
		return cmplx.Rect(math.Pow(10, a/20), b*math.Pi/180)
	}
	return cmplx.Rect(a, b*math.Pi/180)
}

// Param returns parameter (i, j), 1-based, over all frequencies.
func (n *Network) Param(i, j int) ([]complex128, error) {
	if i < 1 || j < 1 || i > n.Ports || j > n.Ports {
		return nil, fmt.Errorf("%w: no parameter %d%d in a %d-port network", smith.ErrArgument, i, j, n.Ports)
	}
	out := make([]complex128, len(n.Data))
	for f, m := range n.Data {
		out[f] = m[(i-1)*n.Ports+j-1]
	}
	return out, nil
}

// Dataset turns each port pair into a line labelled S11, S21 and so on.
// Z and Y data are stored normalized to the reference resistance and are
// scaled back to ohms and siemens.
func (n *Network) Dataset(name string) *Dataset {
	d := &Dataset{Name: name, Type: n.Type, Impedance: n.Reference}
	scale := complex(1, 0)
	switch n.Type {
	case smith.TypeZ:
		scale = complex(n.Reference, 0)
	case smith.TypeY:
		scale = complex(1/n.Reference, 0)
	}
	for i := 1; i <= n.Ports; i++ {
		for j := 1; j <= n.Ports; j++ {
			z, _ := n.Param(i, j)
			for k := range z {
				z[k] *= scale
			}
			d.Lines = append(d.Lines, DataLine{
				Label: fmt.Sprintf("%s%d%d", n.Type, i, j),
				Z:     z,
			})
		}
	}
	return d
}
