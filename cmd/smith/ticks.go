package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ha1tch/smith-toolkit/pkg/smith"
)

type ticksOptions struct {
	axis      string
	n         int
	precision int
	minor     int
	impedance float64
	normalize bool
}

func newTicksCmd(g *globalOptions) *cobra.Command {
	o := &ticksOptions{}
	cmd := &cobra.Command{
		Use:   "ticks",
		Short: "Show the tick values of an axis",
		Long: `Print the major tick values of the real (resistance) or imaginary
(reactance) axis, one per line, followed by minor ticks if requested.

Examples:
  smith ticks --axis real --n 10
  smith ticks --axis imag --n 16 --precision 3
  smith ticks --minor 4 --normalize=false --impedance 75`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := g.params()
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("impedance") {
				p.Impedance = o.impedance
			}
			if flags.Changed("normalize") {
				p.Normalize = o.normalize
			}
			if flags.Changed("precision") {
				p.Precision = o.precision
			}
			if flags.Changed("minor") {
				p.Minor.XDivisions, p.Minor.YDivisions = o.minor, o.minor
			}
			switch o.axis {
			case "real":
				if flags.Changed("n") {
					p.Major.XDivisions = o.n
				}
			case "imag":
				if flags.Changed("n") {
					p.Major.YDivisions = o.n
				}
			default:
				return fmt.Errorf("%w: axis must be real or imag, got %q", smith.ErrArgument, o.axis)
			}
			// Tick placement does not depend on the grid.
			p.Major.Enable, p.Minor.Enable = false, false

			c, err := newChart(p)
			if err != nil {
				return err
			}
			major, minor := c.XTicks(), c.XMinorTicks()
			format := smith.RealFormatter{}.Format
			if o.axis == "imag" {
				major, minor = c.YTicks(), c.YMinorTicks()
				format = smith.ImagFormatter{Infinity: p.InfinitySymbol}.Format
			}

			out := cmd.OutOrStdout()
			for _, v := range major {
				fmt.Fprintf(out, "%-14.7g %s\n", v, format(v))
			}
			if flags.Changed("minor") {
				fmt.Fprintln(out, "minor:")
				for _, v := range minor {
					fmt.Fprintf(out, "%.7g\n", v)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&o.axis, "axis", "a", "real", "axis: real or imag")
	cmd.Flags().IntVarP(&o.n, "n", "n", 10, "maximum number of divisions")
	cmd.Flags().IntVarP(&o.precision, "precision", "p", 2, "significant digits per decade")
	cmd.Flags().IntVarP(&o.minor, "minor", "m", 4, "minor subdivisions per major interval")
	cmd.Flags().Float64VarP(&o.impedance, "impedance", "z", 50, "reference impedance in ohms")
	cmd.Flags().BoolVar(&o.normalize, "normalize", true, "normalize to the reference impedance")
	return cmd
}
