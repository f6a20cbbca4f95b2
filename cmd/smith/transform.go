package main

import (
	"fmt"
	"math/cmplx"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ha1tch/smith-toolkit/pkg/smith"
)

type transformOptions struct {
	inverse   bool
	impedance float64
	normalize bool
}

func newTransformCmd(g *globalOptions) *cobra.Command {
	o := &transformOptions{}
	cmd := &cobra.Command{
		Use:   "transform <z>...",
		Short: "Map impedances to reflection coefficients and back",
		Long: `Print the reflection coefficient Γ of each impedance (in ohms), or
with --inverse the impedance of each reflection coefficient.

Examples:
  smith transform 50 25+10j 100-50j
  smith transform --inverse 0.2+0.1j
  smith transform --impedance 75 75`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := g.params()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("impedance") {
				p.Impedance = o.impedance
			}
			if cmd.Flags().Changed("normalize") {
				p.Normalize = o.normalize
			}
			p.Major.Enable, p.Minor.Enable = false, false
			c, err := newChart(p)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, arg := range args {
				v, err := parseComplex(arg)
				if err != nil {
					return err
				}
				if o.inverse {
					z := c.InverseMoebius(v)
					if p.Normalize {
						z *= complex(p.Impedance, 0)
					}
					fmt.Fprintf(out, "Γ = %-20s Z = %s Ω  |Z| = %s\n",
						formatComplex(v), formatComplex(z), humanize.SIWithDigits(cmplx.Abs(z), 3, "Ω"))
					continue
				}
				data, err := c.ConvertData([]complex128{v}, smith.TypeZ)
				if err != nil {
					return err
				}
				gamma := c.Moebius(data[0])
				mag := cmplx.Abs(gamma)
				fmt.Fprintf(out, "Z = %-20s Γ = %s  |Γ| = %.4f  VSWR = %s\n",
					formatComplex(v), formatComplex(gamma), mag, vswrText(mag))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&o.inverse, "inverse", "i", false, "map reflection coefficients to impedances")
	cmd.Flags().Float64VarP(&o.impedance, "impedance", "z", 50, "reference impedance in ohms")
	cmd.Flags().BoolVar(&o.normalize, "normalize", true, "normalize to the reference impedance")
	return cmd
}

// vswrText formats (1+|Γ|)/(1-|Γ|); total reflection reads as infinite.
func vswrText(mag float64) string {
	if mag >= 1-smith.Epsilon {
		return "∞"
	}
	return fmt.Sprintf("%.3f", (1+mag)/(1-mag))
}
