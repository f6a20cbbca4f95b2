package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ha1tch/smith-toolkit/pkg/smith"
)

type vswrOptions struct {
	real      float64
	imag      float64
	lambda    float64
	cw        bool
	alternate bool
	impedance float64
}

func newVSWRCmd(g *globalOptions) *cobra.Command {
	o := &vswrOptions{}
	cmd := &cobra.Command{
		Use:   "vswr <z>",
		Short: "Rotate an impedance along its constant-VSWR circle",
		Long: `Move an impedance (in ohms) along its constant-VSWR circle until it
reaches a resistance, a reactance or an electrical length. Without a
destination the rotation is one full turn.

Examples:
  smith vswr 25+10j --real 50
  smith vswr 25+10j --imag 0 --cw
  smith vswr 100 --lambda 0.25`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			z, err := parseComplex(args[0])
			if err != nil {
				return err
			}
			p, err := g.params()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("impedance") {
				p.Impedance = o.impedance
			}
			p.Major.Enable, p.Minor.Enable = false, false
			c, err := newChart(p)
			if err != nil {
				return err
			}

			// Destination values are given in ohms like the start point.
			scale := 1.0
			if p.Normalize {
				scale = p.Impedance
			}
			dest := smith.Destination{Kind: smith.FullTurn}
			flags := cmd.Flags()
			switch {
			case flags.Changed("real"):
				dest = smith.Destination{Kind: smith.Resistance, Value: o.real / scale}
			case flags.Changed("imag"):
				dest = smith.Destination{Kind: smith.Reactance, Value: o.imag / scale}
			case flags.Changed("lambda"):
				dest = smith.Destination{Kind: smith.Length, Value: o.lambda}
			}

			data, err := c.ConvertData([]complex128{z}, smith.TypeZ)
			if err != nil {
				return err
			}
			rot, err := smith.VSWRRotation(data[0], dest, c.K(), o.cw, o.alternate)
			if err != nil {
				return err
			}
			end := rot.End
			if p.Normalize {
				end *= complex(p.Impedance, 0)
			}
			slog.Debug("vswr rotation", "start", data[0], "end", rot.End, "k", c.K())

			fmt.Fprintf(cmd.OutOrStdout(), "%s Ω -> %s Ω  (%+.4f λ)\n",
				formatComplex(z), formatComplex(end), rot.Wavelengths)
			return nil
		},
	}

	cmd.Flags().Float64VarP(&o.real, "real", "r", 0, "destination resistance in ohms")
	cmd.Flags().Float64VarP(&o.imag, "imag", "x", 0, "destination reactance in ohms")
	cmd.Flags().Float64VarP(&o.lambda, "lambda", "l", 0, "electrical length in wavelengths")
	cmd.Flags().BoolVar(&o.cw, "cw", false, "rotate clockwise (toward the generator)")
	cmd.Flags().BoolVar(&o.alternate, "alternate", false, "take the other circle intersection")
	cmd.Flags().Float64VarP(&o.impedance, "impedance", "z", 50, "reference impedance in ohms")
	cmd.MarkFlagsMutuallyExclusive("real", "imag", "lambda")
	return cmd
}
