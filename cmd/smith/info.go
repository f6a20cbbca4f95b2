package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ha1tch/smith-toolkit/pkg/smith"
	"github.com/ha1tch/smith-toolkit/pkg/smithfile"
)

func newInfoCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "info <data>",
		Short: "Show data file information",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := smithfile.ReadDataFile(args[0])
			if err != nil {
				return fmt.Errorf("loading %s: %w", args[0], err)
			}
			out := cmd.OutOrStdout()
			d := b.Data

			typ := d.Type
			if typ == "" {
				typ = smith.DefaultParams().DefaultType
			}
			fmt.Fprintf(out, "Type:      %s\n", typ)
			if d.Name != "" {
				fmt.Fprintf(out, "Name:      %s\n", d.Name)
			}
			if d.Impedance > 0 {
				fmt.Fprintf(out, "Reference: %s\n", humanize.SIWithDigits(d.Impedance, 3, "Ω"))
			}
			if b.Params != nil {
				fmt.Fprintf(out, "Chart:     Z₀ = %s, normalize=%v\n",
					humanize.SIWithDigits(b.Params.Impedance, 3, "Ω"), b.Params.Normalize)
			}
			fmt.Fprintf(out, "Lines:     %d\n", len(d.Lines))

			total := 0
			for _, l := range d.Lines {
				total += len(l.Z)
			}
			fmt.Fprintf(out, "Points:    %s\n", humanize.Comma(int64(total)))
			fmt.Fprintln(out)
			for i, l := range d.Lines {
				label := l.Label
				if label == "" {
					label = fmt.Sprintf("#%d", i+1)
				}
				fmt.Fprintf(out, "  %-8s %d points", label, len(l.Z))
				if len(l.Z) > 0 {
					fmt.Fprintf(out, "  %s .. %s", formatComplex(l.Z[0]), formatComplex(l.Z[len(l.Z)-1]))
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}
}
