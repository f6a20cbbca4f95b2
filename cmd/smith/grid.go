package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ha1tch/smith-toolkit/pkg/smith"
)

type gridOptions struct {
	tier    string
	jsonOut bool
}

type jsonGridline struct {
	Axis     string  `json:"axis"`
	Position float64 `json:"position"`
	Start    float64 `json:"start"`
	End      float64 `json:"end"`
}

func newGridCmd(g *globalOptions) *cobra.Command {
	o := &gridOptions{}
	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Show the gridlines the chart would draw",
		Long: `Print the gridlines of the major or minor grid: axis, position and
the data-space range each line covers.

Examples:
  smith grid
  smith grid --tier minor --config fancy.yaml
  smith grid --json > grid.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := g.params()
			if err != nil {
				return err
			}
			var tier smith.Tier
			switch o.tier {
			case "major":
				tier = smith.TierMajor
			case "minor":
				tier = smith.TierMinor
				p.Minor.Enable = true
			default:
				return fmt.Errorf("%w: tier must be major or minor, got %q", smith.ErrArgument, o.tier)
			}
			c, err := newChart(p)
			if err != nil {
				return err
			}
			lines := c.Gridlines(tier)

			out := cmd.OutOrStdout()
			if o.jsonOut {
				js := make([]jsonGridline, len(lines))
				for i, l := range lines {
					js[i] = jsonGridline{Axis: l.Axis.String(), Position: l.Position, Start: l.Start, End: l.End}
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(js)
			}

			for _, l := range lines {
				fmt.Fprintf(out, "%-5s %12.6g  [%.6g, %.6g]\n", l.Axis, l.Position, l.Start, l.End)
			}
			fmt.Fprintf(out, "%d %s gridlines\n", len(lines), o.tier)
			return nil
		},
	}

	cmd.Flags().StringVarP(&o.tier, "tier", "t", "major", "grid tier: major or minor")
	cmd.Flags().BoolVar(&o.jsonOut, "json", false, "output JSON")
	return cmd
}
