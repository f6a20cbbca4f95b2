package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ha1tch/smith-toolkit/pkg/smith"
	"github.com/ha1tch/smith-toolkit/pkg/smithfile"
)

// globalOptions are the flags shared by every subcommand.
type globalOptions struct {
	verbose    bool
	configPath string
}

func newRootCmd() *cobra.Command {
	g := &globalOptions{}
	root := &cobra.Command{
		Use:   "smith",
		Short: "Smith chart toolkit",
		Long: `Draw Smith charts from impedance or scattering data and inspect the
chart geometry.

Examples:
  smith render load.s1p -o load.svg               # Render a Touchstone file
  smith render sweep.json -o sweep.png --size 800 # Render a JSON dataset
  smith convert sweep.json -o sweep.smith         # Bundle data with chart config
  smith ticks --axis imag --n 16                  # Show reactance ticks
  smith transform 25+10j 100                      # Reflection coefficients
  smith vswr 25+10j --real 50                     # Rotate onto r = 50 Ω`,
		Version:       "0.3.0",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if g.verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: level,
			}))
			slog.SetDefault(logger)
		},
	}

	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "verbose output")
	root.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "chart configuration (YAML)")

	root.AddCommand(
		newRenderCmd(g),
		newConvertCmd(g),
		newInfoCmd(g),
		newTicksCmd(g),
		newGridCmd(g),
		newTransformCmd(g),
		newVSWRCmd(g),
	)
	return root
}

// params returns the configured chart parameters, or the defaults.
func (g *globalOptions) params() (smith.Params, error) {
	if g.configPath == "" {
		return smith.DefaultParams(), nil
	}
	p, err := smithfile.LoadConfig(g.configPath)
	if err != nil {
		return smith.Params{}, fmt.Errorf("loading %s: %w", g.configPath, err)
	}
	slog.Debug("config loaded", "path", g.configPath, "impedance", p.Impedance)
	return p, nil
}

func newChart(p smith.Params) (*smith.Chart, error) {
	return smith.New(p, smith.WithLogger(slog.Default()))
}

// parseComplex reads values such as 50, 25+10j, -3.5i or 1e3-2e2j.
func parseComplex(s string) (complex128, error) {
	t := strings.ReplaceAll(strings.TrimSpace(s), "j", "i")
	z, err := strconv.ParseComplex(t, 128)
	if err != nil {
		return 0, fmt.Errorf("%w: cannot parse %q as a complex number", smith.ErrArgument, s)
	}
	return z, nil
}

// formatComplex prints z as a+bj with compact floats.
func formatComplex(z complex128) string {
	return fmt.Sprintf("%.6g%+.6gj", real(z), imag(z))
}

func writeFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0644)
}
