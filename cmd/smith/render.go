package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"

	"github.com/ha1tch/smith-toolkit/pkg/smith"
	"github.com/ha1tch/smith-toolkit/pkg/smithfile"
	"github.com/ha1tch/smith-toolkit/pkg/smithplot"
)

type renderOptions struct {
	output  string
	backend string
	size    int
	title   string
	axes    bool
}

func newRenderCmd(g *globalOptions) *cobra.Command {
	o := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "render <data>",
		Short: "Render a Smith chart from a data file",
		Long: `Render a Smith chart with the lines of a .json dataset, a Touchstone
(.s1p, .s2p, ...) file or a .smith bundle.

The native backend writes SVG or PNG. The gonum backend goes through
gonum/plot and also supports PDF and EPS.

Examples:
  smith render load.s1p -o load.svg
  smith render amp.s2p -o amp.png --size 1000 --title "Amplifier"
  smith render match.smith -o match.pdf --backend gonum
  smith render match.smith -o match.png --backend gonum --axes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, g, o, args[0])
		},
	}

	cmd.Flags().StringVarP(&o.output, "output", "o", "", "output file (default: input name with .svg)")
	cmd.Flags().StringVarP(&o.backend, "backend", "b", "native", "renderer: native or gonum")
	cmd.Flags().IntVarP(&o.size, "size", "s", 600, "image edge in pixels")
	cmd.Flags().StringVarP(&o.title, "title", "t", "", "chart title (default: dataset name)")
	cmd.Flags().BoolVar(&o.axes, "axes", false, "show resistance and reactance axes (gonum backend)")
	return cmd
}

func runRender(cmd *cobra.Command, g *globalOptions, o *renderOptions, input string) error {
	b, err := smithfile.ReadDataFile(input)
	if err != nil {
		return fmt.Errorf("loading %s: %w", input, err)
	}
	// A bundle's own configuration wins unless --config is given.
	if b.Params == nil || g.configPath != "" {
		p, err := g.params()
		if err != nil {
			return err
		}
		b.Params = &p
	}
	c, err := newChart(*b.Params)
	if err != nil {
		return err
	}
	if err := b.Data.Apply(c); err != nil {
		return err
	}
	slog.Debug("data loaded", "file", input, "lines", len(c.Lines()))

	output := o.output
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".svg"
	}
	title := o.title
	if title == "" {
		title = b.Data.Name
	}
	if o.size <= 0 {
		return fmt.Errorf("size must be positive, got %d", o.size)
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(output), "."))
	switch o.backend {
	case "native":
		if o.axes {
			return fmt.Errorf("--axes needs the gonum backend")
		}
		if err := renderNative(c, output, ext, o.size, title); err != nil {
			return err
		}
	case "gonum":
		// gonum/plot rasterizes at 96 dpi.
		size := vg.Length(o.size) * vg.Inch / 96
		opts := smithplot.Options{Title: title, Axes: o.axes}
		if err := smithplot.Save(c, opts, size, output); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown backend %q", o.backend)
	}

	slog.Debug("chart rendered", "output", output, "backend", o.backend, "size", o.size)
	fmt.Fprintf(cmd.OutOrStdout(), "Written: %s\n", output)
	return nil
}

// renderNative writes c as SVG or PNG. Other formats are rejected before
// the output file is created.
func renderNative(c *smith.Chart, output, ext string, size int, title string) (err error) {
	var render func(io.Writer) error
	switch ext {
	case "svg":
		render = func(w io.Writer) error {
			return smithfile.RenderSVG(c, w, smithfile.SVGOptions{Size: size, Title: title})
		}
	case "png":
		render = func(w io.Writer) error {
			return smithfile.RenderPNG(c, w, smithfile.PNGOptions{Size: size, Title: title})
		}
	default:
		return fmt.Errorf("native backend cannot write %q files", ext)
	}

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return render(f)
}
