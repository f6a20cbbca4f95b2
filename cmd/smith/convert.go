package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ha1tch/smith-toolkit/pkg/smithfile"
)

type convertOptions struct {
	output   string
	pretty   bool
	noConfig bool
}

func newConvertCmd(g *globalOptions) *cobra.Command {
	o := &convertOptions{}
	cmd := &cobra.Command{
		Use:   "convert <input>",
		Short: "Convert between data formats (json, sNp, smith)",
		Long: `Convert plot data. Touchstone files can be read but not written.

Examples:
  smith convert load.s1p -o load.json --pretty
  smith convert sweep.json -o sweep.smith --config chart.yaml
  smith convert sweep.smith -o sweep.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, g, o, args[0])
		},
	}

	cmd.Flags().StringVarP(&o.output, "output", "o", "", "output file")
	cmd.Flags().BoolVar(&o.pretty, "pretty", false, "indent JSON output")
	cmd.Flags().BoolVar(&o.noConfig, "no-config", false, "do not store chart parameters in .smith output")
	return cmd
}

func runConvert(cmd *cobra.Command, g *globalOptions, o *convertOptions, input string) error {
	b, err := smithfile.ReadDataFile(input)
	if err != nil {
		return fmt.Errorf("loading %s: %w", input, err)
	}

	output := o.output
	if output == "" {
		// Default: change extension
		ext := filepath.Ext(input)
		base := strings.TrimSuffix(input, ext)
		switch strings.ToLower(ext) {
		case ".smith":
			output = base + ".json"
		default:
			output = base + ".smith"
		}
	}

	switch strings.ToLower(filepath.Ext(output)) {
	case ".smith":
		if b.Params == nil || g.configPath != "" {
			p, err := g.params()
			if err != nil {
				return err
			}
			b.Params = &p
		}
		if o.noConfig {
			b.Params = nil
		}
		err = smithfile.WriteBundleFile(output, b)
	case ".json":
		data, jerr := smithfile.ToJSON(b.Data, o.pretty)
		if jerr != nil {
			return jerr
		}
		err = writeFile(output, append(data, '\n'))
	default:
		return fmt.Errorf("unknown output format: %s", filepath.Ext(output))
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Written: %s\n", output)
	return nil
}
