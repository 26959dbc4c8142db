package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/masonry/pkg/errors"
	"github.com/matzehuels/masonry/pkg/render"
	"github.com/matzehuels/masonry/pkg/scenario"
	"github.com/matzehuels/masonry/pkg/waterfall"
)

// layoutOpts holds the command-line flags for the layout command.
type layoutOpts struct {
	input
	output   string // output file; stdout when "-"
	format   string // json, svg or png
	outlines bool   // draw section outlines (svg)
	labels   bool   // label cells with their index path (svg)
	dpi      float64
}

// layoutCommand creates the layout command for computing and writing a layout.
func (c *CLI) layoutCommand() *cobra.Command {
	opts := layoutOpts{format: "json", dpi: 144}

	cmd := &cobra.Command{
		Use:     "layout [scenario]",
		Aliases: []string{"render"},
		Short:   "Compute a waterfall layout and write it as JSON, SVG or PNG",
		Long: `Compute a waterfall layout and write it as JSON, SVG or PNG.

The scenario is a TOML or JSON file, the ID of a stored scenario, or the demo
feed (--demo). The output defaults to <scenario>.layout.<format> next to the
input; pass -o - to write to stdout.`,
		Args:              opts.args,
		ValidArgsFunction: c.completeScenarios,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateFormat(opts.format); err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), args, opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: <scenario>.layout.<format>)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: json (default), svg, png")
	cmd.Flags().BoolVar(&opts.outlines, "outlines", false, "draw section outlines (svg)")
	cmd.Flags().BoolVar(&opts.labels, "labels", false, "label cells with their index path (svg)")
	cmd.Flags().Float64Var(&opts.dpi, "dpi", opts.dpi, "resolution (png)")

	return cmd
}

// runLayout loads the scenario, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, args []string, opts layoutOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	sc, err := c.load(ctx, opts.input, args, cfg)
	if err != nil {
		return err
	}

	spinner := newSpinner(ctx, os.Stderr, "Computing layout...")
	spinner.Start()

	e, err := c.prepare(ctx, sc)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Update("Rendering " + opts.format + "...")
	data, err := encodeLayout(ctx, e.Snapshot(), opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	if spinner.Cancelled() {
		spinner.Stop()
		return ctx.Err()
	}

	if opts.output == "-" {
		spinner.Stop()
		_, err := os.Stdout.Write(data)
		return err
	}
	outputPath := opts.output
	if outputPath == "" {
		outputPath = defaultOutput(sc, args, opts.format)
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		spinner.StopWithError("Write failed")
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}
	spinner.StopWithSuccess("Layout complete")

	snap := e.Snapshot()
	printFile(outputPath)
	printStats(snap.NumberOfSections(), snap.ItemCount(), snap.ContentHeight(), len(args) > 0 && !fileExists(args[0]))
	if opts.format == "json" {
		printNewline()
		printNextStep("Render", fmt.Sprintf("%s layout -f svg %s", appName, inputHint(args, opts.input)))
	}
	return nil
}

// encodeLayout renders snap in the requested format.
func encodeLayout(ctx context.Context, snap *waterfall.Snapshot, opts layoutOpts) ([]byte, error) {
	switch opts.format {
	case "svg":
		var svgOpts []render.SVGOption
		if opts.outlines {
			svgOpts = append(svgOpts, render.WithOutlines())
		}
		if opts.labels {
			svgOpts = append(svgOpts, render.WithLabels())
		}
		return render.RenderSVG(snap, svgOpts...), nil
	case "png":
		return render.RenderPNG(ctx, snap, render.WithDPI(opts.dpi))
	default:
		return render.RenderJSON(snap)
	}
}

// defaultOutput derives the output path from the input file, or from the
// scenario name for stored and demo scenarios.
func defaultOutput(sc *scenario.Scenario, args []string, format string) string {
	base := sc.Name
	if len(args) > 0 && fileExists(args[0]) {
		base = strings.TrimSuffix(args[0], filepath.Ext(args[0]))
	}
	if base == "" {
		base = "scenario"
	}
	return base + ".layout." + format
}

func inputHint(args []string, in input) string {
	if in.demo {
		return fmt.Sprintf("--demo --seed %d", in.seed)
	}
	return args[0]
}
