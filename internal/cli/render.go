package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/plotforge/plotforge/pkg/cache"
	"github.com/plotforge/plotforge/pkg/dataset"
	"github.com/plotforge/plotforge/pkg/pipeline"
	"github.com/plotforge/plotforge/pkg/plotfile"
	"github.com/plotforge/plotforge/pkg/theme"
)

// renderOpts holds the command-line flags for the render command.
// These options control theming, plot geometry, and output formats.
type renderOpts struct {
	output      string  // output file path (or base path for multiple formats)
	theme       string  // palette name or .toml theme file
	title       string  // plot title
	xLabel      string  // x axis label
	yLabel      string  // y axis label
	width       float64 // viewport width in pixels
	height      float64 // viewport height in pixels
	lineWidth   float64 // connecting line width
	pointRadius float64 // data point marker radius
	grid        bool    // draw gridlines
	style       string  // visual style: "clean" or "sketch"
	seed        uint64  // random seed for the sketch style
	scale       float64 // PNG scale factor
	noCache     bool    // disable the artifact cache
	refresh     bool    // bypass cached results
}

// newRenderCmd creates the render command for generating plots.
// The input is either a dataset (.csv, .json) styled by flags, or a plot
// document (.yaml, .yml) that carries its own options. Flags set explicitly
// on the command line override document values.
func newRenderCmd() *cobra.Command {
	var formatsStr string
	opts := renderOpts{
		theme: theme.DefaultPalette,
		style: pipeline.DefaultStyle,
		seed:  pipeline.DefaultSeed,
		scale: pipeline.DefaultScale,
	}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a dataset or plot document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(formats); err != nil {
				return err
			}
			if err := pipeline.ValidateStyle(opts.style); err != nil {
				return err
			}

			if cmd.Flags().Changed("seed") && opts.style != "sketch" {
				printWarning("--seed only affects the sketch style")
			}

			data, pipeOpts, err := loadInput(args[0])
			if err != nil {
				return err
			}
			applyFlagOverrides(cmd, &pipeOpts, &opts)
			if cmd.Flags().Changed("format") || len(pipeOpts.Formats) == 0 {
				pipeOpts.Formats = formats
			}

			return runRender(cmd.Context(), args[0], data, pipeOpts, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().StringVarP(&opts.theme, "theme", "t", opts.theme, "palette name or .toml theme file")
	cmd.Flags().StringVar(&opts.title, "title", "", "plot title")
	cmd.Flags().StringVar(&opts.xLabel, "x-label", "", "x axis label")
	cmd.Flags().StringVar(&opts.yLabel, "y-label", "", "y axis label")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "frame width")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "frame height")
	cmd.Flags().Float64Var(&opts.lineWidth, "line-width", 0, "line stroke width")
	cmd.Flags().Float64Var(&opts.pointRadius, "point-radius", 0, "data point radius")
	cmd.Flags().BoolVar(&opts.grid, "grid", false, "draw gridlines")
	cmd.Flags().StringVar(&opts.style, "style", opts.style, "visual style: clean (default), sketch")
	cmd.Flags().Uint64Var(&opts.seed, "seed", opts.seed, "random seed for the sketch style")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cached results")

	return cmd
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// loadInput loads the input file as either a plot document or a raw dataset.
// Documents carry their own pipeline options; datasets return zero options
// to be filled from flags.
func loadInput(path string) (dataset.Dataset, pipeline.Options, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		doc, err := plotfile.Load(path)
		if err != nil {
			return nil, pipeline.Options{}, err
		}
		return doc.Dataset(), doc.Options(), nil
	case ".csv":
		data, err := dataset.LoadCSV(path)
		return data, pipeline.Options{}, err
	case ".json":
		f, err := os.Open(path)
		if err != nil {
			return nil, pipeline.Options{}, err
		}
		defer f.Close()
		data, err := dataset.ReadJSON(f)
		return data, pipeline.Options{}, err
	default:
		return nil, pipeline.Options{}, fmt.Errorf("unsupported input file: %s (expected .csv, .json, .yaml)", path)
	}
}

// applyFlagOverrides copies flag values into the pipeline options.
// For document inputs, only flags the user set explicitly win over the
// document's own values.
func applyFlagOverrides(cmd *cobra.Command, pipeOpts *pipeline.Options, opts *renderOpts) {
	set := func(name string) bool { return cmd.Flags().Changed(name) }

	if set("theme") || (pipeOpts.Theme == "" && len(pipeOpts.Colors) == 0) {
		pipeOpts.Theme = opts.theme
	}
	if set("title") {
		pipeOpts.Title = opts.title
	}
	if set("x-label") {
		pipeOpts.XLabel = opts.xLabel
	}
	if set("y-label") {
		pipeOpts.YLabel = opts.yLabel
	}
	if set("width") {
		pipeOpts.Width = opts.width
	}
	if set("height") {
		pipeOpts.Height = opts.height
	}
	if set("line-width") {
		pipeOpts.LineWidth = opts.lineWidth
	}
	if set("point-radius") {
		pipeOpts.PointRadius = opts.pointRadius
	}
	if set("grid") {
		pipeOpts.Grid = opts.grid
	}
	if set("style") || pipeOpts.Style == "" {
		pipeOpts.Style = opts.style
	}
	if set("seed") {
		pipeOpts.Seed = opts.seed
	}
	if set("scale") {
		pipeOpts.Scale = opts.scale
	}
	pipeOpts.Refresh = opts.refresh
}

// newRenderCache builds the cache backend for the render command.
func newRenderCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cache.DefaultDir()
	if err != nil {
		return nil, fmt.Errorf("get cache dir: %w", err)
	}
	return cache.NewFileCache(dir)
}

// runRender executes the pipeline and writes one file per format.
func runRender(ctx context.Context, input string, data dataset.Dataset, pipeOpts pipeline.Options, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering %s", input)

	c, err := newRenderCache(opts.noCache)
	if err != nil {
		return err
	}

	runner := pipeline.NewRunner(c, nil, logger)
	defer runner.Close()

	prog := newProgress(logger)
	spin := newSpinnerWithContext(ctx, "rendering "+filepath.Base(input))
	spin.Start()
	result, err := runner.Execute(ctx, data, pipeOpts)
	spin.Stop()
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d format(s)", len(result.Artifacts)))

	base := basePath(opts.output, input)
	single := len(pipeOpts.Formats) == 1

	printSuccess("Rendered %s", filepath.Base(input))
	for _, format := range pipeOpts.Formats {
		path := base + "." + format
		if single && opts.output != "" {
			path = opts.output
		}
		if err := os.WriteFile(path, result.Artifacts[format], 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	printStats(result.Stats.PointCount, pipeOpts.Formats, result.CacheInfo.ArtsHit)

	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .png, etc.), it strips that extension.
// This is used when generating multiple files (e.g., plot.svg, plot.png).
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
