// Package pipeline provides the core plot rendering pipeline.
//
// This package implements the complete resolve → build → render pipeline that
// can be used by CLI and API components. By centralizing this logic, we ensure
// consistent behavior across all entry points and avoid code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Resolve: Turn a theme reference into a concrete color mapping
//  2. Build: Construct a plot spec from a dataset and the resolved colors
//  3. Render: Generate output in various formats (SVG, PNG, PDF, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Theme:   "ocean",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, data, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/plotforge/plotforge/pkg/cache"
	"github.com/plotforge/plotforge/pkg/errors"
	"github.com/plotforge/plotforge/pkg/plot"
	"github.com/plotforge/plotforge/pkg/render/styles"
	"github.com/plotforge/plotforge/pkg/theme"
)

// Default values shared by the CLI and the API.
const (
	// DefaultSeed is the default random seed for the sketch style.
	DefaultSeed = uint64(42)

	// DefaultScale is the default PNG scale factor.
	DefaultScale = 2.0
)

// DefaultStyle is the default visual style.
const DefaultStyle = styles.NameClean

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ValidStyles is the set of supported visual styles.
var ValidStyles = map[string]bool{
	styles.NameClean:  true,
	styles.NameSketch: true,
}

// Options contains all configuration for the plot pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Theme options
	Theme  string            `json:"theme,omitempty"`  // Builtin palette name or path to a .toml file
	Colors map[string]string `json:"colors,omitempty"` // Explicit color mapping; takes precedence over Theme

	// Build options
	Title       string  `json:"title,omitempty"`
	XLabel      string  `json:"x_label,omitempty"`
	YLabel      string  `json:"y_label,omitempty"`
	Width       float64 `json:"width,omitempty"`
	Height      float64 `json:"height,omitempty"`
	LineWidth   float64 `json:"line_width,omitempty"`
	PointRadius float64 `json:"point_radius,omitempty"`
	Grid        bool    `json:"grid,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Style   string   `json:"style,omitempty"`
	Seed    uint64   `json:"seed,omitempty"`
	Scale   float64  `json:"scale,omitempty"`

	// Refresh bypasses the cache for all stages.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Colors is the resolved color mapping, including derived colors.
	Colors theme.ColorMapping

	// Spec is the built plot spec.
	Spec *plot.Spec

	// SpecHash is the content hash of the encoded spec.
	SpecHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	PointCount  int
	ResolveTime time.Duration
	BuildTime   time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ThemeHit bool // Whether the color mapping came from cache
	SpecHit  bool // Whether the built spec came from cache
	ArtsHit  bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if !ValidStyles[style] {
		return errors.New(errors.ErrCodeInvalidStyle, "invalid style: %q (must be one of: clean, sketch)", style)
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForResolve(); err != nil {
		return err
	}
	o.SetBuildDefaults()
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateStyle(o.Style); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForResolve checks required fields for theme resolution.
func (o *Options) ValidateForResolve() error {
	if o.Theme == "" && len(o.Colors) == 0 {
		o.Theme = theme.DefaultPalette
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetBuildDefaults sets default values for spec construction.
// Cache keys include these values, so they must be concrete before keying.
func (o *Options) SetBuildDefaults() {
	if o.Width == 0 {
		o.Width = plot.DefaultWidth
	}
	if o.Height == 0 {
		o.Height = plot.DefaultHeight
	}
	if o.LineWidth == 0 {
		o.LineWidth = plot.DefaultLineWidth
	}
	if o.PointRadius == 0 {
		o.PointRadius = plot.DefaultPointRadius
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
}

// BuildOptions converts pipeline options into plot build options.
func (o *Options) BuildOptions() []plot.Option {
	opts := []plot.Option{
		plot.WithSize(o.Width, o.Height),
		plot.WithLineWidth(o.LineWidth),
		plot.WithPointRadius(o.PointRadius),
	}
	if o.Title != "" {
		opts = append(opts, plot.WithTitle(o.Title))
	}
	if o.XLabel != "" || o.YLabel != "" {
		opts = append(opts, plot.WithAxisLabels(o.XLabel, o.YLabel))
	}
	if o.Grid {
		opts = append(opts, plot.WithGrid())
	}
	return opts
}

// SpecKeyOpts returns cache key options for spec construction.
func (o *Options) SpecKeyOpts() cache.SpecKeyOpts {
	return cache.SpecKeyOpts{
		Title:       o.Title,
		XLabel:      o.XLabel,
		YLabel:      o.YLabel,
		Width:       o.Width,
		Height:      o.Height,
		LineWidth:   o.LineWidth,
		PointRadius: o.PointRadius,
		Grid:        o.Grid,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Format: format,
		Style:  o.Style,
	}
	if o.Style == styles.NameSketch {
		opts.Seed = o.Seed
	}
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}
