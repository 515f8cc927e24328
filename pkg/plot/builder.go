package plot

import (
	"github.com/plotforge/plotforge/pkg/dataset"
	"github.com/plotforge/plotforge/pkg/errors"
	"github.com/plotforge/plotforge/pkg/theme"
)

// Option configures optional Spec attributes.
type Option func(*builder)

type builder struct {
	title       string
	xLabel      string
	yLabel      string
	width       float64
	height      float64
	lineWidth   float64
	pointRadius float64
	grid        bool
}

// WithTitle sets the chart title.
func WithTitle(title string) Option { return func(b *builder) { b.title = title } }

// WithAxisLabels sets the x and y axis labels.
func WithAxisLabels(x, y string) Option {
	return func(b *builder) { b.xLabel, b.yLabel = x, y }
}

// WithSize sets the frame dimensions in pixels.
func WithSize(width, height float64) Option {
	return func(b *builder) { b.width, b.height = width, height }
}

// WithLineWidth sets the line stroke width.
func WithLineWidth(w float64) Option { return func(b *builder) { b.lineWidth = w } }

// WithPointRadius sets the point mark radius.
func WithPointRadius(r float64) Option { return func(b *builder) { b.pointRadius = r } }

// WithGrid enables horizontal gridlines.
func WithGrid() Option { return func(b *builder) { b.grid = true } }

// Build constructs a themed plot specification from a dataset and a color
// mapping. The line is stroked with colors["primary"], points are filled
// with colors["secondary"], and the background is transparent.
//
// Build is pure: it reads its inputs, allocates a fresh Spec, and touches
// no shared state. Identical inputs produce structurally identical Specs.
//
// Errors: EMPTY_DATASET for a dataset with zero records, MISSING_COLOR_KEY
// when a required color is absent, INVALID_COLOR or INVALID_DATASET for
// malformed values.
func Build(data dataset.Dataset, colors theme.ColorMapping, opts ...Option) (*Spec, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}
	for _, key := range theme.RequiredKeys {
		if _, ok := colors[key]; !ok {
			return nil, errors.New(errors.ErrCodeMissingColorKey, "color mapping missing key %q", key)
		}
	}
	if err := colors.Validate(); err != nil {
		return nil, err
	}

	resolved, err := theme.Derived(colors)
	if err != nil {
		return nil, err
	}

	b := builder{
		width:       DefaultWidth,
		height:      DefaultHeight,
		lineWidth:   DefaultLineWidth,
		pointRadius: DefaultPointRadius,
	}
	for _, opt := range opts {
		opt(&b)
	}
	if b.width <= 0 || b.height <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "invalid frame size %gx%g", b.width, b.height)
	}

	spec := &Spec{
		Title: b.title,
		Data:  data.Clone(),
		Line: LineMark{
			Stroke: resolved[theme.KeyPrimary],
			Width:  b.lineWidth,
		},
		Points: PointMark{
			Fill:   resolved[theme.KeySecondary],
			Radius: b.pointRadius,
		},
		XAxis: Axis{Label: b.xLabel, Color: resolved[theme.KeyAxis]},
		YAxis: Axis{Label: b.yLabel, Color: resolved[theme.KeyAxis]},
		Grid:  Grid{Show: b.grid},
		// Canvas and panel fills stay unset so output composes over any
		// host background.
		Background: Background{Transparent: true},
		Width:      b.width,
		Height:     b.height,
	}
	if b.grid {
		spec.Grid.Color = resolved[theme.KeyGrid]
	}
	return spec, nil
}
