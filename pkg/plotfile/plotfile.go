// Package plotfile loads declarative plot documents.
//
// A plot document is a YAML file that describes a complete plot: the
// dataset, a theme reference or explicit colors, and build and render
// options. Documents are the file-based entry point for the CLI and can
// be submitted to the HTTP API as stored gallery entries.
package plotfile

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/plotforge/plotforge/pkg/dataset"
	"github.com/plotforge/plotforge/pkg/errors"
	"github.com/plotforge/plotforge/pkg/pipeline"
)

// Document is a declarative plot description.
type Document struct {
	Title string `yaml:"title,omitempty" json:"title,omitempty" validate:"max=200"`

	// Theme names a built-in palette or a .toml theme file.
	// Colors, when set, takes precedence.
	Theme  string            `yaml:"theme,omitempty" json:"theme,omitempty"`
	Colors map[string]string `yaml:"colors,omitempty" json:"colors,omitempty" validate:"omitempty,dive,hexcolor"`

	// Data holds [x, y] pairs.
	Data [][2]float64 `yaml:"data" json:"data" validate:"required,min=1"`

	XLabel      string  `yaml:"x_label,omitempty" json:"x_label,omitempty" validate:"max=100"`
	YLabel      string  `yaml:"y_label,omitempty" json:"y_label,omitempty" validate:"max=100"`
	Width       float64 `yaml:"width,omitempty" json:"width,omitempty" validate:"omitempty,gt=0"`
	Height      float64 `yaml:"height,omitempty" json:"height,omitempty" validate:"omitempty,gt=0"`
	LineWidth   float64 `yaml:"line_width,omitempty" json:"line_width,omitempty" validate:"omitempty,gt=0"`
	PointRadius float64 `yaml:"point_radius,omitempty" json:"point_radius,omitempty" validate:"omitempty,gte=0"`
	Grid        bool    `yaml:"grid,omitempty" json:"grid,omitempty"`

	Style   string   `yaml:"style,omitempty" json:"style,omitempty" validate:"omitempty,oneof=clean sketch"`
	Seed    uint64   `yaml:"seed,omitempty" json:"seed,omitempty"`
	Scale   float64  `yaml:"scale,omitempty" json:"scale,omitempty" validate:"omitempty,gt=0"`
	Formats []string `yaml:"formats,omitempty" json:"formats,omitempty" validate:"omitempty,dive,oneof=svg png pdf json"`
}

var validate = validator.New()

// Parse decodes and validates a plot document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "parse plot document")
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Load reads and parses a plot document from a file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeFileNotFound, "plot document not found: %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read plot document %s", path)
	}
	return Parse(data)
}

// Validate checks document constraints.
func (d *Document) Validate() error {
	if err := validate.Struct(d); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidDocument, err, "invalid plot document")
	}
	return nil
}

// Dataset converts the document's data pairs into a dataset.
func (d *Document) Dataset() dataset.Dataset {
	return dataset.FromPoints(d.Data...)
}

// Options converts the document into pipeline options.
// Pipeline defaults fill whatever the document leaves unset.
func (d *Document) Options() pipeline.Options {
	return pipeline.Options{
		Theme:       d.Theme,
		Colors:      d.Colors,
		Title:       d.Title,
		XLabel:      d.XLabel,
		YLabel:      d.YLabel,
		Width:       d.Width,
		Height:      d.Height,
		LineWidth:   d.LineWidth,
		PointRadius: d.PointRadius,
		Grid:        d.Grid,
		Formats:     d.Formats,
		Style:       d.Style,
		Seed:        d.Seed,
		Scale:       d.Scale,
	}
}
