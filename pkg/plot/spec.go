package plot

import (
	"encoding/json"

	"github.com/plotforge/plotforge/pkg/dataset"
	"github.com/plotforge/plotforge/pkg/errors"
)

// Default mark and frame dimensions.
const (
	DefaultWidth       = 800.0
	DefaultHeight      = 600.0
	DefaultLineWidth   = 2.0
	DefaultPointRadius = 4.0
)

// LineMark describes the stroked line connecting the dataset's records.
type LineMark struct {
	Stroke string  `json:"stroke" bson:"stroke"`
	Width  float64 `json:"width" bson:"width"`
}

// PointMark describes the filled circles drawn at each record.
type PointMark struct {
	Fill   string  `json:"fill" bson:"fill"`
	Radius float64 `json:"radius" bson:"radius"`
}

// Axis describes one chart axis.
type Axis struct {
	Label string `json:"label,omitempty" bson:"label,omitempty"`
	Color string `json:"color" bson:"color"`
}

// Grid describes optional gridlines. Gridlines are strokes only; a grid
// never contributes a panel fill.
type Grid struct {
	Show  bool   `json:"show" bson:"show"`
	Color string `json:"color,omitempty" bson:"color,omitempty"`
}

// Background describes the canvas layer. Transparent is always true for
// specs produced by Build; Fill exists only so foreign specs read from
// storage can be rejected by Validate.
type Background struct {
	Transparent bool   `json:"transparent" bson:"transparent"`
	Fill        string `json:"fill,omitempty" bson:"fill,omitempty"`
}

// Spec is a complete, renderer-independent chart description.
// A Spec is owned by its caller: Build returns a fresh value on every
// invocation and nothing retains a reference afterwards.
type Spec struct {
	Title      string          `json:"title,omitempty" bson:"title,omitempty"`
	Data       dataset.Dataset `json:"data" bson:"data"`
	Line       LineMark        `json:"line" bson:"line"`
	Points     PointMark       `json:"points" bson:"points"`
	XAxis      Axis            `json:"x_axis" bson:"x_axis"`
	YAxis      Axis            `json:"y_axis" bson:"y_axis"`
	Grid       Grid            `json:"grid" bson:"grid"`
	Background Background      `json:"background" bson:"background"`
	Width      float64         `json:"width" bson:"width"`
	Height     float64         `json:"height" bson:"height"`
}

// Validate checks structural integrity and the transparency invariant.
// It is used on specs that arrive from storage or the API rather than
// from Build directly.
func (s *Spec) Validate() error {
	if err := s.Data.Validate(); err != nil {
		return err
	}
	if err := errors.ValidateHexColor(s.Line.Stroke); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidColor, err, "line stroke")
	}
	if err := errors.ValidateHexColor(s.Points.Fill); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidColor, err, "point fill")
	}
	if !s.Background.Transparent || s.Background.Fill != "" {
		return errors.New(errors.ErrCodeInvalidInput, "spec carries an opaque background")
	}
	if s.Width <= 0 || s.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "spec has non-positive dimensions %gx%g", s.Width, s.Height)
	}
	return nil
}

// Encode returns the canonical JSON encoding of the spec. The encoding is
// stable for identical specs, so it doubles as cache key material.
func (s *Spec) Encode() ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode spec")
	}
	return data, nil
}

// Decode parses a Spec from its JSON encoding and validates it.
func Decode(data []byte) (*Spec, error) {
	var s Spec
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode spec")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}
