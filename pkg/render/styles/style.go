// Package styles defines the visual styles available for plot rendering.
//
// A Style turns resolved geometry (pixel-space lines, points, gridlines,
// text) into SVG fragments. Styles never emit canvas or panel background
// fills; the SVG a style contributes to stays transparent.
package styles

import "bytes"

// Style defines the visual appearance for plot rendering.
// Implementations control how gridlines, axes, marks, and text are drawn.
type Style interface {
	// RenderDefs writes SVG <defs> content (filters, patterns, gradients).
	RenderDefs(buf *bytes.Buffer)
	// RenderGrid writes the SVG for the gridlines layer.
	RenderGrid(buf *bytes.Buffer, g Grid)
	// RenderAxes writes the SVG for the axis lines and tick labels.
	RenderAxes(buf *bytes.Buffer, a Axes)
	// RenderLine writes the SVG for the connecting line mark.
	RenderLine(buf *bytes.Buffer, l Line)
	// RenderPoints writes the SVG for the point marks.
	RenderPoints(buf *bytes.Buffer, p Points)
	// RenderText writes the SVG for a title or axis label.
	RenderText(buf *bytes.Buffer, t Text)
}

// Vec is a point in pixel space.
type Vec struct {
	X, Y float64
}

// Segment is a straight line in pixel space.
type Segment struct {
	X1, Y1, X2, Y2 float64
}

// Grid contains the gridline geometry for a plot.
type Grid struct {
	Color string    // Stroke color
	Lines []Segment // One segment per gridline
}

// Tick is a labeled axis tick position.
type Tick struct {
	X, Y   float64 // Label anchor position
	Label  string  // Formatted tick value
	Anchor string  // SVG text-anchor: "middle" (x axis) or "end" (y axis)
}

// Axes contains the axis geometry for a plot.
type Axes struct {
	Color string  // Stroke and label color
	X, Y  Segment // Axis lines
	Ticks []Tick  // Tick labels along both axes
}

// Line contains the geometry of the connecting line mark.
type Line struct {
	Stroke string  // Stroke color
	Width  float64 // Stroke width
	Points []Vec   // Polyline vertices in record order
}

// Points contains the geometry of the point marks.
type Points struct {
	Fill    string  // Fill color
	Radius  float64 // Circle radius
	Centers []Vec   // One center per record
}

// Text is a positioned text element (title or axis label).
type Text struct {
	X, Y    float64
	Size    float64 // Font size in px
	Color   string
	Anchor  string // SVG text-anchor
	Rotated bool   // Rotate -90° around (X, Y), used for y axis labels
	Value   string
}
