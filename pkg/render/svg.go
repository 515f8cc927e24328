// Package render turns plot specifications into SVG documents.
//
// The renderer maps the spec's data into pixel space, then delegates mark
// emission to a [styles.Style]. The SVG root carries no background rect or
// fill: the document composes transparently over whatever the host surface
// draws underneath, which is the core guarantee of the whole pipeline.
//
// PNG and PDF conversion of rendered SVG lives in the sink subpackage.
package render

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/plotforge/plotforge/pkg/plot"
	"github.com/plotforge/plotforge/pkg/render/styles"
)

// Frame padding in pixels.
const (
	padLeft   = 60.0
	padRight  = 20.0
	padTop    = 24.0
	padTitle  = 40.0 // top padding when a title is present
	padBottom = 36.0
	padXLabel = 54.0 // bottom padding when an x axis label is present

	tickCount = 5
	titleSize = 16.0
	labelSize = 12.0
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style styles.Style
}

// WithStyle selects the visual style. The default is the clean style.
func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// RenderSVG renders a spec as a standalone SVG document.
//
// The caller is expected to pass a spec produced by [plot.Build]; specs from
// other sources should be validated first. The output never contains a
// canvas or panel background fill.
func RenderSVG(spec *plot.Spec, opts ...SVGOption) []byte {
	r := svgRenderer{style: styles.Clean{}}
	for _, opt := range opts {
		opt(&r)
	}

	frame := frameFor(spec)
	geom := project(spec, frame)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		spec.Width, spec.Height, spec.Width, spec.Height)

	r.style.RenderDefs(&buf)

	if spec.Grid.Show {
		r.style.RenderGrid(&buf, geom.grid)
	}
	r.style.RenderAxes(&buf, geom.axes)
	r.style.RenderLine(&buf, geom.line)
	r.style.RenderPoints(&buf, geom.points)

	if spec.Title != "" {
		r.style.RenderText(&buf, styles.Text{
			X: spec.Width / 2, Y: padTop,
			Size:  titleSize,
			Color: labelColor(spec),
			Value: spec.Title,
		})
	}
	if spec.XAxis.Label != "" {
		r.style.RenderText(&buf, styles.Text{
			X: frame.left + frame.plotW/2, Y: spec.Height - 12,
			Size:  labelSize,
			Color: spec.XAxis.Color,
			Value: spec.XAxis.Label,
		})
	}
	if spec.YAxis.Label != "" {
		r.style.RenderText(&buf, styles.Text{
			X: 16, Y: frame.top + frame.plotH/2,
			Size:    labelSize,
			Color:   spec.YAxis.Color,
			Rotated: true,
			Value:   spec.YAxis.Label,
		})
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// frame is the pixel-space plotting area after padding.
type frame struct {
	left, top    float64
	plotW, plotH float64
}

func frameFor(spec *plot.Spec) frame {
	top := padTop
	if spec.Title != "" {
		top = padTitle
	}
	bottom := padBottom
	if spec.XAxis.Label != "" {
		bottom = padXLabel
	}
	return frame{
		left:  padLeft,
		top:   top,
		plotW: spec.Width - padLeft - padRight,
		plotH: spec.Height - top - bottom,
	}
}

// geometry is the fully projected pixel-space content of a plot.
type geometry struct {
	grid   styles.Grid
	axes   styles.Axes
	line   styles.Line
	points styles.Points
}

// project maps the spec's records and decorations into pixel space.
func project(spec *plot.Spec, f frame) geometry {
	xmin, xmax, ymin, ymax := spec.Data.Bounds()

	toX := func(x float64) float64 {
		return f.left + (x-xmin)/(xmax-xmin)*f.plotW
	}
	toY := func(y float64) float64 {
		return f.top + (1-(y-ymin)/(ymax-ymin))*f.plotH
	}

	vecs := make([]styles.Vec, len(spec.Data))
	for i, rec := range spec.Data {
		vecs[i] = styles.Vec{X: toX(rec.X), Y: toY(rec.Y)}
	}

	axes := styles.Axes{
		Color: spec.XAxis.Color,
		X: styles.Segment{
			X1: f.left, Y1: f.top + f.plotH,
			X2: f.left + f.plotW, Y2: f.top + f.plotH,
		},
		Y: styles.Segment{
			X1: f.left, Y1: f.top,
			X2: f.left, Y2: f.top + f.plotH,
		},
	}

	var grid styles.Grid
	grid.Color = spec.Grid.Color

	for _, v := range ticks(ymin, ymax) {
		py := toY(v)
		axes.Ticks = append(axes.Ticks, styles.Tick{
			X: f.left - 8, Y: py + 4,
			Label:  formatTick(v),
			Anchor: "end",
		})
		grid.Lines = append(grid.Lines, styles.Segment{
			X1: f.left, Y1: py,
			X2: f.left + f.plotW, Y2: py,
		})
	}
	for _, v := range ticks(xmin, xmax) {
		axes.Ticks = append(axes.Ticks, styles.Tick{
			X: toX(v), Y: f.top + f.plotH + 18,
			Label:  formatTick(v),
			Anchor: "middle",
		})
	}

	return geometry{
		grid: grid,
		axes: axes,
		line: styles.Line{
			Stroke: spec.Line.Stroke,
			Width:  spec.Line.Width,
			Points: vecs,
		},
		points: styles.Points{
			Fill:    spec.Points.Fill,
			Radius:  spec.Points.Radius,
			Centers: vecs,
		},
	}
}

// ticks returns tickCount evenly spaced values across [min, max].
func ticks(min, max float64) []float64 {
	out := make([]float64, tickCount)
	step := (max - min) / float64(tickCount-1)
	for i := range out {
		out[i] = min + float64(i)*step
	}
	return out
}

// formatTick renders a tick value compactly, dropping noise from
// floating-point stepping.
func formatTick(v float64) string {
	rounded := math.Round(v*100) / 100
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}

func labelColor(spec *plot.Spec) string {
	if spec.XAxis.Color != "" {
		return spec.XAxis.Color
	}
	return "#333333"
}
