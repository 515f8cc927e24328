package styles

import (
	"bytes"
	"fmt"
)

// Clean renders plots with plain strokes and no decoration.
// It is the default style.
type Clean struct{}

// RenderDefs writes nothing; the clean style needs no defs.
func (Clean) RenderDefs(buf *bytes.Buffer) {}

// RenderGrid writes dashed gridlines.
func (Clean) RenderGrid(buf *bytes.Buffer, g Grid) {
	for _, s := range g.Lines {
		fmt.Fprintf(buf,
			"  <line class=\"grid\" x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke=\"%s\" stroke-width=\"1\" stroke-dasharray=\"4 4\"/>\n",
			s.X1, s.Y1, s.X2, s.Y2, g.Color)
	}
}

// RenderAxes writes the axis lines and tick labels.
func (Clean) RenderAxes(buf *bytes.Buffer, a Axes) {
	for _, s := range []Segment{a.X, a.Y} {
		fmt.Fprintf(buf,
			"  <line class=\"axis\" x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke=\"%s\" stroke-width=\"1.5\"/>\n",
			s.X1, s.Y1, s.X2, s.Y2, a.Color)
	}
	for _, tick := range a.Ticks {
		writeText(buf, Text{
			X: tick.X, Y: tick.Y,
			Size:   11,
			Color:  a.Color,
			Anchor: tick.Anchor,
			Value:  tick.Label,
		})
	}
}

// RenderLine writes the connecting polyline with no fill.
func (Clean) RenderLine(buf *bytes.Buffer, l Line) {
	if len(l.Points) == 0 {
		return
	}
	fmt.Fprintf(buf, `  <polyline class="line" fill="none" stroke="%s" stroke-width="%.2f" stroke-linejoin="round" points="`,
		l.Stroke, l.Width)
	for i, p := range l.Points {
		if i > 0 {
			buf.WriteByte(' ')
		}
		fmt.Fprintf(buf, "%.2f,%.2f", p.X, p.Y)
	}
	buf.WriteString("\"/>\n")
}

// RenderPoints writes one circle per record.
func (Clean) RenderPoints(buf *bytes.Buffer, p Points) {
	for _, c := range p.Centers {
		fmt.Fprintf(buf,
			"  <circle class=\"point\" cx=\"%.2f\" cy=\"%.2f\" r=\"%.2f\" fill=\"%s\"/>\n",
			c.X, c.Y, p.Radius, p.Fill)
	}
}

// RenderText writes a title or axis label.
func (Clean) RenderText(buf *bytes.Buffer, t Text) {
	writeText(buf, t)
}

var _ Style = Clean{}
