package styles

import (
	"bytes"
	"fmt"
)

// Jitter bounds for the sketch style, in pixels.
const (
	jitterMax       = 1.4
	radiusJitterMax = 0.8
)

// Sketch renders plots with a hand-drawn look: vertices and point radii
// are nudged by a small deterministic jitter derived from the seed, so the
// same spec and seed always produce identical output.
type Sketch struct {
	seed uint64
}

// NewSketch creates a sketch style with the given jitter seed.
func NewSketch(seed uint64) Sketch {
	return Sketch{seed: seed}
}

// RenderDefs writes nothing; jitter happens in geometry, not filters.
func (Sketch) RenderDefs(buf *bytes.Buffer) {}

// RenderGrid writes lightly jittered gridlines.
func (s Sketch) RenderGrid(buf *bytes.Buffer, g Grid) {
	for i, seg := range g.Lines {
		j := s.jitter(fmt.Sprintf("grid-%d", i))
		fmt.Fprintf(buf,
			"  <line class=\"grid\" x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke=\"%s\" stroke-width=\"1\" stroke-linecap=\"round\"/>\n",
			seg.X1, seg.Y1+j, seg.X2, seg.Y2-j, g.Color)
	}
}

// RenderAxes writes the axis lines and tick labels. Axis lines stay
// straight so tick labels keep lining up with their gridlines.
func (s Sketch) RenderAxes(buf *bytes.Buffer, a Axes) {
	for _, seg := range []Segment{a.X, a.Y} {
		fmt.Fprintf(buf,
			"  <line class=\"axis\" x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke=\"%s\" stroke-width=\"1.5\" stroke-linecap=\"round\"/>\n",
			seg.X1, seg.Y1, seg.X2, seg.Y2, a.Color)
	}
	for _, tick := range a.Ticks {
		writeTextFont(buf, Text{
			X: tick.X, Y: tick.Y,
			Size:   11,
			Color:  a.Color,
			Anchor: tick.Anchor,
			Value:  tick.Label,
		}, fontSketch)
	}
}

// RenderLine writes the connecting polyline with jittered vertices.
func (s Sketch) RenderLine(buf *bytes.Buffer, l Line) {
	if len(l.Points) == 0 {
		return
	}
	fmt.Fprintf(buf, `  <polyline class="line" fill="none" stroke="%s" stroke-width="%.2f" stroke-linejoin="round" stroke-linecap="round" points="`,
		l.Stroke, l.Width)
	for i, p := range l.Points {
		if i > 0 {
			buf.WriteByte(' ')
		}
		jx := s.jitter(fmt.Sprintf("lx-%d", i))
		jy := s.jitter(fmt.Sprintf("ly-%d", i))
		fmt.Fprintf(buf, "%.2f,%.2f", p.X+jx, p.Y+jy)
	}
	buf.WriteString("\"/>\n")
}

// RenderPoints writes circles with slightly varied radii.
func (s Sketch) RenderPoints(buf *bytes.Buffer, p Points) {
	for i, c := range p.Centers {
		r := p.Radius + s.scaledJitter(fmt.Sprintf("pr-%d", i), radiusJitterMax)
		if r < 1 {
			r = 1
		}
		fmt.Fprintf(buf,
			"  <circle class=\"point\" cx=\"%.2f\" cy=\"%.2f\" r=\"%.2f\" fill=\"%s\"/>\n",
			c.X, c.Y, r, p.Fill)
	}
}

// RenderText writes a title or axis label in the handwriting face.
func (Sketch) RenderText(buf *bytes.Buffer, t Text) {
	writeTextFont(buf, t, fontSketch)
}

// jitter returns a deterministic offset in [-jitterMax, jitterMax].
func (s Sketch) jitter(key string) float64 {
	return s.scaledJitter(key, jitterMax)
}

func (s Sketch) scaledJitter(key string, max float64) float64 {
	h := hash(key, s.seed)
	// Map the low 16 bits onto [-max, max].
	frac := float64(h&0xffff) / float64(0xffff)
	return (frac*2 - 1) * max
}

// hash is a seeded FNV-1a over the key.
func hash(key string, seed uint64) uint64 {
	const (
		offset64 = 14695981039346656037
		prime64  = 1099511628211
	)
	h := uint64(offset64) ^ seed
	for i := 0; i < len(key); i++ {
		h ^= uint64(key[i])
		h *= prime64
	}
	return h
}

var _ Style = Sketch{}
