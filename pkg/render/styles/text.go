package styles

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

// Style names accepted across the CLI, API, and plot documents.
const (
	NameClean  = "clean"
	NameSketch = "sketch"
)

// ForName returns the style registered under name.
// An empty name selects the clean style.
func ForName(name string) (Style, bool) {
	switch name {
	case "", NameClean:
		return Clean{}, true
	case NameSketch:
		return NewSketch(0), true
	}
	return nil, false
}

// EscapeXML escapes s for safe embedding in SVG attribute and text content.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// Font stacks. The sketch style asks for a handwriting face and falls back
// to whatever the viewer has installed.
const (
	fontClean  = "sans-serif"
	fontSketch = "'Comic Sans MS', 'Bradley Hand', 'Segoe Script', cursive, sans-serif"
)

// writeText emits a positioned <text> element, optionally rotated.
func writeText(buf *bytes.Buffer, t Text) {
	writeTextFont(buf, t, fontClean)
}

func writeTextFont(buf *bytes.Buffer, t Text, family string) {
	transform := ""
	if t.Rotated {
		transform = fmt.Sprintf(` transform="rotate(-90 %.2f %.2f)"`, t.X, t.Y)
	}
	fmt.Fprintf(buf,
		"  <text x=\"%.2f\" y=\"%.2f\" font-size=\"%.1f\" fill=\"%s\" text-anchor=\"%s\" font-family=\"%s\"%s>%s</text>\n",
		t.X, t.Y, t.Size, t.Color, anchorOrDefault(t.Anchor), family, transform, EscapeXML(t.Value))
}

func anchorOrDefault(anchor string) string {
	if anchor == "" {
		return "middle"
	}
	return anchor
}
