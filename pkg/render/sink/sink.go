// Package sink provides output-format conversions for rendered plots.
//
// The SVG renderer in the parent package is the single source of geometry;
// PNG and PDF are conversions of its output, and JSON encodes the spec
// itself for programmatic consumers.
package sink

import (
	"github.com/plotforge/plotforge/pkg/plot"
	"github.com/plotforge/plotforge/pkg/render"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	svgOpts []render.SVGOption
	scale   float64
}

// WithPNGSVGOptions passes options through to the underlying SVG renderer.
func WithPNGSVGOptions(opts ...render.SVGOption) PNGOption {
	return func(r *pngRenderer) { r.svgOpts = opts }
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// RenderPNG renders the spec as PNG via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(spec *plot.Spec, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0}
	for _, opt := range opts {
		opt(&r)
	}
	svg := render.RenderSVG(spec, r.svgOpts...)
	return render.ToPNG(svg, r.scale)
}

// PDFOption configures PDF rendering.
type PDFOption func(*pdfRenderer)

type pdfRenderer struct {
	svgOpts []render.SVGOption
}

// WithPDFSVGOptions passes options through to the underlying SVG renderer.
func WithPDFSVGOptions(opts ...render.SVGOption) PDFOption {
	return func(r *pdfRenderer) { r.svgOpts = opts }
}

// RenderPDF renders the spec as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(spec *plot.Spec, opts ...PDFOption) ([]byte, error) {
	r := pdfRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	svg := render.RenderSVG(spec, r.svgOpts...)
	return render.ToPDF(svg)
}

// RenderJSON encodes the spec itself; consumers can re-render it elsewhere.
func RenderJSON(spec *plot.Spec) ([]byte, error) {
	return spec.Encode()
}
