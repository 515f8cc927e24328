// Package render turns plot specs into visual outputs.
//
// # Overview
//
// [RenderSVG] is the single source of geometry: it maps a spec's dataset
// into pixel space, lays out the frame, and delegates mark emission to a
// [styles.Style]. The SVG root carries no background element, so every
// output composites cleanly over any surface.
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). The [sink] subpackage
// wraps these into per-format renderers used by the pipeline.
//
//	svg := render.RenderSVG(spec, render.WithStyle(styles.NewSketch(42)))
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// # Styles
//
// The [styles] subpackage provides the clean style (crisp lines, dashed
// grid) and the sketch style (deterministic hand-drawn jitter).
package render
