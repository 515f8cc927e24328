package pipeline

import (
	"fmt"

	"github.com/plotforge/plotforge/pkg/plot"
	"github.com/plotforge/plotforge/pkg/render"
	"github.com/plotforge/plotforge/pkg/render/sink"
	"github.com/plotforge/plotforge/pkg/render/styles"
)

// styleFor returns the configured style. The sketch style carries the
// pipeline seed so artifact output is reproducible.
func styleFor(opts Options) styles.Style {
	if opts.Style == styles.NameSketch {
		return styles.NewSketch(opts.Seed)
	}
	s, _ := styles.ForName(opts.Style)
	return s
}

// renderFormats renders the spec in every requested format.
// The SVG is rendered once and shared by the conversion-based formats.
func renderFormats(spec *plot.Spec, opts Options) (map[string][]byte, error) {
	svgOpts := []render.SVGOption{render.WithStyle(styleFor(opts))}
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		switch format {
		case FormatSVG:
			artifacts[format] = render.RenderSVG(spec, svgOpts...)

		case FormatPNG:
			data, err := sink.RenderPNG(spec,
				sink.WithPNGSVGOptions(svgOpts...),
				sink.WithScale(opts.Scale))
			if err != nil {
				return nil, fmt.Errorf("render png: %w", err)
			}
			artifacts[format] = data

		case FormatPDF:
			data, err := sink.RenderPDF(spec, sink.WithPDFSVGOptions(svgOpts...))
			if err != nil {
				return nil, fmt.Errorf("render pdf: %w", err)
			}
			artifacts[format] = data

		case FormatJSON:
			data, err := sink.RenderJSON(spec)
			if err != nil {
				return nil, fmt.Errorf("render json: %w", err)
			}
			artifacts[format] = data

		default:
			return nil, fmt.Errorf("invalid format: %q", format)
		}
	}

	return artifacts, nil
}
