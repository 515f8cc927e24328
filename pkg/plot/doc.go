// Package plot builds themed plot specifications.
//
// A Spec is a renderer-independent description of a chart: a line mark, a
// point mark, axes, an optional grid, and a background that is always
// transparent. Specs are produced by [Build], a pure function over a dataset
// and a color mapping:
//
//	colors, err := theme.Default().Colors()
//	if err != nil {
//	    return err
//	}
//	spec, err := plot.Build(data, colors, plot.WithTitle("Revenue"))
//	if err != nil {
//	    return err
//	}
//
// The line is stroked with the mapping's "primary" color and points are
// filled with "secondary". Both keys are required; a mapping without them
// fails with a MISSING_COLOR_KEY error, and an empty dataset fails with
// EMPTY_DATASET.
//
// # Transparent backgrounds
//
// Every Spec leaves the canvas and panel unfilled so the rendered chart
// composes over whatever surface the host application draws underneath.
// There is no option to set an opaque background; the grid, when enabled,
// is stroked lines only. [Spec.Validate] re-checks this invariant for specs
// that cross a serialization boundary.
//
// Build has no side effects and keeps no state between calls, so any number
// of goroutines may build specs concurrently.
package plot
