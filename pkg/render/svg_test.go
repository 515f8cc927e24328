package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/plotforge/plotforge/pkg/dataset"
	"github.com/plotforge/plotforge/pkg/plot"
	"github.com/plotforge/plotforge/pkg/render/styles"
	"github.com/plotforge/plotforge/pkg/theme"
)

func buildSpec(t *testing.T, opts ...plot.Option) *plot.Spec {
	t.Helper()
	data := dataset.FromPoints([2]float64{2020, 100}, [2]float64{2021, 110}, [2]float64{2022, 95})
	colors := theme.ColorMapping{
		theme.KeyPrimary:   "#2596be",
		theme.KeySecondary: "#eab676",
	}
	spec, err := plot.Build(data, colors, opts...)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return spec
}

func TestRenderSVGBasic(t *testing.T) {
	spec := buildSpec(t)
	out := string(RenderSVG(spec))

	contains := []string{
		`<svg xmlns="http://www.w3.org/2000/svg"`,
		`viewBox="0 0 800.0 600.0"`,
		`stroke="#2596be"`,
		`fill="#eab676"`,
		`<polyline class="line" fill="none"`,
		`<circle class="point"`,
		`</svg>`,
	}
	for _, want := range contains {
		if !strings.Contains(out, want) {
			t.Errorf("RenderSVG() output missing %q", want)
		}
	}
}

// The SVG root must never carry a canvas fill; that is the contract the
// whole renderer exists to uphold.
func TestRenderSVGNoBackgroundFill(t *testing.T) {
	for _, name := range theme.Names() {
		p, _ := theme.Builtin(name)
		colors, _ := p.Colors()
		data := dataset.FromPoints([2]float64{1, 2}, [2]float64{3, 4})
		spec, err := plot.Build(data, colors, plot.WithGrid(), plot.WithTitle("t"))
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}

		for _, style := range []styles.Style{styles.Clean{}, styles.NewSketch(42)} {
			out := string(RenderSVG(spec, WithStyle(style)))

			if strings.Contains(out, `<rect`) {
				t.Errorf("palette %q: output contains a rect (potential background fill)", name)
			}
			if strings.Contains(out, `class="background"`) {
				t.Errorf("palette %q: output contains a background element", name)
			}
		}
	}
}

func TestRenderSVGGrid(t *testing.T) {
	withGrid := string(RenderSVG(buildSpec(t, plot.WithGrid())))
	if !strings.Contains(withGrid, `class="grid"`) {
		t.Error("grid enabled but no gridlines rendered")
	}

	withoutGrid := string(RenderSVG(buildSpec(t)))
	if strings.Contains(withoutGrid, `class="grid"`) {
		t.Error("grid disabled but gridlines rendered")
	}
}

func TestRenderSVGTitleAndLabels(t *testing.T) {
	spec := buildSpec(t,
		plot.WithTitle("Annual <Revenue>"),
		plot.WithAxisLabels("year", "revenue"),
	)
	out := string(RenderSVG(spec))

	if !strings.Contains(out, "Annual &lt;Revenue&gt;") {
		t.Error("title should be XML-escaped in output")
	}
	if !strings.Contains(out, ">year</text>") {
		t.Error("x axis label missing")
	}
	if !strings.Contains(out, "rotate(-90") {
		t.Error("y axis label should be rotated")
	}
}

func TestRenderSVGDeterministic(t *testing.T) {
	spec := buildSpec(t, plot.WithGrid())

	a := RenderSVG(spec, WithStyle(styles.NewSketch(7)))
	b := RenderSVG(spec, WithStyle(styles.NewSketch(7)))
	if !bytes.Equal(a, b) {
		t.Error("sketch style output should be deterministic for a fixed seed")
	}

	c := RenderSVG(spec, WithStyle(styles.NewSketch(8)))
	if bytes.Equal(a, c) {
		t.Error("different seeds should produce different sketch output")
	}
}

func TestTicks(t *testing.T) {
	got := ticks(0, 100)
	if len(got) != tickCount {
		t.Fatalf("ticks() returned %d values, want %d", len(got), tickCount)
	}
	if got[0] != 0 || got[len(got)-1] != 100 {
		t.Errorf("ticks() endpoints = %v, %v, want 0, 100", got[0], got[len(got)-1])
	}
}

func TestFormatTick(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{2020, "2020"},
		{0.5, "0.5"},
		{102.50000000001, "102.5"},
		{-3.14159, "-3.14"},
	}
	for _, tt := range tests {
		if got := formatTick(tt.in); got != tt.want {
			t.Errorf("formatTick(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
