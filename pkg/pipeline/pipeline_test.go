package pipeline

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/plotforge/plotforge/pkg/cache"
	"github.com/plotforge/plotforge/pkg/dataset"
	"github.com/plotforge/plotforge/pkg/errors"
	"github.com/plotforge/plotforge/pkg/theme"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func testData() dataset.Dataset {
	return dataset.FromPoints([2]float64{2020, 100}, [2]float64{2021, 110})
}

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	return NewRunner(c, nil, testLogger())
}

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}

	if opts.Theme != theme.DefaultPalette {
		t.Errorf("Theme = %q, want %q", opts.Theme, theme.DefaultPalette)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.Style != DefaultStyle {
		t.Errorf("Style = %q, want %q", opts.Style, DefaultStyle)
	}
	if opts.Width == 0 || opts.Height == 0 {
		t.Error("size defaults not applied")
	}
	if opts.Seed != DefaultSeed {
		t.Errorf("Seed = %d, want %d", opts.Seed, DefaultSeed)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale = %v, want %v", opts.Scale, DefaultScale)
	}
}

func TestOptionsValidateInvalidFormat(t *testing.T) {
	opts := Options{Formats: []string{"gif"}}
	if err := opts.ValidateAndSetDefaults(); err == nil {
		t.Error("ValidateAndSetDefaults() should reject format gif")
	}
}

func TestOptionsValidateInvalidStyle(t *testing.T) {
	opts := Options{Style: "neon"}
	if err := opts.ValidateAndSetDefaults(); err == nil {
		t.Error("ValidateAndSetDefaults() should reject style neon")
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{FormatSVG, FormatPNG, FormatPDF, FormatJSON}); err != nil {
		t.Errorf("ValidateFormats() error = %v for valid formats", err)
	}
	err := ValidateFormats([]string{FormatSVG, "bmp"})
	if err == nil {
		t.Fatal("ValidateFormats() should reject bmp")
	}
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ValidateFormats() code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidFormat)
	}
}

func TestValidateStyleCode(t *testing.T) {
	err := ValidateStyle("neon")
	if err == nil {
		t.Fatal("ValidateStyle() should reject neon")
	}
	if !errors.Is(err, errors.ErrCodeInvalidStyle) {
		t.Errorf("ValidateStyle() code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidStyle)
	}
}

func TestExecute(t *testing.T) {
	r := newTestRunner(t)
	defer r.Close()

	result, err := r.Execute(context.Background(), testData(), Options{
		Theme:   "ocean",
		Formats: []string{FormatSVG, FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if result.Spec == nil {
		t.Fatal("Execute() returned nil spec")
	}
	if !result.Spec.Background.Transparent {
		t.Error("spec background should be transparent")
	}
	if result.SpecHash == "" {
		t.Error("Execute() should compute a spec hash")
	}
	if result.Stats.PointCount != 2 {
		t.Errorf("PointCount = %d, want 2", result.Stats.PointCount)
	}

	svg := string(result.Artifacts[FormatSVG])
	if !strings.Contains(svg, `stroke="#2596be"`) {
		t.Error("svg artifact missing ocean primary stroke")
	}
	if strings.Contains(svg, "<rect") {
		t.Error("svg artifact contains a background rect")
	}
	if len(result.Artifacts[FormatJSON]) == 0 {
		t.Error("json artifact missing")
	}
}

func TestExecuteCacheHits(t *testing.T) {
	r := newTestRunner(t)
	defer r.Close()

	opts := Options{Theme: "forest", Formats: []string{FormatSVG}}

	first, err := r.Execute(context.Background(), testData(), opts)
	if err != nil {
		t.Fatalf("first Execute() error = %v", err)
	}
	if first.CacheInfo.ThemeHit || first.CacheInfo.SpecHit || first.CacheInfo.ArtsHit {
		t.Errorf("first run should miss all stages, got %+v", first.CacheInfo)
	}

	second, err := r.Execute(context.Background(), testData(), opts)
	if err != nil {
		t.Fatalf("second Execute() error = %v", err)
	}
	if !second.CacheInfo.ThemeHit || !second.CacheInfo.SpecHit || !second.CacheInfo.ArtsHit {
		t.Errorf("second run should hit all stages, got %+v", second.CacheInfo)
	}
	if string(first.Artifacts[FormatSVG]) != string(second.Artifacts[FormatSVG]) {
		t.Error("cached artifact differs from rendered artifact")
	}
}

func TestExecuteRefreshBypassesCache(t *testing.T) {
	r := newTestRunner(t)
	defer r.Close()

	opts := Options{Theme: "ocean"}
	if _, err := r.Execute(context.Background(), testData(), opts); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	opts.Refresh = true
	result, err := r.Execute(context.Background(), testData(), opts)
	if err != nil {
		t.Fatalf("Execute() with refresh error = %v", err)
	}
	if result.CacheInfo.ThemeHit || result.CacheInfo.SpecHit || result.CacheInfo.ArtsHit {
		t.Errorf("refresh run should bypass cache, got %+v", result.CacheInfo)
	}
}

func TestExecuteEmptyDataset(t *testing.T) {
	r := NewRunner(nil, nil, testLogger())
	_, err := r.Execute(context.Background(), nil, Options{Theme: "ocean"})
	if err == nil {
		t.Error("Execute() should fail on empty dataset")
	}
}

func TestResolveThemeExplicitColors(t *testing.T) {
	r := NewRunner(nil, nil, testLogger())

	colors, err := r.ResolveTheme(context.Background(), Options{
		Colors: map[string]string{
			theme.KeyPrimary:   "#112233",
			theme.KeySecondary: "#445566",
		},
	})
	if err != nil {
		t.Fatalf("ResolveTheme() error = %v", err)
	}
	if colors[theme.KeyPrimary] != "#112233" {
		t.Errorf("primary = %q, want #112233", colors[theme.KeyPrimary])
	}
}

func TestResolveThemeExplicitColorsInvalid(t *testing.T) {
	r := NewRunner(nil, nil, testLogger())

	_, err := r.ResolveTheme(context.Background(), Options{
		Colors: map[string]string{theme.KeyPrimary: "not-a-color"},
	})
	if err == nil {
		t.Error("ResolveTheme() should reject invalid hex colors")
	}
}

func TestResolveThemeUnknownPalette(t *testing.T) {
	r := NewRunner(nil, nil, testLogger())

	_, err := r.ResolveTheme(context.Background(), Options{Theme: "nonexistent"})
	if err == nil {
		t.Error("ResolveTheme() should fail for unknown palette")
	}
}

func TestBuildSpecCaching(t *testing.T) {
	r := newTestRunner(t)
	defer r.Close()

	colors := theme.ColorMapping{
		theme.KeyPrimary:   "#2596be",
		theme.KeySecondary: "#eab676",
	}
	ctx := context.Background()

	spec1, hit1, err := r.BuildSpecWithCacheInfo(ctx, testData(), colors, Options{Title: "t"})
	if err != nil {
		t.Fatalf("BuildSpecWithCacheInfo() error = %v", err)
	}
	if hit1 {
		t.Error("first build should miss cache")
	}

	spec2, hit2, err := r.BuildSpecWithCacheInfo(ctx, testData(), colors, Options{Title: "t"})
	if err != nil {
		t.Fatalf("second BuildSpecWithCacheInfo() error = %v", err)
	}
	if !hit2 {
		t.Error("second build should hit cache")
	}
	if spec1.Line.Stroke != spec2.Line.Stroke {
		t.Error("cached spec differs from built spec")
	}

	// A different title must produce a different cache entry
	_, hit3, err := r.BuildSpecWithCacheInfo(ctx, testData(), colors, Options{Title: "other"})
	if err != nil {
		t.Fatalf("third BuildSpecWithCacheInfo() error = %v", err)
	}
	if hit3 {
		t.Error("different options should not hit the same cache entry")
	}
}

func TestRenderSketchDeterministicBySeed(t *testing.T) {
	r := NewRunner(nil, nil, testLogger())
	ctx := context.Background()

	colors := theme.ColorMapping{
		theme.KeyPrimary:   "#2596be",
		theme.KeySecondary: "#eab676",
	}
	spec, err := r.BuildSpec(ctx, testData(), colors, Options{})
	if err != nil {
		t.Fatalf("BuildSpec() error = %v", err)
	}

	a, err := r.Render(ctx, spec, Options{Style: "sketch", Seed: 7})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	b, err := r.Render(ctx, spec, Options{Style: "sketch", Seed: 7})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if string(a[FormatSVG]) != string(b[FormatSVG]) {
		t.Error("sketch render should be deterministic for a fixed seed")
	}

	c, err := r.Render(ctx, spec, Options{Style: "sketch", Seed: 8})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if string(a[FormatSVG]) == string(c[FormatSVG]) {
		t.Error("different seeds should produce different sketch output")
	}
}

func TestArtifactKeyOptsScopesSeedAndScale(t *testing.T) {
	opts := Options{Style: "clean", Seed: 42, Scale: 2.0}

	svgKey := opts.ArtifactKeyOpts(FormatSVG)
	if svgKey.Seed != 0 {
		t.Error("clean style should not carry a seed in the cache key")
	}
	if svgKey.Scale != 0 {
		t.Error("svg format should not carry a scale in the cache key")
	}

	opts.Style = "sketch"
	pngKey := opts.ArtifactKeyOpts(FormatPNG)
	if pngKey.Seed != 42 {
		t.Error("sketch style should carry the seed in the cache key")
	}
	if pngKey.Scale != 2.0 {
		t.Error("png format should carry the scale in the cache key")
	}
}
