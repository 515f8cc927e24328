package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/plotforge/plotforge/pkg/cache"
	"github.com/plotforge/plotforge/pkg/dataset"
	"github.com/plotforge/plotforge/pkg/observability"
	"github.com/plotforge/plotforge/pkg/plot"
	"github.com/plotforge/plotforge/pkg/theme"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete resolve → build → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, data dataset.Dataset, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Resolve theme
	resolveStart := time.Now()
	colors, themeHit, err := r.ResolveThemeWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("resolve theme: %w", err)
	}
	result.Colors = colors
	result.Stats.ResolveTime = time.Since(resolveStart)
	result.CacheInfo.ThemeHit = themeHit

	r.Logger.Info("resolved theme",
		"theme", opts.Theme,
		"keys", len(colors),
		"duration", result.Stats.ResolveTime)

	// Stage 2: Build spec
	buildStart := time.Now()
	spec, specHit, err := r.BuildSpecWithCacheInfo(ctx, data, colors, opts)
	if err != nil {
		return nil, fmt.Errorf("build spec: %w", err)
	}
	result.Spec = spec
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.PointCount = len(data)
	result.CacheInfo.SpecHit = specHit

	// Compute spec hash for cache keys and API responses
	if specData, err := spec.Encode(); err == nil {
		result.SpecHash = cache.Hash(specData)
	}

	r.Logger.Info("built spec",
		"points", len(data),
		"duration", result.Stats.BuildTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, artsHit, err := r.RenderWithCacheInfo(ctx, spec, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.ArtsHit = artsHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ResolveThemeWithCacheInfo resolves the theme with caching and returns cache hit info.
// Explicit colors in the options take precedence over a theme reference and
// are never cached.
func (r *Runner) ResolveThemeWithCacheInfo(ctx context.Context, opts Options) (theme.ColorMapping, bool, error) {
	if err := opts.ValidateForResolve(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	if len(opts.Colors) > 0 {
		colors := theme.ColorMapping(opts.Colors)
		if err := colors.Validate(); err != nil {
			return nil, false, err
		}
		observability.Build().OnThemeResolve(ctx, "explicit", colors.Keys())
		return colors.Clone(), false, nil
	}

	cacheKey := r.Keyer.ThemeKey(opts.Theme)

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var colors theme.ColorMapping
			if err := json.Unmarshal(data, &colors); err == nil {
				observability.Cache().OnCacheHit(ctx, "theme")
				observability.Build().OnThemeResolve(ctx, opts.Theme, colors.Keys())
				return colors, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "theme")
	}

	provider, err := theme.Resolve(opts.Theme)
	if err != nil {
		return nil, false, err
	}
	colors, err := provider.Colors()
	if err != nil {
		return nil, false, err
	}
	observability.Build().OnThemeResolve(ctx, provider.Name(), colors.Keys())

	// File-backed themes are not cached: the file on disk is the source of
	// truth and a stale cache entry would mask edits.
	if !opts.Refresh && !theme.IsFileRef(opts.Theme) {
		if data, err := json.Marshal(colors); err == nil {
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLTheme)
			observability.Cache().OnCacheSet(ctx, "theme", len(data))
		}
	}

	return colors, false, nil
}

// ResolveTheme is a convenience wrapper that discards the cache hit info.
func (r *Runner) ResolveTheme(ctx context.Context, opts Options) (theme.ColorMapping, error) {
	colors, _, err := r.ResolveThemeWithCacheInfo(ctx, opts)
	return colors, err
}

// BuildSpecWithCacheInfo builds a plot spec with caching and returns cache hit info.
func (r *Runner) BuildSpecWithCacheInfo(ctx context.Context, data dataset.Dataset, colors theme.ColorMapping, opts Options) (*plot.Spec, bool, error) {
	opts.SetBuildDefaults()
	r.applyLogger(&opts)

	// Compute cache key from dataset and colors content
	dataJSON, err := json.Marshal(data)
	if err != nil {
		return nil, false, fmt.Errorf("serialize dataset for cache key: %w", err)
	}
	colorsJSON, err := json.Marshal(colors)
	if err != nil {
		return nil, false, fmt.Errorf("serialize colors for cache key: %w", err)
	}
	cacheKey := r.Keyer.SpecKey(cache.Hash(dataJSON), cache.Hash(colorsJSON), opts.SpecKeyOpts())

	// Try cache first
	if !opts.Refresh {
		if cached, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			spec, err := plot.Decode(cached)
			if err == nil {
				observability.Cache().OnCacheHit(ctx, "spec")
				return spec, true, nil
			}
			// If deserialization fails, fall through to rebuild
		}
		observability.Cache().OnCacheMiss(ctx, "spec")
	}

	start := time.Now()
	observability.Build().OnBuildStart(ctx, len(data))
	spec, err := plot.Build(data, colors, opts.BuildOptions()...)
	observability.Build().OnBuildComplete(ctx, len(data), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache the result
	if !opts.Refresh {
		if encoded, err := spec.Encode(); err == nil {
			_ = r.Cache.Set(ctx, cacheKey, encoded, cache.TTLSpec)
			observability.Cache().OnCacheSet(ctx, "spec", len(encoded))
		}
	}

	return spec, false, nil
}

// BuildSpec is a convenience wrapper that discards the cache hit info.
func (r *Runner) BuildSpec(ctx context.Context, data dataset.Dataset, colors theme.ColorMapping, opts Options) (*plot.Spec, error) {
	spec, _, err := r.BuildSpecWithCacheInfo(ctx, data, colors, opts)
	return spec, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, spec *plot.Spec, opts Options) (map[string][]byte, bool, error) {
	opts.SetRenderDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, false, err
	}
	if err := ValidateStyle(opts.Style); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Compute cache key from spec content
	specData, err := spec.Encode()
	if err != nil {
		return nil, false, fmt.Errorf("serialize spec for cache key: %w", err)
	}
	specHash := cache.Hash(specData)

	// Try to get all formats from cache
	artifacts := make(map[string][]byte)
	allCached := !opts.Refresh

	if allCached {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(specHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	start := time.Now()
	observability.Render().OnRenderStart(ctx, opts.Formats)
	rendered, err := renderFormats(spec, opts)
	observability.Render().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	if !opts.Refresh {
		for format, data := range rendered {
			cacheKey := r.Keyer.ArtifactKey(specHash, opts.ArtifactKeyOpts(format))
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that discards the cache hit info.
func (r *Runner) Render(ctx context.Context, spec *plot.Spec, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, spec, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
