// Package cache provides pluggable caching for specs and rendered artifacts.
//
// Three backends are available:
//   - FileCache: directory-backed cache for CLI usage
//   - RedisCache: shared cache for the HTTP server
//   - NullCache: disables caching
//
// Keys are produced by a Keyer so CLI and server agree on cache identity:
// a spec key covers the dataset, colors, and build options; an artifact key
// covers the spec hash plus format and style.
package cache

import (
	"context"
	"time"
)

// Cache TTLs per pipeline stage. Theme files change more often than
// built specs or rendered artifacts, so they expire sooner.
const (
	TTLTheme    = 24 * time.Hour
	TTLSpec     = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is the interface implemented by all cache backends.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A TTL of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// SpecKeyOpts are the build options that contribute to spec cache identity.
type SpecKeyOpts struct {
	Title       string
	XLabel      string
	YLabel      string
	Width       float64
	Height      float64
	LineWidth   float64
	PointRadius float64
	Grid        bool
}

// ArtifactKeyOpts are the render options that contribute to artifact cache identity.
type ArtifactKeyOpts struct {
	Format string
	Style  string
	Seed   uint64
	Scale  float64
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// ThemeKey generates a key for resolved theme color mappings.
	ThemeKey(ref string) string

	// SpecKey generates a key for built plot specs.
	SpecKey(datasetHash, colorsHash string, opts SpecKeyOpts) string

	// ArtifactKey generates a key for rendered artifacts.
	ArtifactKey(specHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ThemeKey generates a key for resolved theme color mappings.
func (DefaultKeyer) ThemeKey(ref string) string {
	return "theme:" + ref
}

// SpecKey generates a key for built plot specs.
func (DefaultKeyer) SpecKey(datasetHash, colorsHash string, opts SpecKeyOpts) string {
	return hashKey("spec", datasetHash, colorsHash, opts)
}

// ArtifactKey generates a key for rendered artifacts.
func (DefaultKeyer) ArtifactKey(specHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", specHash, opts)
}
