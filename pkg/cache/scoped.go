package cache

import "fmt"

// ScopedKeyer wraps a Keyer and prefixes all keys with a scope.
// This lets multiple projects or tenants share one cache backend
// without key collisions.
type ScopedKeyer struct {
	inner Keyer
	scope string
}

// NewScopedKeyer creates a keyer whose keys are namespaced under scope.
func NewScopedKeyer(inner Keyer, scope string) Keyer {
	return ScopedKeyer{inner: inner, scope: scope}
}

// ThemeKey generates a scoped key for resolved theme color mappings.
func (k ScopedKeyer) ThemeKey(ref string) string {
	return k.prefix(k.inner.ThemeKey(ref))
}

// SpecKey generates a scoped key for built plot specs.
func (k ScopedKeyer) SpecKey(datasetHash, colorsHash string, opts SpecKeyOpts) string {
	return k.prefix(k.inner.SpecKey(datasetHash, colorsHash, opts))
}

// ArtifactKey generates a scoped key for rendered artifacts.
func (k ScopedKeyer) ArtifactKey(specHash string, opts ArtifactKeyOpts) string {
	return k.prefix(k.inner.ArtifactKey(specHash, opts))
}

func (k ScopedKeyer) prefix(key string) string {
	if k.scope == "" {
		return key
	}
	return fmt.Sprintf("%s:%s", k.scope, key)
}

var _ Keyer = ScopedKeyer{}
