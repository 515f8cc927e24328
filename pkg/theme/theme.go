// Package theme provides named color lookups for plot rendering.
//
// A ColorMapping is an immutable value: providers hand out fresh copies on
// every call and nothing in this repository mutates a mapping in place.
// Host applications integrate by implementing Provider against whatever
// theming system is in effect (a TOML theme file, a built-in palette, or a
// literal mapping supplied per request).
package theme

import (
	"sort"
	"strings"

	"github.com/plotforge/plotforge/pkg/errors"
)

// Well-known color keys. Primary and Secondary are required by the plot
// builder; the remaining keys are optional and derived from primary when
// absent (see Derived).
const (
	KeyPrimary   = "primary"
	KeySecondary = "secondary"
	KeyAxis      = "axis"
	KeyGrid      = "grid"
	KeyLabel     = "label"
)

// RequiredKeys are the keys every mapping passed to the plot builder must contain.
var RequiredKeys = []string{KeyPrimary, KeySecondary}

// ColorMapping maps symbolic color names to hex color values.
type ColorMapping map[string]string

// Clone returns a copy of the mapping. Callers that hand a mapping to
// another component should pass a clone so the original stays immutable.
func (m ColorMapping) Clone() ColorMapping {
	out := make(ColorMapping, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Lookup returns the color value for key.
func (m ColorMapping) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Keys returns the mapping's keys in sorted order.
func (m ColorMapping) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Validate checks that every value in the mapping is a well-formed hex color.
func (m ColorMapping) Validate() error {
	for _, k := range m.Keys() {
		if err := errors.ValidateColorKey(k); err != nil {
			return err
		}
		if err := errors.ValidateHexColor(m[k]); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidColor, err, "color %q", k)
		}
	}
	return nil
}

// Provider yields named color values from a theming source.
//
// Colors returns a fresh mapping on every call. When names is empty, the
// full mapping is returned. A requested name with no value fails with a
// MISSING_COLOR_KEY error.
type Provider interface {
	// Name identifies the provider source (e.g. "palette:ocean").
	Name() string

	// Colors returns the requested named colors.
	Colors(names ...string) (ColorMapping, error)
}

// Static is a Provider backed by a literal mapping.
type Static struct {
	name   string
	colors ColorMapping
}

// NewStatic creates a provider from a literal mapping.
// The mapping is cloned; later mutation of colors does not affect the provider.
func NewStatic(name string, colors ColorMapping) (*Static, error) {
	if err := colors.Validate(); err != nil {
		return nil, err
	}
	return &Static{name: name, colors: colors.Clone()}, nil
}

// Name identifies the provider source.
func (s *Static) Name() string { return "static:" + s.name }

// Colors returns the requested named colors as a fresh mapping.
func (s *Static) Colors(names ...string) (ColorMapping, error) {
	if len(names) == 0 {
		return s.colors.Clone(), nil
	}
	out := make(ColorMapping, len(names))
	for _, n := range names {
		v, ok := s.colors[n]
		if !ok {
			return nil, errors.New(errors.ErrCodeMissingColorKey, "color mapping missing key %q", n)
		}
		out[n] = v
	}
	return out, nil
}

var _ Provider = (*Static)(nil)

// Resolve returns a provider for a theme reference. References ending in
// ".toml" load a theme file; anything else names a built-in palette.
func Resolve(ref string) (Provider, error) {
	if IsFileRef(ref) {
		return FromFile(ref)
	}
	return Builtin(ref)
}

// IsFileRef reports whether a theme reference names a theme file
// rather than a built-in palette.
func IsFileRef(ref string) bool {
	return strings.HasSuffix(ref, ".toml")
}
