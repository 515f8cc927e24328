package theme

import (
	"sort"

	"github.com/plotforge/plotforge/pkg/errors"
)

// DefaultPalette is the palette used when no theme is specified.
const DefaultPalette = "ocean"

// Built-in palettes. Each carries the required primary/secondary pair plus
// axis, grid, and label shades tuned for transparent-background composition.
var palettes = map[string]ColorMapping{
	"ocean": {
		KeyPrimary:   "#2596be",
		KeySecondary: "#eab676",
		KeyAxis:      "#3b4652",
		KeyGrid:      "#c4d8e2",
		KeyLabel:     "#2b3440",
	},
	"sunset": {
		KeyPrimary:   "#e76f51",
		KeySecondary: "#f4a261",
		KeyAxis:      "#4a3f3a",
		KeyGrid:      "#f0d5c9",
		KeyLabel:     "#3d3430",
	},
	"forest": {
		KeyPrimary:   "#2d6a4f",
		KeySecondary: "#95d5b2",
		KeyAxis:      "#344e41",
		KeyGrid:      "#cde5d7",
		KeyLabel:     "#2a3d33",
	},
	"berry": {
		KeyPrimary:   "#7a1421",
		KeySecondary: "#d4af37",
		KeyAxis:      "#4a2028",
		KeyGrid:      "#e8ccd1",
		KeyLabel:     "#3a171d",
	},
	"mono": {
		KeyPrimary:   "#222222",
		KeySecondary: "#888888",
		KeyAxis:      "#444444",
		KeyGrid:      "#dddddd",
		KeyLabel:     "#222222",
	},
}

// Palette is a Provider backed by a built-in palette.
type Palette struct {
	name   string
	colors ColorMapping
}

// Builtin returns the named built-in palette.
func Builtin(name string) (*Palette, error) {
	if err := errors.ValidateThemeName(name); err != nil {
		return nil, err
	}
	colors, ok := palettes[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeThemeNotFound, "unknown palette: %q", name)
	}
	return &Palette{name: name, colors: colors}, nil
}

// Default returns the default built-in palette.
func Default() *Palette {
	p, _ := Builtin(DefaultPalette)
	return p
}

// Names returns the built-in palette names in sorted order.
func Names() []string {
	names := make([]string, 0, len(palettes))
	for n := range palettes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Name identifies the provider source.
func (p *Palette) Name() string { return "palette:" + p.name }

// Colors returns the requested named colors as a fresh mapping.
func (p *Palette) Colors(names ...string) (ColorMapping, error) {
	if len(names) == 0 {
		return p.colors.Clone(), nil
	}
	out := make(ColorMapping, len(names))
	for _, n := range names {
		v, ok := p.colors[n]
		if !ok {
			return nil, errors.New(errors.ErrCodeMissingColorKey, "palette %q missing key %q", p.name, n)
		}
		out[n] = v
	}
	return out, nil
}

var _ Provider = (*Palette)(nil)
