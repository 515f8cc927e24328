package theme

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/plotforge/plotforge/pkg/errors"
)

// Darken blends a hex color toward black in Lab space.
// amount is in [0, 1]; 0 returns the input, 1 returns black.
func Darken(hex string, amount float64) (string, error) {
	return blend(hex, colorful.Color{R: 0, G: 0, B: 0}, amount)
}

// Lighten blends a hex color toward white in Lab space.
// amount is in [0, 1]; 0 returns the input, 1 returns white.
func Lighten(hex string, amount float64) (string, error) {
	return blend(hex, colorful.Color{R: 1, G: 1, B: 1}, amount)
}

func blend(hex string, target colorful.Color, amount float64) (string, error) {
	if err := errors.ValidateHexColor(hex); err != nil {
		return "", err
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidColor, err, "parse color %q", hex)
	}
	if amount < 0 {
		amount = 0
	}
	if amount > 1 {
		amount = 1
	}
	return c.BlendLab(target, amount).Clamped().Hex(), nil
}

// Derivation amounts for optional keys, relative to primary.
const (
	axisDarken  = 0.35
	gridLighten = 0.72
	labelDarken = 0.50
)

// Derived returns a mapping with axis, grid, and label shades filled in
// from primary when absent. The input mapping is not modified; required
// keys must already be present and valid.
func Derived(colors ColorMapping) (ColorMapping, error) {
	primary, ok := colors[KeyPrimary]
	if !ok {
		return nil, errors.New(errors.ErrCodeMissingColorKey, "color mapping missing key %q", KeyPrimary)
	}

	out := colors.Clone()
	fill := func(key string, derive func(string, float64) (string, error), amount float64) error {
		if _, ok := out[key]; ok {
			return nil
		}
		shade, err := derive(primary, amount)
		if err != nil {
			return err
		}
		out[key] = shade
		return nil
	}

	if err := fill(KeyAxis, Darken, axisDarken); err != nil {
		return nil, err
	}
	if err := fill(KeyGrid, Lighten, gridLighten); err != nil {
		return nil, err
	}
	if err := fill(KeyLabel, Darken, labelDarken); err != nil {
		return nil, err
	}
	return out, nil
}
