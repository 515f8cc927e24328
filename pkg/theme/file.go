package theme

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/plotforge/plotforge/pkg/errors"
)

// themeFile is the on-disk TOML representation of a theme.
//
//	name = "corporate"
//
//	[colors]
//	primary   = "#2596be"
//	secondary = "#eab676"
type themeFile struct {
	Name   string            `toml:"name"`
	Colors map[string]string `toml:"colors"`
}

// FromFile loads a theme from a TOML file.
// The file must define a [colors] table with at least the required keys.
func FromFile(path string) (*Static, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "theme file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read theme file %s", path)
	}
	return Parse(data, deriveName(path))
}

// Parse decodes TOML theme data. The fallback name is used when the file
// does not set one.
func Parse(data []byte, fallbackName string) (*Static, error) {
	var tf themeFile
	if err := toml.Unmarshal(data, &tf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTheme, err, "parse theme")
	}

	name := tf.Name
	if name == "" {
		name = fallbackName
	}

	colors := ColorMapping(tf.Colors)
	if len(colors) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidTheme, "theme %q defines no colors", name)
	}
	for _, key := range RequiredKeys {
		if _, ok := colors[key]; !ok {
			return nil, errors.New(errors.ErrCodeMissingColorKey, "theme %q missing required color %q", name, key)
		}
	}

	return NewStatic(name, colors)
}

// deriveName derives a theme name from a file path ("themes/dusk.toml" → "dusk").
func deriveName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
