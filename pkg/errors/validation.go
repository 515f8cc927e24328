package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// hexColorRegex matches 3- and 6-digit hex color values with a leading '#'.
var hexColorRegex = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateHexColor validates a hex color string (e.g. "#2596be" or "#fff").
func ValidateHexColor(value string) error {
	if value == "" {
		return New(ErrCodeInvalidColor, "color value cannot be empty")
	}
	if !hexColorRegex.MatchString(value) {
		return New(ErrCodeInvalidColor, "invalid hex color: %q", value)
	}
	return nil
}

// themeNameRegex matches valid theme names: lowercase alphanumerics and dashes.
var themeNameRegex = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// ValidateThemeName validates a theme name for lookup and file naming safety.
func ValidateThemeName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidTheme, "theme name cannot be empty")
	}
	if len(name) > 64 {
		return New(ErrCodeInvalidTheme, "theme name too long (max 64 characters)")
	}
	if !themeNameRegex.MatchString(name) {
		return New(ErrCodeInvalidTheme, "invalid theme name: %q", name)
	}
	return nil
}

// ValidateColorKey validates a symbolic color key (e.g. "primary").
// Keys are short identifiers used to look up colors in a mapping.
func ValidateColorKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidColor, "color key cannot be empty")
	}
	if len(key) > 64 {
		return New(ErrCodeInvalidColor, "color key too long (max 64 characters)")
	}
	for _, r := range key {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidColor, "color key contains invalid characters: %q", key)
		}
	}
	return nil
}

// ValidatePath validates a file path supplied by an API caller.
// It prevents path traversal and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}
