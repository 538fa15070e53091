// Package color wraps hex color handling for palette entries.
package color

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// IsValidHex reports whether s parses as a hex color (#rgb or #rrggbb).
func IsValidHex(s string) bool {
	_, err := colorful.Hex(s)
	return err == nil
}

// Normalize lowercases a hex color and expands the short #rgb form.
// Invalid input is returned unchanged; callers render what they got.
func Normalize(s string) string {
	c, err := colorful.Hex(s)
	if err != nil {
		return s
	}
	return c.Hex()
}

// Luminance returns the relative luminance of a hex color in [0, 1].
// Invalid colors report 0.
func Luminance(s string) float64 {
	c, err := colorful.Hex(s)
	if err != nil {
		return 0
	}
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// ContrastForeground picks black or white text for a given background,
// so labels rendered over palette tiles stay readable.
func ContrastForeground(background string) string {
	if Luminance(background) > 0.179 {
		return "#000000"
	}
	return "#ffffff"
}

// EqualHex compares two hex colors ignoring case and short/long form.
func EqualHex(a, b string) bool {
	return strings.EqualFold(Normalize(a), Normalize(b))
}
