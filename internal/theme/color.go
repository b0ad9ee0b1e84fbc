// Package theme resolves user style choices into concrete colors, radii and
// border specs, and decides light-on-dark versus dark-on-light text.
package theme

import (
	"fmt"
	"image/color"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ParseHex parses "#rrggbb" or "rrggbb". Any other length or a non-hex digit
// reports ok=false.
func ParseHex(s string) (color.NRGBA, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.NRGBA{}, false
	}
	for i := 0; i < len(s); i++ {
		if !isHexDigit(s[i]) {
			return color.NRGBA{}, false
		}
	}
	c, err := colorful.Hex("#" + s)
	if err != nil {
		return color.NRGBA{}, false
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, true
}

// MustHex parses a known-good constant.
func MustHex(s string) color.NRGBA {
	c, ok := ParseHex(s)
	if !ok {
		panic(fmt.Sprintf("theme: bad color constant %q", s))
	}
	return c
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

// Luminance is 0.299R + 0.587G + 0.114B over components in [0,1].
func Luminance(c color.NRGBA) float64 {
	return (0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)) / 255
}

// IsDark applies the luminance formula. Malformed input is treated as light.
func IsDark(hex string) bool {
	c, ok := ParseHex(hex)
	if !ok {
		return false
	}
	return Luminance(c) < 0.5
}

// darkBackgrounds is the fixed allow-list consulted for the page background.
var darkBackgrounds = map[string]bool{
	"#1a2633": true,
	"#818181": true,
}

// IsDarkBackground reports whether hex is one of the known dark backgrounds.
// The comparison is exact and case-insensitive.
func IsDarkBackground(hex string) bool {
	return darkBackgrounds[strings.ToLower(hex)]
}

// Hex formats c as "#rrggbb", ignoring alpha.
func Hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Opacity returns the alpha channel in [0,1].
func Opacity(c color.NRGBA) float64 {
	return float64(c.A) / 255
}

// WithAlpha returns c with its alpha replaced by a (0..1).
func WithAlpha(c color.NRGBA, a float64) color.NRGBA {
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	c.A = uint8(a*255 + 0.5)
	return c
}

// Blend mixes a toward b by t in RGB space, used for gradient sampling.
func Blend(a, b color.NRGBA, t float64) color.NRGBA {
	ca := colorful.Color{R: float64(a.R) / 255, G: float64(a.G) / 255, B: float64(a.B) / 255}
	cb := colorful.Color{R: float64(b.R) / 255, G: float64(b.G) / 255, B: float64(b.B) / 255}
	r, g, bl := ca.BlendRgb(cb, t).Clamped().RGB255()
	alpha := float64(a.A) + (float64(b.A)-float64(a.A))*t
	return color.NRGBA{R: r, G: g, B: bl, A: uint8(alpha + 0.5)}
}
