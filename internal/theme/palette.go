package theme

import (
	"fmt"
	"image/color"
)

var (
	white = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	black = color.NRGBA{A: 0xff}
)

// BorderSpec is the resolved container border.
type BorderSpec struct {
	Width  float64
	Dashed bool
	Color  color.NRGBA
}

// None reports whether no border is drawn.
func (b BorderSpec) None() bool { return b.Width == 0 }

// CSS renders the border as a CSS shorthand.
func (b BorderSpec) CSS() string {
	if b.None() {
		return "none"
	}
	kind := "solid"
	if b.Dashed {
		kind = "dashed"
	}
	return fmt.Sprintf("%gpx %s rgba(%d,%d,%d,%.3g)", b.Width, kind, b.Color.R, b.Color.G, b.Color.B, Opacity(b.Color))
}

// Palette is everything a renderer needs from the style, resolved once per
// render.
type Palette struct {
	DarkBackground bool
	DarkAccent     bool

	Background color.NRGBA
	Primary    color.NRGBA
	Accent     color.NRGBA
	CardFill   color.NRGBA

	Title           color.NRGBA
	Subtitle        color.NRGBA
	CardTitle       color.NRGBA
	CardDescription color.NRGBA
	CardLabel       color.NRGBA
	Icon            color.NRGBA
	IconWell        color.NRGBA
	OnPrimary       color.NRGBA

	// Connector and decoration colors.
	Chevron  color.NRGBA
	Spine    color.NRGBA
	HubLine  color.NRGBA
	Ring     color.NRGBA
	NodeRing color.NRGBA

	Radius float64
	Border BorderSpec
}

// Resolve derives the palette from s.
//
// Two darkness decisions are made independently: the page background uses the
// fixed allow-list, the accent uses the luminance formula. Cards are filled
// with the accent, so card text follows the accent decision while the title
// and subtitle follow the background decision.
func Resolve(s Style) Palette {
	s = s.WithDefaults()
	darkBg := IsDarkBackground(s.BackgroundColor)
	darkAccent := IsDark(s.AccentColor)

	bg, ok := ParseHex(s.BackgroundColor)
	if !ok {
		bg = MustHex(BrandBackground)
	}
	accent, ok := ParseHex(s.AccentColor)
	if !ok {
		accent = MustHex(BrandAccent)
	}
	primary := MustHex(BrandPrimary)
	text := MustHex(BrandText)

	p := Palette{
		DarkBackground:  darkBg,
		DarkAccent:      darkAccent,
		Background:      bg,
		Primary:         primary,
		Accent:          accent,
		CardFill:        accent,
		Title:           pick(darkBg, white, text),
		Subtitle:        pick(darkBg, MustHex(BrandTaupe), MustHex(BrandMuted)),
		CardTitle:       pick(darkAccent, white, text),
		CardDescription: pick(darkAccent, MustHex(BrandTaupe), MustHex(BrandSlate)),
		CardLabel:       pick(darkAccent, MustHex(BrandAccent), MustHex(BrandMuted)),
		Icon:            pick(darkAccent, white, primary),
		IconWell:        pick(darkAccent, WithAlpha(white, 0.1), WithAlpha(black, 0.1)),
		OnPrimary:       white,
		Chevron:         pick(darkBg, white, primary),
		Spine:           pick(darkBg, WithAlpha(white, 0.1), MustHex(BrandBackground)),
		HubLine:         pick(darkBg, WithAlpha(white, 0.15), primary),
		Ring:            pick(darkBg, WithAlpha(white, 0.1), withAlpha8(MustHex(BrandSlate), 0x08)),
		NodeRing:        pick(darkBg, WithAlpha(white, 0.2), white),
		Radius:          s.CornerStyle.Radius(),
	}

	borderColor := p.BorderColor()
	switch s.BorderVariant {
	case BorderNone:
		p.Border = BorderSpec{}
	case BorderDashed:
		p.Border = BorderSpec{Width: 1, Dashed: true, Color: borderColor}
	default:
		p.Border = BorderSpec{Width: 1, Color: borderColor}
	}
	return p
}

// BorderColor is the border color regardless of variant, used for
// connectors that are always drawn.
func (p Palette) BorderColor() color.NRGBA {
	if p.DarkBackground {
		return WithAlpha(white, 0.1)
	}
	return withAlpha8(MustHex(BrandSlate), 0x20)
}

// StepAccent alternates by position: even indices use the brand primary, odd
// indices the user's accent.
func (p Palette) StepAccent(index int) color.NRGBA {
	if index%2 == 0 {
		return p.Primary
	}
	return p.Accent
}

func pick(cond bool, a, b color.NRGBA) color.NRGBA {
	if cond {
		return a
	}
	return b
}

func withAlpha8(c color.NRGBA, a uint8) color.NRGBA {
	c.A = a
	return c
}
