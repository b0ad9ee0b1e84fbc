package theme

import (
	"fmt"

	"github.com/dgallion1/infographic/internal/apperr"
)

type CornerStyle string

const (
	CornerSharp     CornerStyle = "sharp"
	CornerSoft      CornerStyle = "soft"
	CornerExtraSoft CornerStyle = "extra-soft"
)

// Radius in logical pixels. Unknown styles are square.
func (c CornerStyle) Radius() float64 {
	switch c {
	case CornerSoft:
		return 12
	case CornerExtraSoft:
		return 40
	default:
		return 0
	}
}

func (c CornerStyle) Valid() bool {
	return c == CornerSharp || c == CornerSoft || c == CornerExtraSoft
}

type BorderVariant string

const (
	BorderSolid  BorderVariant = "solid"
	BorderDashed BorderVariant = "dashed"
	BorderNone   BorderVariant = "none"
)

func (b BorderVariant) Valid() bool {
	return b == BorderSolid || b == BorderDashed || b == BorderNone
}

// Style is the user-controlled visual configuration. Colors are free-form
// hex strings; malformed values never fail a render.
type Style struct {
	AccentColor     string        `json:"accentColor" yaml:"accentColor" toml:"accent_color"`
	BackgroundColor string        `json:"backgroundColor" yaml:"backgroundColor" toml:"background_color"`
	CornerStyle     CornerStyle   `json:"cornerStyle" yaml:"cornerStyle" toml:"corner_style"`
	BorderVariant   BorderVariant `json:"borderVariant" yaml:"borderVariant" toml:"border_variant"`
}

func DefaultStyle() Style {
	return Style{
		AccentColor:     BrandAccent,
		BackgroundColor: BrandBackground,
		CornerStyle:     CornerSoft,
		BorderVariant:   BorderSolid,
	}
}

// WithDefaults fills empty fields from DefaultStyle.
func (s Style) WithDefaults() Style {
	d := DefaultStyle()
	if s.AccentColor == "" {
		s.AccentColor = d.AccentColor
	}
	if s.BackgroundColor == "" {
		s.BackgroundColor = d.BackgroundColor
	}
	if s.CornerStyle == "" {
		s.CornerStyle = d.CornerStyle
	}
	if s.BorderVariant == "" {
		s.BorderVariant = d.BorderVariant
	}
	return s
}

// Validate rejects unknown enum values. Colors are not checked.
func (s Style) Validate() error {
	if !s.CornerStyle.Valid() {
		return apperr.New(apperr.Invalid, apperr.CodeInvalidRequest, fmt.Sprintf("unknown corner style %q", s.CornerStyle))
	}
	if !s.BorderVariant.Valid() {
		return apperr.New(apperr.Invalid, apperr.CodeInvalidRequest, fmt.Sprintf("unknown border variant %q", s.BorderVariant))
	}
	return nil
}
