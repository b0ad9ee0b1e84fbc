package theme

import "image/color"

// Theme is the application chrome mode. It is passed explicitly to whatever
// draws chrome; there is no process-wide theme.
type Theme int

const (
	Light Theme = iota
	Dark
)

// FromDarkMode maps the persisted dark-mode preference to a Theme.
func FromDarkMode(dark bool) Theme {
	if dark {
		return Dark
	}
	return Light
}

func (t Theme) String() string {
	if t == Dark {
		return "dark"
	}
	return "light"
}

// Chrome colors surrounding an infographic on a page.
type Chrome struct {
	Page color.NRGBA
	Text color.NRGBA
	Rule color.NRGBA
}

func (t Theme) Chrome() Chrome {
	if t == Dark {
		return Chrome{
			Page: MustHex("#0F1419"),
			Text: MustHex(BrandBackground),
			Rule: WithAlpha(white, 0.1),
		}
	}
	return Chrome{
		Page: MustHex(BrandBackground),
		Text: MustHex(BrandText),
		Rule: withAlpha8(MustHex(BrandSlate), 0x20),
	}
}
