package theme

// Brand palette.
const (
	BrandName       = "NovaViA"
	BrandPrimary    = "#034F80"
	BrandAccent     = "#8F9185"
	BrandBackground = "#EEEDE9"
	BrandText       = "#1A2633"
	BrandMuted      = "#818181"
	BrandSlate      = "#2E3B4A"
	BrandTaupe      = "#E4DFD9"
)

// Swatch is a selectable preset color.
type Swatch struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Value string `json:"value"`
}

var AccentColors = []Swatch{
	{ID: "ocean", Label: "Ocean Blue", Value: "#034F80"},
	{ID: "earth", Label: "Earthy Green", Value: "#8F9185"},
	{ID: "navy", Label: "Midnight Navy", Value: "#1A2633"},
	{ID: "blue-grey", Label: "Blue Grey", Value: "#2E3B4A"},
	{ID: "taupe", Label: "Gentle Taupe", Value: "#E4DFD9"},
}

var BackgroundColors = []Swatch{
	{ID: "white", Label: "Pure White", Value: "#ffffff"},
	{ID: "offwhite", Label: "Soft Off-White", Value: "#EEEDE9"},
	{ID: "taupe", Label: "Gentle Taupe", Value: "#E4DFD9"},
	{ID: "navy", Label: "Midnight Navy", Value: "#1A2633"},
	{ID: "grey", Label: "Sleek Gray", Value: "#818181"},
}

// Option describes a named enum value for pickers.
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

var CornerOptions = []Option{
	{ID: string(CornerSharp), Label: "Confident"},
	{ID: string(CornerSoft), Label: "Purposeful"},
	{ID: string(CornerExtraSoft), Label: "Compassionate"},
}

var BorderOptions = []Option{
	{ID: string(BorderSolid), Label: "Bold"},
	{ID: string(BorderDashed), Label: "Intentional"},
	{ID: string(BorderNone), Label: "Minimalist"},
}

// LookupSwatch finds a preset by ID in list.
func LookupSwatch(list []Swatch, id string) (Swatch, bool) {
	for _, s := range list {
		if s.ID == id {
			return s, true
		}
	}
	return Swatch{}, false
}
