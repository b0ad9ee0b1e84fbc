package api

import (
	"net/http"

	"github.com/dgallion1/infographic/internal/export"
	"github.com/dgallion1/infographic/internal/icon"
	"github.com/dgallion1/infographic/internal/ingest"
	"github.com/dgallion1/infographic/internal/layout"
	"github.com/dgallion1/infographic/internal/theme"
)

// catalog lists every choice a client can offer.
type catalog struct {
	Brand            string          `json:"brand"`
	Layouts          []layout.Info   `json:"layouts"`
	DefaultLayout    layout.Kind     `json:"default_layout"`
	AccentColors     []theme.Swatch  `json:"accent_colors"`
	BackgroundColors []theme.Swatch  `json:"background_colors"`
	CornerOptions    []theme.Option  `json:"corner_options"`
	BorderOptions    []theme.Option  `json:"border_options"`
	DefaultStyle     theme.Style     `json:"default_style"`
	Icons            []string        `json:"icons"`
	Formats          []export.Format `json:"formats"`
	Extensions       []string        `json:"upload_extensions"`
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, catalog{
		Brand:            s.cfg.BrandName,
		Layouts:          layout.Kinds(),
		DefaultLayout:    layout.Default,
		AccentColors:     theme.AccentColors,
		BackgroundColors: theme.BackgroundColors,
		CornerOptions:    theme.CornerOptions,
		BorderOptions:    theme.BorderOptions,
		DefaultStyle:     theme.DefaultStyle(),
		Icons:            icon.Names(),
		Formats:          export.Formats(),
		Extensions:       ingest.Extensions(),
	})
}
