package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dgallion1/infographic/internal/apperr"
	"github.com/dgallion1/infographic/internal/document"
	"github.com/dgallion1/infographic/internal/export"
	"github.com/dgallion1/infographic/internal/layout"
	"github.com/dgallion1/infographic/internal/theme"
)

type renderRequest struct {
	Document document.Raw `json:"document"`
	Style    theme.Style  `json:"style"`
	Layout   string       `json:"layout"`
	Viewport float64      `json:"viewport"`
}

// handleRender lays out and encodes a document without touching any session.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := export.SVG
	if v := r.URL.Query().Get("format"); v != "" {
		f, err := export.ParseFormat(v)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		format = f
	}

	var req renderRequest
	if err := decodeJSON(w, r, s.cfg.MaxUploadBytes, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	doc, err := document.Normalize(req.Document)
	if apperr.KindOf(err) == apperr.UpstreamMalformed {
		err = apperr.New(apperr.Invalid, apperr.CodeInvalidRequest, "document title is required")
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	style := req.Style.WithDefaults()
	if err := style.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}
	vp := req.Viewport
	if vp <= 0 {
		vp = s.cfg.DefaultViewport
	}
	sc, err := layout.Render(doc, style, layout.ParseKind(req.Layout), layout.Options{Viewport: vp})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data, err := export.Encode(sc, format, s.exportOptions())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeFile(w, format, export.Filename(s.cfg.BrandName, format, time.Now()), data)
}

// exportOptions applies the stored theme to HTML page chrome.
func (s *Server) exportOptions() export.Options {
	opts := export.Options{Brand: s.cfg.BrandName}
	if prefs, err := s.prefs.Load(); err == nil {
		opts.Theme = prefs.Theme()
	} else {
		s.log.Warn("load settings", "error", err)
	}
	return opts
}

func writeFile(w http.ResponseWriter, format export.Format, filename string, data []byte) {
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
