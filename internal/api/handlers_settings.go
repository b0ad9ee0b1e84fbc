package api

import (
	"net/http"

	"github.com/dgallion1/infographic/internal/settings"
)

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	prefs, err := s.prefs.Load()
	if err != nil {
		s.log.Error("load settings", "error", err)
		jsonError(w, "failed to load settings", "", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}

func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	var prefs settings.Settings
	if err := decodeJSON(w, r, 64<<10, &prefs); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.prefs.Save(prefs); err != nil {
		s.log.Error("save settings", "error", err)
		jsonError(w, "failed to save settings", "", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}
