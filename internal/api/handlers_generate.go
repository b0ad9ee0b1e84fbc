package api

import (
	"net/http"

	"github.com/dgallion1/infographic/internal/extract"
)

// handleGenerate parses text synchronously and answers with the document.
// It is the endpoint RemoteClient talks to.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req extract.GenerateRequest
	if err := decodeJSON(w, r, s.cfg.MaxUploadBytes, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.orchestrator.Generator().Generate(r.Context(), req.Text)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if res.CacheHit {
		w.Header().Set("X-Cache", "hit")
	}
	writeJSON(w, http.StatusOK, res.Document.Raw())
}
