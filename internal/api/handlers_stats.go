package api

import (
	"net/http"
)

func (s *Server) handleLLMStats(w http.ResponseWriter, r *http.Request) {
	if s.stats == nil {
		jsonError(w, "llm stats unavailable", "", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"provider":    s.cfg.LLMProvider,
		"model":       s.cfg.ProviderModel(),
		"queue_depth": s.orchestrator.QueueDepth(),
		"sessions":    s.sessions.Len(),
		"cache_size":  s.orchestrator.Generator().Cache().Len(),
		"stats":       s.stats.Snapshot(),
	})
}
