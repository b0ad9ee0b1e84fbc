package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dgallion1/infographic/internal/config"
	"github.com/dgallion1/infographic/internal/extract"
	"github.com/dgallion1/infographic/internal/pipeline"
	"github.com/dgallion1/infographic/internal/session"
	"github.com/dgallion1/infographic/internal/settings"
)

// Server is the HTTP API server.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	sessions     *session.Store
	stats        *extract.LLMStats
	prefs        settings.Store
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server. stats may be nil.
func NewServer(orch *pipeline.Orchestrator, sessions *session.Store, stats *extract.LLMStats, prefs settings.Store, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		sessions:     sessions,
		stats:        stats,
		prefs:        prefs,
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		jsonError(w, "Method not allowed", "", http.StatusMethodNotAllowed)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		jsonError(w, "not found", "", http.StatusNotFound)
	})

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints. Auth is skipped when no key is configured.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Post("/api/generate-infographic", s.handleGenerate)
		r.Post("/api/render", s.handleRender)
		r.Post("/api/ingest", s.handleIngest)
		r.Get("/api/catalog", s.handleCatalog)
		r.Get("/api/settings", s.handleGetSettings)
		r.Put("/api/settings", s.handlePutSettings)
		r.Get("/api/stats/llm", s.handleLLMStats)
		r.Get("/api/tasks/{taskID}", s.handleTaskStatus)

		r.Route("/api/sessions", func(r chi.Router) {
			r.Post("/", s.handleCreateSession)
			r.Route("/{sessionID}", func(r chi.Router) {
				r.Get("/", s.handleGetSession)
				r.Delete("/", s.handleDeleteSession)
				r.Post("/generate", s.handleSessionGenerate)
				r.Post("/reset", s.handleSessionReset)
				r.Put("/style", s.handleSessionStyle)
				r.Put("/layout", s.handleSessionLayout)
				r.Put("/viewport", s.handleSessionViewport)
				r.Post("/events", s.handleSessionEvent)
				r.Get("/export/{format}", s.handleSessionExport)
				r.Get("/svg", s.handleSessionSVG)
			})
		})
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
