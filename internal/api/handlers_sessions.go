package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dgallion1/infographic/internal/apperr"
	"github.com/dgallion1/infographic/internal/export"
	"github.com/dgallion1/infographic/internal/extract"
	"github.com/dgallion1/infographic/internal/session"
	"github.com/dgallion1/infographic/internal/theme"
)

// session resolves the {sessionID} URL parameter, answering 404 itself when
// it is unknown.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *session.Session {
	sess := s.sessions.Get(chi.URLParam(r, "sessionID"))
	if sess == nil {
		jsonError(w, "session not found", "", http.StatusNotFound)
	}
	return sess
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Create()
	if s.cfg.DefaultViewport > 0 {
		if err := sess.SetViewport(s.cfg.DefaultViewport); err != nil {
			s.log.Warn("default viewport rejected", "viewport", s.cfg.DefaultViewport, "error", err)
		}
	}
	writeJSON(w, http.StatusCreated, sess.Snapshot())
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	s.sessions.Delete(sess.ID)
	w.WriteHeader(http.StatusNoContent)
}

// handleSessionGenerate queues a parse for the session and returns the task
// to poll. The session snapshot carries the outcome once it lands.
func (s *Server) handleSessionGenerate(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	var req extract.GenerateRequest
	if err := decodeJSON(w, r, s.cfg.MaxUploadBytes, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := extract.CheckInput(req.Text); err != nil {
		s.writeError(w, r, err)
		return
	}
	task, err := s.orchestrator.Submit(sess, req.Text)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]any{
		"task_id":  task.ID,
		"status":   task.Snapshot().Status,
		"poll_url": fmt.Sprintf("/api/tasks/%s", task.ID),
		"session":  sess.Snapshot(),
	})
}

func (s *Server) handleSessionReset(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	sess.Reset()
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *Server) handleSessionStyle(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	var style theme.Style
	if err := decodeJSON(w, r, 64<<10, &style); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := sess.SetStyle(style); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *Server) handleSessionLayout(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	var req struct {
		Layout string `json:"layout"`
	}
	if err := decodeJSON(w, r, 64<<10, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	sess.SetLayout(req.Layout)
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *Server) handleSessionViewport(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	var req struct {
		Width float64 `json:"width"`
	}
	if err := decodeJSON(w, r, 64<<10, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := sess.SetViewport(req.Width); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *Server) handleSessionEvent(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	var ev session.Event
	if err := decodeJSON(w, r, 64<<10, &ev); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := sess.Dispatch(ev); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

// handleSessionExport encodes the live document, style and layout.
func (s *Server) handleSessionExport(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	format, err := export.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data, filename, err := sess.Export(format, s.exportOptions(), time.Now())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeFile(w, format, filename, data)
}

// handleSessionSVG returns the markup for the clipboard, inline rather than
// as an attachment.
func (s *Server) handleSessionSVG(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	sc, err := sess.Scene()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	markup, err := export.Markup(sc)
	if err != nil {
		s.writeError(w, r, apperr.Export(export.SVG.Label(), err))
		return
	}
	w.Header().Set("Content-Type", export.SVG.ContentType())
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(markup))
}

func (s *Server) handleTaskStatus(w http.ResponseWriter, r *http.Request) {
	task := s.orchestrator.GetTask(chi.URLParam(r, "taskID"))
	if task == nil {
		jsonError(w, "task not found", "", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, task.Snapshot())
}
