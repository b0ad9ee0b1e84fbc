package api

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dgallion1/infographic/internal/chunker"
	"github.com/dgallion1/infographic/internal/ingest"
)

// handleIngest extracts an uploaded file into prompt-ready text. With a
// session_id form field the text is also submitted for generation on that
// session.
func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), "", http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), "", http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !ingest.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), "", http.StatusBadRequest)
		return
	}
	if header.Size > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), "", http.StatusRequestEntityTooLarge)
		return
	}

	tree, err := ingest.Read(file, filename, ingest.Options{
		MaxBytes:          s.cfg.MaxUploadBytes,
		PdftotextFallback: s.cfg.PDFFallbackPdftotext,
	})
	if err != nil {
		s.log.Warn("ingest failed", "filename", filename, "error", err)
		jsonError(w, "could not read "+filename, "", http.StatusUnprocessableEntity)
		return
	}
	if tree.Empty() {
		jsonError(w, "no text found in "+filename, "", http.StatusUnprocessableEntity)
		return
	}
	condensed := chunker.Condense(tree, s.cfg.MaxInputTokens)

	resp := map[string]any{
		"filename":  filename,
		"title":     condensed.Title,
		"text":      condensed.Text,
		"tokens":    condensed.Tokens,
		"truncated": condensed.Truncated,
	}

	sessionID := r.FormValue("session_id")
	if sessionID == "" {
		writeJSON(w, http.StatusOK, resp)
		return
	}
	sess := s.sessions.Get(sessionID)
	if sess == nil {
		jsonError(w, "session not found", "", http.StatusNotFound)
		return
	}
	task, err := s.orchestrator.Submit(sess, condensed.Text)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	resp["task_id"] = task.ID
	resp["poll_url"] = fmt.Sprintf("/api/tasks/%s", task.ID)
	writeJSON(w, http.StatusAccepted, resp)
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	// Remove any path separators that might have survived.
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
