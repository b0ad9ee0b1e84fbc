package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dgallion1/infographic/internal/apperr"
)

// errorBody is the wire form of every error response.
type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func jsonError(w http.ResponseWriter, msg, code string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorBody{Error: msg, Code: code})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps err to a status and a user-facing message. Causes are
// logged, never returned.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	e, ok := apperr.As(err)
	if !ok {
		s.log.Error("unclassified error", "path", r.URL.Path, "error", err)
		jsonError(w, apperr.MsgParsingFailed, apperr.CodeParsingFailed, http.StatusInternalServerError)
		return
	}
	if e.HTTPStatus() >= 500 {
		s.log.Error("request failed", "path", r.URL.Path, "kind", e.Kind.String(), "code", e.Code, "error", err)
	}
	jsonError(w, e.Message, e.Code, e.HTTPStatus())
}

// decodeJSON reads a bounded JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, limit int64, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.New(apperr.Invalid, apperr.CodeInvalidRequest, "request body is required")
		}
		return apperr.Wrap(apperr.Invalid, apperr.CodeInvalidRequest, fmt.Sprintf("invalid JSON body: %v", err), err)
	}
	return nil
}
