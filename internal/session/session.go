// Package session holds the state of one user's workflow: the current
// document, style and layout, the workflow phase, and the single in-flight
// generation and export.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dgallion1/infographic/internal/apperr"
	"github.com/dgallion1/infographic/internal/document"
	"github.com/dgallion1/infographic/internal/export"
	"github.com/dgallion1/infographic/internal/layout"
	"github.com/dgallion1/infographic/internal/scene"
	"github.com/dgallion1/infographic/internal/theme"
)

// Session is safe for concurrent use. The document, style and layout are
// replaced wholesale, never mutated in place.
type Session struct {
	mu sync.Mutex

	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time

	state     State
	doc       *document.Document
	style     theme.Style
	layout    layout.Kind
	viewport  float64
	token     uint64
	lastErr   error
	exporting bool
}

func New() *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
		state:     Initial,
		style:     theme.DefaultStyle(),
		layout:    layout.Default,
		viewport:  layout.DefaultViewport,
	}
}

// BeginGeneration starts a parse and returns its token. Only one parse may be
// outstanding.
func (s *Session) BeginGeneration() (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := Transition(s.state, Event{Type: EventGenerationStarted})
	if err != nil {
		return 0, apperr.New(apperr.Busy, apperr.CodeGenerationInProgress, apperr.MsgGenerationBusy)
	}
	s.token++
	s.state = next
	s.lastErr = nil
	s.touch()
	return s.token, nil
}

// CompleteGeneration installs doc if token is still current. A result for a
// superseded request is dropped and false is returned.
func (s *Session) CompleteGeneration(token uint64, doc *document.Document) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.token || doc == nil {
		return false
	}
	next, err := Transition(s.state, Event{Type: EventGenerationCompleted})
	if err != nil {
		return false
	}
	s.state = next
	s.doc = doc
	s.touch()
	return true
}

// FailGeneration records err if token is still current. The prior document
// is kept.
func (s *Session) FailGeneration(token uint64, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.token {
		return false
	}
	next, terr := Transition(s.state, Event{Type: EventGenerationFailed})
	if terr != nil {
		return false
	}
	s.state = next
	s.lastErr = err
	s.touch()
	return true
}

// Token is the current generation token.
func (s *Session) Token() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Reset clears the document and error and supersedes any outstanding parse.
// Style and layout are kept.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token++
	s.state, _ = Transition(s.state, Event{Type: EventReset})
	s.doc = nil
	s.lastErr = nil
	s.touch()
}

func (s *Session) SetStyle(style theme.Style) error {
	style = style.WithDefaults()
	if err := style.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.style = style
	s.touch()
	return nil
}

// SetLayout selects an arrangement; unknown identifiers select the default.
func (s *Session) SetLayout(kind string) layout.Kind {
	k := layout.ParseKind(kind)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.layout = k
	s.touch()
	return k
}

func (s *Session) SetViewport(width float64) error {
	if width <= 0 {
		return apperr.New(apperr.Invalid, apperr.CodeInvalidRequest, "viewport must be positive")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewport = width
	s.touch()
	return nil
}

// Dispatch applies a navigation event. Generation events are driven by
// BeginGeneration and its completions and are rejected here.
func (s *Session) Dispatch(ev Event) error {
	switch ev.Type {
	case EventGenerationStarted, EventGenerationCompleted, EventGenerationFailed:
		return apperr.New(apperr.Invalid, apperr.CodeInvalidRequest, "generation events cannot be dispatched directly")
	case EventReset:
		s.Reset()
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := Transition(s.state, ev)
	if err != nil {
		return err
	}
	s.state = next
	s.touch()
	return nil
}

// Document returns the current document, or nil.
func (s *Session) Document() *document.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc
}

// Scene renders the current document with the current style and layout.
func (s *Session) Scene() (*scene.Scene, error) {
	s.mu.Lock()
	doc, style, kind, vp := s.doc, s.style, s.layout, s.viewport
	s.mu.Unlock()
	if doc == nil {
		return nil, apperr.New(apperr.ExportFailed, apperr.CodeExportFailed, apperr.MsgNothingToExport)
	}
	return layout.Render(doc, style, kind, layout.Options{Viewport: vp})
}

// BeginExport claims the session's export slot. The returned func releases it.
func (s *Session) BeginExport() (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return nil, apperr.New(apperr.ExportFailed, apperr.CodeExportFailed, apperr.MsgNothingToExport)
	}
	if s.exporting {
		return nil, apperr.New(apperr.Busy, apperr.CodeExportInProgress, apperr.MsgExportBusy)
	}
	s.exporting = true
	return func() {
		s.mu.Lock()
		s.exporting = false
		s.mu.Unlock()
	}, nil
}

// Export renders and encodes the live state. It returns the bytes and a
// timestamped filename.
func (s *Session) Export(format export.Format, opts export.Options, now time.Time) ([]byte, string, error) {
	release, err := s.BeginExport()
	if err != nil {
		return nil, "", err
	}
	defer release()

	sc, err := s.Scene()
	if err != nil {
		return nil, "", err
	}
	data, err := export.Encode(sc, format, opts)
	if err != nil {
		return nil, "", err
	}
	return data, export.Filename(opts.Brand, format, now), nil
}

// ErrorBody is the last failure in wire form.
type ErrorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Snapshot is a read-only, JSON-safe copy of session state.
type Snapshot struct {
	ID        string             `json:"session_id"`
	State     State              `json:"state"`
	Document  *document.Document `json:"document,omitempty"`
	Style     theme.Style        `json:"style"`
	Layout    layout.Kind        `json:"layout"`
	Viewport  float64            `json:"viewport"`
	Error     *ErrorBody         `json:"error,omitempty"`
	Exporting bool               `json:"exporting"`
	UpdatedAt time.Time          `json:"updated_at"`
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		ID:        s.ID,
		State:     s.state,
		Document:  s.doc,
		Style:     s.style,
		Layout:    s.layout,
		Viewport:  s.viewport,
		Exporting: s.exporting,
		UpdatedAt: s.UpdatedAt,
	}
	if s.lastErr != nil {
		snap.Error = &ErrorBody{Error: apperr.Message(s.lastErr)}
		if e, ok := apperr.As(s.lastErr); ok {
			snap.Error.Code = e.Code
		}
	}
	return snap
}

func (s *Session) idle(now time.Time, ttl time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.state.Processing && !s.exporting && now.Sub(s.UpdatedAt) > ttl
}

func (s *Session) touch() {
	s.UpdatedAt = time.Now()
}
