// Package apperr defines the error taxonomy shared by parsing, rendering and export.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure. Every kind is terminal for the request that produced it.
type Kind int

const (
	KindUnknown Kind = iota
	InputTooShort
	UpstreamUnavailable
	UpstreamMalformed
	NoStepsFound
	ExportFailed
	Busy
	Invalid
)

var kindNames = map[Kind]string{
	KindUnknown:         "unknown",
	InputTooShort:       "input_too_short",
	UpstreamUnavailable: "upstream_unavailable",
	UpstreamMalformed:   "upstream_malformed",
	NoStepsFound:        "no_steps_found",
	ExportFailed:        "export_failed",
	Busy:                "busy",
	Invalid:             "invalid",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Machine codes carried on the wire in {error, code} bodies.
const (
	CodeInputTooShort        = "INPUT_TOO_SHORT"
	CodeNoStepsFound         = "NO_STEPS_FOUND"
	CodeEmptyResponse        = "EMPTY_RESPONSE"
	CodeMalformedResponse    = "MALFORMED_RESPONSE"
	CodeParsingFailed        = "PARSING_FAILED"
	CodeMisconfigured        = "SERVICE_MISCONFIGURED"
	CodeExportFailed         = "EXPORT_FAILED"
	CodeGenerationInProgress = "GENERATION_IN_PROGRESS"
	CodeExportInProgress     = "EXPORT_IN_PROGRESS"
	CodeInvalidRequest       = "INVALID_REQUEST"
	CodeServerBusy           = "SERVER_BUSY"
)

// User-facing messages.
const (
	MsgEmptyInput        = "Clarity requires input. Please provide content for your infographic."
	MsgInputTooShort     = "Input text is too short to generate an infographic. Please provide more detail."
	MsgNoSteps           = "Could not identify distinct process steps in your text."
	MsgEmptyResponse     = "The AI model returned an empty response. Please try with different text."
	MsgParsingFailed     = "Our AI engine encountered an issue processing your request. Please try again."
	MsgTransportFallback = "Our transformation engine hit a temporary hurdle. Please try again."
	MsgMisconfigured     = "Server configuration error"
	MsgInvalidAPIKey     = "Invalid API key configured. Please check server settings."
	MsgNothingToExport   = "No infographic to export. Please generate one first."
	MsgGenerationBusy    = "A generation is already in progress."
	MsgExportBusy        = "An export is already in progress."
	MsgServerBusy        = "Server is busy. Please try again shortly."
	MsgShuttingDown      = "Server is shutting down. Please try again shortly."
)

// Error is a classified failure with a user-facing message.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error of the same kind, and the same code when the target sets one.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Code == "" || t.Code == e.Code
}

// HTTPStatus maps the kind to the status code used on the wire.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case InputTooShort, NoStepsFound, Invalid:
		return http.StatusBadRequest
	case Busy:
		if e.Code == CodeServerBusy {
			return http.StatusServiceUnavailable
		}
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func New(kind Kind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

func Wrap(kind Kind, code, msg string, err error) *Error {
	return &Error{Kind: kind, Code: code, Message: msg, Err: err}
}

// As extracts the *Error from an error chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf reports the kind of err, or KindUnknown when err is not classified.
func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return KindUnknown
}

// Message returns the user-facing message for err. Unclassified errors get
// the generic engine message so internal details never reach the user.
func Message(err error) string {
	if e, ok := As(err); ok {
		return e.Message
	}
	return MsgParsingFailed
}

// Export returns the ExportFailed error for a format label such as "PNG".
func Export(format string, err error) *Error {
	return Wrap(ExportFailed, CodeExportFailed,
		fmt.Sprintf("Export to %s failed. Please try again or use a different format.", format), err)
}

// Sentinels for errors.Is checks.
var (
	ErrInputTooShort       = &Error{Kind: InputTooShort}
	ErrUpstreamUnavailable = &Error{Kind: UpstreamUnavailable}
	ErrUpstreamMalformed   = &Error{Kind: UpstreamMalformed}
	ErrNoStepsFound        = &Error{Kind: NoStepsFound}
	ErrExportFailed        = &Error{Kind: ExportFailed}
	ErrBusy                = &Error{Kind: Busy}
	ErrInvalid             = &Error{Kind: Invalid}
)
