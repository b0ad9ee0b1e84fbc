// Package extract turns free-form text into a Document by asking a language
// model for structured output. Every implementation validates the input
// before any network call and reports failures as *apperr.Error.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/dgallion1/infographic/internal/apperr"
	"github.com/dgallion1/infographic/internal/document"
)

// MinInputRunes is the shortest input, ignoring whitespace, worth parsing.
const MinInputRunes = 5

// Parser converts text into a Document.
type Parser interface {
	Parse(ctx context.Context, text string) (*document.Document, error)
}

// CheckInput rejects empty or too-short text with InputTooShort.
func CheckInput(text string) error {
	n := 0
	for _, r := range text {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	switch {
	case n == 0:
		return apperr.New(apperr.InputTooShort, apperr.CodeInputTooShort, apperr.MsgEmptyInput)
	case n < MinInputRunes:
		return apperr.New(apperr.InputTooShort, apperr.CodeInputTooShort, apperr.MsgInputTooShort)
	}
	return nil
}

// decodeDocument parses a model's JSON answer into a normalized Document.
func decodeDocument(text string) (*document.Document, error) {
	text = stripCodeBlock(text)
	if text == "" {
		return nil, apperr.New(apperr.UpstreamMalformed, apperr.CodeEmptyResponse, apperr.MsgEmptyResponse)
	}
	var raw document.Raw
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, apperr.Wrap(apperr.UpstreamMalformed, apperr.CodeMalformedResponse, apperr.MsgParsingFailed,
			fmt.Errorf("parse document json: %w (raw: %s)", err, truncate(text, 200)))
	}
	if len(raw.Steps) == 0 {
		return nil, apperr.New(apperr.NoStepsFound, apperr.CodeNoStepsFound, apperr.MsgNoSteps)
	}
	return document.Normalize(raw)
}

var codeBlockRe = regexp.MustCompile("(?s)^```(?:json)?\\s*(.*?)\\s*```$")

func stripCodeBlock(s string) string {
	s = strings.TrimSpace(s)
	if m := codeBlockRe.FindStringSubmatch(s); len(m) > 1 {
		return m[1]
	}
	return s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// RetryableError indicates a transient upstream failure (rate limit or 5xx).
// It is always wrapped in an UpstreamUnavailable *apperr.Error.
type RetryableError struct {
	StatusCode int
	Message    string
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("retryable error (status %d): %s", e.StatusCode, truncate(e.Message, 200))
}

func retryable(status int, body []byte) error {
	return apperr.Wrap(apperr.UpstreamUnavailable, apperr.CodeParsingFailed, apperr.MsgParsingFailed,
		&RetryableError{StatusCode: status, Message: string(body)})
}

// upstreamStatus classifies a non-200 answer from a model API. Errors that
// mention the API key surface as a configuration problem.
func upstreamStatus(provider string, status int, body []byte) error {
	if status == 429 || status >= 500 {
		return retryable(status, body)
	}
	msg := string(body)
	if strings.Contains(msg, "API_KEY") || strings.Contains(strings.ToLower(msg), "api key") || status == 401 || status == 403 {
		return apperr.Wrap(apperr.UpstreamUnavailable, apperr.CodeMisconfigured, apperr.MsgInvalidAPIKey,
			fmt.Errorf("%s api status %d: %s", provider, status, truncate(msg, 200)))
	}
	return apperr.Wrap(apperr.UpstreamUnavailable, apperr.CodeParsingFailed, apperr.MsgParsingFailed,
		fmt.Errorf("%s api status %d: %s", provider, status, truncate(msg, 200)))
}

func transportError(provider string, err error) error {
	return apperr.Wrap(apperr.UpstreamUnavailable, apperr.CodeParsingFailed, apperr.MsgParsingFailed,
		fmt.Errorf("%s api: %w", provider, err))
}

// Misconfigured is the parser used when no provider key is set. Input is
// still validated first, so short input reports InputTooShort.
type Misconfigured struct{}

func (Misconfigured) Parse(_ context.Context, text string) (*document.Document, error) {
	if err := CheckInput(text); err != nil {
		return nil, err
	}
	return nil, apperr.New(apperr.UpstreamUnavailable, apperr.CodeMisconfigured, apperr.MsgMisconfigured)
}
