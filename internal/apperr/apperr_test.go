package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorIsMatchesKind(t *testing.T) {
	err := New(NoStepsFound, CodeNoStepsFound, MsgNoSteps)
	wrapped := fmt.Errorf("generate: %w", err)

	assert.True(t, errors.Is(wrapped, ErrNoStepsFound))
	assert.False(t, errors.Is(wrapped, ErrInputTooShort))
	assert.True(t, errors.Is(wrapped, &Error{Kind: NoStepsFound, Code: CodeNoStepsFound}))
	assert.False(t, errors.Is(wrapped, &Error{Kind: NoStepsFound, Code: CodeEmptyResponse}))
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(UpstreamUnavailable, CodeParsingFailed, MsgParsingFailed, cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Contains(t, err.Error(), "upstream_unavailable")
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{InputTooShort, http.StatusBadRequest},
		{NoStepsFound, http.StatusBadRequest},
		{Invalid, http.StatusBadRequest},
		{Busy, http.StatusConflict},
		{UpstreamUnavailable, http.StatusInternalServerError},
		{UpstreamMalformed, http.StatusInternalServerError},
		{ExportFailed, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.kind, "", "x").HTTPStatus())
		})
	}
}

func TestHTTPStatusServerBusy(t *testing.T) {
	assert.Equal(t, http.StatusServiceUnavailable, New(Busy, CodeServerBusy, MsgServerBusy).HTTPStatus())
	assert.Equal(t, http.StatusConflict, New(Busy, CodeGenerationInProgress, MsgGenerationBusy).HTTPStatus())
}

func TestMessageHidesUnclassifiedDetails(t *testing.T) {
	assert.Equal(t, MsgParsingFailed, Message(errors.New("dial tcp: secret-host:443")))
	assert.Equal(t, MsgNoSteps, Message(New(NoStepsFound, CodeNoStepsFound, MsgNoSteps)))
}

func TestExport(t *testing.T) {
	err := Export("PNG", errors.New("encoder"))
	require.Equal(t, ExportFailed, KindOf(err))
	assert.Equal(t, "Export to PNG failed. Please try again or use a different format.", err.Message)
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
}
