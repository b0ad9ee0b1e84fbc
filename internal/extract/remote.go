package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dgallion1/infographic/internal/apperr"
	"github.com/dgallion1/infographic/internal/document"
)

// GeneratePath is the parse endpoint served by this service.
const GeneratePath = "/api/generate-infographic"

// RemoteClient parses through a running infographic server instead of
// calling a model directly.
type RemoteClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewRemoteClient(baseURL, apiKey string) *RemoteClient {
	return &RemoteClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 150 * time.Second,
		},
	}
}

// GenerateRequest is the body of POST /api/generate-infographic.
type GenerateRequest struct {
	Text string `json:"text"`
}

// ErrorBody is the {error, code} shape of every failed API response.
type ErrorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

var codeKinds = map[string]apperr.Kind{
	apperr.CodeInputTooShort:        apperr.InputTooShort,
	apperr.CodeNoStepsFound:         apperr.NoStepsFound,
	apperr.CodeEmptyResponse:        apperr.UpstreamMalformed,
	apperr.CodeMalformedResponse:    apperr.UpstreamMalformed,
	apperr.CodeGenerationInProgress: apperr.Busy,
	apperr.CodeInvalidRequest:       apperr.Invalid,
}

// Parse posts text to the server and decodes the document it returns.
func (c *RemoteClient) Parse(ctx context.Context, text string) (*document.Document, error) {
	if err := CheckInput(text); err != nil {
		return nil, err
	}
	body, err := json.Marshal(GenerateRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+GeneratePath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, apperr.Wrap(apperr.UpstreamUnavailable, apperr.CodeParsingFailed, apperr.MsgTransportFallback, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, apperr.Wrap(apperr.UpstreamUnavailable, apperr.CodeParsingFailed, apperr.MsgTransportFallback, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, remoteError(resp.StatusCode, respBody)
	}

	var raw document.Raw
	if err := json.Unmarshal(respBody, &raw); err != nil {
		return nil, apperr.Wrap(apperr.UpstreamMalformed, apperr.CodeMalformedResponse, apperr.MsgParsingFailed,
			fmt.Errorf("decode document: %w", err))
	}
	if len(raw.Steps) == 0 {
		return nil, apperr.New(apperr.NoStepsFound, apperr.CodeNoStepsFound, apperr.MsgNoSteps)
	}
	return document.Normalize(raw)
}

// remoteError maps a failed response to a typed error. Bodies that are empty
// or not JSON get the generic transport message.
func remoteError(status int, body []byte) error {
	var eb ErrorBody
	if err := json.Unmarshal(body, &eb); err != nil || eb.Error == "" {
		return apperr.Wrap(apperr.UpstreamUnavailable, apperr.CodeParsingFailed, apperr.MsgTransportFallback,
			fmt.Errorf("server status %d: %s", status, truncate(string(body), 200)))
	}
	kind, ok := codeKinds[eb.Code]
	if !ok {
		kind = apperr.UpstreamUnavailable
	}
	return apperr.Wrap(kind, eb.Code, eb.Error, fmt.Errorf("server status %d", status))
}

// Close releases resources.
func (c *RemoteClient) Close() {
	c.httpClient.CloseIdleConnections()
}
