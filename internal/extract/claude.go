package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dgallion1/infographic/internal/apperr"
	"github.com/dgallion1/infographic/internal/document"
)

const anthropicEndpoint = "https://api.anthropic.com/v1/messages"

// ClaudeClient calls the Anthropic Messages API.
type ClaudeClient struct {
	apiKey     string
	model      string
	endpoint   string
	httpClient *http.Client
}

func NewClaudeClient(apiKey, model string) *ClaudeClient {
	return &ClaudeClient{
		apiKey:   apiKey,
		model:    model,
		endpoint: anthropicEndpoint,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system,omitempty"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Parse asks Claude for the document structure of text.
func (c *ClaudeClient) Parse(ctx context.Context, text string) (*document.Document, error) {
	if err := CheckInput(text); err != nil {
		return nil, err
	}
	reqBody := anthropicRequest{
		Model:     c.model,
		MaxTokens: 4096,
		System:    jsonShape,
		Messages: []anthropicMessage{
			{Role: "user", Content: BuildPrompt(text, "")},
		},
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("anthropic-version", "2023-06-01")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, transportError("claude", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, transportError("claude", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, upstreamStatus("claude", resp.StatusCode, respBody)
	}

	var apiResp anthropicResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return nil, apperr.Wrap(apperr.UpstreamMalformed, apperr.CodeMalformedResponse, apperr.MsgParsingFailed,
			fmt.Errorf("decode response: %w", err))
	}
	if apiResp.Error != nil {
		return nil, apperr.Wrap(apperr.UpstreamUnavailable, apperr.CodeParsingFailed, apperr.MsgParsingFailed,
			fmt.Errorf("claude error: %s: %s", apiResp.Error.Type, apiResp.Error.Message))
	}
	if len(apiResp.Content) == 0 {
		return nil, apperr.New(apperr.UpstreamMalformed, apperr.CodeEmptyResponse, apperr.MsgEmptyResponse)
	}
	return decodeDocument(apiResp.Content[0].Text)
}

// Close releases resources.
func (c *ClaudeClient) Close() {
	c.httpClient.CloseIdleConnections()
}
