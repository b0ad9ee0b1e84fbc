package extract

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/dgallion1/infographic/internal/apperr"
)

const launchPlanJSON = `{"title":"Launch Plan","steps":[{"id":"1","number":1,"title":"Plan","description":"Define scope","iconName":"Target"},{"id":"2","number":2,"title":"Build","description":"Implement","iconName":"Zap"}]}`

func TestCheckInput(t *testing.T) {
	tests := []struct {
		name string
		in   string
		msg  string
	}{
		{"empty", "", apperr.MsgEmptyInput},
		{"whitespace", "   \n\t ", apperr.MsgEmptyInput},
		{"four runes", "a b c d", apperr.MsgInputTooShort},
		{"five runes", "abcde", ""},
		{"padded", "  héllo  ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckInput(tt.in)
			if tt.msg == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if apperr.KindOf(err) != apperr.InputTooShort {
				t.Fatalf("expected InputTooShort, got %v", err)
			}
			if apperr.Message(err) != tt.msg {
				t.Errorf("message = %q, want %q", apperr.Message(err), tt.msg)
			}
		})
	}
}

func TestStripCodeBlock(t *testing.T) {
	tests := map[string]string{
		"```json\n{\"a\":1}\n```": `{"a":1}`,
		"```\n{\"a\":1}```":       `{"a":1}`,
		"  {\"a\":1}  ":           `{"a":1}`,
	}
	for in, want := range tests {
		if got := stripCodeBlock(in); got != want {
			t.Errorf("stripCodeBlock(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDecodeDocument(t *testing.T) {
	doc, err := decodeDocument("```json\n" + launchPlanJSON + "\n```")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "Launch Plan" || len(doc.Steps) != 2 {
		t.Fatalf("unexpected document: %+v", doc)
	}

	if _, err := decodeDocument("  "); apperr.KindOf(err) != apperr.UpstreamMalformed {
		t.Errorf("empty answer: expected UpstreamMalformed, got %v", err)
	}
	if _, err := decodeDocument("not json"); apperr.KindOf(err) != apperr.UpstreamMalformed {
		t.Errorf("bad json: expected UpstreamMalformed, got %v", err)
	}
	if _, err := decodeDocument(`{"title":"X","steps":[]}`); apperr.KindOf(err) != apperr.NoStepsFound {
		t.Errorf("no steps: expected NoStepsFound, got %v", err)
	}
}

func geminiServer(t *testing.T, status int, body string, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if !strings.HasSuffix(r.URL.Path, "/models/gemini-test:generateContent") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("x-goog-api-key") != "key" {
			t.Errorf("missing api key header")
		}
		var req geminiRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.GenerationConfig.ResponseMimeType != "application/json" {
			t.Errorf("responseMimeType = %q", req.GenerationConfig.ResponseMimeType)
		}
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
}

func geminiAnswer(text string) string {
	b, _ := json.Marshal(map[string]any{
		"candidates": []any{map[string]any{"content": map[string]any{"parts": []any{map[string]any{"text": text}}}}},
	})
	return string(b)
}

func TestGeminiParse(t *testing.T) {
	var hits atomic.Int32
	srv := geminiServer(t, http.StatusOK, geminiAnswer(launchPlanJSON), &hits)
	defer srv.Close()

	c := NewGeminiClient("key", "gemini-test")
	c.baseURL = srv.URL
	doc, err := c.Parse(context.Background(), "Plan the launch then build it")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Steps[0].IconName != "Target" || doc.Steps[1].Title != "Build" {
		t.Fatalf("unexpected steps: %+v", doc.Steps)
	}
}

func TestGeminiErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		kind   apperr.Kind
		code   string
	}{
		{"invalid key", http.StatusBadRequest, `{"error":{"code":400,"message":"API key not valid","status":"API_KEY_INVALID"}}`, apperr.UpstreamUnavailable, apperr.CodeMisconfigured},
		{"unavailable", http.StatusServiceUnavailable, `overloaded`, apperr.UpstreamUnavailable, apperr.CodeParsingFailed},
		{"empty answer", http.StatusOK, geminiAnswer(""), apperr.UpstreamMalformed, apperr.CodeEmptyResponse},
		{"no steps", http.StatusOK, geminiAnswer(`{"title":"X","steps":[]}`), apperr.NoStepsFound, apperr.CodeNoStepsFound},
		{"garbage", http.StatusOK, `<html>`, apperr.UpstreamMalformed, apperr.CodeMalformedResponse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hits atomic.Int32
			srv := geminiServer(t, tt.status, tt.body, &hits)
			defer srv.Close()

			c := NewGeminiClient("key", "gemini-test")
			c.baseURL = srv.URL
			_, err := c.Parse(context.Background(), "Plan the launch then build it")
			e, ok := apperr.As(err)
			if !ok {
				t.Fatalf("expected *apperr.Error, got %v", err)
			}
			if e.Kind != tt.kind || e.Code != tt.code {
				t.Fatalf("got kind=%s code=%s, want kind=%s code=%s", e.Kind, e.Code, tt.kind, tt.code)
			}
		})
	}
}

func TestGeminiServerErrorIsRetryable(t *testing.T) {
	var hits atomic.Int32
	srv := geminiServer(t, http.StatusTooManyRequests, "slow down", &hits)
	defer srv.Close()

	c := NewGeminiClient("key", "gemini-test")
	c.baseURL = srv.URL
	_, err := c.Parse(context.Background(), "Plan the launch then build it")
	var re *RetryableError
	if !errors.As(err, &re) {
		t.Fatalf("expected RetryableError in chain, got %v", err)
	}
	if re.StatusCode != http.StatusTooManyRequests {
		t.Errorf("status = %d", re.StatusCode)
	}
}

func TestShortInputNeverCallsUpstream(t *testing.T) {
	var hits atomic.Int32
	srv := geminiServer(t, http.StatusOK, geminiAnswer(launchPlanJSON), &hits)
	defer srv.Close()

	c := NewGeminiClient("key", "gemini-test")
	c.baseURL = srv.URL
	claude := NewClaudeClient("key", "claude-test")
	claude.endpoint = srv.URL
	remote := NewRemoteClient(srv.URL, "")

	for _, p := range []Parser{c, claude, remote, Misconfigured{}} {
		_, err := p.Parse(context.Background(), "hi")
		if apperr.KindOf(err) != apperr.InputTooShort {
			t.Errorf("%T: expected InputTooShort, got %v", p, err)
		}
	}
	if hits.Load() != 0 {
		t.Fatalf("expected no upstream calls, got %d", hits.Load())
	}
}

func TestClaudeParse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") != "key" {
			t.Errorf("missing api key")
		}
		var req anthropicRequest
		json.NewDecoder(r.Body).Decode(&req)
		if !strings.Contains(req.Messages[0].Content, "Input Text:\nShip the thing") {
			t.Errorf("prompt missing input: %q", req.Messages[0].Content)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"content": []any{map[string]any{"type": "text", "text": "```json\n" + launchPlanJSON + "\n```"}},
		})
	}))
	defer srv.Close()

	c := NewClaudeClient("key", "claude-test")
	c.endpoint = srv.URL
	doc, err := c.Parse(context.Background(), "Ship the thing in two steps")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "Launch Plan" {
		t.Errorf("title = %q", doc.Title)
	}
}

func TestRemoteClient(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		kind   apperr.Kind
		msg    string
	}{
		{"ok", http.StatusOK, launchPlanJSON, apperr.KindUnknown, ""},
		{"typed error", http.StatusBadRequest, `{"error":"Could not identify distinct process steps in your text.","code":"NO_STEPS_FOUND"}`, apperr.NoStepsFound, apperr.MsgNoSteps},
		{"empty steps", http.StatusOK, `{"title":"X","steps":[]}`, apperr.NoStepsFound, apperr.MsgNoSteps},
		{"empty body", http.StatusBadGateway, ``, apperr.UpstreamUnavailable, apperr.MsgTransportFallback},
		{"html body", http.StatusInternalServerError, `<h1>oops</h1>`, apperr.UpstreamUnavailable, apperr.MsgTransportFallback},
		{"uncoded error", http.StatusInternalServerError, `{"error":"Server configuration error"}`, apperr.UpstreamUnavailable, apperr.MsgMisconfigured},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != GeneratePath || r.Method != http.MethodPost {
					t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
				}
				if r.Header.Get("Authorization") != "Bearer secret" {
					t.Errorf("missing bearer token")
				}
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			doc, err := NewRemoteClient(srv.URL+"/", "secret").Parse(context.Background(), "Plan the launch then build it")
			if tt.kind == apperr.KindUnknown {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if len(doc.Steps) != 2 {
					t.Fatalf("expected 2 steps, got %d", len(doc.Steps))
				}
				return
			}
			if apperr.KindOf(err) != tt.kind {
				t.Fatalf("kind = %s, want %s (%v)", apperr.KindOf(err), tt.kind, err)
			}
			if apperr.Message(err) != tt.msg {
				t.Errorf("message = %q, want %q", apperr.Message(err), tt.msg)
			}
		})
	}
}

func TestMisconfigured(t *testing.T) {
	_, err := Misconfigured{}.Parse(context.Background(), "Plan the launch then build it")
	e, ok := apperr.As(err)
	if !ok || e.Code != apperr.CodeMisconfigured || e.Message != apperr.MsgMisconfigured {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.HTTPStatus() != http.StatusInternalServerError {
		t.Errorf("status = %d", e.HTTPStatus())
	}
}

func TestBuildPrompt(t *testing.T) {
	p := BuildPrompt("step one, step two", "Roadmap")
	if !strings.HasPrefix(p, ParsePrompt) {
		t.Error("prompt must start with the parse instructions")
	}
	if !strings.Contains(p, `titled "Roadmap"`) {
		t.Error("title hint missing")
	}
	if !strings.HasSuffix(p, "Input Text:\nstep one, step two") {
		t.Errorf("prompt must end with the input, got %q", p)
	}
}
