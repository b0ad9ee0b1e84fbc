package pipeline

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/dgallion1/infographic/internal/apperr"
	"github.com/dgallion1/infographic/internal/document"
	"github.com/dgallion1/infographic/internal/extract"
)

// Result describes how a document was produced.
type Result struct {
	Document    *document.Document
	ContentHash string
	CacheHit    bool
	Attempts    int
}

// Generator turns text into a document through the parser, with a cache in
// front and bounded retries behind. Both the synchronous endpoint and the
// workers use it.
type Generator struct {
	parser  extract.Parser
	cache   *ParseCache
	timeout time.Duration
	retry   RetryPolicy
	log     *slog.Logger
}

func NewGenerator(p extract.Parser, cache *ParseCache, timeout time.Duration, retry RetryPolicy, log *slog.Logger) *Generator {
	return &Generator{
		parser:  p,
		cache:   cache,
		timeout: timeout,
		retry:   retry,
		log:     log,
	}
}

// Cache exposes the parse cache for periodic cleanup.
func (g *Generator) Cache() *ParseCache {
	return g.cache
}

// Generate parses text. Input is checked before the cache or the model are
// consulted. Each attempt gets its own timeout; only retryable failures are
// attempted again.
func (g *Generator) Generate(ctx context.Context, text string) (Result, error) {
	return g.generate(ctx, text, nil)
}

// generate is Generate with onRetry called before each backoff wait.
func (g *Generator) generate(ctx context.Context, text string, onRetry func(attempt int)) (Result, error) {
	if err := extract.CheckInput(text); err != nil {
		return Result{}, err
	}
	res := Result{ContentHash: ContentHashHex([]byte(strings.TrimSpace(text)))}
	if doc, ok := g.cache.Get(res.ContentHash); ok {
		res.Document = doc
		res.CacheHit = true
		return res, nil
	}

	var lastErr error
	for attempt := range g.retry.attempts() {
		res.Attempts = attempt + 1
		var doc *document.Document
		doc, lastErr = g.parseOnce(ctx, text)
		if lastErr == nil {
			res.Document = doc
			g.cache.Put(res.ContentHash, doc)
			return res, nil
		}
		if !IsRetryable(lastErr) || attempt == g.retry.attempts()-1 {
			break
		}
		g.log.Warn("retryable parse error", "attempt", attempt, "content_hash", res.ContentHash, "error", lastErr)
		if onRetry != nil {
			onRetry(attempt + 1)
		}
		select {
		case <-time.After(g.retry.Backoff(attempt)):
		case <-ctx.Done():
			return res, apperr.Wrap(apperr.UpstreamUnavailable, apperr.CodeParsingFailed, apperr.MsgParsingFailed, ctx.Err())
		}
	}
	return res, lastErr
}

func (g *Generator) parseOnce(ctx context.Context, text string) (*document.Document, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}
	return g.parser.Parse(ctx, text)
}
