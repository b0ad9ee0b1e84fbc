package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/dgallion1/infographic/internal/apperr"
	"github.com/dgallion1/infographic/internal/config"
	"github.com/dgallion1/infographic/internal/document"
	"github.com/dgallion1/infographic/internal/extract"
	"github.com/dgallion1/infographic/internal/session"
)

var quietLog = slog.New(slog.NewTextHandler(io.Discard, nil))

var noWait = RetryPolicy{MaxAttempts: 3}

// scriptedParser returns errs in order, then a document.
type scriptedParser struct {
	mu    sync.Mutex
	errs  []error
	calls int
	block chan struct{}
}

func (p *scriptedParser) Parse(ctx context.Context, text string) (*document.Document, error) {
	if err := extract.CheckInput(text); err != nil {
		return nil, err
	}
	if p.block != nil {
		select {
		case <-p.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if len(p.errs) > 0 {
		err := p.errs[0]
		p.errs = p.errs[1:]
		return nil, err
	}
	return document.Normalize(document.Raw{
		Title: "Parsed",
		Steps: []document.RawStep{{Title: text}},
	})
}

func (p *scriptedParser) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

func retryableErr() error {
	return apperr.Wrap(apperr.UpstreamUnavailable, apperr.CodeParsingFailed, apperr.MsgParsingFailed,
		&extract.RetryableError{StatusCode: 503, Message: "overloaded"})
}

func TestIsRetryable(t *testing.T) {
	if !IsRetryable(retryableErr()) {
		t.Error("expected wrapped RetryableError to be retryable")
	}
	if IsRetryable(apperr.New(apperr.NoStepsFound, apperr.CodeNoStepsFound, apperr.MsgNoSteps)) {
		t.Error("no-steps must not be retried")
	}
}

func TestBackoff(t *testing.T) {
	p := DefaultRetryPolicy
	for attempt, base := range []time.Duration{time.Second, 2 * time.Second, 4 * time.Second} {
		d := p.Backoff(attempt)
		if d < base || d >= base+base/2 {
			t.Errorf("attempt %d: backoff %s outside [%s, %s)", attempt, d, base, base+base/2)
		}
	}
	if d := p.Backoff(20); d > 45*time.Second {
		t.Errorf("backoff should cap near 30s, got %s", d)
	}
	if d := noWait.Backoff(1); d != 0 {
		t.Errorf("zero base should not wait, got %s", d)
	}
}

func TestGenerate_RetriesThenSucceeds(t *testing.T) {
	p := &scriptedParser{errs: []error{retryableErr(), retryableErr()}}
	g := NewGenerator(p, NewParseCache(time.Hour), time.Second, noWait, quietLog)

	res, err := g.Generate(context.Background(), "plan then build")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", res.Attempts)
	}
	if res.CacheHit {
		t.Error("first call must not be a cache hit")
	}

	again, err := g.Generate(context.Background(), "  plan then build  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !again.CacheHit || again.Document != res.Document {
		t.Error("expected identical input to hit the cache")
	}
	if p.Calls() != 3 {
		t.Errorf("expected 3 parser calls, got %d", p.Calls())
	}
}

func TestGenerate_StopsOnFinalError(t *testing.T) {
	p := &scriptedParser{errs: []error{apperr.New(apperr.NoStepsFound, apperr.CodeNoStepsFound, apperr.MsgNoSteps)}}
	g := NewGenerator(p, NewParseCache(time.Hour), time.Second, noWait, quietLog)

	res, err := g.Generate(context.Background(), "no steps in here")
	if apperr.KindOf(err) != apperr.NoStepsFound {
		t.Fatalf("expected NoStepsFound, got %v", err)
	}
	if res.Attempts != 1 {
		t.Errorf("expected 1 attempt, got %d", res.Attempts)
	}
	if g.Cache().Len() != 0 {
		t.Error("failures must not be cached")
	}
}

func TestGenerate_GivesUpAfterMaxAttempts(t *testing.T) {
	p := &scriptedParser{errs: []error{retryableErr(), retryableErr(), retryableErr(), retryableErr()}}
	g := NewGenerator(p, nil, time.Second, noWait, quietLog)

	res, err := g.Generate(context.Background(), "plan then build")
	if !IsRetryable(err) {
		t.Fatalf("expected the last retryable error, got %v", err)
	}
	if res.Attempts != 3 || p.Calls() != 3 {
		t.Errorf("expected 3 attempts, got %d (calls %d)", res.Attempts, p.Calls())
	}
}

func TestGenerate_ShortInputSkipsParser(t *testing.T) {
	p := &scriptedParser{}
	g := NewGenerator(p, NewParseCache(time.Hour), time.Second, noWait, quietLog)
	_, err := g.Generate(context.Background(), "hi")
	if apperr.KindOf(err) != apperr.InputTooShort {
		t.Fatalf("expected InputTooShort, got %v", err)
	}
	if p.Calls() != 0 {
		t.Errorf("expected no parser calls, got %d", p.Calls())
	}
}

func TestParseCache_Expiry(t *testing.T) {
	c := NewParseCache(20 * time.Millisecond)
	doc, _ := document.Normalize(document.Raw{Title: "T", Steps: []document.RawStep{{Title: "a"}}})
	c.Put("h", doc)
	if _, ok := c.Get("h"); !ok {
		t.Fatal("expected hit")
	}
	time.Sleep(40 * time.Millisecond)
	if _, ok := c.Get("h"); ok {
		t.Error("expected expired entry to miss")
	}
	c.Cleanup()
	if c.Len() != 0 {
		t.Errorf("expected empty cache, got %d", c.Len())
	}

	disabled := NewParseCache(0)
	disabled.Put("h", doc)
	if _, ok := disabled.Get("h"); ok {
		t.Error("zero ttl disables the cache")
	}
}

func TestWorker_DeliversToSession(t *testing.T) {
	sessions := session.NewStore(time.Hour)
	sess := sessions.Create()
	token, err := sess.BeginGeneration()
	if err != nil {
		t.Fatal(err)
	}
	task := NewTask(sess.ID, token, "plan then build")

	g := NewGenerator(&scriptedParser{}, nil, time.Second, noWait, quietLog)
	NewWorker(g, sessions, quietLog).Process(context.Background(), task)

	if task.Snapshot().Status != StatusCompleted {
		t.Fatalf("expected completed, got %q", task.Snapshot().Status)
	}
	if sess.Document() == nil || sess.Document().Title != "Parsed" {
		t.Fatal("expected the document to be delivered")
	}
}

func TestWorker_StaleResultIsSuperseded(t *testing.T) {
	sessions := session.NewStore(time.Hour)
	sess := sessions.Create()
	token, _ := sess.BeginGeneration()
	task := NewTask(sess.ID, token, "plan then build")
	sess.Reset()

	g := NewGenerator(&scriptedParser{}, nil, time.Second, noWait, quietLog)
	NewWorker(g, sessions, quietLog).Process(context.Background(), task)

	if task.Snapshot().Status != StatusSuperseded {
		t.Fatalf("expected superseded, got %q", task.Snapshot().Status)
	}
	if sess.Document() != nil {
		t.Fatal("stale result must not replace the document")
	}
}

func TestWorker_FailureIsRecorded(t *testing.T) {
	sessions := session.NewStore(time.Hour)
	sess := sessions.Create()
	token, _ := sess.BeginGeneration()
	task := NewTask(sess.ID, token, "plan then build")

	p := &scriptedParser{errs: []error{apperr.New(apperr.UpstreamMalformed, apperr.CodeEmptyResponse, apperr.MsgEmptyResponse)}}
	NewWorker(NewGenerator(p, nil, time.Second, noWait, quietLog), sessions, quietLog).Process(context.Background(), task)

	snap := task.Snapshot()
	if snap.Status != StatusFailed || snap.Code != apperr.CodeEmptyResponse {
		t.Fatalf("unexpected task snapshot: %+v", snap)
	}
	ss := sess.Snapshot()
	if ss.State.Processing || ss.Error == nil || ss.Error.Error != apperr.MsgEmptyResponse {
		t.Fatalf("unexpected session snapshot: %+v", ss)
	}
}

// statusRecorder fails its first call and records the task status seen by
// every later call.
type statusRecorder struct {
	task *Task
	seen []TaskSnapshot
}

func (p *statusRecorder) Parse(ctx context.Context, text string) (*document.Document, error) {
	p.seen = append(p.seen, p.task.Snapshot())
	if len(p.seen) == 1 {
		return nil, retryableErr()
	}
	return document.Normalize(document.Raw{Title: "Parsed", Steps: []document.RawStep{{Title: text}}})
}

func TestWorker_MarksTaskRetrying(t *testing.T) {
	sessions := session.NewStore(time.Hour)
	sess := sessions.Create()
	token, _ := sess.BeginGeneration()
	task := NewTask(sess.ID, token, "plan then build")

	p := &statusRecorder{task: task}
	NewWorker(NewGenerator(p, nil, time.Second, noWait, quietLog), sessions, quietLog).Process(context.Background(), task)

	if len(p.seen) != 2 {
		t.Fatalf("expected 2 parse calls, got %d", len(p.seen))
	}
	if p.seen[0].Status != StatusParsing {
		t.Errorf("first attempt: expected parsing, got %q", p.seen[0].Status)
	}
	if p.seen[1].Status != StatusRetrying || p.seen[1].Phase != "retry_1" {
		t.Errorf("second attempt: expected retrying/retry_1, got %q/%q", p.seen[1].Status, p.seen[1].Phase)
	}
	snap := task.Snapshot()
	if snap.Status != StatusCompleted || snap.Attempts != 2 {
		t.Fatalf("unexpected final snapshot: %+v", snap)
	}
}

func TestOrchestrator_EndToEnd(t *testing.T) {
	cfg := config.Config{WorkerCount: 2, MaxQueueSize: 4, SessionTTL: time.Hour}
	sessions := session.NewStore(time.Hour)
	p := &scriptedParser{block: make(chan struct{})}
	g := NewGenerator(p, NewParseCache(time.Hour), time.Second, noWait, quietLog)
	o := NewOrchestrator(cfg, g, sessions, quietLog)
	o.Start(context.Background())
	defer o.Stop()

	sess := sessions.Create()
	task, err := o.Submit(sess, "plan then build")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := o.Submit(sess, "second request"); apperr.KindOf(err) != apperr.Busy {
		t.Fatalf("expected Busy for a second generation, got %v", err)
	}
	close(p.block)

	deadline := time.Now().Add(2 * time.Second)
	for o.GetTask(task.ID).Snapshot().Status != StatusCompleted {
		if time.Now().After(deadline) {
			t.Fatalf("task did not complete: %+v", o.GetTask(task.ID).Snapshot())
		}
		time.Sleep(5 * time.Millisecond)
	}
	if sess.Snapshot().State.Phase != session.PhaseExport {
		t.Errorf("expected export phase, got %q", sess.Snapshot().State.Phase)
	}
}

func TestOrchestrator_QueueFull(t *testing.T) {
	cfg := config.Config{WorkerCount: 0, MaxQueueSize: 1, SessionTTL: time.Hour}
	sessions := session.NewStore(time.Hour)
	o := NewOrchestrator(cfg, NewGenerator(&scriptedParser{}, nil, time.Second, noWait, quietLog), sessions, quietLog)

	if _, err := o.Submit(sessions.Create(), "first text"); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	second := sessions.Create()
	task, err := o.Submit(second, "second text")
	if !errors.Is(err, ErrQueueFull) {
		t.Fatalf("expected queue full error, got %v", err)
	}
	if e, ok := apperr.As(err); !ok || e.Kind != apperr.Busy || e.Code != apperr.CodeServerBusy {
		t.Fatalf("expected a server busy error, got %v", err)
	}
	if task.Snapshot().Status != StatusFailed {
		t.Errorf("expected failed task, got %q", task.Snapshot().Status)
	}
	ss := second.Snapshot()
	if ss.State.Processing {
		t.Error("session must not stay busy after a rejected submit")
	}
	if ss.Error == nil || ss.Error.Error != apperr.MsgServerBusy {
		t.Errorf("expected the busy message on the session, got %+v", ss.Error)
	}
	if o.QueueDepth() != 1 {
		t.Errorf("expected queue depth 1, got %d", o.QueueDepth())
	}
}

func TestOrchestrator_SubmitAfterStop(t *testing.T) {
	cfg := config.Config{WorkerCount: 1, MaxQueueSize: 2, SessionTTL: time.Hour}
	sessions := session.NewStore(time.Hour)
	o := NewOrchestrator(cfg, NewGenerator(&scriptedParser{}, nil, time.Second, noWait, quietLog), sessions, quietLog)
	o.Start(context.Background())
	o.Stop()
	o.Stop()

	sess := sessions.Create()
	task, err := o.Submit(sess, "plan then build")
	if task != nil {
		t.Errorf("expected no task after stop, got %+v", task.Snapshot())
	}
	if !errors.Is(err, ErrStopped) {
		t.Fatalf("expected stopped error, got %v", err)
	}
	if e, ok := apperr.As(err); !ok || e.Code != apperr.CodeServerBusy || e.Message != apperr.MsgShuttingDown {
		t.Fatalf("expected a shutting down error, got %v", err)
	}
	if sess.Snapshot().State.Processing {
		t.Error("session must stay idle when submit is rejected")
	}
}
