package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dgallion1/infographic/internal/session"
)

// Worker runs generation tasks and hands results back to their sessions.
type Worker struct {
	gen      *Generator
	sessions *session.Store
	log      *slog.Logger
}

func NewWorker(gen *Generator, sessions *session.Store, log *slog.Logger) *Worker {
	return &Worker{
		gen:      gen,
		sessions: sessions,
		log:      log,
	}
}

// Process parses the task's text and delivers the outcome. A session that
// has been reset or started a newer generation drops the result, and the
// task is marked superseded.
func (w *Worker) Process(ctx context.Context, task *Task) {
	log := w.log.With("task_id", task.ID, "session_id", task.SessionID)

	task.SetStatus(StatusParsing, "parsing")
	res, err := w.gen.generate(ctx, task.Text(), func(attempt int) {
		task.SetStatus(StatusRetrying, fmt.Sprintf("retry_%d", attempt))
	})
	task.RecordAttempts(res.Attempts, res.CacheHit)

	sess := w.sessions.Get(task.SessionID)
	if sess == nil {
		log.Warn("session expired before delivery")
		task.SetStatus(StatusSuperseded, "session_gone")
		return
	}

	if err != nil {
		log.Error("generation failed", "attempts", res.Attempts, "error", err)
		if !sess.FailGeneration(task.Token, err) {
			task.SetStatus(StatusSuperseded, "stale")
			return
		}
		task.Fail("parsing", err)
		return
	}

	if !sess.CompleteGeneration(task.Token, res.Document) {
		log.Info("dropping stale result")
		task.SetStatus(StatusSuperseded, "stale")
		return
	}
	log.Info("generation complete", "steps", len(res.Document.Steps), "cache_hit", res.CacheHit, "attempts", res.Attempts)
	task.SetStatus(StatusCompleted, "done")
}
