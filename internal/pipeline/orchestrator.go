package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dgallion1/infographic/internal/apperr"
	"github.com/dgallion1/infographic/internal/config"
	"github.com/dgallion1/infographic/internal/session"
)

var (
	// ErrQueueFull is wrapped by Submit when no queue slot is free.
	ErrQueueFull = errors.New("generation queue is full")
	// ErrStopped is wrapped by Submit after Stop.
	ErrStopped = errors.New("orchestrator stopped")
)

// Orchestrator runs asynchronous generation for sessions.
type Orchestrator struct {
	tasks    *TaskStore
	queue    chan *Task
	gen      *Generator
	sessions *session.Store
	log      *slog.Logger
	cfg      config.Config

	cancel context.CancelFunc
	wg     sync.WaitGroup

	// mu guards stopped and sends on queue so Stop never closes a channel
	// Submit is writing to.
	mu      sync.Mutex
	stopped bool
}

// NewOrchestrator creates the pipeline. Call Start to launch workers.
func NewOrchestrator(cfg config.Config, gen *Generator, sessions *session.Store, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		tasks:    NewTaskStore(cfg.SessionTTL),
		queue:    make(chan *Task, cfg.MaxQueueSize),
		gen:      gen,
		sessions: sessions,
		log:      log,
		cfg:      cfg,
	}
}

// Start launches worker goroutines.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	for range o.cfg.WorkerCount {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			w := NewWorker(o.gen, o.sessions, o.log)
			for {
				select {
				case <-workerCtx.Done():
					return
				case task, ok := <-o.queue:
					if !ok {
						return
					}
					w.Process(workerCtx, task)
				}
			}
		}()
	}

	// Evict expired tasks, idle sessions and stale cache entries.
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				o.tasks.Cleanup()
				if n := o.sessions.Cleanup(); n > 0 {
					o.log.Info("evicted idle sessions", "count", n)
				}
				o.gen.Cache().Cleanup()
			}
		}
	}()
}

// Stop gracefully shuts down the pipeline.
func (o *Orchestrator) Stop() {
	o.mu.Lock()
	if o.stopped {
		o.mu.Unlock()
		return
	}
	o.stopped = true
	close(o.queue)
	o.mu.Unlock()

	if o.cancel != nil {
		o.cancel()
	}
	o.wg.Wait()
}

// Submit starts a generation for sess and queues it. The session is busy
// until a worker delivers the result; when the queue is full the generation
// fails immediately. After Stop, Submit leaves the session untouched and
// returns a server busy error.
func (o *Orchestrator) Submit(sess *session.Session, text string) (*Task, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.stopped {
		return nil, apperr.Wrap(apperr.Busy, apperr.CodeServerBusy, apperr.MsgShuttingDown, ErrStopped)
	}

	token, err := sess.BeginGeneration()
	if err != nil {
		return nil, err
	}
	task := NewTask(sess.ID, token, text)
	o.tasks.Put(task)
	select {
	case o.queue <- task:
		return task, nil
	default:
		err := apperr.Wrap(apperr.Busy, apperr.CodeServerBusy, apperr.MsgServerBusy,
			fmt.Errorf("%w (%d)", ErrQueueFull, o.cfg.MaxQueueSize))
		task.Fail("queue_full", err)
		sess.FailGeneration(token, err)
		return task, err
	}
}

// GetTask returns a task by ID.
func (o *Orchestrator) GetTask(id string) *Task {
	return o.tasks.Get(id)
}

// QueueDepth returns current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}

// Generator returns the shared generator for synchronous callers.
func (o *Orchestrator) Generator() *Generator {
	return o.gen
}
