package pipeline

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dgallion1/infographic/internal/apperr"
)

// TaskStatus represents the state of a generation task.
type TaskStatus string

const (
	StatusQueued     TaskStatus = "queued"
	StatusParsing    TaskStatus = "parsing"
	StatusRetrying   TaskStatus = "retrying"
	StatusCompleted  TaskStatus = "completed"
	StatusFailed     TaskStatus = "failed"
	StatusSuperseded TaskStatus = "superseded"
)

// Task tracks one asynchronous parse on behalf of a session.
type Task struct {
	mu sync.Mutex

	ID        string `json:"task_id"`
	SessionID string `json:"session_id"`
	// Token is the session's generation token when the task was submitted.
	Token uint64 `json:"-"`

	Status   TaskStatus `json:"status"`
	Phase    string     `json:"phase"`
	Attempts int        `json:"attempts"`
	CacheHit bool       `json:"cache_hit"`

	ContentHash string    `json:"content_hash,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Internal: not serialized.
	text string
	err  error
}

func NewTask(sessionID string, token uint64, text string) *Task {
	now := time.Now()
	return &Task{
		ID:          uuid.NewString(),
		SessionID:   sessionID,
		Token:       token,
		Status:      StatusQueued,
		Phase:       "queued",
		ContentHash: ContentHashHex([]byte(strings.TrimSpace(text))),
		CreatedAt:   now,
		UpdatedAt:   now,
		text:        text,
	}
}

// TaskStore is a thread-safe in-memory task registry with TTL eviction.
type TaskStore struct {
	mu    sync.Mutex
	tasks map[string]*Task
	ttl   time.Duration
}

func NewTaskStore(ttl time.Duration) *TaskStore {
	return &TaskStore{
		tasks: make(map[string]*Task),
		ttl:   ttl,
	}
}

func (s *TaskStore) Put(task *Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[task.ID] = task
}

func (s *TaskStore) Get(id string) *Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasks[id]
}

// Cleanup removes expired tasks.
func (s *TaskStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, task := range s.tasks {
		task.mu.Lock()
		expired := now.Sub(task.UpdatedAt) > s.ttl
		task.mu.Unlock()
		if expired {
			delete(s.tasks, id)
		}
	}
}

// SetStatus updates task status atomically.
func (t *Task) SetStatus(status TaskStatus, phase string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Status = status
	t.Phase = phase
	t.UpdatedAt = time.Now()
}

// Fail records err and marks the task failed.
func (t *Task) Fail(phase string, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.err = err
	t.Status = StatusFailed
	t.Phase = phase
	t.UpdatedAt = time.Now()
}

// RecordAttempts stores the number of parse attempts and whether the result
// came from the cache.
func (t *Task) RecordAttempts(n int, cacheHit bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Attempts = n
	t.CacheHit = cacheHit
	t.UpdatedAt = time.Now()
}

// Text returns the input text.
func (t *Task) Text() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.text
}

// TaskSnapshot is a read-only, JSON-safe copy of task state.
type TaskSnapshot struct {
	ID        string     `json:"task_id"`
	SessionID string     `json:"session_id"`
	Status    TaskStatus `json:"status"`
	Phase     string     `json:"phase"`
	Attempts  int        `json:"attempts"`
	CacheHit  bool       `json:"cache_hit"`
	Error     string     `json:"error,omitempty"`
	Code      string     `json:"code,omitempty"`
}

// Snapshot returns a JSON-safe copy of the task state. Error text is the
// user-facing message, never the underlying cause.
func (t *Task) Snapshot() TaskSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	snap := TaskSnapshot{
		ID:        t.ID,
		SessionID: t.SessionID,
		Status:    t.Status,
		Phase:     t.Phase,
		Attempts:  t.Attempts,
		CacheHit:  t.CacheHit,
	}
	if t.err != nil {
		snap.Error = apperr.Message(t.err)
		if e, ok := apperr.As(t.err); ok {
			snap.Code = e.Code
		}
	}
	return snap
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
