package pipeline

import (
	"errors"
	"testing"
	"time"

	"github.com/dgallion1/infographic/internal/apperr"
)

func TestContentHashHex_Consistency(t *testing.T) {
	data := []byte("hello world")
	h1 := ContentHashHex(data)
	h2 := ContentHashHex(data)
	if h1 != h2 {
		t.Errorf("expected identical hashes, got %q and %q", h1, h2)
	}
	// SHA-256 of "hello world" is well-known.
	want := "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
	if h1 != want {
		t.Errorf("expected hash %q, got %q", want, h1)
	}
}

func TestContentHashHex_DifferentInputs(t *testing.T) {
	h1 := ContentHashHex([]byte("aaa"))
	h2 := ContentHashHex([]byte("bbb"))
	if h1 == h2 {
		t.Error("expected different hashes for different inputs")
	}
}

func TestNewTask_HashIgnoresSurroundingSpace(t *testing.T) {
	a := NewTask("s", 1, "  plan then build \n")
	b := NewTask("s", 2, "plan then build")
	if a.ContentHash != b.ContentHash {
		t.Errorf("expected equal hashes, got %q and %q", a.ContentHash, b.ContentHash)
	}
	if a.ID == b.ID {
		t.Error("expected distinct task IDs")
	}
	if a.Status != StatusQueued {
		t.Errorf("expected queued, got %q", a.Status)
	}
}

func TestTask_StateTransitions(t *testing.T) {
	task := NewTask("s", 1, "text")

	transitions := []struct {
		status TaskStatus
		phase  string
	}{
		{StatusParsing, "parsing"},
		{StatusRetrying, "waiting"},
		{StatusCompleted, "done"},
	}

	for _, tr := range transitions {
		before := task.UpdatedAt
		// Small sleep to ensure time difference is detectable.
		time.Sleep(time.Millisecond)
		task.SetStatus(tr.status, tr.phase)

		if task.Status != tr.status {
			t.Errorf("expected status %q, got %q", tr.status, task.Status)
		}
		if task.Phase != tr.phase {
			t.Errorf("expected phase %q, got %q", tr.phase, task.Phase)
		}
		if !task.UpdatedAt.After(before) {
			t.Errorf("expected UpdatedAt to advance after SetStatus(%q)", tr.status)
		}
	}
}

func TestTask_FailSnapshotHidesCause(t *testing.T) {
	task := NewTask("s", 1, "text")
	task.Fail("parsing", apperr.Wrap(apperr.UpstreamUnavailable, apperr.CodeParsingFailed, apperr.MsgParsingFailed,
		errors.New("dial tcp 10.0.0.1:443")))

	snap := task.Snapshot()
	if snap.Status != StatusFailed {
		t.Errorf("expected failed, got %q", snap.Status)
	}
	if snap.Error != apperr.MsgParsingFailed {
		t.Errorf("expected user message, got %q", snap.Error)
	}
	if snap.Code != apperr.CodeParsingFailed {
		t.Errorf("expected code %q, got %q", apperr.CodeParsingFailed, snap.Code)
	}
}

func TestTask_SnapshotWithoutError(t *testing.T) {
	task := NewTask("s", 1, "text")
	task.RecordAttempts(2, false)
	snap := task.Snapshot()
	if snap.Error != "" || snap.Code != "" {
		t.Errorf("expected no error, got %q/%q", snap.Error, snap.Code)
	}
	if snap.Attempts != 2 {
		t.Errorf("expected 2 attempts, got %d", snap.Attempts)
	}
}

func TestTaskStore_PutGet(t *testing.T) {
	store := NewTaskStore(time.Hour)
	task := &Task{ID: "store-1", UpdatedAt: time.Now()}
	store.Put(task)

	got := store.Get("store-1")
	if got == nil {
		t.Fatal("expected to get task back")
	}
	if got.ID != "store-1" {
		t.Errorf("expected ID %q, got %q", "store-1", got.ID)
	}
}

func TestTaskStore_GetMissing(t *testing.T) {
	store := NewTaskStore(time.Hour)
	if store.Get("nonexistent") != nil {
		t.Error("expected nil for missing task")
	}
}

func TestTaskStore_TTLCleanup(t *testing.T) {
	store := NewTaskStore(50 * time.Millisecond)

	expired := &Task{ID: "old", UpdatedAt: time.Now()}
	store.Put(expired)

	// Wait for the TTL to pass.
	time.Sleep(100 * time.Millisecond)

	fresh := &Task{ID: "new", UpdatedAt: time.Now()}
	store.Put(fresh)

	store.Cleanup()

	if store.Get("old") != nil {
		t.Error("expected expired task to be cleaned up")
	}
	if store.Get("new") == nil {
		t.Error("expected fresh task to survive cleanup")
	}
}

func TestTaskStore_CleanupEmpty(t *testing.T) {
	store := NewTaskStore(time.Hour)
	// Should not panic on empty store.
	store.Cleanup()
}
