package pipeline

import (
	"testing"
	"time"

	"github.com/dgallion1/docsteps/internal/engine"
	"github.com/dgallion1/docsteps/internal/segment"
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

func TestContentHashHex_EmptyInput(t *testing.T) {
	h := ContentHashHex([]byte{})
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if h != want {
		t.Errorf("expected hash %q, got %q", want, h)
	}
}

func TestNewJob(t *testing.T) {
	a := NewJob("a.txt", "", []byte("x"))
	b := NewJob("a.txt", "", []byte("x"))
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("expected distinct non-empty ids, got %q and %q", a.ID, b.ID)
	}
	if a.Status != StatusQueued || a.Phase != "queued" {
		t.Errorf("expected queued job, got %s/%s", a.Status, a.Phase)
	}
	if string(a.FileData()) != "x" {
		t.Errorf("expected file data kept, got %q", a.FileData())
	}
}

func TestJob_StateTransitions(t *testing.T) {
	job := NewJob("doc.md", "", nil)

	transitions := []struct {
		status JobStatus
		phase  string
	}{
		{StatusParsing, "parsing"},
		{StatusSegmenting, "segmenting"},
		{StatusCompleted, "done"},
	}

	for _, tr := range transitions {
		before := job.UpdatedAt
		// Small sleep to ensure time difference is detectable.
		time.Sleep(time.Millisecond)
		job.SetStatus(tr.status, tr.phase)

		if job.CurrentStatus() != tr.status {
			t.Errorf("expected status %q, got %q", tr.status, job.Status)
		}
		if job.Phase != tr.phase {
			t.Errorf("expected phase %q, got %q", tr.phase, job.Phase)
		}
		if !job.UpdatedAt.After(before) {
			t.Errorf("expected UpdatedAt to advance after SetStatus(%q)", tr.status)
		}
	}
	if !job.Status.Done() {
		t.Error("expected completed status to be terminal")
	}
	if StatusSegmenting.Done() {
		t.Error("expected segmenting status to be non-terminal")
	}
}

func TestJob_AddError(t *testing.T) {
	job := NewJob("a.txt", "", nil)
	job.AddError("parse: bad input")
	job.AddError("second")

	snap := job.Snapshot()
	if len(snap.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(snap.Errors))
	}
	if snap.Errors[0] != "parse: bad input" {
		t.Errorf("expected first error %q, got %q", "parse: bad input", snap.Errors[0])
	}

	snap.Errors[0] = "mutated"
	if job.Snapshot().Errors[0] != "parse: bad input" {
		t.Error("snapshot must not share the error slice")
	}
}

func TestJob_SetResultAdoptsTitle(t *testing.T) {
	job := NewJob("a.txt", "", nil)
	job.SetResult(engine.Output{Title: "a", Strategy: segment.Whole, Steps: []engine.StepOutput{{Number: 1, Text: "x"}}})
	snap := job.Snapshot()
	if snap.Title != "a" {
		t.Errorf("expected title adopted, got %q", snap.Title)
	}
	if snap.Result == nil || len(snap.Result.Steps) != 1 {
		t.Fatalf("expected result in snapshot, got %+v", snap.Result)
	}

	named := NewJob("a.txt", "Named", nil)
	named.SetResult(engine.Output{Title: "a"})
	if named.Snapshot().Title != "Named" {
		t.Errorf("expected upload title kept, got %q", named.Snapshot().Title)
	}
}

func TestJob_SnapshotErrorsNotNil(t *testing.T) {
	// Snapshot should always return non-nil errors slice.
	job := NewJob("a.txt", "", nil)
	snap := job.Snapshot()
	if snap.Errors == nil {
		t.Error("expected non-nil errors slice in snapshot")
	}
	if snap.Result != nil {
		t.Error("expected no result before completion")
	}
}

func TestJobStore_PutGetDelete(t *testing.T) {
	store := NewJobStore(time.Hour)
	job := NewJob("a.txt", "", nil)
	store.Put(job)

	if got := store.Get(job.ID); got != job {
		t.Fatal("expected to get job back")
	}
	if !store.Delete(job.ID) {
		t.Error("expected delete to report an existing job")
	}
	if store.Get(job.ID) != nil {
		t.Error("expected job gone after delete")
	}
	if store.Delete(job.ID) {
		t.Error("expected second delete to report nothing removed")
	}
}

func TestJobStore_ListAndCounts(t *testing.T) {
	store := NewJobStore(time.Hour)
	first := NewJob("a.txt", "", nil)
	time.Sleep(time.Millisecond)
	second := NewJob("b.txt", "", nil)
	second.SetStatus(StatusFailed, "parsing")
	store.Put(second)
	store.Put(first)

	list := store.List()
	if len(list) != 2 || list[0].ID != first.ID || list[1].ID != second.ID {
		t.Fatalf("expected jobs oldest first, got %+v", list)
	}
	counts := store.Counts()
	if counts[StatusQueued] != 1 || counts[StatusFailed] != 1 {
		t.Errorf("unexpected counts %v", counts)
	}
}

func TestJobStore_TTLCleanup(t *testing.T) {
	store := NewJobStore(50 * time.Millisecond)

	expired := NewJob("old.txt", "", nil)
	store.Put(expired)

	// Wait for the TTL to pass.
	time.Sleep(100 * time.Millisecond)

	fresh := NewJob("new.txt", "", nil)
	store.Put(fresh)

	store.Cleanup()

	if store.Get(expired.ID) != nil {
		t.Error("expected expired job to be cleaned up")
	}
	if store.Get(fresh.ID) == nil {
		t.Error("expected fresh job to survive cleanup")
	}
}

func TestJobStore_CleanupEmpty(t *testing.T) {
	store := NewJobStore(time.Hour)
	// Should not panic on empty store.
	store.Cleanup()
}
