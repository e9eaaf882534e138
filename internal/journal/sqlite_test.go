package journal

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"
)

func TestSQLiteStoreAppendAndByRun(t *testing.T) {
	store, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer func() { _ = store.Close() }()

	ctx := t.Context()
	payload := []byte(`{"provider":"wxr"}`)

	if err := store.Append(ctx, "run-1", TypeRunStarted, payload, map[string]string{"dry_run": "true"}); err != nil {
		t.Fatalf("failed to append event: %v", err)
	}
	if err := store.Append(ctx, "run-2", TypeRunStarted, payload, nil); err != nil {
		t.Fatalf("failed to append event: %v", err)
	}

	events, err := store.ByRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("failed to get events: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}

	e := events[0]
	if e.RunID != "run-1" || e.Type != TypeRunStarted {
		t.Errorf("unexpected event %+v", e)
	}
	if !bytes.Equal(e.Payload, payload) {
		t.Errorf("expected payload %s, got %s", payload, e.Payload)
	}
	if e.Metadata["dry_run"] != "true" {
		t.Errorf("expected metadata dry_run=true, got %v", e.Metadata)
	}
}

func TestSQLiteStoreRange(t *testing.T) {
	store, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer func() { _ = store.Close() }()

	ctx := t.Context()
	now := time.Now()
	for range 3 {
		if err := store.Append(ctx, "run-1", TypeRecordImported, []byte("{}"), nil); err != nil {
			t.Fatalf("failed to append event: %v", err)
		}
	}

	events, err := store.Range(ctx, now.Add(-time.Hour), now.Add(time.Hour))
	if err != nil {
		t.Fatalf("failed to get range: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	for i := 1; i < len(events); i++ {
		if events[i].ID <= events[i-1].ID {
			t.Fatalf("events not in append order: %v", events)
		}
	}

	old, err := store.Range(ctx, now.Add(-2*time.Hour), now.Add(-time.Hour))
	if err != nil {
		t.Fatalf("failed to get range: %v", err)
	}
	if len(old) != 0 {
		t.Fatalf("expected no events, got %d", len(old))
	}
}

func TestSQLiteStorePersistsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "journal.db")
	store, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	if err := store.Append(t.Context(), "run-1", TypeRunCompleted, []byte("{}"), nil); err != nil {
		t.Fatalf("append: %v", err)
	}
	_ = store.Close()

	reopened, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = reopened.Close() }()

	events, err := reopened.ByRun(t.Context(), "run-1")
	if err != nil || len(events) != 1 {
		t.Fatalf("expected persisted event, got %v, %v", events, err)
	}
}
