package journal

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/siteimport/internal/record"
)

type recordingSink struct {
	events []Event
	err    error
}

func (s *recordingSink) Publish(_ context.Context, e Event) error {
	s.events = append(s.events, e)
	return s.err
}

func (s *recordingSink) Close() error { return nil }

func newStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestJournal_RoundTrip(t *testing.T) {
	ctx := t.Context()
	store := newStore(t)
	sink := &recordingSink{}
	j := New(store, true, WithSink(sink))

	_, err := uuid.Parse(j.RunID())
	require.NoError(t, err, "run IDs are UUIDs")

	results := []*record.Result{
		{Kind: record.KindPage, SourcePermalink: "http://a.com/about/", Permalink: "/about", RelativePath: "content/about/index.html", Content: []byte("---\ntitle: About\n---\nhi")},
		{Kind: record.KindResource, SourcePermalink: "http://a.com/p.jpg", Permalink: "/assets/p.jpg", RelativePath: "content/assets/p.jpg", Content: []byte("img"), Collision: true},
		{Kind: record.KindPost, SourcePermalink: "http://a.com/x/", Err: errors.New(`date in post item "http://a.com/x/" is required`)},
	}

	require.NoError(t, j.Started(ctx, RunStarted{Provider: "wxr", Source: "export.xml", Dest: "site"}))
	require.NoError(t, j.Results(ctx, results))
	require.NoError(t, j.Completed(ctx, RunCompleted{Total: 3, Imported: 2, Failed: 1, Collisions: 1, Outcome: "partial"}))

	events, err := store.ByRun(ctx, j.RunID())
	require.NoError(t, err)
	require.Len(t, events, 5)

	types := make([]string, 0, len(events))
	for _, e := range events {
		types = append(types, e.Type)
		assert.Equal(t, "true", e.Metadata["dry_run"])
	}
	assert.Equal(t, []string{TypeRunStarted, TypeRecordImported, TypeRecordImported, TypeRecordFailed, TypeRunCompleted}, types)

	var started RunStarted
	require.NoError(t, json.Unmarshal(events[0].Payload, &started))
	assert.True(t, started.DryRun)
	assert.Equal(t, "wxr", started.Provider)

	var page RecordImported
	require.NoError(t, json.Unmarshal(events[1].Payload, &page))
	assert.Equal(t, "content/about/index.html", page.Path)
	assert.NotEmpty(t, page.Fingerprint)

	var res RecordImported
	require.NoError(t, json.Unmarshal(events[2].Payload, &res))
	assert.True(t, strings.HasPrefix(res.Fingerprint, "sha256:"))
	assert.True(t, res.Collision)

	var failed RecordFailed
	require.NoError(t, json.Unmarshal(events[3].Payload, &failed))
	assert.Contains(t, failed.Error, "is required")

	require.Len(t, sink.events, 5)
	assert.Equal(t, TypeRunCompleted, sink.events[4].Type)
}

func TestJournal_SinkFailureDoesNotFailRun(t *testing.T) {
	store := newStore(t)
	j := New(store, false, WithSink(&recordingSink{err: errors.New("broker down")}), WithRunID("fixed"))

	require.NoError(t, j.Started(t.Context(), RunStarted{Provider: "wxr"}))
	events, err := store.ByRun(t.Context(), "fixed")
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestJournal_StoreFailureIsJournalError(t *testing.T) {
	store, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, store.Close())

	err = New(store, false).Started(context.Background(), RunStarted{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to append event")
}

func TestFingerprint_StableAndContentSensitive(t *testing.T) {
	a := &record.Result{Kind: record.KindPost, Content: []byte("---\ntitle: A\n---\nbody")}
	b := &record.Result{Kind: record.KindPost, Content: []byte("---\ntitle: A\n---\nbody")}
	c := &record.Result{Kind: record.KindPost, Content: []byte("---\ntitle: A\n---\nother")}

	assert.Equal(t, Fingerprint(a), Fingerprint(b))
	assert.NotEqual(t, Fingerprint(a), Fingerprint(c))
}

func TestSummarize(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	payload := func(v any) []byte {
		data, _ := json.Marshal(v)
		return data
	}
	events := []Event{
		{RunID: "old", Type: TypeRunStarted, Timestamp: t0, Payload: payload(RunStarted{Provider: "wxr"})},
		{RunID: "old", Type: TypeRecordImported, Timestamp: t0, Payload: payload(RecordImported{Collision: true})},
		{RunID: "old", Type: TypeRecordFailed, Timestamp: t0, Payload: payload(RecordFailed{})},
		{RunID: "old", Type: TypeRunCompleted, Timestamp: t0.Add(time.Second), Payload: payload(RunCompleted{Outcome: "partial"})},
		{RunID: "new", Type: TypeRunStarted, Timestamp: t0.Add(time.Hour), Payload: payload(RunStarted{Provider: "wxr", DryRun: true})},
	}

	runs := Summarize(events)
	require.Len(t, runs, 2)

	assert.Equal(t, "new", runs[0].RunID)
	assert.Equal(t, StatusRunning, runs[0].Status)
	assert.True(t, runs[0].DryRun)

	old := runs[1]
	assert.Equal(t, StatusCompleted, old.Status)
	assert.Equal(t, 1, old.Imported)
	assert.Equal(t, 1, old.Failed)
	assert.Equal(t, 1, old.Collisions)
	assert.Equal(t, "partial", old.Outcome)
	require.NotNil(t, old.CompletedAt)
}
