package journal

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/siteimport/internal/foundation/errors"
	"git.home.luguber.info/inful/siteimport/internal/logfields"
	"git.home.luguber.info/inful/siteimport/internal/record"
)

// Journal writes the events of a single run.
type Journal struct {
	store  Store
	sink   Sink
	runID  string
	dryRun bool
}

// Option configures a Journal.
type Option func(*Journal)

// WithSink publishes every stored event to sink as well.
func WithSink(sink Sink) Option {
	return func(j *Journal) { j.sink = sink }
}

// WithRunID overrides the generated run ID.
func WithRunID(id string) Option {
	return func(j *Journal) { j.runID = id }
}

// New starts a journal for a new run on store.
func New(store Store, dryRun bool, opts ...Option) *Journal {
	j := &Journal{store: store, runID: uuid.NewString(), dryRun: dryRun}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// RunID identifies the run in the store.
func (j *Journal) RunID() string { return j.runID }

// Started records the start of the run.
func (j *Journal) Started(ctx context.Context, e RunStarted) error {
	e.DryRun = j.dryRun
	return j.append(ctx, TypeRunStarted, e)
}

// Results records one event per result, in order.
func (j *Journal) Results(ctx context.Context, results []*record.Result) error {
	for _, r := range results {
		var err error
		if r.HasError() {
			err = j.append(ctx, TypeRecordFailed, RecordFailed{
				Kind:            r.Kind.String(),
				SourcePermalink: r.SourcePermalink,
				Error:           r.Message(),
			})
		} else {
			err = j.append(ctx, TypeRecordImported, RecordImported{
				Kind:            r.Kind.String(),
				SourcePermalink: r.SourcePermalink,
				Permalink:       r.Permalink,
				Path:            r.RelativePath,
				Collision:       r.Collision,
				Fingerprint:     Fingerprint(r),
			})
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Completed records the end of the run.
func (j *Journal) Completed(ctx context.Context, e RunCompleted) error {
	return j.append(ctx, TypeRunCompleted, e)
}

func (j *Journal) append(ctx context.Context, eventType string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return errors.JournalError("failed to marshal event payload").
			WithCause(err).
			WithContext("event_type", eventType).
			Build()
	}

	meta := map[string]string{"dry_run": strconv.FormatBool(j.dryRun)}
	if err := j.store.Append(ctx, j.runID, eventType, data, meta); err != nil {
		return errors.JournalError("failed to append event").
			WithCause(err).
			WithContext("event_type", eventType).
			WithContext("run_id", j.runID).
			Build()
	}

	if j.sink != nil {
		e := Event{RunID: j.runID, Type: eventType, Payload: data, Metadata: meta}
		if err := j.sink.Publish(ctx, e); err != nil {
			// Best effort: the event is already stored.
			slog.Warn("Failed to publish journal event",
				logfields.RunID(j.runID),
				slog.String("event_type", eventType),
				logfields.Error(err))
		}
	}
	return nil
}
