// Package importer turns the records of a blog export into files of a static
// site: pages and posts with YAML front matter and downloaded resources.
//
// An import runs in stages. Records are transformed on a bounded worker
// pool; once every record is done, source permalinks are rewritten inside
// page and post bodies, and finally the results are written in input order.
package importer

import (
	"context"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/siteimport/internal/fetch"
	"git.home.luguber.info/inful/siteimport/internal/foundation/errors"
	"git.home.luguber.info/inful/siteimport/internal/logfields"
	"git.home.luguber.info/inful/siteimport/internal/metrics"
	"git.home.luguber.info/inful/siteimport/internal/permalink"
	"git.home.luguber.info/inful/siteimport/internal/provider"
	"git.home.luguber.info/inful/siteimport/internal/record"
	"git.home.luguber.info/inful/siteimport/internal/rewrite"
	"git.home.luguber.info/inful/siteimport/internal/sitefs"
)

// Importer imports records into a site store.
type Importer struct {
	store    sitefs.Store
	fetcher  fetch.Fetcher
	recorder metrics.Recorder
}

// Option configures an Importer.
type Option func(*Importer)

// WithFetcher sets the transport used for remote resources. Without one,
// imports that fetch resources are rejected.
func WithFetcher(f fetch.Fetcher) Option {
	return func(im *Importer) { im.fetcher = f }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(im *Importer) {
		if r != nil {
			im.recorder = r
		}
	}
}

// New creates an importer writing to store.
func New(store sitefs.Store, opts ...Option) *Importer {
	im := &Importer{store: store, recorder: metrics.NoopRecorder{}}
	for _, opt := range opts {
		opt(im)
	}
	return im
}

// ImportFrom looks up the named provider in reg and runs Import with it.
func (im *Importer) ImportFrom(ctx context.Context, reg *provider.Registry, name string, opts Options) ([]*record.Result, error) {
	p, err := reg.New(name)
	if err != nil {
		return nil, err
	}
	return im.Import(ctx, p, opts)
}

// Import runs one import with provider p and returns a result per record, in
// provider order. Skipped resources have no result.
//
// Only configuration and provider failures are returned as errors; anything
// that goes wrong with a single record ends up in that record's Result.
func (im *Importer) Import(ctx context.Context, p provider.Provider, opts Options) ([]*record.Result, error) {
	start := time.Now()
	opts = opts.withDefaults()
	if err := im.validate(opts); err != nil {
		return nil, err
	}

	if err := p.SetUp(opts.Provider); err != nil {
		return nil, providerFailure(err, "provider setup failed")
	}
	defer func() {
		if err := p.TearDown(); err != nil {
			slog.Warn("Provider teardown failed", logfields.Error(err))
		}
	}()

	records, err := p.Records(ctx)
	if err != nil {
		return nil, providerFailure(err, "failed to read records from provider")
	}
	slog.Info("Importing records",
		slog.Int("records", len(records)),
		slog.Int("workers", opts.Workers),
		logfields.DryRun(opts.DryRun))

	results := im.transformAll(ctx, records, opts)
	flagSharedPaths(results)

	if !opts.KeepSourceURLs {
		stageStart := time.Now()
		table := rewrite.FromResults(results)
		changed := table.ApplyTo(results)
		im.recorder.SetRewriteRules(table.Len())
		im.recorder.ObserveStageDuration("rewrite", time.Since(stageStart))
		slog.Debug("Rewrote source permalinks",
			slog.Int("rules", table.Len()),
			slog.Int("documents_changed", changed))
	}

	if !opts.DryRun {
		im.persist(ctx, results)
	}

	im.report(ctx, results, len(records), time.Since(start))
	return results, nil
}

func (im *Importer) validate(opts Options) error {
	if opts.FetchResources && im.fetcher == nil {
		return errors.ConfigError("fetching resources requires a network fetcher").
			WithContext("option", "fetch_resources").
			Build()
	}
	if permalink.Sanitize(opts.AssetsDir) == "" {
		return errors.ConfigError("assets directory must not be empty").
			WithContext("assets_dir", opts.AssetsDir).
			Build()
	}
	return nil
}

func providerFailure(err error, msg string) error {
	if errors.IsClassified(err) {
		return err
	}
	return errors.ProviderError(msg).WithCause(err).Build()
}

func (im *Importer) transformAll(ctx context.Context, records []*record.Record, opts Options) []*record.Result {
	start := time.Now()
	t := newTransformer(im, opts)

	out := runOrdered(records, opts.Workers, func(_ int, rec *record.Record) *record.Result {
		return t.transform(ctx, rec)
	})

	results := make([]*record.Result, 0, len(out))
	for _, res := range out {
		if res != nil {
			results = append(results, res)
		}
	}
	im.recorder.ObserveStageDuration("transform", time.Since(start))
	return results
}

func (im *Importer) persist(ctx context.Context, results []*record.Result) {
	start := time.Now()
	for i, res := range results {
		if res.HasError() {
			continue
		}
		if err := ctx.Err(); err != nil {
			results[i] = failedResult(res, err)
			continue
		}
		if err := im.store.Write(ctx, res.RelativePath, res.Content); err != nil {
			slog.Error("Failed to write imported file",
				logfields.Path(res.RelativePath),
				logfields.SourceURL(res.SourcePermalink),
				logfields.Error(err))
			results[i] = failedResult(res, errors.FileSystemError("failed to write file").
				WithCause(err).
				WithContext("path", res.RelativePath).
				Build())
		}
	}
	im.recorder.ObserveStageDuration("persist", time.Since(start))
}

func failedResult(res *record.Result, err error) *record.Result {
	return &record.Result{Kind: res.Kind, SourcePermalink: res.SourcePermalink, Err: err}
}

func (im *Importer) report(ctx context.Context, results []*record.Result, records int, elapsed time.Duration) {
	var failed, collisions int
	for _, res := range results {
		switch {
		case res.HasError():
			failed++
			im.recorder.IncRecordResult(res.Kind.String(), metrics.ResultFailed)
			slog.Warn("Record not imported",
				logfields.Kind(res.Kind.String()),
				logfields.SourceURL(res.SourcePermalink),
				logfields.Error(res.Err))
		default:
			im.recorder.IncRecordResult(res.Kind.String(), metrics.ResultImported)
			if res.Collision {
				collisions++
				im.recorder.IncCollision()
			}
		}
	}
	skipped := records - len(results)
	for range skipped {
		im.recorder.IncRecordResult(record.KindResource.String(), metrics.ResultSkipped)
	}

	outcome := metrics.OutcomeSuccess
	switch {
	case ctx.Err() != nil:
		outcome = metrics.OutcomeCanceled
	case failed > 0 && failed == len(results):
		outcome = metrics.OutcomeFailed
	case failed > 0:
		outcome = metrics.OutcomePartial
	}
	im.recorder.IncRunOutcome(outcome)
	im.recorder.ObserveRunDuration(elapsed)

	slog.Info("Import finished",
		slog.Int("results", len(results)),
		slog.Int("failed", failed),
		slog.Int("skipped", skipped),
		slog.Int("collisions", collisions),
		slog.String("outcome", string(outcome)),
		logfields.DurationMS(float64(elapsed.Milliseconds())))
}
