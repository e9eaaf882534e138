package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/siteimport/internal/config"
	"git.home.luguber.info/inful/siteimport/internal/fetch"
	"git.home.luguber.info/inful/siteimport/internal/foundation/errors"
	"git.home.luguber.info/inful/siteimport/internal/importer"
	"git.home.luguber.info/inful/siteimport/internal/journal"
	"git.home.luguber.info/inful/siteimport/internal/linkreport"
	"git.home.luguber.info/inful/siteimport/internal/logfields"
	"git.home.luguber.info/inful/siteimport/internal/metrics"
	"git.home.luguber.info/inful/siteimport/internal/provider"
	"git.home.luguber.info/inful/siteimport/internal/provider/wxr"
	"git.home.luguber.info/inful/siteimport/internal/record"
	"git.home.luguber.info/inful/siteimport/internal/sitefs"
)

// ImportCmd implements the 'import' command. Flags override the
// configuration file.
type ImportCmd struct {
	File           string `arg:"" optional:"" help:"Export file to import (defaults to import.source)"`
	Provider       string `help:"Export format provider (default wxr)"`
	Dest           string `short:"d" help:"Site source directory (default current directory)"`
	DryRun         bool   `name:"dry-run" help:"Report what would be imported without writing files"`
	PostLayout     string `name:"post-layout" help:"Layout for posts when they have none"`
	PageLayout     string `name:"page-layout" help:"Layout for pages when they have none"`
	FetchImages    bool   `name:"fetch-images" help:"Download resources such as images"`
	NotReplaceURLs bool   `name:"not-replace-urls" help:"Keep source URLs in pages and posts"`
	AssetsDir      string `name:"assets-dir" help:"Directory for resources, relative to content (default assets)"`
	Workers        int    `help:"Records transformed concurrently (default 4)"`
	Journal        string `help:"SQLite journal path"`
	NATSURL        string `name:"nats-url" help:"Publish journal events to this NATS server"`
	MetricsFile    string `name:"metrics-file" help:"Write Prometheus metrics to this file when done"`
}

func (i *ImportCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	i.apply(cfg)
	if err := config.Validate(cfg); err != nil {
		return err
	}
	return RunImport(g.context(), g.out(), cfg)
}

func (i *ImportCmd) apply(cfg *config.Config) {
	im := &cfg.Import
	if i.File != "" {
		im.Source = i.File
	}
	if i.Provider != "" {
		im.Provider = i.Provider
	}
	if i.Dest != "" {
		im.Dest = i.Dest
	}
	if i.DryRun {
		im.DryRun = true
	}
	if i.PostLayout != "" {
		im.PostLayout = i.PostLayout
	}
	if i.PageLayout != "" {
		im.PageLayout = i.PageLayout
	}
	if i.FetchImages {
		im.FetchResources = true
	}
	if i.NotReplaceURLs {
		off := false
		im.ReplaceURLs = &off
	}
	if i.AssetsDir != "" {
		im.AssetsDir = i.AssetsDir
	}
	if i.Workers > 0 {
		im.Workers = i.Workers
	}
	if i.Journal != "" {
		cfg.Journal.Path = i.Journal
	}
	if i.NATSURL != "" {
		cfg.Journal.NATSURL = i.NATSURL
	}
	if i.MetricsFile != "" {
		cfg.Metrics.File = i.MetricsFile
	}
}

// Providers returns the registry of export formats the CLI knows.
func Providers() *provider.Registry {
	reg := provider.NewRegistry()
	if err := wxr.Register(reg); err != nil {
		panic(err)
	}
	return reg
}

// RunImport performs one import described by cfg and prints the outcome to out.
func RunImport(ctx context.Context, out io.Writer, cfg *config.Config) error {
	start := time.Now()
	im := cfg.Import
	if im.Source == "" {
		return errors.ConfigError("no export file given").
			WithContext("option", "import.source").
			Build()
	}

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	var prom *metrics.PrometheusRecorder
	if cfg.Metrics.File != "" {
		prom = metrics.NewPrometheusRecorder(nil)
		recorder = prom
	}

	jr, closeJournal, err := openJournal(cfg)
	if err != nil {
		return err
	}
	defer closeJournal()

	runLog := slog.With(logfields.Provider(im.Provider), logfields.File(im.Source))
	if jr != nil {
		runLog = runLog.With(logfields.RunID(jr.RunID()))
		journalWarn(jr.Started(ctx, journal.RunStarted{
			Provider:       im.Provider,
			Source:         im.Source,
			Dest:           im.Dest,
			FetchResources: im.FetchResources,
			ReplaceURLs:    im.ReplaceURLsEnabled(),
		}))
	}
	runLog.Info("Starting import", slog.String("dest", im.Dest), logfields.DryRun(im.DryRun))

	fetcher := fetch.NewHTTPFetcher(
		fetch.WithUserAgent(cfg.Fetch.UserAgent),
		fetch.WithTimeout(cfg.FetchTimeout()),
	)
	imp := importer.New(sitefs.NewFSStore(im.Dest),
		importer.WithFetcher(fetcher),
		importer.WithRecorder(recorder),
	)

	results, err := imp.ImportFrom(ctx, Providers(), im.Provider, importOptions(cfg))
	sum := summarize(results)
	if jr != nil {
		if err == nil {
			journalWarn(jr.Results(ctx, results))
		}
		completed := journal.RunCompleted{
			Total:      len(results),
			Imported:   sum.imported,
			Failed:     sum.failed,
			Collisions: sum.collisions,
			DurationMS: time.Since(start).Milliseconds(),
			Outcome:    sum.outcome(ctx, err),
		}
		if err != nil {
			completed.Error = err.Error()
		}
		journalWarn(jr.Completed(context.WithoutCancel(ctx), completed))
	}
	if prom != nil {
		if werr := prom.WriteTextfile(cfg.Metrics.File); werr != nil {
			runLog.Warn("Failed to write metrics file", logfields.Error(werr))
		}
	}
	if err != nil {
		return err
	}

	printResults(out, results)
	printSummary(out, sum, im.DryRun)
	if findings := linkreport.Scan(results, linkreport.SourceHosts(results)); len(findings) > 0 {
		printFindings(out, findings)
	}
	return nil
}

func importOptions(cfg *config.Config) importer.Options {
	im := cfg.Import
	return importer.Options{
		DryRun:         im.DryRun,
		FetchResources: im.FetchResources,
		KeepSourceURLs: !im.ReplaceURLsEnabled(),
		PostLayout:     im.PostLayout,
		PageLayout:     im.PageLayout,
		AssetsDir:      im.AssetsDir,
		Workers:        im.Workers,
		Provider:       provider.Options{wxr.OptionFile: im.Source},
	}
}

// openJournal opens the configured journal. Without a journal path it
// returns a nil journal and a no-op closer.
func openJournal(cfg *config.Config) (*journal.Journal, func(), error) {
	if cfg.Journal.Path == "" {
		return nil, func() {}, nil
	}

	store, err := journal.NewSQLiteStore(cfg.Journal.Path)
	if err != nil {
		return nil, nil, errors.JournalError("failed to open journal").
			WithCause(err).
			WithContext("path", cfg.Journal.Path).
			Build()
	}
	closers := []func() error{store.Close}

	var opts []journal.Option
	if cfg.Journal.NATSURL != "" {
		sink, err := journal.NewNATSSink(cfg.Journal.NATSURL, cfg.Journal.SubjectPrefix)
		if err != nil {
			// The local journal still works without the event stream.
			slog.Warn("Journal events will not be published",
				slog.String("nats_url", cfg.Journal.NATSURL),
				logfields.Error(err))
		} else {
			opts = append(opts, journal.WithSink(sink))
			closers = append([]func() error{sink.Close}, closers...)
		}
	}

	closeAll := func() {
		for _, c := range closers {
			if err := c(); err != nil {
				slog.Warn("Failed to close journal", logfields.Error(err))
			}
		}
	}
	return journal.New(store, cfg.Import.DryRun, opts...), closeAll, nil
}

func journalWarn(err error) {
	if err != nil {
		slog.Warn("Journal write failed", logfields.Error(err))
	}
}

type runSummary struct {
	imported   int
	failed     int
	collisions int
}

func summarize(results []*record.Result) runSummary {
	var s runSummary
	for _, r := range results {
		switch {
		case r.HasError():
			s.failed++
		default:
			s.imported++
			if r.Collision {
				s.collisions++
			}
		}
	}
	return s
}

func (s runSummary) outcome(ctx context.Context, err error) string {
	switch {
	case ctx.Err() != nil:
		return string(metrics.OutcomeCanceled)
	case err != nil, s.failed > 0 && s.imported == 0:
		return string(metrics.OutcomeFailed)
	case s.failed > 0:
		return string(metrics.OutcomePartial)
	default:
		return string(metrics.OutcomeSuccess)
	}
}

func (s runSummary) String() string {
	return fmt.Sprintf("%d imported, %d failed, %d collisions", s.imported, s.failed, s.collisions)
}
