package commands

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"git.home.luguber.info/inful/siteimport/internal/foundation/errors"
	"git.home.luguber.info/inful/siteimport/internal/journal"
)

// HistoryCmd implements the 'history' command.
type HistoryCmd struct {
	RunID   string `name:"run" help:"Show the events of a single run"`
	Hours   int    `default:"24" help:"Show runs started within the last N hours"`
	Journal string `help:"SQLite journal path (defaults to journal.path)"`
}

func (h *HistoryCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	path := h.Journal
	if path == "" {
		path = cfg.Journal.Path
	}
	if path == "" {
		return errors.ConfigError("no journal configured").
			WithContext("option", "journal.path").
			Build()
	}

	store, err := journal.NewSQLiteStore(path)
	if err != nil {
		return errors.JournalError("failed to open journal").WithCause(err).WithContext("path", path).Build()
	}
	defer func() { _ = store.Close() }()

	if h.RunID != "" {
		return RunEvents(g.context(), g.out(), store, h.RunID)
	}
	return RunHistory(g.context(), g.out(), store, time.Duration(h.Hours)*time.Hour)
}

// RunHistory prints a summary of every run with events in the last window.
func RunHistory(ctx context.Context, out io.Writer, store journal.Store, window time.Duration) error {
	end := time.Now()
	events, err := store.Range(ctx, end.Add(-window), end)
	if err != nil {
		return errors.JournalError("failed to read journal").WithCause(err).Build()
	}
	runs := journal.Summarize(events)
	if len(runs) == 0 {
		_, _ = fmt.Fprintln(out, "No runs found.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "RUN\tSTARTED\tSTATUS\tOUTCOME\tIMPORTED\tFAILED\tCOLLISIONS\tDRY RUN\tSOURCE")
	for _, r := range runs {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\t%d\t%t\t%s\n",
			r.RunID,
			r.StartedAt.Local().Format(time.DateTime),
			r.Status,
			dash(r.Outcome),
			r.Imported,
			r.Failed,
			r.Collisions,
			r.DryRun,
			dash(r.Source))
	}
	return tw.Flush()
}

// RunEvents prints the raw events of one run.
func RunEvents(ctx context.Context, out io.Writer, store journal.Store, runID string) error {
	events, err := store.ByRun(ctx, runID)
	if err != nil {
		return errors.JournalError("failed to read journal").WithCause(err).WithContext("run_id", runID).Build()
	}
	if len(events) == 0 {
		return errors.NotFoundError(fmt.Sprintf("no events for run %s", runID)).Build()
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "TIME\tTYPE\tPAYLOAD")
	for _, e := range events {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Timestamp.Local().Format(time.DateTime), e.Type, e.Payload)
	}
	return tw.Flush()
}
