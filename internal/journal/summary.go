package journal

import (
	"encoding/json"
	"slices"
	"strings"
	"time"
)

// Run statuses in a RunSummary.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
)

// RunSummary is a read model of one run rebuilt from its events.
type RunSummary struct {
	RunID       string
	Status      string
	Provider    string
	Source      string
	DryRun      bool
	StartedAt   time.Time
	CompletedAt *time.Time
	Imported    int
	Failed      int
	Collisions  int
	Outcome     string
}

// Summarize folds events into per-run summaries, newest run first.
// Events with undecodable payloads are counted by type only.
func Summarize(events []Event) []*RunSummary {
	runs := map[string]*RunSummary{}
	for _, e := range events {
		s, ok := runs[e.RunID]
		if !ok {
			s = &RunSummary{RunID: e.RunID, Status: StatusRunning, StartedAt: e.Timestamp}
			runs[e.RunID] = s
		}

		switch e.Type {
		case TypeRunStarted:
			var p RunStarted
			if json.Unmarshal(e.Payload, &p) == nil {
				s.Provider = p.Provider
				s.Source = p.Source
				s.DryRun = p.DryRun
			}
			s.StartedAt = e.Timestamp
		case TypeRecordImported:
			s.Imported++
			var p RecordImported
			if json.Unmarshal(e.Payload, &p) == nil && p.Collision {
				s.Collisions++
			}
		case TypeRecordFailed:
			s.Failed++
		case TypeRunCompleted:
			var p RunCompleted
			if json.Unmarshal(e.Payload, &p) == nil {
				s.Outcome = p.Outcome
			}
			ts := e.Timestamp
			s.CompletedAt = &ts
			s.Status = StatusCompleted
		}
	}

	out := make([]*RunSummary, 0, len(runs))
	for _, s := range runs {
		out = append(out, s)
	}
	slices.SortFunc(out, func(a, b *RunSummary) int {
		if c := b.StartedAt.Compare(a.StartedAt); c != 0 {
			return c
		}
		return strings.Compare(a.RunID, b.RunID)
	})
	return out
}
