package metrics

import "time"

// ResultLabel enumerates per-record outcomes for counters.
type ResultLabel string

const (
	ResultImported ResultLabel = "imported"
	ResultFailed   ResultLabel = "failed"
	ResultSkipped  ResultLabel = "skipped"
)

// OutcomeLabel enumerates whole-run outcomes.
type OutcomeLabel string

const (
	OutcomeSuccess  OutcomeLabel = "success"
	OutcomePartial  OutcomeLabel = "partial"
	OutcomeFailed   OutcomeLabel = "failed"
	OutcomeCanceled OutcomeLabel = "canceled"
)

// Recorder defines observability hooks for an import run.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveRunDuration(d time.Duration)
	IncRecordResult(kind string, result ResultLabel)
	IncCollision()
	ObserveFetch(d time.Duration, success bool)
	SetRewriteRules(n int)
	IncRunOutcome(outcome OutcomeLabel)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObserveRunDuration(time.Duration)           {}
func (NoopRecorder) IncRecordResult(string, ResultLabel)        {}
func (NoopRecorder) IncCollision()                              {}
func (NoopRecorder) ObserveFetch(time.Duration, bool)           {}
func (NoopRecorder) SetRewriteRules(int)                        {}
func (NoopRecorder) IncRunOutcome(OutcomeLabel)                 {}
