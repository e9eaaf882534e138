package metrics

import (
	"fmt"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "siteimport"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	reg           *prom.Registry
	stageDuration *prom.HistogramVec
	runDuration   prom.Histogram
	records       *prom.CounterVec
	collisions    prom.Counter
	fetchDuration *prom.HistogramVec
	rewriteRules  prom.Gauge
	runOutcome    *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers the import metrics on reg,
// or on a fresh registry when reg is nil.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{reg: reg}
	pr.stageDuration = prom.NewHistogramVec(prom.HistogramOpts{
		Namespace: namespace,
		Name:      "stage_duration_seconds",
		Help:      "Duration of import stages (provider, transform, rewrite, persist)",
		Buckets:   prom.DefBuckets,
	}, []string{"stage"})
	pr.runDuration = prom.NewHistogram(prom.HistogramOpts{
		Namespace: namespace,
		Name:      "run_duration_seconds",
		Help:      "Total import run duration",
		Buckets:   prom.DefBuckets,
	})
	pr.records = prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "records_total",
		Help:      "Records processed by kind and result",
	}, []string{"kind", "result"})
	pr.collisions = prom.NewCounter(prom.CounterOpts{
		Namespace: namespace,
		Name:      "collisions_total",
		Help:      "Results whose output path was already taken",
	})
	pr.fetchDuration = prom.NewHistogramVec(prom.HistogramOpts{
		Namespace: namespace,
		Name:      "fetch_duration_seconds",
		Help:      "Duration of remote resource downloads",
		Buckets:   prom.DefBuckets,
	}, []string{"result"})
	pr.rewriteRules = prom.NewGauge(prom.GaugeOpts{
		Namespace: namespace,
		Name:      "rewrite_rules",
		Help:      "URL substitutions applied in the last run",
	})
	pr.runOutcome = prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "run_outcomes_total",
		Help:      "Import runs by final status",
	}, []string{"outcome"})
	reg.MustRegister(pr.stageDuration, pr.runDuration, pr.records, pr.collisions, pr.fetchDuration, pr.rewriteRules, pr.runOutcome)
	return pr
}

// Registry returns the registry the metrics are registered on.
func (p *PrometheusRecorder) Registry() *prom.Registry { return p.reg }

// WriteTextfile writes the registry in text exposition format to path.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if err := prom.WriteToTextfile(path, p.reg); err != nil {
		return fmt.Errorf("write metrics to %s: %w", path, err)
	}
	return nil
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil || p.stageDuration == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	if p == nil || p.runDuration == nil {
		return
	}
	p.runDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncRecordResult(kind string, result ResultLabel) {
	if p == nil || p.records == nil {
		return
	}
	p.records.WithLabelValues(kind, string(result)).Inc()
}

func (p *PrometheusRecorder) IncCollision() {
	if p == nil || p.collisions == nil {
		return
	}
	p.collisions.Inc()
}

func (p *PrometheusRecorder) ObserveFetch(d time.Duration, success bool) {
	if p == nil || p.fetchDuration == nil {
		return
	}
	res := "failed"
	if success {
		res = "success"
	}
	p.fetchDuration.WithLabelValues(res).Observe(d.Seconds())
}

func (p *PrometheusRecorder) SetRewriteRules(n int) {
	if p == nil || p.rewriteRules == nil {
		return
	}
	p.rewriteRules.Set(float64(n))
}

func (p *PrometheusRecorder) IncRunOutcome(outcome OutcomeLabel) {
	if p == nil || p.runOutcome == nil {
		return
	}
	p.runOutcome.WithLabelValues(string(outcome)).Inc()
}
