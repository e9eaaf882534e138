// Package metrics records import run metrics.
//
// Components receive a Recorder and default to NoopRecorder, so call sites
// never check for nil:
//
//	imp := importer.New(store, importer.WithRecorder(metrics.NoopRecorder{}))
//
// The CLI swaps in a PrometheusRecorder when --metrics-file is given and writes
// the registry in text exposition format once the run is over, ready for the
// node_exporter textfile collector.
package metrics
