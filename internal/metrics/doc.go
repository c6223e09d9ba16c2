// Package metrics provides run metrics for linkfix.
//
// Components receive a Recorder; NoopRecorder is the default so callers never
// need nil checks. PrometheusRecorder backs the interface with a private
// registry that can be written to a node_exporter textfile after the run,
// since a one-shot tool has no scrape endpoint.
package metrics
