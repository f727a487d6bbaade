// Package metrics provides observability hooks for specref enrichment runs.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so metrics collection needs no nil checks at call sites:
//
//	enricher := enrich.New(g).WithRecorder(metrics.NoopRecorder{})
//
// To enable metrics, swap in the Prometheus implementation and expose it:
//
//	reg := prometheus.NewRegistry()
//	recorder := metrics.NewPrometheusRecorder(reg)
//	http.Handle("/metrics", metrics.HTTPHandler(reg))
//
// The watch command does this when --metrics-addr is set; one-shot commands keep
// the noop recorder.
package metrics
