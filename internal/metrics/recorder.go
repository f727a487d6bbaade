package metrics

import "time"

// OutcomeLabel enumerates per-document result categories for counters.
type OutcomeLabel string

const (
	OutcomeSuccess  OutcomeLabel = "success"
	OutcomeFailed   OutcomeLabel = "failed"
	OutcomeSkipped  OutcomeLabel = "skipped"
	OutcomeCanceled OutcomeLabel = "canceled"
)

// Recorder defines observability hooks for enrichment and batch metrics. Implementations
// may forward to Prometheus, OpenTelemetry, etc. All methods must be safe for nil receivers
// when using the NoopRecorder (allowing optional injection).
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	AddStageEdits(stage string, n int)
	AddReferences(form string, n int)
	ObserveDocumentDuration(d time.Duration)
	IncDocumentOutcome(outcome OutcomeLabel)
	ObserveConversionDuration(converter string, d time.Duration, success bool)
	SetWorkers(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) AddStageEdits(string, int) {}
func (NoopRecorder) AddReferences(string, int) {}
func (NoopRecorder) ObserveDocumentDuration(time.Duration) {}
func (NoopRecorder) IncDocumentOutcome(OutcomeLabel) {}
func (NoopRecorder) ObserveConversionDuration(string, time.Duration, bool) {}
func (NoopRecorder) SetWorkers(int) {}
