package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once               sync.Once
	stageDuration      *prom.HistogramVec
	stageEdits         *prom.CounterVec
	references         *prom.CounterVec
	documentDuration   prom.Histogram
	documentOutcomes   *prom.CounterVec
	conversionDuration *prom.HistogramVec
	workers            prom.Gauge
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.stageDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "specref",
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual enrichment stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"})
		pr.stageEdits = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "specref",
			Name:      "stage_edits_total",
			Help:      "Annotations applied per enrichment stage",
		}, []string{"stage"})
		pr.references = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "specref",
			Name:      "references_linked_total",
			Help:      "Cross-references linked by grammar form",
		}, []string{"form"})
		pr.documentDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "specref",
			Name:      "document_duration_seconds",
			Help:      "Total processing duration per document",
			Buckets:   prom.DefBuckets,
		})
		pr.documentOutcomes = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "specref",
			Name:      "document_outcomes_total",
			Help:      "Document outcomes by final status",
		}, []string{"outcome"})
		pr.conversionDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "specref",
			Name:      "conversion_duration_seconds",
			Help:      "Duration of external document conversions",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}, []string{"converter", "result"})
		pr.workers = prom.NewGauge(prom.GaugeOpts{
			Namespace: "specref",
			Name:      "workers",
			Help:      "Worker count of the last batch run",
		})
		reg.MustRegister(pr.stageDuration, pr.stageEdits, pr.references, pr.documentDuration, pr.documentOutcomes, pr.conversionDuration, pr.workers)
	})
	return pr
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil || p.stageDuration == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) AddStageEdits(stage string, n int) {
	if p == nil || p.stageEdits == nil || n <= 0 {
		return
	}
	p.stageEdits.WithLabelValues(stage).Add(float64(n))
}

func (p *PrometheusRecorder) AddReferences(form string, n int) {
	if p == nil || p.references == nil || n <= 0 {
		return
	}
	p.references.WithLabelValues(form).Add(float64(n))
}

func (p *PrometheusRecorder) ObserveDocumentDuration(d time.Duration) {
	if p == nil || p.documentDuration == nil {
		return
	}
	p.documentDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncDocumentOutcome(outcome OutcomeLabel) {
	if p == nil || p.documentOutcomes == nil {
		return
	}
	p.documentOutcomes.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) ObserveConversionDuration(converter string, d time.Duration, success bool) {
	if p == nil || p.conversionDuration == nil {
		return
	}
	res := "failed"
	if success {
		res = "success"
	}
	p.conversionDuration.WithLabelValues(converter, res).Observe(d.Seconds())
}

func (p *PrometheusRecorder) SetWorkers(n int) {
	if p == nil || p.workers == nil {
		return
	}
	p.workers.Set(float64(n))
}
