package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveStageDuration("link_references", 150*time.Millisecond)
	pr.AddStageEdits("link_references", 12)
	pr.AddStageEdits("link_references", 0)
	pr.AddReferences("document-clause", 3)
	pr.ObserveDocumentDuration(500 * time.Millisecond)
	pr.IncDocumentOutcome(OutcomeSuccess)
	pr.ObserveConversionDuration("libreoffice", 2*time.Second, true)
	pr.SetWorkers(4)

	assert.InDelta(t, 12, gathered(t, reg, "specref_stage_edits_total"), 0.001)
	assert.InDelta(t, 3, gathered(t, reg, "specref_references_linked_total"), 0.001)
	assert.InDelta(t, 1, gathered(t, reg, "specref_document_outcomes_total"), 0.001)
	assert.InDelta(t, 4, gathered(t, reg, "specref_workers"), 0.001)
}

// gathered sums the counter or gauge samples of one metric family.
func gathered(t *testing.T, reg *prom.Registry, name string) float64 {
	t.Helper()
	mfs, err := reg.Gather()
	require.NoError(t, err)

	var sum float64
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			sum += m.GetCounter().GetValue() + m.GetGauge().GetValue()
		}
	}
	return sum
}

func TestPrometheusRecorder_NilSafe(t *testing.T) {
	var pr *PrometheusRecorder
	assert.NotPanics(t, func() {
		pr.ObserveStageDuration("x", time.Second)
		pr.AddStageEdits("x", 1)
		pr.AddReferences("x", 1)
		pr.ObserveDocumentDuration(time.Second)
		pr.IncDocumentOutcome(OutcomeFailed)
		pr.ObserveConversionDuration("x", time.Second, false)
		pr.SetWorkers(1)
	})
}

func TestHTTPHandler(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.IncDocumentOutcome(OutcomeSkipped)

	srv := httptest.NewServer(HTTPHandler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `specref_document_outcomes_total{outcome="skipped"} 1`)
}

func TestTestRecorder(t *testing.T) {
	r := newTestRecorder()
	r.ObserveStageDuration("id_headings", time.Millisecond)
	r.AddStageEdits("id_headings", 2)
	r.IncDocumentOutcome(OutcomeSuccess)
	assert.Equal(t, 1, r.stageDurations["id_headings"])
	assert.Equal(t, 2, r.stageEdits["id_headings"])
	assert.Equal(t, 1, r.outcomes[OutcomeSuccess])
}
