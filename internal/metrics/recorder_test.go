package metrics

import (
	"sync"
	"time"
)

// testRecorder counts calls; shared with other packages' tests through copy, not export.
type testRecorder struct {
	mu             sync.Mutex
	stageDurations map[string]int
	stageEdits     map[string]int
	references     map[string]int
	documents      int
	outcomes       map[OutcomeLabel]int
	conversions    map[string]int
	workers        int
}

func newTestRecorder() *testRecorder {
	return &testRecorder{
		stageDurations: map[string]int{},
		stageEdits:     map[string]int{},
		references:     map[string]int{},
		outcomes:       map[OutcomeLabel]int{},
		conversions:    map[string]int{},
	}
}

func (t *testRecorder) ObserveStageDuration(stage string, _ time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stageDurations[stage]++
}

func (t *testRecorder) AddStageEdits(stage string, n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stageEdits[stage] += n
}

func (t *testRecorder) AddReferences(form string, n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.references[form] += n
}

func (t *testRecorder) ObserveDocumentDuration(time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.documents++
}

func (t *testRecorder) IncDocumentOutcome(outcome OutcomeLabel) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.outcomes[outcome]++
}

func (t *testRecorder) ObserveConversionDuration(converter string, _ time.Duration, _ bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.conversions[converter]++
}

func (t *testRecorder) SetWorkers(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.workers = n
}

var (
	_ Recorder = (*testRecorder)(nil)
	_ Recorder = NoopRecorder{}
	_ Recorder = (*PrometheusRecorder)(nil)
)
