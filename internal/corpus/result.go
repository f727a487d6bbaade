package corpus

import (
	"fmt"
	"time"

	"git.home.luguber.info/inful/specref/internal/enrich"
	"git.home.luguber.info/inful/specref/internal/foundation/errors"
	"git.home.luguber.info/inful/specref/internal/metrics"
)

// Status is the outcome of processing one source document.
type Status string

const (
	StatusSuccess  Status = "success"
	StatusFailed   Status = "failed"
	StatusSkipped  Status = "skipped"
	StatusCanceled Status = "canceled"
)

func (s Status) outcome() metrics.OutcomeLabel {
	switch s {
	case StatusSuccess:
		return metrics.OutcomeSuccess
	case StatusSkipped:
		return metrics.OutcomeSkipped
	case StatusCanceled:
		return metrics.OutcomeCanceled
	default:
		return metrics.OutcomeFailed
	}
}

// Result describes one source document.
type Result struct {
	Source   string
	TSNumber string
	Output   string
	Status   Status
	Reason   string // why the document was skipped
	Err      error
	Stats    enrich.Stats
	Duration time.Duration
}

// Report collects the results of one Run in discovery order.
type Report struct {
	RunID    string
	Started  time.Time
	Duration time.Duration
	Results  []Result
}

// Count returns the number of results with status s.
func (r *Report) Count(s Status) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == s {
			n++
		}
	}
	return n
}

// References returns the number of references linked across all documents.
func (r *Report) References() int {
	n := 0
	for _, res := range r.Results {
		n += res.Stats.TotalReferences()
	}
	return n
}

// Err summarises failed and canceled documents as a single error, or nil when
// every document succeeded or was skipped.
func (r *Report) Err() error {
	failed, canceled := r.Count(StatusFailed), r.Count(StatusCanceled)
	if failed == 0 && canceled == 0 {
		return nil
	}
	b := errors.RuntimeError(fmt.Sprintf("%d of %d documents failed, %d canceled", failed, len(r.Results), canceled)).
		WithContext("run_id", r.RunID)
	for _, res := range r.Results {
		if res.Err != nil {
			b = b.WithCause(res.Err)
			break
		}
	}
	return b.Build()
}
