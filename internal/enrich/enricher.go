package enrich

import (
	"context"
	"log/slog"
	"maps"
	"time"

	"git.home.luguber.info/inful/specref/internal/grammar"
	"git.home.luguber.info/inful/specref/internal/logfields"
	"git.home.luguber.info/inful/specref/internal/metrics"
)

// StageStats describes one stage execution.
type StageStats struct {
	Name     string
	Edits    int
	Duration time.Duration
}

// Stats summarises one Run.
type Stats struct {
	Stages     []StageStats
	References map[string]int // links per grammar form
	Duration   time.Duration
}

// Edits returns the number of edits made by the named stage.
func (s Stats) Edits(stage string) int {
	for _, st := range s.Stages {
		if st.Name == stage {
			return st.Edits
		}
	}
	return 0
}

// TotalReferences returns the number of linked references across all forms.
func (s Stats) TotalReferences() int {
	n := 0
	for _, c := range s.References {
		n += c
	}
	return n
}

// Enricher runs a configurable selection of stages with logging and metrics.
// It holds no per-document state and is safe for concurrent use once configured.
type Enricher struct {
	grammar   *grammar.Grammar
	logger    *slog.Logger
	recorder  metrics.Recorder
	tocMarker string
	include   map[string]struct{}
}

// New returns an Enricher that links references with g, or with the default
// grammar when g is nil.
func New(g *grammar.Grammar) *Enricher {
	if g == nil {
		g = defaultGrammar()
	}
	return &Enricher{
		grammar:   g,
		logger:    slog.Default(),
		recorder:  metrics.NoopRecorder{},
		tocMarker: DefaultTOCMarker,
	}
}

// WithLogger sets the logger used for per-stage debug output.
func (e *Enricher) WithLogger(l *slog.Logger) *Enricher {
	if l != nil {
		e.logger = l
	}
	return e
}

// WithRecorder sets the metrics recorder.
func (e *Enricher) WithRecorder(r metrics.Recorder) *Enricher {
	if r != nil {
		e.recorder = r
	}
	return e
}

// WithTOCMarker sets the opening-tag prefix that starts the table of contents.
func (e *Enricher) WithTOCMarker(marker string) *Enricher {
	if marker != "" {
		e.tocMarker = marker
	}
	return e
}

// WithStages restricts the run to the stages in include; see ParseStages.
func (e *Enricher) WithStages(include map[string]struct{}) *Enricher {
	e.include = maps.Clone(include)
	return e
}

// Grammar returns the grammar used for reference linking.
func (e *Enricher) Grammar() *grammar.Grammar { return e.grammar }

// Stages returns the names of the stages Run executes, in order.
func (e *Enricher) Stages() []string {
	pipeline := buildPipeline(e.include)
	names := make([]string, len(pipeline))
	for i, s := range pipeline {
		names[i] = s.name
	}
	return names
}

// Run applies the selected stages to doc.
func (e *Enricher) Run(doc string) (string, Stats) {
	start := time.Now()
	pipeline := buildPipeline(e.include)
	stats := Stats{
		Stages:     make([]StageStats, 0, len(pipeline)),
		References: map[string]int{},
	}

	for _, s := range pipeline {
		stageStart := time.Now()
		out, res := s.run(e, doc)
		elapsed := time.Since(stageStart)
		doc = out

		stats.Stages = append(stats.Stages, StageStats{Name: s.name, Edits: res.edits, Duration: elapsed})
		for form, n := range res.refs {
			stats.References[form] += n
			e.recorder.AddReferences(form, n)
		}
		e.recorder.ObserveStageDuration(s.name, elapsed)
		e.recorder.AddStageEdits(s.name, res.edits)

		e.logger.LogAttrs(context.Background(), slog.LevelDebug, "Stage complete",
			logfields.Stage(s.name),
			logfields.Count(res.edits),
			logfields.DurationMS(float64(elapsed.Microseconds())/1000))
	}

	stats.Duration = time.Since(start)
	return doc, stats
}
