package enrich

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/specref/internal/foundation/errors"
	"git.home.luguber.info/inful/specref/internal/grammar"
	"git.home.luguber.info/inful/specref/internal/metrics"
)

const fullDocument = `<html><head><title>TS 23.501</title></head><body>
<div id="Table of Contents1" dir="ltr">
<p class="toc-1">4.2&nbsp;Architecture <a href="#__RefHeading___Toc1">12</a></p>
<p class="toc-1">Annex A <a href="#__RefHeading___Toc2">88</a></p>
</div>
<h2 class="western"><a name="__RefHeading___Toc1"></a>4.2	Architecture</h2>
<p><span lang="en-GB">The reference point is defined in TS 23.502 [3], clause 4.2.2.2.2, see 4.3.</span></p>
</body></html>`

const fullDocumentEnriched = `<html><head><title>TS 23.501</title></head><body>
<div id="Table of Contents1" dir="ltr">
<a href="#4.2"><p class="toc-1">4.2 Architecture <a href="#__RefHeading___Toc1">12</a></p></a>
<p class="toc-1">Annex A <a href="#__RefHeading___Toc2">88</a></p>
</div>
<h2 id="4.2" class="western"><a name="__RefHeading___Toc1"></a>4.2	Architecture</h2>
<p>The reference point is defined in <a href="../23.502/23.502.html#4.2.2.2.2">TS 23.502 [3], clause 4.2.2.2.2</a>, <a href="#4.3">see 4.3</a>.</p>
</body></html>`

func TestEnrich(t *testing.T) {
	assert.Equal(t, fullDocumentEnriched, Enrich(fullDocument))
}

func TestEnricher_RunMatchesEnrich(t *testing.T) {
	out, stats := New(nil).Run(fullDocument)
	assert.Equal(t, fullDocumentEnriched, out)

	require.Len(t, stats.Stages, 5)
	assert.Equal(t, 1, stats.Edits(StageRemoveHardSpaces))
	assert.Equal(t, 1, stats.Edits(StageRemoveLanguageSpans))
	assert.Equal(t, 1, stats.Edits(StageLinkTOC))
	assert.Equal(t, 1, stats.Edits(StageIDHeadings))
	assert.Equal(t, 2, stats.Edits(StageLinkReferences))
	assert.Equal(t, map[string]int{"document-clause": 1, "bare-numeral": 1}, stats.References)
	assert.Equal(t, 2, stats.TotalReferences())
	assert.Zero(t, stats.Edits("unknown"))
}

func TestEnricher_WithStages(t *testing.T) {
	include, err := ParseStages([]string{"ID-Headings", " link_toc "})
	require.NoError(t, err)

	e := New(nil).WithStages(include)
	assert.Equal(t, []string{StageLinkTOC, StageIDHeadings}, e.Stages())

	out, stats := e.Run(`<h1>1 Scope</h1> see 4.5`)
	assert.Equal(t, `<h1 id="1">1 Scope</h1> see 4.5`, out)
	assert.Len(t, stats.Stages, 2)
	assert.Empty(t, stats.References)
}

func TestEnricher_CustomGrammarAndMarker(t *testing.T) {
	g, err := grammar.New([]grammar.Form{{Name: "section", Pattern: `\b[sS]ection\s+{clause}`}},
		grammar.WithDocumentHref("/{ts}"))
	require.NoError(t, err)

	e := New(g).WithTOCMarker(`<div class="toc"`)
	assert.Same(t, g, e.Grammar())

	out, stats := e.Run(`<div class="toc"><p>1 Scope</p></div><p>see section 1 and clause 2</p>`)
	assert.Equal(t, `<div class="toc"><a href="#1"><p>1 Scope</p></a></div><p>see <a href="#1">section 1</a> and clause 2</p>`, out)
	assert.Equal(t, map[string]int{"section": 1}, stats.References)
}

func TestEnricher_LogsAndRecords(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	rec := newFakeRecorder()

	_, _ = New(nil).WithLogger(logger).WithRecorder(rec).Run(fullDocument)

	assert.Contains(t, buf.String(), "stage=link_toc")
	assert.Contains(t, buf.String(), "count=2")
	assert.Len(t, rec.stages, 5)
	assert.Equal(t, 2, rec.edits[StageLinkReferences])
	assert.Equal(t, 1, rec.refs["document-clause"])
}

func TestEnricher_NilOptionsKeepDefaults(t *testing.T) {
	e := New(nil).WithLogger(nil).WithRecorder(nil).WithTOCMarker("")
	assert.Equal(t, DefaultTOCMarker, e.tocMarker)
	assert.NotNil(t, e.logger)
	assert.IsType(t, metrics.NoopRecorder{}, e.recorder)
}

func TestParseStages(t *testing.T) {
	include, err := ParseStages(nil)
	require.NoError(t, err)
	assert.Empty(t, include)

	include, err = ParseStages([]string{"remove-hard-spaces", "", "LINK_REFERENCES"})
	require.NoError(t, err)
	assert.Equal(t, map[string]struct{}{StageRemoveHardSpaces: {}, StageLinkReferences: {}}, include)

	_, err = ParseStages([]string{"link_everything"})
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
}

func TestStageNames(t *testing.T) {
	assert.Equal(t, []string{
		StageRemoveHardSpaces,
		StageRemoveLanguageSpans,
		StageLinkTOC,
		StageIDHeadings,
		StageLinkReferences,
	}, StageNames())
	assert.Equal(t, StageNames(), New(nil).Stages())
}

func TestEnricher_ConcurrentRuns(t *testing.T) {
	e := New(nil)
	var wg sync.WaitGroup
	results := make([]string, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = e.Run(fullDocument)
		}(i)
	}
	wg.Wait()
	for _, r := range results {
		assert.Equal(t, fullDocumentEnriched, r)
	}
}

type fakeRecorder struct {
	metrics.NoopRecorder
	mu     sync.Mutex
	stages []string
	edits  map[string]int
	refs   map[string]int
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{edits: map[string]int{}, refs: map[string]int{}}
}

func (f *fakeRecorder) ObserveStageDuration(stage string, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stages = append(f.stages, stage)
}

func (f *fakeRecorder) AddStageEdits(stage string, n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.edits[stage] += n
}

func (f *fakeRecorder) AddReferences(form string, n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refs[form] += n
}
