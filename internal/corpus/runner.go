package corpus

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/specref/internal/convert"
	"git.home.luguber.info/inful/specref/internal/enrich"
	"git.home.luguber.info/inful/specref/internal/foundation/errors"
	"git.home.luguber.info/inful/specref/internal/logfields"
	"git.home.luguber.info/inful/specref/internal/metrics"
	"git.home.luguber.info/inful/specref/internal/notify"
	"git.home.luguber.info/inful/specref/internal/retry"
)

// Options selects the inputs and output of a Runner.
type Options struct {
	InputDir   string
	Extensions []string
	OutputDir  string
	Clean      bool // remove OutputDir before writing
	Workers    int
	Retry      retry.Policy // conversion retries; the zero policy never retries
}

// Runner converts, enriches and writes every document of an input directory.
type Runner struct {
	opts      Options
	converter convert.Converter
	enricher  *enrich.Enricher
	publisher notify.Publisher
	recorder  metrics.Recorder
	logger    *slog.Logger
}

// NewRunner returns a Runner. Events are not published and metrics are not
// recorded until configured with WithPublisher and WithRecorder.
func NewRunner(opts Options, conv convert.Converter, enr *enrich.Enricher) *Runner {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Runner{
		opts:      opts,
		converter: conv,
		enricher:  enr,
		publisher: notify.Noop{},
		recorder:  metrics.NoopRecorder{},
		logger:    slog.Default(),
	}
}

func (r *Runner) WithPublisher(p notify.Publisher) *Runner {
	if p != nil {
		r.publisher = p
	}
	return r
}

func (r *Runner) WithRecorder(rec metrics.Recorder) *Runner {
	if rec != nil {
		r.recorder = rec
	}
	return r
}

func (r *Runner) WithLogger(l *slog.Logger) *Runner {
	if l != nil {
		r.logger = l
	}
	return r
}

// Options returns the runner's options.
func (r *Runner) Options() Options { return r.opts }

type job struct {
	source string
	ts     string
	skip   string
}

// Run processes the input directory once. Per-document failures are reported
// in the Report; the error is reserved for problems that prevent the run.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	report := &Report{RunID: uuid.NewString(), Started: time.Now()}
	logger := r.logger.With(logfields.RunID(report.RunID))

	files, err := Discover(r.opts.InputDir, r.opts.Extensions)
	if err != nil {
		return nil, err
	}
	if r.opts.Clean {
		if err := cleanOutput(r.opts.OutputDir, r.opts.InputDir); err != nil {
			return nil, err
		}
	}

	jobs := plan(files)
	r.recorder.SetWorkers(r.opts.Workers)
	logger.Info("Run started",
		logfields.Path(r.opts.InputDir),
		logfields.Count(len(jobs)),
		logfields.Workers(r.opts.Workers))

	report.Results = runOrdered(ctx, jobs, r.opts.Workers, func(ctx context.Context, j job) Result {
		res := r.process(ctx, logger, report.RunID, j)
		r.recorder.IncDocumentOutcome(res.Status.outcome())
		return res
	})
	report.Duration = time.Since(report.Started)

	logger.Info("Run complete",
		slog.Int("succeeded", report.Count(StatusSuccess)),
		slog.Int("failed", report.Count(StatusFailed)),
		slog.Int("skipped", report.Count(StatusSkipped)),
		slog.Int("canceled", report.Count(StatusCanceled)),
		slog.Int("references", report.References()),
		logfields.DurationMS(float64(report.Duration.Milliseconds())))
	return report, nil
}

// plan assigns TS numbers. When several sources share a TS number the last in
// name order wins, which for 3GPP version suffixes is the newest release.
func plan(files []string) []job {
	jobs := make([]job, len(files))
	latest := map[string]int{}
	for i, f := range files {
		jobs[i].source = f
		ts, ok := TSNumberFromPath(f)
		if !ok {
			jobs[i].skip = "file name does not start with a TS number and version"
			continue
		}
		jobs[i].ts = ts
		if prev, seen := latest[ts]; seen {
			jobs[prev].skip = "superseded by " + filepath.Base(f)
		}
		latest[ts] = i
	}
	return jobs
}

func (r *Runner) process(ctx context.Context, logger *slog.Logger, runID string, j job) Result {
	start := time.Now()
	res := Result{Source: j.source, TSNumber: j.ts}
	logger = logger.With(logfields.Document(filepath.Base(j.source)))

	finish := func(status Status, err error) Result {
		res.Status, res.Err, res.Duration = status, err, time.Since(start)
		return res
	}

	if j.skip != "" {
		res.Reason = j.skip
		logger.Info("Document skipped", slog.String("reason", j.skip))
		return finish(StatusSkipped, nil)
	}
	if err := ctx.Err(); err != nil {
		return finish(StatusCanceled, err)
	}

	html, err := r.convert(ctx, logger, j.source)
	if err != nil {
		if ctx.Err() != nil {
			return finish(StatusCanceled, ctx.Err())
		}
		logger.Error("Conversion failed", logfields.Error(err))
		return finish(StatusFailed, err)
	}

	out, stats := r.enricher.Run(html)
	res.Stats = stats
	res.Output = OutputPath(r.opts.OutputDir, j.ts)
	if err := writeAtomic(res.Output, []byte(out)); err != nil {
		logger.Error("Write failed", logfields.Output(res.Output), logfields.Error(err))
		return finish(StatusFailed, err)
	}

	res = finish(StatusSuccess, nil)
	r.recorder.ObserveDocumentDuration(res.Duration)
	logger.Info("Document enriched",
		logfields.TSNumber(j.ts),
		logfields.Output(res.Output),
		logfields.Count(stats.TotalReferences()),
		logfields.DurationMS(float64(res.Duration.Milliseconds())))

	event := notify.Event{
		RunID:      runID,
		TSNumber:   j.ts,
		Source:     j.source,
		Output:     res.Output,
		References: stats.TotalReferences(),
		Edits:      map[string]int{},
		DurationMS: res.Duration.Milliseconds(),
	}
	for _, st := range stats.Stages {
		event.Edits[st.Name] = st.Edits
	}
	if err := r.publisher.Publish(ctx, event); err != nil {
		logger.Warn("Failed to publish document event", logfields.Error(err))
	}
	return res
}

func (r *Runner) convert(ctx context.Context, logger *slog.Logger, path string) (string, error) {
	name := r.converter.Name()
	if auto, ok := r.converter.(*convert.Auto); ok {
		name = auto.For(path).Name()
	}

	var html string
	err := r.opts.Retry.Do(ctx, func(ctx context.Context) error {
		start := time.Now()
		out, err := r.converter.Convert(ctx, path)
		r.recorder.ObserveConversionDuration(name, time.Since(start), err == nil)
		html = out
		return err
	}, retry.Transient, func(attempt int, delay time.Duration, err error) {
		logger.Warn("Conversion failed, retrying",
			logfields.Converter(name),
			slog.Int("attempt", attempt),
			slog.Duration("delay", delay),
			logfields.Error(err))
	})
	return html, err
}

// writeAtomic replaces path via a temporary file in the same directory.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to create output directory").
			WithContext("path", dir).
			Build()
	}
	tmp, err := os.CreateTemp(dir, ".specref-*.html")
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to create output file").
			WithContext("path", dir).
			Build()
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write output file").
			WithContext("path", path).
			Build()
	}
	if err := tmp.Close(); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write output file").
			WithContext("path", path).
			Build()
	}
	// #nosec G302 -- enriched documents are published artifacts
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to set output permissions").
			WithContext("path", path).
			Build()
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to replace output file").
			WithContext("path", path).
			Build()
	}
	return nil
}

// cleanOutput removes outDir unless doing so would delete the inputs.
func cleanOutput(outDir, inputDir string) error {
	out, err := filepath.Abs(outDir)
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to resolve output directory").Build()
	}
	in, err := filepath.Abs(inputDir)
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to resolve input directory").Build()
	}
	if rel, err := filepath.Rel(out, in); err == nil && !strings.HasPrefix(rel, "..") {
		return errors.ValidationError("refusing to clean an output directory that contains the inputs").
			WithContext("output", outDir).
			WithContext("input", inputDir).
			Build()
	}
	if err := os.RemoveAll(out); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to clean output directory").
			WithContext("path", outDir).
			Build()
	}
	return nil
}
