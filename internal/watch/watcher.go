// Package watch re-runs a corpus build when input documents change and,
// optionally, on a fixed rescan interval.
package watch

import (
	"context"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/specref/internal/foundation/errors"
	"git.home.luguber.info/inful/specref/internal/logfields"
)

// RunFunc performs one build. Errors are logged and do not stop watching.
type RunFunc func(ctx context.Context) error

// Options tunes a Watcher.
type Options struct {
	Extensions     []string      // file extensions that trigger a build; empty means any
	Debounce       time.Duration // quiet period after the last change before building
	RescanInterval time.Duration // zero disables periodic builds
	Logger         *slog.Logger
}

// Watcher serialises builds triggered by file events, the rescan schedule and
// explicit Trigger calls. Requests arriving during a build collapse into a
// single follow-up build.
type Watcher struct {
	dir      string
	run      RunFunc
	opts     Options
	logger   *slog.Logger
	requests chan string

	mu    sync.Mutex
	timer *time.Timer
}

// New returns a Watcher for dir.
func New(dir string, run RunFunc, opts Options) *Watcher {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	exts := make([]string, 0, len(opts.Extensions))
	for _, e := range opts.Extensions {
		exts = append(exts, strings.ToLower(e))
	}
	opts.Extensions = exts
	return &Watcher{
		dir:      dir,
		run:      run,
		opts:     opts,
		logger:   logger,
		requests: make(chan string, 1),
	}
}

// Trigger requests a build. It never blocks.
func (w *Watcher) Trigger(reason string) {
	select {
	case w.requests <- reason:
	default:
	}
}

// Run builds once, then watches until ctx is canceled.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.WrapError(err, errors.CategoryRuntime, "failed to create file watcher").Build()
	}
	defer func() { _ = fsw.Close() }()

	if err := fsw.Add(w.dir); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to watch input directory").
			WithContext("path", w.dir).
			Build()
	}

	if w.opts.RescanInterval > 0 {
		sched, err := w.schedule()
		if err != nil {
			return err
		}
		sched.Start()
		defer func() {
			if err := sched.Shutdown(); err != nil {
				w.logger.Warn("Failed to stop rescan scheduler", logfields.Error(err))
			}
		}()
	}

	loopCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go w.watchLoop(loopCtx, fsw)
	defer w.stopTimer()

	w.logger.Info("Watching for changes",
		logfields.Path(w.dir),
		slog.Duration("debounce", w.opts.Debounce),
		slog.Duration("rescan_interval", w.opts.RescanInterval))

	w.Trigger("startup")
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Watch stopped")
			return nil
		case reason := <-w.requests:
			w.logger.Info("Build triggered", slog.String("reason", reason))
			if err := w.run(ctx); err != nil && ctx.Err() == nil {
				w.logger.Error("Build failed", logfields.Error(err))
			}
		}
	}
}

func (w *Watcher) schedule() (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryRuntime, "failed to create rescan scheduler").Build()
	}
	_, err = sched.NewJob(
		gocron.DurationJob(w.opts.RescanInterval),
		gocron.NewTask(w.Trigger, "rescan"),
		gocron.WithName("specref-rescan"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = sched.Shutdown()
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to schedule rescan").
			WithContext("interval", w.opts.RescanInterval.String()).
			Build()
	}
	return sched, nil
}

func (w *Watcher) watchLoop(ctx context.Context, fsw *fsnotify.Watcher) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("Input change detected", logfields.Path(event.Name), slog.String("op", event.Op.String()))
			w.debounce(filepath.Base(event.Name))
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.logger.Error("File watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return false
	}
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "~$") {
		return false
	}
	return len(w.opts.Extensions) == 0 || slices.Contains(w.opts.Extensions, strings.ToLower(filepath.Ext(name)))
}

func (w *Watcher) debounce(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.opts.Debounce, func() { w.Trigger("changed " + name) })
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}
