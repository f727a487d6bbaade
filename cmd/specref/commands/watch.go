package commands

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/specref/internal/config"
	"git.home.luguber.info/inful/specref/internal/foundation/errors"
	"git.home.luguber.info/inful/specref/internal/logfields"
	"git.home.luguber.info/inful/specref/internal/metrics"
	"git.home.luguber.info/inful/specref/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	CorpusFlags `embed:""`

	Debounce    time.Duration `help:"Quiet period after a change before rebuilding (default: watch.debounce)"`
	Rescan      time.Duration `help:"Rebuild periodically even without changes; 0 disables (default: watch.rescan_interval)"`
	MetricsAddr string        `help:"Serve Prometheus metrics on this address, e.g. :9090 (default: watch.metrics_addr)"`
}

func (w *WatchCmd) Run(ctx context.Context, g *Global, root *CLI) error {
	cfg, err := root.load(g, func(cfg *config.Config) {
		w.apply(cfg)
		if w.Debounce > 0 {
			cfg.Watch.Debounce = w.Debounce
		}
		if w.Rescan > 0 {
			cfg.Watch.RescanInterval = w.Rescan
		}
		if w.MetricsAddr != "" {
			cfg.Watch.MetricsAddr = w.MetricsAddr
		}
	})
	if err != nil {
		return err
	}

	reg := prom.NewRegistry()
	rec := metrics.NewPrometheusRecorder(reg)
	if cfg.Watch.MetricsAddr != "" {
		stop, err := serveMetrics(g.Logger, cfg.Watch.MetricsAddr, reg)
		if err != nil {
			return err
		}
		defer stop()
	}

	runner, pub, err := newRunner(cfg, g.Logger, rec)
	if err != nil {
		return err
	}
	defer func() {
		if err := pub.Close(); err != nil {
			g.Logger.Warn("Failed to close publisher", logfields.Error(err))
		}
	}()

	build := func(ctx context.Context) error {
		report, err := runner.Run(ctx)
		if err != nil {
			return err
		}
		return report.Err()
	}
	return watch.New(cfg.Input.Directory, build, watch.Options{
		Extensions:     cfg.Input.Extensions,
		Debounce:       cfg.Watch.Debounce,
		RescanInterval: cfg.Watch.RescanInterval,
		Logger:         g.Logger,
	}).Run(ctx)
}

// serveMetrics starts the metrics endpoint and returns a function that shuts it down.
func serveMetrics(logger *slog.Logger, addr string, reg *prom.Registry) (func(), error) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler(reg))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	select {
	case err := <-errCh:
		return nil, errors.WrapError(err, errors.CategoryRuntime, "failed to serve metrics").
			WithContext("addr", addr).
			Build()
	case <-time.After(100 * time.Millisecond):
	}

	logger.Info("Serving metrics", slog.String("addr", addr))
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Warn("Failed to stop metrics server", logfields.Error(err))
		}
	}, nil
}
