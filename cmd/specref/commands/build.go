package commands

import (
	"log/slog"

	"git.home.luguber.info/inful/specref/internal/config"
	"git.home.luguber.info/inful/specref/internal/convert"
	"git.home.luguber.info/inful/specref/internal/corpus"
	"git.home.luguber.info/inful/specref/internal/enrich"
	"git.home.luguber.info/inful/specref/internal/grammar"
	"git.home.luguber.info/inful/specref/internal/metrics"
	"git.home.luguber.info/inful/specref/internal/notify"
	"git.home.luguber.info/inful/specref/internal/retry"
)

func newGrammar(cfg *config.Config) (*grammar.Grammar, error) {
	forms := grammar.DefaultForms()
	if cfg.Grammar.FormsFile != "" {
		loaded, err := grammar.LoadFormsFile(cfg.Grammar.FormsFile)
		if err != nil {
			return nil, err
		}
		forms = loaded
	}
	return grammar.New(forms,
		grammar.WithPolicy(grammar.Policy(cfg.Grammar.Policy)),
		grammar.WithDocumentHref(cfg.Grammar.DocumentHref))
}

func newEnricher(cfg *config.Config, logger *slog.Logger, rec metrics.Recorder) (*enrich.Enricher, error) {
	g, err := newGrammar(cfg)
	if err != nil {
		return nil, err
	}
	include, err := enrich.ParseStages(cfg.Enrich.Stages)
	if err != nil {
		return nil, err
	}
	return enrich.New(g).
		WithLogger(logger).
		WithRecorder(rec).
		WithTOCMarker(cfg.Enrich.TOCMarker).
		WithStages(include), nil
}

func newConverter(cfg *config.Config) convert.Converter {
	office := convert.NewLibreOffice(cfg.Converter.Command, cfg.Converter.Timeout)
	switch cfg.Converter.Kind {
	case config.ConverterLibreOffice:
		return office
	case config.ConverterPassthrough:
		return convert.Passthrough{}
	default:
		return convert.NewAuto(office)
	}
}

func newPublisher(cfg *config.Config, logger *slog.Logger) (notify.Publisher, error) {
	if cfg.Notify.NATSURL == "" {
		return notify.Noop{}, nil
	}
	return notify.NewNATS(cfg.Notify.NATSURL, cfg.Notify.Subject, logger)
}

// newRunner wires a corpus runner. The caller closes the returned publisher.
func newRunner(cfg *config.Config, logger *slog.Logger, rec metrics.Recorder) (*corpus.Runner, notify.Publisher, error) {
	enr, err := newEnricher(cfg, logger, rec)
	if err != nil {
		return nil, nil, err
	}
	pub, err := newPublisher(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	runner := corpus.NewRunner(corpus.Options{
		InputDir:   cfg.Input.Directory,
		Extensions: cfg.Input.Extensions,
		OutputDir:  cfg.Output.Directory,
		Clean:      cfg.Output.Clean,
		Workers:    cfg.Runner.Workers,
		Retry:      retry.FromConfig(cfg.Converter.Retry),
	}, newConverter(cfg), enr).
		WithPublisher(pub).
		WithRecorder(rec).
		WithLogger(logger)
	return runner, pub, nil
}

// CorpusFlags are shared by commands that process an input directory.
type CorpusFlags struct {
	Input   string `arg:"" optional:"" help:"Input directory (default: input.directory)" type:"path"`
	Output  string `short:"o" help:"Output directory (default: output.directory)" type:"path"`
	Workers int    `short:"j" help:"Documents processed in parallel (default: runner.workers)"`
	Clean   bool   `help:"Remove the output directory before writing"`
}

func (f *CorpusFlags) apply(cfg *config.Config) {
	if f.Input != "" {
		cfg.Input.Directory = f.Input
	}
	if f.Output != "" {
		cfg.Output.Directory = f.Output
	}
	if f.Workers != 0 {
		cfg.Runner.Workers = f.Workers
	}
	if f.Clean {
		cfg.Output.Clean = true
	}
}
