package commands

import (
	"context"
	"io"
	"os"

	"git.home.luguber.info/inful/specref/internal/config"
	"git.home.luguber.info/inful/specref/internal/convert"
	"git.home.luguber.info/inful/specref/internal/foundation/errors"
	"git.home.luguber.info/inful/specref/internal/logfields"
	"git.home.luguber.info/inful/specref/internal/metrics"
)

// DocumentFlags select a single source document and tune recognition.
type DocumentFlags struct {
	Input   string `arg:"" optional:"" help:"Source document; HTML or an office format (default: stdin)"`
	Policy  string `help:"Winner among overlapping reference forms (first, longest)"`
	Grammar string `help:"YAML file with reference forms" type:"path"`
}

func (f *DocumentFlags) apply(cfg *config.Config) {
	if f.Policy != "" {
		cfg.Grammar.Policy = config.MatchPolicy(f.Policy)
	}
	if f.Grammar != "" {
		cfg.Grammar.FormsFile = f.Grammar
	}
}

// read returns the source as HTML text, converting office formats.
func (f *DocumentFlags) read(ctx context.Context, g *Global, cfg *config.Config) (string, error) {
	if f.Input == "" || f.Input == "-" {
		data, err := io.ReadAll(g.Stdin)
		if err != nil {
			return "", errors.WrapError(err, errors.CategoryFileSystem, "failed to read stdin").Build()
		}
		text, err := convert.DecodeHTML(data)
		if err != nil {
			return "", errors.WrapError(err, errors.CategoryConversion, "failed to decode stdin").Build()
		}
		return text, nil
	}
	return newConverter(cfg).Convert(ctx, f.Input)
}

// EnrichCmd implements the 'enrich' command.
type EnrichCmd struct {
	DocumentFlags `embed:""`

	Output string   `short:"o" help:"Write the enriched document to a file (default: stdout)" type:"path"`
	Stages []string `help:"Stages to run, comma separated (default: all)" sep:","`
}

func (e *EnrichCmd) Run(ctx context.Context, g *Global, root *CLI) error {
	cfg, err := root.load(g, func(cfg *config.Config) {
		e.apply(cfg)
		if len(e.Stages) > 0 {
			cfg.Enrich.Stages = e.Stages
		}
	})
	if err != nil {
		return err
	}

	doc, err := e.read(ctx, g, cfg)
	if err != nil {
		return err
	}
	enr, err := newEnricher(cfg, g.Logger, metrics.NoopRecorder{})
	if err != nil {
		return err
	}
	out, stats := enr.Run(doc)

	if e.Output == "" || e.Output == "-" {
		if _, err := io.WriteString(g.Stdout, out); err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "failed to write stdout").Build()
		}
	} else {
		// #nosec G306 -- enriched documents are published artifacts
		if err := os.WriteFile(e.Output, []byte(out), 0o644); err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "failed to write output").
				WithContext("path", e.Output).
				Build()
		}
	}

	g.Logger.Info("Document enriched",
		logfields.Document(displayName(e.Input)),
		logfields.Count(stats.TotalReferences()),
		logfields.DurationMS(float64(stats.Duration.Microseconds())/1000))
	return nil
}

func displayName(input string) string {
	if input == "" || input == "-" {
		return "stdin"
	}
	return input
}
