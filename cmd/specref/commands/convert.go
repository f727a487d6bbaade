package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/specref/internal/config"
	"git.home.luguber.info/inful/specref/internal/corpus"
	"git.home.luguber.info/inful/specref/internal/logfields"
	"git.home.luguber.info/inful/specref/internal/metrics"
	"git.home.luguber.info/inful/specref/internal/verify"
)

// ConvertCmd implements the 'convert' command.
type ConvertCmd struct {
	CorpusFlags `embed:""`

	Verify bool `help:"Check anchor links across the output after the run"`
}

func (c *ConvertCmd) Run(ctx context.Context, g *Global, root *CLI) error {
	cfg, err := root.load(g, func(cfg *config.Config) { c.apply(cfg) })
	if err != nil {
		return err
	}

	runner, pub, err := newRunner(cfg, g.Logger, metrics.NoopRecorder{})
	if err != nil {
		return err
	}
	defer func() {
		if err := pub.Close(); err != nil {
			g.Logger.Warn("Failed to close publisher", logfields.Error(err))
		}
	}()

	report, err := runner.Run(ctx)
	if err != nil {
		return err
	}
	printRunReport(g, report)
	if err := report.Err(); err != nil {
		return err
	}

	if c.Verify {
		vr, err := verify.Corpus(cfg.Output.Directory)
		if err != nil {
			return err
		}
		return printVerifyReport(g, vr)
	}
	return nil
}

func printRunReport(g *Global, report *corpus.Report) {
	for _, res := range report.Results {
		switch res.Status {
		case corpus.StatusSuccess:
			_, _ = fmt.Fprintf(g.Stdout, "ok\t%s\t%s\t%d refs\n", res.Source, res.Output, res.Stats.TotalReferences())
		case corpus.StatusSkipped:
			_, _ = fmt.Fprintf(g.Stdout, "skip\t%s\t%s\n", res.Source, res.Reason)
		default:
			_, _ = fmt.Fprintf(g.Stdout, "%s\t%s\t%v\n", res.Status, res.Source, res.Err)
		}
	}
	_, _ = fmt.Fprintf(g.Stdout, "%d enriched, %d skipped, %d failed, %d canceled, %d references (run %s)\n",
		report.Count(corpus.StatusSuccess),
		report.Count(corpus.StatusSkipped),
		report.Count(corpus.StatusFailed),
		report.Count(corpus.StatusCanceled),
		report.References(),
		report.RunID)
}
