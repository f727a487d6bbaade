package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"git.home.luguber.info/inful/specref/internal/config"
	"git.home.luguber.info/inful/specref/internal/enrich"
	"git.home.luguber.info/inful/specref/internal/foundation/errors"
)

// RefsCmd implements the 'refs' command.
type RefsCmd struct {
	DocumentFlags `embed:""`

	Format string `short:"f" help:"Output format (text, json)" enum:"text,json" default:"text"`
}

type refRow struct {
	Form   string `json:"form"`
	TS     string `json:"ts,omitempty"`
	Clause string `json:"clause,omitempty"`
	Href   string `json:"href"`
	Text   string `json:"text"`
	Offset int    `json:"offset"`
}

func (r *RefsCmd) Run(ctx context.Context, g *Global, root *CLI) error {
	cfg, err := root.load(g, func(cfg *config.Config) { r.apply(cfg) })
	if err != nil {
		return err
	}
	doc, err := r.read(ctx, g, cfg)
	if err != nil {
		return err
	}
	gr, err := newGrammar(cfg)
	if err != nil {
		return err
	}

	// References are listed as the enricher sees them, after markup cleanup.
	doc = enrich.RemoveLanguageSpans(enrich.RemoveHardSpaces(doc))
	refs := enrich.FindReferences(doc, gr)

	rows := make([]refRow, 0, len(refs))
	for _, ref := range refs {
		href, _ := gr.Href(ref)
		rows = append(rows, refRow{
			Form:   ref.Form,
			TS:     ref.TS,
			Clause: ref.Clause,
			Href:   href,
			Text:   ref.Text,
			Offset: ref.Span.Start,
		})
	}

	if r.Format == "json" {
		enc := json.NewEncoder(g.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rows); err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "failed to write references").Build()
		}
		return nil
	}

	tw := tabwriter.NewWriter(g.Stdout, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "FORM\tTS\tCLAUSE\tHREF\tTEXT")
	for _, row := range rows {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", row.Form, dash(row.TS), dash(row.Clause), row.Href, row.Text)
	}
	if err := tw.Flush(); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write references").Build()
	}
	return nil
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
