package commands

import (
	"fmt"
	"os"

	"git.home.luguber.info/inful/specref/internal/foundation/errors"
	"git.home.luguber.info/inful/specref/internal/verify"
)

// VerifyCmd implements the 'verify' command.
type VerifyCmd struct {
	Path string `arg:"" help:"Enriched document, or an output directory to check across documents" type:"path"`
}

func (v *VerifyCmd) Run(g *Global) error {
	info, err := os.Stat(v.Path)
	if err != nil {
		return errors.WrapError(err, errors.CategoryNotFound, "path not found").
			WithContext("path", v.Path).
			Build()
	}

	var report *verify.Report
	if info.IsDir() {
		report, err = verify.Corpus(v.Path)
	} else {
		report, err = verify.Document(v.Path)
	}
	if err != nil {
		return err
	}
	return printVerifyReport(g, report)
}

func printVerifyReport(g *Global, report *verify.Report) error {
	for _, p := range report.Problems {
		_, _ = fmt.Fprintf(g.Stdout, "%s\t%s\t%s\n", p.Kind, p.Document, p.Href)
	}
	_, _ = fmt.Fprintf(g.Stdout, "%d documents, %d links checked, %d unresolved\n",
		report.Documents, report.Links, len(report.Problems))

	if report.OK() {
		return nil
	}
	return errors.ValidationError(fmt.Sprintf("%d unresolved links", len(report.Problems))).
		WithContext("missing_anchors", report.Count(verify.MissingAnchor)).
		WithContext("missing_documents", report.Count(verify.MissingDocument)).
		Build()
}
