package verify

import (
	"io/fs"
	"net/url"
	"path/filepath"
	"sort"
	"strings"

	"git.home.luguber.info/inful/specref/internal/foundation/errors"
)

// ProblemKind classifies an unresolved link.
type ProblemKind string

const (
	MissingAnchor   ProblemKind = "missing-anchor"
	MissingDocument ProblemKind = "missing-document"
)

// Problem is a link whose target does not exist.
type Problem struct {
	Document string
	Href     string
	Kind     ProblemKind
}

// Report summarises a verification.
type Report struct {
	Documents int
	Links     int // links checked; external and unparsable links are not counted
	Problems  []Problem
}

// OK reports whether every checked link resolved.
func (r *Report) OK() bool { return len(r.Problems) == 0 }

// Count returns the number of problems of kind k.
func (r *Report) Count(k ProblemKind) int {
	n := 0
	for _, p := range r.Problems {
		if p.Kind == k {
			n++
		}
	}
	return n
}

// Document checks the same-document (#fragment) links of the file at path.
func Document(path string) (*Report, error) {
	page, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	report := &Report{Documents: 1}
	for _, href := range page.Links {
		u, err := url.Parse(href)
		if err != nil || !isLocal(u) || u.Path != "" || u.Fragment == "" {
			continue
		}
		report.Links++
		if !page.HasAnchor(u.Fragment) {
			report.Problems = append(report.Problems, Problem{Document: path, Href: href, Kind: MissingAnchor})
		}
	}
	return report, nil
}

// Corpus checks every HTML document below outDir, resolving relative links
// between documents. Links to files outside the corpus are reported as
// missing documents.
func Corpus(outDir string) (*Report, error) {
	pages := map[string]*Page{}
	err := filepath.WalkDir(outDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() || strings.HasPrefix(name, ".") || !strings.EqualFold(filepath.Ext(name), ".html") {
			return nil
		}
		page, err := ParseFile(path)
		if err != nil {
			return err
		}
		pages[filepath.Clean(path)] = page
		return nil
	})
	if err != nil {
		if errors.IsClassified(err) {
			return nil, err
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to walk output directory").
			WithContext("path", outDir).
			Build()
	}

	docs := make([]string, 0, len(pages))
	for doc := range pages {
		docs = append(docs, doc)
	}
	sort.Strings(docs)

	report := &Report{Documents: len(docs)}
	for _, doc := range docs {
		for _, href := range pages[doc].Links {
			u, err := url.Parse(href)
			if err != nil || !isLocal(u) || (u.Path == "" && u.Fragment == "") {
				continue
			}
			report.Links++

			target := doc
			if u.Path != "" {
				target = filepath.Clean(filepath.Join(filepath.Dir(doc), filepath.FromSlash(u.Path)))
			}
			page, ok := pages[target]
			switch {
			case !ok:
				report.Problems = append(report.Problems, Problem{Document: doc, Href: href, Kind: MissingDocument})
			case u.Fragment != "" && !page.HasAnchor(u.Fragment):
				report.Problems = append(report.Problems, Problem{Document: doc, Href: href, Kind: MissingAnchor})
			}
		}
	}
	return report, nil
}

func isLocal(u *url.URL) bool {
	return u.Scheme == "" && u.Host == "" && !strings.HasPrefix(u.Path, "/")
}
