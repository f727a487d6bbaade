// Package verify checks that the anchor links in enriched documents resolve,
// both within a document and across a corpus written in the corpus layout.
package verify

import (
	"io"
	"os"
	"path/filepath"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/specref/internal/foundation/errors"
)

// Page holds the link targets and outgoing links of one HTML document.
type Page struct {
	Anchors map[string]struct{} // id attributes and <a name> targets
	Links   []string            // href values of <a> elements, document order
}

// HasAnchor reports whether name is a link target in the page.
func (p *Page) HasAnchor(name string) bool {
	_, ok := p.Anchors[name]
	return ok
}

// Parse reads an HTML document.
func Parse(r io.Reader) (*Page, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "failed to parse HTML").Build()
	}

	page := &Page{Anchors: map[string]struct{}{}}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			for _, attr := range n.Attr {
				switch {
				case attr.Key == "id" && attr.Val != "":
					page.Anchors[attr.Val] = struct{}{}
				case n.Data == "a" && attr.Key == "name" && attr.Val != "":
					page.Anchors[attr.Val] = struct{}{}
				case n.Data == "a" && attr.Key == "href":
					page.Links = append(page.Links, attr.Val)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return page, nil
}

// ParseFile reads the HTML document at path.
func ParseFile(path string) (*Page, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapError(err, errors.CategoryNotFound, "document not found").
				WithContext("path", path).
				Build()
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to open document").
			WithContext("path", path).
			Build()
	}
	defer func() { _ = f.Close() }()

	page, err := Parse(f)
	if err != nil {
		if ce, ok := errors.AsClassified(err); ok {
			return nil, ce.WithContext("path", path)
		}
		return nil, err
	}
	return page, nil
}
