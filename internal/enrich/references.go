package enrich

import (
	"strings"
	"sync"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/specref/internal/grammar"
	"git.home.luguber.info/inful/specref/internal/rewrite"
)

var defaultGrammar = sync.OnceValue(func() *grammar.Grammar { return grammar.Default() })

// LinkReferences wraps every cross-reference recognised by the default grammar in
// an anchor. Matches inside markup tags, such as attribute values, are skipped.
func LinkReferences(doc string) string {
	out, _ := linkReferences(doc, defaultGrammar())
	return out
}

// FindReferences returns the references in doc that LinkReferences would link:
// those in text content with a resolvable target. A nil g means the default
// grammar.
func FindReferences(doc string, g *grammar.Grammar) []grammar.Reference {
	if g == nil {
		g = defaultGrammar()
	}
	refs := g.FindAll(doc)
	out := refs[:0]
	lastOpen, lastClose := -1, -1
	scanned := 0

	for _, ref := range refs {
		if strings.ContainsAny(ref.Text, "<>") {
			continue
		}

		gap := doc[scanned:ref.Span.Start]
		if i := strings.LastIndexByte(gap, '<'); i >= 0 {
			lastOpen = scanned + i
		}
		if i := strings.LastIndexByte(gap, '>'); i >= 0 {
			lastClose = scanned + i
		}
		scanned = ref.Span.Start
		if lastOpen > lastClose {
			continue
		}
		if _, ok := g.Href(ref); !ok {
			continue
		}
		out = append(out, ref)
	}
	return out
}

// linkReferences returns the rewritten document and the number of links per form.
func linkReferences(doc string, g *grammar.Grammar) (string, map[string]int) {
	refs := FindReferences(doc, g)
	if len(refs) == 0 {
		return doc, nil
	}

	counts := make(map[string]int)
	edits := make([]rewrite.Edit, 0, len(refs))
	for _, ref := range refs {
		href, _ := g.Href(ref)
		edits = append(edits, rewrite.Edit{
			Start:  ref.Span.Start,
			End:    ref.Span.End,
			Prefix: `<a href="` + html.EscapeString(href) + `">`,
			Suffix: "</a>",
		})
		counts[ref.Form]++
	}

	out, err := rewrite.Apply(doc, edits)
	if err != nil {
		// Matches come back ordered and disjoint, so this only guards a broken grammar.
		return doc, nil
	}
	return out, counts
}
