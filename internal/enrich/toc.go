package enrich

import (
	"golang.org/x/net/html"

	"git.home.luguber.info/inful/specref/internal/extract"
	"git.home.luguber.info/inful/specref/internal/rewrite"
)

// DefaultTOCMarker is the prefix of the opening tag LibreOffice writes for the
// table of contents, e.g. <div id="Table of Contents1" dir="ltr">.
const DefaultTOCMarker = `<div id="Table of Contents`

// LinkTOC wraps every clause entry of the table of contents in an anchor to the
// clause. Documents without a table of contents are returned unchanged.
func LinkTOC(doc string) string {
	out, _ := linkTOC(doc, DefaultTOCMarker)
	return out
}

// linkTOC rewrites the region from marker to its matching </div>. Nested divs are
// tracked so that a heading div inside the table does not end it early.
func linkTOC(doc, marker string) (string, int) {
	b := rewrite.NewBuilder(doc)
	if marker == "" || !b.Contains(marker) {
		return doc, 0
	}

	b.CopyUpTo(marker)
	b.CopyThrough(">")

	edits := 0
	for depth := 1; depth > 0; {
		which, _, ok := b.Lookahead().NextOf("<p", "<div", "</div>")
		if !ok {
			break
		}

		switch which {
		case 0:
			b.CopyUpTo("<p")
			if !isOpenTag(b, "<p") || !b.Precedes("</p>", "</div>") {
				b.CopyN(len("<p"))
				continue
			}
			entry, _ := b.SliceThrough("</p>")
			clause, ok := extract.TOCEntryClause(entry)
			if !ok {
				b.CopyThrough("</p>")
				continue
			}
			b.Emit(`<a href="#` + html.EscapeString(clause) + `">`)
			b.CopyThrough("</p>")
			b.Emit("</a>")
			edits++
		case 1:
			b.CopyUpTo("<div")
			if isOpenTag(b, "<div") {
				depth++
			}
			b.CopyN(len("<div"))
		case 2:
			b.CopyThrough("</div>")
			depth--
		}
	}

	b.CopyRest()
	return b.String(), edits
}

// isOpenTag reports whether the builder is at name followed by the end of the tag
// name, so that "<p" does not match "<pre".
func isOpenTag(b *rewrite.Builder, name string) bool {
	c := b.Lookahead()
	if !c.HasPrefix(name) {
		return false
	}
	c.Advance(len(name))
	rest := c.Remaining()
	if rest == "" {
		return false
	}
	switch rest[0] {
	case '>', ' ', '\t', '\n', '\r', '/':
		return true
	}
	return false
}
