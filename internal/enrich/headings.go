package enrich

import (
	"golang.org/x/net/html"

	"git.home.luguber.info/inful/specref/internal/extract"
	"git.home.luguber.info/inful/specref/internal/rewrite"
	"git.home.luguber.info/inful/specref/internal/scan"
)

// IDHeadings injects id="<clause>" into every <h1>..<h6> whose content starts with
// a clause number. Headings that already carry an id are left alone, which makes
// the stage idempotent.
func IDHeadings(doc string) string {
	out, _ := idHeadings(doc)
	return out
}

func idHeadings(doc string) (string, int) {
	b := rewrite.NewBuilder(doc)
	edits := 0

	for {
		offset, level, ok := nextHeading(b.Lookahead())
		if !ok {
			break
		}
		b.CopyN(offset)

		closing := "</h" + string(rune(level))
		block, ok := b.SliceBefore(closing)
		if !ok {
			b.CopyN(len("<h1"))
			continue
		}
		openTag, _ := b.SliceThrough(">")

		if !extract.HasID(openTag) {
			if clause, ok := extract.HeadingClause(block); ok {
				b.CopyN(len("<h1"))
				b.Emit(` id="` + html.EscapeString(clause) + `"`)
				edits++
			}
		}
		b.CopyThrough(closing)
	}

	b.CopyRest()
	return b.String(), edits
}

// nextHeading finds the next "<hN" with N in 1..6 and returns its offset relative
// to the cursor's starting position. Tags such as <head>, <hr> and <html> are
// skipped.
func nextHeading(c *scan.Cursor) (offset int, level byte, ok bool) {
	start := c.Pos()
	for {
		idx, found := c.Find("<h")
		if !found {
			return 0, 0, false
		}
		c.Advance(idx + len("<h"))
		if rest := c.Remaining(); rest != "" && rest[0] >= '1' && rest[0] <= '6' {
			return c.Pos() - len("<h") - start, rest[0], true
		}
	}
}
