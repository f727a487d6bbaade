package extract

import (
	"strings"

	"git.home.luguber.info/inful/specref/internal/scan"
)

// HeadingClause returns the clause number that opens a heading block.
//
// The block may start with the heading's own opening tag. A leading run of anchor
// elements, typically LibreOffice bookmarks such as <a name="__RefHeading___Toc1"></a>,
// is skipped. The remaining content up to the closing heading tag must start with a
// digit; its first whitespace-delimited token is the clause number.
func HeadingClause(block string) (string, bool) {
	c := scan.NewCursor(block)

	if c.HasPrefix("<h") {
		c.AdvanceToAfter(">")
	}

	for {
		c.SkipSpace()
		if !c.HasPrefix("<a") {
			break
		}
		c.AdvanceToAfter("</a>")
	}

	content := c.Remaining()
	if span, ok := c.SliceBefore("</h"); ok {
		content = c.Text(span)
	}

	content = strings.TrimSpace(content)
	if !startsWithDigit(content) {
		return "", false
	}

	token := strings.Fields(content)[0]
	if i := strings.IndexByte(token, '<'); i >= 0 {
		token = token[:i]
	}
	return token, true
}

// HasID reports whether an opening tag already carries an id attribute.
func HasID(openTag string) bool {
	z := strings.ToLower(openTag)
	for _, sep := range []string{" ", "\t", "\n", "\r"} {
		if strings.Contains(z, sep+"id=") {
			return true
		}
	}
	return false
}
