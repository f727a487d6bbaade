// Package extract recognises clause numbers in table-of-contents entries and in
// heading blocks of converted specification documents.
package extract

import (
	"strings"

	"golang.org/x/net/html"
)

// TOCEntryClause returns the clause number of one table-of-contents entry.
//
// Markup is stripped and the first whitespace-delimited token is the clause number
// if it starts with a decimal digit. Entries such as "Foreword" or "Annex A" have no
// clause number.
func TOCEntryClause(entry string) (string, bool) {
	fields := strings.Fields(stripTags(entry))
	if len(fields) == 0 || !startsWithDigit(fields[0]) {
		return "", false
	}
	return fields[0], true
}

// stripTags returns the text content of a markup fragment. Adjacent text runs are
// joined without a separator since inline tags do not imply word breaks.
func stripTags(fragment string) string {
	if !strings.Contains(fragment, "<") {
		return fragment
	}

	var sb strings.Builder
	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return sb.String()
		case html.TextToken:
			sb.Write(z.Text())
		}
	}
}

func startsWithDigit(s string) bool {
	return s != "" && s[0] >= '0' && s[0] <= '9'
}
