package enrich

import (
	"regexp"
	"strings"
)

var hardSpaceEntities = []string{"&nbsp;", "&#160;", "&#xa0;", "&#xA0;"}

var hardSpaces = strings.NewReplacer(
	"&nbsp;", " ",
	"&#160;", " ",
	"&#xa0;", " ",
	"&#xA0;", " ",
)

// RemoveHardSpaces replaces non-breaking space entities with a plain space so that
// references split by them still match.
func RemoveHardSpaces(doc string) string {
	out, _ := removeHardSpaces(doc)
	return out
}

func removeHardSpaces(doc string) (string, int) {
	n := 0
	for _, e := range hardSpaceEntities {
		n += strings.Count(doc, e)
	}
	if n == 0 {
		return doc, 0
	}
	return hardSpaces.Replace(doc), n
}

var languageSpan = regexp.MustCompile(`(?s)<span lang="[a-z]{2}-[A-Z]{2}">(.*?)</span>`)

// RemoveLanguageSpans replaces each <span lang="xx-YY">...</span> with its content.
// The match is non-greedy, so the first closing tag ends the span.
func RemoveLanguageSpans(doc string) string {
	out, _ := removeLanguageSpans(doc)
	return out
}

func removeLanguageSpans(doc string) (string, int) {
	n := len(languageSpan.FindAllStringIndex(doc, -1))
	if n == 0 {
		return doc, 0
	}
	return languageSpan.ReplaceAllString(doc, "${1}"), n
}
