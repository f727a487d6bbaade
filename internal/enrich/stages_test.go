package enrich

import (
	"math/rand"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/specref/internal/grammar"
)

func TestRemoveHardSpaces(t *testing.T) {
	out, n := removeHardSpaces("a&nbsp;b&#160;c&#xa0;d&#xA0;e&amp;f")
	assert.Equal(t, "a b c d e&amp;f", out)
	assert.Equal(t, 4, n)

	assert.Equal(t, "plain", RemoveHardSpaces("plain"))
}

func TestRemoveLanguageSpans(t *testing.T) {
	source := `FOO <span lang="en-GB"> BAR </span> BAZ <span lang="en-US"> QUX </span> TOP KEK`
	assert.Equal(t, `FOO  BAR  BAZ  QUX  TOP KEK`, RemoveLanguageSpans(source))
}

func TestRemoveLanguageSpans_MultilineAndOtherLanguages(t *testing.T) {
	out, n := removeLanguageSpans("<span lang=\"de-DE\">a\nb</span> <span lang=\"fr-FR\">c</span>")
	assert.Equal(t, "a\nb c", out)
	assert.Equal(t, 2, n)
}

func TestRemoveLanguageSpans_LeavesOtherSpans(t *testing.T) {
	for _, source := range []string{
		`<span lang="en">x</span>`,
		`<span class="x" lang="en-GB">x</span>`,
		`<span style="font-size: 11pt">x</span>`,
	} {
		assert.Equal(t, source, RemoveLanguageSpans(source))
	}
}

const tocDocument = `<body>
<p>5.1 before the table is not linked</p>
<div id="Table of Contents1" dir="ltr">
<div id="Table of Contents1_Head" dir="ltr"><p class="contents-heading">Contents</p></div>
<p class="toc-1">Foreword	<a href="#f">7</a></p>
<p class="toc-1">5.17.2<span>	</span>Interworking with EPC	<a href="#r">164</a></p>
<p class="toc-1">Annex A (informative): Change history	<a href="#a">88</a></p>
</div>
<p>6.1 after the table is not linked</p>
</body>`

func TestLinkTOC(t *testing.T) {
	expected := strings.Replace(tocDocument,
		`<p class="toc-1">5.17.2<span>	</span>Interworking with EPC	<a href="#r">164</a></p>`,
		`<a href="#5.17.2"><p class="toc-1">5.17.2<span>	</span>Interworking with EPC	<a href="#r">164</a></p></a>`, 1)

	out, n := linkTOC(tocDocument, DefaultTOCMarker)
	assert.Equal(t, expected, out)
	assert.Equal(t, 1, n)
}

func TestLinkTOC_Discriminator(t *testing.T) {
	doc := `<div id="Table of Contents1" dir="ltr"><p>Annex B Void</p><p>5.17.2 Interworking</p></div>`
	expected := `<div id="Table of Contents1" dir="ltr"><p>Annex B Void</p><a href="#5.17.2"><p>5.17.2 Interworking</p></a></div>`
	assert.Equal(t, expected, LinkTOC(doc))
}

func TestLinkTOC_NoTable(t *testing.T) {
	doc := `<p>4.1 General</p><div id="x"><p>4.2 More</p></div>`
	assert.Equal(t, doc, LinkTOC(doc))
}

func TestLinkTOC_SkipsTagsStartingWithP(t *testing.T) {
	doc := `<div id="Table of Contents1"><pre>4.1 x</pre><p>4.2 y</p></div>`
	expected := `<div id="Table of Contents1"><pre>4.1 x</pre><a href="#4.2"><p>4.2 y</p></a></div>`
	assert.Equal(t, expected, LinkTOC(doc))
}

func TestLinkTOC_UnterminatedTable(t *testing.T) {
	doc := `<div id="Table of Contents1"><p>4.2 y</p><p>4.3 z`
	expected := `<div id="Table of Contents1"><a href="#4.2"><p>4.2 y</p></a><p>4.3 z`
	assert.Equal(t, expected, LinkTOC(doc))
}

func TestLinkTOC_CustomMarker(t *testing.T) {
	doc := `<nav class="toc"><p>1 Scope</p></nav>`
	out, n := linkTOC(`<div class="toc"><p>1 Scope</p></div>`, `<div class="toc"`)
	assert.Equal(t, `<div class="toc"><a href="#1"><p>1 Scope</p></a></div>`, out)
	assert.Equal(t, 1, n)

	out, n = linkTOC(doc, `<div class="toc"`)
	assert.Equal(t, doc, out)
	assert.Zero(t, n)
}

const headingDocument = `<h1 lang="en-US" class="western"><a name="__RefHeading___Toc19183553"></a>
1.2.3	Lorem ipsum dolor sit amet</h1>
<p lang="en-GB" class="western" style="margin-bottom: 0.13in; line-height: 100%">
Lorem ipsum dolor sit amet, consectetur adipiscing elit, .</p>

<h2 lang="en-US" class="western"><a name="__RefHeading___Toc19183553"></a>
4.5	Lorem ipsum dolor sit amet</h2>
<p lang="en-GB" class="western" style="margin-bottom: 0.13in; line-height: 100%">
Lorem ipsum dolor sit amet, consectetur adipiscing elit, .</p>`

func TestIDHeadings(t *testing.T) {
	expected := `<h1 id="1.2.3" lang="en-US" class="western"><a name="__RefHeading___Toc19183553"></a>
1.2.3	Lorem ipsum dolor sit amet</h1>
<p lang="en-GB" class="western" style="margin-bottom: 0.13in; line-height: 100%">
Lorem ipsum dolor sit amet, consectetur adipiscing elit, .</p>

<h2 id="4.5" lang="en-US" class="western"><a name="__RefHeading___Toc19183553"></a>
4.5	Lorem ipsum dolor sit amet</h2>
<p lang="en-GB" class="western" style="margin-bottom: 0.13in; line-height: 100%">
Lorem ipsum dolor sit amet, consectetur adipiscing elit, .</p>`

	out, n := idHeadings(headingDocument)
	assert.Equal(t, expected, out)
	assert.Equal(t, 2, n)
}

func TestIDHeadings_Idempotent(t *testing.T) {
	once := IDHeadings(headingDocument)
	out, n := idHeadings(once)
	assert.Equal(t, once, out)
	assert.Zero(t, n)
}

func TestIDHeadings_SkipsNonHeadingTags(t *testing.T) {
	doc := `<html><head><title>T</title></head><body><hr><h2>4.1 Scope</h2></body></html>`
	expected := `<html><head><title>T</title></head><body><hr><h2 id="4.1">4.1 Scope</h2></body></html>`
	assert.Equal(t, expected, IDHeadings(doc))
}

func TestIDHeadings_LeavesOtherHeadings(t *testing.T) {
	for _, doc := range []string{
		`<h1>Foreword</h1>`,
		`<h1 class="western"><a name="x"></a>Annex A (normative)</h1>`,
		`<h1 id="scope">1 Scope</h1>`,
		`<h3>5 Unclosed heading`,
	} {
		assert.Equal(t, doc, IDHeadings(doc))
	}
}

func TestLinkReferences(t *testing.T) {
	doc := `<p>see clause 4.4 and TS 23.501 [2]</p>`
	expected := `<p><a href="#4.4">see clause 4.4</a> and <a href="../23.501/23.501.html">TS 23.501 [2]</a></p>`

	out, counts := linkReferences(doc, grammar.Default())
	assert.Equal(t, expected, out)
	assert.Equal(t, map[string]int{"clause": 1, "document": 1}, counts)
}

func TestLinkReferences_SkipsMarkup(t *testing.T) {
	doc := `<a title="see 4.5">text</a> see 4.6 <img alt="TS 23.501 [2]"/>`
	expected := `<a title="see 4.5">text</a> <a href="#4.6">see 4.6</a> <img alt="TS 23.501 [2]"/>`
	assert.Equal(t, expected, LinkReferences(doc))
}

func TestFindReferences(t *testing.T) {
	doc := `<a title="see 4.5">x</a> TS 23.502 [3], clause 4.2 and see 4.6`
	refs := FindReferences(doc, nil)
	require.Len(t, refs, 2)
	assert.Equal(t, "document-clause", refs[0].Form)
	assert.Equal(t, "23.502", refs[0].TS)
	assert.Equal(t, "4.2", refs[0].Clause)
	assert.Equal(t, "see 4.6", refs[1].Text)
	assert.True(t, refs[1].Local())
}

func TestLinkReferences_NegativeCases(t *testing.T) {
	for _, doc := range []string{
		"Foo in bar, see baz. Qux",
		"Foo 4.5 bar",
		"",
	} {
		assert.Equal(t, doc, LinkReferences(doc))
	}
}

func TestLinkReferences_NotIdempotent(t *testing.T) {
	once := LinkReferences("see 4.5")
	assert.Equal(t, `<a href="#4.5">see 4.5</a>`, once)
	assert.Equal(t, `<a href="#4.5"><a href="#4.5">see 4.5</a></a>`, LinkReferences(once))
}

var anchorMarkup = regexp.MustCompile(`<a href="[^"]*">|</a>`)

func TestLinkReferences_ConservesSource(t *testing.T) {
	fragments := []string{
		"see 4.5", " TS 23.501 [2]", " clause 4.4", "foo", " ", "<b>", "</b>",
		"in 11.2.33", ", clause 5.1b", ".", "\n", `<i title="in 4.2">`, "</i>",
	}
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 200; i++ {
		var sb strings.Builder
		for j := rng.Intn(20); j >= 0; j-- {
			sb.WriteString(fragments[rng.Intn(len(fragments))])
		}
		input := sb.String()
		out := LinkReferences(input)
		require.Equal(t, input, anchorMarkup.ReplaceAllString(out, ""), "input %q", input)
	}
}
