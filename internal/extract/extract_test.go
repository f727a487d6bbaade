package extract

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTOCEntryClause_LibreOfficeEntry(t *testing.T) {
	entry := `<p lang="en-GB" style="margin-left: 0.79in;">
	5.17.2<font face="Calibri, sans-serif"><font size="2" style="font-size: 11pt"><span lang="en-US">	</span></font></font>Interworking
	with EPC	<a href="\#__RefHeading___Toc19177586">164</a></p>`

	clause, ok := TOCEntryClause(entry)
	require.True(t, ok)
	require.Equal(t, "5.17.2", clause)
}

func TestTOCEntryClause_NonClauseEntries(t *testing.T) {
	for _, entry := range []string{
		`<p class="toc-1">Annex A (informative): Change history	<a href="#x">88</a></p>`,
		`<p class="toc-1">Foreword	<a href="#y">7</a></p>`,
		`<p></p>`,
		"",
	} {
		_, ok := TOCEntryClause(entry)
		require.False(t, ok, entry)
	}
}

func TestTOCEntryClause_PlainText(t *testing.T) {
	clause, ok := TOCEntryClause("4.2.1 General 12")
	require.True(t, ok)
	require.Equal(t, "4.2.1", clause)
}

func TestHeadingClause_SkipsLeadingAnchor(t *testing.T) {
	block := `<h4 lang="en-US" class="western"><a name="__RefHeading___Toc19183553"></a>
4.2.3.3	Lorem ipsum dolor sit amet</h4>
<p lang="en-GB" class="western" style="margin-bottom: 0.13in; line-height: 100%">
Lorem ipsum dolor sit amet, consectetur adipiscing elit, .</p>`

	clause, ok := HeadingClause(block)
	require.True(t, ok)
	require.Equal(t, "4.2.3.3", clause)
}

func TestHeadingClause_MultipleAnchorsAndInnerContent(t *testing.T) {
	clause, ok := HeadingClause(`<a name="a"></a> <a name="b"></a>5.4.4.1b	Title`)
	require.True(t, ok)
	require.Equal(t, "5.4.4.1b", clause)
}

func TestHeadingClause_TokenStopsAtMarkup(t *testing.T) {
	clause, ok := HeadingClause(`<h2>6.1<span lang="en-US">	</span>Scope</h2>`)
	require.True(t, ok)
	require.Equal(t, "6.1", clause)
}

func TestHeadingClause_NonClauseHeadings(t *testing.T) {
	for _, block := range []string{
		`<h1><a name="x"></a>Foreword</h1>`,
		`<h1>Annex A (normative)</h1>`,
		`<h2><a name="x"></a></h2>`,
		`<h3>Title with trailing anchor <a name="x"></a>4.5</h3>`,
	} {
		_, ok := HeadingClause(block)
		require.False(t, ok, block)
	}
}

func TestHasID(t *testing.T) {
	require.True(t, HasID(`<h1 id="1.2" lang="en-US">`))
	require.True(t, HasID("<h1\tID=\"x\">"))
	require.False(t, HasID(`<h1 lang="en-US" class="western">`))
	require.False(t, HasID(`<h1 data-id="x">`))
}
