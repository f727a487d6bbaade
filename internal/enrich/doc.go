// Package enrich rewrites the HTML rendering of a specification into a navigable
// document.
//
// Five stages run in a fixed order, each a pure function from buffer to buffer:
//
//  1. RemoveHardSpaces replaces non-breaking space entities with plain spaces.
//  2. RemoveLanguageSpans unwraps <span lang="xx-YY"> elements.
//  3. LinkTOC wraps clause entries of the table of contents in anchors.
//  4. IDHeadings gives clause headings an id attribute.
//  5. LinkReferences turns textual cross-references into hyperlinks.
//
// Enrich composes them with defaults. Enricher runs a configurable subset with
// logging and metrics; the stage functions themselves never log.
//
// The stages work on text, not on a parsed tree. Markup they do not recognise is
// copied through unchanged. IDHeadings is idempotent; LinkReferences is not, and
// running it twice nests anchors.
package enrich
