// Package rewrite produces a new buffer from an immutable source by copying spans
// forward and injecting literal markup between them.
//
// Every source byte reaches the output exactly once and in order; the only other
// output is text passed to Emit. This is what lets the enrichment stages rewrite
// noisy markup region by region without building a tree.
package rewrite

import (
	"strings"

	"git.home.luguber.info/inful/specref/internal/scan"
)

// Builder accumulates output while a cursor walks the source.
type Builder struct {
	cur     *scan.Cursor
	out     strings.Builder
	emitted []scan.Span
}

// NewBuilder returns a builder positioned at the start of src.
func NewBuilder(src string) *Builder {
	b := &Builder{cur: scan.NewCursor(src)}
	b.out.Grow(len(src))
	return b
}

// CopyThrough copies up to and including the next occurrence of pattern, or the
// rest of the source when pattern is absent.
func (b *Builder) CopyThrough(pattern string) {
	b.copySpan(b.cur.AdvanceToAfterSkipped(pattern))
}

// CopyUpTo copies up to, not including, the next occurrence of pattern, or the
// rest of the source when pattern is absent.
func (b *Builder) CopyUpTo(pattern string) {
	b.copySpan(b.cur.AdvanceToBeforeSkipped(pattern))
}

// CopyN copies n bytes, clamped to what remains.
func (b *Builder) CopyN(n int) {
	b.copySpan(b.cur.Advance(n))
}

// CopyRest copies everything from the current position to the end.
func (b *Builder) CopyRest() {
	b.copySpan(b.cur.Advance(b.cur.Len() - b.cur.Pos()))
}

// Emit appends literal text without consuming source.
func (b *Builder) Emit(literal string) {
	if literal == "" {
		return
	}
	start := b.out.Len()
	b.out.WriteString(literal)
	b.emitted = append(b.emitted, scan.Span{Start: start, End: b.out.Len()})
}

func (b *Builder) copySpan(s scan.Span) {
	b.out.WriteString(b.cur.Text(s))
}

// String returns the output accumulated so far.
func (b *Builder) String() string { return b.out.String() }

// Emitted returns the output ranges produced by Emit, in order.
func (b *Builder) Emitted() []scan.Span {
	out := make([]scan.Span, len(b.emitted))
	copy(out, b.emitted)
	return out
}

// Pos returns the source offset of the next byte to copy.
func (b *Builder) Pos() int { return b.cur.Pos() }

// AtEnd reports whether all source has been copied.
func (b *Builder) AtEnd() bool { return b.cur.AtEnd() }

// Lookahead returns a clone of the source cursor; moving it has no effect on the
// builder.
func (b *Builder) Lookahead() *scan.Cursor { return b.cur.Clone() }

// Precedes reports whether a occurs before b in the uncopied source.
func (b *Builder) Precedes(a, c string) bool { return b.cur.Precedes(a, c) }

// Contains reports whether pattern occurs in the uncopied source.
func (b *Builder) Contains(pattern string) bool { return b.cur.Contains(pattern) }

// HasPrefix reports whether the uncopied source starts with s.
func (b *Builder) HasPrefix(s string) bool { return b.cur.HasPrefix(s) }

// SliceThrough returns the uncopied source through the next pattern, if present.
func (b *Builder) SliceThrough(pattern string) (string, bool) {
	s, ok := b.cur.SliceThrough(pattern)
	if !ok {
		return "", false
	}
	return b.cur.Text(s), true
}

// SliceBefore returns the uncopied source up to the next pattern, if present.
func (b *Builder) SliceBefore(pattern string) (string, bool) {
	s, ok := b.cur.SliceBefore(pattern)
	if !ok {
		return "", false
	}
	return b.cur.Text(s), true
}
