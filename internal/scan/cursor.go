// Package scan provides a forward-only cursor for literal pattern search over an
// immutable text buffer.
//
// A missing pattern is never an error. Advancing operations move to the end of the
// buffer so that callers degrade to "copy the rest verbatim", while lookahead
// operations report ok=false so that callers treat the region as a non-match.
package scan

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Cursor tracks a read position in a text buffer. The position never moves
// backwards; use Clone for lookahead that must not disturb the original.
type Cursor struct {
	buf string
	pos int
}

// NewCursor returns a cursor positioned at the start of buf.
func NewCursor(buf string) *Cursor {
	return &Cursor{buf: buf}
}

// Clone returns an independent cursor at the same position over the same buffer.
func (c *Cursor) Clone() *Cursor {
	return &Cursor{buf: c.buf, pos: c.pos}
}

// Pos returns the current byte offset.
func (c *Cursor) Pos() int { return c.pos }

// Len returns the length of the underlying buffer.
func (c *Cursor) Len() int { return len(c.buf) }

// Buffer returns the full underlying buffer.
func (c *Cursor) Buffer() string { return c.buf }

// Remaining returns the text from the current position to the end.
func (c *Cursor) Remaining() string { return c.buf[c.pos:] }

// AtEnd reports whether the cursor reached the end of the buffer.
func (c *Cursor) AtEnd() bool { return c.pos >= len(c.buf) }

// Find locates pattern at or after the current position. The returned offset is
// relative to the current position.
func (c *Cursor) Find(pattern string) (int, bool) {
	idx := strings.Index(c.buf[c.pos:], pattern)
	if idx < 0 {
		return 0, false
	}
	return idx, true
}

// Contains reports whether pattern occurs at or after the current position.
func (c *Cursor) Contains(pattern string) bool {
	_, ok := c.Find(pattern)
	return ok
}

// HasPrefix reports whether the remaining text starts with s.
func (c *Cursor) HasPrefix(s string) bool {
	return strings.HasPrefix(c.buf[c.pos:], s)
}

// Precedes reports whether a occurs and b either does not occur or occurs strictly
// later. It is the "still inside region X" test used in place of structural parsing.
func (c *Cursor) Precedes(a, b string) bool {
	aPos, ok := c.Find(a)
	if !ok {
		return false
	}
	bPos, ok := c.Find(b)
	if !ok {
		return true
	}
	return aPos < bPos
}

// NextOf returns the index of the pattern that occurs first together with its
// relative offset. Ties go to the pattern listed first.
func (c *Cursor) NextOf(patterns ...string) (which int, offset int, ok bool) {
	which = -1
	for i, p := range patterns {
		pos, found := c.Find(p)
		if !found {
			continue
		}
		if which < 0 || pos < offset {
			which, offset = i, pos
		}
	}
	return which, offset, which >= 0
}

// AdvanceToBefore moves to the start of the next occurrence of pattern, or to the
// end of the buffer if there is none.
func (c *Cursor) AdvanceToBefore(pattern string) {
	c.AdvanceToBeforeSkipped(pattern)
}

// AdvanceToAfter moves just past the next occurrence of pattern, or to the end of
// the buffer if there is none.
func (c *Cursor) AdvanceToAfter(pattern string) {
	c.AdvanceToAfterSkipped(pattern)
}

// AdvanceToBeforeSkipped behaves like AdvanceToBefore and returns the span that
// was skipped.
func (c *Cursor) AdvanceToBeforeSkipped(pattern string) Span {
	start := c.pos
	if idx, ok := c.Find(pattern); ok {
		c.pos += idx
	} else {
		c.pos = len(c.buf)
	}
	return Span{Start: start, End: c.pos}
}

// AdvanceToAfterSkipped behaves like AdvanceToAfter and returns the span that was
// skipped, pattern included.
func (c *Cursor) AdvanceToAfterSkipped(pattern string) Span {
	start := c.pos
	if idx, ok := c.Find(pattern); ok {
		c.pos += idx + len(pattern)
	} else {
		c.pos = len(c.buf)
	}
	return Span{Start: start, End: c.pos}
}

// Advance moves n bytes forward, clamped to the end of the buffer, and returns the
// skipped span. Negative counts do not move the cursor.
func (c *Cursor) Advance(n int) Span {
	start := c.pos
	if n > 0 {
		c.pos = min(c.pos+n, len(c.buf))
	}
	return Span{Start: start, End: c.pos}
}

// SkipSpace advances past any Unicode white space.
func (c *Cursor) SkipSpace() {
	for c.pos < len(c.buf) {
		r, size := utf8.DecodeRuneInString(c.buf[c.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		c.pos += size
	}
}

// SliceBefore returns the span from the current position up to, not including,
// the next occurrence of pattern. The cursor does not move.
func (c *Cursor) SliceBefore(pattern string) (Span, bool) {
	idx, ok := c.Find(pattern)
	if !ok {
		return Span{}, false
	}
	return Span{Start: c.pos, End: c.pos + idx}, true
}

// SliceThrough returns the span from the current position through the end of the
// next occurrence of pattern. The cursor does not move.
func (c *Cursor) SliceThrough(pattern string) (Span, bool) {
	idx, ok := c.Find(pattern)
	if !ok {
		return Span{}, false
	}
	return Span{Start: c.pos, End: c.pos + idx + len(pattern)}, true
}

// Slice returns the text of the absolute range [begin, end). Reversed or out of
// range bounds yield ok=false.
func (c *Cursor) Slice(begin, end int) (string, bool) {
	s := Span{Start: begin, End: end}
	if !s.Valid(len(c.buf)) {
		return "", false
	}
	return c.buf[begin:end], true
}

// Text returns the text covered by s, or "" when s does not fit the buffer.
func (c *Cursor) Text(s Span) string {
	text, _ := c.Slice(s.Start, s.End)
	return text
}
