package lexer

import (
	"unicode/utf8"
)

// Cursor is a read-only view of a KDL source string that tracks a byte offset and a 1-indexed
// (line, column) position. It is the parser's single-owner mutable state; it is never shared or
// captured by a closure, only passed by pointer.
type Cursor struct {
	src    string
	offset int
	line   int
	column int
}

// NewCursor creates a Cursor over src. A leading UTF-8 BOM, if present, is consumed silently.
func NewCursor(src string) *Cursor {
	c := &Cursor{src: src, line: 1, column: 1}
	if r, size := utf8.DecodeRuneInString(c.src); r == 0xFEFF {
		c.offset += size
	}
	return c
}

// Pos returns the cursor's current 1-indexed line and column.
func (c *Cursor) Pos() (line, column int) {
	return c.line, c.column
}

// AtEOF returns true if the cursor has consumed the entire input.
func (c *Cursor) AtEOF() bool {
	return c.offset >= len(c.src)
}

// Peek returns the rune at the cursor without consuming it, and its byte width. Returns
// (utf8.RuneError, 0) at EOF.
func (c *Cursor) Peek() (rune, int) {
	return c.peekAt(c.offset)
}

// peekAt returns the rune at the absolute byte offset into the source, and its byte width,
// without consuming anything. Returns (utf8.RuneError, 0) past the end of input.
func (c *Cursor) peekAt(offset int) (rune, int) {
	if offset >= len(c.src) {
		return utf8.RuneError, 0
	}
	r, size := utf8.DecodeRuneInString(c.src[offset:])
	return r, size
}

// PeekRune returns the rune n runes ahead of the cursor (0 is the current rune), without
// consuming anything. Used for the parser's bounded lookahead (e.g. distinguishing `r"` from
// `r#"`, or `/-` from `/` `*`).
func (c *Cursor) PeekRune(n int) rune {
	offset := c.offset
	var r rune
	var size int
	for i := 0; i <= n; i++ {
		r, size = c.peekAt(offset)
		if size == 0 {
			return utf8.RuneError
		}
		offset += size
	}
	return r
}

// PeekString reports whether the next len(s) bytes of input equal s, without consuming anything.
func (c *Cursor) PeekString(s string) bool {
	end := c.offset + len(s)
	if end > len(c.src) {
		return false
	}
	return c.src[c.offset:end] == s
}

// Advance consumes and returns the next rune, updating the line/column position. CRLF is
// consumed as a single line break by the caller checking for '\r' followed by '\n' (see
// AdvanceNewline); Advance itself treats every call as exactly one rune.
func (c *Cursor) Advance() rune {
	r, size := c.Peek()
	if size == 0 {
		return utf8.RuneError
	}
	c.offset += size
	if IsNewline(r) {
		c.line++
		c.column = 1
	} else {
		c.column++
	}
	return r
}

// AdvanceNewline consumes a full line terminator starting at the cursor (treating CRLF as a
// single atomic break) and returns true if one was present.
func (c *Cursor) AdvanceNewline() bool {
	r, _ := c.Peek()
	if !IsNewline(r) {
		return false
	}
	c.Advance()
	if r == '\r' {
		if r2, _ := c.Peek(); r2 == '\n' {
			// consume the LF without counting a second line break
			_, size := c.Peek()
			c.offset += size
		}
	}
	return true
}

// Offset returns the cursor's current byte offset into the source.
func (c *Cursor) Offset() int {
	return c.offset
}

// Slice returns src[from:c.Offset()], the raw source text consumed since byte offset from.
func (c *Cursor) Slice(from int) string {
	return c.src[from:c.offset]
}
