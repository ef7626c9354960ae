package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"phpfmt/internal/source"
)

// cursor is a byte position inside one file's LF-normalized content.
type cursor struct {
	file  *source.File
	off   uint32
	limit uint32
}

func newCursor(f *source.File) cursor {
	limit, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("file content length overflow: %w", err))
	}
	return cursor{file: f, off: 0, limit: limit}
}

func (c *cursor) eof() bool {
	return c.off >= c.limit
}

// peek returns the current byte, or 0 at EOF.
func (c *cursor) peek() byte {
	if c.eof() {
		return 0
	}
	return c.file.Content[c.off]
}

// peekAt returns the byte n positions ahead, or 0 past EOF.
func (c *cursor) peekAt(n uint32) byte {
	if c.off+n >= c.limit {
		return 0
	}
	return c.file.Content[c.off+n]
}

// bump consumes the current byte and returns it.
func (c *cursor) bump() byte {
	b := c.peek()
	if !c.eof() {
		c.off++
	}
	return b
}

// bumpN consumes n bytes, stopping at EOF.
func (c *cursor) bumpN(n uint32) {
	c.off += n
	if c.off > c.limit {
		c.off = c.limit
	}
}

// text returns the source slice from start to the current offset.
func (c *cursor) text(start uint32) string {
	return string(c.file.Content[start:c.off])
}

// span returns the span from start to the current offset.
func (c *cursor) span(start uint32) source.Span {
	return source.Span{File: c.file.ID, Start: start, End: c.off}
}

// has reports whether the content at the current offset starts with s.
func (c *cursor) has(s string) bool {
	if c.off+uint32(len(s)) > c.limit {
		return false
	}
	return string(c.file.Content[c.off:c.off+uint32(len(s))]) == s
}
