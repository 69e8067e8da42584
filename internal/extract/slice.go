package extract

import "bytes"

// Slice names a part of a buffer without copying it. A Slice stays valid
// only as long as the underlying buffer is not modified in place.
type Slice struct {
	buf []byte
	off int
	n   int
}

// NewSlice returns the view buf[off:off+n]. Out-of-range offsets and
// lengths are clamped to the buffer.
func NewSlice(buf []byte, off, n int) Slice {
	if off < 0 {
		off = 0
	}
	if off > len(buf) {
		off = len(buf)
	}
	if n < 0 {
		n = 0
	}
	if off+n > len(buf) {
		n = len(buf) - off
	}
	return Slice{buf: buf, off: off, n: n}
}

// Offset returns the start of the slice within its buffer.
func (s Slice) Offset() int { return s.off }

// Len returns the slice length.
func (s Slice) Len() int { return s.n }

// Bytes returns the viewed bytes. The result aliases the buffer.
func (s Slice) Bytes() []byte { return s.buf[s.off : s.off+s.n] }

func (s Slice) String() string { return string(s.Bytes()) }

// Trim drops leading and trailing whitespace.
func (s Slice) Trim() Slice {
	start, end := s.off, s.off+s.n
	for start < end && isSpace(s.buf[start]) {
		start++
	}
	for end > start && isSpace(s.buf[end-1]) {
		end--
	}
	return Slice{buf: s.buf, off: start, n: end - start}
}

// IndexAny returns the position (relative to the slice) of the first byte
// that is one of chars, or -1.
func (s Slice) IndexAny(chars string) int {
	return bytes.IndexAny(s.Bytes(), chars)
}

// Sub narrows the slice to n bytes starting at from. An n of zero or less
// keeps everything after from.
func (s Slice) Sub(from, n int) Slice {
	if from > s.n {
		from = s.n
	}
	if from < 0 {
		from = 0
	}
	rest := s.n - from
	if n <= 0 || n > rest {
		n = rest
	}
	return Slice{buf: s.buf, off: s.off + from, n: n}
}

// IdentPrefix returns the length of the longest prefix made of ASCII
// letters, digits and underscores.
func (s Slice) IdentPrefix() int {
	b := s.Bytes()
	i := 0
	for i < len(b) && isIdentByte(b[i]) {
		i++
	}
	return i
}

// Ident restricts the slice to its identifier prefix.
func (s Slice) Ident() Slice {
	return Slice{buf: s.buf, off: s.off, n: s.IdentPrefix()}
}

func isIdentByte(c byte) bool {
	return c == '_' ||
		('0' <= c && c <= '9') ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z')
}

// isSpace matches the C locale whitespace set.
func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
