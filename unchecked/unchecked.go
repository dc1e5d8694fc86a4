// Package unchecked is the fast counterpart of package checked. It performs
// no validation and reports no errors: input must already be well-formed
// (for example verified with checked.IsValid). Malformed input produces
// unspecified output and may panic with an index out of range.
package unchecked

import (
	"github.com/wippyai/utfcodec/codec"
)

// Append appends the UTF-8 encoding of cp to dst.
func Append(dst []byte, cp rune) []byte {
	return codec.Encode(dst, cp)
}

// Next decodes the sequence at pos and returns the offset just past it.
func Next[S codec.Text](s S, pos int) (rune, int) {
	return codec.DecodeUnchecked(s, pos)
}

// PeekNext decodes the sequence at pos without advancing.
func PeekNext[S codec.Text](s S, pos int) rune {
	cp, _ := codec.DecodeUnchecked(s, pos)
	return cp
}

// Previous decodes the sequence ending at pos and returns the offset of its
// lead byte.
func Previous[S codec.Text](s S, pos int) (rune, int) {
	pos--
	for codec.IsTrail(s[pos]) {
		pos--
	}
	return PeekNext(s, pos), pos
}

// Advance moves pos by n code points, backwards when n is negative.
func Advance[S codec.Text](s S, pos, n int) int {
	for ; n > 0; n-- {
		_, pos = Next(s, pos)
	}
	for ; n < 0; n++ {
		_, pos = Previous(s, pos)
	}
	return pos
}

// Distance returns the number of code points in s.
func Distance[S codec.Text](s S) int {
	n := 0
	for pos := 0; pos < len(s); n++ {
		_, pos = Next(s, pos)
	}
	return n
}

// UTF16ToUTF8 appends the UTF-8 encoding of src to dst.
func UTF16ToUTF8(dst []byte, src []uint16) []byte {
	for i := 0; i < len(src); i++ {
		cp := rune(src[i])
		if codec.IsLeadSurrogate(cp) {
			i++
			cp = codec.DecodeSurrogates(src[i-1], src[i])
		}
		dst = codec.Encode(dst, cp)
	}
	return dst
}

// UTF8ToUTF16 appends the UTF-16 encoding of src to dst.
func UTF8ToUTF16[S codec.Text](dst []uint16, src S) []uint16 {
	for pos := 0; pos < len(src); {
		var cp rune
		cp, pos = Next(src, pos)
		dst = codec.EncodeUTF16(dst, cp)
	}
	return dst
}

// UTF32ToUTF8 appends the UTF-8 encoding of src to dst.
func UTF32ToUTF8(dst []byte, src []rune) []byte {
	for _, cp := range src {
		dst = codec.Encode(dst, cp)
	}
	return dst
}

// UTF8ToUTF32 appends the code points of src to dst.
func UTF8ToUTF32[S codec.Text](dst []rune, src S) []rune {
	for pos := 0; pos < len(src); {
		var cp rune
		cp, pos = Next(src, pos)
		dst = append(dst, cp)
	}
	return dst
}

// Iterator is a bidirectional code point cursor with no bounds. It borrows
// buf.
type Iterator[S codec.Text] struct {
	buf S
	pos int
}

// NewIterator returns an iterator at pos in buf.
func NewIterator[S codec.Text](buf S, pos int) Iterator[S] {
	return Iterator[S]{buf: buf, pos: pos}
}

// Base returns the byte offset of the iterator.
func (it Iterator[S]) Base() int { return it.pos }

// Value decodes the code point at the iterator without moving it.
func (it Iterator[S]) Value() rune { return PeekNext(it.buf, it.pos) }

// Next moves the iterator past the current code point using only the
// length announced by the lead byte.
func (it *Iterator[S]) Next() {
	n := codec.SequenceLength(it.buf[it.pos])
	if n == 0 {
		n = 1
	}
	it.pos += n
}

// Prev moves the iterator to the start of the preceding code point.
func (it *Iterator[S]) Prev() {
	_, it.pos = Previous(it.buf, it.pos)
}

// Equal reports whether both iterators are at the same position.
func (it Iterator[S]) Equal(other Iterator[S]) bool {
	return it.pos == other.pos
}
