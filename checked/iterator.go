package checked

import (
	"github.com/wippyai/utfcodec/codec"
	"github.com/wippyai/utfcodec/errors"
)

// Iterator is a bidirectional code point cursor over buf[start:end]. It
// borrows buf; the zero value is not usable. Iterators are values: copying
// one yields an independent cursor over the same range.
type Iterator[S codec.Text] struct {
	buf   S
	pos   int
	start int
	end   int
}

// NewIterator returns an iterator at pos over buf[start:end]. It fails with
// KindOutOfBounds unless 0 <= start <= pos <= end <= len(buf).
func NewIterator[S codec.Text](buf S, pos, start, end int) (Iterator[S], error) {
	if start < 0 || end > len(buf) || start > end {
		return Iterator[S]{}, errors.New(errors.PhaseIterate, errors.KindOutOfBounds).
			Offset(start).
			Detail("range [%d,%d) outside buffer of length %d", start, end, len(buf)).
			Build()
	}
	if pos < start || pos > end {
		return Iterator[S]{}, errors.OutOfBounds(errors.PhaseIterate, pos, start, end)
	}
	return Iterator[S]{buf: buf, pos: pos, start: start, end: end}, nil
}

// Range returns iterators at the beginning and end of buf.
func Range[S codec.Text](buf S) (begin, end Iterator[S]) {
	begin = Iterator[S]{buf: buf, pos: 0, start: 0, end: len(buf)}
	end = begin
	end.pos = len(buf)
	return begin, end
}

// Base returns the byte offset of the iterator within its buffer.
func (it Iterator[S]) Base() int {
	return it.pos
}

// Value decodes the code point at the iterator without moving it.
func (it Iterator[S]) Value() (rune, error) {
	cp, _, err := codec.DecodeBounded(it.buf, it.pos, it.end, codec.PolicyRaise)
	return cp, err
}

// Next moves the iterator past the current code point.
func (it *Iterator[S]) Next() error {
	_, next, err := codec.DecodeBounded(it.buf, it.pos, it.end, codec.PolicyRaise)
	if err != nil {
		return err
	}
	it.pos = next
	return nil
}

// Prev moves the iterator to the start of the preceding code point.
func (it *Iterator[S]) Prev() error {
	_, prev, err := previous(it.buf, it.pos, it.start)
	if err != nil {
		return err
	}
	it.pos = prev
	return nil
}

// Equal reports whether both iterators are at the same position. Comparing
// iterators built over different buffers or bounds is an error.
func (it Iterator[S]) Equal(other Iterator[S]) (bool, error) {
	if it.start != other.start || it.end != other.end || !sameBuffer(it.buf, other.buf) {
		return false, errors.InvalidCursorRange(it.start, it.end, other.start, other.end)
	}
	return it.pos == other.pos, nil
}

// sameBuffer reports whether a and b are the same byte slice (same backing
// array and length) or equal strings.
func sameBuffer[S codec.Text](a, b S) bool {
	if len(a) != len(b) {
		return false
	}
	switch x := any(a).(type) {
	case []byte:
		y := any(b).([]byte)
		return len(x) == 0 || &x[0] == &y[0]
	case string:
		return x == any(b).(string)
	}
	return false
}
