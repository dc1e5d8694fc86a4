package checked

import (
	"github.com/wippyai/utfcodec/codec"
	"github.com/wippyai/utfcodec/errors"
)

// maxTrail is the longest run of continuation bytes a sequence can carry.
const maxTrail = 3

// Append appends the UTF-8 encoding of cp to dst.
func Append(dst []byte, cp rune) ([]byte, error) {
	if !codec.IsValidCodePoint(cp) {
		return dst, errors.InvalidCodePoint(errors.PhaseEncode, -1, cp)
	}
	return codec.Encode(dst, cp), nil
}

// Next decodes the sequence at pos and returns the offset just past it.
func Next[S codec.Text](s S, pos int) (rune, int, error) {
	return codec.Decode(s, pos, codec.PolicyRaise)
}

// PeekNext decodes the sequence at pos without advancing.
func PeekNext[S codec.Text](s S, pos int) (rune, error) {
	cp, _, err := codec.Decode(s, pos, codec.PolicyRaise)
	return cp, err
}

// Previous decodes the sequence ending at pos and returns the offset of its
// lead byte.
func Previous[S codec.Text](s S, pos int) (rune, int, error) {
	return previous(s, pos, 0)
}

func previous[S codec.Text](s S, pos, start int) (rune, int, error) {
	if pos <= start {
		return codec.ErrorChar, pos, errors.NotEnoughRoom(errors.PhaseDecode, pos)
	}
	if pos > len(s) {
		return codec.ErrorChar, pos, errors.OutOfBounds(errors.PhaseDecode, pos, start, len(s))
	}

	lead := pos - 1
	for codec.IsTrail(s[lead]) {
		if lead == start || pos-lead > maxTrail {
			return codec.ErrorChar, pos, errors.InvalidUTF8(errors.PhaseDecode, lead, s[lead])
		}
		lead--
	}

	cp, next, err := codec.DecodeBounded(s, lead, pos, codec.PolicyRaise)
	if err != nil {
		return codec.ErrorChar, pos, err
	}
	if next != pos {
		// stray continuation bytes after a complete sequence
		return codec.ErrorChar, pos, errors.InvalidUTF8(errors.PhaseDecode, next, s[next])
	}
	return cp, lead, nil
}

// Advance moves pos by n code points, backwards when n is negative. On
// error the returned offset is where the failing step started.
func Advance[S codec.Text](s S, pos, n int) (int, error) {
	var err error
	for ; n > 0; n-- {
		if _, pos, err = Next(s, pos); err != nil {
			return pos, err
		}
	}
	for ; n < 0; n++ {
		if _, pos, err = Previous(s, pos); err != nil {
			return pos, err
		}
	}
	return pos, nil
}

// Distance returns the number of code points in s. On error it returns the
// count decoded before the failure.
func Distance[S codec.Text](s S) (int, error) {
	n := 0
	for pos := 0; pos < len(s); n++ {
		var err error
		if _, pos, err = Next(s, pos); err != nil {
			return n, err
		}
	}
	return n, nil
}
