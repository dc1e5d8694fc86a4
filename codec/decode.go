package codec

import (
	"github.com/wippyai/utfcodec/errors"
)

// Policy selects how Decode handles malformed input.
type Policy uint8

const (
	// PolicyNone performs no bounds or validity checks. Malformed input
	// yields an unspecified code point and truncated input may panic with an
	// index out of range. An invalid lead byte returns ErrorChar and consumes
	// one byte.
	PolicyNone Policy = iota
	// PolicySentinel returns ErrorChar on any failure.
	PolicySentinel
	// PolicyRaise returns a *errors.Error describing the failure.
	PolicyRaise
)

func (p Policy) String() string {
	switch p {
	case PolicyNone:
		return "none"
	case PolicySentinel:
		return "sentinel"
	case PolicyRaise:
		return "raise"
	default:
		return "unknown"
	}
}

// fault identifies why a checked decode failed. at is the offset of the
// byte responsible.
type fault uint8

const (
	faultNone fault = iota
	faultEnd
	faultLead
	faultTruncated
	faultTrail
	faultCodePoint
	faultOverlong
)

// Decode reads the sequence starting at pos and returns its code point and
// the offset just past it. Under PolicySentinel and PolicyRaise a failure
// returns next == pos.
func Decode[S Text](s S, pos int, p Policy) (cp rune, next int, err error) {
	return DecodeBounded(s, pos, len(s), p)
}

// DecodeBounded is Decode treating end as the end of input. end must not
// exceed len(s).
func DecodeBounded[S Text](s S, pos, end int, p Policy) (cp rune, next int, err error) {
	if p == PolicyNone {
		cp, next = DecodeUnchecked(s, pos)
		return cp, next, nil
	}

	cp, next, f, at := decodeChecked(s, pos, end)
	if f == faultNone {
		return cp, next, nil
	}
	if p == PolicySentinel {
		return ErrorChar, pos, nil
	}
	return ErrorChar, pos, faultError(s, pos, f, at, cp)
}

// DecodeValid is Decode with PolicySentinel, reporting the result as ok
// instead of comparing against ErrorChar.
func DecodeValid[S Text](s S, pos int) (cp rune, next int, ok bool) {
	cp, next, f, _ := decodeChecked(s, pos, len(s))
	if f != faultNone {
		return ErrorChar, pos, false
	}
	return cp, next, true
}

// DecodeUnchecked decodes the sequence at pos assuming it is well formed.
func DecodeUnchecked[S Text](s S, pos int) (rune, int) {
	lead := s[pos]
	switch SequenceLength(lead) {
	case 1:
		return rune(lead), pos + 1
	case 2:
		return rune(lead&0x1F)<<6 |
			rune(s[pos+1]&0x3F), pos + 2
	case 3:
		return rune(lead&0x0F)<<12 |
			rune(s[pos+1]&0x3F)<<6 |
			rune(s[pos+2]&0x3F), pos + 3
	case 4:
		return rune(lead&0x07)<<18 |
			rune(s[pos+1]&0x3F)<<12 |
			rune(s[pos+2]&0x3F)<<6 |
			rune(s[pos+3]&0x3F), pos + 4
	default:
		return ErrorChar, pos + 1
	}
}

func decodeChecked[S Text](s S, pos, end int) (cp rune, next int, f fault, at int) {
	if pos < 0 || pos >= end {
		return ErrorChar, pos, faultEnd, pos
	}

	lead := s[pos]
	length := SequenceLength(lead)
	if length == 0 {
		return ErrorChar, pos, faultLead, pos
	}
	if length == 1 {
		return rune(lead), pos + 1, faultNone, 0
	}

	cp = rune(lead & (0x7F >> length))
	for i := 1; i < length; i++ {
		at = pos + i
		if at >= end {
			return ErrorChar, pos, faultTruncated, at
		}
		b := s[at]
		if !IsTrail(b) {
			return ErrorChar, pos, faultTrail, at
		}
		cp = cp<<6 | rune(b&0x3F)
	}

	if !IsValidCodePoint(cp) {
		return cp, pos, faultCodePoint, pos
	}
	if EncodedLength(cp) != length {
		return cp, pos, faultOverlong, pos
	}
	return cp, pos + length, faultNone, 0
}

func faultError[S Text](s S, pos int, f fault, at int, cp rune) error {
	switch f {
	case faultEnd, faultTruncated:
		return errors.NotEnoughRoom(errors.PhaseDecode, at)
	case faultLead, faultTrail:
		return errors.InvalidUTF8(errors.PhaseDecode, at, s[at])
	case faultCodePoint:
		return errors.InvalidCodePoint(errors.PhaseDecode, pos, cp)
	case faultOverlong:
		return errors.Overlong(errors.PhaseDecode, pos, s[pos], cp, SequenceLength(s[pos]))
	default:
		return nil
	}
}
