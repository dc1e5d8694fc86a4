package checked

import (
	"github.com/wippyai/utfcodec/codec"
	"github.com/wippyai/utfcodec/errors"
)

// UTF16ToUTF8 appends the UTF-8 encoding of src to dst. Error offsets are
// code unit indexes into src.
func UTF16ToUTF8(dst []byte, src []uint16) ([]byte, error) {
	for i := 0; i < len(src); {
		cp := rune(src[i])
		switch {
		case codec.IsLeadSurrogate(cp):
			if i+1 == len(src) {
				return dst, errors.InvalidUTF16(errors.PhaseDecode, i, src[i])
			}
			trail := src[i+1]
			if !codec.IsTrailSurrogate(rune(trail)) {
				return dst, errors.MismatchedSurrogate(errors.PhaseDecode, i, src[i], trail)
			}
			cp = codec.DecodeSurrogates(src[i], trail)
			i += 2
		case codec.IsTrailSurrogate(cp):
			return dst, errors.InvalidUTF16(errors.PhaseDecode, i, src[i])
		default:
			i++
		}
		dst = codec.Encode(dst, cp)
	}
	return dst, nil
}

// UTF8ToUTF16 appends the UTF-16 encoding of src to dst, emitting surrogate
// pairs for code points above U+FFFF.
func UTF8ToUTF16[S codec.Text](dst []uint16, src S) ([]uint16, error) {
	for pos := 0; pos < len(src); {
		cp, next, err := Next(src, pos)
		if err != nil {
			return dst, err
		}
		dst = codec.EncodeUTF16(dst, cp)
		pos = next
	}
	return dst, nil
}

// UTF32ToUTF8 appends the UTF-8 encoding of src to dst. Error offsets are
// indexes into src.
func UTF32ToUTF8(dst []byte, src []rune) ([]byte, error) {
	for i, cp := range src {
		if !codec.IsValidCodePoint(cp) {
			return dst, errors.InvalidCodePoint(errors.PhaseEncode, i, cp)
		}
		dst = codec.Encode(dst, cp)
	}
	return dst, nil
}

// UTF8ToUTF32 appends the code points of src to dst.
func UTF8ToUTF32[S codec.Text](dst []rune, src S) ([]rune, error) {
	for pos := 0; pos < len(src); {
		cp, next, err := Next(src, pos)
		if err != nil {
			return dst, err
		}
		dst = append(dst, cp)
		pos = next
	}
	return dst, nil
}
