package checked

import (
	"golang.org/x/text/transform"

	"github.com/wippyai/utfcodec/codec"
	"github.com/wippyai/utfcodec/errors"
)

// NewReplacer returns a transformer that streams ReplaceInvalid. Output is
// identical to ReplaceInvalid over the concatenated input regardless of how
// the input is chunked.
func NewReplacer() transform.Transformer {
	return replacer{repl: codec.Encode(nil, codec.ReplacementChar)}
}

// NewReplacerWith is NewReplacer with a caller chosen replacement.
func NewReplacerWith(replacement rune) (transform.Transformer, error) {
	if !codec.IsValidCodePoint(replacement) {
		return nil, errors.InvalidCodePoint(errors.PhaseEncode, -1, replacement)
	}
	return replacer{repl: codec.Encode(nil, replacement)}, nil
}

type replacer struct {
	transform.NopResetter
	repl []byte
}

func (r replacer) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		_, next, ok := codec.DecodeValid(src, nSrc)
		if ok {
			if nDst+next-nSrc > len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			nDst += copy(dst[nDst:], src[nSrc:next])
			nSrc = next
			continue
		}
		if !atEOF && incomplete(src[nSrc:]) {
			return nDst, nSrc, transform.ErrShortSrc
		}
		if nDst+len(r.repl) > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += copy(dst[nDst:], r.repl)
		nSrc++
	}
	return nDst, nSrc, nil
}

// NewValidator returns a transformer that copies valid UTF-8 and fails with
// the *errors.Error of the first malformed sequence. Error offsets count
// bytes from the start of the stream.
func NewValidator() transform.Transformer {
	return &validator{}
}

type validator struct {
	consumed int
}

func (v *validator) Reset() {
	v.consumed = 0
}

func (v *validator) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	defer func() {
		v.consumed += nSrc
	}()

	for nSrc < len(src) {
		_, next, derr := codec.Decode(src, nSrc, codec.PolicyRaise)
		if derr != nil {
			if !atEOF && incomplete(src[nSrc:]) {
				return nDst, nSrc, transform.ErrShortSrc
			}
			if e, ok := derr.(*errors.Error); ok && e.Offset >= 0 {
				e.Offset += v.consumed
			}
			return nDst, nSrc, derr
		}
		if nDst+next-nSrc > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += copy(dst[nDst:], src[nSrc:next])
		nSrc = next
	}
	return nDst, nSrc, nil
}

// incomplete reports whether b is a proper prefix of a sequence that more
// input could still complete.
func incomplete(b []byte) bool {
	n := codec.SequenceLength(b[0])
	if n == 0 || n <= len(b) {
		return false
	}
	for _, c := range b[1:] {
		if !codec.IsTrail(c) {
			return false
		}
	}
	return true
}
