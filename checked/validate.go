package checked

import (
	"github.com/wippyai/utfcodec/codec"
	"github.com/wippyai/utfcodec/errors"
)

// ReplaceInvalid appends src to dst with every malformed byte replaced by
// U+FFFD. Well-formed sequences are copied verbatim; a failure consumes
// exactly one byte.
func ReplaceInvalid[S codec.Text](dst []byte, src S) []byte {
	return replaceInvalid(dst, src, codec.ReplacementChar)
}

// ReplaceInvalidWith is ReplaceInvalid with a caller chosen replacement. It
// fails without writing anything if replacement is not a valid code point.
func ReplaceInvalidWith[S codec.Text](dst []byte, src S, replacement rune) ([]byte, error) {
	if !codec.IsValidCodePoint(replacement) {
		return dst, errors.InvalidCodePoint(errors.PhaseEncode, -1, replacement)
	}
	return replaceInvalid(dst, src, replacement), nil
}

func replaceInvalid[S codec.Text](dst []byte, src S, replacement rune) []byte {
	for pos := 0; pos < len(src); {
		_, next, ok := codec.DecodeValid(src, pos)
		if !ok {
			dst = codec.Encode(dst, replacement)
			pos++
			continue
		}
		for ; pos < next; pos++ {
			dst = append(dst, src[pos])
		}
	}
	return dst
}

// FindInvalid returns the offset of the first malformed sequence in s, or
// len(s) when s is valid UTF-8.
func FindInvalid[S codec.Text](s S) int {
	pos := 0
	for pos < len(s) {
		_, next, ok := codec.DecodeValid(s, pos)
		if !ok {
			return pos
		}
		pos = next
	}
	return pos
}

// IsValid reports whether s is entirely valid UTF-8.
func IsValid[S codec.Text](s S) bool {
	return FindInvalid(s) == len(s)
}

// StartsWithBOM reports whether s begins with the UTF-8 byte order mark.
func StartsWithBOM[S codec.Text](s S) bool {
	return len(s) >= len(codec.BOM) &&
		s[0] == codec.BOM[0] &&
		s[1] == codec.BOM[1] &&
		s[2] == codec.BOM[2]
}
