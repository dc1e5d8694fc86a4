package codec

// Text is the set of buffer types the reading operations accept.
type Text interface {
	[]byte | string
}

const (
	// MaxCodePoint is the largest valid Unicode code point.
	MaxCodePoint rune = 0x10FFFF

	// ReplacementChar is substituted for malformed input by repair operations.
	ReplacementChar rune = 0xFFFD

	// ErrorChar is returned by PolicySentinel decoding on failure. It has the
	// bit pattern 0xFFFFFFFF and is never a valid code point.
	ErrorChar rune = -1
)

// UTF-16 surrogate ranges.
const (
	LeadSurrogateMin  = 0xD800
	LeadSurrogateMax  = 0xDBFF
	TrailSurrogateMin = 0xDC00
	TrailSurrogateMax = 0xDFFF

	leadOffset      = LeadSurrogateMin - (0x10000 >> 10)
	surrogateOffset = 0x10000 - (LeadSurrogateMin << 10) - TrailSurrogateMin
)

// BOM is the UTF-8 encoded byte order mark.
var BOM = [3]byte{0xEF, 0xBB, 0xBF}

// IsTrail reports whether b is a continuation byte (10xxxxxx).
func IsTrail(b byte) bool {
	return b>>6 == 0x2
}

// IsLeadSurrogate reports whether u is in [0xD800, 0xDBFF].
func IsLeadSurrogate(u rune) bool {
	return u >= LeadSurrogateMin && u <= LeadSurrogateMax
}

// IsTrailSurrogate reports whether u is in [0xDC00, 0xDFFF].
func IsTrailSurrogate(u rune) bool {
	return u >= TrailSurrogateMin && u <= TrailSurrogateMax
}

// IsSurrogate reports whether u is in [0xD800, 0xDFFF].
func IsSurrogate(u rune) bool {
	return u >= LeadSurrogateMin && u <= TrailSurrogateMax
}

// IsValidCodePoint reports whether cp is in [0, 0x10FFFF] and not a surrogate.
func IsValidCodePoint(cp rune) bool {
	return cp >= 0 && cp <= MaxCodePoint && !IsSurrogate(cp)
}

// SequenceLength returns the length of the sequence introduced by lead, or 0
// when lead cannot start a sequence.
func SequenceLength(lead byte) int {
	switch {
	case lead < 0x80:
		return 1
	case lead>>5 == 0x6:
		return 2
	case lead>>4 == 0xE:
		return 3
	case lead>>3 == 0x1E:
		return 4
	default:
		return 0
	}
}

// EncodedLength returns the canonical UTF-8 length of cp, or 0 when cp is
// above MaxCodePoint or negative. Surrogates report 3.
func EncodedLength(cp rune) int {
	switch {
	case cp < 0:
		return 0
	case cp < 0x80:
		return 1
	case cp < 0x800:
		return 2
	case cp < 0x10000:
		return 3
	case cp <= MaxCodePoint:
		return 4
	default:
		return 0
	}
}

// Encode appends the UTF-8 encoding of cp to dst. The caller guarantees cp
// is valid; invalid input produces unspecified bytes.
func Encode(dst []byte, cp rune) []byte {
	switch {
	case cp < 0x80:
		return append(dst, byte(cp))
	case cp < 0x800:
		return append(dst,
			byte(cp>>6)|0xC0,
			byte(cp)&0x3F|0x80)
	case cp < 0x10000:
		return append(dst,
			byte(cp>>12)|0xE0,
			byte(cp>>6)&0x3F|0x80,
			byte(cp)&0x3F|0x80)
	default:
		return append(dst,
			byte(cp>>18)|0xF0,
			byte(cp>>12)&0x3F|0x80,
			byte(cp>>6)&0x3F|0x80,
			byte(cp)&0x3F|0x80)
	}
}

// EncodeUTF16 appends cp to dst as one code unit, or as a surrogate pair when
// cp is above 0xFFFF. The caller guarantees cp is valid.
func EncodeUTF16(dst []uint16, cp rune) []uint16 {
	if cp > 0xFFFF {
		lead, trail := EncodeSurrogates(cp)
		return append(dst, lead, trail)
	}
	return append(dst, uint16(cp))
}

// EncodeSurrogates splits a supplementary code point into a surrogate pair.
func EncodeSurrogates(cp rune) (lead, trail uint16) {
	return uint16((cp >> 10) + leadOffset), uint16((cp & 0x3FF) + TrailSurrogateMin)
}

// DecodeSurrogates joins a surrogate pair. The result is unspecified unless
// lead and trail are in their respective ranges.
func DecodeSurrogates(lead, trail uint16) rune {
	return rune(lead)<<10 + rune(trail) + surrogateOffset
}
