package checked

import (
	"strings"
)

// Mixed-length sample: U+65E5 U+0448 U+10346 U+0041 U+1D11E U+3044.
const sampleUTF8 = "日ш\U00010346A\U0001D11Eい"

var (
	sampleSizes = []int{3, 2, 4, 1, 4, 3}
	sampleRunes = []rune{0x65E5, 0x448, 0x10346, 0x41, 0x1D11E, 0x3044}
	sampleUTF16 = []uint16{0x65E5, 0x0448, 0xD800, 0xDF46, 0x0041, 0xD834, 0xDD1E, 0x3044}
)

// Malformed input with its repair and first invalid offset.
const (
	invalidUTF8       = "\xe6\x97\xa5\xd1\x88\xFA \x80\xE0\xA0\xC0\xAF\xED\xA0\x80z"
	firstInvalidIndex = 5
)

var invalidRepaired = "日ш� " + strings.Repeat("�", 8) + "z"

// sampleOffsets returns the byte offset of each code point in sampleUTF8.
func sampleOffsets() []int {
	offsets := make([]int, len(sampleSizes))
	pos := 0
	for i, n := range sampleSizes {
		offsets[i] = pos
		pos += n
	}
	return offsets
}
