package canon

import (
	"strconv"

	"github.com/wippyai/utfcodec/errors"
)

// StringEncoding represents the string encoding for canonical ABI
type StringEncoding byte

const (
	UTF8 StringEncoding = iota
	UTF16
	Latin1UTF16
)

// Canon option bytes selecting the string encoding in a component binary.
const (
	OptUTF8         byte = 0x00
	OptUTF16        byte = 0x01
	OptCompactUTF16 byte = 0x02
)

const (
	// MaxStringSize bounds the byte size of a lifted or lowered string.
	MaxStringSize = 1 << 30

	// utf16Tag marks a Latin1UTF16 length as counting UTF-16 units.
	utf16Tag = 1 << 31
)

func (e StringEncoding) String() string {
	switch e {
	case UTF8:
		return "utf8"
	case UTF16:
		return "utf16"
	case Latin1UTF16:
		return "latin1+utf16"
	default:
		return "unknown"
	}
}

// ParseEncodingOption maps a canon option byte to its encoding.
func ParseEncodingOption(opt byte) (StringEncoding, error) {
	switch opt {
	case OptUTF8:
		return UTF8, nil
	case OptUTF16:
		return UTF16, nil
	case OptCompactUTF16:
		return Latin1UTF16, nil
	}
	return 0, errors.New("", errors.KindUnsupported).
		Value(opt).
		Detail("canon option 0x%02x is not a string encoding", opt).
		Build()
}

// ParseEncoding maps an encoding name as printed by String back to its value.
func ParseEncoding(name string) (StringEncoding, error) {
	for _, e := range []StringEncoding{UTF8, UTF16, Latin1UTF16} {
		if e.String() == name {
			return e, nil
		}
	}
	return 0, errors.Unsupported("", "string encoding "+strconv.Quote(name))
}
