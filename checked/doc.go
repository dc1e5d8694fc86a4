// Package checked implements the validating UTF-8 conversion API.
//
// Every operation verifies its input and reports malformed data through
// *errors.Error values from package github.com/wippyai/utfcodec/errors:
//
//	KindInvalidCodePoint   encoding a surrogate or a value above U+10FFFF
//	KindInvalidUTF8        bad lead or continuation byte, overlong encoding
//	KindInvalidUTF16       unpaired lead or trail surrogate
//	KindNotEnoughRoom      input ends inside a sequence, or at a boundary
//	KindInvalidCursorRange comparing iterators over different ranges
//	KindOutOfBounds        iterator position outside its range
//
// Positions are byte offsets. A failing Next, Previous or Iterator step
// never moves the position.
//
// ReplaceInvalid and the Replacer transformer are the only operations that
// substitute data; they never fail.
//
// Conversions follow the append convention of strconv.AppendInt: the
// destination slice is extended and returned. On error the returned slice
// holds everything converted before the failing unit.
//
//	u16, err := checked.UTF8ToUTF16(nil, data)
//	if err != nil {
//	    return err
//	}
package checked
