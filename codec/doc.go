// Package codec holds the UTF-8 primitives shared by the checked and
// unchecked conversion APIs.
//
// # Byte Layout
//
//	Code points          Bytes  Layout
//	─────────────────────────────────────────────────────────────
//	U+0000   - U+007F    1      0xxxxxxx
//	U+0080   - U+07FF    2      110xxxxx 10xxxxxx
//	U+0800   - U+FFFF    3      1110xxxx 10xxxxxx 10xxxxxx
//	U+10000  - U+10FFFF  4      11110xxx 10xxxxxx 10xxxxxx 10xxxxxx
//
// The sequence length is determined by the lead byte alone (SequenceLength).
// A decoded sequence is only valid when every continuation byte matches
// 10xxxxxx, the result is a valid code point (IsValidCodePoint), and its
// canonical length (EncodedLength) equals the number of bytes consumed.
//
// # Policies
//
// Decode takes a Policy selecting how malformed input is handled:
//
//	PolicyNone      no checks at all; input must already be valid
//	PolicySentinel  return ErrorChar and leave the position unchanged
//	PolicyRaise     return a *errors.Error and leave the position unchanged
//
// Positions are byte offsets. Decode never reports a partially consumed
// sequence: on failure the returned position equals the one passed in.
//
// # Text
//
// Reading functions are generic over Text so the same code serves []byte
// and string without conversion.
package codec
