// Package errors provides structured error types for the utfcodec library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the byte or code unit offset of the failure, the offending
// value (code point, octet or UTF-16 word) and an optional cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindInvalidUTF8).
//		Offset(12).
//		Value(byte(0xC1)).
//		Detail("overlong encoding").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.InvalidCodePoint(errors.PhaseEncode, 3, 0xD800)
//	err := errors.NotEnoughRoom(errors.PhaseDecode, 7)
//
// All errors implement the standard error interface and support errors.Is/As.
// The sentinel values (ErrInvalidUTF8 and friends) match any phase:
//
//	if errors.Is(err, errors.ErrInvalidUTF8) { ... }
package errors
