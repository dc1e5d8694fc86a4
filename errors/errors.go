package errors

import (
	"fmt"
	"strconv"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseEncode  Phase = "encode"  // code point to bytes / words
	PhaseDecode  Phase = "decode"  // bytes / words to code point
	PhaseIterate Phase = "iterate" // cursor construction and comparison
	PhaseLift    Phase = "lift"    // guest memory to Go string
	PhaseLower   Phase = "lower"   // Go string to guest memory
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidCodePoint   Kind = "invalid_code_point"
	KindInvalidUTF8        Kind = "invalid_utf8"
	KindInvalidUTF16       Kind = "invalid_utf16"
	KindNotEnoughRoom      Kind = "not_enough_room"
	KindInvalidCursorRange Kind = "invalid_cursor_range"
	KindOutOfBounds        Kind = "out_of_bounds"
	KindUnsupported        Kind = "unsupported"
	KindMemory             Kind = "memory"
	KindAllocation         Kind = "allocation"
	KindOverflow           Kind = "overflow"
)

// Sentinels for errors.Is. They carry no phase and therefore match errors of
// the same kind raised in any phase.
var (
	ErrInvalidCodePoint   = &Error{Kind: KindInvalidCodePoint, Offset: -1}
	ErrInvalidUTF8        = &Error{Kind: KindInvalidUTF8, Offset: -1}
	ErrInvalidUTF16       = &Error{Kind: KindInvalidUTF16, Offset: -1}
	ErrNotEnoughRoom      = &Error{Kind: KindNotEnoughRoom, Offset: -1}
	ErrInvalidCursorRange = &Error{Kind: KindInvalidCursorRange, Offset: -1}
	ErrOutOfBounds        = &Error{Kind: KindOutOfBounds, Offset: -1}
)

// Error is the structured error type used throughout the library
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	// Offset is the byte (UTF-8) or code unit (UTF-16, UTF-32) index of the
	// failing input, or -1 when not applicable.
	Offset int
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	if e.Phase != "" {
		b.WriteByte('[')
		b.WriteString(string(e.Phase))
		b.WriteString("] ")
	}
	b.WriteString(string(e.Kind))

	if e.Offset >= 0 {
		b.WriteString(" at offset ")
		b.WriteString(strconv.Itoa(e.Offset))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error. The phase is only compared
// when the target sets one.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase != "" && t.Phase != e.Phase {
		return false
	}
	return e.Kind == t.Kind
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase:  phase,
			Kind:   kind,
			Offset: -1,
		},
	}
}

// Offset sets the failing input offset
func (b *Builder) Offset(off int) *Builder {
	b.err.Offset = off
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// InvalidCodePoint creates an error for a code point outside [0, 0x10FFFF]
// or inside the surrogate range.
func InvalidCodePoint(phase Phase, offset int, cp rune) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidCodePoint,
		Offset: offset,
		Value:  cp,
		Detail: fmt.Sprintf("invalid code point 0x%X", uint32(cp)),
	}
}

// InvalidUTF8 creates an invalid UTF-8 error for the octet at offset
func InvalidUTF8(phase Phase, offset int, octet byte) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidUTF8,
		Offset: offset,
		Value:  octet,
		Detail: fmt.Sprintf("invalid UTF-8 octet 0x%02X", octet),
	}
}

// Overlong creates an invalid UTF-8 error for a sequence longer than the
// canonical encoding of the code point it carries.
func Overlong(phase Phase, offset int, lead byte, cp rune, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidUTF8,
		Offset: offset,
		Value:  lead,
		Detail: fmt.Sprintf("overlong %d-byte encoding of U+%04X", length, cp),
	}
}

// InvalidUTF16 creates an error for an unpaired surrogate
func InvalidUTF16(phase Phase, offset int, word uint16) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidUTF16,
		Offset: offset,
		Value:  word,
		Detail: fmt.Sprintf("unpaired surrogate 0x%04X", word),
	}
}

// MismatchedSurrogate creates an error for a lead surrogate at offset whose
// next unit is not a trail surrogate.
func MismatchedSurrogate(phase Phase, offset int, lead, next uint16) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidUTF16,
		Offset: offset,
		Value:  lead,
		Detail: fmt.Sprintf("lead surrogate 0x%04X followed by 0x%04X", lead, next),
	}
}

// NotEnoughRoom creates an error for input that ends before a full sequence
func NotEnoughRoom(phase Phase, offset int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotEnoughRoom,
		Offset: offset,
		Detail: "not enough input for a complete sequence",
	}
}

// InvalidCursorRange creates an error for comparing cursors over different ranges
func InvalidCursorRange(aStart, aEnd, bStart, bEnd int) *Error {
	return &Error{
		Phase:  PhaseIterate,
		Kind:   KindInvalidCursorRange,
		Offset: -1,
		Detail: fmt.Sprintf("comparing cursors over different ranges [%d,%d) and [%d,%d)", aStart, aEnd, bStart, bEnd),
	}
}

// OutOfBounds creates an error for a position outside [start, end]
func OutOfBounds(phase Phase, pos, start, end int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Offset: pos,
		Value:  pos,
		Detail: fmt.Sprintf("position %d outside range [%d,%d]", pos, start, end),
	}
}

// Unsupported creates an unsupported feature error
func Unsupported(phase Phase, feature string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Offset: -1,
		Detail: feature + " not supported",
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Offset: -1,
		Detail: detail,
		Cause:  cause,
	}
}
