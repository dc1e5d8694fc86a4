package canon

import (
	"encoding/binary"
	stderrors "errors"
	"fmt"

	"go.bytecodealliance.org/wit"
	"go.uber.org/zap"

	utfcodec "github.com/wippyai/utfcodec"
	"github.com/wippyai/utfcodec/checked"
	"github.com/wippyai/utfcodec/codec"
	"github.com/wippyai/utfcodec/errors"
	"github.com/wippyai/utfcodec/unchecked"
)

// Options holds options for canonical ABI string operations
type Options struct {
	Memory   utfcodec.Memory
	Alloc    utfcodec.Allocator
	Encoding StringEncoding
}

// LiftString reads a guest string at ptr and validates it.
// length is in bytes for UTF8 and in code units for UTF16.
func LiftString(opts Options, ptr, length uint32) (string, error) {
	if opts.Memory == nil {
		return "", errNilMemory(errors.PhaseLift)
	}
	Logger().Debug("lift string",
		zap.Stringer("encoding", opts.Encoding),
		zap.Uint32("ptr", ptr),
		zap.Uint32("len", length))

	switch opts.Encoding {
	case UTF8:
		return liftUTF8(opts.Memory, ptr, length)
	case UTF16:
		return liftUTF16(opts.Memory, ptr, length)
	case Latin1UTF16:
		if length&utf16Tag != 0 {
			return liftUTF16(opts.Memory, ptr, length&^utf16Tag)
		}
		return liftLatin1(opts.Memory, ptr, length)
	}
	return "", errors.Unsupported(errors.PhaseLift, "encoding "+opts.Encoding.String())
}

func liftUTF8(mem utfcodec.Memory, ptr, length uint32) (string, error) {
	data, err := read(mem, ptr, uint64(length))
	if err != nil {
		return "", err
	}
	if off := checked.FindInvalid(data); off < len(data) {
		_, _, cause := checked.Next(data, off)
		return "", rephase(errors.PhaseLift, cause, fmt.Sprintf("utf8 string at ptr=%d", ptr))
	}
	return string(data), nil
}

func liftUTF16(mem utfcodec.Memory, ptr, units uint32) (string, error) {
	if ptr&1 != 0 {
		return "", misaligned(errors.PhaseLift, ptr)
	}
	data, err := read(mem, ptr, 2*uint64(units))
	if err != nil {
		return "", err
	}
	words := make([]uint16, units)
	for i := range words {
		words[i] = binary.LittleEndian.Uint16(data[2*i:])
	}
	out, err := checked.UTF16ToUTF8(make([]byte, 0, len(words)), words)
	if err != nil {
		return "", rephase(errors.PhaseLift, err, fmt.Sprintf("utf16 string at ptr=%d", ptr))
	}
	return string(out), nil
}

func liftLatin1(mem utfcodec.Memory, ptr, length uint32) (string, error) {
	if ptr&1 != 0 {
		return "", misaligned(errors.PhaseLift, ptr)
	}
	data, err := read(mem, ptr, uint64(length))
	if err != nil {
		return "", err
	}
	out := make([]byte, 0, 2*len(data))
	for _, b := range data {
		out = codec.Encode(out, rune(b))
	}
	return string(out), nil
}

// LowerString allocates guest memory for s and writes it in the configured
// encoding. The empty string lowers to (0, 0) without allocating.
func LowerString(opts Options, s string) (ptr, length uint32, err error) {
	if opts.Memory == nil {
		return 0, 0, errNilMemory(errors.PhaseLower)
	}
	if opts.Alloc == nil {
		return 0, 0, errors.New(errors.PhaseLower, errors.KindAllocation).Detail("nil allocator").Build()
	}
	if off := checked.FindInvalid(s); off < len(s) {
		_, _, cause := checked.Next(s, off)
		return 0, 0, rephase(errors.PhaseLower, cause, "host string")
	}
	if len(s) == 0 {
		return 0, 0, nil
	}

	switch opts.Encoding {
	case UTF8:
		ptr, err = store(opts, []byte(s), 1)
		length = uint32(len(s))
	case UTF16:
		ptr, length, err = lowerUTF16(opts, unchecked.UTF8ToUTF16(nil, s))
	case Latin1UTF16:
		ptr, length, err = lowerCompact(opts, s)
	default:
		err = errors.Unsupported(errors.PhaseLower, "encoding "+opts.Encoding.String())
	}
	if err != nil {
		return 0, 0, err
	}

	Logger().Debug("lower string",
		zap.Stringer("encoding", opts.Encoding),
		zap.Uint32("ptr", ptr),
		zap.Uint32("len", length))
	return ptr, length, nil
}

func lowerUTF16(opts Options, words []uint16) (uint32, uint32, error) {
	if uint64(len(words)) >= utf16Tag {
		return 0, 0, tooLarge(errors.PhaseLower, 2*uint64(len(words)))
	}
	data := make([]byte, 0, 2*len(words))
	for _, w := range words {
		data = binary.LittleEndian.AppendUint16(data, w)
	}
	ptr, err := store(opts, data, 2)
	return ptr, uint32(len(words)), err
}

func lowerCompact(opts Options, s string) (uint32, uint32, error) {
	runes := unchecked.UTF8ToUTF32(nil, s)
	latin1 := make([]byte, 0, len(runes))
	for _, r := range runes {
		if r > 0xFF {
			latin1 = nil
			break
		}
		latin1 = append(latin1, byte(r))
	}
	if latin1 != nil {
		ptr, err := store(opts, latin1, 2)
		return ptr, uint32(len(latin1)), err
	}

	words := make([]uint16, 0, len(runes))
	for _, r := range runes {
		words = codec.EncodeUTF16(words, r)
	}
	ptr, units, err := lowerUTF16(opts, words)
	return ptr, units | utf16Tag, err
}

// LiftChar validates a flat char value as a Unicode scalar value.
func LiftChar(v uint64) (rune, error) {
	if v > uint64(codec.MaxCodePoint) || !codec.IsValidCodePoint(rune(v)) {
		return 0, errors.InvalidCodePoint(errors.PhaseLift, -1, rune(uint32(v)))
	}
	return rune(v), nil
}

// LowerChar flattens cp, which must be a Unicode scalar value.
func LowerChar(cp rune) (uint64, error) {
	if !codec.IsValidCodePoint(cp) {
		return 0, errors.InvalidCodePoint(errors.PhaseLower, -1, cp)
	}
	return uint64(uint32(cp)), nil
}

// Lift converts flat core values of WIT type t to a Go value.
// Only string and char are handled; string needs (ptr, len).
func Lift(opts Options, t wit.Type, flat []uint64) (any, error) {
	switch t.(type) {
	case wit.String:
		if len(flat) < 2 {
			return nil, shortFlat(t, 2, len(flat))
		}
		return LiftString(opts, uint32(flat[0]), uint32(flat[1]))
	case wit.Char:
		if len(flat) < 1 {
			return nil, shortFlat(t, 1, len(flat))
		}
		return LiftChar(flat[0])
	}
	return nil, errors.Unsupported(errors.PhaseLift, fmt.Sprintf("type %T", t))
}

// Lower converts a Go string or rune of WIT type t to flat core values.
func Lower(opts Options, t wit.Type, v any) ([]uint64, error) {
	switch t.(type) {
	case wit.String:
		s, ok := v.(string)
		if !ok {
			return nil, mismatch(t, v)
		}
		ptr, length, err := LowerString(opts, s)
		if err != nil {
			return nil, err
		}
		return []uint64{uint64(ptr), uint64(length)}, nil
	case wit.Char:
		cp, ok := v.(rune)
		if !ok {
			return nil, mismatch(t, v)
		}
		flat, err := LowerChar(cp)
		if err != nil {
			return nil, err
		}
		return []uint64{flat}, nil
	}
	return nil, errors.Unsupported(errors.PhaseLower, fmt.Sprintf("type %T", t))
}

func read(mem utfcodec.Memory, ptr uint32, size uint64) ([]byte, error) {
	if size > MaxStringSize {
		return nil, tooLarge(errors.PhaseLift, size)
	}
	if uint64(ptr)+size > 1<<32 {
		return nil, errors.New(errors.PhaseLift, errors.KindOutOfBounds).
			Offset(int(ptr)).
			Detail("string of %d bytes wraps the address space", size).
			Build()
	}
	data, err := mem.Read(ptr, uint32(size))
	if err != nil {
		return nil, errors.Wrap(errors.PhaseLift, errors.KindMemory, err,
			fmt.Sprintf("read ptr=%d len=%d", ptr, size))
	}
	return data, nil
}

func store(opts Options, data []byte, align uint32) (uint32, error) {
	if uint64(len(data)) > MaxStringSize {
		return 0, tooLarge(errors.PhaseLower, uint64(len(data)))
	}
	size := uint32(len(data))
	ptr, err := opts.Alloc.Alloc(size, align)
	if err != nil {
		return 0, errors.Wrap(errors.PhaseLower, errors.KindAllocation, err,
			fmt.Sprintf("alloc size=%d align=%d", size, align))
	}
	if ptr&(align-1) != 0 {
		opts.Alloc.Free(ptr, size, align)
		return 0, misaligned(errors.PhaseLower, ptr)
	}
	if err := opts.Memory.Write(ptr, data); err != nil {
		opts.Alloc.Free(ptr, size, align)
		return 0, errors.Wrap(errors.PhaseLower, errors.KindMemory, err,
			fmt.Sprintf("write ptr=%d len=%d", ptr, size))
	}
	return ptr, nil
}

// rephase wraps a codec error under a canon phase, keeping its kind.
func rephase(phase errors.Phase, cause error, detail string) error {
	kind := errors.KindInvalidUTF8
	var e *errors.Error
	if stderrors.As(cause, &e) {
		kind = e.Kind
	}
	return errors.Wrap(phase, kind, cause, detail)
}

func errNilMemory(phase errors.Phase) error {
	return errors.New(phase, errors.KindMemory).Detail("nil memory").Build()
}

func misaligned(phase errors.Phase, ptr uint32) error {
	return errors.New(phase, errors.KindMemory).
		Offset(int(ptr)).
		Value(ptr).
		Detail("pointer not 2-byte aligned").
		Build()
}

func tooLarge(phase errors.Phase, size uint64) error {
	return errors.New(phase, errors.KindOverflow).
		Value(size).
		Detail("string of %d bytes exceeds %d", size, MaxStringSize).
		Build()
}

func shortFlat(t wit.Type, want, got int) error {
	return errors.New(errors.PhaseLift, errors.KindOutOfBounds).
		Detail("%T needs %d flat values, got %d", t, want, got).
		Build()
}

func mismatch(t wit.Type, v any) error {
	return errors.New(errors.PhaseLower, errors.KindUnsupported).
		Value(v).
		Detail("cannot lower %T as %T", v, t).
		Build()
}
