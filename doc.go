// Package utfcodec converts text between UTF-8, UTF-16 and UTF-32.
//
// The library comes in two flavors over one shared primitive layer: a
// validating API that reports every malformed sequence as a structured error,
// and a fast API that assumes well-formed input and never checks.
//
// # Architecture Overview
//
//	utfcodec/            Root package with the guest Memory and Allocator contracts
//	├── codec/           Sequence lengths, surrogate math, policy-driven decoding
//	├── checked/         Validating cursors, conversions, repair and transformers
//	├── unchecked/       Fast cursors and conversions without validation
//	├── errors/          Structured error types with phase, kind and offset
//	├── canon/           Component-model string lift/lower into linear memory
//	└── cmd/utfconv/     Command line validator, converter and inspector
//
// # Quick Start
//
// Validate and repair:
//
//	if off := checked.FindInvalid(data); off < len(data) {
//	    data = checked.ReplaceInvalid(nil, data)
//	}
//
// Walk code points, stopping at the first error:
//
//	for pos := 0; pos < len(s); {
//	    cp, next, err := checked.Next(s, pos)
//	    if err != nil {
//	        return err
//	    }
//	    use(cp)
//	    pos = next
//	}
//
// Convert to UTF-16:
//
//	u16, err := checked.UTF8ToUTF16(nil, s)
//
// # Positions
//
// Every cursor is a byte offset into a []byte or string. Functions take the
// current offset and return the new one; a failed call returns the offset it
// was given.
//
// # Thread Safety
//
// All functions are stateless and safe for concurrent use. Iterators borrow
// their buffer and must not outlive it; a single iterator is not safe for
// concurrent use.
package utfcodec
