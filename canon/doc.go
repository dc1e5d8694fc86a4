// Package canon moves strings between Go and WebAssembly linear memory
// following the Component Model canonical ABI.
//
// # Encodings
//
//   - UTF8: length counts bytes
//   - UTF16: little-endian code units, pointer 2-aligned, length counts units
//   - Latin1UTF16: Latin-1 bytes when every code point is below U+0100,
//     otherwise UTF-16 with bit 31 of the length set
//
// Every string crossing the boundary is validated with package checked; a
// malformed guest string fails the lift with the decode error as its cause.
//
// # Example
//
//	opts := canon.Options{
//	    Memory:   canon.NewWazeroMemory(mod.ExportedMemory("memory")),
//	    Alloc:    canon.NewReallocAllocator(ctx, mod.ExportedFunction("cabi_realloc")),
//	    Encoding: canon.UTF16,
//	}
//	ptr, n, err := canon.LowerString(opts, "héllo")
//	s, err := canon.LiftString(opts, ptr, n)
package canon
