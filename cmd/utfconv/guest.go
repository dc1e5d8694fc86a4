package main

import (
	"context"
	"fmt"
	"io"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/utfcodec/canon"
	"github.com/wippyai/utfcodec/unchecked"
)

const pageSize = 65536

// memoryModule is a core module with one page of memory exported as "memory".
var memoryModule = []byte{
	0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00,
	0x05, 0x03, 0x01, 0x00, 0x01,
	0x07, 0x0a, 0x01, 0x06, 'm', 'e', 'm', 'o', 'r', 'y', 0x02, 0x00,
}

// guestRoundTrip lowers data into a fresh linear memory with the canonical
// string encoding enc, lifts it back and reports both steps.
func guestRoundTrip(ctx context.Context, w io.Writer, data []byte, enc string) error {
	encoding, err := canon.ParseEncoding(enc)
	if err != nil {
		return err
	}

	r := wazero.NewRuntime(ctx)
	defer r.Close(ctx)

	mod, err := r.Instantiate(ctx, memoryModule)
	if err != nil {
		return fmt.Errorf("instantiate memory module: %w", err)
	}
	mem := mod.ExportedMemory("memory")

	host, err := r.NewHostModuleBuilder("env").
		NewFunctionBuilder().
		WithFunc(bumpRealloc(mem)).
		Export("cabi_realloc").
		Instantiate(ctx)
	if err != nil {
		return fmt.Errorf("instantiate allocator: %w", err)
	}

	opts := canon.Options{
		Memory:   canon.NewWazeroMemory(mem),
		Alloc:    canon.NewReallocAllocator(ctx, host.ExportedFunction("cabi_realloc")),
		Encoding: encoding,
	}

	ptr, length, err := canon.LowerString(opts, string(data))
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "lowered %d bytes as %s: ptr=%d len=%#x\n", len(data), encoding, ptr, length)

	s, err := canon.LiftString(opts, ptr, length)
	if err != nil {
		return err
	}
	if s != string(data) {
		return fmt.Errorf("lifted string differs from input")
	}
	n := unchecked.Distance(s)
	fmt.Fprintf(w, "lifted %d code points, memory %d pages\n", n, mem.Size()/pageSize)
	return nil
}

// bumpRealloc returns a cabi_realloc that never reuses memory and grows mem
// on demand.
func bumpRealloc(mem api.Memory) func(context.Context, uint32, uint32, uint32, uint32) uint32 {
	next := uint32(1024)
	return func(_ context.Context, oldPtr, oldSize, align, newSize uint32) uint32 {
		if newSize == 0 {
			return 0
		}
		next = (next + align - 1) &^ (align - 1)
		ptr := next
		next += newSize
		if next > mem.Size() {
			pages := (next - mem.Size() + pageSize - 1) / pageSize
			if _, ok := mem.Grow(pages); !ok {
				log.Warn("memory grow failed", zap.Uint32("pages", pages))
			}
		}
		return ptr
	}
}
