package canon

import (
	"context"
	"testing"

	"github.com/tetratelabs/wazero"
)

// memoryModule is a core module with one 64 KiB page exported as "memory".
var memoryModule = []byte{
	0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00, // magic, version
	0x05, 0x03, 0x01, 0x00, 0x01, // memory section: min 1 page
	0x07, 0x0a, 0x01, 0x06, 'm', 'e', 'm', 'o', 'r', 'y', 0x02, 0x00, // export "memory"
}

type guest struct {
	mem   *WazeroMemory
	alloc *ReallocAllocator
	frees int
}

// newGuest instantiates memoryModule plus a host bump allocator exposed as
// cabi_realloc.
func newGuest(t *testing.T) *guest {
	t.Helper()
	ctx := context.Background()
	r := wazero.NewRuntime(ctx)
	t.Cleanup(func() { r.Close(ctx) })

	mod, err := r.Instantiate(ctx, memoryModule)
	if err != nil {
		t.Fatalf("instantiate memory module: %v", err)
	}
	mem := mod.ExportedMemory("memory")
	if mem == nil {
		t.Fatal("memory export missing")
	}

	g := &guest{mem: NewWazeroMemory(mem)}
	next := uint32(1024)
	host, err := r.NewHostModuleBuilder("env").
		NewFunctionBuilder().
		WithFunc(func(_ context.Context, oldPtr, oldSize, align, newSize uint32) uint32 {
			if newSize == 0 {
				g.frees++
				return 0
			}
			next = (next + align - 1) &^ (align - 1)
			ptr := next
			next += newSize
			return ptr
		}).
		Export("cabi_realloc").
		Instantiate(ctx)
	if err != nil {
		t.Fatalf("instantiate host module: %v", err)
	}
	g.alloc = NewReallocAllocator(ctx, host.ExportedFunction("cabi_realloc"))
	return g
}

func TestWazeroMemory(t *testing.T) {
	g := newGuest(t)

	if size := g.mem.Size(); size != 65536 {
		t.Errorf("Size = %d, want 65536", size)
	}
	if err := g.mem.Write(100, []byte("abc")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	data, err := g.mem.Read(100, 3)
	if err != nil || string(data) != "abc" {
		t.Errorf("Read = %q, %v", data, err)
	}
	if _, err := g.mem.Read(65535, 2); err == nil {
		t.Error("expected out of bounds read error")
	}
	if err := g.mem.Write(65535, []byte{1, 2}); err == nil {
		t.Error("expected out of bounds write error")
	}
}

func TestReallocAllocator(t *testing.T) {
	g := newGuest(t)

	p1, err := g.alloc.Alloc(3, 1)
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	p2, err := g.alloc.Alloc(4, 4)
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	if p1 != 1024 || p2 != 1028 {
		t.Errorf("ptrs = %d, %d; want 1024, 1028", p1, p2)
	}

	g.alloc.Free(p2, 4, 4)
	g.alloc.Free(0, 0, 1)
	if g.frees != 1 {
		t.Errorf("frees = %d, want 1", g.frees)
	}

	var none ReallocAllocator
	if _, err := none.Alloc(1, 1); err == nil {
		t.Error("expected error without realloc export")
	}
}

func TestWazero_LowerLift(t *testing.T) {
	tests := []struct {
		enc StringEncoding
		in  string
	}{
		{UTF8, "héllo wörld"},
		{UTF16, "日本語 \U0001F600"},
		{Latin1UTF16, "façade"},
		{Latin1UTF16, "façade 日"},
	}

	for _, tt := range tests {
		t.Run(tt.enc.String(), func(t *testing.T) {
			g := newGuest(t)
			opts := Options{Memory: g.mem, Alloc: g.alloc, Encoding: tt.enc}

			ptr, n, err := LowerString(opts, tt.in)
			if err != nil {
				t.Fatalf("LowerString: %v", err)
			}
			got, err := LiftString(opts, ptr, n)
			if err != nil {
				t.Fatalf("LiftString: %v", err)
			}
			if got != tt.in {
				t.Errorf("round trip = %q, want %q", got, tt.in)
			}
		})
	}
}

func TestWazero_LiftOutOfBounds(t *testing.T) {
	g := newGuest(t)
	opts := Options{Memory: g.mem, Alloc: g.alloc}
	if _, err := LiftString(opts, 65530, 100); err == nil {
		t.Error("expected error reading past the end of memory")
	}
}
