package canon

import (
	"context"
	"fmt"
	"sync"

	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	utfcodec "github.com/wippyai/utfcodec"
)

// WazeroMemory adapts a wazero linear memory to utfcodec.Memory.
type WazeroMemory struct {
	mem api.Memory
}

// NewWazeroMemory wraps mem, typically mod.ExportedMemory("memory").
func NewWazeroMemory(mem api.Memory) *WazeroMemory {
	return &WazeroMemory{mem: mem}
}

// Read returns a view of guest memory; it is invalidated when memory grows.
func (m *WazeroMemory) Read(offset uint32, length uint32) ([]byte, error) {
	data, ok := m.mem.Read(offset, length)
	if !ok {
		return nil, fmt.Errorf("read out of bounds: offset=%d, length=%d", offset, length)
	}
	return data, nil
}

func (m *WazeroMemory) Write(offset uint32, data []byte) error {
	ok := m.mem.Write(offset, data)
	if !ok {
		return fmt.Errorf("write out of bounds: offset=%d, length=%d", offset, len(data))
	}
	return nil
}

func (m *WazeroMemory) Size() uint32 {
	if m.mem == nil {
		return 0
	}
	return m.mem.Size()
}

// ReallocAllocator allocates through a guest cabi_realloc export with the
// signature (old_ptr, old_size, align, new_size) -> ptr. Free reallocates
// to size zero.
type ReallocAllocator struct {
	ctx      context.Context
	realloc  api.Function
	stackBuf [4]uint64
	mu       sync.Mutex
}

// NewReallocAllocator binds realloc to ctx for every guest call.
func NewReallocAllocator(ctx context.Context, realloc api.Function) *ReallocAllocator {
	if ctx == nil {
		ctx = context.Background()
	}
	return &ReallocAllocator{ctx: ctx, realloc: realloc}
}

func (a *ReallocAllocator) Alloc(size, align uint32) (uint32, error) {
	if a.realloc == nil {
		return 0, fmt.Errorf("no allocator available")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.stackBuf[0] = 0
	a.stackBuf[1] = 0
	a.stackBuf[2] = uint64(align)
	a.stackBuf[3] = uint64(size)
	if err := a.realloc.CallWithStack(a.ctx, a.stackBuf[:]); err != nil {
		return 0, err
	}
	return uint32(a.stackBuf[0]), nil
}

func (a *ReallocAllocator) Free(ptr, size, align uint32) {
	if a.realloc == nil || ptr == 0 {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.stackBuf[0] = uint64(ptr)
	a.stackBuf[1] = uint64(size)
	a.stackBuf[2] = uint64(align)
	a.stackBuf[3] = 0
	if err := a.realloc.CallWithStack(a.ctx, a.stackBuf[:]); err != nil {
		Logger().Warn("free: cabi_realloc to zero failed",
			zap.Uint32("ptr", ptr),
			zap.Uint32("size", size),
			zap.Error(err))
	}
}

var _ utfcodec.Memory = (*WazeroMemory)(nil)
var _ utfcodec.MemorySizer = (*WazeroMemory)(nil)
var _ utfcodec.Allocator = (*ReallocAllocator)(nil)
