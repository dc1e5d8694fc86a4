package utfcodec

// Memory represents guest linear memory
type Memory interface {
	Read(offset uint32, length uint32) ([]byte, error)
	Write(offset uint32, data []byte) error
}

// MemorySizer provides the current size of linear memory in bytes.
type MemorySizer interface {
	Size() uint32
}

// Allocator allocates memory in guest linear memory
type Allocator interface {
	Alloc(size, align uint32) (uint32, error)
	Free(ptr, size, align uint32)
}
