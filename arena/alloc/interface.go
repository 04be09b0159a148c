package alloc

import "github.com/joshuapare/heapkit/arena"

// Allocator hands out arena blocks. Alloc returns the block's ref and its
// zero-filled payload of at least need bytes.
type Allocator interface {
	Alloc(need int32) (arena.Ref, []byte, error)
	Free(ref arena.Ref) error
}

// Stats summarizes allocator state.
type Stats struct {
	Blocks    uint32 // blocks handed out
	Allocated int    // bytes in blocks, headers included
	HighWater int    // absolute offset of the next block
	Backed    int    // bytes of backed memory, header block included
	Limit     int    // byte cap, 0 when uncapped
}
