package alloc

import (
	"fmt"

	"github.com/joshuapare/heapkit/arena"
	"github.com/joshuapare/heapkit/internal/format"
	"github.com/joshuapare/heapkit/internal/logger"
)

// Bump is an append-only allocator over an Arena.
//
//   - O(1) initialization: reads the high-water mark from the header
//   - O(1) allocation: pure bump pointer, no free lists, no indexes
//   - Free is a no-op; dead blocks stay where they are forever
type Bump struct {
	a *arena.Arena
}

var _ Allocator = (*Bump)(nil)

// NewBump creates a Bump allocator that continues from the arena's current
// high-water mark.
func NewBump(a *arena.Arena) (*Bump, error) {
	if a == nil {
		return nil, fmt.Errorf("alloc: nil arena")
	}
	hw := int(a.HighWater())
	if hw < format.HeaderSize || hw > a.Size() {
		return nil, fmt.Errorf("alloc: high-water 0x%X outside [0x%X, 0x%X]: %w",
			hw, format.HeaderSize, a.Size(), arena.ErrInvariant)
	}
	return &Bump{a: a}, nil
}

// Arena returns the arena this allocator carves from.
func (ba *Bump) Arena() *arena.Arena { return ba.a }

// Alloc carves a block with room for need payload bytes.
// The block size is need plus the 4-byte header, rounded up to 8 bytes.
func (ba *Bump) Alloc(need int32) (arena.Ref, []byte, error) {
	if need < 0 {
		return arena.Nil, nil, ErrNeedSmall
	}

	total := int64(format.Align8(int(need) + format.CellHeaderSize))
	hw := int64(ba.a.HighWater())
	end := hw + total
	if end > int64(ba.a.MaxSize()) {
		logger.Warn("alloc exhausted", "need", need, "highWater", hw, "max", ba.a.MaxSize())
		return arena.Nil, nil, fmt.Errorf("alloc: %d bytes at high-water 0x%X (max %d): %w",
			total, hw, ba.a.MaxSize(), arena.ErrExhausted)
	}

	if size := int64(ba.a.Size()); end > size {
		if err := ba.grow(int(end - size)); err != nil {
			return arena.Nil, nil, err
		}
	}

	data := ba.a.Bytes()
	off := int(hw)
	format.PutI32(data, off, -int32(total))
	if err := ba.a.Commit(int32(end)); err != nil {
		return arena.Nil, nil, err
	}

	// Blocks are never reused, so freshly backed memory is still zero.
	return arena.Ref(off), data[off+format.CellHeaderSize : int(end)], nil
}

// grow backs at least shortfall more bytes, rounded up to a page and clipped
// to the arena limit.
func (ba *Bump) grow(shortfall int) error {
	n := format.AlignPage(shortfall)
	if room := ba.a.MaxSize() - ba.a.Size(); n > room {
		n = room
	}
	if err := ba.a.Append(n); err != nil {
		logger.Warn("alloc grow failed", "bytes", n, "err", err)
		return fmt.Errorf("alloc: grow %d bytes: %w", n, err)
	}
	return nil
}

// Free validates ref and otherwise does nothing: bump-allocated blocks are
// never reclaimed.
func (ba *Bump) Free(ref arena.Ref) error {
	if _, err := ba.a.Payload(ref); err != nil {
		return fmt.Errorf("alloc: free: %w", err)
	}
	return nil
}

// Stats reports the allocator's view of the arena.
func (ba *Bump) Stats() Stats {
	hw := int(ba.a.HighWater())
	return Stats{
		Blocks:    ba.a.BlockCount(),
		Allocated: hw - format.HeaderSize,
		HighWater: hw,
		Backed:    ba.a.Size(),
		Limit:     ba.a.Limit(),
	}
}
