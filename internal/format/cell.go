package format

import (
	"errors"
	"fmt"

	"github.com/joshuapare/heapkit/internal/buf"
)

// Cell is a single block within the arena.
//
// Block layout (little-endian):
//
//	Offset  Size  Description
//	0x00    4     Signed size. Negative => allocated, positive => free.
//	              The absolute value includes the 4-byte header.
//	0x04    ...   Payload.
type Cell struct {
	Offset int    // Absolute offset of the block header
	Size   int    // Total size including header
	Free   bool   // True when the block is not marked allocated
	Data   []byte // Payload bytes (alias of underlying buffer)
}

// NextCell decodes the block at off and returns it together with the offset
// of the following block. end is the exclusive upper bound for blocks
// (the arena's high-water mark).
func NextCell(b []byte, off, end int) (Cell, int, error) {
	if end > len(b) {
		return Cell{}, 0, fmt.Errorf("cell: end %d beyond buffer: %w", end, ErrTruncated)
	}
	if off < HeaderSize || off+CellHeaderSize > end {
		return Cell{}, 0, fmt.Errorf("cell: offset %d: %w", off, ErrTruncated)
	}
	raw := buf.I32LE(b[off:])
	if raw == 0 {
		return Cell{}, 0, errors.New("cell: zero length")
	}
	allocated := raw < 0
	size := int(raw)
	if allocated {
		size = -size
	}
	if size < CellHeaderSize {
		return Cell{}, 0, fmt.Errorf("cell: declared size too small (%d)", size)
	}
	if size%CellAlignment != 0 {
		return Cell{}, 0, fmt.Errorf("cell: size %d not %d-byte aligned", size, CellAlignment)
	}
	next := off + size
	if next > end {
		return Cell{}, 0, fmt.Errorf("cell: %w", ErrTruncated)
	}
	return Cell{
		Offset: off,
		Size:   size,
		Free:   !allocated,
		Data:   b[off+CellHeaderSize : next],
	}, next, nil
}
